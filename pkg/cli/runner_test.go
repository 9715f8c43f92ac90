package cli_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/cimaturity/pkg/cli"
	"github.com/suzuki-shunsuke/urfave-cli-v3-util/urfave"
)

func TestRunner_Run_version(t *testing.T) {
	t.Parallel()
	data := []struct {
		name    string
		ldFlags *urfave.LDFlags
		exp     string
	}{
		{
			name:    "commit and date",
			ldFlags: &urfave.LDFlags{Version: "v0.1.0", Commit: "abc", Date: "2025-09-01"},
			exp:     "cimaturity version v0.1.0 (abc)\nbuilt at 2025-09-01\n",
		},
		{
			name:    "version only",
			ldFlags: &urfave.LDFlags{Version: "v0.1.0"},
			exp:     "cimaturity version v0.1.0\n",
		},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			logger := logrus.New()
			logger.SetOutput(io.Discard)
			stdout := &bytes.Buffer{}
			r := &cli.Runner{
				Stdin:   strings.NewReader(""),
				Stdout:  stdout,
				Stderr:  io.Discard,
				LDFlags: d.ldFlags,
				LogE:    logrus.NewEntry(logger),
			}
			if err := r.Run(context.Background(), "cimaturity", "version"); err != nil {
				t.Fatal(err)
			}
			if stdout.String() != d.exp {
				t.Fatalf("wanted %q, got %q", d.exp, stdout.String())
			}
		})
	}
}

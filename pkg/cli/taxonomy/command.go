// Package taxonomy implements the 'cimaturity taxonomy' command.
package taxonomy

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/suzuki-shunsuke/cimaturity/pkg/cli/flag"
	"github.com/suzuki-shunsuke/cimaturity/pkg/controller/outline"
	"github.com/suzuki-shunsuke/cimaturity/pkg/log"
	"github.com/urfave/cli/v3"
)

func New(logE *logrus.Entry, stdout io.Writer) *cli.Command {
	r := &runner{
		logE:   logE,
		stdout: stdout,
	}
	return r.Command()
}

type runner struct {
	logE   *logrus.Entry
	stdout io.Writer
}

func (r *runner) Command() *cli.Command {
	return &cli.Command{
		Name:  "taxonomy",
		Usage: "Validate a taxonomy file and output it in the normalized form",
		Description: `Validate a taxonomy file and output it in the normalized form.

$ cimaturity taxonomy

You can pass a taxonomy file path.

$ cimaturity taxonomy data/automations.md
`,
		Action: r.action,
	}
}

func (r *runner) action(_ context.Context, c *cli.Command) error {
	log.SetLevel(c.String("log-level"), r.logE)
	fs := afero.NewOsFs()
	cfg, err := flag.ReadConfig(fs, c.String("config"))
	if err != nil {
		return err //nolint:wrapcheck
	}
	return outline.New(fs, cfg, r.stdout).Run(r.logE, c.Args().First()) //nolint:wrapcheck
}

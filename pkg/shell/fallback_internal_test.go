package shell

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func Test_splitFallback(t *testing.T) {
	t.Parallel()
	data := []struct {
		name string
		src  string
		exp  []string
	}{
		{
			name: "and list",
			src:  "make build && make test",
			exp:  []string{"make build", "make test"},
		},
		{
			name: "pipe",
			src:  "cat a|grep b",
			exp:  []string{"cat a", "grep b"},
		},
		{
			name: "escaped pipe is kept",
			src:  `grep a\|b file`,
			exp:  []string{"grep a|b file"},
		},
		{
			name: "line continuation is joined",
			src:  "docker build \\\n  -t foo .",
			exp:  []string{"docker build -t foo ."},
		},
		{
			name: "empty fragments are dropped",
			src:  "| make\n\n\n||  lint",
			exp:  []string{"make", "lint"},
		},
		{
			name: "multibyte characters",
			src:  "echo ✔ && make",
			exp:  []string{"echo ✔", "make"},
		},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(d.exp, splitFallback(d.src)); diff != "" {
				t.Fatal(diff)
			}
		})
	}
}

func Test_stripComments(t *testing.T) {
	t.Parallel()
	got := stripComments("# a\r\nmake # inline stays\r\n  #b\nlint")
	exp := "make # inline stays\nlint"
	if got != exp {
		t.Fatalf("wanted %q, got %q", exp, got)
	}
}

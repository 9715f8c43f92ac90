// Package cli builds the command line interface of cimaturity.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/cimaturity/pkg/cli/extract"
	"github.com/suzuki-shunsuke/cimaturity/pkg/cli/fetch"
	"github.com/suzuki-shunsuke/cimaturity/pkg/cli/flag"
	"github.com/suzuki-shunsuke/cimaturity/pkg/cli/score"
	"github.com/suzuki-shunsuke/cimaturity/pkg/cli/taxonomy"
	"github.com/suzuki-shunsuke/cimaturity/pkg/cli/token"
	"github.com/suzuki-shunsuke/urfave-cli-v3-util/urfave"
	"github.com/urfave/cli/v3"
)

type Runner struct {
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	LDFlags *urfave.LDFlags
	LogE    *logrus.Entry
}

func Run(ctx context.Context, logE *logrus.Entry, ldFlags *urfave.LDFlags, args ...string) error {
	r := &Runner{
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		LDFlags: ldFlags,
		LogE:    logE,
	}
	return r.Run(ctx, args...)
}

func (r *Runner) Run(ctx context.Context, args ...string) error {
	gf := &flag.GlobalFlags{}
	cmd := &cli.Command{
		Name:                  "cimaturity",
		Usage:                 "Assess the CI/CD maturity of repositories from their GitHub Actions workflows",
		Version:               r.version(),
		Flags:                 gf.Flags(),
		EnableShellCompletion: true,
		Writer:                r.Stdout,
		ErrWriter:             r.Stderr,
		Commands: []*cli.Command{
			fetch.New(r.LogE),
			extract.New(r.LogE, r.Stdout),
			score.New(r.LogE, r.Stdout, r.LDFlags.Version),
			taxonomy.New(r.LogE, r.Stdout),
			token.New(r.LogE, r.Stdin),
			r.newVersionCommand(),
		},
	}
	return cmd.Run(ctx, args) //nolint:wrapcheck
}

func (r *Runner) version() string {
	if r.LDFlags.Commit == "" {
		return r.LDFlags.Version
	}
	return r.LDFlags.Version + " (" + r.LDFlags.Commit + ")"
}

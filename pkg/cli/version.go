package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

func (r *Runner) newVersionCommand() *cli.Command {
	return &cli.Command{
		Name:   "version",
		Usage:  "Show version",
		Action: r.versionAction,
	}
}

func (r *Runner) versionAction(_ context.Context, _ *cli.Command) error {
	fmt.Fprintf(r.Stdout, "cimaturity version %s\n", r.version())
	if r.LDFlags.Date != "" {
		fmt.Fprintf(r.Stdout, "built at %s\n", r.LDFlags.Date)
	}
	return nil
}

// Package token implements the 'cimaturity token' command.
// It stores a GitHub access token in the OS keyring so that the token doesn't
// have to be exported as an environment variable.
package token

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/cimaturity/pkg/controller/token"
	"github.com/suzuki-shunsuke/cimaturity/pkg/github"
	"github.com/suzuki-shunsuke/cimaturity/pkg/log"
	"github.com/urfave/cli/v3"
)

func New(logE *logrus.Entry, stdin io.Reader) *cli.Command {
	r := &runner{
		logE:  logE,
		stdin: stdin,
	}
	return r.Command()
}

type runner struct {
	logE  *logrus.Entry
	stdin io.Reader
}

func (r *runner) Command() *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "Manage a GitHub access token in the keyring",
		Description: `Manage a GitHub access token in the keyring.
The token is used when the environment variable CIMATURITY_KEYRING_ENABLED is true.`,
		Commands: []*cli.Command{
			{
				Name:  "set",
				Usage: "Set a GitHub access token read from the standard input",
				Description: `Set a GitHub access token read from the standard input.

$ echo "$GITHUB_TOKEN" | cimaturity token set
`,
				Action: r.set,
			},
			{
				Name:   "rm",
				Usage:  "Remove a GitHub access token from the keyring",
				Action: r.remove,
			},
		},
	}
}

func (r *runner) set(_ context.Context, c *cli.Command) error {
	log.SetLevel(c.String("log-level"), r.logE)
	return token.New(r.stdin, github.NewTokenManager()).Set() //nolint:wrapcheck
}

func (r *runner) remove(_ context.Context, c *cli.Command) error {
	log.SetLevel(c.String("log-level"), r.logE)
	return token.New(r.stdin, github.NewTokenManager()).Remove() //nolint:wrapcheck
}

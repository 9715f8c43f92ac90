// Package fetch implements the 'cimaturity fetch' command.
package fetch

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/suzuki-shunsuke/cimaturity/pkg/cli/flag"
	"github.com/suzuki-shunsuke/cimaturity/pkg/controller/fetch"
	"github.com/suzuki-shunsuke/cimaturity/pkg/github"
	"github.com/suzuki-shunsuke/cimaturity/pkg/log"
	"github.com/urfave/cli/v3"
)

func New(logE *logrus.Entry) *cli.Command {
	r := &runner{
		logE: logE,
	}
	return r.Command()
}

type runner struct {
	logE *logrus.Entry
}

func (r *runner) Command() *cli.Command {
	return &cli.Command{
		Name:  "fetch",
		Usage: "Download workflow files of repositories into the corpus directory",
		Description: `Download .github/workflows/*.yml and *.yaml of repositories into the corpus directory.

$ cimaturity fetch apache/maven google/guava

If no argument is passed, repositories are read from repository list files in the configuration file.

$ cimaturity fetch

Repositories which have already been downloaded are skipped unless --force is set.
GITHUB_TOKEN is used to access the GitHub API.
If CIMATURITY_KEYRING_ENABLED is true, a token stored by 'cimaturity token set' is used instead.
`,
		Action: r.action,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "corpus-dir",
				Aliases: []string{"d"},
				Usage:   "The corpus directory. This overrides the configuration file",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Download repositories which have already been downloaded",
			},
		},
	}
}

func (r *runner) action(ctx context.Context, c *cli.Command) error {
	log.SetLevel(c.String("log-level"), r.logE)
	fs := afero.NewOsFs()
	cfg, err := flag.ReadConfig(fs, c.String("config"))
	if err != nil {
		return err //nolint:wrapcheck
	}
	if c.IsSet("corpus-dir") {
		cfg.Corpus = c.String("corpus-dir")
	}
	gh := github.New(ctx, r.logE)
	ctrl := fetch.New(fs, cfg, &fetch.Param{
		Repositories: c.Args().Slice(),
		Force:        c.Bool("force"),
	}, github.NewFetcher(gh.Repositories))
	return ctrl.Fetch(ctx, r.logE) //nolint:wrapcheck
}

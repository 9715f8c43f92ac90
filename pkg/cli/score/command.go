// Package score implements the 'cimaturity score' command.
package score

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/suzuki-shunsuke/cimaturity/pkg/cli/flag"
	"github.com/suzuki-shunsuke/cimaturity/pkg/controller/extract"
	"github.com/suzuki-shunsuke/cimaturity/pkg/controller/scorecard"
	"github.com/suzuki-shunsuke/cimaturity/pkg/log"
	"github.com/urfave/cli/v3"
)

const defaultTodo = 3

func New(logE *logrus.Entry, stdout io.Writer, version string) *cli.Command {
	r := &runner{
		logE:    logE,
		stdout:  stdout,
		version: version,
	}
	return r.Command()
}

type runner struct {
	logE    *logrus.Entry
	stdout  io.Writer
	version string
}

func (r *runner) Command() *cli.Command {
	return &cli.Command{
		Name:  "score",
		Usage: "Score the CI maturity of repositories",
		Description: `Match actions of each repository against the taxonomy and output the maturity level of each domain.

$ cimaturity score

By default, workflow files are read from the corpus directory.
You can pass a corpus saved by 'cimaturity extract --output'.

$ cimaturity score --corpus corpus.json

You can pass repositories as arguments.

$ cimaturity score apache/maven google/guava
`,
		Action: r.action,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "corpus",
				Usage: "A corpus file written by 'cimaturity extract --output'",
			},
			&cli.StringFlag{
				Name:  "taxonomy",
				Usage: "The taxonomy file. This overrides the configuration file",
			},
			&cli.StringFlag{
				Name:  "plugins",
				Usage: "The plugin usage dataset. This overrides the configuration file",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format. One of text, json, and sarif",
				Value:   scorecard.FormatText,
			},
			&cli.BoolFlag{
				Name:  "unused",
				Usage: "Output task instances which no repository uses",
			},
			&cli.IntFlag{
				Name:  "todo",
				Usage: "The maximum number of recommended tasks per repository. 0 disables recommendations and a negative value outputs all",
				Value: defaultTodo,
			},
			&cli.BoolFlag{
				Name:  "joker",
				Usage: "Promote the lowest domain of each repository as long as the tasks of following levels are satisfied",
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
	if c.IsSet("taxonomy") {
		cfg.Taxonomy = c.String("taxonomy")
	}
	if c.IsSet("plugins") {
		cfg.Plugins = c.String("plugins")
	}
	ctrl := scorecard.New(fs, cfg, &scorecard.Param{
		CorpusFile:   c.String("corpus"),
		Repositories: c.Args().Slice(),
		Format:       c.String("format"),
		Unused:       c.Bool("unused"),
		Todo:         c.Int("todo"),
		Joker:        c.Bool("joker"),
		Version:      r.version,
	}, r.stdout, extract.New(fs, cfg, &extract.Param{}, r.stdout))
	return ctrl.Run(ctx, r.logE) //nolint:wrapcheck
}

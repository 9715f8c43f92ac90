// Package extract implements the 'cimaturity extract' command.
package extract

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/suzuki-shunsuke/cimaturity/pkg/cli/flag"
	"github.com/suzuki-shunsuke/cimaturity/pkg/controller/extract"
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
		Name:  "extract",
		Usage: "Extract actions from workflow files in the corpus directory",
		Description: `Extract actions from workflow files of repositories in the corpus directory and output actions used by multiple repositories.

$ cimaturity extract

You can pass repositories as arguments.

$ cimaturity extract apache/maven google/guava

The aggregated corpus can be saved and passed to 'cimaturity score --corpus'.

$ cimaturity extract --output corpus.json
`,
		Action: r.action,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "corpus-dir",
				Aliases: []string{"d"},
				Usage:   "The corpus directory. This overrides the configuration file",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "A file path where the aggregated corpus is written as JSON",
			},
			&cli.BoolFlag{
				Name:  "clusters",
				Usage: "Output clusters of frequently used unrecognized commands",
			},
			&cli.IntFlag{
				Name:  "cluster-threshold",
				Usage: "The minimum number of members of a cluster. This overrides the configuration file",
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
	if c.IsSet("cluster-threshold") {
		cfg.ClusterThreshold = c.Int("cluster-threshold")
	}
	ctrl := extract.New(fs, cfg, &extract.Param{
		Repositories: c.Args().Slice(),
		Output:       c.String("output"),
		Clusters:     c.Bool("clusters"),
	}, r.stdout)
	return ctrl.Run(ctx, r.logE) //nolint:wrapcheck
}

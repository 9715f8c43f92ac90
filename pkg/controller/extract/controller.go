// Package extract implements the 'cimaturity extract' command.
// It reads the workflow files of every repository in the corpus directory,
// aggregates the actions they use, and reports how often each action is used
// together with clusters of frequent unrecognized commands.
package extract

import (
	"io"

	"github.com/spf13/afero"
	"github.com/suzuki-shunsuke/cimaturity/pkg/config"
)

type Controller struct {
	fs     afero.Fs
	cfg    *config.Config
	param  *Param
	stdout io.Writer
}

type Param struct {
	// Repositories are the repositories to extract. If empty, all repositories in the corpus directory are extracted.
	Repositories []string
	// Output is a file path where the corpus snapshot is written.
	Output string
	// Clusters enables the cluster report.
	Clusters bool
}

func New(fs afero.Fs, cfg *config.Config, param *Param, stdout io.Writer) *Controller {
	return &Controller{
		fs:     fs,
		cfg:    cfg,
		param:  param,
		stdout: stdout,
	}
}

// Package fetch implements the 'cimaturity fetch' command.
// It downloads the workflow files of repositories into the corpus directory.
package fetch

import (
	"context"

	"github.com/spf13/afero"
	"github.com/suzuki-shunsuke/cimaturity/pkg/config"
)

type Controller struct {
	fs      afero.Fs
	cfg     *config.Config
	param   *Param
	fetcher Fetcher
}

type Fetcher interface {
	ListWorkflows(ctx context.Context, owner, repo string) ([]string, error)
	GetFile(ctx context.Context, owner, repo, path string) ([]byte, error)
}

type Param struct {
	Repositories []string
	// Force downloads repositories which already exist in the corpus directory.
	Force bool
}

func New(fs afero.Fs, cfg *config.Config, param *Param, fetcher Fetcher) *Controller {
	return &Controller{
		fs:      fs,
		cfg:     cfg,
		param:   param,
		fetcher: fetcher,
	}
}

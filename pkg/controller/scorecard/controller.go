// Package scorecard implements the 'cimaturity score' command.
// It matches each repository against the taxonomy, computes per-domain
// maturity levels, and writes a scorecard as text, JSON, or SARIF.
package scorecard

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/suzuki-shunsuke/cimaturity/pkg/config"
	"github.com/suzuki-shunsuke/cimaturity/pkg/workflow"
)

const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatSARIF = "sarif"
)

type Controller struct {
	fs        afero.Fs
	cfg       *config.Config
	param     *Param
	stdout    io.Writer
	extractor Extractor
	printer   *Printer
}

// Extractor builds a corpus from the corpus directory when no snapshot is given.
type Extractor interface {
	Extract(ctx context.Context, logE *logrus.Entry, repos []string) (*workflow.Corpus, error)
}

type Param struct {
	// CorpusFile is a snapshot written by 'cimaturity extract --output'.
	CorpusFile   string
	Repositories []string
	Format       string
	Unused       bool
	// Todo is the maximum number of recommended tasks per repository. A negative value means no limit.
	Todo    int
	Joker   bool
	Version string
}

func New(fs afero.Fs, cfg *config.Config, param *Param, stdout io.Writer, extractor Extractor) *Controller {
	return &Controller{
		fs:        fs,
		cfg:       cfg,
		param:     param,
		stdout:    stdout,
		extractor: extractor,
		printer:   NewPrinter(stdout),
	}
}

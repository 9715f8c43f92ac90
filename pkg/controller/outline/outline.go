// Package outline implements the 'cimaturity taxonomy' command.
// It validates a taxonomy outline and prints it in the canonical form.
package outline

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/suzuki-shunsuke/cimaturity/pkg/config"
	"github.com/suzuki-shunsuke/cimaturity/pkg/taxonomy"
)

var errTaxonomyRequired = errors.New("the taxonomy file is required")

type Controller struct {
	fs     afero.Fs
	cfg    *config.Config
	stdout io.Writer
}

func New(fs afero.Fs, cfg *config.Config, stdout io.Writer) *Controller {
	return &Controller{
		fs:     fs,
		cfg:    cfg,
		stdout: stdout,
	}
}

// Run loads the taxonomy file given as path, or the one in the configuration file.
func (c *Controller) Run(logE *logrus.Entry, path string) error {
	if path == "" {
		path = c.cfg.Taxonomy
	}
	if path == "" {
		return errTaxonomyRequired
	}
	tx, err := taxonomy.Load(c.fs, path)
	if err != nil {
		return err //nolint:wrapcheck
	}
	tasks := 0
	for _, d := range tx.Domains {
		tasks += len(d.Tasks())
		if levels := d.EmptyLevels(); len(levels) > 0 {
			logE.WithFields(logrus.Fields{
				"domain":      d.Name,
				"empty_level": levels[0].String(),
			}).Warn("the domain has a level without tasks")
		}
	}
	logE.WithFields(logrus.Fields{
		"domains": len(tx.Domains),
		"tasks":   tasks,
	}).Debug("loaded the taxonomy")
	if err := taxonomy.Format(c.stdout, tx); err != nil {
		return fmt.Errorf("format the taxonomy: %w", err)
	}
	return nil
}

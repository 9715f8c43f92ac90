package extract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/suzuki-shunsuke/cimaturity/pkg/repository"
	"github.com/suzuki-shunsuke/cimaturity/pkg/workflow"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
	"golang.org/x/sync/errgroup"
)

var errCorpusRequired = errors.New("the corpus directory is required")

// Run extracts the corpus and writes the reports.
func (c *Controller) Run(ctx context.Context, logE *logrus.Entry) error {
	repos, err := c.repositories()
	if err != nil {
		return err
	}
	corpus, err := c.Extract(ctx, logE, repos)
	if err != nil {
		return err
	}
	if corpus.Invalid > 0 {
		logE.WithField("invalid_files", corpus.Invalid).Warn("some workflow files couldn't be parsed")
	}
	if err := c.writeFrequencies(corpus, len(repos)); err != nil {
		return err
	}
	if c.param.Clusters {
		if err := c.writeClusters(corpus); err != nil {
			return err
		}
	}
	if c.param.Output != "" {
		if err := c.save(corpus); err != nil {
			return err
		}
	}
	return nil
}

func (c *Controller) repositories() ([]string, error) {
	if c.cfg.Corpus == "" {
		return nil, errCorpusRequired
	}
	repos := c.param.Repositories
	if len(repos) == 0 {
		var err error
		repos, err = repository.Discover(c.fs, c.cfg.Corpus)
		if err != nil {
			return nil, fmt.Errorf("find repositories in the corpus directory: %w", err)
		}
	}
	filtered := make([]string, 0, len(repos))
	for _, repo := range repos {
		ignored, err := c.cfg.Ignored(repo)
		if err != nil {
			return nil, err //nolint:wrapcheck
		}
		if !ignored {
			filtered = append(filtered, repo)
		}
	}
	return filtered, nil
}

// Extract reads the workflow files of repositories concurrently.
// The result doesn't depend on the order in which repositories finish.
func (c *Controller) Extract(ctx context.Context, logE *logrus.Entry, repos []string) (*workflow.Corpus, error) {
	corpora := make([]*workflow.Corpus, len(repos))
	eg, ctx := errgroup.WithContext(ctx)
	if c.cfg.Parallelism > 0 {
		eg.SetLimit(c.cfg.Parallelism)
	}
	for i, repo := range repos {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err //nolint:wrapcheck
			}
			corpora[i] = c.extractRepo(logE.WithField("repository", repo), repo)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("extract actions: %w", err)
	}
	corpus := workflow.NewCorpus()
	for _, cp := range corpora {
		corpus.Merge(cp)
	}
	return corpus, nil
}

func (c *Controller) extractRepo(logE *logrus.Entry, repo string) *workflow.Corpus {
	corpus := workflow.NewCorpus()
	corpus.AddRepo(repo)
	files, err := repository.WorkflowFiles(c.fs, c.cfg.Corpus, repo)
	if err != nil {
		logerr.WithError(logE, err).Warn("skip a repository")
		return corpus
	}
	for _, file := range files {
		logE := logE.WithField("workflow_file", file)
		data, err := afero.ReadFile(c.fs, file)
		if err != nil {
			logerr.WithError(logE, err).Warn("read a workflow file")
			corpus.AddInvalid(repo)
			continue
		}
		occurrences, err := workflow.Extract(logE, filepath.Base(file), data)
		if err != nil {
			logerr.WithError(logE, err).Warn("parse a workflow file")
			corpus.AddInvalid(repo)
			continue
		}
		for _, o := range occurrences {
			corpus.Add(repo, o.Action, o.Metadata)
		}
	}
	return corpus
}

func (c *Controller) save(corpus *workflow.Corpus) error {
	f, err := c.fs.OpenFile(c.param.Output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644) //nolint:mnd
	if err != nil {
		return fmt.Errorf("open a corpus snapshot file: %w", err)
	}
	defer f.Close()
	if err := corpus.Save(f); err != nil {
		return logerr.WithFields(err, logrus.Fields{"output": c.param.Output}) //nolint:wrapcheck
	}
	return nil
}

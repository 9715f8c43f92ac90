package fetch

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/suzuki-shunsuke/cimaturity/pkg/github"
	"github.com/suzuki-shunsuke/cimaturity/pkg/repository"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
)

var (
	errCorpusRequired       = errors.New("the corpus directory is required")
	errRepositoriesRequired = errors.New("no repository is given")
)

const dirPermission = 0o755

// Fetch downloads the workflow files of each repository.
// A repository which isn't found is skipped, but a rate limit aborts the whole run
// because continuing would leave an incomplete corpus.
func (c *Controller) Fetch(ctx context.Context, logE *logrus.Entry) error {
	if c.cfg.Corpus == "" {
		return errCorpusRequired
	}
	repos := c.param.Repositories
	if len(repos) == 0 {
		var err error
		repos, err = repository.ReadLists(c.fs, c.cfg.Repositories)
		if err != nil {
			return fmt.Errorf("read repository lists: %w", err)
		}
	}
	if len(repos) == 0 {
		return errRepositoriesRequired
	}
	for _, repo := range repos {
		logE := logE.WithField("repository", repo)
		ignored, err := c.cfg.Ignored(repo)
		if err != nil {
			return err //nolint:wrapcheck
		}
		if ignored {
			logE.Debug("ignore a repository")
			continue
		}
		if err := c.fetchRepo(ctx, logE, repo); err != nil {
			if errors.Is(err, github.ErrRateLimited) {
				return logerr.WithFields(err, logrus.Fields{"repository": repo}) //nolint:wrapcheck
			}
			logerr.WithError(logE, err).Warn("fetch workflow files")
		}
	}
	return nil
}

func (c *Controller) fetchRepo(ctx context.Context, logE *logrus.Entry, repo string) error {
	owner, name, err := repository.Split(repo)
	if err != nil {
		return err //nolint:wrapcheck
	}
	dir := filepath.Join(c.cfg.Corpus, owner, name)
	if !c.param.Force {
		exists, err := afero.DirExists(c.fs, dir)
		if err != nil {
			return fmt.Errorf("check if the repository directory exists: %w", err)
		}
		if exists {
			logE.Debug("the repository has already been fetched")
			return nil
		}
	}
	paths, err := c.fetcher.ListWorkflows(ctx, owner, name)
	if err != nil {
		if errors.Is(err, github.ErrNotFound) {
			logE.Info("the repository has no workflow")
			return nil
		}
		return fmt.Errorf("list workflow files: %w", err)
	}
	// The directory marks the repository as fetched, so it is written only
	// after every file has been downloaded.
	files := make(map[string][]byte, len(paths))
	for _, p := range paths {
		data, err := c.fetcher.GetFile(ctx, owner, name, p)
		if err != nil {
			return logerr.WithFields(fmt.Errorf("get a workflow file: %w", err), logrus.Fields{ //nolint:wrapcheck
				"workflow_file": p,
			})
		}
		files[path.Base(p)] = data
	}
	if err := c.write(dir, files); err != nil {
		if rmErr := c.fs.RemoveAll(dir); rmErr != nil {
			logerr.WithError(logE, rmErr).Warn("remove an incomplete repository directory")
		}
		return err
	}
	logE.WithField("workflow_files", len(paths)).Info("fetched workflow files")
	return nil
}

func (c *Controller) write(dir string, files map[string][]byte) error {
	if err := c.fs.RemoveAll(dir); err != nil {
		return fmt.Errorf("remove an old repository directory: %w", err)
	}
	if err := c.fs.MkdirAll(dir, dirPermission); err != nil {
		return fmt.Errorf("create a repository directory: %w", err)
	}
	for name, data := range files {
		if err := afero.WriteFile(c.fs, filepath.Join(dir, name), data, 0o644); err != nil { //nolint:mnd
			return logerr.WithFields(fmt.Errorf("write a workflow file: %w", err), logrus.Fields{ //nolint:wrapcheck
				"workflow_file": name,
			})
		}
	}
	return nil
}

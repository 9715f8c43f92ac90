package scorecard

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/cimaturity/pkg/action"
	"github.com/suzuki-shunsuke/cimaturity/pkg/plugins"
	"github.com/suzuki-shunsuke/cimaturity/pkg/repository"
	"github.com/suzuki-shunsuke/cimaturity/pkg/score"
	"github.com/suzuki-shunsuke/cimaturity/pkg/taxonomy"
	"github.com/suzuki-shunsuke/cimaturity/pkg/workflow"
)

var (
	errTaxonomyRequired = errors.New("the taxonomy file is required")
	errInvalidFormat    = errors.New("format must be text, json, or sarif")
	errCorpusRequired   = errors.New("either a corpus file or the corpus directory is required")
)

// Result is the scorecard of a repository.
type Result struct {
	Report *score.Report
	Levels []*score.DomainLevel
	Todos  []*score.Todo
}

func (c *Controller) Run(ctx context.Context, logE *logrus.Entry) error {
	switch c.param.Format {
	case "", FormatText, FormatJSON, FormatSARIF:
	default:
		return errInvalidFormat
	}
	if c.cfg.Taxonomy == "" {
		return errTaxonomyRequired
	}
	tx, err := taxonomy.Load(c.fs, c.cfg.Taxonomy)
	if err != nil {
		return fmt.Errorf("read the taxonomy: %w", err)
	}
	warnEmptyLevels(logE, tx)
	ds, err := plugins.Load(c.fs, c.cfg.Plugins)
	if err != nil {
		return err //nolint:wrapcheck
	}
	repos, err := c.repositories()
	if err != nil {
		return err
	}
	listed := len(repos) > 0
	repos, err = c.filter(repos)
	if err != nil {
		return err
	}
	corpus, err := c.corpus(ctx, logE, repos, listed)
	if err != nil {
		return err
	}
	if !listed {
		repos, err = c.filter(corpus.RepoNames())
		if err != nil {
			return err
		}
	}

	matcher := score.NewMatcher(tx, ds)
	results := make([]*Result, 0, len(repos))
	for _, repo := range repos {
		if _, ok := corpus.Repos[repo]; !ok {
			logE.WithField("repository", repo).Warn("the repository isn't found in the corpus")
		}
		results = append(results, c.score(matcher, repo, corpus.Repos[repo]))
	}

	switch c.param.Format {
	case FormatJSON:
		return c.writeJSON(results)
	case FormatSARIF:
		return c.writeSARIF(tx, results)
	}
	c.printer.Results(results)
	c.printer.Tally(tx, score.NewTally(reports(results)))
	if c.param.Unused {
		c.printer.Unused(matcher.Unused())
	}
	return nil
}

func (c *Controller) score(matcher *score.Matcher, repo string, actions []action.Action) *Result {
	report := matcher.Match(repo, actions)
	levels := score.Maturity(report)
	if c.param.Joker || c.cfg.Joker {
		score.Joker(report, levels)
	}
	r := &Result{Report: report, Levels: levels}
	if c.param.Todo != 0 {
		r.Todos = score.Recommend(report, levels, c.param.Todo)
	}
	return r
}

func warnEmptyLevels(logE *logrus.Entry, tx *taxonomy.Taxonomy) {
	for _, domain := range tx.Domains {
		if levels := domain.EmptyLevels(); len(levels) > 0 {
			logE.WithFields(logrus.Fields{
				"domain":       domain.Name,
				"empty_level":  levels[0].String(),
				"empty_levels": len(levels),
			}).Warn("the domain has a level without tasks, so its maturity can't reach the level")
		}
	}
}

func reports(results []*Result) []*score.Report {
	rs := make([]*score.Report, len(results))
	for i, r := range results {
		rs[i] = r.Report
	}
	return rs
}

func (c *Controller) repositories() ([]string, error) {
	if len(c.param.Repositories) != 0 {
		return c.param.Repositories, nil
	}
	repos, err := repository.ReadLists(c.fs, c.cfg.Repositories)
	if err != nil {
		return nil, fmt.Errorf("read repository lists: %w", err)
	}
	return repos, nil
}

func (c *Controller) filter(repos []string) ([]string, error) {
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

// corpus reads the snapshot if given. Otherwise it extracts the listed repositories,
// or every repository in the corpus directory if no repository is listed.
func (c *Controller) corpus(ctx context.Context, logE *logrus.Entry, repos []string, listed bool) (*workflow.Corpus, error) {
	if c.param.CorpusFile == "" {
		if c.cfg.Corpus == "" {
			return nil, errCorpusRequired
		}
		if !listed {
			found, err := repository.Discover(c.fs, c.cfg.Corpus)
			if err != nil {
				return nil, fmt.Errorf("find repositories in the corpus directory: %w", err)
			}
			repos, err = c.filter(found)
			if err != nil {
				return nil, err
			}
		}
		corpus, err := c.extractor.Extract(ctx, logE, repos)
		if err != nil {
			return nil, fmt.Errorf("extract actions from the corpus directory: %w", err)
		}
		return corpus, nil
	}
	f, err := c.fs.Open(c.param.CorpusFile)
	if err != nil {
		return nil, fmt.Errorf("open a corpus snapshot: %w", err)
	}
	defer f.Close()
	corpus, err := workflow.LoadCorpus(f)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return corpus, nil
}

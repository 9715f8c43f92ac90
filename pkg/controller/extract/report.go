package extract

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/hashicorp/go-version"
	"github.com/suzuki-shunsuke/cimaturity/pkg/action"
	"github.com/suzuki-shunsuke/cimaturity/pkg/cluster"
	"github.com/suzuki-shunsuke/cimaturity/pkg/workflow"
)

// Frequency is how many repositories use an action.
type Frequency struct {
	Action action.Action
	Repos  int
	// LatestRef is the newest semantic version ref of a Uses action.
	LatestRef string
}

// Frequencies returns the actions used by more than one repository, most used first.
// Actions used by the same number of repositories are ordered by their string form.
func Frequencies(corpus *workflow.Corpus) []*Frequency {
	freqs := []*Frequency{}
	for a, repos := range corpus.Actions {
		if len(repos) <= 1 {
			continue
		}
		f := &Frequency{Action: a, Repos: len(repos)}
		if a.Kind() == action.KindUses {
			f.LatestRef = latestRef(repos)
		}
		freqs = append(freqs, f)
	}
	slices.SortFunc(freqs, func(a, b *Frequency) int {
		if c := cmp.Compare(b.Repos, a.Repos); c != 0 {
			return c
		}
		return cmp.Compare(a.Action.String(), b.Action.String())
	})
	return freqs
}

// latestRef returns the newest ref which is a semantic version. Other refs such as branches are ignored.
func latestRef(repos map[string][]*action.Metadata) string {
	var latest *version.Version
	ref := ""
	for _, metas := range repos {
		for _, meta := range metas {
			if meta == nil || meta.Ref == "" {
				continue
			}
			v, err := version.NewVersion(meta.Ref)
			if err != nil {
				continue
			}
			if latest == nil || v.GreaterThan(latest) || (v.Equal(latest) && meta.Ref < ref) {
				latest = v
				ref = meta.Ref
			}
		}
	}
	return ref
}

func (c *Controller) writeFrequencies(corpus *workflow.Corpus, total int) error {
	for _, f := range Frequencies(corpus) {
		line := fmt.Sprintf("%s [%d/%d]", f.Action, f.Repos, total)
		if f.LatestRef != "" {
			line += " latest: " + f.LatestRef
		}
		if _, err := fmt.Fprintln(c.stdout, line); err != nil {
			return fmt.Errorf("write the action frequencies: %w", err)
		}
	}
	return nil
}

func (c *Controller) writeClusters(corpus *workflow.Corpus) error {
	for _, cl := range cluster.Build(corpus.Usages(), c.cfg.ClusterThreshold) {
		if _, err := fmt.Fprintf(c.stdout, "\nCluster based on %s:\n", cl.Key); err != nil {
			return fmt.Errorf("write clusters: %w", err)
		}
		for _, member := range cl.Members {
			if _, err := fmt.Fprintf(c.stdout, "  - %s\n", member); err != nil {
				return fmt.Errorf("write clusters: %w", err)
			}
		}
	}
	return nil
}

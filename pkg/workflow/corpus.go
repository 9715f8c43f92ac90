package workflow

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/suzuki-shunsuke/cimaturity/pkg/action"
)

// Corpus aggregates the action occurrences of many repositories.
type Corpus struct {
	// Actions maps an action to the repositories using it and where they use it.
	Actions map[action.Action]map[string][]*action.Metadata
	// Repos maps a repository to its actions in extraction order.
	// Invalid files aren't listed here.
	Repos map[string][]action.Action
	// Invalid is the number of files which couldn't be parsed.
	Invalid int
}

func NewCorpus() *Corpus {
	return &Corpus{
		Actions: map[action.Action]map[string][]*action.Metadata{},
		Repos:   map[string][]action.Action{},
	}
}

func (c *Corpus) Add(repo string, a action.Action, meta *action.Metadata) {
	repos, ok := c.Actions[a]
	if !ok {
		repos = map[string][]*action.Metadata{}
		c.Actions[a] = repos
	}
	repos[repo] = append(repos[repo], meta)
	c.Repos[repo] = append(c.Repos[repo], a)
}

// AddRepo registers a repository without actions.
func (c *Corpus) AddRepo(repo string) {
	if _, ok := c.Repos[repo]; !ok {
		c.Repos[repo] = []action.Action{}
	}
}

// AddInvalid records a file of the repository which couldn't be parsed.
func (c *Corpus) AddInvalid(repo string) {
	repos, ok := c.Actions[action.Invalid()]
	if !ok {
		repos = map[string][]*action.Metadata{}
		c.Actions[action.Invalid()] = repos
	}
	repos[repo] = append(repos[repo], nil)
	c.Invalid++
}

// Merge adds all occurrences of other.
func (c *Corpus) Merge(other *Corpus) {
	for a, repos := range other.Actions {
		dst, ok := c.Actions[a]
		if !ok {
			dst = map[string][]*action.Metadata{}
			c.Actions[a] = dst
		}
		for repo, metas := range repos {
			dst[repo] = append(dst[repo], metas...)
		}
	}
	for repo, actions := range other.Repos {
		c.Repos[repo] = append(c.Repos[repo], actions...)
	}
	c.Invalid += other.Invalid
}

// RepoNames returns the repositories in lexical order.
func (c *Corpus) RepoNames() []string {
	return slices.Sorted(maps.Keys(c.Repos))
}

// Usages maps each action to the sorted repositories using it.
func (c *Corpus) Usages() map[action.Action][]string {
	usages := make(map[action.Action][]string, len(c.Actions))
	for a, repos := range c.Actions {
		usages[a] = slices.Sorted(maps.Keys(repos))
	}
	return usages
}

type snapshot struct {
	Repositories map[string][]action.Action `json:"repositories"`
	Invalid      int                        `json:"invalid,omitempty"`
}

// Save writes the repositories and their actions as JSON.
// Metadata isn't saved.
func (c *Corpus) Save(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(&snapshot{Repositories: c.Repos, Invalid: c.Invalid}); err != nil {
		return fmt.Errorf("encode a corpus as JSON: %w", err)
	}
	return nil
}

// LoadCorpus reads a corpus written by Save.
func LoadCorpus(r io.Reader) (*Corpus, error) {
	s := &snapshot{}
	if err := json.NewDecoder(r).Decode(s); err != nil {
		return nil, fmt.Errorf("decode a corpus snapshot: %w", err)
	}
	c := NewCorpus()
	for repo, actions := range s.Repositories {
		c.AddRepo(repo)
		for _, a := range actions {
			c.Add(repo, a, nil)
		}
	}
	c.Invalid = s.Invalid
	return c, nil
}

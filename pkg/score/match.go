// Package score matches a repository's observed actions against a taxonomy
// and derives per-domain maturity levels from the result.
//
// Nothing in this package mutates the taxonomy. Every scoring pass returns
// fresh values, so reports of different repositories can be computed concurrently.
package score

import (
	"strings"
	"sync"

	"github.com/suzuki-shunsuke/cimaturity/pkg/action"
	"github.com/suzuki-shunsuke/cimaturity/pkg/taxonomy"
)

type Status string

const (
	Yes Status = "Yes"
	No  Status = "No"
)

type TaskResult struct {
	Task      *taxonomy.Task
	Satisfied bool
}

func (r *TaskResult) Status() Status {
	if r.Satisfied {
		return Yes
	}
	return No
}

type SubdomainResult struct {
	Subdomain *taxonomy.Subdomain
	Tasks     []*TaskResult
}

// Satisfied reports whether at least one task of the subdomain is satisfied.
func (r *SubdomainResult) Satisfied() bool {
	for _, task := range r.Tasks {
		if task.Satisfied {
			return true
		}
	}
	return false
}

type DomainResult struct {
	Domain     *taxonomy.Domain
	Subdomains []*SubdomainResult
}

func (r *DomainResult) Satisfied() bool {
	for _, sub := range r.Subdomains {
		if sub.Satisfied() {
			return true
		}
	}
	return false
}

// Tasks returns the results of the tasks at the given level in outline order.
func (r *DomainResult) Tasks(level taxonomy.Level) []*TaskResult {
	tasks := []*TaskResult{}
	for _, sub := range r.Subdomains {
		for _, task := range sub.Tasks {
			if task.Task.Level == level {
				tasks = append(tasks, task)
			}
		}
	}
	return tasks
}

// Report is the Domain -> Subdomain -> Task table of a repository.
// The order of the taxonomy is kept.
type Report struct {
	Repo    string
	Domains []*DomainResult
}

// Matcher matches repositories against a taxonomy.
// It also records the task instances observed in any matched repository.
type Matcher struct {
	taxonomy *taxonomy.Taxonomy
	plugins  map[string][]string
	mutex    sync.Mutex
	observed map[action.Action]struct{}
}

// NewMatcher returns a Matcher. plugins maps a lower cased repository name
// to the names of the build plugins the repository uses.
func NewMatcher(tx *taxonomy.Taxonomy, plugins map[string][]string) *Matcher {
	return &Matcher{
		taxonomy: tx,
		plugins:  plugins,
		observed: map[action.Action]struct{}{},
	}
}

// Match returns the report of a repository.
// A task is satisfied if any of its instances is in actions or is a plugin the repository uses.
// The order of actions doesn't matter.
func (m *Matcher) Match(repo string, actions []action.Action) *Report {
	set := make(map[action.Action]struct{}, len(actions))
	for _, a := range actions {
		set[a] = struct{}{}
	}
	for _, name := range m.plugins[strings.ToLower(repo)] {
		set[action.Plugin(name)] = struct{}{}
	}

	report := &Report{
		Repo:    repo,
		Domains: make([]*DomainResult, 0, len(m.taxonomy.Domains)),
	}
	observed := []action.Action{}
	for _, domain := range m.taxonomy.Domains {
		dr := &DomainResult{
			Domain:     domain,
			Subdomains: make([]*SubdomainResult, 0, len(domain.Subdomains)),
		}
		for _, sub := range domain.Subdomains {
			sr := &SubdomainResult{
				Subdomain: sub,
				Tasks:     make([]*TaskResult, 0, len(sub.Tasks)),
			}
			for _, task := range sub.Tasks {
				for _, instance := range task.Instances {
					if _, ok := set[instance]; ok {
						observed = append(observed, instance)
					}
				}
				sr.Tasks = append(sr.Tasks, &TaskResult{
					Task:      task,
					Satisfied: task.SatisfiedBy(set),
				})
			}
			dr.Subdomains = append(dr.Subdomains, sr)
		}
		report.Domains = append(report.Domains, dr)
	}

	m.mutex.Lock()
	for _, a := range observed {
		m.observed[a] = struct{}{}
	}
	m.mutex.Unlock()
	return report
}

// UnusedInstances are the instances of a task which weren't observed in any matched repository.
type UnusedInstances struct {
	Task      *taxonomy.Task
	Instances []action.Action
}

// Unused returns the tasks having instances never observed by Match, in taxonomy order.
func (m *Matcher) Unused() []*UnusedInstances {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	unused := []*UnusedInstances{}
	for _, domain := range m.taxonomy.Domains {
		for _, task := range domain.Tasks() {
			var instances []action.Action
			for _, instance := range task.Instances {
				if _, ok := m.observed[instance]; !ok {
					instances = append(instances, instance)
				}
			}
			if len(instances) > 0 {
				unused = append(unused, &UnusedInstances{Task: task, Instances: instances})
			}
		}
	}
	return unused
}

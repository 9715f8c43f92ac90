// Package taxonomy defines the Domain -> Subdomain -> Task hierarchy of
// recognized automation practices. A Taxonomy is loaded once from an outline
// document and is not modified afterwards; scoring passes keep their own
// counters keyed by the nodes defined here.
package taxonomy

import (
	"errors"
	"strings"

	"github.com/suzuki-shunsuke/cimaturity/pkg/action"
)

type Level int

const (
	None Level = iota
	Basic
	Intermediate
	Advanced
)

// Levels are the task levels in ascending order.
var Levels = []Level{Basic, Intermediate, Advanced} //nolint:gochecknoglobals

var ErrInvalidLevel = errors.New("level must be basic, intermediate, or advanced")

func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "basic":
		return Basic, nil
	case "intermediate":
		return Intermediate, nil
	case "advanced":
		return Advanced, nil
	default:
		return None, ErrInvalidLevel
	}
}

func (l Level) String() string {
	switch l {
	case Basic:
		return "Basic"
	case Intermediate:
		return "Intermediate"
	case Advanced:
		return "Advanced"
	default:
		return "None"
	}
}

// Keyword returns the lower case form used in outlines.
func (l Level) Keyword() string {
	return strings.ToLower(l.String())
}

// Next returns the following level. Advanced has no following level and is returned as is.
func (l Level) Next() Level {
	if l >= Advanced {
		return Advanced
	}
	return l + 1
}

func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

type Task struct {
	Name string
	// Instances are the qualifying actions. Any one of them satisfies the task.
	Instances []action.Action
	Level     Level
	// Frequency is the observed prevalence in percent.
	Frequency int
}

// SatisfiedBy reports whether any instance of the task is in the set.
func (t *Task) SatisfiedBy(actions map[action.Action]struct{}) bool {
	for _, instance := range t.Instances {
		if _, ok := actions[instance]; ok {
			return true
		}
	}
	return false
}

type Subdomain struct {
	Name        string
	Description string
	Tasks       []*Task
}

type Domain struct {
	Name        string
	Description string
	Subdomains  []*Subdomain
}

// Tasks returns all tasks of the domain in outline order.
func (d *Domain) Tasks() []*Task {
	tasks := []*Task{}
	for _, sub := range d.Subdomains {
		tasks = append(tasks, sub.Tasks...)
	}
	return tasks
}

// EmptyLevels returns the levels which have no task.
// Maturity never reaches the first of them.
func (d *Domain) EmptyLevels() []Level {
	levels := []Level{}
	for _, l := range Levels {
		found := false
		for _, task := range d.Tasks() {
			if task.Level == l {
				found = true
				break
			}
		}
		if !found {
			levels = append(levels, l)
		}
	}
	return levels
}

// Taxonomy keeps domains in the order they were defined.
// That order is the tie-break order wherever one is needed.
type Taxonomy struct {
	Domains []*Domain
}

func (t *Taxonomy) Domain(name string) *Domain {
	for _, d := range t.Domains {
		if d.Name == name {
			return d
		}
	}
	return nil
}

package score

import (
	"cmp"
	"slices"

	"github.com/suzuki-shunsuke/cimaturity/pkg/taxonomy"
)

type Todo struct {
	Domain *taxonomy.Domain
	Task   *taxonomy.Task
}

// Recommend returns up to limit unsatisfied tasks at levels above the maturity of their domain.
// Lower levels come first and tasks at the same level are ordered by frequency, highest first.
// A negative limit returns all of them.
func Recommend(report *Report, levels []*DomainLevel, limit int) []*Todo {
	todos := []*Todo{}
	for i, domain := range report.Domains {
		maturity := levels[i].Level
		for _, sub := range domain.Subdomains {
			for _, task := range sub.Tasks {
				if task.Satisfied || task.Task.Level <= maturity {
					continue
				}
				todos = append(todos, &Todo{Domain: domain.Domain, Task: task.Task})
			}
		}
	}
	slices.SortStableFunc(todos, func(a, b *Todo) int {
		if c := cmp.Compare(a.Task.Level, b.Task.Level); c != 0 {
			return c
		}
		return cmp.Compare(b.Task.Frequency, a.Task.Frequency)
	})
	if limit >= 0 && len(todos) > limit {
		todos = todos[:limit]
	}
	return todos
}

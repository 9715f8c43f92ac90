package score

import "github.com/suzuki-shunsuke/cimaturity/pkg/taxonomy"

// Tally counts the repositories satisfying each taxonomy node.
// A subdomain counts when at least one of its tasks is satisfied,
// and a domain counts when at least one of its subdomains does.
type Tally struct {
	Repos      int
	Tasks      map[*taxonomy.Task]int
	Subdomains map[*taxonomy.Subdomain]int
	Domains    map[*taxonomy.Domain]int
}

func NewTally(reports []*Report) *Tally {
	tally := &Tally{
		Tasks:      map[*taxonomy.Task]int{},
		Subdomains: map[*taxonomy.Subdomain]int{},
		Domains:    map[*taxonomy.Domain]int{},
	}
	for _, report := range reports {
		tally.Add(report)
	}
	return tally
}

// Add counts a report. It isn't safe for concurrent use.
func (t *Tally) Add(report *Report) {
	t.Repos++
	for _, domain := range report.Domains {
		if domain.Satisfied() {
			t.Domains[domain.Domain]++
		}
		for _, sub := range domain.Subdomains {
			if sub.Satisfied() {
				t.Subdomains[sub.Subdomain]++
			}
			for _, task := range sub.Tasks {
				if task.Satisfied {
					t.Tasks[task.Task]++
				}
			}
		}
	}
}

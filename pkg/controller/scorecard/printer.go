package scorecard

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/suzuki-shunsuke/cimaturity/pkg/score"
	"github.com/suzuki-shunsuke/cimaturity/pkg/taxonomy"
)

type colorFunc func(a ...any) string

// Printer writes scorecards as text.
type Printer struct {
	stdout io.Writer
	red    colorFunc
	green  colorFunc
	bold   colorFunc
}

func NewPrinter(stdout io.Writer) *Printer {
	return &Printer{
		stdout: stdout,
		red:    color.New(color.FgRed).SprintFunc(),
		green:  color.New(color.FgGreen).SprintFunc(),
		bold:   color.New(color.Bold).SprintFunc(),
	}
}

func (p *Printer) status(s score.Status) string {
	if s == score.Yes {
		return p.green("Yes")
	}
	return p.red("No ")
}

func (p *Printer) Results(results []*Result) {
	for _, r := range results {
		p.result(r)
	}
}

func (p *Printer) result(r *Result) {
	fmt.Fprintf(p.stdout, "%s (lowest: %s, average: %.2f)\n",
		p.bold(r.Report.Repo), score.Lowest(r.Levels), score.Average(r.Levels))
	for i, domain := range r.Report.Domains {
		level := r.Levels[i]
		joker := ""
		if level.Joker {
			joker = " (joker)"
		}
		fmt.Fprintf(p.stdout, "  %s: %s%s\n", domain.Domain.Name, level.Level, joker)
		for _, sub := range domain.Subdomains {
			fmt.Fprintf(p.stdout, "    %s\n", sub.Subdomain.Name)
			for _, task := range sub.Tasks {
				fmt.Fprintf(p.stdout, "      %s %s (%s)\n", p.status(task.Status()), task.Task.Name, task.Task.Level.Keyword())
			}
		}
	}
	if len(r.Todos) > 0 {
		fmt.Fprintln(p.stdout, "  Next steps:")
		for _, todo := range r.Todos {
			fmt.Fprintf(p.stdout, "    - Implement %s (%s); implemented by %d%% of GitHub repositories\n",
				todo.Task.Name, todo.Domain.Name, todo.Task.Frequency)
		}
	}
	fmt.Fprintln(p.stdout)
}

// Tally writes how many repositories satisfy each domain, subdomain, and task.
func (p *Printer) Tally(tx *taxonomy.Taxonomy, tally *score.Tally) {
	for _, domain := range tx.Domains {
		fmt.Fprintf(p.stdout, "%s [%d/%d]\n", p.bold(domain.Name), tally.Domains[domain], tally.Repos)
		for _, sub := range domain.Subdomains {
			fmt.Fprintf(p.stdout, "  %s [%d/%d]\n", sub.Name, tally.Subdomains[sub], tally.Repos)
			for _, task := range sub.Tasks {
				fmt.Fprintf(p.stdout, "   - %s [%d/%d]\n", task.Name, tally.Tasks[task], tally.Repos)
			}
		}
	}
}

func (p *Printer) Unused(unused []*score.UnusedInstances) {
	for _, u := range unused {
		names := make([]string, len(u.Instances))
		for i, instance := range u.Instances {
			names[i] = instance.String()
		}
		fmt.Fprintf(p.stdout, "Task '%s' has unused actions: %s\n", u.Task.Name, strings.Join(names, ", "))
	}
}

package scorecard

import (
	"encoding/json"
	"fmt"

	"github.com/suzuki-shunsuke/cimaturity/pkg/score"
	"github.com/suzuki-shunsuke/cimaturity/pkg/taxonomy"
)

type jsonResult struct {
	Repository string         `json:"repository"`
	Lowest     taxonomy.Level `json:"lowest"`
	Average    float64        `json:"average"`
	Domains    []*jsonDomain  `json:"domains"`
	Todos      []*jsonTodo    `json:"todos,omitempty"`
}

type jsonDomain struct {
	Name       string           `json:"name"`
	Level      taxonomy.Level   `json:"level"`
	Joker      bool             `json:"joker,omitempty"`
	Subdomains []*jsonSubdomain `json:"subdomains"`
}

type jsonSubdomain struct {
	Name  string      `json:"name"`
	Tasks []*jsonTask `json:"tasks"`
}

type jsonTask struct {
	Name      string         `json:"name"`
	Level     taxonomy.Level `json:"level"`
	Frequency int            `json:"frequency"`
	Status    score.Status   `json:"status"`
}

type jsonTodo struct {
	Domain    string         `json:"domain"`
	Task      string         `json:"task"`
	Level     taxonomy.Level `json:"level"`
	Frequency int            `json:"frequency"`
}

func newJSONResult(r *Result) *jsonResult {
	jr := &jsonResult{
		Repository: r.Report.Repo,
		Lowest:     score.Lowest(r.Levels),
		Average:    score.Average(r.Levels),
		Domains:    make([]*jsonDomain, len(r.Report.Domains)),
	}
	for i, domain := range r.Report.Domains {
		jd := &jsonDomain{
			Name:       domain.Domain.Name,
			Level:      r.Levels[i].Level,
			Joker:      r.Levels[i].Joker,
			Subdomains: make([]*jsonSubdomain, len(domain.Subdomains)),
		}
		for j, sub := range domain.Subdomains {
			js := &jsonSubdomain{Name: sub.Subdomain.Name, Tasks: make([]*jsonTask, len(sub.Tasks))}
			for k, task := range sub.Tasks {
				js.Tasks[k] = &jsonTask{
					Name:      task.Task.Name,
					Level:     task.Task.Level,
					Frequency: task.Task.Frequency,
					Status:    task.Status(),
				}
			}
			jd.Subdomains[j] = js
		}
		jr.Domains[i] = jd
	}
	for _, todo := range r.Todos {
		jr.Todos = append(jr.Todos, &jsonTodo{
			Domain:    todo.Domain.Name,
			Task:      todo.Task.Name,
			Level:     todo.Task.Level,
			Frequency: todo.Task.Frequency,
		})
	}
	return jr
}

func (c *Controller) writeJSON(results []*Result) error {
	jrs := make([]*jsonResult, len(results))
	for i, r := range results {
		jrs[i] = newJSONResult(r)
	}
	encoder := json.NewEncoder(c.stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(jrs); err != nil {
		return fmt.Errorf("encode the scorecards as JSON: %w", err)
	}
	return nil
}

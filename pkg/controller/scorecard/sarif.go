package scorecard

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/suzuki-shunsuke/cimaturity/pkg/sarif"
	"github.com/suzuki-shunsuke/cimaturity/pkg/taxonomy"
)

func ruleID(task *taxonomy.Task) string {
	return strings.ToLower(strings.Join(strings.Fields(task.Name), "-"))
}

func sarifRules(tx *taxonomy.Taxonomy) []sarif.Rule {
	rules := []sarif.Rule{}
	seen := map[string]struct{}{}
	for _, domain := range tx.Domains {
		for _, sub := range domain.Subdomains {
			for _, task := range sub.Tasks {
				id := ruleID(task)
				if _, ok := seen[id]; ok {
					continue
				}
				seen[id] = struct{}{}
				rule := sarif.Rule{
					ID:               id,
					ShortDescription: sarif.Message{Text: task.Name},
				}
				if sub.Description != "" {
					rule.FullDescription = &sarif.Message{Text: sub.Description}
				}
				rules = append(rules, rule)
			}
		}
	}
	return rules
}

// sarifResults reports the unsatisfied tasks of a repository.
// Tasks at the level right above the domain's maturity are warnings and the others are notes.
func sarifResults(r *Result) []sarif.Result {
	results := []sarif.Result{}
	for i, domain := range r.Report.Domains {
		maturity := r.Levels[i].Level
		for _, sub := range domain.Subdomains {
			for _, task := range sub.Tasks {
				if task.Satisfied {
					continue
				}
				level := "note"
				if task.Task.Level == maturity+1 {
					level = "warning"
				}
				results = append(results, sarif.Result{
					RuleID: ruleID(task.Task),
					Level:  level,
					Message: sarif.Message{
						Text: fmt.Sprintf("%s doesn't implement %s (%s); implemented by %d%% of GitHub repositories",
							r.Report.Repo, task.Task.Name, task.Task.Level.Keyword(), task.Task.Frequency),
					},
					Locations: []sarif.Location{
						{
							PhysicalLocation: sarif.PhysicalLocation{
								ArtifactLocation: sarif.ArtifactLocation{URI: ".github/workflows"},
							},
						},
					},
					Properties: &sarif.Properties{
						Domain:      domain.Domain.Name,
						Subdomain:   sub.Subdomain.Name,
						TaskLevel:   task.Task.Level.String(),
						DomainLevel: maturity.String(),
						Frequency:   task.Task.Frequency,
					},
				})
			}
		}
	}
	return results
}

func (c *Controller) writeSARIF(tx *taxonomy.Taxonomy, results []*Result) error {
	rules := sarifRules(tx)
	log := sarif.Log{
		Schema:  sarif.Schema,
		Version: sarif.Version,
		Runs:    make([]sarif.Run, len(results)),
	}
	for i, r := range results {
		log.Runs[i] = sarif.Run{
			Tool: sarif.Tool{
				Driver: sarif.Driver{
					Name:           "cimaturity",
					InformationURI: "https://github.com/suzuki-shunsuke/cimaturity",
					Version:        c.param.Version,
					Rules:          rules,
				},
			},
			VersionControlProvenance: []sarif.VersionControlDetails{
				{RepositoryURI: "https://github.com/" + r.Report.Repo},
			},
			Results: sarifResults(r),
		}
	}
	encoder := json.NewEncoder(c.stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(log); err != nil {
		return fmt.Errorf("encode SARIF: %w", err)
	}
	return nil
}

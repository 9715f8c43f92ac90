package score_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/suzuki-shunsuke/cimaturity/pkg/action"
	"github.com/suzuki-shunsuke/cimaturity/pkg/score"
	"github.com/suzuki-shunsuke/cimaturity/pkg/taxonomy"
)

const outline = `# Testing
## Unit
- Unit tests; 80; basic; Runs mvn test, Runs pytest
- Coverage; 40; intermediate; Uses codecov/codecov-action, jacoco-maven-plugin
## Mutation
- Mutation tests; 5; advanced; Runs mvn pitest

# Release
## Publish
- Tag; 60; basic; Runs git tag
- Publish package; 30; intermediate; Runs twine upload, Uses pypa/gh-action-pypi-publish
- Sign; 10; intermediate; Uses sigstore/gh-action-sigstore-python
- SBOM; 5; advanced; Uses anchore/sbom-action

# Security
## Scanning
- CodeQL; 30; basic; Uses github/codeql-action/analyze
- Secret scan; 20; advanced; Uses gitleaks/gitleaks-action
`

func newTaxonomy(t *testing.T) *taxonomy.Taxonomy {
	t.Helper()
	tx, err := taxonomy.Parse(strings.NewReader(outline))
	if err != nil {
		t.Fatal(err)
	}
	return tx
}

func levelNames(levels []*score.DomainLevel) []string {
	names := make([]string, len(levels))
	for i, dl := range levels {
		names[i] = dl.Domain.Name + ":" + dl.Level.String()
	}
	return names
}

func TestMatcher_Match(t *testing.T) {
	t.Parallel()
	tx := newTaxonomy(t)
	m := score.NewMatcher(tx, map[string][]string{"foo/bar": {"jacoco-maven-plugin"}})
	report := m.Match("foo/bar", []action.Action{
		action.Run("mvn test -B"),
		action.Uses("actions/checkout@v4"),
		action.Run("mvn test"),
	})
	got := map[string]score.Status{}
	for _, domain := range report.Domains {
		for _, sub := range domain.Subdomains {
			for _, task := range sub.Tasks {
				got[task.Task.Name] = task.Status()
			}
		}
	}
	exp := map[string]score.Status{
		"Unit tests":      score.Yes,
		"Coverage":        score.Yes,
		"Mutation tests":  score.No,
		"Tag":             score.No,
		"Publish package": score.No,
		"Sign":            score.No,
		"SBOM":            score.No,
		"CodeQL":          score.No,
		"Secret scan":     score.No,
	}
	if diff := cmp.Diff(exp, got); diff != "" {
		t.Fatal(diff)
	}
	if report.Domains[0].Domain.Name != "Testing" || report.Domains[2].Domain.Name != "Security" {
		t.Fatal("the taxonomy order must be kept")
	}

	unused := m.Unused()
	if unused[0].Task.Name != "Unit tests" {
		t.Fatalf("wanted Unit tests first, got %s", unused[0].Task.Name)
	}
	if diff := cmp.Diff([]string{"pytest"}, []string{unused[0].Instances[0].Value()}); diff != "" {
		t.Fatal(diff)
	}
	for _, u := range unused {
		if u.Task.Name == "Coverage" {
			if len(u.Instances) != 1 || u.Instances[0] != action.Uses("codecov/codecov-action") {
				t.Fatalf("only codecov must be unused, got %v", u.Instances)
			}
		}
	}
}

func TestMaturity(t *testing.T) {
	t.Parallel()
	tx := newTaxonomy(t)
	data := []struct {
		name    string
		actions []action.Action
		exp     []string
	}{
		{
			name: "nothing",
			exp:  []string{"Testing:None", "Release:None", "Security:None"},
		},
		{
			name: "basic and intermediate",
			actions: []action.Action{
				action.Run("pytest"), action.Uses("codecov/codecov-action@v5"),
				action.Run("git tag v1"), action.Run("twine upload dist/*"), action.Uses("sigstore/gh-action-sigstore-python"),
			},
			exp: []string{"Testing:Intermediate", "Release:Intermediate", "Security:None"},
		},
		{
			name: "advanced needs the lower levels",
			actions: []action.Action{
				action.Run("mvn pitest"), action.Uses("anchore/sbom-action"),
			},
			exp: []string{"Testing:None", "Release:None", "Security:None"},
		},
		{
			name: "level without tasks stops the scan",
			actions: []action.Action{
				action.Uses("github/codeql-action/analyze@v3"), action.Uses("gitleaks/gitleaks-action@v2"),
			},
			exp: []string{"Testing:None", "Release:None", "Security:Basic"},
		},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			report := score.NewMatcher(tx, nil).Match("foo/bar", d.actions)
			if diff := cmp.Diff(d.exp, levelNames(score.Maturity(report))); diff != "" {
				t.Fatal(diff)
			}
		})
	}
}

func TestMaturity_monotonic(t *testing.T) {
	t.Parallel()
	tx := newTaxonomy(t)
	all := []action.Action{
		action.Run("pytest"), action.Uses("codecov/codecov-action"), action.Run("mvn pitest"),
		action.Run("git tag"), action.Run("twine upload"), action.Uses("sigstore/gh-action-sigstore-python"),
		action.Uses("anchore/sbom-action"), action.Uses("github/codeql-action/analyze"),
	}
	m := score.NewMatcher(tx, nil)
	prev := score.Maturity(m.Match("foo/bar", nil))
	for i := range all {
		cur := score.Maturity(m.Match("foo/bar", all[:i+1]))
		for j := range cur {
			if cur[j].Level < prev[j].Level {
				t.Fatalf("%s decreased from %s to %s", cur[j].Domain.Name, prev[j].Level, cur[j].Level)
			}
		}
		prev = cur
	}
}

func TestJoker(t *testing.T) {
	t.Parallel()
	tx := newTaxonomy(t)
	data := []struct {
		name    string
		actions []action.Action
		exp     []string
	}{
		{
			name:    "first lowest domain wins ties",
			actions: []action.Action{action.Uses("github/codeql-action/analyze")},
			exp:     []string{"Testing:Basic", "Release:None", "Security:Basic"},
		},
		{
			name: "level without tasks is complete in the lookahead",
			exp:  []string{"Testing:None", "Release:None", "Security:Intermediate"},
		},
		{
			name: "the domain with the longest lookahead is chosen",
			actions: []action.Action{
				// Release misses Tag only.
				action.Run("twine upload"), action.Uses("sigstore/gh-action-sigstore-python"), action.Uses("anchore/sbom-action"),
			},
			exp: []string{"Testing:None", "Release:Advanced", "Security:None"},
		},
		{
			name: "complete levels after the blocking level are credited",
			actions: []action.Action{
				action.Run("pytest"), action.Uses("codecov/codecov-action"),
				action.Run("git tag"), action.Run("twine upload"), action.Uses("sigstore/gh-action-sigstore-python"),
				action.Uses("gitleaks/gitleaks-action"),
			},
			exp: []string{"Testing:Intermediate", "Release:Intermediate", "Security:Advanced"},
		},
		{
			name: "only the lowest domain is promoted",
			actions: []action.Action{
				action.Run("pytest"), action.Uses("codecov/codecov-action"), action.Run("mvn pitest"),
				action.Run("git tag"),
			},
			exp: []string{"Testing:Advanced", "Release:Basic", "Security:Intermediate"},
		},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			report := score.NewMatcher(tx, nil).Match("foo/bar", d.actions)
			levels := score.Maturity(report)
			before := make([]taxonomy.Level, len(levels))
			for i, dl := range levels {
				before[i] = dl.Level
			}
			score.Joker(report, levels)
			if diff := cmp.Diff(d.exp, levelNames(levels)); diff != "" {
				t.Fatal(diff)
			}
			jokers := 0
			for i, dl := range levels {
				if dl.Level < before[i] || dl.Level > taxonomy.Advanced {
					t.Fatalf("%s: invalid promotion from %s to %s", dl.Domain.Name, before[i], dl.Level)
				}
				if dl.Joker {
					jokers++
				}
			}
			if jokers != 1 {
				t.Fatalf("wanted exactly one joker, got %d", jokers)
			}
		})
	}
}

func TestJoker_allAdvanced(t *testing.T) {
	t.Parallel()
	levels := []*score.DomainLevel{{Domain: &taxonomy.Domain{Name: "A"}, Level: taxonomy.Advanced}}
	score.Joker(&score.Report{Domains: []*score.DomainResult{{}}}, levels)
	if levels[0].Level != taxonomy.Advanced || levels[0].Joker {
		t.Fatal("Advanced domains must not be changed")
	}
	score.Joker(&score.Report{}, nil)
}

func TestLowestAverage(t *testing.T) {
	t.Parallel()
	levels := []*score.DomainLevel{
		{Level: taxonomy.Basic}, {Level: taxonomy.Advanced}, {Level: taxonomy.Intermediate},
	}
	if got := score.Lowest(levels); got != taxonomy.Basic {
		t.Fatalf("wanted Basic, got %s", got)
	}
	if got := score.Average(levels); got != 2 {
		t.Fatalf("wanted 2, got %v", got)
	}
	if score.Lowest(nil) != taxonomy.None || score.Average(nil) != 0 {
		t.Fatal("empty levels must be None and 0")
	}
}

func TestRecommend(t *testing.T) {
	t.Parallel()
	tx := newTaxonomy(t)
	report := score.NewMatcher(tx, nil).Match("foo/bar", []action.Action{
		action.Run("pytest"), action.Run("git tag"),
	})
	levels := score.Maturity(report)
	todos := score.Recommend(report, levels, -1)
	names := make([]string, len(todos))
	for i, todo := range todos {
		names[i] = todo.Task.Name
	}
	exp := []string{"CodeQL", "Coverage", "Publish package", "Sign", "Secret scan", "Mutation tests", "SBOM"}
	if diff := cmp.Diff(exp, names); diff != "" {
		t.Fatal(diff)
	}
	if n := len(score.Recommend(report, levels, 2)); n != 2 {
		t.Fatalf("wanted 2 todos, got %d", n)
	}
}

func TestTally(t *testing.T) {
	t.Parallel()
	tx := newTaxonomy(t)
	m := score.NewMatcher(tx, nil)
	tally := score.NewTally([]*score.Report{
		m.Match("a/a", []action.Action{action.Run("pytest")}),
		m.Match("b/b", []action.Action{action.Run("pytest"), action.Run("git tag")}),
		m.Match("c/c", nil),
	})
	if tally.Repos != 3 {
		t.Fatalf("wanted 3 repositories, got %d", tally.Repos)
	}
	dom := tx.Domains[0]
	if got := tally.Domains[dom]; got != 2 {
		t.Fatalf("wanted 2, got %d", got)
	}
	if got := tally.Subdomains[dom.Subdomains[0]]; got != 2 {
		t.Fatalf("wanted 2, got %d", got)
	}
	if got := tally.Subdomains[dom.Subdomains[1]]; got != 0 {
		t.Fatalf("wanted 0, got %d", got)
	}
	if got := tally.Tasks[tx.Domains[1].Subdomains[0].Tasks[0]]; got != 1 {
		t.Fatalf("wanted 1, got %d", got)
	}
}

package taxonomy_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"github.com/suzuki-shunsuke/cimaturity/pkg/action"
	"github.com/suzuki-shunsuke/cimaturity/pkg/taxonomy"
)

const outline = `# Testing
Checks which run on every change.

## Unit Testing
Run the unit tests of the project.
- Run tests; 80; basic; Runs 'mvn test', Runs pytest, Uses codecov/codecov-action@v4
- Coverage; 35; intermediate; Runs coverage run, jacoco-maven-plugin

## Static Analysis
- Lint; 50; basic; Uses golangci/golangci-lint-action, Runs ruff check,

# Release
- Publish; 10; advanced; Runs twine upload
`

func TestParse(t *testing.T) {
	t.Parallel()
	_, err := taxonomy.Parse(strings.NewReader(outline))
	if err == nil {
		t.Fatal("a task directly under a domain must be rejected")
	}
	if !strings.Contains(err.Error(), "line 13") {
		t.Fatalf("error should have the line number: %v", err)
	}

	tx, err := taxonomy.Parse(strings.NewReader(strings.Replace(outline, "# Release\n", "# Release\n## Packages\n", 1)))
	if err != nil {
		t.Fatal(err)
	}
	if len(tx.Domains) != 2 {
		t.Fatalf("wanted 2 domains, got %d", len(tx.Domains))
	}
	dom := tx.Domain("Testing")
	if dom == nil {
		t.Fatal("domain Testing isn't found")
	}
	if dom.Description != "Checks which run on every change." {
		t.Fatalf("unexpected domain description %q", dom.Description)
	}
	unit := dom.Subdomains[0]
	if unit.Description != "Run the unit tests of the project." {
		t.Fatalf("unexpected subdomain description %q", unit.Description)
	}
	run := unit.Tasks[0]
	if run.Name != "Run tests" || run.Frequency != 80 || run.Level != taxonomy.Basic {
		t.Fatalf("unexpected task %+v", run)
	}
	exp := []action.Action{action.Run("mvn test"), action.Run("pytest"), action.Uses("codecov/codecov-action")}
	if diff := cmp.Diff(exp, run.Instances, cmp.Comparer(func(a, b action.Action) bool { return a == b })); diff != "" {
		t.Fatal(diff)
	}
	if got := unit.Tasks[1].Instances[1]; got != action.Plugin("jacoco-maven-plugin") {
		t.Fatalf("wanted a plugin, got %s", got)
	}
	if n := len(dom.Subdomains[1].Tasks[0].Instances); n != 2 {
		t.Fatalf("empty instances must be skipped, got %d instances", n)
	}
	if n := len(dom.Tasks()); n != 3 {
		t.Fatalf("wanted 3 tasks, got %d", n)
	}
}

func TestParse_errors(t *testing.T) {
	t.Parallel()
	data := []struct {
		name    string
		outline string
		isErr   error
	}{
		{name: "invalid level", outline: "# A\n## B\n- t; 1; expert; x", isErr: taxonomy.ErrInvalidLevel},
		{name: "invalid frequency", outline: "# A\n## B\n- t; many; basic; x"},
		{name: "too few fields", outline: "# A\n## B\n- t; 1; basic"},
		{name: "subdomain without domain", outline: "## B"},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			_, err := taxonomy.Parse(strings.NewReader(d.outline))
			if err == nil {
				t.Fatal("error must be returned")
			}
			if d.isErr != nil && !errors.Is(err, d.isErr) {
				t.Fatalf("wanted %v, got %v", d.isErr, err)
			}
		})
	}
}

func TestFormat_roundTrip(t *testing.T) {
	t.Parallel()
	src := strings.Replace(outline, "# Release\n", "# Release\n## Packages\n", 1)
	tx, err := taxonomy.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	buf := &bytes.Buffer{}
	if err := taxonomy.Format(buf, tx); err != nil {
		t.Fatal(err)
	}
	again, err := taxonomy.Parse(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(tx, again, cmp.Comparer(func(a, b action.Action) bool { return a == b })); diff != "" {
		t.Fatal(diff)
	}
	buf2 := &bytes.Buffer{}
	if err := taxonomy.Format(buf2, again); err != nil {
		t.Fatal(err)
	}
	if buf.String() != buf2.String() {
		t.Fatalf("formatting isn't stable:\n%s\n---\n%s", buf, buf2)
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "automations.md", []byte("# A\n## B\n- t; 1; advanced; Runs make test\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	tx, err := taxonomy.Load(fs, "automations.md")
	if err != nil {
		t.Fatal(err)
	}
	if got := tx.Domains[0].Subdomains[0].Tasks[0].Level; got != taxonomy.Advanced {
		t.Fatalf("wanted Advanced, got %s", got)
	}
	if _, err := taxonomy.Load(fs, "missing.md"); err == nil {
		t.Fatal("loading a missing file must fail")
	}
}

func TestLevel_Next(t *testing.T) {
	t.Parallel()
	if taxonomy.None.Next() != taxonomy.Basic {
		t.Fatal("None.Next() must be Basic")
	}
	if taxonomy.Advanced.Next() != taxonomy.Advanced {
		t.Fatal("Advanced.Next() must be Advanced")
	}
}

func TestDomain_EmptyLevels(t *testing.T) {
	t.Parallel()
	tx, err := taxonomy.Parse(strings.NewReader(strings.Replace(outline, "# Release\n", "# Release\n## Packages\n", 1)))
	if err != nil {
		t.Fatal(err)
	}
	data := []struct {
		domain string
		exp    []taxonomy.Level
	}{
		{domain: "Testing", exp: []taxonomy.Level{taxonomy.Advanced}},
		{domain: "Release", exp: []taxonomy.Level{taxonomy.Basic, taxonomy.Intermediate}},
	}
	for _, d := range data {
		t.Run(d.domain, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(d.exp, tx.Domain(d.domain).EmptyLevels()); diff != "" {
				t.Fatal(diff)
			}
		})
	}
}

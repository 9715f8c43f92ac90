package extract_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/suzuki-shunsuke/cimaturity/pkg/action"
	"github.com/suzuki-shunsuke/cimaturity/pkg/config"
	"github.com/suzuki-shunsuke/cimaturity/pkg/controller/extract"
	"github.com/suzuki-shunsuke/cimaturity/pkg/workflow"
)

func newLogE() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}

func newFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, content := range files {
		if err := afero.WriteFile(fs, name, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return fs
}

func workflowYAML(ref, run string) string {
	return `name: CI
jobs:
  test:
    steps:
      - uses: actions/checkout@` + ref + `
      - run: ` + run + `
`
}

func newCfg(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{
		Corpus: "corpus",
		IgnoreRepositories: []*config.IgnoreRepository{
			{Name: "ignored/*", NameFormat: "glob"},
		},
	}
	if err := cfg.Init(); err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestController_Run(t *testing.T) {
	t.Parallel()
	fs := newFs(t, map[string]string{
		"corpus/foo/a/ci.yaml":     workflowYAML("v4.1.0", "make test"),
		"corpus/foo/a/broken.yaml": "jobs: [\n",
		"corpus/foo/b/ci.yml":      workflowYAML("v4.2.1", "make test"),
		"corpus/foo/c/ci.yaml":     workflowYAML("main", "tox"),
		"corpus/foo/c/pom.xml":     "<project/>",
		"corpus/ignored/d/ci.yaml": workflowYAML("v5", "make test"),
	})
	stdout := &bytes.Buffer{}
	ctrl := extract.New(fs, newCfg(t), &extract.Param{Output: "corpus.json"}, stdout)
	if err := ctrl.Run(context.Background(), newLogE()); err != nil {
		t.Fatal(err)
	}
	exp := `Uses actions/checkout [3/3] latest: v4.2.1
Runs "make test" [2/3]
`
	if diff := cmp.Diff(exp, stdout.String()); diff != "" {
		t.Fatal(diff)
	}

	f, err := fs.Open("corpus.json")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	corpus, err := workflow.LoadCorpus(f)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"foo/a", "foo/b", "foo/c"}, corpus.RepoNames()); diff != "" {
		t.Fatal(diff)
	}
	if corpus.Invalid != 1 {
		t.Fatalf("wanted 1 invalid file, got %d", corpus.Invalid)
	}
}

func TestController_Extract_order(t *testing.T) {
	t.Parallel()
	files := map[string]string{}
	repos := []string{}
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		files["corpus/foo/"+name+"/ci.yaml"] = workflowYAML("v1", "make "+name)
		repos = append(repos, "foo/"+name)
	}
	fs := newFs(t, files)
	ctrl := extract.New(fs, newCfg(t), &extract.Param{}, io.Discard)
	corpus, err := ctrl.Extract(context.Background(), newLogE(), repos)
	if err != nil {
		t.Fatal(err)
	}
	for _, repo := range repos {
		got := corpus.Repos[repo]
		exp := []action.Action{action.Uses("actions/checkout"), action.Run("make " + strings.TrimPrefix(repo, "foo/"))}
		if len(got) != 2 || got[0] != exp[0] || got[1] != exp[1] {
			t.Fatalf("%s: unexpected actions %v", repo, got)
		}
	}
}

func TestController_Run_clusters(t *testing.T) {
	t.Parallel()
	files := map[string]string{}
	for _, name := range []string{"a", "b", "c"} {
		files["corpus/foo/"+name+"/ci.yaml"] = workflowYAML("v1", "tox -e py")
	}
	fs := newFs(t, files)
	cfg := newCfg(t)
	cfg.ClusterThreshold = 2
	stdout := &bytes.Buffer{}
	if err := extract.New(fs, cfg, &extract.Param{Clusters: true}, stdout).Run(context.Background(), newLogE()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout.String(), "\nCluster based on tox:\n  - Runs \"tox\"\n  - Runs \"tox\"\n  - Runs \"tox\"\n") {
		t.Fatalf("unexpected output:\n%s", stdout.String())
	}
}

func TestController_Run_noCorpus(t *testing.T) {
	t.Parallel()
	cfg := &config.Config{}
	if err := cfg.Init(); err != nil {
		t.Fatal(err)
	}
	if err := extract.New(afero.NewMemMapFs(), cfg, &extract.Param{}, io.Discard).Run(context.Background(), newLogE()); err == nil {
		t.Fatal("the corpus directory must be required")
	}
}

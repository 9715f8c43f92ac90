package config_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/spf13/afero"
	"github.com/suzuki-shunsuke/cimaturity/pkg/config"
)

func TestIgnoreRepository_Match(t *testing.T) {
	t.Parallel()
	data := []struct {
		name     string
		ir       *config.IgnoreRepository
		repo     string
		expected bool
	}{
		{
			name:     "fixed string",
			ir:       &config.IgnoreRepository{Name: "gnembon/carpetmod112", NameFormat: "fixed_string"},
			repo:     "gnembon/carpetmod112",
			expected: true,
		},
		{
			name:     "fixed string is case insensitive",
			ir:       &config.IgnoreRepository{Name: "Theta-Dev/ConstructionWand", NameFormat: "fixed_string"},
			repo:     "theta-dev/constructionwand",
			expected: true,
		},
		{
			name:     "glob",
			ir:       &config.IgnoreRepository{Name: "GoogleCloudPlatform/*", NameFormat: "glob"},
			repo:     "googlecloudplatform/dataflow-vision-analytics",
			expected: true,
		},
		{
			name:     "glob doesn't match another owner",
			ir:       &config.IgnoreRepository{Name: "GoogleCloudPlatform/*", NameFormat: "glob"},
			repo:     "cloudburstmc/nbt",
			expected: false,
		},
		{
			name:     "regexp",
			ir:       &config.IgnoreRepository{Name: `^jpenilla/squaremap-`, NameFormat: "regexp"},
			repo:     "jpenilla/squaremap-addons",
			expected: true,
		},
		{
			name:     "not match",
			ir:       &config.IgnoreRepository{Name: "link4real/plushie-mod", NameFormat: "fixed_string"},
			repo:     "manifold-systems/manifold",
			expected: false,
		},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			if err := d.ir.Init(); err != nil {
				t.Fatalf("failed to initialize ignore_repositories: %v", err)
			}
			got, err := d.ir.Match(d.repo)
			if err != nil {
				t.Fatalf("failed to match: %v", err)
			}
			if got != d.expected {
				t.Fatalf("wanted %v, got %v", d.expected, got)
			}
		})
	}
}

func TestReader_Read(t *testing.T) {
	t.Parallel()
	data := []struct {
		name    string
		content string
		path    string
		exp     *config.Config
		isErr   bool
	}{
		{
			name: "no config file",
			exp: &config.Config{
				ClusterThreshold: 14,
				Parallelism:      4,
			},
		},
		{
			name: "normal",
			path: ".cimaturity.yaml",
			content: `taxonomy: data/automations.md
plugins: data/plugins.json
corpus: output
repositories:
  - data/python_sampled_repos.txt
ignore_repositories:
  - name: movingblocks/gestalt
    name_format: fixed_string
joker: true
cluster_threshold: 20
`,
			exp: &config.Config{
				Taxonomy:     "data/automations.md",
				Plugins:      "data/plugins.json",
				Corpus:       "output",
				Repositories: []string{"data/python_sampled_repos.txt"},
				IgnoreRepositories: []*config.IgnoreRepository{
					{Name: "movingblocks/gestalt", NameFormat: "fixed_string"},
				},
				Joker:            true,
				ClusterThreshold: 20,
				Parallelism:      4,
			},
		},
		{
			name:    "invalid name_format",
			path:    ".cimaturity.yaml",
			content: "ignore_repositories:\n  - name: foo/bar\n    name_format: exact\n",
			isErr:   true,
		},
		{
			name:    "negative parallelism",
			path:    ".cimaturity.yaml",
			content: "parallelism: -1\n",
			isErr:   true,
		},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			fs := afero.NewMemMapFs()
			if d.content != "" {
				if err := afero.WriteFile(fs, d.path, []byte(d.content), 0o644); err != nil {
					t.Fatal(err)
				}
			}
			p, err := config.NewFinder(fs).Find("")
			if err != nil {
				t.Fatal(err)
			}
			if p != d.path {
				t.Fatalf("wanted the config path %q, got %q", d.path, p)
			}
			cfg := &config.Config{}
			if err := config.NewReader(fs).Read(cfg, p); err != nil {
				if d.isErr {
					return
				}
				t.Fatal(err)
			}
			if d.isErr {
				t.Fatal("error must be returned")
			}
			if diff := cmp.Diff(d.exp, cfg, cmpopts.IgnoreUnexported(config.IgnoreRepository{})); diff != "" {
				t.Fatal(diff)
			}
		})
	}
}

func TestConfig_Ignored(t *testing.T) {
	t.Parallel()
	cfg := &config.Config{
		IgnoreRepositories: []*config.IgnoreRepository{
			{Name: "foo/*", NameFormat: "glob"},
			{Name: "bar/baz", NameFormat: "fixed_string"},
		},
	}
	if err := cfg.Init(); err != nil {
		t.Fatal(err)
	}
	for repo, exp := range map[string]bool{"foo/a": true, "bar/baz": true, "bar/qux": false} {
		got, err := cfg.Ignored(repo)
		if err != nil {
			t.Fatal(err)
		}
		if got != exp {
			t.Fatalf("%s: wanted %v, got %v", repo, exp, got)
		}
	}
}

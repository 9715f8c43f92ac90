package config

import (
	"errors"
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const (
	DefaultClusterThreshold = 14
	DefaultParallelism      = 4
)

type Config struct {
	Taxonomy           string              `json:"taxonomy,omitempty" jsonschema:"description=A file path to the taxonomy outline"`
	Plugins            string              `json:"plugins,omitempty" jsonschema:"description=A file path to the JSON file mapping a repository to the build plugins it uses"`
	Corpus             string              `json:"corpus,omitempty" jsonschema:"description=A directory where workflow files are stored as <owner>/<repo>/<file>"`
	Repositories       []string            `json:"repositories,omitempty" jsonschema:"description=File paths to repository lists. Each line of a list is a repository full name"`
	IgnoreRepositories []*IgnoreRepository `json:"ignore_repositories,omitempty" yaml:"ignore_repositories" jsonschema:"description=Repositories that cimaturity ignores"`
	Joker              bool                `json:"joker,omitempty" jsonschema:"description=Forgive one missing step of the least mature domain"`
	ClusterThreshold   int                 `json:"cluster_threshold,omitempty" yaml:"cluster_threshold" jsonschema:"description=Clusters of unrecognized commands need more members than this. The default is 14"`
	Parallelism        int                 `json:"parallelism,omitempty" jsonschema:"description=The number of repositories processed concurrently. The default is 4"`
}

const (
	formatFixedString = "fixed_string"
	formatGlob        = "glob"
	formatRegexp      = "regexp"
)

type IgnoreRepository struct {
	Name       string `json:"name"`
	NameFormat string `json:"name_format" yaml:"name_format" jsonschema:"enum=fixed_string,enum=glob,enum=regexp"`
	nameRegexp *regexp.Regexp
}

func initFormat(value, format string) (*regexp.Regexp, error) {
	switch format {
	case formatFixedString:
		return nil, nil //nolint:nilnil
	case formatGlob:
		if _, err := path.Match(value, "a"); err != nil {
			return nil, fmt.Errorf("parse as a glob: %w", err)
		}
		return nil, nil //nolint:nilnil
	case formatRegexp:
		r, err := regexp.Compile(value)
		if err != nil {
			return nil, fmt.Errorf("compile as a regular expression: %w", err)
		}
		return r, nil
	default:
		return nil, errors.New("name_format must be fixed_string, glob, or regexp")
	}
}

func (ir *IgnoreRepository) Init() error {
	if ir.Name == "" {
		return errors.New("name is required")
	}
	if ir.NameFormat == "" {
		return errors.New("name_format is required")
	}
	var err error
	ir.nameRegexp, err = initFormat(ir.Name, ir.NameFormat)
	return err
}

// Match reports whether a repository full name matches.
// fixed_string and glob are case insensitive.
func (ir *IgnoreRepository) Match(repo string) (bool, error) {
	switch ir.NameFormat {
	case formatFixedString:
		return strings.EqualFold(ir.Name, repo), nil
	case formatGlob:
		f, err := path.Match(strings.ToLower(ir.Name), strings.ToLower(repo))
		if err != nil {
			return false, fmt.Errorf("match as a glob: %w", err)
		}
		return f, nil
	case formatRegexp:
		return ir.nameRegexp.MatchString(repo), nil
	default:
		return false, errors.New("unexpected format: " + ir.NameFormat)
	}
}

// Ignored reports whether a repository matches any of ignore_repositories.
func (c *Config) Ignored(repo string) (bool, error) {
	for _, ir := range c.IgnoreRepositories {
		f, err := ir.Match(repo)
		if err != nil {
			return false, fmt.Errorf("match a repository with ignore_repositories: %w", err)
		}
		if f {
			return true, nil
		}
	}
	return false, nil
}

// Init validates the configuration and sets default values.
func (c *Config) Init() error {
	for _, ir := range c.IgnoreRepositories {
		if err := ir.Init(); err != nil {
			return fmt.Errorf("initialize ignore_repositories: %w", err)
		}
	}
	if c.ClusterThreshold < 0 {
		return errors.New("cluster_threshold must not be negative")
	}
	if c.ClusterThreshold == 0 {
		c.ClusterThreshold = DefaultClusterThreshold
	}
	if c.Parallelism < 0 {
		return errors.New("parallelism must not be negative")
	}
	if c.Parallelism == 0 {
		c.Parallelism = DefaultParallelism
	}
	return nil
}

func getConfigPath(fs afero.Fs) (string, error) {
	for _, path := range []string{".cimaturity.yaml", ".github/cimaturity.yaml", ".cimaturity.yml", ".github/cimaturity.yml"} {
		f, err := afero.Exists(fs, path)
		if err != nil {
			return "", fmt.Errorf("check if %s exists: %w", path, err)
		}
		if f {
			return path, nil
		}
	}
	return "", nil
}

type Finder struct {
	fs afero.Fs
}

func NewFinder(fs afero.Fs) *Finder {
	return &Finder{fs: fs}
}

func (f *Finder) Find(configFilePath string) (string, error) {
	if configFilePath != "" {
		return configFilePath, nil
	}
	p, err := getConfigPath(f.fs)
	if err != nil {
		return "", err
	}
	return p, nil
}

type Reader struct {
	fs afero.Fs
}

func NewReader(fs afero.Fs) *Reader {
	return &Reader{fs: fs}
}

// Read decodes a configuration file into cfg and initializes it.
// If configFilePath is empty, cfg is only initialized.
func (r *Reader) Read(cfg *Config, configFilePath string) error {
	if configFilePath != "" {
		f, err := r.fs.Open(configFilePath)
		if err != nil {
			return fmt.Errorf("open a configuration file: %w", err)
		}
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
			return fmt.Errorf("decode a configuration file as YAML: %w", err)
		}
	}
	return cfg.Init()
}

// Package plugins reads the build plugin usage dataset.
// The dataset is a JSON object mapping a repository to the names of the build plugins it uses.
package plugins

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"
)

type Dataset map[string][]string

// Load reads a dataset. An empty path returns an empty dataset.
// Repository names are compared case insensitively, so keys are lower cased.
func Load(fs afero.Fs, path string) (Dataset, error) {
	if path == "" {
		return Dataset{}, nil
	}
	b, err := afero.ReadFile(fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("the plugin dataset isn't found: %w", err)
		}
		return nil, fmt.Errorf("read a plugin dataset: %w", err)
	}
	raw := map[string][]string{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parse a plugin dataset as JSON: %w", err)
	}
	ds := make(Dataset, len(raw))
	for repo, names := range raw {
		key := strings.ToLower(repo)
		ds[key] = append(ds[key], names...)
	}
	return ds, nil
}

// Package repository reads repository lists and the corpus directory layout.
package repository

import (
	"bufio"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"
)

var errInvalidName = errors.New("a repository name must be <owner>/<repo>")

// Split splits a repository full name into the owner and the name.
func Split(fullName string) (string, string, error) {
	owner, repo, ok := strings.Cut(fullName, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return "", "", fmt.Errorf("%w: %s", errInvalidName, fullName)
	}
	return owner, repo, nil
}

// ReadLists reads repository list files. Each line is a repository full name.
// Empty lines and lines starting with # are skipped, and duplicates are removed.
func ReadLists(fs afero.Fs, paths []string) ([]string, error) {
	seen := map[string]struct{}{}
	repos := []string{}
	for _, path := range paths {
		f, err := fs.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open a repository list: %w", err)
		}
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			if _, ok := seen[line]; ok {
				continue
			}
			seen[line] = struct{}{}
			repos = append(repos, line)
		}
		err = scanner.Err()
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("read a repository list %s: %w", path, err)
		}
	}
	return repos, nil
}

// Discover returns the repositories stored in a corpus directory laid out as <owner>/<repo>.
func Discover(fs afero.Fs, corpusDir string) ([]string, error) {
	owners, err := afero.ReadDir(fs, corpusDir)
	if err != nil {
		return nil, fmt.Errorf("read the corpus directory: %w", err)
	}
	repos := []string{}
	for _, owner := range owners {
		if !owner.IsDir() {
			continue
		}
		entries, err := afero.ReadDir(fs, filepath.Join(corpusDir, owner.Name()))
		if err != nil {
			return nil, fmt.Errorf("read an owner directory: %w", err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				repos = append(repos, owner.Name()+"/"+entry.Name())
			}
		}
	}
	slices.Sort(repos)
	return repos, nil
}

// WorkflowFiles returns the workflow files of a repository in a corpus directory in lexical order.
// pom.xml files stored alongside them are skipped.
func WorkflowFiles(fs afero.Fs, corpusDir, repo string) ([]string, error) {
	dir := filepath.Join(corpusDir, filepath.FromSlash(repo))
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, fmt.Errorf("read a repository directory: %w", err)
	}
	files := []string{}
	for _, entry := range entries {
		if entry.IsDir() || strings.HasSuffix(entry.Name(), "pom.xml") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	return files, nil
}

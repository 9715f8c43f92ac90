package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
)

var (
	// ErrRateLimited means that GitHub refused a request because of a rate limit or an access denial.
	// It must abort the whole batch.
	ErrRateLimited = errors.New("GitHub API rate limit exceeded or access denied")
	ErrNotFound    = errors.New("not found")
	errNotFile     = errors.New("the path isn't a file")
	errNotDir      = errors.New("the path isn't a directory")
)

const WorkflowDir = ".github/workflows"

type RepositoriesService interface {
	GetContents(ctx context.Context, owner, repo, path string, opts *RepositoryContentGetOptions) (*RepositoryContent, []*RepositoryContent, *Response, error)
}

type getContentsResult struct {
	file *RepositoryContent
	dir  []*RepositoryContent
	err  error
}

// Fetcher gets repository contents. Results including errors are memoized per path.
type Fetcher struct {
	repositoriesService RepositoriesService
	mutex               sync.Mutex
	contents            map[string]*getContentsResult
}

func NewFetcher(repositoriesService RepositoriesService) *Fetcher {
	return &Fetcher{
		repositoriesService: repositoriesService,
		contents:            map[string]*getContentsResult{},
	}
}

func (f *Fetcher) getContents(ctx context.Context, owner, repo, path string) *getContentsResult {
	key := fmt.Sprintf("%s/%s/%s", owner, repo, path)
	f.mutex.Lock()
	if r, ok := f.contents[key]; ok {
		f.mutex.Unlock()
		return r
	}
	f.mutex.Unlock()

	file, dir, resp, err := f.repositoriesService.GetContents(ctx, owner, repo, path, nil)
	r := &getContentsResult{
		file: file,
		dir:  dir,
		err:  classify(resp, err),
	}
	f.mutex.Lock()
	f.contents[key] = r
	f.mutex.Unlock()
	return r
}

// classify converts an API error into ErrRateLimited or ErrNotFound where possible.
func classify(resp *Response, err error) error {
	if err == nil {
		return nil
	}
	var rateLimitErr *RateLimitError
	var abuseErr *AbuseRateLimitError
	if errors.As(err, &rateLimitErr) || errors.As(err, &abuseErr) {
		return fmt.Errorf("%w: %w", ErrRateLimited, err)
	}
	if resp != nil && resp.Response != nil {
		switch resp.StatusCode {
		case http.StatusNotFound:
			return fmt.Errorf("%w: %w", ErrNotFound, err)
		case http.StatusForbidden, http.StatusTooManyRequests:
			return fmt.Errorf("%w: %w", ErrRateLimited, err)
		}
	}
	return fmt.Errorf("get contents by GitHub API: %w", err)
}

// ListWorkflows returns the paths of the YAML files in the workflow directory.
func (f *Fetcher) ListWorkflows(ctx context.Context, owner, repo string) ([]string, error) {
	r := f.getContents(ctx, owner, repo, WorkflowDir)
	if r.err != nil {
		return nil, r.err
	}
	if r.file != nil {
		return nil, errNotDir
	}
	paths := []string{}
	for _, content := range r.dir {
		if content.GetType() != "file" {
			continue
		}
		name := content.GetName()
		if strings.HasSuffix(name, ".yml") || strings.HasSuffix(name, ".yaml") {
			paths = append(paths, content.GetPath())
		}
	}
	return paths, nil
}

// GetFile returns the decoded content of a file.
func (f *Fetcher) GetFile(ctx context.Context, owner, repo, path string) ([]byte, error) {
	r := f.getContents(ctx, owner, repo, path)
	if r.err != nil {
		return nil, r.err
	}
	if r.file == nil {
		return nil, errNotFile
	}
	s, err := r.file.GetContent()
	if err != nil {
		return nil, fmt.Errorf("decode file content: %w", err)
	}
	return []byte(s), nil
}

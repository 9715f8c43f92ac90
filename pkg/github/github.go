// Package github fetches repository contents through the GitHub API.
// The client authenticates with GITHUB_TOKEN, or with a token stored in the
// OS keyring when CIMATURITY_KEYRING_ENABLED is true.
package github

import (
	"context"
	"net/http"
	"os"

	"github.com/google/go-github/v74/github"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

type (
	Client                      = github.Client
	Response                    = github.Response
	RepositoryContent           = github.RepositoryContent
	RepositoryContentGetOptions = github.RepositoryContentGetOptions
	RateLimitError              = github.RateLimitError
	AbuseRateLimitError         = github.AbuseRateLimitError
)

func New(ctx context.Context, logE *logrus.Entry) *Client {
	return github.NewClient(getHTTPClientForGitHub(ctx, logE, getGitHubToken()))
}

func getGitHubToken() string {
	return os.Getenv("GITHUB_TOKEN")
}

func checkKeyringEnabled() bool {
	return os.Getenv("CIMATURITY_KEYRING_ENABLED") == "true"
}

func getHTTPClientForGitHub(ctx context.Context, logE *logrus.Entry, token string) *http.Client {
	if token == "" {
		if checkKeyringEnabled() {
			return oauth2.NewClient(ctx, NewKeyringTokenSource(logE))
		}
		logE.Debug("GITHUB_TOKEN isn't set, so the GitHub API is accessed without authentication")
		return http.DefaultClient
	}
	return oauth2.NewClient(ctx, oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	))
}

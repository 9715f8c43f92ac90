// Package token manages the GitHub access token stored in the OS keyring.
package token

import "io"

type Controller struct {
	stdin        io.Reader
	tokenManager TokenManager
}

func New(stdin io.Reader, tokenManager TokenManager) *Controller {
	return &Controller{
		stdin:        stdin,
		tokenManager: tokenManager,
	}
}

type TokenManager interface {
	SetToken(token string) error
	RemoveToken() error
}

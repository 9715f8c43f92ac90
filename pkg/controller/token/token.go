package token

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

var errEmptyToken = errors.New("the token is empty")

// Set reads a token from stdin and stores it.
func (c *Controller) Set() error {
	b, err := io.ReadAll(c.stdin)
	if err != nil {
		return fmt.Errorf("read a GitHub access token from stdin: %w", err)
	}
	token := strings.TrimSpace(string(b))
	if token == "" {
		return errEmptyToken
	}
	if err := c.tokenManager.SetToken(token); err != nil {
		return fmt.Errorf("set a GitHub access token to the secret store: %w", err)
	}
	return nil
}

func (c *Controller) Remove() error {
	if err := c.tokenManager.RemoveToken(); err != nil {
		return fmt.Errorf("remove a GitHub access token from the secret store: %w", err)
	}
	return nil
}

package github

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/zalando/go-keyring"
	"golang.org/x/oauth2"
)

const (
	keyService = "suzuki-shunsuke/cimaturity"
	keyName    = "GITHUB_TOKEN"
)

// TokenManager keeps a GitHub access token in the OS keyring under a service name.
type TokenManager struct {
	service string
}

func NewTokenManager() *TokenManager {
	return &TokenManager{service: keyService}
}

func (tm *TokenManager) GetToken() (string, error) {
	s, err := keyring.Get(tm.service, keyName)
	if err != nil {
		return "", fmt.Errorf("get a GitHub access token from the keyring: %w", err)
	}
	return s, nil
}

func (tm *TokenManager) SetToken(token string) error {
	if err := keyring.Set(tm.service, keyName, token); err != nil {
		return fmt.Errorf("set a GitHub access token to the keyring: %w", err)
	}
	return nil
}

func (tm *TokenManager) RemoveToken() error {
	if err := keyring.Delete(tm.service, keyName); err != nil {
		return fmt.Errorf("remove a GitHub access token from the keyring: %w", err)
	}
	return nil
}

// KeyringTokenSource reads the token from the keyring on the first request
// and reuses it for the rest of the process.
type KeyringTokenSource struct {
	manager *TokenManager
	logE    *logrus.Entry
	once    sync.Once
	token   *oauth2.Token
	err     error
}

func NewKeyringTokenSource(logE *logrus.Entry) *KeyringTokenSource {
	return &KeyringTokenSource{
		manager: NewTokenManager(),
		logE:    logE,
	}
}

func (ks *KeyringTokenSource) Token() (*oauth2.Token, error) {
	ks.once.Do(func() {
		ks.logE.Debug("get a GitHub access token from the keyring")
		s, err := ks.manager.GetToken()
		if err != nil {
			ks.err = err
			return
		}
		ks.token = &oauth2.Token{AccessToken: s}
	})
	return ks.token, ks.err
}

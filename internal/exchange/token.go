package exchange

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/99designs/keyring"
)

// TokenEnvVar overrides the stored token for the current process.
const TokenEnvVar = "CALPERM_TOKEN"

// KeyringService is the service name tokens are stored under.
const KeyringService = "calperm"

// TokenSource supplies the bearer token for an administrator.
type TokenSource interface {
	Token(ctx context.Context, admin string) (string, error)
}

// OpenKeyring opens the OS credential store. dir holds the encrypted-file
// fallback used where no native store exists.
func OpenKeyring(dir string) (keyring.Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName:      KeyringService,
		FileDir:          dir,
		FilePasswordFunc: keyring.TerminalPrompt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open credential store: %w", err)
	}
	return ring, nil
}

// KeyringTokens reads tokens from the environment, then from a keyring.
type KeyringTokens struct {
	Ring   keyring.Keyring
	Getenv func(string) string
}

func tokenKey(admin string) string {
	return strings.ToLower(strings.TrimSpace(admin))
}

// Token implements TokenSource.
func (k KeyringTokens) Token(_ context.Context, admin string) (string, error) {
	getenv := k.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	if tok := strings.TrimSpace(getenv(TokenEnvVar)); tok != "" {
		return tok, nil
	}
	if k.Ring == nil {
		return "", NewAuthError("no token available: set " + TokenEnvVar + " or store one with 'calperm token set'")
	}

	item, err := k.Ring.Get(tokenKey(admin))
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", NewAuthError(fmt.Sprintf("no token stored for %s: run 'calperm token set --admin %s'", admin, admin))
	}
	if err != nil {
		return "", fmt.Errorf("failed to read token for %s: %w", admin, err)
	}
	return strings.TrimSpace(string(item.Data)), nil
}

// StoreToken saves token for admin.
func StoreToken(ring keyring.Keyring, admin, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("token is empty")
	}
	return ring.Set(keyring.Item{
		Key:         tokenKey(admin),
		Data:        []byte(token),
		Label:       "calperm admin token",
		Description: "Exchange admin API token for " + admin,
	})
}

// DeleteToken removes the token stored for admin. A missing token is not an
// error.
func DeleteToken(ring keyring.Keyring, admin string) error {
	err := ring.Remove(tokenKey(admin))
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return nil
	}
	return err
}

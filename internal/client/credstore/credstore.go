// Package credstore persists the session token across client restarts.
// The token is the only session field that survives a restart.
package credstore

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	service = "devhive-cli"
	key     = "session-token"
)

// ErrNoToken means no token has been stored (or it was deleted)
var ErrNoToken = errors.New("no stored token")

// TokenStore is the durable storage for the session token.
// An interface so tests can swap out the OS keyring.
type TokenStore interface {
	Save(token string) error
	Load() (string, error)
	Delete() error
}

// Keyring stores the token in the OS keychain/credential manager
type Keyring struct{}

// NewKeyring creates a keyring-backed token store
func NewKeyring() *Keyring {
	return &Keyring{}
}

func (k *Keyring) Save(token string) error {
	if err := keyring.Set(service, key, token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

func (k *Keyring) Load() (string, error) {
	token, err := keyring.Get(service, key)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNoToken
		}
		return "", fmt.Errorf("failed to load token: %w", err)
	}
	return token, nil
}

func (k *Keyring) Delete() error {
	if err := keyring.Delete(service, key); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil // Already deleted
		}
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}

// Memory is an in-memory TokenStore for tests
type Memory struct {
	token string
	has   bool
}

// NewMemory creates an empty in-memory token store
func NewMemory() *Memory {
	return &Memory{}
}

// NewMemoryWith creates an in-memory token store seeded with a token
func NewMemoryWith(token string) *Memory {
	return &Memory{token: token, has: true}
}

func (m *Memory) Save(token string) error {
	m.token = token
	m.has = true
	return nil
}

func (m *Memory) Load() (string, error) {
	if !m.has {
		return "", ErrNoToken
	}
	return m.token, nil
}

func (m *Memory) Delete() error {
	m.token = ""
	m.has = false
	return nil
}

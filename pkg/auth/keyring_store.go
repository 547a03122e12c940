package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "pexelsdl"
	keyringUser    = "api_key"
)

// KeyringStore reads the API key from the system keychain.
// It never writes; the entry is expected to be created with the platform's
// own tooling (secret-tool, Keychain Access, cmdkey).
type KeyringStore struct {
	service string
	user    string
}

// NewKeyringStore creates a keyring-backed key store using the default entry
func NewKeyringStore() *KeyringStore {
	return &KeyringStore{service: keyringService, user: keyringUser}
}

// Retrieve gets the API key from the system keychain
func (k *KeyringStore) Retrieve() (APIKey, error) {
	secret, err := keyring.Get(k.service, k.user)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", fmt.Errorf("%w in keyring (service %q, user %q)", ErrKeyNotFound, k.service, k.user)
		}
		return "", fmt.Errorf("failed to read from keyring: %w", err)
	}

	key := strings.TrimSpace(secret)
	if key == "" {
		return "", ErrEmptyKey
	}
	return APIKey(key), nil
}

package auth

import (
	"os"
	"strings"
)

// EnvKeyVariable is the environment variable read by EnvironmentStore
const EnvKeyVariable = "PEXELSDL_API_KEY"

// EnvironmentStore reads the API key from the environment.
// Values from .env files are visible here once the config layer has loaded them.
type EnvironmentStore struct{}

// NewEnvironmentStore creates a new environment-based key store
func NewEnvironmentStore() *EnvironmentStore {
	return &EnvironmentStore{}
}

// Retrieve gets the API key from the environment
func (e *EnvironmentStore) Retrieve() (APIKey, error) {
	key := strings.TrimSpace(os.Getenv(EnvKeyVariable))
	if key == "" {
		return "", ErrKeyNotFound
	}
	return APIKey(key), nil
}

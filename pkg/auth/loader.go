package auth

import (
	"fmt"

	"pexelsdl/pkg/config"
)

// Loader resolves the API key from the configured source.
// The key is loaded once at startup and passed explicitly to the search client.
type Loader struct {
	Source  string
	KeyFile string
}

// NewLoader builds a Loader from the Pexels configuration section
func NewLoader(cfg *config.PexelsConfig) *Loader {
	return &Loader{Source: cfg.KeySource, KeyFile: cfg.KeyFile}
}

// Load reads the API key
func (l *Loader) Load() (APIKey, error) {
	switch l.Source {
	case config.KeySourceFile, "":
		return LoadFromFile(l.KeyFile)
	case config.KeySourceEnv:
		return NewEnvironmentStore().Retrieve()
	case config.KeySourceKeyring:
		return NewKeyringStore().Retrieve()
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSource, l.Source)
	}
}

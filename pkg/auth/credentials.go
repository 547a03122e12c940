package auth

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// APIKey is the Pexels API token sent as the Authorization header value
type APIKey string

// String returns the key itself
func (k APIKey) String() string {
	return string(k)
}

// Masked returns the key with all but the first and last 4 characters hidden
func (k APIKey) Masked() string {
	return maskString(string(k))
}

// maskString masks all but the first 4 and last 4 characters of a string
func maskString(s string) string {
	if len(s) <= 8 {
		return "********"
	}
	return s[:4] + "..." + s[len(s)-4:]
}

// Errors
var (
	ErrKeyFileNotFound   = errors.New("api key file not found")
	ErrKeyFileUnreadable = errors.New("api key file unreadable")
	ErrEmptyKey          = errors.New("api key is empty")
	ErrKeyNotFound       = errors.New("api key not found")
	ErrUnknownSource     = errors.New("unknown api key source")
)

// LoadFromFile reads a whitespace-trimmed API key from path
func LoadFromFile(path string) (APIKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrKeyFileNotFound, path)
		}
		return "", fmt.Errorf("%w: %w", ErrKeyFileUnreadable, err)
	}

	key := strings.TrimSpace(string(data))
	if key == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyKey, path)
	}

	return APIKey(key), nil
}

package auth

import (
	"errors"
	"fmt"
	"io"
)

// Describe turns a key loading failure into the message shown to the user
func Describe(err error, keyFile string) string {
	switch {
	case errors.Is(err, ErrKeyFileNotFound):
		return fmt.Sprintf("Error: %s file not found. Please create an %s file with your Pexels API key.", keyFile, keyFile)
	case errors.Is(err, ErrEmptyKey):
		return fmt.Sprintf("Error: %s is empty. Please paste your Pexels API key into it.", keyFile)
	case errors.Is(err, ErrKeyFileUnreadable):
		return fmt.Sprintf("Error reading %s: %v", keyFile, err)
	default:
		return fmt.Sprintf("Error loading API key: %v", err)
	}
}

// ShowKeySetupGuide prints where a key comes from and where pexelsdl looks for it
func ShowKeySetupGuide(w io.Writer) {
	fmt.Fprintln(w, "To get a Pexels API key:")
	fmt.Fprintln(w, "  1. Sign in at https://www.pexels.com")
	fmt.Fprintln(w, "  2. Request a key at https://www.pexels.com/api/new/")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "pexelsdl reads the key from one of:")
	fmt.Fprintln(w, "  - an api.key file in the working directory (default, --key-file to change)")
	fmt.Fprintf(w, "  - the %s environment variable or a .env file (--key-source env)\n", EnvKeyVariable)
	fmt.Fprintf(w, "  - the system keyring, service %q user %q (--key-source keyring)\n", keyringService, keyringUser)
}

package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadOrCreateSecret reads a base64url secret from path, generating and
// persisting a fresh one of size bytes when the file doesn't exist yet. Used
// for the password pepper and for the HS256 signing secret.
func LoadOrCreateSecret(path string, size int) ([]byte, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("cryptox: secret path is empty")
	}
	path = filepath.Clean(path)

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		secret, decErr := base64.RawURLEncoding.DecodeString(strings.TrimSpace(string(raw)))
		if decErr != nil {
			return nil, fmt.Errorf("cryptox: decode secret %s: %w", path, decErr)
		}
		return secret, nil

	case errors.Is(err, os.ErrNotExist):
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, err
		}
		secret := make([]byte, size)
		if _, err := rand.Read(secret); err != nil {
			return nil, err
		}
		encoded := base64.RawURLEncoding.EncodeToString(secret)
		if err := os.WriteFile(path, []byte(encoded), 0o600); err != nil {
			return nil, err
		}
		return secret, nil

	default:
		return nil, err
	}
}

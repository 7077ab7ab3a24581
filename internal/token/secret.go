package token

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// GenerateSecret returns MinSecretBytes random bytes, hex encoded.
func GenerateSecret() (string, error) {
	raw := make([]byte, MinSecretBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("error generating token secret: %w", err)
	}
	return hex.EncodeToString(raw), nil
}

// ResolveSecret returns the signing secret to use.
//
// A configured secret wins. Otherwise the secret stored at path is read, and
// if path is empty or does not exist yet a new secret is generated and, when
// path is set, persisted there with 0600 permissions. generated reports
// whether a new secret was created.
func ResolveSecret(configured, path string) (secret []byte, generated bool, err error) {
	if configured != "" {
		return []byte(configured), false, nil
	}

	if path != "" {
		stored, readErr := os.ReadFile(path)
		switch {
		case readErr == nil:
			value := strings.TrimSpace(string(stored))
			if value != "" {
				return []byte(value), false, nil
			}
		case !errors.Is(readErr, fs.ErrNotExist):
			return nil, false, fmt.Errorf("error reading token secret file: %w", readErr)
		}
	}

	value, err := GenerateSecret()
	if err != nil {
		return nil, false, err
	}

	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, false, fmt.Errorf("error creating token secret dir: %w", err)
		}
		if err := os.WriteFile(path, []byte(value), 0o600); err != nil {
			return nil, false, fmt.Errorf("error writing token secret file: %w", err)
		}
	}

	return []byte(value), true, nil
}

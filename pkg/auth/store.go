package auth

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/zalando/go-keyring"
)

const (
	keyringService = "trustmeter"
	keyringUser    = "github_token"
	tokenFileName  = "github_token"
	tokenFileMode  = 0600

	// TokenEnvVar overrides any stored token when set.
	TokenEnvVar = "GITHUB_ACCESS_TOKEN"
)

// SaveToken stores the GitHub token in the OS keychain, falling back to a
// file in the app home dir when no keychain is available.
func SaveToken(homeDir, token string) error {
	if token == "" {
		return errors.New("token is required")
	}

	if err := keyring.Set(keyringService, keyringUser, token); err != nil {
		slog.Warn("keychain unavailable, falling back to file", "error", err)
		return saveTokenFile(homeDir, token)
	}

	// Clean up legacy file if it exists
	os.Remove(filepath.Join(homeDir, tokenFileName))

	return nil
}

// Token resolves the GitHub token: env var first, then keychain, then the
// file fallback. An empty string with nil error means anonymous access.
func Token(homeDir string) (string, error) {
	if t := os.Getenv(TokenEnvVar); t != "" {
		return t, nil
	}

	token, err := keyring.Get(keyringService, keyringUser)
	if err == nil && token != "" {
		return token, nil
	}

	b, err := os.ReadFile(filepath.Join(homeDir, tokenFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", errors.Wrap(err, "reading token file")
	}

	token = string(b)

	// Migrate to keychain
	if migrateErr := keyring.Set(keyringService, keyringUser, token); migrateErr == nil {
		slog.Info("migrated token from file to OS keychain")
		os.Remove(filepath.Join(homeDir, tokenFileName))
	}

	return token, nil
}

func saveTokenFile(homeDir, token string) error {
	if homeDir == "" {
		return errors.New("home dir is required")
	}
	return os.WriteFile(filepath.Join(homeDir, tokenFileName), []byte(token), tokenFileMode)
}

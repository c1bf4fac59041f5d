package config

import (
	"os"
	"path/filepath"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "daybook"
	keyringUser    = "api-key"
	fallbackFile   = "apikey"
)

func fallbackPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, cliConfigDir, fallbackFile), nil
}

// StoreAPIKey saves the API key in the OS keyring, falling back to a
// 0600 file on headless systems without a keyring daemon.
func StoreAPIKey(key string) error {
	if err := keyring.Set(keyringService, keyringUser, key); err == nil {
		return nil
	}

	path, err := fallbackPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(key), 0600)
}

// LoadAPIKey retrieves the stored API key, preferring the keyring over the
// file fallback. An empty string means no key has been stored.
func LoadAPIKey() string {
	if key, err := keyring.Get(keyringService, keyringUser); err == nil {
		return key
	}

	path, err := fallbackPath()
	if err != nil {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return string(data)
}

// DeleteAPIKey removes the stored key from both locations.
func DeleteAPIKey() error {
	_ = keyring.Delete(keyringService, keyringUser)

	path, err := fallbackPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

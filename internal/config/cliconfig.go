package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const (
	cliConfigDir  = ".daybook"
	cliConfigFile = "config.json"
)

// CLIConfig stores the CLI configuration. The API key itself lives in the
// OS keyring, not in this file.
type CLIConfig struct {
	APIBaseURL string `json:"api_base_url"`
	Email      string `json:"email,omitempty"`
}

// GetCLIConfigPath returns the path to the CLI config file (~/.daybook/config.json)
func GetCLIConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, cliConfigDir, cliConfigFile), nil
}

// LoadCLIConfig reads the CLI configuration, returning an empty config when
// none has been written yet.
func LoadCLIConfig() (*CLIConfig, error) {
	path, err := GetCLIConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &CLIConfig{}, nil
		}
		return nil, err
	}

	var cfg CLIConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SaveCLIConfig writes the CLI configuration.
func SaveCLIConfig(cfg *CLIConfig) error {
	path, err := GetCLIConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

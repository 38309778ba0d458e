package userconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	configDirName  = "meddesk"
	configFileName = "config.json"
)

// Profile holds the non-secret half of a stored session for one environment.
// The token itself lives in the OS keyring; role and email live here so
// `whoami` and the command gate can work without a network round trip.
type Profile struct {
	Role  string `json:"role"`
	Email string `json:"email"`
}

// UserConfig represents the user's local configuration stored in ~/.config/meddesk/config.json
type UserConfig struct {
	SelectedEnv string             `json:"selected_env"`
	Profiles    map[string]Profile `json:"profiles,omitempty"`
}

// GetConfigPath returns the path to the user config file
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".config", configDirName)
	return filepath.Join(configDir, configFileName), nil
}

// Load reads the user configuration file
func Load() (*UserConfig, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	// If config doesn't exist, return empty config
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &UserConfig{}, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read user config file: %w", err)
	}

	var cfg UserConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse user config file: %w", err)
	}

	return &cfg, nil
}

// Save writes the user configuration to a file
func Save(cfg *UserConfig) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	// Create config directory if it doesn't exist
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal user config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write user config file: %w", err)
	}

	return nil
}

// SetSelectedEnv updates the selected environment alias and saves the config
func SetSelectedEnv(alias string) error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	cfg.SelectedEnv = alias
	return Save(cfg)
}

// GetSelectedEnv returns the selected environment alias, or empty string if not set
func GetSelectedEnv() (string, error) {
	cfg, err := Load()
	if err != nil {
		return "", err
	}

	return cfg.SelectedEnv, nil
}

// SetProfile stores the session profile for an environment
func SetProfile(env string, p Profile) error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	if cfg.Profiles == nil {
		cfg.Profiles = make(map[string]Profile)
	}
	cfg.Profiles[env] = p
	return Save(cfg)
}

// GetProfile returns the session profile for an environment, or the zero
// Profile if none is stored
func GetProfile(env string) (Profile, error) {
	cfg, err := Load()
	if err != nil {
		return Profile{}, err
	}

	return cfg.Profiles[env], nil
}

// DeleteProfile removes the session profile for an environment
func DeleteProfile(env string) error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	if _, ok := cfg.Profiles[env]; !ok {
		return nil
	}
	delete(cfg.Profiles, env)
	return Save(cfg)
}

package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

const ConfigFileName = "meddesk.json"

// Environment represents a Meddesk API environment (for example staging
// and production deployments of the same backend).
type Environment struct {
	Alias string `json:"alias"`
	URL   string `json:"url"`
}

// Validate checks that the environment has an alias and a well-formed
// http(s) URL.
func (e *Environment) Validate() error {
	if e.Alias == "" {
		return fmt.Errorf("environment alias is required")
	}
	u, err := url.Parse(e.URL)
	if err != nil {
		return fmt.Errorf("invalid URL for environment '%s': %w", e.Alias, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("environment '%s' URL must start with http:// or https://", e.Alias)
	}
	if u.Host == "" {
		return fmt.Errorf("environment '%s' URL is missing a host", e.Alias)
	}
	return nil
}

// BaseURL returns the environment URL without a trailing slash.
func (e *Environment) BaseURL() string {
	return strings.TrimRight(e.URL, "/")
}

// Config represents the CLI configuration file
type Config struct {
	Environments []Environment `json:"environments"`
}

// DefaultConfig returns a default configuration with an example environment
func DefaultConfig() *Config {
	return &Config{
		Environments: []Environment{
			{
				Alias: "local",
				URL:   "http://localhost:8080",
			},
		},
	}
}

// FindConfigFile searches for meddesk.json in current directory and parent directories
func FindConfigFile() (string, error) {
	currentDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}

	// Search upwards until we find meddesk.json or reach root
	dir := currentDir
	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("meddesk.json not found in %s or any parent directory", currentDir)
}

// Load reads the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadFromCurrentDir loads config from current directory or parent directories
func LoadFromCurrentDir() (*Config, error) {
	configPath, err := FindConfigFile()
	if err != nil {
		return nil, err
	}

	return Load(configPath)
}

// Save writes the configuration to a file
func Save(path string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetEnvironmentByAlias returns an environment by its alias
func (c *Config) GetEnvironmentByAlias(alias string) (*Environment, error) {
	for _, env := range c.Environments {
		if env.Alias == alias {
			return &env, nil
		}
	}
	return nil, fmt.Errorf("environment with alias '%s' not found", alias)
}

// GetDefaultEnvironment returns the first environment in the list
func (c *Config) GetDefaultEnvironment() (*Environment, error) {
	if len(c.Environments) == 0 {
		return nil, fmt.Errorf("no environments configured in meddesk.json")
	}
	return &c.Environments[0], nil
}

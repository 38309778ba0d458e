package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEnvironment_Validate(t *testing.T) {
	tests := []struct {
		name        string
		env         Environment
		shouldError bool
	}{
		{
			name:        "valid https environment",
			env:         Environment{Alias: "production", URL: "https://api.meddesk.example"},
			shouldError: false,
		},
		{
			name:        "valid http environment",
			env:         Environment{Alias: "local", URL: "http://localhost:8080"},
			shouldError: false,
		},
		{
			name:        "missing alias",
			env:         Environment{URL: "https://api.meddesk.example"},
			shouldError: true,
		},
		{
			name:        "missing scheme",
			env:         Environment{Alias: "production", URL: "api.meddesk.example"},
			shouldError: true,
		},
		{
			name:        "unsupported scheme",
			env:         Environment{Alias: "production", URL: "ftp://api.meddesk.example"},
			shouldError: true,
		},
		{
			name:        "empty URL",
			env:         Environment{Alias: "production"},
			shouldError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.env.Validate()
			if tt.shouldError && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.shouldError && err != nil {
				t.Errorf("expected no error, got: %v", err)
			}
		})
	}
}

func TestEnvironment_BaseURL(t *testing.T) {
	env := Environment{Alias: "local", URL: "http://localhost:8080/"}
	if got := env.BaseURL(); got != "http://localhost:8080" {
		t.Errorf("BaseURL() = %q, want %q", got, "http://localhost:8080")
	}
}

func TestConfig_GetEnvironmentByAlias(t *testing.T) {
	cfg := &Config{
		Environments: []Environment{
			{Alias: "production", URL: "https://api.meddesk.example"},
			{Alias: "staging", URL: "https://staging.meddesk.example"},
		},
	}

	env, err := cfg.GetEnvironmentByAlias("staging")
	if err != nil {
		t.Fatalf("GetEnvironmentByAlias failed: %v", err)
	}
	if env.URL != "https://staging.meddesk.example" {
		t.Errorf("URL = %q, want staging URL", env.URL)
	}

	if _, err := cfg.GetEnvironmentByAlias("missing"); err == nil {
		t.Error("expected error for unknown alias")
	}
}

func TestConfig_GetDefaultEnvironment(t *testing.T) {
	empty := &Config{}
	if _, err := empty.GetDefaultEnvironment(); err == nil {
		t.Error("expected error for empty config")
	}

	cfg := &Config{
		Environments: []Environment{
			{Alias: "production", URL: "https://api.meddesk.example"},
			{Alias: "staging", URL: "https://staging.meddesk.example"},
		},
	}
	env, err := cfg.GetDefaultEnvironment()
	if err != nil {
		t.Fatalf("GetDefaultEnvironment failed: %v", err)
	}
	if env.Alias != "production" {
		t.Errorf("Alias = %q, want %q", env.Alias, "production")
	}
}

func TestConfig_SaveLoadRoundtrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)

	cfg := &Config{
		Environments: []Environment{
			{Alias: "production", URL: "https://api.meddesk.example"},
		},
	}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded.Environments) != 1 {
		t.Fatalf("expected 1 environment, got %d", len(loaded.Environments))
	}
	if loaded.Environments[0] != cfg.Environments[0] {
		t.Errorf("roundtrip mismatch: got %+v, want %+v", loaded.Environments[0], cfg.Environments[0])
	}
}

func TestFindConfigFile_SearchesParents(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("failed to create nested dir: %v", err)
	}

	cfgPath := filepath.Join(root, ConfigFileName)
	if err := Save(cfgPath, &Config{}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	origDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	defer os.Chdir(origDir)

	if err := os.Chdir(nested); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}

	found, err := FindConfigFile()
	if err != nil {
		t.Fatalf("FindConfigFile failed: %v", err)
	}

	// macOS tempdirs resolve through symlinks, compare the file contents path base
	if filepath.Base(found) != ConfigFileName {
		t.Errorf("found %q, want a path ending in %q", found, ConfigFileName)
	}
}

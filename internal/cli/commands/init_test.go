package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/meddesk-dev/meddesk/internal/cli/config"
)

func chdirTemp(t *testing.T) string {
	t.Helper()

	tempDir := t.TempDir()
	originalDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}
	t.Cleanup(func() { os.Chdir(originalDir) })

	return tempDir
}

func TestInitCommand_NewConfig(t *testing.T) {
	tempDir := chdirTemp(t)

	if err := runInit("https://api.meddesk.example", ""); err != nil {
		t.Fatalf("init command failed: %v", err)
	}

	configPath := filepath.Join(tempDir, config.ConfigFileName)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatal("meddesk.json was not created")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("failed to load created config: %v", err)
	}

	if len(cfg.Environments) != 1 {
		t.Fatalf("expected 1 environment, got %d", len(cfg.Environments))
	}
	if cfg.Environments[0].URL != "https://api.meddesk.example" {
		t.Errorf("URL = %q, want %q", cfg.Environments[0].URL, "https://api.meddesk.example")
	}
	// The first environment defaults to the production alias
	if cfg.Environments[0].Alias != "production" {
		t.Errorf("alias = %q, want %q", cfg.Environments[0].Alias, "production")
	}
}

func TestInitCommand_AppendsToExistingConfig(t *testing.T) {
	tempDir := chdirTemp(t)

	if err := runInit("https://api.meddesk.example", ""); err != nil {
		t.Fatalf("first init failed: %v", err)
	}
	if err := runInit("https://staging.meddesk.example", "staging"); err != nil {
		t.Fatalf("second init failed: %v", err)
	}

	cfg, err := config.Load(filepath.Join(tempDir, config.ConfigFileName))
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if len(cfg.Environments) != 2 {
		t.Fatalf("expected 2 environments, got %d", len(cfg.Environments))
	}
	if cfg.Environments[1].Alias != "staging" {
		t.Errorf("alias = %q, want %q", cfg.Environments[1].Alias, "staging")
	}
}

func TestInitCommand_DuplicateURLIsNoop(t *testing.T) {
	tempDir := chdirTemp(t)

	if err := runInit("https://api.meddesk.example", ""); err != nil {
		t.Fatalf("first init failed: %v", err)
	}
	if err := runInit("https://api.meddesk.example", "other"); err != nil {
		t.Fatalf("duplicate init failed: %v", err)
	}

	cfg, err := config.Load(filepath.Join(tempDir, config.ConfigFileName))
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if len(cfg.Environments) != 1 {
		t.Errorf("expected duplicate URL to be skipped, got %d environments", len(cfg.Environments))
	}
}

func TestInitCommand_RejectsInvalidURL(t *testing.T) {
	chdirTemp(t)

	if err := runInit("not-a-url", ""); err == nil {
		t.Fatal("expected init to reject a URL without a scheme")
	}
}

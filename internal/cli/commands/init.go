package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/meddesk-dev/meddesk/internal/cli/config"
)

// NewInitCmd creates the init command
func NewInitCmd() *cobra.Command {
	var alias string

	cmd := &cobra.Command{
		Use:   "init <api-url>",
		Short: "Register a Meddesk environment in ./meddesk.json",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(args[0], alias)
		},
	}

	cmd.Flags().StringVar(&alias, "alias", "", "Alias for the environment (defaults to 'production' for the first one)")

	return cmd
}

func runInit(apiURL, alias string) error {
	currentDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	configPath := filepath.Join(currentDir, config.ConfigFileName)

	var cfg *config.Config
	isNewConfig := false

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load existing config: %w", err)
		}
		fmt.Println("Found existing meddesk.json")
	} else {
		cfg = &config.Config{
			Environments: []config.Environment{},
		}
		isNewConfig = true
	}

	for _, env := range cfg.Environments {
		if env.URL == apiURL {
			fmt.Printf("Environment with URL %s already exists in meddesk.json\n", apiURL)
			return nil
		}
	}

	if alias == "" {
		if len(cfg.Environments) == 0 {
			alias = "production"
		} else {
			alias = fmt.Sprintf("env-%d", len(cfg.Environments)+1)
		}
	}

	env := config.Environment{
		Alias: alias,
		URL:   apiURL,
	}
	if err := env.Validate(); err != nil {
		return err
	}

	cfg.Environments = append(cfg.Environments, env)

	if err := config.Save(configPath, cfg); err != nil {
		return err
	}

	if isNewConfig {
		fmt.Printf("✓ Created ./meddesk.json with environment %s (%s)\n", alias, apiURL)
	} else {
		fmt.Printf("✓ Added environment %s (%s) to ./meddesk.json\n", alias, apiURL)
	}

	fmt.Println("\nNext steps:")
	fmt.Println("  1. Run 'meddesk setup' if this is a fresh server")
	fmt.Println("  2. Run 'meddesk login' to authenticate")

	return nil
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meddesk-dev/meddesk/internal/cli/client"
)

// NewStatsCmd creates the stats command
func NewStatsCmd() *cobra.Command {
	var envAlias string

	cmd := &cobra.Command{
		Use:               "stats",
		Short:             "Show platform version and entity counts",
		PersistentPreRunE: requireAdmin(&envAlias),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnvironment(envAlias)
			if err != nil {
				return err
			}

			info, err := apiClient(env).GetSystemInfo()
			if err != nil {
				return err
			}

			fmt.Printf("Server version: %s\n\n", info.Version)
			fmt.Printf("Users:          %d\n", info.Users)
			fmt.Printf("Doctors:        %d\n", info.Doctors)
			fmt.Printf("Centers:        %d\n", info.Centers)
			fmt.Printf("Products:       %d\n", info.Products)
			fmt.Printf("Blogs:          %d\n", info.Blogs)
			fmt.Printf("Carousels:      %d\n", info.Carousels)
			fmt.Printf("Open tickets:   %d\n", info.OpenTickets)
			fmt.Printf("Upcoming meets: %d\n", info.UpcomingMeets)
			return nil
		},
	}

	cmd.Flags().StringVar(&envAlias, "env", "", "Environment alias (uses selected environment if not specified)")

	return cmd
}

// NewConfigCmd creates the config command group for the server's runtime
// configuration
func NewConfigCmd() *cobra.Command {
	var envAlias string

	cmd := &cobra.Command{
		Use:               "config",
		Short:             "Inspect and change the server's runtime configuration",
		PersistentPreRunE: requireAdmin(&envAlias),
	}

	cmd.PersistentFlags().StringVar(&envAlias, "env", "", "Environment alias (uses selected environment if not specified)")

	cmd.AddCommand(newConfigShowCmd(&envAlias))
	cmd.AddCommand(newConfigSetCmd(&envAlias))

	return cmd
}

func newConfigShowCmd(envAlias *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the server configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnvironment(*envAlias)
			if err != nil {
				return err
			}

			cfg, err := apiClient(env).GetConfig()
			if err != nil {
				return err
			}

			schedule := cfg.CleanupSchedule
			if schedule == "" {
				schedule = "(disabled)"
			}

			fmt.Printf("Cleanup schedule:       %s\n", schedule)
			if cfg.LastCleanupAt != nil {
				fmt.Printf("Last cleanup:           %s\n", cfg.LastCleanupAt.Format("2006-01-02 15:04"))
			}
			if cfg.NextCleanupAt != nil {
				fmt.Printf("Next cleanup:           %s\n", cfg.NextCleanupAt.Format("2006-01-02 15:04"))
			}
			fmt.Printf("Ticket auto-close days: %d\n", cfg.TicketAutoCloseDays)
			return nil
		},
	}
}

func newConfigSetCmd(envAlias *string) *cobra.Command {
	var cleanupSchedule string
	var autoCloseDays int

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change the server configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnvironment(*envAlias)
			if err != nil {
				return err
			}

			var req client.UpdateConfigRequest
			if cmd.Flags().Changed("cleanup-schedule") {
				req.CleanupSchedule = &cleanupSchedule
			}
			if cmd.Flags().Changed("ticket-auto-close-days") {
				req.TicketAutoCloseDays = &autoCloseDays
			}

			if req.CleanupSchedule == nil && req.TicketAutoCloseDays == nil {
				return fmt.Errorf("nothing to update (use --cleanup-schedule and/or --ticket-auto-close-days)")
			}

			if _, err := apiClient(env).UpdateConfig(req); err != nil {
				return err
			}

			fmt.Println("✓ Configuration updated")
			return nil
		},
	}

	cmd.Flags().StringVar(&cleanupSchedule, "cleanup-schedule", "", "Cron expression for the nightly sweep, empty disables it")
	cmd.Flags().IntVar(&autoCloseDays, "ticket-auto-close-days", 0, "Days a resolved ticket stays open before auto-close")

	return cmd
}

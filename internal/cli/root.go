package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meddesk-dev/meddesk/internal/cli/commands"
	"github.com/meddesk-dev/meddesk/internal/cli/update"
)

var version = "dev" // Will be set during build

var rootCmd = &cobra.Command{
	Use:   "meddesk",
	Short: "Meddesk - admin CLI for the Meddesk platform",
	Long: `Meddesk CLI - Manage the Meddesk healthcare platform from your terminal.

Content (carousels, blogs), the care network (centers, doctors), the shop,
user accounts, support tickets, coin ledgers and video consultations are all
managed through an authenticated admin session.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Skip update check for the update and version commands
		if cmd.Name() == "update" || cmd.Name() == "version" {
			return
		}

		// Check for updates (runs before every command except update/version)
		update.PrintUpdateNotification(version)
	},
}

func init() {
	// The gated command groups carry their own PersistentPreRunE, and by
	// default cobra only runs the closest hook in the chain. Traverse mode
	// runs the root's update-check hook as well.
	cobra.EnableTraverseRunHooks = true

	// Add version command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("meddesk version %s\n", version)
		},
	})

	// Environment and session commands
	rootCmd.AddCommand(commands.NewInitCmd())
	rootCmd.AddCommand(commands.NewSelectEnvCmd())
	rootCmd.AddCommand(commands.NewSetupCmd())
	rootCmd.AddCommand(commands.NewLoginCmd())
	rootCmd.AddCommand(commands.NewLogoutCmd())
	rootCmd.AddCommand(commands.NewWhoamiCmd())
	rootCmd.AddCommand(commands.NewUpdateCmd(version))

	// Admin command groups, gated on a stored admin session
	rootCmd.AddCommand(commands.NewCarouselsCmd())
	rootCmd.AddCommand(commands.NewBlogsCmd())
	rootCmd.AddCommand(commands.NewCentersCmd())
	rootCmd.AddCommand(commands.NewAlignersCmd())
	rootCmd.AddCommand(commands.NewTransformationsCmd())
	rootCmd.AddCommand(commands.NewBiteTypesCmd())
	rootCmd.AddCommand(commands.NewContactVideosCmd())
	rootCmd.AddCommand(commands.NewDoctorsCmd())
	rootCmd.AddCommand(commands.NewProductsCmd())
	rootCmd.AddCommand(commands.NewUsersCmd())
	rootCmd.AddCommand(commands.NewTicketsCmd())
	rootCmd.AddCommand(commands.NewCoinsCmd())
	rootCmd.AddCommand(commands.NewMeetsCmd())
	rootCmd.AddCommand(commands.NewStatsCmd())
	rootCmd.AddCommand(commands.NewConfigCmd())
}

// Execute runs the root command
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

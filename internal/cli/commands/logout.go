package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewLogoutCmd creates the logout command
func NewLogoutCmd() *cobra.Command {
	var envAlias string

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session for an environment",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnvironment(envAlias)
			if err != nil {
				return err
			}

			if err := sessionStore(env).Clear(); err != nil {
				return fmt.Errorf("failed to clear session: %w", err)
			}

			fmt.Printf("✓ Logged out of %s\n", env.Alias)
			return nil
		},
	}

	cmd.Flags().StringVar(&envAlias, "env", "", "Environment alias (uses selected environment if not specified)")

	return cmd
}

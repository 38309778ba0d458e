package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewWhoamiCmd creates the whoami command
func NewWhoamiCmd() *cobra.Command {
	var envAlias string

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the account behind the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnvironment(envAlias)
			if err != nil {
				return err
			}

			sess, err := sessionStore(env).Get()
			if err != nil {
				return fmt.Errorf("failed to read session: %w", err)
			}

			if !sess.IsAuthorizedAdmin() {
				fmt.Printf("Not logged in to %s\n", env.Alias)
				return nil
			}

			// Verify against the server rather than trusting the local copy
			user, err := apiClient(env).Me()
			if err != nil {
				return err
			}

			fmt.Printf("Logged in to %s as %s (%s)\n", env.Alias, user.Name, user.Email)
			fmt.Printf("  Role: %s\n", user.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&envAlias, "env", "", "Environment alias (uses selected environment if not specified)")

	return cmd
}

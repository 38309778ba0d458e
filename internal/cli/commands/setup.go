package commands

import (
	"fmt"

	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/meddesk-dev/meddesk/internal/cli/session"
)

// NewSetupCmd creates the setup command
func NewSetupCmd() *cobra.Command {
	var email, password, name, envAlias string

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Create the first admin account on a fresh server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetup(envAlias, email, password, name)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address for the admin account")
	cmd.Flags().StringVar(&password, "password", "", "Password (will prompt if not provided)")
	cmd.Flags().StringVar(&name, "name", "", "Display name for the admin account")
	cmd.Flags().StringVar(&envAlias, "env", "", "Environment alias (uses selected environment if not specified)")

	return cmd
}

func runSetup(envAlias, email, password, name string) error {
	if email == "" {
		return fmt.Errorf("email is required (use --email flag)")
	}

	env, err := resolveEnvironment(envAlias)
	if err != nil {
		return err
	}

	if password == "" {
		if term.IsTerminal(int(syscall.Stdin)) {
			fmt.Print("Password: ")
			bytePassword, err := term.ReadPassword(int(syscall.Stdin))
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			password = string(bytePassword)
			fmt.Println()
		} else {
			return fmt.Errorf("password is required in non-interactive mode (use --password flag)")
		}
	}

	fmt.Printf("Setting up %s (%s)...\n", env.Alias, env.URL)

	setupResp, err := apiClient(env).Setup(email, password, name)
	if err != nil {
		return err
	}

	// The server logs the new admin straight in, keep that session
	sess := session.Session{
		Token: setupResp.Token,
		Role:  setupResp.User.Role,
		Email: setupResp.User.Email,
	}
	if err := sessionStore(env).Set(sess); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	fmt.Println("✓ Setup complete!")
	fmt.Printf("  Admin: %s (%s)\n", setupResp.User.Name, setupResp.User.Email)

	return nil
}

package commands

import (
	"fmt"
	"os"

	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/meddesk-dev/meddesk/internal/cli/client"
	"github.com/meddesk-dev/meddesk/internal/cli/session"
)

// NewLoginCmd creates the login command
func NewLoginCmd() *cobra.Command {
	var email, password, envAlias string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with a Meddesk environment",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(envAlias, email, password)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (or set MEDDESK_EMAIL)")
	cmd.Flags().StringVar(&password, "password", "", "Password (or set MEDDESK_PASSWORD, will prompt if not provided)")
	cmd.Flags().StringVar(&envAlias, "env", "", "Environment alias (uses selected environment if not specified)")

	return cmd
}

func runLogin(envAlias, email, password string) error {
	// Check for environment variables (useful for CI/CD)
	if email == "" {
		email = os.Getenv("MEDDESK_EMAIL")
	}
	if password == "" {
		password = os.Getenv("MEDDESK_PASSWORD")
	}

	if email == "" {
		return fmt.Errorf("email is required (use --email flag or MEDDESK_EMAIL env var)")
	}

	env, err := resolveEnvironment(envAlias)
	if err != nil {
		return err
	}

	// Prompt for password if not provided via flag or env var
	if password == "" {
		// Check if stdin is a terminal (not piped)
		if term.IsTerminal(int(syscall.Stdin)) {
			fmt.Print("Password: ")
			bytePassword, err := term.ReadPassword(int(syscall.Stdin))
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			password = string(bytePassword)
			fmt.Println() // New line after password input
		} else {
			return fmt.Errorf("password is required in non-interactive mode (use --password flag or MEDDESK_PASSWORD env var)")
		}
	}

	fmt.Printf("Logging in to %s (%s)...\n", env.Alias, env.URL)

	store := sessionStore(env)
	loginResp, err := performLogin(apiClient(env), store, email, password)
	if err != nil {
		return err
	}

	fmt.Println("✓ Login successful!")
	fmt.Printf("  User: %s (%s)\n", loginResp.User.Name, loginResp.User.Email)
	fmt.Printf("  Role: %s\n", loginResp.User.Role)

	return nil
}

// performLogin exchanges credentials for a token and persists the session.
// A failed exchange returns before the store is touched, so whatever session
// existed beforehand survives a bad password attempt.
func performLogin(api *client.Client, store session.Store, email, password string) (*client.LoginResponse, error) {
	if password == "" {
		return nil, fmt.Errorf("password is required")
	}

	loginResp, err := api.Login(email, password)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	sess := session.Session{
		Token: loginResp.Token,
		Role:  loginResp.User.Role,
		Email: loginResp.User.Email,
	}
	if err := store.Set(sess); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return loginResp, nil
}

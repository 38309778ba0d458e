package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewUsersCmd creates the users command group
func NewUsersCmd() *cobra.Command {
	var envAlias string

	cmd := &cobra.Command{
		Use:               "users",
		Short:             "Manage platform accounts",
		PersistentPreRunE: requireAdmin(&envAlias),
	}

	cmd.PersistentFlags().StringVar(&envAlias, "env", "", "Environment alias (uses selected environment if not specified)")

	cmd.AddCommand(newUsersListCmd(&envAlias))
	cmd.AddCommand(newUsersGetCmd(&envAlias))
	cmd.AddCommand(newUsersDeleteCmd(&envAlias))

	return cmd
}

func newUsersListCmd(envAlias *string) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnvironment(*envAlias)
			if err != nil {
				return err
			}

			users, err := apiClient(env).ListUsers()
			if err != nil {
				return err
			}

			if len(users) == 0 {
				fmt.Println("No users found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tEMAIL\tNAME\tROLE\tCREATED")
			for _, user := range users {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					user.ID, user.Email, user.Name, user.Role, user.CreatedAt.Format("2006-01-02"))
			}
			return w.Flush()
		},
	}
}

func newUsersGetCmd(envAlias *string) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnvironment(*envAlias)
			if err != nil {
				return err
			}

			user, err := apiClient(env).GetUser(args[0])
			if err != nil {
				return err
			}

			fmt.Printf("ID:      %s\n", user.ID)
			fmt.Printf("Email:   %s\n", user.Email)
			fmt.Printf("Name:    %s\n", user.Name)
			fmt.Printf("Phone:   %s\n", user.Phone)
			fmt.Printf("Role:    %s\n", user.Role)
			fmt.Printf("Created: %s\n", user.CreatedAt.Format("2006-01-02 15:04"))
			return nil
		},
	}
}

func newUsersDeleteCmd(envAlias *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnvironment(*envAlias)
			if err != nil {
				return err
			}

			if err := apiClient(env).DeleteUser(args[0]); err != nil {
				return err
			}

			fmt.Printf("✓ Deleted user %s\n", args[0])
			return nil
		},
	}
}

package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewTicketsCmd creates the tickets command group
func NewTicketsCmd() *cobra.Command {
	var envAlias string

	cmd := &cobra.Command{
		Use:               "tickets",
		Short:             "Manage support tickets",
		PersistentPreRunE: requireAdmin(&envAlias),
	}

	cmd.PersistentFlags().StringVar(&envAlias, "env", "", "Environment alias (uses selected environment if not specified)")

	cmd.AddCommand(newTicketsListCmd(&envAlias))
	cmd.AddCommand(newTicketsUpdateCmd(&envAlias))

	return cmd
}

func newTicketsListCmd(envAlias *string) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List support tickets",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnvironment(*envAlias)
			if err != nil {
				return err
			}

			tickets, err := apiClient(env).ListTickets(status)
			if err != nil {
				return err
			}

			if len(tickets) == 0 {
				fmt.Println("No tickets found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSTATUS\tSUBJECT\tUSER\tCREATED")
			for _, ticket := range tickets {
				userEmail := ticket.UserID
				if ticket.User != nil {
					userEmail = ticket.User.Email
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					ticket.ID, ticket.Status, ticket.Subject, userEmail,
					ticket.CreatedAt.Format("2006-01-02"))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by status (open, pending, resolved, closed)")

	return cmd
}

func newTicketsUpdateCmd(envAlias *string) *cobra.Command {
	var status, note string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a ticket's status or admin note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnvironment(*envAlias)
			if err != nil {
				return err
			}

			if status == "" && note == "" {
				return fmt.Errorf("nothing to update (use --status and/or --note)")
			}

			ticket, err := apiClient(env).UpdateTicket(args[0], status, note)
			if err != nil {
				return err
			}

			fmt.Printf("✓ Ticket %s is now %s\n", ticket.ID, ticket.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "New status (open, pending, resolved, closed)")
	cmd.Flags().StringVar(&note, "note", "", "Admin note")

	return cmd
}

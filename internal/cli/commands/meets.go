package commands

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

// NewMeetsCmd creates the meets command group
func NewMeetsCmd() *cobra.Command {
	var envAlias string

	cmd := &cobra.Command{
		Use:               "meets",
		Short:             "Manage scheduled video consultations",
		PersistentPreRunE: requireAdmin(&envAlias),
	}

	cmd.PersistentFlags().StringVar(&envAlias, "env", "", "Environment alias (uses selected environment if not specified)")

	cmd.AddCommand(newMeetsListCmd(&envAlias))
	cmd.AddCommand(newMeetsAssignCmd(&envAlias))
	cmd.AddCommand(newMeetsDeleteCmd(&envAlias))

	return cmd
}

func newMeetsListCmd(envAlias *string) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List scheduled meets",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnvironment(*envAlias)
			if err != nil {
				return err
			}

			meets, err := apiClient(env).ListMeets()
			if err != nil {
				return err
			}

			if len(meets) == 0 {
				fmt.Println("No meets scheduled.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tUSER\tDOCTOR\tSCHEDULED\tURL")
			for _, meet := range meets {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					meet.ID, meet.UserID, meet.DoctorID,
					meet.ScheduledAt.Format("2006-01-02 15:04"), meet.MeetURL)
			}
			return w.Flush()
		},
	}
}

func newMeetsAssignCmd(envAlias *string) *cobra.Command {
	var userID, doctorID, meetURL, at string

	cmd := &cobra.Command{
		Use:   "assign",
		Short: "Book a video consultation between a user and a doctor",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnvironment(*envAlias)
			if err != nil {
				return err
			}

			scheduledAt, err := time.Parse(time.RFC3339, at)
			if err != nil {
				return fmt.Errorf("invalid --at value, expected RFC3339 (e.g. 2026-09-01T15:00:00Z): %w", err)
			}

			meet, err := apiClient(env).AssignMeet(userID, doctorID, meetURL, scheduledAt)
			if err != nil {
				return err
			}

			fmt.Printf("✓ Booked meet %s for %s\n", meet.ID, meet.ScheduledAt.Format("2006-01-02 15:04"))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User ID")
	cmd.Flags().StringVar(&doctorID, "doctor", "", "Doctor ID")
	cmd.Flags().StringVar(&meetURL, "url", "", "Video call URL")
	cmd.Flags().StringVar(&at, "at", "", "Scheduled time in RFC3339")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("doctor")
	_ = cmd.MarkFlagRequired("url")
	_ = cmd.MarkFlagRequired("at")

	return cmd
}

func newMeetsDeleteCmd(envAlias *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Cancel a scheduled meet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnvironment(*envAlias)
			if err != nil {
				return err
			}

			if err := apiClient(env).DeleteMeet(args[0]); err != nil {
				return err
			}

			fmt.Printf("✓ Cancelled meet %s\n", args[0])
			return nil
		},
	}
}

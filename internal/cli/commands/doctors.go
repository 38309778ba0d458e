package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/meddesk-dev/meddesk/internal/cli/client"
)

// NewDoctorsCmd creates the doctors command group
func NewDoctorsCmd() *cobra.Command {
	var envAlias string

	cmd := &cobra.Command{
		Use:               "doctors",
		Short:             "Manage doctor profiles",
		PersistentPreRunE: requireAdmin(&envAlias),
	}

	cmd.PersistentFlags().StringVar(&envAlias, "env", "", "Environment alias (uses selected environment if not specified)")

	cmd.AddCommand(newDoctorsListCmd(&envAlias))
	cmd.AddCommand(newDoctorsCreateCmd(&envAlias))
	cmd.AddCommand(newDoctorsUpdateCmd(&envAlias))
	cmd.AddCommand(newDoctorsDeleteCmd(&envAlias))

	return cmd
}

func newDoctorsListCmd(envAlias *string) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List doctor profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnvironment(*envAlias)
			if err != nil {
				return err
			}

			doctors, err := apiClient(env).ListDoctors()
			if err != nil {
				return err
			}

			if len(doctors) == 0 {
				fmt.Println("No doctors found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSPECIALTY")
			for _, doctor := range doctors {
				fmt.Fprintf(w, "%s\t%s\t%s\n", doctor.ID, doctor.Name, doctor.Specialty)
			}
			return w.Flush()
		},
	}
}

func doctorDraftFlags(cmd *cobra.Command, draft *client.DoctorDraft) {
	cmd.Flags().StringVar(&draft.Name, "name", "", "Doctor name")
	cmd.Flags().StringVar(&draft.Specialty, "specialty", "", "Medical specialty")
	cmd.Flags().StringVar(&draft.Bio, "bio", "", "Short biography")
	cmd.Flags().StringVar(&draft.PhotoPath, "photo", "", "Path to the profile photo")
}

func newDoctorsCreateCmd(envAlias *string) *cobra.Command {
	var draft client.DoctorDraft

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a doctor profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnvironment(*envAlias)
			if err != nil {
				return err
			}

			doctor, err := apiClient(env).CreateDoctor(draft)
			if err != nil {
				return err
			}

			fmt.Printf("✓ Created doctor %s (%s)\n", doctor.Name, doctor.ID)
			return nil
		},
	}

	doctorDraftFlags(cmd, &draft)
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("specialty")

	return cmd
}

func newDoctorsUpdateCmd(envAlias *string) *cobra.Command {
	var draft client.DoctorDraft

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a doctor profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnvironment(*envAlias)
			if err != nil {
				return err
			}

			doctor, err := apiClient(env).UpdateDoctor(args[0], draft)
			if err != nil {
				return err
			}

			fmt.Printf("✓ Updated doctor %s\n", doctor.Name)
			return nil
		},
	}

	doctorDraftFlags(cmd, &draft)

	return cmd
}

func newDoctorsDeleteCmd(envAlias *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a doctor profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnvironment(*envAlias)
			if err != nil {
				return err
			}

			if err := apiClient(env).DeleteDoctor(args[0]); err != nil {
				return err
			}

			fmt.Printf("✓ Deleted doctor %s\n", args[0])
			return nil
		},
	}
}

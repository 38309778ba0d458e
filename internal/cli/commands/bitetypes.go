package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewBiteTypesCmd creates the bite-types command group
func NewBiteTypesCmd() *cobra.Command {
	var envAlias string

	cmd := &cobra.Command{
		Use:               "bite-types",
		Short:             "Manage treatable bite conditions and their explainer videos",
		PersistentPreRunE: requireAdmin(&envAlias),
	}

	cmd.PersistentFlags().StringVar(&envAlias, "env", "", "Environment alias (uses selected environment if not specified)")

	cmd.AddCommand(newBiteTypesListCmd(&envAlias))
	cmd.AddCommand(newBiteTypesCreateCmd(&envAlias))
	cmd.AddCommand(newBiteTypesRenameCmd(&envAlias))
	cmd.AddCommand(newBiteTypesDeleteCmd(&envAlias))

	return cmd
}

func newBiteTypesListCmd(envAlias *string) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List bite types",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnvironment(*envAlias)
			if err != nil {
				return err
			}

			biteTypes, err := apiClient(env).ListBiteTypes()
			if err != nil {
				return err
			}

			if len(biteTypes) == 0 {
				fmt.Println("No bite types found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tVIDEOS")
			for _, biteType := range biteTypes {
				fmt.Fprintf(w, "%s\t%s\t%d\n", biteType.ID, biteType.Title, len(biteType.VideoPaths))
			}
			return w.Flush()
		},
	}
}

func newBiteTypesCreateCmd(envAlias *string) *cobra.Command {
	var title string
	var videos []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a bite type with its explainer videos",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnvironment(*envAlias)
			if err != nil {
				return err
			}

			biteType, err := apiClient(env).CreateBiteType(title, videos)
			if err != nil {
				return err
			}

			fmt.Printf("✓ Created bite type %s (%s)\n", biteType.Title, biteType.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Bite condition name, e.g. \"Deep bite\"")
	cmd.Flags().StringArrayVar(&videos, "video", nil, "Path to an explainer video (repeatable)")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("video")

	return cmd
}

func newBiteTypesRenameCmd(envAlias *string) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "rename <id>",
		Short: "Rename a bite type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnvironment(*envAlias)
			if err != nil {
				return err
			}

			biteType, err := apiClient(env).RenameBiteType(args[0], title)
			if err != nil {
				return err
			}

			fmt.Printf("✓ Renamed bite type %s to %s\n", biteType.ID, biteType.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New bite condition name")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newBiteTypesDeleteCmd(envAlias *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a bite type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnvironment(*envAlias)
			if err != nil {
				return err
			}

			if err := apiClient(env).DeleteBiteType(args[0]); err != nil {
				return err
			}

			fmt.Printf("✓ Deleted bite type %s\n", args[0])
			return nil
		},
	}
}

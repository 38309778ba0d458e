package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewAlignersCmd creates the aligners command group
func NewAlignersCmd() *cobra.Command {
	var envAlias string

	cmd := &cobra.Command{
		Use:               "aligners",
		Short:             "Manage the aligner offering and its media galleries",
		PersistentPreRunE: requireAdmin(&envAlias),
	}

	cmd.PersistentFlags().StringVar(&envAlias, "env", "", "Environment alias (uses selected environment if not specified)")

	cmd.AddCommand(newAlignersListCmd(&envAlias))
	cmd.AddCommand(newAlignersCreateCmd(&envAlias))
	cmd.AddCommand(newAlignersUpdateCmd(&envAlias))
	cmd.AddCommand(newAlignersDeleteCmd(&envAlias))

	return cmd
}

func newAlignersListCmd(envAlias *string) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List aligner offerings",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnvironment(*envAlias)
			if err != nil {
				return err
			}

			aligners, err := apiClient(env).ListAligners()
			if err != nil {
				return err
			}

			if len(aligners) == 0 {
				fmt.Println("No aligner offerings found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tIMAGES\tVIDEOS\tPRICE")
			for _, aligner := range aligners {
				fmt.Fprintf(w, "%s\t%d\t%d\t%s\n",
					aligner.ID, len(aligner.ImagePaths), len(aligner.VideoPaths), aligner.Price)
			}
			return w.Flush()
		},
	}
}

func newAlignersCreateCmd(envAlias *string) *cobra.Command {
	var price string
	var images, videos []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an aligner offering",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnvironment(*envAlias)
			if err != nil {
				return err
			}

			aligner, err := apiClient(env).CreateAligner(price, images, videos)
			if err != nil {
				return err
			}

			fmt.Printf("✓ Created aligner %s (%d images, %d videos)\n",
				aligner.ID, len(aligner.ImagePaths), len(aligner.VideoPaths))
			return nil
		},
	}

	cmd.Flags().StringVar(&price, "price", "", "Price text shown with the offering")
	cmd.Flags().StringArrayVar(&images, "image", nil, "Path to a gallery image (repeatable)")
	cmd.Flags().StringArrayVar(&videos, "video", nil, "Path to a gallery video (repeatable)")
	_ = cmd.MarkFlagRequired("price")

	return cmd
}

func newAlignersUpdateCmd(envAlias *string) *cobra.Command {
	var price string
	var images, videos []string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an aligner offering (new media replaces the gallery)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnvironment(*envAlias)
			if err != nil {
				return err
			}

			aligner, err := apiClient(env).UpdateAligner(args[0], price, images, videos)
			if err != nil {
				return err
			}

			fmt.Printf("✓ Updated aligner %s\n", aligner.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&price, "price", "", "New price text")
	cmd.Flags().StringArrayVar(&images, "image", nil, "Path to a replacement gallery image (repeatable)")
	cmd.Flags().StringArrayVar(&videos, "video", nil, "Path to a replacement gallery video (repeatable)")

	return cmd
}

func newAlignersDeleteCmd(envAlias *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an aligner offering",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnvironment(*envAlias)
			if err != nil {
				return err
			}

			if err := apiClient(env).DeleteAligner(args[0]); err != nil {
				return err
			}

			fmt.Printf("✓ Deleted aligner %s\n", args[0])
			return nil
		},
	}
}

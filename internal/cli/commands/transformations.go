package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/meddesk-dev/meddesk/internal/cli/client"
)

// NewTransformationsCmd creates the transformations command group
func NewTransformationsCmd() *cobra.Command {
	var envAlias string

	cmd := &cobra.Command{
		Use:               "transformations",
		Short:             "Manage before/after treatment showcase posts",
		PersistentPreRunE: requireAdmin(&envAlias),
	}

	cmd.PersistentFlags().StringVar(&envAlias, "env", "", "Environment alias (uses selected environment if not specified)")

	cmd.AddCommand(newTransformationsListCmd(&envAlias))
	cmd.AddCommand(newTransformationsCreateCmd(&envAlias))
	cmd.AddCommand(newTransformationsUpdateCmd(&envAlias))
	cmd.AddCommand(newTransformationsDeleteCmd(&envAlias))

	return cmd
}

func newTransformationsListCmd(envAlias *string) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List showcase posts",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnvironment(*envAlias)
			if err != nil {
				return err
			}

			posts, err := apiClient(env).ListTransformations()
			if err != nil {
				return err
			}

			if len(posts) == 0 {
				fmt.Println("No showcase posts found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tIMAGE")
			for _, post := range posts {
				fmt.Fprintf(w, "%s\t%s\t%s\n", post.ID, post.Title, post.ImagePath)
			}
			return w.Flush()
		},
	}
}

func newTransformationsCreateCmd(envAlias *string) *cobra.Command {
	var title, description, imagePath string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a showcase post",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnvironment(*envAlias)
			if err != nil {
				return err
			}

			post, err := apiClient(env).CreateTransformation(client.TransformationDraft{
				Title:       title,
				Description: description,
				ImagePath:   imagePath,
			})
			if err != nil {
				return err
			}

			fmt.Printf("✓ Created showcase post %s (%s)\n", post.Title, post.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Post title")
	cmd.Flags().StringVar(&description, "description", "", "Post description")
	cmd.Flags().StringVar(&imagePath, "image", "", "Path to the before/after image")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("image")

	return cmd
}

func newTransformationsUpdateCmd(envAlias *string) *cobra.Command {
	var title, description, imagePath string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a showcase post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnvironment(*envAlias)
			if err != nil {
				return err
			}

			post, err := apiClient(env).UpdateTransformation(args[0], client.TransformationDraft{
				Title:       title,
				Description: description,
				ImagePath:   imagePath,
			})
			if err != nil {
				return err
			}

			fmt.Printf("✓ Updated showcase post %s\n", post.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringVar(&imagePath, "image", "", "Path to a replacement image")

	return cmd
}

func newTransformationsDeleteCmd(envAlias *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a showcase post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnvironment(*envAlias)
			if err != nil {
				return err
			}

			if err := apiClient(env).DeleteTransformation(args[0]); err != nil {
				return err
			}

			fmt.Printf("✓ Deleted showcase post %s\n", args[0])
			return nil
		},
	}
}

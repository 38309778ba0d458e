package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewCarouselsCmd creates the carousels command group
func NewCarouselsCmd() *cobra.Command {
	var envAlias string

	cmd := &cobra.Command{
		Use:               "carousels",
		Short:             "Manage homepage carousel slides",
		PersistentPreRunE: requireAdmin(&envAlias),
	}

	cmd.PersistentFlags().StringVar(&envAlias, "env", "", "Environment alias (uses selected environment if not specified)")

	cmd.AddCommand(newCarouselsListCmd(&envAlias))
	cmd.AddCommand(newCarouselsCreateCmd(&envAlias))
	cmd.AddCommand(newCarouselsDeleteCmd(&envAlias))

	return cmd
}

func newCarouselsListCmd(envAlias *string) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List carousel slides",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnvironment(*envAlias)
			if err != nil {
				return err
			}

			carousels, err := apiClient(env).ListCarousels()
			if err != nil {
				return err
			}

			if len(carousels) == 0 {
				fmt.Println("No carousel slides found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tPOSITION\tACTIVE\tIMAGE")
			for _, carousel := range carousels {
				fmt.Fprintf(w, "%s\t%s\t%d\t%t\t%s\n",
					carousel.ID, carousel.Title, carousel.Position, carousel.Active, carousel.ImagePath)
			}
			return w.Flush()
		},
	}
}

func newCarouselsCreateCmd(envAlias *string) *cobra.Command {
	var title, linkURL, imagePath string
	var position int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a carousel slide",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnvironment(*envAlias)
			if err != nil {
				return err
			}

			carousel, err := apiClient(env).CreateCarousel(title, linkURL, position, imagePath)
			if err != nil {
				return err
			}

			fmt.Printf("✓ Created carousel %s (%s)\n", carousel.Title, carousel.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Slide title")
	cmd.Flags().StringVar(&linkURL, "link", "", "URL the slide links to")
	cmd.Flags().IntVar(&position, "position", 0, "Sort position")
	cmd.Flags().StringVar(&imagePath, "image", "", "Path to the slide image")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("image")

	return cmd
}

func newCarouselsDeleteCmd(envAlias *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a carousel slide",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnvironment(*envAlias)
			if err != nil {
				return err
			}

			if err := apiClient(env).DeleteCarousel(args[0]); err != nil {
				return err
			}

			fmt.Printf("✓ Deleted carousel %s\n", args[0])
			return nil
		},
	}
}

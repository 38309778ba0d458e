package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewContactVideosCmd creates the contact-videos command group
func NewContactVideosCmd() *cobra.Command {
	var envAlias string

	cmd := &cobra.Command{
		Use:               "contact-videos",
		Short:             "Manage the videos shown on the contact page",
		PersistentPreRunE: requireAdmin(&envAlias),
	}

	cmd.PersistentFlags().StringVar(&envAlias, "env", "", "Environment alias (uses selected environment if not specified)")

	cmd.AddCommand(newContactVideosListCmd(&envAlias))
	cmd.AddCommand(newContactVideosUploadCmd(&envAlias))
	cmd.AddCommand(newContactVideosDeleteCmd(&envAlias))

	return cmd
}

func newContactVideosListCmd(envAlias *string) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List contact page videos",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnvironment(*envAlias)
			if err != nil {
				return err
			}

			videos, err := apiClient(env).ListContactVideos()
			if err != nil {
				return err
			}

			if len(videos) == 0 {
				fmt.Println("No contact videos found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tPATH\tUPLOADED")
			for _, video := range videos {
				fmt.Fprintf(w, "%s\t%s\t%s\n",
					video.ID, video.Path, video.CreatedAt.Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}
}

func newContactVideosUploadCmd(envAlias *string) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file>...",
		Short: "Upload one or more contact page videos",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnvironment(*envAlias)
			if err != nil {
				return err
			}

			videos, err := apiClient(env).UploadContactVideos(args)
			if err != nil {
				return err
			}

			fmt.Printf("✓ Uploaded %d contact video(s)\n", len(videos))
			return nil
		},
	}
}

func newContactVideosDeleteCmd(envAlias *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a contact page video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnvironment(*envAlias)
			if err != nil {
				return err
			}

			if err := apiClient(env).DeleteContactVideo(args[0]); err != nil {
				return err
			}

			fmt.Printf("✓ Deleted contact video %s\n", args[0])
			return nil
		},
	}
}

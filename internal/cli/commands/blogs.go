package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/meddesk-dev/meddesk/internal/cli/client"
)

// NewBlogsCmd creates the blogs command group
func NewBlogsCmd() *cobra.Command {
	var envAlias string

	cmd := &cobra.Command{
		Use:               "blogs",
		Short:             "Manage blog posts",
		PersistentPreRunE: requireAdmin(&envAlias),
	}

	cmd.PersistentFlags().StringVar(&envAlias, "env", "", "Environment alias (uses selected environment if not specified)")

	cmd.AddCommand(newBlogsListCmd(&envAlias))
	cmd.AddCommand(newBlogsCreateCmd(&envAlias))
	cmd.AddCommand(newBlogsUpdateCmd(&envAlias))
	cmd.AddCommand(newBlogsDeleteCmd(&envAlias))

	return cmd
}

func newBlogsListCmd(envAlias *string) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List blog posts",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnvironment(*envAlias)
			if err != nil {
				return err
			}

			blogs, err := apiClient(env).ListBlogs()
			if err != nil {
				return err
			}

			if len(blogs) == 0 {
				fmt.Println("No blog posts found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tSLUG\tAUTHOR\tPUBLISHED")
			for _, blog := range blogs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\n",
					blog.ID, blog.Title, blog.Slug, blog.Author, blog.Published)
			}
			return w.Flush()
		},
	}
}

// readBody returns bodyFile's contents when given, falling back to the
// literal body flag.
func readBody(body, bodyFile string) (string, error) {
	if bodyFile == "" {
		return body, nil
	}
	data, err := os.ReadFile(bodyFile)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", bodyFile, err)
	}
	return string(data), nil
}

func newBlogsCreateCmd(envAlias *string) *cobra.Command {
	var title, slug, body, bodyFile, author, coverPath string
	var published bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a blog post",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnvironment(*envAlias)
			if err != nil {
				return err
			}

			bodyText, err := readBody(body, bodyFile)
			if err != nil {
				return err
			}

			blog, err := apiClient(env).CreateBlog(client.BlogDraft{
				Title:     title,
				Slug:      slug,
				Body:      bodyText,
				Author:    author,
				Published: &published,
				CoverPath: coverPath,
			})
			if err != nil {
				return err
			}

			fmt.Printf("✓ Created blog %s (%s)\n", blog.Slug, blog.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Post title")
	cmd.Flags().StringVar(&slug, "slug", "", "URL slug (lowercase alphanumeric with hyphens)")
	cmd.Flags().StringVar(&body, "body", "", "Post body")
	cmd.Flags().StringVar(&bodyFile, "body-file", "", "Read the post body from a file")
	cmd.Flags().StringVar(&author, "author", "", "Author display name")
	cmd.Flags().StringVar(&coverPath, "cover", "", "Path to the cover image")
	cmd.Flags().BoolVar(&published, "published", false, "Publish immediately")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("slug")

	return cmd
}

func newBlogsUpdateCmd(envAlias *string) *cobra.Command {
	var title, body, bodyFile, author, coverPath string
	var published bool

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a blog post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnvironment(*envAlias)
			if err != nil {
				return err
			}

			bodyText, err := readBody(body, bodyFile)
			if err != nil {
				return err
			}

			draft := client.BlogDraft{
				Title:     title,
				Body:      bodyText,
				Author:    author,
				CoverPath: coverPath,
			}
			// Only touch the published flag when the operator asked for it
			if cmd.Flags().Changed("published") {
				draft.Published = &published
			}

			blog, err := apiClient(env).UpdateBlog(args[0], draft)
			if err != nil {
				return err
			}

			fmt.Printf("✓ Updated blog %s\n", blog.Slug)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Post title")
	cmd.Flags().StringVar(&body, "body", "", "Post body")
	cmd.Flags().StringVar(&bodyFile, "body-file", "", "Read the post body from a file")
	cmd.Flags().StringVar(&author, "author", "", "Author display name")
	cmd.Flags().StringVar(&coverPath, "cover", "", "Path to a new cover image")
	cmd.Flags().BoolVar(&published, "published", false, "Publish or unpublish the post")

	return cmd
}

func newBlogsDeleteCmd(envAlias *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a blog post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnvironment(*envAlias)
			if err != nil {
				return err
			}

			if err := apiClient(env).DeleteBlog(args[0]); err != nil {
				return err
			}

			fmt.Printf("✓ Deleted blog %s\n", args[0])
			return nil
		},
	}
}

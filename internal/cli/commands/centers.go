package commands

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/meddesk-dev/meddesk/internal/cli/client"
)

// NewCentersCmd creates the centers command group
func NewCentersCmd() *cobra.Command {
	var envAlias string

	cmd := &cobra.Command{
		Use:               "centers",
		Short:             "Manage treatment centers and their doctor teams",
		PersistentPreRunE: requireAdmin(&envAlias),
	}

	cmd.PersistentFlags().StringVar(&envAlias, "env", "", "Environment alias (uses selected environment if not specified)")

	cmd.AddCommand(newCentersListCmd(&envAlias))
	cmd.AddCommand(newCentersCreateCmd(&envAlias))
	cmd.AddCommand(newCentersUpdateCmd(&envAlias))
	cmd.AddCommand(newCentersDeleteCmd(&envAlias))
	cmd.AddCommand(newCentersImportCmd(&envAlias))
	cmd.AddCommand(newCentersTeamCmd(&envAlias))

	return cmd
}

func newCentersListCmd(envAlias *string) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List centers",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnvironment(*envAlias)
			if err != nil {
				return err
			}

			centers, err := apiClient(env).ListCenters()
			if err != nil {
				return err
			}

			if len(centers) == 0 {
				fmt.Println("No centers found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCITY\tPHONE\tTEAM")
			for _, center := range centers {
				team := make([]string, len(center.Team))
				for i, doctor := range center.Team {
					team[i] = doctor.Name
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					center.ID, center.Name, center.City, center.Phone, strings.Join(team, ", "))
			}
			return w.Flush()
		},
	}
}

func centerDraftFlags(cmd *cobra.Command, draft *client.CenterDraft) {
	cmd.Flags().StringVar(&draft.Name, "name", "", "Center name")
	cmd.Flags().StringVar(&draft.Address, "address", "", "Street address")
	cmd.Flags().StringVar(&draft.City, "city", "", "City")
	cmd.Flags().StringVar(&draft.Phone, "phone", "", "Contact phone")
	cmd.Flags().StringVar(&draft.ImagePath, "image", "", "Path to the center image")
}

func newCentersCreateCmd(envAlias *string) *cobra.Command {
	var draft client.CenterDraft

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a center",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnvironment(*envAlias)
			if err != nil {
				return err
			}

			center, err := apiClient(env).CreateCenter(draft)
			if err != nil {
				return err
			}

			fmt.Printf("✓ Created center %s (%s)\n", center.Name, center.ID)
			return nil
		},
	}

	centerDraftFlags(cmd, &draft)
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("address")
	_ = cmd.MarkFlagRequired("city")

	return cmd
}

func newCentersUpdateCmd(envAlias *string) *cobra.Command {
	var draft client.CenterDraft

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a center",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnvironment(*envAlias)
			if err != nil {
				return err
			}

			center, err := apiClient(env).UpdateCenter(args[0], draft)
			if err != nil {
				return err
			}

			fmt.Printf("✓ Updated center %s\n", center.Name)
			return nil
		},
	}

	centerDraftFlags(cmd, &draft)

	return cmd
}

func newCentersDeleteCmd(envAlias *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a center",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnvironment(*envAlias)
			if err != nil {
				return err
			}

			if err := apiClient(env).DeleteCenter(args[0]); err != nil {
				return err
			}

			fmt.Printf("✓ Deleted center %s\n", args[0])
			return nil
		},
	}
}

// centerImportEntry is one center in an import file
type centerImportEntry struct {
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
	City    string `yaml:"city"`
	Phone   string `yaml:"phone"`
	Image   string `yaml:"image"`
}

type centerImportFile struct {
	Centers []centerImportEntry `yaml:"centers"`
}

func newCentersImportCmd(envAlias *string) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Bulk create centers from a YAML file",
		Long: `Bulk create centers from a YAML file.

The file lists centers under a top-level "centers" key:

  centers:
    - name: Riverside Clinic
      address: 12 Riverside Way
      city: Leeds
      phone: "0113 000 0000"
      image: ./images/riverside.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnvironment(*envAlias)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			var file centerImportFile
			if err := yaml.Unmarshal(data, &file); err != nil {
				return fmt.Errorf("failed to parse %s: %w", args[0], err)
			}

			if len(file.Centers) == 0 {
				return fmt.Errorf("no centers found in %s", args[0])
			}

			api := apiClient(env)
			created := 0
			for _, entry := range file.Centers {
				center, err := api.CreateCenter(client.CenterDraft{
					Name:      entry.Name,
					Address:   entry.Address,
					City:      entry.City,
					Phone:     entry.Phone,
					ImagePath: entry.Image,
				})
				if err != nil {
					return fmt.Errorf("imported %d of %d centers, then: %w", created, len(file.Centers), err)
				}
				fmt.Printf("✓ Created center %s (%s)\n", center.Name, center.ID)
				created++
			}

			fmt.Printf("Imported %d centers\n", created)
			return nil
		},
	}
}

func newCentersTeamCmd(envAlias *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Manage a center's doctor team",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <center-id> <doctor-id>",
		Short: "Add a doctor to a center's team",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnvironment(*envAlias)
			if err != nil {
				return err
			}

			center, err := apiClient(env).AssignDoctor(args[0], args[1])
			if err != nil {
				return err
			}

			fmt.Printf("✓ Team of %s now has %d doctors\n", center.Name, len(center.Team))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <center-id> <doctor-id>",
		Short: "Remove a doctor from a center's team",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnvironment(*envAlias)
			if err != nil {
				return err
			}

			if err := apiClient(env).UnassignDoctor(args[0], args[1]); err != nil {
				return err
			}

			fmt.Printf("✓ Removed doctor %s from center %s\n", args[1], args[0])
			return nil
		},
	})

	return cmd
}

package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/meddesk-dev/meddesk/internal/cli/client"
)

// NewProductsCmd creates the products command group
func NewProductsCmd() *cobra.Command {
	var envAlias string

	cmd := &cobra.Command{
		Use:               "products",
		Short:             "Manage shop items",
		PersistentPreRunE: requireAdmin(&envAlias),
	}

	cmd.PersistentFlags().StringVar(&envAlias, "env", "", "Environment alias (uses selected environment if not specified)")

	cmd.AddCommand(newProductsListCmd(&envAlias))
	cmd.AddCommand(newProductsCreateCmd(&envAlias))
	cmd.AddCommand(newProductsUpdateCmd(&envAlias))
	cmd.AddCommand(newProductsDeleteCmd(&envAlias))

	return cmd
}

func newProductsListCmd(envAlias *string) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List shop items",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnvironment(*envAlias)
			if err != nil {
				return err
			}

			products, err := apiClient(env).ListProducts()
			if err != nil {
				return err
			}

			if len(products) == 0 {
				fmt.Println("No products found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPRICE\tSTOCK")
			for _, product := range products {
				fmt.Fprintf(w, "%s\t%s\t%d.%02d\t%d\n",
					product.ID, product.Name, product.PriceCents/100, product.PriceCents%100, product.Stock)
			}
			return w.Flush()
		},
	}
}

func newProductsCreateCmd(envAlias *string) *cobra.Command {
	var name, description, imagePath string
	var priceCents int64
	var stock int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a shop item",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnvironment(*envAlias)
			if err != nil {
				return err
			}

			product, err := apiClient(env).CreateProduct(client.ProductDraft{
				Name:        name,
				Description: description,
				PriceCents:  &priceCents,
				Stock:       &stock,
				ImagePath:   imagePath,
			})
			if err != nil {
				return err
			}

			fmt.Printf("✓ Created product %s (%s)\n", product.Name, product.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Product name")
	cmd.Flags().StringVar(&description, "description", "", "Product description")
	cmd.Flags().Int64Var(&priceCents, "price-cents", 0, "Price in cents")
	cmd.Flags().IntVar(&stock, "stock", 0, "Units in stock")
	cmd.Flags().StringVar(&imagePath, "image", "", "Path to the product image")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("price-cents")

	return cmd
}

func newProductsUpdateCmd(envAlias *string) *cobra.Command {
	var name, description, imagePath string
	var priceCents int64
	var stock int

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a shop item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnvironment(*envAlias)
			if err != nil {
				return err
			}

			draft := client.ProductDraft{
				Name:        name,
				Description: description,
				ImagePath:   imagePath,
			}
			if cmd.Flags().Changed("price-cents") {
				draft.PriceCents = &priceCents
			}
			if cmd.Flags().Changed("stock") {
				draft.Stock = &stock
			}

			product, err := apiClient(env).UpdateProduct(args[0], draft)
			if err != nil {
				return err
			}

			fmt.Printf("✓ Updated product %s\n", product.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Product name")
	cmd.Flags().StringVar(&description, "description", "", "Product description")
	cmd.Flags().Int64Var(&priceCents, "price-cents", 0, "Price in cents")
	cmd.Flags().IntVar(&stock, "stock", 0, "Units in stock")
	cmd.Flags().StringVar(&imagePath, "image", "", "Path to a new product image")

	return cmd
}

func newProductsDeleteCmd(envAlias *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a shop item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnvironment(*envAlias)
			if err != nil {
				return err
			}

			if err := apiClient(env).DeleteProduct(args[0]); err != nil {
				return err
			}

			fmt.Printf("✓ Deleted product %s\n", args[0])
			return nil
		},
	}
}

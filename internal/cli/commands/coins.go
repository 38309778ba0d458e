package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewCoinsCmd creates the coins command group
func NewCoinsCmd() *cobra.Command {
	var envAlias string

	cmd := &cobra.Command{
		Use:               "coins",
		Short:             "Manage user coin ledgers",
		PersistentPreRunE: requireAdmin(&envAlias),
	}

	cmd.PersistentFlags().StringVar(&envAlias, "env", "", "Environment alias (uses selected environment if not specified)")

	cmd.AddCommand(newCoinsLedgerCmd(&envAlias))
	cmd.AddCommand(newCoinsGrantCmd(&envAlias))

	return cmd
}

func newCoinsLedgerCmd(envAlias *string) *cobra.Command {
	return &cobra.Command{
		Use:   "ledger <user-id>",
		Short: "Show a user's coin ledger and balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnvironment(*envAlias)
			if err != nil {
				return err
			}

			ledger, err := apiClient(env).GetCoinLedger(args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Balance: %d\n\n", ledger.Balance)

			if len(ledger.Transactions) == 0 {
				fmt.Println("No transactions.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "DATE\tAMOUNT\tREASON")
			for _, tx := range ledger.Transactions {
				fmt.Fprintf(w, "%s\t%+d\t%s\n",
					tx.CreatedAt.Format("2006-01-02 15:04"), tx.Amount, tx.Reason)
			}
			return w.Flush()
		},
	}
}

func newCoinsGrantCmd(envAlias *string) *cobra.Command {
	var amount int64
	var reason string

	cmd := &cobra.Command{
		Use:   "grant <user-id>",
		Short: "Grant coins to a user (negative amount revokes)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnvironment(*envAlias)
			if err != nil {
				return err
			}

			tx, err := apiClient(env).GrantCoins(args[0], amount, reason)
			if err != nil {
				return err
			}

			fmt.Printf("✓ Recorded %+d coins for user %s (%s)\n", tx.Amount, tx.UserID, tx.Reason)
			return nil
		},
	}

	cmd.Flags().Int64Var(&amount, "amount", 0, "Signed amount: positive grants, negative revokes")
	cmd.Flags().StringVar(&reason, "reason", "", "Reason recorded in the ledger")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("reason")

	return cmd
}

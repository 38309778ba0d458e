package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// The root command's PersistentPreRun (the update notification) must still
// fire when a command group defines its own PersistentPreRunE, as every
// gated entity group does. Package init enables traverse hooks for that;
// this pins both the setting and the resulting hook order.
func TestPersistentHooksRunAcrossCommandChain(t *testing.T) {
	require.True(t, cobra.EnableTraverseRunHooks)

	var order []string

	root := &cobra.Command{
		Use: "root",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			order = append(order, "root")
		},
	}
	group := &cobra.Command{
		Use: "group",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			order = append(order, "group")
			return nil
		},
	}
	leaf := &cobra.Command{
		Use: "leaf",
		RunE: func(cmd *cobra.Command, args []string) error {
			order = append(order, "leaf")
			return nil
		},
	}

	group.AddCommand(leaf)
	root.AddCommand(group)
	root.SetArgs([]string{"group", "leaf"})

	require.NoError(t, root.Execute())
	require.Equal(t, []string{"root", "group", "leaf"}, order)
}

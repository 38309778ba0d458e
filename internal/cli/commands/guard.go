package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meddesk-dev/meddesk/internal/cli/session"
)

// checkSession decides whether a stored session may enter the admin surface.
// Split out from the cobra hook so the decision itself is testable with an
// in-memory store.
func checkSession(store session.Store) error {
	sess, err := store.Get()
	if err != nil {
		return fmt.Errorf("failed to read session: %w", err)
	}

	if !sess.IsAuthorizedAdmin() {
		return fmt.Errorf("not logged in. Run 'meddesk login' to sign in as an administrator")
	}

	return nil
}

// requireAdmin is the gate in front of every admin command group. It is
// wired as PersistentPreRunE so the stored session is re-read on every
// invocation rather than remembered from an earlier one: a logout or an
// expired session between two commands takes effect immediately.
func requireAdmin(envAlias *string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		env, err := resolveEnvironment(*envAlias)
		if err != nil {
			return err
		}
		return checkSession(sessionStore(env))
	}
}

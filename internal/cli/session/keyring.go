package session

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/meddesk-dev/meddesk/internal/cli/userconfig"
)

const service = "meddesk-cli"

// KeyringStore is the production Store. The token goes into the OS
// keychain/credential manager; role and email go into the user config file.
// Both are keyed by environment alias so sessions against staging and
// production do not clobber each other.
type KeyringStore struct {
	env string
}

// NewKeyringStore returns a Store scoped to the given environment alias.
func NewKeyringStore(env string) *KeyringStore {
	return &KeyringStore{env: env}
}

// keyringKey returns a unique key for storing tokens per environment
func (k *KeyringStore) keyringKey() string {
	return fmt.Sprintf("session-%s", k.env)
}

// Set persists the session. The keyring write happens first; if the profile
// write then fails, the keyring entry is rolled back so the store never holds
// a token without its role.
func (k *KeyringStore) Set(s Session) error {
	if err := keyring.Set(service, k.keyringKey(), s.Token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	profile := userconfig.Profile{Role: s.Role, Email: s.Email}
	if err := userconfig.SetProfile(k.env, profile); err != nil {
		_ = keyring.Delete(service, k.keyringKey())
		return fmt.Errorf("failed to save session profile: %w", err)
	}

	return nil
}

// Get returns the stored session, or the zero Session if nothing is stored.
func (k *KeyringStore) Get() (Session, error) {
	token, err := keyring.Get(service, k.keyringKey())
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return Session{}, nil
		}
		return Session{}, fmt.Errorf("failed to load token: %w", err)
	}

	profile, err := userconfig.GetProfile(k.env)
	if err != nil {
		return Session{}, fmt.Errorf("failed to load session profile: %w", err)
	}

	return Session{Token: token, Role: profile.Role, Email: profile.Email}, nil
}

// Clear removes the stored session from both the keyring and the user config.
func (k *KeyringStore) Clear() error {
	if err := keyring.Delete(service, k.keyringKey()); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete token: %w", err)
	}

	if err := userconfig.DeleteProfile(k.env); err != nil {
		return fmt.Errorf("failed to delete session profile: %w", err)
	}

	return nil
}

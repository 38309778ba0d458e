package session

// Session is the token+role pair identifying the current administrator's
// authenticated state against one environment.
type Session struct {
	Token string
	Role  string
	Email string
}

// IsAuthorizedAdmin reports whether the session may enter the admin surface.
// Both conditions are required: a token must be present AND the role must be
// exactly "admin". Neither alone is sufficient.
func (s Session) IsAuthorizedAdmin() bool {
	return s.Token != "" && s.Role == "admin"
}

// Store persists the session across CLI invocations. Set and Clear act on
// token and role together; a store never exposes a partially written session.
//
// The store is injected everywhere a session is read (the command gate, the
// HTTP transport) so tests can swap in MemStore without touching the OS
// keyring.
type Store interface {
	// Set persists the session. Token and role are written together; on
	// error the store is left as it was.
	Set(s Session) error

	// Get returns the current session, or the zero Session if none is stored.
	Get() (Session, error)

	// Clear removes the stored session. Clearing an empty store is a no-op.
	Clear() error
}

package session

import "sync"

// MemStore is an in-memory Store used by tests and anywhere the OS keyring
// is unavailable. Safe for concurrent use.
type MemStore struct {
	mu      sync.Mutex
	current Session
	has     bool

	// SetErr, when non-nil, is returned by Set without mutating the store.
	// Lets tests exercise the login flow's failure path.
	SetErr error
}

// NewMemStore returns an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{}
}

func (m *MemStore) Set(s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	m.current = s
	m.has = true
	return nil
}

func (m *MemStore) Get() (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.has {
		return Session{}, nil
	}
	return m.current, nil
}

func (m *MemStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = Session{}
	m.has = false
	return nil
}

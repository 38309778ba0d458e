package session

import (
	"errors"
	"testing"
)

func TestIsAuthorizedAdmin(t *testing.T) {
	tests := []struct {
		name    string
		session Session
		want    bool
	}{
		{
			name:    "token and admin role",
			session: Session{Token: "jwt-token", Role: "admin"},
			want:    true,
		},
		{
			name:    "empty session",
			session: Session{},
			want:    false,
		},
		{
			name:    "token without role",
			session: Session{Token: "jwt-token"},
			want:    false,
		},
		{
			name:    "admin role without token",
			session: Session{Role: "admin"},
			want:    false,
		},
		{
			name:    "token with non-admin role",
			session: Session{Token: "jwt-token", Role: "user"},
			want:    false,
		},
		{
			name:    "role is case sensitive",
			session: Session{Token: "jwt-token", Role: "Admin"},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.session.IsAuthorizedAdmin(); got != tt.want {
				t.Errorf("IsAuthorizedAdmin() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMemStore_SetGetClear(t *testing.T) {
	store := NewMemStore()

	// Empty store returns the zero session
	sess, err := store.Get()
	if err != nil {
		t.Fatalf("Get on empty store failed: %v", err)
	}
	if sess != (Session{}) {
		t.Errorf("expected zero session, got %+v", sess)
	}

	// Set then Get returns the same session
	want := Session{Token: "jwt-token", Role: "admin", Email: "admin@example.com"}
	if err := store.Set(want); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	sess, err = store.Get()
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if sess != want {
		t.Errorf("Get() = %+v, want %+v", sess, want)
	}

	// Clear empties the store
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	sess, err = store.Get()
	if err != nil {
		t.Fatalf("Get after Clear failed: %v", err)
	}
	if sess != (Session{}) {
		t.Errorf("expected zero session after Clear, got %+v", sess)
	}

	// Clearing an empty store is a no-op
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear on empty store failed: %v", err)
	}
}

func TestMemStore_SetErrDoesNotMutate(t *testing.T) {
	store := NewMemStore()

	existing := Session{Token: "old-token", Role: "admin", Email: "admin@example.com"}
	if err := store.Set(existing); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	store.SetErr = errors.New("keyring unavailable")
	err := store.Set(Session{Token: "new-token", Role: "admin"})
	if err == nil {
		t.Fatal("expected Set to fail")
	}

	store.SetErr = nil
	sess, err := store.Get()
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if sess != existing {
		t.Errorf("failed Set mutated the store: got %+v, want %+v", sess, existing)
	}
}

package commands

import (
	"strings"
	"testing"

	"github.com/meddesk-dev/meddesk/internal/cli/session"
)

func TestCheckSession(t *testing.T) {
	tests := []struct {
		name      string
		session   session.Session
		wantError bool
	}{
		{
			name:      "admin session passes",
			session:   session.Session{Token: "jwt-token", Role: "admin"},
			wantError: false,
		},
		{
			name:      "empty store denies",
			session:   session.Session{},
			wantError: true,
		},
		{
			name:      "token without role denies",
			session:   session.Session{Token: "jwt-token"},
			wantError: true,
		},
		{
			name:      "role without token denies",
			session:   session.Session{Role: "admin"},
			wantError: true,
		},
		{
			name:      "non-admin role denies",
			session:   session.Session{Token: "jwt-token", Role: "user"},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := session.NewMemStore()
			if tt.session != (session.Session{}) {
				if err := store.Set(tt.session); err != nil {
					t.Fatalf("failed to seed store: %v", err)
				}
			}

			err := checkSession(store)
			if tt.wantError && err == nil {
				t.Error("expected checkSession to deny, got nil")
			}
			if !tt.wantError && err != nil {
				t.Errorf("expected checkSession to pass, got: %v", err)
			}
			if err != nil && !strings.Contains(err.Error(), "meddesk login") {
				t.Errorf("denial should point at the login command, got: %v", err)
			}
		})
	}
}

func TestCheckSession_ReEvaluatesStore(t *testing.T) {
	store := session.NewMemStore()
	if err := store.Set(session.Session{Token: "jwt-token", Role: "admin"}); err != nil {
		t.Fatalf("failed to seed store: %v", err)
	}

	if err := checkSession(store); err != nil {
		t.Fatalf("expected first check to pass, got: %v", err)
	}

	// A logout between two commands must take effect on the next check
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	if err := checkSession(store); err == nil {
		t.Error("expected check after logout to deny, got nil")
	}
}

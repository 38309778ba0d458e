package commands

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/meddesk-dev/meddesk/internal/cli/client"
	"github.com/meddesk-dev/meddesk/internal/cli/session"
)

// loginServer fakes the admin login endpoint, accepting exactly one
// email/password pair.
func loginServer(t *testing.T, email, password, token string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login/admin" {
			t.Errorf("unexpected path: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		var req client.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		if req.Email != email || req.Password != password {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "Invalid email or password"})
			return
		}

		json.NewEncoder(w).Encode(client.LoginResponse{
			Token: token,
			User:  client.UserDetail{ID: "01ADMIN", Email: email, Name: "Admin", Role: "admin"},
		})
	}))
}

func TestPerformLogin_Success(t *testing.T) {
	srv := loginServer(t, "admin@example.com", "correct", "issued-token")
	defer srv.Close()

	store := session.NewMemStore()
	api := client.New(srv.URL, store)

	resp, err := performLogin(api, store, "admin@example.com", "correct")
	if err != nil {
		t.Fatalf("performLogin failed: %v", err)
	}
	if resp.Token != "issued-token" {
		t.Errorf("Token = %q, want %q", resp.Token, "issued-token")
	}

	// The session must be persisted with token and role together
	sess, err := store.Get()
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	want := session.Session{Token: "issued-token", Role: "admin", Email: "admin@example.com"}
	if sess != want {
		t.Errorf("stored session = %+v, want %+v", sess, want)
	}
	if !sess.IsAuthorizedAdmin() {
		t.Error("stored session should be authorized")
	}
}

func TestPerformLogin_BadCredentialsLeaveStoreUntouched(t *testing.T) {
	srv := loginServer(t, "admin@example.com", "correct", "issued-token")
	defer srv.Close()

	store := session.NewMemStore()
	existing := session.Session{Token: "old-token", Role: "admin", Email: "admin@example.com"}
	if err := store.Set(existing); err != nil {
		t.Fatalf("failed to seed store: %v", err)
	}

	api := client.New(srv.URL, store)
	if _, err := performLogin(api, store, "admin@example.com", "wrong"); err == nil {
		t.Fatal("expected performLogin to fail")
	}

	sess, err := store.Get()
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if sess != existing {
		t.Errorf("failed login mutated the store: got %+v, want %+v", sess, existing)
	}
}

func TestPerformLogin_EmptyPassword(t *testing.T) {
	store := session.NewMemStore()
	api := client.New("http://localhost:0", store)

	if _, err := performLogin(api, store, "admin@example.com", ""); err == nil {
		t.Fatal("expected performLogin to reject an empty password without a network call")
	}
}

func TestPerformLogin_StoreFailurePropagates(t *testing.T) {
	srv := loginServer(t, "admin@example.com", "correct", "issued-token")
	defer srv.Close()

	store := session.NewMemStore()
	store.SetErr = errors.New("keyring unavailable")

	api := client.New(srv.URL, store)
	_, err := performLogin(api, store, "admin@example.com", "correct")
	if err == nil {
		t.Fatal("expected performLogin to fail when the store cannot persist")
	}

	sess, getErr := store.Get()
	if getErr != nil {
		t.Fatalf("Get failed: %v", getErr)
	}
	if sess != (session.Session{}) {
		t.Errorf("expected empty store after failed persist, got %+v", sess)
	}
}

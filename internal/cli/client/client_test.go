package client

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/meddesk-dev/meddesk/internal/cli/session"
)

func TestTransport_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]Carousel{})
	}))
	defer srv.Close()

	store := session.NewMemStore()
	if err := store.Set(session.Session{Token: "test-token", Role: "admin"}); err != nil {
		t.Fatalf("failed to seed store: %v", err)
	}

	api := New(srv.URL, store)
	if _, err := api.ListCarousels(); err != nil {
		t.Fatalf("ListCarousels failed: %v", err)
	}

	if gotAuth != "Bearer test-token" {
		t.Errorf("Authorization header = %q, want %q", gotAuth, "Bearer test-token")
	}
}

func TestTransport_NoTokenNoHeader(t *testing.T) {
	var gotAuth string
	var sawHeader bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, sawHeader = r.Header["Authorization"]
		json.NewEncoder(w).Encode([]Carousel{})
	}))
	defer srv.Close()

	api := New(srv.URL, session.NewMemStore())
	if _, err := api.ListCarousels(); err != nil {
		t.Fatalf("ListCarousels failed: %v", err)
	}

	if sawHeader || gotAuth != "" {
		t.Errorf("expected no Authorization header, got %q", gotAuth)
	}
}

func TestTransport_RejectedTokenClearsSession(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			json.NewEncoder(w).Encode(map[string]string{"error": "Invalid or expired token"})
		}))

		store := session.NewMemStore()
		if err := store.Set(session.Session{Token: "stale-token", Role: "admin"}); err != nil {
			t.Fatalf("failed to seed store: %v", err)
		}

		api := New(srv.URL, store)
		_, err := api.ListCarousels()
		if !errors.Is(err, ErrSessionExpired) {
			t.Errorf("status %d: expected ErrSessionExpired, got %v", status, err)
		}

		sess, getErr := store.Get()
		if getErr != nil {
			t.Fatalf("Get failed: %v", getErr)
		}
		if sess != (session.Session{}) {
			t.Errorf("status %d: expected cleared session, got %+v", status, sess)
		}

		srv.Close()
	}
}

func TestTransport_RejectionWithoutTokenIsNotIntercepted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "Authorization header required"})
	}))
	defer srv.Close()

	api := New(srv.URL, session.NewMemStore())
	_, err := api.ListCarousels()
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, ErrSessionExpired) {
		t.Errorf("anonymous 401 should not map to ErrSessionExpired, got %v", err)
	}
}

func TestLogin_DoesNotCarryStaleToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login/admin" {
			t.Errorf("unexpected path: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid email or password"})
	}))
	defer srv.Close()

	store := session.NewMemStore()
	stale := session.Session{Token: "stale-token", Role: "admin"}
	if err := store.Set(stale); err != nil {
		t.Fatalf("failed to seed store: %v", err)
	}

	api := New(srv.URL, store)
	_, err := api.Login("admin@example.com", "wrong")
	if err == nil {
		t.Fatal("expected login to fail")
	}

	if gotAuth != "" {
		t.Errorf("login request carried Authorization header %q", gotAuth)
	}

	// The failed login must not have touched the stored session
	sess, getErr := store.Get()
	if getErr != nil {
		t.Fatalf("Get failed: %v", getErr)
	}
	if sess != stale {
		t.Errorf("failed login mutated the store: got %+v, want %+v", sess, stale)
	}
}

func TestLogin_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode login request: %v", err)
		}
		if req.Email != "admin@example.com" || req.Password != "correct" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "Invalid email or password"})
			return
		}
		json.NewEncoder(w).Encode(LoginResponse{
			Token: "issued-token",
			User:  UserDetail{ID: "01ABC", Email: req.Email, Name: "Admin", Role: "admin"},
		})
	}))
	defer srv.Close()

	api := New(srv.URL, session.NewMemStore())
	resp, err := api.Login("admin@example.com", "correct")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if resp.Token != "issued-token" {
		t.Errorf("Token = %q, want %q", resp.Token, "issued-token")
	}
	if resp.User.Role != "admin" {
		t.Errorf("Role = %q, want %q", resp.User.Role, "admin")
	}
}

func TestAPIError_SurfacesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "Carousel not found"})
	}))
	defer srv.Close()

	api := New(srv.URL, session.NewMemStore())
	err := api.DeleteCarousel("nope")
	if err == nil {
		t.Fatal("expected error")
	}
	want := "failed to delete carousel (status 404): Carousel not found"
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}

func TestTransport_MultipartRequestsAuthenticated(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("failed to parse multipart form: %v", err)
		}
		if got := r.FormValue("name"); got != "Dr. Example" {
			t.Errorf("name = %q, want %q", got, "Dr. Example")
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Doctor{ID: "01DOC", Name: "Dr. Example"})
	}))
	defer srv.Close()

	store := session.NewMemStore()
	if err := store.Set(session.Session{Token: "test-token", Role: "admin"}); err != nil {
		t.Fatalf("failed to seed store: %v", err)
	}

	api := New(srv.URL, store)
	doctor, err := api.CreateDoctor(DoctorDraft{Name: "Dr. Example", Specialty: "Cardiology"})
	if err != nil {
		t.Fatalf("CreateDoctor failed: %v", err)
	}

	if gotAuth != "Bearer test-token" {
		t.Errorf("Authorization header = %q, want %q", gotAuth, "Bearer test-token")
	}
	if doctor.ID != "01DOC" {
		t.Errorf("doctor ID = %q, want %q", doctor.ID, "01DOC")
	}
}

func TestDelete_AcceptsNoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %q, want DELETE", r.Method)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	api := New(srv.URL, session.NewMemStore())
	if err := api.DeleteCarousel("01CAR"); err != nil {
		t.Fatalf("DeleteCarousel failed: %v", err)
	}
}

func TestCreateAligner_UploadsBothGalleries(t *testing.T) {
	dir := t.TempDir()
	imagePath := filepath.Join(dir, "tray.png")
	videoPath := filepath.Join(dir, "intro.mp4")
	for _, p := range []string{imagePath, videoPath} {
		if err := os.WriteFile(p, []byte("media"), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", p, err)
		}
	}

	var gotAuth string
	var gotImages, gotVideos int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("failed to parse multipart form: %v", err)
		}
		if got := r.FormValue("price"); got != "From $1200" {
			t.Errorf("price = %q, want %q", got, "From $1200")
		}
		gotImages = len(r.MultipartForm.File["images"])
		gotVideos = len(r.MultipartForm.File["videos"])
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Aligner{ID: "01ALN", Price: "From $1200"})
	}))
	defer srv.Close()

	store := session.NewMemStore()
	if err := store.Set(session.Session{Token: "test-token", Role: "admin"}); err != nil {
		t.Fatalf("failed to seed store: %v", err)
	}

	api := New(srv.URL, store)
	aligner, err := api.CreateAligner("From $1200", []string{imagePath}, []string{videoPath})
	if err != nil {
		t.Fatalf("CreateAligner failed: %v", err)
	}

	if gotAuth != "Bearer test-token" {
		t.Errorf("Authorization header = %q, want %q", gotAuth, "Bearer test-token")
	}
	if gotImages != 1 || gotVideos != 1 {
		t.Errorf("server saw %d images and %d videos, want 1 and 1", gotImages, gotVideos)
	}
	if aligner.ID != "01ALN" {
		t.Errorf("aligner ID = %q, want %q", aligner.ID, "01ALN")
	}
}

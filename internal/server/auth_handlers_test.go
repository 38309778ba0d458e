package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/meddesk-dev/meddesk/internal/auth"
	"github.com/meddesk-dev/meddesk/internal/config"
	"github.com/meddesk-dev/meddesk/internal/models"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	cfg := &config.Config{
		Server:   config.ServerConfig{ListenAddr: "127.0.0.1:0"},
		Database: config.DatabaseConfig{URL: filepath.Join(dir, "meddesk.db")},
		Redis:    config.RedisConfig{Address: "127.0.0.1:6379"},
		Uploads:  config.UploadsConfig{Dir: filepath.Join(dir, "uploads")},
	}

	s, err := New(cfg, zerolog.Nop(), "test")
	require.NoError(t, err)
	return s
}

func postJSON(t *testing.T, s *Server, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func TestSetupFirstAdmin(t *testing.T) {
	s := newTestServer(t)

	w := postJSON(t, s, "/auth/setup", SetupRequest{
		Email:    "root@example.com",
		Password: "hunter22",
		Name:     "Root Admin",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	require.Equal(t, "admin", resp.User.Role)
	require.Equal(t, "root@example.com", resp.User.Email)

	// A second setup attempt must be rejected once any user exists
	w = postJSON(t, s, "/auth/setup", SetupRequest{
		Email:    "second@example.com",
		Password: "hunter22",
		Name:     "Second",
	})
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginAdmin(t *testing.T) {
	s := newTestServer(t)

	w := postJSON(t, s, "/auth/setup", SetupRequest{
		Email:    "admin@example.com",
		Password: "correct-horse",
		Name:     "Admin",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Credential failures and unknown accounts share one message
	for _, creds := range []LoginRequest{
		{Email: "admin@example.com", Password: "wrong"},
		{Email: "nobody@example.com", Password: "correct-horse"},
	} {
		w = postJSON(t, s, "/auth/login/admin", creds)
		require.Equal(t, http.StatusUnauthorized, w.Code)
		require.Contains(t, w.Body.String(), "Invalid email or password")
	}

	// Valid credentials on a non-admin account are rejected with 403
	hash, err := auth.HashPassword("patient-pass")
	require.NoError(t, err)
	require.NoError(t, s.db.Create(&models.User{
		Email:        "patient@example.com",
		PasswordHash: hash,
		Name:         "Patient",
		Role:         "user",
	}).Error)

	w = postJSON(t, s, "/auth/login/admin", LoginRequest{
		Email:    "patient@example.com",
		Password: "patient-pass",
	})
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Contains(t, w.Body.String(), "Admin access required")

	// Successful login issues a token that authenticates /api requests
	w = postJSON(t, s, "/auth/login/admin", LoginRequest{
		Email:    "admin@example.com",
		Password: "correct-horse",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var me UserDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	require.Equal(t, "admin@example.com", me.Email)
}

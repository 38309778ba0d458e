package server

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/meddesk-dev/meddesk/internal/auth"
	"github.com/meddesk-dev/meddesk/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.sqlite")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email, role string) *models.User {
	t.Helper()

	hash, err := auth.HashPassword("secret12")
	require.NoError(t, err)

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		Name:         "Test User",
		Role:         role,
	}
	require.NoError(t, db.Create(user).Error)

	return user
}

// authedRouter wires the auth middlewares in front of a probe handler the
// same way the admin API group does.
func authedRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := zerolog.Nop()

	router := gin.New()
	api := router.Group("/api")
	api.Use(JWTAuthMiddleware(db, log))
	api.Use(AdminOnlyMiddleware(log))
	api.GET("/probe", func(c *gin.Context) {
		sessionData, _ := GetSessionData(c)
		c.JSON(http.StatusOK, gin.H{"email": sessionData.Email})
	})

	return router
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		token   string
		wantErr error
	}{
		{name: "valid", header: "Bearer abc123", token: "abc123"},
		{name: "missing header", header: "", wantErr: ErrMissingAuthHeader},
		{name: "wrong scheme", header: "Basic abc123", wantErr: ErrInvalidAuthFormat},
		{name: "empty token", header: "Bearer ", wantErr: ErrEmptyToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := extractBearerToken(tt.header)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.token, token)
		})
	}
}

func TestJWTAuthMiddleware(t *testing.T) {
	auth.InitializeJWT("0123456789abcdef0123456789abcdef")

	db := openTestDB(t)
	admin := createTestUser(t, db, "admin@example.com", models.RoleAdmin)
	router := authedRouter(db)

	t.Run("missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/probe", nil)
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/probe", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token passes", func(t *testing.T) {
		token, err := auth.GenerateToken(admin.ID, admin.Email, admin.Role)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/probe", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Body.String(), admin.Email)
	})

	t.Run("token for deleted account", func(t *testing.T) {
		ghost := createTestUser(t, db, "ghost@example.com", models.RoleAdmin)
		token, err := auth.GenerateToken(ghost.ID, ghost.Email, ghost.Role)
		require.NoError(t, err)
		require.NoError(t, db.Delete(&models.User{}, "id = ?", ghost.ID).Error)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/probe", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAdminOnlyMiddleware(t *testing.T) {
	auth.InitializeJWT("0123456789abcdef0123456789abcdef")

	db := openTestDB(t)
	router := authedRouter(db)

	t.Run("non-admin role is forbidden", func(t *testing.T) {
		user := createTestUser(t, db, "user@example.com", models.RoleUser)
		token, err := auth.GenerateToken(user.ID, user.Email, user.Role)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/probe", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusForbidden, w.Code)
		require.Contains(t, w.Body.String(), "Admin access required")
	})

	t.Run("role downgrade takes effect on the next request", func(t *testing.T) {
		admin := createTestUser(t, db, "demoted@example.com", models.RoleAdmin)
		token, err := auth.GenerateToken(admin.ID, admin.Email, admin.Role)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/probe", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		// The session is rebuilt from the live account, so an old token
		// carrying the admin role stops working once the role changes
		require.NoError(t, db.Model(&models.User{}).Where("id = ?", admin.ID).
			Update("role", models.RoleUser).Error)

		w = httptest.NewRecorder()
		req = httptest.NewRequest(http.MethodGet, "/api/probe", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusForbidden, w.Code)
	})
}

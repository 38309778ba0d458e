package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	InitializeJWT("0123456789abcdef0123456789abcdef")

	token, err := GenerateToken("01ABC", "admin@example.com", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, "01ABC", claims.UserID)
	require.Equal(t, "admin@example.com", claims.Email)
	require.Equal(t, "admin", claims.Role)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	InitializeJWT("0123456789abcdef0123456789abcdef")
	token, err := GenerateToken("01ABC", "admin@example.com", "admin")
	require.NoError(t, err)

	InitializeJWT("ffffffffffffffffffffffffffffffff")
	_, err = ValidateToken(token)
	require.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	InitializeJWT("0123456789abcdef0123456789abcdef")

	_, err := ValidateToken("not-a-jwt")
	require.Error(t, err)
}

func TestGenerateToken_RequiresSecret(t *testing.T) {
	InitializeJWT("")
	jwtSecret = nil

	_, err := GenerateToken("01ABC", "admin@example.com", "admin")
	require.Error(t, err)
}

func TestSessionData_IsAdmin(t *testing.T) {
	tests := []struct {
		name    string
		session *SessionData
		want    bool
	}{
		{name: "admin role", session: &SessionData{Role: "admin"}, want: true},
		{name: "user role", session: &SessionData{Role: "user"}, want: false},
		{name: "empty role", session: &SessionData{}, want: false},
		{name: "nil session", session: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.session.IsAdmin())
		})
	}
}

func TestPasswordHashAndVerify(t *testing.T) {
	hash, err := HashPassword("secret12")
	require.NoError(t, err)
	require.NotEqual(t, "secret12", hash)

	require.NoError(t, VerifyPassword("secret12", hash))
	require.Error(t, VerifyPassword("wrong", hash))
	require.Error(t, VerifyPassword("", hash))
}

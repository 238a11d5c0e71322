package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/receitario/v1/internal/infrastructure/config"
)

func newAuthService(password string) *AuthService {
	return NewAuthService(config.AuthConfig{
		JWTSecret:     "test-secret",
		JWTExpiration: time.Hour,
		AdminUsername: "admin",
		AdminPassword: password,
	}, zap.NewNop())
}

func TestLoginAndValidate(t *testing.T) {
	svc := newAuthService("s3nha")

	token, err := svc.Login("admin", "s3nha")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
}

func TestLogin_WrongCredentials(t *testing.T) {
	svc := newAuthService("s3nha")

	_, err := svc.Login("admin", "errada")
	assert.Error(t, err)

	_, err = svc.Login("root", "s3nha")
	assert.Error(t, err)
}

func TestLogin_BcryptHashedPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3nha"), bcrypt.MinCost)
	require.NoError(t, err)

	svc := newAuthService(string(hash))
	_, err = svc.Login("admin", "s3nha")
	assert.NoError(t, err)

	_, err = svc.Login("admin", "errada")
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := newAuthService("s3nha")
	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := newAuthService("s3nha")
	svc.expiration = -time.Minute

	token, err := svc.Login("admin", "s3nha")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

// Package security provides admin authentication for the dashboard API.
package security

import (
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/receitario/v1/internal/infrastructure/config"
	apperrors "github.com/receitario/v1/pkg/errors"
)

// AuthService issues and validates admin JWTs. The site has a single
// admin account configured through the environment; there is no user
// table.
type AuthService struct {
	secret     []byte
	expiration time.Duration
	username   string
	password   string
	logger     *zap.Logger
}

// Claims are the JWT claims carried by an admin token
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// NewAuthService creates a new auth service
func NewAuthService(cfg config.AuthConfig, logger *zap.Logger) *AuthService {
	return &AuthService{
		secret:     []byte(cfg.JWTSecret),
		expiration: cfg.JWTExpiration,
		username:   cfg.AdminUsername,
		password:   cfg.AdminPassword,
		logger:     logger.Named("auth-service"),
	}
}

// Login verifies the admin credentials and returns a signed token.
// The configured password may be a bcrypt hash or, for local
// development, plain text.
func (a *AuthService) Login(username, password string) (string, error) {
	if !a.verify(username, password) {
		return "", apperrors.NewUnauthorizedError("Invalid username or password")
	}

	now := time.Now()
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	a.logger.Info("Admin logged in", zap.String("username", username))
	return signed, nil
}

// ValidateToken parses and verifies a token, returning its claims
func (a *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("Invalid or expired token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperrors.NewUnauthorizedError("Invalid or expired token")
	}
	return claims, nil
}

func (a *AuthService) verify(username, password string) bool {
	if subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) != 1 {
		return false
	}
	if strings.HasPrefix(a.password, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(a.password), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) == 1
}

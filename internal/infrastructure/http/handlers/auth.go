package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/receitario/v1/internal/infrastructure/security"
)

// AuthHandlers serves the admin login endpoint
type AuthHandlers struct {
	auth   *security.AuthService
	logger *zap.Logger
}

// NewAuthHandlers creates a new auth handlers instance
func NewAuthHandlers(auth *security.AuthService, logger *zap.Logger) *AuthHandlers {
	return &AuthHandlers{auth: auth, logger: logger}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	token, err := h.auth.Login(req.Username, req.Password)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, map[string]string{"token": token})
}

// Package handlers provides the JSON HTTP handlers for the public site
// API and the admin dashboard API.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	apperrors "github.com/receitario/v1/pkg/errors"
)

// validate is shared across handlers; struct tags carry the rules.
var validate = validator.New()

// APIResponse is the standard success envelope
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeData(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, APIResponse{Success: true, Data: data})
}

// writeNDJSON appends one JSON line to a streaming response
func writeNDJSON(w http.ResponseWriter, payload interface{}) {
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError maps AppErrors to their status code and hides internals
// behind a generic message for everything else.
func writeError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	requestID := chimiddleware.GetReqID(r.Context())

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		logger.Error("Unhandled error", zap.String("request_id", requestID), zap.Error(err))
		appErr = apperrors.NewInternalError("")
	} else if appErr.StatusCode() >= http.StatusInternalServerError {
		logger.Error("Request failed",
			zap.String("request_id", requestID),
			zap.String("code", string(appErr.Code)),
			zap.Error(err))
	}

	writeJSON(w, appErr.StatusCode(), apperrors.ToErrorResponse(appErr, requestID))
}

// decodeJSON parses the request body into dst and runs validation tags
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := decodeJSONRaw(r, dst); err != nil {
		return err
	}
	if err := validate.Struct(dst); err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	return nil
}

// decodeJSONRaw parses without validation, for non-struct bodies
func decodeJSONRaw(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.NewBadRequestError("Invalid JSON body")
	}
	return nil
}

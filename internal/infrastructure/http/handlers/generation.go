package handlers

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/receitario/v1/internal/ports/inbound"
	apperrors "github.com/receitario/v1/pkg/errors"
)

// GenerationHandlers serves the AI creation endpoints of the dashboard
type GenerationHandlers struct {
	generation inbound.GenerationService
	social     inbound.SocialService
	logger     *zap.Logger
}

// NewGenerationHandlers creates a new generation handlers instance
func NewGenerationHandlers(generation inbound.GenerationService, social inbound.SocialService, logger *zap.Logger) *GenerationHandlers {
	return &GenerationHandlers{generation: generation, social: social, logger: logger}
}

type generateRequest struct {
	DishName    string   `json:"dishName"`
	Ingredients []string `json:"ingredients"`
}

// Generate handles POST /api/v1/admin/generate. A dish name drives
// from-scratch generation; an ingredient list drives the fridge flow.
func (h *GenerationHandlers) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeJSONRaw(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var (
		dto *inbound.RecipeDTO
		err error
	)
	switch {
	case req.DishName != "":
		dto, err = h.generation.GenerateFromScratch(r.Context(), req.DishName)
	case len(req.Ingredients) > 0:
		dto, err = h.generation.GenerateFromIngredients(r.Context(), req.Ingredients)
	default:
		err = apperrors.NewBadRequestError("dishName or ingredients is required")
	}
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusCreated, dto)
}

type magicRequest struct {
	Query string `json:"query" validate:"required"`
}

// MagicCreate handles POST /api/v1/admin/generate/magic. Phase updates
// stream to the client as newline-delimited JSON, the draft comes last.
func (h *GenerationHandlers) MagicCreate(w http.ResponseWriter, r *http.Request) {
	var req magicRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "application/x-ndjson")
	flusher, _ := w.(http.Flusher)

	dto, err := h.generation.MagicCreate(r.Context(), req.Query, func(phase inbound.MagicPhase) {
		writeNDJSON(w, map[string]string{"phase": string(phase)})
		if flusher != nil {
			flusher.Flush()
		}
	})
	if err != nil {
		writeNDJSON(w, map[string]string{"error": err.Error()})
		return
	}
	writeNDJSON(w, map[string]interface{}{"recipe": dto})
}

type remixRequest struct {
	Modification string `json:"modification" validate:"required"`
}

// Remix handles POST /api/v1/admin/recipes/{id}/remix
func (h *GenerationHandlers) Remix(w http.ResponseWriter, r *http.Request) {
	var req remixRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	dto, err := h.generation.RemixRecipe(r.Context(), chi.URLParam(r, "id"), req.Modification)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusCreated, dto)
}

// GenerateStory handles POST /api/v1/admin/recipes/{id}/story
func (h *GenerationHandlers) GenerateStory(w http.ResponseWriter, r *http.Request) {
	dto, err := h.generation.GenerateStory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusCreated, dto)
}

// GenerateReel handles POST /api/v1/admin/recipes/{id}/reel
func (h *GenerationHandlers) GenerateReel(w http.ResponseWriter, r *http.Request) {
	dto, err := h.generation.GenerateReel(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusCreated, dto)
}

// PublishMeme handles POST /api/v1/admin/recipes/{id}/meme
func (h *GenerationHandlers) PublishMeme(w http.ResponseWriter, r *http.Request) {
	if err := h.generation.PublishMeme(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Message: "Meme published"})
}

// PublishSocial handles POST /api/v1/admin/recipes/{id}/publish-social
func (h *GenerationHandlers) PublishSocial(w http.ResponseWriter, r *http.Request) {
	if err := h.social.PublishRecipe(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Message: "Recipe published to social webhook"})
}

// SocialCaption handles GET /api/v1/admin/recipes/{id}/caption
func (h *GenerationHandlers) SocialCaption(w http.ResponseWriter, r *http.Request) {
	caption, err := h.social.BuildCaption(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, map[string]string{"caption": caption})
}

type analyzeImageRequest struct {
	ImageData string `json:"imageData" validate:"required"`
	MimeType  string `json:"mimeType"`
}

// AnalyzeImage handles POST /api/v1/admin/analyze-image
func (h *GenerationHandlers) AnalyzeImage(w http.ResponseWriter, r *http.Request) {
	req, data, err := h.decodeImage(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	dto, err := h.generation.AnalyzeFoodImage(r.Context(), data, req.MimeType)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, dto)
}

// IdentifyUtensils handles POST /api/v1/admin/identify-utensils
func (h *GenerationHandlers) IdentifyUtensils(w http.ResponseWriter, r *http.Request) {
	req, data, err := h.decodeImage(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	utensils, err := h.generation.IdentifyUtensils(r.Context(), data, req.MimeType)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, utensils)
}

// decodeImage parses a base64 image upload, tolerating data URI prefixes
func (h *GenerationHandlers) decodeImage(r *http.Request) (*analyzeImageRequest, []byte, error) {
	var req analyzeImageRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, nil, err
	}

	encoded := req.ImageData
	if idx := strings.Index(encoded, ","); idx >= 0 && strings.HasPrefix(encoded, "data:") {
		encoded = encoded[idx+1:]
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, nil, apperrors.NewBadRequestError("imageData must be base64 encoded")
	}
	if req.MimeType == "" {
		req.MimeType = "image/jpeg"
	}
	return &req, data, nil
}

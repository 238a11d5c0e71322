package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/receitario/v1/internal/domain/mealplan"
	"github.com/receitario/v1/internal/domain/settings"
	"github.com/receitario/v1/internal/ports/inbound"
)

// SiteHandlers serves settings, stories, suggestions, newsletter, meal
// planning and the WordPress importer
type SiteHandlers struct {
	site      inbound.SiteService
	mealPlans inbound.MealPlanService
	logger    *zap.Logger
}

// NewSiteHandlers creates a new site handlers instance
func NewSiteHandlers(site inbound.SiteService, mealPlans inbound.MealPlanService, logger *zap.Logger) *SiteHandlers {
	return &SiteHandlers{site: site, mealPlans: mealPlans, logger: logger}
}

// GetSettings handles GET /api/v1/settings. Webhook endpoints are
// stripped from the unauthenticated response.
func (h *SiteHandlers) GetSettings(w http.ResponseWriter, r *http.Request) {
	s, err := h.site.GetSettings(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, s.Public())
}

// GetAdminSettings handles GET /api/v1/admin/settings
func (h *SiteHandlers) GetAdminSettings(w http.ResponseWriter, r *http.Request) {
	s, err := h.site.GetSettings(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, s)
}

// SaveSettings handles PUT /api/v1/admin/settings
func (h *SiteHandlers) SaveSettings(w http.ResponseWriter, r *http.Request) {
	var s settings.SiteSettings
	if err := decodeJSONRaw(r, &s); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.site.SaveSettings(r.Context(), &s); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Message: "Settings saved"})
}

// ListStories handles GET /api/v1/stories
func (h *SiteHandlers) ListStories(w http.ResponseWriter, r *http.Request) {
	stories, err := h.site.ListStories(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, stories)
}

// GetStory handles GET /api/v1/stories/{id}
func (h *SiteHandlers) GetStory(w http.ResponseWriter, r *http.Request) {
	story, err := h.site.GetStory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, story)
}

type suggestionRequest struct {
	DishName    string `json:"dishName" validate:"required"`
	Description string `json:"description"`
}

// SubmitSuggestion handles POST /api/v1/suggestions
func (h *SiteHandlers) SubmitSuggestion(w http.ResponseWriter, r *http.Request) {
	var req suggestionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	sug, err := h.site.SubmitSuggestion(r.Context(), req.DishName, req.Description)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusCreated, sug)
}

// ListSuggestions handles GET /api/v1/admin/suggestions
func (h *SiteHandlers) ListSuggestions(w http.ResponseWriter, r *http.Request) {
	suggestions, err := h.site.ListSuggestions(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, suggestions)
}

// MarkSuggestionReviewed handles POST /api/v1/admin/suggestions/{id}/review
func (h *SiteHandlers) MarkSuggestionReviewed(w http.ResponseWriter, r *http.Request) {
	if err := h.site.MarkSuggestionReviewed(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Message: "Suggestion reviewed"})
}

// ConsumeSuggestion handles DELETE /api/v1/admin/suggestions/{id}
func (h *SiteHandlers) ConsumeSuggestion(w http.ResponseWriter, r *http.Request) {
	if err := h.site.ConsumeSuggestion(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Message: "Suggestion removed"})
}

type newsletterRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// SubscribeNewsletter handles POST /api/v1/newsletter
func (h *SiteHandlers) SubscribeNewsletter(w http.ResponseWriter, r *http.Request) {
	var req newsletterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.site.SubscribeNewsletter(r.Context(), req.Email); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, APIResponse{Success: true, Message: "Subscribed"})
}

// ImportWordPress handles POST /api/v1/admin/import/wordpress, streaming
// per-post progress as newline-delimited JSON with the summary last.
func (h *SiteHandlers) ImportWordPress(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/x-ndjson")
	flusher, _ := w.(http.Flusher)

	result, err := h.site.ImportWordPress(r.Context(), func(update inbound.ImportUpdate) {
		writeNDJSON(w, update)
		if flusher != nil {
			flusher.Flush()
		}
	})
	if err != nil {
		writeNDJSON(w, map[string]string{"error": err.Error()})
		return
	}
	writeNDJSON(w, map[string]interface{}{"result": result})
}

// GetMealPlan handles GET /api/v1/meal-plans/{weekID}
func (h *SiteHandlers) GetMealPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := h.mealPlans.GetWeek(r.Context(), chi.URLParam(r, "weekID"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, plan)
}

type setSlotRequest struct {
	Day      string `json:"day" validate:"required"`
	Slot     string `json:"slot" validate:"required"`
	RecipeID string `json:"recipeId"`
}

// SetMealSlot handles PUT /api/v1/meal-plans/{weekID}/slots. An empty
// recipeId clears the slot.
func (h *SiteHandlers) SetMealSlot(w http.ResponseWriter, r *http.Request) {
	var req setSlotRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	weekID := chi.URLParam(r, "weekID")
	var (
		plan *mealplan.MealPlan
		err  error
	)
	if req.RecipeID == "" {
		plan, err = h.mealPlans.ClearSlot(r.Context(), weekID, req.Day, req.Slot)
	} else {
		plan, err = h.mealPlans.SetSlot(r.Context(), weekID, req.Day, req.Slot, req.RecipeID)
	}
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, plan)
}

// ListDietPlans handles GET /api/v1/diet-plans
func (h *SiteHandlers) ListDietPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.mealPlans.ListDietPlans(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, plans)
}

// SaveDietPlan handles PUT /api/v1/admin/diet-plans
func (h *SiteHandlers) SaveDietPlan(w http.ResponseWriter, r *http.Request) {
	var plan mealplan.DietPlan
	if err := decodeJSONRaw(r, &plan); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.mealPlans.SaveDietPlan(r.Context(), &plan); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Message: "Diet plan saved"})
}

// DeleteDietPlan handles DELETE /api/v1/admin/diet-plans/{id}
func (h *SiteHandlers) DeleteDietPlan(w http.ResponseWriter, r *http.Request) {
	if err := h.mealPlans.DeleteDietPlan(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Message: "Diet plan deleted"})
}

type applyDietPlanRequest struct {
	PlanID string `json:"planId" validate:"required"`
}

// ApplyDietPlan handles POST /api/v1/meal-plans/{weekID}/apply
func (h *SiteHandlers) ApplyDietPlan(w http.ResponseWriter, r *http.Request) {
	var req applyDietPlanRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	plan, err := h.mealPlans.ApplyDietPlan(r.Context(), chi.URLParam(r, "weekID"), req.PlanID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, plan)
}

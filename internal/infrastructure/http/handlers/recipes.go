package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/receitario/v1/internal/domain/category"
	"github.com/receitario/v1/internal/ports/inbound"
	apperrors "github.com/receitario/v1/pkg/errors"
)

// RecipeHandlers serves the recipe catalog endpoints
type RecipeHandlers struct {
	recipes inbound.RecipeService
	logger  *zap.Logger
}

// NewRecipeHandlers creates a new recipe handlers instance
func NewRecipeHandlers(recipes inbound.RecipeService, logger *zap.Logger) *RecipeHandlers {
	return &RecipeHandlers{recipes: recipes, logger: logger}
}

// List handles GET /api/v1/recipes. A q parameter switches to search.
func (h *RecipeHandlers) List(w http.ResponseWriter, r *http.Request) {
	params := paginationFrom(r)

	var (
		list *inbound.RecipeList
		err  error
	)
	if q := r.URL.Query().Get("q"); q != "" {
		list, err = h.recipes.SearchRecipes(r.Context(), q, params)
	} else if cat := r.URL.Query().Get("category"); cat != "" {
		list, err = h.recipes.ListByCategory(r.Context(), cat, params)
	} else {
		list, err = h.recipes.ListRecipes(r.Context(), params)
	}
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, list)
}

// GetBySlug handles GET /api/v1/recipes/{slug}
func (h *RecipeHandlers) GetBySlug(w http.ResponseWriter, r *http.Request) {
	dto, err := h.recipes.GetRecipeBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, dto)
}

// Get handles GET /api/v1/admin/recipes/{id}
func (h *RecipeHandlers) Get(w http.ResponseWriter, r *http.Request) {
	dto, err := h.recipes.GetRecipe(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, dto)
}

// Create handles POST /api/v1/admin/recipes
func (h *RecipeHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var cmd inbound.SaveRecipeCommand
	if err := decodeJSON(r, &cmd); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	dto, err := h.recipes.CreateRecipe(r.Context(), cmd)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusCreated, dto)
}

// Update handles PUT /api/v1/admin/recipes/{id}
func (h *RecipeHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var cmd inbound.SaveRecipeCommand
	if err := decodeJSON(r, &cmd); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	dto, err := h.recipes.UpdateRecipe(r.Context(), chi.URLParam(r, "id"), cmd)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, dto)
}

// Publish handles POST /api/v1/admin/recipes/{id}/publish
func (h *RecipeHandlers) Publish(w http.ResponseWriter, r *http.Request) {
	dto, err := h.recipes.PublishRecipe(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, dto)
}

// Archive handles POST /api/v1/admin/recipes/{id}/archive
func (h *RecipeHandlers) Archive(w http.ResponseWriter, r *http.Request) {
	if err := h.recipes.ArchiveRecipe(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Message: "Recipe archived"})
}

// Delete handles DELETE /api/v1/admin/recipes/{id}
func (h *RecipeHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.recipes.DeleteRecipe(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Message: "Recipe deleted"})
}

// AddReview handles POST /api/v1/recipes/{id}/reviews
func (h *RecipeHandlers) AddReview(w http.ResponseWriter, r *http.Request) {
	var cmd inbound.ReviewCommand
	if err := decodeJSON(r, &cmd); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.recipes.AddReview(r.Context(), chi.URLParam(r, "id"), cmd); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, APIResponse{Success: true, Message: "Review added"})
}

// ListCategories handles GET /api/v1/categories
func (h *RecipeHandlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.recipes.ListCategories(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, categories)
}

// SaveCategories handles PUT /api/v1/admin/categories, replacing the list
func (h *RecipeHandlers) SaveCategories(w http.ResponseWriter, r *http.Request) {
	var categories []category.Category
	if err := decodeJSONRaw(r, &categories); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.recipes.SaveCategories(r.Context(), categories); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Message: "Categories saved"})
}

// ToggleFavorite handles POST /api/v1/recipes/{id}/favorite
func (h *RecipeHandlers) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	visitorID := visitorFrom(r)
	if visitorID == "" {
		writeError(w, r, h.logger, apperrors.NewBadRequestError("X-Visitor-ID header is required"))
		return
	}

	favorited, err := h.recipes.ToggleFavorite(r.Context(), visitorID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, map[string]bool{"favorited": favorited})
}

// ListFavorites handles GET /api/v1/favorites
func (h *RecipeHandlers) ListFavorites(w http.ResponseWriter, r *http.Request) {
	visitorID := visitorFrom(r)
	if visitorID == "" {
		writeError(w, r, h.logger, apperrors.NewBadRequestError("X-Visitor-ID header is required"))
		return
	}

	favorites, err := h.recipes.ListFavorites(r.Context(), visitorID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, favorites)
}

func paginationFrom(r *http.Request) inbound.PaginationParams {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))
	return inbound.PaginationParams{Page: page, Size: size}
}

func visitorFrom(r *http.Request) string {
	return r.Header.Get("X-Visitor-ID")
}

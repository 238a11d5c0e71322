package inbound

import (
	"context"

	"github.com/receitario/v1/internal/domain/mealplan"
	"github.com/receitario/v1/internal/domain/settings"
	"github.com/receitario/v1/internal/domain/suggestion"
)

// MealPlanService defines the weekly meal planning use cases.
type MealPlanService interface {
	GetWeek(ctx context.Context, weekID string) (*mealplan.MealPlan, error)
	SetSlot(ctx context.Context, weekID, day, slot, recipeID string) (*mealplan.MealPlan, error)
	ClearSlot(ctx context.Context, weekID, day, slot string) (*mealplan.MealPlan, error)

	// Diet plans
	ListDietPlans(ctx context.Context) ([]*mealplan.DietPlan, error)
	SaveDietPlan(ctx context.Context, plan *mealplan.DietPlan) error
	DeleteDietPlan(ctx context.Context, id string) error

	// ApplyDietPlan fills a week from a diet plan's meal queries. Slots
	// whose query matches no stored recipe are filled with placeholders.
	ApplyDietPlan(ctx context.Context, weekID, planID string) (*mealplan.MealPlan, error)
}

// SiteService defines site-level use cases: settings, stories, suggestions,
// newsletter and the WordPress importer.
type SiteService interface {
	GetSettings(ctx context.Context) (*settings.SiteSettings, error)
	SaveSettings(ctx context.Context, s *settings.SiteSettings) error

	ListStories(ctx context.Context) ([]*StoryDTO, error)
	GetStory(ctx context.Context, id string) (*StoryDTO, error)

	SubmitSuggestion(ctx context.Context, dishName, description string) (*suggestion.Suggestion, error)
	ListSuggestions(ctx context.Context) ([]*suggestion.Suggestion, error)
	MarkSuggestionReviewed(ctx context.Context, id string) error
	ConsumeSuggestion(ctx context.Context, id string) error

	// Subscribe returns ErrAlreadySubscribed semantics via an AppError so
	// callers can tell a duplicate apart from a real failure.
	SubscribeNewsletter(ctx context.Context, email string) error

	// ImportWordPress fetches all posts from the configured WordPress site
	// and converts each into a draft recipe, reporting per-post progress.
	ImportWordPress(ctx context.Context, progress ImportProgressFunc) (*ImportResult, error)
}

// ImportProgressFunc receives per-post updates during a WordPress import.
// A nil func disables reporting.
type ImportProgressFunc func(update ImportUpdate)

// ImportUpdate describes the state of one post in an import run.
type ImportUpdate struct {
	Index     int    `json:"index"`
	Total     int    `json:"total"`
	PostTitle string `json:"postTitle"`
	Status    string `json:"status"` // converting, saved, failed
	Error     string `json:"error,omitempty"`
}

// ImportResult summarizes a completed import run.
type ImportResult struct {
	Total     int      `json:"total"`
	Imported  int      `json:"imported"`
	Failed    int      `json:"failed"`
	UsedMocks bool     `json:"usedMocks"`
	RecipeIDs []string `json:"recipeIds"`
}

// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"
	"time"

	"github.com/receitario/v1/internal/domain/category"
	"github.com/receitario/v1/internal/domain/mealplan"
	"github.com/receitario/v1/internal/domain/recipe"
	"github.com/receitario/v1/internal/domain/settings"
	"github.com/receitario/v1/internal/domain/story"
	"github.com/receitario/v1/internal/domain/suggestion"
)

// RecipeRepository defines the interface for recipe persistence
// This follows the Repository pattern for data access abstraction
type RecipeRepository interface {
	// Save creates the recipe or replaces it wholesale (last write wins)
	Save(ctx context.Context, r *recipe.Recipe) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*recipe.Recipe, error)
	FindBySlug(ctx context.Context, slug string) (*recipe.Recipe, error)

	// Query operations
	FindAll(ctx context.Context) ([]*recipe.Recipe, error)
	FindPaginated(ctx context.Context, offset, limit int) ([]*recipe.Recipe, int, error)
	FindByStatus(ctx context.Context, status recipe.Status, offset, limit int) ([]*recipe.Recipe, int, error)

	// Search matches title, description, and tags case-insensitively
	Search(ctx context.Context, query string, offset, limit int) ([]*recipe.Recipe, int, error)
	FindByIDs(ctx context.Context, ids []string) ([]*recipe.Recipe, error)
}

// CategoryRepository persists browsing categories. SaveAll replaces the
// whole list, mirroring how the dashboard edits categories as one form.
type CategoryRepository interface {
	FindAll(ctx context.Context) ([]category.Category, error)
	SaveAll(ctx context.Context, categories []category.Category) error
}

// StoryRepository persists web stories. Stories are immutable: there is
// Save and read, no update.
type StoryRepository interface {
	FindAll(ctx context.Context) ([]*story.WebStory, error)
	FindByID(ctx context.Context, id string) (*story.WebStory, error)
	Save(ctx context.Context, s *story.WebStory) error
}

// SettingsRepository persists the singleton site settings row.
type SettingsRepository interface {
	Get(ctx context.Context) (*settings.SiteSettings, error)
	Save(ctx context.Context, s *settings.SiteSettings) error
}

// DietPlanRepository persists diet plan templates.
type DietPlanRepository interface {
	FindAll(ctx context.Context) ([]*mealplan.DietPlan, error)
	FindByID(ctx context.Context, id string) (*mealplan.DietPlan, error)
	Save(ctx context.Context, p *mealplan.DietPlan) error
	Delete(ctx context.Context, id string) error
}

// MealPlanRepository persists applied weekly meal plans keyed by week id.
type MealPlanRepository interface {
	Get(ctx context.Context, weekID string) (*mealplan.MealPlan, error)
	Save(ctx context.Context, p *mealplan.MealPlan) error
}

// SuggestionRepository persists reader recipe suggestions. Suggestions are
// deleted once the generation pipeline consumes them.
type SuggestionRepository interface {
	FindAll(ctx context.Context) ([]*suggestion.Suggestion, error)
	FindByID(ctx context.Context, id string) (*suggestion.Suggestion, error)
	Save(ctx context.Context, s *suggestion.Suggestion) error
	Delete(ctx context.Context, id string) error
}

// NewsletterRepository stores subscriber emails. Subscribe must fail with
// a distinguishable error when the email is already on the list.
type NewsletterRepository interface {
	Subscribe(ctx context.Context, email string) error
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)

	// Counter operations
	Increment(ctx context.Context, key string) (int64, error)

	// Set operations, used for per-visitor favorites
	SAdd(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
	SRem(ctx context.Context, key string, members ...string) error
}

// StorageService defines the interface for blob storage. UploadImage takes
// raw image bytes and returns the public URL of the stored object.
type StorageService interface {
	UploadImage(ctx context.Context, data []byte, folder string) (string, error)
	Delete(ctx context.Context, key string) error
}

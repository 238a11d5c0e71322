package inbound

import (
	"context"
)

// GenerationService defines the AI-backed creation use cases: single-shot
// recipe generation, the staged magic-creation flow, stories, reels, memes
// and photo analysis.
type GenerationService interface {
	// Single-shot generation. The returned recipe is a draft.
	GenerateFromScratch(ctx context.Context, dishName string) (*RecipeDTO, error)
	GenerateFromIngredients(ctx context.Context, ingredients []string) (*RecipeDTO, error)
	RemixRecipe(ctx context.Context, recipeID, modification string) (*RecipeDTO, error)

	// Magic creation: a staged flow that reports progress per phase and
	// yields a reviewable draft.
	MagicCreate(ctx context.Context, query string, progress ProgressFunc) (*RecipeDTO, error)

	// Stories and reels for a published recipe.
	GenerateStory(ctx context.Context, recipeID string) (*StoryDTO, error)
	GenerateReel(ctx context.Context, recipeID string) (*ReelDTO, error)

	// Photo analysis tools.
	AnalyzeFoodImage(ctx context.Context, imageData []byte, mimeType string) (*FoodAnalysisDTO, error)
	IdentifyUtensils(ctx context.Context, imageData []byte, mimeType string) ([]UtensilDTO, error)

	// Meme publishing for a recipe image.
	PublishMeme(ctx context.Context, recipeID string) error
}

// ProgressFunc receives phase transitions during magic creation. A nil
// ProgressFunc is valid and disables reporting.
type ProgressFunc func(phase MagicPhase)

// MagicPhase is a stage in the magic creation flow.
type MagicPhase string

const (
	PhaseIdle      MagicPhase = "idle"
	PhaseSearching MagicPhase = "searching"
	PhaseImaging   MagicPhase = "imaging"
	PhaseEnriching MagicPhase = "enriching"
	PhaseReview    MagicPhase = "review"
	PhaseDone      MagicPhase = "done"
)

// StoryDTO is the transport shape of a generated web story.
type StoryDTO struct {
	ID       string     `json:"id"`
	RecipeID string     `json:"recipeId"`
	Title    string     `json:"title"`
	Slides   []SlideDTO `json:"slides"`
}

// SlideDTO is the transport shape of a story slide.
type SlideDTO struct {
	Type     string `json:"type"`
	Layout   string `json:"layout"`
	Text     string `json:"text"`
	Subtext  string `json:"subtext,omitempty"`
	ImageURL string `json:"imageUrl"`
}

// ReelDTO is the transport shape of a generated reel.
type ReelDTO struct {
	RecipeID string `json:"recipeId"`
	Script   string `json:"script"`
	VideoURL string `json:"videoUrl"`
}

// FoodAnalysisDTO is the transport shape of a food photo analysis.
type FoodAnalysisDTO struct {
	DishName    string       `json:"dishName"`
	Description string       `json:"description"`
	Nutrition   NutritionDTO `json:"nutrition"`
}

// UtensilDTO is the transport shape of an identified utensil.
type UtensilDTO struct {
	Name       string `json:"name"`
	SearchTerm string `json:"searchTerm"`
}

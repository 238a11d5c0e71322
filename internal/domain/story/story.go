// Package story contains the web story domain type: a short vertical
// visual narrative derived from a recipe.
package story

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Web stories always carry exactly this many slides.
const SlideCount = 5

var (
	ErrNoRecipe    = errors.New("web story requires a source recipe id")
	ErrWrongSlides = errors.New("web story must have exactly five slides")
)

// Slide is one screen of a web story. VisualPrompt is the text the image
// generator was (or will be) driven with; it is kept for regeneration.
type Slide struct {
	Type         string
	Layout       string
	Text         string
	Subtext      string
	ImageURL     string
	VisualPrompt string
}

// WebStory is immutable once created; there is no update path.
type WebStory struct {
	ID        string
	RecipeID  string
	Title     string
	Slides    []Slide
	CreatedAt time.Time
}

// New creates a validated WebStory for a recipe.
func New(recipeID, title string, slides []Slide) (*WebStory, error) {
	if recipeID == "" {
		return nil, ErrNoRecipe
	}
	if len(slides) != SlideCount {
		return nil, ErrWrongSlides
	}
	return &WebStory{
		ID:        uuid.NewString(),
		RecipeID:  recipeID,
		Title:     title,
		Slides:    slides,
		CreatedAt: time.Now(),
	}, nil
}

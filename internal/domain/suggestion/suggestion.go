// Package suggestion contains reader-submitted recipe ideas that seed the
// generation pipeline.
package suggestion

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrEmptyDishName = errors.New("suggestion dish name is required")

// Status values for a suggestion's lifecycle. Suggestions are deleted
// outright once the pipeline consumes them, so there is no "done" state.
const (
	StatusNew      = "new"
	StatusReviewed = "reviewed"
)

// Suggestion is a reader-submitted recipe idea.
type Suggestion struct {
	ID          string
	DishName    string
	Description string
	Status      string
	CreatedAt   time.Time
}

// New creates a validated suggestion.
func New(dishName, description string) (*Suggestion, error) {
	if dishName == "" {
		return nil, ErrEmptyDishName
	}
	return &Suggestion{
		ID:          uuid.NewString(),
		DishName:    dishName,
		Description: description,
		Status:      StatusNew,
		CreatedAt:   time.Now(),
	}, nil
}

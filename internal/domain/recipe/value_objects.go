package recipe

import (
	"errors"
	"time"
)

// Value Objects - Immutable objects that describe aspects of the domain

// Ingredient represents one ordered entry in a recipe's ingredient list.
// Amounts are free text ("2 xícaras", "a gosto") as supplied by authors
// and the generation pipeline.
type Ingredient struct {
	Item         string
	Amount       string
	Note         string
	PurchaseLink string
}

// Validate validates the ingredient
func (i Ingredient) Validate() error {
	if i.Item == "" {
		return ErrEmptyIngredient
	}
	return nil
}

// Timings holds the recipe's free-text timing fields. They are displayed
// verbatim and never parsed into durations.
type Timings struct {
	Prep  string
	Cook  string
	Total string
}

// Nutrition contains per-serving nutritional information. Calories is a
// number; macros are display strings ("12g").
type Nutrition struct {
	Calories int
	Protein  string
	Carbs    string
	Fat      string
}

// Affiliate is a purchase link for a utensil or product implied by the recipe
type Affiliate struct {
	Name  string
	URL   string
	Price string
	Image string
}

// Validate validates the affiliate link
func (a Affiliate) Validate() error {
	if a.Name == "" || a.URL == "" {
		return errors.New("affiliate name and url are required")
	}
	return nil
}

// FAQ is a question/answer pair attached to a recipe
type FAQ struct {
	Question string
	Answer   string
}

// Review represents a reader's review of a recipe
type Review struct {
	Author    string
	Rating    int
	Text      string
	CreatedAt time.Time
}

// Validate validates the review
func (r Review) Validate() error {
	if r.Rating < 1 || r.Rating > 5 {
		return errors.New("rating must be between 1 and 5")
	}
	return nil
}

// Status represents the publication status of a recipe
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

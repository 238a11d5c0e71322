// Package recipe contains the core domain logic for recipe publishing.
// This follows Domain-Driven Design principles with rich domain models.
package recipe

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/receitario/v1/internal/domain/shared"
)

// Recipe represents the core recipe entity in our domain.
// It encapsulates all business logic related to recipes.
type Recipe struct {
	// Aggregate root identifier. Remixes derive their id from the
	// original ("{originalID}-remix-{timestamp}"), so this is a string
	// rather than a raw UUID.
	id   string
	slug string

	// Descriptive text
	title       string
	description string
	story       string

	// Recipe details
	timings     Timings
	ingredients []Ingredient
	steps       []string
	nutrition   Nutrition

	// Media
	imageURL string
	videoURL string

	// Enrichment
	affiliates []Affiliate
	tags       []string
	tips       string
	pairing    string
	faq        []FAQ
	reviews    []Review

	// Metadata
	status      Status
	publishedAt *time.Time
	createdAt   time.Time
	updatedAt   time.Time

	// Domain events to be dispatched
	events []shared.DomainEvent
}

// NewRecipe creates a new draft Recipe with validation. The slug is the
// lowercase, accent-stripped, hyphenated form of the title.
func NewRecipe(title, description string) (*Recipe, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateDescription(description); err != nil {
		return nil, err
	}

	now := time.Now()
	r := &Recipe{
		id:          uuid.NewString(),
		slug:        slug.Make(title),
		title:       title,
		description: description,
		status:      StatusDraft,
		createdAt:   now,
		updatedAt:   now,
		events:      []shared.DomainEvent{},
	}

	r.addEvent(CreatedEvent{
		RecipeID:  r.id,
		Title:     title,
		Origin:    "manual",
		CreatedAt: now,
	})

	return r, nil
}

// ID returns the recipe's unique identifier
func (r *Recipe) ID() string {
	return r.id
}

// Slug returns the recipe's URL slug
func (r *Recipe) Slug() string {
	return r.slug
}

// Title returns the recipe's title
func (r *Recipe) Title() string {
	return r.title
}

// Description returns the recipe's description
func (r *Recipe) Description() string {
	return r.description
}

// Story returns the recipe's background story
func (r *Recipe) Story() string {
	return r.story
}

// Timings returns the recipe's free-text timing fields
func (r *Recipe) Timings() Timings {
	return r.timings
}

// Ingredients returns the recipe's ordered ingredient list
func (r *Recipe) Ingredients() []Ingredient {
	return r.ingredients
}

// Steps returns the recipe's ordered preparation steps
func (r *Recipe) Steps() []string {
	return r.steps
}

// Nutrition returns the recipe's nutrition information
func (r *Recipe) Nutrition() Nutrition {
	return r.nutrition
}

// ImageURL returns the recipe's main image URL
func (r *Recipe) ImageURL() string {
	return r.imageURL
}

// VideoURL returns the recipe's video URL, empty when none exists
func (r *Recipe) VideoURL() string {
	return r.videoURL
}

// Affiliates returns the recipe's affiliate purchase links
func (r *Recipe) Affiliates() []Affiliate {
	return r.affiliates
}

// Tags returns the recipe's tags
func (r *Recipe) Tags() []string {
	return r.tags
}

// Tips returns the recipe's preparation tips
func (r *Recipe) Tips() string {
	return r.tips
}

// Pairing returns the recipe's pairing suggestion
func (r *Recipe) Pairing() string {
	return r.pairing
}

// FAQ returns the recipe's question/answer pairs
func (r *Recipe) FAQ() []FAQ {
	return r.faq
}

// Reviews returns the recipe's reader reviews
func (r *Recipe) Reviews() []Review {
	return r.reviews
}

// Status returns the recipe status
func (r *Recipe) Status() Status {
	return r.status
}

// PublishedAt returns when the recipe was published
func (r *Recipe) PublishedAt() *time.Time {
	return r.publishedAt
}

// CreatedAt returns when the recipe was created
func (r *Recipe) CreatedAt() time.Time {
	return r.createdAt
}

// UpdatedAt returns when the recipe was last updated
func (r *Recipe) UpdatedAt() time.Time {
	return r.updatedAt
}

// Rename updates the title and regenerates the slug
func (r *Recipe) Rename(title string) error {
	if err := validateTitle(title); err != nil {
		return err
	}
	if r.status == StatusArchived {
		return ErrRecipeArchived
	}

	r.title = title
	r.slug = slug.Make(title)
	r.touch()
	return nil
}

// UpdateDescription updates the description with validation
func (r *Recipe) UpdateDescription(description string) error {
	if err := validateDescription(description); err != nil {
		return err
	}
	r.description = description
	r.touch()
	return nil
}

// SetStory sets the recipe's background story
func (r *Recipe) SetStory(story string) {
	r.story = story
	r.touch()
}

// SetTimings sets the free-text timing fields
func (r *Recipe) SetTimings(t Timings) {
	r.timings = t
	r.touch()
}

// SetIngredients replaces the ingredient list, validating each entry
func (r *Recipe) SetIngredients(ingredients []Ingredient) error {
	for _, ing := range ingredients {
		if err := ing.Validate(); err != nil {
			return err
		}
	}
	r.ingredients = ingredients
	r.touch()
	return nil
}

// SetSteps replaces the preparation steps
func (r *Recipe) SetSteps(steps []string) error {
	for _, s := range steps {
		if s == "" {
			return ErrNoSteps
		}
	}
	r.steps = steps
	r.touch()
	return nil
}

// SetNutrition sets the nutrition information
func (r *Recipe) SetNutrition(n Nutrition) {
	r.nutrition = n
	r.touch()
}

// SetImage sets the main image URL
func (r *Recipe) SetImage(url string) {
	r.imageURL = url
	r.touch()
}

// SetVideo sets the video URL
func (r *Recipe) SetVideo(url string) {
	r.videoURL = url
	r.touch()
}

// SetAffiliates replaces the affiliate link list, validating each entry
func (r *Recipe) SetAffiliates(affiliates []Affiliate) error {
	for _, a := range affiliates {
		if err := a.Validate(); err != nil {
			return err
		}
	}
	r.affiliates = affiliates
	r.touch()
	return nil
}

// SetTags replaces the tag list
func (r *Recipe) SetTags(tags []string) {
	r.tags = tags
	r.touch()
}

// AddTag appends a tag if not already present (case-sensitive)
func (r *Recipe) AddTag(tag string) {
	for _, t := range r.tags {
		if t == tag {
			return
		}
	}
	r.tags = append(r.tags, tag)
	r.touch()
}

// SetTips sets the preparation tips
func (r *Recipe) SetTips(tips string) {
	r.tips = tips
	r.touch()
}

// SetPairing sets the pairing suggestion
func (r *Recipe) SetPairing(pairing string) {
	r.pairing = pairing
	r.touch()
}

// SetFAQ replaces the question/answer pairs
func (r *Recipe) SetFAQ(faq []FAQ) {
	r.faq = faq
	r.touch()
}

// AddReview appends a validated reader review
func (r *Recipe) AddReview(review Review) error {
	if err := review.Validate(); err != nil {
		return err
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now()
	}
	r.reviews = append(r.reviews, review)
	r.touch()
	return nil
}

// Publish publishes the recipe making it publicly visible.
// A published recipe must have at least one ingredient and one step.
func (r *Recipe) Publish() error {
	if r.status == StatusPublished {
		return ErrRecipeAlreadyPublished
	}
	if r.status != StatusDraft {
		return ErrInvalidStatusTransition
	}
	if len(r.ingredients) == 0 {
		return ErrNoIngredients
	}
	if len(r.steps) == 0 {
		return ErrNoSteps
	}

	now := time.Now()
	r.status = StatusPublished
	r.publishedAt = &now
	r.updatedAt = now

	r.addEvent(PublishedEvent{
		RecipeID:    r.id,
		Slug:        r.slug,
		PublishedAt: now,
	})

	return nil
}

// Archive archives the recipe
func (r *Recipe) Archive() error {
	if r.status != StatusPublished {
		return ErrInvalidStatusTransition
	}

	r.status = StatusArchived
	r.touch()

	r.addEvent(ArchivedEvent{
		RecipeID:   r.id,
		ArchivedAt: r.updatedAt,
	})

	return nil
}

// Remix derives a new draft recipe from this one. The remix always gets a
// fresh id of the form "{originalID}-remix-{timestamp}" and carries both
// the modification string and "Remix" as provenance tags. Content fields
// start as copies of the original; the generation pipeline then overlays
// the AI's output on top.
func (r *Recipe) Remix(modification string) (*Recipe, error) {
	if modification == "" {
		return nil, ErrEmptyModification
	}

	now := time.Now()
	remix := &Recipe{
		id:          fmt.Sprintf("%s-remix-%d", r.id, now.Unix()),
		slug:        fmt.Sprintf("%s-remix-%d", r.slug, now.Unix()),
		title:       r.title,
		description: r.description,
		story:       r.story,
		timings:     r.timings,
		ingredients: append([]Ingredient(nil), r.ingredients...),
		steps:       append([]string(nil), r.steps...),
		nutrition:   r.nutrition,
		imageURL:    r.imageURL,
		affiliates:  append([]Affiliate(nil), r.affiliates...),
		tags:        append([]string(nil), r.tags...),
		tips:        r.tips,
		pairing:     r.pairing,
		faq:         append([]FAQ(nil), r.faq...),
		status:      StatusDraft,
		createdAt:   now,
		updatedAt:   now,
		events:      []shared.DomainEvent{},
	}

	remix.AddTag(modification)
	remix.AddTag("Remix")

	remix.addEvent(RemixedEvent{
		OriginalID:   r.id,
		RemixID:      remix.id,
		Modification: modification,
		RemixedAt:    now,
	})

	return remix, nil
}

// addEvent adds a domain event to be dispatched
func (r *Recipe) addEvent(event shared.DomainEvent) {
	r.events = append(r.events, event)
}

// Events returns and clears pending domain events
func (r *Recipe) Events() []shared.DomainEvent {
	events := r.events
	r.events = []shared.DomainEvent{}
	return events
}

// validateTitle validates recipe title
func validateTitle(title string) error {
	if len(title) < 3 {
		return ErrTitleTooShort
	}
	if len(title) > 200 {
		return ErrTitleTooLong
	}
	return nil
}

// validateDescription validates recipe description
func validateDescription(description string) error {
	if len(description) > 2000 {
		return ErrDescriptionTooLong
	}
	return nil
}

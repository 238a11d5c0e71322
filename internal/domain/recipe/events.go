package recipe

import "time"

// Domain Events - Events that occur within the recipe domain

// CreatedEvent is raised when a new recipe is created
type CreatedEvent struct {
	RecipeID  string
	Title     string
	Origin    string // "manual", "generated", "imported", "remix"
	CreatedAt time.Time
}

func (e CreatedEvent) EventName() string {
	return "recipe.created"
}

func (e CreatedEvent) OccurredAt() time.Time {
	return e.CreatedAt
}

// PublishedEvent is raised when a recipe is published
type PublishedEvent struct {
	RecipeID    string
	Slug        string
	PublishedAt time.Time
}

func (e PublishedEvent) EventName() string {
	return "recipe.published"
}

func (e PublishedEvent) OccurredAt() time.Time {
	return e.PublishedAt
}

// ArchivedEvent is raised when a recipe is archived
type ArchivedEvent struct {
	RecipeID   string
	ArchivedAt time.Time
}

func (e ArchivedEvent) EventName() string {
	return "recipe.archived"
}

func (e ArchivedEvent) OccurredAt() time.Time {
	return e.ArchivedAt
}

// RemixedEvent is raised when a remix is derived from an existing recipe
type RemixedEvent struct {
	OriginalID   string
	RemixID      string
	Modification string
	RemixedAt    time.Time
}

func (e RemixedEvent) EventName() string {
	return "recipe.remixed"
}

func (e RemixedEvent) OccurredAt() time.Time {
	return e.RemixedAt
}

package recipe

import (
	"time"

	"github.com/receitario/v1/internal/domain/shared"
)

// Memento is the flat persistence snapshot of a Recipe. It exists so
// repositories can rehydrate the aggregate without reaching into its
// unexported fields.
type Memento struct {
	ID          string
	Slug        string
	Title       string
	Description string
	Story       string
	Timings     Timings
	Ingredients []Ingredient
	Steps       []string
	Nutrition   Nutrition
	ImageURL    string
	VideoURL    string
	Affiliates  []Affiliate
	Tags        []string
	Tips        string
	Pairing     string
	FAQ         []FAQ
	Reviews     []Review
	Status      Status
	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Memento returns the recipe's persistence snapshot
func (r *Recipe) Memento() Memento {
	return Memento{
		ID:          r.id,
		Slug:        r.slug,
		Title:       r.title,
		Description: r.description,
		Story:       r.story,
		Timings:     r.timings,
		Ingredients: r.ingredients,
		Steps:       r.steps,
		Nutrition:   r.nutrition,
		ImageURL:    r.imageURL,
		VideoURL:    r.videoURL,
		Affiliates:  r.affiliates,
		Tags:        r.tags,
		Tips:        r.tips,
		Pairing:     r.pairing,
		FAQ:         r.faq,
		Reviews:     r.reviews,
		Status:      r.status,
		PublishedAt: r.publishedAt,
		CreatedAt:   r.createdAt,
		UpdatedAt:   r.updatedAt,
	}
}

// Reconstitute rebuilds a Recipe aggregate from its persisted snapshot.
// No events are raised and no validation re-runs; the snapshot is trusted.
func Reconstitute(m Memento) *Recipe {
	return &Recipe{
		id:          m.ID,
		slug:        m.Slug,
		title:       m.Title,
		description: m.Description,
		story:       m.Story,
		timings:     m.Timings,
		ingredients: m.Ingredients,
		steps:       m.Steps,
		nutrition:   m.Nutrition,
		imageURL:    m.ImageURL,
		videoURL:    m.VideoURL,
		affiliates:  m.Affiliates,
		tags:        m.Tags,
		tips:        m.Tips,
		pairing:     m.Pairing,
		faq:         m.FAQ,
		reviews:     m.Reviews,
		status:      m.Status,
		publishedAt: m.PublishedAt,
		createdAt:   m.CreatedAt,
		updatedAt:   m.UpdatedAt,
		events:      []shared.DomainEvent{},
	}
}

// touch updates the modification timestamp
func (r *Recipe) touch() {
	r.updatedAt = time.Now()
}

// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the interfaces that the application exposes to the outside world
package inbound

import (
	"context"
	"time"

	"github.com/receitario/v1/internal/domain/category"
	"github.com/receitario/v1/internal/domain/recipe"
)

// RecipeService defines the use cases for recipe management
// This is the primary port that HTTP handlers and other driving adapters will use
type RecipeService interface {
	// Commands - operations that modify state
	CreateRecipe(ctx context.Context, cmd SaveRecipeCommand) (*RecipeDTO, error)
	UpdateRecipe(ctx context.Context, id string, cmd SaveRecipeCommand) (*RecipeDTO, error)
	PublishRecipe(ctx context.Context, id string) (*RecipeDTO, error)
	ArchiveRecipe(ctx context.Context, id string) error
	DeleteRecipe(ctx context.Context, id string) error
	AddReview(ctx context.Context, id string, review ReviewCommand) error

	// Queries - operations that read state
	GetRecipe(ctx context.Context, id string) (*RecipeDTO, error)
	GetRecipeBySlug(ctx context.Context, slug string) (*RecipeDTO, error)
	ListRecipes(ctx context.Context, params PaginationParams) (*RecipeList, error)
	SearchRecipes(ctx context.Context, query string, params PaginationParams) (*RecipeList, error)
	ListByCategory(ctx context.Context, categoryID string, params PaginationParams) (*RecipeList, error)

	// Categories
	ListCategories(ctx context.Context) ([]category.Category, error)
	SaveCategories(ctx context.Context, categories []category.Category) error

	// Favorites, keyed by an anonymous visitor token
	IsFavorite(ctx context.Context, visitorID, recipeID string) (bool, error)
	ToggleFavorite(ctx context.Context, visitorID, recipeID string) (bool, error)
	ListFavorites(ctx context.Context, visitorID string) ([]*RecipeDTO, error)
}

// SaveRecipeCommand carries the full editable recipe shape for create and
// update. Saves replace the stored recipe wholesale (last write wins).
type SaveRecipeCommand struct {
	Title       string             `json:"title" validate:"required,min=3,max=200"`
	Description string             `json:"description" validate:"max=2000"`
	Story       string             `json:"story"`
	PrepTime    string             `json:"prepTime"`
	CookTime    string             `json:"cookTime"`
	TotalTime   string             `json:"totalTime"`
	Ingredients []IngredientDTO    `json:"ingredients"`
	Steps       []string           `json:"steps"`
	Nutrition   NutritionDTO       `json:"nutrition"`
	ImageURL    string             `json:"imageUrl"`
	VideoURL    string             `json:"videoUrl"`
	Affiliates  []AffiliateDTO     `json:"affiliates"`
	Tags        []string           `json:"tags"`
	Tips        string             `json:"tips"`
	Pairing     string             `json:"pairing"`
	FAQ         []FAQDTO           `json:"faq"`
}

// ReviewCommand carries a reader review submission.
type ReviewCommand struct {
	Author string `json:"author" validate:"required"`
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Text   string `json:"text"`
}

// PaginationParams carries paging inputs; zero values mean first page with
// the default size.
type PaginationParams struct {
	Page int `json:"page"`
	Size int `json:"size"`
}

// Offset converts the params to an offset/limit pair.
func (p PaginationParams) Offset() (int, int) {
	size := p.Size
	if size <= 0 || size > 100 {
		size = 20
	}
	page := p.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * size, size
}

// RecipeList is a page of recipes with the total count.
type RecipeList struct {
	Items []*RecipeDTO `json:"items"`
	Total int          `json:"total"`
	Page  int          `json:"page"`
	Size  int          `json:"size"`
}

// RecipeDTO is the transport shape of a recipe.
type RecipeDTO struct {
	ID          string          `json:"id"`
	Slug        string          `json:"slug"`
	Status      string          `json:"status"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Story       string          `json:"story,omitempty"`
	PrepTime    string          `json:"prepTime"`
	CookTime    string          `json:"cookTime"`
	TotalTime   string          `json:"totalTime"`
	Ingredients []IngredientDTO `json:"ingredients"`
	Steps       []string        `json:"steps"`
	Nutrition   NutritionDTO    `json:"nutrition"`
	ImageURL    string          `json:"imageUrl"`
	VideoURL    string          `json:"videoUrl,omitempty"`
	Affiliates  []AffiliateDTO  `json:"affiliates,omitempty"`
	Tags        []string        `json:"tags"`
	Tips        string          `json:"tips,omitempty"`
	Pairing     string          `json:"pairing,omitempty"`
	FAQ         []FAQDTO        `json:"faq,omitempty"`
	Reviews     []ReviewDTO     `json:"reviews,omitempty"`
	PublishedAt *time.Time      `json:"publishedAt,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// IngredientDTO is the transport shape of an ingredient.
type IngredientDTO struct {
	Item         string `json:"item"`
	Amount       string `json:"amount"`
	Note         string `json:"note,omitempty"`
	PurchaseLink string `json:"purchaseLink,omitempty"`
}

// NutritionDTO is the transport shape of nutrition information.
type NutritionDTO struct {
	Calories int    `json:"calories"`
	Protein  string `json:"protein"`
	Carbs    string `json:"carbs"`
	Fat      string `json:"fat"`
}

// AffiliateDTO is the transport shape of an affiliate link.
type AffiliateDTO struct {
	Name  string `json:"name"`
	URL   string `json:"url"`
	Price string `json:"price,omitempty"`
	Image string `json:"image,omitempty"`
}

// FAQDTO is the transport shape of a FAQ entry.
type FAQDTO struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ReviewDTO is the transport shape of a review.
type ReviewDTO struct {
	Author    string    `json:"author"`
	Rating    int       `json:"rating"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewRecipeDTO maps a domain recipe to its transport shape.
func NewRecipeDTO(r *recipe.Recipe) *RecipeDTO {
	m := r.Memento()

	ingredients := make([]IngredientDTO, len(m.Ingredients))
	for i, ing := range m.Ingredients {
		ingredients[i] = IngredientDTO{
			Item:         ing.Item,
			Amount:       ing.Amount,
			Note:         ing.Note,
			PurchaseLink: ing.PurchaseLink,
		}
	}

	affiliates := make([]AffiliateDTO, len(m.Affiliates))
	for i, a := range m.Affiliates {
		affiliates[i] = AffiliateDTO{Name: a.Name, URL: a.URL, Price: a.Price, Image: a.Image}
	}

	faq := make([]FAQDTO, len(m.FAQ))
	for i, f := range m.FAQ {
		faq[i] = FAQDTO{Question: f.Question, Answer: f.Answer}
	}

	reviews := make([]ReviewDTO, len(m.Reviews))
	for i, rv := range m.Reviews {
		reviews[i] = ReviewDTO{Author: rv.Author, Rating: rv.Rating, Text: rv.Text, CreatedAt: rv.CreatedAt}
	}

	return &RecipeDTO{
		ID:          m.ID,
		Slug:        m.Slug,
		Status:      string(m.Status),
		Title:       m.Title,
		Description: m.Description,
		Story:       m.Story,
		PrepTime:    m.Timings.Prep,
		CookTime:    m.Timings.Cook,
		TotalTime:   m.Timings.Total,
		Ingredients: ingredients,
		Steps:       m.Steps,
		Nutrition: NutritionDTO{
			Calories: m.Nutrition.Calories,
			Protein:  m.Nutrition.Protein,
			Carbs:    m.Nutrition.Carbs,
			Fat:      m.Nutrition.Fat,
		},
		ImageURL:    m.ImageURL,
		VideoURL:    m.VideoURL,
		Affiliates:  affiliates,
		Tags:        m.Tags,
		Tips:        m.Tips,
		Pairing:     m.Pairing,
		FAQ:         faq,
		Reviews:     reviews,
		PublishedAt: m.PublishedAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

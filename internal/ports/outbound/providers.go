package outbound

import (
	"context"
	"errors"
)

// ErrModelNotFound is returned by AIProvider video operations when the
// requested model identifier is unknown to the provider. The reel pipeline
// retries exactly once against the configured fallback model on this error.
var ErrModelNotFound = errors.New("ai provider: model not found")

// GeneratedIngredient is one ingredient produced by the AI provider.
type GeneratedIngredient struct {
	Item         string `json:"item"`
	Amount       string `json:"amount"`
	Note         string `json:"note,omitempty"`
}

// GeneratedFAQ is one question/answer pair produced by the AI provider.
type GeneratedFAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// GeneratedNutrition is the nutrition block produced by the AI provider.
type GeneratedNutrition struct {
	Calories int    `json:"calories"`
	Protein  string `json:"protein"`
	Carbs    string `json:"carbs"`
	Fat      string `json:"fat"`
}

// GeneratedRecipe is the structured output of a recipe text generation
// call. VisualDescription drives image generation only and is never
// displayed; Utensils feed the affiliate enrichment step.
type GeneratedRecipe struct {
	Title             string                `json:"title"`
	Slug              string                `json:"slug"`
	Description       string                `json:"description"`
	Story             string                `json:"story"`
	PrepTime          string                `json:"prepTime"`
	CookTime          string                `json:"cookTime"`
	TotalTime         string                `json:"totalTime"`
	Ingredients       []GeneratedIngredient `json:"ingredients"`
	Steps             []string              `json:"steps"`
	Nutrition         GeneratedNutrition    `json:"nutrition"`
	Tags              []string              `json:"tags"`
	Tips              string                `json:"tips"`
	Pairing           string                `json:"pairing"`
	FAQ               []GeneratedFAQ        `json:"faq"`
	VisualDescription string                `json:"visualDescription"`
	Utensils          []string              `json:"utensils"`
}

// GeneratedSlide is one slide of a generated web story. Each slide carries
// its own visual prompt for a dedicated image generation call.
type GeneratedSlide struct {
	Type         string `json:"type"`
	Layout       string `json:"layout"`
	Text         string `json:"text"`
	Subtext      string `json:"subtext"`
	VisualPrompt string `json:"visualPrompt"`
}

// GeneratedStory is the structured output of a web story generation call.
type GeneratedStory struct {
	Title  string           `json:"title"`
	Slides []GeneratedSlide `json:"slides"`
}

// NutritionAnalysis is the fixed schema of a food photo analysis.
type NutritionAnalysis struct {
	DishName    string `json:"dishName"`
	Calories    int    `json:"calories"`
	Protein     string `json:"protein"`
	Carbs       string `json:"carbs"`
	Fat         string `json:"fat"`
	HealthNotes string `json:"healthNotes"`
}

// Utensil is a kitchen tool implied by a recipe, with the search term to
// resolve it against the affiliate catalog.
type Utensil struct {
	Name       string `json:"name"`
	SearchTerm string `json:"search_term"`
}

// VideoOperation is the state of a long-running video generation job.
type VideoOperation struct {
	ID       string
	Done     bool
	VideoURI string
}

// RemixSource is the subset of an existing recipe handed to the provider
// when deriving a remix.
type RemixSource struct {
	Title       string
	Description string
	Ingredients []GeneratedIngredient
	Steps       []string
	Tags        []string
}

// AIProvider defines the interface for the generative AI provider. Text
// and analysis calls return errors to the caller; fallback policies
// (stock image, per-slide image reuse, empty utensil list) belong to the
// application layer, not here.
type AIProvider interface {
	// Structured recipe text generation
	GenerateRecipeFromScratch(ctx context.Context, dishName string) (*GeneratedRecipe, error)
	GenerateRecipeFromIngredients(ctx context.Context, items []string) (*GeneratedRecipe, error)
	ConvertWordPressPost(ctx context.Context, html, title string, categories []string) (*GeneratedRecipe, error)
	RemixRecipe(ctx context.Context, original RemixSource, modification string) (*GeneratedRecipe, error)

	// Media generation
	GenerateImage(ctx context.Context, visualDescription string) ([]byte, error)
	GenerateStory(ctx context.Context, recipeTitle, description string) (*GeneratedStory, error)
	GenerateReelScript(ctx context.Context, recipeTitle string, steps []string) (string, error)
	GenerateMemeCaption(ctx context.Context, topic string) (string, error)

	// Long-running video jobs. StartVideoJob returns ErrModelNotFound when
	// the model id is unknown; PollVideoJob is called until Done.
	StartVideoJob(ctx context.Context, prompt, model string) (*VideoOperation, error)
	PollVideoJob(ctx context.Context, op *VideoOperation) (*VideoOperation, error)

	// Multimodal analysis. IdentifyUtensils takes a free-text dish
	// description, typically the name from a prior photo analysis.
	AnalyzeFoodImage(ctx context.Context, base64Image string) (*NutritionAnalysis, error)
	IdentifyUtensils(ctx context.Context, dish string) ([]Utensil, error)
}

// AffiliateLink is a resolved affiliate product link.
type AffiliateLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// AffiliateClient resolves utensil names to affiliate purchase links via
// the configured webhook. Enrichment is strictly best-effort: the method
// returns an empty slice on any network, status, or parse failure and
// never blocks the recipe save flow.
type AffiliateClient interface {
	FetchLinks(ctx context.Context, webhookURL string, utensils []Utensil) []AffiliateLink
}

// SocialPayload is the exact JSON shape the social automation webhook
// expects.
type SocialPayload struct {
	Title struct {
		Rendered string `json:"rendered"`
	} `json:"title"`
	GUID struct {
		Rendered string `json:"rendered"`
	} `json:"guid"`
	Link   string `json:"link"`
	Output struct {
		Slug          string `json:"slug"`
		InstagramPost string `json:"instagramPost"`
		Title         string `json:"title"`
	} `json:"output"`
}

// SocialPublisher posts a formatted payload to the social automation
// webhook. Unlike affiliate enrichment, failures here are surfaced: the
// returned error carries the response status text on non-2xx.
type SocialPublisher interface {
	Publish(ctx context.Context, webhookURL string, payload SocialPayload) error
}

// WordPressPost is a post fetched from the WordPress source API. IsSample
// marks the built-in mock posts substituted when the source yields
// nothing.
type WordPressPost struct {
	ID         int      `json:"id"`
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Link       string   `json:"link"`
	Categories []string `json:"categories"`
	IsSample   bool     `json:"-"`
}

// WordPressClient fetches posts from the legacy WordPress site for import.
type WordPressClient interface {
	// FetchAllPosts pages through the posts endpoint until an empty page
	// or a 400 status, and substitutes mock posts only when zero real
	// posts were fetched.
	FetchAllPosts(ctx context.Context) ([]WordPressPost, error)
}

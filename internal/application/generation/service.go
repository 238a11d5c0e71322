// Package generation implements the AI-backed creation flows: recipe
// generation, the staged magic-creation flow, web stories, reels, memes
// and photo analysis.
package generation

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/receitario/v1/internal/domain/recipe"
	"github.com/receitario/v1/internal/infrastructure/config"
	"github.com/receitario/v1/internal/infrastructure/monitoring"
	"github.com/receitario/v1/internal/ports/inbound"
	"github.com/receitario/v1/internal/ports/outbound"
	"github.com/receitario/v1/pkg/errors"
)

// StockImageURL is the safe fallback shown whenever image generation or
// upload fails. The content flow must never abort because of a missing
// photo.
const StockImageURL = "https://images.unsplash.com/photo-1546069901-ba9599a7e63c?q=80&w=1080&auto=format&fit=crop"

// Service implements the GenerationService use cases
type Service struct {
	provider     outbound.AIProvider
	recipeRepo   outbound.RecipeRepository
	storyRepo    outbound.StoryRepository
	settingsRepo outbound.SettingsRepository
	affiliates   outbound.AffiliateClient
	publisher    outbound.SocialPublisher
	storage      outbound.StorageService
	metrics      *monitoring.Metrics
	cfg          config.AIConfig
	logger       *zap.Logger
}

// NewService creates a new generation service
func NewService(
	provider outbound.AIProvider,
	recipeRepo outbound.RecipeRepository,
	storyRepo outbound.StoryRepository,
	settingsRepo outbound.SettingsRepository,
	affiliates outbound.AffiliateClient,
	publisher outbound.SocialPublisher,
	storage outbound.StorageService,
	metrics *monitoring.Metrics,
	cfg config.AIConfig,
	logger *zap.Logger,
) inbound.GenerationService {
	return &Service{
		provider:     provider,
		recipeRepo:   recipeRepo,
		storyRepo:    storyRepo,
		settingsRepo: settingsRepo,
		affiliates:   affiliates,
		publisher:    publisher,
		storage:      storage,
		metrics:      metrics,
		cfg:          cfg,
		logger:       logger.Named("generation-service"),
	}
}

// GenerateFromScratch creates a draft recipe for a dish name
func (s *Service) GenerateFromScratch(ctx context.Context, dishName string) (*inbound.RecipeDTO, error) {
	return s.generateAndPersist(ctx, "from_scratch", func() (*outbound.GeneratedRecipe, error) {
		return s.provider.GenerateRecipeFromScratch(ctx, dishName)
	})
}

// GenerateFromIngredients creates a draft recipe around the given items
func (s *Service) GenerateFromIngredients(ctx context.Context, ingredients []string) (*inbound.RecipeDTO, error) {
	return s.generateAndPersist(ctx, "from_ingredients", func() (*outbound.GeneratedRecipe, error) {
		return s.provider.GenerateRecipeFromIngredients(ctx, ingredients)
	})
}

// generateAndPersist runs one text generation, renders its image, enriches
// affiliates when configured, and saves the draft. A text failure aborts
// before anything is persisted.
func (s *Service) generateAndPersist(ctx context.Context, operation string, generate func() (*outbound.GeneratedRecipe, error)) (*inbound.RecipeDTO, error) {
	start := time.Now()

	generated, err := generate()
	if err != nil {
		s.metrics.GenerationFailures.WithLabelValues(operation).Inc()
		s.metrics.GenerationsTotal.WithLabelValues(operation, "failure").Inc()
		return nil, errors.NewGenerationError(operation, err)
	}

	entity, err := s.buildRecipe(generated)
	if err != nil {
		s.metrics.GenerationsTotal.WithLabelValues(operation, "failure").Inc()
		return nil, errors.NewGenerationError(operation, err)
	}

	entity.SetImage(s.renderImage(ctx, generated.VisualDescription))
	s.enrichAffiliates(ctx, entity, generated.Utensils)

	if err := s.recipeRepo.Save(ctx, entity); err != nil {
		return nil, errors.NewDatabaseError("save generated recipe", err)
	}

	s.metrics.GenerationsTotal.WithLabelValues(operation, "success").Inc()
	s.metrics.GenerationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	s.logger.Info("Recipe generated",
		zap.String("operation", operation),
		zap.String("id", entity.ID()),
		zap.Duration("elapsed", time.Since(start)))

	return inbound.NewRecipeDTO(entity), nil
}

// RemixRecipe derives a tagged variation of an existing recipe. The remix
// carries a suffixed id and slug so the original stays addressable.
func (s *Service) RemixRecipe(ctx context.Context, recipeID, modification string) (*inbound.RecipeDTO, error) {
	original, err := s.recipeRepo.FindByID(ctx, recipeID)
	if err != nil {
		return nil, errors.NewRecipeNotFoundError(recipeID)
	}

	source := outbound.RemixSource{
		Title:       original.Title(),
		Description: original.Description(),
		Steps:       original.Steps(),
		Tags:        original.Tags(),
	}
	for _, ing := range original.Ingredients() {
		source.Ingredients = append(source.Ingredients, outbound.GeneratedIngredient{
			Item:   ing.Item,
			Amount: ing.Amount,
			Note:   ing.Note,
		})
	}

	generated, err := s.provider.RemixRecipe(ctx, source, modification)
	if err != nil {
		s.metrics.GenerationFailures.WithLabelValues("remix").Inc()
		return nil, errors.NewGenerationError("remix", err)
	}

	remix, err := original.Remix(modification)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive remix")
	}
	if err := s.applyGenerated(remix, generated); err != nil {
		return nil, errors.NewGenerationError("remix", err)
	}

	remix.SetImage(s.renderImage(ctx, generated.VisualDescription))
	s.enrichAffiliates(ctx, remix, generated.Utensils)

	if err := s.recipeRepo.Save(ctx, remix); err != nil {
		return nil, errors.NewDatabaseError("save remix", err)
	}

	s.metrics.GenerationsTotal.WithLabelValues("remix", "success").Inc()
	return inbound.NewRecipeDTO(remix), nil
}

// AnalyzeFoodImage runs nutrition analysis on a photo. Failures surface
// to the caller; there is no fallback analysis.
func (s *Service) AnalyzeFoodImage(ctx context.Context, imageData []byte, mimeType string) (*inbound.FoodAnalysisDTO, error) {
	encoded := base64.StdEncoding.EncodeToString(imageData)

	analysis, err := s.provider.AnalyzeFoodImage(ctx, encoded)
	if err != nil {
		s.metrics.GenerationFailures.WithLabelValues("analyze_image").Inc()
		return nil, errors.NewGenerationError("photo analysis", err)
	}

	return &inbound.FoodAnalysisDTO{
		DishName:    analysis.DishName,
		Description: analysis.HealthNotes,
		Nutrition: inbound.NutritionDTO{
			Calories: analysis.Calories,
			Protein:  analysis.Protein,
			Carbs:    analysis.Carbs,
			Fat:      analysis.Fat,
		},
	}, nil
}

// IdentifyUtensils lists the tools a photo implies. Identification is
// best-effort: failures yield an empty list, never an error.
func (s *Service) IdentifyUtensils(ctx context.Context, imageData []byte, mimeType string) ([]inbound.UtensilDTO, error) {
	encoded := base64.StdEncoding.EncodeToString(imageData)

	analysis, err := s.provider.AnalyzeFoodImage(ctx, encoded)
	if err != nil {
		s.logger.Warn("Utensil identification failed", zap.Error(err))
		return []inbound.UtensilDTO{}, nil
	}

	utensils, err := s.provider.IdentifyUtensils(ctx, analysis.DishName)
	if err != nil {
		s.logger.Warn("Utensil identification failed", zap.Error(err))
		return []inbound.UtensilDTO{}, nil
	}

	dtos := make([]inbound.UtensilDTO, len(utensils))
	for i, u := range utensils {
		dtos[i] = inbound.UtensilDTO{Name: u.Name, SearchTerm: u.SearchTerm}
	}
	return dtos, nil
}

// renderImage generates and uploads a dish photo, falling back to the
// stock photo on any failure. This path never returns an error.
func (s *Service) renderImage(ctx context.Context, visualDescription string) string {
	if visualDescription == "" {
		s.metrics.ImageFallbacks.Inc()
		return StockImageURL
	}

	data, err := s.provider.GenerateImage(ctx, visualDescription)
	if err != nil {
		s.logger.Warn("Image generation failed, using stock photo", zap.Error(err))
		s.metrics.ImageFallbacks.Inc()
		return StockImageURL
	}

	url, err := s.storage.UploadImage(ctx, data, "recipes")
	if err != nil {
		s.logger.Warn("Image upload failed, using stock photo", zap.Error(err))
		s.metrics.ImageFallbacks.Inc()
		return StockImageURL
	}

	return url
}

// enrichAffiliates resolves utensil names against the affiliate webhook
// and attaches whatever came back. Skipped entirely when the webhook is
// not configured; never blocks the save flow.
func (s *Service) enrichAffiliates(ctx context.Context, entity *recipe.Recipe, utensilNames []string) {
	if len(utensilNames) == 0 {
		return
	}

	siteSettings, err := s.settingsRepo.Get(ctx)
	if err != nil || siteSettings.Webhooks.Affiliate == "" {
		return
	}

	utensils := make([]outbound.Utensil, len(utensilNames))
	for i, name := range utensilNames {
		utensils[i] = outbound.Utensil{Name: name, SearchTerm: name}
	}

	s.attachLinks(ctx, entity, siteSettings.Webhooks.Affiliate, utensils)
}

// attachLinks fetches affiliate links for the utensils and attaches any
// that resolved
func (s *Service) attachLinks(ctx context.Context, entity *recipe.Recipe, webhook string, utensils []outbound.Utensil) {
	links := s.affiliates.FetchLinks(ctx, webhook, utensils)
	if len(links) == 0 {
		return
	}

	affiliates := make([]recipe.Affiliate, len(links))
	for i, l := range links {
		affiliates[i] = recipe.Affiliate{Name: l.Name, URL: l.URL}
	}
	if err := entity.SetAffiliates(affiliates); err != nil {
		s.logger.Warn("Failed to attach affiliates", zap.Error(err))
	}
}

// buildRecipe constructs a fresh draft aggregate from provider output
func (s *Service) buildRecipe(g *outbound.GeneratedRecipe) (*recipe.Recipe, error) {
	entity, err := recipe.NewRecipe(g.Title, g.Description)
	if err != nil {
		return nil, err
	}
	if err := s.applyGenerated(entity, g); err != nil {
		return nil, err
	}
	return entity, nil
}

// applyGenerated copies generated content onto an aggregate. Used both
// for fresh drafts and for remixes, where the aggregate already carries
// its derived identity and provenance tags.
func (s *Service) applyGenerated(entity *recipe.Recipe, g *outbound.GeneratedRecipe) error {
	entity.SetStory(g.Story)
	entity.SetTimings(recipe.Timings{Prep: g.PrepTime, Cook: g.CookTime, Total: g.TotalTime})

	ingredients := make([]recipe.Ingredient, len(g.Ingredients))
	for i, ing := range g.Ingredients {
		ingredients[i] = recipe.Ingredient{Item: ing.Item, Amount: ing.Amount, Note: ing.Note}
	}
	if err := entity.SetIngredients(ingredients); err != nil {
		return fmt.Errorf("generated ingredients rejected: %w", err)
	}
	if err := entity.SetSteps(g.Steps); err != nil {
		return fmt.Errorf("generated steps rejected: %w", err)
	}

	entity.SetNutrition(recipe.Nutrition{
		Calories: g.Nutrition.Calories,
		Protein:  g.Nutrition.Protein,
		Carbs:    g.Nutrition.Carbs,
		Fat:      g.Nutrition.Fat,
	})

	for _, tag := range g.Tags {
		entity.AddTag(tag)
	}
	entity.SetTips(g.Tips)
	entity.SetPairing(g.Pairing)

	faq := make([]recipe.FAQ, len(g.FAQ))
	for i, f := range g.FAQ {
		faq[i] = recipe.FAQ{Question: f.Question, Answer: f.Answer}
	}
	entity.SetFAQ(faq)

	return nil
}

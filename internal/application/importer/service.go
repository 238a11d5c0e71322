// Package importer converts posts from the legacy WordPress blog into
// draft recipes, one at a time.
package importer

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/receitario/v1/internal/domain/recipe"
	"github.com/receitario/v1/internal/infrastructure/monitoring"
	"github.com/receitario/v1/internal/ports/inbound"
	"github.com/receitario/v1/internal/ports/outbound"
	apperrors "github.com/receitario/v1/pkg/errors"
)

// Importer runs WordPress batch imports. Conversion is strictly
// sequential with a minimum delay between item starts so the AI provider
// is never hammered by a large archive.
type Importer struct {
	wordpress  outbound.WordPressClient
	provider   outbound.AIProvider
	recipeRepo outbound.RecipeRepository
	storage    outbound.StorageService
	metrics    *monitoring.Metrics
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// FallbackImageURL fills imported recipes whose image generation failed.
const FallbackImageURL = "https://images.unsplash.com/photo-1546069901-ba9599a7e63c?q=80&w=1080&auto=format&fit=crop"

// NewImporter creates a new WordPress importer. itemDelay is the minimum
// interval between item starts, never below 500ms.
func NewImporter(
	wordpress outbound.WordPressClient,
	provider outbound.AIProvider,
	recipeRepo outbound.RecipeRepository,
	storage outbound.StorageService,
	metrics *monitoring.Metrics,
	itemDelay time.Duration,
	logger *zap.Logger,
) *Importer {
	if itemDelay < 500*time.Millisecond {
		itemDelay = 500 * time.Millisecond
	}
	return &Importer{
		wordpress:  wordpress,
		provider:   provider,
		recipeRepo: recipeRepo,
		storage:    storage,
		metrics:    metrics,
		limiter:    rate.NewLimiter(rate.Every(itemDelay), 1),
		logger:     logger.Named("wordpress-importer"),
	}
}

// Run fetches all posts and converts each into a draft recipe. A failing
// post is recorded and the batch continues; successes plus failures always
// add up to the post count.
func (i *Importer) Run(ctx context.Context, progress inbound.ImportProgressFunc) (*inbound.ImportResult, error) {
	report := func(update inbound.ImportUpdate) {
		if progress != nil {
			progress(update)
		}
	}

	posts, err := i.wordpress.FetchAllPosts(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.CodeImportFailed, "Import failed", "Could not fetch posts from the WordPress site").WithCause(err)
	}

	result := &inbound.ImportResult{Total: len(posts)}
	for _, post := range posts {
		if post.IsSample {
			result.UsedMocks = true
			break
		}
	}

	for idx, post := range posts {
		if err := i.limiter.Wait(ctx); err != nil {
			return nil, apperrors.NewAppError(apperrors.CodeImportFailed, "Import aborted", "").WithCause(err)
		}

		report(inbound.ImportUpdate{
			Index:     idx,
			Total:     len(posts),
			PostTitle: post.Title,
			Status:    "converting",
		})

		id, err := i.importPost(ctx, post)
		if err != nil {
			result.Failed++
			i.logger.Warn("Post import failed",
				zap.String("title", post.Title),
				zap.Error(err))
			report(inbound.ImportUpdate{
				Index:     idx,
				Total:     len(posts),
				PostTitle: post.Title,
				Status:    "failed",
				Error:     err.Error(),
			})
			continue
		}

		result.Imported++
		result.RecipeIDs = append(result.RecipeIDs, id)
		i.metrics.ImportedPosts.Inc()
		report(inbound.ImportUpdate{
			Index:     idx,
			Total:     len(posts),
			PostTitle: post.Title,
			Status:    "saved",
		})
	}

	i.logger.Info("WordPress import finished",
		zap.Int("total", result.Total),
		zap.Int("imported", result.Imported),
		zap.Int("failed", result.Failed),
		zap.Bool("used_mocks", result.UsedMocks))

	return result, nil
}

// importPost converts one post into a saved draft recipe
func (i *Importer) importPost(ctx context.Context, post outbound.WordPressPost) (string, error) {
	generated, err := i.provider.ConvertWordPressPost(ctx, post.Content, post.Title, post.Categories)
	if err != nil {
		return "", err
	}

	entity, err := recipe.NewRecipe(generated.Title, generated.Description)
	if err != nil {
		return "", err
	}
	entity.SetStory(generated.Story)
	entity.SetTimings(recipe.Timings{Prep: generated.PrepTime, Cook: generated.CookTime, Total: generated.TotalTime})

	ingredients := make([]recipe.Ingredient, len(generated.Ingredients))
	for j, ing := range generated.Ingredients {
		ingredients[j] = recipe.Ingredient{Item: ing.Item, Amount: ing.Amount, Note: ing.Note}
	}
	if err := entity.SetIngredients(ingredients); err != nil {
		return "", err
	}
	if err := entity.SetSteps(generated.Steps); err != nil {
		return "", err
	}
	entity.SetNutrition(recipe.Nutrition{
		Calories: generated.Nutrition.Calories,
		Protein:  generated.Nutrition.Protein,
		Carbs:    generated.Nutrition.Carbs,
		Fat:      generated.Nutrition.Fat,
	})
	for _, tag := range generated.Tags {
		entity.AddTag(tag)
	}
	for _, cat := range post.Categories {
		entity.AddTag(cat)
	}
	entity.SetTips(generated.Tips)
	entity.SetPairing(generated.Pairing)

	faq := make([]recipe.FAQ, len(generated.FAQ))
	for j, f := range generated.FAQ {
		faq[j] = recipe.FAQ{Question: f.Question, Answer: f.Answer}
	}
	entity.SetFAQ(faq)

	entity.SetImage(i.renderImage(ctx, generated.VisualDescription))

	if err := i.recipeRepo.Save(ctx, entity); err != nil {
		return "", err
	}
	return entity.ID(), nil
}

func (i *Importer) renderImage(ctx context.Context, visualDescription string) string {
	if visualDescription == "" {
		return FallbackImageURL
	}
	data, err := i.provider.GenerateImage(ctx, visualDescription)
	if err != nil {
		i.metrics.ImageFallbacks.Inc()
		return FallbackImageURL
	}
	url, err := i.storage.UploadImage(ctx, data, "imported")
	if err != nil {
		i.metrics.ImageFallbacks.Inc()
		return FallbackImageURL
	}
	return url
}

// Package social formats and publishes recipe announcements to the social
// automation webhook.
package social

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/receitario/v1/internal/domain/recipe"
	"github.com/receitario/v1/internal/infrastructure/monitoring"
	"github.com/receitario/v1/internal/ports/inbound"
	"github.com/receitario/v1/internal/ports/outbound"
	apperrors "github.com/receitario/v1/pkg/errors"
)

// defaultHashtags always close the caption, after the recipe's own tags.
var defaultHashtags = []string{
	"#receitas",
	"#receitafacil",
	"#comidacaseira",
	"#gastronomia",
	"#cozinhabrasileira",
}

// Service implements the SocialService use cases
type Service struct {
	recipeRepo   outbound.RecipeRepository
	settingsRepo outbound.SettingsRepository
	publisher    outbound.SocialPublisher
	metrics      *monitoring.Metrics
	siteBaseURL  string
	logger       *zap.Logger
}

// NewService creates a new social publishing service
func NewService(
	recipeRepo outbound.RecipeRepository,
	settingsRepo outbound.SettingsRepository,
	publisher outbound.SocialPublisher,
	metrics *monitoring.Metrics,
	siteBaseURL string,
	logger *zap.Logger,
) inbound.SocialService {
	return &Service{
		recipeRepo:   recipeRepo,
		settingsRepo: settingsRepo,
		publisher:    publisher,
		metrics:      metrics,
		siteBaseURL:  strings.TrimRight(siteBaseURL, "/"),
		logger:       logger.Named("social-service"),
	}
}

// PublishRecipe posts the recipe announcement to the social webhook.
// Publishing failures always surface; there is no silent fallback here.
func (s *Service) PublishRecipe(ctx context.Context, recipeID string) error {
	rec, err := s.recipeRepo.FindByID(ctx, recipeID)
	if err != nil {
		return apperrors.NewRecipeNotFoundError(recipeID)
	}

	siteSettings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return apperrors.NewDatabaseError("load settings", err)
	}
	if siteSettings.Webhooks.Social == "" {
		return apperrors.NewWebhookNotConfiguredError("social webhook URL is not configured")
	}

	link := s.recipeLink(rec)
	payload := outbound.SocialPayload{Link: link}
	payload.Title.Rendered = rec.Title()
	payload.GUID.Rendered = link
	payload.Output.Slug = rec.Slug()
	payload.Output.InstagramPost = s.caption(rec)
	payload.Output.Title = rec.Title()

	if err := s.publisher.Publish(ctx, siteSettings.Webhooks.Social, payload); err != nil {
		s.metrics.WebhookFailures.WithLabelValues("social").Inc()
		return err
	}

	s.logger.Info("Recipe published to social webhook",
		zap.String("recipe_id", recipeID),
		zap.String("slug", rec.Slug()))
	return nil
}

// BuildCaption returns the caption PublishRecipe would post
func (s *Service) BuildCaption(ctx context.Context, recipeID string) (string, error) {
	rec, err := s.recipeRepo.FindByID(ctx, recipeID)
	if err != nil {
		return "", apperrors.NewRecipeNotFoundError(recipeID)
	}
	return s.caption(rec), nil
}

// caption interpolates the fixed announcement template with the recipe's
// fields and appends its tags plus the default hashtag set.
func (s *Service) caption(rec *recipe.Recipe) string {
	var b strings.Builder

	fmt.Fprintf(&b, "✨ %s ✨\n\n", rec.Title())
	if rec.Description() != "" {
		b.WriteString(rec.Description())
		b.WriteString("\n\n")
	}
	if total := rec.Timings().Total; total != "" {
		fmt.Fprintf(&b, "⏱️ Tempo total: %s\n", total)
	}
	fmt.Fprintf(&b, "🥣 %d ingredientes, %d passos\n\n", len(rec.Ingredients()), len(rec.Steps()))
	b.WriteString("Receita completa no link da bio! 👆\n\n")
	b.WriteString(hashtags(rec.Tags()))

	return b.String()
}

// hashtags turns recipe tags into hashtags and appends the default set,
// deduplicating case-insensitively.
func hashtags(tags []string) string {
	seen := make(map[string]bool)
	var out []string

	add := func(tag string) {
		key := strings.ToLower(tag)
		if !seen[key] {
			seen[key] = true
			out = append(out, tag)
		}
	}

	for _, tag := range tags {
		cleaned := strings.ReplaceAll(strings.TrimSpace(tag), " ", "")
		if cleaned == "" {
			continue
		}
		add("#" + strings.ToLower(cleaned))
	}
	for _, tag := range defaultHashtags {
		add(tag)
	}

	return strings.Join(out, " ")
}

func (s *Service) recipeLink(rec *recipe.Recipe) string {
	return fmt.Sprintf("%s/receitas/%s", s.siteBaseURL, rec.Slug())
}

package generation

import (
	"context"

	"go.uber.org/zap"

	"github.com/receitario/v1/internal/ports/inbound"
	"github.com/receitario/v1/internal/ports/outbound"
	"github.com/receitario/v1/pkg/errors"
)

// MagicCreate runs the staged dashboard flow: text generation, image
// rendering, optional affiliate enrichment, then a reviewable draft.
// Phases advance strictly in order; enrichment is skipped when no
// affiliate webhook is configured. The draft is persisted at review so
// the admin can commit (publish) or discard it later.
func (s *Service) MagicCreate(ctx context.Context, query string, progress inbound.ProgressFunc) (*inbound.RecipeDTO, error) {
	report := func(phase inbound.MagicPhase) {
		if progress != nil {
			progress(phase)
		}
	}

	report(inbound.PhaseSearching)
	generated, err := s.provider.GenerateRecipeFromScratch(ctx, query)
	if err != nil {
		s.metrics.GenerationFailures.WithLabelValues("magic").Inc()
		report(inbound.PhaseIdle)
		return nil, errors.NewGenerationError("magic creation", err)
	}

	entity, err := s.buildRecipe(generated)
	if err != nil {
		report(inbound.PhaseIdle)
		return nil, errors.NewGenerationError("magic creation", err)
	}

	report(inbound.PhaseImaging)
	entity.SetImage(s.renderImage(ctx, generated.VisualDescription))

	if webhook := s.affiliateWebhook(ctx); webhook != "" {
		report(inbound.PhaseEnriching)
		utensils := make([]outbound.Utensil, len(generated.Utensils))
		for i, name := range generated.Utensils {
			utensils[i] = outbound.Utensil{Name: name, SearchTerm: name}
		}
		s.attachLinks(ctx, entity, webhook, utensils)
	}

	report(inbound.PhaseReview)
	if err := s.recipeRepo.Save(ctx, entity); err != nil {
		return nil, errors.NewDatabaseError("save magic draft", err)
	}

	report(inbound.PhaseDone)
	s.logger.Info("Magic creation completed",
		zap.String("query", query),
		zap.String("id", entity.ID()))

	return inbound.NewRecipeDTO(entity), nil
}

func (s *Service) affiliateWebhook(ctx context.Context) string {
	siteSettings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		s.logger.Warn("Failed to load settings for enrichment", zap.Error(err))
		return ""
	}
	return siteSettings.Webhooks.Affiliate
}

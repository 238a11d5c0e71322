package generation

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/receitario/v1/internal/ports/outbound"
	apperrors "github.com/receitario/v1/pkg/errors"
)

// PublishMeme generates a humorous caption and a meme image for a recipe
// and posts both to the meme automation webhook. Caption and image run
// concurrently; either failure aborts the publish.
func (s *Service) PublishMeme(ctx context.Context, recipeID string) error {
	rec, err := s.recipeRepo.FindByID(ctx, recipeID)
	if err != nil {
		return apperrors.NewRecipeNotFoundError(recipeID)
	}

	siteSettings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return apperrors.NewDatabaseError("load settings", err)
	}
	if siteSettings.Webhooks.Meme == "" {
		return apperrors.NewWebhookNotConfiguredError("meme webhook URL is not configured")
	}

	var caption, imageURL string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		caption, err = s.provider.GenerateMemeCaption(gctx, rec.Title())
		return err
	})
	g.Go(func() error {
		data, err := s.provider.GenerateImage(gctx, "Funny exaggerated food meme photo of "+rec.Title())
		if err != nil {
			return err
		}
		imageURL, err = s.storage.UploadImage(gctx, data, "memes")
		return err
	})
	if err := g.Wait(); err != nil {
		s.metrics.GenerationFailures.WithLabelValues("meme").Inc()
		return apperrors.NewGenerationError("meme", err)
	}

	payload := outbound.SocialPayload{Link: imageURL}
	payload.Title.Rendered = rec.Title()
	payload.GUID.Rendered = imageURL
	payload.Output.Slug = rec.Slug()
	payload.Output.InstagramPost = caption
	payload.Output.Title = rec.Title()

	if err := s.publisher.Publish(ctx, siteSettings.Webhooks.Meme, payload); err != nil {
		s.metrics.WebhookFailures.WithLabelValues("meme").Inc()
		return err
	}

	s.metrics.GenerationsTotal.WithLabelValues("meme", "success").Inc()
	s.logger.Info("Meme published", zap.String("recipe_id", recipeID))
	return nil
}

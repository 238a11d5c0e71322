package generation

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/receitario/v1/internal/ports/inbound"
	"github.com/receitario/v1/internal/ports/outbound"
	apperrors "github.com/receitario/v1/pkg/errors"
)

// GenerateReel produces a short vertical video for a recipe: a narration
// script first, then a long-running video job that is polled to
// completion. When the primary video model is unknown to the provider the
// job is retried exactly once with the fallback model; if that retry also
// fails, the PRIMARY model's error is the one surfaced.
func (s *Service) GenerateReel(ctx context.Context, recipeID string) (*inbound.ReelDTO, error) {
	rec, err := s.recipeRepo.FindByID(ctx, recipeID)
	if err != nil {
		return nil, apperrors.NewRecipeNotFoundError(recipeID)
	}

	script, err := s.provider.GenerateReelScript(ctx, rec.Title(), rec.Steps())
	if err != nil {
		s.metrics.GenerationFailures.WithLabelValues("reel").Inc()
		return nil, apperrors.NewGenerationError("reel script", err)
	}

	op, err := s.startVideoWithFallback(ctx, script)
	if err != nil {
		s.metrics.GenerationFailures.WithLabelValues("reel").Inc()
		return nil, apperrors.NewVideoJobError(err)
	}

	videoURL, err := s.awaitVideo(ctx, op)
	if err != nil {
		s.metrics.GenerationFailures.WithLabelValues("reel").Inc()
		return nil, apperrors.NewVideoJobError(err)
	}

	rec.SetVideo(videoURL)
	if err := s.recipeRepo.Save(ctx, rec); err != nil {
		return nil, apperrors.NewDatabaseError("save reel video", err)
	}

	s.metrics.GenerationsTotal.WithLabelValues("reel", "success").Inc()
	s.logger.Info("Reel generated",
		zap.String("recipe_id", recipeID),
		zap.String("video_url", videoURL))

	return &inbound.ReelDTO{RecipeID: recipeID, Script: script, VideoURL: videoURL}, nil
}

// startVideoWithFallback starts the video job on the configured model,
// retrying once on the fallback model when the primary is unknown. The
// primary error is preserved when the fallback fails too.
func (s *Service) startVideoWithFallback(ctx context.Context, prompt string) (*outbound.VideoOperation, error) {
	op, primaryErr := s.provider.StartVideoJob(ctx, prompt, s.cfg.VideoModel)
	if primaryErr == nil {
		return op, nil
	}
	if !errors.Is(primaryErr, outbound.ErrModelNotFound) || s.cfg.VideoFallbackModel == "" {
		return nil, primaryErr
	}

	s.metrics.VideoModelRetries.Inc()
	s.logger.Warn("Video model not found, retrying with fallback",
		zap.String("model", s.cfg.VideoModel),
		zap.String("fallback", s.cfg.VideoFallbackModel))

	op, fallbackErr := s.provider.StartVideoJob(ctx, prompt, s.cfg.VideoFallbackModel)
	if fallbackErr != nil {
		return nil, primaryErr
	}
	return op, nil
}

// awaitVideo polls the job until it completes or the deadline passes
func (s *Service) awaitVideo(ctx context.Context, op *outbound.VideoOperation) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.VideoDeadline)
	defer cancel()

	ticker := time.NewTicker(s.cfg.VideoPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
			polled, err := s.provider.PollVideoJob(ctx, op)
			if err != nil {
				return "", err
			}
			if polled.Done {
				if polled.VideoURI == "" {
					return "", errors.New("video job finished without a video")
				}
				return polled.VideoURI, nil
			}
			op = polled
		}
	}
}

package generation

import (
	"context"

	"go.uber.org/zap"

	"github.com/receitario/v1/internal/domain/story"
	"github.com/receitario/v1/internal/ports/inbound"
	"github.com/receitario/v1/pkg/errors"
)

// GenerateStory builds a five-slide web story for a recipe. Slide text
// failures abort the flow, but each slide's image is best-effort: a slide
// whose render fails reuses the recipe's main image instead.
func (s *Service) GenerateStory(ctx context.Context, recipeID string) (*inbound.StoryDTO, error) {
	rec, err := s.recipeRepo.FindByID(ctx, recipeID)
	if err != nil {
		return nil, errors.NewRecipeNotFoundError(recipeID)
	}

	generated, err := s.provider.GenerateStory(ctx, rec.Title(), rec.Description())
	if err != nil {
		s.metrics.GenerationFailures.WithLabelValues("story").Inc()
		return nil, errors.NewGenerationError("web story", err)
	}

	slides := make([]story.Slide, len(generated.Slides))
	for i, gs := range generated.Slides {
		slides[i] = story.Slide{
			Type:         gs.Type,
			Layout:       gs.Layout,
			Text:         gs.Text,
			Subtext:      gs.Subtext,
			VisualPrompt: gs.VisualPrompt,
			ImageURL:     s.renderSlideImage(ctx, gs.VisualPrompt, rec.ImageURL()),
		}
	}

	webStory, err := story.New(recipeID, generated.Title, slides)
	if err != nil {
		return nil, errors.NewGenerationError("web story", err)
	}

	if err := s.storyRepo.Save(ctx, webStory); err != nil {
		return nil, errors.NewDatabaseError("save web story", err)
	}

	s.metrics.GenerationsTotal.WithLabelValues("story", "success").Inc()
	s.logger.Info("Web story generated",
		zap.String("recipe_id", recipeID),
		zap.String("story_id", webStory.ID))

	return StoryToDTO(webStory), nil
}

// renderSlideImage renders one slide image, reusing the recipe's main
// image on any failure
func (s *Service) renderSlideImage(ctx context.Context, visualPrompt, mainImage string) string {
	if visualPrompt == "" {
		return mainImage
	}

	data, err := s.provider.GenerateImage(ctx, visualPrompt)
	if err != nil {
		s.logger.Warn("Slide image failed, reusing main image", zap.Error(err))
		return mainImage
	}

	url, err := s.storage.UploadImage(ctx, data, "stories")
	if err != nil {
		s.logger.Warn("Slide upload failed, reusing main image", zap.Error(err))
		return mainImage
	}

	return url
}

// StoryToDTO maps a web story to its transport shape
func StoryToDTO(ws *story.WebStory) *inbound.StoryDTO {
	slides := make([]inbound.SlideDTO, len(ws.Slides))
	for i, sl := range ws.Slides {
		slides[i] = inbound.SlideDTO{
			Type:     sl.Type,
			Layout:   sl.Layout,
			Text:     sl.Text,
			Subtext:  sl.Subtext,
			ImageURL: sl.ImageURL,
		}
	}
	return &inbound.StoryDTO{
		ID:       ws.ID,
		RecipeID: ws.RecipeID,
		Title:    ws.Title,
		Slides:   slides,
	}
}

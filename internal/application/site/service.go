// Package site implements site-level use cases: settings, web stories,
// reader suggestions, the newsletter and the WordPress importer facade.
package site

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/receitario/v1/internal/application/importer"
	"github.com/receitario/v1/internal/domain/settings"
	"github.com/receitario/v1/internal/domain/story"
	"github.com/receitario/v1/internal/domain/suggestion"
	"github.com/receitario/v1/internal/ports/inbound"
	"github.com/receitario/v1/internal/ports/outbound"
	apperrors "github.com/receitario/v1/pkg/errors"
)

const settingsCacheKey = "site:settings"

// Service implements the SiteService use cases
type Service struct {
	settingsRepo   outbound.SettingsRepository
	storyRepo      outbound.StoryRepository
	suggestionRepo outbound.SuggestionRepository
	newsletterRepo outbound.NewsletterRepository
	cache          outbound.CacheRepository
	importer       *importer.Importer
	settingsTTL    time.Duration
	logger         *zap.Logger
}

// NewService creates a new site service
func NewService(
	settingsRepo outbound.SettingsRepository,
	storyRepo outbound.StoryRepository,
	suggestionRepo outbound.SuggestionRepository,
	newsletterRepo outbound.NewsletterRepository,
	cache outbound.CacheRepository,
	wpImporter *importer.Importer,
	settingsTTL time.Duration,
	logger *zap.Logger,
) inbound.SiteService {
	if settingsTTL <= 0 {
		settingsTTL = 5 * time.Minute
	}
	return &Service{
		settingsRepo:   settingsRepo,
		storyRepo:      storyRepo,
		suggestionRepo: suggestionRepo,
		newsletterRepo: newsletterRepo,
		cache:          cache,
		importer:       wpImporter,
		settingsTTL:    settingsTTL,
		logger:         logger.Named("site-service"),
	}
}

// GetSettings returns the site settings, served from cache when warm.
// Every public page reads settings, so the cache sits in front of the
// singleton row.
func (s *Service) GetSettings(ctx context.Context) (*settings.SiteSettings, error) {
	if cached, err := s.cache.Get(ctx, settingsCacheKey); err == nil && len(cached) > 0 {
		var out settings.SiteSettings
		if err := json.Unmarshal(cached, &out); err == nil {
			return &out, nil
		}
	}

	loaded, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError("load settings", err)
	}

	if data, err := json.Marshal(loaded); err == nil {
		if err := s.cache.Set(ctx, settingsCacheKey, data, s.settingsTTL); err != nil {
			s.logger.Warn("Failed to cache settings", zap.Error(err))
		}
	}
	return loaded, nil
}

// SaveSettings replaces the settings row and invalidates the cache
func (s *Service) SaveSettings(ctx context.Context, updated *settings.SiteSettings) error {
	if err := s.settingsRepo.Save(ctx, updated); err != nil {
		return apperrors.NewDatabaseError("save settings", err)
	}
	if err := s.cache.Delete(ctx, settingsCacheKey); err != nil {
		s.logger.Warn("Failed to invalidate settings cache", zap.Error(err))
	}
	return nil
}

// ListStories returns all web stories, newest first per the repository
func (s *Service) ListStories(ctx context.Context) ([]*inbound.StoryDTO, error) {
	stories, err := s.storyRepo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list stories", err)
	}
	dtos := make([]*inbound.StoryDTO, len(stories))
	for i, ws := range stories {
		dtos[i] = storyToDTO(ws)
	}
	return dtos, nil
}

// GetStory returns one web story by id
func (s *Service) GetStory(ctx context.Context, id string) (*inbound.StoryDTO, error) {
	ws, err := s.storyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.NewNotFoundError("story")
	}
	return storyToDTO(ws), nil
}

// SubmitSuggestion stores a reader's recipe idea
func (s *Service) SubmitSuggestion(ctx context.Context, dishName, description string) (*suggestion.Suggestion, error) {
	sug, err := suggestion.New(dishName, description)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if err := s.suggestionRepo.Save(ctx, sug); err != nil {
		return nil, apperrors.NewDatabaseError("save suggestion", err)
	}
	return sug, nil
}

// ListSuggestions returns all reader suggestions
func (s *Service) ListSuggestions(ctx context.Context) ([]*suggestion.Suggestion, error) {
	suggestions, err := s.suggestionRepo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list suggestions", err)
	}
	return suggestions, nil
}

// MarkSuggestionReviewed flags a suggestion as seen by the admin
func (s *Service) MarkSuggestionReviewed(ctx context.Context, id string) error {
	sug, err := s.suggestionRepo.FindByID(ctx, id)
	if err != nil {
		return apperrors.NewNotFoundError("suggestion")
	}
	sug.Status = suggestion.StatusReviewed
	if err := s.suggestionRepo.Save(ctx, sug); err != nil {
		return apperrors.NewDatabaseError("update suggestion", err)
	}
	return nil
}

// ConsumeSuggestion removes a suggestion once a recipe was generated from it
func (s *Service) ConsumeSuggestion(ctx context.Context, id string) error {
	if _, err := s.suggestionRepo.FindByID(ctx, id); err != nil {
		return apperrors.NewNotFoundError("suggestion")
	}
	if err := s.suggestionRepo.Delete(ctx, id); err != nil {
		return apperrors.NewDatabaseError("delete suggestion", err)
	}
	return nil
}

// SubscribeNewsletter adds an email to the list. Duplicates surface as
// ALREADY_SUBSCRIBED so the frontend can show a friendly message.
func (s *Service) SubscribeNewsletter(ctx context.Context, email string) error {
	return s.newsletterRepo.Subscribe(ctx, email)
}

// ImportWordPress runs a full batch import from the configured site
func (s *Service) ImportWordPress(ctx context.Context, progress inbound.ImportProgressFunc) (*inbound.ImportResult, error) {
	return s.importer.Run(ctx, progress)
}

func storyToDTO(ws *story.WebStory) *inbound.StoryDTO {
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

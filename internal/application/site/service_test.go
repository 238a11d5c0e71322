package site

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/receitario/v1/internal/domain/settings"
	"github.com/receitario/v1/internal/domain/story"
	"github.com/receitario/v1/internal/domain/suggestion"
	"github.com/receitario/v1/internal/ports/inbound"
	apperrors "github.com/receitario/v1/pkg/errors"
	"github.com/receitario/v1/test/testutils"
)

type siteMocks struct {
	settings    *testutils.MockSettingsRepository
	stories     *testutils.MockStoryRepository
	suggestions *testutils.MockSuggestionRepository
	newsletter  *testutils.MockNewsletterRepository
	cache       *testutils.MockCacheRepository
}

func newTestService(t *testing.T) (inbound.SiteService, *siteMocks) {
	t.Helper()
	m := &siteMocks{
		settings:    &testutils.MockSettingsRepository{},
		stories:     &testutils.MockStoryRepository{},
		suggestions: &testutils.MockSuggestionRepository{},
		newsletter:  &testutils.MockNewsletterRepository{},
		cache:       &testutils.MockCacheRepository{},
	}
	svc := NewService(
		m.settings, m.stories, m.suggestions, m.newsletter, m.cache,
		nil, 5*time.Minute, zap.NewNop(),
	)
	return svc, m
}

func TestGetSettings_ColdCacheLoadsAndCaches(t *testing.T) {
	svc, m := newTestService(t)
	ctx := context.Background()

	m.cache.On("Get", ctx, "site:settings").Return(nil, errors.New("cache miss"))
	m.settings.On("Get", ctx).Return(&settings.SiteSettings{SiteName: "Receitário"}, nil)
	m.cache.On("Set", ctx, "site:settings", mock.Anything, 5*time.Minute).Return(nil)

	got, err := svc.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Receitário", got.SiteName)
	m.cache.AssertCalled(t, "Set", ctx, "site:settings", mock.Anything, 5*time.Minute)
}

func TestGetSettings_WarmCacheSkipsRepository(t *testing.T) {
	svc, m := newTestService(t)
	ctx := context.Background()

	cached, _ := json.Marshal(&settings.SiteSettings{SiteName: "Do Cache"})
	m.cache.On("Get", ctx, "site:settings").Return(cached, nil)

	got, err := svc.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Do Cache", got.SiteName)
	m.settings.AssertNotCalled(t, "Get", mock.Anything)
}

func TestSaveSettings_InvalidatesCache(t *testing.T) {
	svc, m := newTestService(t)
	ctx := context.Background()

	updated := &settings.SiteSettings{SiteName: "Novo Nome"}
	m.settings.On("Save", ctx, updated).Return(nil)
	m.cache.On("Delete", ctx, "site:settings").Return(nil)

	require.NoError(t, svc.SaveSettings(ctx, updated))
	m.cache.AssertCalled(t, "Delete", ctx, "site:settings")
}

func TestListStories_MapsSlides(t *testing.T) {
	svc, m := newTestService(t)
	ctx := context.Background()

	slides := make([]story.Slide, story.SlideCount)
	for i := range slides {
		slides[i] = story.Slide{Type: "content", Text: "slide", ImageURL: "https://cdn.example.com/s.jpg"}
	}
	ws, err := story.New("r1", "Bolo de Cenoura", slides)
	require.NoError(t, err)

	m.stories.On("FindAll", ctx).Return([]*story.WebStory{ws}, nil)

	dtos, err := svc.ListStories(ctx)
	require.NoError(t, err)
	require.Len(t, dtos, 1)
	assert.Equal(t, "Bolo de Cenoura", dtos[0].Title)
	assert.Len(t, dtos[0].Slides, story.SlideCount)
}

func TestSubmitSuggestion_RequiresDishName(t *testing.T) {
	svc, m := newTestService(t)
	ctx := context.Background()

	_, err := svc.SubmitSuggestion(ctx, "", "qualquer coisa")
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
	m.suggestions.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestMarkSuggestionReviewed(t *testing.T) {
	svc, m := newTestService(t)
	ctx := context.Background()

	sug, err := suggestion.New("Torta de Limão", "")
	require.NoError(t, err)

	m.suggestions.On("FindByID", ctx, sug.ID).Return(sug, nil)
	m.suggestions.On("Save", ctx, mock.Anything).Return(nil)

	require.NoError(t, svc.MarkSuggestionReviewed(ctx, sug.ID))
	assert.Equal(t, suggestion.StatusReviewed, sug.Status)
}

func TestConsumeSuggestion_DeletesRecord(t *testing.T) {
	svc, m := newTestService(t)
	ctx := context.Background()

	sug, err := suggestion.New("Pão de Queijo", "")
	require.NoError(t, err)

	m.suggestions.On("FindByID", ctx, sug.ID).Return(sug, nil)
	m.suggestions.On("Delete", ctx, sug.ID).Return(nil)

	require.NoError(t, svc.ConsumeSuggestion(ctx, sug.ID))
	m.suggestions.AssertCalled(t, "Delete", ctx, sug.ID)
}

func TestSubscribeNewsletter_DuplicateSurfaces(t *testing.T) {
	svc, m := newTestService(t)
	ctx := context.Background()

	m.newsletter.On("Subscribe", ctx, "ana@example.com").
		Return(apperrors.NewAlreadySubscribedError("ana@example.com"))

	err := svc.SubscribeNewsletter(ctx, "ana@example.com")
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeAlreadySubscribed, appErr.Code)
}

package generation

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/receitario/v1/internal/domain/recipe"
	"github.com/receitario/v1/internal/domain/settings"
	"github.com/receitario/v1/internal/infrastructure/config"
	"github.com/receitario/v1/internal/infrastructure/monitoring"
	"github.com/receitario/v1/internal/ports/inbound"
	"github.com/receitario/v1/internal/ports/outbound"
	apperrors "github.com/receitario/v1/pkg/errors"
	"github.com/receitario/v1/test/testutils"
)

type serviceMocks struct {
	provider   *testutils.MockAIProvider
	recipeRepo *testutils.MockRecipeRepository
	storyRepo  *testutils.MockStoryRepository
	settings   *testutils.MockSettingsRepository
	affiliates *testutils.MockAffiliateClient
	publisher  *testutils.MockSocialPublisher
	storage    *testutils.MockStorageService
}

func newTestService(t *testing.T, cfg config.AIConfig) (inbound.GenerationService, *serviceMocks) {
	t.Helper()
	m := &serviceMocks{
		provider:   &testutils.MockAIProvider{},
		recipeRepo: &testutils.MockRecipeRepository{},
		storyRepo:  &testutils.MockStoryRepository{},
		settings:   &testutils.MockSettingsRepository{},
		affiliates: &testutils.MockAffiliateClient{},
		publisher:  &testutils.MockSocialPublisher{},
		storage:    &testutils.MockStorageService{},
	}
	svc := NewService(
		m.provider, m.recipeRepo, m.storyRepo, m.settings,
		m.affiliates, m.publisher, m.storage,
		monitoring.NewMetrics(prometheus.NewRegistry()),
		cfg,
		zap.NewNop(),
	)
	return svc, m
}

func TestGenerateFromScratch_PersistsDraftWithImageAndAffiliates(t *testing.T) {
	svc, m := newTestService(t, config.AIConfig{})
	ctx := context.Background()

	m.provider.On("GenerateRecipeFromScratch", ctx, "bolo de cenoura").
		Return(testutils.GeneratedRecipe("Bolo de Cenoura"), nil)
	m.provider.On("GenerateImage", ctx, mock.Anything).
		Return([]byte{0xFF, 0xD8}, nil)
	m.storage.On("UploadImage", ctx, mock.Anything, "recipes").
		Return("https://cdn.example.com/bolo.jpg", nil)
	m.settings.On("Get", ctx).
		Return(&settings.SiteSettings{Webhooks: settings.Webhooks{Affiliate: "https://hooks.example.com/aff"}}, nil)
	m.affiliates.On("FetchLinks", ctx, "https://hooks.example.com/aff", mock.Anything).
		Return([]outbound.AffiliateLink{{Name: "Batedeira", URL: "https://amzn.to/x"}})

	var saved *recipe.Recipe
	m.recipeRepo.On("Save", ctx, mock.Anything).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*recipe.Recipe) }).
		Return(nil)

	dto, err := svc.GenerateFromScratch(ctx, "bolo de cenoura")
	require.NoError(t, err)
	require.NotNil(t, saved)

	assert.Equal(t, "Bolo de Cenoura", dto.Title)
	assert.Equal(t, recipe.StatusDraft, saved.Status())
	assert.Equal(t, "https://cdn.example.com/bolo.jpg", saved.ImageURL())
	require.Len(t, saved.Affiliates(), 1)
	assert.Equal(t, "Batedeira", saved.Affiliates()[0].Name)
}

func TestGenerateFromScratch_TextFailurePersistsNothing(t *testing.T) {
	svc, m := newTestService(t, config.AIConfig{})
	ctx := context.Background()

	m.provider.On("GenerateRecipeFromScratch", ctx, "sopa").
		Return(nil, errors.New("model overloaded"))

	_, err := svc.GenerateFromScratch(ctx, "sopa")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeGenerationFailed, appErr.Code)
	m.recipeRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestGenerateFromScratch_ImageFailureFallsBackToStockPhoto(t *testing.T) {
	svc, m := newTestService(t, config.AIConfig{})
	ctx := context.Background()

	m.provider.On("GenerateRecipeFromScratch", ctx, "feijoada").
		Return(testutils.GeneratedRecipe("Feijoada Completa"), nil)
	m.provider.On("GenerateImage", ctx, mock.Anything).
		Return(nil, errors.New("quota exceeded"))
	m.settings.On("Get", ctx).Return(&settings.SiteSettings{}, nil)

	var saved *recipe.Recipe
	m.recipeRepo.On("Save", ctx, mock.Anything).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*recipe.Recipe) }).
		Return(nil)

	_, err := svc.GenerateFromScratch(ctx, "feijoada")
	require.NoError(t, err)
	assert.Equal(t, StockImageURL, saved.ImageURL())
	m.storage.AssertNotCalled(t, "UploadImage", mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerateFromScratch_UploadFailureFallsBackToStockPhoto(t *testing.T) {
	svc, m := newTestService(t, config.AIConfig{})
	ctx := context.Background()

	m.provider.On("GenerateRecipeFromScratch", ctx, "lasanha").
		Return(testutils.GeneratedRecipe("Lasanha"), nil)
	m.provider.On("GenerateImage", ctx, mock.Anything).
		Return([]byte{0x01}, nil)
	m.storage.On("UploadImage", ctx, mock.Anything, "recipes").
		Return("", errors.New("bucket unavailable"))
	m.settings.On("Get", ctx).Return(&settings.SiteSettings{}, nil)

	var saved *recipe.Recipe
	m.recipeRepo.On("Save", ctx, mock.Anything).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*recipe.Recipe) }).
		Return(nil)

	_, err := svc.GenerateFromScratch(ctx, "lasanha")
	require.NoError(t, err)
	assert.Equal(t, StockImageURL, saved.ImageURL())
}

func TestRemixRecipe_DerivedIdentityAndProvenanceTags(t *testing.T) {
	svc, m := newTestService(t, config.AIConfig{})
	ctx := context.Background()

	original := testutils.NewRecipeFactory(1).Published("Bolo de Fubá", "bolos")
	m.recipeRepo.On("FindByID", ctx, original.ID()).Return(original, nil)
	m.provider.On("RemixRecipe", ctx, mock.Anything, "sem lactose").
		Return(testutils.GeneratedRecipe("Bolo de Fubá Sem Lactose"), nil)
	m.provider.On("GenerateImage", ctx, mock.Anything).
		Return(nil, errors.New("unavailable"))
	m.settings.On("Get", ctx).Return(&settings.SiteSettings{}, nil)

	var saved *recipe.Recipe
	m.recipeRepo.On("Save", ctx, mock.Anything).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*recipe.Recipe) }).
		Return(nil)

	dto, err := svc.RemixRecipe(ctx, original.ID(), "sem lactose")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(dto.ID, original.ID()+"-remix-"))
	assert.Contains(t, saved.Tags(), "sem lactose")
	assert.Contains(t, saved.Tags(), "Remix")
	assert.Equal(t, recipe.StatusDraft, saved.Status())
}

func TestRemixRecipe_UnknownOriginal(t *testing.T) {
	svc, m := newTestService(t, config.AIConfig{})
	ctx := context.Background()

	m.recipeRepo.On("FindByID", ctx, "missing").Return(nil, recipe.ErrRecipeNotFound)

	_, err := svc.RemixRecipe(ctx, "missing", "vegano")
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeRecipeNotFound, appErr.Code)
}

func TestMagicCreate_ReportsPhasesInOrder(t *testing.T) {
	svc, m := newTestService(t, config.AIConfig{})
	ctx := context.Background()

	m.provider.On("GenerateRecipeFromScratch", ctx, "pão de queijo").
		Return(testutils.GeneratedRecipe("Pão de Queijo"), nil)
	m.provider.On("GenerateImage", ctx, mock.Anything).
		Return(nil, errors.New("unavailable"))
	m.settings.On("Get", ctx).
		Return(&settings.SiteSettings{Webhooks: settings.Webhooks{Affiliate: "https://hooks.example.com/aff"}}, nil)
	m.affiliates.On("FetchLinks", ctx, "https://hooks.example.com/aff", mock.Anything).
		Return([]outbound.AffiliateLink{{Name: "Forma", URL: "https://amzn.to/y"}})
	m.recipeRepo.On("Save", ctx, mock.Anything).Return(nil)

	var phases []inbound.MagicPhase
	dto, err := svc.MagicCreate(ctx, "pão de queijo", func(p inbound.MagicPhase) {
		phases = append(phases, p)
	})
	require.NoError(t, err)
	require.NotNil(t, dto)

	assert.Equal(t, []inbound.MagicPhase{
		inbound.PhaseSearching,
		inbound.PhaseImaging,
		inbound.PhaseEnriching,
		inbound.PhaseReview,
		inbound.PhaseDone,
	}, phases)
}

func TestMagicCreate_SkipsEnrichingWithoutAffiliateWebhook(t *testing.T) {
	svc, m := newTestService(t, config.AIConfig{})
	ctx := context.Background()

	m.provider.On("GenerateRecipeFromScratch", ctx, "salada").
		Return(testutils.GeneratedRecipe("Salada Tropical"), nil)
	m.provider.On("GenerateImage", ctx, mock.Anything).
		Return(nil, errors.New("unavailable"))
	m.settings.On("Get", ctx).Return(&settings.SiteSettings{}, nil)
	m.recipeRepo.On("Save", ctx, mock.Anything).Return(nil)

	var phases []inbound.MagicPhase
	_, err := svc.MagicCreate(ctx, "salada", func(p inbound.MagicPhase) {
		phases = append(phases, p)
	})
	require.NoError(t, err)

	assert.NotContains(t, phases, inbound.PhaseEnriching)
	m.affiliates.AssertNotCalled(t, "FetchLinks", mock.Anything, mock.Anything, mock.Anything)
}

func TestMagicCreate_GenerationFailureResetsToIdle(t *testing.T) {
	svc, m := newTestService(t, config.AIConfig{})
	ctx := context.Background()

	m.provider.On("GenerateRecipeFromScratch", ctx, "tortas").
		Return(nil, errors.New("model overloaded"))

	var phases []inbound.MagicPhase
	_, err := svc.MagicCreate(ctx, "tortas", func(p inbound.MagicPhase) {
		phases = append(phases, p)
	})
	require.Error(t, err)
	assert.Equal(t, inbound.PhaseIdle, phases[len(phases)-1])
}

func TestMagicCreate_NilProgressFunc(t *testing.T) {
	svc, m := newTestService(t, config.AIConfig{})
	ctx := context.Background()

	m.provider.On("GenerateRecipeFromScratch", ctx, "mousse").
		Return(testutils.GeneratedRecipe("Mousse de Maracujá"), nil)
	m.provider.On("GenerateImage", ctx, mock.Anything).
		Return(nil, errors.New("unavailable"))
	m.settings.On("Get", ctx).Return(&settings.SiteSettings{}, nil)
	m.recipeRepo.On("Save", ctx, mock.Anything).Return(nil)

	dto, err := svc.MagicCreate(ctx, "mousse", nil)
	require.NoError(t, err)
	assert.Equal(t, "Mousse de Maracujá", dto.Title)
}

func TestIdentifyUtensils_FailureYieldsEmptyList(t *testing.T) {
	svc, m := newTestService(t, config.AIConfig{})
	ctx := context.Background()

	m.provider.On("AnalyzeFoodImage", ctx, mock.Anything).
		Return(nil, errors.New("unreadable image"))

	utensils, err := svc.IdentifyUtensils(ctx, []byte{0x01}, "image/jpeg")
	require.NoError(t, err)
	assert.Empty(t, utensils)
}

func TestIdentifyUtensils_PassesAnalyzedDishName(t *testing.T) {
	svc, m := newTestService(t, config.AIConfig{})
	ctx := context.Background()

	m.provider.On("AnalyzeFoodImage", ctx, mock.Anything).
		Return(&outbound.NutritionAnalysis{DishName: "Feijoada Completa"}, nil)
	m.provider.On("IdentifyUtensils", ctx, "Feijoada Completa").
		Return([]outbound.Utensil{{Name: "Panela de pressão", SearchTerm: "panela de pressao"}}, nil)

	utensils, err := svc.IdentifyUtensils(ctx, []byte{0x01}, "image/jpeg")
	require.NoError(t, err)
	require.Len(t, utensils, 1)
	assert.Equal(t, "Panela de pressão", utensils[0].Name)
}

func TestAnalyzeFoodImage_FailureSurfaces(t *testing.T) {
	svc, m := newTestService(t, config.AIConfig{})
	ctx := context.Background()

	m.provider.On("AnalyzeFoodImage", ctx, mock.Anything).
		Return(nil, errors.New("unreadable image"))

	_, err := svc.AnalyzeFoodImage(ctx, []byte{0x01}, "image/jpeg")
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeGenerationFailed, appErr.Code)
}

func reelConfig() config.AIConfig {
	return config.AIConfig{
		VideoModel:         "veo-3.1-generate-preview",
		VideoFallbackModel: "veo-3.0-generate-001",
		VideoPollInterval:  time.Millisecond,
		VideoDeadline:      time.Second,
	}
}

func TestGenerateReel_PollsUntilDone(t *testing.T) {
	svc, m := newTestService(t, reelConfig())
	ctx := context.Background()

	rec := testutils.NewRecipeFactory(2).Published("Brigadeiro")
	m.recipeRepo.On("FindByID", ctx, rec.ID()).Return(rec, nil)
	m.provider.On("GenerateReelScript", ctx, "Brigadeiro", rec.Steps()).
		Return("Cena 1: panela no fogo.", nil)
	m.provider.On("StartVideoJob", ctx, "Cena 1: panela no fogo.", "veo-3.1-generate-preview").
		Return(&outbound.VideoOperation{ID: "op-1"}, nil)
	m.provider.On("PollVideoJob", mock.Anything, mock.Anything).
		Return(&outbound.VideoOperation{ID: "op-1"}, nil).Once()
	m.provider.On("PollVideoJob", mock.Anything, mock.Anything).
		Return(&outbound.VideoOperation{ID: "op-1", Done: true, VideoURI: "https://videos.example.com/brigadeiro.mp4"}, nil).Once()

	var saved *recipe.Recipe
	m.recipeRepo.On("Save", ctx, mock.Anything).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*recipe.Recipe) }).
		Return(nil)

	reel, err := svc.GenerateReel(ctx, rec.ID())
	require.NoError(t, err)

	assert.Equal(t, "https://videos.example.com/brigadeiro.mp4", reel.VideoURL)
	assert.Equal(t, "Cena 1: panela no fogo.", reel.Script)
	assert.Equal(t, "https://videos.example.com/brigadeiro.mp4", saved.VideoURL())
}

func TestGenerateReel_RetriesFallbackModelOnUnknownModel(t *testing.T) {
	svc, m := newTestService(t, reelConfig())
	ctx := context.Background()

	rec := testutils.NewRecipeFactory(3).Published("Pudim")
	m.recipeRepo.On("FindByID", ctx, rec.ID()).Return(rec, nil)
	m.provider.On("GenerateReelScript", ctx, "Pudim", rec.Steps()).
		Return("Cena 1: calda de caramelo.", nil)
	m.provider.On("StartVideoJob", ctx, mock.Anything, "veo-3.1-generate-preview").
		Return(nil, outbound.ErrModelNotFound)
	m.provider.On("StartVideoJob", ctx, mock.Anything, "veo-3.0-generate-001").
		Return(&outbound.VideoOperation{ID: "op-2"}, nil)
	m.provider.On("PollVideoJob", mock.Anything, mock.Anything).
		Return(&outbound.VideoOperation{ID: "op-2", Done: true, VideoURI: "https://videos.example.com/pudim.mp4"}, nil)
	m.recipeRepo.On("Save", ctx, mock.Anything).Return(nil)

	reel, err := svc.GenerateReel(ctx, rec.ID())
	require.NoError(t, err)
	assert.Equal(t, "https://videos.example.com/pudim.mp4", reel.VideoURL)
	m.provider.AssertNumberOfCalls(t, "StartVideoJob", 2)
}

func TestGenerateReel_FallbackFailureSurfacesOriginalError(t *testing.T) {
	svc, m := newTestService(t, reelConfig())
	ctx := context.Background()

	rec := testutils.NewRecipeFactory(4).Published("Coxinha")
	m.recipeRepo.On("FindByID", ctx, rec.ID()).Return(rec, nil)
	m.provider.On("GenerateReelScript", ctx, "Coxinha", rec.Steps()).
		Return("Cena 1: massa dourando.", nil)
	m.provider.On("StartVideoJob", ctx, mock.Anything, "veo-3.1-generate-preview").
		Return(nil, outbound.ErrModelNotFound)
	m.provider.On("StartVideoJob", ctx, mock.Anything, "veo-3.0-generate-001").
		Return(nil, errors.New("fallback also unavailable"))

	_, err := svc.GenerateReel(ctx, rec.ID())
	require.Error(t, err)
	assert.ErrorIs(t, err, outbound.ErrModelNotFound)
	m.recipeRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestGenerateReel_DeadlineAbortsPolling(t *testing.T) {
	cfg := reelConfig()
	cfg.VideoDeadline = 10 * time.Millisecond
	svc, m := newTestService(t, cfg)
	ctx := context.Background()

	rec := testutils.NewRecipeFactory(5).Published("Moqueca")
	m.recipeRepo.On("FindByID", ctx, rec.ID()).Return(rec, nil)
	m.provider.On("GenerateReelScript", ctx, "Moqueca", rec.Steps()).
		Return("Cena 1: dendê fervendo.", nil)
	m.provider.On("StartVideoJob", ctx, mock.Anything, "veo-3.1-generate-preview").
		Return(&outbound.VideoOperation{ID: "op-3"}, nil)
	m.provider.On("PollVideoJob", mock.Anything, mock.Anything).
		Return(&outbound.VideoOperation{ID: "op-3"}, nil)

	_, err := svc.GenerateReel(ctx, rec.ID())
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeVideoJobFailed, appErr.Code)
}

func TestGenerateStory_SlideImageFailureReusesMainImage(t *testing.T) {
	svc, m := newTestService(t, config.AIConfig{})
	ctx := context.Background()

	rec := testutils.NewRecipeFactory(6).Published("Torta de Limão")
	m.recipeRepo.On("FindByID", ctx, rec.ID()).Return(rec, nil)
	m.provider.On("GenerateStory", ctx, "Torta de Limão", rec.Description()).
		Return(testutils.GeneratedStory("Torta de Limão"), nil)
	m.provider.On("GenerateImage", ctx, mock.Anything).
		Return(nil, errors.New("quota exceeded"))
	m.storyRepo.On("Save", ctx, mock.Anything).Return(nil)

	dto, err := svc.GenerateStory(ctx, rec.ID())
	require.NoError(t, err)

	require.Len(t, dto.Slides, 5)
	for _, slide := range dto.Slides {
		assert.Equal(t, rec.ImageURL(), slide.ImageURL)
	}
}

func TestGenerateStory_TextFailureBlocks(t *testing.T) {
	svc, m := newTestService(t, config.AIConfig{})
	ctx := context.Background()

	rec := testutils.NewRecipeFactory(7).Published("Quindim")
	m.recipeRepo.On("FindByID", ctx, rec.ID()).Return(rec, nil)
	m.provider.On("GenerateStory", ctx, "Quindim", rec.Description()).
		Return(nil, errors.New("model overloaded"))

	_, err := svc.GenerateStory(ctx, rec.ID())
	require.Error(t, err)
	m.storyRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestPublishMeme_PostsCaptionAndImage(t *testing.T) {
	svc, m := newTestService(t, config.AIConfig{})
	ctx := context.Background()

	rec := testutils.NewRecipeFactory(8).Published("Pastel de Feira")
	m.recipeRepo.On("FindByID", ctx, rec.ID()).Return(rec, nil)
	m.settings.On("Get", ctx).
		Return(&settings.SiteSettings{Webhooks: settings.Webhooks{Meme: "https://hooks.example.com/meme"}}, nil)
	m.provider.On("GenerateMemeCaption", mock.Anything, "Pastel de Feira").
		Return("Quando o pastel chega na mesa", nil)
	m.provider.On("GenerateImage", mock.Anything, mock.Anything).
		Return([]byte{0x01}, nil)
	m.storage.On("UploadImage", mock.Anything, mock.Anything, "memes").
		Return("https://cdn.example.com/meme.jpg", nil)

	var published outbound.SocialPayload
	m.publisher.On("Publish", ctx, "https://hooks.example.com/meme", mock.Anything).
		Run(func(args mock.Arguments) { published = args.Get(2).(outbound.SocialPayload) }).
		Return(nil)

	err := svc.PublishMeme(ctx, rec.ID())
	require.NoError(t, err)

	assert.Equal(t, "Pastel de Feira", published.Title.Rendered)
	assert.Equal(t, "Quando o pastel chega na mesa", published.Output.InstagramPost)
	assert.Equal(t, "https://cdn.example.com/meme.jpg", published.Link)
}

func TestPublishMeme_WebhookNotConfigured(t *testing.T) {
	svc, m := newTestService(t, config.AIConfig{})
	ctx := context.Background()

	rec := testutils.NewRecipeFactory(9).Published("Açaí")
	m.recipeRepo.On("FindByID", ctx, rec.ID()).Return(rec, nil)
	m.settings.On("Get", ctx).Return(&settings.SiteSettings{}, nil)

	err := svc.PublishMeme(ctx, rec.ID())
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeWebhookNotConfigured, appErr.Code)
	m.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestPublishMeme_CaptionFailureAborts(t *testing.T) {
	svc, m := newTestService(t, config.AIConfig{})
	ctx := context.Background()

	rec := testutils.NewRecipeFactory(10).Published("Tapioca")
	m.recipeRepo.On("FindByID", ctx, rec.ID()).Return(rec, nil)
	m.settings.On("Get", ctx).
		Return(&settings.SiteSettings{Webhooks: settings.Webhooks{Meme: "https://hooks.example.com/meme"}}, nil)
	m.provider.On("GenerateMemeCaption", mock.Anything, "Tapioca").
		Return("", errors.New("model overloaded"))
	m.provider.On("GenerateImage", mock.Anything, mock.Anything).
		Return([]byte{0x01}, nil).Maybe()
	m.storage.On("UploadImage", mock.Anything, mock.Anything, "memes").
		Return("https://cdn.example.com/meme.jpg", nil).Maybe()

	err := svc.PublishMeme(ctx, rec.ID())
	require.Error(t, err)
	m.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

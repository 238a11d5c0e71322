package importer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/receitario/v1/internal/domain/recipe"
	"github.com/receitario/v1/internal/infrastructure/monitoring"
	"github.com/receitario/v1/internal/ports/inbound"
	"github.com/receitario/v1/internal/ports/outbound"
	"github.com/receitario/v1/test/testutils"
)

type importerMocks struct {
	wordpress  *testutils.MockWordPressClient
	provider   *testutils.MockAIProvider
	recipeRepo *testutils.MockRecipeRepository
	storage    *testutils.MockStorageService
}

func newTestImporter(t *testing.T) (*Importer, *importerMocks) {
	t.Helper()
	m := &importerMocks{
		wordpress:  &testutils.MockWordPressClient{},
		provider:   &testutils.MockAIProvider{},
		recipeRepo: &testutils.MockRecipeRepository{},
		storage:    &testutils.MockStorageService{},
	}
	imp := NewImporter(
		m.wordpress, m.provider, m.recipeRepo, m.storage,
		monitoring.NewMetrics(prometheus.NewRegistry()),
		500*time.Millisecond,
		zap.NewNop(),
	)
	return imp, m
}

func post(id int, title string) outbound.WordPressPost {
	return outbound.WordPressPost{
		ID:         id,
		Title:      title,
		Content:    "<p>" + title + "</p>",
		Link:       "https://blog.example/post",
		Categories: []string{"Bolos"},
	}
}

func TestRun_ImportsAllPostsAsDrafts(t *testing.T) {
	imp, m := newTestImporter(t)
	ctx := context.Background()

	m.wordpress.On("FetchAllPosts", ctx).
		Return([]outbound.WordPressPost{post(1, "Bolo de Fubá"), post(2, "Feijoada")}, nil)
	m.provider.On("ConvertWordPressPost", ctx, mock.Anything, "Bolo de Fubá", []string{"Bolos"}).
		Return(testutils.GeneratedRecipe("Bolo de Fubá Cremoso"), nil)
	m.provider.On("ConvertWordPressPost", ctx, mock.Anything, "Feijoada", []string{"Bolos"}).
		Return(testutils.GeneratedRecipe("Feijoada Completa"), nil)
	m.provider.On("GenerateImage", ctx, mock.Anything).
		Return(nil, errors.New("unavailable"))

	var statuses []recipe.Status
	m.recipeRepo.On("Save", ctx, mock.Anything).
		Run(func(args mock.Arguments) {
			statuses = append(statuses, args.Get(1).(*recipe.Recipe).Status())
		}).
		Return(nil)

	result, err := imp.Run(ctx, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 0, result.Failed)
	assert.False(t, result.UsedMocks)
	assert.Len(t, result.RecipeIDs, 2)
	for _, status := range statuses {
		assert.Equal(t, recipe.StatusDraft, status)
	}
}

func TestRun_FailedPostRecordedAndBatchContinues(t *testing.T) {
	imp, m := newTestImporter(t)
	ctx := context.Background()

	m.wordpress.On("FetchAllPosts", ctx).
		Return([]outbound.WordPressPost{post(1, "Quebrado"), post(2, "Pão de Queijo")}, nil)
	m.provider.On("ConvertWordPressPost", ctx, mock.Anything, "Quebrado", mock.Anything).
		Return(nil, errors.New("model overloaded"))
	m.provider.On("ConvertWordPressPost", ctx, mock.Anything, "Pão de Queijo", mock.Anything).
		Return(testutils.GeneratedRecipe("Pão de Queijo Mineiro"), nil)
	m.provider.On("GenerateImage", ctx, mock.Anything).
		Return(nil, errors.New("unavailable"))
	m.recipeRepo.On("Save", ctx, mock.Anything).Return(nil)

	var updates []inbound.ImportUpdate
	result, err := imp.Run(ctx, func(u inbound.ImportUpdate) {
		updates = append(updates, u)
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, result.Total, result.Imported+result.Failed)

	var failed, saved bool
	for _, u := range updates {
		if u.Status == "failed" && u.PostTitle == "Quebrado" {
			failed = true
			assert.NotEmpty(t, u.Error)
		}
		if u.Status == "saved" && u.PostTitle == "Pão de Queijo" {
			saved = true
		}
	}
	assert.True(t, failed)
	assert.True(t, saved)
}

func TestRun_ReportsMockUsage(t *testing.T) {
	imp, m := newTestImporter(t)
	ctx := context.Background()

	sample := post(1, "Bolo de Fubá")
	sample.IsSample = true
	m.wordpress.On("FetchAllPosts", ctx).
		Return([]outbound.WordPressPost{sample}, nil)
	m.provider.On("ConvertWordPressPost", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return(testutils.GeneratedRecipe("Bolo de Fubá"), nil)
	m.provider.On("GenerateImage", ctx, mock.Anything).
		Return(nil, errors.New("unavailable"))
	m.recipeRepo.On("Save", ctx, mock.Anything).Return(nil)

	result, err := imp.Run(ctx, nil)
	require.NoError(t, err)
	assert.True(t, result.UsedMocks)
}

func TestRun_FetchFailureAbortsBeforeConversion(t *testing.T) {
	imp, m := newTestImporter(t)
	ctx := context.Background()

	m.wordpress.On("FetchAllPosts", ctx).
		Return(nil, errors.New("connection refused"))

	_, err := imp.Run(ctx, nil)
	require.Error(t, err)
	m.provider.AssertNotCalled(t, "ConvertWordPressPost", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRun_PacesItemStarts(t *testing.T) {
	imp, m := newTestImporter(t)
	ctx := context.Background()

	m.wordpress.On("FetchAllPosts", ctx).
		Return([]outbound.WordPressPost{post(1, "Um"), post(2, "Dois"), post(3, "Três")}, nil)
	m.provider.On("ConvertWordPressPost", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return(testutils.GeneratedRecipe("Receita"), nil)
	m.provider.On("GenerateImage", ctx, mock.Anything).
		Return(nil, errors.New("unavailable"))
	m.recipeRepo.On("Save", ctx, mock.Anything).Return(nil)

	start := time.Now()
	result, err := imp.Run(ctx, nil)
	require.NoError(t, err)
	require.Equal(t, 3, result.Imported)

	// First start is immediate; the second and third each wait 500ms.
	assert.GreaterOrEqual(t, time.Since(start), time.Second)
}

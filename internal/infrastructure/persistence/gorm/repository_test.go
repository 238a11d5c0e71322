package gorm_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/receitario/v1/internal/domain/category"
	"github.com/receitario/v1/internal/domain/mealplan"
	"github.com/receitario/v1/internal/domain/recipe"
	"github.com/receitario/v1/internal/domain/settings"
	gormrepo "github.com/receitario/v1/internal/infrastructure/persistence/gorm"
	"github.com/receitario/v1/internal/infrastructure/persistence/sqlite"
	apperrors "github.com/receitario/v1/pkg/errors"
)

func newTestDB(t *testing.T) *gormrepo.RecipeRepository {
	t.Helper()
	db, err := sqlite.SetupDatabase("", logger.Silent)
	require.NoError(t, err)
	return gormrepo.NewRecipeRepository(db).(*gormrepo.RecipeRepository)
}

func buildRecipe(t *testing.T, title string) *recipe.Recipe {
	t.Helper()
	r, err := recipe.NewRecipe(title, "uma descricao saborosa")
	require.NoError(t, err)
	require.NoError(t, r.SetIngredients([]recipe.Ingredient{{Item: "farinha", Amount: "2 xicaras"}}))
	require.NoError(t, r.SetSteps([]string{"Misture tudo", "Asse"}))
	r.SetTags([]string{"Bolos", "Festa"})
	return r
}

func TestRecipeSaveAndFindRoundtrip(t *testing.T) {
	repo := newTestDB(t)
	ctx := context.Background()

	original := buildRecipe(t, "Bolo de Cenoura")
	require.NoError(t, repo.Save(ctx, original))

	found, err := repo.FindByID(ctx, original.ID())
	require.NoError(t, err)

	assert.Equal(t, original.Title(), found.Title())
	assert.Equal(t, "bolo-de-cenoura", found.Slug())
	assert.Equal(t, original.Ingredients(), found.Ingredients())
	assert.Equal(t, original.Steps(), found.Steps())
	assert.Equal(t, []string{"Bolos", "Festa"}, found.Tags())
	assert.Equal(t, recipe.StatusDraft, found.Status())
}

func TestRecipeSaveIsUpsert(t *testing.T) {
	repo := newTestDB(t)
	ctx := context.Background()

	r := buildRecipe(t, "Bolo de Fuba")
	require.NoError(t, repo.Save(ctx, r))

	require.NoError(t, r.Rename("Bolo de Fuba Cremoso"))
	require.NoError(t, repo.Save(ctx, r))

	found, err := repo.FindByID(ctx, r.ID())
	require.NoError(t, err)
	assert.Equal(t, "Bolo de Fuba Cremoso", found.Title())
	assert.Equal(t, "bolo-de-fuba-cremoso", found.Slug())

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestRecipeFindBySlug(t *testing.T) {
	repo := newTestDB(t)
	ctx := context.Background()

	r := buildRecipe(t, "Pão de Queijo")
	require.NoError(t, repo.Save(ctx, r))

	found, err := repo.FindBySlug(ctx, "pao-de-queijo")
	require.NoError(t, err)
	assert.Equal(t, r.ID(), found.ID())

	_, err = repo.FindBySlug(ctx, "nao-existe")
	assert.ErrorIs(t, err, recipe.ErrRecipeNotFound)
}

func TestRecipeSearchMatchesTitleAndTags(t *testing.T) {
	repo := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, buildRecipe(t, "Bolo de Chocolate")))
	require.NoError(t, repo.Save(ctx, buildRecipe(t, "Feijoada Completa")))

	byTitle, total, err := repo.Search(ctx, "chocolate", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, byTitle, 1)
	assert.Equal(t, "Bolo de Chocolate", byTitle[0].Title())

	// tags are searched too
	byTag, total, err := repo.Search(ctx, "festa", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, byTag, 2)
}

func TestRecipeFindByStatus(t *testing.T) {
	repo := newTestDB(t)
	ctx := context.Background()

	draft := buildRecipe(t, "Rascunho")
	published := buildRecipe(t, "Publicada")
	require.NoError(t, published.Publish())
	require.NoError(t, repo.Save(ctx, draft))
	require.NoError(t, repo.Save(ctx, published))

	recipes, total, err := repo.FindByStatus(ctx, recipe.StatusPublished, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Publicada", recipes[0].Title())
}

func TestRecipeFindByIDsPreservesOrder(t *testing.T) {
	repo := newTestDB(t)
	ctx := context.Background()

	a := buildRecipe(t, "Primeira")
	b := buildRecipe(t, "Segunda")
	require.NoError(t, repo.Save(ctx, a))
	require.NoError(t, repo.Save(ctx, b))

	recipes, err := repo.FindByIDs(ctx, []string{b.ID(), "missing", a.ID()})
	require.NoError(t, err)
	require.Len(t, recipes, 2)
	assert.Equal(t, "Segunda", recipes[0].Title())
	assert.Equal(t, "Primeira", recipes[1].Title())
}

func TestCategorySaveAllReplacesList(t *testing.T) {
	db, err := sqlite.SetupDatabase("", logger.Silent)
	require.NoError(t, err)
	repo := gormrepo.NewCategoryRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.SaveAll(ctx, []category.Category{
		{ID: "bolos", Name: "Bolos"},
		{ID: "sopas", Name: "Sopas"},
	}))
	require.NoError(t, repo.SaveAll(ctx, []category.Category{
		{ID: "saladas", Name: "Saladas"},
	}))

	categories, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Saladas", categories[0].Name)
}

func TestSettingsSingletonRoundtrip(t *testing.T) {
	db, err := sqlite.SetupDatabase("", logger.Silent)
	require.NoError(t, err)
	repo := gormrepo.NewSettingsRepository(db)
	ctx := context.Background()

	// missing row yields empty defaults, not an error
	empty, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty.SiteName)

	s := &settings.SiteSettings{
		SiteName: "Receitário",
		Webhooks: settings.Webhooks{Affiliate: "https://hooks.example/affiliate"},
		Banners:  []settings.Banner{{Position: "home-top", ImageURL: "https://img.example/b.png"}},
	}
	require.NoError(t, repo.Save(ctx, s))

	s.SiteName = "Receitário do Chef"
	require.NoError(t, repo.Save(ctx, s))

	loaded, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Receitário do Chef", loaded.SiteName)
	assert.Equal(t, "https://hooks.example/affiliate", loaded.Webhooks.Affiliate)
	require.NotNil(t, loaded.BannerFor("home-top"))
}

func TestMealPlanGetReturnsEmptyPlan(t *testing.T) {
	db, err := sqlite.SetupDatabase("", logger.Silent)
	require.NoError(t, err)
	repo := gormrepo.NewMealPlanRepository(db)
	ctx := context.Background()

	plan, err := repo.Get(ctx, "2026-W10")
	require.NoError(t, err)
	assert.Equal(t, "2026-W10", plan.WeekID)
	assert.Empty(t, plan.Days)

	plan.Days["mon"] = mealplan.DayMeals{
		Lunch: &mealplan.MealSlot{RecipeID: "r1", RecipeTitle: "Salada", RecipeImage: "http://img"},
	}
	require.NoError(t, repo.Save(ctx, plan))

	loaded, err := repo.Get(ctx, "2026-W10")
	require.NoError(t, err)
	require.NotNil(t, loaded.Days["mon"].Lunch)
	assert.Equal(t, "Salada", loaded.Days["mon"].Lunch.RecipeTitle)
}

func TestNewsletterSubscribeRejectsDuplicates(t *testing.T) {
	db, err := sqlite.SetupDatabase("", logger.Silent)
	require.NoError(t, err)
	repo := gormrepo.NewNewsletterRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Subscribe(ctx, "Leitor@Example.com"))

	err = repo.Subscribe(ctx, "leitor@example.com")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeAlreadySubscribed))
}

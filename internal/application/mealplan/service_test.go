package mealplan

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	mealplandomain "github.com/receitario/v1/internal/domain/mealplan"
	"github.com/receitario/v1/internal/domain/recipe"
	"github.com/receitario/v1/internal/ports/inbound"
	apperrors "github.com/receitario/v1/pkg/errors"
	"github.com/receitario/v1/test/testutils"
)

func newTestService(t *testing.T) (inbound.MealPlanService, *testutils.MockMealPlanRepository, *testutils.MockDietPlanRepository, *testutils.MockRecipeRepository) {
	t.Helper()
	mealPlans := &testutils.MockMealPlanRepository{}
	dietPlans := &testutils.MockDietPlanRepository{}
	recipes := &testutils.MockRecipeRepository{}
	svc := NewService(mealPlans, dietPlans, recipes, zap.NewNop())
	return svc, mealPlans, dietPlans, recipes
}

func emptyWeek(weekID string) *mealplandomain.MealPlan {
	return &mealplandomain.MealPlan{WeekID: weekID, Days: map[string]mealplandomain.DayMeals{}}
}

func TestSetSlot_SnapshotsRecipeFields(t *testing.T) {
	svc, mealPlans, _, recipes := newTestService(t)
	ctx := context.Background()

	rec := testutils.NewRecipeFactory(1).Published("Feijoada Completa")
	recipes.On("FindByID", ctx, rec.ID()).Return(rec, nil)
	mealPlans.On("Get", ctx, "2026-W10").Return(emptyWeek("2026-W10"), nil)
	mealPlans.On("Save", ctx, mock.Anything).Return(nil)

	plan, err := svc.SetSlot(ctx, "2026-W10", "wed", SlotLunch, rec.ID())
	require.NoError(t, err)

	slot := plan.Days["wed"].Lunch
	require.NotNil(t, slot)
	assert.Equal(t, rec.ID(), slot.RecipeID)
	assert.Equal(t, "Feijoada Completa", slot.RecipeTitle)
	assert.Equal(t, rec.ImageURL(), slot.RecipeImage)
}

func TestSetSlot_RejectsUnknownDayAndSlot(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.SetSlot(ctx, "2026-W10", "someday", SlotLunch, "r1")
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)

	_, err = svc.SetSlot(ctx, "2026-W10", "mon", "brunch", "r1")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
}

func TestClearSlot_EmptiesOnlyThatSlot(t *testing.T) {
	svc, mealPlans, _, _ := newTestService(t)
	ctx := context.Background()

	week := emptyWeek("2026-W11")
	week.Days["fri"] = mealplandomain.DayMeals{
		Lunch:  &mealplandomain.MealSlot{RecipeID: "r1", RecipeTitle: "Salada"},
		Dinner: &mealplandomain.MealSlot{RecipeID: "r2", RecipeTitle: "Sopa"},
	}
	mealPlans.On("Get", ctx, "2026-W11").Return(week, nil)
	mealPlans.On("Save", ctx, mock.Anything).Return(nil)

	plan, err := svc.ClearSlot(ctx, "2026-W11", "fri", SlotLunch)
	require.NoError(t, err)

	assert.Nil(t, plan.Days["fri"].Lunch)
	require.NotNil(t, plan.Days["fri"].Dinner)
	assert.Equal(t, "Sopa", plan.Days["fri"].Dinner.RecipeTitle)
}

func TestApplyDietPlan_ResolvesQueriesAndFillsPlaceholders(t *testing.T) {
	svc, mealPlans, dietPlans, recipes := newTestService(t)
	ctx := context.Background()

	factory := testutils.NewRecipeFactory(2)
	salada := factory.Published("Salada Tropical", "saladas")
	sopa := factory.Published("Sopa de Legumes", "sopas")

	dietPlans.On("FindByID", ctx, "semana-leve").Return(&mealplandomain.DietPlan{
		ID:    "semana-leve",
		Title: "Semana Leve",
		Structure: map[string]mealplandomain.DaySlots{
			"mon": {LunchQuery: "salada", DinnerQuery: "sopa"},
			"tue": {LunchQuery: "peixe grelhado", DinnerQuery: ""},
		},
	}, nil)
	recipes.On("FindByStatus", ctx, recipe.StatusPublished, 0, 1000).
		Return([]*recipe.Recipe{salada, sopa}, 2, nil)

	var saved *mealplandomain.MealPlan
	mealPlans.On("Save", ctx, mock.Anything).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*mealplandomain.MealPlan) }).
		Return(nil)

	plan, err := svc.ApplyDietPlan(ctx, "2026-W12", "semana-leve")
	require.NoError(t, err)
	require.NotNil(t, saved)

	mon := plan.Days["mon"]
	require.NotNil(t, mon.Lunch)
	assert.Equal(t, salada.ID(), mon.Lunch.RecipeID)
	require.NotNil(t, mon.Dinner)
	assert.Equal(t, sopa.ID(), mon.Dinner.RecipeID)

	tue := plan.Days["tue"]
	require.NotNil(t, tue.Lunch)
	assert.True(t, tue.Lunch.IsPlaceholder())
	assert.Equal(t, "peixe grelhado", tue.Lunch.RecipeTitle)
	assert.Equal(t, PlaceholderImageURL, tue.Lunch.RecipeImage)
	assert.Nil(t, tue.Dinner)
}

func TestApplyDietPlan_MatchesByTag(t *testing.T) {
	svc, mealPlans, dietPlans, recipes := newTestService(t)
	ctx := context.Background()

	rec := testutils.NewRecipeFactory(3).Published("Strogonoff de Frango", "jantar rápido")
	dietPlans.On("FindByID", ctx, "p1").Return(&mealplandomain.DietPlan{
		ID:    "p1",
		Title: "Plano",
		Structure: map[string]mealplandomain.DaySlots{
			"thu": {DinnerQuery: "Jantar Rápido"},
		},
	}, nil)
	recipes.On("FindByStatus", ctx, recipe.StatusPublished, 0, 1000).
		Return([]*recipe.Recipe{rec}, 1, nil)
	mealPlans.On("Save", ctx, mock.Anything).Return(nil)

	plan, err := svc.ApplyDietPlan(ctx, "2026-W13", "p1")
	require.NoError(t, err)
	require.NotNil(t, plan.Days["thu"].Dinner)
	assert.Equal(t, rec.ID(), plan.Days["thu"].Dinner.RecipeID)
}

func TestSaveDietPlan_Validation(t *testing.T) {
	svc, _, dietPlans, _ := newTestService(t)
	ctx := context.Background()

	err := svc.SaveDietPlan(ctx, &mealplandomain.DietPlan{Title: "sem id"})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
	dietPlans.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// Package mealplan implements the weekly meal planning use cases: manual
// slot edits and applying diet plan templates.
package mealplan

import (
	"context"
	"strings"

	"go.uber.org/zap"

	mealplandomain "github.com/receitario/v1/internal/domain/mealplan"
	"github.com/receitario/v1/internal/domain/recipe"
	"github.com/receitario/v1/internal/ports/inbound"
	"github.com/receitario/v1/internal/ports/outbound"
	apperrors "github.com/receitario/v1/pkg/errors"
)

// PlaceholderImageURL fills slots whose meal query matched no recipe.
const PlaceholderImageURL = "https://images.unsplash.com/photo-1546069901-ba9599a7e63c?q=80&w=1080&auto=format&fit=crop"

const (
	SlotLunch  = "lunch"
	SlotDinner = "dinner"
)

// Service implements the MealPlanService use cases
type Service struct {
	mealPlanRepo outbound.MealPlanRepository
	dietPlanRepo outbound.DietPlanRepository
	recipeRepo   outbound.RecipeRepository
	logger       *zap.Logger
}

// NewService creates a new meal planning service
func NewService(
	mealPlanRepo outbound.MealPlanRepository,
	dietPlanRepo outbound.DietPlanRepository,
	recipeRepo outbound.RecipeRepository,
	logger *zap.Logger,
) inbound.MealPlanService {
	return &Service{
		mealPlanRepo: mealPlanRepo,
		dietPlanRepo: dietPlanRepo,
		recipeRepo:   recipeRepo,
		logger:       logger.Named("mealplan-service"),
	}
}

// GetWeek returns the plan for a week, empty when nothing was saved yet
func (s *Service) GetWeek(ctx context.Context, weekID string) (*mealplandomain.MealPlan, error) {
	plan, err := s.mealPlanRepo.Get(ctx, weekID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("load meal plan", err)
	}
	return plan, nil
}

// SetSlot pins a recipe into one slot of the week. The slot stores a
// denormalized snapshot of the recipe, not a reference.
func (s *Service) SetSlot(ctx context.Context, weekID, day, slot, recipeID string) (*mealplandomain.MealPlan, error) {
	if err := validateSlot(day, slot); err != nil {
		return nil, err
	}

	rec, err := s.recipeRepo.FindByID(ctx, recipeID)
	if err != nil {
		return nil, apperrors.NewRecipeNotFoundError(recipeID)
	}

	plan, err := s.mealPlanRepo.Get(ctx, weekID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("load meal plan", err)
	}

	assignSlot(plan, day, slot, &mealplandomain.MealSlot{
		RecipeID:    rec.ID(),
		RecipeTitle: rec.Title(),
		RecipeImage: rec.ImageURL(),
	})

	if err := s.mealPlanRepo.Save(ctx, plan); err != nil {
		return nil, apperrors.NewDatabaseError("save meal plan", err)
	}
	return plan, nil
}

// ClearSlot empties one slot of the week
func (s *Service) ClearSlot(ctx context.Context, weekID, day, slot string) (*mealplandomain.MealPlan, error) {
	if err := validateSlot(day, slot); err != nil {
		return nil, err
	}

	plan, err := s.mealPlanRepo.Get(ctx, weekID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("load meal plan", err)
	}

	assignSlot(plan, day, slot, nil)

	if err := s.mealPlanRepo.Save(ctx, plan); err != nil {
		return nil, apperrors.NewDatabaseError("save meal plan", err)
	}
	return plan, nil
}

// ListDietPlans returns all diet plan templates
func (s *Service) ListDietPlans(ctx context.Context) ([]*mealplandomain.DietPlan, error) {
	plans, err := s.dietPlanRepo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list diet plans", err)
	}
	return plans, nil
}

// SaveDietPlan creates or replaces a diet plan template
func (s *Service) SaveDietPlan(ctx context.Context, plan *mealplandomain.DietPlan) error {
	if plan.ID == "" || plan.Title == "" {
		return apperrors.NewValidationError("diet plan id and title are required")
	}
	if err := s.dietPlanRepo.Save(ctx, plan); err != nil {
		return apperrors.NewDatabaseError("save diet plan", err)
	}
	return nil
}

// DeleteDietPlan removes a diet plan template
func (s *Service) DeleteDietPlan(ctx context.Context, id string) error {
	if err := s.dietPlanRepo.Delete(ctx, id); err != nil {
		return apperrors.NewDatabaseError("delete diet plan", err)
	}
	return nil
}

// ApplyDietPlan fills a week from a diet plan's meal queries. Each query
// is resolved against the catalog; a query with no match produces a
// placeholder slot carrying the query text and the stock image. The
// resulting plan is a snapshot independent of later recipe changes.
func (s *Service) ApplyDietPlan(ctx context.Context, weekID, planID string) (*mealplandomain.MealPlan, error) {
	dietPlan, err := s.dietPlanRepo.FindByID(ctx, planID)
	if err != nil {
		return nil, apperrors.NewNotFoundError("diet plan")
	}

	recipes, _, err := s.recipeRepo.FindByStatus(ctx, recipe.StatusPublished, 0, 1000)
	if err != nil {
		return nil, apperrors.NewDatabaseError("load recipe catalog", err)
	}

	plan := &mealplandomain.MealPlan{
		WeekID: weekID,
		Days:   make(map[string]mealplandomain.DayMeals),
	}

	for _, day := range mealplandomain.DayOrder {
		slots, ok := dietPlan.Structure[day]
		if !ok {
			continue
		}
		plan.Days[day] = mealplandomain.DayMeals{
			Lunch:  s.resolveSlot(recipes, slots.LunchQuery),
			Dinner: s.resolveSlot(recipes, slots.DinnerQuery),
		}
	}

	if err := s.mealPlanRepo.Save(ctx, plan); err != nil {
		return nil, apperrors.NewDatabaseError("save meal plan", err)
	}

	s.logger.Info("Diet plan applied",
		zap.String("week_id", weekID),
		zap.String("plan_id", planID))
	return plan, nil
}

// resolveSlot finds the first recipe whose title or tags contain the
// query, case-insensitively. No match yields a placeholder slot.
func (s *Service) resolveSlot(recipes []*recipe.Recipe, query string) *mealplandomain.MealSlot {
	if query == "" {
		return nil
	}

	needle := strings.ToLower(query)
	for _, rec := range recipes {
		if strings.Contains(strings.ToLower(rec.Title()), needle) {
			return snapshotSlot(rec)
		}
		for _, tag := range rec.Tags() {
			if strings.Contains(strings.ToLower(tag), needle) {
				return snapshotSlot(rec)
			}
		}
	}

	return &mealplandomain.MealSlot{
		RecipeID:    "",
		RecipeTitle: query,
		RecipeImage: PlaceholderImageURL,
	}
}

func snapshotSlot(rec *recipe.Recipe) *mealplandomain.MealSlot {
	return &mealplandomain.MealSlot{
		RecipeID:    rec.ID(),
		RecipeTitle: rec.Title(),
		RecipeImage: rec.ImageURL(),
	}
}

func assignSlot(plan *mealplandomain.MealPlan, day, slot string, value *mealplandomain.MealSlot) {
	if plan.Days == nil {
		plan.Days = make(map[string]mealplandomain.DayMeals)
	}
	meals := plan.Days[day]
	if slot == SlotLunch {
		meals.Lunch = value
	} else {
		meals.Dinner = value
	}
	plan.Days[day] = meals
}

func validateSlot(day, slot string) error {
	valid := false
	for _, d := range mealplandomain.DayOrder {
		if d == day {
			valid = true
			break
		}
	}
	if !valid {
		return apperrors.NewValidationError("unknown day " + day)
	}
	if slot != SlotLunch && slot != SlotDinner {
		return apperrors.NewValidationError("slot must be lunch or dinner")
	}
	return nil
}

package gorm

import (
	"context"
	"errors"
	"strings"

	gormlib "gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/receitario/v1/internal/domain/category"
	"github.com/receitario/v1/internal/domain/mealplan"
	"github.com/receitario/v1/internal/domain/settings"
	"github.com/receitario/v1/internal/domain/story"
	"github.com/receitario/v1/internal/domain/suggestion"
	"github.com/receitario/v1/internal/ports/outbound"
	apperrors "github.com/receitario/v1/pkg/errors"
)

var ErrNotFound = errors.New("record not found")

// CategoryRepository implements category persistence using GORM
type CategoryRepository struct {
	db *gormlib.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gormlib.DB) outbound.CategoryRepository {
	return &CategoryRepository{db: db}
}

// FindAll returns all categories in display order
func (r *CategoryRepository) FindAll(ctx context.Context) ([]category.Category, error) {
	var models []CategoryModel
	result := r.db.WithContext(ctx).Order("sort_order ASC, name ASC").Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	categories := make([]category.Category, len(models))
	for i, m := range models {
		categories[i] = category.Category{ID: m.ID, Name: m.Name, ImageURL: m.ImageURL}
	}
	return categories, nil
}

// SaveAll replaces the whole category list. The dashboard edits
// categories as one form, so partial updates are never needed.
func (r *CategoryRepository) SaveAll(ctx context.Context, categories []category.Category) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gormlib.DB) error {
		if err := tx.Where("1 = 1").Delete(&CategoryModel{}).Error; err != nil {
			return err
		}
		for i, c := range categories {
			model := CategoryModel{ID: c.ID, Name: c.Name, ImageURL: c.ImageURL, SortOrder: i}
			if err := tx.Create(&model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// StoryRepository implements web story persistence using GORM
type StoryRepository struct {
	db *gormlib.DB
}

// NewStoryRepository creates a new story repository
func NewStoryRepository(db *gormlib.DB) outbound.StoryRepository {
	return &StoryRepository{db: db}
}

// FindAll returns all web stories, newest first
func (r *StoryRepository) FindAll(ctx context.Context) ([]*story.WebStory, error) {
	var models []StoryModel
	result := r.db.WithContext(ctx).Order("created_at DESC").Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	stories := make([]*story.WebStory, len(models))
	for i := range models {
		s, err := ModelToStory(&models[i])
		if err != nil {
			return nil, err
		}
		stories[i] = s
	}
	return stories, nil
}

// FindByID finds a web story by ID
func (r *StoryRepository) FindByID(ctx context.Context, id string) (*story.WebStory, error) {
	var model StoryModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gormlib.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return ModelToStory(&model)
}

// Save stores a new web story. Stories are immutable, so this is insert
// only.
func (r *StoryRepository) Save(ctx context.Context, s *story.WebStory) error {
	model, err := StoryToModel(s)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(model).Error
}

// SettingsRepository implements the singleton settings row using GORM
type SettingsRepository struct {
	db *gormlib.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *gormlib.DB) outbound.SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get returns the site settings, or empty defaults when the row does not
// exist yet
func (r *SettingsRepository) Get(ctx context.Context) (*settings.SiteSettings, error) {
	var model SettingsModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", 1)
	if result.Error != nil {
		if errors.Is(result.Error, gormlib.ErrRecordNotFound) {
			return &settings.SiteSettings{}, nil
		}
		return nil, result.Error
	}
	return ModelToSettings(&model)
}

// Save replaces the settings row wholesale
func (r *SettingsRepository) Save(ctx context.Context, s *settings.SiteSettings) error {
	model, err := SettingsToModel(s)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(model).Error
}

// DietPlanRepository implements diet plan persistence using GORM
type DietPlanRepository struct {
	db *gormlib.DB
}

// NewDietPlanRepository creates a new diet plan repository
func NewDietPlanRepository(db *gormlib.DB) outbound.DietPlanRepository {
	return &DietPlanRepository{db: db}
}

// FindAll returns all diet plan templates
func (r *DietPlanRepository) FindAll(ctx context.Context) ([]*mealplan.DietPlan, error) {
	var models []DietPlanModel
	result := r.db.WithContext(ctx).Order("created_at DESC").Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	plans := make([]*mealplan.DietPlan, len(models))
	for i := range models {
		p, err := ModelToDietPlan(&models[i])
		if err != nil {
			return nil, err
		}
		plans[i] = p
	}
	return plans, nil
}

// FindByID finds a diet plan by ID
func (r *DietPlanRepository) FindByID(ctx context.Context, id string) (*mealplan.DietPlan, error) {
	var model DietPlanModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gormlib.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return ModelToDietPlan(&model)
}

// Save creates or replaces a diet plan template
func (r *DietPlanRepository) Save(ctx context.Context, p *mealplan.DietPlan) error {
	model, err := DietPlanToModel(p)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(model).Error
}

// Delete removes a diet plan template
func (r *DietPlanRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&DietPlanModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// MealPlanRepository implements applied weekly plan persistence using GORM
type MealPlanRepository struct {
	db *gormlib.DB
}

// NewMealPlanRepository creates a new meal plan repository
func NewMealPlanRepository(db *gormlib.DB) outbound.MealPlanRepository {
	return &MealPlanRepository{db: db}
}

// Get returns the plan for a week, or an empty plan when none is stored
func (r *MealPlanRepository) Get(ctx context.Context, weekID string) (*mealplan.MealPlan, error) {
	var model MealPlanModel
	result := r.db.WithContext(ctx).First(&model, "week_id = ?", weekID)
	if result.Error != nil {
		if errors.Is(result.Error, gormlib.ErrRecordNotFound) {
			return &mealplan.MealPlan{WeekID: weekID, Days: map[string]mealplan.DayMeals{}}, nil
		}
		return nil, result.Error
	}
	return ModelToMealPlan(&model)
}

// Save creates or replaces the plan for a week
func (r *MealPlanRepository) Save(ctx context.Context, p *mealplan.MealPlan) error {
	model, err := MealPlanToModel(p)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(model).Error
}

// SuggestionRepository implements reader suggestion persistence using GORM
type SuggestionRepository struct {
	db *gormlib.DB
}

// NewSuggestionRepository creates a new suggestion repository
func NewSuggestionRepository(db *gormlib.DB) outbound.SuggestionRepository {
	return &SuggestionRepository{db: db}
}

// FindAll returns all suggestions, newest first
func (r *SuggestionRepository) FindAll(ctx context.Context) ([]*suggestion.Suggestion, error) {
	var models []SuggestionModel
	result := r.db.WithContext(ctx).Order("created_at DESC").Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	suggestions := make([]*suggestion.Suggestion, len(models))
	for i := range models {
		suggestions[i] = ModelToSuggestion(&models[i])
	}
	return suggestions, nil
}

// FindByID finds a suggestion by ID
func (r *SuggestionRepository) FindByID(ctx context.Context, id string) (*suggestion.Suggestion, error) {
	var model SuggestionModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gormlib.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return ModelToSuggestion(&model), nil
}

// Save creates or updates a suggestion
func (r *SuggestionRepository) Save(ctx context.Context, s *suggestion.Suggestion) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(SuggestionToModel(s)).Error
}

// Delete removes a suggestion, used when the pipeline consumes it
func (r *SuggestionRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&SuggestionModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// NewsletterRepository implements subscriber persistence using GORM
type NewsletterRepository struct {
	db *gormlib.DB
}

// NewNewsletterRepository creates a new newsletter repository
func NewNewsletterRepository(db *gormlib.DB) outbound.NewsletterRepository {
	return &NewsletterRepository{db: db}
}

// Subscribe stores an email address. A duplicate yields an
// ALREADY_SUBSCRIBED error the frontend can show as its own message.
func (r *NewsletterRepository) Subscribe(ctx context.Context, email string) error {
	normalized := strings.ToLower(strings.TrimSpace(email))

	var count int64
	if err := r.db.WithContext(ctx).Model(&SubscriberModel{}).
		Where("email = ?", normalized).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperrors.NewAlreadySubscribedError(normalized)
	}

	return r.db.WithContext(ctx).Create(&SubscriberModel{Email: normalized}).Error
}

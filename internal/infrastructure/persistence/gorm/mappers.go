package gorm

import (
	"encoding/json"
	"fmt"

	"github.com/receitario/v1/internal/domain/mealplan"
	"github.com/receitario/v1/internal/domain/recipe"
	"github.com/receitario/v1/internal/domain/settings"
	"github.com/receitario/v1/internal/domain/story"
	"github.com/receitario/v1/internal/domain/suggestion"
)

// RecipeToModel converts a recipe aggregate to its GORM model. The
// aggregate exposes a flat snapshot so the mapper never touches its
// unexported fields.
func RecipeToModel(r *recipe.Recipe) (*RecipeModel, error) {
	m := r.Memento()

	ingredients, err := marshalField(m.Ingredients)
	if err != nil {
		return nil, fmt.Errorf("marshal ingredients: %w", err)
	}
	nutrition, err := marshalField(m.Nutrition)
	if err != nil {
		return nil, fmt.Errorf("marshal nutrition: %w", err)
	}
	affiliates, err := marshalField(m.Affiliates)
	if err != nil {
		return nil, fmt.Errorf("marshal affiliates: %w", err)
	}
	faq, err := marshalField(m.FAQ)
	if err != nil {
		return nil, fmt.Errorf("marshal faq: %w", err)
	}
	reviews, err := marshalField(m.Reviews)
	if err != nil {
		return nil, fmt.Errorf("marshal reviews: %w", err)
	}

	return &RecipeModel{
		ID:          m.ID,
		Slug:        m.Slug,
		Title:       m.Title,
		Description: m.Description,
		Story:       m.Story,
		PrepTime:    m.Timings.Prep,
		CookTime:    m.Timings.Cook,
		TotalTime:   m.Timings.Total,
		Ingredients: ingredients,
		Steps:       StringSlice(m.Steps),
		Nutrition:   nutrition,
		Affiliates:  affiliates,
		FAQ:         faq,
		Reviews:     reviews,
		Tags:        StringSlice(m.Tags),
		ImageURL:    m.ImageURL,
		VideoURL:    m.VideoURL,
		Tips:        m.Tips,
		Pairing:     m.Pairing,
		Status:      string(m.Status),
		PublishedAt: m.PublishedAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}, nil
}

// ModelToRecipe rehydrates a recipe aggregate from its GORM model
func ModelToRecipe(model *RecipeModel) (*recipe.Recipe, error) {
	m := recipe.Memento{
		ID:          model.ID,
		Slug:        model.Slug,
		Title:       model.Title,
		Description: model.Description,
		Story:       model.Story,
		Timings: recipe.Timings{
			Prep:  model.PrepTime,
			Cook:  model.CookTime,
			Total: model.TotalTime,
		},
		Steps:       []string(model.Steps),
		Tags:        []string(model.Tags),
		ImageURL:    model.ImageURL,
		VideoURL:    model.VideoURL,
		Tips:        model.Tips,
		Pairing:     model.Pairing,
		Status:      recipe.Status(model.Status),
		PublishedAt: model.PublishedAt,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}

	if err := unmarshalField(model.Ingredients, &m.Ingredients); err != nil {
		return nil, fmt.Errorf("unmarshal ingredients: %w", err)
	}
	if err := unmarshalField(model.Nutrition, &m.Nutrition); err != nil {
		return nil, fmt.Errorf("unmarshal nutrition: %w", err)
	}
	if err := unmarshalField(model.Affiliates, &m.Affiliates); err != nil {
		return nil, fmt.Errorf("unmarshal affiliates: %w", err)
	}
	if err := unmarshalField(model.FAQ, &m.FAQ); err != nil {
		return nil, fmt.Errorf("unmarshal faq: %w", err)
	}
	if err := unmarshalField(model.Reviews, &m.Reviews); err != nil {
		return nil, fmt.Errorf("unmarshal reviews: %w", err)
	}

	return recipe.Reconstitute(m), nil
}

// StoryToModel converts a web story to its GORM model
func StoryToModel(s *story.WebStory) (*StoryModel, error) {
	slides, err := marshalField(s.Slides)
	if err != nil {
		return nil, fmt.Errorf("marshal slides: %w", err)
	}
	return &StoryModel{
		ID:        s.ID,
		RecipeID:  s.RecipeID,
		Title:     s.Title,
		Slides:    slides,
		CreatedAt: s.CreatedAt,
	}, nil
}

// ModelToStory rehydrates a web story from its GORM model
func ModelToStory(model *StoryModel) (*story.WebStory, error) {
	var slides []story.Slide
	if err := unmarshalField(model.Slides, &slides); err != nil {
		return nil, fmt.Errorf("unmarshal slides: %w", err)
	}
	return &story.WebStory{
		ID:        model.ID,
		RecipeID:  model.RecipeID,
		Title:     model.Title,
		Slides:    slides,
		CreatedAt: model.CreatedAt,
	}, nil
}

// SettingsToModel converts site settings to the singleton row
func SettingsToModel(s *settings.SiteSettings) (*SettingsModel, error) {
	social, err := marshalField(s.Social)
	if err != nil {
		return nil, fmt.Errorf("marshal social: %w", err)
	}
	ads, err := marshalField(s.Ads)
	if err != nil {
		return nil, fmt.Errorf("marshal ads: %w", err)
	}
	webhooks, err := marshalField(s.Webhooks)
	if err != nil {
		return nil, fmt.Errorf("marshal webhooks: %w", err)
	}
	banners, err := marshalField(s.Banners)
	if err != nil {
		return nil, fmt.Errorf("marshal banners: %w", err)
	}

	return &SettingsModel{
		ID:                        1,
		SiteName:                  s.SiteName,
		Tagline:                   s.Tagline,
		LogoURL:                   s.LogoURL,
		ContactMail:               s.ContactMail,
		Social:                    social,
		Ads:                       ads,
		Webhooks:                  webhooks,
		HeroRecipeIDs:             StringSlice(s.HeroRecipeIDs),
		SpecialCollectionCategory: s.SpecialCollectionCategory,
		Banners:                   banners,
	}, nil
}

// ModelToSettings rehydrates site settings from the singleton row
func ModelToSettings(model *SettingsModel) (*settings.SiteSettings, error) {
	s := &settings.SiteSettings{
		SiteName:                  model.SiteName,
		Tagline:                   model.Tagline,
		LogoURL:                   model.LogoURL,
		ContactMail:               model.ContactMail,
		HeroRecipeIDs:             []string(model.HeroRecipeIDs),
		SpecialCollectionCategory: model.SpecialCollectionCategory,
	}

	if err := unmarshalField(model.Social, &s.Social); err != nil {
		return nil, fmt.Errorf("unmarshal social: %w", err)
	}
	if err := unmarshalField(model.Ads, &s.Ads); err != nil {
		return nil, fmt.Errorf("unmarshal ads: %w", err)
	}
	if err := unmarshalField(model.Webhooks, &s.Webhooks); err != nil {
		return nil, fmt.Errorf("unmarshal webhooks: %w", err)
	}
	if err := unmarshalField(model.Banners, &s.Banners); err != nil {
		return nil, fmt.Errorf("unmarshal banners: %w", err)
	}

	return s, nil
}

// DietPlanToModel converts a diet plan template to its GORM model
func DietPlanToModel(p *mealplan.DietPlan) (*DietPlanModel, error) {
	structure, err := marshalField(p.Structure)
	if err != nil {
		return nil, fmt.Errorf("marshal structure: %w", err)
	}
	return &DietPlanModel{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Duration:    p.Duration,
		Level:       p.Level,
		Goal:        p.Goal,
		ImageURL:    p.ImageURL,
		Structure:   structure,
	}, nil
}

// ModelToDietPlan rehydrates a diet plan template from its GORM model
func ModelToDietPlan(model *DietPlanModel) (*mealplan.DietPlan, error) {
	p := &mealplan.DietPlan{
		ID:          model.ID,
		Title:       model.Title,
		Description: model.Description,
		Duration:    model.Duration,
		Level:       model.Level,
		Goal:        model.Goal,
		ImageURL:    model.ImageURL,
	}
	if err := unmarshalField(model.Structure, &p.Structure); err != nil {
		return nil, fmt.Errorf("unmarshal structure: %w", err)
	}
	return p, nil
}

// MealPlanToModel converts an applied weekly plan to its GORM model
func MealPlanToModel(p *mealplan.MealPlan) (*MealPlanModel, error) {
	days, err := marshalField(p.Days)
	if err != nil {
		return nil, fmt.Errorf("marshal days: %w", err)
	}
	return &MealPlanModel{WeekID: p.WeekID, Days: days}, nil
}

// ModelToMealPlan rehydrates an applied weekly plan from its GORM model
func ModelToMealPlan(model *MealPlanModel) (*mealplan.MealPlan, error) {
	p := &mealplan.MealPlan{WeekID: model.WeekID}
	if err := unmarshalField(model.Days, &p.Days); err != nil {
		return nil, fmt.Errorf("unmarshal days: %w", err)
	}
	if p.Days == nil {
		p.Days = map[string]mealplan.DayMeals{}
	}
	return p, nil
}

// SuggestionToModel converts a suggestion to its GORM model
func SuggestionToModel(s *suggestion.Suggestion) *SuggestionModel {
	return &SuggestionModel{
		ID:          s.ID,
		DishName:    s.DishName,
		Description: s.Description,
		Status:      s.Status,
		CreatedAt:   s.CreatedAt,
	}
}

// ModelToSuggestion rehydrates a suggestion from its GORM model
func ModelToSuggestion(model *SuggestionModel) *suggestion.Suggestion {
	return &suggestion.Suggestion{
		ID:          model.ID,
		DishName:    model.DishName,
		Description: model.Description,
		Status:      model.Status,
		CreatedAt:   model.CreatedAt,
	}
}

func marshalField(v interface{}) (JSONField, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return JSONField(data), nil
}

func unmarshalField(field JSONField, out interface{}) error {
	if len(field) == 0 || string(field) == "null" {
		return nil
	}
	return json.Unmarshal([]byte(field), out)
}

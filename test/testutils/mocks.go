// Package testutils provides mock implementations and test data factories
// shared by the application layer tests.
package testutils

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/receitario/v1/internal/domain/category"
	"github.com/receitario/v1/internal/domain/mealplan"
	"github.com/receitario/v1/internal/domain/recipe"
	"github.com/receitario/v1/internal/domain/settings"
	"github.com/receitario/v1/internal/domain/story"
	"github.com/receitario/v1/internal/domain/suggestion"
	"github.com/receitario/v1/internal/ports/outbound"
)

// MockRecipeRepository is a testify mock of RecipeRepository
type MockRecipeRepository struct {
	mock.Mock
}

func (m *MockRecipeRepository) Save(ctx context.Context, r *recipe.Recipe) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRecipeRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRecipeRepository) FindByID(ctx context.Context, id string) (*recipe.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recipe.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) FindBySlug(ctx context.Context, slug string) (*recipe.Recipe, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recipe.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) FindAll(ctx context.Context) ([]*recipe.Recipe, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*recipe.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) FindPaginated(ctx context.Context, offset, limit int) ([]*recipe.Recipe, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*recipe.Recipe), args.Int(1), args.Error(2)
}

func (m *MockRecipeRepository) FindByStatus(ctx context.Context, status recipe.Status, offset, limit int) ([]*recipe.Recipe, int, error) {
	args := m.Called(ctx, status, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*recipe.Recipe), args.Int(1), args.Error(2)
}

func (m *MockRecipeRepository) Search(ctx context.Context, query string, offset, limit int) ([]*recipe.Recipe, int, error) {
	args := m.Called(ctx, query, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*recipe.Recipe), args.Int(1), args.Error(2)
}

func (m *MockRecipeRepository) FindByIDs(ctx context.Context, ids []string) ([]*recipe.Recipe, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*recipe.Recipe), args.Error(1)
}

// MockCategoryRepository is a testify mock of CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindAll(ctx context.Context) ([]category.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]category.Category), args.Error(1)
}

func (m *MockCategoryRepository) SaveAll(ctx context.Context, categories []category.Category) error {
	args := m.Called(ctx, categories)
	return args.Error(0)
}

// MockStoryRepository is a testify mock of StoryRepository
type MockStoryRepository struct {
	mock.Mock
}

func (m *MockStoryRepository) FindAll(ctx context.Context) ([]*story.WebStory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*story.WebStory), args.Error(1)
}

func (m *MockStoryRepository) FindByID(ctx context.Context, id string) (*story.WebStory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*story.WebStory), args.Error(1)
}

func (m *MockStoryRepository) Save(ctx context.Context, s *story.WebStory) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

// MockSettingsRepository is a testify mock of SettingsRepository
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Get(ctx context.Context) (*settings.SiteSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settings.SiteSettings), args.Error(1)
}

func (m *MockSettingsRepository) Save(ctx context.Context, s *settings.SiteSettings) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

// MockDietPlanRepository is a testify mock of DietPlanRepository
type MockDietPlanRepository struct {
	mock.Mock
}

func (m *MockDietPlanRepository) FindAll(ctx context.Context) ([]*mealplan.DietPlan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*mealplan.DietPlan), args.Error(1)
}

func (m *MockDietPlanRepository) FindByID(ctx context.Context, id string) (*mealplan.DietPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mealplan.DietPlan), args.Error(1)
}

func (m *MockDietPlanRepository) Save(ctx context.Context, p *mealplan.DietPlan) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockDietPlanRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockMealPlanRepository is a testify mock of MealPlanRepository
type MockMealPlanRepository struct {
	mock.Mock
}

func (m *MockMealPlanRepository) Get(ctx context.Context, weekID string) (*mealplan.MealPlan, error) {
	args := m.Called(ctx, weekID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mealplan.MealPlan), args.Error(1)
}

func (m *MockMealPlanRepository) Save(ctx context.Context, p *mealplan.MealPlan) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

// MockSuggestionRepository is a testify mock of SuggestionRepository
type MockSuggestionRepository struct {
	mock.Mock
}

func (m *MockSuggestionRepository) FindAll(ctx context.Context) ([]*suggestion.Suggestion, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*suggestion.Suggestion), args.Error(1)
}

func (m *MockSuggestionRepository) FindByID(ctx context.Context, id string) (*suggestion.Suggestion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*suggestion.Suggestion), args.Error(1)
}

func (m *MockSuggestionRepository) Save(ctx context.Context, s *suggestion.Suggestion) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSuggestionRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockNewsletterRepository is a testify mock of NewsletterRepository
type MockNewsletterRepository struct {
	mock.Mock
}

func (m *MockNewsletterRepository) Subscribe(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

// MockCacheRepository is a testify mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheRepository) Increment(ctx context.Context, key string) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCacheRepository) SAdd(ctx context.Context, key string, members ...string) error {
	args := m.Called(ctx, key, members)
	return args.Error(0)
}

func (m *MockCacheRepository) SMembers(ctx context.Context, key string) ([]string, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCacheRepository) SRem(ctx context.Context, key string, members ...string) error {
	args := m.Called(ctx, key, members)
	return args.Error(0)
}

// MockStorageService is a testify mock of StorageService
type MockStorageService struct {
	mock.Mock
}

func (m *MockStorageService) UploadImage(ctx context.Context, data []byte, folder string) (string, error) {
	args := m.Called(ctx, data, folder)
	return args.String(0), args.Error(1)
}

func (m *MockStorageService) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// MockAIProvider is a testify mock of AIProvider
type MockAIProvider struct {
	mock.Mock
}

func (m *MockAIProvider) GenerateRecipeFromScratch(ctx context.Context, dishName string) (*outbound.GeneratedRecipe, error) {
	args := m.Called(ctx, dishName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*outbound.GeneratedRecipe), args.Error(1)
}

func (m *MockAIProvider) GenerateRecipeFromIngredients(ctx context.Context, items []string) (*outbound.GeneratedRecipe, error) {
	args := m.Called(ctx, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*outbound.GeneratedRecipe), args.Error(1)
}

func (m *MockAIProvider) ConvertWordPressPost(ctx context.Context, html, title string, categories []string) (*outbound.GeneratedRecipe, error) {
	args := m.Called(ctx, html, title, categories)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*outbound.GeneratedRecipe), args.Error(1)
}

func (m *MockAIProvider) RemixRecipe(ctx context.Context, original outbound.RemixSource, modification string) (*outbound.GeneratedRecipe, error) {
	args := m.Called(ctx, original, modification)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*outbound.GeneratedRecipe), args.Error(1)
}

func (m *MockAIProvider) GenerateImage(ctx context.Context, visualDescription string) ([]byte, error) {
	args := m.Called(ctx, visualDescription)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockAIProvider) GenerateStory(ctx context.Context, recipeTitle, description string) (*outbound.GeneratedStory, error) {
	args := m.Called(ctx, recipeTitle, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*outbound.GeneratedStory), args.Error(1)
}

func (m *MockAIProvider) GenerateReelScript(ctx context.Context, recipeTitle string, steps []string) (string, error) {
	args := m.Called(ctx, recipeTitle, steps)
	return args.String(0), args.Error(1)
}

func (m *MockAIProvider) GenerateMemeCaption(ctx context.Context, topic string) (string, error) {
	args := m.Called(ctx, topic)
	return args.String(0), args.Error(1)
}

func (m *MockAIProvider) StartVideoJob(ctx context.Context, prompt, model string) (*outbound.VideoOperation, error) {
	args := m.Called(ctx, prompt, model)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*outbound.VideoOperation), args.Error(1)
}

func (m *MockAIProvider) PollVideoJob(ctx context.Context, op *outbound.VideoOperation) (*outbound.VideoOperation, error) {
	args := m.Called(ctx, op)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*outbound.VideoOperation), args.Error(1)
}

func (m *MockAIProvider) AnalyzeFoodImage(ctx context.Context, base64Image string) (*outbound.NutritionAnalysis, error) {
	args := m.Called(ctx, base64Image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*outbound.NutritionAnalysis), args.Error(1)
}

func (m *MockAIProvider) IdentifyUtensils(ctx context.Context, dish string) ([]outbound.Utensil, error) {
	args := m.Called(ctx, dish)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]outbound.Utensil), args.Error(1)
}

// MockAffiliateClient is a testify mock of AffiliateClient
type MockAffiliateClient struct {
	mock.Mock
}

func (m *MockAffiliateClient) FetchLinks(ctx context.Context, webhookURL string, utensils []outbound.Utensil) []outbound.AffiliateLink {
	args := m.Called(ctx, webhookURL, utensils)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]outbound.AffiliateLink)
}

// MockSocialPublisher is a testify mock of SocialPublisher
type MockSocialPublisher struct {
	mock.Mock
}

func (m *MockSocialPublisher) Publish(ctx context.Context, webhookURL string, payload outbound.SocialPayload) error {
	args := m.Called(ctx, webhookURL, payload)
	return args.Error(0)
}

// MockWordPressClient is a testify mock of WordPressClient
type MockWordPressClient struct {
	mock.Mock
}

func (m *MockWordPressClient) FetchAllPosts(ctx context.Context) ([]outbound.WordPressPost, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]outbound.WordPressPost), args.Error(1)
}

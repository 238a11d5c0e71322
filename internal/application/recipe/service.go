// Package recipe provides the application layer for recipe management
// This implements the use cases defined in the inbound ports
package recipe

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/receitario/v1/internal/domain/category"
	"github.com/receitario/v1/internal/domain/recipe"
	"github.com/receitario/v1/internal/ports/inbound"
	"github.com/receitario/v1/internal/ports/outbound"
	"github.com/receitario/v1/pkg/errors"
)

const favoritesKeyPrefix = "favorites:"

// RecipeService implements the recipe use cases
type RecipeService struct {
	recipeRepo   outbound.RecipeRepository
	categoryRepo outbound.CategoryRepository
	cache        outbound.CacheRepository
	logger       *zap.Logger
}

// NewRecipeService creates a new recipe service
func NewRecipeService(
	recipeRepo outbound.RecipeRepository,
	categoryRepo outbound.CategoryRepository,
	cache outbound.CacheRepository,
	logger *zap.Logger,
) inbound.RecipeService {
	return &RecipeService{
		recipeRepo:   recipeRepo,
		categoryRepo: categoryRepo,
		cache:        cache,
		logger:       logger.Named("recipe-service"),
	}
}

// CreateRecipe creates a new draft recipe from the editor form
func (s *RecipeService) CreateRecipe(ctx context.Context, cmd inbound.SaveRecipeCommand) (*inbound.RecipeDTO, error) {
	s.logger.Info("Creating recipe", zap.String("title", cmd.Title))

	entity, err := recipe.NewRecipe(cmd.Title, cmd.Description)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create recipe")
	}

	if err := applyCommand(entity, cmd); err != nil {
		return nil, errors.Wrap(err, "failed to apply recipe fields")
	}

	if err := s.recipeRepo.Save(ctx, entity); err != nil {
		return nil, errors.NewDatabaseError("save recipe", err)
	}

	return inbound.NewRecipeDTO(entity), nil
}

// UpdateRecipe replaces an existing recipe's editable fields wholesale
func (s *RecipeService) UpdateRecipe(ctx context.Context, id string, cmd inbound.SaveRecipeCommand) (*inbound.RecipeDTO, error) {
	entity, err := s.recipeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.NewRecipeNotFoundError(id)
	}

	if entity.Title() != cmd.Title {
		if err := entity.Rename(cmd.Title); err != nil {
			return nil, errors.Wrap(err, "failed to rename recipe")
		}
	}
	if err := entity.UpdateDescription(cmd.Description); err != nil {
		return nil, errors.Wrap(err, "failed to update description")
	}
	if err := applyCommand(entity, cmd); err != nil {
		return nil, errors.Wrap(err, "failed to apply recipe fields")
	}

	if err := s.recipeRepo.Save(ctx, entity); err != nil {
		return nil, errors.NewDatabaseError("save recipe", err)
	}

	return inbound.NewRecipeDTO(entity), nil
}

// PublishRecipe moves a draft to published
func (s *RecipeService) PublishRecipe(ctx context.Context, id string) (*inbound.RecipeDTO, error) {
	entity, err := s.recipeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.NewRecipeNotFoundError(id)
	}

	if err := entity.Publish(); err != nil {
		return nil, errors.Wrap(err, "failed to publish recipe")
	}

	if err := s.recipeRepo.Save(ctx, entity); err != nil {
		return nil, errors.NewDatabaseError("save recipe", err)
	}

	s.logger.Info("Recipe published", zap.String("id", id), zap.String("slug", entity.Slug()))
	return inbound.NewRecipeDTO(entity), nil
}

// ArchiveRecipe retires a published recipe without deleting it
func (s *RecipeService) ArchiveRecipe(ctx context.Context, id string) error {
	entity, err := s.recipeRepo.FindByID(ctx, id)
	if err != nil {
		return errors.NewRecipeNotFoundError(id)
	}

	if err := entity.Archive(); err != nil {
		return errors.Wrap(err, "failed to archive recipe")
	}

	if err := s.recipeRepo.Save(ctx, entity); err != nil {
		return errors.NewDatabaseError("save recipe", err)
	}
	return nil
}

// DeleteRecipe removes a recipe permanently
func (s *RecipeService) DeleteRecipe(ctx context.Context, id string) error {
	if err := s.recipeRepo.Delete(ctx, id); err != nil {
		if err == recipe.ErrRecipeNotFound {
			return errors.NewRecipeNotFoundError(id)
		}
		return errors.NewDatabaseError("delete recipe", err)
	}
	s.logger.Info("Recipe deleted", zap.String("id", id))
	return nil
}

// AddReview appends a reader review to a recipe
func (s *RecipeService) AddReview(ctx context.Context, id string, cmd inbound.ReviewCommand) error {
	entity, err := s.recipeRepo.FindByID(ctx, id)
	if err != nil {
		return errors.NewRecipeNotFoundError(id)
	}

	review := recipe.Review{
		Author:    cmd.Author,
		Rating:    cmd.Rating,
		Text:      cmd.Text,
		CreatedAt: time.Now(),
	}
	if err := entity.AddReview(review); err != nil {
		return errors.Wrap(err, "failed to add review")
	}

	if err := s.recipeRepo.Save(ctx, entity); err != nil {
		return errors.NewDatabaseError("save recipe", err)
	}
	return nil
}

// GetRecipe returns a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id string) (*inbound.RecipeDTO, error) {
	entity, err := s.recipeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.NewRecipeNotFoundError(id)
	}
	return inbound.NewRecipeDTO(entity), nil
}

// GetRecipeBySlug returns a recipe by its URL slug
func (s *RecipeService) GetRecipeBySlug(ctx context.Context, slug string) (*inbound.RecipeDTO, error) {
	entity, err := s.recipeRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, errors.NewRecipeNotFoundError(slug)
	}
	return inbound.NewRecipeDTO(entity), nil
}

// ListRecipes returns a page of published recipes
func (s *RecipeService) ListRecipes(ctx context.Context, params inbound.PaginationParams) (*inbound.RecipeList, error) {
	offset, limit := params.Offset()
	recipes, total, err := s.recipeRepo.FindByStatus(ctx, recipe.StatusPublished, offset, limit)
	if err != nil {
		return nil, errors.NewDatabaseError("list recipes", err)
	}
	return s.toList(recipes, total, params), nil
}

// SearchRecipes searches published content by free text
func (s *RecipeService) SearchRecipes(ctx context.Context, query string, params inbound.PaginationParams) (*inbound.RecipeList, error) {
	offset, limit := params.Offset()
	recipes, total, err := s.recipeRepo.Search(ctx, query, offset, limit)
	if err != nil {
		return nil, errors.NewDatabaseError("search recipes", err)
	}
	return s.toList(recipes, total, params), nil
}

// ListByCategory returns the recipes whose tags associate with a category.
// Association is the fuzzy tag heuristic, not a foreign key, so the page
// is assembled in memory from the full published set.
func (s *RecipeService) ListByCategory(ctx context.Context, categoryID string, params inbound.PaginationParams) (*inbound.RecipeList, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.NewDatabaseError("list categories", err)
	}

	var cat *category.Category
	for i := range categories {
		if categories[i].ID == categoryID {
			cat = &categories[i]
			break
		}
	}
	if cat == nil {
		return nil, errors.NewNotFoundError("category")
	}

	all, err := s.recipeRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.NewDatabaseError("list recipes", err)
	}

	var matched []*recipe.Recipe
	for _, r := range all {
		if r.Status() == recipe.StatusPublished && cat.MatchesTags(r.Tags()) {
			matched = append(matched, r)
		}
	}

	offset, limit := params.Offset()
	total := len(matched)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	return s.toList(matched[offset:end], total, params), nil
}

// ListCategories returns all browsing categories
func (s *RecipeService) ListCategories(ctx context.Context) ([]category.Category, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.NewDatabaseError("list categories", err)
	}
	return categories, nil
}

// SaveCategories replaces the category list
func (s *RecipeService) SaveCategories(ctx context.Context, categories []category.Category) error {
	if err := s.categoryRepo.SaveAll(ctx, categories); err != nil {
		return errors.NewDatabaseError("save categories", err)
	}
	return nil
}

// IsFavorite reports whether a visitor favorited a recipe
func (s *RecipeService) IsFavorite(ctx context.Context, visitorID, recipeID string) (bool, error) {
	members, err := s.cache.SMembers(ctx, favoritesKeyPrefix+visitorID)
	if err != nil {
		return false, err
	}
	for _, m := range members {
		if m == recipeID {
			return true, nil
		}
	}
	return false, nil
}

// ToggleFavorite flips a recipe in the visitor's favorites set and
// returns the new state
func (s *RecipeService) ToggleFavorite(ctx context.Context, visitorID, recipeID string) (bool, error) {
	key := favoritesKeyPrefix + visitorID

	favorited, err := s.IsFavorite(ctx, visitorID, recipeID)
	if err != nil {
		return false, err
	}

	if favorited {
		if err := s.cache.SRem(ctx, key, recipeID); err != nil {
			return false, err
		}
		return false, nil
	}

	if err := s.cache.SAdd(ctx, key, recipeID); err != nil {
		return false, err
	}
	return true, nil
}

// ListFavorites returns the visitor's favorited recipes. Ids whose recipe
// was deleted are dropped silently.
func (s *RecipeService) ListFavorites(ctx context.Context, visitorID string) ([]*inbound.RecipeDTO, error) {
	ids, err := s.cache.SMembers(ctx, favoritesKeyPrefix+visitorID)
	if err != nil {
		return nil, err
	}

	recipes, err := s.recipeRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, errors.NewDatabaseError("load favorites", err)
	}

	dtos := make([]*inbound.RecipeDTO, len(recipes))
	for i, r := range recipes {
		dtos[i] = inbound.NewRecipeDTO(r)
	}
	return dtos, nil
}

func (s *RecipeService) toList(recipes []*recipe.Recipe, total int, params inbound.PaginationParams) *inbound.RecipeList {
	items := make([]*inbound.RecipeDTO, len(recipes))
	for i, r := range recipes {
		items[i] = inbound.NewRecipeDTO(r)
	}

	page := params.Page
	if page < 1 {
		page = 1
	}
	_, size := params.Offset()

	return &inbound.RecipeList{Items: items, Total: total, Page: page, Size: size}
}

// applyCommand copies the editable command fields onto the aggregate
func applyCommand(entity *recipe.Recipe, cmd inbound.SaveRecipeCommand) error {
	entity.SetStory(cmd.Story)
	entity.SetTimings(recipe.Timings{Prep: cmd.PrepTime, Cook: cmd.CookTime, Total: cmd.TotalTime})

	ingredients := make([]recipe.Ingredient, len(cmd.Ingredients))
	for i, ing := range cmd.Ingredients {
		ingredients[i] = recipe.Ingredient{
			Item:         ing.Item,
			Amount:       ing.Amount,
			Note:         ing.Note,
			PurchaseLink: ing.PurchaseLink,
		}
	}
	if len(ingredients) > 0 {
		if err := entity.SetIngredients(ingredients); err != nil {
			return err
		}
	}
	if len(cmd.Steps) > 0 {
		if err := entity.SetSteps(cmd.Steps); err != nil {
			return err
		}
	}

	entity.SetNutrition(recipe.Nutrition{
		Calories: cmd.Nutrition.Calories,
		Protein:  cmd.Nutrition.Protein,
		Carbs:    cmd.Nutrition.Carbs,
		Fat:      cmd.Nutrition.Fat,
	})
	entity.SetImage(cmd.ImageURL)
	entity.SetVideo(cmd.VideoURL)

	affiliates := make([]recipe.Affiliate, len(cmd.Affiliates))
	for i, a := range cmd.Affiliates {
		affiliates[i] = recipe.Affiliate{Name: a.Name, URL: a.URL, Price: a.Price, Image: a.Image}
	}
	if err := entity.SetAffiliates(affiliates); err != nil {
		return err
	}

	entity.SetTags(cmd.Tags)
	entity.SetTips(cmd.Tips)
	entity.SetPairing(cmd.Pairing)

	faq := make([]recipe.FAQ, len(cmd.FAQ))
	for i, f := range cmd.FAQ {
		faq[i] = recipe.FAQ{Question: f.Question, Answer: f.Answer}
	}
	entity.SetFAQ(faq)

	return nil
}

package gorm

import (
	"context"
	"errors"
	"strings"

	gormlib "gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/receitario/v1/internal/domain/recipe"
	"github.com/receitario/v1/internal/ports/outbound"
)

// RecipeRepository implements the recipe repository interface using GORM
type RecipeRepository struct {
	db *gormlib.DB
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *gormlib.DB) outbound.RecipeRepository {
	return &RecipeRepository{db: db}
}

// Save creates or replaces a recipe wholesale. Saves are last write wins;
// there is no optimistic locking.
func (r *RecipeRepository) Save(ctx context.Context, rec *recipe.Recipe) error {
	model, err := RecipeToModel(rec)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(model)
	return result.Error
}

// Delete removes a recipe by ID
func (r *RecipeRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&RecipeModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return recipe.ErrRecipeNotFound
	}
	return nil
}

// FindByID finds a recipe by ID
func (r *RecipeRepository) FindByID(ctx context.Context, id string) (*recipe.Recipe, error) {
	var model RecipeModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gormlib.ErrRecordNotFound) {
			return nil, recipe.ErrRecipeNotFound
		}
		return nil, result.Error
	}
	return ModelToRecipe(&model)
}

// FindBySlug finds a recipe by slug. Duplicate slugs are not constrained;
// the newest wins, matching how the site resolves URLs.
func (r *RecipeRepository) FindBySlug(ctx context.Context, slug string) (*recipe.Recipe, error) {
	var model RecipeModel
	result := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		Order("created_at DESC").
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gormlib.ErrRecordNotFound) {
			return nil, recipe.ErrRecipeNotFound
		}
		return nil, result.Error
	}
	return ModelToRecipe(&model)
}

// FindAll returns every recipe, newest first
func (r *RecipeRepository) FindAll(ctx context.Context) ([]*recipe.Recipe, error) {
	var models []RecipeModel
	result := r.db.WithContext(ctx).Order("created_at DESC").Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	return r.toRecipes(models)
}

// FindPaginated returns a page of recipes with the total count
func (r *RecipeRepository) FindPaginated(ctx context.Context, offset, limit int) ([]*recipe.Recipe, int, error) {
	return r.findPage(ctx, r.db.WithContext(ctx).Model(&RecipeModel{}), offset, limit)
}

// FindByStatus returns a page of recipes in the given lifecycle status
func (r *RecipeRepository) FindByStatus(ctx context.Context, status recipe.Status, offset, limit int) ([]*recipe.Recipe, int, error) {
	query := r.db.WithContext(ctx).Model(&RecipeModel{}).Where("status = ?", string(status))
	return r.findPage(ctx, query, offset, limit)
}

// Search matches title, description and tags case-insensitively
func (r *RecipeRepository) Search(ctx context.Context, query string, offset, limit int) ([]*recipe.Recipe, int, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	q := r.db.WithContext(ctx).Model(&RecipeModel{}).
		Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(tags) LIKE ?",
			pattern, pattern, pattern)
	return r.findPage(ctx, q, offset, limit)
}

// FindByIDs returns the recipes for the given ids, preserving input order.
// Missing ids are skipped silently.
func (r *RecipeRepository) FindByIDs(ctx context.Context, ids []string) ([]*recipe.Recipe, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var models []RecipeModel
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	byID := make(map[string]*RecipeModel, len(models))
	for i := range models {
		byID[models[i].ID] = &models[i]
	}

	recipes := make([]*recipe.Recipe, 0, len(ids))
	for _, id := range ids {
		model, ok := byID[id]
		if !ok {
			continue
		}
		rec, err := ModelToRecipe(model)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, rec)
	}
	return recipes, nil
}

func (r *RecipeRepository) findPage(ctx context.Context, query *gormlib.DB, offset, limit int) ([]*recipe.Recipe, int, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []RecipeModel
	result := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	recipes, err := r.toRecipes(models)
	if err != nil {
		return nil, 0, err
	}
	return recipes, int(total), nil
}

func (r *RecipeRepository) toRecipes(models []RecipeModel) ([]*recipe.Recipe, error) {
	recipes := make([]*recipe.Recipe, len(models))
	for i := range models {
		rec, err := ModelToRecipe(&models[i])
		if err != nil {
			return nil, err
		}
		recipes[i] = rec
	}
	return recipes, nil
}

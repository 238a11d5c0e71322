package recipe

import "errors"

// Domain errors for recipe operations

var (
	// Entity validation errors
	ErrTitleTooShort      = errors.New("recipe title must be at least 3 characters")
	ErrTitleTooLong       = errors.New("recipe title must not exceed 200 characters")
	ErrDescriptionTooLong = errors.New("recipe description must not exceed 2000 characters")
	ErrNoIngredients      = errors.New("recipe must have at least one ingredient")
	ErrNoSteps            = errors.New("recipe must have at least one step")
	ErrEmptyIngredient    = errors.New("ingredient item is required")
	ErrEmptyModification  = errors.New("remix modification is required")

	// State transition errors
	ErrInvalidStatusTransition = errors.New("invalid recipe status transition")
	ErrRecipeNotFound          = errors.New("recipe not found")
	ErrRecipeAlreadyPublished  = errors.New("recipe is already published")
	ErrRecipeArchived          = errors.New("cannot modify archived recipe")
)

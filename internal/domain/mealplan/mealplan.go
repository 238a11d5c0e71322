// Package mealplan contains diet plan templates and the applied weekly
// meal plans they produce.
package mealplan

// Day keys match the diet plan structure stored in the content store.
var DayOrder = []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}

// DaySlots holds the free-text meal queries for one day of a diet plan.
// Queries are resolved against the recipe catalog at apply time, not
// stored as references.
type DaySlots struct {
	LunchQuery  string
	DinnerQuery string
}

// DietPlan is a week-shaped template of meal queries.
type DietPlan struct {
	ID          string
	Title       string
	Description string
	Duration    string
	Level       string
	Goal        string
	ImageURL    string
	Structure   map[string]DaySlots
}

// MealSlot is a denormalized snapshot of the recipe a slot resolved to.
// It survives independently of later recipe mutation or deletion. A
// placeholder slot has an empty RecipeID and a stock image.
type MealSlot struct {
	RecipeID    string
	RecipeTitle string
	RecipeImage string
}

// IsPlaceholder reports whether the slot was filled with a placeholder
// because no recipe matched its query.
func (s MealSlot) IsPlaceholder() bool {
	return s.RecipeID == ""
}

// DayMeals holds the resolved slots for one day of an applied plan.
type DayMeals struct {
	Lunch  *MealSlot
	Dinner *MealSlot
}

// MealPlan is an applied diet plan for one week.
type MealPlan struct {
	WeekID string
	Days   map[string]DayMeals
}

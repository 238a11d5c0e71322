package testutils

import (
	"github.com/brianvoe/gofakeit/v6"

	"github.com/receitario/v1/internal/domain/recipe"
	"github.com/receitario/v1/internal/ports/outbound"
)

// RecipeFactory builds domain recipes with realistic filler content.
type RecipeFactory struct {
	faker *gofakeit.Faker
}

// NewRecipeFactory creates a factory with a seeded faker so tests stay
// deterministic.
func NewRecipeFactory(seed int64) *RecipeFactory {
	return &RecipeFactory{faker: gofakeit.New(seed)}
}

// Draft builds a complete draft recipe with the given title.
func (f *RecipeFactory) Draft(title string) *recipe.Recipe {
	r, err := recipe.NewRecipe(title, f.faker.Sentence(8))
	if err != nil {
		panic(err)
	}
	_ = r.SetIngredients([]recipe.Ingredient{
		{Item: f.faker.Fruit(), Amount: "2 xícaras"},
		{Item: f.faker.Vegetable(), Amount: "1 unidade"},
	})
	_ = r.SetSteps([]string{
		"Misture os ingredientes secos.",
		"Asse por 40 minutos.",
	})
	r.SetImage("https://cdn.example.com/" + f.faker.UUID() + ".jpg")
	return r
}

// Published builds a published recipe with the given title and tags.
func (f *RecipeFactory) Published(title string, tags ...string) *recipe.Recipe {
	r := f.Draft(title)
	for _, tag := range tags {
		r.AddTag(tag)
	}
	if err := r.Publish(); err != nil {
		panic(err)
	}
	return r
}

// GeneratedRecipe builds a plausible AI provider response for a dish.
func GeneratedRecipe(title string) *outbound.GeneratedRecipe {
	return &outbound.GeneratedRecipe{
		Title:       title,
		Description: "Uma receita deliciosa de " + title + ".",
		Story:       "Essa receita vem da cozinha da vovó.",
		PrepTime:    "20 minutos",
		CookTime:    "40 minutos",
		TotalTime:   "1 hora",
		Ingredients: []outbound.GeneratedIngredient{
			{Item: "farinha de trigo", Amount: "2 xícaras"},
			{Item: "ovos", Amount: "3 unidades"},
		},
		Steps:     []string{"Misture tudo.", "Asse até dourar."},
		Nutrition: outbound.GeneratedNutrition{Calories: 320, Protein: "6g", Carbs: "45g", Fat: "12g"},
		Tags:      []string{"bolos", "clássicos"},
		Tips:      "Use ovos em temperatura ambiente.",
		Pairing:   "Café coado na hora.",
		FAQ: []outbound.GeneratedFAQ{
			{Question: "Posso congelar?", Answer: "Sim, por até três meses."},
		},
		VisualDescription: "Close-up photo of " + title + " on a rustic table",
		Utensils:          []string{"batedeira", "forma redonda"},
	}
}

// GeneratedStory builds a valid five-slide story response.
func GeneratedStory(title string) *outbound.GeneratedStory {
	slides := make([]outbound.GeneratedSlide, 5)
	for i := range slides {
		slides[i] = outbound.GeneratedSlide{
			Type:         "content",
			Layout:       "fill",
			Text:         gofakeit.Sentence(6),
			VisualPrompt: "food photo " + gofakeit.Word(),
		}
	}
	slides[0].Type = "cover"
	slides[0].Text = title
	return &outbound.GeneratedStory{Title: title, Slides: slides}
}

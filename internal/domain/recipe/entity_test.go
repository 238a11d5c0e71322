package recipe

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecipe_SlugForm(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Pão de Queijo Mineiro", "pao-de-queijo-mineiro"},
		{"Feijoada Completa", "feijoada-completa"},
		{"Açaí na Tigela", "acai-na-tigela"},
		{"Moqueca   Baiana", "moqueca-baiana"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			r, err := NewRecipe(tt.title, "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.Slug())
		})
	}
}

func TestNewRecipe_TitleValidation(t *testing.T) {
	_, err := NewRecipe("ab", "")
	assert.ErrorIs(t, err, ErrTitleTooShort)

	_, err = NewRecipe(strings.Repeat("a", 201), "")
	assert.ErrorIs(t, err, ErrTitleTooLong)
}

func TestPublish_RequiresIngredientsAndSteps(t *testing.T) {
	r, err := NewRecipe("Bolo de Cenoura", "")
	require.NoError(t, err)

	assert.ErrorIs(t, r.Publish(), ErrNoIngredients)

	require.NoError(t, r.SetIngredients([]Ingredient{{Item: "Cenoura", Amount: "3 unidades"}}))
	assert.ErrorIs(t, r.Publish(), ErrNoSteps)

	require.NoError(t, r.SetSteps([]string{"<p>Bata tudo no liquidificador.</p>"}))
	require.NoError(t, r.Publish())

	assert.Equal(t, StatusPublished, r.Status())
	require.NotNil(t, r.PublishedAt())
	assert.ErrorIs(t, r.Publish(), ErrRecipeAlreadyPublished)
}

func TestArchive_OnlyFromPublished(t *testing.T) {
	r, err := NewRecipe("Caldo Verde", "")
	require.NoError(t, err)

	assert.ErrorIs(t, r.Archive(), ErrInvalidStatusTransition)

	require.NoError(t, r.SetIngredients([]Ingredient{{Item: "Couve", Amount: "1 maço"}}))
	require.NoError(t, r.SetSteps([]string{"Refogue a couve."}))
	require.NoError(t, r.Publish())
	require.NoError(t, r.Archive())
	assert.Equal(t, StatusArchived, r.Status())
}

func TestRemix_DerivedIdentityAndTags(t *testing.T) {
	r, err := NewRecipe("Lasanha à Bolonhesa", "Clássico de domingo")
	require.NoError(t, err)
	require.NoError(t, r.SetIngredients([]Ingredient{{Item: "Massa", Amount: "500g"}}))
	require.NoError(t, r.SetSteps([]string{"Monte as camadas."}))
	r.SetTags([]string{"massas"})

	remix, err := r.Remix("sem lactose")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(remix.ID(), r.ID()+"-remix-"))
	assert.True(t, strings.HasPrefix(remix.Slug(), r.Slug()+"-remix-"))

	assert.Equal(t, StatusDraft, remix.Status())
	assert.Contains(t, remix.Tags(), "sem lactose")
	assert.Contains(t, remix.Tags(), "Remix")
	assert.Contains(t, remix.Tags(), "massas")
	assert.Equal(t, r.Ingredients(), remix.Ingredients())
}

func TestRemix_EmptyModification(t *testing.T) {
	r, err := NewRecipe("Brigadeiro", "")
	require.NoError(t, err)

	_, err = r.Remix("")
	assert.ErrorIs(t, err, ErrEmptyModification)
}

func TestAddTag_Deduplicates(t *testing.T) {
	r, err := NewRecipe("Coxinha", "")
	require.NoError(t, err)

	r.AddTag("salgados")
	r.AddTag("salgados")
	assert.Equal(t, []string{"salgados"}, r.Tags())
}

func TestRename_RegeneratesSlug(t *testing.T) {
	r, err := NewRecipe("Pudim", "")
	require.NoError(t, err)

	require.NoError(t, r.Rename("Pudim de Leite Condensado"))
	assert.Equal(t, "pudim-de-leite-condensado", r.Slug())
}

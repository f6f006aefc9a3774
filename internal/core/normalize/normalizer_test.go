package normalize

import (
	"strings"
	"testing"

	"recipe-composer/internal/core/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	ds, err := dataset.LoadEmbedded()
	require.NoError(t, err)
	return New(ds)
}

func TestNormalizeIngredientMode(t *testing.T) {
	n := newTestNormalizer(t)

	result := n.Normalize("chicken rice garlic spinach")
	assert.Equal(t, []string{"chicken", "rice", "garlic", "spinach"}, result.Ingredients)
	assert.Empty(t, result.Excluded)
	assert.Empty(t, result.Unknown)
}

func TestNormalizeDishAlias(t *testing.T) {
	n := newTestNormalizer(t)

	tests := []struct {
		name  string
		input string
	}{
		{"dish name", "butter chicken"},
		{"hindi alias", "murgh makhani"},
		{"case insensitive", "Butter Chicken"},
		{"canonical key", "butter_chicken"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := n.Normalize(tt.input)
			assert.Equal(t, []string{"butter_chicken"}, result.Ingredients)
		})
	}
}

func TestNormalizeNegation(t *testing.T) {
	n := newTestNormalizer(t)

	tests := []struct {
		name     string
		input    string
		want     []string
		excluded []string
	}{
		{"leading no", "paneer rice no onion", []string{"paneer", "rice"}, []string{"onion"}},
		{"without marker", "chicken without garlic", []string{"chicken"}, []string{"garlic"}},
		{"excluded wins over implied", "onion rice no onion", []string{"rice"}, []string{"onion"}},
		{"skip marker", "dal tadka skip ghee", []string{"dal_tadka"}, []string{"ghee"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := n.Normalize(tt.input)
			assert.Equal(t, tt.want, result.Ingredients)
			assert.Equal(t, tt.excluded, result.Excluded)
		})
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	n := newTestNormalizer(t)

	for _, input := range []string{"", "   ", "\t\n"} {
		result := n.Normalize(input)
		require.NotNil(t, result)
		assert.Empty(t, result.Ingredients)
		assert.Empty(t, result.Excluded)
	}
}

func TestNormalizeCommaSegments(t *testing.T) {
	n := newTestNormalizer(t)

	result := n.Normalize("paneer, butter chicken, spinach")
	assert.Equal(t, []string{"paneer", "butter_chicken", "spinach"}, result.Ingredients)
}

func TestNormalizeDeduplication(t *testing.T) {
	n := newTestNormalizer(t)

	// 首次出現者優先，順序不變
	result := n.Normalize("rice chicken rice spinach chicken")
	assert.Equal(t, []string{"rice", "chicken", "spinach"}, result.Ingredients)
}

func TestNormalizePluralsAndVariants(t *testing.T) {
	n := newTestNormalizer(t)

	tests := []struct {
		input string
		want  string
	}{
		{"tomatoes", "tomato"},
		{"onions", "onion"},
		{"chiken", "chicken"},
		{"palak", "spinach"},
	}

	for _, tt := range tests {
		result := n.Normalize(tt.input)
		require.Len(t, result.Ingredients, 1, "input %q", tt.input)
		assert.Equal(t, tt.want, result.Ingredients[0])
	}
}

func TestNormalizeUnknownTokenLenient(t *testing.T) {
	n := newTestNormalizer(t)

	result := n.Normalize("chicken dragonfruit")
	assert.Equal(t, []string{"chicken", "dragonfruit"}, result.Ingredients)
	assert.Equal(t, []string{"dragonfruit"}, result.Unknown)
}

func TestNormalizeSuggestions(t *testing.T) {
	n := newTestNormalizer(t)

	result := n.Normalize("onio")
	require.Len(t, result.Unknown, 1)
	require.NotEmpty(t, result.Suggestions)
	assert.Contains(t, result.Suggestions[0].Candidates, "onion")
}

func TestNormalizeSignals(t *testing.T) {
	n := newTestNormalizer(t)

	t.Run("goal and time", func(t *testing.T) {
		result := n.Normalize("chicken salad to lose weight under 30 minutes")
		assert.Equal(t, "weight_loss", result.Signals.Goal)
		assert.Equal(t, 30, result.Signals.MaxPrepTime)
	})

	t.Run("vegan not shadowed by vegetarian", func(t *testing.T) {
		result := n.Normalize("vegan dinner with tofu")
		assert.Equal(t, "vegan", result.Signals.Dietary)
		assert.Equal(t, "dinner", result.Signals.MealType)
	})

	t.Run("gluten free", func(t *testing.T) {
		result := n.Normalize("gluten-free breakfast with eggs")
		assert.Equal(t, "gluten_free", result.Signals.Dietary)
		assert.Equal(t, "breakfast", result.Signals.MealType)
	})

	t.Run("signals stay in ingredient stream", func(t *testing.T) {
		result := n.Normalize("high protein chicken")
		assert.Equal(t, "muscle_gain", result.Signals.Goal)
		assert.Contains(t, result.Ingredients, "chicken")
	})
}

func TestNormalizeIdempotent(t *testing.T) {
	n := newTestNormalizer(t)

	inputs := []string{
		"chicken rice garlic spinach",
		"butter chicken",
		"paneer, palak, jeera",
	}

	for _, input := range inputs {
		first := n.Normalize(input)
		second := n.Normalize(strings.Join(first.Ingredients, " "))
		assert.Equal(t, first.Ingredients, second.Ingredients, "input %q", input)
	}
}

func TestDetectMismatch(t *testing.T) {
	n := newTestNormalizer(t)

	t.Run("dish in ingredient mode", func(t *testing.T) {
		parsed := n.Normalize("butter chicken")
		m := n.DetectMismatch(parsed, ModeIngredients)
		require.NotNil(t, m)
		assert.True(t, m.Mismatch)
		assert.GreaterOrEqual(t, m.Confidence, 0.65)
	})

	t.Run("ingredients in dish mode", func(t *testing.T) {
		parsed := n.Normalize("chicken rice garlic spinach onion")
		m := n.DetectMismatch(parsed, ModeDish)
		require.NotNil(t, m)
		assert.True(t, m.Mismatch)
		assert.GreaterOrEqual(t, m.Confidence, 0.65)
	})

	t.Run("matching mode", func(t *testing.T) {
		parsed := n.Normalize("chicken rice")
		assert.Nil(t, n.DetectMismatch(parsed, ModeIngredients))

		dish := n.Normalize("palak paneer")
		assert.Nil(t, n.DetectMismatch(dish, ModeDish))
	})

	t.Run("empty parse", func(t *testing.T) {
		assert.Nil(t, n.DetectMismatch(n.Normalize(""), ModeIngredients))
	})
}

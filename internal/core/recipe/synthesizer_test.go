package recipe

import (
	"testing"

	"recipe-composer/internal/core/dataset"
	"recipe-composer/internal/core/knowledge"
	"recipe-composer/internal/core/normalize"
	"recipe-composer/internal/core/nutrition"
	"recipe-composer/internal/core/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSynthesizer(t *testing.T) *Synthesizer {
	t.Helper()
	ds, err := dataset.LoadEmbedded()
	require.NoError(t, err)
	nut := nutrition.NewAggregator(ds)
	price := pricing.NewAggregator(ds, nut)
	know := knowledge.NewService(ds)
	return NewSynthesizer(ds, nut, price, know, Defaults{})
}

func portionItems(rec *Recipe) []string {
	items := make([]string, len(rec.Ingredients))
	for i, p := range rec.Ingredients {
		items[i] = p.Item
	}
	return items
}

func TestSynthesizeBasic(t *testing.T) {
	s := newTestSynthesizer(t)

	rec := s.Synthesize(Context{Ingredients: []string{"chicken", "rice", "spinach"}})
	require.NotNil(t, rec)

	assert.NotEmpty(t, rec.Title)
	assert.NotEmpty(t, rec.Description)
	assert.NotEmpty(t, rec.Steps)
	assert.Equal(t, []string{"chicken", "rice", "spinach"}, portionItems(rec))
	require.NotNil(t, rec.Health)
	assert.GreaterOrEqual(t, rec.Health.Score, 0.0)
	assert.LessOrEqual(t, rec.Health.Score, 100.0)
	require.NotNil(t, rec.Cost)
	assert.Greater(t, rec.Cost.TotalPerServing, 0.0)
	assert.Greater(t, rec.PrepMinutes, 0)
	assert.False(t, rec.IsOptimized)
}

func TestSynthesizeEmptyInput(t *testing.T) {
	s := newTestSynthesizer(t)
	assert.Nil(t, s.Synthesize(Context{}))
}

func TestSynthesizeDishExpansion(t *testing.T) {
	s := newTestSynthesizer(t)

	rec := s.Synthesize(Context{Ingredients: []string{"butter_chicken"}})
	require.NotNil(t, rec)

	assert.Equal(t, []string{"chicken", "tomato", "butter", "cream", "ginger", "garlic", "cardamom"}, portionItems(rec))
	assert.Equal(t, "butter_chicken", rec.DishKey)
	require.NotNil(t, rec.DishMeta)
	assert.Equal(t, rec.DishMeta.PrepMinutes, rec.PrepMinutes)
}

func TestSynthesizeMixedDishAndIngredients(t *testing.T) {
	s := newTestSynthesizer(t)

	rec := s.Synthesize(Context{Ingredients: []string{"oats_porridge", "banana"}})
	require.NotNil(t, rec)

	items := portionItems(rec)
	assert.Contains(t, items, "oats")
	assert.Contains(t, items, "banana")
	// 多項輸入不視為單一菜餚
	assert.Empty(t, rec.DishKey)
}

func TestSynthesizeExclusion(t *testing.T) {
	s := newTestSynthesizer(t)

	rec := s.Synthesize(Context{
		Ingredients: []string{"butter_chicken"},
		Excluded:    []string{"cream"},
	})
	require.NotNil(t, rec)
	assert.NotContains(t, portionItems(rec), "cream")

	// 排除的食材不得進入營養總和
	withCream := s.Synthesize(Context{Ingredients: []string{"butter_chicken"}})
	assert.Less(t, rec.Nutrition.Totals.Fat, withCream.Nutrition.Totals.Fat)
}

func TestSynthesizeDietaryFilter(t *testing.T) {
	s := newTestSynthesizer(t)

	t.Run("vegan removes dairy and meat", func(t *testing.T) {
		rec := s.Synthesize(Context{
			Ingredients: []string{"chicken", "milk", "spinach", "rice"},
			Dietary:     "vegan",
		})
		require.NotNil(t, rec)
		assert.Equal(t, []string{"spinach", "rice"}, portionItems(rec))
	})

	t.Run("vegetarian keeps dairy", func(t *testing.T) {
		rec := s.Synthesize(Context{
			Ingredients: []string{"chicken", "milk", "spinach"},
			Dietary:     "vegetarian",
		})
		require.NotNil(t, rec)
		assert.Equal(t, []string{"milk", "spinach"}, portionItems(rec))
	})

	t.Run("gluten free drops grain denylist", func(t *testing.T) {
		rec := s.Synthesize(Context{
			Ingredients: []string{"wheat_flour", "chicken", "spinach"},
			Dietary:     "gluten_free",
		})
		require.NotNil(t, rec)
		assert.NotContains(t, portionItems(rec), "wheat_flour")
	})

	t.Run("sole ingredient filtered out", func(t *testing.T) {
		rec := s.Synthesize(Context{
			Ingredients: []string{"milk"},
			Dietary:     "vegan",
		})
		assert.Nil(t, rec)
	})
}

func TestSynthesizeGoalAdjustment(t *testing.T) {
	s := newTestSynthesizer(t)
	ingredients := []string{"chicken", "rice", "spinach"}

	balanced := s.Synthesize(Context{Ingredients: ingredients, Goal: "balanced"})
	weightLoss := s.Synthesize(Context{Ingredients: ingredients, Goal: "weight_loss"})
	muscleGain := s.Synthesize(Context{Ingredients: ingredients, Goal: "muscle_gain"})
	require.NotNil(t, balanced)
	require.NotNil(t, weightLoss)
	require.NotNil(t, muscleGain)

	assert.Less(t, weightLoss.Nutrition.Totals.Calories, balanced.Nutrition.Totals.Calories)
	assert.Less(t, weightLoss.Nutrition.Totals.Fat, balanced.Nutrition.Totals.Fat)
	assert.Greater(t, muscleGain.Nutrition.Totals.Protein, balanced.Nutrition.Totals.Protein)
	assert.Greater(t, muscleGain.Nutrition.Totals.Calories, balanced.Nutrition.Totals.Calories)
}

func TestSynthesizeSignalPrecedence(t *testing.T) {
	s := newTestSynthesizer(t)
	ingredients := []string{"chicken", "rice"}

	// 明確參數 > 訊號
	explicit := s.Synthesize(Context{
		Ingredients: ingredients,
		Goal:        "muscle_gain",
		Signals:     signalsWithGoal("weight_loss"),
	})
	require.NotNil(t, explicit)
	assert.Equal(t, "muscle_gain", string(explicit.Goal))

	// 訊號 > 預設
	signal := s.Synthesize(Context{
		Ingredients: ingredients,
		Signals:     signalsWithGoal("weight_loss"),
	})
	require.NotNil(t, signal)
	assert.Equal(t, "weight_loss", string(signal.Goal))

	// 都沒有時落回預設
	fallback := s.Synthesize(Context{Ingredients: ingredients})
	require.NotNil(t, fallback)
	assert.Equal(t, "balanced", string(fallback.Goal))
}

func TestSynthesizeDeterministic(t *testing.T) {
	s := newTestSynthesizer(t)
	ctx := Context{Ingredients: []string{"paneer", "spinach", "rice"}, Goal: "balanced"}

	first := s.Synthesize(ctx)
	second := s.Synthesize(ctx)
	require.NotNil(t, first)

	assert.Equal(t, first, second)
}

func TestSynthesizePrepHeuristic(t *testing.T) {
	s := newTestSynthesizer(t)

	// 無菜餚資訊時：15 分鐘基礎 + 每項 4 分鐘 + 高蛋白主料 5 分鐘
	rec := s.Synthesize(Context{Ingredients: []string{"chicken", "rice", "spinach"}})
	require.NotNil(t, rec)
	assert.Equal(t, 15+4*3+5, rec.PrepMinutes)

	noProtein := s.Synthesize(Context{Ingredients: []string{"rice", "spinach"}})
	require.NotNil(t, noProtein)
	assert.Equal(t, 15+4*2, noProtein.PrepMinutes)
}

func signalsWithGoal(goal string) normalize.Signals {
	return normalize.Signals{Goal: goal}
}

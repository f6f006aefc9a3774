package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOptimizer(t *testing.T) *Optimizer {
	t.Helper()
	return NewOptimizer(newTestSynthesizer(t))
}

func TestOptimizeEmptyInput(t *testing.T) {
	o := newTestOptimizer(t)
	assert.Nil(t, o.Optimize(Context{}, 0))
}

func TestOptimizeAnnotatesRecipe(t *testing.T) {
	o := newTestOptimizer(t)

	rec := o.Optimize(Context{Ingredients: []string{"spinach", "tomato"}}, 0)
	require.NotNil(t, rec)

	// 無可替換候選時仍標註為已最佳化，變更清單為空
	assert.True(t, rec.IsOptimized)
	require.NotNil(t, rec.Optimization)
	assert.Empty(t, rec.Optimization.Changes)
	assert.InDelta(t, rec.Optimization.CostBefore, rec.Optimization.CostAfter, 0.001)
}

func TestOptimizeRespectsBudget(t *testing.T) {
	o := newTestOptimizer(t)

	// rice 7.2 + cream 15 = 22.2；上限 20 之下 cream→yogurt 降到 17.2
	rec := o.Optimize(Context{Ingredients: []string{"rice", "cream"}}, 20)
	require.NotNil(t, rec)

	assert.LessOrEqual(t, rec.Cost.TotalPerServing, 20.0)
	require.NotEmpty(t, rec.Optimization.Changes)

	swapped := false
	for _, change := range rec.Optimization.Changes {
		if change.From == "cream" {
			swapped = true
			assert.NotEmpty(t, change.Reason)
		}
	}
	assert.True(t, swapped, "expected a substitution for cream")
	assert.Less(t, rec.Optimization.CostAfter, rec.Optimization.CostBefore)
	assert.Greater(t, rec.Optimization.PercentSaved, 0.0)
}

func TestOptimizeCandidateAlreadyPresent(t *testing.T) {
	o := newTestOptimizer(t)

	// yogurt 已在清單中，cream 的首選候選被跳過
	rec := o.Optimize(Context{Ingredients: []string{"cream", "yogurt"}}, 100)
	require.NotNil(t, rec)

	for _, change := range rec.Optimization.Changes {
		if change.From == "cream" {
			assert.NotEqual(t, "yogurt", change.To)
		}
	}
}

func TestOptimizeFirstAcceptableWins(t *testing.T) {
	o := newTestOptimizer(t)

	// 每項食材最多一筆變更
	rec := o.Optimize(Context{Ingredients: []string{"rice", "cream", "sugar"}}, 0)
	require.NotNil(t, rec)

	seen := make(map[string]int)
	for _, change := range rec.Optimization.Changes {
		seen[change.From]++
	}
	for from, count := range seen {
		assert.Equal(t, 1, count, "ingredient %s substituted more than once", from)
	}
}

func TestOptimizeReproducible(t *testing.T) {
	o := newTestOptimizer(t)
	ctx := Context{Ingredients: []string{"rice", "cream", "butter"}, Goal: "weight_loss"}

	first := o.Optimize(ctx, 50)
	second := o.Optimize(ctx, 50)
	require.NotNil(t, first)

	assert.Equal(t, first, second)
}

func TestOptimizeKeepsDietaryFilter(t *testing.T) {
	o := newTestOptimizer(t)

	rec := o.Optimize(Context{
		Ingredients: []string{"rice", "paneer"},
		Dietary:     "vegetarian",
	}, 0)
	require.NotNil(t, rec)

	for _, p := range rec.Ingredients {
		assert.NotEqual(t, "chicken", p.Item)
	}
}

func TestOptimizeUnchangedWhenNoBudgetPath(t *testing.T) {
	o := newTestOptimizer(t)

	// 上限低到任何清單都超標：所有試算被拒，清單維持原樣
	rec := o.Optimize(Context{Ingredients: []string{"rice", "cream"}}, 0.01)
	require.NotNil(t, rec)
	assert.Equal(t, []string{"rice", "cream"}, portionItems(rec))
	assert.Empty(t, rec.Optimization.Changes)
}

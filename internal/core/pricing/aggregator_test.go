package pricing

import (
	"testing"

	"recipe-composer/internal/core/dataset"
	"recipe-composer/internal/core/nutrition"
	"recipe-composer/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAggregator(t *testing.T) *Aggregator {
	t.Helper()
	ds, err := dataset.LoadEmbedded()
	require.NoError(t, err)
	return NewAggregator(ds, nutrition.NewAggregator(ds))
}

func TestPriceBreakdownNonNegative(t *testing.T) {
	agg := newTestAggregator(t)

	breakdown := agg.ComputePriceBreakdown([]string{"chicken", "rice", "spinach"}, "india")
	require.Len(t, breakdown.Items, 3)
	assert.Greater(t, breakdown.TotalPerServing, 0.0)
	for _, item := range breakdown.Items {
		assert.GreaterOrEqual(t, item.CostPerServing, 0.0)
	}
}

func TestUnknownIngredientNotFree(t *testing.T) {
	agg := newTestAggregator(t)

	// 未知食材給小額預設價，避免大量未知項造成假性便宜
	breakdown := agg.ComputePriceBreakdown([]string{"mystery_item"}, "india")
	require.Len(t, breakdown.Items, 1)
	assert.Greater(t, breakdown.Items[0].CostPerServing, 0.0)
	assert.Greater(t, breakdown.TotalPerServing, 0.0)
}

func TestLocationScaling(t *testing.T) {
	agg := newTestAggregator(t)

	india := agg.ComputePriceBreakdown([]string{"rice"}, "india")
	usa := agg.ComputePriceBreakdown([]string{"rice"}, "usa")

	assert.Equal(t, "INR", india.Currency)
	assert.Equal(t, "USD", usa.Currency)
	assert.Less(t, usa.TotalPerServing, india.TotalPerServing)

	// 未知地區回退基準地區
	fallback := agg.ComputePriceBreakdown([]string{"rice"}, "atlantis")
	assert.Equal(t, "INR", fallback.Currency)
	assert.InDelta(t, india.TotalPerServing, fallback.TotalPerServing, 0.001)
}

func TestBudgetTierIndependentOfLocation(t *testing.T) {
	agg := newTestAggregator(t)

	india := agg.ComputePriceBreakdown([]string{"chicken", "rice"}, "india")
	usa := agg.ComputePriceBreakdown([]string{"chicken", "rice"}, "usa")

	// 級距以基準幣別判斷，不因地區係數改變
	assert.Equal(t, india.Tier, usa.Tier)
}

func TestBudgetTiers(t *testing.T) {
	agg := newTestAggregator(t)

	cheap := agg.ComputePriceBreakdown([]string{"rice"}, "india")
	assert.Equal(t, common.BudgetTierBudget, cheap.Tier)

	premium := agg.ComputePriceBreakdown([]string{"saffron", "prawns", "almonds"}, "india")
	assert.Equal(t, common.BudgetTierPremium, premium.Tier)
}

func TestVolatilityWarnings(t *testing.T) {
	agg := newTestAggregator(t)

	breakdown := agg.ComputePriceBreakdown([]string{"fish", "rice"}, "india")
	require.Len(t, breakdown.Warnings, 1)
	assert.Equal(t, "fish", breakdown.Warnings[0].Item)

	stable := agg.ComputePriceBreakdown([]string{"rice", "spinach"}, "india")
	assert.Empty(t, stable.Warnings)
}

func TestRawCostMatchesBasePrices(t *testing.T) {
	agg := newTestAggregator(t)

	// rice 120g × ₹6/100g = 7.2
	assert.InDelta(t, 7.2, agg.RawCost([]string{"rice"}), 0.001)

	// 未知食材 80g × ₹10/100g = 8
	assert.InDelta(t, 8.0, agg.RawCost([]string{"no_such_item"}), 0.001)
}

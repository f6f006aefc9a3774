package dataset

import (
	"errors"
	"strings"
	"testing"

	"recipe-composer/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbedded(t *testing.T) {
	ds, err := LoadEmbedded()
	require.NoError(t, err)
	require.NotNil(t, ds)

	assert.NotEmpty(t, ds.Version())

	profile, ok := ds.Nutrition("chicken")
	require.True(t, ok)
	assert.Equal(t, DietNonVeg, profile.Dietary)
	assert.Greater(t, profile.Protein, 15.0)

	_, ok = ds.Nutrition("unobtainium")
	assert.False(t, ok)

	cost, ok := ds.Cost("rice")
	require.True(t, ok)
	assert.Greater(t, cost.PricePer100, 0.0)
}

func TestDishExpansion(t *testing.T) {
	ds, err := LoadEmbedded()
	require.NoError(t, err)

	dish, ok := ds.Dish("butter_chicken")
	require.True(t, ok)
	assert.Equal(t, []string{"chicken", "tomato", "butter", "cream", "ginger", "garlic", "cardamom"}, dish.Ingredients)
	assert.NotEmpty(t, dish.Metadata.Cuisine)

	// 別名與菜餚鍵本身都要能以空格形式命中
	key, ok := ds.ResolvePhrase("butter chicken")
	require.True(t, ok)
	assert.Equal(t, "butter_chicken", key)

	key, ok = ds.ResolvePhrase("murgh makhani")
	require.True(t, ok)
	assert.Equal(t, "butter_chicken", key)
}

func TestLocationFallback(t *testing.T) {
	ds, err := LoadEmbedded()
	require.NoError(t, err)

	loc := ds.Location("mars")
	assert.Equal(t, "india", loc.Key)
	assert.Equal(t, 1.0, loc.Factor)
	assert.Equal(t, "INR", loc.Currency)

	usa := ds.Location("USA")
	assert.Equal(t, "usa", usa.Key)
	assert.Equal(t, "USD", usa.Currency)
}

func TestPhraseScanOrder(t *testing.T) {
	ds, err := LoadEmbedded()
	require.NoError(t, err)

	order := ds.PhraseScanOrder()
	require.NotEmpty(t, order)

	// 詞數遞減，同詞數時長度遞減
	for i := 1; i < len(order); i++ {
		prev := strings.Count(order[i-1], " ")
		curr := strings.Count(order[i], " ")
		if prev == curr {
			assert.GreaterOrEqual(t, len(order[i-1]), len(order[i]))
		} else {
			assert.Greater(t, prev, curr)
		}
	}
}

func TestDuplicateKeysAreFatal(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "duplicate nutrition key",
			doc: `{
				"version": "test",
				"nutrition": [
					{"key": "rice", "calories": 130, "dietary": "vegan"},
					{"key": "rice", "calories": 999, "dietary": "vegan"}
				],
				"costs": [], "locations": [], "dishes": [], "substitutions": [],
				"aliases": {"phrases": {}, "variants": {}}
			}`,
		},
		{
			name: "duplicate cost key",
			doc: `{
				"version": "test",
				"nutrition": [{"key": "rice", "calories": 130, "dietary": "vegan"}],
				"costs": [
					{"key": "rice", "price_per_100": 6, "unit": "g"},
					{"key": "rice", "price_per_100": 9, "unit": "g"}
				],
				"locations": [], "dishes": [], "substitutions": [],
				"aliases": {"phrases": {}, "variants": {}}
			}`,
		},
		{
			name: "duplicate dish key",
			doc: `{
				"version": "test",
				"nutrition": [{"key": "rice", "calories": 130, "dietary": "vegan"}],
				"costs": [], "locations": [],
				"dishes": [
					{"key": "pulao", "ingredients": ["rice"], "metadata": {"cuisine": "indian"}},
					{"key": "pulao", "ingredients": ["rice"], "metadata": {"cuisine": "indian"}}
				],
				"substitutions": [],
				"aliases": {"phrases": {}, "variants": {}}
			}`,
		},
		{
			name: "conflicting phrase mapping",
			doc: `{
				"version": "test",
				"nutrition": [{"key": "rice", "calories": 130, "dietary": "vegan"}],
				"costs": [], "locations": [],
				"dishes": [{"key": "pulao", "ingredients": ["rice"], "metadata": {"cuisine": "indian"}}],
				"substitutions": [],
				"aliases": {"phrases": {"pulao": "rice"}, "variants": {}}
			}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, common.ErrDatasetIntegrity), "expected integrity error, got: %v", err)
		})
	}
}

func TestSubstitutionsAreDirectional(t *testing.T) {
	ds, err := LoadEmbedded()
	require.NoError(t, err)

	forward := ds.Substitutions("cream")
	require.NotEmpty(t, forward)

	// A→B 不代表 B→A
	for _, candidate := range forward {
		for _, back := range ds.Substitutions(candidate.Key) {
			assert.NotEqual(t, "cream", back.Key)
		}
	}
}

package pricing

import (
	"recipe-composer/internal/core/dataset"
	"recipe-composer/internal/core/nutrition"
	"recipe-composer/internal/pkg/common"
)

// 未知食材的每 100g 預設基準價，不可為零以免大量未知項造成假性便宜
const unknownBaseCost = 10.0

// ItemCost 單一食材的每份成本
type ItemCost struct {
	Item           string  `json:"item"`
	Grams          float64 `json:"grams"`
	CostPerServing float64 `json:"cost_per_serving"`
}

// VolatilityWarning 價格波動警告，純資訊性不影響評分
type VolatilityWarning struct {
	Item string `json:"item"`
	Note string `json:"note"`
}

// Breakdown 每份成本拆解，與份數無關（呈現層再乘上份數）
type Breakdown struct {
	Items           []ItemCost          `json:"items"`
	TotalPerServing float64             `json:"total_per_serving"`
	Currency        string              `json:"currency"`
	Symbol          string              `json:"symbol"`
	Tier            common.BudgetTier   `json:"tier"`
	Warnings        []VolatilityWarning `json:"warnings,omitempty"`
}

// Aggregator 成本聚合器
type Aggregator struct {
	ds  *dataset.Dataset
	nut *nutrition.Aggregator
}

// NewAggregator 創建成本聚合器
func NewAggregator(ds *dataset.Dataset, nut *nutrition.Aggregator) *Aggregator {
	return &Aggregator{ds: ds, nut: nut}
}

// ComputePriceBreakdown 計算食材清單的每份成本拆解。
// 基準價依估計用量與地區係數縮放；查無價格的食材使用小額預設價。
func (a *Aggregator) ComputePriceBreakdown(ingredients []string, location string) *Breakdown {
	loc := a.ds.Location(location)

	breakdown := &Breakdown{
		Items:    []ItemCost{},
		Currency: loc.Currency,
		Symbol:   loc.Symbol,
	}

	for _, key := range ingredients {
		grams := a.nut.EstimateQuantity(key)

		base := unknownBaseCost
		if entry, ok := a.ds.Cost(key); ok {
			base = entry.PricePer100
			if entry.Volatile {
				breakdown.Warnings = append(breakdown.Warnings, VolatilityWarning{
					Item: key,
					Note: entry.VolatilityNote,
				})
			}
		}

		cost := base * grams / 100 * loc.Factor
		breakdown.Items = append(breakdown.Items, ItemCost{
			Item:           key,
			Grams:          grams,
			CostPerServing: cost,
		})
		breakdown.TotalPerServing += cost
	}

	// 級距以基準幣別判斷，避免地區係數扭曲分類
	breakdown.Tier = classifyTier(breakdown.TotalPerServing / loc.Factor)
	return breakdown
}

// RawCost 以原始基準價加總食材清單，不含地區係數，供最佳化前後比較
func (a *Aggregator) RawCost(ingredients []string) float64 {
	var total float64
	for _, key := range ingredients {
		grams := a.nut.EstimateQuantity(key)
		base := unknownBaseCost
		if entry, ok := a.ds.Cost(key); ok {
			base = entry.PricePer100
		}
		total += base * grams / 100
	}
	return total
}

func classifyTier(baseTotal float64) common.BudgetTier {
	switch {
	case baseTotal < 50:
		return common.BudgetTierBudget
	case baseTotal < 150:
		return common.BudgetTierModerate
	default:
		return common.BudgetTierPremium
	}
}

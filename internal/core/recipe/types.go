package recipe

import (
	"recipe-composer/internal/core/dataset"
	"recipe-composer/internal/core/normalize"
	"recipe-composer/internal/core/nutrition"
	"recipe-composer/internal/core/pricing"
	"recipe-composer/internal/core/score"
	"recipe-composer/internal/pkg/common"
)

// Context 合成請求的完整上下文。除食材清單外皆為選填，
// 生效值的優先順序為 明確參數 > 文字信號 > 預設值。
type Context struct {
	Ingredients []string          `json:"ingredients"`
	Excluded    []string          `json:"excluded,omitempty"`
	Signals     normalize.Signals `json:"signals,omitempty"`
	Goal        string            `json:"goal,omitempty"`
	Cuisine     string            `json:"cuisine,omitempty"`
	Spice       string            `json:"spice,omitempty"`
	Location    string            `json:"location,omitempty"`
	SkillLevel  string            `json:"skill_level,omitempty"`
	Servings    int               `json:"servings,omitempty"`
	Dietary     string            `json:"dietary,omitempty"`
}

// Portion 食譜中一項食材與其估計用量
type Portion struct {
	Item  string  `json:"item"`
	Grams float64 `json:"grams"`
}

// Change 最佳化替換紀錄
type Change struct {
	From       string  `json:"from"`
	To         string  `json:"to"`
	Reason     string  `json:"reason"`
	SavingsPct float64 `json:"savings_pct"`
}

// Optimization 最佳化結果摘要，成本以基準價重新加總計算
type Optimization struct {
	Changes      []Change `json:"changes"`
	CostBefore   float64  `json:"cost_before"`
	CostAfter    float64  `json:"cost_after"`
	PercentSaved float64  `json:"percent_saved"`
}

// Recipe 合成輸出。一次合成呼叫建構一份，之後不可變；
// 重新最佳化會產生新的 Recipe 而非就地修改。
type Recipe struct {
	Title        string                `json:"title"`
	Description  string                `json:"description"`
	Ingredients  []Portion             `json:"ingredients"`
	Steps        []string              `json:"steps"`
	Nutrition    *nutrition.Summary    `json:"nutrition"`
	Health       *score.Result         `json:"health"`
	Cost         *pricing.Breakdown    `json:"cost"`
	Goal         common.Goal           `json:"goal"`
	Servings     int                   `json:"servings"`
	PrepMinutes  int                   `json:"prep_minutes"`
	Difficulty   string                `json:"difficulty"`
	DishKey      string                `json:"dish_key,omitempty"`
	DishMeta     *dataset.DishMetadata `json:"dish_meta,omitempty"`
	Suggestions  []string              `json:"suggestions"`
	Mistakes     []string              `json:"mistakes"`
	Pairings     []string              `json:"pairings"`
	IsOptimized  bool                  `json:"is_optimized"`
	Optimization *Optimization         `json:"optimization,omitempty"`
}

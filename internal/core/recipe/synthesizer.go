package recipe

import (
	"time"

	"recipe-composer/internal/core/dataset"
	"recipe-composer/internal/core/knowledge"
	"recipe-composer/internal/core/nutrition"
	"recipe-composer/internal/core/pricing"
	"recipe-composer/internal/core/score"
	"recipe-composer/internal/pkg/common"
)

// 無麩質過濾的穀物類排除清單
var glutenDenylist = map[string]bool{
	"wheat_flour": true,
	"bread":       true,
	"pasta":       true,
	"oats":        true,
}

// Defaults 未提供明確參數或信號時的預設上下文
type Defaults struct {
	Location string
	Goal     string
	Servings int
}

// Synthesizer 食譜合成器，串接營養、成本、評分與料理知識
type Synthesizer struct {
	ds       *dataset.Dataset
	nut      *nutrition.Aggregator
	price    *pricing.Aggregator
	know     *knowledge.Service
	defaults Defaults
}

// NewSynthesizer 創建食譜合成器
func NewSynthesizer(ds *dataset.Dataset, nut *nutrition.Aggregator, price *pricing.Aggregator, know *knowledge.Service, defaults Defaults) *Synthesizer {
	if defaults.Location == "" {
		defaults.Location = "india"
	}
	if defaults.Goal == "" {
		defaults.Goal = string(common.GoalBalanced)
	}
	if defaults.Servings <= 0 {
		defaults.Servings = 1
	}
	return &Synthesizer{ds: ds, nut: nut, price: price, know: know, defaults: defaults}
}

// resolved 生效後的上下文
type resolved struct {
	goal     common.Goal
	location string
	dietary  common.DietaryFilter
	spice    common.SpiceLevel
	servings int
}

// resolve 依 明確參數 > 信號 > 預設 的優先順序決定生效值
func (s *Synthesizer) resolve(ctx Context) resolved {
	goal := ctx.Goal
	if goal == "" {
		goal = ctx.Signals.Goal
	}
	if goal == "" {
		goal = s.defaults.Goal
	}

	location := ctx.Location
	if location == "" {
		location = ctx.Signals.Cuisine
	}
	if location == "" {
		location = s.defaults.Location
	}

	dietary := ctx.Dietary
	if dietary == "" {
		dietary = ctx.Signals.Dietary
	}

	spice := common.SpiceMedium
	switch common.SpiceLevel(ctx.Spice) {
	case common.SpiceMild:
		spice = common.SpiceMild
	case common.SpiceHot:
		spice = common.SpiceHot
	}

	servings := ctx.Servings
	if servings <= 0 {
		servings = s.defaults.Servings
	}

	return resolved{
		goal:     common.ParseGoal(goal),
		location: location,
		dietary:  common.ParseDietaryFilter(dietary),
		spice:    spice,
		servings: servings,
	}
}

// effectiveList 展開菜餚、套用排除清單與飲食過濾，回傳去重後的食材清單。
// 排除先於飲食過濾，兩者對同一食材皆適用時仍一致。
func (s *Synthesizer) effectiveList(ingredients, excluded []string, dietary common.DietaryFilter) []string {
	expanded := make([]string, 0, len(ingredients))
	seen := make(map[string]bool)
	emit := func(key string) {
		if !seen[key] {
			seen[key] = true
			expanded = append(expanded, key)
		}
	}
	for _, key := range ingredients {
		if dish, ok := s.ds.Dish(key); ok {
			for _, item := range dish.Ingredients {
				emit(item)
			}
			continue
		}
		emit(key)
	}

	excludedSet := make(map[string]bool, len(excluded))
	for _, key := range excluded {
		excludedSet[key] = true
	}

	filtered := expanded[:0]
	for _, key := range expanded {
		if excludedSet[key] {
			continue
		}
		if !s.passesDietary(key, dietary) {
			continue
		}
		filtered = append(filtered, key)
	}
	return filtered
}

func (s *Synthesizer) passesDietary(key string, dietary common.DietaryFilter) bool {
	switch dietary {
	case common.DietaryNone:
		return true
	case common.DietaryGlutenFree:
		return !glutenDenylist[key]
	}
	profile, ok := s.ds.Nutrition(key)
	if !ok {
		return true // 未知食材不因過濾而消失
	}
	switch dietary {
	case common.DietaryVegan:
		return profile.Dietary == dataset.DietVegan
	case common.DietaryVegetarian:
		return profile.Dietary != dataset.DietNonVeg
	}
	return true
}

// adjustForGoal 依目標調整營養總和，模擬份量與手法調整的預期效果
func adjustForGoal(totals *nutrition.Totals, goal common.Goal) {
	switch goal {
	case common.GoalWeightLoss:
		totals.Calories *= 0.85
		totals.Fat *= 0.75
		totals.Protein *= 1.10
	case common.GoalMuscleGain:
		totals.Protein *= 1.25
		totals.Calories *= 1.15
	}
}

// Synthesize 合成食譜。排除與飲食過濾後若食材清單為空則回傳 nil，
// 代表「無法成菜」的可恢復結果而非錯誤。
func (s *Synthesizer) Synthesize(ctx Context) *Recipe {
	start := time.Now()
	r := s.resolve(ctx)

	if len(ctx.Ingredients) == 0 {
		return nil
	}

	// 輸入恰為單一已知菜餚時保留其附加資訊
	var dishKey string
	var dishMeta *dataset.DishMetadata
	if len(ctx.Ingredients) == 1 {
		if dish, ok := s.ds.Dish(ctx.Ingredients[0]); ok {
			dishKey = dish.Key
			meta := dish.Metadata
			dishMeta = &meta
		}
	}

	ingredients := s.effectiveList(ctx.Ingredients, ctx.Excluded, r.dietary)
	if len(ingredients) == 0 {
		return nil
	}

	summary := s.nut.ComputeTotals(ingredients)
	adjustForGoal(&summary.Totals, r.goal)

	health := score.Score(
		summary.Totals.Calories, summary.Totals.Protein, summary.Totals.Carbs, summary.Totals.Fat,
		r.goal,
		score.Extras{
			Inflammatory: summary.Inflammatory.Average,
			TotalGL:      glValue(summary),
			Fibre:        summary.Totals.Fibre,
			Iron:         summary.Totals.Iron,
			Calcium:      summary.Totals.Calcium,
		},
	)

	cost := s.price.ComputePriceBreakdown(ingredients, r.location)

	prepMinutes, difficulty := s.prepAndDifficulty(dishMeta, ingredients)

	portions := make([]Portion, len(summary.Quantities))
	for i, q := range summary.Quantities {
		portions[i] = Portion{Item: q.Key, Grams: q.Grams}
	}

	rec := &Recipe{
		Title:       s.know.Title(ingredients),
		Description: s.know.Description(ingredients, r.goal),
		Ingredients: portions,
		Steps: s.know.GenerateSteps(knowledge.StepInput{
			Ingredients: ingredients,
			Goal:        r.goal,
			Spice:       r.spice,
			Location:    r.location,
		}),
		Nutrition:   summary,
		Health:      health,
		Cost:        cost,
		Goal:        r.goal,
		Servings:    r.servings,
		PrepMinutes: prepMinutes,
		Difficulty:  difficulty,
		DishKey:     dishKey,
		DishMeta:    dishMeta,
		Suggestions: s.know.GenerateSuggestions(ingredients, r.goal, r.location),
		Mistakes:    s.know.GetCommonMistakes(ingredients, r.location),
		Pairings:    s.know.GetPairings(r.location, r.goal),
	}

	common.LogSynthesis(rec.Title, len(ingredients), health.Score, time.Since(start), nil)
	return rec
}

// prepAndDifficulty 菜餚附加資訊優先，否則以食材數量估算
func (s *Synthesizer) prepAndDifficulty(meta *dataset.DishMetadata, ingredients []string) (int, string) {
	if meta != nil && meta.PrepMinutes > 0 {
		difficulty := meta.Difficulty
		if difficulty == "" {
			difficulty = "medium"
		}
		return meta.PrepMinutes, difficulty
	}

	minutes := 15 + 4*len(ingredients)
	for _, key := range ingredients {
		if profile, ok := s.ds.Nutrition(key); ok && profile.Protein > 15 {
			minutes += 5
			break
		}
	}

	difficulty := "easy"
	switch {
	case len(ingredients) > 8:
		difficulty = "hard"
	case len(ingredients) > 4:
		difficulty = "medium"
	}
	return minutes, difficulty
}

func glValue(summary *nutrition.Summary) float64 {
	if summary.Glycemic == nil {
		return 0
	}
	return summary.Glycemic.TotalGL
}

package recipe

import (
	"time"

	"recipe-composer/internal/core/score"
	"recipe-composer/internal/pkg/common"
)

// opWeights 各目標在最佳化評分中的蛋白質與熱量權重
var opWeights = map[common.Goal]struct{ protein, calories float64 }{
	common.GoalBalanced:   {protein: 1.0, calories: -0.005},
	common.GoalWeightLoss: {protein: 0.5, calories: -0.02},
	common.GoalMuscleGain: {protein: 3.0, calories: 0.005},
}

// Optimizer 替換最佳化器。單趟貪婪掃描，不保證全域最優，
// 但對相同輸入順序結果可重現。
type Optimizer struct {
	synth *Synthesizer
}

// NewOptimizer 創建替換最佳化器
func NewOptimizer(synth *Synthesizer) *Optimizer {
	return &Optimizer{synth: synth}
}

// trial 單次試算的評分與成本
type trial struct {
	opScore        float64
	costPerServing float64
	empty          bool
}

// evaluate 對候選清單跑一次完整的聚合加評分管線
func (o *Optimizer) evaluate(list []string, ctx Context, r resolved) trial {
	effective := o.synth.effectiveList(list, ctx.Excluded, r.dietary)
	if len(effective) == 0 {
		return trial{empty: true}
	}

	summary := o.synth.nut.ComputeTotals(effective)
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

	cost := o.synth.price.ComputePriceBreakdown(effective, r.location)

	w := opWeights[r.goal]
	return trial{
		opScore:        health.Score + w.protein*summary.Totals.Protein + w.calories*summary.Totals.Calories,
		costPerServing: cost.TotalPerServing,
	}
}

// Optimize 對輸入食材清單做單趟貪婪替換搜尋後重新合成食譜。
// maxCostPerServing <= 0 代表不設成本上限。
// 雙軌接受條件：評分不低於目前最佳即接受；設有上限時，
// 嚴格更便宜的替換即使評分持平或略降也接受。
func (o *Optimizer) Optimize(ctx Context, maxCostPerServing float64) *Recipe {
	if len(ctx.Ingredients) == 0 {
		return nil
	}
	start := time.Now()
	r := o.synth.resolve(ctx)

	original := make([]string, len(ctx.Ingredients))
	copy(original, ctx.Ingredients)

	best := make([]string, len(original))
	copy(best, original)
	bestTrial := o.evaluate(best, ctx, r)
	if bestTrial.empty {
		return nil
	}

	var changes []Change

	// 以原始清單的順序與項目身分做候選查找，即使 best 已演進
	for i, item := range original {
		candidates := o.synth.ds.Substitutions(item)
		if len(candidates) == 0 {
			continue
		}

		present := make(map[string]bool, len(best))
		for _, key := range best {
			present[key] = true
		}

		for _, candidate := range candidates {
			if present[candidate.Key] {
				continue
			}

			candidateList := make([]string, len(best))
			copy(candidateList, best)
			candidateList[i] = candidate.Key

			t := o.evaluate(candidateList, ctx, r)
			if t.empty {
				continue
			}
			if maxCostPerServing > 0 && t.costPerServing > maxCostPerServing {
				continue
			}

			acceptOnScore := t.opScore >= bestTrial.opScore
			acceptOnCost := maxCostPerServing > 0 && t.costPerServing < bestTrial.costPerServing
			if !acceptOnScore && !acceptOnCost {
				continue
			}

			best = candidateList
			bestTrial = t
			changes = append(changes, Change{
				From:       item,
				To:         candidate.Key,
				Reason:     candidate.Reason,
				SavingsPct: candidate.SavingsPct,
			})
			break // 每項食材只接受第一個可行候選
		}
	}

	rec := o.synth.Synthesize(Context{
		Ingredients: best,
		Excluded:    ctx.Excluded,
		Signals:     ctx.Signals,
		Goal:        ctx.Goal,
		Cuisine:     ctx.Cuisine,
		Spice:       ctx.Spice,
		Location:    ctx.Location,
		SkillLevel:  ctx.SkillLevel,
		Servings:    ctx.Servings,
		Dietary:     ctx.Dietary,
	})
	if rec == nil {
		return nil
	}

	// 前後成本以原始基準價獨立重算，不沿用每份拆解
	costBefore := o.synth.price.RawCost(o.synth.effectiveList(original, ctx.Excluded, r.dietary))
	costAfter := o.synth.price.RawCost(o.synth.effectiveList(best, ctx.Excluded, r.dietary))
	var pctSaved float64
	if costBefore > 0 {
		pctSaved = (costBefore - costAfter) / costBefore * 100
	}

	if changes == nil {
		changes = []Change{}
	}
	rec.IsOptimized = true
	rec.Optimization = &Optimization{
		Changes:      changes,
		CostBefore:   costBefore,
		CostAfter:    costAfter,
		PercentSaved: pctSaved,
	}
	common.LogOptimization(len(changes), costBefore, costAfter, time.Since(start))
	return rec
}

package score

import (
	"testing"

	"recipe-composer/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroMacrosReturnsNeutralScore(t *testing.T) {
	result := Score(0, 0, 0, 0, common.GoalBalanced, Extras{})

	assert.Equal(t, 50.0, result.Score)
	assert.Empty(t, result.Advice)

	// 固定拆解，不因重複呼叫而變
	again := Score(0, 0, 0, 0, common.GoalBalanced, Extras{})
	assert.Equal(t, result.Breakdown, again.Breakdown)
}

func TestScoreBounds(t *testing.T) {
	goals := []common.Goal{common.GoalBalanced, common.GoalWeightLoss, common.GoalMuscleGain}
	macros := []struct{ cal, p, c, f float64 }{
		{100, 5, 10, 2},
		{450, 35, 45, 15},
		{900, 10, 120, 40},
		{1500, 80, 150, 80},
		{200, 0, 0, 22},
		{50, 12, 0, 0},
	}

	for _, goal := range goals {
		for _, m := range macros {
			result := Score(m.cal, m.p, m.c, m.f, goal, Extras{Inflammatory: -2, TotalGL: 25, Fibre: 8, Iron: 4, Calcium: 250})
			assert.GreaterOrEqual(t, result.Score, 0.0, "goal %s macros %+v", goal, m)
			assert.LessOrEqual(t, result.Score, 100.0, "goal %s macros %+v", goal, m)
		}
	}
}

func TestProteinBonusMonotonicForMuscleGain(t *testing.T) {
	// 其他巨量營養素固定，蛋白質 10g → 40g 的加分不可下降
	low := Score(500, 10, 50, 15, common.GoalMuscleGain, Extras{})
	high := Score(500, 40, 50, 15, common.GoalMuscleGain, Extras{})

	assert.GreaterOrEqual(t, high.Breakdown.ProteinBonus, low.Breakdown.ProteinBonus)
}

func TestProteinBonusThresholds(t *testing.T) {
	tests := []struct {
		goal    common.Goal
		protein float64
		want    float64
	}{
		{common.GoalMuscleGain, 45, 20},
		{common.GoalMuscleGain, 35, 15},
		{common.GoalMuscleGain, 25, 10},
		{common.GoalMuscleGain, 15, 5},
		{common.GoalBalanced, 35, 20},
		{common.GoalBalanced, 25, 15},
		{common.GoalBalanced, 15, 10},
		{common.GoalBalanced, 10, 5},
	}

	for _, tt := range tests {
		result := Score(500, tt.protein, 50, 15, tt.goal, Extras{})
		assert.Equal(t, tt.want, result.Breakdown.ProteinBonus, "goal %s protein %v", tt.goal, tt.protein)
	}
}

func TestGlycemicPenaltyOnly(t *testing.T) {
	tests := []struct {
		totalGL float64
		want    float64
	}{
		{5, 0},
		{15, -1},
		{25, -3},
		{35, -5},
	}

	for _, tt := range tests {
		result := Score(500, 30, 50, 15, common.GoalBalanced, Extras{TotalGL: tt.totalGL})
		assert.Equal(t, tt.want, result.Breakdown.Glycemic, "GL %v", tt.totalGL)
	}
}

func TestInflammatoryBonus(t *testing.T) {
	tests := []struct {
		avg  float64
		want float64
	}{
		{-5, 10},
		{-3, 7},
		{-0.5, 4},
		{1.5, 1},
		{4, 0},
	}

	for _, tt := range tests {
		result := Score(500, 30, 50, 15, common.GoalBalanced, Extras{Inflammatory: tt.avg})
		assert.Equal(t, tt.want, result.Breakdown.Inflammatory, "avg %v", tt.avg)
	}
}

func TestMicronutrientBonusCap(t *testing.T) {
	result := Score(500, 30, 50, 15, common.GoalBalanced, Extras{Fibre: 10, Iron: 5, Calcium: 300})
	assert.Equal(t, 5.0, result.Breakdown.Micronutrient)
}

func TestIdealMacroSplit(t *testing.T) {
	// 400kcal 的 30/40/30 拆分：P 30g、C 40g、F 13.33g
	result := Score(400, 30, 40, 400*0.30/9, common.GoalBalanced, Extras{})
	assert.InDelta(t, 35, result.Breakdown.MacroBalance, 0.5)
}

func TestScoreDeterministic(t *testing.T) {
	extras := Extras{Inflammatory: -1.5, TotalGL: 12, Fibre: 6, Iron: 2, Calcium: 180}

	first := Score(620, 42, 55, 18, common.GoalMuscleGain, extras)
	second := Score(620, 42, 55, 18, common.GoalMuscleGain, extras)

	require.Equal(t, first.Score, second.Score)
	assert.Equal(t, first.Breakdown, second.Breakdown)
	assert.Equal(t, first.Advice, second.Advice)
}

func TestAdviceLimitedToFour(t *testing.T) {
	// 高脂、低蛋白、高升糖、低纖維同時觸發，仍最多四則
	result := Score(900, 5, 80, 60, common.GoalWeightLoss, Extras{TotalGL: 35, Fibre: 1})
	assert.LessOrEqual(t, len(result.Advice), 4)
	assert.NotEmpty(t, result.Advice)
}

package score

import (
	"math"

	"recipe-composer/internal/pkg/common"
)

// Extras 評分附帶輸入，皆來自營養聚合結果
type Extras struct {
	Inflammatory float64
	TotalGL      float64
	Fibre        float64
	Iron         float64
	Calcium      float64
}

// Breakdown 各評分元件得分
type Breakdown struct {
	MacroBalance  float64 `json:"macro_balance"`  // 0–35
	ProteinBonus  float64 `json:"protein_bonus"`  // 0–20
	FatModifier   float64 `json:"fat_modifier"`   // 0–15
	CalorieScore  float64 `json:"calorie_score"`  // 0–10
	Inflammatory  float64 `json:"inflammatory"`   // 0–10
	Glycemic      float64 `json:"glycemic"`       // -5–0
	Micronutrient float64 `json:"micronutrient"`  // 0–5
}

// Result 健康評分輸出
type Result struct {
	Score     float64   `json:"score"` // 0–100
	Breakdown Breakdown `json:"breakdown"`
	Advice    []string  `json:"advice"`
}

// Score 依巨量營養素總和與目標計算 0–100 健康評分。
// 純函式：相同輸入必回傳相同評分、拆解與建議。
func Score(calories, protein, carbs, fat float64, goal common.Goal, extras Extras) *Result {
	macroCalories := protein*4 + carbs*4 + fat*9
	if macroCalories == 0 {
		// 無巨量營養素時回傳固定中性評分，避免除以零
		return &Result{
			Score: 50,
			Breakdown: Breakdown{
				MacroBalance:  20,
				ProteinBonus:  10,
				FatModifier:   8,
				CalorieScore:  5,
				Inflammatory:  4,
				Micronutrient: 3,
			},
			Advice: []string{},
		}
	}

	pRatio := protein * 4 / macroCalories
	cRatio := carbs * 4 / macroCalories
	fRatio := fat * 9 / macroCalories

	b := Breakdown{
		MacroBalance:  macroBalance(pRatio, cRatio, fRatio),
		ProteinBonus:  proteinBonus(protein, goal),
		FatModifier:   fatModifier(fRatio),
		CalorieScore:  calorieScore(calories, goal),
		Inflammatory:  inflammatoryBonus(extras.Inflammatory),
		Glycemic:      glycemicPenalty(extras.TotalGL),
		Micronutrient: micronutrientBonus(extras),
	}

	total := b.MacroBalance + b.ProteinBonus + b.FatModifier + b.CalorieScore +
		b.Inflammatory + b.Glycemic + b.Micronutrient
	total = math.Max(0, math.Min(100, total))

	return &Result{
		Score:     total,
		Breakdown: b,
		Advice:    buildAdvice(pRatio, fRatio, protein, goal, extras, b),
	}
}

// 以 30/40/30 蛋白/碳水/脂肪為目標的距離懲罰
func macroBalance(pRatio, cRatio, fRatio float64) float64 {
	score := 35 - 80*math.Abs(pRatio-0.30) - 70*math.Abs(cRatio-0.40) - 70*math.Abs(fRatio-0.30)
	return math.Max(0, score)
}

// 增肌目標的蛋白質門檻較高
func proteinBonus(protein float64, goal common.Goal) float64 {
	if goal == common.GoalMuscleGain {
		switch {
		case protein > 40:
			return 20
		case protein > 30:
			return 15
		case protein > 20:
			return 10
		default:
			return 5
		}
	}
	switch {
	case protein > 30:
		return 20
	case protein > 20:
		return 15
	case protein > 12:
		return 10
	default:
		return 5
	}
}

func fatModifier(fRatio float64) float64 {
	switch {
	case fRatio < 0.25:
		return 15
	case fRatio < 0.35:
		return 12
	case fRatio < 0.45:
		return 7
	default:
		return 2
	}
}

// 減重目標的熱量門檻較低
func calorieScore(calories float64, goal common.Goal) float64 {
	if goal == common.GoalWeightLoss {
		switch {
		case calories < 400:
			return 10
		case calories < 550:
			return 7
		case calories < 700:
			return 4
		default:
			return 1
		}
	}
	switch {
	case calories < 550:
		return 10
	case calories < 750:
		return 7
	case calories < 950:
		return 4
	default:
		return 1
	}
}

func inflammatoryBonus(avg float64) float64 {
	switch {
	case avg <= -4:
		return 10
	case avg <= -2:
		return 7
	case avg <= 0:
		return 4
	case avg <= 2:
		return 1
	default:
		return 0
	}
}

// 僅懲罰不加分
func glycemicPenalty(totalGL float64) float64 {
	switch {
	case totalGL > 30:
		return -5
	case totalGL > 20:
		return -3
	case totalGL > 10:
		return -1
	default:
		return 0
	}
}

func micronutrientBonus(extras Extras) float64 {
	var bonus float64
	if extras.Fibre > 5 {
		bonus += 2
	}
	if extras.Iron > 3 {
		bonus += 1
	}
	if extras.Calcium > 200 {
		bonus += 2
	}
	return math.Min(5, bonus)
}

// buildAdvice 依固定優先順序產生建議，負面可行動的建議排在正面回饋之前，最多四則
func buildAdvice(pRatio, fRatio, protein float64, goal common.Goal, extras Extras, b Breakdown) []string {
	advice := []string{}

	if fRatio >= 0.45 {
		advice = append(advice, "Fat contributes a large share of calories here; swap some fats for lean protein or vegetables.")
	}
	if goal == common.GoalMuscleGain && protein <= 30 {
		advice = append(advice, "Protein is low for a muscle-gain goal; add a concentrated protein source.")
	} else if protein <= 12 {
		advice = append(advice, "Protein is on the low side; consider adding lentils, eggs or paneer.")
	}
	if extras.TotalGL > 20 {
		advice = append(advice, "The glycemic load is high; swapping refined grains for whole grains would steady blood sugar.")
	}
	if goal == common.GoalWeightLoss && b.CalorieScore <= 4 {
		advice = append(advice, "Calories run high for a weight-loss goal; reduce oil or starchy portions.")
	}
	if extras.Fibre <= 5 {
		advice = append(advice, "Fibre is low; leafy greens or legumes would round this out.")
	}
	if extras.Inflammatory <= -4 {
		advice = append(advice, "Strongly anti-inflammatory profile; the spices and vegetables here are doing good work.")
	}
	if b.MacroBalance >= 30 {
		advice = append(advice, "Macro split is close to the 30/40/30 ideal; nice balance.")
	}

	if len(advice) > 4 {
		advice = advice[:4]
	}
	return advice
}

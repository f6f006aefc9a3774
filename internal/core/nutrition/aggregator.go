package nutrition

import (
	"recipe-composer/internal/core/dataset"
)

// Totals 餐點層級的營養總和，各欄位為所有食材依估計用量縮放後的加總
type Totals struct {
	Calories   float64 `json:"calories"`
	Protein    float64 `json:"protein"`
	Carbs      float64 `json:"carbs"`
	Fat        float64 `json:"fat"`
	Fibre      float64 `json:"fibre"`
	Omega3     float64 `json:"omega3"`
	Omega6     float64 `json:"omega6"`
	Sodium     float64 `json:"sodium"`
	Potassium  float64 `json:"potassium"`
	Magnesium  float64 `json:"magnesium"`
	Zinc       float64 `json:"zinc"`
	Iron       float64 `json:"iron"`
	Calcium    float64 `json:"calcium"`
	VitaminC   float64 `json:"vitamin_c"`
	VitaminA   float64 `json:"vitamin_a"`
	VitaminB12 float64 `json:"vitamin_b12"`
	VitaminD   float64 `json:"vitamin_d"`
	Folate     float64 `json:"folate"`
}

// GlycemicProfile 升糖概況，僅在至少一項食材有升糖指數時存在
type GlycemicProfile struct {
	AverageGI float64  `json:"average_gi"`
	TotalGL   float64  `json:"total_gl"`
	GIClass   string   `json:"gi_class"` // low / medium / high
	GLClass   string   `json:"gl_class"`
	HighGI    []string `json:"high_gi,omitempty"`
	LowGI     []string `json:"low_gi,omitempty"`
}

// ProteinQuality 蛋白質品質綜合，僅在有蛋白質來源時存在
type ProteinQuality struct {
	Score               float64  `json:"score"`
	Tier                string   `json:"tier"` // excellent / good / moderate / incomplete
	Sources             []string `json:"sources"`
	ComplementSatisfied bool     `json:"complement_satisfied"`
	SuggestComplement   string   `json:"suggest_complement,omitempty"`
}

// InflammatoryProfile 發炎指數概況
type InflammatoryProfile struct {
	Average float64 `json:"average"`
	Band    string  `json:"band"`
}

// MicronutrientWarning 微量營養素不足警告
type MicronutrientWarning struct {
	Nutrient       string  `json:"nutrient"`
	Concern        string  `json:"concern"`
	Amount         float64 `json:"amount"`
	Threshold      float64 `json:"threshold"`
	DailyReference float64 `json:"daily_reference"`
	Unit           string  `json:"unit"`
}

// QuantityEstimate 單一食材的估計用量
type QuantityEstimate struct {
	Key   string  `json:"item"`
	Grams float64 `json:"grams"`
}

// Summary 營養聚合輸出
type Summary struct {
	Totals       Totals                 `json:"totals"`
	Glycemic     *GlycemicProfile       `json:"glycemic,omitempty"`
	Protein      *ProteinQuality        `json:"protein_quality,omitempty"`
	Inflammatory InflammatoryProfile    `json:"inflammatory"`
	Allergens    []string               `json:"allergens"`
	Dietary      dataset.DietaryClass   `json:"dietary"`
	Warnings     []MicronutrientWarning `json:"warnings"`
	Quantities   []QuantityEstimate     `json:"quantities"`
}

// 微量營養素的固定門檻（非 RDA 百分比），低於門檻即警告
var micronutrientChecks = []struct {
	nutrient  string
	unit      string
	threshold float64
	daily     float64
	concern   string
	value     func(*Totals) float64
}{
	{"vitamin_b12", "µg", 1.0, 2.4, "Low vitamin B12 — a common gap in plant-forward meals", func(t *Totals) float64 { return t.VitaminB12 }},
	{"vitamin_d", "µg", 2.5, 15, "Very little vitamin D — consider sun exposure or fortified foods", func(t *Totals) float64 { return t.VitaminD }},
	{"iron", "mg", 6, 18, "Iron is on the low side for this meal", func(t *Totals) float64 { return t.Iron }},
	{"calcium", "mg", 300, 1000, "Calcium falls short of a meaningful contribution", func(t *Totals) float64 { return t.Calcium }},
	{"folate", "µg", 100, 400, "Folate intake is low — leafy greens or legumes would help", func(t *Totals) float64 { return t.Folate }},
	{"omega3", "g", 0.5, 1.6, "Omega-3 fats are minimal — fish, walnuts or flax would help", func(t *Totals) float64 { return t.Omega3 }},
}

// Aggregator 營養聚合器，唯讀查詢參考資料集
type Aggregator struct {
	ds *dataset.Dataset
}

// NewAggregator 創建營養聚合器
func NewAggregator(ds *dataset.Dataset) *Aggregator {
	return &Aggregator{ds: ds}
}

// EstimateQuantity 估計單一食材的每份用量（克）。
// 優先順序：資料集覆蓋值、巨量營養素密度啟發式、未知食材預設 80g。
func (a *Aggregator) EstimateQuantity(key string) float64 {
	profile, ok := a.ds.Nutrition(key)
	if !ok {
		return 80
	}
	if profile.TypicalQuantity != nil {
		return *profile.TypicalQuantity
	}
	switch {
	case profile.Fat > 50: // 油脂、堅果類
		return 10
	case profile.Protein > 15: // 高蛋白主料
		return 150
	case profile.Carbs > 40: // 穀物、豆類
		return 120
	default:
		return 100
	}
}

// ComputeTotals 聚合食材清單的營養總和與衍生概況。
// 未知食材貢獻為零並靜默跳過；空清單回傳全零總和且無衍生概況。
func (a *Aggregator) ComputeTotals(ingredients []string) *Summary {
	summary := &Summary{
		Allergens: []string{},
		Dietary:   dataset.DietVegan,
		Warnings:  []MicronutrientWarning{},
	}

	type scored struct {
		key     string
		profile dataset.NutritionProfile
		qty     float64
	}

	var known []scored
	allergenSeen := make(map[string]bool)

	for _, key := range ingredients {
		qty := a.EstimateQuantity(key)
		summary.Quantities = append(summary.Quantities, QuantityEstimate{Key: key, Grams: qty})

		profile, ok := a.ds.Nutrition(key)
		if !ok {
			continue // 查無資料者不影響總和
		}
		known = append(known, scored{key: key, profile: profile, qty: qty})

		fraction := qty / 100
		t := &summary.Totals
		t.Calories += profile.Calories * fraction
		t.Protein += profile.Protein * fraction
		t.Carbs += profile.Carbs * fraction
		t.Fat += profile.Fat * fraction
		t.Fibre += profile.Fibre * fraction
		t.Omega3 += profile.Omega3 * fraction
		t.Omega6 += profile.Omega6 * fraction
		t.Sodium += profile.Sodium * fraction
		t.Potassium += profile.Potassium * fraction
		t.Magnesium += profile.Magnesium * fraction
		t.Zinc += profile.Zinc * fraction
		t.Iron += profile.Iron * fraction
		t.Calcium += profile.Calcium * fraction
		t.VitaminC += profile.VitaminC * fraction
		t.VitaminA += profile.VitaminA * fraction
		t.VitaminB12 += profile.VitaminB12 * fraction
		t.VitaminD += profile.VitaminD * fraction
		t.Folate += profile.Folate * fraction

		for _, allergen := range profile.Allergens {
			if !allergenSeen[allergen] {
				allergenSeen[allergen] = true
				summary.Allergens = append(summary.Allergens, allergen)
			}
		}

		// 嚴格排序：non_veg > vegetarian > vegan
		switch profile.Dietary {
		case dataset.DietNonVeg:
			summary.Dietary = dataset.DietNonVeg
		case dataset.DietVegetarian:
			if summary.Dietary != dataset.DietNonVeg {
				summary.Dietary = dataset.DietVegetarian
			}
		}
	}

	if len(known) == 0 {
		return summary
	}

	// 升糖概況：只看有升糖指數的食材，平均 GI、加總 GL
	var giSum, glSum float64
	giCount := 0
	var highGI, lowGI []string
	for _, s := range known {
		if s.profile.GlycemicIndex <= 0 {
			continue
		}
		giCount++
		giSum += s.profile.GlycemicIndex
		carbsUsed := s.profile.Carbs * s.qty / 100
		glSum += s.profile.GlycemicIndex * carbsUsed / 100
		if s.profile.GlycemicIndex >= 70 {
			highGI = append(highGI, s.key)
		} else if s.profile.GlycemicIndex < 55 {
			lowGI = append(lowGI, s.key)
		}
	}
	if giCount > 0 {
		avgGI := giSum / float64(giCount)
		summary.Glycemic = &GlycemicProfile{
			AverageGI: avgGI,
			TotalGL:   glSum,
			GIClass:   classifyGI(avgGI),
			GLClass:   classifyGL(glSum),
			HighGI:    highGI,
			LowGI:     lowGI,
		}
	}

	// 蛋白質品質：蛋白 >2g/100g 且有品質分數者
	var pqSum float64
	var sources []string
	var incomplete []scored
	for _, s := range known {
		if s.profile.Protein <= 2 || s.profile.ProteinQuality == nil {
			continue
		}
		sources = append(sources, s.key)
		pqSum += *s.profile.ProteinQuality
		if *s.profile.ProteinQuality < 0.7 && len(s.profile.Complements) > 0 {
			incomplete = append(incomplete, s)
		}
	}
	if len(sources) > 0 {
		score := pqSum / float64(len(sources))
		pq := &ProteinQuality{
			Score:   score,
			Tier:    classifyProteinTier(score),
			Sources: sources,
		}
		// 互補配對已存在時不再建議補充
		present := make(map[string]bool, len(ingredients))
		for _, key := range ingredients {
			present[key] = true
		}
		for _, s := range incomplete {
			satisfied := false
			for _, complement := range s.profile.Complements {
				if present[complement] {
					satisfied = true
					break
				}
			}
			if satisfied {
				pq.ComplementSatisfied = true
			} else if pq.SuggestComplement == "" {
				pq.SuggestComplement = s.profile.Complements[0]
			}
		}
		summary.Protein = pq
	}

	// 發炎指數：只平均有定義者，無資料視為中性
	var inflamSum float64
	inflamCount := 0
	for _, s := range known {
		if s.profile.Inflammatory == nil {
			continue
		}
		inflamCount++
		inflamSum += *s.profile.Inflammatory
	}
	if inflamCount > 0 {
		avg := inflamSum / float64(inflamCount)
		summary.Inflammatory = InflammatoryProfile{Average: avg, Band: classifyInflammatory(avg)}
	} else {
		summary.Inflammatory = InflammatoryProfile{Average: 0, Band: "neutral"}
	}

	// 微量營養素固定門檻檢查
	for _, check := range micronutrientChecks {
		amount := check.value(&summary.Totals)
		if amount < check.threshold {
			summary.Warnings = append(summary.Warnings, MicronutrientWarning{
				Nutrient:       check.nutrient,
				Concern:        check.concern,
				Amount:         amount,
				Threshold:      check.threshold,
				DailyReference: check.daily,
				Unit:           check.unit,
			})
		}
	}

	return summary
}

func classifyGI(avg float64) string {
	switch {
	case avg < 55:
		return "low"
	case avg < 70:
		return "medium"
	default:
		return "high"
	}
}

func classifyGL(total float64) string {
	switch {
	case total < 10:
		return "low"
	case total < 20:
		return "medium"
	default:
		return "high"
	}
}

func classifyProteinTier(score float64) string {
	switch {
	case score >= 0.90:
		return "excellent"
	case score >= 0.70:
		return "good"
	case score >= 0.50:
		return "moderate"
	default:
		return "incomplete"
	}
}

func classifyInflammatory(avg float64) string {
	switch {
	case avg <= -4:
		return "strongly_anti_inflammatory"
	case avg <= -2:
		return "anti_inflammatory"
	case avg <= 0:
		return "neutral"
	case avg <= 3:
		return "mildly_inflammatory"
	default:
		return "pro_inflammatory"
	}
}

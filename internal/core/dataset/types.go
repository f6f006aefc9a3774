package dataset

// DietaryClass 食材的飲食分類
type DietaryClass string

const (
	DietVegan      DietaryClass = "vegan"
	DietVegetarian DietaryClass = "vegetarian"
	DietNonVeg     DietaryClass = "non_veg"
)

// NutritionProfile 單一食材的營養檔案，所有巨量/微量營養素皆以每 100g 計
type NutritionProfile struct {
	Key               string       `json:"key"`
	Calories          float64      `json:"calories"`
	Protein           float64      `json:"protein"`
	Carbs             float64      `json:"carbs"`
	Fat               float64      `json:"fat"`
	Fibre             float64      `json:"fibre"`
	GlycemicIndex     float64      `json:"glycemic_index"`                // 0 代表無升糖指數資料
	ProteinQuality    *float64     `json:"protein_quality,omitempty"`     // PDCAAS，非蛋白質來源為 nil
	LimitingAminoAcid string       `json:"limiting_amino_acid,omitempty"` // 限制性氨基酸
	Complements       []string     `json:"complements,omitempty"`         // 互補蛋白質配對食材
	Omega3            float64      `json:"omega3"`
	Omega6            float64      `json:"omega6"`
	Sodium            float64      `json:"sodium"`    // mg
	Potassium         float64      `json:"potassium"` // mg
	Magnesium         float64      `json:"magnesium"` // mg
	Zinc              float64      `json:"zinc"`      // mg
	Iron              float64      `json:"iron"`      // mg
	Calcium           float64      `json:"calcium"`   // mg
	VitaminC          float64      `json:"vitamin_c"` // mg
	VitaminA          float64      `json:"vitamin_a"` // µg
	VitaminB12        float64      `json:"vitamin_b12"` // µg
	VitaminD          float64      `json:"vitamin_d"`   // µg
	Folate            float64      `json:"folate"`      // µg
	Satiety           float64      `json:"satiety"`
	Inflammatory      *float64     `json:"inflammatory,omitempty"` // 約 -10..+10，負值為抗發炎
	Dietary           DietaryClass `json:"dietary"`
	Allergens         []string     `json:"allergens,omitempty"`
	Tags              []string     `json:"tags,omitempty"`
	TypicalQuantity   *float64     `json:"typical_quantity,omitempty"` // 典型用量（克），覆蓋估算規則
}

// CostEntry 單一食材的成本條目，以基準貨幣計每 100 單位價格
type CostEntry struct {
	Key            string  `json:"key"`
	PricePer100    float64 `json:"price_per_100"`
	Unit           string  `json:"unit"` // g 或 ml
	Volatile       bool    `json:"volatile,omitempty"`
	VolatilityNote string  `json:"volatility_note,omitempty"`
}

// LocationFactor 地區成本係數與貨幣
type LocationFactor struct {
	Key      string  `json:"key"`
	Factor   float64 `json:"factor"` // 基準價格乘上此係數得到當地貨幣價格
	Currency string  `json:"currency"`
	Symbol   string  `json:"symbol"`
}

// DishMetadata 菜餚的附加資訊
type DishMetadata struct {
	Cuisine     string   `json:"cuisine"`
	MealTypes   []string `json:"meal_types,omitempty"`
	CookMethod  string   `json:"cook_method,omitempty"`
	Dietary     []string `json:"dietary,omitempty"`
	PrepMinutes int      `json:"prep_minutes,omitempty"`
	Difficulty  string   `json:"difficulty,omitempty"`
	ServedWith  []string `json:"served_with,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// DishExpansion 菜餚名稱到預設食材組成的展開
type DishExpansion struct {
	Key         string       `json:"key"`
	Aliases     []string     `json:"aliases,omitempty"`
	Ingredients []string     `json:"ingredients"`
	Metadata    DishMetadata `json:"metadata"`
}

// SubstitutionCandidate 單一替換候選
type SubstitutionCandidate struct {
	Key        string  `json:"key"`
	Reason     string  `json:"reason"`
	SavingsPct float64 `json:"savings_pct"` // 約略省下的成本百分比，負值代表更貴
}

// SubstitutionEntry 食材的替換候選列表（單向，A→B 不代表 B→A）
type SubstitutionEntry struct {
	Key        string                  `json:"key"`
	Candidates []SubstitutionCandidate `json:"candidates"`
}

// AliasTables 文字正規化查找表
type AliasTables struct {
	// Phrases 多詞片語到標準鍵（空格形式）
	Phrases map[string]string `json:"phrases"`
	// Variants 單詞變體/複數/錯字到標準鍵
	Variants map[string]string `json:"variants"`
}

// Document 完整資料集文件，內嵌與遠端皆使用此格式
type Document struct {
	Version       string              `json:"version"`
	Nutrition     []NutritionProfile  `json:"nutrition"`
	Costs         []CostEntry         `json:"costs"`
	Locations     []LocationFactor    `json:"locations"`
	Dishes        []DishExpansion     `json:"dishes"`
	Substitutions []SubstitutionEntry `json:"substitutions"`
	Aliases       AliasTables         `json:"aliases"`
}

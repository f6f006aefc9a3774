package normalize

import "fmt"

// 輸入模式
const (
	ModeIngredients = "ingredients"
	ModeDish        = "dish"
)

// Mismatch 模式不符警告，信心值讓呼叫端自行決定門檻（常用 ≥0.65）
type Mismatch struct {
	Mismatch   bool    `json:"mismatch"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
}

// DetectMismatch 啟發式判斷使用者是否在食材模式輸入了菜名（或相反）。
// 無法判斷時回傳 nil。
func (n *Normalizer) DetectMismatch(parsed *Result, declaredMode string) *Mismatch {
	if parsed == nil || len(parsed.Ingredients) == 0 {
		return nil
	}

	dishCount := 0
	firstDish := ""
	for _, key := range parsed.Ingredients {
		if n.ds.IsDish(key) {
			dishCount++
			if firstDish == "" {
				firstDish = key
			}
		}
	}

	switch declaredMode {
	case ModeIngredients:
		if dishCount == 0 {
			return nil
		}
		confidence := 0.7
		if dishCount == len(parsed.Ingredients) {
			confidence = 0.9
		}
		return &Mismatch{
			Mismatch:   true,
			Confidence: confidence,
			Reason:     fmt.Sprintf("input resolves to dish %q but ingredient mode was declared", firstDish),
		}

	case ModeDish:
		if dishCount > 0 {
			return nil
		}
		if len(parsed.Ingredients) < 3 {
			return nil
		}
		confidence := 0.7
		if len(parsed.Ingredients) >= 5 {
			confidence = 0.85
		}
		return &Mismatch{
			Mismatch:   true,
			Confidence: confidence,
			Reason:     fmt.Sprintf("%d separate ingredients given but dish mode was declared", len(parsed.Ingredients)),
		}
	}

	return nil
}

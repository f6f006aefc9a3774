package normalize

import (
	"regexp"
	"strings"
	"time"

	"recipe-composer/internal/core/dataset"
	"recipe-composer/internal/pkg/common"
)

// Signals 從自由文字推斷出的提示，不是食材
type Signals struct {
	Goal        string `json:"goal,omitempty"`
	Cuisine     string `json:"cuisine,omitempty"`
	Dietary     string `json:"dietary,omitempty"`
	MealType    string `json:"meal_type,omitempty"`
	MaxPrepTime int    `json:"max_prep_time,omitempty"`
}

// Suggestion 針對無法識別 token 的拼字建議
type Suggestion struct {
	Token      string   `json:"token"`
	Candidates []string `json:"candidates"`
}

// Result 正規化輸出。Ingredients 與 Excluded 保證互斥，
// 未知 token 以底線形式保留並同時回報於 Unknown。
type Result struct {
	Ingredients []string     `json:"ingredients"`
	Excluded    []string     `json:"excluded"`
	Signals     Signals      `json:"signals"`
	Unknown     []string     `json:"unknown"`
	Suggestions []Suggestion `json:"suggestions"`
}

// negationMarkers 否定詞彙，命中後下一個食材進入排除清單。
// 設計上保持可設定，而非寫死在解析邏輯裡。
var negationMarkers = map[string]bool{
	"no":      true,
	"without": true,
	"skip":    true,
	"exclude": true,
	"avoid":   true,
}

var (
	cleanPattern       = regexp.MustCompile(`[^a-z0-9_, ]+`)
	spacePattern       = regexp.MustCompile(`\s+`)
	maxPrepTimePattern = regexp.MustCompile(`under (\d+) (?:minutes|mins|min)`)
)

// goalKeywords 長片語在前，先匹配具體者
var goalKeywords = []struct {
	phrase string
	goal   string
}{
	{"lose weight", "weight_loss"},
	{"weight loss", "weight_loss"},
	{"fat loss", "weight_loss"},
	{"build muscle", "muscle_gain"},
	{"muscle gain", "muscle_gain"},
	{"gain muscle", "muscle_gain"},
	{"bulk up", "muscle_gain"},
	{"high protein", "muscle_gain"},
	{"balanced", "balanced"},
}

var cuisineKeywords = []string{"north_indian", "indo_chinese", "hyderabadi", "indian", "chinese", "italian", "continental"}

var mealTypeKeywords = []string{"breakfast", "lunch", "dinner", "snack"}

// Normalizer 自由文字到標準食材鍵的轉換器
type Normalizer struct {
	ds             *dataset.Dataset
	maxPhraseWords int
}

// New 創建正規化器
func New(ds *dataset.Dataset) *Normalizer {
	maxWords := 1
	for _, phrase := range ds.PhraseScanOrder() {
		if n := strings.Count(phrase, " ") + 1; n > maxWords {
			maxWords = n
		}
	}
	return &Normalizer{ds: ds, maxPhraseWords: maxWords}
}

// Normalize 將原始文字解析為標準食材鍵與訊號。
// 空白輸入回傳空結果而非錯誤；無法識別的 token 以底線形式寬鬆保留。
func (n *Normalizer) Normalize(raw string) *Result {
	start := time.Now()
	result := &Result{
		Ingredients: []string{},
		Excluded:    []string{},
		Unknown:     []string{},
		Suggestions: []Suggestion{},
	}

	lowered := strings.ToLower(strings.TrimSpace(raw))
	if lowered == "" {
		return result
	}

	// 訊號只讀不刪：食材流保持原樣
	result.Signals = n.extractSignals(lowered)

	cleaned := cleanPattern.ReplaceAllString(lowered, " ")
	cleaned = spacePattern.ReplaceAllString(cleaned, " ")

	seen := make(map[string]bool)
	excludedSeen := make(map[string]bool)

	emit := func(key string, excluded bool) {
		if key == "" {
			return
		}
		if excluded {
			if !excludedSeen[key] {
				excludedSeen[key] = true
				result.Excluded = append(result.Excluded, key)
			}
			return
		}
		// 首次出現者優先，重複項直接摺疊
		if !seen[key] {
			seen[key] = true
			result.Ingredients = append(result.Ingredients, key)
		}
	}

	if strings.Contains(cleaned, ",") {
		// 逗號分隔模式：每段獨立重掃多詞片語
		for _, segment := range strings.Split(cleaned, ",") {
			segment = strings.TrimSpace(segment)
			if segment == "" {
				continue
			}
			if key, ok := n.ds.ResolvePhrase(segment); ok {
				emit(key, false)
				continue
			}
			n.scanWords(strings.Fields(segment), result, emit)
		}
	} else {
		n.scanWords(strings.Fields(cleaned), result, emit)
	}

	// 排除項即使在別處被隱含也要移除
	if len(result.Excluded) > 0 {
		kept := result.Ingredients[:0]
		for _, key := range result.Ingredients {
			if !excludedSeen[key] {
				kept = append(kept, key)
			}
		}
		result.Ingredients = kept
	}

	common.LogNormalization(result.Ingredients, len(result.Excluded), len(result.Unknown), time.Since(start))
	return result
}

// scanWords 貪婪最長匹配掃描：每個位置先嘗試最長的已知片語，
// 未命中時退回單詞正規化並前進一格。
func (n *Normalizer) scanWords(words []string, result *Result, emit func(string, bool)) {
	negated := false
	i := 0
	for i < len(words) {
		word := words[i]

		if negationMarkers[word] {
			negated = true
			i++
			continue
		}

		matched := false
		maxLen := n.maxPhraseWords
		if remaining := len(words) - i; remaining < maxLen {
			maxLen = remaining
		}
		for length := maxLen; length >= 1; length-- {
			candidate := strings.Join(words[i:i+length], " ")
			if key, ok := n.ds.ResolvePhrase(candidate); ok {
				emit(key, negated)
				negated = false
				i += length
				matched = true
				break
			}
		}
		if matched {
			continue
		}

		key, known := n.normalizeWord(word)
		if !known {
			result.Unknown = append(result.Unknown, key)
			if s := n.suggest(key); len(s) > 0 {
				result.Suggestions = append(result.Suggestions, Suggestion{Token: key, Candidates: s})
			}
		}
		emit(key, negated)
		negated = false
		i++
	}
}

// normalizeWord 單詞正規化：變體表、已知鍵、去複數，最後寬鬆保留
func (n *Normalizer) normalizeWord(word string) (string, bool) {
	if key, ok := n.ds.ResolveVariant(word); ok {
		return key, true
	}
	if _, ok := n.ds.Nutrition(word); ok {
		return word, true
	}
	if n.ds.IsDish(word) {
		return word, true
	}

	// 去複數後重試
	for _, suffix := range []string{"es", "s"} {
		if strings.HasSuffix(word, suffix) && len(word) > len(suffix)+2 {
			stripped := strings.TrimSuffix(word, suffix)
			if key, ok := n.ds.ResolveVariant(stripped); ok {
				return key, true
			}
			if _, ok := n.ds.Nutrition(stripped); ok {
				return stripped, true
			}
		}
	}

	// 未知 token：轉為底線形式原樣保留，由下游查詢自然落空
	return strings.ReplaceAll(word, " ", "_"), false
}

// suggest 以編輯距離 ≤2 找拼字建議，最多三個
func (n *Normalizer) suggest(token string) []string {
	if len(token) < 4 {
		return nil
	}
	var candidates []string
	for _, key := range n.ds.Keys() {
		if editDistance(token, key) <= 2 {
			candidates = append(candidates, key)
			if len(candidates) == 3 {
				break
			}
		}
	}
	return candidates
}

// extractSignals 掃描目標/菜系/飲食/餐別關鍵詞與時間限制
func (n *Normalizer) extractSignals(text string) Signals {
	var signals Signals

	for _, gk := range goalKeywords {
		if strings.Contains(text, gk.phrase) {
			signals.Goal = gk.goal
			break
		}
	}

	normalized := strings.ReplaceAll(text, " ", "_")
	for _, cuisine := range cuisineKeywords {
		if strings.Contains(normalized, cuisine) {
			signals.Cuisine = cuisine
			break
		}
	}

	// vegan 是 vegetarian 的子字串，必須逐詞比對
	words := strings.Fields(cleanPattern.ReplaceAllString(text, " "))
	for _, word := range words {
		switch word {
		case "vegan":
			signals.Dietary = "vegan"
		case "vegetarian", "veg":
			if signals.Dietary == "" {
				signals.Dietary = "vegetarian"
			}
		}
	}
	if strings.Contains(text, "gluten free") || strings.Contains(text, "gluten-free") {
		signals.Dietary = "gluten_free"
	}

	for _, meal := range mealTypeKeywords {
		for _, word := range words {
			if word == meal {
				signals.MealType = meal
				break
			}
		}
		if signals.MealType != "" {
			break
		}
	}

	if m := maxPrepTimePattern.FindStringSubmatch(text); m != nil {
		minutes := 0
		for _, ch := range m[1] {
			minutes = minutes*10 + int(ch-'0')
		}
		signals.MaxPrepTime = minutes
	}

	return signals
}

// editDistance Levenshtein 編輯距離
func editDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = minInt(prev[j]+1, minInt(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

package dataset

import (
	"fmt"
	"sort"
	"strings"

	"recipe-composer/internal/pkg/common"

	"go.uber.org/zap"
)

// Dataset 唯讀參考資料集，啟動時載入一次，執行期間不再變動
type Dataset struct {
	version       string
	nutrition     map[string]NutritionProfile
	costs         map[string]CostEntry
	locations     map[string]LocationFactor
	dishes        map[string]*DishExpansion
	substitutions map[string][]SubstitutionCandidate
	phrases       map[string]string // 片語（空格形式）→ 標準鍵
	variants      map[string]string // 單詞變體 → 標準鍵
	phraseScan    []string          // 依詞數、長度遞減排序的片語，供貪婪最長匹配
	keys          []string          // 所有食材鍵，供拼字建議
}

// Load 解析並驗證資料集文件。重複鍵視為致命的資料完整性錯誤，
// 絕不允許後寫者靜默覆蓋先前條目。
func Load(raw []byte) (*Dataset, error) {
	var doc Document
	if err := common.ParseJSONBytesStrict(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse dataset document: %w", err)
	}
	return fromDocument(&doc)
}

func fromDocument(doc *Document) (*Dataset, error) {
	ds := &Dataset{
		version:       doc.Version,
		nutrition:     make(map[string]NutritionProfile, len(doc.Nutrition)),
		costs:         make(map[string]CostEntry, len(doc.Costs)),
		locations:     make(map[string]LocationFactor, len(doc.Locations)),
		dishes:        make(map[string]*DishExpansion, len(doc.Dishes)),
		substitutions: make(map[string][]SubstitutionCandidate, len(doc.Substitutions)),
		phrases:       make(map[string]string),
		variants:      make(map[string]string),
	}

	// 營養表：key 必須唯一
	for _, p := range doc.Nutrition {
		if p.Key == "" {
			return nil, fmt.Errorf("%w: nutrition entry with empty key", common.ErrDatasetIntegrity)
		}
		if _, exists := ds.nutrition[p.Key]; exists {
			return nil, fmt.Errorf("%w: duplicate nutrition key %q", common.ErrDatasetIntegrity, p.Key)
		}
		ds.nutrition[p.Key] = p
	}

	// 成本表
	for _, c := range doc.Costs {
		if _, exists := ds.costs[c.Key]; exists {
			return nil, fmt.Errorf("%w: duplicate cost key %q", common.ErrDatasetIntegrity, c.Key)
		}
		ds.costs[c.Key] = c
	}

	// 地區係數表
	for _, l := range doc.Locations {
		key := strings.ToLower(l.Key)
		if _, exists := ds.locations[key]; exists {
			return nil, fmt.Errorf("%w: duplicate location key %q", common.ErrDatasetIntegrity, l.Key)
		}
		ds.locations[key] = l
	}

	// 菜餚展開表與別名
	for i := range doc.Dishes {
		d := &doc.Dishes[i]
		if _, exists := ds.dishes[d.Key]; exists {
			return nil, fmt.Errorf("%w: duplicate dish key %q", common.ErrDatasetIntegrity, d.Key)
		}
		if len(d.Ingredients) == 0 {
			return nil, fmt.Errorf("%w: dish %q has no ingredients", common.ErrDatasetIntegrity, d.Key)
		}
		ds.dishes[d.Key] = d

		// 菜餚鍵本身（空格形式）與所有別名都進片語表，多對一
		if err := ds.addPhrase(underscoreToSpace(d.Key), d.Key); err != nil {
			return nil, err
		}
		for _, alias := range d.Aliases {
			if err := ds.addPhrase(strings.ToLower(alias), d.Key); err != nil {
				return nil, err
			}
		}
	}

	// 替換候選表
	for _, s := range doc.Substitutions {
		if _, exists := ds.substitutions[s.Key]; exists {
			return nil, fmt.Errorf("%w: duplicate substitution key %q", common.ErrDatasetIntegrity, s.Key)
		}
		ds.substitutions[s.Key] = s.Candidates
	}

	// 多詞食材鍵也要能以空格形式命中
	for key := range ds.nutrition {
		if strings.Contains(key, "_") {
			if err := ds.addPhrase(underscoreToSpace(key), key); err != nil {
				return nil, err
			}
		}
	}

	// 別名表
	for phrase, key := range doc.Aliases.Phrases {
		if err := ds.addPhrase(strings.ToLower(phrase), key); err != nil {
			return nil, err
		}
	}
	for variant, key := range doc.Aliases.Variants {
		v := strings.ToLower(variant)
		if existing, exists := ds.variants[v]; exists && existing != key {
			return nil, fmt.Errorf("%w: conflicting variant %q", common.ErrDatasetIntegrity, variant)
		}
		ds.variants[v] = key
	}

	ds.buildIndexes()

	common.LogInfo("參考資料集載入完成",
		zap.String("版本", ds.version),
		zap.Int("食材數", len(ds.nutrition)),
		zap.Int("菜餚數", len(ds.dishes)),
		zap.Int("片語數", len(ds.phrases)),
	)

	return ds, nil
}

// addPhrase 註冊片語，衝突（同片語對應不同鍵）視為完整性錯誤
func (ds *Dataset) addPhrase(phrase, key string) error {
	if existing, exists := ds.phrases[phrase]; exists && existing != key {
		return fmt.Errorf("%w: phrase %q maps to both %q and %q", common.ErrDatasetIntegrity, phrase, existing, key)
	}
	ds.phrases[phrase] = key
	return nil
}

// buildIndexes 建立片語掃描順序與鍵列表
func (ds *Dataset) buildIndexes() {
	ds.phraseScan = make([]string, 0, len(ds.phrases))
	for phrase := range ds.phrases {
		ds.phraseScan = append(ds.phraseScan, phrase)
	}
	// 詞數多者優先，同詞數時字串長者優先，確保貪婪最長匹配
	sort.Slice(ds.phraseScan, func(i, j int) bool {
		wi := strings.Count(ds.phraseScan[i], " ")
		wj := strings.Count(ds.phraseScan[j], " ")
		if wi != wj {
			return wi > wj
		}
		if len(ds.phraseScan[i]) != len(ds.phraseScan[j]) {
			return len(ds.phraseScan[i]) > len(ds.phraseScan[j])
		}
		return ds.phraseScan[i] < ds.phraseScan[j]
	})

	ds.keys = make([]string, 0, len(ds.nutrition))
	for key := range ds.nutrition {
		ds.keys = append(ds.keys, key)
	}
	sort.Strings(ds.keys)
}

// Version 回傳資料集版本
func (ds *Dataset) Version() string {
	return ds.version
}

// Nutrition 查詢食材營養檔案
func (ds *Dataset) Nutrition(key string) (NutritionProfile, bool) {
	p, ok := ds.nutrition[key]
	return p, ok
}

// Cost 查詢食材成本條目
func (ds *Dataset) Cost(key string) (CostEntry, bool) {
	c, ok := ds.costs[key]
	return c, ok
}

// Location 查詢地區係數，未知地區回傳基準地區（係數 1）
func (ds *Dataset) Location(key string) LocationFactor {
	if l, ok := ds.locations[strings.ToLower(key)]; ok {
		return l
	}
	return LocationFactor{Key: "india", Factor: 1.0, Currency: "INR", Symbol: "₹"}
}

// Dish 查詢菜餚展開
func (ds *Dataset) Dish(key string) (*DishExpansion, bool) {
	d, ok := ds.dishes[key]
	return d, ok
}

// IsDish 判斷鍵是否為已知菜餚
func (ds *Dataset) IsDish(key string) bool {
	_, ok := ds.dishes[key]
	return ok
}

// Substitutions 查詢食材的替換候選，無候選時回傳 nil
func (ds *Dataset) Substitutions(key string) []SubstitutionCandidate {
	return ds.substitutions[key]
}

// ResolvePhrase 以空格形式查詢片語表
func (ds *Dataset) ResolvePhrase(phrase string) (string, bool) {
	key, ok := ds.phrases[phrase]
	return key, ok
}

// ResolveVariant 查詢單詞變體表
func (ds *Dataset) ResolveVariant(word string) (string, bool) {
	key, ok := ds.variants[word]
	return key, ok
}

// PhraseScanOrder 貪婪最長匹配的片語掃描順序
func (ds *Dataset) PhraseScanOrder() []string {
	return ds.phraseScan
}

// Keys 所有已知食材鍵（排序後），供拼字建議使用
func (ds *Dataset) Keys() []string {
	return ds.keys
}

func underscoreToSpace(s string) string {
	return strings.ReplaceAll(s, "_", " ")
}

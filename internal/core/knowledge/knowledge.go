package knowledge

import (
	"fmt"
	"hash/fnv"
	"strings"

	"recipe-composer/internal/core/dataset"
	"recipe-composer/internal/pkg/common"
)

// Service 提供料理知識查詢：步驟、建議、常見錯誤、搭配與命名。
// 全部為確定性模板，相同輸入必回傳相同輸出。
type Service struct {
	ds *dataset.Dataset
}

// NewService 創建料理知識服務
func NewService(ds *dataset.Dataset) *Service {
	return &Service{ds: ds}
}

// StepInput 步驟產生輸入
type StepInput struct {
	Ingredients []string
	Goal        common.Goal
	Spice       common.SpiceLevel
	Location    string
}

// 食材角色，決定下鍋順序
type role int

const (
	roleAromatic role = iota // 香料底
	roleProtein
	roleVegetable
	roleGrain
	roleFat
	roleGarnish
)

var aromatics = map[string]bool{
	"onion": true, "garlic": true, "ginger": true, "cumin": true,
	"turmeric": true, "chili": true, "cardamom": true, "coriander": true,
}

var garnishes = map[string]bool{
	"lemon": true, "coriander": true, "saffron": true,
}

func (s *Service) classify(key string) role {
	if garnishes[key] && !aromatics[key] {
		return roleGarnish
	}
	if aromatics[key] {
		return roleAromatic
	}
	profile, ok := s.ds.Nutrition(key)
	if !ok {
		return roleVegetable
	}
	switch {
	case profile.Fat > 50:
		return roleFat
	case profile.Protein > 15:
		return roleProtein
	case profile.Carbs > 40:
		return roleGrain
	default:
		return roleVegetable
	}
}

// GenerateSteps 依食材角色產生有序烹飪步驟
func (s *Service) GenerateSteps(in StepInput) []string {
	var aromaticList, proteinList, vegList, grainList []string
	hasFat := false
	for _, key := range in.Ingredients {
		switch s.classify(key) {
		case roleAromatic:
			aromaticList = append(aromaticList, display(key))
		case roleProtein:
			proteinList = append(proteinList, display(key))
		case roleVegetable:
			vegList = append(vegList, display(key))
		case roleGrain:
			grainList = append(grainList, display(key))
		case roleFat:
			hasFat = true
		}
	}

	steps := []string{"Wash and prep all ingredients; chop vegetables into even pieces."}

	if len(grainList) > 0 {
		steps = append(steps, fmt.Sprintf("Rinse the %s and set to cook in salted water until tender.", joinList(grainList)))
	}
	if hasFat {
		steps = append(steps, "Heat the oil or fat in a heavy pan over medium heat.")
	} else {
		steps = append(steps, "Heat a teaspoon of oil in a heavy pan over medium heat.")
	}
	if len(aromaticList) > 0 {
		steps = append(steps, fmt.Sprintf("Add %s and sauté until fragrant, about 2 minutes.", joinList(aromaticList)))
	}
	if len(proteinList) > 0 {
		verb := "cook through"
		if in.Goal == common.GoalWeightLoss {
			verb = "sear with minimal oil until just done"
		}
		steps = append(steps, fmt.Sprintf("Add the %s and %s, turning once.", joinList(proteinList), verb))
	}
	if len(vegList) > 0 {
		steps = append(steps, fmt.Sprintf("Stir in %s and cook until just softened, keeping some bite.", joinList(vegList)))
	}

	switch in.Spice {
	case common.SpiceHot:
		steps = append(steps, "Season generously with salt and extra chili; let the spices bloom for a minute.")
	case common.SpiceMild:
		steps = append(steps, "Season lightly with salt, keeping the spices gentle.")
	default:
		steps = append(steps, "Season with salt and adjust spices to taste.")
	}

	if len(grainList) > 0 && (len(proteinList) > 0 || len(vegList) > 0) {
		steps = append(steps, fmt.Sprintf("Fold the cooked %s into the pan and toss everything together.", joinList(grainList)))
	}
	steps = append(steps, "Rest for 2 minutes off the heat, then serve hot.")
	return steps
}

// GenerateSuggestions 產生搭配與手法建議
func (s *Service) GenerateSuggestions(ingredients []string, goal common.Goal, location string) []string {
	suggestions := []string{}

	switch goal {
	case common.GoalWeightLoss:
		suggestions = append(suggestions, "Keep portions moderate and load up on the vegetables first.")
	case common.GoalMuscleGain:
		suggestions = append(suggestions, "Pair with a side of yogurt or dal for extra protein.")
	default:
		suggestions = append(suggestions, "A simple cucumber salad on the side keeps the meal fresh.")
	}

	hasGrain := false
	for _, key := range ingredients {
		if profile, ok := s.ds.Nutrition(key); ok && profile.Carbs > 40 {
			hasGrain = true
			break
		}
	}
	if hasGrain {
		suggestions = append(suggestions, "Swap white rice for brown rice or quinoa for a gentler glycemic response.")
	}
	if strings.Contains(location, "india") {
		suggestions = append(suggestions, "Finish with fresh coriander and a squeeze of lemon, as most Indian kitchens do.")
	}
	return suggestions
}

// GetCommonMistakes 常見錯誤提醒
func (s *Service) GetCommonMistakes(ingredients []string, location string) []string {
	mistakes := []string{
		"Overcrowding the pan steams ingredients instead of browning them.",
	}
	for _, key := range ingredients {
		switch key {
		case "garlic":
			mistakes = append(mistakes, "Burnt garlic turns bitter; add it after the onions, not before.")
		case "spinach", "broccoli":
			mistakes = append(mistakes, "Overcooked greens lose both colour and nutrients; a brief wilt is enough.")
		case "rice", "brown_rice":
			mistakes = append(mistakes, "Skipping the rice rinse leaves excess starch and a gummy texture.")
		case "paneer", "tofu":
			mistakes = append(mistakes, "High heat for too long makes paneer and tofu rubbery; warm them through gently.")
		}
		if len(mistakes) >= 4 {
			break
		}
	}
	return mistakes
}

// GetPairings 餐點搭配建議
func (s *Service) GetPairings(location string, goal common.Goal) []string {
	pairings := []string{}
	if strings.Contains(location, "india") {
		pairings = append(pairings, "Serve with warm roti or steamed rice.", "A bowl of raita cools the palate.")
	} else {
		pairings = append(pairings, "Serve with crusty bread or a light grain.", "A crisp green salad rounds out the plate.")
	}
	if goal == common.GoalWeightLoss {
		pairings = append(pairings, "Skip sugary drinks; lime water or buttermilk works well.")
	}
	return pairings
}

var titleAdjectives = []string{"Rustic", "Golden", "Hearty", "Fragrant", "Classic", "Vibrant", "Homestyle", "Gentle"}
var titleStyles = []string{"Skillet", "Bowl", "Sauté", "Medley", "Simmer", "Stir-Fry"}

// Title 依食材組成產生確定性標題，相同清單必得相同標題
func (s *Service) Title(ingredients []string) string {
	if len(ingredients) == 0 {
		return "Empty Plate"
	}
	h := compositionHash(ingredients)
	adjective := titleAdjectives[h%uint32(len(titleAdjectives))]
	style := titleStyles[(h/8)%uint32(len(titleStyles))]

	primary := display(ingredients[0])
	if len(ingredients) > 1 {
		return fmt.Sprintf("%s %s & %s %s", adjective, primary, display(ingredients[1]), style)
	}
	return fmt.Sprintf("%s %s %s", adjective, primary, style)
}

// Description 依食材與目標產生確定性描述
func (s *Service) Description(ingredients []string, goal common.Goal) string {
	var goalNote string
	switch goal {
	case common.GoalWeightLoss:
		goalNote = "kept light for a weight-loss goal"
	case common.GoalMuscleGain:
		goalNote = "built around protein for muscle gain"
	default:
		goalNote = "balanced for everyday eating"
	}
	names := make([]string, 0, 3)
	for i, key := range ingredients {
		if i == 3 {
			break
		}
		names = append(names, display(key))
	}
	return fmt.Sprintf("A home-cooked dish of %s, %s.", joinList(names), goalNote)
}

func compositionHash(ingredients []string) uint32 {
	h := fnv.New32a()
	for _, key := range ingredients {
		h.Write([]byte(key))
		h.Write([]byte{'|'})
	}
	return h.Sum32()
}

// display 將底線鍵轉為可讀名稱
func display(key string) string {
	parts := strings.Split(key, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}

func joinList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}

package common

import "strings"

// Goal 使用者目標
type Goal string

const (
	GoalBalanced   Goal = "balanced"    // 均衡飲食
	GoalWeightLoss Goal = "weight_loss" // 減重
	GoalMuscleGain Goal = "muscle_gain" // 增肌
)

// ParseGoal 解析目標字串，無法識別時回傳均衡飲食
func ParseGoal(s string) Goal {
	switch Goal(strings.ToLower(strings.TrimSpace(s))) {
	case GoalWeightLoss:
		return GoalWeightLoss
	case GoalMuscleGain:
		return GoalMuscleGain
	default:
		return GoalBalanced
	}
}

// DietaryFilter 飲食過濾條件
type DietaryFilter string

const (
	DietaryNone       DietaryFilter = ""
	DietaryVegan      DietaryFilter = "vegan"
	DietaryVegetarian DietaryFilter = "vegetarian"
	DietaryGlutenFree DietaryFilter = "gluten_free"
)

// ParseDietaryFilter 解析飲食過濾條件
func ParseDietaryFilter(s string) DietaryFilter {
	switch DietaryFilter(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")) {
	case DietaryVegan:
		return DietaryVegan
	case DietaryVegetarian:
		return DietaryVegetarian
	case DietaryGlutenFree:
		return DietaryGlutenFree
	default:
		return DietaryNone
	}
}

// SpiceLevel 辣度
type SpiceLevel string

const (
	SpiceMild   SpiceLevel = "mild"
	SpiceMedium SpiceLevel = "medium"
	SpiceHot    SpiceLevel = "hot"
)

// BudgetTier 預算等級
type BudgetTier string

const (
	BudgetTierBudget   BudgetTier = "budget"
	BudgetTierModerate BudgetTier = "moderate"
	BudgetTierPremium  BudgetTier = "premium"
)

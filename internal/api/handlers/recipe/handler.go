package recipe

import (
	"strings"

	"recipe-composer/internal/core/cache"
	"recipe-composer/internal/core/history"
	"recipe-composer/internal/core/normalize"
	recipeCore "recipe-composer/internal/core/recipe"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler 食譜處理程序
type Handler struct {
	normalizer   *normalize.Normalizer
	synthesizer  *recipeCore.Synthesizer
	optimizer    *recipeCore.Optimizer
	cacheManager *cache.Manager
	historyStore *history.Store
}

// NewHandler 創建新的食譜處理程序
func NewHandler(
	normalizer *normalize.Normalizer,
	synthesizer *recipeCore.Synthesizer,
	optimizer *recipeCore.Optimizer,
	cacheManager *cache.Manager,
	historyStore *history.Store,
) *Handler {
	return &Handler{
		normalizer:   normalizer,
		synthesizer:  synthesizer,
		optimizer:    optimizer,
		cacheManager: cacheManager,
		historyStore: historyStore,
	}
}

// ContextRequest 合成請求的共用欄位。Text 與 Ingredients 擇一提供，
// 兩者皆給時以 Text 的正規化結果為準。
type ContextRequest struct {
	Text        string   `json:"text,omitempty"`
	Ingredients []string `json:"ingredients,omitempty"`
	Excluded    []string `json:"excluded,omitempty"`
	Goal        string   `json:"goal,omitempty"`
	Cuisine     string   `json:"cuisine,omitempty"`
	Spice       string   `json:"spice,omitempty"`
	Location    string   `json:"location,omitempty"`
	SkillLevel  string   `json:"skill_level,omitempty"`
	Servings    int      `json:"servings,omitempty"`
	Dietary     string   `json:"dietary,omitempty"`
}

// buildContext 將請求轉為合成上下文，必要時先跑正規化
func (h *Handler) buildContext(req ContextRequest) (recipeCore.Context, *normalize.Result) {
	ctx := recipeCore.Context{
		Ingredients: req.Ingredients,
		Excluded:    req.Excluded,
		Goal:        req.Goal,
		Cuisine:     req.Cuisine,
		Spice:       req.Spice,
		Location:    req.Location,
		SkillLevel:  req.SkillLevel,
		Servings:    req.Servings,
		Dietary:     req.Dietary,
	}

	if strings.TrimSpace(req.Text) == "" {
		return ctx, nil
	}

	parsed := h.normalizer.Normalize(req.Text)
	ctx.Ingredients = parsed.Ingredients
	ctx.Excluded = append(ctx.Excluded, parsed.Excluded...)
	ctx.Signals = parsed.Signals
	return ctx, parsed
}

// requestID 取出或生成請求識別碼
func requestID(c *gin.Context) string {
	id := c.GetHeader("X-Request-ID")
	if id == "" {
		id = uuid.New().String()
		c.Header("X-Request-ID", id)
	}
	return id
}

package recipe

import (
	"net/http"

	"recipe-composer/internal/core/cache"
	"recipe-composer/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OptimizeRequest 替換最佳化請求
type OptimizeRequest struct {
	ContextRequest
	// MaxCostPerServing 每份成本上限（當地貨幣），0 代表不設限
	MaxCostPerServing float64 `json:"max_cost_per_serving,omitempty"`
}

// HandleOptimize 對食材清單做替換最佳化後合成食譜
func (h *Handler) HandleOptimize(c *gin.Context) {
	reqID := requestID(c)

	var req OptimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("請求格式無效",
			zap.Error(err),
			zap.String("request_id", reqID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if req.MaxCostPerServing < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "max_cost_per_serving must not be negative",
			"code":  common.ErrCodeInvalidRequest,
		})
		return
	}

	ctx, parsed := h.buildContext(req.ContextRequest)
	if len(ctx.Ingredients) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "No ingredients provided",
			"code":  "EMPTY_INPUT",
		})
		return
	}

	key := cache.Key(ctx, req.MaxCostPerServing)
	if cached, err := h.cacheManager.Get(c.Request.Context(), key); err == nil && cached != nil {
		c.JSON(http.StatusOK, h.recipeResponse(c, cached, parsed))
		return
	}

	rec := h.optimizer.Optimize(ctx, req.MaxCostPerServing)
	if rec == nil {
		common.LogInfo("無法成菜",
			zap.String("request_id", reqID),
			zap.Strings("食材", ctx.Ingredients),
			zap.Float64("成本上限", req.MaxCostPerServing),
		)
		c.JSON(common.ErrNoRecipe.Status, gin.H{
			"error": common.ErrNoRecipe.Message,
			"code":  common.ErrNoRecipe.Code,
		})
		return
	}

	if err := h.cacheManager.Set(c.Request.Context(), key, rec); err != nil && err != common.ErrCacheFull {
		common.LogWarn("快取寫入失敗", zap.Error(err), zap.String("request_id", reqID))
	}

	c.JSON(http.StatusOK, h.recipeResponse(c, rec, parsed))
}

package recipe

import (
	"net/http"

	"recipe-composer/internal/core/cache"
	recipeCore "recipe-composer/internal/core/recipe"
	"recipe-composer/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GenerateRequest 食譜生成請求
type GenerateRequest struct {
	ContextRequest
}

// HandleGenerate 依食材或自由文字合成食譜
func (h *Handler) HandleGenerate(c *gin.Context) {
	reqID := requestID(c)

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("請求格式無效",
			zap.Error(err),
			zap.String("request_id", reqID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
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

	key := cache.Key(ctx, 0)
	if cached, err := h.cacheManager.Get(c.Request.Context(), key); err == nil && cached != nil {
		c.JSON(http.StatusOK, h.recipeResponse(c, cached, parsed))
		return
	}

	rec := h.synthesizer.Synthesize(ctx)
	if rec == nil {
		common.LogInfo("無法成菜",
			zap.String("request_id", reqID),
			zap.Strings("食材", ctx.Ingredients),
			zap.String("飲食過濾", ctx.Dietary),
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

// recipeResponse 組裝回應並視設定追加歷史記錄
func (h *Handler) recipeResponse(c *gin.Context, rec *recipeCore.Recipe, parsed interface{}) gin.H {
	response := gin.H{"recipe": rec}
	if parsed != nil {
		response["normalized"] = parsed
	}

	if h.historyStore != nil {
		id, err := h.historyStore.Append(c.Request.Context(), rec)
		if err != nil {
			common.LogWarn("歷史記錄寫入失敗", zap.Error(err))
		} else {
			response["history_id"] = id
		}
	}
	return response
}

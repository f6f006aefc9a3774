package recipe

import (
	"net/http"
	"strconv"

	"recipe-composer/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HandleHistoryList 取得最近合成的食譜
func (h *Handler) HandleHistoryList(c *gin.Context) {
	if h.historyStore == nil {
		c.JSON(common.ErrHistoryDisabled.Status, gin.H{
			"error": common.ErrHistoryDisabled.Message,
			"code":  common.ErrHistoryDisabled.Code,
		})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "limit must be a non-negative integer",
				"code":  common.ErrCodeInvalidRequest,
			})
			return
		}
		limit = parsed
	}

	entries, err := h.historyStore.Recent(c.Request.Context(), limit)
	if err != nil {
		common.LogError("讀取歷史記錄失敗", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load history",
			"code":  common.ErrCodeInternalError,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"count":   len(entries),
	})
}

// HandleHistoryGet 依識別碼取得單筆歷史記錄
func (h *Handler) HandleHistoryGet(c *gin.Context) {
	if h.historyStore == nil {
		c.JSON(common.ErrHistoryDisabled.Status, gin.H{
			"error": common.ErrHistoryDisabled.Message,
			"code":  common.ErrHistoryDisabled.Code,
		})
		return
	}

	id := c.Param("id")
	entry, err := h.historyStore.Get(c.Request.Context(), id)
	if err != nil {
		common.LogError("讀取歷史記錄失敗",
			zap.Error(err),
			zap.String("識別碼", id),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load history entry",
			"code":  common.ErrCodeInternalError,
		})
		return
	}
	if entry == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "History entry not found",
			"code":  common.ErrCodeNotFound,
		})
		return
	}

	c.JSON(http.StatusOK, entry)
}

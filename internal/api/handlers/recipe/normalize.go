package recipe

import (
	"net/http"

	"recipe-composer/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 低於此信心值的模式不符警告不回傳，避免雜訊
const mismatchThreshold = 0.65

// NormalizeRequest 文字正規化請求
type NormalizeRequest struct {
	Text string `json:"text" binding:"required"`
	// Mode 呼叫端宣告的輸入模式：ingredients 或 dish，用於模式不符偵測
	Mode string `json:"mode,omitempty"`
}

// HandleNormalize 將自由文字解析為標準食材清單與信號
func (h *Handler) HandleNormalize(c *gin.Context) {
	reqID := requestID(c)

	var req NormalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("請求格式無效",
			zap.Error(err),
			zap.String("request_id", reqID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result := h.normalizer.Normalize(req.Text)

	response := gin.H{"result": result}
	if req.Mode != "" {
		if mismatch := h.normalizer.DetectMismatch(result, req.Mode); mismatch != nil && mismatch.Confidence >= mismatchThreshold {
			response["mode_mismatch"] = mismatch
		}
	}

	common.LogInfo("文字正規化完成",
		zap.String("request_id", reqID),
		zap.Int("食材數", len(result.Ingredients)),
		zap.Int("排除數", len(result.Excluded)),
		zap.Int("未知數", len(result.Unknown)),
	)

	c.JSON(http.StatusOK, response)
}

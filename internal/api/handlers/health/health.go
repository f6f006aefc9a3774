package health

import (
	"net/http"
	"runtime"
	"time"

	"recipe-composer/internal/infrastructure/config"
	"recipe-composer/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status         string                 `json:"status"`
	Timestamp      time.Time              `json:"timestamp"`
	Version        string                 `json:"version"`
	DatasetVersion string                 `json:"dataset_version"`
	Runtime        map[string]interface{} `json:"runtime"`
	Cache          map[string]interface{} `json:"cache,omitempty"`
}

// statsProvider 供健康檢查讀取快取統計
type statsProvider interface {
	GetStats() map[string]interface{}
}

// HealthCheck 健康檢查處理器
func HealthCheck(c *gin.Context) {
	cfg, exists := c.Get("config")
	if !exists {
		common.LogError("Configuration not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Configuration not found",
		})
		return
	}
	config, ok := cfg.(*config.Config)
	if !ok {
		common.LogError("Invalid configuration type in context")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Invalid configuration type",
		})
		return
	}

	datasetVersion, _ := c.Get("dataset_version")
	versionStr, _ := datasetVersion.(string)

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:         "ok",
		Timestamp:      time.Now(),
		Version:        config.App.Version,
		DatasetVersion: versionStr,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
	}

	if cacheStats, exists := c.Get("cache_stats"); exists {
		if provider, ok := cacheStats.(statsProvider); ok {
			response.Cache = provider.GetStats()
		}
	}

	common.LogDebug("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 就緒檢查處理器，資料集載入完成即視為就緒
func ReadinessCheck(c *gin.Context) {
	if _, exists := c.Get("dataset_version"); !exists {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "loading",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// LivenessCheck 存活檢查處理器
func LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}

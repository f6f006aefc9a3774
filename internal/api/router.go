package api

import (
	"context"
	"net/http"
	"time"

	"recipe-composer/internal/api/handlers/health"
	recipeHandler "recipe-composer/internal/api/handlers/recipe"
	"recipe-composer/internal/api/middleware"
	"recipe-composer/internal/core/cache"
	"recipe-composer/internal/core/dataset"
	"recipe-composer/internal/core/history"
	"recipe-composer/internal/core/knowledge"
	"recipe-composer/internal/core/normalize"
	"recipe-composer/internal/core/nutrition"
	"recipe-composer/internal/core/pricing"
	recipeCore "recipe-composer/internal/core/recipe"
	"recipe-composer/internal/infrastructure/config"
	"recipe-composer/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 合成為純計算，超時遠小於外部呼叫型服務
	timeoutDuration = 15 * time.Second
	// 請求體大小限制 (1MB)，輸入只有文字與參數
	maxBodySize = 1 << 20
)

// SetupRouter 設置路由並串接核心服務
func SetupRouter(cfg *config.Config, ds *dataset.Dataset, cacheManager *cache.Manager, historyStore *history.Store) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.String("dataset_version", ds.Version()),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(maxBodySize))

	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	router.Use(middleware.Deduplication(cfg))

	// 組裝核心管線：正規化 → 聚合 → 評分 → 合成 → 最佳化
	normalizer := normalize.New(ds)
	nutritionAgg := nutrition.NewAggregator(ds)
	pricingAgg := pricing.NewAggregator(ds, nutritionAgg)
	knowledgeSvc := knowledge.NewService(ds)
	synthesizer := recipeCore.NewSynthesizer(ds, nutritionAgg, pricingAgg, knowledgeSvc, recipeCore.Defaults{
		Location: cfg.Defaults.Location,
		Goal:     cfg.Defaults.Goal,
		Servings: cfg.Defaults.Servings,
	})
	optimizer := recipeCore.NewOptimizer(synthesizer)

	common.LogInfo("Core services initialized",
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.Bool("history_enabled", cfg.History.Enabled),
		zap.String("default_location", cfg.Defaults.Location),
		zap.String("default_goal", cfg.Defaults.Goal),
	)

	// 全局中間件：設置超時並注入共用物件
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Set("config", cfg)
		c.Set("dataset_version", ds.Version())
		if cacheManager != nil {
			c.Set("cache_stats", cacheManager)
		}

		c.Next()

		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  common.ErrCodeGatewayTimeout,
			})
			c.Abort()
		}
	})

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	{
		handler := recipeHandler.NewHandler(normalizer, synthesizer, optimizer, cacheManager, historyStore)

		recipeGroup := api.Group("/recipe")
		{
			// 文字正規化
			recipeGroup.POST("/normalize", handler.HandleNormalize)

			// 食譜合成
			recipeGroup.POST("/generate", handler.HandleGenerate)

			// 替換最佳化
			recipeGroup.POST("/optimize", handler.HandleOptimize)
		}

		historyGroup := api.Group("/history")
		{
			historyGroup.GET("", handler.HandleHistoryList)
			historyGroup.GET("/:id", handler.HandleHistoryGet)
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("dataset_version", ds.Version()),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}

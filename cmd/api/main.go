package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recipe-composer/internal/api"
	"recipe-composer/internal/core/cache"
	"recipe-composer/internal/core/dataset"
	"recipe-composer/internal/core/history"
	"recipe-composer/internal/infrastructure/config"
	"recipe-composer/internal/pkg/common"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 載入 .env
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found")
	}

	// 載入設定
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	// 載入參考資料集：遠端優先，失敗時回退內嵌版本；
	// 完整性錯誤（重複鍵）直接終止啟動
	ds, err := dataset.LoadWithFallback(cfg.Dataset.RemoteURL, cfg.Dataset.Timeout, cfg.Dataset.Retries)
	if err != nil {
		common.LogFatal("Failed to load reference dataset", zap.Error(err))
	}
	common.LogInfo("參考資料集已載入",
		zap.String("版本", ds.Version()),
		zap.Int("食材數", len(ds.Keys())),
	)

	// 初始化結果快取
	cacheManager := cache.NewManager(cfg)
	if cfg.Cache.Enabled && cacheManager == nil {
		common.LogFatal("Failed to initialize cache manager")
	}
	defer cacheManager.Close()

	// 初始化歷史儲存
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 10*time.Second)
	historyStore, err := history.NewStore(startupCtx, cfg)
	startupCancel()
	if err != nil {
		common.LogFatal("Failed to initialize history store", zap.Error(err))
	}
	defer historyStore.Close()

	// 設置路由
	router, err := api.SetupRouter(cfg, ds, cacheManager, historyStore)
	if err != nil {
		common.LogError("Failed to setup router", zap.Error(err))
		os.Exit(1)
	}

	// 設置 HTTP 服務器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 啟動服務器
	go func() {
		common.LogInfo("啟動應用",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Bool("debug", cfg.App.Debug),
			zap.Int("port", cfg.Server.Port),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			common.LogError("Failed to start server",
				zap.Error(err),
			)
			os.Exit(1)
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown",
			zap.Error(err),
		)
		os.Exit(1)
	}

	common.LogInfo("Server exited")
}

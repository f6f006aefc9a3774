package history

import (
	"context"
	"fmt"
	"time"

	"recipe-composer/internal/core/recipe"
	"recipe-composer/internal/infrastructure/config"
	"recipe-composer/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	recordKeyPrefix = "recipe:history:"
	indexKey        = "recipe:history:index"
)

// Entry 歷史記錄條目
type Entry struct {
	ID        string         `json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	Recipe    *recipe.Recipe `json:"recipe"`
}

// Store 食譜歷史儲存，核心本身不寫入，由 API 層在合成後追加
type Store struct {
	client   *redis.Client
	ttl      time.Duration
	maxItems int64
}

// NewStore 創建歷史儲存並驗證連線，停用時回傳 nil
func NewStore(ctx context.Context, cfg *config.Config) (*Store, error) {
	if !cfg.History.Enabled {
		common.LogInfo("歷史記錄停用")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.History.Addr,
		Password: cfg.History.Password,
		DB:       cfg.History.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis 連線失敗: %w", err)
	}

	common.LogInfo("歷史儲存已初始化",
		zap.String("位址", cfg.History.Addr),
		zap.Int64("保留筆數", cfg.History.MaxItems),
		zap.Duration("存活時間", cfg.History.TTL),
	)

	return &Store{
		client:   client,
		ttl:      cfg.History.TTL,
		maxItems: cfg.History.MaxItems,
	}, nil
}

// Append 追加一筆食譜並回傳其識別碼，超出保留筆數的舊索引會被修剪
func (s *Store) Append(ctx context.Context, rec *recipe.Recipe) (string, error) {
	if s == nil {
		return "", common.ErrHistoryDisabled
	}

	entry := Entry{
		ID:        common.GenerateUUID(),
		CreatedAt: time.Now().UTC(),
		Recipe:    rec,
	}

	raw, err := common.ToJSON(entry)
	if err != nil {
		return "", fmt.Errorf("序列化歷史條目失敗: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, recordKeyPrefix+entry.ID, raw, s.ttl)
	pipe.LPush(ctx, indexKey, entry.ID)
	pipe.LTrim(ctx, indexKey, 0, s.maxItems-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("寫入歷史記錄失敗: %w", err)
	}

	common.LogInfo("歷史記錄已追加",
		zap.String("識別碼", entry.ID),
		zap.String("標題", rec.Title),
	)
	return entry.ID, nil
}

// Get 依識別碼取得單筆歷史記錄，不存在時回傳 (nil, nil)
func (s *Store) Get(ctx context.Context, id string) (*Entry, error) {
	if s == nil {
		return nil, common.ErrHistoryDisabled
	}

	raw, err := s.client.Get(ctx, recordKeyPrefix+id).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("讀取歷史記錄失敗: %w", err)
	}

	var entry Entry
	if err := common.ParseJSON(raw, &entry); err != nil {
		return nil, fmt.Errorf("解析歷史條目失敗: %w", err)
	}
	return &entry, nil
}

// Recent 取得最近的歷史記錄，索引仍在但條目已過期者靜默跳過
func (s *Store) Recent(ctx context.Context, limit int) ([]*Entry, error) {
	if s == nil {
		return nil, common.ErrHistoryDisabled
	}
	if limit <= 0 || int64(limit) > s.maxItems {
		limit = int(s.maxItems)
	}

	ids, err := s.client.LRange(ctx, indexKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("讀取歷史索引失敗: %w", err)
	}

	entries := make([]*Entry, 0, len(ids))
	for _, id := range ids {
		entry, err := s.Get(ctx, id)
		if err != nil || entry == nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Close 關閉 Redis 連線
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.client.Close()
}

package dataset

import (
	"errors"
	"fmt"
	"time"

	"recipe-composer/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// FetchRemote 從遠端位址抓取版本化的資料集文件並載入。
// 資料集是靜態且有版本的，只在啟動時抓取一次。
func FetchRemote(url string, timeout time.Duration, retries int) (*Dataset, error) {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(retries).
		SetHeader("Accept", "application/json")

	resp, err := client.R().Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dataset: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("unexpected dataset response status: %d", resp.StatusCode())
	}

	ds, err := Load(resp.Body())
	if err != nil {
		return nil, err
	}

	common.LogInfo("遠端資料集載入完成",
		zap.String("url", url),
		zap.String("版本", ds.Version()),
	)
	return ds, nil
}

// LoadWithFallback 優先使用遠端資料集，失敗時退回內嵌版本。
// 遠端資料集本身的完整性錯誤不退回，直接回傳錯誤（fail fast）。
func LoadWithFallback(remoteURL string, timeout time.Duration, retries int) (*Dataset, error) {
	if remoteURL == "" {
		return LoadEmbedded()
	}

	ds, err := FetchRemote(remoteURL, timeout, retries)
	if err == nil {
		return ds, nil
	}
	if errors.Is(err, common.ErrDatasetIntegrity) {
		return nil, err
	}

	common.LogWarn("遠端資料集抓取失敗，改用內嵌資料集",
		zap.String("url", remoteURL),
		zap.Error(err),
	)
	return LoadEmbedded()
}

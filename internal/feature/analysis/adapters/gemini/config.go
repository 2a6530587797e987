package gemini

import (
	"errors"
	"os"
)

// ErrMissingAPIKey は GEMINI_API_KEY が設定されていない場合のエラーです。
var ErrMissingAPIKey = errors.New("GEMINI_API_KEY is not set")

// Config はGemini APIクライアントの設定です。
type Config struct {
	APIKey  string
	Model   string
	BaseURL string // 空の場合はSDKの既定エンドポイント
}

// LoadConfig は環境変数から設定を読み込みます。
func LoadConfig() (Config, error) {
	cfg := Config{
		APIKey:  os.Getenv("GEMINI_API_KEY"),
		Model:   os.Getenv("GEMINI_MODEL"),
		BaseURL: os.Getenv("GEMINI_BASE_URL"),
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.APIKey == "" {
		return cfg, ErrMissingAPIKey
	}
	return cfg, nil
}

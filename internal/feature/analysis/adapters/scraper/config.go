// Package scraper は企業サイトから企業情報を取得するクライアントを提供します。
package scraper

import (
	"os"
	"time"
)

const defaultTimeout = 10 * time.Second

// Config はスクレイピングクライアントの設定です。
type Config struct {
	Timeout   time.Duration // 1リクエストあたりのタイムアウト
	UserAgent string        // 送信するUser-Agent
}

// LoadConfig は環境変数からスクレイピング設定を読み込みます。
// SCRAPE_TIMEOUT が未設定・不正な場合は10秒を使用します。
func LoadConfig(userAgent string) Config {
	timeout := defaultTimeout
	if v := os.Getenv("SCRAPE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			timeout = d
		}
	}
	return Config{Timeout: timeout, UserAgent: userAgent}
}

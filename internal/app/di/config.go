package di

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	analysishandler "resume_optimizer/internal/feature/analysis/transport/handler"
)

// AppConfig はサーバー全体の設定です。各アダプターの設定はそれぞれの LoadConfig で読み込みます。
type AppConfig struct {
	Port            string
	Theme           analysishandler.Theme
	CORSEnabled     bool
	ResultTTL       time.Duration // セッションの分析結果の保持期間（Redis使用時）
	CompanyCacheTTL time.Duration // 企業情報キャッシュの保持期間
	SessionMaxAge   time.Duration // セッションCookieとトークンの有効期間
	SecureCookie    bool
}

// LoadAppConfig は環境変数からAppConfigを読み込みます。
func LoadAppConfig() AppConfig {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return AppConfig{
		Port:            port,
		Theme:           analysishandler.ParseTheme(os.Getenv("UI_THEME")),
		CORSEnabled:     envBool("CORS_ENABLED", false),
		ResultTTL:       envDuration("RESULT_TTL", 24*time.Hour),
		CompanyCacheTTL: envDuration("COMPANY_CACHE_TTL", 6*time.Hour),
		SessionMaxAge:   envDuration("SESSION_MAX_AGE", 7*24*time.Hour),
		SecureCookie:    envBool("SECURE_COOKIE", false),
	}
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid boolean env, using default", "key", key, "value", v)
		return def
	}
	return b
}

func envDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env, using default", "key", key, "value", v)
		return def
	}
	return d
}

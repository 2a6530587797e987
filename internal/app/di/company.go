package di

import (
	"time"

	"github.com/redis/go-redis/v9"

	"resume_optimizer/internal/feature/analysis/adapters/scraper"
	"resume_optimizer/internal/feature/analysis/usecase"
	"resume_optimizer/internal/platform/cache"
	httpx "resume_optimizer/internal/platform/http"
)

// NewCompanyFetcher はブラウザ相当のUser-Agentを送るスクレイパーを生成し、Redisキャッシュでラップします。
// rdb が nil の場合、キャッシュはバイパスされます。
func NewCompanyFetcher(rdb *redis.Client, ttl time.Duration) usecase.CompanyFetcher {
	cfg := scraper.LoadConfig(httpx.BrowserUserAgent)
	client := httpx.NewHTTPClient(cfg.Timeout, cfg.UserAgent)
	return cache.NewCachingCompanyFetcher(rdb, ttl, scraper.NewCompanyScraper(client), "company")
}

// Package cache はリポジトリ・外部取得インターフェースのキャッシュ実装を提供します。
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"resume_optimizer/internal/feature/analysis/domain/entity"
	"resume_optimizer/internal/feature/analysis/usecase"
)

const (
	defaultCompanyTTL       = 6 * time.Hour
	defaultCompanyNamespace = "company"
)

// CachingCompanyFetcher はCompanyFetcherをRedisキャッシュでデコレートします。
// 取得に成功した企業情報のみをキャッシュし、失敗は毎回取得し直します。
type CachingCompanyFetcher struct {
	inner     usecase.CompanyFetcher
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// CachingCompanyFetcherがCompanyFetcherを実装していることをコンパイル時に検証します。
var _ usecase.CompanyFetcher = (*CachingCompanyFetcher)(nil)

// NewCachingCompanyFetcher はCompanyFetcherをRedisキャッシュでデコレートします。
// ttlが0以下の場合は6時間、namespaceが空の場合は "company" を使用します。
func NewCachingCompanyFetcher(rdb *redis.Client, ttl time.Duration, inner usecase.CompanyFetcher, namespace string) *CachingCompanyFetcher {
	if ttl <= 0 {
		ttl = defaultCompanyTTL
	}
	if namespace == "" {
		namespace = defaultCompanyNamespace
	}
	return &CachingCompanyFetcher{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// FetchCompany はキャッシュを確認し、無ければ内部のFetcherで取得してキャッシュします。
func (c *CachingCompanyFetcher) FetchCompany(ctx context.Context, rawURL string) (*entity.CompanySummary, error) {
	// Redis未設定時はキャッシュをバイパス
	if c.rdb == nil {
		return c.inner.FetchCompany(ctx, rawURL)
	}

	key := c.cacheKey(rawURL)

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.CompanySummary
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		// 破損したエントリは削除
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.FetchCompany(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// cacheKey はURLに対応するキャッシュキーを生成します。
func (c *CachingCompanyFetcher) cacheKey(rawURL string) string {
	return fmt.Sprintf("%s:%s", c.namespace, safe(strings.TrimSpace(rawURL)))
}

// safe はRedisキーで扱いにくい文字を置き換えます。
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}

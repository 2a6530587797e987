package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	analysisadapters "resume_optimizer/internal/feature/analysis/adapters"
	"resume_optimizer/internal/feature/analysis/usecase"
	"resume_optimizer/internal/platform/http/handler"
	"resume_optimizer/internal/platform/session"
)

// ResultStore はヘルスチェック可能な分析結果ストアです。
type ResultStore interface {
	usecase.ResultStore
	handler.Pinger
}

// NewResultStore はResultStoreの実装を生成します。
// Redisが利用可能ならRedis実装を、そうでなければGORM実装を返します。
func NewResultStore(rdb *redis.Client, db *gorm.DB, ttl time.Duration) ResultStore {
	if rdb != nil {
		return session.NewResultRedis(rdb, "analysis", ttl)
	}
	return analysisadapters.NewResultGorm(db)
}

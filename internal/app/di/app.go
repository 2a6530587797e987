// Package di はアプリケーションの依存関係を組み立てます。
package di

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"
	redisv9 "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"resume_optimizer/internal/app/router"
	"resume_optimizer/internal/feature/analysis/adapters/pdf"
	"resume_optimizer/internal/feature/analysis/domain/entity"
	analysishandler "resume_optimizer/internal/feature/analysis/transport/handler"
	"resume_optimizer/internal/feature/analysis/usecase"
	infradb "resume_optimizer/internal/platform/db"
	jwtmw "resume_optimizer/internal/platform/jwt"
	infraredis "resume_optimizer/internal/platform/redis"
)

// App はサーバーとして動作するために組み立てた依存関係です。
type App struct {
	Config AppConfig
	Engine *gin.Engine

	rdb *redisv9.Client
	db  *gorm.DB
}

// NewApp は設定を読み込み、ストア・外部クライアント・ハンドラー・ルーターを組み立てます。
// Redisに接続できない場合はGORM（既定はSQLite）で分析結果を保持します。
func NewApp(ctx context.Context) (*App, error) {
	cfg := LoadAppConfig()

	completer, err := NewCompleter(ctx)
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg}

	rdb, err := infraredis.NewRedisClient(ctx, infraredis.LoadConfig())
	switch {
	case err == nil:
		app.rdb = rdb
	case errors.Is(err, infraredis.ErrNotConfigured):
		slog.Info("Redis is not configured; using the database for session results")
	default:
		slog.Warn("Redis unavailable; using the database for session results", "error", err)
	}

	if app.rdb == nil {
		db, err := infradb.OpenDB(infradb.LoadConfigFromEnv())
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		app.db = db
	}

	store := NewResultStore(app.rdb, app.db, cfg.ResultTTL)
	fetcher := NewCompanyFetcher(app.rdb, cfg.CompanyCacheTTL)
	uc := usecase.NewAnalysisUsecase(pdf.NewExtractor(), fetcher, completer, store)

	h := analysishandler.NewAnalysisHandler(uc, analysishandler.ViewConfig{Theme: cfg.Theme})
	gen := jwtmw.NewGenerator(jwtmw.SecretFromEnv(), cfg.SessionMaxAge)

	app.Engine = router.NewRouter(router.Config{
		Analysis:    h,
		HealthCheck: store,
		Session:     jwtmw.SessionRequired(gen, cfg.SessionMaxAge, cfg.SecureCookie),
		CORSEnabled: cfg.CORSEnabled,
	})
	return app, nil
}

// Close は保持している接続を閉じます。
func (a *App) Close() {
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			slog.Error("failed to close Redis client", "error", err)
		}
	}
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				slog.Error("failed to close database", "error", err)
			}
		}
	}
}

// Analyzer はCLIから利用する分析ユースケースです。
type Analyzer interface {
	Run(ctx context.Context, in usecase.AnalyzeInput) (*entity.AnalysisResult, error)
}

// NewAnalyzer は結果を保存しない1回限りの分析用ユースケースを生成します（CLI用）。
// 企業情報のキャッシュは使用しません。
func NewAnalyzer(ctx context.Context) (Analyzer, error) {
	completer, err := NewCompleter(ctx)
	if err != nil {
		return nil, err
	}
	return usecase.NewAnalysisUsecase(pdf.NewExtractor(), NewCompanyFetcher(nil, 0), completer, nil), nil
}

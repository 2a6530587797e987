// Package router はHTTPルーティングを定義します。
package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	analysishandler "resume_optimizer/internal/feature/analysis/transport/handler"
	"resume_optimizer/internal/platform/http/handler"
)

// Config はルーターの構成要素です。
type Config struct {
	Analysis    *analysishandler.AnalysisHandler
	HealthCheck handler.Pinger  // nil の場合はバックエンドを確認しない
	Session     gin.HandlerFunc // セッションIDを設定するミドルウェア
	CORSEnabled bool
}

// NewRouter はルーティングを設定したGinエンジンを返します。
func NewRouter(cfg Config) *gin.Engine {
	r := gin.Default()
	r.SetHTMLTemplate(analysishandler.Templates())

	// CORSはルート登録前に適用する
	if cfg.CORSEnabled {
		r.Use(cors.Default())
	}

	// 導通確認用（セッション不要）
	health := handler.Health(cfg.HealthCheck)
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)
	r.OPTIONS("/healthz", health)

	// セッション単位で結果を保持するルート
	s := r.Group("/")
	s.Use(cfg.Session)
	{
		s.GET("/", cfg.Analysis.Index)
		s.POST("/analyze", cfg.Analysis.Analyze)
		s.GET("/report.txt", cfg.Analysis.DownloadText)
		s.GET("/report.xlsx", cfg.Analysis.DownloadExcel)

		v1 := s.Group("/v1")
		v1.POST("/company", cfg.Analysis.CompanyInfo)
		v1.POST("/analyses", cfg.Analysis.AnalyzeAPI)
	}

	return r
}

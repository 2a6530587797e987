package adapters

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"resume_optimizer/internal/feature/analysis/domain/entity"
	"resume_optimizer/internal/feature/analysis/usecase"
)

// resultGorm はResultStoreのGORM実装です。
type resultGorm struct {
	db *gorm.DB
}

// resultGormがResultStoreを実装していることをコンパイル時に検証します。
var _ usecase.ResultStore = (*resultGorm)(nil)

// NewResultGorm はresultGormの新しいインスタンスを生成します。
func NewResultGorm(db *gorm.DB) *resultGorm {
	return &resultGorm{db: db}
}

// upsertColumns は既存行を上書きする列です。
// UpdateAll は autoCreateTime の created_at を更新対象から外すため、明示的に列挙します。
var upsertColumns = []string{
	"raw_text", "match_score", "score_found", "has_company",
	"company_name", "company_description", "company_about", "company_website",
	"created_at", "updated_at",
}

// Save はセッションの分析結果をUPSERTします。
func (r *resultGorm) Save(ctx context.Context, sessionID string, result *entity.AnalysisResult) error {
	if result == nil {
		return errors.New("nil analysis result")
	}
	m := AnalysisResultModelFromEntity(sessionID, result)
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}},
		DoUpdates: clause.AssignmentColumns(upsertColumns),
	}).Create(m).Error; err != nil {
		return fmt.Errorf("upsert analysis result: %w", err)
	}
	return nil
}

// Find はセッションの最新の分析結果を返します。
func (r *resultGorm) Find(ctx context.Context, sessionID string) (*entity.AnalysisResult, error) {
	var m AnalysisResultModel
	if err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrResultNotFound
		}
		return nil, err
	}
	return m.ToEntity(), nil
}

// Ping はデータベース接続を確認します。
func (r *resultGorm) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

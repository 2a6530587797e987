// Package adapters はanalysis機能のリポジトリ実装を提供します。
package adapters

import (
	"time"

	"resume_optimizer/internal/feature/analysis/domain/entity"
)

// AnalysisResultModel は analysis_results テーブルのGORMモデルです。
// セッションごとに最新の1件だけを保持します。
type AnalysisResultModel struct {
	SessionID          string `gorm:"primaryKey;size:64"`
	RawText            string `gorm:"type:text;not null"`
	MatchScore         int
	ScoreFound         bool
	HasCompany         bool
	CompanyName        string    `gorm:"size:512"`
	CompanyDescription string    `gorm:"type:text"`
	CompanyAbout       string    `gorm:"type:text"`
	CompanyWebsite     string    `gorm:"size:2048"`
	CreatedAt          time.Time `gorm:"not null"`
	UpdatedAt          time.Time
}

// TableName はGORM用のテーブル名を返します。
func (AnalysisResultModel) TableName() string {
	return "analysis_results"
}

// ToEntity はGORMモデルをドメインエンティティに変換します。
func (m *AnalysisResultModel) ToEntity() *entity.AnalysisResult {
	r := &entity.AnalysisResult{
		RawText:    m.RawText,
		MatchScore: entity.MatchScore{Value: m.MatchScore, Found: m.ScoreFound},
		CreatedAt:  m.CreatedAt,
	}
	if m.HasCompany {
		r.Company = &entity.CompanySummary{
			Name:        m.CompanyName,
			Description: m.CompanyDescription,
			About:       m.CompanyAbout,
			Website:     m.CompanyWebsite,
		}
	}
	return r
}

// AnalysisResultModelFromEntity はドメインエンティティをGORMモデルに変換します。
func AnalysisResultModelFromEntity(sessionID string, r *entity.AnalysisResult) *AnalysisResultModel {
	m := &AnalysisResultModel{
		SessionID:  sessionID,
		RawText:    r.RawText,
		MatchScore: r.MatchScore.Value,
		ScoreFound: r.MatchScore.Found,
		CreatedAt:  r.CreatedAt,
	}
	if c := r.Company; c != nil {
		m.HasCompany = true
		m.CompanyName = c.Name
		m.CompanyDescription = c.Description
		m.CompanyAbout = c.About
		m.CompanyWebsite = c.Website
	}
	return m
}

package dto

import (
	"time"

	"resume_optimizer/internal/feature/analysis/domain/entity"
)

// SectionResponse はレポートの1セクションのDTOです。
type SectionResponse struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Icon     string `json:"icon"`
	Body     string `json:"body"`
}

// AnalysisResponse は分析レポートのレスポンスDTOです。
type AnalysisResponse struct {
	Score      int               `json:"score"`       // スコア（score_found=false の場合は0）
	ScoreFound bool              `json:"score_found"` // 応答にスコアの記述があったか
	Tier       string            `json:"tier"`
	Color      string            `json:"color"`
	Message    string            `json:"message"`
	Sections   []SectionResponse `json:"sections"`
	RawText    string            `json:"raw_text"`
	Company    *CompanyResponse  `json:"company,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}

// NewAnalysisResponse はレポートからレスポンスDTOを生成します。
func NewAnalysisResponse(r *entity.Report) AnalysisResponse {
	sections := make([]SectionResponse, 0, len(r.Cards))
	for _, card := range r.Cards {
		sections = append(sections, SectionResponse{
			Title:    card.Title,
			Category: string(card.Category),
			Icon:     card.Category.Icon(),
			Body:     card.Body,
		})
	}
	return AnalysisResponse{
		Score:      r.Result.MatchScore.Value,
		ScoreFound: r.Result.MatchScore.Found,
		Tier:       string(r.Indicator.Tier),
		Color:      r.Indicator.Color,
		Message:    r.Indicator.Message,
		Sections:   sections,
		RawText:    r.Result.RawText,
		Company:    NewCompanyResponse(r.Result.Company),
		CreatedAt:  r.Result.CreatedAt,
	}
}

package dto

import "resume_optimizer/internal/feature/analysis/domain/entity"

// CompanyRequest は企業情報取得リクエストのDTOです。
type CompanyRequest struct {
	URL string `json:"url" binding:"required"` // 企業サイトのURL
}

// CompanyResponse は企業情報のレスポンスDTOです。
type CompanyResponse struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	About       string `json:"about"`
	Website     string `json:"website"`
}

// NewCompanyResponse はエンティティからレスポンスDTOを生成します。nil の場合は nil を返します。
func NewCompanyResponse(c *entity.CompanySummary) *CompanyResponse {
	if c == nil {
		return nil
	}
	return &CompanyResponse{
		Name:        c.Name,
		Description: c.Description,
		About:       c.About,
		Website:     c.Website,
	}
}

// Package usecase はanalysisフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"resume_optimizer/internal/feature/analysis/domain/entity"
	"resume_optimizer/internal/platform/textclean"
)

// DocumentExtractor はPDFのバイト列からテキストを抽出します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type DocumentExtractor interface {
	// ExtractText は全ページのテキストをページ順に改行で連結して返します。
	ExtractText(ctx context.Context, data []byte) (string, error)
}

// CompanyFetcher は企業サイトから企業情報を取得します。
type CompanyFetcher interface {
	FetchCompany(ctx context.Context, rawURL string) (*entity.CompanySummary, error)
}

// Completer はプロンプトを外部のテキスト生成APIに送信し、応答テキストを返します。
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ResultStore はセッションIDごとに最新の分析結果を保持します。
type ResultStore interface {
	// Save はセッションの分析結果を上書き保存します。
	Save(ctx context.Context, sessionID string, result *entity.AnalysisResult) error
	// Find はセッションの分析結果を返します。存在しない場合は ErrResultNotFound を返します。
	Find(ctx context.Context, sessionID string) (*entity.AnalysisResult, error)
}

// AnalyzeInput は1回の分析に必要な入力です。
// 求人票はPDF（JobPDF）か貼り付けテキスト（JobText）のどちらかで指定し、PDFが優先されます。
type AnalyzeInput struct {
	JobPDF     []byte
	JobText    string
	ResumePDF  []byte
	CompanyURL string
}

// analysisUsecase は履歴書と求人票のマッチ分析を行います。
type analysisUsecase struct {
	extractor DocumentExtractor
	companies CompanyFetcher
	completer Completer
	results   ResultStore
	now       func() time.Time
}

// NewAnalysisUsecase はanalysisUsecaseの新しいインスタンスを生成します。
// results は Run のみを使う場合（CLIなど）は nil で構いません。
func NewAnalysisUsecase(ex DocumentExtractor, cf CompanyFetcher, c Completer, results ResultStore) *analysisUsecase {
	return &analysisUsecase{
		extractor: ex,
		companies: cf,
		completer: c,
		results:   results,
		now:       time.Now,
	}
}

// LookupCompany は企業情報を取得します。取得に失敗した場合はログを出力して nil を返します。
func (u *analysisUsecase) LookupCompany(ctx context.Context, rawURL string) *entity.CompanySummary {
	summary, err := u.companies.FetchCompany(ctx, rawURL)
	if err != nil {
		slog.Warn("error scraping company website", "url", rawURL, "error", err)
		return nil
	}
	return summary
}

// Run はPDF抽出 → 企業情報取得 → テキスト生成 → スコア抽出を順に実行します。
// 結果の保存は行いません。
func (u *analysisUsecase) Run(ctx context.Context, in AnalyzeInput) (*entity.AnalysisResult, error) {
	if len(in.ResumePDF) == 0 || (len(in.JobPDF) == 0 && strings.TrimSpace(in.JobText) == "") {
		return nil, ErrMissingDocument
	}

	jobText := in.JobText
	if len(in.JobPDF) > 0 {
		var err error
		jobText, err = u.extract(ctx, "job description", in.JobPDF)
		if err != nil {
			return nil, err
		}
	}

	resumeText, err := u.extract(ctx, "resume", in.ResumePDF)
	if err != nil {
		return nil, err
	}

	var company *entity.CompanySummary
	if rawURL := strings.TrimSpace(in.CompanyURL); rawURL != "" {
		company = u.LookupCompany(ctx, rawURL)
	}

	prompt := BuildPrompt(jobText, resumeText, company)
	reply, err := u.completer.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompletionFailed, err)
	}

	raw := textclean.StripTags(reply)
	return &entity.AnalysisResult{
		RawText:    raw,
		MatchScore: ExtractMatchScore(raw),
		Company:    company,
		CreatedAt:  u.now(),
	}, nil
}

// Analyze は分析を実行し、結果をセッションに保存します。前回の結果は上書きされます。
func (u *analysisUsecase) Analyze(ctx context.Context, sessionID string, in AnalyzeInput) (*entity.Report, error) {
	result, err := u.Run(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := u.results.Save(ctx, sessionID, result); err != nil {
		return nil, fmt.Errorf("failed to store analysis result: %w", err)
	}
	slog.Info("analysis completed",
		"session_id", sessionID,
		"match_score", result.MatchScore.Value,
		"score_found", result.MatchScore.Found,
		"company", result.Company != nil)
	return BuildReport(result), nil
}

// LatestReport はセッションに保存された最新の分析結果からレポートを組み立てます。
func (u *analysisUsecase) LatestReport(ctx context.Context, sessionID string) (*entity.Report, error) {
	result, err := u.results.Find(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return BuildReport(result), nil
}

// extract はPDFからテキストを抽出します。空のテキストも抽出失敗として扱います。
func (u *analysisUsecase) extract(ctx context.Context, label string, data []byte) (string, error) {
	text, err := u.extractor.ExtractText(ctx, data)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrExtraction, label, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: %s: no text found", ErrExtraction, label)
	}
	return text, nil
}

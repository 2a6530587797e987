// Package handler はanalysisフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume_optimizer/internal/feature/analysis/adapters/export"
	"resume_optimizer/internal/feature/analysis/domain/entity"
	"resume_optimizer/internal/feature/analysis/transport/http/dto"
	"resume_optimizer/internal/feature/analysis/usecase"
	jwtmw "resume_optimizer/internal/platform/jwt"
)

const (
	textReportName  = "resume_optimization_report.txt"
	excelReportName = "resume_optimization_report.xlsx"

	msgMissingFiles   = "Please upload both files to proceed"
	msgExtraction     = "Failed to process one or both documents"
	msgServiceFailure = "The analysis service could not complete the request. Your previous report is unchanged; please try again."
	msgInternal       = "Something went wrong while analyzing your documents"
	msgNoReport       = "No analysis available yet"
)

// AnalysisUsecase は分析のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type AnalysisUsecase interface {
	Analyze(ctx context.Context, sessionID string, in usecase.AnalyzeInput) (*entity.Report, error)
	LatestReport(ctx context.Context, sessionID string) (*entity.Report, error)
	LookupCompany(ctx context.Context, rawURL string) *entity.CompanySummary
}

// AnalysisHandler は分析ページとAPIのHTTPリクエストを処理します。
type AnalysisHandler struct {
	uc   AnalysisUsecase
	view ViewConfig
}

// NewAnalysisHandler はAnalysisHandlerの新しいインスタンスを生成します。
func NewAnalysisHandler(uc AnalysisUsecase, view ViewConfig) *AnalysisHandler {
	return &AnalysisHandler{uc: uc, view: view}
}

// Index はアップロードフォームとセッションの最新レポートを表示します。
//
// エンドポイント: GET /
func (h *AnalysisHandler) Index(c *gin.Context) {
	report := h.latestReport(c)
	c.HTML(http.StatusOK, indexTemplate, h.view.newPage(report, nil, formValues{}))
}

// Analyze はフォームから分析を実行し、成功時はトップページへリダイレクトします。
// 失敗時はトップページを再描画し、前回のレポートはそのまま表示します。
//
// エンドポイント: POST /analyze
// Content-Type: multipart/form-data
// フィールド: job_file（PDF）または job_text、resume_file（PDF）、company_url（任意）
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	in, err := h.bindInput(c)
	form := formValues{
		JobText:    c.PostForm("job_text"),
		CompanyURL: c.PostForm("company_url"),
	}
	if err == nil {
		_, err = h.uc.Analyze(c.Request.Context(), jwtmw.SessionID(c), in)
	}
	if err != nil {
		status, n := classifyError(err)
		c.HTML(status, indexTemplate, h.view.newPage(h.latestReport(c), n, form))
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

// AnalyzeAPI は分析を実行し、レポートをJSONで返します。
//
// エンドポイント: POST /v1/analyses
// Content-Type: multipart/form-data（フィールドは Analyze と同じ）
func (h *AnalysisHandler) AnalyzeAPI(c *gin.Context) {
	in, err := h.bindInput(c)
	var report *entity.Report
	if err == nil {
		report, err = h.uc.Analyze(c.Request.Context(), jwtmw.SessionID(c), in)
	}
	if err != nil {
		status, n := classifyError(err)
		c.JSON(status, dto.ErrorResponse{Error: n.Message})
		return
	}
	c.JSON(http.StatusOK, dto.NewAnalysisResponse(report))
}

// CompanyInfo は企業サイトのURLから企業情報を取得します。
//
// エンドポイント: POST /v1/company
// リクエスト: {"url": "https://www.company.com"}
func (h *AnalysisHandler) CompanyInfo(c *gin.Context) {
	var req dto.CompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.URL) == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "url is required"})
		return
	}

	summary := h.uc.LookupCompany(c.Request.Context(), strings.TrimSpace(req.URL))
	if summary == nil {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "no company information available"})
		return
	}
	c.JSON(http.StatusOK, dto.NewCompanyResponse(summary))
}

// DownloadText は最新の分析結果の全文をテキストファイルとして返します。
//
// エンドポイント: GET /report.txt
func (h *AnalysisHandler) DownloadText(c *gin.Context) {
	report, ok := h.requireReport(c)
	if !ok {
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+textReportName+`"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(report.Result.RawText))
}

// DownloadExcel は最新の分析結果をxlsxとして返します。
//
// エンドポイント: GET /report.xlsx
func (h *AnalysisHandler) DownloadExcel(c *gin.Context) {
	report, ok := h.requireReport(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.WriteExcel(&buf, report); err != nil {
		slog.Error("failed to build spreadsheet", "error", err)
		c.String(http.StatusInternalServerError, "failed to build spreadsheet")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+excelReportName+`"`)
	c.Data(http.StatusOK, export.ExcelContentType, buf.Bytes())
}

// bindInput はmultipartフォームから分析入力を組み立てます。
func (h *AnalysisHandler) bindInput(c *gin.Context) (usecase.AnalyzeInput, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestBytes)

	jobPDF, err := readPDFUpload(c, "job_file")
	if err != nil {
		return usecase.AnalyzeInput{}, err
	}
	resumePDF, err := readPDFUpload(c, "resume_file")
	if err != nil {
		return usecase.AnalyzeInput{}, err
	}

	return usecase.AnalyzeInput{
		JobPDF:     jobPDF,
		JobText:    c.PostForm("job_text"),
		ResumePDF:  resumePDF,
		CompanyURL: c.PostForm("company_url"),
	}, nil
}

// latestReport はセッションの最新レポートを返します。無い場合や取得失敗時は nil です。
func (h *AnalysisHandler) latestReport(c *gin.Context) *entity.Report {
	report, err := h.uc.LatestReport(c.Request.Context(), jwtmw.SessionID(c))
	if err != nil {
		if !errors.Is(err, usecase.ErrResultNotFound) {
			slog.Error("failed to load latest report", "error", err)
		}
		return nil
	}
	return report
}

// requireReport は最新レポートを返します。無い場合は404を書き込み false を返します。
func (h *AnalysisHandler) requireReport(c *gin.Context) (*entity.Report, bool) {
	report, err := h.uc.LatestReport(c.Request.Context(), jwtmw.SessionID(c))
	switch {
	case err == nil:
		return report, true
	case errors.Is(err, usecase.ErrResultNotFound):
		c.String(http.StatusNotFound, msgNoReport)
	default:
		slog.Error("failed to load latest report", "error", err)
		c.String(http.StatusInternalServerError, msgInternal)
	}
	return nil, false
}

// classifyError はエラーをHTTPステータスと表示メッセージに対応付けます。
func classifyError(err error) (int, *notice) {
	var maxErr *http.MaxBytesError
	switch {
	case errors.Is(err, usecase.ErrMissingDocument):
		return http.StatusBadRequest, &notice{Kind: "warning", Message: msgMissingFiles}
	case errors.As(err, &maxErr):
		return http.StatusRequestEntityTooLarge, &notice{Kind: "warning", Message: errFileTooLarge.Error()}
	case errors.Is(err, errNotPDF), errors.Is(err, errFileTooLarge), errors.Is(err, errBadForm):
		return http.StatusBadRequest, &notice{Kind: "warning", Message: err.Error()}
	case errors.Is(err, usecase.ErrExtraction):
		slog.Warn("document extraction failed", "error", err)
		return http.StatusBadRequest, &notice{Kind: "error", Message: msgExtraction}
	case errors.Is(err, usecase.ErrCompletionFailed):
		slog.Error("analysis request failed", "error", err)
		return http.StatusBadGateway, &notice{Kind: "service", Message: msgServiceFailure}
	default:
		slog.Error("analysis failed", "error", err)
		return http.StatusInternalServerError, &notice{Kind: "error", Message: msgInternal}
	}
}

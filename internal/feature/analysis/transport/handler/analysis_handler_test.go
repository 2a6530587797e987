package handler_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume_optimizer/internal/feature/analysis/domain/entity"
	"resume_optimizer/internal/feature/analysis/transport/handler"
	"resume_optimizer/internal/feature/analysis/usecase"
	jwtmw "resume_optimizer/internal/platform/jwt"
)

const testSessionID = "sess-1"

var fakePDF = []byte("%PDF-1.4 fake document")

// mockAnalysisUsecase はAnalysisUsecaseインターフェースのモック実装です。
type mockAnalysisUsecase struct {
	AnalyzeFunc       func(ctx context.Context, sessionID string, in usecase.AnalyzeInput) (*entity.Report, error)
	LatestReportFunc  func(ctx context.Context, sessionID string) (*entity.Report, error)
	LookupCompanyFunc func(ctx context.Context, rawURL string) *entity.CompanySummary

	analyzeCalls int
}

func (m *mockAnalysisUsecase) Analyze(ctx context.Context, sessionID string, in usecase.AnalyzeInput) (*entity.Report, error) {
	m.analyzeCalls++
	return m.AnalyzeFunc(ctx, sessionID, in)
}

func (m *mockAnalysisUsecase) LatestReport(ctx context.Context, sessionID string) (*entity.Report, error) {
	if m.LatestReportFunc == nil {
		return nil, usecase.ErrResultNotFound
	}
	return m.LatestReportFunc(ctx, sessionID)
}

func (m *mockAnalysisUsecase) LookupCompany(ctx context.Context, rawURL string) *entity.CompanySummary {
	return m.LookupCompanyFunc(ctx, rawURL)
}

// sampleReport はテスト用のレポートを組み立てます。
func sampleReport(raw string) *entity.Report {
	return usecase.BuildReport(&entity.AnalysisResult{
		RawText:    raw,
		MatchScore: usecase.ExtractMatchScore(raw),
		Company: &entity.CompanySummary{
			Name:        "Acme",
			Description: "Rockets",
			About:       "We build rockets...",
			Website:     "https://acme.example",
		},
		CreatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	})
}

const sampleRaw = "## Match Score: 72%\nok\n## Key Recommendations\n- add <b>metrics</b>\n- quantify impact\n## Action Items\n1. rewrite"

// setupRouter はセッションIDを固定したテスト用ルーターを作成します。
func setupRouter(uc handler.AnalysisUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.SetHTMLTemplate(handler.Templates())
	r.Use(func(c *gin.Context) {
		c.Set(jwtmw.ContextSessionID, testSessionID)
		c.Next()
	})

	h := handler.NewAnalysisHandler(uc, handler.ViewConfig{
		Theme:        handler.ThemeDark,
		PickGradient: func(n int) int { return 2 },
	})
	r.GET("/", h.Index)
	r.POST("/analyze", h.Analyze)
	r.POST("/v1/analyses", h.AnalyzeAPI)
	r.POST("/v1/company", h.CompanyInfo)
	r.GET("/report.txt", h.DownloadText)
	r.GET("/report.xlsx", h.DownloadExcel)
	return r
}

type upload struct {
	field, name string
	content     []byte
}

// createMultipartRequest はテスト用のマルチパートリクエストを生成するヘルパー関数です。
func createMultipartRequest(t *testing.T, path string, fields map[string]string, files ...upload) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	for _, f := range files {
		part, err := writer.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = io.Copy(part, bytes.NewReader(f.content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestAnalysisHandler_Index(t *testing.T) {
	t.Run("no previous report", func(t *testing.T) {
		r := setupRouter(&mockAnalysisUsecase{})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "How It Works")
		assert.Contains(t, body, `class="theme-dark"`)
		assert.Contains(t, body, handler.Gradients[2])
		assert.NotContains(t, body, "Optimization Report")
	})

	t.Run("renders latest report", func(t *testing.T) {
		r := setupRouter(&mockAnalysisUsecase{
			LatestReportFunc: func(ctx context.Context, sessionID string) (*entity.Report, error) {
				assert.Equal(t, testSessionID, sessionID)
				return sampleReport(sampleRaw), nil
			},
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "Optimization Report")
		assert.Contains(t, body, "Match Score: 72%")
		assert.Contains(t, body, "width: 72%")
		assert.Contains(t, body, "Good match - some optimizations could make it perfect")
		assert.Contains(t, body, `class="analysis-card recommendation-card"`)
		assert.Contains(t, body, `class="analysis-card action-card"`)
		assert.Contains(t, body, "- add metrics<br>- quantify impact")
		assert.Contains(t, body, `class="company-card"`)
		assert.Contains(t, body, `href="https://acme.example"`)
		assert.Contains(t, body, `href="/report.txt"`)
	})

	t.Run("report without score", func(t *testing.T) {
		r := setupRouter(&mockAnalysisUsecase{
			LatestReportFunc: func(ctx context.Context, sessionID string) (*entity.Report, error) {
				return usecase.BuildReport(&entity.AnalysisResult{RawText: "## Notes\nnothing"}), nil
			},
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Match Score: N/A")
		assert.NotContains(t, w.Body.String(), `class="progress-bar"`)
	})

	t.Run("store failure still renders the form", func(t *testing.T) {
		r := setupRouter(&mockAnalysisUsecase{
			LatestReportFunc: func(ctx context.Context, sessionID string) (*entity.Report, error) {
				return nil, errors.New("redis down")
			},
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Analyze Documents")
	})
}

func TestAnalysisHandler_Analyze(t *testing.T) {
	previous := func(ctx context.Context, sessionID string) (*entity.Report, error) {
		return sampleReport("## Match Score: 35%\n## Skills Gap Analysis\nold"), nil
	}

	tests := []struct {
		name           string
		fields         map[string]string
		files          []upload
		analyzeErr     error
		expectedStatus int
		expectedBody   []string
		expectCalled   bool
	}{
		{
			name:           "success: redirects to index",
			fields:         map[string]string{"company_url": "https://acme.example", "job_text": ""},
			files:          []upload{{"job_file", "jd.pdf", fakePDF}, {"resume_file", "cv.PDF", fakePDF}},
			expectedStatus: http.StatusSeeOther,
			expectCalled:   true,
		},
		{
			name:           "error: missing resume",
			fields:         map[string]string{"job_text": "Senior Go engineer", "company_url": "https://acme.example"},
			analyzeErr:     usecase.ErrMissingDocument,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   []string{"Please upload both files to proceed", "Senior Go engineer", `value="https://acme.example"`},
			expectCalled:   true,
		},
		{
			name:           "error: non-pdf extension",
			files:          []upload{{"resume_file", "cv.docx", fakePDF}},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   []string{"only PDF files are supported"},
		},
		{
			name:           "error: pdf extension without pdf content",
			files:          []upload{{"resume_file", "cv.pdf", []byte("hello")}},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   []string{"only PDF files are supported"},
		},
		{
			name:           "error: unreadable pdf",
			files:          []upload{{"job_file", "jd.pdf", fakePDF}, {"resume_file", "cv.pdf", fakePDF}},
			analyzeErr:     fmt.Errorf("%w: resume: broken xref", usecase.ErrExtraction),
			expectedStatus: http.StatusBadRequest,
			expectedBody:   []string{"Failed to process one or both documents"},
			expectCalled:   true,
		},
		{
			name:           "error: completion failure keeps previous report",
			files:          []upload{{"job_file", "jd.pdf", fakePDF}, {"resume_file", "cv.pdf", fakePDF}},
			analyzeErr:     fmt.Errorf("%w: %w", usecase.ErrCompletionFailed, errors.New("quota exceeded")),
			expectedStatus: http.StatusBadGateway,
			expectedBody:   []string{"notice-service", "Match Score: 35%"},
			expectCalled:   true,
		},
		{
			name:           "error: unexpected failure",
			files:          []upload{{"job_file", "jd.pdf", fakePDF}, {"resume_file", "cv.pdf", fakePDF}},
			analyzeErr:     errors.New("failed to store analysis result"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   []string{"Something went wrong"},
			expectCalled:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockAnalysisUsecase{
				LatestReportFunc: previous,
				AnalyzeFunc: func(ctx context.Context, sessionID string, in usecase.AnalyzeInput) (*entity.Report, error) {
					assert.Equal(t, testSessionID, sessionID)
					if tt.analyzeErr != nil {
						return nil, tt.analyzeErr
					}
					assert.Equal(t, fakePDF, in.JobPDF)
					assert.Equal(t, fakePDF, in.ResumePDF)
					assert.Equal(t, "https://acme.example", in.CompanyURL)
					return sampleReport(sampleRaw), nil
				},
			}
			r := setupRouter(uc)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, createMultipartRequest(t, "/analyze", tt.fields, tt.files...))

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusSeeOther {
				assert.Equal(t, "/", w.Header().Get("Location"))
			}
			for _, s := range tt.expectedBody {
				assert.Contains(t, w.Body.String(), s)
			}
			assert.Equal(t, tt.expectCalled, uc.analyzeCalls == 1)
		})
	}
}

func TestAnalysisHandler_Analyze_FileTooLarge(t *testing.T) {
	uc := &mockAnalysisUsecase{}
	r := setupRouter(uc)

	big := append(append([]byte{}, fakePDF...), bytes.Repeat([]byte("x"), handler.MaxUploadBytes)...)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, createMultipartRequest(t, "/analyze", nil, upload{"resume_file", "cv.pdf", big}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "10MB")
	assert.Zero(t, uc.analyzeCalls)
}

func TestAnalysisHandler_AnalyzeAPI(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		r := setupRouter(&mockAnalysisUsecase{
			AnalyzeFunc: func(ctx context.Context, sessionID string, in usecase.AnalyzeInput) (*entity.Report, error) {
				assert.Equal(t, "Go engineer", in.JobText)
				return sampleReport("## Match Score: 85%\n## Action Items\n1. ship"), nil
			},
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, createMultipartRequest(t, "/v1/analyses",
			map[string]string{"job_text": "Go engineer"},
			upload{"resume_file", "cv.pdf", fakePDF}))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{
			"score": 85,
			"score_found": true,
			"tier": "excellent",
			"color": "#4CAF50",
			"message": "Excellent match! High probability of getting placed",
			"sections": [{"title": "Action Items", "category": "action", "icon": "✅", "body": "1. ship"}],
			"raw_text": "## Match Score: 85%\n## Action Items\n1. ship",
			"company": {"name": "Acme", "description": "Rockets", "about": "We build rockets...", "website": "https://acme.example"},
			"created_at": "2026-03-01T09:00:00Z"
		}`, w.Body.String())
	})

	t.Run("completion failure", func(t *testing.T) {
		r := setupRouter(&mockAnalysisUsecase{
			AnalyzeFunc: func(ctx context.Context, sessionID string, in usecase.AnalyzeInput) (*entity.Report, error) {
				return nil, fmt.Errorf("%w: %w", usecase.ErrCompletionFailed, errors.New("timeout"))
			},
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, createMultipartRequest(t, "/v1/analyses", nil,
			upload{"job_file", "jd.pdf", fakePDF}, upload{"resume_file", "cv.pdf", fakePDF}))

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, w.Body.String(), `"error"`)
	})
}

func TestAnalysisHandler_CompanyInfo(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		summary        *entity.CompanySummary
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "success",
			body:           `{"url": " https://acme.example "}`,
			summary:        &entity.CompanySummary{Name: "Acme", Description: "No description found", Website: "https://acme.example"},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"name":"Acme","description":"No description found","about":"","website":"https://acme.example"}`,
		},
		{
			name:           "not available",
			body:           `{"url": "https://down.example"}`,
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"no company information available"}`,
		},
		{
			name:           "missing url",
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"url is required"}`,
		},
		{
			name:           "invalid json",
			body:           `{`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"url is required"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupRouter(&mockAnalysisUsecase{
				LookupCompanyFunc: func(ctx context.Context, rawURL string) *entity.CompanySummary {
					assert.False(t, strings.HasPrefix(rawURL, " "))
					return tt.summary
				},
			})

			req := httptest.NewRequest(http.MethodPost, "/v1/company", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestAnalysisHandler_Downloads(t *testing.T) {
	found := func(ctx context.Context, sessionID string) (*entity.Report, error) {
		return sampleReport(sampleRaw), nil
	}
	missing := func(ctx context.Context, sessionID string) (*entity.Report, error) {
		return nil, usecase.ErrResultNotFound
	}
	broken := func(ctx context.Context, sessionID string) (*entity.Report, error) {
		return nil, errors.New("db down")
	}

	t.Run("text report", func(t *testing.T) {
		r := setupRouter(&mockAnalysisUsecase{LatestReportFunc: found})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/report.txt", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="resume_optimization_report.txt"`, w.Header().Get("Content-Disposition"))
		assert.Equal(t, sampleRaw, w.Body.String())
	})

	t.Run("spreadsheet report", func(t *testing.T) {
		r := setupRouter(&mockAnalysisUsecase{LatestReportFunc: found})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/report.xlsx", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Disposition"), "resume_optimization_report.xlsx")
		assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")), "xlsx should be a zip archive")
	})

	for _, path := range []string{"/report.txt", "/report.xlsx"} {
		t.Run("not found "+path, func(t *testing.T) {
			r := setupRouter(&mockAnalysisUsecase{LatestReportFunc: missing})
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusNotFound, w.Code)
		})

		t.Run("store error "+path, func(t *testing.T) {
			r := setupRouter(&mockAnalysisUsecase{LatestReportFunc: broken})
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusInternalServerError, w.Code)
		})
	}
}

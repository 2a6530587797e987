package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"resume_optimizer/internal/feature/analysis/adapters/pdf"
)

const (
	// MaxUploadBytes はアップロード1ファイルあたりの上限です。
	MaxUploadBytes = 10 << 20
	// maxRequestBytes はフォーム全体（PDF2つ＋テキスト）の上限です。
	maxRequestBytes = 2*MaxUploadBytes + 1<<20
)

var (
	errBadForm      = errors.New("malformed upload form")
	errNotPDF       = errors.New("only PDF files are supported")
	errFileTooLarge = fmt.Errorf("file exceeds the %dMB limit", MaxUploadBytes>>20)
)

// readPDFUpload はフォームのファイルを読み込みます。
// フィールドが無い場合は (nil, nil) を返します。拡張子とマジックバイトの両方でPDFを確認します。
func readPDFUpload(c *gin.Context, field string) ([]byte, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %w", errBadForm, err)
	}
	if fh.Size > MaxUploadBytes {
		return nil, errFileTooLarge
	}
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".pdf") {
		return nil, errNotPDF
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("failed to close uploaded file", "field", field, "error", err)
		}
	}()

	data, err := io.ReadAll(io.LimitReader(f, MaxUploadBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxUploadBytes {
		return nil, errFileTooLarge
	}
	if !pdf.IsPDF(data) {
		return nil, errNotPDF
	}
	return data, nil
}

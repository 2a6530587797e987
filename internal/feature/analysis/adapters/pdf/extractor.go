// Package pdf はledongthuc/pdfを使用したPDFテキスト抽出を提供します。
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"resume_optimizer/internal/feature/analysis/usecase"
)

// ExtractionError はPDFとして読み込めない、または読めるページが無い場合のエラーです。
type ExtractionError struct {
	Reason string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("pdf extraction: %s: %v", e.Reason, e.Err)
	}
	return "pdf extraction: " + e.Reason
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Extractor はアップロードされたPDFのバイト列からテキストを抽出します。
type Extractor struct{}

// ExtractorがDocumentExtractorを実装していることをコンパイル時に検証します。
var _ usecase.DocumentExtractor = (*Extractor)(nil)

// NewExtractor はExtractorの新しいインスタンスを生成します。
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractText は全ページのテキストをページ順に改行で連結して返します。
// 一部のページだけ読めた場合もそのまま返しますが、1ページも読めない場合は ExtractionError を返します。
func (e *Extractor) ExtractText(_ context.Context, data []byte) (text string, err error) {
	if len(data) == 0 {
		return "", &ExtractionError{Reason: "empty document"}
	}

	// ledongthuc/pdf は壊れた構造に対してpanicすることがある
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &ExtractionError{Reason: "malformed document", Err: fmt.Errorf("%v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Reason: "not a valid PDF", Err: err}
	}

	numPages := reader.NumPage()
	if numPages == 0 {
		return "", &ExtractionError{Reason: "document has no pages"}
	}

	pages := make([]string, 0, numPages)
	readable := 0
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		readable++
		pages = append(pages, pageText)
	}

	if readable == 0 {
		return "", &ExtractionError{Reason: "no readable pages"}
	}

	return strings.Join(pages, "\n"), nil
}

// IsPDF はデータがPDFのマジックバイト（%PDF-）で始まるかを返します。
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(data, []byte("%PDF-"))
}

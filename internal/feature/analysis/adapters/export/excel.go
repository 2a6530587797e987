// Package export は分析レポートをダウンロード用の形式に書き出します。
package export

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"resume_optimizer/internal/feature/analysis/domain/entity"
)

const (
	summarySheet  = "Summary"
	sectionsSheet = "Sections"
	rawSheet      = "Raw"

	// ExcelContentType はxlsxのContent-Typeです。
	ExcelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// WriteExcel はレポートをxlsx形式でwに書き出します。
// Summary（スコア・企業情報）、Sections（カード一覧）、Raw（応答全文）の3シートを作成します。
func WriteExcel(w io.Writer, report *entity.Report) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("failed to close workbook", "error", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(sectionsSheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	if _, err := f.NewSheet(rawSheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	wrapStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return fmt.Errorf("create wrap style: %w", err)
	}

	if err := writeSummary(f, report, headerStyle); err != nil {
		return err
	}
	if err := writeSections(f, report.Cards, headerStyle, wrapStyle); err != nil {
		return err
	}
	if err := f.SetCellValue(rawSheet, "A1", report.Result.RawText); err != nil {
		return err
	}
	if err := f.SetColWidth(rawSheet, "A", "A", 120); err != nil {
		return err
	}
	if err := f.SetCellStyle(rawSheet, "A1", "A1", wrapStyle); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, report *entity.Report, headerStyle int) error {
	if err := f.SetColWidth(summarySheet, "A", "A", 22); err != nil {
		return err
	}
	if err := f.SetColWidth(summarySheet, "B", "B", 80); err != nil {
		return err
	}

	score := "N/A"
	if report.Result.MatchScore.Found {
		score = fmt.Sprintf("%d%%", report.Result.MatchScore.Value)
	}

	rows := [][2]string{
		{"Resume Optimization Report", ""},
		{"Generated", report.Result.CreatedAt.Format("2006-01-02 15:04:05")},
		{"Match Score", score},
		{"Assessment", report.Indicator.Message},
	}
	if c := report.Result.Company; c != nil {
		rows = append(rows,
			[2]string{"Company", c.Name},
			[2]string{"Website", c.Website},
			[2]string{"Description", c.Description},
		)
	}

	for i, r := range rows {
		row := i + 1
		if err := f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), r[0]); err != nil {
			return err
		}
		if err := f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), r[1]); err != nil {
			return err
		}
	}
	return f.SetCellStyle(summarySheet, "A1", "B1", headerStyle)
}

func writeSections(f *excelize.File, cards []entity.ReportCard, headerStyle, wrapStyle int) error {
	for col, width := range map[string]float64{"A": 16, "B": 40, "C": 100} {
		if err := f.SetColWidth(sectionsSheet, col, col, width); err != nil {
			return err
		}
	}
	if err := f.SetSheetRow(sectionsSheet, "A1", &[]any{"Category", "Section", "Details"}); err != nil {
		return err
	}
	if err := f.SetCellStyle(sectionsSheet, "A1", "C1", headerStyle); err != nil {
		return err
	}

	for i, card := range cards {
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sectionsSheet, cell, &[]any{string(card.Category), card.Title, card.Body}); err != nil {
			return err
		}
	}
	if len(cards) > 0 {
		return f.SetCellStyle(sectionsSheet, "C2", fmt.Sprintf("C%d", len(cards)+1), wrapStyle)
	}
	return nil
}

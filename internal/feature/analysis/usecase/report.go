package usecase

import (
	"strings"

	"resume_optimizer/internal/feature/analysis/domain/entity"
	"resume_optimizer/internal/platform/textclean"
)

const (
	sectionDelimiter = "\n## "
	scoreSectionKey  = "Match Score"
)

// categoryRules はタイトルの部分一致（大文字小文字を区別しない）で判定するカテゴリです。
// 先に一致したものが優先されます。
var categoryRules = []struct {
	keyword  string
	category entity.CardCategory
}{
	{"recommendations", entity.CategoryRecommendation},
	{"missing", entity.CategoryMissing},
	{"overused", entity.CategoryOverused},
	{"gap", entity.CategoryGap},
	{"improvements", entity.CategoryImprovement},
	{"action", entity.CategoryAction},
}

// SplitSections は応答を "\n## " で分割し、各ブロックの1行目をタイトル、残りを本文として返します。
// 空白のみのブロックは除外します。
func SplitSections(text string) []entity.AnalysisSection {
	clean := textclean.StripTags(text)
	parts := strings.Split(clean, sectionDelimiter)

	sections := make([]entity.AnalysisSection, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		title, body, _ := strings.Cut(part, "\n")
		// 応答の先頭ブロックは区切り文字の "## " が残るため取り除く
		title = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(title), "## "))
		sections = append(sections, entity.AnalysisSection{
			Title: title,
			Body:  strings.TrimSpace(body),
		})
	}
	return sections
}

// ClassifySection はタイトルから表示カテゴリを判定します。
func ClassifySection(title string) entity.CardCategory {
	lower := strings.ToLower(title)
	for _, r := range categoryRules {
		if strings.Contains(lower, r.keyword) {
			return r.category
		}
	}
	return entity.CategoryDefault
}

// BuildCards はスコアセクションを除いた表示用カードを生成します。
// スコアは ScoreIndicatorFor で別途表示します。
func BuildCards(text string) []entity.ReportCard {
	sections := SplitSections(text)
	cards := make([]entity.ReportCard, 0, len(sections))
	for _, s := range sections {
		if strings.Contains(s.Title, scoreSectionKey) {
			continue
		}
		cards = append(cards, entity.ReportCard{
			AnalysisSection: s,
			Category:        ClassifySection(s.Title),
		})
	}
	return cards
}

// ScoreIndicatorFor はスコアに応じた表示段階を返します。
// 80以上: excellent, 60以上: good, 40以上: moderate, 20以上: below-average, それ未満: poor。
func ScoreIndicatorFor(score entity.MatchScore) entity.ScoreIndicator {
	if !score.Found {
		return entity.ScoreIndicator{
			Tier:    entity.TierUnavailable,
			Color:   "#9E9E9E",
			Emoji:   "❔",
			Icon:    "📄",
			Message: "The analysis did not include a match score",
		}
	}

	switch v := score.Value; {
	case v >= 80:
		return entity.ScoreIndicator{
			Tier:    entity.TierExcellent,
			Color:   "#4CAF50",
			Emoji:   "🎯",
			Icon:    "✨",
			Message: "Excellent match! High probability of getting placed",
		}
	case v >= 60:
		return entity.ScoreIndicator{
			Tier:    entity.TierGood,
			Color:   "#8BC34A",
			Emoji:   "👍",
			Icon:    "🔍",
			Message: "Good match - some optimizations could make it perfect",
		}
	case v >= 40:
		return entity.ScoreIndicator{
			Tier:    entity.TierModerate,
			Color:   "#FFC107",
			Emoji:   "⚠️",
			Icon:    "📝",
			Message: "Moderate match - needs improvements",
		}
	case v >= 20:
		return entity.ScoreIndicator{
			Tier:    entity.TierBelowAverage,
			Color:   "#FF9800",
			Emoji:   "🤔",
			Icon:    "🛠️",
			Message: "Below average - significant improvements needed",
		}
	default:
		return entity.ScoreIndicator{
			Tier:    entity.TierPoor,
			Color:   "#F44336",
			Emoji:   "❌",
			Icon:    "🚨",
			Message: "Poor match - major overhaul required",
		}
	}
}

// BuildReport は保存済みの分析結果から表示用レポートを組み立てます。
func BuildReport(result *entity.AnalysisResult) *entity.Report {
	return &entity.Report{
		Result:    *result,
		Indicator: ScoreIndicatorFor(result.MatchScore),
		Cards:     BuildCards(result.RawText),
	}
}

package entity

// CardCategory はレポートのセクションカードの表示カテゴリです。
type CardCategory string

const (
	CategoryRecommendation CardCategory = "recommendation"
	CategoryMissing        CardCategory = "missing"
	CategoryOverused       CardCategory = "overused"
	CategoryGap            CardCategory = "gap"
	CategoryImprovement    CardCategory = "improvement"
	CategoryAction         CardCategory = "action"
	CategoryDefault        CardCategory = "default"
)

// CSSClass はカテゴリに対応するカードのCSSクラス名を返します。
func (c CardCategory) CSSClass() string {
	return string(c) + "-card"
}

// Icon はカテゴリに対応するアイコンを返します。
func (c CardCategory) Icon() string {
	switch c {
	case CategoryRecommendation:
		return "💡"
	case CategoryMissing:
		return "🔎"
	case CategoryOverused:
		return "🔄"
	case CategoryGap:
		return "📉"
	case CategoryImprovement:
		return "🛠️"
	case CategoryAction:
		return "✅"
	default:
		return "📌"
	}
}

// AnalysisSection は応答を "## " 見出しで分割した1ブロックです。
type AnalysisSection struct {
	Title string
	Body  string
}

// ReportCard は表示用に分類されたセクションです。
type ReportCard struct {
	AnalysisSection
	Category CardCategory
}

// ScoreTier はスコア表示の段階です。
type ScoreTier string

const (
	TierExcellent    ScoreTier = "excellent"
	TierGood         ScoreTier = "good"
	TierModerate     ScoreTier = "moderate"
	TierBelowAverage ScoreTier = "below-average"
	TierPoor         ScoreTier = "poor"
	TierUnavailable  ScoreTier = "unavailable"
)

// ScoreIndicator はスコア表示に使う色・アイコン・メッセージの組です。
type ScoreIndicator struct {
	Tier    ScoreTier
	Color   string
	Emoji   string
	Icon    string
	Message string
}

// Report は分析結果から組み立てた表示用レポートです。永続化はしません。
type Report struct {
	Result    AnalysisResult
	Indicator ScoreIndicator
	Cards     []ReportCard
}

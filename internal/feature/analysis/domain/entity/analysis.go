package entity

import "time"

// MatchScore はLLMの応答から抽出したマッチスコアです。
// Found が false の場合、応答にスコアの記述が無かったことを示し、Value は常に0です。
type MatchScore struct {
	Value int
	Found bool
}

// AnalysisResult はセッションごとに保持される最新の分析結果です。
type AnalysisResult struct {
	RawText    string          // LLMの応答（タグ除去済み）
	MatchScore MatchScore      // 抽出したスコア
	Company    *CompanySummary // 企業情報（未指定・取得失敗時は nil）
	CreatedAt  time.Time
}

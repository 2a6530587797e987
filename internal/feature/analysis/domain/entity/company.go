// Package entity はanalysisフィーチャーのドメインモデルを定義します。
package entity

// CompanySummary は企業サイトから抽出した簡易的な企業情報を表します。
type CompanySummary struct {
	Name        string // <title> の内容、無ければホスト名
	Description string // meta description、無ければプレースホルダー
	About       string // Aboutページの本文（長さ制限あり）
	Website     string // 取得元URL
}

// Package textclean はスクレイピング結果やLLMの応答からマークアップを取り除くユーティリティを提供します。
package textclean

import "regexp"

// tagPattern は非貪欲マッチでタグ（<...>）を検出します。改行をまたぐタグは対象外です。
var tagPattern = regexp.MustCompile(`<.*?>`)

// StripTags はsから全てのタグを取り除いたコピーを返します。
// 閉じられていない "<" や単独の ">" はそのまま残ります。
func StripTags(s string) string {
	return tagPattern.ReplaceAllString(s, "")
}

// Truncate はsを先頭からn文字（rune単位）に切り詰めます。nが0以下の場合は空文字を返します。
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

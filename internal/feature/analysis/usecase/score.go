package usecase

import (
	"regexp"
	"strconv"

	"resume_optimizer/internal/feature/analysis/domain/entity"
)

var (
	// exactScorePattern はプロンプトで指定した "## Match Score: X%" 形式に一致します。
	exactScorePattern = regexp.MustCompile(`## Match Score:\s*(\d+)%`)
	// looseScorePattern は "Match Score" の後に現れる最初の "NN%" に一致します（同一行内）。
	looseScorePattern = regexp.MustCompile(`Match Score.*?(\d+)%`)
)

// ExtractMatchScore は応答テキストからマッチスコアを抽出します。
// 指定形式 → 緩いパターンの順に試し、どちらにも一致しない場合は Found=false を返します。
// 100を超える値もそのまま返します。
func ExtractMatchScore(text string) entity.MatchScore {
	for _, re := range []*regexp.Regexp{exactScorePattern, looseScorePattern} {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		v, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		return entity.MatchScore{Value: v, Found: true}
	}
	return entity.MatchScore{}
}

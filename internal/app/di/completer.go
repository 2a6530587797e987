package di

import (
	"context"
	"errors"

	"resume_optimizer/internal/feature/analysis/adapters/gemini"
)

// NewCompleter はGemini APIクライアントを生成します。APIキーが無い場合は端末で入力を求めます。
func NewCompleter(ctx context.Context) (*gemini.GeminiCompleter, error) {
	cfg, err := gemini.LoadConfig()
	if err != nil && !errors.Is(err, gemini.ErrMissingAPIKey) {
		return nil, err
	}
	if err := EnsureAPIKey(&cfg); err != nil {
		return nil, err
	}
	return gemini.NewGeminiCompleter(ctx, cfg)
}

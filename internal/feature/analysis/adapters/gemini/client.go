// Package gemini はGoogle Gemini APIを使用した分析テキスト生成クライアントを提供します。
package gemini

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"resume_optimizer/internal/feature/analysis/usecase"
)

const (
	// DefaultModel はGemini APIのデフォルトモデルです。
	DefaultModel = "gemini-2.5-flash"

	temperature     float32 = 0.3
	maxOutputTokens int32   = 4000
)

// errEmptyResponse は応答にテキストが含まれない場合のエラーです。
var errEmptyResponse = errors.New("gemini returned an empty response")

// GeminiCompleter はGemini APIにプロンプトを送り、分析テキストを生成します。
type GeminiCompleter struct {
	client *genai.Client
	model  string
}

// GeminiCompleterがCompleterを実装していることをコンパイル時に検証します。
var _ usecase.Completer = (*GeminiCompleter)(nil)

// NewGeminiCompleter はAPIキーを使用してGeminiCompleterを生成します。
func NewGeminiCompleter(ctx context.Context, cfg Config) (*GeminiCompleter, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiCompleter{client: client, model: model}, nil
}

// Complete はプロンプトを送信し、生成されたテキストを返します。
func (g *GeminiCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(temperature),
		MaxOutputTokens: maxOutputTokens,
	})
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", errEmptyResponse
	}
	return text, nil
}

// Package session はセッション単位の分析結果をRedisに保持するストアを提供します。
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"resume_optimizer/internal/feature/analysis/domain/entity"
	"resume_optimizer/internal/feature/analysis/usecase"
)

// DefaultResultTTL は分析結果の既定の保持期間です。
const DefaultResultTTL = 24 * time.Hour

// ResultRedis は usecase.ResultStore をRedisで実装します。
// キーは "<prefix>:<sessionID>"、値は分析結果のJSONです。
type ResultRedis struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// ResultRedisがResultStoreを実装していることをコンパイル時に検証します。
var _ usecase.ResultStore = (*ResultRedis)(nil)

// NewResultRedis はResultRedisを生成します。ttlが0以下の場合は DefaultResultTTL を使用します。
func NewResultRedis(client *redis.Client, prefix string, ttl time.Duration) *ResultRedis {
	if ttl <= 0 {
		ttl = DefaultResultTTL
	}
	return &ResultRedis{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// resultKey はセッションの分析結果のキーを返します。
func (r *ResultRedis) resultKey(sessionID string) string {
	return fmt.Sprintf("%s:%s", r.prefix, sessionID)
}

// Save はセッションの分析結果を上書き保存し、TTLを更新します。
func (r *ResultRedis) Save(ctx context.Context, sessionID string, result *entity.AnalysisResult) error {
	if result == nil {
		return errors.New("nil analysis result")
	}
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis result: %w", err)
	}
	return r.client.Set(ctx, r.resultKey(sessionID), data, r.ttl).Err()
}

// Find はセッションの分析結果を返します。
func (r *ResultRedis) Find(ctx context.Context, sessionID string) (*entity.AnalysisResult, error) {
	data, err := r.client.Get(ctx, r.resultKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, usecase.ErrResultNotFound
		}
		return nil, err
	}

	var result entity.AnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal analysis result: %w", err)
	}
	return &result, nil
}

// Ping はRedisへの接続を確認します。
func (r *ResultRedis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Package jwtmw はセッショントークンの発行・検証とGinミドルウェアを提供します。
package jwtmw

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// EnvKeyJWTSecret はトークン署名鍵を読み込む環境変数名です。
const EnvKeyJWTSecret = "JWT_SECRET"

// ErrInvalidSessionToken はトークンが不正・期限切れ、またはセッションIDを含まない場合のエラーです。
var ErrInvalidSessionToken = errors.New("invalid session token")

// Generator はセッショントークンの発行と検証を行います。
type Generator interface {
	// GenerateToken はセッションIDをsubjectに持つ署名済みトークンを生成します。
	GenerateToken(sessionID string) (string, error)
	// ParseToken はトークンを検証し、セッションIDを返します。
	ParseToken(token string) (string, error)
}

// generator はHS256でGeneratorを実装します。
type generator struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

// NewGenerator は署名鍵と有効期間からGeneratorを生成します。
func NewGenerator(secret string, expiration time.Duration) Generator {
	return &generator{
		secret:     []byte(secret),
		expiration: expiration,
		now:        time.Now,
	}
}

// GenerateToken は標準クレームのみを持つトークンを生成します。
func (g *generator) GenerateToken(sessionID string) (string, error) {
	now := g.now()
	claims := jwt.RegisteredClaims{
		Subject:   sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(g.expiration)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseToken は署名・有効期限・subjectのUUID形式を検証します。
func (g *generator) ParseToken(tokenStr string) (string, error) {
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		return g.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(g.now))
	if err != nil || !token.Valid {
		return "", ErrInvalidSessionToken
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", ErrInvalidSessionToken
	}
	return claims.Subject, nil
}

// SecretFromEnv は JWT_SECRET を返します。
// 未設定の場合はプロセス内だけで有効なランダム鍵を生成し、警告を出力します。
func SecretFromEnv() string {
	if s := os.Getenv(EnvKeyJWTSecret); s != "" {
		return s
	}
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("failed to generate jwt secret: %v", err))
	}
	slog.Warn("JWT_SECRET is not set; sessions will not survive a restart")
	return hex.EncodeToString(b)
}

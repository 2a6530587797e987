package jwtmw

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// ContextSessionID はGinコンテキストにセッションIDを格納するキーです。
	ContextSessionID = "sessionID"
	// CookieName はセッショントークンを保持するCookie名です。
	CookieName = "session_token"
)

// SessionRequired はCookieのセッショントークンを検証し、セッションIDをコンテキストに設定します。
// トークンが無い・不正な場合は新しいセッションIDでトークンを発行し直します。
func SessionRequired(gen Generator, maxAge time.Duration, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tok, err := c.Cookie(CookieName); err == nil && tok != "" {
			if id, err := gen.ParseToken(tok); err == nil {
				c.Set(ContextSessionID, id)
				c.Next()
				return
			}
		}

		id := uuid.NewString()
		tok, err := gen.GenerateToken(id)
		if err != nil {
			slog.Error("failed to issue session token", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to start session"})
			return
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(CookieName, tok, int(maxAge.Seconds()), "/", "", secure, true)
		c.Set(ContextSessionID, id)
		c.Next()
	}
}

// SessionID はコンテキストのセッションIDを返します。未設定の場合は空文字です。
func SessionID(c *gin.Context) string {
	return c.GetString(ContextSessionID)
}

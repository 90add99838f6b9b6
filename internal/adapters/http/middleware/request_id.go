// Package middleware は gin ルーター用のミドルウェアです。
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader はリクエスト追跡用のヘッダーです。
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "request_id"

// RequestID は X-Request-ID を引き継ぐか、なければ UUID を採番してレスポンスヘッダーにも設定します。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set(requestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()
	}
}

// GetRequestID は gin コンテキストからリクエスト ID を取り出します。
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

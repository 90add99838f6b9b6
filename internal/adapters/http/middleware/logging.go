package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ogurasousui/codex-employee-service/internal/platform/logger"
)

// Logging はリクエストごとに 1 行のアクセスログを出力します。
func Logging(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if query := c.Request.URL.RawQuery; query != "" {
			path = path + "?" + query
		}

		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"latency", time.Since(start),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "errors", c.Errors.String())
		}

		reqLog := logger.WithRequestID(log, GetRequestID(c))
		switch {
		case status >= 500:
			reqLog.Error("http request", attrs...)
		case status >= 400:
			reqLog.Warn("http request", attrs...)
		default:
			reqLog.Info("http request", attrs...)
		}
	}
}

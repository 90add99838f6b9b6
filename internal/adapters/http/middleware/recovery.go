package middleware

import (
	"log/slog"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/ogurasousui/codex-employee-service/internal/adapters/http/response"
	"github.com/ogurasousui/codex-employee-service/internal/platform/logger"
)

// Recovery は panic を回収して 500 を返します。チェーンの先頭に置きます。
func Recovery(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				requestID := GetRequestID(c)
				logger.WithRequestID(log, requestID).Error("panic recovered",
					"error", err,
					"path", c.Request.URL.Path,
					"method", c.Request.Method,
					"stack", string(debug.Stack()),
				)
				response.InternalError(c, requestID)
			}
		}()

		c.Next()
	}
}

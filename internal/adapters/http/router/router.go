// Package router は gin エンジンを組み立てます。
package router

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ogurasousui/codex-employee-service/internal/adapters/http/handler"
	"github.com/ogurasousui/codex-employee-service/internal/adapters/http/middleware"
	"github.com/ogurasousui/codex-employee-service/internal/adapters/http/response"
	"github.com/ogurasousui/codex-employee-service/internal/core/employee"
)

// New はミドルウェアとルートを登録した gin.Engine を返します。
func New(log *slog.Logger, svc employee.UseCase) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	handler.NewEmployeeHandler(svc, log).Register(r)

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "The requested resource was not found", middleware.GetRequestID(c))
	})

	return r
}

// Package response は HTTP エラー応答の共通形式を定義します。
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ogurasousui/codex-employee-service/internal/core/employee"
)

// Error はエラー応答の外側の形です。
type Error struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail はエラー内容です。
type ErrorDetail struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func write(c *gin.Context, status int, code, message, requestID string) {
	c.AbortWithStatusJSON(status, Error{
		Error: ErrorDetail{
			Code:      code,
			Message:   message,
			RequestID: requestID,
		},
	})
}

// BadRequest は 400 を返します。
func BadRequest(c *gin.Context, message, requestID string) {
	write(c, http.StatusBadRequest, "BAD_REQUEST", message, requestID)
}

// NotFound は 404 を返します。
func NotFound(c *gin.Context, message, requestID string) {
	write(c, http.StatusNotFound, "NOT_FOUND", message, requestID)
}

// ServiceUnavailable は 503 を返します。
func ServiceUnavailable(c *gin.Context, requestID string) {
	write(c, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "The employee store is unavailable", requestID)
}

// InternalError は 500 を返します。内部の詳細は返しません。
func InternalError(c *gin.Context, requestID string) {
	write(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", requestID)
}

// FromDomainError は社員ドメインのエラーを HTTP 応答に変換します。
func FromDomainError(c *gin.Context, err error, requestID string) {
	switch {
	case errors.Is(err, employee.ErrInvalidID):
		BadRequest(c, err.Error(), requestID)
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(c, err.Error(), requestID)
	case errors.Is(err, employee.ErrStoreUnavailable):
		ServiceUnavailable(c, requestID)
	default:
		InternalError(c, requestID)
	}
}

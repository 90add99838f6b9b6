// Package handler は社員ユースケースを HTTP に公開します。
package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ogurasousui/codex-employee-service/internal/adapters/http/middleware"
	"github.com/ogurasousui/codex-employee-service/internal/adapters/http/response"
	"github.com/ogurasousui/codex-employee-service/internal/core/employee"
	"github.com/ogurasousui/codex-employee-service/internal/platform/logger"
)

// EmployeeHandler は /api/employees 配下のハンドラーです。
type EmployeeHandler struct {
	svc employee.UseCase
	log *slog.Logger
}

// NewEmployeeHandler は EmployeeHandler を生成します。
func NewEmployeeHandler(svc employee.UseCase, log *slog.Logger) *EmployeeHandler {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &EmployeeHandler{svc: svc, log: log}
}

// Register はルートを登録します。
func (h *EmployeeHandler) Register(r gin.IRouter) {
	g := r.Group("/api/employees")
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// Create は社員を作成します。
// POST /api/employees
func (h *EmployeeHandler) Create(c *gin.Context) {
	var body employee.Dto
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid employee body: "+err.Error(), middleware.GetRequestID(c))
		return
	}

	created, err := h.svc.CreateEmployee(c.Request.Context(), body)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// Get は社員を 1 件返します。
// GET /api/employees/:id
func (h *EmployeeHandler) Get(c *gin.Context) {
	found, err := h.svc.GetEmployee(c.Request.Context(), employee.GetEmployeeInput{ID: c.Param("id")})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, found)
}

// List は全社員を JSON 配列で返します。空の場合は [] です。
// GET /api/employees
func (h *EmployeeHandler) List(c *gin.Context) {
	employees := make([]*employee.Dto, 0)
	for dto, err := range h.svc.ListEmployees(c.Request.Context()) {
		if err != nil {
			h.fail(c, err)
			return
		}
		employees = append(employees, dto)
	}

	c.JSON(http.StatusOK, employees)
}

// Update は社員の氏名とメールアドレスを更新します。対象はパスの ID で決まります。
// PUT /api/employees/:id
func (h *EmployeeHandler) Update(c *gin.Context) {
	var body employee.Dto
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid employee body: "+err.Error(), middleware.GetRequestID(c))
		return
	}

	updated, err := h.svc.UpdateEmployee(c.Request.Context(), employee.UpdateEmployeeInput{
		ID:       c.Param("id"),
		Employee: body,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// Delete は社員を削除します。存在しない ID でも 204 を返します。
// DELETE /api/employees/:id
func (h *EmployeeHandler) Delete(c *gin.Context) {
	if err := h.svc.DeleteEmployee(c.Request.Context(), employee.DeleteEmployeeInput{ID: c.Param("id")}); err != nil {
		h.fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *EmployeeHandler) fail(c *gin.Context, err error) {
	requestID := middleware.GetRequestID(c)
	if !errors.Is(err, employee.ErrEmployeeNotFound) && !errors.Is(err, employee.ErrInvalidID) {
		_ = c.Error(err)
		logger.WithRequestID(h.log, requestID).Error("employee request failed", "error", err)
	}
	response.FromDomainError(c, err, requestID)
}

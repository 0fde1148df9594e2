package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/dohuuduy/quanlytailieu-sub000/internal/dto"
	"github.com/dohuuduy/quanlytailieu-sub000/internal/service"
	"github.com/dohuuduy/quanlytailieu-sub000/pkg/response"
)

// StandardHandler 标准模块 HTTP 处理器
type StandardHandler struct {
	standardSvc service.StandardService
}

// NewStandardHandler 创建 StandardHandler
func NewStandardHandler(standardSvc service.StandardService) *StandardHandler {
	return &StandardHandler{standardSvc: standardSvc}
}

// Create 创建标准
// POST /api/v1/standards
func (h *StandardHandler) Create(c *gin.Context) {
	var req dto.CreateStandardRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.standardSvc.Create(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, result)
}

// Get 标准详情
// GET /api/v1/standards/:id
func (h *StandardHandler) Get(c *gin.Context) {
	result, err := h.standardSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, result)
}

// List 标准列表
// GET /api/v1/standards?q=&status=&sort=&order=&page=&page_size=
func (h *StandardHandler) List(c *gin.Context) {
	q, ok := bindListQuery(c)
	if !ok {
		return
	}

	page, err := h.standardSvc.List(c.Request.Context(), q)
	if err != nil {
		handleError(c, err)
		return
	}

	okPage(c, page)
}

// Update 更新标准
// PATCH /api/v1/standards/:id
func (h *StandardHandler) Update(c *gin.Context) {
	var req dto.UpdateStandardRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.standardSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, result)
}

// Delete 删除标准
// DELETE /api/v1/standards/:id
func (h *StandardHandler) Delete(c *gin.Context) {
	if err := h.standardSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, nil)
}

// Documents 标准下的文档：统计、即将到期与当前页
// GET /api/v1/standards/:id/documents
func (h *StandardHandler) Documents(c *gin.Context) {
	q, ok := bindListQuery(c)
	if !ok {
		return
	}

	result, err := h.standardSvc.Documents(c.Request.Context(), c.Param("id"), q)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, result)
}

// Schedules 标准的评审计划
// GET /api/v1/standards/:id/schedules
func (h *StandardHandler) Schedules(c *gin.Context) {
	q, ok := bindListQuery(c)
	if !ok {
		return
	}

	page, err := h.standardSvc.Schedules(c.Request.Context(), c.Param("id"), q)
	if err != nil {
		handleError(c, err)
		return
	}

	okPage(c, page)
}

package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/dohuuduy/quanlytailieu-sub000/internal/dto"
	"github.com/dohuuduy/quanlytailieu-sub000/internal/service"
	"github.com/dohuuduy/quanlytailieu-sub000/pkg/response"
)

// CategoryHandler 类别模块 HTTP 处理器
type CategoryHandler struct {
	categorySvc service.CategoryService
}

// NewCategoryHandler 创建 CategoryHandler
func NewCategoryHandler(categorySvc service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categorySvc: categorySvc}
}

// Create 创建类别
// POST /api/v1/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.categorySvc.Create(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, result)
}

// Get 类别详情
// GET /api/v1/categories/:id
func (h *CategoryHandler) Get(c *gin.Context) {
	result, err := h.categorySvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, result)
}

// List 类别列表
// GET /api/v1/categories?q=&status=&sort=&order=&page=&page_size=
func (h *CategoryHandler) List(c *gin.Context) {
	q, ok := bindListQuery(c)
	if !ok {
		return
	}

	page, err := h.categorySvc.List(c.Request.Context(), q)
	if err != nil {
		handleError(c, err)
		return
	}

	okPage(c, page)
}

// Update 更新类别
// PATCH /api/v1/categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	var req dto.UpdateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.categorySvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, result)
}

// Delete 删除类别
// DELETE /api/v1/categories/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.categorySvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, nil)
}

// Documents 类别下的文档：统计、即将到期与当前页
// GET /api/v1/categories/:id/documents
func (h *CategoryHandler) Documents(c *gin.Context) {
	q, ok := bindListQuery(c)
	if !ok {
		return
	}

	result, err := h.categorySvc.Documents(c.Request.Context(), c.Param("id"), q)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, result)
}

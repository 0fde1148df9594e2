package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/dohuuduy/quanlytailieu-sub000/internal/dto"
	"github.com/dohuuduy/quanlytailieu-sub000/internal/service"
	"github.com/dohuuduy/quanlytailieu-sub000/pkg/response"
)

// DocumentHandler 文档模块 HTTP 处理器
type DocumentHandler struct {
	documentSvc service.DocumentService
}

// NewDocumentHandler 创建 DocumentHandler
func NewDocumentHandler(documentSvc service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentSvc: documentSvc}
}

// Create 创建文档
// POST /api/v1/documents
func (h *DocumentHandler) Create(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateDocumentRequest
	if !bindJSON(c, &req) {
		return
	}

	doc, err := h.documentSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, doc)
}

// Get 文档详情（含满足的标准）
// GET /api/v1/documents/:id
func (h *DocumentHandler) Get(c *gin.Context) {
	doc, err := h.documentSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, doc)
}

// List 文档列表
// GET /api/v1/documents?q=&status=&sort=&order=&page=&page_size=
func (h *DocumentHandler) List(c *gin.Context) {
	q, ok := bindListQuery(c)
	if !ok {
		return
	}

	page, err := h.documentSvc.List(c.Request.Context(), q)
	if err != nil {
		handleError(c, err)
		return
	}

	okPage(c, page)
}

// Update 更新文档
// PATCH /api/v1/documents/:id
func (h *DocumentHandler) Update(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateDocumentRequest
	if !bindJSON(c, &req) {
		return
	}

	doc, err := h.documentSvc.Update(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, doc)
}

// Delete 删除文档
// DELETE /api/v1/documents/:id
func (h *DocumentHandler) Delete(c *gin.Context) {
	if err := h.documentSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, nil)
}

// Approve 审批通过 pending_review → active
// POST /api/v1/documents/:id/approve
func (h *DocumentHandler) Approve(c *gin.Context) {
	h.transition(c, h.documentSvc.Approve)
}

// Cancel 作废 → expired
// POST /api/v1/documents/:id/cancel
func (h *DocumentHandler) Cancel(c *gin.Context) {
	h.transition(c, h.documentSvc.Cancel)
}

type transitionFunc = func(ctx context.Context, id string, req *dto.TransitionRequest, callerID string) (*dto.DocumentResponse, error)

func (h *DocumentHandler) transition(c *gin.Context, fn transitionFunc) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	// 请求体可省略
	var req dto.TransitionRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}

	doc, err := fn(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, doc)
}

// History 文档变更历史
// GET /api/v1/documents/:id/history
func (h *DocumentHandler) History(c *gin.Context) {
	q, ok := bindListQuery(c)
	if !ok {
		return
	}

	page, err := h.documentSvc.History(c.Request.Context(), c.Param("id"), q)
	if err != nil {
		handleError(c, err)
		return
	}

	okPage(c, page)
}

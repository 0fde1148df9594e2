package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/dohuuduy/quanlytailieu-sub000/internal/service"
	"github.com/dohuuduy/quanlytailieu-sub000/pkg/response"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeICS  = "text/calendar; charset=utf-8"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportDocuments 导出文档表（与列表相同的筛选、排序，不分页）
// GET /api/v1/export/documents.xlsx?q=&status=&sort=&order=
func (h *ExportHandler) ExportDocuments(c *gin.Context) {
	q, ok := bindListQuery(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportDocuments(c.Request.Context(), q)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Attachment(c, filename, contentTypeXLSX, buf.Bytes())
}

// ExportSchedules 导出评审计划日历
// GET /api/v1/export/schedules.ics
func (h *ExportHandler) ExportSchedules(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportSchedules(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	response.Attachment(c, filename, contentTypeICS, buf.Bytes())
}

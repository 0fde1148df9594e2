package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/dohuuduy/quanlytailieu-sub000/internal/service"
	"github.com/dohuuduy/quanlytailieu-sub000/pkg/response"
)

// DashboardHandler 首页统计
type DashboardHandler struct {
	dashboardSvc service.DashboardService
}

func NewDashboardHandler(dashboardSvc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardSvc: dashboardSvc}
}

// Stats GET /api/v1/dashboard/stats
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboardSvc.Stats(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, stats)
}

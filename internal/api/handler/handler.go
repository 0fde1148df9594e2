package handler

import "github.com/dohuuduy/quanlytailieu-sub000/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Category  *CategoryHandler
	Standard  *StandardHandler
	User      *UserHandler
	Document  *DocumentHandler
	Schedule  *ScheduleHandler
	Dashboard *DashboardHandler
	Export    *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Category:  NewCategoryHandler(svc.Category),
		Standard:  NewStandardHandler(svc.Standard),
		User:      NewUserHandler(svc.User),
		Document:  NewDocumentHandler(svc.Document),
		Schedule:  NewScheduleHandler(svc.Schedule),
		Dashboard: NewDashboardHandler(svc.Dashboard),
		Export:    NewExportHandler(svc.Export),
	}
}

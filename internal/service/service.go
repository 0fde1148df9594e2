package service

import (
	"go.uber.org/zap"

	"github.com/dohuuduy/quanlytailieu-sub000/internal/repository"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Category  CategoryService
	Standard  StandardService
	User      UserService
	Document  DocumentService
	Schedule  ScheduleService
	Dashboard DashboardService
	Export    ExportService
}

// NewService 创建 Service 聚合
func NewService(repo *repository.Repository, opts Options, logger *zap.Logger) *Service {
	return &Service{
		Category:  NewCategoryService(repo, opts, logger),
		Standard:  NewStandardService(repo, opts, logger),
		User:      NewUserService(repo, opts, logger),
		Document:  NewDocumentService(repo, opts, logger),
		Schedule:  NewScheduleService(repo, opts, logger),
		Dashboard: NewDashboardService(repo, opts, logger),
		Export:    NewExportService(repo, opts, logger),
	}
}

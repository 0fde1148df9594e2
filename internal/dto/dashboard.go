package dto

import "github.com/dohuuduy/quanlytailieu-sub000/internal/registry"

// DashboardResponse 首页统计
type DashboardResponse struct {
	Documents     registry.DocumentStats `json:"documents"`
	NewDocuments  int                    `json:"new_documents"`
	Expiring      []DocumentResponse     `json:"expiring"`
	Schedules     registry.ScheduleStats `json:"schedules"`
	CategoryCount int                    `json:"category_count"`
	StandardCount int                    `json:"standard_count"`
	UserCount     int                    `json:"user_count"`
	GeneratedAt   string                 `json:"generated_at"`
}

package dto

// ── 评审计划模块 DTO ──

// CreateScheduleRequest 创建评审计划请求
type CreateScheduleRequest struct {
	StandardID   string  `json:"standard_id"  binding:"required,uuid"`
	PlannedDate  string  `json:"planned_date" binding:"required"`
	ActualStart  *string `json:"actual_start"`
	ActualEnd    *string `json:"actual_end"`
	Auditor      *string `json:"auditor"      binding:"omitempty,max=200"`
	Organization *string `json:"organization" binding:"omitempty,max=200"`
	Status       string  `json:"status"`
	Note         *string `json:"note"         binding:"omitempty,max=5000"`
}

// UpdateScheduleRequest 更新评审计划请求
type UpdateScheduleRequest struct {
	StandardID   *string `json:"standard_id"  binding:"omitempty,uuid"`
	PlannedDate  *string `json:"planned_date"`
	ActualStart  *string `json:"actual_start"`
	ActualEnd    *string `json:"actual_end"`
	Auditor      *string `json:"auditor"      binding:"omitempty,max=200"`
	Organization *string `json:"organization" binding:"omitempty,max=200"`
	Status       *string `json:"status"`
	Note         *string `json:"note"         binding:"omitempty,max=5000"`
}

// ScheduleResponse 评审计划响应
type ScheduleResponse struct {
	ID           string `json:"id"`
	Standard     *Ref   `json:"standard,omitempty"`
	StandardID   string `json:"standard_id"`
	PlannedDate  string `json:"planned_date"`
	ActualStart  string `json:"actual_start,omitempty"`
	ActualEnd    string `json:"actual_end,omitempty"`
	Auditor      string `json:"auditor,omitempty"`
	Organization string `json:"organization,omitempty"`
	Status       string `json:"status"`
	Note         string `json:"note,omitempty"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

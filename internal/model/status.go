package model

// Status 文档 / 类别 / 标准共用的状态枚举
type Status string

const (
	StatusActive        Status = "active"
	StatusPendingReview Status = "pending_review"
	StatusExpired       Status = "expired"
)

// Statuses 全部合法状态，顺序即统计输出顺序
var Statuses = []Status{StatusActive, StatusPendingReview, StatusExpired}

// Valid 是否为合法状态
func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// ScheduleStatus 评审计划状态
type ScheduleStatus string

const (
	SchedulePlanned    ScheduleStatus = "planned"
	ScheduleInProgress ScheduleStatus = "in_progress"
	ScheduleCompleted  ScheduleStatus = "completed"
	ScheduleCancelled  ScheduleStatus = "cancelled"
)

// ScheduleStatuses 全部合法评审计划状态
var ScheduleStatuses = []ScheduleStatus{SchedulePlanned, ScheduleInProgress, ScheduleCompleted, ScheduleCancelled}

// Valid 是否为合法评审计划状态
func (s ScheduleStatus) Valid() bool {
	for _, v := range ScheduleStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Role 用户角色
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleApprover Role = "approver"
	RoleUser     Role = "user"
)

// Roles 全部合法角色
var Roles = []Role{RoleAdmin, RoleApprover, RoleUser}

// Valid 是否为合法角色
func (r Role) Valid() bool {
	for _, v := range Roles {
		if r == v {
			return true
		}
	}
	return false
}

// HistoryAction 文档历史动作
type HistoryAction string

const (
	ActionCreated   HistoryAction = "created"
	ActionUpdated   HistoryAction = "updated"
	ActionApproved  HistoryAction = "approved"
	ActionCancelled HistoryAction = "cancelled"
)

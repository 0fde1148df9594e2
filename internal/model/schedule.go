package model

import "time"

// ScheduleEntry 评审计划（lịch đánh giá）表，对应 schedule_entries
type ScheduleEntry struct {
	ID           string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	StandardID   string         `gorm:"type:uuid;not null"                             json:"standard_id"`
	PlannedDate  time.Time      `gorm:"type:date;not null"                             json:"planned_date"`
	ActualStart  *time.Time     `gorm:"type:date"                                      json:"actual_start,omitempty"`
	ActualEnd    *time.Time     `gorm:"type:date"                                      json:"actual_end,omitempty"`
	Auditor      *string        `gorm:"type:varchar(200)"                              json:"auditor,omitempty"`
	Organization *string        `gorm:"type:varchar(200)"                              json:"organization,omitempty"`
	Status       ScheduleStatus `gorm:"type:varchar(20);not null;default:'planned'"    json:"status"`
	Note         *string        `gorm:"type:text"                                      json:"note,omitempty"`
	BaseModel

	// 关联
	Standard *Standard `gorm:"foreignKey:StandardID;references:ID" json:"standard,omitempty"`
}

// TableName 指定表名
func (ScheduleEntry) TableName() string { return TableScheduleEntries }

// StandardName 关联标准名称，未加载时为空
func (e *ScheduleEntry) StandardName() string {
	if e.Standard == nil {
		return ""
	}
	return e.Standard.Name
}

package model

import (
	"time"

	"gorm.io/gorm/schema"
)

// 表名常量，供通用记录存储按表名访问
const (
	TableCategories        = "categories"
	TableStandards         = "standards"
	TableUsers             = "users"
	TableDocuments         = "documents"
	TableDocumentStandards = "document_standards"
	TableScheduleEntries   = "schedule_entries"
	TableDocumentHistory   = "document_history"
)

// BaseModel 通用审计字段
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// Tables 返回全部可由通用存储访问的表模型
func Tables() []schema.Tabler {
	return []schema.Tabler{
		Category{}, Standard{}, User{}, Document{},
		DocumentStandard{}, ScheduleEntry{}, HistoryEntry{},
	}
}

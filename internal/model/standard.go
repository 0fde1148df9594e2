package model

import "time"

// Standard 合规标准表，对应 standards
type Standard struct {
	ID          string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name        string  `gorm:"type:varchar(200);not null;uniqueIndex"        json:"name"`
	Description *string `gorm:"type:text"                                      json:"description,omitempty"`
	Status      Status  `gorm:"type:varchar(20);not null;default:'active'"     json:"status"`
	BaseModel
}

// TableName 指定表名
func (Standard) TableName() string { return TableStandards }

// DocumentStandard 文档-标准关联表，对应 document_standards
type DocumentStandard struct {
	DocumentID string    `gorm:"type:uuid;primaryKey"                json:"document_id"`
	StandardID string    `gorm:"type:uuid;primaryKey"                json:"standard_id"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"  json:"created_at"`

	// 关联（目标被删除或不可见时为 nil）
	Document *Document `gorm:"foreignKey:DocumentID;references:ID" json:"document,omitempty"`
	Standard *Standard `gorm:"foreignKey:StandardID;references:ID" json:"standard,omitempty"`
}

// TableName 指定表名
func (DocumentStandard) TableName() string { return TableDocumentStandards }

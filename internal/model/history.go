package model

import "time"

// HistoryEntry 文档历史（只追加，不修改不删除），对应 document_history
type HistoryEntry struct {
	ID         string        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DocumentID string        `gorm:"type:uuid;not null"                             json:"document_id"`
	Action     HistoryAction `gorm:"type:varchar(20);not null"                      json:"action"`
	ActorID    string        `gorm:"type:uuid;not null"                             json:"actor_id"`
	CreatedAt  time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
	Note       *string       `gorm:"type:text"                                      json:"note,omitempty"`

	// 关联
	Actor *User `gorm:"foreignKey:ActorID;references:ID" json:"actor,omitempty"`
}

// TableName 指定表名
func (HistoryEntry) TableName() string { return TableDocumentHistory }

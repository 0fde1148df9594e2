package model

import "time"

// Document 文档（hồ sơ）表，对应 documents
type Document struct {
	ID            string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Code          string     `gorm:"type:varchar(50);not null;uniqueIndex"         json:"code"`
	Title         string     `gorm:"type:varchar(500);not null"                     json:"title"`
	Version       string     `gorm:"type:varchar(20);not null"                      json:"version"`
	IssueDate     time.Time  `gorm:"type:date;not null"                             json:"issue_date"`
	ExpiryDate    *time.Time `gorm:"type:date"                                      json:"expiry_date,omitempty"`
	Status        Status     `gorm:"type:varchar(20);not null;default:'active'"     json:"status"`
	Note          *string    `gorm:"type:text"                                      json:"note,omitempty"`
	Link          *string    `gorm:"type:text"                                      json:"link,omitempty"`
	CategoryID    string     `gorm:"type:uuid;not null"                             json:"category_id"`
	IssuingUserID string     `gorm:"type:uuid;not null"                             json:"issuing_user_id"`
	BaseModel

	// 关联
	Category    *Category `gorm:"foreignKey:CategoryID;references:ID"    json:"category,omitempty"`
	IssuingUser *User     `gorm:"foreignKey:IssuingUserID;references:ID" json:"issuing_user,omitempty"`
}

// TableName 指定表名
func (Document) TableName() string { return TableDocuments }

// CategoryName 关联类别名称，未加载时为空
func (d *Document) CategoryName() string {
	if d.Category == nil {
		return ""
	}
	return d.Category.Name
}

// IssuerName 签发人姓名，未加载时为空
func (d *Document) IssuerName() string {
	if d.IssuingUser == nil {
		return ""
	}
	return d.IssuingUser.FullName
}

package model

// Category 文档类别表，对应 categories
type Category struct {
	ID          string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name        string  `gorm:"type:varchar(200);not null;uniqueIndex"        json:"name"`
	Description *string `gorm:"type:text"                                      json:"description,omitempty"`
	Status      Status  `gorm:"type:varchar(20);not null;default:'active'"     json:"status"`
	BaseModel
}

// TableName 指定表名
func (Category) TableName() string { return TableCategories }

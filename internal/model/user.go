package model

// User 用户表，对应 users
type User struct {
	ID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	FullName string `gorm:"type:varchar(100);not null"                     json:"full_name"`
	Email    string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	Role     Role   `gorm:"type:varchar(20);not null;default:'user'"       json:"role"`
	BaseModel
}

// TableName 指定表名
func (User) TableName() string { return TableUsers }

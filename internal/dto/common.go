package dto

// DateLayout 日期字段（签发日、到期日、计划日期）的格式
const DateLayout = "2006-01-02"

// TimestampLayout 审计时间戳格式
const TimestampLayout = "2006-01-02T15:04:05Z07:00"

// ── 列表查询 ──

// ListQuery 通用列表参数：搜索、状态筛选、单字段排序、分页
type ListQuery struct {
	Q        string `form:"q"         binding:"omitempty,max=200"`
	Status   string `form:"status"    binding:"omitempty,max=20"`
	Sort     string `form:"sort"      binding:"omitempty,max=50"`
	Order    string `form:"order"     binding:"omitempty,oneof=asc desc"`
	Page     int    `form:"page"      binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1"`
}

// PageMeta 分页元数据
type PageMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// PageResult 分页结果
type PageResult[T any] struct {
	List []T
	PageMeta
}

// ── 简要引用 ──

// Ref 关联实体的简要信息
type Ref struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

package dto

import "github.com/dohuuduy/quanlytailieu-sub000/internal/registry"

// ── 文档模块 DTO ──

// CreateDocumentRequest 创建文档请求；日期格式 2006-01-02
type CreateDocumentRequest struct {
	Code          string   `json:"code"            binding:"required,min=1,max=50"`
	Title         string   `json:"title"           binding:"required,min=1,max=500"`
	Version       string   `json:"version"         binding:"required,max=20"`
	IssueDate     string   `json:"issue_date"      binding:"required"`
	ExpiryDate    *string  `json:"expiry_date"`
	Status        string   `json:"status"`
	Note          *string  `json:"note"            binding:"omitempty,max=5000"`
	Link          *string  `json:"link"            binding:"omitempty,max=2000"`
	CategoryID    string   `json:"category_id"     binding:"required,uuid"`
	IssuingUserID string   `json:"issuing_user_id" binding:"required,uuid"`
	StandardIDs   []string `json:"standard_ids"    binding:"omitempty,dive,uuid"`
}

// UpdateDocumentRequest 更新文档请求；StandardIDs 非 nil 时整体替换关联
type UpdateDocumentRequest struct {
	Code          *string   `json:"code"            binding:"omitempty,min=1,max=50"`
	Title         *string   `json:"title"           binding:"omitempty,min=1,max=500"`
	Version       *string   `json:"version"         binding:"omitempty,max=20"`
	IssueDate     *string   `json:"issue_date"`
	ExpiryDate    *string   `json:"expiry_date"`
	ClearExpiry   bool      `json:"clear_expiry"`
	Status        *string   `json:"status"`
	Note          *string   `json:"note"            binding:"omitempty,max=5000"`
	Link          *string   `json:"link"            binding:"omitempty,max=2000"`
	CategoryID    *string   `json:"category_id"     binding:"omitempty,uuid"`
	IssuingUserID *string   `json:"issuing_user_id" binding:"omitempty,uuid"`
	StandardIDs   *[]string `json:"standard_ids"    binding:"omitempty,dive,uuid"`
}

// TransitionRequest 审批 / 作废请求
type TransitionRequest struct {
	Note *string `json:"note" binding:"omitempty,max=2000"`
}

// DocumentResponse 文档响应
type DocumentResponse struct {
	ID           string `json:"id"`
	Code         string `json:"code"`
	Title        string `json:"title"`
	Version      string `json:"version"`
	IssueDate    string `json:"issue_date"`
	ExpiryDate   string `json:"expiry_date,omitempty"`
	Status       string `json:"status"`
	ExpiringSoon bool   `json:"expiring_soon"`
	Note         string `json:"note,omitempty"`
	Link         string `json:"link,omitempty"`
	Category     *Ref   `json:"category,omitempty"`
	IssuingUser  *Ref   `json:"issuing_user,omitempty"`
	Standards    []Ref  `json:"standards,omitempty"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// DocumentLookupResponse 按类别或标准查询文档：实体、侧边栏统计与当前页
type DocumentLookupResponse struct {
	Owner      Ref                    `json:"owner"`
	Stats      registry.DocumentStats `json:"stats"`
	Expiring   []DocumentResponse     `json:"expiring"`
	List       []DocumentResponse     `json:"list"`
	Pagination PageMeta               `json:"pagination"`
}

// HistoryResponse 文档历史条目
type HistoryResponse struct {
	ID        string `json:"id"`
	Action    string `json:"action"`
	Actor     *Ref   `json:"actor,omitempty"`
	Note      string `json:"note,omitempty"`
	CreatedAt string `json:"created_at"`
}

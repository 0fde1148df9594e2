package dto

// ── 类别 / 标准模块 DTO ──

// CreateCategoryRequest 创建类别请求（标准共用同一结构）
type CreateCategoryRequest struct {
	Name        string  `json:"name"        binding:"required,min=1,max=200"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	Status      string  `json:"status"      binding:"omitempty"`
}

// UpdateCategoryRequest 更新类别请求，未提供的字段保持不变
type UpdateCategoryRequest struct {
	Name        *string `json:"name"        binding:"omitempty,min=1,max=200"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	Status      *string `json:"status"`
}

// CategoryResponse 类别响应
type CategoryResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// CreateStandardRequest 创建标准请求
type CreateStandardRequest = CreateCategoryRequest

// UpdateStandardRequest 更新标准请求
type UpdateStandardRequest = UpdateCategoryRequest

// StandardResponse 标准响应
type StandardResponse = CategoryResponse

package service

import (
	"errors"

	pkgerrors "github.com/dohuuduy/quanlytailieu-sub000/pkg/errors"
)

// ── 通用业务错误 ──

var (
	// ErrDeleteBlocked 删除前检查发现依赖记录；具体数量见 *BlockedError
	ErrDeleteBlocked = pkgerrors.ErrDeleteBlocked
	// ErrDeleteRejected 数据库拒绝删除（前置检查过期）
	ErrDeleteRejected = pkgerrors.ErrDeleteRejected
	// ErrValidation 参数校验失败；字段详情见 *ValidationError
	ErrValidation = pkgerrors.ErrValidation

	ErrInvalidTransition = errors.New("当前状态不允许该操作")
)

// BlockedError 删除被阻止，携带依赖记录数
type BlockedError = pkgerrors.BlockedError

// ValidationError 参数校验错误
type ValidationError = pkgerrors.ValidationError

// ── 类别模块业务错误 ──

var (
	ErrCategoryNotFound   = errors.New("类别不存在")
	ErrCategoryNameExists = errors.New("类别名称已存在")
)

// ── 标准模块业务错误 ──

var (
	ErrStandardNotFound   = errors.New("标准不存在")
	ErrStandardNameExists = errors.New("标准名称已存在")
)

// ── 用户模块业务错误 ──

var (
	ErrUserNotFound    = errors.New("用户不存在")
	ErrUserEmailExists = errors.New("邮箱已被使用")
)

// ── 文档模块业务错误 ──

var (
	ErrDocumentNotFound   = errors.New("文档不存在")
	ErrDocumentCodeExists = errors.New("文档编号已存在")
)

// ── 评审计划模块业务错误 ──

var (
	ErrScheduleNotFound = errors.New("评审计划不存在")
)

// ── 导出模块业务错误 ──

var (
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

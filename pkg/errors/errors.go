// Package errors 跨层共享的业务错误类型
package errors

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	// ErrDeleteBlocked 删除前检查发现仍有依赖记录
	ErrDeleteBlocked = errors.New("存在依赖记录，无法删除")
	// ErrDeleteRejected 删除被数据库外键拒绝（前置检查已过期）
	ErrDeleteRejected = errors.New("删除失败：记录仍被引用")
	// ErrValidation 参数校验失败
	ErrValidation = errors.New("参数校验失败")
)

// BlockedError 删除被阻止，携带依赖记录数
type BlockedError struct {
	Entity     string
	Dependents int64
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("%s 仍有 %d 条依赖记录，无法删除", e.Entity, e.Dependents)
}

// Is 使 errors.Is(err, ErrDeleteBlocked) 成立
func (e *BlockedError) Is(target error) bool { return target == ErrDeleteBlocked }

// ValidationError 包装 ozzo-validation 的校验结果
type ValidationError struct {
	Err error
}

// NewValidationError 包装校验错误；err 为 nil 时返回 nil
func NewValidationError(err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Err: err}
}

func (e *ValidationError) Error() string { return e.Err.Error() }

func (e *ValidationError) Unwrap() error { return e.Err }

// Is 使 errors.Is(err, ErrValidation) 成立
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Fields 按字段展开的错误信息；非字段错误归入 "_"
func (e *ValidationError) Fields() map[string]string {
	out := make(map[string]string)
	var verrs validation.Errors
	if errors.As(e.Err, &verrs) {
		for k, v := range verrs {
			if v != nil {
				out[k] = v.Error()
			}
		}
		return out
	}
	out["_"] = e.Err.Error()
	return out
}

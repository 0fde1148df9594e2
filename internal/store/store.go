// Package store 定义核心所依赖的通用记录存储契约：
// 按表名读取（过滤、排序、关联展开）、按 ID 读取、插入、更新、删除。
package store

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("记录不存在")
	ErrReferenced   = errors.New("记录仍被其他数据引用")
	ErrDuplicate    = errors.New("唯一约束冲突")
	ErrInvalidField = errors.New("非法字段名")
	ErrUnknownTable = errors.New("未注册的数据表")
)

// Op 过滤操作符
type Op string

const (
	OpEq  Op = "eq"
	OpNe  Op = "ne"
	OpIn  Op = "in"
	OpGte Op = "gte"
	OpLte Op = "lte"
)

// Filter 单个过滤谓词；Value 为 nil 时 eq/ne 对应 IS NULL / IS NOT NULL
type Filter struct {
	Field string
	Op    Op
	Value any
}

// Eq 等值过滤
func Eq(field string, value any) Filter { return Filter{Field: field, Op: OpEq, Value: value} }

// Ne 不等过滤
func Ne(field string, value any) Filter { return Filter{Field: field, Op: OpNe, Value: value} }

// In 集合过滤，values 为空切片时不匹配任何行
func In(field string, values []string) Filter { return Filter{Field: field, Op: OpIn, Value: values} }

// Gte 大于等于
func Gte(field string, value any) Filter { return Filter{Field: field, Op: OpGte, Value: value} }

// Lte 小于等于
func Lte(field string, value any) Filter { return Filter{Field: field, Op: OpLte, Value: value} }

// Order 排序项
type Order struct {
	Field string
	Desc  bool
}

// Query 读取参数。Joins 为关联名（可用 "Document.Category" 表示二级关联）
type Query struct {
	Filters []Filter
	Order   []Order
	Joins   []string
	Limit   int
}

// Store 通用记录存储
type Store interface {
	// Fetch 读取 table 中符合条件的行写入 dest（切片指针）
	Fetch(ctx context.Context, table string, q Query, dest any) error
	// FetchOne 按 id 读取单行写入 dest（结构体指针），不存在返回 ErrNotFound
	FetchOne(ctx context.Context, table, id string, dest any, joins ...string) error
	// Insert 插入行（结构体指针或切片指针），主键与默认值回填
	Insert(ctx context.Context, table string, row any) error
	// Update 局部更新，没有行被修改时返回 ErrNotFound
	Update(ctx context.Context, table, id string, patch map[string]any) error
	// Delete 按 id 删除；被外键拒绝时返回 ErrReferenced
	Delete(ctx context.Context, table, id string) error
	// DeleteWhere 按条件删除（用于关联表），至少需要一个条件
	DeleteWhere(ctx context.Context, table string, filters ...Filter) error
	// Count 统计符合条件的行数
	Count(ctx context.Context, table string, filters ...Filter) (int64, error)
}

// Package registry 是登记系统的核心：关联解析、派生统计，以及表格的筛选/排序/分页流水线。
// 该包不做 I/O 之外的任何副作用，所有计算均为纯函数。
package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/dohuuduy/quanlytailieu-sub000/internal/model"
	"github.com/dohuuduy/quanlytailieu-sub000/internal/store"
)

// ErrEmptyParent 父实体 ID 为空
var ErrEmptyParent = errors.New("父实体 ID 不能为空")

// JoinSpec 描述一次"父 ID → 关联表 → 目标实体"的解析
//
// Target 为空表示关联表的行本身即目标（一对多）；
// Nested 为目标实体的下级关联，按 Target 前缀展开。
type JoinSpec struct {
	Table      string
	ForeignKey string
	Target     string
	Nested     []string
	Order      []store.Order
}

func (s JoinSpec) joins() []string {
	if s.Target == "" {
		return s.Nested
	}
	out := make([]string, 0, len(s.Nested)+1)
	out = append(out, s.Target)
	for _, n := range s.Nested {
		out = append(out, s.Target+"."+n)
	}
	return out
}

// Resolve 读取 parentID 关联的行并展平成目标实体列表。
// 目标为 nil 的孤儿行被直接丢弃；读取失败时不返回任何行。
func Resolve[L any, T any](ctx context.Context, st store.Store, parentID string, spec JoinSpec, target func(*L) *T) ([]T, error) {
	if parentID == "" {
		return nil, ErrEmptyParent
	}

	var rows []L
	q := store.Query{
		Filters: []store.Filter{store.Eq(spec.ForeignKey, parentID)},
		Order:   spec.Order,
		Joins:   spec.joins(),
	}
	if err := st.Fetch(ctx, spec.Table, q, &rows); err != nil {
		return nil, fmt.Errorf("解析 %s.%s=%s 失败: %w", spec.Table, spec.ForeignKey, parentID, err)
	}

	return Flatten(rows, target), nil
}

// Flatten 提取每行的目标实体，跳过 nil
func Flatten[L any, T any](rows []L, target func(*L) *T) []T {
	out := make([]T, 0, len(rows))
	for i := range rows {
		if t := target(&rows[i]); t != nil {
			out = append(out, *t)
		}
	}
	return out
}

// ── 预置解析规格 ──

var (
	// DocumentsOfStandard 标准 → 满足该标准的文档（含类别与签发人）
	DocumentsOfStandard = JoinSpec{
		Table:      model.TableDocumentStandards,
		ForeignKey: "standard_id",
		Target:     "Document",
		Nested:     []string{"Category", "IssuingUser"},
		Order:      []store.Order{{Field: "created_at"}},
	}

	// StandardsOfDocument 文档 → 其满足的标准
	StandardsOfDocument = JoinSpec{
		Table:      model.TableDocumentStandards,
		ForeignKey: "document_id",
		Target:     "Standard",
		Order:      []store.Order{{Field: "created_at"}},
	}

	// DocumentsOfCategory 类别 → 其下文档（一对多）
	DocumentsOfCategory = JoinSpec{
		Table:      model.TableDocuments,
		ForeignKey: "category_id",
		Nested:     []string{"Category", "IssuingUser"},
		Order:      []store.Order{{Field: "created_at", Desc: true}},
	}

	// SchedulesOfStandard 标准 → 评审计划（一对多）
	SchedulesOfStandard = JoinSpec{
		Table:      model.TableScheduleEntries,
		ForeignKey: "standard_id",
		Nested:     []string{"Standard"},
		Order:      []store.Order{{Field: "planned_date"}},
	}
)

// ResolveDocumentsOfStandard 解析标准关联的文档
func ResolveDocumentsOfStandard(ctx context.Context, st store.Store, standardID string) ([]model.Document, error) {
	return Resolve(ctx, st, standardID, DocumentsOfStandard, func(l *model.DocumentStandard) *model.Document {
		return l.Document
	})
}

// ResolveStandardsOfDocument 解析文档满足的标准
func ResolveStandardsOfDocument(ctx context.Context, st store.Store, documentID string) ([]model.Standard, error) {
	return Resolve(ctx, st, documentID, StandardsOfDocument, func(l *model.DocumentStandard) *model.Standard {
		return l.Standard
	})
}

// ResolveDocumentsOfCategory 解析类别下的文档
func ResolveDocumentsOfCategory(ctx context.Context, st store.Store, categoryID string) ([]model.Document, error) {
	return Resolve(ctx, st, categoryID, DocumentsOfCategory, self[model.Document])
}

// ResolveSchedulesOfStandard 解析标准的评审计划
func ResolveSchedulesOfStandard(ctx context.Context, st store.Store, standardID string) ([]model.ScheduleEntry, error) {
	return Resolve(ctx, st, standardID, SchedulesOfStandard, self[model.ScheduleEntry])
}

func self[T any](row *T) *T { return row }

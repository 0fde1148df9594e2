package repository

import (
	"context"

	"github.com/dohuuduy/quanlytailieu-sub000/internal/model"
	"github.com/dohuuduy/quanlytailieu-sub000/internal/store"
)

// HistoryRepository 文档历史数据访问接口（只追加）
type HistoryRepository interface {
	Append(ctx context.Context, h *model.HistoryEntry) error
	ListByDocument(ctx context.Context, documentID string) ([]model.HistoryEntry, error)
}

type historyRepo struct {
	st store.Store
}

// NewHistoryRepo 创建 HistoryRepository 实例
func NewHistoryRepo(st store.Store) HistoryRepository {
	return &historyRepo{st: st}
}

func (r *historyRepo) Append(ctx context.Context, h *model.HistoryEntry) error {
	return r.st.Insert(ctx, model.TableDocumentHistory, h)
}

func (r *historyRepo) ListByDocument(ctx context.Context, documentID string) ([]model.HistoryEntry, error) {
	var list []model.HistoryEntry
	err := r.st.Fetch(ctx, model.TableDocumentHistory, store.Query{
		Filters: []store.Filter{store.Eq("document_id", documentID)},
		Order:   []store.Order{{Field: "created_at"}},
		Joins:   []string{"Actor"},
	}, &list)
	return list, err
}

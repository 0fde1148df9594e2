package repository

import (
	"context"

	"github.com/dohuuduy/quanlytailieu-sub000/internal/store"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Category CategoryRepository
	Standard StandardRepository
	User     UserRepository
	Document DocumentRepository
	Schedule ScheduleRepository
	History  HistoryRepository

	// Store 供关联解析直接使用
	Store store.Store
}

// NewRepository 创建 Repository 聚合
func NewRepository(st store.Store) *Repository {
	return &Repository{
		Category: NewCategoryRepo(st),
		Standard: NewStandardRepo(st),
		User:     NewUserRepo(st),
		Document: NewDocumentRepo(st),
		Schedule: NewScheduleRepo(st),
		History:  NewHistoryRepo(st),
		Store:    st,
	}
}

// findOne 按唯一字段查找单行，不存在返回 store.ErrNotFound
func findOne[T any](ctx context.Context, st store.Store, table, field string, value any) (*T, error) {
	var rows []T
	q := store.Query{Filters: []store.Filter{store.Eq(field, value)}, Limit: 1}
	if err := st.Fetch(ctx, table, q, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, store.ErrNotFound
	}
	return &rows[0], nil
}

// getByID 按主键读取
func getByID[T any](ctx context.Context, st store.Store, table, id string, joins ...string) (*T, error) {
	var row T
	if err := st.FetchOne(ctx, table, id, &row, joins...); err != nil {
		return nil, err
	}
	return &row, nil
}

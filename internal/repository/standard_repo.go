package repository

import (
	"context"

	"github.com/dohuuduy/quanlytailieu-sub000/internal/model"
	"github.com/dohuuduy/quanlytailieu-sub000/internal/store"
)

// StandardRepository 标准数据访问接口
type StandardRepository interface {
	Create(ctx context.Context, s *model.Standard) error
	GetByID(ctx context.Context, id string) (*model.Standard, error)
	GetByName(ctx context.Context, name string) (*model.Standard, error)
	List(ctx context.Context) ([]model.Standard, error)
	ListByIDs(ctx context.Context, ids []string) ([]model.Standard, error)
	Update(ctx context.Context, s *model.Standard) error
	Delete(ctx context.Context, id string) error
	CountDocuments(ctx context.Context, standardID string) (int64, error)
	CountSchedules(ctx context.Context, standardID string) (int64, error)
}

type standardRepo struct {
	st store.Store
}

// NewStandardRepo 创建 StandardRepository 实例
func NewStandardRepo(st store.Store) StandardRepository {
	return &standardRepo{st: st}
}

func (r *standardRepo) Create(ctx context.Context, s *model.Standard) error {
	return r.st.Insert(ctx, model.TableStandards, s)
}

func (r *standardRepo) GetByID(ctx context.Context, id string) (*model.Standard, error) {
	return getByID[model.Standard](ctx, r.st, model.TableStandards, id)
}

func (r *standardRepo) GetByName(ctx context.Context, name string) (*model.Standard, error) {
	return findOne[model.Standard](ctx, r.st, model.TableStandards, "name", name)
}

func (r *standardRepo) List(ctx context.Context) ([]model.Standard, error) {
	var list []model.Standard
	err := r.st.Fetch(ctx, model.TableStandards, store.Query{
		Order: []store.Order{{Field: "name"}},
	}, &list)
	return list, err
}

func (r *standardRepo) ListByIDs(ctx context.Context, ids []string) ([]model.Standard, error) {
	var list []model.Standard
	err := r.st.Fetch(ctx, model.TableStandards, store.Query{
		Filters: []store.Filter{store.In("id", ids)},
	}, &list)
	return list, err
}

func (r *standardRepo) Update(ctx context.Context, s *model.Standard) error {
	return r.st.Update(ctx, model.TableStandards, s.ID, map[string]any{
		"name":        s.Name,
		"description": s.Description,
		"status":      s.Status,
	})
}

func (r *standardRepo) Delete(ctx context.Context, id string) error {
	return r.st.Delete(ctx, model.TableStandards, id)
}

func (r *standardRepo) CountDocuments(ctx context.Context, standardID string) (int64, error) {
	return r.st.Count(ctx, model.TableDocumentStandards, store.Eq("standard_id", standardID))
}

func (r *standardRepo) CountSchedules(ctx context.Context, standardID string) (int64, error) {
	return r.st.Count(ctx, model.TableScheduleEntries, store.Eq("standard_id", standardID))
}

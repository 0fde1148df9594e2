package repository

import (
	"context"

	"github.com/dohuuduy/quanlytailieu-sub000/internal/model"
	"github.com/dohuuduy/quanlytailieu-sub000/internal/store"
)

// ScheduleRepository 评审计划数据访问接口
type ScheduleRepository interface {
	Create(ctx context.Context, e *model.ScheduleEntry) error
	GetByID(ctx context.Context, id string) (*model.ScheduleEntry, error)
	List(ctx context.Context) ([]model.ScheduleEntry, error)
	Update(ctx context.Context, e *model.ScheduleEntry) error
	Delete(ctx context.Context, id string) error
}

type scheduleRepo struct {
	st store.Store
}

// NewScheduleRepo 创建 ScheduleRepository 实例
func NewScheduleRepo(st store.Store) ScheduleRepository {
	return &scheduleRepo{st: st}
}

func (r *scheduleRepo) Create(ctx context.Context, e *model.ScheduleEntry) error {
	return r.st.Insert(ctx, model.TableScheduleEntries, e)
}

func (r *scheduleRepo) GetByID(ctx context.Context, id string) (*model.ScheduleEntry, error) {
	return getByID[model.ScheduleEntry](ctx, r.st, model.TableScheduleEntries, id, "Standard")
}

func (r *scheduleRepo) List(ctx context.Context) ([]model.ScheduleEntry, error) {
	var list []model.ScheduleEntry
	err := r.st.Fetch(ctx, model.TableScheduleEntries, store.Query{
		Order: []store.Order{{Field: "planned_date"}},
		Joins: []string{"Standard"},
	}, &list)
	return list, err
}

func (r *scheduleRepo) Update(ctx context.Context, e *model.ScheduleEntry) error {
	return r.st.Update(ctx, model.TableScheduleEntries, e.ID, map[string]any{
		"standard_id":  e.StandardID,
		"planned_date": e.PlannedDate,
		"actual_start": e.ActualStart,
		"actual_end":   e.ActualEnd,
		"auditor":      e.Auditor,
		"organization": e.Organization,
		"status":       e.Status,
		"note":         e.Note,
	})
}

func (r *scheduleRepo) Delete(ctx context.Context, id string) error {
	return r.st.Delete(ctx, model.TableScheduleEntries, id)
}

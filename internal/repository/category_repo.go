package repository

import (
	"context"

	"github.com/dohuuduy/quanlytailieu-sub000/internal/model"
	"github.com/dohuuduy/quanlytailieu-sub000/internal/store"
)

// CategoryRepository 类别数据访问接口
type CategoryRepository interface {
	Create(ctx context.Context, c *model.Category) error
	GetByID(ctx context.Context, id string) (*model.Category, error)
	GetByName(ctx context.Context, name string) (*model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
	Update(ctx context.Context, c *model.Category) error
	Delete(ctx context.Context, id string) error
	CountDocuments(ctx context.Context, categoryID string) (int64, error)
}

// categoryRepo CategoryRepository 的 Store 实现
type categoryRepo struct {
	st store.Store
}

// NewCategoryRepo 创建 CategoryRepository 实例
func NewCategoryRepo(st store.Store) CategoryRepository {
	return &categoryRepo{st: st}
}

func (r *categoryRepo) Create(ctx context.Context, c *model.Category) error {
	return r.st.Insert(ctx, model.TableCategories, c)
}

func (r *categoryRepo) GetByID(ctx context.Context, id string) (*model.Category, error) {
	return getByID[model.Category](ctx, r.st, model.TableCategories, id)
}

func (r *categoryRepo) GetByName(ctx context.Context, name string) (*model.Category, error) {
	return findOne[model.Category](ctx, r.st, model.TableCategories, "name", name)
}

func (r *categoryRepo) List(ctx context.Context) ([]model.Category, error) {
	var list []model.Category
	err := r.st.Fetch(ctx, model.TableCategories, store.Query{
		Order: []store.Order{{Field: "name"}},
	}, &list)
	return list, err
}

func (r *categoryRepo) Update(ctx context.Context, c *model.Category) error {
	return r.st.Update(ctx, model.TableCategories, c.ID, map[string]any{
		"name":        c.Name,
		"description": c.Description,
		"status":      c.Status,
	})
}

func (r *categoryRepo) Delete(ctx context.Context, id string) error {
	return r.st.Delete(ctx, model.TableCategories, id)
}

func (r *categoryRepo) CountDocuments(ctx context.Context, categoryID string) (int64, error) {
	return r.st.Count(ctx, model.TableDocuments, store.Eq("category_id", categoryID))
}

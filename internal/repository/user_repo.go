package repository

import (
	"context"

	"github.com/dohuuduy/quanlytailieu-sub000/internal/model"
	"github.com/dohuuduy/quanlytailieu-sub000/internal/store"
)

// UserRepository 用户数据访问接口
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id string) error
	// CountReferences 签发的文档数与历史记录中作为操作人的次数
	CountReferences(ctx context.Context, userID string) (int64, error)
}

// userRepo UserRepository 的 Store 实现
type userRepo struct {
	st store.Store
}

// NewUserRepo 创建 UserRepository 实例
func NewUserRepo(st store.Store) UserRepository {
	return &userRepo{st: st}
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	return r.st.Insert(ctx, model.TableUsers, user)
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	return getByID[model.User](ctx, r.st, model.TableUsers, id)
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return findOne[model.User](ctx, r.st, model.TableUsers, "email", email)
}

func (r *userRepo) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := r.st.Fetch(ctx, model.TableUsers, store.Query{
		Order: []store.Order{{Field: "full_name"}},
	}, &users)
	return users, err
}

func (r *userRepo) Update(ctx context.Context, user *model.User) error {
	return r.st.Update(ctx, model.TableUsers, user.ID, map[string]any{
		"full_name": user.FullName,
		"email":     user.Email,
		"role":      user.Role,
	})
}

func (r *userRepo) Delete(ctx context.Context, id string) error {
	return r.st.Delete(ctx, model.TableUsers, id)
}

func (r *userRepo) CountReferences(ctx context.Context, userID string) (int64, error) {
	docs, err := r.st.Count(ctx, model.TableDocuments, store.Eq("issuing_user_id", userID))
	if err != nil {
		return 0, err
	}
	hist, err := r.st.Count(ctx, model.TableDocumentHistory, store.Eq("actor_id", userID))
	if err != nil {
		return 0, err
	}
	return docs + hist, nil
}

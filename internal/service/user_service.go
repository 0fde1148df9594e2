package service

import (
	"context"
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"go.uber.org/zap"

	"github.com/dohuuduy/quanlytailieu-sub000/internal/dto"
	"github.com/dohuuduy/quanlytailieu-sub000/internal/model"
	"github.com/dohuuduy/quanlytailieu-sub000/internal/registry"
	"github.com/dohuuduy/quanlytailieu-sub000/internal/repository"
	"github.com/dohuuduy/quanlytailieu-sub000/internal/store"
	pkgerrors "github.com/dohuuduy/quanlytailieu-sub000/pkg/errors"
)

// UserService 用户业务接口
type UserService interface {
	Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	GetByID(ctx context.Context, id string) (*dto.UserResponse, error)
	List(ctx context.Context, q *dto.ListQuery) (*dto.PageResult[dto.UserResponse], error)
	Update(ctx context.Context, id string, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	// Delete 仍签发文档或出现在历史记录中时被阻止
	Delete(ctx context.Context, id string) error
}

type userService struct {
	repo   *repository.Repository
	opts   Options
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, opts Options, logger *zap.Logger) UserService {
	return &userService{repo: repo, opts: opts, logger: logger}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ────────────────────── Create ──────────────────────

func (s *userService) Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	fullName := cleanString(req.FullName)
	email := normalizeEmail(req.Email)
	err := validation.Errors{
		"full_name": validation.Validate(fullName, validation.Required, validation.RuneLength(1, 100)),
		"email":     validation.Validate(email, validation.Required, is.EmailFormat),
		"role":      validation.Validate(req.Role, validation.In(roleValues()...)),
	}.Filter()
	if err != nil {
		return nil, pkgerrors.NewValidationError(err)
	}

	existing, err := s.repo.User.GetByEmail(ctx, email)
	if err != nil && !isNotFound(err) {
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserEmailExists
	}

	user := &model.User{FullName: fullName, Email: email, Role: model.RoleUser}
	if req.Role != "" {
		user.Role = model.Role(req.Role)
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrUserEmailExists
		}
		s.logger.Error("创建用户失败", zap.Error(err))
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *userService) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *userService) get(ctx context.Context, id string) (*model.User, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return user, nil
}

// ────────────────────── List ──────────────────────

func (s *userService) List(ctx context.Context, q *dto.ListQuery) (*dto.PageResult[dto.UserResponse], error) {
	return loadPage(ctx, s.logger, "列出用户失败", registry.UserTable(s.opts.Paging), q, s.repo.User.List, toUserResponse)
}

// ────────────────────── Update ──────────────────────

func (s *userService) Update(ctx context.Context, id string, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	fullName := cleanOptional(req.FullName)
	var email *string
	if req.Email != nil {
		v := normalizeEmail(*req.Email)
		email = &v
	}
	if err := (validation.Errors{
		"full_name": validation.Validate(fullName, validation.NilOrNotEmpty, validation.RuneLength(1, 100)),
		"email":     validation.Validate(email, validation.NilOrNotEmpty, is.EmailFormat),
		"role":      validation.Validate(req.Role, validation.NilOrNotEmpty, validation.In(roleValues()...)),
	}).Filter(); err != nil {
		return nil, pkgerrors.NewValidationError(err)
	}

	if email != nil {
		if *email != user.Email {
			existing, err := s.repo.User.GetByEmail(ctx, *email)
			if err != nil && !isNotFound(err) {
				return nil, err
			}
			if existing != nil {
				return nil, ErrUserEmailExists
			}
		}
		user.Email = *email
	}
	if fullName != nil {
		user.FullName = *fullName
	}
	if req.Role != nil {
		user.Role = model.Role(*req.Role)
	}

	if err := s.repo.User.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicate):
			return nil, ErrUserEmailExists
		case isNotFound(err):
			return nil, ErrUserNotFound
		}
		s.logger.Error("更新用户失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// ────────────────────── Delete ──────────────────────

func (s *userService) Delete(ctx context.Context, id string) error {
	if _, err := s.get(ctx, id); err != nil {
		return err
	}

	count, err := s.repo.User.CountReferences(ctx, id)
	if err != nil {
		s.logger.Error("统计用户引用失败", zap.String("id", id), zap.Error(err))
		return err
	}
	if count > 0 {
		return &BlockedError{Entity: model.TableUsers, Dependents: count}
	}

	if err := s.repo.User.Delete(ctx, id); err != nil {
		s.logger.Warn("删除用户失败", zap.String("id", id), zap.Error(err))
		return deleteError(err, ErrUserNotFound)
	}
	return nil
}

package service

import (
	"context"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.uber.org/zap"

	"github.com/dohuuduy/quanlytailieu-sub000/internal/dto"
	"github.com/dohuuduy/quanlytailieu-sub000/internal/model"
	"github.com/dohuuduy/quanlytailieu-sub000/internal/registry"
	"github.com/dohuuduy/quanlytailieu-sub000/internal/repository"
	"github.com/dohuuduy/quanlytailieu-sub000/internal/store"
	pkgerrors "github.com/dohuuduy/quanlytailieu-sub000/pkg/errors"
)

// CategoryService 类别业务接口
type CategoryService interface {
	Create(ctx context.Context, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error)
	List(ctx context.Context, q *dto.ListQuery) (*dto.PageResult[dto.CategoryResponse], error)
	Update(ctx context.Context, id string, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	Delete(ctx context.Context, id string) error
	// Documents 类别下的文档：侧边栏统计与当前页
	Documents(ctx context.Context, id string, q *dto.ListQuery) (*dto.DocumentLookupResponse, error)
}

type categoryService struct {
	repo   *repository.Repository
	opts   Options
	logger *zap.Logger
}

// NewCategoryService 创建 CategoryService 实例
func NewCategoryService(repo *repository.Repository, opts Options, logger *zap.Logger) CategoryService {
	return &categoryService{repo: repo, opts: opts, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *categoryService) Create(ctx context.Context, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := cleanString(req.Name)
	err := validation.Errors{
		"name":   validation.Validate(name, validation.Required, validation.RuneLength(1, 200)),
		"status": validation.Validate(req.Status, validation.In(statusValues()...)),
	}.Filter()
	if err != nil {
		return nil, pkgerrors.NewValidationError(err)
	}

	// 检查名称唯一性
	existing, err := s.repo.Category.GetByName(ctx, name)
	if err != nil && !isNotFound(err) {
		s.logger.Error("查询类别失败", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		return nil, ErrCategoryNameExists
	}

	c := &model.Category{
		Name:        name,
		Description: cleanText(req.Description),
		Status:      model.StatusActive,
	}
	if req.Status != "" {
		c.Status = model.Status(req.Status)
	}

	if err := s.repo.Category.Create(ctx, c); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrCategoryNameExists
		}
		s.logger.Error("创建类别失败", zap.Error(err))
		return nil, err
	}

	resp := toCategoryResponse(c)
	return &resp, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *categoryService) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	c, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toCategoryResponse(c)
	return &resp, nil
}

func (s *categoryService) get(ctx context.Context, id string) (*model.Category, error) {
	c, err := s.repo.Category.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrCategoryNotFound
		}
		s.logger.Error("查询类别失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return c, nil
}

// ────────────────────── List ──────────────────────

func (s *categoryService) List(ctx context.Context, q *dto.ListQuery) (*dto.PageResult[dto.CategoryResponse], error) {
	return loadPage(ctx, s.logger, "列出类别失败", registry.CategoryTable(s.opts.Paging), q, s.repo.Category.List, toCategoryResponse)
}

// ────────────────────── Update ──────────────────────

func (s *categoryService) Update(ctx context.Context, id string, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	c, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	// 先清洗再校验：纯空白或纯标记的名称清洗后为空，按必填拒绝
	name := cleanOptional(req.Name)
	if err := (validation.Errors{
		"name":   validation.Validate(name, validation.NilOrNotEmpty, validation.RuneLength(1, 200)),
		"status": validation.Validate(req.Status, validation.NilOrNotEmpty, validation.In(statusValues()...)),
	}).Filter(); err != nil {
		return nil, pkgerrors.NewValidationError(err)
	}

	// 如果更新名称，检查唯一性
	if name != nil {
		if *name != c.Name {
			existing, err := s.repo.Category.GetByName(ctx, *name)
			if err != nil && !isNotFound(err) {
				return nil, err
			}
			if existing != nil {
				return nil, ErrCategoryNameExists
			}
		}
		c.Name = *name
	}
	if req.Description != nil {
		c.Description = cleanText(req.Description)
	}
	if req.Status != nil {
		c.Status = model.Status(*req.Status)
	}

	if err := s.repo.Category.Update(ctx, c); err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicate):
			return nil, ErrCategoryNameExists
		case isNotFound(err):
			return nil, ErrCategoryNotFound
		}
		s.logger.Error("更新类别失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// ────────────────────── Delete ──────────────────────

func (s *categoryService) Delete(ctx context.Context, id string) error {
	if _, err := s.get(ctx, id); err != nil {
		return err
	}

	count, err := s.repo.Category.CountDocuments(ctx, id)
	if err != nil {
		s.logger.Error("统计类别下文档失败", zap.String("id", id), zap.Error(err))
		return err
	}
	if count > 0 {
		return &BlockedError{Entity: model.TableCategories, Dependents: count}
	}

	if err := s.repo.Category.Delete(ctx, id); err != nil {
		s.logger.Warn("删除类别失败", zap.String("id", id), zap.Error(err))
		return deleteError(err, ErrCategoryNotFound)
	}
	return nil
}

// ────────────────────── Documents ──────────────────────

func (s *categoryService) Documents(ctx context.Context, id string, q *dto.ListQuery) (*dto.DocumentLookupResponse, error) {
	c, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	docs, err := registry.ResolveDocumentsOfCategory(ctx, s.repo.Store, id)
	if err != nil {
		s.logger.Error("解析类别文档失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return documentLookup(dto.Ref{ID: c.ID, Name: c.Name}, docs, registry.DocumentTable(s.opts.Paging), q, s.opts)
}

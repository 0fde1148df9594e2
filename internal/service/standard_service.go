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

// StandardService 标准业务接口
type StandardService interface {
	Create(ctx context.Context, req *dto.CreateStandardRequest) (*dto.StandardResponse, error)
	GetByID(ctx context.Context, id string) (*dto.StandardResponse, error)
	List(ctx context.Context, q *dto.ListQuery) (*dto.PageResult[dto.StandardResponse], error)
	Update(ctx context.Context, id string, req *dto.UpdateStandardRequest) (*dto.StandardResponse, error)
	// Delete 仍有关联文档或评审计划时被阻止
	Delete(ctx context.Context, id string) error
	// Documents 满足该标准的文档：侧边栏统计与当前页（按编号、标题搜索）
	Documents(ctx context.Context, id string, q *dto.ListQuery) (*dto.DocumentLookupResponse, error)
	// Schedules 该标准的评审计划
	Schedules(ctx context.Context, id string, q *dto.ListQuery) (*dto.PageResult[dto.ScheduleResponse], error)
}

type standardService struct {
	repo   *repository.Repository
	opts   Options
	logger *zap.Logger
}

// NewStandardService 创建 StandardService 实例
func NewStandardService(repo *repository.Repository, opts Options, logger *zap.Logger) StandardService {
	return &standardService{repo: repo, opts: opts, logger: logger}
}

func (s *standardService) Create(ctx context.Context, req *dto.CreateStandardRequest) (*dto.StandardResponse, error) {
	name := cleanString(req.Name)
	err := validation.Errors{
		"name":   validation.Validate(name, validation.Required, validation.RuneLength(1, 200)),
		"status": validation.Validate(req.Status, validation.In(statusValues()...)),
	}.Filter()
	if err != nil {
		return nil, pkgerrors.NewValidationError(err)
	}

	existing, err := s.repo.Standard.GetByName(ctx, name)
	if err != nil && !isNotFound(err) {
		s.logger.Error("查询标准失败", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		return nil, ErrStandardNameExists
	}

	std := &model.Standard{
		Name:        name,
		Description: cleanText(req.Description),
		Status:      model.StatusActive,
	}
	if req.Status != "" {
		std.Status = model.Status(req.Status)
	}

	if err := s.repo.Standard.Create(ctx, std); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrStandardNameExists
		}
		s.logger.Error("创建标准失败", zap.Error(err))
		return nil, err
	}

	resp := toStandardResponse(std)
	return &resp, nil
}

func (s *standardService) GetByID(ctx context.Context, id string) (*dto.StandardResponse, error) {
	std, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toStandardResponse(std)
	return &resp, nil
}

func (s *standardService) get(ctx context.Context, id string) (*model.Standard, error) {
	std, err := s.repo.Standard.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrStandardNotFound
		}
		s.logger.Error("查询标准失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return std, nil
}

func (s *standardService) List(ctx context.Context, q *dto.ListQuery) (*dto.PageResult[dto.StandardResponse], error) {
	return loadPage(ctx, s.logger, "列出标准失败", registry.StandardTable(s.opts.Paging), q, s.repo.Standard.List, toStandardResponse)
}

func (s *standardService) Update(ctx context.Context, id string, req *dto.UpdateStandardRequest) (*dto.StandardResponse, error) {
	std, err := s.get(ctx, id)
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

	if name != nil {
		if *name != std.Name {
			existing, err := s.repo.Standard.GetByName(ctx, *name)
			if err != nil && !isNotFound(err) {
				return nil, err
			}
			if existing != nil {
				return nil, ErrStandardNameExists
			}
		}
		std.Name = *name
	}
	if req.Description != nil {
		std.Description = cleanText(req.Description)
	}
	if req.Status != nil {
		std.Status = model.Status(*req.Status)
	}

	if err := s.repo.Standard.Update(ctx, std); err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicate):
			return nil, ErrStandardNameExists
		case isNotFound(err):
			return nil, ErrStandardNotFound
		}
		s.logger.Error("更新标准失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.GetByID(ctx, id)
}

func (s *standardService) Delete(ctx context.Context, id string) error {
	if _, err := s.get(ctx, id); err != nil {
		return err
	}

	docs, err := s.repo.Standard.CountDocuments(ctx, id)
	if err != nil {
		s.logger.Error("统计标准关联文档失败", zap.String("id", id), zap.Error(err))
		return err
	}
	schedules, err := s.repo.Standard.CountSchedules(ctx, id)
	if err != nil {
		s.logger.Error("统计标准评审计划失败", zap.String("id", id), zap.Error(err))
		return err
	}
	if n := docs + schedules; n > 0 {
		return &BlockedError{Entity: model.TableStandards, Dependents: n}
	}

	if err := s.repo.Standard.Delete(ctx, id); err != nil {
		s.logger.Warn("删除标准失败", zap.String("id", id), zap.Error(err))
		return deleteError(err, ErrStandardNotFound)
	}
	return nil
}

func (s *standardService) Documents(ctx context.Context, id string, q *dto.ListQuery) (*dto.DocumentLookupResponse, error) {
	std, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	docs, err := registry.ResolveDocumentsOfStandard(ctx, s.repo.Store, id)
	if err != nil {
		s.logger.Error("解析标准文档失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return documentLookup(dto.Ref{ID: std.ID, Name: std.Name}, docs, registry.StandardDocumentTable(s.opts.Paging), q, s.opts)
}

func (s *standardService) Schedules(ctx context.Context, id string, q *dto.ListQuery) (*dto.PageResult[dto.ScheduleResponse], error) {
	if _, err := s.get(ctx, id); err != nil {
		return nil, err
	}

	entries, err := registry.ResolveSchedulesOfStandard(ctx, s.repo.Store, id)
	if err != nil {
		s.logger.Error("解析标准评审计划失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return runPage(registry.ScheduleTable(s.opts.Paging), entries, q, toScheduleResponse)
}

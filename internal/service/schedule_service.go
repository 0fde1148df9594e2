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

// ScheduleService 评审计划业务接口
type ScheduleService interface {
	Create(ctx context.Context, req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ScheduleResponse, error)
	List(ctx context.Context, q *dto.ListQuery) (*dto.PageResult[dto.ScheduleResponse], error)
	Update(ctx context.Context, id string, req *dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error)
	Delete(ctx context.Context, id string) error
}

type scheduleService struct {
	repo   *repository.Repository
	opts   Options
	logger *zap.Logger
}

// NewScheduleService 创建 ScheduleService 实例
func NewScheduleService(repo *repository.Repository, opts Options, logger *zap.Logger) ScheduleService {
	return &scheduleService{repo: repo, opts: opts, logger: logger}
}

func (s *scheduleService) Create(ctx context.Context, req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error) {
	err := validation.Errors{
		"planned_date": validation.Validate(req.PlannedDate, validation.Required, dateRule),
		"actual_start": validation.Validate(req.ActualStart, dateRule),
		"actual_end":   validation.Validate(req.ActualEnd, dateRule),
		"status":       validation.Validate(req.Status, validation.In(scheduleStatusValues()...)),
	}.Filter()
	if err != nil {
		return nil, pkgerrors.NewValidationError(err)
	}

	e := &model.ScheduleEntry{
		StandardID:   req.StandardID,
		PlannedDate:  parseDate(req.PlannedDate),
		ActualStart:  parseOptionalDate(req.ActualStart),
		ActualEnd:    parseOptionalDate(req.ActualEnd),
		Auditor:      cleanText(req.Auditor),
		Organization: cleanText(req.Organization),
		Status:       model.SchedulePlanned,
		Note:         cleanText(req.Note),
	}
	if req.Status != "" {
		e.Status = model.ScheduleStatus(req.Status)
	}
	if err := checkScheduleDates(e); err != nil {
		return nil, err
	}
	if err := s.checkStandard(ctx, e.StandardID); err != nil {
		return nil, err
	}

	if err := s.repo.Schedule.Create(ctx, e); err != nil {
		return nil, s.writeError("创建评审计划失败", err)
	}
	return s.GetByID(ctx, e.ID)
}

func (s *scheduleService) GetByID(ctx context.Context, id string) (*dto.ScheduleResponse, error) {
	e, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toScheduleResponse(e)
	return &resp, nil
}

func (s *scheduleService) get(ctx context.Context, id string) (*model.ScheduleEntry, error) {
	e, err := s.repo.Schedule.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("查询评审计划失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return e, nil
}

func (s *scheduleService) List(ctx context.Context, q *dto.ListQuery) (*dto.PageResult[dto.ScheduleResponse], error) {
	return loadPage(ctx, s.logger, "列出评审计划失败", registry.ScheduleTable(s.opts.Paging), q, s.repo.Schedule.List, toScheduleResponse)
}

func (s *scheduleService) Update(ctx context.Context, id string, req *dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error) {
	e, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := validation.ValidateStruct(req,
		validation.Field(&req.PlannedDate, validation.NilOrNotEmpty, dateRule),
		validation.Field(&req.ActualStart, dateRule),
		validation.Field(&req.ActualEnd, dateRule),
		validation.Field(&req.Status, validation.NilOrNotEmpty, validation.In(scheduleStatusValues()...)),
	); err != nil {
		return nil, pkgerrors.NewValidationError(err)
	}

	if req.StandardID != nil && *req.StandardID != e.StandardID {
		if err := s.checkStandard(ctx, *req.StandardID); err != nil {
			return nil, err
		}
		e.StandardID = *req.StandardID
	}
	if req.PlannedDate != nil {
		e.PlannedDate = parseDate(*req.PlannedDate)
	}
	// 空字符串表示清除
	if req.ActualStart != nil {
		e.ActualStart = parseOptionalDate(req.ActualStart)
	}
	if req.ActualEnd != nil {
		e.ActualEnd = parseOptionalDate(req.ActualEnd)
	}
	if req.Auditor != nil {
		e.Auditor = cleanText(req.Auditor)
	}
	if req.Organization != nil {
		e.Organization = cleanText(req.Organization)
	}
	if req.Status != nil {
		e.Status = model.ScheduleStatus(*req.Status)
	}
	if req.Note != nil {
		e.Note = cleanText(req.Note)
	}
	if err := checkScheduleDates(e); err != nil {
		return nil, err
	}

	if err := s.repo.Schedule.Update(ctx, e); err != nil {
		if isNotFound(err) {
			return nil, ErrScheduleNotFound
		}
		return nil, s.writeError("更新评审计划失败", err)
	}
	return s.GetByID(ctx, id)
}

func (s *scheduleService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Schedule.Delete(ctx, id); err != nil {
		if !isNotFound(err) {
			s.logger.Warn("删除评审计划失败", zap.String("id", id), zap.Error(err))
		}
		return deleteError(err, ErrScheduleNotFound)
	}
	return nil
}

// ── 辅助函数 ──

func checkScheduleDates(e *model.ScheduleEntry) error {
	if e.ActualStart != nil && e.ActualEnd != nil && e.ActualEnd.Before(*e.ActualStart) {
		return fieldError("actual_end", "实际结束日期不能早于开始日期")
	}
	return nil
}

func (s *scheduleService) checkStandard(ctx context.Context, standardID string) error {
	if _, err := s.repo.Standard.GetByID(ctx, standardID); err != nil {
		if isNotFound(err) {
			return fieldError("standard_id", "标准不存在")
		}
		return err
	}
	return nil
}

func (s *scheduleService) writeError(msg string, err error) error {
	if errors.Is(err, store.ErrReferenced) {
		return fieldError("standard_id", "标准不存在")
	}
	s.logger.Error(msg, zap.Error(err))
	return err
}

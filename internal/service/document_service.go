package service

import (
	"context"
	"errors"
	"slices"

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

// DocumentService 文档业务接口
//
// 状态流转：
//   - Approve: pending_review → active
//   - Cancel:  active | pending_review → expired
//
// 创建、更新、审批、作废各追加一条历史记录，操作人为 callerID。
type DocumentService interface {
	Create(ctx context.Context, req *dto.CreateDocumentRequest, callerID string) (*dto.DocumentResponse, error)
	GetByID(ctx context.Context, id string) (*dto.DocumentResponse, error)
	List(ctx context.Context, q *dto.ListQuery) (*dto.PageResult[dto.DocumentResponse], error)
	Update(ctx context.Context, id string, req *dto.UpdateDocumentRequest, callerID string) (*dto.DocumentResponse, error)
	Delete(ctx context.Context, id string) error
	Approve(ctx context.Context, id string, req *dto.TransitionRequest, callerID string) (*dto.DocumentResponse, error)
	Cancel(ctx context.Context, id string, req *dto.TransitionRequest, callerID string) (*dto.DocumentResponse, error)
	History(ctx context.Context, id string, q *dto.ListQuery) (*dto.PageResult[dto.HistoryResponse], error)
}

type documentService struct {
	repo   *repository.Repository
	opts   Options
	logger *zap.Logger
}

// NewDocumentService 创建 DocumentService 实例
func NewDocumentService(repo *repository.Repository, opts Options, logger *zap.Logger) DocumentService {
	return &documentService{repo: repo, opts: opts, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *documentService) Create(ctx context.Context, req *dto.CreateDocumentRequest, callerID string) (*dto.DocumentResponse, error) {
	code := cleanString(req.Code)
	title := cleanString(req.Title)
	version := cleanString(req.Version)
	err := validation.Errors{
		"code":        validation.Validate(code, validation.Required, validation.RuneLength(1, 50)),
		"title":       validation.Validate(title, validation.Required),
		"version":     validation.Validate(version, validation.Required),
		"issue_date":  validation.Validate(req.IssueDate, validation.Required, dateRule),
		"expiry_date": validation.Validate(req.ExpiryDate, dateRule),
		"status":      validation.Validate(req.Status, validation.In(statusValues()...)),
		"link":        validation.Validate(req.Link, is.URL),
	}.Filter()
	if err != nil {
		return nil, pkgerrors.NewValidationError(err)
	}

	doc := &model.Document{
		Code:          code,
		Title:         title,
		Version:       version,
		IssueDate:     parseDate(req.IssueDate),
		ExpiryDate:    parseOptionalDate(req.ExpiryDate),
		Status:        model.StatusActive,
		Note:          cleanText(req.Note),
		Link:          cleanText(req.Link),
		CategoryID:    req.CategoryID,
		IssuingUserID: req.IssuingUserID,
	}
	if req.Status != "" {
		doc.Status = model.Status(req.Status)
	}
	if err := checkDocumentDates(doc); err != nil {
		return nil, err
	}

	// 检查编号唯一性
	existing, err := s.repo.Document.GetByCode(ctx, code)
	if err != nil && !isNotFound(err) {
		s.logger.Error("查询文档失败", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		return nil, ErrDocumentCodeExists
	}

	if err := s.checkReferences(ctx, doc.CategoryID, doc.IssuingUserID); err != nil {
		return nil, err
	}
	standardIDs, err := s.checkStandards(ctx, req.StandardIDs)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Document.Create(ctx, doc); err != nil {
		return nil, s.writeError("创建文档失败", err)
	}
	if len(standardIDs) > 0 {
		if err := s.repo.Document.ReplaceStandards(ctx, doc.ID, standardIDs); err != nil {
			s.logger.Error("写入文档标准关联失败", zap.String("id", doc.ID), zap.Error(err))
			return nil, err
		}
	}

	s.appendHistory(ctx, doc.ID, model.ActionCreated, callerID, nil)
	return s.GetByID(ctx, doc.ID)
}

// ────────────────────── GetByID ──────────────────────

func (s *documentService) GetByID(ctx context.Context, id string) (*dto.DocumentResponse, error) {
	doc, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	standards, err := registry.ResolveStandardsOfDocument(ctx, s.repo.Store, id)
	if err != nil {
		s.logger.Error("解析文档标准失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	resp := documentConverter(s.opts.now(), s.opts.ExpiringWindowDays)(doc)
	resp.Standards = standardRefs(standards)
	return &resp, nil
}

func (s *documentService) get(ctx context.Context, id string) (*model.Document, error) {
	doc, err := s.repo.Document.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrDocumentNotFound
		}
		s.logger.Error("查询文档失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return doc, nil
}

// ────────────────────── List ──────────────────────

func (s *documentService) List(ctx context.Context, q *dto.ListQuery) (*dto.PageResult[dto.DocumentResponse], error) {
	conv := documentConverter(s.opts.now(), s.opts.ExpiringWindowDays)
	return loadPage(ctx, s.logger, "列出文档失败", registry.DocumentTable(s.opts.Paging), q, s.repo.Document.List, conv)
}

// ────────────────────── Update ──────────────────────

func (s *documentService) Update(ctx context.Context, id string, req *dto.UpdateDocumentRequest, callerID string) (*dto.DocumentResponse, error) {
	doc, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	code := cleanOptional(req.Code)
	title := cleanOptional(req.Title)
	version := cleanOptional(req.Version)
	if err := (validation.Errors{
		"code":        validation.Validate(code, validation.NilOrNotEmpty, validation.RuneLength(1, 50)),
		"title":       validation.Validate(title, validation.NilOrNotEmpty),
		"version":     validation.Validate(version, validation.NilOrNotEmpty),
		"issue_date":  validation.Validate(req.IssueDate, validation.NilOrNotEmpty, dateRule),
		"expiry_date": validation.Validate(req.ExpiryDate, dateRule),
		"status":      validation.Validate(req.Status, validation.NilOrNotEmpty, validation.In(statusValues()...)),
		"link":        validation.Validate(req.Link, is.URL),
	}).Filter(); err != nil {
		return nil, pkgerrors.NewValidationError(err)
	}

	if code != nil {
		if *code != doc.Code {
			existing, err := s.repo.Document.GetByCode(ctx, *code)
			if err != nil && !isNotFound(err) {
				return nil, err
			}
			if existing != nil {
				return nil, ErrDocumentCodeExists
			}
		}
		doc.Code = *code
	}
	if title != nil {
		doc.Title = *title
	}
	if version != nil {
		doc.Version = *version
	}
	if req.IssueDate != nil {
		doc.IssueDate = parseDate(*req.IssueDate)
	}
	if req.ClearExpiry {
		doc.ExpiryDate = nil
	} else if req.ExpiryDate != nil {
		doc.ExpiryDate = parseOptionalDate(req.ExpiryDate)
	}
	if req.Status != nil {
		doc.Status = model.Status(*req.Status)
	}
	if req.Note != nil {
		doc.Note = cleanText(req.Note)
	}
	if req.Link != nil {
		doc.Link = cleanText(req.Link)
	}
	if req.CategoryID != nil {
		doc.CategoryID = *req.CategoryID
	}
	if req.IssuingUserID != nil {
		doc.IssuingUserID = *req.IssuingUserID
	}
	if err := checkDocumentDates(doc); err != nil {
		return nil, err
	}

	if req.CategoryID != nil || req.IssuingUserID != nil {
		if err := s.checkReferences(ctx, doc.CategoryID, doc.IssuingUserID); err != nil {
			return nil, err
		}
	}
	var standardIDs []string
	if req.StandardIDs != nil {
		if standardIDs, err = s.checkStandards(ctx, *req.StandardIDs); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Document.Update(ctx, doc); err != nil {
		if isNotFound(err) {
			return nil, ErrDocumentNotFound
		}
		return nil, s.writeError("更新文档失败", err)
	}
	if req.StandardIDs != nil {
		if err := s.repo.Document.ReplaceStandards(ctx, id, standardIDs); err != nil {
			s.logger.Error("替换文档标准关联失败", zap.String("id", id), zap.Error(err))
			return nil, err
		}
	}

	s.appendHistory(ctx, id, model.ActionUpdated, callerID, nil)
	return s.GetByID(ctx, id)
}

// ────────────────────── Delete ──────────────────────

// Delete 硬删除；标准关联与历史随文档级联删除
func (s *documentService) Delete(ctx context.Context, id string) error {
	if _, err := s.get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Document.Delete(ctx, id); err != nil {
		s.logger.Warn("删除文档失败", zap.String("id", id), zap.Error(err))
		return deleteError(err, ErrDocumentNotFound)
	}
	return nil
}

// ────────────────────── Approve / Cancel ──────────────────────

func (s *documentService) Approve(ctx context.Context, id string, req *dto.TransitionRequest, callerID string) (*dto.DocumentResponse, error) {
	return s.transition(ctx, id, req, callerID, model.ActionApproved, model.StatusActive, func(from model.Status) bool {
		return from == model.StatusPendingReview
	})
}

func (s *documentService) Cancel(ctx context.Context, id string, req *dto.TransitionRequest, callerID string) (*dto.DocumentResponse, error) {
	return s.transition(ctx, id, req, callerID, model.ActionCancelled, model.StatusExpired, func(from model.Status) bool {
		return from != model.StatusExpired
	})
}

func (s *documentService) transition(
	ctx context.Context,
	id string,
	req *dto.TransitionRequest,
	callerID string,
	action model.HistoryAction,
	to model.Status,
	allowed func(model.Status) bool,
) (*dto.DocumentResponse, error) {
	doc, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !allowed(doc.Status) {
		return nil, ErrInvalidTransition
	}

	if err := s.repo.Document.UpdateStatus(ctx, id, to); err != nil {
		if isNotFound(err) {
			return nil, ErrDocumentNotFound
		}
		s.logger.Error("更新文档状态失败", zap.String("id", id), zap.String("to", string(to)), zap.Error(err))
		return nil, err
	}

	var note *string
	if req != nil {
		note = cleanText(req.Note)
	}
	s.appendHistory(ctx, id, action, callerID, note)
	s.logger.Info("文档状态变更",
		zap.String("id", id),
		zap.String("from", string(doc.Status)),
		zap.String("to", string(to)),
		zap.String("actor", callerID),
	)
	return s.GetByID(ctx, id)
}

// ────────────────────── History ──────────────────────

func (s *documentService) History(ctx context.Context, id string, q *dto.ListQuery) (*dto.PageResult[dto.HistoryResponse], error) {
	if _, err := s.get(ctx, id); err != nil {
		return nil, err
	}
	list, err := s.repo.History.ListByDocument(ctx, id)
	if err != nil {
		s.logger.Error("查询文档历史失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return runPage(registry.HistoryTable(s.opts.Paging), list, q, toHistoryResponse)
}

// ── 辅助函数 ──

// appendHistory 追加历史记录；写入失败只记录日志，不影响已完成的变更
func (s *documentService) appendHistory(ctx context.Context, documentID string, action model.HistoryAction, actorID string, note *string) {
	entry := &model.HistoryEntry{
		DocumentID: documentID,
		Action:     action,
		ActorID:    actorID,
		Note:       note,
	}
	if err := s.repo.History.Append(ctx, entry); err != nil {
		s.logger.Error("追加文档历史失败",
			zap.String("document_id", documentID),
			zap.String("action", string(action)),
			zap.Error(err),
		)
	}
}

func checkDocumentDates(doc *model.Document) error {
	if doc.ExpiryDate != nil && doc.ExpiryDate.Before(doc.IssueDate) {
		return fieldError("expiry_date", "到期日不能早于签发日")
	}
	return nil
}

// checkReferences 检查类别与签发人存在
func (s *documentService) checkReferences(ctx context.Context, categoryID, issuerID string) error {
	if _, err := s.repo.Category.GetByID(ctx, categoryID); err != nil {
		if isNotFound(err) {
			return fieldError("category_id", "类别不存在")
		}
		return err
	}
	if _, err := s.repo.User.GetByID(ctx, issuerID); err != nil {
		if isNotFound(err) {
			return fieldError("issuing_user_id", "签发人不存在")
		}
		return err
	}
	return nil
}

// checkStandards 去重并确认全部标准存在
func (s *documentService) checkStandards(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	unique := slices.Clone(ids)
	slices.Sort(unique)
	unique = slices.Compact(unique)

	found, err := s.repo.Standard.ListByIDs(ctx, unique)
	if err != nil {
		s.logger.Error("查询标准失败", zap.Error(err))
		return nil, err
	}
	if len(found) != len(unique) {
		return nil, fieldError("standard_ids", "包含不存在的标准")
	}
	return unique, nil
}

// writeError 归一写入失败：唯一冲突与外键缺失
func (s *documentService) writeError(msg string, err error) error {
	switch {
	case errors.Is(err, store.ErrDuplicate):
		return ErrDocumentCodeExists
	case errors.Is(err, store.ErrReferenced):
		return fieldError("category_id", "类别或签发人不存在")
	}
	s.logger.Error(msg, zap.Error(err))
	return err
}

// documentLookup 对同一份解析结果分别计算侧边栏统计与当前页
func documentLookup(owner dto.Ref, docs []model.Document, cfg registry.TableConfig[model.Document], q *dto.ListQuery, opts Options) (*dto.DocumentLookupResponse, error) {
	now := opts.now()
	conv := documentConverter(now, opts.ExpiringWindowDays)

	page, err := runPage(cfg, docs, q, conv)
	if err != nil {
		return nil, err
	}
	return &dto.DocumentLookupResponse{
		Owner:      owner,
		Stats:      registry.AggregateDocuments(docs, now, opts.ExpiringWindowDays),
		Expiring:   convertAll(registry.ExpiringDocuments(docs, now, opts.ExpiringWindowDays), conv),
		List:       page.List,
		Pagination: page.PageMeta,
	}, nil
}

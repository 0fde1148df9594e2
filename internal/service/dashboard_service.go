package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/dohuuduy/quanlytailieu-sub000/internal/dto"
	"github.com/dohuuduy/quanlytailieu-sub000/internal/model"
	"github.com/dohuuduy/quanlytailieu-sub000/internal/registry"
	"github.com/dohuuduy/quanlytailieu-sub000/internal/repository"
)

// DashboardService 首页统计业务接口
type DashboardService interface {
	Stats(ctx context.Context) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	repo   *repository.Repository
	opts   Options
	logger *zap.Logger
}

// NewDashboardService 创建 DashboardService 实例
func NewDashboardService(repo *repository.Repository, opts Options, logger *zap.Logger) DashboardService {
	return &dashboardService{repo: repo, opts: opts, logger: logger}
}

// Stats 全部文档与评审计划的派生统计，每次请求实时计算
func (s *dashboardService) Stats(ctx context.Context) (*dto.DashboardResponse, error) {
	docs, err := s.repo.Document.List(ctx)
	if err != nil {
		s.logger.Error("列出文档失败", zap.Error(err))
		return nil, err
	}
	entries, err := s.repo.Schedule.List(ctx)
	if err != nil {
		s.logger.Error("列出评审计划失败", zap.Error(err))
		return nil, err
	}

	counts := make(map[string]int64, 3)
	for _, table := range []string{model.TableCategories, model.TableStandards, model.TableUsers} {
		n, err := s.repo.Store.Count(ctx, table)
		if err != nil {
			s.logger.Error("统计记录数失败", zap.String("table", table), zap.Error(err))
			return nil, err
		}
		counts[table] = n
	}

	now := s.opts.now()
	window := s.opts.ExpiringWindowDays
	conv := documentConverter(now, window)

	return &dto.DashboardResponse{
		Documents:     registry.AggregateDocuments(docs, now, window),
		NewDocuments:  registry.NewSince(docs, now, s.opts.NewWindowDays),
		Expiring:      convertAll(registry.ExpiringDocuments(docs, now, window), conv),
		Schedules:     registry.AggregateSchedules(entries, now, window),
		CategoryCount: int(counts[model.TableCategories]),
		StandardCount: int(counts[model.TableStandards]),
		UserCount:     int(counts[model.TableUsers]),
		GeneratedAt:   formatTimestamp(now),
	}, nil
}

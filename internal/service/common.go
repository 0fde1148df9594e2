package service

import (
	"context"
	"errors"
	"html"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/dohuuduy/quanlytailieu-sub000/config"
	"github.com/dohuuduy/quanlytailieu-sub000/internal/dto"
	"github.com/dohuuduy/quanlytailieu-sub000/internal/model"
	"github.com/dohuuduy/quanlytailieu-sub000/internal/registry"
	"github.com/dohuuduy/quanlytailieu-sub000/internal/store"
	pkgerrors "github.com/dohuuduy/quanlytailieu-sub000/pkg/errors"
)

// Options 统计窗口、分页与时钟设置
type Options struct {
	Paging             registry.Paging
	ExpiringWindowDays int
	NewWindowDays      int
	Location           *time.Location
	Now                func() time.Time
}

// DefaultOptions 默认设置（30 天窗口，UTC）
func DefaultOptions() Options {
	return Options{
		Paging:             registry.DefaultPaging,
		ExpiringWindowDays: registry.DefaultExpiringWindowDays,
		NewWindowDays:      30,
		Location:           time.UTC,
	}
}

// OptionsFromConfig 从配置构建 Options
func OptionsFromConfig(cfg *config.RegistryConfig) Options {
	return Options{
		Paging:             registry.Paging{Sizes: cfg.PageSizes, Default: cfg.DefaultPageSize},
		ExpiringWindowDays: cfg.ExpiringWindowDays,
		NewWindowDays:      cfg.NewWindowDays,
		Location:           cfg.Location(),
	}
}

// now 当前时间，落在统计时区
func (o Options) now() time.Time {
	now := time.Now
	if o.Now != nil {
		now = o.Now
	}
	loc := o.Location
	if loc == nil {
		loc = time.UTC
	}
	return now().In(loc)
}

// ── 列表流水线 ──

func listControls[T any](cfg registry.TableConfig[T], q *dto.ListQuery) registry.Controls {
	ctl := cfg.DefaultControls()
	if q == nil {
		return ctl
	}
	ctl = ctl.WithSearch(q.Q).WithStatus(q.Status)
	if q.Sort != "" {
		ctl.SortField = q.Sort
	}
	if q.Order != "" {
		ctl.Direction = registry.Direction(q.Order)
	}
	if q.PageSize > 0 {
		ctl.PageSize = q.PageSize
	}
	if q.Page > 0 {
		ctl.Page = q.Page
	}
	return ctl
}

// loadPage 走一次视图加载周期：拉取完整列表（Loading），就绪后按查询参数计算当前页。
// 拉取失败时视图进入 Error，错误原样返回
func loadPage[M any, D any](
	ctx context.Context,
	logger *zap.Logger,
	failMsg string,
	cfg registry.TableConfig[M],
	q *dto.ListQuery,
	fetch func(context.Context) ([]M, error),
	conv func(*M) D,
) (*dto.PageResult[D], error) {
	v := registry.Load(ctx, registry.NewView[M](listControls(cfg, q)), fetch)
	if v.Phase == registry.PhaseError {
		logger.Error(failMsg, zap.Error(v.Err))
		return nil, v.Err
	}
	page, err := v.Page(cfg)
	if err != nil {
		return nil, err
	}
	return toPageResult(page, conv), nil
}

// runPage 对已取得的完整列表执行筛选/排序/分页，并把当前页转换为响应 DTO
func runPage[M any, D any](cfg registry.TableConfig[M], rows []M, q *dto.ListQuery, conv func(*M) D) (*dto.PageResult[D], error) {
	page, err := cfg.Run(rows, listControls(cfg, q))
	if err != nil {
		return nil, err
	}
	return toPageResult(page, conv), nil
}

func toPageResult[M any, D any](page registry.Page[M], conv func(*M) D) *dto.PageResult[D] {
	return &dto.PageResult[D]{
		List: convertAll(page.Rows, conv),
		PageMeta: dto.PageMeta{
			Page:       page.Page,
			PageSize:   page.PageSize,
			Total:      page.Total,
			TotalPages: page.TotalPages,
		},
	}
}

func convertAll[M any, D any](rows []M, conv func(*M) D) []D {
	out := make([]D, len(rows))
	for i := range rows {
		out[i] = conv(&rows[i])
	}
	return out
}

// ── 文本清洗 ──

var textPolicy = bluemonday.StrictPolicy()

// cleanText 去除标记并裁剪空白；结果为空时返回 nil
func cleanText(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(*s)))
	if v == "" {
		return nil
	}
	return &v
}

func cleanString(s string) string {
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(s)))
}

// cleanOptional 清洗局部更新中的必填文本字段；nil 表示未提交，清洗后为空时保留为 "" 交由校验拒绝
func cleanOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := cleanString(*s)
	return &v
}

// ── 校验 ──

func statusValues() []interface{} {
	out := make([]interface{}, len(model.Statuses))
	for i, s := range model.Statuses {
		out[i] = string(s)
	}
	return out
}

func scheduleStatusValues() []interface{} {
	out := make([]interface{}, len(model.ScheduleStatuses))
	for i, s := range model.ScheduleStatuses {
		out[i] = string(s)
	}
	return out
}

func roleValues() []interface{} {
	out := make([]interface{}, len(model.Roles))
	for i, r := range model.Roles {
		out[i] = string(r)
	}
	return out
}

var dateRule = validation.Date(dto.DateLayout).Error("日期格式应为 YYYY-MM-DD")

// fieldError 构造单字段校验错误
func fieldError(field, msg string) error {
	return pkgerrors.NewValidationError(validation.Errors{field: errors.New(msg)})
}

// parseDate 解析已通过 dateRule 校验的日期
func parseDate(s string) time.Time {
	t, _ := time.Parse(dto.DateLayout, s)
	return t
}

func parseOptionalDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t := parseDate(*s)
	return &t
}

// ── 格式化 ──

func formatDate(t time.Time) string {
	return t.Format(dto.DateLayout)
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dto.DateLayout)
}

func formatTimestamp(t time.Time) string {
	return t.Format(dto.TimestampLayout)
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// isNotFound 存储层的"记录不存在"
func isNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}

// deleteError 归一删除失败：外键拒绝映射为 ErrDeleteRejected
func deleteError(err error, notFound error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return notFound
	case errors.Is(err, store.ErrReferenced):
		return ErrDeleteRejected
	default:
		return err
	}
}

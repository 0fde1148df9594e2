package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/dohuuduy/quanlytailieu-sub000/internal/dto"
	"github.com/dohuuduy/quanlytailieu-sub000/internal/model"
	"github.com/dohuuduy/quanlytailieu-sub000/internal/registry"
	"github.com/dohuuduy/quanlytailieu-sub000/internal/repository"
)

// 导出文件中的工作表名称
const (
	sheetDocuments = "Hồ sơ"
	sheetStats     = "Thống kê"
)

// ExportService 导出业务接口
//
//   - 文档表导出为 Excel：与列表相同的筛选和排序，不分页；附统计工作表
//   - 评审计划导出为 iCalendar，每条计划一个全天事件
//
// 导出以 bytes.Buffer 返回，由 Handler 层设置响应头后写入。
type ExportService interface {
	ExportDocuments(ctx context.Context, q *dto.ListQuery) (*bytes.Buffer, string, error)
	ExportSchedules(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	opts   Options
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, opts Options, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, opts: opts, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportDocuments 文档表导出为 Excel
// ═══════════════════════════════════════════════════════════

var documentHeaders = []string{
	"Mã", "Tên tài liệu", "Phiên bản", "Loại", "Người ban hành",
	"Ngày ban hành", "Ngày hết hạn", "Trạng thái", "Sắp hết hạn",
}

func (s *exportService) ExportDocuments(ctx context.Context, q *dto.ListQuery) (*bytes.Buffer, string, error) {
	docs, err := s.repo.Document.List(ctx)
	if err != nil {
		s.logger.Error("列出文档失败", zap.Error(err))
		return nil, "", err
	}

	cfg := registry.DocumentTable(s.opts.Paging)
	ctl := listControls(cfg, q)
	rows := cfg.Filter(docs, ctl.Search, ctl.Status)
	if err := cfg.Sort(rows, ctl.SortField, ctl.Direction); err != nil {
		return nil, "", err
	}

	now := s.opts.now()
	window := s.opts.ExpiringWindowDays

	f := excelize.NewFile()
	defer f.Close()

	idx, _ := f.NewSheet(sheetDocuments)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	for i, h := range documentHeaders {
		f.SetCellValue(sheetDocuments, cell(colName(i), 1), h)
	}
	f.SetCellStyle(sheetDocuments, "A1", cell(colName(len(documentHeaders)-1), 1), headerStyle)
	f.SetColWidth(sheetDocuments, "A", "A", 14)
	f.SetColWidth(sheetDocuments, "B", "B", 40)
	f.SetColWidth(sheetDocuments, "D", "E", 22)
	f.SetColWidth(sheetDocuments, "F", "I", 14)

	for i := range rows {
		d := &rows[i]
		row := i + 2
		expiring := ""
		if registry.IsExpiringSoon(d, now, window) {
			expiring = "✓"
		}
		values := []interface{}{
			d.Code, d.Title, d.Version, d.CategoryName(), d.IssuerName(),
			formatDate(d.IssueDate), formatOptionalDate(d.ExpiryDate), string(d.Status), expiring,
		}
		for col, v := range values {
			f.SetCellValue(sheetDocuments, cell(colName(col), row), v)
		}
	}

	// 统计基于全部文档，与列表筛选无关
	if err := writeStatsSheet(f, registry.AggregateDocuments(docs, now, window), now); err != nil {
		s.logger.Error("写入统计工作表失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("ho-so_%s.xlsx", now.Format("20060102"))
	return buf, filename, nil
}

func writeStatsSheet(f *excelize.File, stats registry.DocumentStats, now time.Time) error {
	if _, err := f.NewSheet(sheetStats); err != nil {
		return err
	}
	rows := [][]interface{}{
		{"Ngày thống kê", formatDate(now)},
		{"Tổng số", stats.Total},
		{string(model.StatusActive), stats.Active},
		{string(model.StatusPendingReview), stats.PendingReview},
		{string(model.StatusExpired), stats.Expired},
		{"other", stats.Other},
		{"expiring_soon", stats.ExpiringSoon},
	}
	for i, r := range rows {
		if err := f.SetSheetRow(sheetStats, cell("A", i+1), &r); err != nil {
			return err
		}
	}
	return f.SetColWidth(sheetStats, "A", "A", 20)
}

// ═══════════════════════════════════════════════════════════
// ExportSchedules 评审计划导出为 iCalendar
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportSchedules(ctx context.Context) (*bytes.Buffer, string, error) {
	entries, err := s.repo.Schedule.List(ctx)
	if err != nil {
		s.logger.Error("列出评审计划失败", zap.Error(err))
		return nil, "", err
	}

	now := s.opts.now()
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//quanlytailieu//registry//VI")
	cal.SetName("Lịch đánh giá")

	for i := range entries {
		e := &entries[i]
		evt := cal.AddEvent(e.ID + "@registry")
		evt.SetDtStampTime(now)
		evt.SetModifiedAt(e.UpdatedAt)

		start, end := scheduleSpan(e)
		evt.SetAllDayStartAt(start)
		// DTEND 不含当天
		evt.SetAllDayEndAt(end.AddDate(0, 0, 1))

		summary := "Đánh giá"
		if name := e.StandardName(); name != "" {
			summary += " " + name
		}
		evt.SetSummary(summary)
		if e.Organization != nil {
			evt.SetLocation(*e.Organization)
		}
		evt.SetDescription(scheduleDescription(e))
		evt.SetStatus(scheduleEventStatus(e.Status))
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("lich-danh-gia_%s.ics", now.Format("20060102"))
	return buf, filename, nil
}

// scheduleSpan 已开始的计划使用实际日期，否则使用计划日期
func scheduleSpan(e *model.ScheduleEntry) (time.Time, time.Time) {
	start := e.PlannedDate
	if e.ActualStart != nil {
		start = *e.ActualStart
	}
	end := start
	if e.ActualEnd != nil && !e.ActualEnd.Before(start) {
		end = *e.ActualEnd
	}
	return start, end
}

func scheduleDescription(e *model.ScheduleEntry) string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "Trạng thái: %s", e.Status)
	if e.Auditor != nil {
		fmt.Fprintf(&b, "\nĐánh giá viên: %s", *e.Auditor)
	}
	if e.Note != nil {
		fmt.Fprintf(&b, "\n%s", *e.Note)
	}
	return b.String()
}

func scheduleEventStatus(s model.ScheduleStatus) ics.ObjectStatus {
	switch s {
	case model.ScheduleCancelled:
		return ics.ObjectStatusCancelled
	case model.SchedulePlanned:
		return ics.ObjectStatusTentative
	default:
		return ics.ObjectStatusConfirmed
	}
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

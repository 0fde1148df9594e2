package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dohuuduy/quanlytailieu-sub000/internal/model"
)

func TestDashboardService_Stats(t *testing.T) {
	f := newFixture()
	soon := day(2024, time.June, 15)
	later := day(2024, time.December, 31)
	f.documents.add(model.Document{ID: "d1", Code: "QT-01", Status: model.StatusActive, ExpiryDate: &soon, IssueDate: day(2024, time.May, 29)})
	f.documents.add(model.Document{ID: "d2", Code: "QT-02", Status: model.StatusActive, ExpiryDate: &later, IssueDate: day(2024, time.March, 1)})
	f.documents.add(model.Document{ID: "d3", Code: "QT-03", Status: model.StatusPendingReview, IssueDate: day(2024, time.May, 22)})
	f.documents.add(model.Document{ID: "d4", Code: "QT-04", Status: model.StatusExpired, ExpiryDate: &soon})
	f.schedules.items["s1"] = &model.ScheduleEntry{ID: "s1", PlannedDate: day(2024, time.June, 20), Status: model.SchedulePlanned}
	f.schedules.items["s2"] = &model.ScheduleEntry{ID: "s2", PlannedDate: day(2024, time.March, 1), Status: model.ScheduleCompleted}
	f.store.counts[model.TableCategories] = 4
	f.store.counts[model.TableStandards] = 2
	f.store.counts[model.TableUsers] = 7

	resp, err := f.svc.Dashboard.Stats(context.Background())
	if err != nil {
		t.Fatalf("统计失败: %v", err)
	}
	d := resp.Documents
	if d.Total != 4 || d.Active != 2 || d.PendingReview != 1 || d.Expired != 1 || d.ExpiringSoon != 1 {
		t.Errorf("文档统计不符: %+v", d)
	}
	if resp.NewDocuments != 2 {
		t.Errorf("30 天内新增应为 2, got %d", resp.NewDocuments)
	}
	if len(resp.Expiring) != 1 || resp.Expiring[0].ID != "d1" {
		t.Errorf("即将到期列表不符: %+v", resp.Expiring)
	}
	if resp.Schedules.Total != 2 || resp.Schedules.Planned != 1 || resp.Schedules.Completed != 1 {
		t.Errorf("评审计划统计不符: %+v", resp.Schedules)
	}
	if resp.CategoryCount != 4 || resp.StandardCount != 2 || resp.UserCount != 7 {
		t.Errorf("记录数不符: %d/%d/%d", resp.CategoryCount, resp.StandardCount, resp.UserCount)
	}
	if resp.GeneratedAt != "2024-06-01T09:00:00Z" {
		t.Errorf("GeneratedAt 不符: %s", resp.GeneratedAt)
	}
}

func TestDashboardService_Stats_StoreError(t *testing.T) {
	f := newFixture()
	f.store.err = errors.New("连接中断")

	if _, err := f.svc.Dashboard.Stats(context.Background()); err == nil {
		t.Error("计数失败时应返回错误")
	}
}

package registry

import (
	"slices"
	"time"

	"github.com/dohuuduy/quanlytailieu-sub000/internal/model"
)

// DefaultExpiringWindowDays "即将到期"窗口（天，含两端）
const DefaultExpiringWindowDays = 30

// DocumentStats 文档派生统计（侧边栏卡片）
//
// Total 恒等于各状态计数之和；不在枚举内的状态计入 Other。
type DocumentStats struct {
	Total         int `json:"total"`
	Active        int `json:"active"`
	PendingReview int `json:"pending_review"`
	Expired       int `json:"expired"`
	Other         int `json:"other"`
	ExpiringSoon  int `json:"expiring_soon"`
}

// Count 返回指定状态的计数
func (s DocumentStats) Count(status model.Status) int {
	switch status {
	case model.StatusActive:
		return s.Active
	case model.StatusPendingReview:
		return s.PendingReview
	case model.StatusExpired:
		return s.Expired
	default:
		return s.Other
	}
}

// AggregateDocuments 计算文档列表的状态分布与即将到期数量
func AggregateDocuments(docs []model.Document, now time.Time, windowDays int) DocumentStats {
	today := dayOf(now)
	var s DocumentStats
	for i := range docs {
		d := &docs[i]
		s.Total++
		switch d.Status {
		case model.StatusActive:
			s.Active++
		case model.StatusPendingReview:
			s.PendingReview++
		case model.StatusExpired:
			s.Expired++
		default:
			s.Other++
		}
		if isExpiringSoon(d, today, windowDays) {
			s.ExpiringSoon++
		}
	}
	return s
}

// IsExpiringSoon 生效中且到期日落在 [今天, 今天+windowDays] 内
func IsExpiringSoon(d *model.Document, now time.Time, windowDays int) bool {
	return isExpiringSoon(d, dayOf(now), windowDays)
}

func isExpiringSoon(d *model.Document, today time.Time, windowDays int) bool {
	if d.Status != model.StatusActive || d.ExpiryDate == nil {
		return false
	}
	return inWindow(dayOf(*d.ExpiryDate), today, today.AddDate(0, 0, windowDays))
}

// ExpiringDocuments 返回即将到期的文档，按到期日升序（稳定）
func ExpiringDocuments(docs []model.Document, now time.Time, windowDays int) []model.Document {
	today := dayOf(now)
	out := make([]model.Document, 0)
	for i := range docs {
		if isExpiringSoon(&docs[i], today, windowDays) {
			out = append(out, docs[i])
		}
	}
	slices.SortStableFunc(out, func(a, b model.Document) int {
		return dayOf(*a.ExpiryDate).Compare(dayOf(*b.ExpiryDate))
	})
	return out
}

// NewSince 统计签发日落在最近 days 天（含今天）内的文档数
// 窗口为 [today-(days-1), today]，共 days 个自然日；days <= 0 时恒为 0
func NewSince(docs []model.Document, now time.Time, days int) int {
	today := dayOf(now)
	from := today.AddDate(0, 0, -(days - 1))
	n := 0
	for i := range docs {
		if inWindow(dayOf(docs[i].IssueDate), from, today) {
			n++
		}
	}
	return n
}

// ScheduleStats 评审计划派生统计
type ScheduleStats struct {
	Total      int `json:"total"`
	Planned    int `json:"planned"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
	Cancelled  int `json:"cancelled"`
	Other      int `json:"other"`
	Upcoming   int `json:"upcoming"`
}

// AggregateSchedules 计算评审计划的状态分布与窗口内待执行数量
func AggregateSchedules(entries []model.ScheduleEntry, now time.Time, windowDays int) ScheduleStats {
	today := dayOf(now)
	until := today.AddDate(0, 0, windowDays)
	var s ScheduleStats
	for i := range entries {
		e := &entries[i]
		s.Total++
		switch e.Status {
		case model.SchedulePlanned:
			s.Planned++
			if inWindow(dayOf(e.PlannedDate), today, until) {
				s.Upcoming++
			}
		case model.ScheduleInProgress:
			s.InProgress++
		case model.ScheduleCompleted:
			s.Completed++
		case model.ScheduleCancelled:
			s.Cancelled++
		default:
			s.Other++
		}
	}
	return s
}

// dayOf 取 t 在其自身时区下的日历日期，忽略时分秒。
// 日期列没有时区语义，统一落到 UTC 零点再比较。
func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func inWindow(day, from, to time.Time) bool {
	return !day.Before(from) && !day.After(to)
}

package service

import (
	"time"

	"github.com/dohuuduy/quanlytailieu-sub000/internal/dto"
	"github.com/dohuuduy/quanlytailieu-sub000/internal/model"
	"github.com/dohuuduy/quanlytailieu-sub000/internal/registry"
)

func toCategoryResponse(c *model.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Status:      string(c.Status),
		CreatedAt:   formatTimestamp(c.CreatedAt),
		UpdatedAt:   formatTimestamp(c.UpdatedAt),
	}
}

func toStandardResponse(s *model.Standard) dto.StandardResponse {
	return dto.StandardResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Status:      string(s.Status),
		CreatedAt:   formatTimestamp(s.CreatedAt),
		UpdatedAt:   formatTimestamp(s.UpdatedAt),
	}
}

func toUserResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: formatTimestamp(u.CreatedAt),
	}
}

// documentConverter 绑定统计时刻，保证同一响应内 expiring_soon 口径一致
func documentConverter(now time.Time, windowDays int) func(*model.Document) dto.DocumentResponse {
	return func(d *model.Document) dto.DocumentResponse {
		resp := dto.DocumentResponse{
			ID:           d.ID,
			Code:         d.Code,
			Title:        d.Title,
			Version:      d.Version,
			IssueDate:    formatDate(d.IssueDate),
			ExpiryDate:   formatOptionalDate(d.ExpiryDate),
			Status:       string(d.Status),
			ExpiringSoon: registry.IsExpiringSoon(d, now, windowDays),
			Note:         derefString(d.Note),
			Link:         derefString(d.Link),
			CreatedAt:    formatTimestamp(d.CreatedAt),
			UpdatedAt:    formatTimestamp(d.UpdatedAt),
		}
		if d.Category != nil {
			resp.Category = &dto.Ref{ID: d.Category.ID, Name: d.Category.Name}
		}
		if d.IssuingUser != nil {
			resp.IssuingUser = &dto.Ref{ID: d.IssuingUser.ID, Name: d.IssuingUser.FullName}
		}
		return resp
	}
}

func toScheduleResponse(e *model.ScheduleEntry) dto.ScheduleResponse {
	resp := dto.ScheduleResponse{
		ID:           e.ID,
		StandardID:   e.StandardID,
		PlannedDate:  formatDate(e.PlannedDate),
		ActualStart:  formatOptionalDate(e.ActualStart),
		ActualEnd:    formatOptionalDate(e.ActualEnd),
		Auditor:      derefString(e.Auditor),
		Organization: derefString(e.Organization),
		Status:       string(e.Status),
		Note:         derefString(e.Note),
		CreatedAt:    formatTimestamp(e.CreatedAt),
		UpdatedAt:    formatTimestamp(e.UpdatedAt),
	}
	if e.Standard != nil {
		resp.Standard = &dto.Ref{ID: e.Standard.ID, Name: e.Standard.Name}
	}
	return resp
}

func toHistoryResponse(h *model.HistoryEntry) dto.HistoryResponse {
	resp := dto.HistoryResponse{
		ID:        h.ID,
		Action:    string(h.Action),
		Note:      derefString(h.Note),
		CreatedAt: formatTimestamp(h.CreatedAt),
	}
	if h.Actor != nil {
		resp.Actor = &dto.Ref{ID: h.Actor.ID, Name: h.Actor.FullName}
	}
	return resp
}

func standardRefs(list []model.Standard) []dto.Ref {
	out := make([]dto.Ref, len(list))
	for i := range list {
		out[i] = dto.Ref{ID: list[i].ID, Name: list[i].Name}
	}
	return out
}

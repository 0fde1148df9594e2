package registry

import (
	"time"

	"github.com/dohuuduy/quanlytailieu-sub000/internal/model"
)

// Paging 每页数量设置（来自配置）
type Paging struct {
	Sizes   []int
	Default int
}

// DefaultPaging 默认每页数量设置
var DefaultPaging = Paging{Sizes: DefaultPageSizes, Default: DefaultPageSize}

// CategoryTable 类别列表
func CategoryTable(p Paging) TableConfig[model.Category] {
	return TableConfig[model.Category]{
		Name: model.TableCategories,
		Search: []func(*model.Category) string{
			func(c *model.Category) string { return c.Name },
			func(c *model.Category) string { return deref(c.Description) },
		},
		Status: func(c *model.Category) string { return string(c.Status) },
		Fields: []Field[model.Category]{
			StringField("name", func(c *model.Category) string { return c.Name }),
			OptionalStringField("description", func(c *model.Category) *string { return c.Description }),
			StringField("status", func(c *model.Category) string { return string(c.Status) }),
			TimeField("created_at", func(c *model.Category) time.Time { return c.CreatedAt }),
		},
		DefaultSort:     "name",
		PageSizes:       p.Sizes,
		DefaultPageSize: p.Default,
	}
}

// StandardTable 标准列表
func StandardTable(p Paging) TableConfig[model.Standard] {
	return TableConfig[model.Standard]{
		Name: model.TableStandards,
		Search: []func(*model.Standard) string{
			func(s *model.Standard) string { return s.Name },
			func(s *model.Standard) string { return deref(s.Description) },
		},
		Status: func(s *model.Standard) string { return string(s.Status) },
		Fields: []Field[model.Standard]{
			StringField("name", func(s *model.Standard) string { return s.Name }),
			OptionalStringField("description", func(s *model.Standard) *string { return s.Description }),
			StringField("status", func(s *model.Standard) string { return string(s.Status) }),
			TimeField("created_at", func(s *model.Standard) time.Time { return s.CreatedAt }),
		},
		DefaultSort:     "name",
		PageSizes:       p.Sizes,
		DefaultPageSize: p.Default,
	}
}

// UserTable 用户列表；状态筛选对应角色
func UserTable(p Paging) TableConfig[model.User] {
	return TableConfig[model.User]{
		Name: model.TableUsers,
		Search: []func(*model.User) string{
			func(u *model.User) string { return u.FullName },
			func(u *model.User) string { return u.Email },
		},
		Status: func(u *model.User) string { return string(u.Role) },
		Fields: []Field[model.User]{
			StringField("full_name", func(u *model.User) string { return u.FullName }),
			StringField("email", func(u *model.User) string { return u.Email }),
			StringField("role", func(u *model.User) string { return string(u.Role) }),
			TimeField("created_at", func(u *model.User) time.Time { return u.CreatedAt }),
		},
		DefaultSort:     "full_name",
		PageSizes:       p.Sizes,
		DefaultPageSize: p.Default,
	}
}

// DocumentTable 文档列表；category / issuing_user 按关联显示名排序
func DocumentTable(p Paging) TableConfig[model.Document] {
	return TableConfig[model.Document]{
		Name: model.TableDocuments,
		Search: []func(*model.Document) string{
			func(d *model.Document) string { return d.Code },
			func(d *model.Document) string { return d.Title },
			(*model.Document).CategoryName,
			(*model.Document).IssuerName,
		},
		Status:          func(d *model.Document) string { return string(d.Status) },
		Fields:          documentFields(),
		DefaultSort:     "code",
		PageSizes:       p.Sizes,
		DefaultPageSize: p.Default,
	}
}

// StandardDocumentTable 按标准查询的文档列表，只按编号和标题搜索
func StandardDocumentTable(p Paging) TableConfig[model.Document] {
	return TableConfig[model.Document]{
		Name: "standard_documents",
		Search: []func(*model.Document) string{
			func(d *model.Document) string { return d.Code },
			func(d *model.Document) string { return d.Title },
		},
		Status:          func(d *model.Document) string { return string(d.Status) },
		Fields:          documentFields(),
		DefaultSort:     "code",
		PageSizes:       p.Sizes,
		DefaultPageSize: p.Default,
	}
}

func documentFields() []Field[model.Document] {
	return []Field[model.Document]{
		StringField("code", func(d *model.Document) string { return d.Code }),
		StringField("title", func(d *model.Document) string { return d.Title }),
		StringField("version", func(d *model.Document) string { return d.Version }),
		TimeField("issue_date", func(d *model.Document) time.Time { return d.IssueDate }),
		OptionalTimeField("expiry_date", func(d *model.Document) *time.Time { return d.ExpiryDate }),
		StringField("status", func(d *model.Document) string { return string(d.Status) }),
		StringField("category", (*model.Document).CategoryName),
		StringField("issuing_user", (*model.Document).IssuerName),
		TimeField("created_at", func(d *model.Document) time.Time { return d.CreatedAt }),
	}
}

// ScheduleTable 评审计划列表
func ScheduleTable(p Paging) TableConfig[model.ScheduleEntry] {
	return TableConfig[model.ScheduleEntry]{
		Name: model.TableScheduleEntries,
		Search: []func(*model.ScheduleEntry) string{
			(*model.ScheduleEntry).StandardName,
			func(e *model.ScheduleEntry) string { return deref(e.Auditor) },
			func(e *model.ScheduleEntry) string { return deref(e.Organization) },
			func(e *model.ScheduleEntry) string { return deref(e.Note) },
		},
		Status: func(e *model.ScheduleEntry) string { return string(e.Status) },
		Fields: []Field[model.ScheduleEntry]{
			TimeField("planned_date", func(e *model.ScheduleEntry) time.Time { return e.PlannedDate }),
			OptionalTimeField("actual_start", func(e *model.ScheduleEntry) *time.Time { return e.ActualStart }),
			OptionalTimeField("actual_end", func(e *model.ScheduleEntry) *time.Time { return e.ActualEnd }),
			StringField("standard", (*model.ScheduleEntry).StandardName),
			OptionalStringField("auditor", func(e *model.ScheduleEntry) *string { return e.Auditor }),
			OptionalStringField("organization", func(e *model.ScheduleEntry) *string { return e.Organization }),
			StringField("status", func(e *model.ScheduleEntry) string { return string(e.Status) }),
		},
		DefaultSort:     "planned_date",
		PageSizes:       p.Sizes,
		DefaultPageSize: p.Default,
	}
}

// HistoryTable 文档历史列表，默认按时间排序
func HistoryTable(p Paging) TableConfig[model.HistoryEntry] {
	return TableConfig[model.HistoryEntry]{
		Name: model.TableDocumentHistory,
		Search: []func(*model.HistoryEntry) string{
			func(h *model.HistoryEntry) string { return string(h.Action) },
			func(h *model.HistoryEntry) string { return deref(h.Note) },
		},
		Status: func(h *model.HistoryEntry) string { return string(h.Action) },
		Fields: []Field[model.HistoryEntry]{
			TimeField("created_at", func(h *model.HistoryEntry) time.Time { return h.CreatedAt }),
			StringField("action", func(h *model.HistoryEntry) string { return string(h.Action) }),
		},
		DefaultSort:     "created_at",
		PageSizes:       p.Sizes,
		DefaultPageSize: p.Default,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

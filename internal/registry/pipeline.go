package registry

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

var (
	ErrUnknownSortField = errors.New("不支持的排序字段")
	ErrInvalidPageSize  = errors.New("不支持的每页数量")
	ErrInvalidPage      = errors.New("页码必须从 1 开始")
)

// DefaultPageSizes 可选的每页数量
var DefaultPageSizes = []int{5, 10, 20, 50}

// DefaultPageSize 默认每页数量
const DefaultPageSize = 10

// Direction 排序方向
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Field 可排序字段；cmp 按字段值比较两行
type Field[T any] struct {
	Name string
	cmp  func(a, b *T) int
}

// StringField 字符串字段，按码点比较（区分大小写，不做本地化）。
// 关联字段传入返回关联显示名的 get 即可。
func StringField[T any](name string, get func(*T) string) Field[T] {
	return Field[T]{Name: name, cmp: func(a, b *T) int { return strings.Compare(get(a), get(b)) }}
}

// OptionalStringField 可空字符串字段，nil 排在最前
func OptionalStringField[T any](name string, get func(*T) *string) Field[T] {
	return Field[T]{Name: name, cmp: func(a, b *T) int {
		return compareOptional(get(a), get(b), strings.Compare)
	}}
}

// TimeField 时间字段
func TimeField[T any](name string, get func(*T) time.Time) Field[T] {
	return Field[T]{Name: name, cmp: func(a, b *T) int { return get(a).Compare(get(b)) }}
}

// OptionalTimeField 可空时间字段，nil 排在最前
func OptionalTimeField[T any](name string, get func(*T) *time.Time) Field[T] {
	return Field[T]{Name: name, cmp: func(a, b *T) int {
		return compareOptional(get(a), get(b), time.Time.Compare)
	}}
}

// OrderedField 数值等有序字段
func OrderedField[T any, V cmp.Ordered](name string, get func(*T) V) Field[T] {
	return Field[T]{Name: name, cmp: func(a, b *T) int { return cmp.Compare(get(a), get(b)) }}
}

func compareOptional[V any](a, b *V, compare func(V, V) int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return compare(*a, *b)
	}
}

// TableConfig 单张表的流水线配置
type TableConfig[T any] struct {
	Name            string
	Search          []func(*T) string // 参与文本搜索的字段
	Status          func(*T) string   // nil 表示该表不支持状态筛选
	Fields          []Field[T]
	DefaultSort     string
	PageSizes       []int
	DefaultPageSize int
}

func (c TableConfig[T]) field(name string) (Field[T], bool) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field[T]{}, false
}

func (c TableConfig[T]) pageSizes() []int {
	if len(c.PageSizes) == 0 {
		return DefaultPageSizes
	}
	return c.PageSizes
}

// Controls 表格控件状态
type Controls struct {
	Search    string
	Status    string
	SortField string
	Direction Direction
	Page      int
	PageSize  int
}

// WithSearch 修改搜索词，回到第 1 页
func (c Controls) WithSearch(term string) Controls {
	c.Search = term
	c.Page = 1
	return c
}

// WithStatus 修改状态筛选，回到第 1 页
func (c Controls) WithStatus(status string) Controls {
	c.Status = status
	c.Page = 1
	return c
}

// ToggleSort 点击表头：同一字段切换方向，不同字段重置为升序；回到第 1 页
func (c Controls) ToggleSort(field string) Controls {
	if c.SortField == field {
		if c.Direction == Desc {
			c.Direction = Asc
		} else {
			c.Direction = Desc
		}
	} else {
		c.SortField = field
		c.Direction = Asc
	}
	c.Page = 1
	return c
}

// WithDirection 修改排序方向，回到第 1 页
func (c Controls) WithDirection(d Direction) Controls {
	c.Direction = d
	c.Page = 1
	return c
}

// WithPageSize 修改每页数量，回到第 1 页
func (c Controls) WithPageSize(size int) Controls {
	c.PageSize = size
	c.Page = 1
	return c
}

// WithPage 翻页，不做越界修正
func (c Controls) WithPage(page int) Controls {
	c.Page = page
	return c
}

// DefaultControls 返回表的初始控件状态
func (c TableConfig[T]) DefaultControls() Controls {
	size := c.DefaultPageSize
	if size == 0 {
		size = DefaultPageSize
	}
	return Controls{SortField: c.DefaultSort, Direction: Asc, Page: 1, PageSize: size}
}

// Page 流水线输出
type Page[T any] struct {
	Rows       []T `json:"list"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// Run 执行 筛选 → 排序 → 分页。输入切片不会被修改。
func (c TableConfig[T]) Run(rows []T, ctl Controls) (Page[T], error) {
	if ctl.Page < 1 {
		return Page[T]{}, ErrInvalidPage
	}
	if !slices.Contains(c.pageSizes(), ctl.PageSize) {
		return Page[T]{}, fmt.Errorf("%w: %d", ErrInvalidPageSize, ctl.PageSize)
	}

	filtered := c.Filter(rows, ctl.Search, ctl.Status)
	if err := c.Sort(filtered, ctl.SortField, ctl.Direction); err != nil {
		return Page[T]{}, err
	}

	return Page[T]{
		Rows:       Paginate(filtered, ctl.Page, ctl.PageSize),
		Page:       ctl.Page,
		PageSize:   ctl.PageSize,
		Total:      len(filtered),
		TotalPages: PageCount(len(filtered), ctl.PageSize),
	}, nil
}

// Filter 返回新切片：任一搜索字段包含搜索词（不区分大小写），且状态精确匹配（若指定）
// 搜索词按原样使用，首尾空白参与匹配
func (c TableConfig[T]) Filter(rows []T, search, status string) []T {
	term := strings.ToLower(search)
	out := make([]T, 0, len(rows))
	for i := range rows {
		r := &rows[i]
		if status != "" && c.Status != nil && c.Status(r) != status {
			continue
		}
		if term != "" && !c.matches(r, term) {
			continue
		}
		out = append(out, *r)
	}
	return out
}

func (c TableConfig[T]) matches(r *T, term string) bool {
	for _, get := range c.Search {
		if strings.Contains(strings.ToLower(get(r)), term) {
			return true
		}
	}
	return false
}

// Sort 按单一字段原地稳定排序；字段为空时使用默认排序字段
func (c TableConfig[T]) Sort(rows []T, field string, dir Direction) error {
	if field == "" {
		field = c.DefaultSort
	}
	f, ok := c.field(field)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSortField, field)
	}
	slices.SortStableFunc(rows, func(a, b T) int {
		if dir == Desc {
			return f.cmp(&b, &a)
		}
		return f.cmp(&a, &b)
	})
	return nil
}

// Paginate 截取 [(page-1)*size, page*size)；越界返回空切片
func Paginate[T any](rows []T, page, size int) []T {
	if page < 1 || size <= 0 {
		return []T{}
	}
	start := (page - 1) * size
	if start >= len(rows) {
		return []T{}
	}
	end := min(start+size, len(rows))
	return rows[start:end]
}

// PageCount ceil(n / size)
func PageCount(n, size int) int {
	if size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

package registry

import (
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/dohuuduy/quanlytailieu-sub000/internal/model"
)

func codes(docs []model.Document) []string {
	out := make([]string, len(docs))
	for i := range docs {
		out[i] = docs[i].Code
	}
	return out
}

func TestFilter_SearchCaseInsensitive(t *testing.T) {
	cfg := DocumentTable(DefaultPaging)
	docs := []model.Document{
		{Code: "QT-001", Title: "Quy trình kiểm soát"},
		{Code: "HD-002", Title: "Hướng dẫn"},
		{Code: "QT-003", Title: "Quy trình mua hàng"},
	}

	for _, term := range []string{"QT", "qt", "qT"} {
		got := codes(cfg.Filter(docs, term, ""))
		if !slices.Equal(got, []string{"QT-001", "QT-003"}) {
			t.Errorf("搜索 %q 期望 QT-001,QT-003，实际 %v", term, got)
		}
	}
}

func TestFilter_TermUsedAsGiven(t *testing.T) {
	cfg := DocumentTable(DefaultPaging)
	docs := []model.Document{
		{Code: "QT-001", Title: "Quy trình kiểm soát"},
		{Code: "HD-002", Title: "Hướng dẫn qt nội bộ"},
	}
	if got := codes(cfg.Filter(docs, " qt", "")); !slices.Equal(got, []string{"HD-002"}) {
		t.Errorf("带前导空格的搜索词应按原样匹配，实际 %v", got)
	}
	if got := codes(cfg.Filter(docs, " ", "")); len(got) != 2 {
		t.Errorf("单个空格也是有效搜索词，两行标题都包含空格，实际 %v", got)
	}
	if got := codes(cfg.Filter(docs, "qt  ", "")); len(got) != 0 {
		t.Errorf("尾随空白不应被去掉，实际 %v", got)
	}
	if got := codes(cfg.Filter(docs, "", "")); len(got) != 2 {
		t.Errorf("空搜索词应返回全部，实际 %v", got)
	}
}

func TestFilter_MatchesRelationNames(t *testing.T) {
	cfg := DocumentTable(DefaultPaging)
	docs := []model.Document{
		{Code: "A", Category: &model.Category{Name: "Quy trình"}},
		{Code: "B", IssuingUser: &model.User{FullName: "Nguyễn Văn An"}},
		{Code: "C"},
	}
	if got := codes(cfg.Filter(docs, "văn an", "")); !slices.Equal(got, []string{"B"}) {
		t.Errorf("应匹配签发人姓名，实际 %v", got)
	}
	if got := codes(cfg.Filter(docs, "quy", "")); !slices.Equal(got, []string{"A"}) {
		t.Errorf("应匹配类别名称，实际 %v", got)
	}
}

func TestStandardDocumentTable_SearchesCodeAndTitleOnly(t *testing.T) {
	cfg := StandardDocumentTable(DefaultPaging)
	docs := []model.Document{
		{Code: "X-1", Title: "abc", Category: &model.Category{Name: "QT"}},
		{Code: "QT-9", Title: "def"},
	}
	if got := codes(cfg.Filter(docs, "qt", "")); !slices.Equal(got, []string{"QT-9"}) {
		t.Errorf("期望仅 QT-9，实际 %v", got)
	}
}

func TestFilter_StatusAndSearchCombined(t *testing.T) {
	cfg := DocumentTable(DefaultPaging)
	docs := []model.Document{
		{Code: "QT-1", Status: model.StatusActive},
		{Code: "QT-2", Status: model.StatusExpired},
		{Code: "HD-3", Status: model.StatusActive},
	}
	got := codes(cfg.Filter(docs, "qt", string(model.StatusActive)))
	if !slices.Equal(got, []string{"QT-1"}) {
		t.Errorf("期望 QT-1，实际 %v", got)
	}
	if n := len(cfg.Filter(docs, "", "")); n != 3 {
		t.Errorf("无条件时应返回全部，实际 %d", n)
	}
}

func TestFilter_Idempotent(t *testing.T) {
	cfg := DocumentTable(DefaultPaging)
	docs := []model.Document{{Code: "QT-1"}, {Code: "HD-2"}, {Code: "qt-3"}}
	once := cfg.Filter(docs, "qt", "")
	twice := cfg.Filter(once, "qt", "")
	if !slices.Equal(codes(once), codes(twice)) {
		t.Errorf("筛选应幂等: %v vs %v", codes(once), codes(twice))
	}
}

func TestSort_StableForEqualKeys(t *testing.T) {
	cfg := DocumentTable(DefaultPaging)
	docs := []model.Document{
		{Code: "1", Status: model.StatusExpired},
		{Code: "2", Status: model.StatusActive},
		{Code: "3", Status: model.StatusExpired},
		{Code: "4", Status: model.StatusActive},
		{Code: "5", Status: model.StatusActive},
	}

	if err := cfg.Sort(docs, "status", Asc); err != nil {
		t.Fatalf("排序失败: %v", err)
	}
	if got := codes(docs); !slices.Equal(got, []string{"2", "4", "5", "1", "3"}) {
		t.Errorf("升序稳定排序不符: %v", got)
	}

	if err := cfg.Sort(docs, "status", Desc); err != nil {
		t.Fatalf("排序失败: %v", err)
	}
	if got := codes(docs); !slices.Equal(got, []string{"1", "3", "2", "4", "5"}) {
		t.Errorf("降序应保持相等元素的相对顺序: %v", got)
	}
}

func TestSort_NilExpiryFirst(t *testing.T) {
	cfg := DocumentTable(DefaultPaging)
	docs := []model.Document{
		{Code: "b", ExpiryDate: datePtr(2024, 1, 2)},
		{Code: "nil"},
		{Code: "a", ExpiryDate: datePtr(2024, 1, 1)},
	}
	if err := cfg.Sort(docs, "expiry_date", Asc); err != nil {
		t.Fatal(err)
	}
	if got := codes(docs); !slices.Equal(got, []string{"nil", "a", "b"}) {
		t.Errorf("期望 nil 在前，实际 %v", got)
	}
}

func TestSort_ByRelationName(t *testing.T) {
	cfg := DocumentTable(DefaultPaging)
	docs := []model.Document{
		{Code: "1", Category: &model.Category{Name: "Quy trình"}},
		{Code: "2", Category: &model.Category{Name: "Hướng dẫn"}},
		{Code: "3"},
	}
	if err := cfg.Sort(docs, "category", Asc); err != nil {
		t.Fatal(err)
	}
	if got := codes(docs); !slices.Equal(got, []string{"3", "2", "1"}) {
		t.Errorf("按类别名称排序不符: %v", got)
	}
}

func TestSort_UnknownField(t *testing.T) {
	cfg := DocumentTable(DefaultPaging)
	err := cfg.Sort([]model.Document{{}}, "password", Asc)
	if !errors.Is(err, ErrUnknownSortField) {
		t.Errorf("期望 ErrUnknownSortField，实际 %v", err)
	}
}

func TestToggleSort(t *testing.T) {
	c := Controls{SortField: "code", Direction: Asc, Page: 3, PageSize: 10}

	c = c.ToggleSort("code")
	if c.SortField != "code" || c.Direction != Desc || c.Page != 1 {
		t.Errorf("同一字段应切换为降序并回到第 1 页: %+v", c)
	}
	c = c.ToggleSort("code")
	if c.Direction != Asc {
		t.Errorf("再次点击应恢复升序: %+v", c)
	}
	c = c.ToggleSort("code").ToggleSort("title")
	if c.SortField != "title" || c.Direction != Asc {
		t.Errorf("切换字段应重置为升序: %+v", c)
	}
}

func TestToggleSort_TwiceIsIdentityOnOrder(t *testing.T) {
	start := Controls{SortField: "title", Direction: Desc, Page: 1, PageSize: 10}
	got := start.ToggleSort("title").ToggleSort("title")
	if got != start {
		t.Errorf("同一字段点击两次应回到原状态: %+v vs %+v", got, start)
	}
}

func TestControls_ResetPage(t *testing.T) {
	base := Controls{Page: 4, PageSize: 10}
	changes := map[string]func(Controls) Controls{
		"search":    func(c Controls) Controls { return c.WithSearch("x") },
		"status":    func(c Controls) Controls { return c.WithStatus("active") },
		"direction": func(c Controls) Controls { return c.WithDirection(Desc) },
		"page_size": func(c Controls) Controls { return c.WithPageSize(20) },
		"sort":      func(c Controls) Controls { return c.ToggleSort("code") },
	}
	for name, change := range changes {
		if got := change(base); got.Page != 1 {
			t.Errorf("%s 修改后应回到第 1 页，实际 %d", name, got.Page)
		}
	}
	if got := base.WithPage(99); got.Page != 99 {
		t.Errorf("翻页不应修正页码，实际 %d", got.Page)
	}
}

func TestPaginate_Boundary(t *testing.T) {
	rows := make([]int, 23)
	for i := range rows {
		rows[i] = i
	}

	tests := []struct {
		page, size int
		want       int
	}{
		{1, 10, 10},
		{2, 10, 10},
		{3, 10, 3},
		{4, 10, 0},
		{1, 50, 23},
		{5, 5, 3},
	}
	for _, tt := range tests {
		got := Paginate(rows, tt.page, tt.size)
		if len(got) != tt.want {
			t.Errorf("page=%d size=%d 期望 %d 行，实际 %d", tt.page, tt.size, tt.want, len(got))
		}
		if tt.want > 0 && got[0] != (tt.page-1)*tt.size {
			t.Errorf("page=%d size=%d 首行应为 %d，实际 %d", tt.page, tt.size, (tt.page-1)*tt.size, got[0])
		}
	}
	if PageCount(23, 10) != 3 || PageCount(0, 10) != 0 || PageCount(20, 10) != 2 {
		t.Error("PageCount 计算错误")
	}
}

func TestPaginate_ConcatenationRestoresInput(t *testing.T) {
	rows := make([]int, 47)
	for i := range rows {
		rows[i] = i * 7
	}
	for _, size := range DefaultPageSizes {
		var all []int
		for p := 1; p <= PageCount(len(rows), size); p++ {
			all = append(all, Paginate(rows, p, size)...)
		}
		if !slices.Equal(all, rows) {
			t.Errorf("size=%d 各页拼接应还原输入", size)
		}
	}
}

func TestRun(t *testing.T) {
	cfg := DocumentTable(DefaultPaging)
	var docs []model.Document
	for i := 25; i >= 1; i-- {
		docs = append(docs, model.Document{Code: fmt.Sprintf("QT-%03d", i), Status: model.StatusActive})
	}
	docs = append(docs, model.Document{Code: "HD-001", Status: model.StatusActive})
	input := slices.Clone(docs)

	ctl := cfg.DefaultControls().WithSearch("qt").WithPage(3)
	page, err := cfg.Run(docs, ctl)
	if err != nil {
		t.Fatalf("Run 失败: %v", err)
	}
	if page.Total != 25 || page.TotalPages != 3 || page.Page != 3 || page.PageSize != 10 {
		t.Errorf("分页信息不符: %+v", page)
	}
	if got := codes(page.Rows); !slices.Equal(got, []string{"QT-021", "QT-022", "QT-023", "QT-024", "QT-025"}) {
		t.Errorf("第 3 页内容不符: %v", got)
	}
	if !slices.Equal(codes(docs), codes(input)) {
		t.Error("Run 不应修改输入切片")
	}
}

func TestRun_RejectsBadControls(t *testing.T) {
	cfg := DocumentTable(DefaultPaging)
	if _, err := cfg.Run(nil, cfg.DefaultControls().WithPageSize(7)); !errors.Is(err, ErrInvalidPageSize) {
		t.Errorf("期望 ErrInvalidPageSize，实际 %v", err)
	}
	if _, err := cfg.Run(nil, cfg.DefaultControls().WithPage(0)); !errors.Is(err, ErrInvalidPage) {
		t.Errorf("期望 ErrInvalidPage，实际 %v", err)
	}
	page, err := cfg.Run(nil, cfg.DefaultControls().WithPage(9))
	if err != nil || len(page.Rows) != 0 || page.Rows == nil {
		t.Errorf("越界页应返回空列表: %+v %v", page, err)
	}
}

func TestDefaultControls(t *testing.T) {
	c := UserTable(Paging{Sizes: []int{25, 100}, Default: 25}).DefaultControls()
	want := Controls{SortField: "full_name", Direction: Asc, Page: 1, PageSize: 25}
	if c != want {
		t.Errorf("期望 %+v，实际 %+v", want, c)
	}
}

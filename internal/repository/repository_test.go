package repository

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/dohuuduy/quanlytailieu-sub000/internal/model"
	"github.com/dohuuduy/quanlytailieu-sub000/internal/store"
)

type call struct {
	op      string
	table   string
	id      string
	filters []store.Filter
	patch   map[string]any
	row     any
	query   store.Query
}

// recordingStore 记录调用，Fetch 返回空结果，Count 按表返回预置值
type recordingStore struct {
	calls  []call
	counts map[string]int64
	err    error
}

func (s *recordingStore) Fetch(_ context.Context, table string, q store.Query, _ any) error {
	s.calls = append(s.calls, call{op: "fetch", table: table, query: q})
	return s.err
}

func (s *recordingStore) FetchOne(_ context.Context, table, id string, _ any, joins ...string) error {
	s.calls = append(s.calls, call{op: "fetch_one", table: table, id: id, query: store.Query{Joins: joins}})
	return s.err
}

func (s *recordingStore) Insert(_ context.Context, table string, row any) error {
	s.calls = append(s.calls, call{op: "insert", table: table, row: row})
	return s.err
}

func (s *recordingStore) Update(_ context.Context, table, id string, patch map[string]any) error {
	s.calls = append(s.calls, call{op: "update", table: table, id: id, patch: patch})
	return s.err
}

func (s *recordingStore) Delete(_ context.Context, table, id string) error {
	s.calls = append(s.calls, call{op: "delete", table: table, id: id})
	return s.err
}

func (s *recordingStore) DeleteWhere(_ context.Context, table string, filters ...store.Filter) error {
	s.calls = append(s.calls, call{op: "delete_where", table: table, filters: filters})
	return s.err
}

func (s *recordingStore) Count(_ context.Context, table string, filters ...store.Filter) (int64, error) {
	s.calls = append(s.calls, call{op: "count", table: table, filters: filters})
	return s.counts[table], s.err
}

func TestFindOne_NotFoundOnEmpty(t *testing.T) {
	st := &recordingStore{}
	repo := NewCategoryRepo(st)

	_, err := repo.GetByName(context.Background(), "Quy trình")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("期望 ErrNotFound，实际 %v", err)
	}
	q := st.calls[0].query
	if q.Limit != 1 || !reflect.DeepEqual(q.Filters, []store.Filter{store.Eq("name", "Quy trình")}) {
		t.Errorf("查询参数不符: %+v", q)
	}
}

func TestDocumentRepo_ReplaceStandards(t *testing.T) {
	st := &recordingStore{}
	repo := NewDocumentRepo(st)

	if err := repo.ReplaceStandards(context.Background(), "d1", []string{"s1", "s2"}); err != nil {
		t.Fatalf("ReplaceStandards 失败: %v", err)
	}
	if len(st.calls) != 2 || st.calls[0].op != "delete_where" || st.calls[1].op != "insert" {
		t.Fatalf("期望先删除再插入，实际 %+v", st.calls)
	}
	if !reflect.DeepEqual(st.calls[0].filters, []store.Filter{store.Eq("document_id", "d1")}) {
		t.Errorf("删除条件不符: %v", st.calls[0].filters)
	}
	links, ok := st.calls[1].row.(*[]model.DocumentStandard)
	if !ok || len(*links) != 2 || (*links)[1].StandardID != "s2" || (*links)[0].DocumentID != "d1" {
		t.Errorf("插入的关联不符: %#v", st.calls[1].row)
	}
}

func TestDocumentRepo_ReplaceStandards_EmptyOnlyClears(t *testing.T) {
	st := &recordingStore{}
	if err := NewDocumentRepo(st).ReplaceStandards(context.Background(), "d1", nil); err != nil {
		t.Fatal(err)
	}
	if len(st.calls) != 1 || st.calls[0].op != "delete_where" {
		t.Errorf("空列表只应清除关联，实际 %+v", st.calls)
	}
}

func TestDocumentRepo_GetByIDExpandsRelations(t *testing.T) {
	st := &recordingStore{}
	_, _ = NewDocumentRepo(st).GetByID(context.Background(), "d1")
	if got := st.calls[0].query.Joins; !reflect.DeepEqual(got, []string{"Category", "IssuingUser"}) {
		t.Errorf("期望展开类别与签发人，实际 %v", got)
	}
}

func TestUserRepo_CountReferences(t *testing.T) {
	st := &recordingStore{counts: map[string]int64{
		model.TableDocuments:       3,
		model.TableDocumentHistory: 4,
	}}
	n, err := NewUserRepo(st).CountReferences(context.Background(), "u1")
	if err != nil {
		t.Fatal(err)
	}
	if n != 7 {
		t.Errorf("期望 7，实际 %d", n)
	}
}

func TestStandardRepo_UpdatePatch(t *testing.T) {
	st := &recordingStore{}
	desc := "Hệ thống quản lý chất lượng"
	s := &model.Standard{ID: "s1", Name: "ISO 9001", Description: &desc, Status: model.StatusActive}
	if err := NewStandardRepo(st).Update(context.Background(), s); err != nil {
		t.Fatal(err)
	}
	c := st.calls[0]
	if c.op != "update" || c.table != model.TableStandards || c.id != "s1" {
		t.Fatalf("调用不符: %+v", c)
	}
	if c.patch["name"] != "ISO 9001" || c.patch["status"] != model.StatusActive {
		t.Errorf("更新字段不符: %v", c.patch)
	}
}

func TestRepository_PropagatesStoreError(t *testing.T) {
	boom := errors.New("boom")
	repo := NewRepository(&recordingStore{err: boom})
	if _, err := repo.Document.List(context.Background()); !errors.Is(err, boom) {
		t.Errorf("期望透传存储错误，实际 %v", err)
	}
	if _, err := repo.History.ListByDocument(context.Background(), "d1"); !errors.Is(err, boom) {
		t.Errorf("期望透传存储错误，实际 %v", err)
	}
}

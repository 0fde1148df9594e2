package registry

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/dohuuduy/quanlytailieu-sub000/internal/model"
	"github.com/dohuuduy/quanlytailieu-sub000/internal/store"
)

func TestResolveDocumentsOfStandard_DropsOrphans(t *testing.T) {
	st := newFakeStore()
	st.rows[model.TableDocumentStandards] = []model.DocumentStandard{
		{StandardID: "iso", DocumentID: "d1", Document: &model.Document{ID: "d1", Code: "QT-001"}},
		{StandardID: "iso", DocumentID: "gone", Document: nil},
		{StandardID: "iso", DocumentID: "d2", Document: &model.Document{ID: "d2", Code: "HD-002"}},
		{StandardID: "iso", DocumentID: "gone-2", Document: nil},
	}

	docs, err := ResolveDocumentsOfStandard(context.Background(), st, "iso")
	if err != nil {
		t.Fatalf("Resolve 应成功: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("期望 2 个非空目标，实际=%d", len(docs))
	}
	if docs[0].Code != "QT-001" || docs[1].Code != "HD-002" {
		t.Errorf("应保持存储返回顺序，实际=%s,%s", docs[0].Code, docs[1].Code)
	}

	q := st.queries[model.TableDocumentStandards]
	wantFilter := []store.Filter{store.Eq("standard_id", "iso")}
	if !reflect.DeepEqual(q.Filters, wantFilter) {
		t.Errorf("期望过滤 %v，实际 %v", wantFilter, q.Filters)
	}
	wantJoins := []string{"Document", "Document.Category", "Document.IssuingUser"}
	if !reflect.DeepEqual(q.Joins, wantJoins) {
		t.Errorf("期望展开 %v，实际 %v", wantJoins, q.Joins)
	}
}

func TestResolveStandardsOfDocument(t *testing.T) {
	st := newFakeStore()
	st.rows[model.TableDocumentStandards] = []model.DocumentStandard{
		{DocumentID: "d1", StandardID: "s1", Standard: &model.Standard{ID: "s1", Name: "ISO 9001"}},
		{DocumentID: "d1", StandardID: "s2", Standard: nil},
	}

	stds, err := ResolveStandardsOfDocument(context.Background(), st, "d1")
	if err != nil {
		t.Fatalf("Resolve 应成功: %v", err)
	}
	if len(stds) != 1 || stds[0].Name != "ISO 9001" {
		t.Errorf("期望仅 ISO 9001，实际=%v", stds)
	}
	if got := st.queries[model.TableDocumentStandards].Joins; !reflect.DeepEqual(got, []string{"Standard"}) {
		t.Errorf("期望只展开 Standard，实际 %v", got)
	}
}

func TestResolveDocumentsOfCategory_SelfTarget(t *testing.T) {
	st := newFakeStore()
	st.rows[model.TableDocuments] = []model.Document{{ID: "d1"}, {ID: "d2"}}

	docs, err := ResolveDocumentsOfCategory(context.Background(), st, "cat-1")
	if err != nil {
		t.Fatalf("Resolve 应成功: %v", err)
	}
	if len(docs) != 2 {
		t.Errorf("期望 2，实际=%d", len(docs))
	}
	if got := st.queries[model.TableDocuments].Joins; !reflect.DeepEqual(got, []string{"Category", "IssuingUser"}) {
		t.Errorf("一对多应直接展开下级关联，实际 %v", got)
	}
}

func TestResolve_EmptyParent(t *testing.T) {
	st := newFakeStore()
	_, err := ResolveDocumentsOfStandard(context.Background(), st, "")
	if !errors.Is(err, ErrEmptyParent) {
		t.Errorf("期望 ErrEmptyParent，实际: %v", err)
	}
	if len(st.queries) != 0 {
		t.Error("父 ID 为空时不应发出查询")
	}
}

func TestResolve_FetchErrorNoPartialRows(t *testing.T) {
	st := newFakeStore()
	boom := errors.New("network down")
	st.err = boom
	st.rows[model.TableDocumentStandards] = []model.DocumentStandard{{Document: &model.Document{ID: "d1"}}}

	docs, err := ResolveDocumentsOfStandard(context.Background(), st, "iso")
	if !errors.Is(err, boom) {
		t.Errorf("期望透传存储错误，实际: %v", err)
	}
	if docs != nil {
		t.Errorf("失败时不应返回任何行，实际=%v", docs)
	}
}

func TestFlatten_LengthEqualsNonNullTargets(t *testing.T) {
	for n := 0; n < 20; n++ {
		rows := make([]model.DocumentStandard, n)
		want := 0
		for i := range rows {
			if i%3 != 0 {
				rows[i].Document = &model.Document{ID: "x"}
				want++
			}
		}
		got := Flatten(rows, func(l *model.DocumentStandard) *model.Document { return l.Document })
		if len(got) != want {
			t.Fatalf("n=%d 期望 %d，实际 %d", n, want, len(got))
		}
	}
}

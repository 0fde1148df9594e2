package registry

import (
	"context"
	"fmt"
	"reflect"

	"github.com/dohuuduy/quanlytailieu-sub000/internal/store"
)

// fakeStore 按表名返回预置行，记录收到的查询；过滤由真实存储负责，这里不做
type fakeStore struct {
	rows    map[string]any
	err     error
	queries map[string]store.Query
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: make(map[string]any), queries: make(map[string]store.Query)}
}

func (f *fakeStore) Fetch(_ context.Context, table string, q store.Query, dest any) error {
	f.queries[table] = q
	if f.err != nil {
		return f.err
	}
	rows, ok := f.rows[table]
	if !ok {
		return nil
	}
	dv := reflect.ValueOf(dest)
	rv := reflect.ValueOf(rows)
	if dv.Kind() != reflect.Ptr || dv.Elem().Type() != rv.Type() {
		return fmt.Errorf("fake: dest %T 与预置 %T 不匹配", dest, rows)
	}
	dv.Elem().Set(rv)
	return nil
}

func (f *fakeStore) FetchOne(context.Context, string, string, any, ...string) error {
	return store.ErrNotFound
}
func (f *fakeStore) Insert(context.Context, string, any) error { return nil }
func (f *fakeStore) Update(context.Context, string, string, map[string]any) error {
	return nil
}
func (f *fakeStore) Delete(context.Context, string, string) error             { return nil }
func (f *fakeStore) DeleteWhere(context.Context, string, ...store.Filter) error { return nil }
func (f *fakeStore) Count(context.Context, string, ...store.Filter) (int64, error) {
	return 0, nil
}

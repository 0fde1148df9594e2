package service

import (
	"context"
	"fmt"
	"reflect"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/dohuuduy/quanlytailieu-sub000/internal/model"
	"github.com/dohuuduy/quanlytailieu-sub000/internal/repository"
	"github.com/dohuuduy/quanlytailieu-sub000/internal/store"
)

var testNow = time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)

func testOptions() Options {
	opts := DefaultOptions()
	opts.Now = func() time.Time { return testNow }
	return opts
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

// ── Mock CategoryRepository ──

type mockCategoryRepo struct {
	items     map[string]*model.Category
	docCounts map[string]int64
	createErr error
	deleteErr error
	seq       int
}

func newMockCategoryRepo() *mockCategoryRepo {
	m := &mockCategoryRepo{items: make(map[string]*model.Category), docCounts: make(map[string]int64)}
	m.items["cat-1"] = &model.Category{ID: "cat-1", Name: "Quy trình", Status: model.StatusActive}
	return m
}

func (m *mockCategoryRepo) Create(_ context.Context, c *model.Category) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.seq++
	c.ID = fmt.Sprintf("cat-new-%d", m.seq)
	c.CreatedAt, c.UpdatedAt = testNow, testNow
	cp := *c
	m.items[c.ID] = &cp
	return nil
}

func (m *mockCategoryRepo) GetByID(_ context.Context, id string) (*model.Category, error) {
	if c, ok := m.items[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, store.ErrNotFound
}

func (m *mockCategoryRepo) GetByName(_ context.Context, name string) (*model.Category, error) {
	for _, c := range m.items {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *mockCategoryRepo) List(_ context.Context) ([]model.Category, error) {
	var out []model.Category
	for _, c := range m.items {
		out = append(out, *c)
	}
	return out, nil
}

func (m *mockCategoryRepo) Update(_ context.Context, c *model.Category) error {
	if _, ok := m.items[c.ID]; !ok {
		return store.ErrNotFound
	}
	cp := *c
	m.items[c.ID] = &cp
	return nil
}

func (m *mockCategoryRepo) Delete(_ context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.items[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *mockCategoryRepo) CountDocuments(_ context.Context, id string) (int64, error) {
	return m.docCounts[id], nil
}

// ── Mock StandardRepository ──

type mockStandardRepo struct {
	items       map[string]*model.Standard
	docCounts   map[string]int64
	schedCounts map[string]int64
	seq         int
}

func newMockStandardRepo() *mockStandardRepo {
	m := &mockStandardRepo{
		items:       make(map[string]*model.Standard),
		docCounts:   make(map[string]int64),
		schedCounts: make(map[string]int64),
	}
	m.items["std-iso"] = &model.Standard{ID: "std-iso", Name: "ISO 9001", Status: model.StatusActive}
	m.items["std-14001"] = &model.Standard{ID: "std-14001", Name: "ISO 14001", Status: model.StatusActive}
	return m
}

func (m *mockStandardRepo) Create(_ context.Context, s *model.Standard) error {
	m.seq++
	s.ID = fmt.Sprintf("std-new-%d", m.seq)
	cp := *s
	m.items[s.ID] = &cp
	return nil
}

func (m *mockStandardRepo) GetByID(_ context.Context, id string) (*model.Standard, error) {
	if s, ok := m.items[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, store.ErrNotFound
}

func (m *mockStandardRepo) GetByName(_ context.Context, name string) (*model.Standard, error) {
	for _, s := range m.items {
		if s.Name == name {
			cp := *s
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *mockStandardRepo) List(_ context.Context) ([]model.Standard, error) {
	var out []model.Standard
	for _, s := range m.items {
		out = append(out, *s)
	}
	return out, nil
}

func (m *mockStandardRepo) ListByIDs(_ context.Context, ids []string) ([]model.Standard, error) {
	var out []model.Standard
	for _, id := range ids {
		if s, ok := m.items[id]; ok {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m *mockStandardRepo) Update(_ context.Context, s *model.Standard) error {
	if _, ok := m.items[s.ID]; !ok {
		return store.ErrNotFound
	}
	cp := *s
	m.items[s.ID] = &cp
	return nil
}

func (m *mockStandardRepo) Delete(_ context.Context, id string) error {
	delete(m.items, id)
	return nil
}

func (m *mockStandardRepo) CountDocuments(_ context.Context, id string) (int64, error) {
	return m.docCounts[id], nil
}

func (m *mockStandardRepo) CountSchedules(_ context.Context, id string) (int64, error) {
	return m.schedCounts[id], nil
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	items     map[string]*model.User
	refCounts map[string]int64
	seq       int
}

func newMockUserRepo() *mockUserRepo {
	m := &mockUserRepo{items: make(map[string]*model.User), refCounts: make(map[string]int64)}
	m.items["user-1"] = &model.User{ID: "user-1", FullName: "Nguyễn Văn An", Email: "an@example.com", Role: model.RoleAdmin}
	m.items["user-2"] = &model.User{ID: "user-2", FullName: "Trần Thị Bình", Email: "binh@example.com", Role: model.RoleUser}
	return m
}

func (m *mockUserRepo) Create(_ context.Context, u *model.User) error {
	m.seq++
	u.ID = fmt.Sprintf("user-new-%d", m.seq)
	cp := *u
	m.items[u.ID] = &cp
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.items[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, store.ErrNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.items {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	var out []model.User
	for _, u := range m.items {
		out = append(out, *u)
	}
	return out, nil
}

func (m *mockUserRepo) Update(_ context.Context, u *model.User) error {
	cp := *u
	m.items[u.ID] = &cp
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	delete(m.items, id)
	return nil
}

func (m *mockUserRepo) CountReferences(_ context.Context, id string) (int64, error) {
	return m.refCounts[id], nil
}

// ── Mock DocumentRepository ──

type mockDocumentRepo struct {
	items     map[string]*model.Document
	links     map[string][]string
	createErr error
	seq       int
}

func newMockDocumentRepo() *mockDocumentRepo {
	return &mockDocumentRepo{items: make(map[string]*model.Document), links: make(map[string][]string)}
}

func (m *mockDocumentRepo) add(d model.Document) {
	m.items[d.ID] = &d
}

func (m *mockDocumentRepo) Create(_ context.Context, d *model.Document) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.seq++
	d.ID = fmt.Sprintf("doc-new-%d", m.seq)
	d.CreatedAt, d.UpdatedAt = testNow, testNow
	cp := *d
	m.items[d.ID] = &cp
	return nil
}

func (m *mockDocumentRepo) GetByID(_ context.Context, id string) (*model.Document, error) {
	if d, ok := m.items[id]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, store.ErrNotFound
}

func (m *mockDocumentRepo) GetByCode(_ context.Context, code string) (*model.Document, error) {
	for _, d := range m.items {
		if d.Code == code {
			cp := *d
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *mockDocumentRepo) List(_ context.Context) ([]model.Document, error) {
	ids := make([]string, 0, len(m.items))
	for id := range m.items {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]model.Document, 0, len(ids))
	for _, id := range ids {
		out = append(out, *m.items[id])
	}
	return out, nil
}

func (m *mockDocumentRepo) Update(_ context.Context, d *model.Document) error {
	if _, ok := m.items[d.ID]; !ok {
		return store.ErrNotFound
	}
	cp := *d
	m.items[d.ID] = &cp
	return nil
}

func (m *mockDocumentRepo) UpdateStatus(_ context.Context, id string, status model.Status) error {
	d, ok := m.items[id]
	if !ok {
		return store.ErrNotFound
	}
	d.Status = status
	return nil
}

func (m *mockDocumentRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.items, id)
	delete(m.links, id)
	return nil
}

func (m *mockDocumentRepo) ReplaceStandards(_ context.Context, id string, standardIDs []string) error {
	m.links[id] = slices.Clone(standardIDs)
	return nil
}

// ── Mock ScheduleRepository ──

type mockScheduleRepo struct {
	items map[string]*model.ScheduleEntry
	seq   int
}

func newMockScheduleRepo() *mockScheduleRepo {
	return &mockScheduleRepo{items: make(map[string]*model.ScheduleEntry)}
}

func (m *mockScheduleRepo) Create(_ context.Context, e *model.ScheduleEntry) error {
	m.seq++
	e.ID = fmt.Sprintf("sch-new-%d", m.seq)
	cp := *e
	m.items[e.ID] = &cp
	return nil
}

func (m *mockScheduleRepo) GetByID(_ context.Context, id string) (*model.ScheduleEntry, error) {
	if e, ok := m.items[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, store.ErrNotFound
}

func (m *mockScheduleRepo) List(_ context.Context) ([]model.ScheduleEntry, error) {
	ids := make([]string, 0, len(m.items))
	for id := range m.items {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]model.ScheduleEntry, 0, len(ids))
	for _, id := range ids {
		out = append(out, *m.items[id])
	}
	return out, nil
}

func (m *mockScheduleRepo) Update(_ context.Context, e *model.ScheduleEntry) error {
	if _, ok := m.items[e.ID]; !ok {
		return store.ErrNotFound
	}
	cp := *e
	m.items[e.ID] = &cp
	return nil
}

func (m *mockScheduleRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

// ── Mock HistoryRepository ──

type mockHistoryRepo struct {
	entries []model.HistoryEntry
}

func (m *mockHistoryRepo) Append(_ context.Context, h *model.HistoryEntry) error {
	h.ID = fmt.Sprintf("hist-%d", len(m.entries)+1)
	h.CreatedAt = testNow.Add(time.Duration(len(m.entries)) * time.Minute)
	m.entries = append(m.entries, *h)
	return nil
}

func (m *mockHistoryRepo) ListByDocument(_ context.Context, id string) ([]model.HistoryEntry, error) {
	var out []model.HistoryEntry
	for _, h := range m.entries {
		if h.DocumentID == id {
			out = append(out, h)
		}
	}
	return out, nil
}

// ── Fake Store（供关联解析与计数使用） ──

type fakeStore struct {
	rows   map[string]any
	counts map[string]int64
	err    error
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: make(map[string]any), counts: make(map[string]int64)}
}

func (f *fakeStore) Fetch(_ context.Context, table string, _ store.Query, dest any) error {
	if f.err != nil {
		return f.err
	}
	if rows, ok := f.rows[table]; ok {
		reflect.ValueOf(dest).Elem().Set(reflect.ValueOf(rows))
	}
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
func (f *fakeStore) Count(_ context.Context, table string, _ ...store.Filter) (int64, error) {
	return f.counts[table], f.err
}

// ── 测试夹具 ──

type fixture struct {
	categories *mockCategoryRepo
	standards  *mockStandardRepo
	users      *mockUserRepo
	documents  *mockDocumentRepo
	schedules  *mockScheduleRepo
	history    *mockHistoryRepo
	store      *fakeStore
	repo       *repository.Repository
	svc        *Service
}

func newFixture() *fixture {
	f := &fixture{
		categories: newMockCategoryRepo(),
		standards:  newMockStandardRepo(),
		users:      newMockUserRepo(),
		documents:  newMockDocumentRepo(),
		schedules:  newMockScheduleRepo(),
		history:    &mockHistoryRepo{},
		store:      newFakeStore(),
	}
	f.repo = &repository.Repository{
		Category: f.categories,
		Standard: f.standards,
		User:     f.users,
		Document: f.documents,
		Schedule: f.schedules,
		History:  f.history,
		Store:    f.store,
	}
	f.svc = NewService(f.repo, testOptions(), zap.NewNop())
	return f
}

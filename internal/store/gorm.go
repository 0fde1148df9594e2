package store

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"regexp"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

var (
	columnPattern   = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)
	relationPattern = regexp.MustCompile(`^[A-Z][A-Za-z0-9]*(\.[A-Z][A-Za-z0-9]*)*$`)
)

// PostgreSQL 错误码
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// GormStore 基于 GORM 的 Store 实现
type GormStore struct {
	db     *gorm.DB
	models map[string]reflect.Type
}

// NewGormStore 创建 GormStore；models 为允许访问的表模型（按 TableName 注册）
func NewGormStore(db *gorm.DB, models ...schema.Tabler) *GormStore {
	m := make(map[string]reflect.Type, len(models))
	for _, t := range models {
		typ := reflect.TypeOf(t)
		if typ.Kind() == reflect.Ptr {
			typ = typ.Elem()
		}
		m[t.TableName()] = typ
	}
	return &GormStore{db: db, models: m}
}

func (s *GormStore) Fetch(ctx context.Context, table string, q Query, dest any) error {
	if _, err := s.model(table); err != nil {
		return err
	}
	tx, err := applyFilters(s.db.WithContext(ctx).Table(table), q.Filters)
	if err != nil {
		return err
	}
	for _, o := range q.Order {
		if !columnPattern.MatchString(o.Field) {
			return fmt.Errorf("%w: %q", ErrInvalidField, o.Field)
		}
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: o.Field}, Desc: o.Desc})
	}
	if tx, err = applyJoins(tx, q.Joins); err != nil {
		return err
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	if err := tx.Find(dest).Error; err != nil {
		return fmt.Errorf("查询 %s 失败: %w", table, classify(err))
	}
	return nil
}

func (s *GormStore) FetchOne(ctx context.Context, table, id string, dest any, joins ...string) error {
	if _, err := s.model(table); err != nil {
		return err
	}
	tx, err := applyJoins(s.db.WithContext(ctx).Table(table), joins)
	if err != nil {
		return err
	}
	if err := tx.Where(clause.Eq{Column: clause.Column{Name: "id"}, Value: id}).First(dest).Error; err != nil {
		return fmt.Errorf("查询 %s/%s 失败: %w", table, id, classify(err))
	}
	return nil
}

func (s *GormStore) Insert(ctx context.Context, table string, row any) error {
	if _, err := s.model(table); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Table(table).Omit(clause.Associations).Create(row).Error
	if err != nil {
		return fmt.Errorf("写入 %s 失败: %w", table, classify(err))
	}
	return nil
}

func (s *GormStore) Update(ctx context.Context, table, id string, patch map[string]any) error {
	proto, err := s.model(table)
	if err != nil {
		return err
	}
	for k := range patch {
		if !columnPattern.MatchString(k) {
			return fmt.Errorf("%w: %q", ErrInvalidField, k)
		}
	}
	res := s.db.WithContext(ctx).
		Model(proto).
		Where(clause.Eq{Column: clause.Column{Name: "id"}, Value: id}).
		Updates(patch)
	if res.Error != nil {
		return fmt.Errorf("更新 %s/%s 失败: %w", table, id, classify(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("更新 %s/%s 失败: %w", table, id, ErrNotFound)
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context, table, id string) error {
	proto, err := s.model(table)
	if err != nil {
		return err
	}
	res := s.db.WithContext(ctx).
		Where(clause.Eq{Column: clause.Column{Name: "id"}, Value: id}).
		Delete(proto)
	if res.Error != nil {
		return fmt.Errorf("删除 %s/%s 失败: %w", table, id, classify(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("删除 %s/%s 失败: %w", table, id, ErrNotFound)
	}
	return nil
}

func (s *GormStore) DeleteWhere(ctx context.Context, table string, filters ...Filter) error {
	proto, err := s.model(table)
	if err != nil {
		return err
	}
	if len(filters) == 0 {
		return fmt.Errorf("删除 %s 需要至少一个条件: %w", table, ErrInvalidField)
	}
	tx, err := applyFilters(s.db.WithContext(ctx), filters)
	if err != nil {
		return err
	}
	if err := tx.Delete(proto).Error; err != nil {
		return fmt.Errorf("删除 %s 失败: %w", table, classify(err))
	}
	return nil
}

func (s *GormStore) Count(ctx context.Context, table string, filters ...Filter) (int64, error) {
	if _, err := s.model(table); err != nil {
		return 0, err
	}
	tx, err := applyFilters(s.db.WithContext(ctx).Table(table), filters)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := tx.Count(&n).Error; err != nil {
		return 0, fmt.Errorf("统计 %s 失败: %w", table, classify(err))
	}
	return n, nil
}

// model 返回表模型的新实例指针
func (s *GormStore) model(table string) (any, error) {
	typ, ok := s.models[table]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}
	return reflect.New(typ).Interface(), nil
}

func applyFilters(tx *gorm.DB, filters []Filter) (*gorm.DB, error) {
	for _, f := range filters {
		expr, err := filterExpr(f)
		if err != nil {
			return nil, err
		}
		tx = tx.Where(expr)
	}
	return tx, nil
}

func applyJoins(tx *gorm.DB, joins []string) (*gorm.DB, error) {
	for _, j := range joins {
		if !relationPattern.MatchString(j) {
			return nil, fmt.Errorf("%w: 关联 %q", ErrInvalidField, j)
		}
		tx = tx.Preload(j)
	}
	return tx, nil
}

func filterExpr(f Filter) (clause.Expression, error) {
	if !columnPattern.MatchString(f.Field) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidField, f.Field)
	}
	col := clause.Column{Name: f.Field}
	switch f.Op {
	case OpEq, "":
		return clause.Eq{Column: col, Value: f.Value}, nil
	case OpNe:
		return clause.Neq{Column: col, Value: f.Value}, nil
	case OpGte:
		return clause.Gte{Column: col, Value: f.Value}, nil
	case OpLte:
		return clause.Lte{Column: col, Value: f.Value}, nil
	case OpIn:
		values, ok := f.Value.([]string)
		if !ok {
			return nil, fmt.Errorf("%w: %q 的 in 条件需要 []string", ErrInvalidField, f.Field)
		}
		vs := make([]any, len(values))
		for i, v := range values {
			vs[i] = v
		}
		return clause.IN{Column: col, Values: vs}, nil
	default:
		return nil, fmt.Errorf("%w: 未知操作符 %q", ErrInvalidField, f.Op)
	}
}

// classify 将驱动错误归一为本包哨兵错误，同时保留原始错误
func classify(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", ErrDuplicate, pgErr.ConstraintName)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %s", ErrReferenced, pgErr.ConstraintName)
		}
	}
	return err
}

package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RemoteBackend runs every Table against a relational database through gorm.
type RemoteBackend struct {
	db *gorm.DB
}

func NewRemoteBackend(db *gorm.DB) *RemoteBackend {
	return &RemoteBackend{db: db}
}

func (b *RemoteBackend) sealed()      {}
func (b *RemoteBackend) Name() string { return "remote" }

// DB exposes the underlying handle for migrations and health checks.
func (b *RemoteBackend) DB() *gorm.DB { return b.db }

func (b *RemoteBackend) Ping(ctx context.Context) error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (b *RemoteBackend) Close() error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type remoteTxKey struct{}

func (b *RemoteBackend) conn(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(remoteTxKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return b.db.WithContext(ctx)
}

// Transact opens a database transaction, or a savepoint when already inside one.
func (b *RemoteBackend) Transact(ctx context.Context, fn func(ctx context.Context) error) error {
	return b.conn(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, remoteTxKey{}, tx))
	})
}

type remoteTable[T Record] struct {
	b *RemoteBackend
	c Collection
}

func newRemoteTable[T Record](b *RemoteBackend, c Collection) *remoteTable[T] {
	return &remoteTable[T]{b: b, c: c}
}

func (t *remoteTable[T]) scoped(ctx context.Context, filters []Filter) *gorm.DB {
	q := t.b.conn(ctx).Table(t.c.Table)
	for _, f := range filters {
		q = q.Where(f.expression())
	}
	return q
}

func (t *remoteTable[T]) Get(ctx context.Context, id string) (*T, error) {
	return t.First(ctx, Where(Eq("id", id)))
}

func (t *remoteTable[T]) First(ctx context.Context, q Query) (*T, error) {
	var rec T
	err := applySorts(t.scoped(ctx, q.Filters), q.Sorts).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", t.c.Table, err)
	}
	return &rec, nil
}

func (t *remoteTable[T]) Find(ctx context.Context, q Query) ([]T, error) {
	var rows []T
	db := applySorts(t.scoped(ctx, q.Filters), q.Sorts)
	if q.Limit > 0 {
		db = db.Limit(q.Limit)
	}
	if err := db.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("%s: %w", t.c.Table, err)
	}
	return rows, nil
}

func (t *remoteTable[T]) Count(ctx context.Context, filters ...Filter) (int64, error) {
	var n int64
	if err := t.scoped(ctx, filters).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("%s: %w", t.c.Table, err)
	}
	return n, nil
}

func (t *remoteTable[T]) Insert(ctx context.Context, recs ...*T) error {
	if len(recs) == 0 {
		return nil
	}
	if err := t.b.conn(ctx).Table(t.c.Table).Create(recs).Error; err != nil {
		return fmt.Errorf("%s: %w", t.c.Table, err)
	}
	return nil
}

func (t *remoteTable[T]) Update(ctx context.Context, id string, mutate func(*T)) (*T, error) {
	return t.UpdateIf(ctx, id, nil, mutate)
}

func (t *remoteTable[T]) UpdateIf(ctx context.Context, id string, guard []Filter, mutate func(*T)) (*T, error) {
	var updated *T
	err := t.b.Transact(ctx, func(ctx context.Context) error {
		var rec T
		filters := append([]Filter{Eq("id", id)}, guard...)
		err := t.scoped(ctx, filters).
			Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
			Take(&rec).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		mutate(&rec)
		if err := t.b.conn(ctx).Table(t.c.Table).Save(&rec).Error; err != nil {
			return err
		}
		updated = &rec
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", t.c.Table, err)
	}
	return updated, nil
}

func (t *remoteTable[T]) Delete(ctx context.Context, filters ...Filter) (int64, error) {
	db := t.scoped(ctx, filters)
	if len(filters) == 0 {
		db = db.Session(&gorm.Session{AllowGlobalUpdate: true})
	}
	result := db.Delete(new(T))
	if result.Error != nil {
		return 0, fmt.Errorf("%s: %w", t.c.Table, result.Error)
	}
	return result.RowsAffected, nil
}

func applySorts(db *gorm.DB, sorts []Sort) *gorm.DB {
	for _, s := range sorts {
		db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: s.Column}, Desc: s.Desc})
	}
	return db
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (f Filter) expression() clause.Expression {
	col := clause.Column{Name: f.Column}
	switch f.Op {
	case OpNe:
		return clause.Neq{Column: col, Value: f.Value}
	case OpIn:
		return clause.IN{Column: col, Values: f.Value.([]any)}
	case OpPrefix:
		pattern := likeEscaper.Replace(fmt.Sprint(f.Value)) + "%"
		return clause.Expr{SQL: `? LIKE ? ESCAPE '\'`, Vars: []any{col, pattern}}
	case OpGte:
		return clause.Gte{Column: col, Value: f.Value}
	case OpLt:
		return clause.Lt{Column: col, Value: f.Value}
	default:
		return clause.Eq{Column: col, Value: f.Value}
	}
}

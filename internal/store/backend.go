package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// ErrDuplicate is returned by the local backend when an insert or update
// collides on a unique column. The remote backend reports gorm.ErrDuplicatedKey instead.
var ErrDuplicate = errors.New("duplicate value for unique column")

// IsDuplicate reports a unique-constraint violation from either backend.
func IsDuplicate(err error) bool {
	if errors.Is(err, ErrDuplicate) || errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// Record is implemented by every persisted model.
type Record interface {
	RecordID() string
	// Value returns the field stored under the given snake_case column.
	Value(column string) any
}

// Collection names where one record type lives in each backend.
type Collection struct {
	Table  string   // remote SQL table
	Slot   string   // local KV slot
	Unique []string // columns enforced unique by the local backend
}

// Table is the CRUD surface repositories are written against.
// Single-record lookups return (nil, nil) when nothing matches.
type Table[T Record] interface {
	Get(ctx context.Context, id string) (*T, error)
	First(ctx context.Context, q Query) (*T, error)
	Find(ctx context.Context, q Query) ([]T, error)
	Count(ctx context.Context, filters ...Filter) (int64, error)
	Insert(ctx context.Context, recs ...*T) error
	// Update applies mutate to the stored record. Returns (nil, nil) if id is absent.
	Update(ctx context.Context, id string, mutate func(*T)) (*T, error)
	// UpdateIf is Update restricted to a record that still matches every guard
	// filter. The remote backend holds a row lock from the read to the write.
	// Returns (nil, nil) if id is absent or a guard fails.
	UpdateIf(ctx context.Context, id string, guard []Filter, mutate func(*T)) (*T, error)
	// Delete removes every matching record; no filters deletes the whole collection.
	Delete(ctx context.Context, filters ...Filter) (int64, error)
}

// Backend is either a *LocalBackend or a *RemoteBackend.
type Backend interface {
	Name() string
	// Transact runs fn as one unit of work. Every Table call made with the ctx
	// passed to fn joins it; an error from fn undoes all of its writes.
	Transact(ctx context.Context, fn func(ctx context.Context) error) error
	Ping(ctx context.Context) error
	Close() error

	sealed()
}

// NewTable binds a collection to the given backend.
func NewTable[T Record](b Backend, c Collection) Table[T] {
	switch be := b.(type) {
	case *LocalBackend:
		return newLocalTable[T](be, c)
	case *RemoteBackend:
		return newRemoteTable[T](be, c)
	default:
		panic(fmt.Sprintf("store: unsupported backend %T", b))
	}
}

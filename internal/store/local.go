package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/ikkim/flyer-backend/pkg/logger"
)

// LocalBackend keeps every collection as one JSON list per KV slot. Each write
// reads the whole list, changes it in memory and writes it back under a
// process-wide write lock.
type LocalBackend struct {
	kv KV
	mu sync.RWMutex
}

func NewLocalBackend(kv KV) *LocalBackend {
	return &LocalBackend{kv: kv}
}

func (b *LocalBackend) sealed()      {}
func (b *LocalBackend) Name() string { return "local" }

func (b *LocalBackend) Ping(ctx context.Context) error {
	_, err := b.kv.Get(ctx, "flyer_ping")
	return err
}

func (b *LocalBackend) Close() error {
	return b.kv.Close()
}

type localTxKey struct{}

// localTx records the pre-transaction contents of every slot written inside it.
type localTx struct {
	backend   *LocalBackend
	snapshots map[string][]byte
}

func (b *LocalBackend) txFrom(ctx context.Context) *localTx {
	tx, ok := ctx.Value(localTxKey{}).(*localTx)
	if !ok || tx.backend != b {
		return nil
	}
	return tx
}

func (b *LocalBackend) Transact(ctx context.Context, fn func(ctx context.Context) error) error {
	if b.txFrom(ctx) != nil {
		return fn(ctx)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	tx := &localTx{backend: b, snapshots: make(map[string][]byte)}
	err := fn(context.WithValue(ctx, localTxKey{}, tx))
	if err == nil {
		return nil
	}

	for slot, raw := range tx.snapshots {
		var rerr error
		if raw == nil {
			rerr = b.kv.Delete(ctx, slot)
		} else {
			rerr = b.kv.Put(ctx, slot, raw)
		}
		if rerr != nil {
			logger.Error("Failed to restore slot after aborted transaction", rerr, map[string]interface{}{
				"slot": slot,
			})
		}
	}
	return err
}

// readLock and writeLock are no-ops inside Transact, which already holds the write lock.
func (b *LocalBackend) readLock(ctx context.Context) func() {
	if b.txFrom(ctx) != nil {
		return func() {}
	}
	b.mu.RLock()
	return b.mu.RUnlock
}

func (b *LocalBackend) writeLock(ctx context.Context) func() {
	if b.txFrom(ctx) != nil {
		return func() {}
	}
	b.mu.Lock()
	return b.mu.Unlock
}

type localTable[T Record] struct {
	b *LocalBackend
	c Collection
}

func newLocalTable[T Record](b *LocalBackend, c Collection) *localTable[T] {
	return &localTable[T]{b: b, c: c}
}

// load reads the slot. A slot that fails to decode is treated as empty.
func (t *localTable[T]) load(ctx context.Context) ([]T, error) {
	raw, err := t.b.kv.Get(ctx, t.c.Slot)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	var rows []T
	if err := json.Unmarshal(raw, &rows); err != nil {
		logger.Warn("Discarding unreadable local slot", map[string]interface{}{
			"slot":  t.c.Slot,
			"error": err.Error(),
		})
		return nil, nil
	}
	return rows, nil
}

func (t *localTable[T]) save(ctx context.Context, rows []T) error {
	if tx := t.b.txFrom(ctx); tx != nil {
		if _, seen := tx.snapshots[t.c.Slot]; !seen {
			raw, err := t.b.kv.Get(ctx, t.c.Slot)
			if err != nil {
				return err
			}
			tx.snapshots[t.c.Slot] = raw
		}
	}
	if rows == nil {
		rows = []T{}
	}
	raw, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to encode slot %s: %w", t.c.Slot, err)
	}
	return t.b.kv.Put(ctx, t.c.Slot, raw)
}

func (t *localTable[T]) Get(ctx context.Context, id string) (*T, error) {
	return t.First(ctx, Where(Eq("id", id)))
}

func (t *localTable[T]) First(ctx context.Context, q Query) (*T, error) {
	rows, err := t.Find(ctx, q.Take(1))
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return &rows[0], nil
}

func (t *localTable[T]) Find(ctx context.Context, q Query) ([]T, error) {
	unlock := t.b.readLock(ctx)
	rows, err := t.load(ctx)
	unlock()
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(rows))
	for _, r := range rows {
		if matchesAll(r, q.Filters) {
			out = append(out, r)
		}
	}
	if len(q.Sorts) > 0 {
		sort.SliceStable(out, func(i, j int) bool {
			for _, s := range q.Sorts {
				c, _ := compareValues(out[i].Value(s.Column), out[j].Value(s.Column))
				if c == 0 {
					continue
				}
				if s.Desc {
					return c > 0
				}
				return c < 0
			}
			return false
		})
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (t *localTable[T]) Count(ctx context.Context, filters ...Filter) (int64, error) {
	rows, err := t.Find(ctx, Where(filters...))
	return int64(len(rows)), err
}

func (t *localTable[T]) Insert(ctx context.Context, recs ...*T) error {
	if len(recs) == 0 {
		return nil
	}
	unlock := t.b.writeLock(ctx)
	defer unlock()

	rows, err := t.load(ctx)
	if err != nil {
		return err
	}
	for _, rec := range recs {
		if err := t.checkUnique(rows, *rec, -1); err != nil {
			return err
		}
		rows = append(rows, *rec)
	}
	return t.save(ctx, rows)
}

// checkUnique compares rec against rows, skipping the row that holds rec itself.
func (t *localTable[T]) checkUnique(rows []T, rec T, skip int) error {
	columns := append([]string{"id"}, t.c.Unique...)
	for _, col := range columns {
		want := rec.Value(col)
		for i, r := range rows {
			if i == skip {
				continue
			}
			if c, ok := compareValues(r.Value(col), want); ok && c == 0 {
				return fmt.Errorf("%w: %s.%s", ErrDuplicate, t.c.Slot, col)
			}
		}
	}
	return nil
}

func (t *localTable[T]) Update(ctx context.Context, id string, mutate func(*T)) (*T, error) {
	return t.UpdateIf(ctx, id, nil, mutate)
}

func (t *localTable[T]) UpdateIf(ctx context.Context, id string, guard []Filter, mutate func(*T)) (*T, error) {
	unlock := t.b.writeLock(ctx)
	defer unlock()

	rows, err := t.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		if rows[i].RecordID() != id {
			continue
		}
		if !matchesAll(rows[i], guard) {
			return nil, nil
		}
		rec := rows[i]
		mutate(&rec)
		if err := t.checkUnique(rows, rec, i); err != nil {
			return nil, err
		}
		rows[i] = rec
		if err := t.save(ctx, rows); err != nil {
			return nil, err
		}
		return &rec, nil
	}
	return nil, nil
}

func (t *localTable[T]) Delete(ctx context.Context, filters ...Filter) (int64, error) {
	unlock := t.b.writeLock(ctx)
	defer unlock()

	rows, err := t.load(ctx)
	if err != nil {
		return 0, err
	}
	kept := rows[:0]
	for _, r := range rows {
		if !matchesAll(r, filters) {
			kept = append(kept, r)
		}
	}
	removed := int64(len(rows) - len(kept))
	if removed == 0 {
		return 0, nil
	}
	return removed, t.save(ctx, kept)
}

func matchesAll(r Record, filters []Filter) bool {
	for _, f := range filters {
		if !f.matches(r) {
			return false
		}
	}
	return true
}

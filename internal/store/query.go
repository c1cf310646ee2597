package store

import (
	"cmp"
	"reflect"
	"strings"
	"time"
)

type Op int

const (
	OpEq Op = iota
	OpNe
	OpIn
	OpPrefix
	OpGte
	OpLt
)

// Filter restricts a query on one column. Column names are the snake_case
// names shared by the SQL schema and Record.Value.
type Filter struct {
	Column string
	Op     Op
	Value  any
}

func Eq(column string, value any) Filter  { return Filter{Column: column, Op: OpEq, Value: value} }
func Ne(column string, value any) Filter  { return Filter{Column: column, Op: OpNe, Value: value} }
func Gte(column string, value any) Filter { return Filter{Column: column, Op: OpGte, Value: value} }
func Lt(column string, value any) Filter  { return Filter{Column: column, Op: OpLt, Value: value} }

func In(column string, values ...any) Filter {
	return Filter{Column: column, Op: OpIn, Value: values}
}

func HasPrefix(column, prefix string) Filter {
	return Filter{Column: column, Op: OpPrefix, Value: prefix}
}

type Sort struct {
	Column string
	Desc   bool
}

type Query struct {
	Filters []Filter
	Sorts   []Sort
	Limit   int
}

func Where(filters ...Filter) Query {
	return Query{Filters: filters}
}

func (q Query) OrderBy(column string) Query {
	q.Sorts = append(append([]Sort(nil), q.Sorts...), Sort{Column: column})
	return q
}

func (q Query) OrderByDesc(column string) Query {
	q.Sorts = append(append([]Sort(nil), q.Sorts...), Sort{Column: column, Desc: true})
	return q
}

func (q Query) Take(n int) Query {
	q.Limit = n
	return q
}

// matches evaluates a filter against a record in memory.
func (f Filter) matches(r Record) bool {
	got := r.Value(f.Column)
	switch f.Op {
	case OpEq:
		c, ok := compareValues(got, f.Value)
		return ok && c == 0
	case OpNe:
		c, ok := compareValues(got, f.Value)
		return !ok || c != 0
	case OpIn:
		for _, v := range f.Value.([]any) {
			if c, ok := compareValues(got, v); ok && c == 0 {
				return true
			}
		}
		return false
	case OpPrefix:
		s, ok := got.(string)
		p, _ := f.Value.(string)
		return ok && strings.HasPrefix(s, p)
	case OpGte:
		c, ok := compareValues(got, f.Value)
		return ok && c >= 0
	case OpLt:
		c, ok := compareValues(got, f.Value)
		return ok && c < 0
	}
	return false
}

// compareValues orders two column values of the same kind. ok is false when
// the values are not comparable (different kinds or nil).
func compareValues(a, b any) (int, bool) {
	a, b = deref(a), deref(b)
	if a == nil || b == nil {
		return 0, a == nil && b == nil
	}
	switch x := a.(type) {
	case string:
		y, ok := b.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(x, y), true
	case bool:
		y, ok := b.(bool)
		if !ok {
			return 0, false
		}
		switch {
		case x == y:
			return 0, true
		case !x:
			return -1, true
		default:
			return 1, true
		}
	case time.Time:
		y, ok := b.(time.Time)
		if !ok {
			return 0, false
		}
		return x.Compare(y), true
	case float64:
		y, ok := toFloat(b)
		if !ok {
			return 0, false
		}
		return cmp.Compare(x, y), true
	}
	if x, ok := toInt(a); ok {
		if y, ok := toInt(b); ok {
			return cmp.Compare(x, y), true
		}
		if y, ok := toFloat(b); ok {
			return cmp.Compare(float64(x), y), true
		}
	}
	return 0, false
}

func deref(v any) any {
	switch p := v.(type) {
	case *string:
		if p == nil {
			return nil
		}
		return *p
	case *time.Time:
		if p == nil {
			return nil
		}
		return *p
	}
	// named string types such as status enums
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.String {
		return rv.String()
	}
	return v
}

func toInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	if n, ok := toInt(v); ok {
		return float64(n), true
	}
	f, ok := v.(float64)
	return f, ok
}

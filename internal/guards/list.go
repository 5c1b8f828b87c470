package guards

import (
	"github.com/seb-luk/olo-platform/internal/models"
)

// ListOf lifts an item guard into a list guard. The returned guard is false for
// anything that is not a list and otherwise true iff every element satisfies
// item. It stops at the first failing element. An empty list always passes.
//
//	isNumberList := guards.ListOf(guards.IsNumber)
//	isNumberList([]any{1, 2, 3})   // true
//	isNumberList([]any{1, "2", 3}) // false
//	isNumberList([]any{})          // true
func ListOf(item Guard) Guard {
	return func(v any) bool {
		switch xs := v.(type) {
		case []any:
			return all(xs, item)
		case models.JSONArray:
			return allValues(xs, item)
		}

		rv, ok := indirect(v)
		if !ok || kindOfValue(rv) != models.List {
			return false
		}
		for i := range rv.Len() {
			if !item(rv.Index(i).Interface()) {
				return false
			}
		}
		return true
	}
}

func all(xs []any, item Guard) bool {
	if xs == nil {
		return false
	}
	for _, x := range xs {
		if !item(x) {
			return false
		}
	}
	return true
}

func allValues(xs models.JSONArray, item Guard) bool {
	if xs == nil {
		return false
	}
	for _, x := range xs {
		if !item(x) {
			return false
		}
	}
	return true
}

// TypedGuard is a guard that also narrows: on success it returns v as a T.
type TypedGuard[T any] func(v any) (T, bool)

// As returns a TypedGuard that succeeds when v holds a T.
func As[T any]() TypedGuard[T] {
	return func(v any) (T, bool) {
		t, ok := v.(T)
		return t, ok
	}
}

// Guard drops the narrowed value and keeps the verdict.
func (g TypedGuard[T]) Guard() Guard {
	return func(v any) bool {
		_, ok := g(v)
		return ok
	}
}

// ListTypeGuard is the narrowing form of ListOf. On success it returns the
// elements of v converted by item, in order.
func ListTypeGuard[T any](item TypedGuard[T]) TypedGuard[[]T] {
	return func(v any) ([]T, bool) {
		rv, ok := indirect(v)
		if !ok || kindOfValue(rv) != models.List {
			return nil, false
		}
		out := make([]T, 0, rv.Len())
		for i := range rv.Len() {
			t, ok := item(rv.Index(i).Interface())
			if !ok {
				return nil, false
			}
			out = append(out, t)
		}
		return out, true
	}
}

package guards

import (
	"reflect"
	"sort"

	"github.com/seb-luk/olo-platform/internal/models"
	"github.com/seb-luk/olo-platform/internal/strs"
)

// Node is one value reached by Walk.
type Node struct {
	Path  strs.Path
	Value any
	Kind  models.Kind
	// Cycle is set when the value is a map or list already on the path from
	// the root. Its children are not visited again.
	Cycle bool
}

// Walk visits v and, depth first, every value nested in its maps and lists.
// Map entries are visited in key order; struct fields are not visited.
// Returning false from visit skips the node's children.
func Walk(v any, root strs.Path, visit func(Node) bool) {
	w := walker{visit: visit, visiting: make(map[uintptr]struct{})}
	w.walk(v, root)
}

type walker struct {
	visit    func(Node) bool
	visiting map[uintptr]struct{}
}

func (w *walker) walk(v any, path strs.Path) {
	node := Node{Path: path, Value: v, Kind: KindOf(v)}
	if node.Kind != models.Map && node.Kind != models.List {
		w.visit(node)
		return
	}

	rv, _ := indirect(v)
	if rv.Kind() == reflect.Map || (rv.Kind() == reflect.Slice && rv.Len() > 0) {
		ptr := rv.Pointer()
		if _, seen := w.visiting[ptr]; seen {
			node.Cycle = true
			w.visit(node)
			return
		}
		w.visiting[ptr] = struct{}{}
		defer delete(w.visiting, ptr)
	}

	if !w.visit(node) {
		return
	}

	switch rv.Kind() {
	case reflect.Map:
		entries := make([]mapEntry, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			key := iter.Key()
			if key.Kind() == reflect.Interface {
				key = key.Elem()
			}
			entries = append(entries, mapEntry{key: key.String(), value: iter.Value().Interface()})
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })
		for _, e := range entries {
			w.walk(e.value, path.Child(e.key))
		}
	case reflect.Slice, reflect.Array:
		for i := range rv.Len() {
			w.walk(rv.Index(i).Interface(), path.Index(i))
		}
	}
}

type mapEntry struct {
	key   string
	value any
}

// Reason describes why v is not data, or returns "" when it is.
func Reason(v any) string {
	if KindOf(v) != models.Invalid {
		return ""
	}
	rv, ok, cycle := deref(v)
	if cycle {
		return "cyclic pointer"
	}
	if !ok {
		return "null value"
	}
	switch rv.Kind() {
	case reflect.Map:
		if rv.IsNil() {
			return "null value"
		}
		return "map with non-text keys"
	case reflect.Slice:
		return "null value"
	case reflect.Func:
		return "function"
	case reflect.Chan:
		return "channel"
	case reflect.Complex64, reflect.Complex128:
		return "complex number"
	default:
		return "unsupported type " + rv.Type().String()
	}
}

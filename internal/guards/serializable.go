package guards

import (
	"math"
	"reflect"

	"github.com/seb-luk/olo-platform/internal/models"
)

// IsSerializable reports whether v is a map that survives a JSON round trip
// unchanged. Every value, at any depth, must be nil, text, a finite number, a
// boolean, another serializable map, or a list of those. Lists may not nest
// directly inside lists. Dates, structs, funcs and cyclic values are rejected.
//
// Unlike IsJsData this walks the whole value.
func IsSerializable(v any) bool {
	return isSerializableMap(v, make(map[uintptr]struct{}))
}

func isSerializableMap(v any, visiting map[uintptr]struct{}) bool {
	rv, ok := indirect(v)
	if !ok || rv.Kind() != reflect.Map || kindOfValue(rv) != models.Map {
		return false
	}

	ptr := rv.Pointer()
	if _, seen := visiting[ptr]; seen {
		return false
	}
	visiting[ptr] = struct{}{}
	defer delete(visiting, ptr)

	iter := rv.MapRange()
	for iter.Next() {
		if !isSerializableValue(iter.Value().Interface(), true, visiting) {
			return false
		}
	}
	return true
}

func isSerializableValue(v any, allowList bool, visiting map[uintptr]struct{}) bool {
	if _, ok, cycle := deref(v); !ok {
		// absent, unless it is a pointer loop
		return !cycle
	}
	switch {
	case IsDate(v):
		return false
	case IsString(v), IsBool(v):
		return true
	case IsNumber(v):
		return isFinite(v)
	}

	switch KindOf(v) {
	case models.Map:
		return isSerializableMap(v, visiting)
	case models.List:
		if !allowList {
			return false
		}
		rv, _ := indirect(v)
		if rv.Len() == 0 {
			return true
		}
		if rv.Kind() == reflect.Slice {
			ptr := rv.Pointer()
			if _, seen := visiting[ptr]; seen {
				return false
			}
			visiting[ptr] = struct{}{}
			defer delete(visiting, ptr)
		}
		for i := range rv.Len() {
			if !isSerializableValue(rv.Index(i).Interface(), false, visiting) {
				return false
			}
		}
		return true
	}
	return false
}

func isFinite(v any) bool {
	rv, _ := indirect(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	}
	return true
}

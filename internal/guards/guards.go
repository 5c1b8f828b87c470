// Package guards classifies loosely-typed values (anything decoded from JSON or
// YAML into interface{}) as primitives, maps, or lists.
//
// Every guard is total: no input, including nil, typed nil pointers, funcs or
// channels, makes a guard panic. Guards hold no state and are safe for
// concurrent use.
package guards

import (
	"encoding/json"
	"reflect"
	"time"

	"github.com/seb-luk/olo-platform/internal/models"
)

// Guard reports whether a value has a given shape.
type Guard func(v any) bool

var (
	timeType   = reflect.TypeOf(time.Time{})
	numberType = reflect.TypeOf(json.Number(""))
)

// indirect follows pointers and interfaces down to a concrete value.
// It returns false for nil, for nil pointers along the way, and for pointer
// chains that loop back on themselves.
func indirect(v any) (reflect.Value, bool) {
	rv, ok, _ := deref(v)
	return rv, ok
}

// deref is indirect that also reports whether it stopped at a pointer cycle.
func deref(v any) (rv reflect.Value, ok bool, cycle bool) {
	if v == nil {
		return reflect.Value{}, false, false
	}
	rv = reflect.ValueOf(v)
	var seen map[uintptr]struct{}
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return reflect.Value{}, false, false
		}
		if rv.Kind() == reflect.Pointer {
			ptr := rv.Pointer()
			if _, loop := seen[ptr]; loop {
				return reflect.Value{}, false, true
			}
			if seen == nil {
				seen = make(map[uintptr]struct{})
			}
			seen[ptr] = struct{}{}
		}
		rv = rv.Elem()
	}
	return rv, true, false
}

// KindOf is the one place that inspects a value's runtime representation.
// It returns the variant the value belongs to, or models.Invalid when the value
// is none of them.
func KindOf(v any) models.Kind {
	rv, ok := indirect(v)
	if !ok {
		return models.Invalid
	}
	return kindOfValue(rv)
}

func kindOfValue(rv reflect.Value) models.Kind {
	if rv.Type() == timeType {
		return models.Primitive
	}

	switch rv.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return models.Primitive
	case reflect.Map:
		if rv.IsNil() || !hasTextKeys(rv) {
			return models.Invalid
		}
		return models.Map
	case reflect.Struct:
		// Field names are the keys.
		return models.Map
	case reflect.Slice:
		if rv.IsNil() {
			return models.Invalid
		}
		return models.List
	case reflect.Array:
		return models.List
	default:
		// Func, Chan, Complex, Uintptr, UnsafePointer
		return models.Invalid
	}
}

// hasTextKeys reports whether every key of the map is a string. Maps keyed by
// interface{} are checked key by key.
func hasTextKeys(rv reflect.Value) bool {
	switch rv.Type().Key().Kind() {
	case reflect.String:
		return true
	case reflect.Interface:
		iter := rv.MapRange()
		for iter.Next() {
			key := iter.Key()
			if key.IsNil() || key.Elem().Kind() != reflect.String {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// IsMapObject reports whether v is a keyed container whose keys are all text.
// Lists and dates are not map objects, even though both are containers.
func IsMapObject(v any) bool {
	return KindOf(v) == models.Map
}

// IsJsProperty reports whether v is a string, number, boolean or time.Time.
func IsJsProperty(v any) bool {
	return KindOf(v) == models.Primitive
}

// IsJsMap reports whether v is a non-nil map object.
func IsJsMap(v any) bool {
	return v != nil && IsMapObject(v)
}

// IsJsList reports whether v is a slice or array. A map that only looks like a
// sequence (a "length" key and numeric keys) is not a list.
func IsJsList(v any) bool {
	return KindOf(v) == models.List
}

// IsJsData reports whether v is a primitive, a map object, or a list.
//
// The check is shallow: the contents of maps and lists are not examined, so a
// list holding a channel is still data. Use IsSerializable or walk the value
// yourself when nested contents matter.
func IsJsData(v any) bool {
	return IsJsProperty(v) || IsJsMap(v) || IsJsList(v)
}

// IsString reports whether v is text. json.Number is a number, not text.
func IsString(v any) bool {
	rv, ok := indirect(v)
	return ok && rv.Kind() == reflect.String && rv.Type() != numberType
}

// IsNumber reports whether v is an integer, a float, or a json.Number.
func IsNumber(v any) bool {
	rv, ok := indirect(v)
	if !ok {
		return false
	}
	if rv.Type() == numberType {
		return true
	}
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// IsBool reports whether v is a boolean.
func IsBool(v any) bool {
	rv, ok := indirect(v)
	return ok && rv.Kind() == reflect.Bool
}

// IsDate reports whether v is a time.Time.
func IsDate(v any) bool {
	rv, ok := indirect(v)
	return ok && rv.Type() == timeType
}

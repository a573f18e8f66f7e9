// Package orderby applies a derived ordering-key sequence to a record
// collection: a generic, stable multi-key sort. It is the host
// list-ordering function the sort-state controller delegates actual
// comparison to.
package orderby

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"

	"github.com/tablekit/sortstate/pkg/sortstate"
)

// Getter extracts the value of a named field from a record.
type Getter[T any] func(record T, field string) any

// MapGetter extracts field values from map-backed rows, the shape JSON
// collections decode into.
func MapGetter(record map[string]any, field string) any {
	return record[field]
}

// StructGetter builds a Getter for struct records. Fields are matched by
// json tag when present, otherwise by the lowercased Go field name.
// Pointer fields are dereferenced; nil pointers read as nil.
func StructGetter[T any]() Getter[T] {
	t := reflect.TypeOf((*T)(nil)).Elem()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	index := make(map[string][]int, t.NumField())
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			name := strings.ToLower(f.Name)
			if tag, ok := f.Tag.Lookup("json"); ok {
				if tagName, _, _ := strings.Cut(tag, ","); tagName != "" && tagName != "-" {
					name = tagName
				}
			}
			index[name] = f.Index
		}
	}
	return func(record T, field string) any {
		fieldIndex, ok := index[field]
		if !ok {
			return nil
		}
		v := reflect.ValueOf(record)
		for v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return nil
			}
			v = v.Elem()
		}
		fv := v.FieldByIndex(fieldIndex)
		for fv.Kind() == reflect.Pointer {
			if fv.IsNil() {
				return nil
			}
			fv = fv.Elem()
		}
		return fv.Interface()
	}
}

// Sort stably orders records in place according to the flattened key
// sequence. Classifier keys push null, empty-string, and not-a-number
// values to the end regardless of the following field key's direction;
// field keys compare values ascending or descending. Records equal under
// every key keep their relative order.
func Sort[T any](records []T, keys []sortstate.Key, get Getter[T]) {
	if len(keys) == 0 {
		return
	}
	sort.SliceStable(records, func(i, j int) bool {
		return less(records[i], records[j], keys, get)
	})
}

func less[T any](a, b T, keys []sortstate.Key, get Getter[T]) bool {
	for _, k := range keys {
		av, bv := get(a, k.Field), get(b, k.Field)
		switch k.Kind {
		case sortstate.KindNullsLast:
			la, lb := PushToEnd(av), PushToEnd(bv)
			if la != lb {
				// Classifier keys are ascending: false before true.
				return !la
			}
		case sortstate.KindField:
			cmp := compare(av, bv)
			if cmp != 0 {
				if k.Order == sortstate.Descending {
					return cmp > 0
				}
				return cmp < 0
			}
		}
	}
	return false
}

// PushToEnd is the classifier behind KindNullsLast keys: true for nil
// values, empty strings, NaN floats, and nil pointers/interfaces, false
// otherwise.
func PushToEnd(v any) bool {
	if v == nil {
		return true
	}
	switch x := v.(type) {
	case string:
		return x == ""
	case float64:
		return math.IsNaN(x)
	case float32:
		return math.IsNaN(float64(x))
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return rv.IsNil()
	}
	return false
}

// compare orders two field values: numerically when both sides are
// numeric, lexically for strings, false-before-true for bools, and by
// string form otherwise. Returns -1, 0, or 1.
func compare(a, b any) int {
	if af, aok := asFloat(a); aok {
		if bf, bok := asFloat(b); bok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}
	if as, aok := a.(string); aok {
		if bs, bok := b.(string); bok {
			return strings.Compare(as, bs)
		}
	}
	if ab, aok := a.(bool); aok {
		if bb, bok := b.(bool); bok {
			switch {
			case !ab && bb:
				return -1
			case ab && !bb:
				return 1
			default:
				return 0
			}
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func asFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}

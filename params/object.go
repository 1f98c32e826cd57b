package params

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
	"sync"
)

// ErrUnsupportedParams is returned when a parameter object is neither a
// struct, a map keyed by string, nor a *Bag.
var ErrUnsupportedParams = errors.New("params: value must be struct, map with string keys or *Bag")

// field is one bindable struct field: its parameter name and index path.
type field struct {
	name  string
	index []int
}

// fieldPlans caches the bindable fields per struct type.
var fieldPlans sync.Map // reflect.Type -> []field

// AddObject merges the named values held by obj into b.
//
// Accepted shapes:
//   - nil: no-op
//   - *Bag or Bag: merged pair by pair
//   - map[string]V (any V): every entry, in key order
//   - struct or pointer to struct: exported fields, named by the `db` tag
//     when present, otherwise by the field name. `db:"-"` skips a field and
//     embedded structs are flattened.
//
// Names already present in b are overwritten.
func (b *Bag) AddObject(obj any) error {
	switch v := obj.(type) {
	case nil:
		return nil
	case *Bag:
		b.Merge(v)
		return nil
	case Bag:
		b.Merge(&v)
		return nil
	case map[string]any:
		for _, name := range slices.Sorted(maps.Keys(v)) {
			b.Set(name, v[name])
		}
		return nil
	}

	rv := reflect.ValueOf(obj)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("%w: got %s", ErrUnsupportedParams, rv.Type())
		}
		keys := rv.MapKeys()
		slices.SortFunc(keys, func(x, y reflect.Value) int {
			return strings.Compare(x.String(), y.String())
		})
		for _, k := range keys {
			b.Set(k.String(), rv.MapIndex(k).Interface())
		}
		return nil
	case reflect.Struct:
		for _, f := range structFields(rv.Type()) {
			fv, err := rv.FieldByIndexErr(f.index)
			if err != nil || !fv.CanInterface() {
				// nil embedded pointer, or reached through an unexported one
				continue
			}
			b.Set(f.name, fv.Interface())
		}
		return nil
	default:
		return fmt.Errorf("%w: got %s", ErrUnsupportedParams, rv.Type())
	}
}

func structFields(t reflect.Type) []field {
	if cached, ok := fieldPlans.Load(t); ok {
		return cached.([]field)
	}
	fields := collectFields(t, nil)
	actual, _ := fieldPlans.LoadOrStore(t, fields)
	return actual.([]field)
}

func collectFields(t reflect.Type, parent []int) []field {
	var out []field
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" && !f.Anonymous {
			continue
		}

		index := make([]int, len(parent)+1)
		copy(index, parent)
		index[len(parent)] = i

		tag, _, _ := strings.Cut(f.Tag.Get("db"), ",")
		if tag == "-" {
			continue
		}

		if f.Anonymous && tag == "" {
			ft := f.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				out = append(out, collectFields(ft, index)...)
				continue
			}
			if f.PkgPath != "" {
				continue
			}
		}

		name := tag
		if name == "" {
			name = f.Name
		}
		out = append(out, field{name: name, index: index})
	}
	return out
}

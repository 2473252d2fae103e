package gridview

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"
)

// deriveView is the pure filter-then-sort pipeline. It never mutates src:
// the result is built from a fresh slice so callers can hold earlier
// derivations as snapshots.
//
// filters apply as an unordered conjunction — a row survives only if every
// non-nil predicate accepts it. sorting is stable, so rows with equal keys
// keep their filtered-order positions.
func deriveView[T any](src []T, filters map[string]Predicate[T], sort SortSpec, value func(T, string) any) []T {
	out := make([]T, 0, len(src))
	for _, row := range src {
		if matchesAll(row, filters) {
			out = append(out, row)
		}
	}
	if sort.Field != "" {
		slices.SortStableFunc(out, func(a, b T) int {
			c := compareValues(value(a, sort.Field), value(b, sort.Field))
			if sort.Dir == Descending {
				c = -c
			}
			return c
		})
	}
	return out
}

func matchesAll[T any](row T, filters map[string]Predicate[T]) bool {
	for _, keep := range filters {
		if keep == nil {
			continue
		}
		if !keep(row) {
			return false
		}
	}
	return true
}

// compareValues is a three-way comparator over loosely-typed field values,
// handling strings, bools, times and numeric types natively and falling
// back to string comparison. nil (missing field) sorts before everything.
// mixed-type operands land in the fallback — ordering among them is
// arbitrary but total, so sorting never panics or drops rows.
func compareValues(a, b any) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}

	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return strings.Compare(av, bv)
		}
	case bool:
		if bv, ok := b.(bool); ok {
			switch {
			case av == bv:
				return 0
			case !av:
				return -1
			default:
				return 1
			}
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv)
		}
	case time.Duration:
		if bv, ok := b.(time.Duration); ok {
			return cmp.Compare(av, bv)
		}
	}

	if af, ok := toFloat64(a); ok {
		if bf, ok := toFloat64(b); ok {
			return cmp.Compare(af, bf)
		}
	}

	// fallback: compare string representations
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

// toFloat64 converts common numeric types to float64.
func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

// reflectField pulls the named exported field out of a struct row (or a
// pointer to one). Anything unresolvable — nil pointer, non-struct row,
// unknown field — yields nil, which the comparator treats as
// sorts-first rather than an error.
func reflectField(row any, field string) any {
	rv := reflect.ValueOf(row)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}
	f := rv.FieldByName(field)
	if !f.IsValid() || !f.CanInterface() {
		return nil
	}
	return f.Interface()
}

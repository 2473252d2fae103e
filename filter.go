package gridview

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// FilterFactory builds a row predicate from the raw text of a column's
// filter input. Column.Filter takes one of these; the canned factories
// below cover the common cases, or bring your own.
type FilterFactory[T any] func(input string) Predicate[T]

// TextContains matches rows whose extracted text contains the input,
// case-insensitively.
func TextContains[T any](get func(T) string) FilterFactory[T] {
	return func(input string) Predicate[T] {
		q := strings.ToLower(input)
		return func(row T) bool {
			return strings.Contains(strings.ToLower(get(row)), q)
		}
	}
}

// TextPrefix matches rows whose extracted text starts with the input,
// case-insensitively.
func TextPrefix[T any](get func(T) string) FilterFactory[T] {
	return func(input string) Predicate[T] {
		q := strings.ToLower(input)
		return func(row T) bool {
			return strings.HasPrefix(strings.ToLower(get(row)), q)
		}
	}
}

// Fuzzy matches rows whose extracted text contains the input or sits
// within maxDist edits of it, so a typo'd query still finds its row.
// substring is checked first — the distance pass only runs on misses.
func Fuzzy[T any](get func(T) string, maxDist int) FilterFactory[T] {
	return func(input string) Predicate[T] {
		q := strings.ToLower(input)
		return func(row T) bool {
			text := strings.ToLower(get(row))
			if strings.Contains(text, q) {
				return true
			}
			return levenshtein.ComputeDistance(text, q) <= maxDist
		}
	}
}

// Equals matches rows whose extracted text equals the input exactly.
func Equals[T any](get func(T) string) FilterFactory[T] {
	return func(input string) Predicate[T] {
		return func(row T) bool {
			return get(row) == input
		}
	}
}

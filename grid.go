// Package gridview is a compound-component data grid for terminal UIs.
// a Grid owns the view state (filters, sort, selection) over a slice of
// consumer rows and derives the visible row list from it; Table and the
// slot renderers compose presentation around that state. no storage
// opinions — bring your own rows.
package gridview

import (
	"maps"
)

// Direction is a sort direction.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// SortSpec is the active sort field and direction.
// an empty Field means no sort is applied and filtered order is preserved.
type SortSpec struct {
	Field string
	Dir   Direction
}

// Predicate reports whether a row should remain visible.
type Predicate[T any] func(T) bool

// Grid is the view-state controller for a set of rows. It owns the filter
// registry, sort spec and selection set, exposes the mutation protocol the
// slot renderers call into, and memoizes the derived (filtered then sorted)
// row list.
//
// usage:
//
//	g := New(rows).
//	    RowKey(func(r Row) any { return r.ID }).
//	    DefaultSort("Name", Ascending)
//	g.SetFilter("Name", TextContains(func(r Row) string { return r.Name })("al"))
//	g.Rows() // derived view
type Grid[T any] struct {
	source  []T
	filters map[string]Predicate[T]
	sort    SortSpec

	// selection keyed by row identity; the map is replaced wholesale on
	// every toggle so snapshots taken by callers stay valid.
	selected map[any]T
	key      func(T) any

	accessors map[string]func(T) any

	derived []T
	dirty   bool

	onSort      func(SortSpec)
	onFilter    func(map[string]Predicate[T])
	onRowSelect func([]T)

	listeners []func(Event)
}

// New creates a grid over the given rows. The slice is not copied; call
// SetRows after mutating it externally.
func New[T any](rows []T) *Grid[T] {
	return &Grid[T]{
		source:   rows,
		filters:  map[string]Predicate[T]{},
		selected: map[any]T{},
		key:      func(row T) any { return row },
		dirty:    true,
	}
}

// DefaultSort seeds the sort spec without firing hooks or notifications.
func (g *Grid[T]) DefaultSort(field string, dir Direction) *Grid[T] {
	g.sort = SortSpec{Field: field, Dir: dir}
	g.dirty = true
	return g
}

// RowKey sets the identity function used to key the selection set.
// without it rows key themselves, which requires T to be comparable and
// breaks selection across data reloads that rebuild row values — supply a
// stable id for anything beyond static data.
func (g *Grid[T]) RowKey(fn func(T) any) *Grid[T] {
	g.key = fn
	return g
}

// Accessor registers a typed field accessor used by the sort comparator,
// bypassing reflection for the named field.
func (g *Grid[T]) Accessor(field string, fn func(T) any) *Grid[T] {
	if g.accessors == nil {
		g.accessors = map[string]func(T) any{}
	}
	g.accessors[field] = fn
	// an accessor for the active sort field changes how the memoized
	// view would order rows
	if g.sort.Field == field {
		g.dirty = true
	}
	return g
}

// OnSort sets a hook invoked synchronously after every SetSort.
func (g *Grid[T]) OnSort(fn func(SortSpec)) *Grid[T] {
	g.onSort = fn
	return g
}

// OnFilter sets a hook invoked synchronously after every SetFilter, with
// the new filter registry.
func (g *Grid[T]) OnFilter(fn func(map[string]Predicate[T])) *Grid[T] {
	g.onFilter = fn
	return g
}

// OnRowSelect sets a hook invoked synchronously after every ToggleSelect,
// with the selected rows in indeterminate order.
func (g *Grid[T]) OnRowSelect(fn func([]T)) *Grid[T] {
	g.onRowSelect = fn
	return g
}

// SetRows replaces the source rows. Selection is kept as-is: previously
// selected identities still count as selected if the new data produces the
// same keys.
func (g *Grid[T]) SetRows(rows []T) {
	g.source = rows
	g.dirty = true
	g.notify(Event{Type: EventRows})
}

// Source returns the unfiltered source rows.
func (g *Grid[T]) Source() []T {
	return g.source
}

// SetSort applies click-to-sort semantics for field: sorting an already
// ascending field flips it to descending, anything else sorts the field
// ascending.
func (g *Grid[T]) SetSort(field string) {
	if g.sort.Field == field && g.sort.Dir == Ascending {
		g.sort.Dir = Descending
	} else {
		g.sort = SortSpec{Field: field, Dir: Ascending}
	}
	g.dirty = true
	if g.onSort != nil {
		g.onSort(g.sort)
	}
	g.notify(Event{Type: EventSort})
}

// ClearSort removes the active sort, restoring filtered order.
func (g *Grid[T]) ClearSort() {
	g.sort = SortSpec{}
	g.dirty = true
	if g.onSort != nil {
		g.onSort(g.sort)
	}
	g.notify(Event{Type: EventSort})
}

// Sort returns the active sort spec.
func (g *Grid[T]) Sort() SortSpec {
	return g.sort
}

// SetFilter installs or replaces the predicate for field; a nil predicate
// removes it. The registry map is replaced rather than mutated so callers
// holding the previous map see a stable snapshot and identity comparison
// detects the change.
func (g *Grid[T]) SetFilter(field string, p Predicate[T]) {
	next := make(map[string]Predicate[T], len(g.filters)+1)
	maps.Copy(next, g.filters)
	if p == nil {
		delete(next, field)
	} else {
		next[field] = p
	}
	g.filters = next
	g.dirty = true
	if g.onFilter != nil {
		g.onFilter(next)
	}
	g.notify(Event{Type: EventFilter})
}

// Filters returns the active filter registry. Treat it as read-only.
func (g *Grid[T]) Filters() map[string]Predicate[T] {
	return g.filters
}

// ToggleSelect flips the row's presence in the selection set.
// selection is independent of filtering and sorting — a row filtered out
// of the derived view stays selected.
func (g *Grid[T]) ToggleSelect(row T) {
	k := g.key(row)
	next := make(map[any]T, len(g.selected)+1)
	maps.Copy(next, g.selected)
	if _, ok := next[k]; ok {
		delete(next, k)
	} else {
		next[k] = row
	}
	g.selected = next
	if g.onRowSelect != nil {
		g.onRowSelect(g.SelectedRows())
	}
	g.notify(Event{Type: EventSelection})
}

// Selected reports whether the row is currently selected.
func (g *Grid[T]) Selected(row T) bool {
	_, ok := g.selected[g.key(row)]
	return ok
}

// SelectedRows returns the selected rows in indeterminate order.
func (g *Grid[T]) SelectedRows() []T {
	out := make([]T, 0, len(g.selected))
	for _, row := range g.selected {
		out = append(out, row)
	}
	return out
}

// SelectionCount returns the number of selected rows.
func (g *Grid[T]) SelectionCount() int {
	return len(g.selected)
}

// Rows returns the derived view: source rows passing every active filter,
// ordered by the sort spec. The result is memoized — the same slice value
// comes back until rows, filters or sort change, so downstream renderers
// can compare by identity to skip work. Treat it as read-only.
func (g *Grid[T]) Rows() []T {
	if g.dirty {
		g.derived = deriveView(g.source, g.filters, g.sort, g.fieldValue)
		g.dirty = false
	}
	return g.derived
}

// fieldValue resolves a sort field against a row: registered accessor
// first, reflection over exported struct fields otherwise.
func (g *Grid[T]) fieldValue(row T, field string) any {
	if fn, ok := g.accessors[field]; ok {
		return fn(row)
	}
	return reflectField(row, field)
}

package gridview

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Align sets horizontal alignment within a cell.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
	AlignCenter
)

// Column is the per-column slot configuration: which field it shows, how
// the cell text is produced, and which interactions (sort, filter) the
// column participates in. Columns hold no view state — that lives on the
// Grid — so a Column value can be shared between tables over the same
// row type.
//
//	Col[Stock]("Price").Title("Price ($)").Sortable().
//	    Format(FormatCurrency("$", 2)).Align(AlignRight)
type Column[T any] struct {
	field    string
	title    string
	sortable bool
	filter   FilterFactory[T]
	value    func(T) any
	format   func(any) string
	style    func(any) lipgloss.Style
	width    int
	align    Align
}

// Col creates a column for the named row field. The field name doubles as
// the default header title and as the key passed to the grid's sort and
// filter operations.
func Col[T any](field string) *Column[T] {
	return &Column[T]{field: field, title: field}
}

// Title sets a custom header label.
func (c *Column[T]) Title(s string) *Column[T] { c.title = s; return c }

// Sortable marks the column as a sort target: clicking its header (or
// pressing the sort key with it focused) calls Grid.SetSort.
func (c *Column[T]) Sortable() *Column[T] { c.sortable = true; return c }

// Filter installs the factory that turns this column's filter input text
// into a row predicate. A column without a factory has no filter input.
func (c *Column[T]) Filter(fn FilterFactory[T]) *Column[T] { c.filter = fn; return c }

// Value sets a typed accessor for the column's cell value, bypassing
// reflection. Also registered on the grid for sorting when the column is
// attached to a table.
func (c *Column[T]) Value(fn func(T) any) *Column[T] { c.value = fn; return c }

// Format sets the function converting the field value to display text.
func (c *Column[T]) Format(fn func(any) string) *Column[T] { c.format = fn; return c }

// CellStyle sets a per-cell style based on the field value.
func (c *Column[T]) CellStyle(fn func(any) lipgloss.Style) *Column[T] { c.style = fn; return c }

// Width fixes the column width. Zero (the default) auto-sizes from the
// header and visible cell text.
func (c *Column[T]) Width(w int) *Column[T] { c.width = w; return c }

// Align sets cell alignment.
func (c *Column[T]) Align(a Align) *Column[T] { c.align = a; return c }

// Field returns the row field this column displays.
func (c *Column[T]) Field() string { return c.field }

// cellValue resolves the column's value for a row.
func (c *Column[T]) cellValue(row T) any {
	if c.value != nil {
		return c.value(row)
	}
	return reflectField(row, c.field)
}

// cellText resolves and formats the column's display text for a row.
func (c *Column[T]) cellText(row T) string {
	v := c.cellValue(row)
	if c.format != nil {
		return c.format(v)
	}
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// ----------------------------------------------------------------------------
// canned format presets
// ----------------------------------------------------------------------------

// FormatNumber renders numeric values with comma separators.
// decimals controls decimal places for floats (ignored for integers).
func FormatNumber(decimals int) func(any) string {
	return func(v any) string {
		return formatNumber(v, decimals)
	}
}

// FormatCurrency renders numeric values with a symbol prefix and comma
// separators - it is by no means a full internationalization solution,
// but it's a quick default.
func FormatCurrency(symbol string, decimals int) func(any) string {
	return func(v any) string {
		return symbol + formatNumber(v, decimals)
	}
}

// FormatPercent renders numeric values as percentages.
func FormatPercent(decimals int) func(any) string {
	return func(v any) string {
		f, _ := toFloat64(v)
		return strconv.FormatFloat(f, 'f', decimals, 64) + "%"
	}
}

// FormatBytes renders numeric values as human-readable byte sizes.
func FormatBytes() func(any) string {
	return func(v any) string {
		f, _ := toFloat64(v)
		return formatBytes(f)
	}
}

// FormatBool renders boolean values with custom labels.
func FormatBool(yes, no string) func(any) string {
	return func(v any) string {
		if b, ok := v.(bool); ok && b {
			return yes
		}
		return no
	}
}

// ----------------------------------------------------------------------------
// internal helpers
// ----------------------------------------------------------------------------

// formatNumber formats a numeric value with comma separators.
func formatNumber(v any, decimals int) string {
	f, _ := toFloat64(v)
	// format the number without commas first
	s := strconv.FormatFloat(f, 'f', decimals, 64)
	return insertCommas(s)
}

// insertCommas adds thousand separators to a numeric string.
func insertCommas(s string) string {
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}

	// split on decimal point
	integer, decimal, hasDecimal := strings.Cut(s, ".")

	// insert commas into integer part from right to left
	n := len(integer)
	if n <= 3 {
		// no commas needed
	} else {
		var b strings.Builder
		b.Grow(n + n/3)
		start := n % 3
		if start == 0 {
			start = 3
		}
		b.WriteString(integer[:start])
		for i := start; i < n; i += 3 {
			b.WriteByte(',')
			b.WriteString(integer[i : i+3])
		}
		integer = b.String()
	}

	var result string
	if hasDecimal {
		result = integer + "." + decimal
	} else {
		result = integer
	}

	if neg {
		return "-" + result
	}
	return result
}

// formatBytes converts a byte count to a human-readable string.
func formatBytes(b float64) string {
	if b < 0 {
		return "-" + formatBytes(-b)
	}

	units := []string{"B", "KB", "MB", "GB", "TB", "PB"}
	if b < 1 {
		return "0 B"
	}

	exp := int(math.Log(b) / math.Log(1024))
	if exp >= len(units) {
		exp = len(units) - 1
	}

	val := b / math.Pow(1024, float64(exp))

	if exp == 0 {
		return fmt.Sprintf("%.0f %s", val, units[exp])
	}
	return fmt.Sprintf("%.1f %s", val, units[exp])
}

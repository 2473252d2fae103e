package gridview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
)

// Paginator is the pagination slot. It is an extension point only — the
// table ships no paging behavior — an installed Paginator contributes a
// status segment to the footer and receives no other calls.
type Paginator interface {
	Status(visible, total int) string
}

// Table is the compound grid widget: a bubbletea model that composes the
// slot renderers (header, filter inputs, body, rows, cells, footer) around
// a Grid's broadcast state. The table holds presentation state only
// (viewport, cursor, focus); every data mutation goes through the grid,
// and every frame re-reads it.
type Table[T any] struct {
	grid   *Grid[T]
	cols   []*Column[T]
	styles Styles

	width, height int
	cursor        int // cursor index into the derived view
	focusCol      int // column focus for keyboard sort/filter
	scroll        tableScroll

	inputs    []textinput.Model // parallel to cols, unused entries for filterless columns
	filtering bool

	footer    bool
	gap       int
	paginator Paginator
}

// NewTable builds a table over an existing grid and its column slots.
// The grid is the single source of truth shared by every slot; a nil grid
// is a programming error and panics immediately rather than failing at
// first render.
func NewTable[T any](grid *Grid[T], cols ...*Column[T]) *Table[T] {
	if grid == nil {
		panic("gridview: NewTable requires a non-nil Grid")
	}
	t := &Table[T]{
		grid:   grid,
		cols:   cols,
		styles: DefaultStyles(),
		footer: true,
		gap:    2,
		inputs: make([]textinput.Model, len(cols)),
	}
	for i, c := range cols {
		if c.value != nil {
			grid.Accessor(c.field, c.value)
		}
		if c.filter != nil {
			ti := textinput.New()
			ti.Prompt = ""
			ti.Placeholder = "filter"
			ti.CharLimit = 64
			t.inputs[i] = ti
		}
	}
	return t
}

// Styles overrides the default theme.
func (t *Table[T]) Styles(s Styles) *Table[T] { t.styles = s; return t }

// Footer toggles the summary line.
func (t *Table[T]) Footer(on bool) *Table[T] { t.footer = on; return t }

// Gap sets the spacing between columns.
func (t *Table[T]) Gap(g int) *Table[T] { t.gap = g; return t }

// Paginate installs a pagination slot.
func (t *Table[T]) Paginate(p Paginator) *Table[T] { t.paginator = p; return t }

// Grid returns the underlying view-state controller.
func (t *Table[T]) Grid() *Grid[T] { return t.grid }

// Filtering reports whether the table is in filter-edit mode, where
// printable keys feed the focused column's input. Hosts should suspend
// their own single-letter shortcuts while this is true.
func (t *Table[T]) Filtering() bool { return t.filtering }

// Cursor returns the cursor's index into the derived view, or -1 when the
// view is empty.
func (t *Table[T]) Cursor() int {
	rows := t.grid.Rows()
	if len(rows) == 0 {
		return -1
	}
	if t.cursor >= len(rows) {
		return len(rows) - 1
	}
	return t.cursor
}

// VisibleRange returns the derived-view index window the body slot will
// render, for callers wiring an external windowed renderer.
func (t *Table[T]) VisibleRange() (start, end int) {
	return t.scroll.visible(len(t.grid.Rows()))
}

// SetSize sets the table's outer dimensions directly (for embedding in a
// parent layout that already did the math).
func (t *Table[T]) SetSize(width, height int) {
	t.width = width
	t.height = height
	t.resize()
	t.scroll.clamp(len(t.grid.Rows()))
}

// Init implements tea.Model.
func (t *Table[T]) Init() tea.Cmd { return nil }

// Update implements tea.Model. Interaction events translate to grid
// mutations: header clicks and the sort key call SetSort, row clicks and
// space/enter call ToggleSelect, filter input edits call SetFilter.
func (t *Table[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		t.SetSize(msg.Width, msg.Height)
		return t, nil
	case tea.MouseMsg:
		return t, t.handleMouse(msg)
	case tea.KeyMsg:
		if t.filtering {
			return t, t.handleFilterKey(msg)
		}
		return t, t.handleKey(msg)
	}
	return t, nil
}

func (t *Table[T]) handleKey(msg tea.KeyMsg) tea.Cmd {
	rows := t.grid.Rows()
	switch msg.String() {
	case "j", "down":
		t.moveCursor(1)
	case "k", "up":
		t.moveCursor(-1)
	case "ctrl+d", "pgdown":
		t.moveCursor(t.scroll.maxVisible)
	case "ctrl+u", "pgup":
		t.moveCursor(-t.scroll.maxVisible)
	case "g", "home":
		t.cursor = 0
		t.scroll.follow(t.cursor, len(rows))
	case "G", "end":
		t.cursor = max(0, len(rows)-1)
		t.scroll.follow(t.cursor, len(rows))
	case "h", "left":
		t.moveFocus(-1)
	case "l", "right":
		t.moveFocus(1)
	case "s":
		if len(t.cols) == 0 {
			break
		}
		col := t.cols[t.focusCol]
		if col.sortable {
			t.grid.SetSort(col.field)
			t.afterViewChange()
		}
	case " ", "space", "enter":
		if i := t.Cursor(); i >= 0 {
			t.grid.ToggleSelect(rows[i])
		}
	case "/":
		return t.startFiltering()
	}
	return nil
}

func (t *Table[T]) handleFilterKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		t.stopFiltering()
		return nil
	case "enter":
		t.stopFiltering()
		return nil
	case "tab":
		return t.focusNextFilter(1)
	case "shift+tab":
		return t.focusNextFilter(-1)
	}

	ti, cmd := t.inputs[t.focusCol].Update(msg)
	t.inputs[t.focusCol] = ti
	t.applyFilterInput(t.focusCol)
	t.afterViewChange()
	return cmd
}

// applyFilterInput pushes one column's input text through its factory into
// the grid; empty text clears the field's predicate.
func (t *Table[T]) applyFilterInput(i int) {
	col := t.cols[i]
	if col.filter == nil {
		return
	}
	text := t.inputs[i].Value()
	if text == "" {
		t.grid.SetFilter(col.field, nil)
		return
	}
	t.grid.SetFilter(col.field, col.filter(text))
}

func (t *Table[T]) startFiltering() tea.Cmd {
	if len(t.cols) == 0 {
		return nil
	}
	start := t.focusCol
	if t.cols[start].filter == nil {
		next := t.nextFilterable(start, 1)
		if next < 0 {
			return nil // no filterable columns
		}
		t.focusCol = next
	}
	t.filtering = true
	t.resize()
	return t.inputs[t.focusCol].Focus()
}

func (t *Table[T]) stopFiltering() {
	t.inputs[t.focusCol].Blur()
	t.filtering = false
	t.resize()
	t.afterViewChange()
}

// resize recomputes the viewport height after chrome lines appear or
// disappear. A zero height means the table was never sized and the
// viewport stays unbounded.
func (t *Table[T]) resize() {
	if t.height <= 0 {
		return
	}
	t.scroll.maxVisible = max(1, t.height-t.chrome())
}

func (t *Table[T]) focusNextFilter(dir int) tea.Cmd {
	next := t.nextFilterable(t.focusCol, dir)
	if next < 0 || next == t.focusCol {
		return nil
	}
	t.inputs[t.focusCol].Blur()
	t.focusCol = next
	return t.inputs[t.focusCol].Focus()
}

// nextFilterable finds the next column with a filter factory, scanning in
// dir and wrapping. returns -1 if none exists.
func (t *Table[T]) nextFilterable(from, dir int) int {
	n := len(t.cols)
	for step := 1; step <= n; step++ {
		i := ((from+dir*step)%n + n) % n
		if t.cols[i].filter != nil {
			return i
		}
	}
	return -1
}

func (t *Table[T]) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		t.scroll.scrollUp(1)
		return nil
	case tea.MouseButtonWheelDown:
		t.scroll.scrollDown(1, len(t.grid.Rows()))
		return nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}

	if msg.Y == 0 {
		// header slot: click-to-sort
		if i := t.hitColumn(msg.X); i >= 0 {
			t.focusCol = i
			if t.cols[i].sortable {
				t.grid.SetSort(t.cols[i].field)
				t.afterViewChange()
			}
		}
		return nil
	}

	// body slot: click-to-select
	bodyTop := t.chrome() - t.footerLines()
	rows := t.grid.Rows()
	idx := t.scroll.offset + msg.Y - bodyTop
	if msg.Y >= bodyTop && idx >= 0 && idx < len(rows) {
		t.cursor = idx
		t.grid.ToggleSelect(rows[idx])
	}
	return nil
}

// hitColumn maps an x coordinate to a column index, or -1.
func (t *Table[T]) hitColumn(x int) int {
	widths := t.layout()
	pos := 2 // row marker gutter
	for i, w := range widths {
		if x >= pos && x < pos+w {
			return i
		}
		pos += w + t.gap
	}
	return -1
}

func (t *Table[T]) moveCursor(delta int) {
	rows := t.grid.Rows()
	t.cursor += delta
	if t.cursor < 0 {
		t.cursor = 0
	}
	if t.cursor >= len(rows) {
		t.cursor = max(0, len(rows)-1)
	}
	t.scroll.follow(t.cursor, len(rows))
}

func (t *Table[T]) moveFocus(dir int) {
	n := len(t.cols)
	if n == 0 {
		return
	}
	t.focusCol = ((t.focusCol+dir)%n + n) % n
}

// afterViewChange re-clamps cursor and viewport after the derived view may
// have shrunk or reordered.
func (t *Table[T]) afterViewChange() {
	rows := t.grid.Rows()
	if t.cursor >= len(rows) {
		t.cursor = max(0, len(rows)-1)
	}
	t.scroll.follow(t.cursor, len(rows))
}

// chrome counts non-body lines: header, optional filter line, footer.
func (t *Table[T]) chrome() int {
	n := 1 + t.footerLines()
	if t.filterLineVisible() {
		n++
	}
	return n
}

func (t *Table[T]) footerLines() int {
	if t.footer {
		return 1
	}
	return 0
}

func (t *Table[T]) filterLineVisible() bool {
	if t.filtering {
		return true
	}
	for i, c := range t.cols {
		if c.filter != nil && t.inputs[i].Value() != "" {
			return true
		}
	}
	return false
}

// ----------------------------------------------------------------------------
// slot renderers
// ----------------------------------------------------------------------------

// View implements tea.Model: header, filter line, body and footer slots
// stacked, all reading the grid's current state.
func (t *Table[T]) View() string {
	var b strings.Builder
	widths := t.layout()

	b.WriteString(t.headerView(widths))
	b.WriteByte('\n')
	if t.filterLineVisible() {
		b.WriteString(t.filterView())
		b.WriteByte('\n')
	}
	b.WriteString(t.bodyView(widths))
	if t.footer {
		b.WriteByte('\n')
		b.WriteString(t.footerView())
	}
	return b.String()
}

// layout computes column widths: fixed width if set, otherwise the widest
// of header title (plus sort indicator room) and cell text over the
// derived view.
func (t *Table[T]) layout() []int {
	rows := t.grid.Rows()
	widths := make([]int, len(t.cols))
	for i, c := range t.cols {
		if c.width > 0 {
			widths[i] = c.width
			continue
		}
		w := runewidth.StringWidth(c.title)
		if c.sortable {
			w += 2 // room for the direction indicator
		}
		for _, row := range rows {
			if cw := runewidth.StringWidth(c.cellText(row)); cw > w {
				w = cw
			}
		}
		widths[i] = w
	}
	return widths
}

// headerView renders the header slot: column titles with sort indicators.
func (t *Table[T]) headerView(widths []int) string {
	gap := strings.Repeat(" ", t.gap)
	cells := make([]string, len(t.cols))
	spec := t.grid.Sort()
	for i, c := range t.cols {
		title := c.title
		if c.sortable && spec.Field == c.field {
			ind := t.styles.SortAsc
			if spec.Dir == Descending {
				ind = t.styles.SortDesc
			}
			title += " " + ind
		}
		cells[i] = padCell(title, widths[i], c.align)
	}
	return t.styles.Header.Render("  " + strings.Join(cells, gap))
}

// filterView renders the filter input line: the focused column's live
// input plus the other columns' active filter text.
func (t *Table[T]) filterView() string {
	var parts []string
	for i, c := range t.cols {
		if c.filter == nil {
			continue
		}
		switch {
		case t.filtering && i == t.focusCol:
			parts = append(parts, fmt.Sprintf("%s: %s", c.title, t.inputs[i].View()))
		case t.inputs[i].Value() != "":
			parts = append(parts, fmt.Sprintf("[%s: %s]", c.title, t.inputs[i].Value()))
		}
	}
	return t.styles.FilterInput.Render("  " + strings.Join(parts, "  "))
}

// bodyView renders the body slot: one row slot per derived row inside the
// viewport window. rows outside the window don't render at all.
func (t *Table[T]) bodyView(widths []int) string {
	rows := t.grid.Rows()
	start, end := t.scroll.visible(len(rows))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, t.rowView(rows[i], i, widths))
	}
	if len(lines) == 0 {
		return t.styles.Muted.Render("  (no rows)")
	}
	return strings.Join(lines, "\n")
}

// rowView renders one row slot: selection gutter plus the cell slots,
// with selected and cursor styling layered on.
func (t *Table[T]) rowView(row T, index int, widths []int) string {
	gap := strings.Repeat(" ", t.gap)
	cells := make([]string, len(t.cols))
	for i, c := range t.cols {
		cells[i] = t.cellView(c, row, widths[i])
	}

	gutter := "  "
	selected := t.grid.Selected(row)
	if selected {
		gutter = t.styles.Selected + " "
	}
	line := gutter + strings.Join(cells, gap)

	switch {
	case index == t.cursor:
		return t.styles.CursorRow.Render(line)
	case selected:
		return t.styles.SelectedRow.Render(line)
	default:
		return line
	}
}

// cellView renders one cell slot: resolve, format, truncate, pad, style.
func (t *Table[T]) cellView(c *Column[T], row T, width int) string {
	text := c.cellText(row)
	text = runewidth.Truncate(text, width, "…")
	text = padCell(text, width, c.align)
	if c.style != nil {
		return c.style(c.cellValue(row)).Render(text)
	}
	return t.styles.Cell.Render(text)
}

// footerView renders the footer slot: a summary of the grid state.
func (t *Table[T]) footerView() string {
	rows := t.grid.Rows()
	total := len(t.grid.Source())
	parts := []string{fmt.Sprintf("%d/%d rows", len(rows), total)}

	if n := t.grid.SelectionCount(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d selected", n))
	}
	if spec := t.grid.Sort(); spec.Field != "" {
		ind := t.styles.SortAsc
		if spec.Dir == Descending {
			ind = t.styles.SortDesc
		}
		parts = append(parts, fmt.Sprintf("sort %s %s", spec.Field, ind))
	}
	if n := len(t.grid.Filters()); n > 0 {
		parts = append(parts, fmt.Sprintf("%d filters", n))
	}
	if t.paginator != nil {
		parts = append(parts, t.paginator.Status(len(rows), total))
	}
	return t.styles.Footer.Render("  " + strings.Join(parts, " · "))
}

// padCell pads text to width per the alignment. assumes text is already
// truncated to fit.
func padCell(text string, width int, align Align) string {
	pad := width - runewidth.StringWidth(text)
	if pad <= 0 {
		return text
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", pad) + text
	case AlignCenter:
		left := pad / 2
		return strings.Repeat(" ", left) + text + strings.Repeat(" ", pad-left)
	default:
		return text + strings.Repeat(" ", pad)
	}
}

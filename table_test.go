package gridview

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

func newTestTable() *Table[person] {
	rows := []person{
		{ID: 1, Name: "carol", Age: 41},
		{ID: 2, Name: "alice", Age: 25},
		{ID: 3, Name: "bob", Age: 33},
	}
	g := New(rows).RowKey(func(p person) any { return p.ID })
	return NewTable(g,
		Col[person]("Name").Sortable().Filter(TextContains(func(p person) string { return p.Name })),
		Col[person]("Age").Sortable().Align(AlignRight),
	)
}

func plainView(t *Table[person]) string {
	return ansi.Strip(t.View())
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewTableNilGridPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for nil grid")
		}
	}()
	NewTable[person](nil)
}

func TestTableViewComposesSlots(t *testing.T) {
	tbl := newTestTable()
	out := plainView(tbl)
	lines := strings.Split(out, "\n")

	t.Run("header slot shows titles", func(t *testing.T) {
		if !strings.Contains(lines[0], "Name") || !strings.Contains(lines[0], "Age") {
			t.Fatalf("header missing titles: %q", lines[0])
		}
	})

	t.Run("body slot shows every derived row in order", func(t *testing.T) {
		for i, name := range []string{"carol", "alice", "bob"} {
			if !strings.Contains(lines[1+i], name) {
				t.Fatalf("row %d missing %s: %q", i, name, lines[1+i])
			}
		}
	})

	t.Run("footer slot shows counts", func(t *testing.T) {
		last := lines[len(lines)-1]
		if !strings.Contains(last, "3/3 rows") {
			t.Fatalf("footer missing counts: %q", last)
		}
	})
}

func TestTableSortInteraction(t *testing.T) {
	tbl := newTestTable()

	t.Run("sort key sorts the focused column", func(t *testing.T) {
		tbl.Update(key("s"))
		if spec := tbl.Grid().Sort(); spec.Field != "Name" || spec.Dir != Ascending {
			t.Fatalf("expected Name asc, got %+v", spec)
		}
		out := plainView(tbl)
		lines := strings.Split(out, "\n")
		if !strings.Contains(lines[1], "alice") {
			t.Fatalf("expected alice first after sort: %q", lines[1])
		}
		if !strings.Contains(lines[0], "▲") {
			t.Fatalf("header should carry the ascending indicator: %q", lines[0])
		}
	})

	t.Run("sorting again flips direction", func(t *testing.T) {
		tbl.Update(key("s"))
		if spec := tbl.Grid().Sort(); spec.Dir != Descending {
			t.Fatalf("expected descending, got %+v", spec)
		}
		lines := strings.Split(plainView(tbl), "\n")
		if !strings.Contains(lines[1], "carol") {
			t.Fatalf("expected carol first descending: %q", lines[1])
		}
		if !strings.Contains(lines[0], "▼") {
			t.Fatalf("header should carry the descending indicator: %q", lines[0])
		}
	})

	t.Run("header click sorts too", func(t *testing.T) {
		tbl.Update(tea.MouseMsg{X: 2, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
		if spec := tbl.Grid().Sort(); spec.Field != "Name" || spec.Dir != Ascending {
			t.Fatalf("expected click to re-sort Name asc, got %+v", spec)
		}
	})
}

func TestTableSelectionInteraction(t *testing.T) {
	tbl := newTestTable()

	t.Run("space toggles the cursor row", func(t *testing.T) {
		tbl.Update(tea.KeyMsg{Type: tea.KeySpace})
		if got := tbl.Grid().SelectionCount(); got != 1 {
			t.Fatalf("expected 1 selected, got %d", got)
		}
		if !strings.Contains(plainView(tbl), "✓") {
			t.Fatal("selected row should carry the marker")
		}
	})

	t.Run("second toggle deselects", func(t *testing.T) {
		tbl.Update(tea.KeyMsg{Type: tea.KeySpace})
		if got := tbl.Grid().SelectionCount(); got != 0 {
			t.Fatalf("expected empty selection, got %d", got)
		}
	})

	t.Run("cursor moves with j and k", func(t *testing.T) {
		tbl.Update(key("j"))
		if tbl.Cursor() != 1 {
			t.Fatalf("expected cursor 1, got %d", tbl.Cursor())
		}
		tbl.Update(tea.KeyMsg{Type: tea.KeyEnter})
		sel := tbl.Grid().SelectedRows()
		if len(sel) != 1 || sel[0].Name != "alice" {
			t.Fatalf("expected alice selected, got %v", sel)
		}
		tbl.Update(key("k"))
		if tbl.Cursor() != 0 {
			t.Fatalf("expected cursor 0, got %d", tbl.Cursor())
		}
	})

	t.Run("body click toggles that row", func(t *testing.T) {
		// no filter line, so body starts at y=1; y=3 is the third row
		tbl.Update(tea.MouseMsg{X: 4, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
		found := false
		for _, p := range tbl.Grid().SelectedRows() {
			if p.Name == "bob" {
				found = true
			}
		}
		if !found {
			t.Fatalf("expected bob in selection, got %v", tbl.Grid().SelectedRows())
		}
	})
}

func TestTableFilterInteraction(t *testing.T) {
	tbl := newTestTable()

	t.Run("slash enters filter mode on a filterable column", func(t *testing.T) {
		tbl.Update(key("/"))
		if !tbl.filtering {
			t.Fatal("expected filter mode")
		}
		if tbl.cols[tbl.focusCol].field != "Name" {
			t.Fatalf("expected Name focused, got %s", tbl.cols[tbl.focusCol].field)
		}
	})

	t.Run("typing narrows the view live", func(t *testing.T) {
		tbl.Update(key("a"))
		rows := tbl.Grid().Rows()
		if len(rows) != 2 {
			t.Fatalf("expected carol and alice for 'a', got %v", rows)
		}
		tbl.Update(key("l"))
		rows = tbl.Grid().Rows()
		if len(rows) != 1 || rows[0].Name != "alice" {
			t.Fatalf("expected only alice for 'al', got %v", rows)
		}
	})

	t.Run("filter line renders the active filter", func(t *testing.T) {
		out := plainView(tbl)
		if !strings.Contains(out, "Name:") {
			t.Fatalf("expected filter line, got %q", out)
		}
	})

	t.Run("esc leaves filter mode but keeps the filter", func(t *testing.T) {
		tbl.Update(tea.KeyMsg{Type: tea.KeyEsc})
		if tbl.filtering {
			t.Fatal("expected filter mode off")
		}
		if len(tbl.Grid().Rows()) != 1 {
			t.Fatal("filter should persist after leaving edit mode")
		}
	})

	t.Run("erasing the input clears the predicate", func(t *testing.T) {
		tbl.Update(key("/"))
		tbl.Update(tea.KeyMsg{Type: tea.KeyBackspace})
		tbl.Update(tea.KeyMsg{Type: tea.KeyBackspace})
		if len(tbl.Grid().Filters()) != 0 {
			t.Fatalf("expected empty registry, got %v", tbl.Grid().Filters())
		}
		if len(tbl.Grid().Rows()) != 3 {
			t.Fatalf("expected full view restored, got %d rows", len(tbl.Grid().Rows()))
		}
		tbl.Update(tea.KeyMsg{Type: tea.KeyEsc})
	})
}

func TestTableViewportWindows(t *testing.T) {
	rows := make([]person, 20)
	for i := range rows {
		rows[i] = person{ID: i, Name: fmt.Sprintf("row%02d", i), Age: i}
	}
	g := New(rows).RowKey(func(p person) any { return p.ID })
	tbl := NewTable(g, Col[person]("Name"))
	tbl.Update(tea.WindowSizeMsg{Width: 40, Height: 7})

	t.Run("only the window renders", func(t *testing.T) {
		start, end := tbl.VisibleRange()
		if start != 0 || end != 5 {
			t.Fatalf("expected window [0,5), got [%d,%d)", start, end)
		}
		out := plainView(tbl)
		if !strings.Contains(out, "row00") || strings.Contains(out, "row05") {
			t.Fatalf("window contents wrong: %q", out)
		}
	})

	t.Run("cursor drags the window", func(t *testing.T) {
		for i := 0; i < 9; i++ {
			tbl.Update(key("j"))
		}
		start, end := tbl.VisibleRange()
		if end != 10 || start != 5 {
			t.Fatalf("expected window [5,10), got [%d,%d)", start, end)
		}
	})

	t.Run("page keys move a window at a time", func(t *testing.T) {
		tbl.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
		if tbl.Cursor() != 14 {
			t.Fatalf("expected cursor 14 after page down, got %d", tbl.Cursor())
		}
	})

	t.Run("wheel scrolls without moving the cursor", func(t *testing.T) {
		before := tbl.Cursor()
		tbl.Update(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
		if tbl.Cursor() != before {
			t.Fatal("wheel should not move the cursor")
		}
	})
}

type testPager struct{}

func (testPager) Status(visible, total int) string {
	return fmt.Sprintf("page 1 (%d of %d)", visible, total)
}

func TestPaginatorSlot(t *testing.T) {
	tbl := newTestTable().Paginate(testPager{})
	out := plainView(tbl)
	if !strings.Contains(out, "page 1 (3 of 3)") {
		t.Fatalf("footer missing paginator status: %q", out)
	}
}

func TestTableEmptyView(t *testing.T) {
	g := New([]person{})
	tbl := NewTable(g, Col[person]("Name"))
	if !strings.Contains(plainView(tbl), "(no rows)") {
		t.Fatal("empty grid should render the placeholder")
	}
	if tbl.Cursor() != -1 {
		t.Fatalf("expected cursor -1 on empty view, got %d", tbl.Cursor())
	}
}

func TestUnsizedTableKeepsFullBodyThroughFilterMode(t *testing.T) {
	tbl := newTestTable() // never sized: viewport stays unbounded

	tbl.Update(key("/"))
	tbl.Update(tea.KeyMsg{Type: tea.KeyEsc})

	out := plainView(tbl)
	for _, name := range []string{"carol", "alice", "bob"} {
		if !strings.Contains(out, name) {
			t.Fatalf("row %s vanished after entering and leaving filter mode: %q", name, out)
		}
	}
	if start, end := tbl.VisibleRange(); start != 0 || end != 3 {
		t.Fatalf("expected unbounded window [0,3), got [%d,%d)", start, end)
	}
}

func TestFilteringAccessor(t *testing.T) {
	tbl := newTestTable()
	if tbl.Filtering() {
		t.Fatal("new table should not report filter mode")
	}
	tbl.Update(key("/"))
	if !tbl.Filtering() {
		t.Fatal("expected filter mode after /")
	}
	tbl.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if tbl.Filtering() {
		t.Fatal("expected filter mode off after esc")
	}
}

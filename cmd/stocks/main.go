// stocks: interactive stock table — sortable columns, per-column filters,
// row selection, live price ticks.
package main

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/kungfusheep/gridview"
)

type Stock struct {
	ID     string
	Symbol string
	Name   string
	Price  float64
	Change float64
	Volume int
	Buy    bool
}

func seedStocks() []Stock {
	base := []Stock{
		{Symbol: "AAPL", Name: "Apple Inc", Price: 178.92, Change: 2.34, Volume: 52_000_000, Buy: true},
		{Symbol: "GOOGL", Name: "Alphabet", Price: 141.23, Change: -1.56, Volume: 28_000_000, Buy: true},
		{Symbol: "MSFT", Name: "Microsoft", Price: 378.45, Change: 5.12, Volume: 31_000_000, Buy: false},
		{Symbol: "TSLA", Name: "Tesla", Price: 248.67, Change: -8.90, Volume: 95_000_000, Buy: false},
		{Symbol: "NVDA", Name: "NVIDIA", Price: 721.34, Change: 12.45, Volume: 45_000_000, Buy: false},
		{Symbol: "AMD", Name: "AMD", Price: 156.78, Change: 3.21, Volume: 62_000_000, Buy: false},
	}
	for i := range base {
		base[i].ID = uuid.NewString()
	}
	return base
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(2*time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

var (
	green = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	red   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

type app struct {
	stocks []Stock
	table  *gridview.Table[Stock]
}

func newApp() app {
	stocks := seedStocks()
	grid := gridview.New(stocks).
		RowKey(func(s Stock) any { return s.ID }).
		DefaultSort("Symbol", gridview.Ascending)

	table := gridview.NewTable(grid,
		gridview.Col[Stock]("Symbol").Sortable().
			Filter(gridview.TextPrefix(func(s Stock) string { return s.Symbol })),
		gridview.Col[Stock]("Name").Sortable().
			Filter(gridview.Fuzzy(func(s Stock) string { return s.Name }, 2)),
		gridview.Col[Stock]("Price").Sortable().Align(gridview.AlignRight).
			Format(gridview.FormatCurrency("$", 2)),
		gridview.Col[Stock]("Change").Sortable().Align(gridview.AlignRight).
			Format(gridview.FormatPercent(1)).
			CellStyle(func(v any) lipgloss.Style {
				if f, ok := v.(float64); ok && f < 0 {
					return red
				}
				return green
			}),
		gridview.Col[Stock]("Volume").Align(gridview.AlignRight).
			Format(gridview.FormatNumber(0)),
		gridview.Col[Stock]("Buy").Align(gridview.AlignCenter).
			Format(gridview.FormatBool("✓", "✗")),
	)

	return app{stocks: stocks, table: table}
}

func (a app) Init() tea.Cmd { return tick() }

func (a app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "q":
			// plain q feeds the filter input while editing
			if !a.table.Filtering() {
				return a, tea.Quit
			}
		}
	case tea.WindowSizeMsg:
		msg.Height -= 2 // title and help lines
		m, cmd := a.table.Update(msg)
		a.table = m.(*gridview.Table[Stock])
		return a, cmd
	case tickMsg:
		// nudge prices; identities are stable so selection survives
		next := make([]Stock, len(a.stocks))
		copy(next, a.stocks)
		for i := range next {
			drift := (rand.Float64() - 0.5) * 2
			next[i].Price += drift
			next[i].Change += drift / 10
		}
		a.stocks = next
		a.table.Grid().SetRows(next)
		return a, tick()
	}

	m, cmd := a.table.Update(msg)
	a.table = m.(*gridview.Table[Stock])
	return a, cmd
}

func (a app) View() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")).
		Render("  Stocks")
	help := lipgloss.NewStyle().Foreground(lipgloss.Color("240")).
		Render("  j/k move · space select · h/l + s sort · / filter · q quit")
	return fmt.Sprintf("%s\n%s\n%s", title, a.table.View(), help)
}

func main() {
	p := tea.NewProgram(newApp(), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

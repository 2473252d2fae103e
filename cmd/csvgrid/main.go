// csvgrid: browse any CSV file as a sortable, filterable grid.
//
//	csvgrid data.csv
//
// configuration (optional, csvgrid.yaml in cwd or ~/.config/csvgrid,
// env overrides with prefix CSVGRID_):
//
//	ui:
//	  gap: 2
//	  footer: true
//	filter:
//	  fuzzy: true
//	  distance: 2
package main

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/viper"

	"github.com/kungfusheep/gridview"
)

// record is one CSV data row; Line keys the selection so duplicate rows
// stay distinct.
type record struct {
	Line   int
	Fields []string
}

type config struct {
	Gap      int
	Footer   bool
	Fuzzy    bool
	Distance int
}

func loadConfig() (config, error) {
	v := viper.New()
	v.SetDefault("ui.gap", 2)
	v.SetDefault("ui.footer", true)
	v.SetDefault("filter.fuzzy", false)
	v.SetDefault("filter.distance", 2)

	v.SetConfigName("csvgrid")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "csvgrid"))
	}
	v.SetEnvPrefix("CSVGRID")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	return config{
		Gap:      v.GetInt("ui.gap"),
		Footer:   v.GetBool("ui.footer"),
		Fuzzy:    v.GetBool("filter.fuzzy"),
		Distance: v.GetInt("filter.distance"),
	}, nil
}

func readCSV(path string) (headers []string, rows []record, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	all, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("%s: empty file", path)
	}

	headers = all[0]
	for i, fields := range all[1:] {
		rows = append(rows, record{Line: i + 2, Fields: fields})
	}
	return headers, rows, nil
}

// buildColumns makes one accessor-backed column per CSV header — no
// reflection involved, the cell just indexes the field slice.
func buildColumns(headers []string, cfg config) []*gridview.Column[record] {
	cols := make([]*gridview.Column[record], len(headers))
	for i, h := range headers {
		idx := i
		get := func(r record) string {
			if idx < len(r.Fields) {
				return r.Fields[idx]
			}
			return ""
		}
		factory := gridview.TextContains(get)
		if cfg.Fuzzy {
			factory = gridview.Fuzzy(get, cfg.Distance)
		}
		cols[i] = gridview.Col[record](h).
			Sortable().
			Filter(factory).
			Value(func(r record) any { return get(r) })
	}
	return cols
}

type app struct {
	path  string
	table *gridview.Table[record]
}

func (a app) Init() tea.Cmd { return nil }

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
		msg.Height -= 2
		m, cmd := a.table.Update(msg)
		a.table = m.(*gridview.Table[record])
		return a, cmd
	}
	m, cmd := a.table.Update(msg)
	a.table = m.(*gridview.Table[record])
	return a, cmd
}

func (a app) View() string {
	title := lipgloss.NewStyle().Bold(true).Render("  " + a.path)
	help := lipgloss.NewStyle().Foreground(lipgloss.Color("240")).
		Render("  j/k move · space select · h/l + s sort · / filter · q quit")
	return title + "\n" + a.table.View() + "\n" + help
}

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: csvgrid <file.csv>")
		os.Exit(2)
	}

	cfg, err := loadConfig()
	if err != nil {
		log.Fatal(err)
	}

	headers, rows, err := readCSV(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}

	grid := gridview.New(rows).RowKey(func(r record) any { return r.Line })
	table := gridview.NewTable(grid, buildColumns(headers, cfg)...).
		Gap(cfg.Gap).
		Footer(cfg.Footer)

	p := tea.NewProgram(app{path: os.Args[1], table: table},
		tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

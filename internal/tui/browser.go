// internal/tui/browser.go
// Package tui implements the interactive table browser for output CSV files.
package tui

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	minColumnWidth = 4
	maxColumnWidth = 24
	// chromeHeight is the number of lines used around the table.
	chromeHeight = 4
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	badgeStyle = lipgloss.NewStyle().Background(lipgloss.Color("229")).Foreground(lipgloss.Color("0")).Padding(0, 1).MarginLeft(1)
)

// model is the bubbletea model behind the table browser.
type model struct {
	title   string
	headers []string
	rows    []table.Row
	table   table.Model

	sortCol   int
	ascending bool
	sorted    bool

	width  int
	height int
}

// Load reads a CSV file into a browser model.
func Load(path string) (tea.Model, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open %s: %w", path, err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s is empty", path)
	}
	return newModel(filepath.Base(path), records[0], records[1:]), nil
}

// Run opens path in the browser and blocks until the user quits.
func Run(path string) error {
	m, err := Load(path)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func newModel(title string, headers []string, records [][]string) *model {
	rows := make([]table.Row, len(records))
	for i, rec := range records {
		rows[i] = table.Row(rec)
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("86"))

	m := &model{
		title:     title,
		headers:   headers,
		rows:      rows,
		ascending: true,
	}
	m.table = table.New(
		table.WithColumns(m.columns()),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(10),
		table.WithStyles(styles),
	)
	return m
}

// columns sizes every column to its widest cell, within bounds.
func (m *model) columns() []table.Column {
	cols := make([]table.Column, len(m.headers))
	for i, h := range m.headers {
		title := h
		if m.sorted && i == m.sortCol {
			if m.ascending {
				title += " ▲"
			} else {
				title += " ▼"
			}
		}
		width := lipgloss.Width(title)
		for _, row := range m.rows {
			if i < len(row) {
				width = max(width, lipgloss.Width(row[i]))
			}
		}
		cols[i] = table.Column{Title: title, Width: min(max(width, minColumnWidth), maxColumnWidth)}
	}
	return cols
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetWidth(msg.Width)
		m.table.SetHeight(max(msg.Height-chromeHeight, 1))
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "right", "l":
			if len(m.headers) > 0 {
				m.sortCol = (m.sortCol + 1) % len(m.headers)
			}
			m.table.SetColumns(m.columns())
			return m, nil
		case "shift+tab", "left", "h":
			if len(m.headers) > 0 {
				m.sortCol = (m.sortCol - 1 + len(m.headers)) % len(m.headers)
			}
			m.table.SetColumns(m.columns())
			return m, nil
		case "s":
			if m.sorted {
				m.ascending = !m.ascending
			}
			m.sorted = true
			m.sortRows()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// sortRows orders rows by the selected column. Numeric cells compare as
// numbers and NA cells always sort last.
func (m *model) sortRows() {
	col := m.sortCol
	sort.SliceStable(m.rows, func(i, j int) bool {
		a, b := cell(m.rows[i], col), cell(m.rows[j], col)
		if a == "NA" || b == "NA" {
			return b == "NA" && a != "NA"
		}
		less := a < b
		if x, errA := strconv.ParseFloat(a, 64); errA == nil {
			if y, errB := strconv.ParseFloat(b, 64); errB == nil {
				if x == y {
					return false
				}
				less = x < y
			}
		} else if a == b {
			return false
		}
		if m.ascending {
			return less
		}
		return !less
	})
	m.table.SetColumns(m.columns())
	m.table.SetRows(m.rows)
}

func cell(row table.Row, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func (m *model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}
	sortLabel := "none"
	if m.sorted {
		dir := "asc"
		if !m.ascending {
			dir = "desc"
		}
		sortLabel = fmt.Sprintf("%s %s", m.headers[m.sortCol], dir)
	} else if len(m.headers) > 0 {
		sortLabel = "next: " + m.headers[m.sortCol]
	}

	header := titleStyle.Render(m.title) +
		badgeStyle.Render(fmt.Sprintf("Rows: %d", len(m.rows))) +
		badgeStyle.Render("Sort: "+sortLabel)
	help := helpStyle.Render("↑/↓ move • tab/shift+tab pick column • s sort • q quit")
	return header + "\n" + m.table.View() + "\n" + help
}

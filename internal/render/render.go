// Package render draws the state of a Solver as a terminal table.
//
// Rows follow the items of the first category. A cell shows the single
// remaining candidate of its category, or every remaining candidate
// joined with "|" when the pairing is still open.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"

	"github.com/gitrdm/elimination/pkg/elimination"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

var (
	colorTeal  = lipgloss.Color("#20B9B4")
	colorAmber = lipgloss.Color("#F4D03F")
	colorRed   = lipgloss.Color("#E74C3C")
	colorSlate = lipgloss.Color("#2C4A54")
)

// Styles used by Grid and Summary. The zero value renders plain text.
type Styles struct {
	Header   lipgloss.Style
	Resolved lipgloss.Style
	Open     lipgloss.Style
	Empty    lipgloss.Style
	Border   lipgloss.Style
	Title    lipgloss.Style
}

// NewStyles returns colored styles when color is true and plain ones
// otherwise.
func NewStyles(color bool) Styles {
	plain := lipgloss.NewStyle().Padding(0, 1)
	if !color {
		return Styles{Header: plain, Resolved: plain, Open: plain, Empty: plain, Border: lipgloss.NewStyle(), Title: lipgloss.NewStyle()}
	}
	return Styles{
		Header:   plain.Bold(true).Foreground(colorTeal),
		Resolved: plain,
		Open:     plain.Foreground(colorAmber),
		Empty:    plain.Foreground(colorRed),
		Border:   lipgloss.NewStyle().Foreground(colorSlate),
		Title:    lipgloss.NewStyle().Bold(true).Foreground(colorTeal),
	}
}

// UseColor decides whether output to w should be colored.
func UseColor(mode string, w io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Cell returns the text of one grid cell.
func Cell(s *elimination.Solver, item any, category string) (string, error) {
	labels, err := s.AvailableFor(item, category)
	if err != nil {
		return "", err
	}
	if len(labels) == 0 {
		return "-", nil
	}
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = fmt.Sprint(l)
	}
	return strings.Join(parts, "|"), nil
}

// Grid renders one row per item of the first category.
func Grid(s *elimination.Solver, st Styles) (string, error) {
	cats := s.Categories()
	anchor, err := s.Items(cats[0])
	if err != nil {
		return "", err
	}

	rows := make([][]string, len(anchor))
	for i, item := range anchor {
		ref := elimination.In(cats[0], item)
		row := make([]string, len(cats))
		row[0] = fmt.Sprint(item)
		for c := 1; c < len(cats); c++ {
			if row[c], err = Cell(s, ref, cats[c]); err != nil {
				return "", err
			}
		}
		rows[i] = row
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(st.Border).
		Headers(cats...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return st.Header
			}
			if row < 0 || row >= len(rows) {
				return st.Resolved
			}
			switch cell := rows[row][col]; {
			case cell == "-":
				return st.Empty
			case strings.Contains(cell, "|"):
				return st.Open
			default:
				return st.Resolved
			}
		})
	return t.String(), nil
}

// Summary renders the headline of a solver state.
func Summary(name string, s *elimination.Solver, st Styles) string {
	state := "unsolved"
	if s.Solved() {
		state = "solved"
	}
	if s.Check() != nil {
		state = "contradiction"
	}
	return st.Title.Render(fmt.Sprintf("%s: %s, %d edges, %d pending assertions", name, state, s.Edges(), s.AssertionCount()))
}

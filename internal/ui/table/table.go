package table

import (
	"fmt"
	"image/color"
	"strings"

	bubtable "charm.land/bubbles/v2/table"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/gridfit/pkg/fitcolumns"
)

// Row re-exports the bubbles row type so callers need not import bubbles.
type Row = bubtable.Row

// headerHeight is the header line plus its bottom border.
const headerHeight = 2

// cellGap is the right padding the styles add to every cell.
const cellGap = 1

// Model is a table whose column widths are recomputed by the layout solver
// every time its size or row count changes.
//
// Type parameter V is the row value type.
type Model[V any] struct {
	table    bubtable.Model
	styles   bubtable.Styles
	rows     []V
	filter   string
	filtered []V

	specs     []fitcolumns.Column
	titles    []string
	columns   []bubtable.Column
	mode      fitcolumns.Mode
	scrollbar int
	result    fitcolumns.Result

	toRow   func(V) Row
	keyFunc func(V) string

	width   int
	height  int
	focused bool
	noColor bool

	headerFG   color.Color
	headerBG   color.Color
	selectedFG color.Color
	selectedBG color.Color
}

// NewModel creates a table for the given column descriptors. titles is
// aligned with specs; missing titles fall back to the column ID.
func NewModel[V any](
	specs []fitcolumns.Column,
	titles []string,
	toRow func(V) Row,
	keyFunc func(V) string,
) *Model[V] {
	t := bubtable.New(
		bubtable.WithFocused(true),
		bubtable.WithHeight(5),
	)

	s := bubtable.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Bold(true).
		Align(lipgloss.Left).
		PaddingLeft(0).
		PaddingRight(cellGap)
	s.Selected = s.Selected.
		PaddingLeft(0).
		PaddingRight(0)
	s.Cell = lipgloss.NewStyle().
		Align(lipgloss.Left).
		PaddingLeft(0).
		PaddingRight(cellGap)
	t.SetStyles(s)

	m := &Model[V]{
		table:     t,
		styles:    s,
		rows:      []V{},
		filtered:  []V{},
		mode:      fitcolumns.ModeFitColumns,
		scrollbar: 1,
		toRow:     toRow,
		keyFunc:   keyFunc,
		width:     80,
		height:    10,
		focused:   true,
	}
	m.SetColumns(specs, titles)
	return m
}

// SetColumns replaces the column set, rebuilds the rows through toRow and
// recomputes widths.
func (m *Model[V]) SetColumns(specs []fitcolumns.Column, titles []string) {
	// bubbles indexes columns by row cell, so stale rows must go first.
	m.table.SetRows(nil)
	m.specs = append([]fitcolumns.Column(nil), specs...)
	m.titles = titles
	m.applyFilter()
}

// SetMode changes the layout mode and recomputes widths.
func (m *Model[V]) SetMode(mode fitcolumns.Mode) {
	m.mode = mode
	m.relayout()
}

// SetScrollbarWidth sets the width reserved when rows overflow the body.
func (m *Model[V]) SetScrollbarWidth(w int) {
	m.scrollbar = max(w, 0)
	m.relayout()
}

// SetNaturalWidths updates the measured content widths used by the
// fitData modes.
func (m *Model[V]) SetNaturalWidths(natural []int) {
	for i := range m.specs {
		if i < len(natural) {
			m.specs[i].Natural = natural[i]
		}
	}
	m.relayout()
}

// Viewport describes the area the columns are fitted into.
func (m *Model[V]) Viewport() fitcolumns.Viewport {
	return fitcolumns.Viewport{
		Width:          m.width,
		ContentHeight:  len(m.filtered),
		VisibleHeight:  max(m.height-headerHeight, 0),
		ScrollbarWidth: m.scrollbar,
	}
}

// Result returns the most recent layout.
func (m *Model[V]) Result() fitcolumns.Result {
	return m.result
}

// Columns returns the bubbles columns with their solved widths. Widths
// exclude the cell gap.
func (m *Model[V]) Columns() []bubtable.Column {
	return m.columns
}

func (m *Model[V]) relayout() {
	m.result = fitcolumns.Layout(m.mode, m.specs, m.Viewport().Available())

	cols := make([]bubtable.Column, len(m.specs))
	for i, spec := range m.specs {
		title := spec.ID
		if i < len(m.titles) && m.titles[i] != "" {
			title = m.titles[i]
		}
		cols[i] = bubtable.Column{Title: title, Width: max(m.result.Widths[i]-cellGap, 0)}
	}
	m.columns = cols
	m.table.SetColumns(cols)
	m.table.SetWidth(m.width)
	m.table.SetHeight(m.height)
}

// SetRows updates the table with new row data.
func (m *Model[V]) SetRows(rows []V) {
	m.rows = rows
	m.applyFilter()
}

// Rows returns the current filtered rows.
func (m *Model[V]) Rows() []V {
	return m.filtered
}

// AllRows returns all unfiltered rows.
func (m *Model[V]) AllRows() []V {
	return m.rows
}

// SetFilter sets the filter text and reapplies filtering.
func (m *Model[V]) SetFilter(filter string) {
	m.filter = filter
	m.applyFilter()
}

// Filter returns the current filter text.
func (m *Model[V]) Filter() string {
	return m.filter
}

// ClearFilter removes the filter and shows all rows.
func (m *Model[V]) ClearFilter() {
	m.filter = ""
	m.applyFilter()
}

// applyFilter keeps rows whose key starts with the filter, case-insensitively.
// The visible row count feeds the scrollbar decision, so widths are
// recomputed afterwards.
func (m *Model[V]) applyFilter() {
	if m.filter == "" {
		m.filtered = m.rows
	} else {
		m.filtered = []V{}
		prefix := strings.ToLower(m.filter)
		for _, row := range m.rows {
			if strings.HasPrefix(strings.ToLower(m.keyFunc(row)), prefix) {
				m.filtered = append(m.filtered, row)
			}
		}
	}

	tableRows := make([]Row, len(m.filtered))
	for i, row := range m.filtered {
		tableRows[i] = m.toRow(row)
	}
	m.table.SetRows(tableRows)
	m.relayout()

	if m.Cursor() >= len(m.filtered) && len(m.filtered) > 0 {
		m.SetCursor(0)
	}
}

// Cursor returns the current cursor position.
func (m *Model[V]) Cursor() int {
	return m.table.Cursor()
}

// SetCursor sets the cursor position.
func (m *Model[V]) SetCursor(pos int) {
	m.table.SetCursor(pos)
}

// SelectedRow returns the currently selected row value, or nil if no rows.
func (m *Model[V]) SelectedRow() *V {
	if len(m.filtered) == 0 {
		return nil
	}
	cursor := m.Cursor()
	if cursor < 0 || cursor >= len(m.filtered) {
		return nil
	}
	return &m.filtered[cursor]
}

// SetSize sets the table dimensions and recomputes column widths.
func (m *Model[V]) SetSize(width, height int) {
	m.width = max(width, 0)
	m.height = max(height, 0)
	m.relayout()
}

// Focus sets the table focus state.
func (m *Model[V]) Focus() {
	m.focused = true
	m.table.Focus()
}

// Blur removes focus from the table.
func (m *Model[V]) Blur() {
	m.focused = false
	m.table.Blur()
}

// Focused returns true if the table has focus.
func (m *Model[V]) Focused() bool {
	return m.focused
}

// SetNoColor enables/disables color output.
func (m *Model[V]) SetNoColor(noColor bool) {
	m.noColor = noColor
	m.applyColorScheme()
}

// SetColors sets custom theme colors. Nil colors keep the current style.
func (m *Model[V]) SetColors(headerFG, headerBG, selectedFG, selectedBG color.Color) {
	m.headerFG = headerFG
	m.headerBG = headerBG
	m.selectedFG = selectedFG
	m.selectedBG = selectedBG
	m.applyColorScheme()
}

func (m *Model[V]) applyColorScheme() {
	s := m.styles

	if m.noColor {
		s.Header = s.Header.UnsetForeground().UnsetBackground()
		s.Selected = s.Selected.UnsetForeground().UnsetBackground().Reverse(true)
		s.Cell = s.Cell.UnsetForeground().UnsetBackground()
	} else {
		if m.headerFG != nil {
			s.Header = s.Header.Foreground(m.headerFG)
		}
		if m.headerBG != nil {
			s.Header = s.Header.Background(m.headerBG)
		}
		if m.selectedFG != nil {
			s.Selected = s.Selected.Foreground(m.selectedFG)
		}
		if m.selectedBG != nil {
			s.Selected = s.Selected.Background(m.selectedBG)
		}
	}

	m.table.SetStyles(s)
	m.styles = s
}

// Update handles messages and updates the table state.
func (m *Model[V]) Update(msg tea.Msg) (*Model[V], tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the table to a string.
func (m *Model[V]) View() string {
	return m.table.View()
}

// String returns a string representation for debugging.
func (m *Model[V]) String() string {
	return fmt.Sprintf("Table[rows=%d, filtered=%d, cursor=%d, filter=%q, mode=%s, widths=%v]",
		len(m.rows), len(m.filtered), m.Cursor(), m.filter, m.mode, m.result.Widths)
}

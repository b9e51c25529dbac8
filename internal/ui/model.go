package ui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/gridfit/internal/formatter"
	"github.com/oakwood-commons/gridfit/internal/ui/table"
	"github.com/oakwood-commons/gridfit/pkg/core"
	"github.com/oakwood-commons/gridfit/pkg/fitcolumns"
	"github.com/oakwood-commons/gridfit/pkg/loader"
	"github.com/oakwood-commons/gridfit/pkg/logger"
)

// InputMode controls how key presses are routed.
type InputMode int

const (
	// NormalMode routes keys to the table.
	NormalMode InputMode = iota
	// FilterMode collects a row filter.
	FilterMode
)

// statusHeight is the number of lines below the table.
const statusHeight = 1

// DefinitionMsg replaces the grid definition, e.g. after the file changed.
type DefinitionMsg struct {
	Def *loader.Definition
}

// Options configures a Model.
type Options struct {
	Mode           fitcolumns.Mode
	ScrollbarWidth int
	NoColor        bool
	Colors         formatter.TableColors
	Logger         *logr.Logger
}

// Model previews a grid definition and lays it out again whenever the
// window size or the visible rows change.
type Model struct {
	def    *loader.Definition
	engine *core.Engine
	table  *table.Model[map[string]any]
	lgr    logr.Logger

	mode    fitcolumns.Mode
	visible []loader.ColumnDef

	width  int
	height int

	input     InputMode
	showTrace bool
	noColor   bool
	errMsg    string
	quitting  bool

	statusStyle lipgloss.Style
	errorStyle  lipgloss.Style
}

// NewModel builds the preview model. Layout happens on the first
// WindowSizeMsg; callers that know the size up front can call SetSize.
func NewModel(def *loader.Definition, engine *core.Engine, opts Options) *Model {
	lgr := logger.GetNoopLogger()
	if opts.Logger != nil {
		lgr = opts.Logger
	}
	m := &Model{
		def:     def,
		engine:  engine,
		lgr:     *lgr,
		mode:    opts.Mode,
		noColor: opts.NoColor,
		width:   80,
		height:  24,
	}
	if !m.mode.Valid() {
		m.mode = fitcolumns.DefaultMode
	}

	m.table = table.NewModel[map[string]any](nil, nil, m.toRow, m.rowKey)
	m.table.SetMode(m.mode)
	m.table.SetScrollbarWidth(opts.ScrollbarWidth)
	m.table.SetNoColor(opts.NoColor)
	m.table.SetColors(opts.Colors.HeaderFG, opts.Colors.HeaderBG, nil, nil)

	m.statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	m.errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	return m
}

func (m *Model) toRow(row map[string]any) table.Row {
	out := make(table.Row, len(m.visible))
	for i, c := range m.visible {
		out[i] = formatter.Stringify(row[c.Field])
	}
	return out
}

// rowKey is what the filter matches: the first visible column.
func (m *Model) rowKey(row map[string]any) string {
	if len(m.visible) == 0 {
		return ""
	}
	return formatter.Stringify(row[m.visible[0].Field])
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// SetSize lays the grid out for a width x height window.
func (m *Model) SetSize(width, height int) {
	m.width = max(width, 0)
	m.height = max(height, 0)
	m.layout()
}

// Result returns the current layout.
func (m *Model) Result() fitcolumns.Result {
	return m.table.Result()
}

// Visible returns the columns that passed the visibility filter.
func (m *Model) Visible() []loader.ColumnDef {
	return m.visible
}

// Mode returns the active layout mode.
func (m *Model) Mode() fitcolumns.Mode {
	return m.mode
}

// Err returns the last layout error shown in the status line.
func (m *Model) Err() string {
	return m.errMsg
}

func (m *Model) layout() {
	grid, err := m.engine.Measure(m.def, m.width)
	if err != nil {
		m.errMsg = err.Error()
		m.lgr.Error(err, "layout failed", logger.ContainerKey, m.width)
		return
	}
	m.errMsg = ""
	m.visible = grid.Columns

	m.table.SetSize(m.width, max(m.height-statusHeight, 0))
	m.table.SetColumns(grid.Specs, grid.Titles)
	m.table.SetRows(m.def.Rows)

	res := m.table.Result()
	m.lgr.V(1).Info("layout computed",
		logger.ModeKey, string(res.Mode),
		logger.ContainerKey, res.Container,
		logger.ColumnsKey, len(grid.Specs),
		"total", res.Total,
		"overflow", res.Overflow)
}

func (m *Model) cycleMode() {
	modes := fitcolumns.Modes()
	for i, mode := range modes {
		if mode == m.mode {
			m.mode = modes[(i+1)%len(modes)]
			break
		}
	}
	m.table.SetMode(m.mode)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case DefinitionMsg:
		if msg.Def != nil {
			m.def = msg.Def
			m.layout()
		}
		return m, nil

	case tea.KeyMsg:
		keyStr := msg.String()
		if keyStr == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		if m.input == FilterMode {
			m.updateFilter(msg)
			return m, nil
		}
		switch keyStr {
		case "q":
			m.quitting = true
			return m, tea.Quit
		case "/":
			m.input = FilterMode
			return m, nil
		case "m":
			m.cycleMode()
			return m, nil
		case "e":
			m.showTrace = !m.showTrace
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) updateFilter(msg tea.KeyMsg) {
	switch msg.String() {
	case "esc":
		m.input = NormalMode
		m.table.ClearFilter()
	case "enter":
		m.input = NormalMode
	case "backspace":
		f := []rune(m.table.Filter())
		if len(f) > 0 {
			m.table.SetFilter(string(f[:len(f)-1]))
		}
	default:
		if text := msg.Key().Text; text != "" {
			m.table.SetFilter(m.table.Filter() + text)
		}
	}
}

// View implements tea.Model.
func (m *Model) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}

	var body string
	if m.showTrace {
		res := m.table.Result()
		specs := make([]fitcolumns.Column, len(m.visible))
		for i, c := range m.visible {
			specs[i] = c.Column(0)
		}
		body = formatter.FormatPasses(specs, res)
	} else {
		body = m.table.View()
	}

	v := tea.NewView(body + "\n" + m.statusLine())
	v.AltScreen = true
	return v
}

func (m *Model) statusLine() string {
	if m.errMsg != "" {
		if m.noColor {
			return "error: " + m.errMsg
		}
		return m.errorStyle.Render("error: " + m.errMsg)
	}

	res := m.table.Result()
	parts := []string{
		string(res.Mode),
		fmt.Sprintf("width %d", m.width),
		fmt.Sprintf("total %d", res.Total),
	}
	if res.Overflow > 0 {
		parts = append(parts, fmt.Sprintf("overflow %d", res.Overflow))
	}
	if m.input == FilterMode || m.table.Filter() != "" {
		parts = append(parts, "filter: "+m.table.Filter())
	}
	parts = append(parts, "m mode  e explain  / filter  q quit")

	line := strings.Join(parts, " │ ")
	if m.noColor {
		return line
	}
	return m.statusStyle.Render(line)
}

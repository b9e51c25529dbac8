// Package core is the embeddable gridfit API: load a grid definition,
// filter its columns for a container, measure the content and lay the
// columns out.
package core

import (
	"fmt"
	"io"

	"github.com/oakwood-commons/gridfit/internal/cel"
	"github.com/oakwood-commons/gridfit/internal/formatter"
	"github.com/oakwood-commons/gridfit/pkg/fitcolumns"
	"github.com/oakwood-commons/gridfit/pkg/loader"
)

// Filter decides which columns take part in a layout at a container width.
type Filter interface {
	FilterVisible(defs []loader.ColumnDef, width int) ([]loader.ColumnDef, error)
}

// Measurer turns rows into display cells and natural column widths.
type Measurer interface {
	Cells(rows []map[string]any, fields []string) [][]string
	NaturalWidths(headers []string, cells [][]string) []int
}

// Engine runs the filter, measure and layout steps for a definition.
type Engine struct {
	Filter   Filter
	Measurer Measurer
}

// Option configures the Engine.
type Option func(*Engine)

// WithFilter sets a custom visibility filter.
func WithFilter(f Filter) Option {
	return func(e *Engine) {
		e.Filter = f
	}
}

// WithMeasurer sets a custom content measurer.
func WithMeasurer(m Measurer) Option {
	return func(e *Engine) {
		e.Measurer = m
	}
}

// New creates an Engine. The default filter evaluates visible_when with
// CEL; the default measurer uses terminal cell widths.
func New(opts ...Option) (*Engine, error) {
	engine := &Engine{}
	for _, opt := range opts {
		opt(engine)
	}
	if engine.Filter == nil {
		eval, err := cel.NewEvaluator()
		if err != nil {
			return nil, err
		}
		engine.Filter = eval
	}
	if engine.Measurer == nil {
		engine.Measurer = defaultMeasurer{}
	}
	return engine, nil
}

// LoadFile reads a YAML, JSON or TOML definition.
func LoadFile(path string) (*loader.Definition, error) {
	return loader.LoadFile(path)
}

// LoadReader reads a definition, detecting its format from the content.
func LoadReader(r io.Reader) (*loader.Definition, error) {
	return loader.LoadReader(r)
}

// Grid is a definition measured for one container width.
type Grid struct {
	// Columns are the definitions that passed the visibility filter.
	Columns []loader.ColumnDef
	Titles  []string
	Cells   [][]string
	// Specs are the allocator descriptors, aligned with Columns.
	Specs []fitcolumns.Column

	Viewport fitcolumns.Viewport
	Result   fitcolumns.Result
}

// Measure filters the columns for width and measures the rows. The
// returned grid has no layout result.
func (e *Engine) Measure(def *loader.Definition, width int) (Grid, error) {
	if def == nil {
		return Grid{}, fmt.Errorf("definition is nil")
	}
	if e == nil || e.Filter == nil {
		return Grid{}, fmt.Errorf("filter is not configured")
	}
	e.ensureMeasurer()

	visible, err := e.Filter.FilterVisible(def.Columns, width)
	if err != nil {
		return Grid{}, err
	}

	fields := make([]string, len(visible))
	titles := make([]string, len(visible))
	for i, c := range visible {
		fields[i] = c.Field
		titles[i] = c.Header()
	}
	cells := e.Measurer.Cells(def.Rows, fields)
	natural := e.Measurer.NaturalWidths(titles, cells)

	specs := make([]fitcolumns.Column, len(visible))
	for i, c := range visible {
		n := 0
		if i < len(natural) {
			n = natural[i]
		}
		specs[i] = c.Column(n)
	}
	return Grid{Columns: visible, Titles: titles, Cells: cells, Specs: specs}, nil
}

// Fit measures def for view and lays the columns out in mode. The row
// count of def becomes the viewport's content height.
func (e *Engine) Fit(def *loader.Definition, mode fitcolumns.Mode, view fitcolumns.Viewport) (Grid, error) {
	grid, err := e.Measure(def, view.Width)
	if err != nil {
		return Grid{}, err
	}
	view.ContentHeight = len(def.Rows)
	grid.Viewport = view
	grid.Result = fitcolumns.Layout(mode, grid.Specs, view.Available())
	return grid, nil
}

type defaultMeasurer struct{}

func (defaultMeasurer) Cells(rows []map[string]any, fields []string) [][]string {
	return formatter.Cells(rows, fields)
}

func (defaultMeasurer) NaturalWidths(headers []string, cells [][]string) []int {
	return formatter.NaturalWidths(headers, cells)
}

func (e *Engine) ensureMeasurer() {
	if e.Measurer == nil {
		e.Measurer = defaultMeasurer{}
	}
}

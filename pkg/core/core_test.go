package core

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/oakwood-commons/gridfit/pkg/fitcolumns"
	"github.com/oakwood-commons/gridfit/pkg/loader"
)

const grid = `columns:
  - field: id
    width: 10
  - field: name
  - field: note
    width_grow: 3
    visible_when: "width >= 60"
rows:
  - {id: 1, name: alpha, note: x}
  - {id: 2, name: beta, note: y}
`

func loadGrid(t *testing.T) *loader.Definition {
	t.Helper()
	def, err := LoadReader(strings.NewReader(grid))
	if err != nil {
		t.Fatalf("LoadReader error: %v", err)
	}
	return def
}

func TestEngineFit(t *testing.T) {
	engine, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	def := loadGrid(t)

	g, err := engine.Fit(def, fitcolumns.ModeFitColumns, fitcolumns.Viewport{Width: 90})
	if err != nil {
		t.Fatalf("Fit error: %v", err)
	}
	if len(g.Columns) != 3 {
		t.Fatalf("visible columns = %d, want 3", len(g.Columns))
	}
	// 80 flexible cells over 4 units.
	want := []int{10, 20, 60}
	for i, w := range want {
		if g.Result.Widths[i] != w {
			t.Fatalf("widths = %v, want %v", g.Result.Widths, want)
		}
	}
	if g.Viewport.ContentHeight != 2 {
		t.Fatalf("content height = %d, want 2", g.Viewport.ContentHeight)
	}
}

func TestEngineFitNarrowHidesColumn(t *testing.T) {
	engine, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	g, err := engine.Fit(loadGrid(t), fitcolumns.ModeFitColumns, fitcolumns.Viewport{Width: 40})
	if err != nil {
		t.Fatalf("Fit error: %v", err)
	}
	if len(g.Columns) != 2 || g.Titles[1] != "name" {
		t.Fatalf("columns = %v, want [id name]", g.Titles)
	}
	if g.Result.Total != 40 {
		t.Fatalf("total = %d, want 40", g.Result.Total)
	}
}

func TestEngineFitReservesScrollbar(t *testing.T) {
	engine, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	g, err := engine.Fit(loadGrid(t), fitcolumns.ModeFitColumns, fitcolumns.Viewport{Width: 90, VisibleHeight: 1, ScrollbarWidth: 2})
	if err != nil {
		t.Fatalf("Fit error: %v", err)
	}
	if g.Result.Container != 88 {
		t.Fatalf("container = %d, want 88", g.Result.Container)
	}
}

func TestMeasureNaturalWidths(t *testing.T) {
	engine, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	g, err := engine.Measure(loadGrid(t), 40)
	if err != nil {
		t.Fatalf("Measure error: %v", err)
	}
	// "alpha" is wider than the "name" header; one cell of padding.
	if g.Specs[1].Natural != 6 {
		t.Fatalf("natural width = %d, want 6", g.Specs[1].Natural)
	}
	if g.Cells[0][1] != "alpha" {
		t.Fatalf("cell = %q, want alpha", g.Cells[0][1])
	}
}

type fakeFilter struct {
	width int
	err   error
}

func (f *fakeFilter) FilterVisible(defs []loader.ColumnDef, width int) ([]loader.ColumnDef, error) {
	f.width = width
	if f.err != nil {
		return nil, f.err
	}
	return defs[:1], nil
}

type fakeMeasurer struct{}

func (fakeMeasurer) Cells(rows []map[string]any, fields []string) [][]string {
	return make([][]string, len(rows))
}

func (fakeMeasurer) NaturalWidths(headers []string, _ [][]string) []int {
	out := make([]int, len(headers))
	for i := range out {
		out[i] = 7
	}
	return out
}

func TestEngineUsesInjectedFilterAndMeasurer(t *testing.T) {
	filter := &fakeFilter{}
	engine, err := New(WithFilter(filter), WithMeasurer(fakeMeasurer{}))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	g, err := engine.Fit(loadGrid(t), fitcolumns.ModeFitData, fitcolumns.Viewport{Width: 33})
	if err != nil {
		t.Fatalf("Fit error: %v", err)
	}
	if filter.width != 33 {
		t.Fatalf("filter saw width %d, want 33", filter.width)
	}
	if len(g.Specs) != 1 || g.Specs[0].Natural != 7 {
		t.Fatalf("specs = %+v, want one column of natural width 7", g.Specs)
	}
	// id has an explicit width of 10, which beats its natural width.
	if g.Result.Widths[0] != 10 {
		t.Fatalf("width = %d, want 10", g.Result.Widths[0])
	}
}

func TestEngineFilterError(t *testing.T) {
	boom := errors.New("boom")
	engine, err := New(WithFilter(&fakeFilter{err: boom}))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if _, err := engine.Fit(loadGrid(t), fitcolumns.ModeFitColumns, fitcolumns.Viewport{Width: 10}); !errors.Is(err, boom) {
		t.Fatalf("Fit error = %v, want boom", err)
	}
	if _, err := engine.Measure(nil, 10); err == nil {
		t.Fatalf("expected error for nil definition")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.yaml")
	if err := os.WriteFile(path, []byte(grid), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	def, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if len(def.Columns) != 3 || len(def.Rows) != 2 {
		t.Fatalf("loaded %d columns and %d rows, want 3 and 2", len(def.Columns), len(def.Rows))
	}
}

package loader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/oakwood-commons/gridfit/internal/navigator"
	"github.com/oakwood-commons/gridfit/pkg/fitcolumns"
)

// Definition is a validated grid: layout mode, columns in display order
// and the rows used for natural widths and previews.
type Definition struct {
	// Layout is the mode named in the document, empty when unset.
	Layout  string
	Columns []ColumnDef
	Rows    []map[string]any
}

// ColumnDef is one column as written by the user.
type ColumnDef struct {
	Field       string
	Title       string
	Width       fitcolumns.Width
	MinWidth    int
	Grow        int
	Shrink      int
	Visible     bool
	VisibleWhen string
}

// Header returns the title, or the field name when no title was given.
func (c ColumnDef) Header() string {
	if c.Title != "" {
		return c.Title
	}
	return c.Field
}

// Column converts the definition into an allocator descriptor using
// natural as the measured content width.
func (c ColumnDef) Column(natural int) fitcolumns.Column {
	return fitcolumns.Column{
		ID:       c.Field,
		Width:    c.Width,
		MinWidth: c.MinWidth,
		Grow:     c.Grow,
		Shrink:   c.Shrink,
		Natural:  natural,
	}
}

// AsMap exposes the column to visibility expressions.
func (c ColumnDef) AsMap() map[string]any {
	return map[string]any{
		"field":        c.Field,
		"title":        c.Header(),
		"width":        c.Width.String(),
		"min_width":    int64(c.MinWidth),
		"width_grow":   int64(c.Grow),
		"width_shrink": int64(c.Shrink),
	}
}

// FieldError reports an invalid column entry.
type FieldError struct {
	Index int
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("columns[%d]: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("columns[%d] (%s): %v", e.Index, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

var (
	ErrMissingField   = errors.New("field is required")
	ErrDuplicateField = errors.New("duplicate field")
	ErrNoColumns      = errors.New("no columns defined")
)

type rawDefinition struct {
	Layout      string           `yaml:"layout" json:"layout" toml:"layout"`
	AutoColumns bool             `yaml:"auto_columns" json:"auto_columns" toml:"auto_columns"`
	Columns     []rawColumn      `yaml:"columns" json:"columns" toml:"columns"`
	Rows        []map[string]any `yaml:"rows" json:"rows" toml:"rows"`
}

type rawColumn struct {
	Field       string `yaml:"field" json:"field" toml:"field"`
	Title       string `yaml:"title" json:"title" toml:"title"`
	Width       any    `yaml:"width" json:"width" toml:"width"`
	MinWidth    int    `yaml:"min_width" json:"min_width" toml:"min_width"`
	Grow        *int   `yaml:"width_grow" json:"width_grow" toml:"width_grow"`
	Shrink      int    `yaml:"width_shrink" json:"width_shrink" toml:"width_shrink"`
	Visible     *bool  `yaml:"visible" json:"visible" toml:"visible"`
	VisibleWhen string `yaml:"visible_when" json:"visible_when" toml:"visible_when"`
}

func (r rawDefinition) build() (*Definition, error) {
	if r.AutoColumns {
		r.Columns = r.withInferredColumns()
	}
	if len(r.Columns) == 0 {
		return nil, ErrNoColumns
	}

	def := &Definition{
		Layout:  strings.TrimSpace(r.Layout),
		Columns: make([]ColumnDef, 0, len(r.Columns)),
		Rows:    r.Rows,
	}
	seen := make(map[string]int, len(r.Columns))
	for i, rc := range r.Columns {
		field := strings.TrimSpace(rc.Field)
		if field == "" {
			return nil, &FieldError{Index: i, Err: ErrMissingField}
		}
		if prev, dup := seen[field]; dup {
			return nil, &FieldError{Index: i, Field: field, Err: fmt.Errorf("%w (first at columns[%d])", ErrDuplicateField, prev)}
		}
		seen[field] = i

		width, err := fitcolumns.WidthFromValue(rc.Width)
		if err != nil {
			return nil, &FieldError{Index: i, Field: field, Err: err}
		}

		col := ColumnDef{
			Field:       field,
			Title:       rc.Title,
			Width:       width,
			MinWidth:    rc.MinWidth,
			Grow:        1,
			Shrink:      rc.Shrink,
			Visible:     true,
			VisibleWhen: strings.TrimSpace(rc.VisibleWhen),
		}
		if rc.Grow != nil {
			col.Grow = *rc.Grow
		}
		if rc.Visible != nil {
			col.Visible = *rc.Visible
		}
		def.Columns = append(def.Columns, col)
	}
	return def, nil
}

// withInferredColumns appends a flexible column for every row key that no
// explicit column names, in sorted order.
func (r rawDefinition) withInferredColumns() []rawColumn {
	named := make(map[string]bool, len(r.Columns))
	for _, c := range r.Columns {
		named[strings.TrimSpace(c.Field)] = true
	}
	cols := append([]rawColumn(nil), r.Columns...)
	for _, f := range navigator.InferFields(r.Rows) {
		if !named[f] {
			cols = append(cols, rawColumn{Field: f})
		}
	}
	return cols
}

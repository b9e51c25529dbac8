package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/gridfit/pkg/fitcolumns"
)

const yamlDefinition = `
layout: fitColumns
columns:
  - field: name
    title: Name
    width_grow: 2
    min_width: 10
  - field: size
    width: 12
    width_shrink: 1
  - field: path
    width: "25%"
  - field: notes
    visible: false
  - field: owner
    visible_when: "width >= 100"
rows:
  - {name: foo, size: 3}
  - {name: barbaz, size: 42}
`

const jsonDefinition = `{
  "layout": "fitData",
  "columns": [
    {"field": "id", "width": 6},
    {"field": "title", "min_width": 20}
  ],
  "rows": [{"id": 1, "title": "hello"}]
}`

const tomlDefinition = `
layout = "fitDataFill"

[[columns]]
field = "id"
width = "8"

[[columns]]
field = "title"
width_grow = 3

[[rows]]
id = 1
title = "hello"
`

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Format
	}{
		{name: "yaml", input: yamlDefinition, want: FormatYAML},
		{name: "json", input: jsonDefinition, want: FormatJSON},
		{name: "toml", input: tomlDefinition, want: FormatTOML},
		{name: "toml key values only", input: "layout = \"fitData\"\ncolumns = []", want: FormatTOML},
		{name: "yaml flow", input: "columns: [{field: a}]", want: FormatYAML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFormat([]byte(tt.input)))
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
		ok   bool
	}{
		{"grid.yaml", FormatYAML, true},
		{"grid.YML", FormatYAML, true},
		{"grid.json", FormatJSON, true},
		{"dir/grid.toml", FormatTOML, true},
		{"grid.txt", "", false},
		{"grid", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := FormatFromPath(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseYAML(t *testing.T) {
	def, err := Parse([]byte(yamlDefinition), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, "fitColumns", def.Layout)
	require.Len(t, def.Columns, 5)
	require.Len(t, def.Rows, 2)

	name := def.Columns[0]
	assert.Equal(t, "name", name.Field)
	assert.Equal(t, "Name", name.Header())
	assert.True(t, name.Width.IsAuto())
	assert.Equal(t, 2, name.Grow)
	assert.Equal(t, 10, name.MinWidth)
	assert.True(t, name.Visible)

	size := def.Columns[1]
	assert.Equal(t, fitcolumns.Absolute(12), size.Width)
	assert.Equal(t, 1, size.Shrink)
	assert.Equal(t, 1, size.Grow, "grow defaults to 1")
	assert.Equal(t, "size", size.Header())

	assert.Equal(t, fitcolumns.Percent(25), def.Columns[2].Width)
	assert.False(t, def.Columns[3].Visible)
	assert.Equal(t, "width >= 100", def.Columns[4].VisibleWhen)
	assert.Equal(t, "barbaz", def.Rows[1]["name"])
}

func TestParseJSON(t *testing.T) {
	def, err := Parse([]byte(jsonDefinition), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "fitData", def.Layout)
	require.Len(t, def.Columns, 2)
	assert.Equal(t, fitcolumns.Absolute(6), def.Columns[0].Width)
	assert.Equal(t, 20, def.Columns[1].MinWidth)
	require.Len(t, def.Rows, 1)
}

func TestParseTOML(t *testing.T) {
	def, err := Parse([]byte(tomlDefinition), FormatTOML)
	require.NoError(t, err)
	assert.Equal(t, "fitDataFill", def.Layout)
	require.Len(t, def.Columns, 2)
	assert.Equal(t, fitcolumns.Absolute(8), def.Columns[0].Width)
	assert.Equal(t, 3, def.Columns[1].Grow)
	require.Len(t, def.Rows, 1)
	assert.Equal(t, "hello", def.Rows[0]["title"])
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		format  Format
		wantIs  error
		wantMsg string
	}{
		{name: "empty", input: "  \n", format: FormatYAML, wantIs: ErrEmptyInput},
		{name: "no columns", input: "layout: fitData\n", format: FormatYAML, wantIs: ErrNoColumns},
		{name: "missing field", input: "columns:\n  - title: X\n", format: FormatYAML, wantIs: ErrMissingField},
		{name: "duplicate field", input: "columns:\n  - field: a\n  - field: a\n", format: FormatYAML, wantIs: ErrDuplicateField},
		{name: "bad width string", input: "columns:\n  - field: a\n    width: wide\n", format: FormatYAML, wantMsg: "columns[0] (a)"},
		{name: "bad width type", input: "columns:\n  - field: a\n    width: [1]\n", format: FormatYAML, wantMsg: "unsupported width type"},
		{name: "unknown yaml key", input: "columns:\n  - field: a\n    minWidth: 3\n", format: FormatYAML, wantMsg: "invalid YAML"},
		{name: "unknown json key", input: `{"columns":[{"field":"a","grow":2}]}`, format: FormatJSON, wantMsg: "invalid JSON"},
		{name: "malformed toml", input: "[[columns]\nfield = 1", format: FormatTOML, wantMsg: "invalid TOML"},
		{name: "unsupported format", input: "columns: []", format: Format("xml"), wantMsg: "unsupported format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input), tt.format)
			require.Error(t, err)
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestFieldErrorMessage(t *testing.T) {
	_, err := Parse([]byte("columns:\n  - field: a\n  - field: b\n  - field: a\n"), FormatYAML)
	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, 2, fe.Index)
	assert.Equal(t, "a", fe.Field)
	assert.Contains(t, fe.Error(), "first at columns[0]")
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("by extension", func(t *testing.T) {
		path := filepath.Join(dir, "grid.json")
		require.NoError(t, os.WriteFile(path, []byte(jsonDefinition), 0o600))
		def, err := LoadFile(path)
		require.NoError(t, err)
		assert.Len(t, def.Columns, 2)
	})

	t.Run("detected", func(t *testing.T) {
		path := filepath.Join(dir, "grid.def")
		require.NoError(t, os.WriteFile(path, []byte(tomlDefinition), 0o600))
		def, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "fitDataFill", def.Layout)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(dir, "nope.yaml"))
		require.Error(t, err)
		assert.True(t, os.IsNotExist(err))
	})
}

func TestLoadReader(t *testing.T) {
	def, err := LoadReader(strings.NewReader(yamlDefinition))
	require.NoError(t, err)
	assert.Len(t, def.Columns, 5)
}

func TestColumnDefConversion(t *testing.T) {
	c := ColumnDef{Field: "a", Width: fitcolumns.Percent(10), MinWidth: 4, Grow: 2, Shrink: 1}
	col := c.Column(7)
	assert.Equal(t, fitcolumns.Column{ID: "a", Width: fitcolumns.Percent(10), MinWidth: 4, Grow: 2, Shrink: 1, Natural: 7}, col)

	m := c.AsMap()
	assert.Equal(t, "a", m["field"])
	assert.Equal(t, "a", m["title"])
	assert.Equal(t, "10%", m["width"])
	assert.Equal(t, int64(4), m["min_width"])
}

func TestParseAutoColumns(t *testing.T) {
	def, err := Parse([]byte(`
auto_columns: true
columns:
  - field: size
    width: 8
rows:
  - {name: a, size: 1}
  - {name: b, path: /tmp}
`), FormatYAML)
	require.NoError(t, err)

	fields := make([]string, len(def.Columns))
	for i, c := range def.Columns {
		fields[i] = c.Field
	}
	assert.Equal(t, []string{"size", "name", "path"}, fields, "explicit columns first, then inferred in sorted order")
	assert.Equal(t, fitcolumns.Absolute(8), def.Columns[0].Width)
	assert.True(t, def.Columns[1].Width.IsAuto())
	assert.Equal(t, 1, def.Columns[1].Grow)

	_, err = Parse([]byte("auto_columns: true\nrows: []\n"), FormatYAML)
	require.ErrorIs(t, err, ErrNoColumns)
}

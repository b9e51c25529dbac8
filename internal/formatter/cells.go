package formatter

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/gridfit/internal/navigator"
)

// CellPadding is the gap kept at the right edge of every cell.
// A column of width w shows at most w-CellPadding cells of content.
const CellPadding = 1

// Stringify returns a single-line representation of a row value.
func Stringify(v any) string {
	if v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return escapeScalarString(t)
	case bool, int, int64, uint64, float64:
		return fmt.Sprint(t)
	case map[string]any, []any:
		if b, err := json.Marshal(t); err == nil {
			return string(b)
		}
		return fmt.Sprintf("%v", t)
	default:
		rv := reflect.ValueOf(v)
		switch rv.Kind() { //nolint:exhaustive // only complex types need JSON marshaling
		case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
			if b, err := json.Marshal(v); err == nil {
				return string(b)
			}
		}
		return fmt.Sprintf("%v", v)
	}
}

// escapeScalarString keeps table rows single-line.
func escapeScalarString(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\\n")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return strings.ReplaceAll(s, "\t", " ")
}

// Cells stringifies rows in field order. Fields may be nested paths such
// as "meta.owner". Missing fields become empty cells.
func Cells(rows []map[string]any, fields []string) [][]string {
	out := make([][]string, len(rows))
	for r, row := range rows {
		line := make([]string, len(fields))
		for i, f := range fields {
			if navigator.IsPath(f) {
				line[i] = Stringify(navigator.Value(row, f))
				continue
			}
			line[i] = Stringify(row[f])
		}
		out[r] = line
	}
	return out
}

// NaturalWidths returns, per column, the widest of the header and every
// cell plus CellPadding.
func NaturalWidths(headers []string, cells [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range cells {
		for i, val := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(val))
			}
		}
	}
	for i := range widths {
		widths[i] += CellPadding
	}
	return widths
}

// truncate shortens s to maxLen display cells, ending in an ellipsis when
// anything was cut.
func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	return runewidth.Truncate(s, maxLen, "…")
}

// padRight pads s with spaces to width display cells, truncating if longer.
func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return truncate(s, width)
	}
	return s + strings.Repeat(" ", width-w)
}

// cell fits s into a column of the given width.
func cell(s string, width int) string {
	if width <= 0 {
		return ""
	}
	content := width - CellPadding
	if content <= 0 {
		return strings.Repeat(" ", width)
	}
	return padRight(s, content) + strings.Repeat(" ", CellPadding)
}

package formatter

import (
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/gridfit/pkg/fitcolumns"
)

// RenderWidths lists each column's requested and final width followed by
// the totals of the layout.
func RenderWidths(columns []fitcolumns.Column, res fitcolumns.Result, noColor bool) string {
	rows := [][]string{{"COLUMN", "REQUESTED", "WIDTH"}}
	for i, c := range columns {
		w := 0
		if i < len(res.Widths) {
			w = res.Widths[i]
		}
		rows = append(rows, []string{c.ID, c.Width.String(), strconv.Itoa(w)})
	}

	colWidths := make([]int, 3)
	for _, row := range rows {
		for i, v := range row {
			colWidths[i] = max(colWidths[i], lipgloss.Width(v))
		}
	}

	var b strings.Builder
	for r, row := range rows {
		parts := make([]string, len(row))
		for i, v := range row {
			parts[i] = padRight(v, colWidths[i])
		}
		line := strings.TrimRight(strings.Join(parts, "  "), " ")
		if r == 0 && !noColor {
			line = headerStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n")
	b.WriteString("mode:      " + string(res.Mode) + "\n")
	b.WriteString("container: " + strconv.Itoa(res.Container) + "\n")
	b.WriteString("total:     " + strconv.Itoa(res.Total) + "\n")
	if res.Overflow > 0 {
		line := "overflow:  " + strconv.Itoa(res.Overflow)
		if !noColor {
			line = overflowStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

package formatter

import (
	"fmt"
	"strings"
)

// PreviewOptions configures RenderPreview.
type PreviewOptions struct {
	NoColor bool
	// Container is the width the layout was fitted to; content past it is
	// reported as overflow. 0 disables the report.
	Container int
	// VisibleRows limits the rows shown; 0 shows all.
	VisibleRows int
	// ScrollbarWidth is drawn beside the rows when they are cut off.
	ScrollbarWidth int
}

// RenderPreview draws headers and cells using exactly the given column
// widths. Every line is sum(widths) cells wide, plus the scrollbar gutter
// when rows are cut off.
func RenderPreview(headers []string, cells [][]string, widths []int, opts PreviewOptions) string {
	if len(headers) == 0 {
		return ""
	}

	shown := cells
	scrolling := opts.VisibleRows > 0 && len(cells) > opts.VisibleRows
	if scrolling {
		shown = cells[:opts.VisibleRows]
	}
	gutter := 0
	if scrolling {
		gutter = max(opts.ScrollbarWidth, 0)
	}

	var b strings.Builder

	header := renderLine(headers, widths)
	if !opts.NoColor {
		header = headerStyle.Render(header)
	}
	b.WriteString(header + strings.Repeat(" ", gutter) + "\n")

	seps := make([]string, len(widths))
	for i, w := range widths {
		if w > 0 {
			seps[i] = strings.Repeat("─", max(w-CellPadding, 0)) + strings.Repeat(" ", min(CellPadding, w))
		}
	}
	sep := strings.Join(seps, "")
	if !opts.NoColor {
		sep = separatorStyle.Render(sep)
	}
	b.WriteString(sep + strings.Repeat(" ", gutter) + "\n")

	thumb := 0
	if scrolling {
		thumb = max(1, opts.VisibleRows*opts.VisibleRows/len(cells))
	}
	for r, row := range shown {
		b.WriteString(renderLine(row, widths))
		if gutter > 0 {
			glyph := "░"
			if r < thumb {
				glyph = "█"
			}
			bar := strings.Repeat(glyph, gutter)
			if !opts.NoColor {
				bar = separatorStyle.Render(bar)
			}
			b.WriteString(bar)
		}
		b.WriteString("\n")
	}

	if scrolling {
		b.WriteString(fmt.Sprintf("rows 1-%d of %d\n", len(shown), len(cells)))
	}

	if opts.Container > 0 {
		total := 0
		for _, w := range widths {
			total += w
		}
		if overflow := total + gutter - opts.Container; overflow > 0 {
			msg := fmt.Sprintf("overflow: %d cells past the %d-cell container", overflow, opts.Container)
			if !opts.NoColor {
				msg = overflowStyle.Render(msg)
			}
			b.WriteString(msg + "\n")
		}
	}

	return b.String()
}

func renderLine(values []string, widths []int) string {
	var b strings.Builder
	for i, w := range widths {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		b.WriteString(cell(v, w))
	}
	return b.String()
}

package formatter

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"github.com/oakwood-commons/gridfit/pkg/fitcolumns"
)

// FormatMarkdown renders the layout as a GitHub-flavored Markdown table
// followed by a one-line summary.
func FormatMarkdown(columns []fitcolumns.Column, res fitcolumns.Result) string {
	var b strings.Builder
	b.WriteString("| Column | Requested | Width |\n")
	b.WriteString("| --- | --- | --- |\n")
	for i, c := range columns {
		w := 0
		if i < len(res.Widths) {
			w = res.Widths[i]
		}
		fmt.Fprintf(&b, "| %s | %s | %d |\n", escapeMarkdownCell(c.ID), c.Width, w)
	}
	fmt.Fprintf(&b, "\nMode **%s**, container %d, total %d, overflow %d.\n",
		res.Mode, res.Container, res.Total, res.Overflow)
	return b.String()
}

// FormatHTML renders FormatMarkdown as an HTML fragment.
func FormatHTML(columns []fitcolumns.Column, res fitcolumns.Result) string {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return string(markdown.ToHTML([]byte(FormatMarkdown(columns, res)), p, renderer))
}

func escapeMarkdownCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

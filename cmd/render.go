package cmd

import (
	"fmt"
	"io"

	"github.com/go-logr/logr"

	"github.com/oakwood-commons/gridfit/internal/formatter"
	"github.com/oakwood-commons/gridfit/pkg/core"
	"github.com/oakwood-commons/gridfit/pkg/fitcolumns"
	"github.com/oakwood-commons/gridfit/pkg/loader"
	"github.com/oakwood-commons/gridfit/pkg/logger"
)

// computeLayout filters the visible columns for the container, measures
// their content and runs the selected layout mode.
func computeLayout(lgr logr.Logger, def *loader.Definition, engine *core.Engine, opts renderOptions) (core.Grid, error) {
	mode := resolveMode(lgr, opts, def)
	grid, err := engine.Fit(def, mode, fitcolumns.Viewport{
		Width:          opts.Width,
		VisibleHeight:  opts.VisibleRows,
		ScrollbarWidth: opts.ScrollbarWidth,
	})
	if err != nil {
		return core.Grid{}, definitionError{File: inputName(opts), Err: err}
	}
	logPasses(lgr, grid.Result)
	return grid, nil
}

func logPasses(lgr logr.Logger, res fitcolumns.Result) {
	dbg := lgr.V(1)
	if !dbg.Enabled() {
		return
	}
	for _, p := range res.Passes {
		dbg.Info("solver pass",
			"phase", string(p.Phase),
			"iteration", p.Iteration,
			"space", p.Space,
			"units", p.Units,
			"unit_width", p.UnitWidth,
			"pinned", p.Pinned,
			"remainder", p.Remainder)
	}
	dbg.Info("layout computed",
		logger.ModeKey, string(res.Mode),
		logger.ContainerKey, res.Container,
		logger.ColumnsKey, len(res.Widths),
		"widths", res.Widths,
		"overflow", res.Overflow)
}

// renderDefinition computes the layout and writes it in the selected
// output format.
func renderDefinition(w io.Writer, lgr logr.Logger, def *loader.Definition, engine *core.Engine, opts renderOptions) error {
	g, err := computeLayout(lgr, def, engine, opts)
	if err != nil {
		return err
	}

	var out string
	switch opts.Output {
	case outputTable:
		out = formatter.RenderPreview(g.Titles, g.Cells, g.Result.Widths, formatter.PreviewOptions{
			NoColor:        opts.NoColor,
			Container:      g.Viewport.Width,
			VisibleRows:    g.Viewport.VisibleHeight,
			ScrollbarWidth: g.Viewport.ScrollbarWidth,
		})
		if opts.WindowNote != "" {
			out += "window: " + opts.WindowNote + "\n"
		}
	case outputWidths:
		out = formatter.RenderWidths(g.Specs, g.Result, opts.NoColor)
	case outputJSON:
		out, err = formatter.FormatJSON(formatter.NewReport(g.Specs, g.Result, true))
	case outputYAML:
		out, err = formatter.FormatYAML(formatter.NewReport(g.Specs, g.Result, true), 2)
	case outputExplain:
		out = formatter.FormatPasses(g.Specs, g.Result)
	case outputMarkdown:
		out = formatter.FormatMarkdown(g.Specs, g.Result)
	case outputHTML:
		out = formatter.FormatHTML(g.Specs, g.Result)
	default:
		return outputFormatError{Value: opts.Output, Allowed: outputFormats}
	}
	if err != nil {
		return fmt.Errorf("format %s: %w", opts.Output, err)
	}

	_, err = io.WriteString(w, out)
	return err
}

func inputName(opts renderOptions) string {
	if opts.Input.Path == "" {
		return "<stdin>"
	}
	return opts.Input.Path
}

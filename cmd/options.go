package cmd

import (
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/oakwood-commons/gridfit/internal/config"
	"github.com/oakwood-commons/gridfit/internal/limiter"
	"github.com/oakwood-commons/gridfit/pkg/settings"
)

const (
	outputTable    = "table"
	outputWidths   = "widths"
	outputJSON     = "json"
	outputYAML     = "yaml"
	outputExplain  = "explain"
	outputMarkdown = "markdown"
	outputHTML     = "html"
)

// outputAnnotation on a command forces its output format.
const outputAnnotation = "gridfit/output"

var outputFormats = []string{outputTable, outputWidths, outputJSON, outputYAML, outputExplain, outputMarkdown, outputHTML}

// defaultFallbackTermWidth is used when no terminal size can be detected.
const defaultFallbackTermWidth = 80

var termGetSize = term.GetSize

// renderOptions is the run configuration after flags are layered over
// config defaults.
type renderOptions struct {
	*settings.Run
	// ModeFromFlag is set when --mode was given, so it beats the
	// definition's own layout.
	ModeFromFlag bool
	// FixedWidth is the width requested by flag or config; 0 follows the
	// terminal.
	FixedWidth int
	// Rows is the window of rows measured and shown.
	Rows limiter.Config
	// WindowNote describes Rows against the full row count.
	WindowNote string
	Theme      config.ThemeConfig
}

func resolveOptions(cmd *cobra.Command, cfg config.Config) (renderOptions, error) {
	run := settings.NewCliParams()
	if debug {
		run.MinLogLevel = -1
	}

	run.Output = cfg.Output.Format
	if f := cmd.Flags().Lookup("output"); f != nil && f.Changed {
		run.Output = output
	}
	// Subcommands such as explain fix the format.
	if forced, ok := cmd.Annotations[outputAnnotation]; ok {
		run.Output = forced
	}
	run.Output = strings.ToLower(strings.TrimSpace(run.Output))
	if !validOutput(run.Output) {
		return renderOptions{}, outputFormatError{Value: run.Output, Allowed: outputFormats}
	}

	run.NoColor = cfg.Output.NoColor || noColor || os.Getenv("NO_COLOR") != "" || stdoutIsPiped()

	run.Mode = cfg.Layout.Mode
	fromFlag := layoutMode.set
	if fromFlag {
		run.Mode = layoutMode.String()
	}

	fixed := cfg.Layout.Width
	if containerWidth > 0 {
		fixed = containerWidth
	}
	run.Width = fixed
	if run.Width <= 0 {
		run.Width = detectTerminalWidth()
	}

	run.ScrollbarWidth = cfg.Layout.ScrollbarWidth
	if scrollbarWidth >= 0 {
		run.ScrollbarWidth = scrollbarWidth
	}
	run.VisibleRows = cfg.Layout.VisibleRows
	if visibleRows >= 0 {
		run.VisibleRows = visibleRows
	}

	window := limiter.Config{Limit: rowLimit, Offset: rowOffset, Tail: rowTail}
	if err := window.Validate(); err != nil {
		return renderOptions{}, flagError{Err: err}
	}

	return renderOptions{
		Run:          run,
		ModeFromFlag: fromFlag,
		FixedWidth:   fixed,
		Rows:         window,
		Theme:        cfg.Theme,
	}, nil
}

func validOutput(s string) bool {
	for _, f := range outputFormats {
		if s == f {
			return true
		}
	}
	return false
}

// detectTerminalWidth tries stdout, stderr and stdin, then $COLUMNS.
func detectTerminalWidth() int {
	fds := []uintptr{os.Stdout.Fd(), os.Stderr.Fd(), os.Stdin.Fd()}
	for _, fd := range fds {
		if w, _, err := termGetSize(int(fd)); err == nil && w > 0 {
			return w
		}
	}
	if col := os.Getenv("COLUMNS"); col != "" {
		if w, err := strconv.Atoi(col); err == nil && w > 0 {
			return w
		}
	}
	return defaultFallbackTermWidth
}

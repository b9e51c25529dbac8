// Package tui embeds the interactive gridfit preview in other programs and
// renders single frames of it without a terminal.
package tui

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/go-logr/logr"
	"golang.org/x/term"

	"github.com/oakwood-commons/gridfit/internal/config"
	"github.com/oakwood-commons/gridfit/internal/formatter"
	"github.com/oakwood-commons/gridfit/internal/ui"
	"github.com/oakwood-commons/gridfit/pkg/core"
	"github.com/oakwood-commons/gridfit/pkg/fitcolumns"
	"github.com/oakwood-commons/gridfit/pkg/loader"
)

// defaultFallbackTermWidth is used when terminal size cannot be detected.
const defaultFallbackTermWidth = 80

// defaultFallbackTermHeight is used when terminal size cannot be detected.
const defaultFallbackTermHeight = 24

// Config holds host-provided settings for the preview.
type Config struct {
	// Width and Height size the window. Zero follows the terminal for Run
	// and the detected terminal size for Snapshot.
	Width  int
	Height int

	Mode           fitcolumns.Mode
	ScrollbarWidth int
	NoColor        bool
	Theme          config.ThemeConfig

	// StartKeys are replayed before the first frame, e.g. "m" to cycle the
	// mode or "/", "f", "o" to filter.
	StartKeys []string

	Engine *core.Engine
	Logger *logr.Logger
}

// DefaultConfig returns the CLI defaults from the embedded config.
func DefaultConfig() Config {
	cfg := Config{Mode: fitcolumns.DefaultMode, ScrollbarWidth: 1}
	if def, err := config.Default(); err == nil {
		if mode, ok := fitcolumns.ParseMode(def.Layout.Mode); ok {
			cfg.Mode = mode
		}
		cfg.ScrollbarWidth = def.Layout.ScrollbarWidth
		cfg.NoColor = def.Output.NoColor
		cfg.Theme = def.Theme
	}
	return cfg
}

// DetectTerminalSize returns the best-effort terminal width and height by probing
// stdout, stderr, and stdin, then falling back to the COLUMNS and LINES
// environment variables, then 80x24.
func DetectTerminalSize() (width int, height int) {
	fds := []uintptr{os.Stdout.Fd(), os.Stderr.Fd(), os.Stdin.Fd()}
	for _, fd := range fds {
		if w, h, err := term.GetSize(int(fd)); err == nil && w > 0 && h > 0 {
			return w, h
		}
	}
	width, height = defaultFallbackTermWidth, defaultFallbackTermHeight
	if col, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && col > 0 {
		width = col
	}
	if lines, err := strconv.Atoi(os.Getenv("LINES")); err == nil && lines > 0 {
		height = lines
	}
	return width, height
}

func newModel(def *loader.Definition, cfg Config) (*ui.Model, error) {
	if def == nil {
		return nil, fmt.Errorf("definition is nil")
	}
	engine := cfg.Engine
	if engine == nil {
		var err error
		if engine, err = core.New(); err != nil {
			return nil, err
		}
	}
	return ui.NewModel(def, engine, ui.Options{
		Mode:           cfg.Mode,
		ScrollbarWidth: cfg.ScrollbarWidth,
		NoColor:        cfg.NoColor,
		Colors:         formatter.ColorsFromTheme(cfg.Theme),
		Logger:         cfg.Logger,
	}), nil
}

// Run starts the preview and blocks until the user quits or ctx is
// cancelled. Host applications can pass tea.ProgramOption values to
// control IO.
func Run(ctx context.Context, def *loader.Definition, cfg Config, opts ...tea.ProgramOption) error {
	m, err := newModel(def, cfg)
	if err != nil {
		return err
	}
	if len(cfg.StartKeys) > 0 {
		m.SetSize(cfg.Width, cfg.Height)
		replayKeys(m, cfg.StartKeys)
	}
	return ui.Run(ctx, m, cfg.Width, cfg.Height, opts...)
}

// Snapshot lays def out for the configured window, replays StartKeys and
// returns the rendered frame.
func Snapshot(def *loader.Definition, cfg Config) (string, error) {
	m, err := newModel(def, cfg)
	if err != nil {
		return "", err
	}
	w, h := cfg.Width, cfg.Height
	if w <= 0 || h <= 0 {
		dw, dh := DetectTerminalSize()
		if w <= 0 {
			w = dw
		}
		if h <= 0 {
			h = dh
		}
	}
	m.SetSize(w, h)
	replayKeys(m, cfg.StartKeys)
	if msg := m.Err(); msg != "" {
		return "", fmt.Errorf("layout: %s", msg)
	}
	return fmt.Sprint(m.View().Content), nil
}

func replayKeys(m *ui.Model, keys []string) {
	for _, k := range keys {
		m.Update(KeyMsg(k))
	}
}

// KeyMsg converts a key name ("enter", "esc", "backspace", "down", "up"
// or a single character) into a key press.
func KeyMsg(k string) tea.KeyPressMsg {
	switch strings.ToLower(k) {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEsc}
	case "backspace":
		return tea.KeyPressMsg{Code: tea.KeyBackspace}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	}
	r := []rune(k)
	if len(r) == 0 {
		return tea.KeyPressMsg{}
	}
	return tea.KeyPressMsg{Code: r[0], Text: string(r[0])}
}

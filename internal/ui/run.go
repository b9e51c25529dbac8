package ui

import (
	"context"
	"os"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"
)

// NewProgram wraps m in a Bubble Tea program bound to ctx. A width or
// height above zero pins the window size; the other dimension is taken
// from the terminal, falling back to 80x24.
func NewProgram(ctx context.Context, m *Model, width, height int, opts ...tea.ProgramOption) *tea.Program {
	if width > 0 || height > 0 {
		runW, runH := width, height
		if runW <= 0 || runH <= 0 {
			if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
				if runW <= 0 {
					runW = w
				}
				if runH <= 0 {
					runH = h
				}
			}
		}
		if runW <= 0 {
			runW = 80
		}
		if runH <= 0 {
			runH = 24
		}
		m.SetSize(runW, runH)
		opts = append(opts, tea.WithWindowSize(runW, runH))
	}
	opts = append(opts, tea.WithContext(ctx))
	return tea.NewProgram(m, opts...)
}

// Run starts the interactive preview and blocks until the user quits or
// ctx is cancelled.
func Run(ctx context.Context, m *Model, width, height int, opts ...tea.ProgramOption) error {
	_, err := NewProgram(ctx, m, width, height, opts...).Run()
	return err
}

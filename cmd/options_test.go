package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/gridfit/internal/config"
	"github.com/oakwood-commons/gridfit/pkg/fitcolumns"
)

func TestModeValue(t *testing.T) {
	tests := []struct {
		in      string
		want    fitcolumns.Mode
		wantErr bool
	}{
		{in: "fitColumns", want: fitcolumns.ModeFitColumns},
		{in: "FITDATA", want: fitcolumns.ModeFitData},
		{in: " fitDataFill ", want: fitcolumns.ModeFitDataFill},
		{in: "stretch", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			m := newModeValue()
			err := m.Set(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.False(t, m.set)
				return
			}
			require.NoError(t, err)
			assert.True(t, m.set)
			assert.Equal(t, string(tt.want), m.String())
		})
	}

	m := newModeValue()
	assert.Equal(t, "fitData|fitDataFill|fitColumns", m.Type())
}

func TestResolveOptions(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)
	cfg.Layout.Width = 90
	cfg.Layout.VisibleRows = 5

	t.Run("config values", func(t *testing.T) {
		resetRootCmdState(t)
		stdoutIsPiped = func() bool { return false }
		t.Setenv("NO_COLOR", "")

		opts, err := resolveOptions(rootCmd, cfg)
		require.NoError(t, err)
		assert.Equal(t, outputTable, opts.Output)
		assert.Equal(t, "fitColumns", opts.Mode)
		assert.False(t, opts.ModeFromFlag)
		assert.Equal(t, 90, opts.Width)
		assert.Equal(t, 90, opts.FixedWidth)
		assert.Equal(t, 1, opts.ScrollbarWidth)
		assert.Equal(t, 5, opts.VisibleRows)
		assert.False(t, opts.NoColor)
	})

	t.Run("flags win", func(t *testing.T) {
		resetRootCmdState(t)
		require.NoError(t, rootCmd.Flags().Set("output", "JSON"))
		require.NoError(t, rootCmd.PersistentFlags().Set("mode", "fitData"))
		containerWidth = 40
		scrollbarWidth = 0
		visibleRows = 0

		opts, err := resolveOptions(rootCmd, cfg)
		require.NoError(t, err)
		assert.Equal(t, outputJSON, opts.Output)
		assert.Equal(t, "fitData", opts.Mode)
		assert.True(t, opts.ModeFromFlag)
		assert.Equal(t, 40, opts.Width)
		assert.Equal(t, 0, opts.ScrollbarWidth)
		assert.Equal(t, 0, opts.VisibleRows)
		assert.True(t, opts.NoColor, "piped stdout disables color")
	})

	t.Run("debug lowers the log level", func(t *testing.T) {
		resetRootCmdState(t)
		debug = true
		opts, err := resolveOptions(rootCmd, cfg)
		require.NoError(t, err)
		assert.Equal(t, int8(-1), opts.MinLogLevel)
	})

	t.Run("invalid output", func(t *testing.T) {
		resetRootCmdState(t)
		bad := cfg
		bad.Output.Format = "xml"
		_, err := resolveOptions(rootCmd, bad)
		var outErr outputFormatError
		require.ErrorAs(t, err, &outErr)
		assert.Equal(t, "xml", outErr.Value)
	})

	t.Run("explain annotation forces output", func(t *testing.T) {
		resetRootCmdState(t)
		opts, err := resolveOptions(explainCmd, cfg)
		require.NoError(t, err)
		assert.Equal(t, outputExplain, opts.Output)
	})

	t.Run("terminal width when unset", func(t *testing.T) {
		resetRootCmdState(t)
		orig := termGetSize
		termGetSize = func(int) (int, int, error) { return 0, 0, errors.New("not a terminal") }
		t.Cleanup(func() { termGetSize = orig })
		t.Setenv("COLUMNS", "132")

		zero := cfg
		zero.Layout.Width = 0
		opts, err := resolveOptions(rootCmd, zero)
		require.NoError(t, err)
		assert.Equal(t, 132, opts.Width)
		assert.Equal(t, 0, opts.FixedWidth)
	})
}

func TestDetectTerminalWidth(t *testing.T) {
	orig := termGetSize
	t.Cleanup(func() { termGetSize = orig })

	termGetSize = func(int) (int, int, error) { return 101, 30, nil }
	assert.Equal(t, 101, detectTerminalWidth())

	termGetSize = func(int) (int, int, error) { return 0, 0, errors.New("no tty") }
	t.Setenv("COLUMNS", "oops")
	assert.Equal(t, defaultFallbackTermWidth, detectTerminalWidth())
}

func TestIsPiped(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "in")
	require.NoError(t, err)
	assert.True(t, isPiped(f), "regular file")

	require.NoError(t, f.Close())
	assert.False(t, isPiped(f), "stat error")
}

func TestExitCodeAndPrintError(t *testing.T) {
	defErr := definitionError{File: "grid.yaml", Err: errors.New("boom")}
	tests := []struct {
		name     string
		err      error
		code     int
		contains []string
	}{
		{name: "nil", err: nil, code: 0},
		{name: "generic", err: errors.New("nope"), code: exitFailure, contains: []string{"Error: nope"}},
		{name: "output", err: outputFormatError{Value: "csv", Allowed: outputFormats}, code: exitUsage, contains: []string{`"csv"`, "table, widths, json, yaml, explain, markdown, html"}},
		{name: "definition", err: defErr, code: exitDefinition, contains: []string{"invalid definition grid.yaml: boom", "non-empty columns list"}},
		{name: "wrapped definition", err: fmt.Errorf("reload: %w", defErr), code: exitDefinition, contains: []string{"reload: invalid definition"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, ExitCode(tt.err))
			if tt.err == nil {
				return
			}
			var buf bytes.Buffer
			PrintError(&buf, tt.err)
			for _, c := range tt.contains {
				assert.Contains(t, buf.String(), c)
			}
		})
	}

	var buf bytes.Buffer
	PrintError(&buf, definitionError{File: "<stdin>", Err: errors.New("empty input")})
	assert.NotContains(t, buf.String(), "non-empty columns list")
}

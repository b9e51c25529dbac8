package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/oakwood-commons/gridfit/internal/config"
	"github.com/oakwood-commons/gridfit/internal/formatter"
	"github.com/oakwood-commons/gridfit/internal/limiter"
	"github.com/oakwood-commons/gridfit/internal/ui"
	"github.com/oakwood-commons/gridfit/pkg/core"
	"github.com/oakwood-commons/gridfit/pkg/fitcolumns"
	"github.com/oakwood-commons/gridfit/pkg/loader"
	"github.com/oakwood-commons/gridfit/pkg/logger"
	"github.com/oakwood-commons/gridfit/pkg/settings"
	"github.com/oakwood-commons/gridfit/pkg/tui"
)

// errShowHelp is returned when no input is given and help should be shown.
var errShowHelp = errors.New("no input provided")

var (
	interactive    bool
	snapshot       bool
	snapshotHeight int
	watch          bool
	output         string
	configFile     string
	debug          bool
	noColor        bool
	containerWidth int
	scrollbarWidth int
	visibleRows    int
	rowLimit       int
	rowOffset      int
	rowTail        int
	layoutMode     = newModeValue()
)

var (
	stdinIsPiped            = func() bool { return isPiped(os.Stdin) }
	stdoutIsPiped           = func() bool { return isPiped(os.Stdout) }
	stdin         io.Reader = os.Stdin
)

// isPiped reports whether f is not a character device. A file that cannot
// be stat'ed counts as a terminal.
func isPiped(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

var rootCtx = context.Background()

var rootCmd = &cobra.Command{
	Use:   settings.CliBinaryName + " [file]",
	Short: "Fit grid columns into a container width",
	Long: `gridfit computes column widths for a grid definition and previews them.

The fitColumns mode distributes the container width across flexible columns
by their grow weights, pins columns that would fall below their minimum
width, and shrinks fixed columns by their shrink weights when the total
overflows. fitData and fitDataFill size columns from their content instead.`,
	Example:       "\n  gridfit grid.yaml\n  gridfit grid.yaml --width 120 -o widths\n  gridfit grid.toml --mode fitDataFill -o json\n  cat grid.json | gridfit --visible-rows 10\n  gridfit grid.yaml -i --watch\n  gridfit grid.yaml --snapshot --width 100\n  gridfit big.json --tail 50 -o widths\n",
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		// debug => zap.DebugLevel (-1), else zap.InfoLevel (0)
		var level int8 = 0
		if debug {
			level = -1
		}
		lgr := logger.Get(level)
		lgr = logger.WithValues(lgr, logger.RootCommandKey, settings.CliBinaryName, logger.SubCommandKey, cmd.Name())
		rootCtx = logger.WithLogger(context.Background(), lgr)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		err := run(cmd, args)
		if errors.Is(err, errShowHelp) {
			return cmd.Help()
		}
		return err
	},
}

func init() { //nolint:gochecknoinits
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config-file", "", "path to a YAML config file")
	flags.BoolVar(&debug, "debug", false, "log solver passes and debug events to stderr")

	flags.BoolVar(&watch, "watch", false, "re-run the layout when the definition file changes")
	flags.BoolVar(&noColor, "no-color", false, "disable color output")
	flags.IntVar(&containerWidth, "width", 0, "container width in cells (0 = config, then terminal width)")
	flags.IntVar(&scrollbarWidth, "scrollbar", -1, "scrollbar width reserved when rows overflow (default from config)")
	flags.IntVar(&visibleRows, "visible-rows", -1, "rows visible without scrolling; 0 shows all (default from config)")
	flags.IntVar(&rowLimit, "limit", 0, "measure and show only the first N rows (after --offset)")
	flags.IntVar(&rowOffset, "offset", 0, "skip the first N rows")
	flags.IntVar(&rowTail, "tail", 0, "measure and show only the last N rows")
	flags.Var(layoutMode, "mode", "layout mode: "+layoutMode.Type()+" (default from definition, then config)")

	rootCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "preview in an interactive terminal UI that re-fits on resize")
	rootCmd.Flags().BoolVar(&snapshot, "snapshot", false, "render a single frame of the interactive view and exit; honors --width/--height")
	rootCmd.Flags().IntVar(&snapshotHeight, "height", 0, "window height for --snapshot (0 = every row plus header and status)")
	rootCmd.Flags().StringVarP(&output, "output", "o", "", "output format: "+strings.Join(outputFormats, "|")+" (default from config)")

	rootCmd.Version = cliVersionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(explainCmd)
}

func Execute() error {
	return rootCmd.Execute()
}

func run(cmd *cobra.Command, args []string) error {
	lgr := logger.FromContext(rootCtx)

	cfg, err := config.Load(config.ResolvePath(configFile))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	opts, err := resolveOptions(cmd, cfg)
	if err != nil {
		return err
	}

	path, def, err := loadDefinition(args)
	if err != nil {
		return err
	}
	opts.WindowNote = opts.Rows.Describe(len(def.Rows))
	def = windowRows(def, opts.Rows)
	opts.Input = settings.InputSettings{FromStdin: path == "", Path: path}
	lgr = logger.WithValues(lgr, logger.InputKey, path)
	rootCtx = logger.WithLogger(settings.IntoContext(rootCtx, opts.Run), lgr)

	engine, err := core.New()
	if err != nil {
		return err
	}
	formatter.SetTableTheme(formatter.ColorsFromTheme(cfg.Theme))

	ctx, stop := signalContext(rootCtx)
	defer stop()

	if snapshot {
		return renderSnapshot(cmd.OutOrStdout(), *lgr, def, engine, opts)
	}
	if interactive {
		return runInteractive(ctx, *lgr, def, engine, opts, path)
	}

	out := cmd.OutOrStdout()
	if err := renderDefinition(out, *lgr, def, engine, opts); err != nil {
		return err
	}
	if !watch {
		return nil
	}
	err = watchFile(ctx, *lgr, path, func(next *loader.Definition) {
		fmt.Fprintln(out)
		opts.WindowNote = opts.Rows.Describe(len(next.Rows))
		if err := renderDefinition(out, *lgr, windowRows(next, opts.Rows), engine, opts); err != nil {
			PrintError(cmd.ErrOrStderr(), err)
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// loadDefinition reads the definition from the file argument, or from stdin
// when it is piped or the argument is "-". The returned path is empty for
// stdin.
func loadDefinition(args []string) (string, *loader.Definition, error) {
	if len(args) == 0 || args[0] == "-" {
		if len(args) == 0 && !stdinIsPiped() {
			return "", nil, errShowHelp
		}
		if watch {
			return "", nil, errors.New("--watch needs a definition file, not stdin")
		}
		def, err := loader.LoadReader(stdin)
		if err != nil {
			return "", nil, definitionError{File: "<stdin>", Err: err}
		}
		return "", def, nil
	}

	path := args[0]
	def, err := loader.LoadFile(path)
	if err != nil {
		return "", nil, definitionError{File: path, Err: err}
	}
	return path, def, nil
}

// windowRows returns def restricted to the --limit/--offset/--tail window.
func windowRows(def *loader.Definition, window limiter.Config) *loader.Definition {
	if !window.IsActive() {
		return def
	}
	windowed := *def
	windowed.Rows = limiter.Apply(window, def.Rows)
	return &windowed
}

func runInteractive(ctx context.Context, lgr logr.Logger, def *loader.Definition, engine *core.Engine, opts renderOptions, path string) error {
	mode := resolveMode(lgr, opts, def)
	m := ui.NewModel(def, engine, ui.Options{
		Mode:           mode,
		ScrollbarWidth: opts.ScrollbarWidth,
		NoColor:        opts.NoColor,
		Colors:         formatter.ColorsFromTheme(opts.Theme),
		Logger:         &lgr,
	})

	// An explicit width pins the window; otherwise Bubble Tea reports the
	// terminal size and resizes.
	p := ui.NewProgram(ctx, m, opts.FixedWidth, 0)

	if watch {
		go func() {
			err := watchFile(ctx, lgr, path, func(next *loader.Definition) {
				p.Send(ui.DefinitionMsg{Def: windowRows(next, opts.Rows)})
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				lgr.Error(err, "watch stopped")
			}
		}()
	}

	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}

// renderSnapshot prints one frame of the interactive view.
func renderSnapshot(w io.Writer, lgr logr.Logger, def *loader.Definition, engine *core.Engine, opts renderOptions) error {
	height := snapshotHeight
	if height <= 0 {
		rows := len(def.Rows)
		if opts.VisibleRows > 0 {
			rows = min(rows, opts.VisibleRows)
		}
		// header, separator and status lines
		height = rows + 3
	}
	frame, err := tui.Snapshot(def, tui.Config{
		Width:          opts.Width,
		Height:         height,
		Mode:           resolveMode(lgr, opts, def),
		ScrollbarWidth: opts.ScrollbarWidth,
		NoColor:        opts.NoColor,
		Theme:          opts.Theme,
		Engine:         engine,
		Logger:         &lgr,
	})
	if err != nil {
		return definitionError{File: inputName(opts), Err: err}
	}
	_, err = fmt.Fprintln(w, frame)
	return err
}

// resolveMode picks the --mode flag, then the definition's layout, then the
// config. Unknown names fall back to fitData with a warning.
func resolveMode(lgr logr.Logger, opts renderOptions, def *loader.Definition) fitcolumns.Mode {
	requested := opts.Mode
	source := "config"
	switch {
	case opts.ModeFromFlag:
		source = "flag"
	case def != nil && def.Layout != "":
		requested = def.Layout
		source = "definition"
	}

	mode, ok := fitcolumns.ParseMode(requested)
	if !ok {
		lgr.Info("unknown layout mode, falling back",
			"requested", requested, "source", source, logger.ModeKey, string(mode))
	}
	return mode
}

// Package settings provides build metadata, runtime configuration, and
// context helpers used across the gridfit CLI and library packages.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "gridfit"

// VersionInformation is populated at build time via ldflags and holds the
// commit hash, semantic version, and build timestamp of the running binary.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build, including the commit hash,
// build version, and build timestamp.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// InputSettings records where the column definition came from.
type InputSettings struct {
	FromStdin bool
	Path      string
}

// Run holds configuration settings for a single execution of the application:
// logging level, input source, output preferences, and the resolved layout
// parameters after config and flags are merged.
type Run struct {
	MinLogLevel int8
	Input       InputSettings
	NoColor     bool
	Output      string

	Mode           string
	Width          int
	ScrollbarWidth int
	VisibleRows    int
}

// NewCliParams returns a Run with the CLI defaults: info logging, colored
// table output, and a terminal-width container.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel:    0,
		Output:         "table",
		ScrollbarWidth: 1,
	}
}

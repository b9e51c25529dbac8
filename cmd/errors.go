package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Process exit codes.
const (
	exitFailure    = 1
	exitUsage      = 2
	exitDefinition = 3
)

type definitionError struct {
	File string
	Err  error
}

func (e definitionError) Error() string {
	return fmt.Sprintf("invalid definition %s: %v", e.File, e.Err)
}

func (e definitionError) Unwrap() error { return e.Err }

type outputFormatError struct {
	Value   string
	Allowed []string
}

func (e outputFormatError) Error() string {
	return fmt.Sprintf("unknown output format %q\navailable formats: %s", e.Value, strings.Join(e.Allowed, ", "))
}

// flagError is an invalid combination of flag values.
type flagError struct {
	Err error
}

func (e flagError) Error() string { return e.Err.Error() }

func (e flagError) Unwrap() error { return e.Err }

// PrintError writes err for a terminal user.
func PrintError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
	var defErr definitionError
	if errors.As(err, &defErr) && defErr.File != "<stdin>" {
		fmt.Fprintln(w, "definitions are YAML, JSON or TOML with a non-empty columns list")
	}
}

// ExitCode maps an error returned by Execute to a process exit status.
func ExitCode(err error) int {
	var defErr definitionError
	var outErr outputFormatError
	var flagErr flagError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &outErr), errors.As(err, &flagErr):
		return exitUsage
	case errors.As(err, &defErr):
		return exitDefinition
	default:
		return exitFailure
	}
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/oakwood-commons/gridfit/pkg/fitcolumns"
)

// modeValue is a pflag.Value that only accepts known layout modes.
type modeValue struct {
	mode fitcolumns.Mode
	set  bool
}

func newModeValue() *modeValue {
	return &modeValue{}
}

func (m *modeValue) String() string {
	return string(m.mode)
}

func (m *modeValue) Set(s string) error {
	mode, ok := fitcolumns.ParseMode(s)
	if !ok {
		return fmt.Errorf("must be one of %s", m.Type())
	}
	m.mode = mode
	m.set = true
	return nil
}

func (m *modeValue) Type() string {
	modes := fitcolumns.Modes()
	names := make([]string, len(modes))
	for i, mode := range modes {
		names[i] = string(mode)
	}
	return strings.Join(names, "|")
}

func (m *modeValue) reset() {
	m.mode = ""
	m.set = false
}

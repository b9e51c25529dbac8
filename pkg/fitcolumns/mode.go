package fitcolumns

import "strings"

// Mode selects how column widths relate to the container.
type Mode string

const (
	// ModeFitData sizes each column to its explicit or natural width.
	ModeFitData Mode = "fitData"
	// ModeFitDataFill is ModeFitData with the last column stretched to
	// close any gap to the container edge.
	ModeFitDataFill Mode = "fitDataFill"
	// ModeFitColumns fits the columns to the container exactly.
	ModeFitColumns Mode = "fitColumns"
)

// DefaultMode is used when no mode or an unknown mode is requested.
const DefaultMode = ModeFitData

// Modes returns every supported mode.
func Modes() []Mode {
	return []Mode{ModeFitData, ModeFitDataFill, ModeFitColumns}
}

// ParseMode matches s against the supported modes, ignoring case and
// surrounding space. Unknown values return DefaultMode and false so the
// caller can warn about the fallback.
func ParseMode(s string) (Mode, bool) {
	s = strings.TrimSpace(s)
	for _, m := range Modes() {
		if strings.EqualFold(s, string(m)) {
			return m, true
		}
	}
	return DefaultMode, false
}

// Valid reports whether m is a supported mode.
func (m Mode) Valid() bool {
	_, ok := ParseMode(string(m))
	return ok && m != ""
}

// Layout computes widths for the given mode. Unknown modes use DefaultMode.
func Layout(mode Mode, columns []Column, containerWidth int) Result {
	mode, _ = ParseMode(string(mode))
	switch mode {
	case ModeFitColumns:
		return Compute(columns, containerWidth)
	case ModeFitDataFill:
		return fitData(mode, columns, containerWidth, true)
	default:
		return fitData(mode, columns, containerWidth, false)
	}
}

func fitData(mode Mode, columns []Column, containerWidth int, fill bool) Result {
	widths := make([]int, len(columns))
	total := 0
	for i, c := range columns {
		if c.IsFlexible() {
			widths[i] = max(c.Natural, c.minWidth())
		} else {
			widths[i] = c.effectiveFixed(containerWidth)
		}
		total += widths[i]
	}
	if fill && len(widths) > 0 && total < containerWidth {
		widths[len(widths)-1] += containerWidth - total
	}
	return newResult(mode, columns, containerWidth, widths, nil)
}

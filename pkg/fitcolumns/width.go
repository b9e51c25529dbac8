package fitcolumns

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Unit specifies how a Width is interpreted.
type Unit uint8

const (
	UnitAuto     Unit = iota // Flexible, sized by grow weight
	UnitAbsolute             // Fixed number of cells/pixels
	UnitPercent              // Percentage of the container width
)

// MaxWidth bounds absolute widths and resolved percentages.
const MaxWidth = math.MaxInt32

// Width is an explicit column width. The zero value is Auto.
type Width struct {
	Amount float64
	Unit   Unit
}

// Auto returns a Width that marks the column as flexible.
func Auto() Width {
	return Width{Unit: UnitAuto}
}

// Absolute returns a fixed Width of n units.
func Absolute(n int) Width {
	return Width{Amount: float64(n), Unit: UnitAbsolute}
}

// Percent returns a Width relative to the container, on a 0-100 scale.
func Percent(p float64) Width {
	return Width{Amount: p, Unit: UnitPercent}
}

// IsAuto reports whether the column is flexible.
func (w Width) IsAuto() bool {
	return w.Unit == UnitAuto
}

// Resolve converts the width to units for the given container width.
// Percentages are floored. Auto and negative results resolve to 0.
func (w Width) Resolve(container int) int {
	var v int
	switch w.Unit {
	case UnitAbsolute:
		v = int(w.Amount)
	case UnitPercent:
		f := math.Floor(float64(container) * w.Amount / 100.0)
		if math.IsNaN(f) || f > MaxWidth {
			f = MaxWidth
		}
		v = int(max(f, 0))
	default:
		return 0
	}
	if v < 0 {
		return 0
	}
	return v
}

// String renders the width the way it is written in definition files.
func (w Width) String() string {
	switch w.Unit {
	case UnitAbsolute:
		return strconv.Itoa(int(w.Amount))
	case UnitPercent:
		return strconv.FormatFloat(w.Amount, 'f', -1, 64) + "%"
	default:
		return "auto"
	}
}

// ParseWidth parses "120", "25%", "12.5%", "auto" or "" into a Width.
func ParseWidth(s string) (Width, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "auto") {
		return Auto(), nil
	}
	if pct, ok := strings.CutSuffix(s, "%"); ok {
		p, err := strconv.ParseFloat(strings.TrimSpace(pct), 64)
		if err != nil {
			return Width{}, fmt.Errorf("invalid percentage width %q: %w", s, err)
		}
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return Width{}, fmt.Errorf("invalid percentage width %q: not a finite number", s)
		}
		return Percent(p), nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return Width{}, fmt.Errorf("invalid width %q: expected an integer or a percentage", s)
	}
	return absoluteInRange(n)
}

func absoluteInRange(n int64) (Width, error) {
	if n > MaxWidth || n < -MaxWidth {
		return Width{}, fmt.Errorf("width %d out of range", n)
	}
	return Absolute(int(n)), nil
}

// WidthFromValue normalizes a decoded definition value (YAML int, JSON
// float64, TOML int64, or a string) into a Width. nil means Auto.
func WidthFromValue(v any) (Width, error) {
	switch t := v.(type) {
	case nil:
		return Auto(), nil
	case int:
		return absoluteInRange(int64(t))
	case int64:
		return absoluteInRange(t)
	case uint64:
		if t > MaxWidth {
			return Width{}, fmt.Errorf("width %d out of range", t)
		}
		return Absolute(int(t)), nil
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) || t != math.Trunc(t) {
			return Width{}, fmt.Errorf("width %v is not an integer", t)
		}
		if math.Abs(t) > MaxWidth {
			return Width{}, fmt.Errorf("width %v out of range", t)
		}
		return Absolute(int(t)), nil
	case string:
		return ParseWidth(t)
	case Width:
		return t, nil
	default:
		return Width{}, fmt.Errorf("unsupported width type %T", v)
	}
}

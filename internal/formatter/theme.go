package formatter

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/gridfit/internal/config"
)

var (
	defaultHeaderFG  = lipgloss.Color("12")
	defaultHeaderBG  = lipgloss.Color("236")
	defaultSeparator = lipgloss.Color("240")
	defaultOverflow  = lipgloss.Color("203")

	headerStyle    lipgloss.Style
	separatorStyle lipgloss.Style
	overflowStyle  lipgloss.Style
)

// TableColors controls the rendered colors for previews.
// Nil fields fall back to ANSI 256 defaults.
type TableColors struct {
	HeaderFG       color.Color
	HeaderBG       color.Color
	SeparatorColor color.Color
	OverflowColor  color.Color
}

func applyTableTheme(tc TableColors) {
	hfg := tc.HeaderFG
	hbg := tc.HeaderBG
	sep := tc.SeparatorColor
	ovf := tc.OverflowColor
	if hfg == nil {
		hfg = defaultHeaderFG
	}
	if hbg == nil {
		hbg = defaultHeaderBG
	}
	if sep == nil {
		sep = defaultSeparator
	}
	if ovf == nil {
		ovf = defaultOverflow
	}

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(hfg).Background(hbg)
	separatorStyle = lipgloss.NewStyle().Foreground(sep)
	overflowStyle = lipgloss.NewStyle().Bold(true).Foreground(ovf)
}

// SetTableTheme overrides the package styles.
func SetTableTheme(tc TableColors) {
	applyTableTheme(tc)
}

// ColorsFromTheme converts configured color strings. Empty strings keep
// the defaults.
func ColorsFromTheme(t config.ThemeConfig) TableColors {
	pick := func(s string) color.Color {
		if s == "" {
			return nil
		}
		return lipgloss.Color(s)
	}
	return TableColors{
		HeaderFG:       pick(t.HeaderFG),
		HeaderBG:       pick(t.HeaderBG),
		SeparatorColor: pick(t.SeparatorFG),
		OverflowColor:  pick(t.OverflowFG),
	}
}

//nolint:gochecknoinits // initialize default table theme for package consumers
func init() {
	applyTableTheme(TableColors{})
}

package fitcolumns

// Column is a snapshot of one visible column's sizing constraints.
type Column struct {
	// ID identifies the column in the returned width map. IDs should be unique.
	ID string

	// Width is the explicit width. Auto marks the column as flexible.
	Width Width

	// MinWidth is the smallest width the solver assigns unless the container
	// cannot hold every minimum. Negative values are treated as 0.
	MinWidth int

	// Grow is the column's share of free space when flexible. Values <= 0
	// fall back to 1.
	Grow int

	// Shrink is the column's share of the overflow a fixed column gives
	// back. 0 means the column never shrinks; negative values are treated
	// as 1.
	Shrink int

	// Natural is the content width, used only by the fitData modes.
	Natural int
}

// IsFlexible reports whether the column is sized by grow weight.
func (c Column) IsFlexible() bool {
	return c.Width.IsAuto()
}

func (c Column) minWidth() int {
	if c.MinWidth < 0 {
		return 0
	}
	return c.MinWidth
}

func (c Column) growWeight() int {
	if c.Grow <= 0 {
		return 1
	}
	return c.Grow
}

func (c Column) shrinkWeight() int {
	if c.Shrink < 0 {
		return 1
	}
	return c.Shrink
}

// effectiveFixed is the resolved explicit width floored at the minimum.
func (c Column) effectiveFixed(container int) int {
	return max(c.Width.Resolve(container), c.minWidth())
}

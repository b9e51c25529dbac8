package fitcolumns

// Viewport describes the area the grid is laid out in.
type Viewport struct {
	// Width is the content width of the container.
	Width int
	// ContentHeight is the height of all rows; VisibleHeight is how much
	// of it is shown without scrolling; 0 means unbounded.
	ContentHeight int
	VisibleHeight int
	// ScrollbarWidth is reserved when the rows overflow vertically.
	ScrollbarWidth int
}

// HasScrollbar reports whether the rows overflow the visible height.
func (v Viewport) HasScrollbar() bool {
	return v.VisibleHeight > 0 && v.ContentHeight > v.VisibleHeight
}

// Available returns the width left for columns, never negative.
func (v Viewport) Available() int {
	w := v.Width
	if v.HasScrollbar() && v.ScrollbarWidth > 0 {
		w -= v.ScrollbarWidth
	}
	return max(w, 0)
}

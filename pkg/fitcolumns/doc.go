// Package fitcolumns distributes a container's width across grid columns.
//
// Columns either carry an explicit width (absolute or a percentage of the
// container) or are flexible and share the remaining space by grow weight.
// When a flexible column's share falls below its minimum it is pinned at
// that minimum and the rest is redistributed among the others. If the
// pinned columns push the total past the container, fixed columns that
// declare a shrink weight give the space back, again honoring minimums.
//
// The package does no I/O. Callers filter hidden columns, compute the
// available width (see [Viewport]) and apply the returned widths to
// whatever renders the grid.
//
// # Usage
//
//	cols := []fitcolumns.Column{
//	    {ID: "name", Grow: 2},
//	    {ID: "size", Width: fitcolumns.Absolute(12)},
//	    {ID: "path", Width: fitcolumns.Percent(30), MinWidth: 10, Shrink: 1},
//	}
//	widths := fitcolumns.Allocate(cols, 120)
package fitcolumns

package fitcolumns

// Phase names the solver stage a Pass belongs to.
type Phase string

const (
	PhaseGrow   Phase = "grow"
	PhaseShrink Phase = "shrink"
)

// Pass records one iteration of the pin-and-redistribute loop.
type Pass struct {
	Phase     Phase
	Iteration int
	// Space is the amount distributed in this iteration: free space for
	// the grow phase, overflow to remove for the shrink phase.
	Space int
	Units int
	// UnitWidth is floor(Space / Units).
	UnitWidth int
	// Pinned lists the IDs fixed at their minimum in this iteration.
	Pinned []string
	// Remainder is the rounding leftover, set on the final iteration.
	Remainder int
}

// Result is the full outcome of a layout computation.
type Result struct {
	Mode Mode
	// Widths is aligned with the input column order.
	Widths []int
	ByID   map[string]int
	// Container is the width the columns were fitted into.
	Container int
	Total     int
	// Overflow is Total - Container when positive, else 0.
	Overflow int
	Passes   []Pass
}

func newResult(mode Mode, columns []Column, container int, widths []int, passes []Pass) Result {
	r := Result{
		Mode:      mode,
		Widths:    widths,
		ByID:      make(map[string]int, len(columns)),
		Container: container,
		Passes:    passes,
	}
	for i, c := range columns {
		r.ByID[c.ID] = widths[i]
		r.Total += widths[i]
	}
	if avail := max(container, 0); r.Total > avail {
		r.Overflow = r.Total - avail
	}
	return r
}

package fitcolumns

// Allocate runs the fitColumns solver and returns each column's width keyed
// by ID. When IDs repeat, the last column with that ID wins the map entry;
// use [Compute] for widths aligned with the input order.
func Allocate(columns []Column, containerWidth int) map[string]int {
	return Compute(columns, containerWidth).ByID
}

// Compute runs the fitColumns solver and returns the widths together with
// the passes it took to reach them.
func Compute(columns []Column, containerWidth int) Result {
	widths := make([]int, len(columns))

	var flex, shrinkable []int
	fixedTotal := 0
	for i, c := range columns {
		if c.IsFlexible() {
			flex = append(flex, i)
			continue
		}
		widths[i] = c.effectiveFixed(containerWidth)
		fixedTotal += widths[i]
		if c.shrinkWeight() > 0 {
			shrinkable = append(shrinkable, i)
		}
	}

	// Nothing to fit into: flexible columns collapse, fixed ones keep their size.
	if containerWidth <= 0 {
		return newResult(ModeFitColumns, columns, containerWidth, widths, nil)
	}

	var passes []Pass

	if len(flex) > 0 {
		grow := solver{columns: columns, widths: widths, phase: PhaseGrow}
		remainder, _ := grow.run(flex, containerWidth-fixedTotal)
		if remainder > 0 {
			widths[flex[len(flex)-1]] += remainder
		}
		passes = append(passes, grow.passes...)
	}

	total := 0
	for _, w := range widths {
		total += w
	}

	if overflow := total - containerWidth; overflow > 0 && len(shrinkable) > 0 {
		shrink := solver{columns: columns, widths: widths, phase: PhaseShrink}
		remainder, pool := shrink.run(shrinkable, overflow)
		// The last column takes the remainder first; earlier pool columns
		// give up whatever it could not.
		for k := len(pool) - 1; k >= 0 && remainder > 0; k-- {
			i := pool[k]
			take := min(remainder, widths[i]-columns[i].minWidth())
			widths[i] -= take
			remainder -= take
		}
		passes = append(passes, shrink.passes...)
	}

	return newResult(ModeFitColumns, columns, containerWidth, widths, passes)
}

// solver is the pin-and-redistribute loop shared by the grow and shrink
// phases. It mutates widths in place.
type solver struct {
	columns []Column
	widths  []int
	phase   Phase
	passes  []Pass
}

func (s *solver) weight(i int) int {
	if s.phase == PhaseShrink {
		return s.columns[i].shrinkWeight()
	}
	return s.columns[i].growWeight()
}

// target is the width column i would take at the given unit width.
func (s *solver) target(i, unit int) int {
	if s.phase == PhaseShrink {
		return s.widths[i] - s.weight(i)*unit
	}
	return s.weight(i) * unit
}

// run distributes space across pool until no column in the pool falls below
// its minimum. It returns the undistributed space and the final pool: the
// rounding remainder with the unpinned columns at a fixed point, or the
// space left over with an empty pool when every column was pinned.
func (s *solver) run(pool []int, space int) (int, []int) {
	units := 0
	for _, i := range pool {
		units += s.weight(i)
	}

	for iteration := 1; ; iteration++ {
		unit := floorDiv(space, units)
		pass := Pass{
			Phase:     s.phase,
			Iteration: iteration,
			Space:     space,
			Units:     units,
			UnitWidth: unit,
		}

		keep := make([]int, 0, len(pool))
		for _, i := range pool {
			minW := s.columns[i].minWidth()
			if s.target(i, unit) >= minW {
				keep = append(keep, i)
				continue
			}
			pass.Pinned = append(pass.Pinned, s.columns[i].ID)
			if s.phase == PhaseShrink {
				space -= s.widths[i] - minW
			} else {
				space -= minW
			}
			units -= s.weight(i)
			s.widths[i] = minW
		}

		if len(pass.Pinned) == 0 {
			for _, i := range pool {
				s.widths[i] = s.target(i, unit)
			}
			pass.Remainder = space - unit*units
			s.passes = append(s.passes, pass)
			return pass.Remainder, pool
		}

		if len(keep) == 0 {
			pass.Remainder = space
			s.passes = append(s.passes, pass)
			return space, nil
		}

		s.passes = append(s.passes, pass)
		pool = keep
	}
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

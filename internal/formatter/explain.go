package formatter

import (
	"fmt"
	"strings"

	"github.com/xlab/treeprint"

	"github.com/oakwood-commons/gridfit/pkg/fitcolumns"
)

// FormatPasses renders the solver trace of res as a tree: one branch per
// phase, one node per iteration, and the final widths.
func FormatPasses(columns []fitcolumns.Column, res fitcolumns.Result) string {
	tree := treeprint.NewWithRoot(fmt.Sprintf("%s container=%d total=%d overflow=%d",
		res.Mode, res.Container, res.Total, res.Overflow))

	if len(res.Passes) == 0 {
		tree.AddNode(noPassReason(res))
	}

	var phase treeprint.Tree
	for i, p := range res.Passes {
		if i == 0 || res.Passes[i-1].Phase != p.Phase {
			phase = tree.AddBranch(string(p.Phase))
		}
		it := phase.AddBranch(fmt.Sprintf("iteration %d: space=%d units=%d unit=%d",
			p.Iteration, p.Space, p.Units, p.UnitWidth))
		if len(p.Pinned) > 0 {
			it.AddNode("pinned at minimum: " + strings.Join(p.Pinned, ", "))
		}
		last := i == len(res.Passes)-1 || res.Passes[i+1].Phase != p.Phase
		if last {
			it.AddNode(fmt.Sprintf("remainder: %d", p.Remainder))
		}
	}

	widths := tree.AddBranch("widths")
	for i, c := range columns {
		if i < len(res.Widths) {
			widths.AddNode(fmt.Sprintf("%s: %d (%s)", c.ID, res.Widths[i], c.Width))
		}
	}
	return tree.String()
}

func noPassReason(res fitcolumns.Result) string {
	switch {
	case res.Mode != fitcolumns.ModeFitColumns:
		return "no solver passes: columns take their content or explicit widths"
	case res.Container <= 0:
		return "no solver passes: container has no width"
	default:
		return "no solver passes: nothing to grow or shrink"
	}
}

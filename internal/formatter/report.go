package formatter

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/gridfit/pkg/fitcolumns"
)

// Report is the machine-readable form of a layout.
type Report struct {
	Mode      string         `json:"mode" yaml:"mode"`
	Container int            `json:"container" yaml:"container"`
	Total     int            `json:"total" yaml:"total"`
	Overflow  int            `json:"overflow" yaml:"overflow"`
	Columns   []ColumnReport `json:"columns" yaml:"columns"`
	Passes    []PassReport   `json:"passes,omitempty" yaml:"passes,omitempty"`
}

type ColumnReport struct {
	ID        string `json:"id" yaml:"id"`
	Requested string `json:"requested" yaml:"requested"`
	Width     int    `json:"width" yaml:"width"`
}

type PassReport struct {
	Phase     string   `json:"phase" yaml:"phase"`
	Iteration int      `json:"iteration" yaml:"iteration"`
	Space     int      `json:"space" yaml:"space"`
	Units     int      `json:"units" yaml:"units"`
	UnitWidth int      `json:"unit_width" yaml:"unit_width"`
	Pinned    []string `json:"pinned,omitempty" yaml:"pinned,omitempty"`
	Remainder int      `json:"remainder" yaml:"remainder"`
}

// NewReport builds a Report. Passes are included only when withPasses is set.
func NewReport(columns []fitcolumns.Column, res fitcolumns.Result, withPasses bool) Report {
	r := Report{
		Mode:      string(res.Mode),
		Container: res.Container,
		Total:     res.Total,
		Overflow:  res.Overflow,
		Columns:   make([]ColumnReport, len(columns)),
	}
	for i, c := range columns {
		r.Columns[i] = ColumnReport{ID: c.ID, Requested: c.Width.String()}
		if i < len(res.Widths) {
			r.Columns[i].Width = res.Widths[i]
		}
	}
	if withPasses {
		for _, p := range res.Passes {
			r.Passes = append(r.Passes, PassReport{
				Phase:     string(p.Phase),
				Iteration: p.Iteration,
				Space:     p.Space,
				Units:     p.Units,
				UnitWidth: p.UnitWidth,
				Pinned:    p.Pinned,
				Remainder: p.Remainder,
			})
		}
	}
	return r
}

// FormatJSON renders v as indented JSON with a trailing newline.
func FormatJSON(v any) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b) + "\n", nil
}

// FormatYAML renders v as YAML. indent <= 0 uses two spaces.
func FormatYAML(v any, indent int) (string, error) {
	var node yaml.Node
	if err := node.Encode(v); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	if indent <= 0 {
		indent = 2
	}
	enc.SetIndent(indent)
	if err := enc.Encode(&node); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Package cel evaluates the responsive visibility predicates attached to
// column definitions.
package cel

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	celext "github.com/google/cel-go/ext"

	"github.com/oakwood-commons/gridfit/pkg/loader"
)

// Variable names available to visible_when expressions.
const (
	VarWidth   = "width"
	VarColumns = "columns"
	VarColumn  = "column"
)

// ErrNotBool is returned when an expression does not produce a bool.
var ErrNotBool = errors.New("expression must evaluate to bool")

// Vars binds the expression variables for one column.
type Vars struct {
	// Width is the container width the layout is computed for.
	Width int
	// Columns is the number of visible columns before predicates run.
	Columns int
	Column  map[string]any
}

func (v Vars) activation() map[string]any {
	col := v.Column
	if col == nil {
		col = map[string]any{}
	}
	return map[string]any{
		VarWidth:   int64(v.Width),
		VarColumns: int64(v.Columns),
		VarColumn:  col,
	}
}

// Evaluator compiles and evaluates visibility expressions. Compiled
// programs are cached by source text; an Evaluator is safe for concurrent use.
type Evaluator struct {
	env *cel.Env

	mu       sync.Mutex
	programs map[string]cel.Program
}

// NewEvaluator creates an evaluator with the visibility variables declared.
func NewEvaluator() (*Evaluator, error) {
	env, err := newVisibilityEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	return &Evaluator{env: env, programs: map[string]cel.Program{}}, nil
}

func newVisibilityEnv(opts ...cel.EnvOption) (*cel.Env, error) {
	allOpts := make([]cel.EnvOption, 0, 5+len(opts))
	allOpts = append(allOpts,
		cel.Variable(VarWidth, cel.IntType),
		cel.Variable(VarColumns, cel.IntType),
		cel.Variable(VarColumn, cel.MapType(cel.StringType, cel.DynType)),
		celext.Strings(),
		celext.Math(),
	)
	allOpts = append(allOpts, opts...)
	return cel.NewEnv(allOpts...)
}

// Compile parses and type-checks expr, returning the cached program on
// repeat calls.
func (e *Evaluator) Compile(expr string) (cel.Program, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if prg, ok := e.programs[expr]; ok {
		return prg, nil
	}

	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compilation error: %w", issues.Err())
	}
	out := ast.OutputType()
	if !out.IsExactType(types.BoolType) && !out.IsExactType(types.DynType) {
		return nil, fmt.Errorf("%w, got %s", ErrNotBool, out)
	}

	prg, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	e.programs[expr] = prg
	return prg, nil
}

// Visible evaluates expr with vars bound.
func (e *Evaluator) Visible(expr string, vars Vars) (bool, error) {
	prg, err := e.Compile(expr)
	if err != nil {
		return false, err
	}
	result, _, err := prg.Eval(vars.activation())
	if err != nil {
		return false, fmt.Errorf("eval error: %w", err)
	}
	b, ok := result.(types.Bool)
	if !ok {
		return false, fmt.Errorf("%w, got %s", ErrNotBool, result.Type())
	}
	return bool(b), nil
}

// FilterVisible drops columns marked visible: false, then evaluates every
// visible_when predicate against the container width. Order is preserved.
func (e *Evaluator) FilterVisible(defs []loader.ColumnDef, width int) ([]loader.ColumnDef, error) {
	candidates := make([]loader.ColumnDef, 0, len(defs))
	for _, d := range defs {
		if d.Visible {
			candidates = append(candidates, d)
		}
	}

	out := make([]loader.ColumnDef, 0, len(candidates))
	for _, d := range candidates {
		if d.VisibleWhen == "" {
			out = append(out, d)
			continue
		}
		ok, err := e.Visible(d.VisibleWhen, Vars{Width: width, Columns: len(candidates), Column: d.AsMap()})
		if err != nil {
			return nil, fmt.Errorf("column %q visible_when: %w", d.Field, err)
		}
		if ok {
			out = append(out, d)
		}
	}
	return out, nil
}

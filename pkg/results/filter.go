package results

import (
	"fmt"

	"github.com/google/cel-go/cel"
)

// Filter selects rows with a CEL boolean expression over the variable
// `row`, e.g. `row.status == "OK" && row.n >= 1000`.
type Filter struct {
	expr string
	prg  cel.Program
}

func NewFilter(expr string) (*Filter, error) {
	env, err := cel.NewEnv(
		cel.Variable("row", cel.MapType(cel.StringType, cel.DynType)),
	)
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile filter %q: %w", expr, issues.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("filter %q must return bool, got %v", expr, ast.OutputType())
	}
	prg, err := env.Program(ast,
		cel.InterruptCheckFrequency(100),
		cel.CostLimit(10000),
	)
	if err != nil {
		return nil, fmt.Errorf("program filter %q: %w", expr, err)
	}
	return &Filter{expr: expr, prg: prg}, nil
}

func (f *Filter) String() string { return f.expr }

// Match reports whether the row satisfies the expression.
func (f *Filter) Match(r Row) (bool, error) {
	out, _, err := f.prg.Eval(map[string]any{"row": r.Fields()})
	if err != nil {
		return false, fmt.Errorf("eval filter %q: %w", f.expr, err)
	}
	ok, isBool := out.Value().(bool)
	if !isBool {
		return false, fmt.Errorf("filter %q returned %T, want bool", f.expr, out.Value())
	}
	return ok, nil
}

// Apply returns the rows that match, preserving order.
func (f *Filter) Apply(rows []Row) ([]Row, error) {
	var out []Row
	for _, r := range rows {
		ok, err := f.Match(r)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, r)
		}
	}
	return out, nil
}

package eval

import (
	"context"

	"github.com/risor-io/quasi/ast"
	"github.com/risor-io/quasi/object"
)

// RunSource evaluates nodes in order in scope and returns the value of the
// last one. An empty sequence yields object.NoValue. Evaluation stops at
// the first error, and the context is checked before each statement.
func RunSource(ctx context.Context, nodes []ast.Node, scope *object.Scope, evaluator Evaluator) (object.Value, error) {
	if scope == nil {
		scope = object.NewScope(nil)
	}
	var result object.Value = object.NoValue
	for _, n := range nodes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		v, err := evaluator.Eval(ctx, n, scope)
		if err != nil {
			return nil, err
		}
		result = v
	}
	return result, nil
}

package syntax

import "github.com/risor-io/quasi/ast"

// Transformer rewrites a program before evaluation.
// Trees are immutable, so a transformer returns new statements rather than
// modifying the ones it receives.
type Transformer interface {
	// Transform processes the statements and returns the result.
	Transform(nodes []ast.Node) ([]ast.Node, error)
}

// TransformerFunc is an adapter to use a function as a Transformer.
type TransformerFunc func([]ast.Node) ([]ast.Node, error)

// Transform implements the Transformer interface.
func (f TransformerFunc) Transform(nodes []ast.Node) ([]ast.Node, error) {
	return f(nodes)
}

// Substitute returns a transformer that replaces every free occurrence of a
// bound name with a copy of its tree, as ast.Substitute does.
func Substitute(bindings map[string]ast.Node) Transformer {
	return TransformerFunc(func(nodes []ast.Node) ([]ast.Node, error) {
		out := make([]ast.Node, len(nodes))
		for i, n := range nodes {
			out[i] = ast.Substitute(n, bindings)
		}
		return out, nil
	})
}

// Apply runs the transformers in order, feeding each the previous result.
func Apply(nodes []ast.Node, transformers ...Transformer) ([]ast.Node, error) {
	var err error
	for _, t := range transformers {
		if nodes, err = t.Transform(nodes); err != nil {
			return nil, err
		}
	}
	return nodes, nil
}

package quasi

import (
	"context"
	"sort"

	"github.com/risor-io/quasi/ast"
	"github.com/risor-io/quasi/deparse"
)

// Program is parsed source code. It is immutable after creation and safe
// for concurrent use. Multiple goroutines can call Run on the same Program
// simultaneously.
type Program struct {
	nodes []ast.Node

	// Metadata
	source   string
	filename string
}

// Load parses source into a Program, applying any transformers and
// validators given as options.
func Load(ctx context.Context, source string, opts ...Option) (*Program, error) {
	o := collectOptions(opts...)
	nodes, err := o.parse(ctx, source)
	if err != nil {
		return nil, err
	}
	return &Program{nodes: nodes, source: source, filename: o.filename}, nil
}

// Source returns the original source code.
func (p *Program) Source() string {
	return p.source
}

// Filename returns the filename associated with this program, if any.
func (p *Program) Filename() string {
	return p.filename
}

// Nodes returns the top-level statements.
func (p *Program) Nodes() []ast.Node {
	out := make([]ast.Node, len(p.nodes))
	copy(out, p.nodes)
	return out
}

// GlobalNames returns the names assigned by top-level statements, sorted.
func (p *Program) GlobalNames() []string {
	seen := map[string]bool{}
	for _, n := range p.nodes {
		c, ok := n.(*ast.Call)
		if !ok || c.NumArgs() != 2 {
			continue
		}
		if op, _ := c.CalleeName(); op != "<-" && op != "=" {
			continue
		}
		if target, ok := c.Arg(0).Value.(*ast.Name); ok && !target.IsEmpty() {
			seen[target.ID()] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Format returns the program deparsed into canonical source text, one
// statement per line.
func (p *Program) Format() (string, error) {
	return deparse.Statements(p.nodes)
}

package object

import (
	"strings"

	"github.com/risor-io/quasi/ast"
	"github.com/risor-io/quasi/deparse"
)

var _ Callable = (*Closure)(nil) // Ensure that *Closure implements Callable

// Closure is a function value: formal parameters, a body, and the scope
// the function was defined in.
type Closure struct {
	formals *ast.Pairlist
	body    ast.Node
	scope   *Scope
	name    string
}

// MakeFunction composes a closure from its parts. Nothing is evaluated.
func MakeFunction(formals *ast.Pairlist, body ast.Node, scope *Scope) (*Closure, error) {
	if formals == nil {
		pl, err := ast.MakePairlist()
		if err != nil {
			return nil, err
		}
		formals = pl
	}
	if body == nil {
		return nil, TypeErrorf("a function needs a body")
	}
	return &Closure{formals: formals, body: body, scope: scope}, nil
}

func (c *Closure) Type() Type {
	return CLOSURE
}

func (c *Closure) Formals() *ast.Pairlist {
	return c.formals
}

func (c *Closure) Body() ast.Node {
	return c.body
}

// Scope returns the defining scope.
func (c *Closure) Scope() *Scope {
	return c.scope
}

// Name returns the name the closure was first bound to, if any.
func (c *Closure) Name() string {
	return c.name
}

// WithName returns a copy of the closure that reports the given name.
func (c *Closure) WithName(name string) *Closure {
	out := *c
	out.name = name
	return &out
}

// Literal returns the code that would create this closure.
func (c *Closure) Literal() *ast.Call {
	fn, err := ast.FunctionLiteral(c.formals, c.body)
	if err != nil {
		return nil
	}
	return fn
}

func (c *Closure) Inspect() string {
	if lit := c.Literal(); lit != nil {
		if text, err := deparse.Deparse(lit); err == nil {
			return text
		}
	}
	return "function(" + strings.Join(c.formals.Names(), ", ") + ") <body>"
}

func (c *Closure) String() string {
	return c.Inspect()
}

func (c *Closure) Interface() any {
	return c
}

// Equals reports whether both closures have equal code and share a scope.
func (c *Closure) Equals(other Value) bool {
	o, ok := other.(*Closure)
	if !ok {
		return false
	}
	return c.scope == o.scope && ast.Equal(c.formals, o.formals) && ast.Equal(c.body, o.body)
}

func (c *Closure) IsTruthy() bool {
	return true
}

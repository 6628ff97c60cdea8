package object

import (
	"context"

	"github.com/risor-io/quasi/ast"
)

// EvalFunc evaluates one tree in one scope.
type EvalFunc func(ctx context.Context, node ast.Node, scope *Scope) (Value, error)

// Promise is an unevaluated argument or default bound to a formal. It is
// evaluated at most once, when first read.
type Promise struct {
	expr    ast.Node
	scope   *Scope
	missing bool
	value   Value
	forcing bool
}

// NewPromise returns a promise to evaluate expr in scope. Missing marks a
// formal whose argument was not supplied; its expr is then the default,
// or the empty name when there is none.
func NewPromise(expr ast.Node, scope *Scope, missing bool) *Promise {
	return &Promise{expr: expr, scope: scope, missing: missing}
}

func (p *Promise) Type() Type {
	return PROMISE
}

// Expr returns the promised code.
func (p *Promise) Expr() ast.Node {
	return p.expr
}

// Missing reports whether the argument was not supplied by the caller.
func (p *Promise) Missing() bool {
	return p.missing
}

// Forced reports whether the promise has been evaluated.
func (p *Promise) Forced() bool {
	return p.value != nil
}

// Force evaluates the promise, or returns the value from an earlier call.
func (p *Promise) Force(ctx context.Context, eval EvalFunc) (Value, error) {
	if p.value != nil {
		return p.value, nil
	}
	if p.forcing {
		return nil, TypeErrorf("promise already under evaluation: recursive default argument reference")
	}
	p.forcing = true
	defer func() { p.forcing = false }()
	v, err := eval(ctx, p.expr, p.scope)
	if err != nil {
		return nil, err
	}
	p.value = v
	return v, nil
}

func (p *Promise) Inspect() string {
	if p.value != nil {
		return p.value.Inspect()
	}
	return "<promise>"
}

func (p *Promise) String() string {
	return p.Inspect()
}

func (p *Promise) Interface() any {
	if p.value != nil {
		return p.value.Interface()
	}
	return nil
}

func (p *Promise) Equals(other Value) bool {
	o, ok := other.(*Promise)
	return ok && p == o
}

func (p *Promise) IsTruthy() bool {
	return p.value != nil && p.value.IsTruthy()
}

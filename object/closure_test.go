package object

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/risor-io/quasi/ast"
)

func TestMakeFunction(t *testing.T) {
	formals, err := ast.MakePairlist(ast.Formal{Name: "x"}, ast.Formal{Name: "y", Default: ast.Int(2)})
	require.NoError(t, err)
	body, err := ast.MakeCall(ast.MakeName("+"), ast.Positional(ast.MakeName("x")), ast.Positional(ast.MakeName("y")))
	require.NoError(t, err)
	scope := NewScope(nil)

	fn, err := MakeFunction(formals, body, scope)
	require.NoError(t, err)
	require.Equal(t, CLOSURE, fn.Type())
	require.Same(t, formals, fn.Formals())
	require.Same(t, body, fn.Body())
	require.Same(t, scope, fn.Scope())
	require.Equal(t, "function(x, y = 2) x + y", fn.Inspect())
	require.Equal(t, "", fn.Name())
	require.Equal(t, "f", fn.WithName("f").Name())
	require.Equal(t, "", fn.Name())

	again, err := MakeFunction(formals, ast.Clone(body), scope)
	require.NoError(t, err)
	require.True(t, fn.Equals(again))

	other, err := MakeFunction(formals, body, NewScope(nil))
	require.NoError(t, err)
	require.False(t, fn.Equals(other))
}

func TestMakeFunctionDefaults(t *testing.T) {
	fn, err := MakeFunction(nil, ast.Int(1), nil)
	require.NoError(t, err)
	require.Equal(t, 0, fn.Formals().Len())
	require.Equal(t, "function() 1", fn.Inspect())

	_, err = MakeFunction(nil, nil, nil)
	require.Error(t, err)
}

func TestBuiltin(t *testing.T) {
	b := NewBuiltin("len", func(ctx context.Context, args ...Arg) (Value, error) {
		return NewInt(int64(len(args))), nil
	})
	require.Equal(t, BUILTIN, b.Type())
	require.Equal(t, "len", b.Name())
	require.Equal(t, "builtin(len)", b.Inspect())
	v, err := b.Call(context.Background(), Arg{Value: Null}, Arg{Tag: "x", Value: Null})
	require.NoError(t, err)
	require.Equal(t, NewInt(2), v)
}

func TestPositional(t *testing.T) {
	values, err := Positional("f", []Arg{{Value: NewInt(1)}, {Value: NewInt(2)}})
	require.NoError(t, err)
	require.Len(t, values, 2)

	_, err = Positional("f", []Arg{{Tag: "x", Value: NewInt(1)}})
	require.Error(t, err)
}

func TestPromise(t *testing.T) {
	calls := 0
	eval := func(ctx context.Context, node ast.Node, scope *Scope) (Value, error) {
		calls++
		return NewInt(42), nil
	}
	p := NewPromise(ast.MakeName("x"), NewScope(nil), false)
	require.False(t, p.Forced())
	require.False(t, p.Missing())

	v, err := p.Force(context.Background(), eval)
	require.NoError(t, err)
	require.Equal(t, NewInt(42), v)
	_, err = p.Force(context.Background(), eval)
	require.NoError(t, err)
	require.Equal(t, 1, calls)
	require.True(t, p.Forced())
	require.Equal(t, "42", p.Inspect())
}

func TestPromiseRecursion(t *testing.T) {
	var p *Promise
	eval := func(ctx context.Context, node ast.Node, scope *Scope) (Value, error) {
		return p.Force(ctx, nil)
	}
	p = NewPromise(ast.MakeName("x"), nil, true)
	_, err := p.Force(context.Background(), eval)
	require.Error(t, err)
	require.Contains(t, err.Error(), "recursive")
	require.False(t, p.Forced())
}

package eval

import (
	"context"

	"github.com/risor-io/quasi/ast"
	"github.com/risor-io/quasi/deparse"
	"github.com/risor-io/quasi/errors"
	"github.com/risor-io/quasi/object"
)

func (i *Interpreter) evalCall(ctx context.Context, c *ast.Call, scope *object.Scope) (object.Value, error) {
	if name, ok := c.CalleeName(); ok {
		if form, ok := keywordForms[name]; ok {
			return form(i, ctx, c, scope)
		}
	}
	fn, err := i.evalCallee(ctx, c.Callee(), scope)
	if err != nil {
		return nil, err
	}
	switch fn := fn.(type) {
	case *object.Closure:
		return i.applyClosure(ctx, fn, c.Args(), scope, c)
	case *object.Builtin:
		args, err := i.evalArgs(ctx, fn.Name(), c.Args(), scope)
		if err != nil {
			return nil, err
		}
		return i.callBuiltin(ctx, fn, args, scope)
	}
	return nil, object.TypeErrorf("attempt to apply non-function (%s)", fn.Type())
}

// evalCallee evaluates the callee of a call. A string constant names the
// function to look up.
func (i *Interpreter) evalCallee(ctx context.Context, callee ast.Node, scope *object.Scope) (object.Value, error) {
	if c, ok := callee.(*ast.Constant); ok && c.Type() == ast.StringType {
		return i.lookup(ctx, ast.MakeName(c.Value().(string)), scope)
	}
	return i.eval(ctx, callee, scope)
}

func (i *Interpreter) evalArgs(ctx context.Context, fn string, args []ast.Arg, scope *object.Scope) ([]object.Arg, error) {
	values := make([]object.Arg, len(args))
	for k, a := range args {
		if ast.IsEmptyName(a.Value) {
			return nil, object.MissingArgumentf("argument %d to %s() is empty", k+1, fn)
		}
		v, err := i.eval(ctx, a.Value, scope)
		if err != nil {
			return nil, err
		}
		values[k] = object.Arg{Tag: a.Tag, Value: v}
	}
	return values, nil
}

func (i *Interpreter) callBuiltin(ctx context.Context, fn *object.Builtin, args []object.Arg, scope *object.Scope) (object.Value, error) {
	ctx = object.WithCallFunc(ctx, i.call)
	ctx = object.WithEvalFunc(ctx, i.eval)
	ctx = object.WithScope(ctx, scope)
	return fn.Call(ctx, args...)
}

// call applies fn to values that have already been evaluated.
func (i *Interpreter) call(ctx context.Context, fn object.Callable, args []object.Arg) (object.Value, error) {
	switch fn := fn.(type) {
	case *object.Builtin:
		scope, _ := object.GetScope(ctx)
		return i.callBuiltin(ctx, fn, args, scope)
	case *object.Closure:
		nodes := make([]ast.Arg, len(args))
		for k, a := range args {
			nodes[k] = ast.Arg{Tag: a.Tag, Value: ast.Embed(a.Value)}
		}
		v, err := i.applyClosure(ctx, fn, nodes, fn.Scope(), nil)
		if err != nil {
			return nil, topLevel(err)
		}
		return v, nil
	}
	return nil, object.TypeErrorf("attempt to apply non-function (%s)", fn.Type())
}

func (i *Interpreter) applyClosure(ctx context.Context, fn *object.Closure, args []ast.Arg, caller *object.Scope, site *ast.Call) (object.Value, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if i.depth >= i.maxDepth {
		return nil, errors.Newf(errors.ErrStackOverflow,
			"evaluation nested too deeply (limit %d): infinite recursion?", i.maxDepth)
	}
	local := object.NewScope(fn.Scope())
	if err := i.bindArgs(fn, args, caller, local); err != nil {
		return nil, err
	}

	i.depth++
	defer func() { i.depth-- }()

	loc, _ := location(site)
	i.logger.Trace().
		Str("function", fn.Name()).
		Int("args", len(args)).
		Int("depth", i.depth).
		Msg("call")
	if i.observer != nil && !i.observer.OnCall(CallEvent{
		Function: fn.Name(),
		Args:     len(args),
		Depth:    i.depth,
		Location: loc,
	}) {
		return nil, errHalted(fn.Name())
	}

	v, err := i.eval(ctx, fn.Body(), local)
	if err != nil {
		err = topLevel(err)
		if e, ok := err.(*errors.Error); ok {
			e.PushFrame(errors.StackFrame{Function: fn.Name(), Location: loc})
		}
	}

	if i.observer != nil && !i.observer.OnReturn(ReturnEvent{
		Function: fn.Name(),
		Depth:    i.depth,
		Value:    v,
		Err:      err,
	}) && err == nil {
		return nil, errHalted(fn.Name())
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// bindArgs matches arguments to formals and binds a promise for every
// formal in local. Tagged arguments match formals by exact name first;
// positional arguments then fill the remaining formals in order. A formal
// left unmatched, or matched by an empty argument, is bound to its default.
func (i *Interpreter) bindArgs(fn *object.Closure, args []ast.Arg, caller, local *object.Scope) error {
	formals := fn.Formals().Formals()
	bound := make([]*object.Promise, len(formals))
	index := make(map[string]int, len(formals))
	for k, f := range formals {
		index[f.Name] = k
	}

	var positional []ast.Node
	for _, a := range args {
		if a.Tag == "" {
			positional = append(positional, a.Value)
			continue
		}
		k, ok := index[a.Tag]
		if !ok {
			return object.ArgsErrorf("unused argument (%s = %s)", ast.FormatName(a.Tag), describe(a.Value))
		}
		if bound[k] != nil {
			return object.ArgsErrorf("formal argument %s matched by multiple actual arguments", ast.FormatName(a.Tag))
		}
		bound[k] = argPromise(a.Value, caller, formals[k], local)
	}

	next := 0
	for _, n := range positional {
		for next < len(formals) && bound[next] != nil {
			next++
		}
		if next == len(formals) {
			return object.ArgsErrorf("unused argument (%s)", describe(n))
		}
		bound[next] = argPromise(n, caller, formals[next], local)
	}

	for k, f := range formals {
		if bound[k] == nil {
			bound[k] = object.NewPromise(f.Default, local, true)
		}
		if err := local.Set(f.Name, bound[k]); err != nil {
			return err
		}
	}
	return nil
}

func argPromise(expr ast.Node, caller *object.Scope, formal ast.Formal, local *object.Scope) *object.Promise {
	if ast.IsEmptyName(expr) {
		return object.NewPromise(formal.Default, local, true)
	}
	return object.NewPromise(expr, caller, false)
}

// describe returns source text for n for use in messages.
func describe(n ast.Node) string {
	if text, err := deparse.Deparse(n); err == nil {
		return text
	}
	if c, ok := n.(*ast.Constant); ok && c.IsEmbedded() {
		if v, ok := c.Value().(object.Value); ok {
			return v.Inspect()
		}
	}
	return ast.Render(n)
}

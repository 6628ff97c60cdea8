package eval

import (
	"context"
	"fmt"
	"strings"

	"github.com/risor-io/quasi/ast"
	"github.com/risor-io/quasi/deparse"
	"github.com/risor-io/quasi/object"
	"github.com/risor-io/quasi/parser"
)

func (i *Interpreter) defaultBuiltins() map[string]object.BuiltinFunction {
	fns := map[string]object.BuiltinFunction{
		"eval":          Eval,
		"deparse":       Deparse,
		"parse":         Parse,
		"call":          Call,
		"as.call":       AsCall,
		"body":          Body,
		"formals":       Formals,
		"make_function": MakeFunction,
		"identity":      Identity,
		"print":         i.print,
		"!":             not,
	}
	for _, name := range []string{"+", "-", "*", "/", "%", "^"} {
		fns[name] = arithmetic(name)
	}
	for _, name := range []string{"==", "!=", "<", "<=", ">", ">="} {
		fns[name] = comparison(name)
	}
	return fns
}

func exactly(fn string, args []object.Arg, n int) ([]object.Value, error) {
	values, err := object.Positional(fn, args)
	if err != nil {
		return nil, err
	}
	if len(values) != n {
		return nil, object.NewArgsError(fn, n, len(values))
	}
	return values, nil
}

// Eval evaluates quoted code in the calling scope.
func Eval(ctx context.Context, args ...object.Arg) (object.Value, error) {
	values, err := exactly("eval", args, 1)
	if err != nil {
		return nil, err
	}
	eval, ok := object.GetEvalFunc(ctx)
	if !ok {
		return nil, fmt.Errorf("eval: no evaluator found in context")
	}
	scope, ok := object.GetScope(ctx)
	if !ok {
		scope = object.NewScope(nil)
	}
	return eval(ctx, object.ToNode(values[0]), scope)
}

// Deparse returns the source text of quoted code.
func Deparse(ctx context.Context, args ...object.Arg) (object.Value, error) {
	values, err := exactly("deparse", args, 1)
	if err != nil {
		return nil, err
	}
	text, err := deparse.Deparse(object.ToNode(values[0]))
	if err != nil {
		return nil, err
	}
	return object.NewString(text), nil
}

// Parse parses source text into quoted code. Text holding more than one
// statement yields a block.
func Parse(ctx context.Context, args ...object.Arg) (object.Value, error) {
	values, err := exactly("parse", args, 1)
	if err != nil {
		return nil, err
	}
	text, ok := values[0].(*object.String)
	if !ok {
		return nil, object.TypeErrorf("parse() expected a string argument (%s given)", values[0].Type())
	}
	nodes, err := parser.Parse(ctx, text.Value())
	if err != nil {
		return nil, err
	}
	if len(nodes) == 1 {
		return quoted(nodes[0]), nil
	}
	block := make([]ast.Arg, len(nodes))
	for k, n := range nodes {
		block[k] = ast.Positional(n)
	}
	c, err := ast.MakeCall(ast.MakeName("{"), block...)
	if err != nil {
		return nil, err
	}
	return object.NewLanguage(c), nil
}

// Call builds an unevaluated call to the named function. The remaining
// arguments, already evaluated, become its arguments and keep their tags.
func Call(ctx context.Context, args ...object.Arg) (object.Value, error) {
	if len(args) < 1 {
		return nil, object.ArgsErrorf("call() takes at least 1 argument (0 given)")
	}
	name, ok := args[0].Value.(*object.String)
	if !ok || args[0].Tag != "" {
		return nil, object.TypeErrorf("call() expected a function name as its first argument (%s given)", args[0].Value.Type())
	}
	return buildCall(ast.MakeName(name.Value()), args[1:])
}

// AsCall is like Call but takes the callee as code, a name string or a
// function value.
func AsCall(ctx context.Context, args ...object.Arg) (object.Value, error) {
	if len(args) < 1 {
		return nil, object.ArgsErrorf("as.call() takes at least 1 argument (0 given)")
	}
	var callee ast.Node
	switch fn := args[0].Value.(type) {
	case *object.Language:
		callee = fn.Node()
	case *object.String:
		callee = ast.MakeName(fn.Value())
	case *object.Closure:
		callee = fn.Literal()
	case *object.Builtin:
		callee = ast.MakeName(fn.Name())
	default:
		return nil, object.TypeErrorf("as.call() cannot use a %s as a callee", fn.Type())
	}
	return buildCall(callee, args[1:])
}

func buildCall(callee ast.Node, args []object.Arg) (object.Value, error) {
	nodes := make([]ast.Arg, len(args))
	for k, a := range args {
		nodes[k] = ast.Arg{Tag: a.Tag, Value: object.ToNode(a.Value)}
	}
	c, err := ast.MakeCall(callee, nodes...)
	if err != nil {
		return nil, err
	}
	return object.NewLanguage(c), nil
}

func closureArg(fn string, args []object.Arg) (*object.Closure, error) {
	values, err := exactly(fn, args, 1)
	if err != nil {
		return nil, err
	}
	c, ok := values[0].(*object.Closure)
	if !ok {
		return nil, object.TypeErrorf("%s() expected a closure argument (%s given)", fn, values[0].Type())
	}
	return c, nil
}

// Body returns the body of a closure as quoted code.
func Body(ctx context.Context, args ...object.Arg) (object.Value, error) {
	c, err := closureArg("body", args)
	if err != nil {
		return nil, err
	}
	return quoted(c.Body()), nil
}

// Formals returns the formal argument pairlist of a closure.
func Formals(ctx context.Context, args ...object.Arg) (object.Value, error) {
	c, err := closureArg("formals", args)
	if err != nil {
		return nil, err
	}
	return object.NewLanguage(c.Formals()), nil
}

// MakeFunction builds a closure in the calling scope from a pairlist (or
// null for no formals) and a body.
func MakeFunction(ctx context.Context, args ...object.Arg) (object.Value, error) {
	values, err := exactly("make_function", args, 2)
	if err != nil {
		return nil, err
	}
	var formals *ast.Pairlist
	switch f := values[0].(type) {
	case *object.NullType:
	case *object.Language:
		pl, ok := f.Node().(*ast.Pairlist)
		if !ok {
			return nil, object.TypeErrorf("make_function() expected a pairlist of formals (%s given)", ast.KindOf(f.Node()))
		}
		formals = pl
	default:
		return nil, object.TypeErrorf("make_function() expected a pairlist of formals (%s given)", f.Type())
	}
	scope, ok := object.GetScope(ctx)
	if !ok {
		scope = object.NewScope(nil)
	}
	fn, err := object.MakeFunction(formals, object.ToNode(values[1]), scope)
	if err != nil {
		return nil, err
	}
	return fn, nil
}

// Identity returns its argument.
func Identity(ctx context.Context, args ...object.Arg) (object.Value, error) {
	values, err := exactly("identity", args, 1)
	if err != nil {
		return nil, err
	}
	return values[0], nil
}

func (i *Interpreter) print(ctx context.Context, args ...object.Arg) (object.Value, error) {
	values, err := object.Positional("print", args)
	if err != nil {
		return nil, err
	}
	parts := make([]string, len(values))
	for k, v := range values {
		parts[k] = v.Inspect()
	}
	if _, err := fmt.Fprintln(i.out, strings.Join(parts, " ")); err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return object.NoValue, nil
	}
	return values[len(values)-1], nil
}

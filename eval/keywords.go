package eval

import (
	"context"

	"github.com/risor-io/quasi/ast"
	"github.com/risor-io/quasi/object"
)

// keywordForm evaluates a call whose arguments must not be evaluated
// up front.
type keywordForm func(i *Interpreter, ctx context.Context, c *ast.Call, scope *object.Scope) (object.Value, error)

var keywordForms map[string]keywordForm

func init() {
	keywordForms = map[string]keywordForm{
		"<-":       (*Interpreter).evalAssign,
		"=":        (*Interpreter).evalAssign,
		"(":        (*Interpreter).evalGroup,
		"{":        (*Interpreter).evalBlock,
		"if":       (*Interpreter).evalIf,
		"while":    (*Interpreter).evalWhile,
		"function": (*Interpreter).evalFunction,
		"break":    (*Interpreter).evalLoopControl,
		"next":     (*Interpreter).evalLoopControl,
		"&&":       (*Interpreter).evalLogical,
		"||":       (*Interpreter).evalLogical,
		"quote":    (*Interpreter).evalQuote,
		"missing":  (*Interpreter).evalMissing,
	}
}

// IsKeyword reports whether calls to name are evaluated by the interpreter
// itself rather than by looking name up.
func IsKeyword(name string) bool {
	_, ok := keywordForms[name]
	return ok
}

func checkArgs(c *ast.Call, counts ...int) error {
	name, _ := c.CalleeName()
	n := c.NumArgs()
	for _, want := range counts {
		if n == want {
			return nil
		}
	}
	switch len(counts) {
	case 1:
		return object.NewArgsError(name, counts[0], n)
	default:
		return object.NewArgsRangeError(name, counts[0], counts[len(counts)-1], n)
	}
}

func (i *Interpreter) evalAssign(ctx context.Context, c *ast.Call, scope *object.Scope) (object.Value, error) {
	if err := checkArgs(c, 2); err != nil {
		return nil, err
	}
	var name string
	switch target := c.Arg(0).Value.(type) {
	case *ast.Name:
		name = target.ID()
	case *ast.Constant:
		if target.Type() != ast.StringType {
			return nil, object.TypeErrorf("invalid assignment target (%s)", target.Type())
		}
		name = target.Value().(string)
	default:
		return nil, object.TypeErrorf("invalid assignment target (%s)", ast.KindOf(target))
	}
	if name == "" {
		return nil, object.MissingArgumentf("cannot assign to the empty name")
	}
	v, err := i.eval(ctx, c.Arg(1).Value, scope)
	if err != nil {
		return nil, err
	}
	if fn, ok := v.(*object.Closure); ok && fn.Name() == "" {
		v = fn.WithName(name)
	}
	if err := scope.Set(name, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (i *Interpreter) evalGroup(ctx context.Context, c *ast.Call, scope *object.Scope) (object.Value, error) {
	if err := checkArgs(c, 1); err != nil {
		return nil, err
	}
	return i.eval(ctx, c.Arg(0).Value, scope)
}

func (i *Interpreter) evalBlock(ctx context.Context, c *ast.Call, scope *object.Scope) (object.Value, error) {
	var result object.Value = object.NoValue
	for _, a := range c.Args() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		v, err := i.eval(ctx, a.Value, scope)
		if err != nil {
			return nil, err
		}
		result = v
	}
	return result, nil
}

func (i *Interpreter) evalIf(ctx context.Context, c *ast.Call, scope *object.Scope) (object.Value, error) {
	if err := checkArgs(c, 2, 3); err != nil {
		return nil, err
	}
	cond, err := i.eval(ctx, c.Arg(0).Value, scope)
	if err != nil {
		return nil, err
	}
	if cond.IsTruthy() {
		return i.eval(ctx, c.Arg(1).Value, scope)
	}
	if c.NumArgs() == 3 {
		return i.eval(ctx, c.Arg(2).Value, scope)
	}
	return object.Null, nil
}

func (i *Interpreter) evalWhile(ctx context.Context, c *ast.Call, scope *object.Scope) (object.Value, error) {
	if err := checkArgs(c, 2); err != nil {
		return nil, err
	}
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cond, err := i.eval(ctx, c.Arg(0).Value, scope)
		if err != nil {
			return nil, err
		}
		if !cond.IsTruthy() {
			return object.Null, nil
		}
		if _, err := i.eval(ctx, c.Arg(1).Value, scope); err != nil {
			switch err {
			case errBreak:
				return object.Null, nil
			case errNext:
				continue
			}
			return nil, err
		}
	}
}

func (i *Interpreter) evalLoopControl(ctx context.Context, c *ast.Call, scope *object.Scope) (object.Value, error) {
	if err := checkArgs(c, 0); err != nil {
		return nil, err
	}
	if name, _ := c.CalleeName(); name == "break" {
		return nil, errBreak
	}
	return nil, errNext
}

func (i *Interpreter) evalFunction(ctx context.Context, c *ast.Call, scope *object.Scope) (object.Value, error) {
	formals, body, ok := ast.IsFunctionLiteral(c)
	if !ok {
		return nil, object.TypeErrorf("invalid function literal: expected a formal argument list and a body")
	}
	fn, err := object.MakeFunction(formals, body, scope)
	if err != nil {
		return nil, err
	}
	return fn, nil
}

func (i *Interpreter) evalLogical(ctx context.Context, c *ast.Call, scope *object.Scope) (object.Value, error) {
	if err := checkArgs(c, 2); err != nil {
		return nil, err
	}
	name, _ := c.CalleeName()
	left, err := i.eval(ctx, c.Arg(0).Value, scope)
	if err != nil {
		return nil, err
	}
	if name == "&&" && !left.IsTruthy() {
		return object.False, nil
	}
	if name == "||" && left.IsTruthy() {
		return object.True, nil
	}
	right, err := i.eval(ctx, c.Arg(1).Value, scope)
	if err != nil {
		return nil, err
	}
	return object.NewBool(right.IsTruthy()), nil
}

func (i *Interpreter) evalQuote(ctx context.Context, c *ast.Call, scope *object.Scope) (object.Value, error) {
	if err := checkArgs(c, 1); err != nil {
		return nil, err
	}
	return quoted(c.Arg(0).Value), nil
}

// quoted returns n as a value: constants stand for themselves and
// everything else is language.
func quoted(n ast.Node) object.Value {
	if c, ok := n.(*ast.Constant); ok {
		return object.FromConstant(c)
	}
	return object.NewLanguage(n)
}

func (i *Interpreter) evalMissing(ctx context.Context, c *ast.Call, scope *object.Scope) (object.Value, error) {
	if err := checkArgs(c, 1); err != nil {
		return nil, err
	}
	name, ok := c.Arg(0).Value.(*ast.Name)
	if !ok || name.IsEmpty() {
		return nil, object.TypeErrorf("missing() expects the name of a formal argument")
	}
	v, ok := scope.GetLocal(name.ID())
	if !ok {
		return nil, object.ArgsErrorf("missing(%s) can only be used for formal arguments", ast.FormatName(name.ID()))
	}
	p, ok := v.(*object.Promise)
	return object.NewBool(ok && p.Missing()), nil
}

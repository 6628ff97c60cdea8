package object

import (
	"context"
	"fmt"
)

var _ Callable = (*Builtin)(nil) // Ensure that *Builtin implements Callable

// Arg is an evaluated argument passed to a builtin. An empty Tag means the
// argument was positional.
type Arg struct {
	Tag   string
	Value Value
}

// BuiltinFunction holds the type of a built-in function.
type BuiltinFunction func(ctx context.Context, args ...Arg) (Value, error)

// Builtin wraps func and implements Value.
type Builtin struct {
	fn   BuiltinFunction
	name string
}

func (b *Builtin) Type() Type {
	return BUILTIN
}

func (b *Builtin) Value() BuiltinFunction {
	return b.fn
}

func (b *Builtin) Call(ctx context.Context, args ...Arg) (Value, error) {
	return b.fn(ctx, args...)
}

func (b *Builtin) Name() string {
	return b.name
}

func (b *Builtin) Inspect() string {
	return fmt.Sprintf("builtin(%s)", b.name)
}

func (b *Builtin) String() string {
	return b.Inspect()
}

func (b *Builtin) Interface() any {
	return b.fn
}

func (b *Builtin) Equals(other Value) bool {
	o, ok := other.(*Builtin)
	return ok && b == o
}

func (b *Builtin) IsTruthy() bool {
	return true
}

// NewBuiltin returns a Builtin object that wraps the given function.
func NewBuiltin(name string, fn BuiltinFunction) *Builtin {
	return &Builtin{fn: fn, name: name}
}

// Positional returns the values of args, failing if any is tagged.
func Positional(fn string, args []Arg) ([]Value, error) {
	values := make([]Value, len(args))
	for i, a := range args {
		if a.Tag != "" {
			return nil, ArgsErrorf("%s() got an unexpected named argument %q", fn, a.Tag)
		}
		values[i] = a.Value
	}
	return values, nil
}

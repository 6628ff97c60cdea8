package ast

import (
	"github.com/risor-io/quasi/errors"
	"github.com/risor-io/quasi/internal/token"
)

// Arg is one argument slot of a call. An empty Tag means the argument is
// positional.
type Arg struct {
	Tag   string
	Value Node
}

// Positional returns an untagged argument.
func Positional(n Node) Arg { return Arg{Value: n} }

// Named returns an argument tagged with name.
func Named(name string, n Node) Arg { return Arg{Tag: name, Value: n} }

// Call is a callee applied to an ordered list of arguments. Operators,
// assignment, blocks, conditionals and function literals are all calls.
type Call struct {
	pos    token.Position
	callee Node
	args   []Arg
}

func (x *Call) node() {}

func (x *Call) Kind() Kind          { return CallKind }
func (x *Call) Pos() token.Position { return x.pos }
func (x *Call) String() string      { return Render(x) }

func (x *Call) Equal(other Node) bool {
	o, ok := other.(*Call)
	if !ok || len(o.args) != len(x.args) || !x.callee.Equal(o.callee) {
		return false
	}
	for i, a := range x.args {
		b := o.args[i]
		if a.Tag != b.Tag || !a.Value.Equal(b.Value) {
			return false
		}
	}
	return true
}

// Callee returns the node in the function slot.
func (x *Call) Callee() Node { return x.callee }

// Args returns a copy of the argument slots.
func (x *Call) Args() []Arg {
	out := make([]Arg, len(x.args))
	copy(out, x.args)
	return out
}

// Arg returns the i'th argument slot.
func (x *Call) Arg(i int) Arg { return x.args[i] }

// NumArgs returns the number of argument slots.
func (x *Call) NumArgs() int { return len(x.args) }

// Nodes returns the callee followed by each argument value.
func (x *Call) Nodes() []Node {
	out := make([]Node, 0, len(x.args)+1)
	out = append(out, x.callee)
	for _, a := range x.args {
		out = append(out, a.Value)
	}
	return out
}

// CalleeName returns the callee identifier if the callee is a Name.
func (x *Call) CalleeName() (string, bool) {
	n, ok := x.callee.(*Name)
	if !ok {
		return "", false
	}
	return n.id, true
}

// Arity returns the number of argument slots of a call, which is its node
// count minus the callee.
func Arity(c *Call) int { return len(c.args) }

// MakeCall builds a call. The callee must be present and may not be the empty
// name or a pairlist; every argument must have a value.
func MakeCall(callee Node, args ...Arg) (*Call, error) {
	if err := checkCallee(callee); err != nil {
		return nil, err
	}
	for i, a := range args {
		if a.Value == nil {
			return nil, errors.Newf(errors.ErrInvalidCallShape, "argument %d has no value", i+1)
		}
	}
	owned := make([]Arg, len(args))
	copy(owned, args)
	return &Call{callee: callee, args: owned}, nil
}

// CallFromNodes builds a call from a flat sequence whose first element is
// the callee and whose remaining elements are positional arguments.
func CallFromNodes(nodes []Node) (*Call, error) {
	if len(nodes) == 0 {
		return nil, errors.New(errors.ErrInvalidCallShape, "a call needs a callee")
	}
	args := make([]Arg, len(nodes)-1)
	for i, n := range nodes[1:] {
		args[i] = Positional(n)
	}
	return MakeCall(nodes[0], args...)
}

func checkCallee(callee Node) error {
	switch c := callee.(type) {
	case nil:
		return errors.New(errors.ErrInvalidCallShape, "a call needs a callee")
	case *Name:
		if c.IsEmpty() {
			return errors.New(errors.ErrInvalidCallShape, "the callee cannot be the empty name")
		}
	case *Pairlist:
		return errors.New(errors.ErrInvalidCallShape, "a pairlist cannot be called")
	}
	return nil
}

// WithCallee returns a copy of the call with a different callee.
func (x *Call) WithCallee(callee Node) (*Call, error) {
	if err := checkCallee(callee); err != nil {
		return nil, err
	}
	return &Call{pos: x.pos, callee: callee, args: x.Args()}, nil
}

// WithArg returns a copy of the call with argument slot i replaced.
func (x *Call) WithArg(i int, a Arg) (*Call, error) {
	if i < 0 || i >= len(x.args) {
		return nil, errors.Newf(errors.ErrInvalidCallShape, "argument index %d out of range [0, %d)", i, len(x.args))
	}
	if a.Value == nil {
		return nil, errors.Newf(errors.ErrInvalidCallShape, "argument %d has no value", i+1)
	}
	args := x.Args()
	args[i] = a
	return &Call{pos: x.pos, callee: x.callee, args: args}, nil
}

// WithArgValue returns a copy of the call with the value of slot i replaced
// and its tag kept.
func (x *Call) WithArgValue(i int, n Node) (*Call, error) {
	if i < 0 || i >= len(x.args) {
		return nil, errors.Newf(errors.ErrInvalidCallShape, "argument index %d out of range [0, %d)", i, len(x.args))
	}
	return x.WithArg(i, Arg{Tag: x.args[i].Tag, Value: n})
}

// Append returns a copy of the call with more arguments at the end.
func (x *Call) Append(args ...Arg) (*Call, error) {
	all := append(x.Args(), args...)
	c, err := MakeCall(x.callee, all...)
	if err != nil {
		return nil, err
	}
	c.pos = x.pos
	return c, nil
}

// WithoutArg returns a copy of the call with slot i removed.
func (x *Call) WithoutArg(i int) (*Call, error) {
	if i < 0 || i >= len(x.args) {
		return nil, errors.Newf(errors.ErrInvalidCallShape, "argument index %d out of range [0, %d)", i, len(x.args))
	}
	args := make([]Arg, 0, len(x.args)-1)
	args = append(args, x.args[:i]...)
	args = append(args, x.args[i+1:]...)
	return &Call{pos: x.pos, callee: x.callee, args: args}, nil
}

// CallBuilder assembles a call one argument at a time. The builder owns a
// scratch argument list; Build snapshots it into an immutable Call.
type CallBuilder struct {
	callee Node
	args   []Arg
}

// NewCallBuilder starts a call with the given callee.
func NewCallBuilder(callee Node) *CallBuilder {
	return &CallBuilder{callee: callee}
}

// Arg appends a positional argument.
func (b *CallBuilder) Arg(n Node) *CallBuilder {
	b.args = append(b.args, Positional(n))
	return b
}

// Named appends a tagged argument.
func (b *CallBuilder) Named(tag string, n Node) *CallBuilder {
	b.args = append(b.args, Named(tag, n))
	return b
}

// Missing appends an empty argument slot.
func (b *CallBuilder) Missing() *CallBuilder {
	b.args = append(b.args, Positional(Empty))
	return b
}

// Callee replaces the callee.
func (b *CallBuilder) Callee(callee Node) *CallBuilder {
	b.callee = callee
	return b
}

// Build validates the accumulated call and returns it. The builder may be
// reused afterwards without affecting the returned call.
func (b *CallBuilder) Build() (*Call, error) {
	return MakeCall(b.callee, b.args...)
}

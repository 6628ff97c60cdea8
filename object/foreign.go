package object

import "fmt"

// Foreign holds a Go value that has no representation of its own, such as
// one embedded in a tree with ast.Embed.
type Foreign struct {
	value any
}

func (f *Foreign) Type() Type {
	return FOREIGN
}

func (f *Foreign) Value() any {
	return f.value
}

func (f *Foreign) Inspect() string {
	return fmt.Sprintf("<foreign %T>", f.value)
}

func (f *Foreign) String() string {
	return f.Inspect()
}

func (f *Foreign) Interface() any {
	return f.value
}

func (f *Foreign) Equals(other Value) bool {
	o, ok := other.(*Foreign)
	return ok && f == o
}

func (f *Foreign) IsTruthy() bool {
	return true
}

func NewForeign(value any) *Foreign {
	return &Foreign{value: value}
}

package object

import (
	"github.com/risor-io/quasi/ast"
)

// Float wraps float64 and implements Value and Comparable.
type Float struct {
	value float64
}

func (f *Float) Type() Type {
	return FLOAT
}

func (f *Float) Value() float64 {
	return f.value
}

func (f *Float) Inspect() string {
	return ast.FormatFloat(f.value)
}

func (f *Float) String() string {
	return f.Inspect()
}

func (f *Float) Interface() any {
	return f.value
}

func (f *Float) Equals(other Value) bool {
	switch other := other.(type) {
	case *Float:
		return f.value == other.value
	case *Int:
		return f.value == float64(other.value)
	}
	return false
}

func (f *Float) IsTruthy() bool {
	return f.value != 0
}

func (f *Float) Compare(other Value) (int, error) {
	switch other := other.(type) {
	case *Float:
		return compareOrdered(f.value, other.value), nil
	case *Int:
		return compareOrdered(f.value, float64(other.value)), nil
	default:
		return 0, TypeErrorf("unable to compare float and %s", other.Type())
	}
}

func NewFloat(value float64) *Float {
	return &Float{value: value}
}

func compareOrdered[T int64 | float64 | string](a, b T) int {
	switch {
	case a == b:
		return 0
	case a > b:
		return 1
	}
	return -1
}

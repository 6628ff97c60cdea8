package object

import "strconv"

// Int wraps int64 and implements Value and Comparable.
type Int struct {
	value int64
}

func (i *Int) Type() Type {
	return INT
}

func (i *Int) Value() int64 {
	return i.value
}

func (i *Int) Inspect() string {
	return strconv.FormatInt(i.value, 10)
}

func (i *Int) String() string {
	return i.Inspect()
}

func (i *Int) Interface() any {
	return i.value
}

func (i *Int) Equals(other Value) bool {
	switch other := other.(type) {
	case *Int:
		return i.value == other.value
	case *Float:
		return float64(i.value) == other.value
	}
	return false
}

func (i *Int) IsTruthy() bool {
	return i.value != 0
}

func (i *Int) Compare(other Value) (int, error) {
	switch other := other.(type) {
	case *Int:
		return compareOrdered(i.value, other.value), nil
	case *Float:
		return compareOrdered(float64(i.value), other.value), nil
	default:
		return 0, TypeErrorf("unable to compare int and %s", other.Type())
	}
}

func NewInt(value int64) *Int {
	return &Int{value: value}
}

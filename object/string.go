package object

import "strconv"

// String wraps string and implements Value and Comparable.
type String struct {
	value string
}

func (s *String) Type() Type {
	return STRING
}

func (s *String) Value() string {
	return s.value
}

func (s *String) Inspect() string {
	return strconv.Quote(s.value)
}

func (s *String) String() string {
	return s.value
}

func (s *String) Interface() any {
	return s.value
}

func (s *String) Equals(other Value) bool {
	o, ok := other.(*String)
	return ok && s.value == o.value
}

func (s *String) IsTruthy() bool {
	return s.value != ""
}

func (s *String) Compare(other Value) (int, error) {
	o, ok := other.(*String)
	if !ok {
		return 0, TypeErrorf("unable to compare string and %s", other.Type())
	}
	return compareOrdered(s.value, o.value), nil
}

func NewString(s string) *String {
	return &String{value: s}
}

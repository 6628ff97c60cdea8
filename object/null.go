package object

// NullType is the type of the null value.
type NullType struct{}

func (n *NullType) Type() Type {
	return NULL
}

func (n *NullType) Inspect() string {
	return "null"
}

func (n *NullType) String() string {
	return "null"
}

func (n *NullType) Interface() any {
	return nil
}

func (n *NullType) Equals(other Value) bool {
	_, ok := other.(*NullType)
	return ok
}

func (n *NullType) IsTruthy() bool {
	return false
}

// NoValueType is the type of NoValue. It is distinct from null: a program
// that ran no statements produced nothing at all.
type NoValueType struct{}

func (n *NoValueType) Type() Type {
	return NOVALUE
}

func (n *NoValueType) Inspect() string {
	return "<no value>"
}

func (n *NoValueType) String() string {
	return n.Inspect()
}

func (n *NoValueType) Interface() any {
	return nil
}

func (n *NoValueType) Equals(other Value) bool {
	_, ok := other.(*NoValueType)
	return ok
}

func (n *NoValueType) IsTruthy() bool {
	return false
}

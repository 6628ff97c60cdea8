// Package object provides the runtime values produced by evaluating trees.
//
// A Value is usually type asserted to a specific value type:
//
//	switch v := v.(type) {
//	case *object.Int:
//		// do something with v.Value()
//	case *object.Language:
//		// v.Node() is quoted code
//	}
//
// The Type() method of each value may also be used to get a string name of
// the value type, such as "int" or "closure".
package object

// Type of a value as a string.
type Type string

// Type constants
const (
	BOOL     Type = "bool"
	BUILTIN  Type = "builtin"
	CLOSURE  Type = "closure"
	FLOAT    Type = "float"
	FOREIGN  Type = "foreign"
	INT      Type = "int"
	LANGUAGE Type = "language"
	NOVALUE  Type = "novalue"
	NULL     Type = "null"
	PROMISE  Type = "promise"
	STRING   Type = "string"
)

var (
	Null  = &NullType{}
	True  = &Bool{value: true}
	False = &Bool{value: false}

	// NoValue is the result of evaluating nothing, such as an empty program
	// or an empty block.
	NoValue = &NoValueType{}
)

// Value is the interface that all runtime values implement.
type Value interface {
	// Type of the value.
	Type() Type

	// Inspect returns a string representation of the given value.
	Inspect() string

	// Interface converts the given value to a native Go value.
	Interface() any

	// Returns true if the given value is equal to this value.
	Equals(other Value) bool

	// IsTruthy returns true if the value is considered "truthy".
	IsTruthy() bool
}

// Callable is implemented by values that can be applied to arguments.
type Callable interface {
	Value
	Name() string
}

// Comparable is implemented by values that can be ordered.
type Comparable interface {
	Compare(other Value) (int, error)
}

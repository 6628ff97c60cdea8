// Package op defines the operators the interpreter dispatches on. Operators
// appear in trees as calls whose callee is the operator name, so each kind
// can be looked up by that name.
package op

// BinaryOpType describes a type of binary operation, as in an operation that
// takes two operands. For example, addition, subtraction, multiplication, etc.
type BinaryOpType uint16

const (
	Add      BinaryOpType = 1
	Subtract BinaryOpType = 2
	Multiply BinaryOpType = 3
	Divide   BinaryOpType = 4
	Modulo   BinaryOpType = 5
	And      BinaryOpType = 6
	Or       BinaryOpType = 7
	Power    BinaryOpType = 8
)

// String returns a string representation of the binary operation.
// For example "+" for addition.
func (bop BinaryOpType) String() string {
	switch bop {
	case Add:
		return "+"
	case Subtract:
		return "-"
	case Multiply:
		return "*"
	case Divide:
		return "/"
	case Modulo:
		return "%"
	case And:
		return "&&"
	case Or:
		return "||"
	case Power:
		return "^"
	default:
		return ""
	}
}

// CompareOpType describes a type of comparison operation. For example, less
// than, greater than, equal, etc.
type CompareOpType uint16

const (
	LessThan           CompareOpType = 1
	LessThanOrEqual    CompareOpType = 2
	Equal              CompareOpType = 3
	NotEqual           CompareOpType = 4
	GreaterThan        CompareOpType = 5
	GreaterThanOrEqual CompareOpType = 6
)

// String returns a string representation of the comparison operation.
// For example "<" for less than.
func (cop CompareOpType) String() string {
	switch cop {
	case LessThan:
		return "<"
	case LessThanOrEqual:
		return "<="
	case Equal:
		return "=="
	case NotEqual:
		return "!="
	case GreaterThan:
		return ">"
	case GreaterThanOrEqual:
		return ">="
	default:
		return ""
	}
}

// UnaryOpType describes an operation on a single operand.
type UnaryOpType uint16

const (
	Negate UnaryOpType = 1
	Plus   UnaryOpType = 2
	Not    UnaryOpType = 3
)

func (uop UnaryOpType) String() string {
	switch uop {
	case Negate:
		return "-"
	case Plus:
		return "+"
	case Not:
		return "!"
	default:
		return ""
	}
}

var binaryOps = map[string]BinaryOpType{}
var compareOps = map[string]CompareOpType{}
var unaryOps = map[string]UnaryOpType{}

func init() {
	for _, bop := range []BinaryOpType{Add, Subtract, Multiply, Divide, Modulo, And, Or, Power} {
		binaryOps[bop.String()] = bop
	}
	for _, cop := range []CompareOpType{LessThan, LessThanOrEqual, Equal, NotEqual, GreaterThan, GreaterThanOrEqual} {
		compareOps[cop.String()] = cop
	}
	for _, uop := range []UnaryOpType{Negate, Plus, Not} {
		unaryOps[uop.String()] = uop
	}
}

// LookupBinary returns the binary operation named by the callee of a two
// argument operator call.
func LookupBinary(name string) (BinaryOpType, bool) {
	bop, ok := binaryOps[name]
	return bop, ok
}

// LookupCompare returns the comparison named by name.
func LookupCompare(name string) (CompareOpType, bool) {
	cop, ok := compareOps[name]
	return cop, ok
}

// LookupUnary returns the unary operation named by the callee of a one
// argument operator call.
func LookupUnary(name string) (UnaryOpType, bool) {
	uop, ok := unaryOps[name]
	return uop, ok
}

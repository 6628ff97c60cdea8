package eval

import (
	"context"
	"math"

	"github.com/risor-io/quasi/errors"
	"github.com/risor-io/quasi/object"
	"github.com/risor-io/quasi/op"
)

func arithmetic(name string) object.BuiltinFunction {
	bop, _ := op.LookupBinary(name)
	uop, hasUnary := op.LookupUnary(name)
	return func(ctx context.Context, args ...object.Arg) (object.Value, error) {
		values, err := object.Positional(name, args)
		if err != nil {
			return nil, err
		}
		switch {
		case len(values) == 2:
			return binaryOp(bop, values[0], values[1])
		case len(values) == 1 && hasUnary:
			return unaryOp(uop, values[0])
		case hasUnary:
			return nil, object.NewArgsRangeError(name, 1, 2, len(values))
		}
		return nil, object.NewArgsError(name, 2, len(values))
	}
}

func comparison(name string) object.BuiltinFunction {
	cop, _ := op.LookupCompare(name)
	return func(ctx context.Context, args ...object.Arg) (object.Value, error) {
		values, err := object.Positional(name, args)
		if err != nil {
			return nil, err
		}
		if len(values) != 2 {
			return nil, object.NewArgsError(name, 2, len(values))
		}
		return compareOp(cop, values[0], values[1])
	}
}

func not(ctx context.Context, args ...object.Arg) (object.Value, error) {
	values, err := object.Positional("!", args)
	if err != nil {
		return nil, err
	}
	if len(values) != 1 {
		return nil, object.NewArgsError("!", 1, len(values))
	}
	return unaryOp(op.Not, values[0])
}

func operationErrorf(format string, args ...any) error {
	return errors.Newf(errors.ErrOperation, format, args...)
}

func unaryOp(uop op.UnaryOpType, v object.Value) (object.Value, error) {
	switch uop {
	case op.Not:
		return object.NewBool(!v.IsTruthy()), nil
	case op.Negate:
		switch v := v.(type) {
		case *object.Int:
			return object.NewInt(-v.Value()), nil
		case *object.Float:
			return object.NewFloat(-v.Value()), nil
		}
	case op.Plus:
		switch v.(type) {
		case *object.Int, *object.Float:
			return v, nil
		}
	}
	return nil, object.TypeErrorf("unsupported operand type for unary %s: %s", uop, v.Type())
}

func binaryOp(bop op.BinaryOpType, a, b object.Value) (object.Value, error) {
	switch a := a.(type) {
	case *object.Int:
		switch b := b.(type) {
		case *object.Int:
			return intOp(bop, a.Value(), b.Value())
		case *object.Float:
			return floatOp(bop, float64(a.Value()), b.Value())
		}
	case *object.Float:
		switch b := b.(type) {
		case *object.Int:
			return floatOp(bop, a.Value(), float64(b.Value()))
		case *object.Float:
			return floatOp(bop, a.Value(), b.Value())
		}
	case *object.String:
		if b, ok := b.(*object.String); ok && bop == op.Add {
			return object.NewString(a.Value() + b.Value()), nil
		}
	}
	return nil, object.TypeErrorf("unsupported operand types for %s: %s and %s", bop, a.Type(), b.Type())
}

func intOp(bop op.BinaryOpType, a, b int64) (object.Value, error) {
	switch bop {
	case op.Add:
		return object.NewInt(a + b), nil
	case op.Subtract:
		return object.NewInt(a - b), nil
	case op.Multiply:
		return object.NewInt(a * b), nil
	case op.Divide:
		if b == 0 {
			return nil, operationErrorf("integer division by zero")
		}
		return object.NewInt(a / b), nil
	case op.Modulo:
		if b == 0 {
			return nil, operationErrorf("integer modulo by zero")
		}
		return object.NewInt(a % b), nil
	case op.Power:
		if b >= 0 {
			if result, ok := intPow(a, b); ok {
				return object.NewInt(result), nil
			}
		}
		return object.NewFloat(math.Pow(float64(a), float64(b))), nil
	}
	return nil, object.TypeErrorf("unsupported operation for int: %s", bop)
}

// intPow computes a^b for b >= 0 by repeated squaring. It reports false
// when the result does not fit in an int64.
func intPow(a, b int64) (int64, bool) {
	result := int64(1)
	var ok bool
	for b > 0 {
		if b&1 == 1 {
			if result, ok = mulInt(result, a); !ok {
				return 0, false
			}
		}
		b >>= 1
		if b > 0 {
			if a, ok = mulInt(a, a); !ok {
				return 0, false
			}
		}
	}
	return result, true
}

func mulInt(x, y int64) (int64, bool) {
	if x == 0 || y == 0 {
		return 0, true
	}
	if (x == -1 && y == math.MinInt64) || (y == -1 && x == math.MinInt64) {
		return 0, false
	}
	p := x * y
	return p, p/y == x
}

func floatOp(bop op.BinaryOpType, a, b float64) (object.Value, error) {
	switch bop {
	case op.Add:
		return object.NewFloat(a + b), nil
	case op.Subtract:
		return object.NewFloat(a - b), nil
	case op.Multiply:
		return object.NewFloat(a * b), nil
	case op.Divide:
		return object.NewFloat(a / b), nil
	case op.Modulo:
		return object.NewFloat(math.Mod(a, b)), nil
	case op.Power:
		return object.NewFloat(math.Pow(a, b)), nil
	}
	return nil, object.TypeErrorf("unsupported operation for float: %s", bop)
}

func compareOp(cop op.CompareOpType, a, b object.Value) (object.Value, error) {
	switch cop {
	case op.Equal:
		return object.NewBool(a.Equals(b)), nil
	case op.NotEqual:
		return object.NewBool(!a.Equals(b)), nil
	}
	cmp, ok := a.(object.Comparable)
	if !ok {
		return nil, object.TypeErrorf("unable to compare %s and %s", a.Type(), b.Type())
	}
	n, err := cmp.Compare(b)
	if err != nil {
		return nil, err
	}
	switch cop {
	case op.LessThan:
		return object.NewBool(n < 0), nil
	case op.LessThanOrEqual:
		return object.NewBool(n <= 0), nil
	case op.GreaterThan:
		return object.NewBool(n > 0), nil
	case op.GreaterThanOrEqual:
		return object.NewBool(n >= 0), nil
	}
	return nil, object.TypeErrorf("unsupported comparison: %s", cop)
}

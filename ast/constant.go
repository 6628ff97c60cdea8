package ast

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/risor-io/quasi/errors"
	"github.com/risor-io/quasi/internal/token"
)

// ConstType is the type of the value held by a Constant.
type ConstType int

// Constant types
const (
	NullType ConstType = iota
	BoolType
	IntType
	FloatType
	StringType
	EmbeddedType
)

func (t ConstType) String() string {
	switch t {
	case NullType:
		return "null"
	case BoolType:
		return "bool"
	case IntType:
		return "int"
	case FloatType:
		return "float"
	case StringType:
		return "string"
	case EmbeddedType:
		return "embedded"
	}
	return "unknown"
}

// Constant holds a single literal value. An embedded constant holds an
// arbitrary Go value placed into a tree by Embed; it has no textual form.
type Constant struct {
	pos   token.Position
	typ   ConstType
	value any
}

func (c *Constant) node() {}

func (c *Constant) Kind() Kind          { return ConstantKind }
func (c *Constant) Pos() token.Position { return c.pos }
func (c *Constant) String() string      { return Render(c) }

// Type returns the type of the held value.
func (c *Constant) Type() ConstType { return c.typ }

// Value returns the held value as nil, bool, int64, float64, string, or the
// embedded value.
func (c *Constant) Value() any { return c.value }

// IsEmbedded reports whether the constant was created by Embed.
func (c *Constant) IsEmbedded() bool { return c.typ == EmbeddedType }

func (c *Constant) Equal(other Node) bool {
	o, ok := other.(*Constant)
	if !ok || o.typ != c.typ {
		return false
	}
	switch c.typ {
	case NullType:
		return true
	case FloatType:
		a, b := c.value.(float64), o.value.(float64)
		return a == b || (math.IsNaN(a) && math.IsNaN(b))
	case EmbeddedType:
		return reflect.DeepEqual(c.value, o.value)
	}
	return c.value == o.value
}

// Null returns the null constant.
func Null() *Constant { return &Constant{typ: NullType} }

// Bool returns a boolean constant.
func Bool(v bool) *Constant { return &Constant{typ: BoolType, value: v} }

// Int returns an integer constant.
func Int(v int64) *Constant { return &Constant{typ: IntType, value: v} }

// Float returns a floating point constant.
func Float(v float64) *Constant { return &Constant{typ: FloatType, value: v} }

// String returns a string constant.
func String(v string) *Constant { return &Constant{typ: StringType, value: v} }

// Embed places an arbitrary value into a tree as a constant. This is the
// low-level substitution escape hatch: the evaluator yields v as-is, while
// the deparser refuses to render the tree.
func Embed(v any) *Constant { return &Constant{typ: EmbeddedType, value: v} }

// MakeConstant converts a Go scalar into a Constant. Slices, maps, structs
// and other non-scalar values are rejected with ErrInvalidConstant.
func MakeConstant(v any) (*Constant, error) {
	switch v := v.(type) {
	case nil:
		return Null(), nil
	case *Constant:
		return v, nil
	case bool:
		return Bool(v), nil
	case string:
		return String(v), nil
	case int:
		return Int(int64(v)), nil
	case int8:
		return Int(int64(v)), nil
	case int16:
		return Int(int64(v)), nil
	case int32:
		return Int(int64(v)), nil
	case int64:
		return Int(v), nil
	case uint8:
		return Int(int64(v)), nil
	case uint16:
		return Int(int64(v)), nil
	case uint32:
		return Int(int64(v)), nil
	case uint:
		if uint64(v) > math.MaxInt64 {
			return nil, errors.Newf(errors.ErrInvalidConstant, "integer %d overflows int64", v)
		}
		return Int(int64(v)), nil
	case uint64:
		if v > math.MaxInt64 {
			return nil, errors.Newf(errors.ErrInvalidConstant, "integer %d overflows int64", v)
		}
		return Int(int64(v)), nil
	case float32:
		return Float(float64(v)), nil
	case float64:
		return Float(v), nil
	}
	return nil, errors.Newf(errors.ErrInvalidConstant,
		"a constant must be a single scalar value, got %s", reflect.TypeOf(v))
}

// FormatFloat formats a float so that it reads back as a float: a decimal
// point is added to integral values.
func FormatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	case math.IsNaN(f):
		return "NaN"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// Literal returns the constant as it appears in source text. Embedded
// constants have no source text and render as a placeholder.
func (c *Constant) Literal() string {
	switch c.typ {
	case NullType:
		return "null"
	case BoolType:
		return strconv.FormatBool(c.value.(bool))
	case IntType:
		return strconv.FormatInt(c.value.(int64), 10)
	case FloatType:
		return FormatFloat(c.value.(float64))
	case StringType:
		return strconv.Quote(c.value.(string))
	}
	return fmt.Sprintf("<embedded %T>", c.value)
}

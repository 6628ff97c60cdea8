package object

import (
	"github.com/risor-io/quasi/ast"
)

// FromConstant returns the value a constant denotes. An embedded Value is
// returned as is; any other embedded Go value becomes a Foreign.
func FromConstant(c *ast.Constant) Value {
	switch c.Type() {
	case ast.NullType:
		return Null
	case ast.BoolType:
		return NewBool(c.Value().(bool))
	case ast.IntType:
		return NewInt(c.Value().(int64))
	case ast.FloatType:
		return NewFloat(c.Value().(float64))
	case ast.StringType:
		return NewString(c.Value().(string))
	}
	if v, ok := c.Value().(Value); ok {
		return v
	}
	return NewForeign(c.Value())
}

// ToNode converts a value into code. Scalars become constants and language
// values yield their tree. Anything else is embedded as is, which gives a
// tree that evaluates but cannot be deparsed.
func ToNode(v Value) ast.Node {
	switch v := v.(type) {
	case *NullType:
		return ast.Null()
	case *Bool:
		return ast.Bool(v.value)
	case *Int:
		return ast.Int(v.value)
	case *Float:
		return ast.Float(v.value)
	case *String:
		return ast.String(v.value)
	case *Language:
		return v.node
	case *Promise:
		if v.value != nil {
			return ToNode(v.value)
		}
		return v.expr
	}
	return ast.Embed(v)
}

// FromGo converts a native Go scalar to a value.
func FromGo(v any) (Value, error) {
	switch v := v.(type) {
	case nil:
		return Null, nil
	case Value:
		return v, nil
	case ast.Node:
		return NewLanguage(v), nil
	}
	c, err := ast.MakeConstant(v)
	if err != nil {
		return nil, err
	}
	return FromConstant(c), nil
}

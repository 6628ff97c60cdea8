package ast

import (
	"github.com/risor-io/quasi/errors"
	"github.com/risor-io/quasi/internal/token"
)

// Formal is one entry of a pairlist: a parameter name and its default
// expression. A Default of Empty means the parameter has no default.
type Formal struct {
	Name    string
	Default Node
}

// HasDefault reports whether the formal has a default expression.
func (f Formal) HasDefault() bool {
	return f.Default != nil && !IsEmptyName(f.Default)
}

// Pairlist is the formal parameter list of a function.
type Pairlist struct {
	pos     token.Position
	formals []Formal
}

func (x *Pairlist) node() {}

func (x *Pairlist) Kind() Kind          { return PairlistKind }
func (x *Pairlist) Pos() token.Position { return x.pos }
func (x *Pairlist) String() string      { return Render(x) }

func (x *Pairlist) Equal(other Node) bool {
	o, ok := other.(*Pairlist)
	if !ok || len(o.formals) != len(x.formals) {
		return false
	}
	for i, f := range x.formals {
		g := o.formals[i]
		if f.Name != g.Name || !f.Default.Equal(g.Default) {
			return false
		}
	}
	return true
}

// Len returns the number of formals.
func (x *Pairlist) Len() int { return len(x.formals) }

// Formal returns the i'th formal.
func (x *Pairlist) Formal(i int) Formal { return x.formals[i] }

// Formals returns a copy of the formals.
func (x *Pairlist) Formals() []Formal {
	out := make([]Formal, len(x.formals))
	copy(out, x.formals)
	return out
}

// Names returns the parameter names in order.
func (x *Pairlist) Names() []string {
	names := make([]string, len(x.formals))
	for i, f := range x.formals {
		names[i] = f.Name
	}
	return names
}

// Lookup returns the default for the named formal.
func (x *Pairlist) Lookup(name string) (Node, bool) {
	for _, f := range x.formals {
		if f.Name == name {
			return f.Default, true
		}
	}
	return nil, false
}

// MakePairlist builds a pairlist. Names must be non-empty and unique; a nil
// default is stored as Empty.
func MakePairlist(formals ...Formal) (*Pairlist, error) {
	seen := make(map[string]bool, len(formals))
	owned := make([]Formal, len(formals))
	for i, f := range formals {
		if f.Name == "" {
			return nil, errors.Newf(errors.ErrInvalidFormal, "formal %d has an empty name", i+1)
		}
		if seen[f.Name] {
			return nil, errors.Newf(errors.ErrDuplicateFormalName,
				"formal argument %q matched by multiple entries", f.Name)
		}
		seen[f.Name] = true
		if f.Default == nil {
			f.Default = Empty
		}
		owned[i] = f
	}
	return &Pairlist{formals: owned}, nil
}

// With returns a copy of the pairlist in which name has the given default.
// An existing formal keeps its place; a new one is appended.
func (x *Pairlist) With(name string, def Node) (*Pairlist, error) {
	formals := x.Formals()
	replaced := false
	for i := range formals {
		if formals[i].Name == name {
			formals[i].Default = def
			replaced = true
		}
	}
	if !replaced {
		formals = append(formals, Formal{Name: name, Default: def})
	}
	p, err := MakePairlist(formals...)
	if err != nil {
		return nil, err
	}
	p.pos = x.pos
	return p, nil
}

// Without returns a copy of the pairlist with the named formal removed.
func (x *Pairlist) Without(name string) *Pairlist {
	formals := make([]Formal, 0, len(x.formals))
	for _, f := range x.formals {
		if f.Name != name {
			formals = append(formals, f)
		}
	}
	return &Pairlist{pos: x.pos, formals: formals}
}

// FunctionLiteral returns the code that creates a function: a call to
// `function` whose arguments are the formals and the body.
func FunctionLiteral(formals *Pairlist, body Node) (*Call, error) {
	if formals == nil {
		return nil, errors.New(errors.ErrInvalidCallShape, "a function literal needs a pairlist of formals")
	}
	if body == nil {
		return nil, errors.New(errors.ErrInvalidCallShape, "a function literal needs a body")
	}
	return MakeCall(MakeName("function"), Positional(formals), Positional(body))
}

// IsFunctionLiteral reports whether c has the shape produced by
// FunctionLiteral, returning its parts.
func IsFunctionLiteral(c *Call) (*Pairlist, Node, bool) {
	name, ok := c.CalleeName()
	if !ok || name != "function" || len(c.args) != 2 {
		return nil, nil, false
	}
	if c.args[0].Tag != "" || c.args[1].Tag != "" {
		return nil, nil, false
	}
	formals, ok := c.args[0].Value.(*Pairlist)
	if !ok {
		return nil, nil, false
	}
	return formals, c.args[1].Value, true
}

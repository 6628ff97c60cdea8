// Package ast defines the representation of code as data.
//
// A tree is built from exactly four kinds of node:
//
//   - *Constant: a single literal value such as 1, 2.5, "text", true or null
//   - *Name: an identifier; the empty name means "argument not supplied"
//   - *Call: a callee followed by zero or more, optionally tagged, arguments
//   - *Pairlist: the formal parameter list of a function
//
// Nodes are immutable once constructed. Operations that look like
// modification (Call.WithArg, Pairlist.With, Substitute) return new trees.
package ast

import (
	"fmt"

	"github.com/risor-io/quasi/internal/token"
)

// Node is a portion of the syntax tree. The set of implementations is closed:
// *Constant, *Name, *Call and *Pairlist.
type Node interface {
	// Kind returns which of the four node kinds this is.
	Kind() Kind

	// Pos returns the position of the first character belonging to the
	// node, or token.NoPos for nodes that were not produced by the parser.
	Pos() token.Position

	// Equal reports structural equality. Positions are ignored.
	Equal(other Node) bool

	// String returns the same text as Render.
	String() string

	node()
}

// Kind identifies one of the four node kinds.
type Kind int

// Node kinds
const (
	ConstantKind Kind = iota + 1
	NameKind
	CallKind
	PairlistKind
)

func (k Kind) String() string {
	switch k {
	case ConstantKind:
		return "constant"
	case NameKind:
		return "name"
	case CallKind:
		return "call"
	case PairlistKind:
		return "pairlist"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// KindOf classifies a node. It panics on nil, which is never a well-formed tree.
func KindOf(n Node) Kind {
	switch n.(type) {
	case *Constant:
		return ConstantKind
	case *Name:
		return NameKind
	case *Call:
		return CallKind
	case *Pairlist:
		return PairlistKind
	}
	panic(fmt.Sprintf("ast: KindOf called with %T", n))
}

// Equal reports whether two trees are structurally equal. Two nil nodes are
// equal; a nil and a non-nil node are not.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}

// At returns a copy of n positioned at pos.
func At(n Node, pos token.Position) Node {
	switch n := n.(type) {
	case *Constant:
		c := *n
		c.pos = pos
		return &c
	case *Name:
		c := *n
		c.pos = pos
		return &c
	case *Call:
		c := *n
		c.pos = pos
		return &c
	case *Pairlist:
		c := *n
		c.pos = pos
		return &c
	}
	return n
}

// Clone returns a deep copy of the tree rooted at n. Embedded values are
// copied by reference.
func Clone(n Node) Node {
	switch n := n.(type) {
	case *Constant:
		c := *n
		return &c
	case *Name:
		c := *n
		return &c
	case *Call:
		args := make([]Arg, len(n.args))
		for i, a := range n.args {
			args[i] = Arg{Tag: a.Tag, Value: Clone(a.Value)}
		}
		return &Call{pos: n.pos, callee: Clone(n.callee), args: args}
	case *Pairlist:
		formals := make([]Formal, len(n.formals))
		for i, f := range n.formals {
			formals[i] = Formal{Name: f.Name, Default: Clone(f.Default)}
		}
		return &Pairlist{pos: n.pos, formals: formals}
	}
	return n
}

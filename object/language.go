package object

import (
	"github.com/risor-io/quasi/ast"
	"github.com/risor-io/quasi/deparse"
)

// Language is quoted code: a tree held as a value instead of being
// evaluated.
type Language struct {
	node ast.Node
}

func (l *Language) Type() Type {
	return LANGUAGE
}

// Node returns the quoted tree.
func (l *Language) Node() ast.Node {
	return l.node
}

func (l *Language) Inspect() string {
	if text, err := deparse.Deparse(l.node); err == nil {
		return text
	}
	return ast.Render(l.node)
}

func (l *Language) String() string {
	return l.Inspect()
}

func (l *Language) Interface() any {
	return l.node
}

func (l *Language) Equals(other Value) bool {
	o, ok := other.(*Language)
	return ok && ast.Equal(l.node, o.node)
}

func (l *Language) IsTruthy() bool {
	return true
}

func NewLanguage(node ast.Node) *Language {
	return &Language{node: node}
}

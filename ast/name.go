package ast

import (
	"strings"

	"github.com/risor-io/quasi/internal/lexer"
	"github.com/risor-io/quasi/internal/token"
)

// Name is an identifier. The empty name (see Empty) stands for an argument
// that was not supplied.
type Name struct {
	pos token.Position
	id  string
}

// Empty is the empty name. It is used for missing call arguments and for
// formals without a default.
var Empty = &Name{}

func (x *Name) node() {}

func (x *Name) Kind() Kind          { return NameKind }
func (x *Name) Pos() token.Position { return x.pos }
func (x *Name) String() string      { return Render(x) }

func (x *Name) Equal(other Node) bool {
	o, ok := other.(*Name)
	return ok && o.id == x.id
}

// ID returns the identifier text.
func (x *Name) ID() string { return x.id }

// IsEmpty reports whether this is the empty name.
func (x *Name) IsEmpty() bool { return x.id == "" }

// IsSyntactic reports whether the name can be written without backticks.
func (x *Name) IsSyntactic() bool { return lexer.IsIdentifier(x.id) }

// Quoted returns the identifier in backticks, escaping any backticks and
// backslashes it contains.
func (x *Name) Quoted() string { return QuoteName(x.id) }

// MakeName returns a Name for id. Any string is accepted; identifiers that
// are not valid bare names are quoted when displayed. MakeName("") returns
// Empty.
func MakeName(id string) *Name {
	if id == "" {
		return Empty
	}
	return &Name{id: id}
}

// IsEmptyName reports whether n is the empty name.
func IsEmptyName(n Node) bool {
	x, ok := n.(*Name)
	return ok && x.IsEmpty()
}

// QuoteName wraps id in backticks. Backticks, backslashes and newlines are
// escaped with a backslash.
func QuoteName(id string) string {
	var b strings.Builder
	b.WriteByte('`')
	for _, r := range id {
		if r == '`' || r == '\\' || r == '\n' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('`')
	return b.String()
}

// FormatName returns id as it must be written in source: bare if it is a
// valid identifier, otherwise in backticks.
func FormatName(id string) string {
	if lexer.IsIdentifier(id) {
		return id
	}
	return QuoteName(id)
}

package ast

import (
	"strings"

	"github.com/fatih/color"
)

// RenderOption configures Render.
type RenderOption func(*renderer)

// WithColor highlights names and constants with ANSI colors.
func WithColor(enabled bool) RenderOption {
	return func(r *renderer) {
		r.color = enabled
	}
}

// WithIndent sets the string used for one level of indentation.
// The default is two spaces.
func WithIndent(indent string) RenderOption {
	return func(r *renderer) {
		r.indent = indent
	}
}

type renderer struct {
	color  bool
	indent string

	nameColor    *color.Color
	literalColor *color.Color
	emptyColor   *color.Color
}

// EmptyMarker is how the empty name is displayed by Render.
const EmptyMarker = "<empty>"

// Render returns a readable tree form of a node:
//
//   - constants print as literals: 1, 2.5, "text", true, null
//   - names print in backticks: `x`
//   - the empty name prints as <empty>
//   - calls print as (callee, arg1, tag = arg2)
//   - pairlists print as [x=<empty>, y=2]
//
// A call containing another call or a pairlist is split with one child per
// line, indented one level deeper than the call.
func Render(n Node, opts ...RenderOption) string {
	r := &renderer{indent: "  "}
	for _, opt := range opts {
		opt(r)
	}
	if r.color {
		r.nameColor = color.New(color.FgCyan)
		r.literalColor = color.New(color.FgGreen)
		r.emptyColor = color.New(color.FgYellow)
		for _, c := range []*color.Color{r.nameColor, r.literalColor, r.emptyColor} {
			c.EnableColor()
		}
	}
	var b strings.Builder
	r.render(&b, n, 0)
	return b.String()
}

func (r *renderer) paint(c *color.Color, s string) string {
	if !r.color {
		return s
	}
	return c.Sprint(s)
}

func (r *renderer) render(b *strings.Builder, n Node, depth int) {
	switch n := n.(type) {
	case nil:
		b.WriteString("<nil>")
	case *Constant:
		b.WriteString(r.paint(r.literalColor, n.Literal()))
	case *Name:
		if n.IsEmpty() {
			b.WriteString(r.paint(r.emptyColor, EmptyMarker))
			return
		}
		b.WriteString(r.paint(r.nameColor, n.Quoted()))
	case *Pairlist:
		b.WriteByte('[')
		for i, f := range n.formals {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(FormatName(f.Name))
			b.WriteByte('=')
			r.render(b, f.Default, depth)
		}
		b.WriteByte(']')
	case *Call:
		nested := isNested(n)
		b.WriteByte('(')
		r.render(b, n.callee, depth+1)
		for _, a := range n.args {
			if nested {
				b.WriteString(",\n")
				b.WriteString(strings.Repeat(r.indent, depth+1))
			} else {
				b.WriteString(", ")
			}
			if a.Tag != "" {
				b.WriteString(FormatName(a.Tag))
				b.WriteString(" = ")
			}
			r.render(b, a.Value, depth+1)
		}
		b.WriteByte(')')
	}
}

// isNested reports whether any child of c is a call or pairlist.
func isNested(c *Call) bool {
	for _, n := range c.Nodes() {
		switch n.(type) {
		case *Call, *Pairlist:
			return true
		}
	}
	return false
}

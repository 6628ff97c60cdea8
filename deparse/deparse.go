// Package deparse turns trees back into source text.
//
// Deparse is a left inverse of parser.Parse: for every tree the parser
// produces, parsing the deparsed text yields a structurally equal tree.
// Constructed trees are supported too. Where an operator or keyword form
// would regroup when read back, that subtree is written in backticked call
// form, as in `+`(a, b) * c, rather than wrapped in parentheses, since
// parentheses are themselves calls.
package deparse

import (
	"math"
	"strings"

	"github.com/risor-io/quasi/ast"
	"github.com/risor-io/quasi/errors"
)

// DefaultIndent is the indentation used for the statements of a block.
const DefaultIndent = "    "

// Option is a configuration function for Deparse.
type Option func(*printer)

// WithIndent sets the string used for one level of block indentation.
func WithIndent(indent string) Option {
	return func(p *printer) {
		p.indent = indent
	}
}

// Deparse returns source text that parses back to n. Trees with no textual
// form fail with an error matching errors.ErrUnrenderable.
func Deparse(n ast.Node, opts ...Option) (string, error) {
	text, err := Partial(n, opts...)
	if err != nil {
		return "", err
	}
	return text, nil
}

// Partial is like Deparse but on failure also returns the text rendered
// before the offending subtree was reached.
func Partial(n ast.Node, opts ...Option) (string, error) {
	p := newPrinter(opts)
	err := p.expr(n)
	return p.b.String(), err
}

// Statements deparses a sequence of top-level statements, one per line.
func Statements(nodes []ast.Node, opts ...Option) (string, error) {
	p := newPrinter(opts)
	for _, n := range nodes {
		if err := p.expr(n); err != nil {
			return "", err
		}
		p.b.WriteByte('\n')
	}
	return p.b.String(), nil
}

type printer struct {
	b      strings.Builder
	indent string
	depth  int
	cache  map[*ast.Call]analysis
}

func newPrinter(opts []Option) *printer {
	p := &printer{indent: DefaultIndent, cache: map[*ast.Call]analysis{}}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func unrenderable(format string, args ...any) error {
	return errors.Newf(errors.ErrUnrenderable, format, args...)
}

func (p *printer) write(s string) {
	p.b.WriteString(s)
}

func (p *printer) expr(n ast.Node) error {
	switch n := n.(type) {
	case nil:
		return unrenderable("missing node")
	case *ast.Constant:
		return p.constant(n)
	case *ast.Name:
		if n.IsEmpty() {
			return unrenderable("the empty name has no source form outside an argument list")
		}
		p.write(ast.FormatName(n.ID()))
		return nil
	case *ast.Pairlist:
		return unrenderable("a pairlist has no source form outside a function header")
	case *ast.Call:
		return p.call(n)
	}
	return unrenderable("unknown node type %T", n)
}

func (p *printer) constant(c *ast.Constant) error {
	switch c.Type() {
	case ast.EmbeddedType:
		return unrenderable("an embedded %T value has no source form", c.Value())
	case ast.FloatType:
		f := c.Value().(float64)
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return unrenderable("the float %s has no source form", ast.FormatFloat(f))
		}
	}
	p.write(c.Literal())
	return nil
}

func (p *printer) call(c *ast.Call) error {
	a := p.analyze(c)
	switch a.form {
	case infixForm:
		return p.infix(c, a)
	case prefixForm:
		return p.prefix(c, a)
	case groupForm:
		p.write("(")
		if err := p.expr(c.Arg(0).Value); err != nil {
			return err
		}
		p.write(")")
		return nil
	case blockForm:
		return p.block(c)
	case ifForm:
		return p.ifElse(c, a)
	case whileForm:
		return p.while(c)
	case functionForm:
		return p.function(c)
	case controlForm:
		name, _ := c.CalleeName()
		p.write(name)
		return nil
	}
	return p.callForm(c)
}

// slot renders a child that may need call form to keep its grouping.
func (p *printer) slot(n ast.Node, fits bool) error {
	if c, ok := n.(*ast.Call); ok && !fits {
		return p.callForm(c)
	}
	return p.expr(n)
}

func (p *printer) infix(c *ast.Call, a analysis) error {
	name, _ := c.CalleeName()
	if err := p.slot(c.Arg(0).Value, a.leftFits); err != nil {
		return err
	}
	if name == "^" {
		p.write(name)
	} else {
		p.write(" " + name + " ")
	}
	return p.slot(c.Arg(1).Value, a.rightFits)
}

func (p *printer) prefix(c *ast.Call, a analysis) error {
	name, _ := c.CalleeName()
	p.write(name)
	return p.slot(c.Arg(0).Value, a.leftFits)
}

func (p *printer) block(c *ast.Call) error {
	if c.NumArgs() == 0 {
		p.write("{}")
		return nil
	}
	p.write("{\n")
	p.depth++
	for _, arg := range c.Args() {
		p.write(strings.Repeat(p.indent, p.depth))
		if err := p.expr(arg.Value); err != nil {
			return err
		}
		p.write("\n")
	}
	p.depth--
	p.write(strings.Repeat(p.indent, p.depth) + "}")
	return nil
}

func (p *printer) ifElse(c *ast.Call, a analysis) error {
	p.write("if (")
	if err := p.expr(c.Arg(0).Value); err != nil {
		return err
	}
	p.write(") ")
	if err := p.slot(c.Arg(1).Value, a.leftFits); err != nil {
		return err
	}
	if c.NumArgs() == 3 {
		p.write(" else ")
		return p.expr(c.Arg(2).Value)
	}
	return nil
}

func (p *printer) while(c *ast.Call) error {
	p.write("while (")
	if err := p.expr(c.Arg(0).Value); err != nil {
		return err
	}
	p.write(") ")
	return p.expr(c.Arg(1).Value)
}

func (p *printer) function(c *ast.Call) error {
	formals, body, _ := ast.IsFunctionLiteral(c)
	p.write("function(")
	for i, f := range formals.Formals() {
		if i > 0 {
			p.write(", ")
		}
		p.write(ast.FormatName(f.Name))
		if f.HasDefault() {
			p.write(" = ")
			if err := p.expr(f.Default); err != nil {
				return err
			}
		}
	}
	p.write(") ")
	return p.expr(body)
}

// callForm writes callee(args). Operators and keywords are written as
// backticked names.
func (p *printer) callForm(c *ast.Call) error {
	if err := p.callee(c.Callee()); err != nil {
		return err
	}
	if c.NumArgs() == 1 && c.Arg(0).Tag == "" && ast.IsEmptyName(c.Arg(0).Value) {
		return unrenderable("a call whose only argument is empty has no source form")
	}
	p.write("(")
	for i, arg := range c.Args() {
		if i > 0 {
			p.write(", ")
		}
		if err := p.arg(arg); err != nil {
			return err
		}
	}
	p.write(")")
	return nil
}

func (p *printer) callee(n ast.Node) error {
	switch n := n.(type) {
	case *ast.Constant:
		if isNegative(n) {
			return unrenderable("a negative constant cannot be called")
		}
	case *ast.Call:
		switch p.analyze(n).form {
		case callForm, groupForm, blockForm, controlForm:
			return p.expr(n)
		case functionForm:
			return unrenderable("a function literal cannot be called without parentheses")
		}
		return p.callForm(n)
	}
	return p.expr(n)
}

func (p *printer) arg(arg ast.Arg) error {
	if arg.Tag != "" {
		p.write(ast.FormatName(arg.Tag))
		if ast.IsEmptyName(arg.Value) {
			p.write(" =")
			return nil
		}
		p.write(" = ")
		return p.expr(arg.Value)
	}
	if ast.IsEmptyName(arg.Value) {
		return nil
	}
	// An untagged "a = 1" would read back as a tag.
	if c, ok := arg.Value.(*ast.Call); ok && p.analyze(c).form == infixForm {
		if name, _ := c.CalleeName(); name == "=" {
			return p.callForm(c)
		}
	}
	return p.expr(arg.Value)
}

func isNegative(c *ast.Constant) bool {
	switch v := c.Value().(type) {
	case int64:
		return c.Type() == ast.IntType && v < 0
	case float64:
		return c.Type() == ast.FloatType && math.Signbit(v) && !math.IsNaN(v)
	}
	return false
}

package deparse

import (
	"github.com/risor-io/quasi/ast"
	"github.com/risor-io/quasi/parser"
)

type form int

const (
	callForm form = iota
	infixForm
	prefixForm
	groupForm
	blockForm
	ifForm
	whileForm
	functionForm
	controlForm
)

type shape int

const (
	atom shape = iota
	binary
	unary // also if, while and function, which extend as far right as possible
)

// layout describes how the text of a subtree interacts with what surrounds
// it when read back.
type layout struct {
	shape shape
	// prec is the operator precedence of a binary form, or the precedence
	// a unary form parses its operand with.
	prec int
	// tail is the lowest operand precedence of any unary form on the right
	// edge of the text. An operator with higher precedence written after
	// the text would be absorbed into that operand.
	tail int
	// dangling is set when the right edge ends in an if without else.
	dangling bool
}

var atomLayout = layout{shape: atom, tail: parser.HIGHEST}

// analysis is the chosen form of a call and whether each child slot can be
// written in its natural form. leftFits covers the left operand, the unary
// operand and the consequence of an if.
type analysis struct {
	form      form
	layout    layout
	leftFits  bool
	rightFits bool
}

func (p *printer) layoutOf(n ast.Node) layout {
	switch n := n.(type) {
	case *ast.Constant:
		if isNegative(n) {
			return layout{shape: unary, prec: parser.PREFIX, tail: parser.PREFIX}
		}
	case *ast.Call:
		return p.analyze(n).layout
	}
	return atomLayout
}

// slotLayout is the layout of a child as written: a child that does not fit
// is written in call form.
func (p *printer) slotLayout(n ast.Node, fits bool) layout {
	if !fits {
		return atomLayout
	}
	return p.layoutOf(n)
}

// forcible reports whether n can be written in call form when its natural
// form would regroup.
func (p *printer) forcible(n ast.Node) bool {
	c, ok := n.(*ast.Call)
	return ok && p.analyze(c).form != functionForm
}

func (p *printer) analyze(c *ast.Call) analysis {
	if a, ok := p.cache[c]; ok {
		return a
	}
	a := p.classify(c)
	p.cache[c] = a
	return a
}

func (p *printer) classify(c *ast.Call) analysis {
	call := analysis{form: callForm, layout: atomLayout}
	name, ok := c.CalleeName()
	if !ok || !plainArgs(c) {
		return call
	}
	n := c.NumArgs()
	switch name {
	case "(":
		if n == 1 {
			return analysis{form: groupForm, layout: atomLayout}
		}
		return call
	case "{":
		return analysis{form: blockForm, layout: atomLayout}
	case "break", "next":
		if n == 0 {
			return analysis{form: controlForm, layout: atomLayout}
		}
		return call
	case "if":
		if n != 2 && n != 3 {
			return call
		}
		consequence := c.Arg(1).Value
		fits := !p.layoutOf(consequence).dangling
		if !fits && !p.forcible(consequence) {
			return call
		}
		l := layout{shape: unary, prec: parser.LOWEST, tail: parser.LOWEST, dangling: n == 2}
		if n == 3 {
			l.dangling = p.layoutOf(c.Arg(2).Value).dangling
		}
		return analysis{form: ifForm, layout: l, leftFits: fits}
	case "while":
		if n != 2 {
			return call
		}
		body := p.layoutOf(c.Arg(1).Value)
		l := layout{shape: unary, prec: parser.LOWEST, tail: parser.LOWEST, dangling: body.dangling}
		return analysis{form: whileForm, layout: l}
	case "function":
		_, body, ok := ast.IsFunctionLiteral(c)
		if !ok {
			return call
		}
		l := layout{shape: unary, prec: parser.LOWEST, tail: parser.LOWEST, dangling: p.layoutOf(body).dangling}
		return analysis{form: functionForm, layout: l}
	}
	switch n {
	case 1:
		if prec, ok := parser.PrefixPrecedence(name); ok {
			return p.classifyUnary(c, prec, call)
		}
	case 2:
		if prec, rightAssoc, ok := parser.InfixPrecedence(name); ok {
			return p.classifyBinary(c, prec, rightAssoc, call)
		}
	}
	return call
}

func (p *printer) classifyUnary(c *ast.Call, prec int, fallback analysis) analysis {
	operand := c.Arg(0).Value
	fits := fitsOperand(p.layoutOf(operand), prec)
	if !fits && !p.forcible(operand) {
		return fallback
	}
	inner := p.slotLayout(operand, fits)
	return analysis{
		form: prefixForm,
		layout: layout{
			shape:    unary,
			prec:     prec,
			tail:     min(prec, inner.tail),
			dangling: inner.dangling,
		},
		leftFits: fits,
	}
}

func (p *printer) classifyBinary(c *ast.Call, prec int, rightAssoc bool, fallback analysis) analysis {
	left, right := c.Arg(0).Value, c.Arg(1).Value
	leftFits := fitsLeft(p.layoutOf(left), prec, rightAssoc)
	if !leftFits && !p.forcible(left) {
		return fallback
	}
	rightFits := fitsRight(p.layoutOf(right), prec, rightAssoc)
	if !rightFits && !p.forcible(right) {
		return fallback
	}
	r := p.slotLayout(right, rightFits)
	return analysis{
		form:      infixForm,
		layout:    layout{shape: binary, prec: prec, tail: r.tail, dangling: r.dangling},
		leftFits:  leftFits,
		rightFits: rightFits,
	}
}

// plainArgs reports whether every argument is untagged and non-empty, which
// operator and keyword forms require.
func plainArgs(c *ast.Call) bool {
	for _, a := range c.Args() {
		if a.Tag != "" || ast.IsEmptyName(a.Value) {
			return false
		}
	}
	return true
}

func fitsLeft(l layout, prec int, rightAssoc bool) bool {
	if l.tail < prec || l.dangling {
		return false
	}
	if l.shape == binary {
		return l.prec > prec || (l.prec == prec && !rightAssoc)
	}
	return true
}

func fitsRight(l layout, prec int, rightAssoc bool) bool {
	if l.shape == binary {
		return l.prec > prec || (l.prec == prec && rightAssoc)
	}
	return true
}

func fitsOperand(l layout, prec int) bool {
	if l.shape == binary {
		return l.prec > prec
	}
	return true
}

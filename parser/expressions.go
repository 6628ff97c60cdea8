package parser

import (
	"github.com/risor-io/quasi/ast"
	"github.com/risor-io/quasi/errors"
	"github.com/risor-io/quasi/internal/token"
)

// makeCall builds a call positioned at pos. Construction errors are reported
// as syntax errors at tok.
func (p *Parser) makeCall(tok token.Token, pos token.Position, callee ast.Node, args ...ast.Arg) ast.Node {
	call, err := ast.MakeCall(callee, args...)
	if err != nil {
		return p.wrapError(tok, err)
	}
	return ast.At(call, pos)
}

// operatorName returns the name node an operator token calls.
func operatorName(tok token.Token) ast.Node {
	return ast.At(ast.MakeName(tok.Literal), tok.StartPosition)
}

func (p *Parser) parsePrefixExpr() ast.Node {
	tok := p.curToken
	prec, ok := PrefixPrecedence(tok.Literal)
	if !ok {
		return p.setTokenError(tok, "invalid prefix operator: %s", tok.Literal)
	}
	p.nextToken()
	p.eatNewlines()
	operand := p.parseExpression(prec)
	if operand == nil {
		return nil
	}
	return p.makeCall(tok, tok.StartPosition, operatorName(tok), ast.Positional(operand))
}

func (p *Parser) parseInfixExpr(left ast.Node) ast.Node {
	tok := p.curToken
	precedence := p.currentPrecedence()
	if _, rightAssoc, _ := InfixPrecedence(tok.Literal); rightAssoc {
		precedence--
	}
	p.nextToken()
	p.eatNewlines()
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}
	return p.makeCall(tok, left.Pos(), operatorName(tok),
		ast.Positional(left), ast.Positional(right))
}

func (p *Parser) parseGroupedExpr() ast.Node {
	tok := p.curToken
	p.push(token.LPAREN)
	defer p.pop()
	p.nextToken()
	inner := p.parseExpression(LOWEST)
	if inner == nil {
		return nil
	}
	if !p.expectPeek("parenthesized expression", token.RPAREN) {
		return nil
	}
	return p.makeCall(tok, tok.StartPosition, operatorName(tok), ast.Positional(inner))
}

func (p *Parser) parseCall(callee ast.Node) ast.Node {
	tok := p.curToken
	p.push(token.LPAREN)
	defer p.pop()
	args := p.parseCallArgs()
	if p.err != nil {
		return nil
	}
	return p.makeCall(tok, callee.Pos(), callee, args...)
}

// parseCallArgs parses the argument slots of a call. The current token is the
// opening parenthesis. A slot with nothing in it holds the empty name, so
// "f(a, )" has two arguments while "f()" has none.
func (p *Parser) parseCallArgs() []ast.Arg {
	args := []ast.Arg{}
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return args
	}
	for {
		if p.peekTokenIs(token.COMMA) || p.peekTokenIs(token.RPAREN) {
			args = append(args, ast.Positional(ast.At(ast.Empty, p.peekToken.StartPosition)))
		} else {
			p.nextToken()
			arg, ok := p.parseArg()
			if !ok {
				return nil
			}
			args = append(args, arg)
		}
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		if !p.expectPeek("call arguments", token.RPAREN) {
			return nil
		}
		return args
	}
}

// parseArg parses one argument, which is tagged when a name or string is
// followed by "=".
func (p *Parser) parseArg() (ast.Arg, bool) {
	switch p.curToken.Type {
	case token.IDENT, token.QUOTED_IDENT, token.STRING:
		if !p.peekTokenIs(token.ASSIGN) {
			break
		}
		tagTok := p.curToken
		if tagTok.Literal == "" {
			p.setError(NewSyntaxError(ErrorOpts{
				Code:          errors.E1006,
				Message:       "attempt to use zero-length name as an argument tag",
				File:          p.filename,
				StartPosition: tagTok.StartPosition,
				EndPosition:   tagTok.EndPosition,
				SourceCode:    p.l.Line(tagTok.StartPosition.Line),
			}))
			return ast.Arg{}, false
		}
		p.nextToken()
		if p.peekTokenIs(token.COMMA) || p.peekTokenIs(token.RPAREN) {
			return ast.Named(tagTok.Literal, ast.At(ast.Empty, p.peekToken.StartPosition)), true
		}
		p.nextToken()
		value := p.parseExpression(LOWEST)
		if value == nil {
			return ast.Arg{}, false
		}
		return ast.Named(tagTok.Literal, value), true
	}
	value := p.parseExpression(LOWEST)
	if value == nil {
		return ast.Arg{}, false
	}
	return ast.Positional(value), true
}

package parser

import (
	"fmt"
	"strconv"

	"github.com/risor-io/quasi/ast"
	"github.com/risor-io/quasi/errors"
	"github.com/risor-io/quasi/internal/token"
)

func (p *Parser) parseInt() ast.Node {
	tok := p.curToken
	value, err := strconv.ParseInt(tok.Literal, 10, 64)
	if err != nil {
		p.setError(NewSyntaxError(ErrorOpts{
			Code:          errors.E1008,
			Message:       fmt.Sprintf("invalid integer: %s", tok.Literal),
			File:          p.filename,
			StartPosition: tok.StartPosition,
			EndPosition:   tok.EndPosition,
			SourceCode:    p.l.Line(tok.StartPosition.Line),
		}))
		return nil
	}
	return ast.At(ast.Int(value), tok.StartPosition)
}

func (p *Parser) parseFloat() ast.Node {
	tok := p.curToken
	value, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		p.setError(NewSyntaxError(ErrorOpts{
			Code:          errors.E1008,
			Message:       fmt.Sprintf("invalid float: %s", tok.Literal),
			File:          p.filename,
			StartPosition: tok.StartPosition,
			EndPosition:   tok.EndPosition,
			SourceCode:    p.l.Line(tok.StartPosition.Line),
		}))
		return nil
	}
	return ast.At(ast.Float(value), tok.StartPosition)
}

// parseString builds a string constant. The lexer has already resolved
// escape sequences.
func (p *Parser) parseString() ast.Node {
	return ast.At(ast.String(p.curToken.Literal), p.curToken.StartPosition)
}

func (p *Parser) parseBoolean() ast.Node {
	return ast.At(ast.Bool(p.curTokenIs(token.TRUE)), p.curToken.StartPosition)
}

func (p *Parser) parseNull() ast.Node {
	return ast.At(ast.Null(), p.curToken.StartPosition)
}

func (p *Parser) parseName() ast.Node {
	return ast.At(ast.MakeName(p.curToken.Literal), p.curToken.StartPosition)
}

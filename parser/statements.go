package parser

import (
	"github.com/risor-io/quasi/ast"
	"github.com/risor-io/quasi/errors"
	"github.com/risor-io/quasi/internal/token"
)

// inBraces reports whether the innermost open delimiter is a brace.
func (p *Parser) inBraces() bool {
	n := len(p.nesting)
	return n > 0 && p.nesting[n-1] == token.LBRACE
}

func (p *Parser) parseBlock() ast.Node {
	tok := p.curToken
	p.push(token.LBRACE)
	defer p.pop()
	p.nextToken()
	var args []ast.Arg
	for {
		p.skipSeparators()
		if p.err != nil {
			return nil
		}
		if p.curTokenIs(token.RBRACE) {
			break
		}
		if p.curTokenIs(token.EOF) {
			p.peekError("block", token.RBRACE, p.curToken)
			return nil
		}
		stmt := p.parseStatement(token.RBRACE)
		if stmt == nil {
			return nil
		}
		args = append(args, ast.Positional(stmt))
		p.nextToken()
	}
	return p.makeCall(tok, tok.StartPosition, operatorName(tok), args...)
}

// parseCondition parses "( expr )" following if or while.
func (p *Parser) parseCondition(context string) ast.Node {
	if !p.expectPeek(context, token.LPAREN) {
		return nil
	}
	p.push(token.LPAREN)
	p.nextToken()
	cond := p.parseExpression(LOWEST)
	if cond == nil {
		p.pop()
		return nil
	}
	ok := p.expectPeek(context, token.RPAREN)
	p.pop()
	if !ok {
		return nil
	}
	return cond
}

// parseBody parses the expression after a header, which may start on a
// following line.
func (p *Parser) parseBody() ast.Node {
	p.nextToken()
	p.eatNewlines()
	if p.err != nil {
		return nil
	}
	return p.parseExpression(LOWEST)
}

func (p *Parser) parseIf() ast.Node {
	tok := p.curToken
	cond := p.parseCondition("if condition")
	if cond == nil {
		return nil
	}
	consequence := p.parseBody()
	if consequence == nil {
		return nil
	}
	args := []ast.Arg{ast.Positional(cond), ast.Positional(consequence)}
	hasElse := p.peekTokenIs(token.ELSE)
	if !hasElse && p.inBraces() {
		hasElse = p.peekPastNewlines(token.ELSE)
	}
	if hasElse {
		p.nextToken()
		alternative := p.parseBody()
		if alternative == nil {
			return nil
		}
		args = append(args, ast.Positional(alternative))
	}
	return p.makeCall(tok, tok.StartPosition, keywordName(tok), args...)
}

func (p *Parser) parseWhile() ast.Node {
	tok := p.curToken
	cond := p.parseCondition("while condition")
	if cond == nil {
		return nil
	}
	body := p.parseBody()
	if body == nil {
		return nil
	}
	return p.makeCall(tok, tok.StartPosition, keywordName(tok),
		ast.Positional(cond), ast.Positional(body))
}

func (p *Parser) parseLoopControl() ast.Node {
	tok := p.curToken
	return p.makeCall(tok, tok.StartPosition, keywordName(tok))
}

func (p *Parser) parseFunc() ast.Node {
	tok := p.curToken
	if !p.expectPeek("function", token.LPAREN) {
		return nil
	}
	lparen := p.curToken
	p.push(token.LPAREN)
	formals, ok := p.parseFormals()
	p.pop()
	if !ok {
		return nil
	}
	body := p.parseBody()
	if body == nil {
		return nil
	}
	pl, err := ast.MakePairlist(formals...)
	if err != nil {
		return p.wrapError(lparen, err)
	}
	fn, err := ast.FunctionLiteral(ast.At(pl, lparen.StartPosition).(*ast.Pairlist), body)
	if err != nil {
		return p.wrapError(tok, err)
	}
	return ast.At(fn, tok.StartPosition)
}

// parseFormals parses "x, y = default" up to and including the closing
// parenthesis. The current token is the opening parenthesis.
func (p *Parser) parseFormals() ([]ast.Formal, bool) {
	var formals []ast.Formal
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return formals, true
	}
	seen := map[string]bool{}
	for {
		p.nextToken()
		nameTok := p.curToken
		if !p.curTokenIs(token.IDENT) && !p.curTokenIs(token.QUOTED_IDENT) {
			p.setError(NewSyntaxError(ErrorOpts{
				Code:          errors.E1006,
				Message:       "unexpected " + tokenDescription(nameTok) + " in function parameters (expected identifier)",
				File:          p.filename,
				StartPosition: nameTok.StartPosition,
				EndPosition:   nameTok.EndPosition,
				SourceCode:    p.l.Line(nameTok.StartPosition.Line),
			}))
			return nil, false
		}
		formal := ast.Formal{Name: nameTok.Literal, Default: ast.Empty}
		if p.peekTokenIs(token.ASSIGN) {
			p.nextToken()
			if !p.peekTokenIs(token.COMMA) && !p.peekTokenIs(token.RPAREN) {
				p.nextToken()
				formal.Default = p.parseExpression(LOWEST)
				if formal.Default == nil {
					return nil, false
				}
			}
		}
		formals = append(formals, formal)
		if seen[formal.Name] {
			_, err := ast.MakePairlist(formals...)
			p.wrapError(nameTok, err)
			return nil, false
		}
		seen[formal.Name] = true
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		if !p.expectPeek("function parameters", token.RPAREN) {
			return nil, false
		}
		return formals, true
	}
}

// keywordName returns the name node a keyword construct calls.
func keywordName(tok token.Token) ast.Node {
	return ast.At(ast.MakeName(tok.Literal), tok.StartPosition)
}

// Package parser turns source text into a top-level block of ast nodes.
//
// A parser is created by calling New() with a lexer as input. The parser should
// then be used only once, by calling parser.Parse() to produce the nodes.
//
// Every construct of the surface syntax becomes a call: operators are calls
// to the operator name, and parentheses, braces, if, while and function are
// calls to `(`, `{`, `if`, `while` and `function`.
package parser

import (
	"context"
	"fmt"

	"github.com/risor-io/quasi/ast"
	"github.com/risor-io/quasi/errors"
	"github.com/risor-io/quasi/internal/lexer"
	"github.com/risor-io/quasi/internal/token"
)

type (
	prefixParseFn func() ast.Node
	infixParseFn  func(ast.Node) ast.Node
)

// Parse the provided input as source code and return its top-level
// statements. Either every statement parses or an error is returned; there
// are no partial results.
func Parse(ctx context.Context, input string, options ...Option) ([]ast.Node, error) {
	l := lexer.New(input)
	p := New(l, options...)
	return p.Parse(ctx)
}

// Option is a configuration function for a Parser.
type Option func(*Parser)

// WithFilename sets the file name recorded in positions and errors.
func WithFilename(filename string) Option {
	return func(p *Parser) {
		p.filename = filename
	}
}

// WithMaxDepth sets the maximum nesting depth for the parser.
// This prevents stack overflow on deeply nested input.
// The default is 500.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		p.maxDepth = depth
	}
}

// DefaultMaxDepth is the default maximum nesting depth for parsing.
const DefaultMaxDepth = 500

// Parser object
type Parser struct {
	// the Context supplied in the Parse() call
	ctx context.Context

	// l is our lexer
	l *lexer.Lexer

	// prevToken holds the previous token, which we already processed.
	prevToken token.Token

	// curToken holds the current token from the lexer.
	curToken token.Token

	// peekToken holds the next token from the lexer.
	peekToken token.Token

	// err is the first error encountered; parsing stops once it is set.
	err error

	// prefixParseFns holds a map of parsing methods for
	// prefix-based syntax.
	prefixParseFns map[token.Type]prefixParseFn

	// infixParseFns holds a map of parsing methods for
	// infix-based syntax.
	infixParseFns map[token.Type]infixParseFn

	// nesting is the stack of open delimiters, LPAREN or LBRACE. Newlines
	// are insignificant directly inside parentheses.
	nesting []token.Type

	// The filename of the input
	filename string

	// Current recursion depth
	depth int

	// Maximum allowed recursion depth
	maxDepth int
}

// New returns a Parser for the program provided by the given Lexer.
func New(l *lexer.Lexer, options ...Option) *Parser {
	p := &Parser{
		l:              l,
		prefixParseFns: map[token.Type]prefixParseFn{},
		infixParseFns:  map[token.Type]infixParseFn{},
		maxDepth:       DefaultMaxDepth,
	}
	for _, opt := range options {
		opt(p)
	}
	if p.filename != "" {
		l.SetFilename(p.filename)
	} else {
		p.filename = l.Filename()
	}

	// Prime the token pump
	p.nextToken() // makes curToken=<empty>, peekToken=token[0]
	p.nextToken() // makes curToken=token[0], peekToken=token[1]

	p.registerPrefix(token.BANG, p.parsePrefixExpr)
	p.registerPrefix(token.BREAK, p.parseLoopControl)
	p.registerPrefix(token.FALSE, p.parseBoolean)
	p.registerPrefix(token.FLOAT, p.parseFloat)
	p.registerPrefix(token.FUNCTION, p.parseFunc)
	p.registerPrefix(token.IDENT, p.parseName)
	p.registerPrefix(token.IF, p.parseIf)
	p.registerPrefix(token.INT, p.parseInt)
	p.registerPrefix(token.LBRACE, p.parseBlock)
	p.registerPrefix(token.LPAREN, p.parseGroupedExpr)
	p.registerPrefix(token.MINUS, p.parsePrefixExpr)
	p.registerPrefix(token.NEXT, p.parseLoopControl)
	p.registerPrefix(token.NULL, p.parseNull)
	p.registerPrefix(token.PLUS, p.parsePrefixExpr)
	p.registerPrefix(token.QUOTED_IDENT, p.parseName)
	p.registerPrefix(token.STRING, p.parseString)
	p.registerPrefix(token.TRUE, p.parseBoolean)
	p.registerPrefix(token.WHILE, p.parseWhile)

	p.registerInfix(token.AND, p.parseInfixExpr)
	p.registerInfix(token.ASSIGN, p.parseInfixExpr)
	p.registerInfix(token.ASTERISK, p.parseInfixExpr)
	p.registerInfix(token.CARET, p.parseInfixExpr)
	p.registerInfix(token.EQ, p.parseInfixExpr)
	p.registerInfix(token.GT, p.parseInfixExpr)
	p.registerInfix(token.GT_EQUALS, p.parseInfixExpr)
	p.registerInfix(token.LARROW, p.parseInfixExpr)
	p.registerInfix(token.LPAREN, p.parseCall)
	p.registerInfix(token.LT, p.parseInfixExpr)
	p.registerInfix(token.LT_EQUALS, p.parseInfixExpr)
	p.registerInfix(token.MINUS, p.parseInfixExpr)
	p.registerInfix(token.MOD, p.parseInfixExpr)
	p.registerInfix(token.NOT_EQ, p.parseInfixExpr)
	p.registerInfix(token.OR, p.parseInfixExpr)
	p.registerInfix(token.PLUS, p.parseInfixExpr)
	p.registerInfix(token.SLASH, p.parseInfixExpr)

	return p
}

// Parse the program that is provided via the lexer.
func (p *Parser) Parse(ctx context.Context) ([]ast.Node, error) {
	p.ctx = ctx
	// It's possible for an error to already exist because we read tokens
	// from the lexer in the constructor.
	if p.err != nil {
		return nil, p.err
	}
	var statements []ast.Node
	for {
		p.skipSeparators()
		if p.curTokenIs(token.EOF) {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		stmt := p.parseStatement(token.EOF)
		if p.err != nil {
			return nil, p.err
		}
		statements = append(statements, stmt)
		p.nextToken()
	}
	if p.err != nil {
		return nil, p.err
	}
	return statements, nil
}

// parseStatement parses one expression and checks that it is followed by a
// statement terminator: a newline, a semicolon, or the closing token.
func (p *Parser) parseStatement(closing token.Type) ast.Node {
	stmt := p.parseExpression(LOWEST)
	if stmt == nil {
		return nil
	}
	switch p.peekToken.Type {
	case token.NEWLINE, token.SEMICOLON, closing:
		return stmt
	}
	if closing != token.EOF && p.peekTokenIs(token.EOF) {
		p.peekError("block", closing, p.peekToken)
		return nil
	}
	if closing == token.EOF && p.peekTokenIs(token.RBRACE) {
		p.setTokenError(p.peekToken, "unexpected '}' without a matching '{'")
		return nil
	}
	p.setTokenError(p.peekToken, "unexpected %s following statement", tokenDescription(p.peekToken))
	return nil
}

// skipSeparators advances past newlines and semicolons in the current token.
func (p *Parser) skipSeparators() {
	for p.err == nil && (p.curTokenIs(token.NEWLINE) || p.curTokenIs(token.SEMICOLON)) {
		p.nextToken()
	}
}

// registerPrefix registers a function for handling a prefix-based statement.
func (p *Parser) registerPrefix(tokenType token.Type, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

// registerInfix registers a function for handling an infix-based statement.
func (p *Parser) registerInfix(tokenType token.Type, fn infixParseFn) {
	p.infixParseFns[tokenType] = fn
}

// ignoreNewlines reports whether the innermost open delimiter is a
// parenthesis.
func (p *Parser) ignoreNewlines() bool {
	n := len(p.nesting)
	return n > 0 && p.nesting[n-1] == token.LPAREN
}

func (p *Parser) push(t token.Type) {
	p.nesting = append(p.nesting, t)
}

func (p *Parser) pop() {
	p.nesting = p.nesting[:len(p.nesting)-1]
}

// readToken pulls the next raw token from the lexer into peekToken.
func (p *Parser) readToken() {
	var err error
	p.peekToken, err = p.l.Next()
	if err == nil || p.err != nil {
		return
	}
	// The lexer encountered an error. We consider all lexer errors
	// "syntax errors" and parsing will now be considered broken.
	p.err = NewSyntaxError(ErrorOpts{
		Code:          lexerErrorCode(p.peekToken),
		Cause:         err,
		File:          p.filename,
		StartPosition: p.peekToken.StartPosition,
		EndPosition:   p.peekToken.EndPosition,
		SourceCode:    p.l.Line(p.peekToken.StartPosition.Line),
	})
}

// skipPeekNewlines drops newline tokens from the lookahead while directly
// inside parentheses.
func (p *Parser) skipPeekNewlines() {
	for p.err == nil && p.ignoreNewlines() && p.peekToken.Type == token.NEWLINE {
		p.readToken()
	}
}

// nextToken moves to the next token from the lexer, updating all of
// prevToken, curToken, and peekToken.
func (p *Parser) nextToken() {
	p.skipPeekNewlines()
	p.prevToken = p.curToken
	p.curToken = p.peekToken
	p.readToken()
}

// eatNewlines advances past newline tokens in the current token.
func (p *Parser) eatNewlines() {
	for p.err == nil && p.curTokenIs(token.NEWLINE) {
		p.nextToken()
	}
}

// peekPastNewlines reports whether the given token type appears after
// optional newlines. If found, the newlines are consumed and peekToken is
// the target. Otherwise no tokens are consumed.
func (p *Parser) peekPastNewlines(target token.Type) bool {
	if p.peekTokenIs(target) {
		return true
	}
	if !p.peekTokenIs(token.NEWLINE) {
		return false
	}
	savedPeek := p.peekToken
	savedErr := p.err
	savedLexer := p.l.SaveState()
	for p.err == nil && p.peekToken.Type == token.NEWLINE {
		p.readToken()
	}
	if p.err == nil && p.peekToken.Type == target {
		return true
	}
	p.err = savedErr
	p.peekToken = savedPeek
	p.l.RestoreState(savedLexer)
	return false
}

func (p *Parser) parseExpression(precedence int) ast.Node {
	if p.err != nil {
		return nil
	}
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > p.maxDepth {
		p.setError(NewSyntaxError(ErrorOpts{
			Code:          errors.E1009,
			Message:       fmt.Sprintf("maximum nesting depth of %d exceeded", p.maxDepth),
			File:          p.filename,
			StartPosition: p.curToken.StartPosition,
			EndPosition:   p.curToken.EndPosition,
			SourceCode:    p.l.Line(p.curToken.StartPosition.Line),
		}))
		return nil
	}
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError(p.curToken)
		return nil
	}
	left := prefix()
	if p.err != nil || left == nil {
		return nil
	}
	for precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
		if p.err != nil || left == nil {
			return nil
		}
	}
	return left
}

func (p *Parser) setError(err *SyntaxError) {
	if p.err == nil {
		p.err = err
	}
}

func (p *Parser) setTokenError(t token.Token, msg string, args ...any) ast.Node {
	p.setError(NewSyntaxError(ErrorOpts{
		Message:       fmt.Sprintf(msg, args...),
		File:          p.filename,
		StartPosition: t.StartPosition,
		EndPosition:   t.EndPosition,
		SourceCode:    p.l.Line(t.StartPosition.Line),
	}))
	return nil
}

// wrapError records a construction error at the given token.
func (p *Parser) wrapError(t token.Token, err error) ast.Node {
	p.setError(NewSyntaxError(ErrorOpts{
		Cause:         err,
		File:          p.filename,
		StartPosition: t.StartPosition,
		EndPosition:   t.EndPosition,
		SourceCode:    p.l.Line(t.StartPosition.Line),
	}))
	return nil
}

func (p *Parser) noPrefixParseFnError(t token.Token) {
	code := errors.E1001
	if t.Type == token.EOF {
		code = errors.E1004
	}
	p.setError(NewSyntaxError(ErrorOpts{
		Code:          code,
		Message:       fmt.Sprintf("unexpected %s", tokenDescription(t)),
		File:          p.filename,
		StartPosition: t.StartPosition,
		EndPosition:   t.EndPosition,
		SourceCode:    p.l.Line(t.StartPosition.Line),
	}))
}

// peekError raises an error if the next token is not the expected type.
func (p *Parser) peekError(context string, expected token.Type, got token.Token) {
	code := errors.E1001
	if got.Type == token.EOF {
		code = errors.E1007
	}
	p.setError(NewSyntaxError(ErrorOpts{
		Code: code,
		Message: fmt.Sprintf("unexpected %s while parsing %s (expected %s)",
			tokenDescription(got), context, tokenTypeDescription(expected)),
		File:          p.filename,
		StartPosition: got.StartPosition,
		EndPosition:   got.EndPosition,
		SourceCode:    p.l.Line(got.StartPosition.Line),
	}))
}

// curTokenIs returns true if the current token has the given type.
func (p *Parser) curTokenIs(t token.Type) bool {
	return p.curToken.Type == t
}

// peekTokenIs returns true if the next token has the given type.
func (p *Parser) peekTokenIs(t token.Type) bool {
	p.skipPeekNewlines()
	return p.peekToken.Type == t
}

// expectPeek validates if the next token is of the given type, and advances if
// it is. If it's a different type, then an error is stored.
func (p *Parser) expectPeek(context string, t token.Type) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(context, t, p.peekToken)
	return false
}

// peekPrecedence returns the precedence of the next token.
func (p *Parser) peekPrecedence() int {
	p.skipPeekNewlines()
	if p, ok := precedences[p.peekToken.Type]; ok {
		return p
	}
	return LOWEST
}

// currentPrecedence returns the precedence of the current token.
func (p *Parser) currentPrecedence() int {
	if p, ok := precedences[p.curToken.Type]; ok {
		return p
	}
	return LOWEST
}

func lexerErrorCode(t token.Token) errors.ErrorCode {
	switch {
	case len(t.Literal) > 0 && t.Literal[0] == '"':
		return errors.E1002
	case len(t.Literal) > 0 && t.Literal[0] >= '0' && t.Literal[0] <= '9':
		return errors.E1008
	}
	return errors.E1003
}

// Package lexer splits source text into tokens for the parser.
package lexer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/risor-io/quasi/internal/token"
)

// Lexer holds our object-state.
type Lexer struct {
	// The current character position
	position int

	// The next character position
	readPosition int

	// The current character
	ch rune

	// A rune slice of our input string
	input []rune

	// Byte offsets of each rune in the input
	offsets []int

	// Zero-indexed line number
	line int

	// Rune index of the first character on the current line
	lineStart int

	// Name of the file being lexed, used in positions
	file string
}

// New creates a Lexer instance from string input.
func New(input string) *Lexer {
	runes := []rune(input)
	offsets := make([]int, len(runes)+1)
	off := 0
	for i, r := range runes {
		offsets[i] = off
		off += len(string(r))
	}
	offsets[len(runes)] = off
	l := &Lexer{input: runes, offsets: offsets}
	l.readChar()
	return l
}

// SetFilename sets the filename recorded in token positions.
func (l *Lexer) SetFilename(file string) {
	l.file = file
}

// Filename returns the filename recorded in token positions.
func (l *Lexer) Filename() string {
	return l.file
}

// Next returns the next token. At the end of the input an EOF token is
// returned indefinitely. If the input is malformed, an ILLEGAL token is
// returned along with an error describing the problem.
func (l *Lexer) Next() (token.Token, error) {
	l.skipWhitespace()
	if l.ch == '#' {
		l.skipComment()
	}

	start := l.pos()
	var tok token.Token

	switch l.ch {
	case 0:
		if l.position >= len(l.input) {
			return l.emit(token.EOF, "", start), nil
		}
		return l.illegal(start, "unexpected NUL character")
	case '\n':
		tok = l.emit(token.NEWLINE, "\n", start)
		l.readChar()
		l.line++
		l.lineStart = l.position
		return tok, nil
	case ';':
		return l.single(token.SEMICOLON, start), nil
	case ',':
		return l.single(token.COMMA, start), nil
	case '(':
		return l.single(token.LPAREN, start), nil
	case ')':
		return l.single(token.RPAREN, start), nil
	case '{':
		return l.single(token.LBRACE, start), nil
	case '}':
		return l.single(token.RBRACE, start), nil
	case '+':
		return l.single(token.PLUS, start), nil
	case '-':
		return l.single(token.MINUS, start), nil
	case '*':
		return l.single(token.ASTERISK, start), nil
	case '/':
		return l.single(token.SLASH, start), nil
	case '%':
		return l.single(token.MOD, start), nil
	case '^':
		return l.single(token.CARET, start), nil
	case '=':
		if l.peekChar() == '=' {
			return l.double(token.EQ, start), nil
		}
		return l.single(token.ASSIGN, start), nil
	case '!':
		if l.peekChar() == '=' {
			return l.double(token.NOT_EQ, start), nil
		}
		return l.single(token.BANG, start), nil
	case '<':
		switch l.peekChar() {
		case '-':
			return l.double(token.LARROW, start), nil
		case '=':
			return l.double(token.LT_EQUALS, start), nil
		}
		return l.single(token.LT, start), nil
	case '>':
		if l.peekChar() == '=' {
			return l.double(token.GT_EQUALS, start), nil
		}
		return l.single(token.GT, start), nil
	case '&':
		if l.peekChar() == '&' {
			return l.double(token.AND, start), nil
		}
		return l.illegal(start, "unexpected character '&' (did you mean '&&'?)")
	case '|':
		if l.peekChar() == '|' {
			return l.double(token.OR, start), nil
		}
		return l.illegal(start, "unexpected character '|' (did you mean '||'?)")
	case '"':
		return l.readString(start)
	case '`':
		return l.readQuotedIdent(start)
	}

	if isDigit(l.ch) || (l.ch == '.' && isDigit(l.peekChar())) {
		return l.readNumber(start)
	}
	if isIdentStart(l.ch) {
		ident := l.readIdentifier()
		return l.emit(token.LookupIdentifier(ident), ident, start), nil
	}
	return l.illegal(start, fmt.Sprintf("unexpected character %q", l.ch))
}

// Tokens lexes the entire input. Mostly useful in tests.
func (l *Lexer) Tokens() ([]token.Token, error) {
	var tokens []token.Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens, nil
		}
	}
}

// State is a snapshot of the lexer position, used by the parser to look
// ahead and then rewind.
type State struct {
	position     int
	readPosition int
	ch           rune
	line         int
	lineStart    int
}

// SaveState returns the current lexer state.
func (l *Lexer) SaveState() State {
	return State{
		position:     l.position,
		readPosition: l.readPosition,
		ch:           l.ch,
		line:         l.line,
		lineStart:    l.lineStart,
	}
}

// RestoreState rewinds the lexer to a state returned by SaveState.
func (l *Lexer) RestoreState(s State) {
	l.position = s.position
	l.readPosition = s.readPosition
	l.ch = s.ch
	l.line = s.line
	l.lineStart = s.lineStart
}

// Line returns the text of the given zero-indexed line, without the newline.
func (l *Lexer) Line(n int) string {
	lines := strings.Split(string(l.input), "\n")
	if n < 0 || n >= len(lines) {
		return ""
	}
	return lines[n]
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) pos() token.Position {
	p := l.position
	if p > len(l.input) {
		p = len(l.input)
	}
	return token.Position{
		Char:      l.offsets[p],
		LineStart: l.offsets[l.lineStart],
		Line:      l.line,
		Column:    p - l.lineStart,
		File:      l.file,
	}
}

func (l *Lexer) emit(typ token.Type, literal string, start token.Position) token.Token {
	return token.Token{
		Type:          typ,
		Literal:       literal,
		StartPosition: start,
		EndPosition:   l.pos(),
	}
}

func (l *Lexer) single(typ token.Type, start token.Position) token.Token {
	literal := string(l.ch)
	l.readChar()
	return l.emit(typ, literal, start)
}

func (l *Lexer) double(typ token.Type, start token.Position) token.Token {
	literal := string([]rune{l.ch, l.peekChar()})
	l.readChar()
	l.readChar()
	return l.emit(typ, literal, start)
}

func (l *Lexer) illegal(start token.Position, msg string) (token.Token, error) {
	literal := string(l.ch)
	l.readChar()
	return l.emit(token.ILLEGAL, literal, start), fmt.Errorf("%s", msg)
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *Lexer) skipComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for isIdentChar(l.ch) {
		l.readChar()
	}
	return string(l.input[start:l.position])
}

func (l *Lexer) readNumber(start token.Position) (token.Token, error) {
	begin := l.position
	isFloat := false
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' {
		isFloat = true
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		next := l.peekChar()
		if isDigit(next) || next == '+' || next == '-' {
			isFloat = true
			l.readChar()
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			if !isDigit(l.ch) {
				return l.emit(token.ILLEGAL, string(l.input[begin:l.position]), start),
					fmt.Errorf("invalid number literal: missing exponent digits")
			}
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}
	literal := string(l.input[begin:l.position])
	if isIdentStart(l.ch) {
		bad := literal + l.readIdentifier()
		return l.emit(token.ILLEGAL, bad, start), fmt.Errorf("invalid number literal: %q", bad)
	}
	if isFloat {
		if _, err := strconv.ParseFloat(literal, 64); err != nil {
			return l.emit(token.ILLEGAL, literal, start), fmt.Errorf("invalid number literal: %q", literal)
		}
		return l.emit(token.FLOAT, literal, start), nil
	}
	if _, err := strconv.ParseInt(literal, 10, 64); err != nil {
		return l.emit(token.ILLEGAL, literal, start), fmt.Errorf("integer literal out of range: %s", literal)
	}
	return l.emit(token.INT, literal, start), nil
}

// readString reads a double quoted string. The token literal holds the
// decoded value.
func (l *Lexer) readString(start token.Position) (token.Token, error) {
	begin := l.position
	l.readChar() // opening quote
	for {
		switch l.ch {
		case '"':
			l.readChar()
			raw := string(l.input[begin:l.position])
			value, err := strconv.Unquote(raw)
			if err != nil {
				return l.emit(token.ILLEGAL, raw, start), fmt.Errorf("invalid escape sequence in string literal %s", raw)
			}
			return l.emit(token.STRING, value, start), nil
		case '\\':
			l.readChar()
			if l.ch == 0 && l.position >= len(l.input) {
				continue
			}
			l.readChar()
		case '\n':
			return l.emit(token.ILLEGAL, string(l.input[begin:l.position]), start),
				fmt.Errorf("unterminated string literal")
		case 0:
			if l.position >= len(l.input) {
				return l.emit(token.ILLEGAL, string(l.input[begin:l.position]), start),
					fmt.Errorf("unterminated string literal")
			}
			l.readChar()
		default:
			l.readChar()
		}
	}
}

// readQuotedIdent reads a backtick quoted name. Inside the quotes, a
// backslash escapes the next character.
func (l *Lexer) readQuotedIdent(start token.Position) (token.Token, error) {
	var sb strings.Builder
	l.readChar() // opening backtick
	for {
		switch l.ch {
		case '`':
			l.readChar()
			if sb.Len() == 0 {
				return l.emit(token.ILLEGAL, "``", start), fmt.Errorf("attempt to use zero-length name")
			}
			return l.emit(token.QUOTED_IDENT, sb.String(), start), nil
		case '\\':
			l.readChar()
			if l.ch == 0 && l.position >= len(l.input) {
				continue
			}
			sb.WriteRune(l.ch)
			l.readChar()
		case 0:
			if l.position >= len(l.input) {
				return l.emit(token.ILLEGAL, sb.String(), start), fmt.Errorf("unterminated quoted name")
			}
			sb.WriteRune(l.ch)
			l.readChar()
		case '\n':
			return l.emit(token.ILLEGAL, sb.String(), start), fmt.Errorf("unterminated quoted name")
		default:
			sb.WriteRune(l.ch)
			l.readChar()
		}
	}
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func isIdentStart(ch rune) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ch == '_' || ch == '.'
}

func isIdentChar(ch rune) bool {
	return isIdentStart(ch) || isDigit(ch)
}

// IsIdentifier reports whether s can be written as a bare name, without
// backtick quoting. Reserved words are not identifiers.
func IsIdentifier(s string) bool {
	if s == "" || token.IsKeyword(s) {
		return false
	}
	rs := []rune(s)
	if !isIdentStart(rs[0]) {
		return false
	}
	// ".5" lexes as a number
	if rs[0] == '.' && len(rs) > 1 && isDigit(rs[1]) {
		return false
	}
	for _, r := range rs[1:] {
		if !isIdentChar(r) {
			return false
		}
	}
	return true
}

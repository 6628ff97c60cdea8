// Package token defines language keywords and tokens used when lexing source code.
package token

// Type describes the type of a token as a string.
type Type string

// Position points to a particular location in an input string.
type Position struct {
	Char      int    // byte offset within the file
	LineStart int    // byte offset of the start of the current line
	Line      int    // 0-indexed line number
	Column    int    // 0-indexed column number
	File      string // filename
}

// LineNumber returns the 1-indexed line number for this position in the input.
func (p Position) LineNumber() int {
	return p.Line + 1
}

// ColumnNumber returns the 1-indexed column number for this position in the input.
func (p Position) ColumnNumber() int {
	return p.Column + 1
}

// Advance returns a new Position advanced by n bytes.
// Note: This assumes the advance does not cross line boundaries.
func (p Position) Advance(n int) Position {
	return Position{
		Char:      p.Char + n,
		LineStart: p.LineStart,
		Line:      p.Line,
		Column:    p.Column + n,
		File:      p.File,
	}
}

// IsValid returns true if this position has been set.
func (p Position) IsValid() bool {
	return p.File != "" || p.Line > 0 || p.Column > 0 || p.Char > 0
}

// NoPos is the zero value Position, representing an invalid/unset position.
var NoPos = Position{}

// Token represents one token lexed from the input source code.
type Token struct {
	Type          Type
	Literal       string
	StartPosition Position
	EndPosition   Position
}

// Token types
const (
	AND          Type = "&&"
	ASSIGN       Type = "="
	ASTERISK     Type = "*"
	BANG         Type = "!"
	BREAK        Type = "BREAK"
	CARET        Type = "^"
	COMMA        Type = ","
	ELSE         Type = "ELSE"
	EOF          Type = "EOF"
	EQ           Type = "=="
	FALSE        Type = "FALSE"
	FLOAT        Type = "FLOAT"
	FUNCTION     Type = "FUNCTION"
	GT           Type = ">"
	GT_EQUALS    Type = ">="
	IDENT        Type = "IDENT"
	IF           Type = "IF"
	ILLEGAL      Type = "ILLEGAL"
	INT          Type = "INT"
	LARROW       Type = "<-"
	LBRACE       Type = "{"
	LPAREN       Type = "("
	LT           Type = "<"
	LT_EQUALS    Type = "<="
	MINUS        Type = "-"
	MOD          Type = "%"
	NEWLINE      Type = "EOL"
	NEXT         Type = "NEXT"
	NOT_EQ       Type = "!="
	NULL         Type = "NULL"
	OR           Type = "||"
	PLUS         Type = "+"
	QUOTED_IDENT Type = "QUOTED_IDENT"
	RBRACE       Type = "}"
	RPAREN       Type = ")"
	SEMICOLON    Type = ";"
	SLASH        Type = "/"
	STRING       Type = "STRING"
	TRUE         Type = "TRUE"
	WHILE        Type = "WHILE"
)

// Reserved keywords
var keywords = map[string]Type{
	"break":    BREAK,
	"else":     ELSE,
	"false":    FALSE,
	"function": FUNCTION,
	"if":       IF,
	"next":     NEXT,
	"null":     NULL,
	"true":     TRUE,
	"while":    WHILE,
}

// LookupIdentifier used to determinate whether identifier is keyword nor not
func LookupIdentifier(identifier string) Type {
	if tok, ok := keywords[identifier]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword reports whether the identifier is a reserved word.
func IsKeyword(identifier string) bool {
	_, ok := keywords[identifier]
	return ok
}

// Keywords returns the reserved words in no particular order.
func Keywords() []string {
	words := make([]string, 0, len(keywords))
	for k := range keywords {
		words = append(words, k)
	}
	return words
}

package parser

import "github.com/risor-io/quasi/internal/token"

// Precedence order for operators
const (
	_ int = iota
	LOWEST
	ASSIGN  // <- or =
	OR      // ||
	AND     // &&
	NOT     // !X
	COMPARE // == != < > <= >=
	SUM     // + or -
	PRODUCT // * / %
	PREFIX  // -X or +X
	POWER   // ^
	CALL    // myFunction(X)
	HIGHEST
)

// Precedences for each infix token type
var precedences = map[token.Type]int{
	token.LARROW:    ASSIGN,
	token.ASSIGN:    ASSIGN,
	token.OR:        OR,
	token.AND:       AND,
	token.EQ:        COMPARE,
	token.NOT_EQ:    COMPARE,
	token.LT:        COMPARE,
	token.LT_EQUALS: COMPARE,
	token.GT:        COMPARE,
	token.GT_EQUALS: COMPARE,
	token.PLUS:      SUM,
	token.MINUS:     SUM,
	token.ASTERISK:  PRODUCT,
	token.SLASH:     PRODUCT,
	token.MOD:       PRODUCT,
	token.CARET:     POWER,
	token.LPAREN:    CALL,
}

// binaryOperators maps the callee name of an infix call to its precedence.
var binaryOperators = map[string]int{
	"<-": ASSIGN,
	"=":  ASSIGN,
	"||": OR,
	"&&": AND,
	"==": COMPARE,
	"!=": COMPARE,
	"<":  COMPARE,
	"<=": COMPARE,
	">":  COMPARE,
	">=": COMPARE,
	"+":  SUM,
	"-":  SUM,
	"*":  PRODUCT,
	"/":  PRODUCT,
	"%":  PRODUCT,
	"^":  POWER,
}

// unaryOperators maps the callee name of a prefix call to the precedence
// its operand is parsed at.
var unaryOperators = map[string]int{
	"-": PREFIX,
	"+": PREFIX,
	"!": NOT,
}

// InfixPrecedence returns the precedence of a binary operator and whether
// it groups to the right.
func InfixPrecedence(op string) (prec int, rightAssoc bool, ok bool) {
	prec, ok = binaryOperators[op]
	return prec, prec == ASSIGN || prec == POWER, ok
}

// PrefixPrecedence returns the precedence a unary operator binds its
// operand with.
func PrefixPrecedence(op string) (int, bool) {
	prec, ok := unaryOperators[op]
	return prec, ok
}

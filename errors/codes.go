package errors

import "sort"

// ErrorCode represents a unique identifier for error types.
// Codes are organized by category:
//   - E1xxx: Parse errors
//   - E2xxx: Tree construction and rendering errors
//   - E3xxx: Evaluation errors
type ErrorCode string

const (
	// Parse errors (E1xxx)
	E1001 ErrorCode = "E1001" // Unexpected token
	E1002 ErrorCode = "E1002" // Unterminated string literal
	E1003 ErrorCode = "E1003" // Invalid syntax
	E1004 ErrorCode = "E1004" // Missing expression
	E1005 ErrorCode = "E1005" // Invalid assignment target
	E1006 ErrorCode = "E1006" // Expected identifier
	E1007 ErrorCode = "E1007" // Unclosed delimiter
	E1008 ErrorCode = "E1008" // Invalid number literal
	E1009 ErrorCode = "E1009" // Maximum nesting depth exceeded
	E1010 ErrorCode = "E1010" // Invalid escape sequence
	E1011 ErrorCode = "E1011" // Syntax not allowed

	// Construction errors (E2xxx)
	E2001 ErrorCode = "E2001" // Invalid call shape
	E2002 ErrorCode = "E2002" // Duplicate formal name
	E2003 ErrorCode = "E2003" // Invalid formal
	E2004 ErrorCode = "E2004" // Invalid constant
	E2005 ErrorCode = "E2005" // Unrenderable tree

	// Evaluation errors (E3xxx)
	E3001 ErrorCode = "E3001" // Missing argument
	E3002 ErrorCode = "E3002" // Undefined name
	E3003 ErrorCode = "E3003" // Type error
	E3004 ErrorCode = "E3004" // Invalid arguments
	E3005 ErrorCode = "E3005" // Invalid operation
	E3006 ErrorCode = "E3006" // Stack overflow
	E3007 ErrorCode = "E3007" // Loop control outside of a loop
)

// codeDescriptions maps error codes to their short descriptions.
var codeDescriptions = map[ErrorCode]string{
	E1001: "unexpected token",
	E1002: "unterminated string literal",
	E1003: "invalid syntax",
	E1004: "missing expression",
	E1005: "invalid assignment target",
	E1006: "expected identifier",
	E1007: "unclosed delimiter",
	E1008: "invalid number literal",
	E1009: "maximum nesting depth exceeded",
	E1010: "invalid escape sequence",
	E1011: "syntax not allowed",

	E2001: "invalid call shape",
	E2002: "duplicate formal name",
	E2003: "invalid formal",
	E2004: "invalid constant",
	E2005: "tree has no textual form",

	E3001: "missing argument",
	E3002: "undefined name",
	E3003: "type error",
	E3004: "invalid arguments",
	E3005: "invalid operation",
	E3006: "stack overflow",
	E3007: "loop control outside of a loop",
}

// Description returns the short description for an error code.
func (c ErrorCode) Description() string {
	if desc, ok := codeDescriptions[c]; ok {
		return desc
	}
	return "unknown error"
}

// String returns the error code as a string.
func (c ErrorCode) String() string {
	return string(c)
}

// Category returns the error category based on the code prefix.
func (c ErrorCode) Category() string {
	if len(c) < 2 {
		return "unknown"
	}
	switch c[1] {
	case '1':
		return "parse"
	case '2':
		return "construction"
	case '3':
		return "evaluation"
	default:
		return "unknown"
	}
}

// Codes returns every known error code in order.
func Codes() []ErrorCode {
	codes := make([]ErrorCode, 0, len(codeDescriptions))
	for c := range codeDescriptions {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

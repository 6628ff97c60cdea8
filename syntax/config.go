package syntax

// SyntaxConfig selects language features to reject. The zero value allows
// everything.
type SyntaxConfig struct {
	// Statements
	DisallowAssignment bool // x <- value, x = value

	// Functions
	DisallowFuncDef  bool // function(...) body
	DisallowFuncCall bool // calls other than operators and keyword forms

	// Control flow
	DisallowIf    bool // if and if/else
	DisallowLoops bool // while, break, next

	// Code as data
	DisallowQuote bool // quote and the builtins that build or evaluate code

	// DeniedCalls lists callee names that may not be called.
	DeniedCalls []string
}

// Presets for common use cases.
var (
	// ExpressionOnly restricts programs to expressions: constants, names,
	// operators and calls to functions supplied by the host. There are no
	// bindings, no function definitions and no control flow.
	ExpressionOnly = SyntaxConfig{
		DisallowAssignment: true,
		DisallowFuncDef:    true,
		DisallowIf:         true,
		DisallowLoops:      true,
		DisallowQuote:      true,
	}

	// BasicScripting allows bindings and control flow but no function
	// definitions and no code manipulation.
	BasicScripting = SyntaxConfig{
		DisallowFuncDef: true,
		DisallowQuote:   true,
	}

	// FullLanguage allows everything.
	FullLanguage = SyntaxConfig{}
)

// quoteForms are the callees that build, inspect or evaluate code.
var quoteForms = map[string]bool{
	"quote":         true,
	"eval":          true,
	"parse":         true,
	"deparse":       true,
	"call":          true,
	"as.call":       true,
	"body":          true,
	"formals":       true,
	"make_function": true,
}

package syntax

import (
	"github.com/risor-io/quasi/ast"
	"github.com/risor-io/quasi/eval"
	"github.com/risor-io/quasi/parser"
)

// SyntaxValidator validates programs against a SyntaxConfig.
type SyntaxValidator struct {
	config SyntaxConfig
	denied map[string]bool
}

// NewSyntaxValidator creates a validator for the given configuration.
func NewSyntaxValidator(config SyntaxConfig) *SyntaxValidator {
	denied := make(map[string]bool, len(config.DeniedCalls))
	for _, name := range config.DeniedCalls {
		denied[name] = true
	}
	return &SyntaxValidator{config: config, denied: denied}
}

// Validate checks every node of every statement.
func (v *SyntaxValidator) Validate(nodes []ast.Node) []ValidationError {
	var errs []ValidationError
	for _, root := range nodes {
		for node := range ast.Preorder(root) {
			if call, ok := node.(*ast.Call); ok {
				if err := v.checkCall(call); err != nil {
					errs = append(errs, *err)
				}
			}
		}
	}
	return errs
}

func (v *SyntaxValidator) checkCall(call *ast.Call) *ValidationError {
	name, ok := calleeID(call)
	if !ok {
		if v.config.DisallowFuncCall {
			return violation(call, "function calls are not allowed")
		}
		return nil
	}
	if v.denied[name] {
		return violation(call, "calls to "+ast.FormatName(name)+" are not allowed")
	}
	switch name {
	case "<-", "=":
		if v.config.DisallowAssignment {
			return violation(call, "assignment is not allowed")
		}
		return nil
	case "function":
		if v.config.DisallowFuncDef {
			return violation(call, "function definitions are not allowed")
		}
		return nil
	case "if":
		if v.config.DisallowIf {
			return violation(call, "if expressions are not allowed")
		}
		return nil
	case "while", "break", "next":
		if v.config.DisallowLoops {
			return violation(call, "loops are not allowed")
		}
		return nil
	}
	if quoteForms[name] && v.config.DisallowQuote {
		return violation(call, ast.FormatName(name)+" is not allowed")
	}
	if v.config.DisallowFuncCall && !isOperator(name) && !eval.IsKeyword(name) {
		return violation(call, "function calls are not allowed")
	}
	return nil
}

// calleeID returns the name a call dispatches on. A string constant in the
// function slot is looked up like a name.
func calleeID(call *ast.Call) (string, bool) {
	if name, ok := call.CalleeName(); ok {
		return name, true
	}
	if c, ok := call.Callee().(*ast.Constant); ok && c.Type() == ast.StringType {
		return c.Value().(string), true
	}
	return "", false
}

func isOperator(name string) bool {
	if _, _, ok := parser.InfixPrecedence(name); ok {
		return true
	}
	_, ok := parser.PrefixPrecedence(name)
	return ok
}

func violation(n ast.Node, msg string) *ValidationError {
	return &ValidationError{Message: msg, Node: n, Position: n.Pos()}
}

// Package syntax restricts and rewrites parsed programs before they are
// evaluated. Validators report constructs a host does not allow; transformers
// return a rewritten program.
package syntax

import (
	"fmt"
	"strings"

	"github.com/risor-io/quasi/ast"
	"github.com/risor-io/quasi/errors"
	"github.com/risor-io/quasi/internal/token"
)

// ValidationError represents a syntax restriction violation.
type ValidationError struct {
	Message  string         // description of the violation
	Node     ast.Node       // the offending node
	Position token.Position // source location
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	pos := e.Position
	if !pos.IsValid() {
		return e.Message
	}
	if pos.File != "" {
		return fmt.Sprintf("%s at %s:%d:%d", e.Message, pos.File, pos.LineNumber(), pos.ColumnNumber())
	}
	return fmt.Sprintf("%s at line %d, column %d", e.Message, pos.LineNumber(), pos.ColumnNumber())
}

// ToFormatted converts the error for display by errors.Formatter.
func (e *ValidationError) ToFormatted() *errors.FormattedError {
	f := &errors.FormattedError{
		Code:    errors.E1011,
		Kind:    "syntax error",
		Message: e.Message,
	}
	if e.Position.IsValid() {
		f.Filename = e.Position.File
		f.Line = e.Position.LineNumber()
		f.Column = e.Position.ColumnNumber()
	}
	return f
}

// ValidationErrors wraps multiple validation errors.
type ValidationErrors struct {
	Errors []ValidationError
}

// NewValidationErrors creates a ValidationErrors from a slice of errors.
func NewValidationErrors(errs []ValidationError) *ValidationErrors {
	return &ValidationErrors{Errors: errs}
}

// Error implements the error interface.
func (e *ValidationErrors) Error() string {
	switch len(e.Errors) {
	case 0:
		return "no validation errors"
	case 1:
		return e.Errors[0].Error()
	default:
		var b strings.Builder
		fmt.Fprintf(&b, "%d validation errors:\n", len(e.Errors))
		for _, err := range e.Errors {
			fmt.Fprintf(&b, "  - %s\n", err.Error())
		}
		return b.String()
	}
}

// Unwrap returns the first error for errors.Is/As compatibility.
func (e *ValidationErrors) Unwrap() error {
	if len(e.Errors) > 0 {
		return &e.Errors[0]
	}
	return nil
}

// Validator inspects a program and returns validation errors.
// Validators must not modify the trees they are given.
type Validator interface {
	// Validate checks the program's statements. Every violation is
	// returned, not only the first.
	Validate(nodes []ast.Node) []ValidationError
}

// ValidatorFunc is an adapter to use a function as a Validator.
type ValidatorFunc func([]ast.Node) []ValidationError

// Validate implements the Validator interface.
func (f ValidatorFunc) Validate(nodes []ast.Node) []ValidationError {
	return f(nodes)
}

// Check runs each validator over nodes and combines their findings into a
// single *ValidationErrors, or returns nil when there are none.
func Check(nodes []ast.Node, validators ...Validator) error {
	var all []ValidationError
	for _, v := range validators {
		all = append(all, v.Validate(nodes)...)
	}
	if len(all) == 0 {
		return nil
	}
	return NewValidationErrors(all)
}

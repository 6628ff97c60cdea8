// Package errors defines the error taxonomy shared by the parser, the tree
// constructors, the deparser and the evaluator.
//
// Every error produced by this module is an *Error carrying a Kind. Kinds are
// themselves errors, so callers test for a category with the standard library:
//
//	if errors.Is(err, qerrors.ErrMissingArgument) { ... }
package errors

import (
	"fmt"
	"strings"
)

// Kind is the category of an error. Kinds double as sentinel errors.
type Kind string

func (k Kind) Error() string { return string(k) }

// Error kinds
const (
	ErrSyntax              Kind = "syntax error"
	ErrMissingArgument     Kind = "missing argument"
	ErrInvalidCallShape    Kind = "invalid call shape"
	ErrDuplicateFormalName Kind = "duplicate formal name"
	ErrUnrenderable        Kind = "unrenderable"
	ErrInvalidConstant     Kind = "invalid constant"
	ErrInvalidFormal       Kind = "invalid formal"
	ErrName                Kind = "name error"
	ErrType                Kind = "type error"
	ErrArgs                Kind = "argument error"
	ErrOperation           Kind = "invalid operation"
	ErrStackOverflow       Kind = "stack overflow"
	ErrControl             Kind = "control error"
)

var defaultCodes = map[Kind]ErrorCode{
	ErrSyntax:              E1003,
	ErrMissingArgument:     E3001,
	ErrInvalidCallShape:    E2001,
	ErrDuplicateFormalName: E2002,
	ErrInvalidFormal:       E2003,
	ErrInvalidConstant:     E2004,
	ErrUnrenderable:        E2005,
	ErrName:                E3002,
	ErrType:                E3003,
	ErrArgs:                E3004,
	ErrOperation:           E3005,
	ErrStackOverflow:       E3006,
	ErrControl:             E3007,
}

// SourceLocation represents a position in source code.
type SourceLocation struct {
	Filename string
	Line     int    // 1-based line number
	Column   int    // 1-based column number
	Source   string // The line of source code
}

// String returns a formatted string representation of the source location.
func (s SourceLocation) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// IsZero returns true if the location has not been set.
func (s SourceLocation) IsZero() bool {
	return s.Line == 0 && s.Column == 0
}

// StackFrame represents a single closure call in an evaluation error.
type StackFrame struct {
	Function string
	Location SourceLocation
}

// String returns a formatted string representation of the stack frame.
func (f StackFrame) String() string {
	name := f.Function
	if name == "" {
		name = "<anonymous>"
	}
	if f.Location.IsZero() {
		return "at " + name
	}
	return fmt.Sprintf("at %s (%s)", name, f.Location.String())
}

// FriendlyError is an interface for errors that have a human friendly message
// in addition to a the lower level default error message.
type FriendlyError interface {
	Error() string
	FriendlyErrorMessage() string
}

// FormattableError is an interface for errors that can be formatted with
// the enhanced error formatter (with colors, source context, etc).
type FormattableError interface {
	Error() string
	ToFormatted() *FormattedError
}

// Error is the concrete error type returned throughout this module.
type Error struct {
	Kind     Kind
	Code     ErrorCode
	Message  string
	Location SourceLocation
	Hint     string
	Stack    []StackFrame
	Cause    error
}

// New returns an error of the given kind.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Code: defaultCodes[kind], Message: msg}
}

// Newf returns an error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return New(kind, fmt.Sprintf(format, args...))
}

// Wrap returns an error of the given kind that wraps cause.
func Wrap(kind Kind, cause error, msg string) *Error {
	e := New(kind, msg)
	e.Cause = cause
	return e
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Cause != nil && e.Message == "" {
		b.WriteString(e.Cause.Error())
	}
	if !e.Location.IsZero() {
		b.WriteString(" (")
		b.WriteString(e.Location.String())
		b.WriteString(")")
	}
	return b.String()
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is this error's Kind.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// WithCode returns a copy of the error with a more specific code.
func (e *Error) WithCode(code ErrorCode) *Error {
	c := *e
	c.Code = code
	return &c
}

// WithLocation returns a copy of the error that points at loc.
func (e *Error) WithLocation(loc SourceLocation) *Error {
	c := *e
	c.Location = loc
	return &c
}

// WithHint returns a copy of the error with a hint attached.
func (e *Error) WithHint(hint string) *Error {
	c := *e
	c.Hint = hint
	return &c
}

// PushFrame appends a stack frame in place. The innermost frame comes first.
func (e *Error) PushFrame(frame StackFrame) {
	e.Stack = append(e.Stack, frame)
}

// ToFormatted converts the error to a FormattedError for display.
func (e *Error) ToFormatted() *FormattedError {
	f := &FormattedError{
		Code:     e.Code,
		Kind:     string(e.Kind),
		Message:  e.Message,
		Filename: e.Location.Filename,
		Line:     e.Location.Line,
		Column:   e.Location.Column,
		Hint:     e.Hint,
		Stack:    e.Stack,
	}
	if f.Message == "" && e.Cause != nil {
		f.Message = e.Cause.Error()
	}
	if e.Location.Source != "" {
		f.SourceLines = []SourceLineEntry{
			{Number: e.Location.Line, Text: e.Location.Source, IsMain: true},
		}
	}
	return f
}

// FriendlyErrorMessage formats the error without color.
func (e *Error) FriendlyErrorMessage() string {
	return NewFormatter(false).Format(e.ToFormatted())
}

// KindOf returns the Kind of err if it is (or wraps) an *Error.
func KindOf(err error) (Kind, bool) {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind, true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return "", false
		}
		err = u.Unwrap()
	}
	return "", false
}

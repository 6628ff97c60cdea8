package parser

import (
	"fmt"

	"github.com/risor-io/quasi/errors"
	"github.com/risor-io/quasi/internal/token"
)

// ErrorOpts is a struct that holds a variety of error data.
// All fields are optional, although one of `Cause` or `Message`
// are recommended. If `Cause` is set and `Message` is empty, the
// cause's text is used as the message.
type ErrorOpts struct {
	Code          errors.ErrorCode
	Message       string
	Cause         error
	File          string
	StartPosition token.Position
	EndPosition   token.Position
	SourceCode    string
}

// SyntaxError reports malformed source text. It matches errors.ErrSyntax
// with the standard library errors.Is.
type SyntaxError struct {
	code          errors.ErrorCode
	message       string
	cause         error
	file          string
	startPosition token.Position
	endPosition   token.Position
	sourceCode    string
}

// NewSyntaxError returns a new SyntaxError populated with the given error data
func NewSyntaxError(opts ErrorOpts) *SyntaxError {
	msg := opts.Message
	if msg == "" && opts.Cause != nil {
		msg = opts.Cause.Error()
	}
	code := opts.Code
	if code == "" {
		code = errors.E1003
	}
	return &SyntaxError{
		code:          code,
		message:       msg,
		cause:         opts.Cause,
		file:          opts.File,
		startPosition: opts.StartPosition,
		endPosition:   opts.EndPosition,
		sourceCode:    opts.SourceCode,
	}
}

func (e *SyntaxError) Error() string {
	pos := e.startPosition
	loc := fmt.Sprintf("%d:%d", pos.LineNumber(), pos.ColumnNumber())
	if e.file != "" {
		loc = e.file + ":" + loc
	}
	return fmt.Sprintf("%s: %s (%s)", errors.ErrSyntax, e.message, loc)
}

// Is reports whether target is errors.ErrSyntax.
func (e *SyntaxError) Is(target error) bool {
	return target == errors.ErrSyntax
}

func (e *SyntaxError) Unwrap() error {
	return e.cause
}

func (e *SyntaxError) Code() errors.ErrorCode {
	return e.code
}

func (e *SyntaxError) Message() string {
	return e.message
}

func (e *SyntaxError) Cause() error {
	return e.cause
}

func (e *SyntaxError) File() string {
	return e.file
}

// Position returns where the error was detected.
func (e *SyntaxError) Position() token.Position {
	return e.startPosition
}

func (e *SyntaxError) StartPosition() token.Position {
	return e.startPosition
}

func (e *SyntaxError) EndPosition() token.Position {
	return e.endPosition
}

func (e *SyntaxError) SourceCode() string {
	return e.sourceCode
}

// ToFormatted converts the parser error to a FormattedError for display.
func (e *SyntaxError) ToFormatted() *errors.FormattedError {
	start := e.startPosition
	end := e.endPosition
	endColumn := end.ColumnNumber()
	if end.Line != start.Line || endColumn <= start.ColumnNumber() {
		endColumn = start.ColumnNumber() + 1
	}
	return &errors.FormattedError{
		Code:      e.code,
		Kind:      string(errors.ErrSyntax),
		Message:   e.message,
		Filename:  e.file,
		Line:      start.LineNumber(),
		Column:    start.ColumnNumber(),
		EndColumn: endColumn,
		SourceLines: []errors.SourceLineEntry{
			{Number: start.LineNumber(), Text: e.sourceCode, IsMain: true},
		},
	}
}

func (e *SyntaxError) FriendlyErrorMessage() string {
	return errors.NewFormatter(false).Format(e.ToFormatted())
}

func tokenTypeDescription(t token.Type) string {
	switch t {
	case token.EOF:
		return "end of file"
	case token.IDENT:
		return "identifier"
	case token.NEWLINE:
		return "newline"
	default:
		return fmt.Sprintf("%q", string(t))
	}
}

func tokenDescription(t token.Token) string {
	switch t.Type {
	case token.EOF:
		return "end of file"
	case token.NEWLINE:
		return "newline"
	case token.STRING:
		return "string constant"
	case token.INT, token.FLOAT:
		return "numeric constant " + t.Literal
	case token.IDENT, token.QUOTED_IDENT:
		return "symbol " + t.Literal
	default:
		if t.Literal == "" {
			return string(t.Type)
		}
		return fmt.Sprintf("%q", t.Literal)
	}
}

package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSourceLocation_String(t *testing.T) {
	tests := []struct {
		name     string
		loc      SourceLocation
		expected string
	}{
		{
			name:     "with filename",
			loc:      SourceLocation{Filename: "main.q", Line: 10, Column: 5},
			expected: "main.q:10:5",
		},
		{
			name:     "without filename",
			loc:      SourceLocation{Line: 10, Column: 5},
			expected: "10:5",
		},
		{
			name:     "zero location",
			loc:      SourceLocation{},
			expected: "0:0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.loc.String())
		})
	}
}

func TestKindsAreSentinels(t *testing.T) {
	err := Newf(ErrMissingArgument, "argument %q is missing, with no default", "x")
	require.True(t, stderrors.Is(err, ErrMissingArgument))
	require.False(t, stderrors.Is(err, ErrSyntax))
	require.Equal(t, E3001, err.Code)

	wrapped := fmt.Errorf("running script: %w", err)
	require.True(t, stderrors.Is(wrapped, ErrMissingArgument))
	kind, ok := KindOf(wrapped)
	require.True(t, ok)
	require.Equal(t, ErrMissingArgument, kind)

	_, ok = KindOf(stderrors.New("plain"))
	require.False(t, ok)
}

func TestErrorString(t *testing.T) {
	err := New(ErrDuplicateFormalName, `formal argument "x" matched by multiple entries`)
	require.Equal(t, `duplicate formal name: formal argument "x" matched by multiple entries`, err.Error())

	located := err.WithLocation(SourceLocation{Line: 2, Column: 7})
	require.Equal(t, `duplicate formal name: formal argument "x" matched by multiple entries (2:7)`, located.Error())
	require.True(t, err.Location.IsZero(), "WithLocation must not modify the receiver")
}

func TestWrapUnwrap(t *testing.T) {
	cause := stderrors.New("boom")
	err := Wrap(ErrType, cause, "")
	require.Equal(t, "type error: boom", err.Error())
	require.ErrorIs(t, err, cause)
	require.ErrorIs(t, err, ErrType)
}

func TestCodeCategory(t *testing.T) {
	require.Equal(t, "parse", E1001.Category())
	require.Equal(t, "construction", E2005.Category())
	require.Equal(t, "evaluation", E3002.Category())
	require.Equal(t, "unknown", ErrorCode("X").Category())
	require.Equal(t, "missing argument", E3001.Description())
	require.Equal(t, "unknown error", ErrorCode("E9999").Description())
}

func TestFormatterPlain(t *testing.T) {
	err := Newf(ErrSyntax, "unexpected %s", "')'").
		WithCode(E1001).
		WithLocation(SourceLocation{Filename: "x.q", Line: 1, Column: 5, Source: "f(a))"}).
		WithHint("remove the extra ')'")

	out := err.FriendlyErrorMessage()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Equal(t, "syntax error[E1001]: unexpected ')'", lines[0])
	require.Equal(t, "  --> x.q:1:5", lines[1])
	require.Contains(t, out, " 1 | f(a))")
	require.Contains(t, out, "    ^")
	require.Contains(t, out, "hint: remove the extra ')'")
}

func TestFormatterStack(t *testing.T) {
	err := New(ErrName, "object 'y' not found")
	err.PushFrame(StackFrame{Function: "inner", Location: SourceLocation{Line: 3, Column: 1}})
	err.PushFrame(StackFrame{})
	out := Format(err, false)
	require.Contains(t, out, "stack trace:")
	require.Contains(t, out, "at inner (3:1)")
	require.Contains(t, out, "at <anonymous>")
}

func TestFormatMultiple(t *testing.T) {
	f := NewFormatter(false)
	out := f.FormatMultiple([]*FormattedError{
		{Kind: "syntax error", Message: "first"},
		{Kind: "syntax error", Message: "second"},
	})
	require.Contains(t, out, "syntax error[1/2]: first")
	require.Contains(t, out, "syntax error[2/2]: second")
	require.Equal(t, "", f.FormatMultiple(nil))
}

func TestFormatPlainError(t *testing.T) {
	require.Equal(t, "error: boom\n", Format(stderrors.New("boom"), false))
	require.Equal(t, "", Format(nil, false))
}

func TestSuggest(t *testing.T) {
	candidates := []string{"quote", "deparse", "parse", "print", "body"}
	require.Equal(t, []string{"quote"}, Suggest("qoute", candidates))
	require.Equal(t, []string{"parse"}, Suggest("prse", candidates))
	require.Empty(t, Suggest("zzzzzzzz", candidates))
	require.Equal(t, "did you mean 'quote'?", SuggestionHint([]string{"quote"}))
	require.Equal(t, "did you mean one of: 'a', 'b'?", SuggestionHint([]string{"a", "b"}))
	require.Equal(t, "", SuggestionHint(nil))
}

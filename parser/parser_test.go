package parser

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/risor-io/quasi/ast"
	"github.com/risor-io/quasi/errors"
)

func parseOne(t *testing.T, input string) ast.Node {
	t.Helper()
	nodes, err := Parse(context.Background(), input)
	require.NoError(t, err, input)
	require.Len(t, nodes, 1, input)
	return nodes[0]
}

func nm(id string) ast.Node { return ast.MakeName(id) }

// call builds an expected tree. The callee may be a string naming it; args
// may be nodes or ast.Arg values.
func call(callee any, args ...any) ast.Node {
	var c ast.Node
	switch v := callee.(type) {
	case string:
		c = ast.MakeName(v)
	case ast.Node:
		c = v
	}
	list := make([]ast.Arg, len(args))
	for i, a := range args {
		switch v := a.(type) {
		case ast.Arg:
			list[i] = v
		case ast.Node:
			list[i] = ast.Positional(v)
		}
	}
	out, err := ast.MakeCall(c, list...)
	if err != nil {
		panic(err)
	}
	return out
}

func requireTree(t *testing.T, want, got ast.Node) {
	t.Helper()
	if !ast.Equal(want, got) {
		t.Fatalf("tree mismatch (-want +got):\n%s", cmp.Diff(ast.Render(want), ast.Render(got)))
	}
}

func TestConstants(t *testing.T) {
	tests := []struct {
		input string
		want  ast.Node
	}{
		{"42", ast.Int(42)},
		{"4.5", ast.Float(4.5)},
		{"1e3", ast.Float(1000)},
		{`"hi\n"`, ast.String("hi\n")},
		{"true", ast.Bool(true)},
		{"false", ast.Bool(false)},
		{"null", ast.Null()},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			requireTree(t, tt.want, parseOne(t, tt.input))
		})
	}
}

func TestNames(t *testing.T) {
	requireTree(t, nm("x"), parseOne(t, "x"))
	requireTree(t, nm("as.call"), parseOne(t, "as.call"))
	requireTree(t, nm("my var"), parseOne(t, "`my var`"))
	requireTree(t, nm("if"), parseOne(t, "`if`"))
}

func TestOperatorPrecedence(t *testing.T) {
	one, two, three := ast.Int(1), ast.Int(2), ast.Int(3)
	a, b, c := nm("a"), nm("b"), nm("c")
	tests := []struct {
		input string
		want  ast.Node
	}{
		{"1 + 2 * 3", call("+", one, call("*", two, three))},
		{"(1 + 2) * 3", call("*", call("(", call("+", one, two)), three)},
		{"a - b - c", call("-", call("-", a, b), c)},
		{"a / b %c", call("%", call("/", a, b), c)},
		{"-2^2", call("-", call("^", two, two))},
		{"2^3^2", call("^", two, call("^", three, two))},
		{"-a * b", call("*", call("-", a), b)},
		{"- -a", call("-", call("-", a))},
		{"+a", call("+", a)},
		{"a <- b <- 1", call("<-", a, call("<-", b, one))},
		{"a = 1", call("=", a, one)},
		{"a <- b == c", call("<-", a, call("==", b, c))},
		{"!a == b", call("!", call("==", a, b))},
		{"!a && b", call("&&", call("!", a), b)},
		{"a && b || c", call("||", call("&&", a, b), c)},
		{"a || b && c", call("||", a, call("&&", b, c))},
		{"a < b + 1", call("<", a, call("+", b, one))},
		{"a >= b", call(">=", a, b)},
		{"a != b", call("!=", a, b)},
		{"a <= b", call("<=", a, b)},
		{"a > b", call(">", a, b)},
		{"f(a)(b)", call(call("f", a), b)},
		{"-f(a)", call("-", call("f", a))},
		{"(f)(a)", call(call("(", nm("f")), a)},
		{"`+`(a, b)", call("+", a, b)},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			requireTree(t, tt.want, parseOne(t, tt.input))
		})
	}
}

func TestCallArguments(t *testing.T) {
	a, c := nm("a"), nm("c")
	one := ast.Int(1)
	tests := []struct {
		input string
		want  ast.Node
	}{
		{"f()", call("f")},
		{"f(a)", call("f", a)},
		{"f(a, b = 1)", call("f", a, ast.Named("b", one))},
		{"f(a, , c)", call("f", a, ast.Empty, c)},
		{"f(a, )", call("f", a, ast.Empty)},
		{"f(, )", call("f", ast.Empty, ast.Empty)},
		{"f(x = )", call("f", ast.Named("x", ast.Empty))},
		{`f("a b" = 1)`, call("f", ast.Named("a b", one))},
		{"f(`if` = 1)", call("f", ast.Named("if", one))},
		{"f(a = b = 1)", call("f", ast.Named("a", call("=", nm("b"), one)))},
		{"f((a = 1))", call("f", call("(", call("=", a, one)))},
		{"f(a == 1)", call("f", call("==", a, one))},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			requireTree(t, tt.want, parseOne(t, tt.input))
		})
	}
}

func TestArityOfParsedCall(t *testing.T) {
	n := parseOne(t, "f(a, b)")
	c, ok := n.(*ast.Call)
	require.True(t, ok)
	require.Equal(t, 2, ast.Arity(c))
	name, ok := c.CalleeName()
	require.True(t, ok)
	require.Equal(t, "f", name)
}

func TestStatements(t *testing.T) {
	tests := []struct {
		input string
		count int
	}{
		{"", 0},
		{"\n\n", 0},
		{";;", 0},
		{"a", 1},
		{"a\nb", 2},
		{"a; b", 2},
		{";a;;b;\n", 2},
		{"# comment\na # trailing\n", 1},
		{"a <- 1\na <- a + 1\na", 3},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			nodes, err := Parse(context.Background(), tt.input)
			require.NoError(t, err)
			require.Len(t, nodes, tt.count)
		})
	}
}

func TestNewlines(t *testing.T) {
	one, two := ast.Int(1), ast.Int(2)
	tests := []struct {
		input string
		want  ast.Node
	}{
		{"f(a,\n  b)", call("f", nm("a"), nm("b"))},
		{"f(\n  a\n)", call("f", nm("a"))},
		{"1 +\n  2", call("+", one, two)},
		{"(1\n + 2)", call("(", call("+", one, two))},
		{"x <-\n\n 1", call("<-", nm("x"), one)},
		{"f(\n  {\n    1\n    2\n  }\n)", call("f", call("{", one, two))},
		{"function(x)\n  x", mustFunction(t, []ast.Formal{{Name: "x"}}, nm("x"))},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			requireTree(t, tt.want, parseOne(t, tt.input))
		})
	}
}

func TestNewlineEndsStatement(t *testing.T) {
	nodes, err := Parse(context.Background(), "1\n+ 2")
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	requireTree(t, ast.Int(1), nodes[0])
	requireTree(t, call("+", ast.Int(2)), nodes[1])
}

func TestBlock(t *testing.T) {
	a, b := nm("a"), nm("b")
	requireTree(t, call("{"), parseOne(t, "{}"))
	requireTree(t, call("{", a, b), parseOne(t, "{ a; b }"))
	requireTree(t, call("{", a, b), parseOne(t, "{\n  a\n\n  b\n}"))
	requireTree(t, call("{", call("{", a)), parseOne(t, "{{a}}"))
	requireTree(t, call("{", call("f", a, b)), parseOne(t, "{\n  f(a,\n    b)\n}"))
}

func TestIf(t *testing.T) {
	a, b, x, y := nm("a"), nm("b"), nm("x"), nm("y")
	tests := []struct {
		input string
		want  ast.Node
	}{
		{"if (a) x", call("if", a, x)},
		{"if (a) x else y", call("if", a, x, y)},
		{"if (a)\n  x", call("if", a, x)},
		{"if (a) x else\n  y", call("if", a, x, y)},
		{"if (a) if (b) x else y", call("if", a, call("if", b, x, y))},
		{"if (a) x else if (b) y", call("if", a, x, call("if", b, y))},
		{"if (a) x <- 1", call("if", a, call("<-", x, ast.Int(1)))},
		{"{\n  if (a) x\n  else y\n}", call("{", call("if", a, x, y))},
		{"(if (a) x\n else y)", call("(", call("if", a, x, y))},
		{"{\n  if (a) {\n    x\n  }\n  else {\n    y\n  }\n}", call("{", call("if", a, call("{", x), call("{", y)))},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			requireTree(t, tt.want, parseOne(t, tt.input))
		})
	}
}

func TestIfWithoutElseKeepsFollowingStatement(t *testing.T) {
	nodes, err := Parse(context.Background(), "{\n  if (a) x\n  y\n}")
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	requireTree(t, call("{", call("if", nm("a"), nm("x")), nm("y")), nodes[0])
}

func TestWhileAndLoopControl(t *testing.T) {
	requireTree(t, call("while", nm("a"), nm("x")), parseOne(t, "while (a) x"))
	requireTree(t,
		call("while", ast.Bool(true), call("{", call("break"), call("next"))),
		parseOne(t, "while (true) {\n  break\n  next\n}"))
}

func mustFunction(t *testing.T, formals []ast.Formal, body ast.Node) ast.Node {
	t.Helper()
	pl, err := ast.MakePairlist(formals...)
	require.NoError(t, err)
	fn, err := ast.FunctionLiteral(pl, body)
	require.NoError(t, err)
	return fn
}

func TestFunction(t *testing.T) {
	x, y := nm("x"), nm("y")
	tests := []struct {
		input string
		want  ast.Node
	}{
		{"function() 1", mustFunction(t, nil, ast.Int(1))},
		{"function(x) x", mustFunction(t, []ast.Formal{{Name: "x"}}, x)},
		{"function(x, y = 2) x + y", mustFunction(t,
			[]ast.Formal{{Name: "x"}, {Name: "y", Default: ast.Int(2)}},
			call("+", x, y))},
		{"function(x = ) x", mustFunction(t, []ast.Formal{{Name: "x"}}, x)},
		{"function(`a b`) 1", mustFunction(t, []ast.Formal{{Name: "a b"}}, ast.Int(1))},
		{"function(x) { x }", mustFunction(t, []ast.Formal{{Name: "x"}}, call("{", x))},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := parseOne(t, tt.input)
			requireTree(t, tt.want, got)
			c := got.(*ast.Call)
			_, _, ok := ast.IsFunctionLiteral(c)
			require.True(t, ok)
		})
	}
}

func TestDuplicateFormalName(t *testing.T) {
	_, err := Parse(context.Background(), "function(x, y, x) 1")
	require.Error(t, err)
	require.ErrorIs(t, err, errors.ErrSyntax)
	require.ErrorIs(t, err, errors.ErrDuplicateFormalName)
	var syntaxErr *SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	require.Equal(t, 1, syntaxErr.Position().LineNumber())
	require.Equal(t, 16, syntaxErr.Position().ColumnNumber())
}

func TestPositions(t *testing.T) {
	n := parseOne(t, "a <- f(1,\n  b)")
	root := n.(*ast.Call)
	require.Equal(t, 0, root.Pos().Line)
	require.Equal(t, 0, root.Pos().Column)
	require.Equal(t, 2, root.Callee().Pos().Column)

	rhs := root.Arg(1).Value.(*ast.Call)
	require.Equal(t, 5, rhs.Pos().Column)
	require.Equal(t, 1, rhs.Arg(1).Value.Pos().Line)
	require.Equal(t, 2, rhs.Arg(1).Value.Pos().Column)
}

func TestFilenameInPositions(t *testing.T) {
	nodes, err := Parse(context.Background(), "x", WithFilename("main.q"))
	require.NoError(t, err)
	require.Equal(t, "main.q", nodes[0].Pos().File)

	_, err = Parse(context.Background(), "x y", WithFilename("main.q"))
	require.EqualError(t, err, "syntax error: unexpected symbol y following statement (main.q:1:3)")
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		input string
		code  errors.ErrorCode
		msg   string
		line  int
		col   int
	}{
		{"1 +", errors.E1004, "unexpected end of file", 1, 4},
		{"f(1", errors.E1007, `unexpected end of file while parsing call arguments (expected ")")`, 1, 4},
		{"a b", errors.E1003, "unexpected symbol b following statement", 1, 3},
		{"1 2", errors.E1003, "unexpected numeric constant 2 following statement", 1, 3},
		{")", errors.E1001, `unexpected ")"`, 1, 1},
		{"x }", errors.E1003, "unexpected '}' without a matching '{'", 1, 3},
		{"{ a", errors.E1007, `unexpected end of file while parsing block (expected "}")`, 1, 4},
		{"{", errors.E1007, `unexpected end of file while parsing block (expected "}")`, 1, 2},
		{`"abc`, errors.E1002, "unterminated string literal", 1, 1},
		{"12abc", errors.E1008, `invalid number literal: "12abc"`, 1, 1},
		{"function(1) x", errors.E1006, "unexpected numeric constant 1 in function parameters (expected identifier)", 1, 10},
		{"if a", errors.E1001, `unexpected symbol a while parsing if condition (expected "(")`, 1, 4},
		{"if (a) b\nelse c", errors.E1001, `unexpected "else"`, 2, 1},
		{"while (a", errors.E1007, `unexpected end of file while parsing while condition (expected ")")`, 1, 9},
		{"f(a b)", errors.E1001, `unexpected symbol b while parsing call arguments (expected ")")`, 1, 5},
		{`f("" = 1)`, errors.E1006, "attempt to use zero-length name as an argument tag", 1, 3},
		{"a <- ``", errors.E1003, "attempt to use zero-length name", 1, 6},
		{"a & b", errors.E1003, "unexpected character '&' (did you mean '&&'?)", 1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			nodes, err := Parse(context.Background(), tt.input)
			require.Error(t, err)
			require.Nil(t, nodes)
			require.ErrorIs(t, err, errors.ErrSyntax)
			var syntaxErr *SyntaxError
			require.ErrorAs(t, err, &syntaxErr)
			require.Equal(t, tt.code, syntaxErr.Code())
			require.Equal(t, tt.msg, syntaxErr.Message())
			require.Equal(t, tt.line, syntaxErr.Position().LineNumber(), "line")
			require.Equal(t, tt.col, syntaxErr.Position().ColumnNumber(), "column")
		})
	}
}

func TestNoPartialResults(t *testing.T) {
	nodes, err := Parse(context.Background(), "a <- 1\nb <- 2\n)")
	require.Error(t, err)
	require.Nil(t, nodes)
}

func TestFriendlyErrorMessage(t *testing.T) {
	_, err := Parse(context.Background(), "x <- (1 +", WithFilename("bad.q"))
	require.Error(t, err)
	var syntaxErr *SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	msg := syntaxErr.FriendlyErrorMessage()
	require.Contains(t, msg, "E1004")
	require.Contains(t, msg, "bad.q")
	require.Contains(t, msg, "x <- (1 +")
}

func TestMaxDepth(t *testing.T) {
	input := strings.Repeat("(", 20) + "1" + strings.Repeat(")", 20)
	_, err := Parse(context.Background(), input)
	require.NoError(t, err)

	_, err = Parse(context.Background(), input, WithMaxDepth(10))
	var syntaxErr *SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	require.Equal(t, errors.E1009, syntaxErr.Code())
	require.Equal(t, "maximum nesting depth of 10 exceeded", syntaxErr.Message())
}

func TestContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Parse(ctx, "a\nb")
	require.ErrorIs(t, err, context.Canceled)
}

package deparse

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/risor-io/quasi/ast"
	"github.com/risor-io/quasi/errors"
	"github.com/risor-io/quasi/parser"
)

func parseOne(t *testing.T, input string) ast.Node {
	t.Helper()
	nodes, err := parser.Parse(context.Background(), input)
	require.NoError(t, err, input)
	require.Len(t, nodes, 1, input)
	return nodes[0]
}

func nm(id string) ast.Node { return ast.MakeName(id) }

func call(callee any, args ...any) *ast.Call {
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

// requireRoundTrip checks that n deparses to want and that the text parses
// back to a tree equal to n.
func requireRoundTrip(t *testing.T, n ast.Node, want string) {
	t.Helper()
	text, err := Deparse(n)
	require.NoError(t, err)
	require.Equal(t, want, text)
	back := parseOne(t, text)
	if !ast.Equal(n, back) {
		t.Fatalf("round trip changed the tree (-want +got):\n%s", cmp.Diff(ast.Render(n), ast.Render(back)))
	}
}

func TestParsedSourceRoundTrips(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"42", "42"},
		{"4.5", "4.5"},
		{"1e3", "1000.0"},
		{"1e21", "1e+21"},
		{`"a\"b\n"`, `"a\"b\n"`},
		{"true", "true"},
		{"null", "null"},
		{"x", "x"},
		{"`my var`", "`my var`"},
		{"`if`", "`if`"},
		{"1+2*3", "1 + 2 * 3"},
		{"(1 + 2) * 3", "(1 + 2) * 3"},
		{"a - b - c", "a - b - c"},
		{"a - (b - c)", "a - (b - c)"},
		{"2 ^ 3 ^ 2", "2^3^2"},
		{"(2 ^ 3) ^ 2", "(2^3)^2"},
		{"-2^2", "-2^2"},
		{"(-2)^2", "(-2)^2"},
		{"- -a", "--a"},
		{"!a == b", "!a == b"},
		{"!a && b", "!a && b"},
		{"a <- b <- 1", "a <- b <- 1"},
		{"x <- y = 1", "x <- y = 1"},
		{"a = 1", "a = 1"},
		{"f()", "f()"},
		{"f(a, b = 1)", "f(a, b = 1)"},
		{"f(a, , c)", "f(a, , c)"},
		{"f(a, )", "f(a, )"},
		{"f(x = )", "f(x =)"},
		{`f("a b" = 1)`, "f(`a b` = 1)"},
		{"f((a = 1))", "f((a = 1))"},
		{"f(a = b = 1)", "f(a = b = 1)"},
		{"f(a)(b)", "f(a)(b)"},
		{"(f)(a)", "(f)(a)"},
		{"`+`(1, 2, 3)", "`+`(1, 2, 3)"},
		{"`+`(1, 2)", "1 + 2"},
		{"`-`(a) ^ b", "`-`(a)^b"},
		{"`+`(a, )", "`+`(a, )"},
		{"`(`(x)", "(x)"},
		{"`=`(a, 1)", "a = 1"},
		{"f(`=`(a, 1))", "f(`=`(a, 1))"},
		{"if (a) b", "if (a) b"},
		{"if (a) b else c + 1", "if (a) b else c + 1"},
		{"if (a) if (b) x else y", "if (a) if (b) x else y"},
		{"if (a) (if (b) x) else y", "if (a) (if (b) x) else y"},
		{"if (a) `if`(b, x) else y", "if (a) `if`(b, x) else y"},
		{"(if (a) b) + 1", "(if (a) b) + 1"},
		{"`if`(a, b) + 1", "`if`(a, b) + 1"},
		{"while (i < 3) i <- i + 1", "while (i < 3) i <- i + 1"},
		{"function(x, y = 2) x + y", "function(x, y = 2) x + y"},
		{"function() 1", "function() 1"},
		{"f <- function(x) x", "f <- function(x) x"},
		{"(function(x) x)(2)", "(function(x) x)(2)"},
		{"`function`(x, y)", "`function`(x, y)"},
		{"break", "break"},
		{"`break`(1)", "`break`(1)"},
		{"break()", "break()"},
		{"{}", "{}"},
		{"{ a; b }", "{\n    a\n    b\n}"},
		{"`{`(a = 1)", "`{`(a = 1)"},
		{"{\n if (a) x\n else y\n}", "{\n    if (a) x else y\n}"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			requireRoundTrip(t, parseOne(t, tt.input), tt.want)
		})
	}
}

func TestNestedBlocks(t *testing.T) {
	input := strings.Join([]string{
		"f <- function(n) {",
		"    i <- 0",
		"    while (i < n) {",
		"        i <- i + 1",
		"        if (i == 2) next else print(i)",
		"    }",
		"    i",
		"}",
	}, "\n")
	requireRoundTrip(t, parseOne(t, input), input)
}

func TestWithIndent(t *testing.T) {
	text, err := Deparse(parseOne(t, "{ a; { b } }"), WithIndent("\t"))
	require.NoError(t, err)
	require.Equal(t, "{\n\ta\n\t{\n\t\tb\n\t}\n}", text)
}

func TestConstructedTreesKeepGrouping(t *testing.T) {
	a, b, c := nm("a"), nm("b"), nm("c")
	tests := []struct {
		name string
		node ast.Node
		want string
	}{
		{"lower precedence on the left", call("*", call("+", a, b), c), "`+`(a, b) * c"},
		{"lower precedence on the right", call("*", a, call("+", b, c)), "a * `+`(b, c)"},
		{"left assoc on the right", call("-", a, call("-", b, c)), "a - `-`(b, c)"},
		{"right assoc on the left", call("^", call("^", a, b), c), "`^`(a, b)^c"},
		{"unary operand", call("-", call("+", a, b)), "-`+`(a, b)"},
		{"not absorbs comparison", call("==", call("!", a), b), "`!`(a) == b"},
		{"tail absorbs product", call("+", call("*", a, call("!", b)), c), "`*`(a, !b) + c"},
		{"if on the left", call("+", call("if", a, b), c), "`if`(a, b) + c"},
		{"function on the left", call("+", mustFunction(t, "x", nm("x")), c), "`+`(function(x) x, c)"},
		{"dangling else", call("if", a, call("<-", b, call("if", c, a)), b), "if (a) `<-`(b, if (c) a) else b"},
		{"operator callee", call(call("+", a, b), c), "`+`(a, b)(c)"},
		{"untagged assignment", call("f", call("=", a, ast.Int(1))), "f(`=`(a, 1))"},
		{"tagged empty", call("f", ast.Named("x", ast.Empty), a), "f(x =, a)"},
		{"operator with empty", call("+", ast.Empty, a), "`+`(, a)"},
		{"quoted tag", call("f", ast.Named("if", a)), "f(`if` = a)"},
		{"string callee", call(ast.String("f"), a), `"f"(a)`},
		{"newline in name", nm("a\nb"), "`a\\\nb`"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireRoundTrip(t, tt.node, tt.want)
		})
	}
}

func mustFunction(t *testing.T, formal string, body ast.Node) *ast.Call {
	t.Helper()
	pl, err := ast.MakePairlist(ast.Formal{Name: formal})
	require.NoError(t, err)
	fn, err := ast.FunctionLiteral(pl, body)
	require.NoError(t, err)
	return fn
}

func TestNegativeConstants(t *testing.T) {
	text, err := Deparse(call("*", ast.Int(-3), nm("x")))
	require.NoError(t, err)
	require.Equal(t, "-3 * x", text)

	text, err = Deparse(call("^", ast.Int(-3), ast.Int(2)))
	require.NoError(t, err)
	require.Equal(t, "`^`(-3, 2)", text)

	text, err = Deparse(ast.Float(-1.5))
	require.NoError(t, err)
	require.Equal(t, "-1.5", text)
}

func TestUnrenderable(t *testing.T) {
	pl, err := ast.MakePairlist(ast.Formal{Name: "x"})
	require.NoError(t, err)
	tests := []struct {
		name string
		node ast.Node
	}{
		{"embedded value", call("f", ast.Embed([]int{1, 2}))},
		{"pairlist outside a function", call("f", pl)},
		{"bare pairlist", pl},
		{"infinity", ast.Float(math.Inf(1))},
		{"nan", call("+", ast.Float(math.NaN()), ast.Int(1))},
		{"empty name", ast.Empty},
		{"only argument empty", call("f", ast.Empty)},
		{"negative constant callee", call(ast.Int(-1), nm("x"))},
		{"function literal callee", call(mustFunction(t, "x", nm("x")), ast.Int(2))},
		{"nil", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := Deparse(tt.node)
			require.Error(t, err)
			require.ErrorIs(t, err, errors.ErrUnrenderable)
			require.Equal(t, "", text)
		})
	}
}

func TestPartial(t *testing.T) {
	n := call("f", nm("a"), ast.Named("b", ast.Int(1)), ast.Embed(struct{}{}), nm("c"))
	text, err := Partial(n)
	require.ErrorIs(t, err, errors.ErrUnrenderable)
	require.Equal(t, "f(a, b = 1, ", text)

	text, err = Partial(call("+", nm("a"), nm("b")))
	require.NoError(t, err)
	require.Equal(t, "a + b", text)
}

func TestStatements(t *testing.T) {
	nodes, err := parser.Parse(context.Background(), "a <- 1; if (a) b\nf(a)")
	require.NoError(t, err)
	text, err := Statements(nodes)
	require.NoError(t, err)
	require.Equal(t, "a <- 1\nif (a) b\nf(a)\n", text)

	back, err := parser.Parse(context.Background(), text)
	require.NoError(t, err)
	require.Len(t, back, len(nodes))
	for i := range nodes {
		require.True(t, ast.Equal(nodes[i], back[i]))
	}
}

func TestSubstitutedTreeRoundTrips(t *testing.T) {
	template := parseOne(t, "f(x, y = x + 1)")
	out := ast.Substitute(template, map[string]ast.Node{"x": parseOne(t, "a * b")})
	requireRoundTrip(t, out, "f(a * b, y = a * b + 1)")
}

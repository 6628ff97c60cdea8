package ast

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderLeaves(t *testing.T) {
	tests := []struct {
		node Node
		want string
	}{
		{Int(42), "42"},
		{Int(-3), "-3"},
		{Float(2.5), "2.5"},
		{Float(3), "3.0"},
		{Float(math.Inf(1)), "Inf"},
		{String("a\"b\n"), `"a\"b\n"`},
		{Bool(true), "true"},
		{Null(), "null"},
		{MakeName("x"), "`x`"},
		{MakeName("my var"), "`my var`"},
		{Empty, "<empty>"},
		{Embed(struct{}{}), "<embedded struct {}>"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, Render(tt.node))
	}
}

func TestRenderFlatCall(t *testing.T) {
	c := mustCall(t, MakeName("+"), Positional(MakeName("x")), Positional(Int(1)))
	require.Equal(t, "(`+`, `x`, 1)", Render(c))
	require.Equal(t, "(`f`)", Render(mustCall(t, MakeName("f"))))
}

func TestRenderNestedCall(t *testing.T) {
	expected := strings.Join([]string{
		"(`f`,",
		"  (`+`, `x`, 1),",
		"  n = (`g`, `y`))",
	}, "\n")
	require.Equal(t, expected, Render(sample(t)))
}

func TestRenderDeepNesting(t *testing.T) {
	inner := mustCall(t, MakeName("h"), Positional(mustCall(t, MakeName("k"))))
	outer := mustCall(t, MakeName("f"), Positional(inner))
	expected := strings.Join([]string{
		"(`f`,",
		"  (`h`,",
		"    (`k`)))",
	}, "\n")
	require.Equal(t, expected, Render(outer))
	require.Equal(t, strings.ReplaceAll(expected, "  ", "\t"), Render(outer, WithIndent("\t")))
}

func TestRenderFunction(t *testing.T) {
	pl, err := MakePairlist(Formal{Name: "x"}, Formal{Name: "y", Default: Int(2)})
	require.NoError(t, err)
	fn, err := FunctionLiteral(pl, MakeName("x"))
	require.NoError(t, err)
	expected := strings.Join([]string{
		"(`function`,",
		"  [x=<empty>, y=2],",
		"  `x`)",
	}, "\n")
	require.Equal(t, expected, Render(fn))
}

func TestRenderColor(t *testing.T) {
	out := Render(MakeName("x"), WithColor(true))
	require.Contains(t, out, "\x1b[")
	require.Contains(t, out, "`x`")
	require.Equal(t, "`x`", Render(MakeName("x"), WithColor(false)))
}

func TestRenderLeavesTreeUnchanged(t *testing.T) {
	pl, err := MakePairlist(Formal{Name: "x"}, Formal{Name: "y", Default: Int(2)})
	require.NoError(t, err)
	body := mustCall(t, MakeName("+"), Positional(MakeName("x")), Positional(sample(t)))
	fn, err := FunctionLiteral(pl, body)
	require.NoError(t, err)
	before := Clone(fn)

	first := Render(fn)
	second := Render(fn)
	require.Equal(t, first, second)
	require.Equal(t, first, Render(before))
	require.True(t, Equal(before, fn))
	require.Equal(t, Render(fn, WithColor(true)), Render(fn, WithColor(true)))
	require.True(t, Equal(before, fn))
}

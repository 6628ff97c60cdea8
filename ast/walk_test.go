package ast

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// sample builds: f(x + 1, n = g(y))
func sample(t *testing.T) *Call {
	t.Helper()
	sum := mustCall(t, MakeName("+"), Positional(MakeName("x")), Positional(Int(1)))
	inner := mustCall(t, MakeName("g"), Positional(MakeName("y")))
	return mustCall(t, MakeName("f"), Positional(sum), Named("n", inner))
}

func label(n Node) string {
	switch node := n.(type) {
	case *Call:
		return "Call"
	case *Name:
		return "Name:" + node.ID()
	case *Constant:
		return "Constant:" + node.Literal()
	case *Pairlist:
		return "Pairlist"
	}
	return "?"
}

func TestWalk(t *testing.T) {
	var visited []string
	Inspect(sample(t), func(n Node) bool {
		visited = append(visited, label(n))
		return true
	})
	expected := []string{
		"Call", "Name:f",
		"Call", "Name:+", "Name:x", "Constant:1",
		"Call", "Name:g", "Name:y",
	}
	require.Equal(t, expected, visited)
}

func TestWalkSkipChildren(t *testing.T) {
	var visited []string
	Inspect(sample(t), func(n Node) bool {
		visited = append(visited, label(n))
		// Do not descend into nested calls
		_, isCall := n.(*Call)
		return !isCall || len(visited) == 1
	})
	require.Equal(t, []string{"Call", "Name:f", "Call", "Call"}, visited)
}

func TestWalkPairlistDefaults(t *testing.T) {
	pl, err := MakePairlist(Formal{Name: "x"}, Formal{Name: "y", Default: Int(2)})
	require.NoError(t, err)
	fn, err := FunctionLiteral(pl, MakeName("x"))
	require.NoError(t, err)

	var visited []string
	Inspect(fn, func(n Node) bool {
		visited = append(visited, label(n))
		return true
	})
	expected := []string{"Call", "Name:function", "Pairlist", "Name:", "Constant:2", "Name:x"}
	require.Equal(t, expected, visited)
}

func TestPreorderStopsEarly(t *testing.T) {
	var visited []string
	for n := range Preorder(sample(t)) {
		visited = append(visited, label(n))
		if len(visited) == 4 {
			break
		}
	}
	require.Equal(t, []string{"Call", "Name:f", "Call", "Name:+"}, visited)
}

func TestNames(t *testing.T) {
	pl, err := MakePairlist(Formal{Name: "a", Default: MakeName("b")})
	require.NoError(t, err)
	fn, err := FunctionLiteral(pl, mustCall(t, MakeName("+"), Positional(MakeName("a")), Positional(MakeName("b"))))
	require.NoError(t, err)
	require.Equal(t, []string{"function", "b", "+", "a"}, Names(fn))
	require.Equal(t, []string{"f", "+", "x", "g", "y"}, Names(sample(t)))
}

func TestSubstitute(t *testing.T) {
	orig := sample(t)
	before := orig.String()

	got := Substitute(orig, map[string]Node{
		"x": Int(10),
		"g": MakeName("h"),
	})
	require.Equal(t, before, orig.String(), "input must not change")

	want := mustCall(t, MakeName("f"),
		Positional(mustCall(t, MakeName("+"), Positional(Int(10)), Positional(Int(1)))),
		Named("n", mustCall(t, MakeName("h"), Positional(MakeName("y")))))
	require.True(t, Equal(want, got), got.String())
}

func TestSubstituteSharedBinding(t *testing.T) {
	bound := mustCall(t, MakeName("g"), Positional(Int(1)))
	tree := mustCall(t, MakeName("c"), Positional(MakeName("v")), Positional(MakeName("v")))
	got := Substitute(tree, map[string]Node{"v": bound}).(*Call)
	require.True(t, Equal(got.Arg(0).Value, got.Arg(1).Value))
	require.NotSame(t, got.Arg(0).Value, got.Arg(1).Value)
	require.NotSame(t, Node(bound), got.Arg(0).Value)
}

func TestSubstituteInvalidCallee(t *testing.T) {
	tree := mustCall(t, MakeName("f"), Positional(Int(1)))
	got := Substitute(tree, map[string]Node{"f": Empty}).(*Call)
	callee, ok := got.Callee().(*Constant)
	require.True(t, ok)
	require.True(t, callee.IsEmbedded())
}

func TestSubstituteKeepsFormalNames(t *testing.T) {
	pl, err := MakePairlist(Formal{Name: "x", Default: MakeName("x")})
	require.NoError(t, err)
	got := Substitute(pl, map[string]Node{"x": Int(5)}).(*Pairlist)
	require.Equal(t, []string{"x"}, got.Names())
	def, _ := got.Lookup("x")
	require.True(t, Int(5).Equal(def))
}

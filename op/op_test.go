package op

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookupBinary(t *testing.T) {
	tests := []struct {
		name string
		want BinaryOpType
	}{
		{"+", Add},
		{"-", Subtract},
		{"*", Multiply},
		{"/", Divide},
		{"%", Modulo},
		{"&&", And},
		{"||", Or},
		{"^", Power},
	}
	for _, tt := range tests {
		got, ok := LookupBinary(tt.name)
		require.True(t, ok, tt.name)
		require.Equal(t, tt.want, got)
		require.Equal(t, tt.name, got.String())
	}
	_, ok := LookupBinary("<-")
	require.False(t, ok)
	require.Equal(t, "", BinaryOpType(99).String())
}

func TestLookupCompare(t *testing.T) {
	for _, name := range []string{"<", "<=", "==", "!=", ">", ">="} {
		cop, ok := LookupCompare(name)
		require.True(t, ok, name)
		require.Equal(t, name, cop.String())
	}
	_, ok := LookupCompare("+")
	require.False(t, ok)
}

func TestLookupUnary(t *testing.T) {
	uop, ok := LookupUnary("!")
	require.True(t, ok)
	require.Equal(t, Not, uop)

	uop, ok = LookupUnary("-")
	require.True(t, ok)
	require.Equal(t, Negate, uop)

	_, ok = LookupUnary("*")
	require.False(t, ok)
}

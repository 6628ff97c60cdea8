package quasi

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/risor-io/quasi/ast"
	"github.com/risor-io/quasi/object"
	"github.com/risor-io/quasi/syntax"
)

func TestWithSyntaxExpressionOnly(t *testing.T) {
	ctx := context.Background()

	t.Run("allows expressions", func(t *testing.T) {
		result, err := Eval(ctx, "1 + 2", WithSyntax(syntax.ExpressionOnly))
		require.NoError(t, err)
		require.Equal(t, int64(3), result)
	})

	t.Run("allows variable access", func(t *testing.T) {
		result, err := Eval(ctx, "x * y",
			WithEnv(map[string]any{"x": int64(5), "y": int64(6)}),
			WithSyntax(syntax.ExpressionOnly))
		require.NoError(t, err)
		require.Equal(t, int64(30), result)
	})

	t.Run("allows host functions", func(t *testing.T) {
		double := func(ctx context.Context, args ...object.Arg) (object.Value, error) {
			return object.NewInt(args[0].Value.(*object.Int).Value() * 2), nil
		}
		result, err := Eval(ctx, "double(21)",
			WithBuiltin("double", double),
			WithSyntax(syntax.ExpressionOnly))
		require.NoError(t, err)
		require.Equal(t, int64(42), result)
	})

	for src, msg := range map[string]string{
		"x <- 1":             "assignment is not allowed",
		"function(x) x":      "function definitions are not allowed",
		"if (true) 1 else 2": "if expressions are not allowed",
		"while (true) break": "loops are not allowed",
		"quote(x)":           "quote is not allowed",
	} {
		t.Run("rejects "+src, func(t *testing.T) {
			_, err := Eval(ctx, src, WithSyntax(syntax.ExpressionOnly))
			require.ErrorContains(t, err, msg)
		})
	}
}

func TestWithSyntaxBasicScripting(t *testing.T) {
	ctx := context.Background()

	result, err := Eval(ctx, "x <- 5; if (x > 3) 10 else 0", WithSyntax(syntax.BasicScripting))
	require.NoError(t, err)
	require.Equal(t, int64(10), result)

	_, err = Eval(ctx, "f <- function() 1", WithSyntax(syntax.BasicScripting))
	require.ErrorContains(t, err, "function definitions are not allowed")
}

func TestValidationRunsBeforeEvaluation(t *testing.T) {
	var out bytes.Buffer
	_, err := Eval(context.Background(), `print("side effect"); x <- 1`,
		WithOutput(&out),
		WithSyntax(syntax.SyntaxConfig{DisallowAssignment: true}))
	var verrs *syntax.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	require.Empty(t, out.String())
}

func TestSessionValidation(t *testing.T) {
	ctx := context.Background()
	session, err := NewSession(WithSyntax(syntax.SyntaxConfig{DeniedCalls: []string{"print"}}))
	require.NoError(t, err)

	_, err = session.Eval(ctx, "a <- 1")
	require.NoError(t, err)
	_, err = session.Eval(ctx, "print(a)")
	require.ErrorContains(t, err, "calls to print are not allowed")

	v, ok := session.Get("a")
	require.True(t, ok)
	require.Equal(t, "1", v.Inspect())
}

func TestWithTransformer(t *testing.T) {
	ctx := context.Background()
	limit, err := Parse(ctx, "10 * 2")
	require.NoError(t, err)

	result, err := Eval(ctx, "limit + 1",
		WithTransformer(syntax.Substitute(map[string]ast.Node{"limit": limit[0]})))
	require.NoError(t, err)
	require.Equal(t, int64(21), result)
}

func TestTransformerRunsBeforeValidator(t *testing.T) {
	ctx := context.Background()
	unquote := syntax.TransformerFunc(func(nodes []ast.Node) ([]ast.Node, error) {
		out := make([]ast.Node, len(nodes))
		for i, n := range nodes {
			if c, ok := n.(*ast.Call); ok {
				if name, _ := c.CalleeName(); name == "quote" && c.NumArgs() == 1 {
					n = c.Arg(0).Value
				}
			}
			out[i] = n
		}
		return out, nil
	})

	result, err := Eval(ctx, "quote(1 + 1)",
		WithTransformer(unquote),
		WithSyntax(syntax.ExpressionOnly))
	require.NoError(t, err)
	require.Equal(t, int64(2), result)
}

func TestCustomValidator(t *testing.T) {
	noSecrets := syntax.ValidatorFunc(func(nodes []ast.Node) []syntax.ValidationError {
		var errs []syntax.ValidationError
		for _, root := range nodes {
			for n := range ast.Preorder(root) {
				if name, ok := n.(*ast.Name); ok && name.ID() == "secret" {
					errs = append(errs, syntax.ValidationError{
						Message:  "access to secret is not allowed",
						Node:     n,
						Position: n.Pos(),
					})
				}
			}
		}
		return errs
	})

	_, err := Load(context.Background(), "x + secret", WithValidator(noSecrets))
	require.ErrorContains(t, err, "access to secret is not allowed")

	// Parse returns the raw tree without validation.
	nodes, err := Parse(context.Background(), "x + secret", WithValidator(noSecrets))
	require.NoError(t, err)
	require.Len(t, nodes, 1)
}

func TestSessionEvalNode(t *testing.T) {
	ctx := context.Background()
	session, err := NewSession()
	require.NoError(t, err)
	_, err = session.Eval(ctx, "sq <- function(x) x * x")
	require.NoError(t, err)

	seven, err := ast.MakeConstant(int64(7))
	require.NoError(t, err)
	call, err := ast.MakeCall(ast.MakeName("sq"), ast.Positional(seven))
	require.NoError(t, err)
	v, err := session.EvalNode(ctx, call)
	require.NoError(t, err)
	require.Equal(t, "49", v.Inspect())
}

func TestSessionValidatesBuiltTrees(t *testing.T) {
	ctx := context.Background()
	session, err := NewSession(WithSyntax(syntax.SyntaxConfig{DeniedCalls: []string{"print"}}))
	require.NoError(t, err)

	call, err := ast.MakeCall(ast.MakeName("print"), ast.Positional(ast.MakeName("a")))
	require.NoError(t, err)
	_, err = session.EvalNode(ctx, call)
	require.ErrorContains(t, err, "calls to print are not allowed")

	// Load did not deny print, the session does.
	program, err := Load(ctx, "a <- 1\nprint(a)")
	require.NoError(t, err)
	_, err = session.Run(ctx, program)
	require.ErrorContains(t, err, "calls to print are not allowed")
	_, ok := session.Get("a")
	require.False(t, ok)
}

func TestSessionEvalNodeAppliesTransformers(t *testing.T) {
	ctx := context.Background()
	limit, err := ast.MakeConstant(int64(10))
	require.NoError(t, err)
	session, err := NewSession(
		WithTransformer(syntax.Substitute(map[string]ast.Node{"limit": limit})))
	require.NoError(t, err)

	v, err := session.EvalNode(ctx, ast.MakeName("limit"))
	require.NoError(t, err)
	require.Equal(t, "10", v.Inspect())
}

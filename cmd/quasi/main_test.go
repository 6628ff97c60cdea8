package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/risor-io/quasi"
	"github.com/risor-io/quasi/ast"
	"github.com/risor-io/quasi/syntax"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	homedir.DisableCache = true
	t.Setenv("HOME", t.TempDir())

	a := newApp()
	a.terminal = func() bool { return false }
	cmd := a.rootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRootRunsCode(t *testing.T) {
	out, _, err := execute(t, "", "-c", "a <- 1; a <- a + 1; a")
	require.NoError(t, err)
	require.Equal(t, "2\n", out)
}

func TestRootReadsStdin(t *testing.T) {
	out, _, err := execute(t, "x <- 20\nx + 22\n", "--stdin")
	require.NoError(t, err)
	require.Equal(t, "42\n", out)
}

func TestRootWithoutInputPrintsHelp(t *testing.T) {
	out, _, err := execute(t, "")
	require.NoError(t, err)
	require.Contains(t, out, "Usage:")
	require.Contains(t, out, "quasi [file]")
}

func TestRunFile(t *testing.T) {
	path := writeFile(t, "double.q", "double <- function(x) x * 2\nprint(double(4))\ndouble(21)\n")
	out, _, err := execute(t, "", "run", path)
	require.NoError(t, err)
	require.Equal(t, "8\n42\n", out)
}

func TestRunEmptyProgramPrintsNothing(t *testing.T) {
	out, _, err := execute(t, "", "run", "-c", "")
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestRunJSON(t *testing.T) {
	out, _, err := execute(t, "", "run", "-o", "json", "-c", "quote(f(x))")
	require.NoError(t, err)
	var tree map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &tree))
	require.Equal(t, "call", tree["kind"])
	require.Equal(t, "f", tree["callee"].(map[string]any)["id"])
}

func TestRunTiming(t *testing.T) {
	_, errOut, err := execute(t, "", "run", "--timing", "-c", "1")
	require.NoError(t, err)
	require.Contains(t, errOut, "<code>: parse ")
}

func TestRunErrors(t *testing.T) {
	_, _, err := execute(t, "", "run", "-c", "undefined_thing")
	require.Error(t, err)
	require.Contains(t, err.Error(), "object undefined_thing not found")

	_, _, err = execute(t, "", "run", "-c", "1", "--stdin")
	require.ErrorIs(t, err, errMultipleInputs)

	_, _, err = execute(t, "", "run")
	require.ErrorIs(t, err, errNoInput)

	_, _, err = execute(t, "", "run", "-o", "xml", "-c", "1")
	require.EqualError(t, err, "unknown output format: xml")
}

func TestMaxDepthFlag(t *testing.T) {
	src := "f <- function(n) if (n == 0) 0 else f(n - 1); f(50)"
	out, _, err := execute(t, "", "run", "-c", src)
	require.NoError(t, err)
	require.Equal(t, "0\n", out)

	_, _, err = execute(t, "", "--max-depth", "10", "run", "-c", src)
	require.Error(t, err)
}

func TestEvalCmd(t *testing.T) {
	out, _, err := execute(t, "", "eval", "1", "+", "2", "*", "3")
	require.NoError(t, err)
	require.Equal(t, "7\n", out)
}

func TestEvalQuote(t *testing.T) {
	out, _, err := execute(t, "", "eval", "--quote", "f(x,y=1)")
	require.NoError(t, err)
	require.Equal(t, "f(x, y = 1)\n", out)
}

func TestAstText(t *testing.T) {
	src := "f(x, y = 1)"
	out, _, err := execute(t, "", "ast", "-c", src)
	require.NoError(t, err)
	nodes, err := quasi.Parse(context.Background(), src)
	require.NoError(t, err)
	require.Equal(t, ast.Render(nodes[0])+"\n", out)
}

func TestAstJSON(t *testing.T) {
	out, _, err := execute(t, "", "ast", "-o", "json", "--positions", "-c", "f(x, y = 1)")
	require.NoError(t, err)
	var nodes []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &nodes))
	require.Len(t, nodes, 1)
	call := nodes[0]
	require.Equal(t, "call", call["kind"])
	require.Equal(t, "f", call["callee"].(map[string]any)["id"])
	args := call["args"].([]any)
	require.Len(t, args, 2)
	named := args[1].(map[string]any)
	require.Equal(t, "y", named["tag"])
	require.Equal(t, map[string]any{
		"kind":  "constant",
		"type":  "int",
		"value": float64(1),
		"pos":   "1:10",
	}, named["value"])
}

func TestAstYAMLFunction(t *testing.T) {
	out, _, err := execute(t, "", "ast", "-o", "yaml", "-c", "function(a, b = 2) a")
	require.NoError(t, err)
	var nodes []map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &nodes))
	require.Len(t, nodes, 1)
	args := nodes[0]["args"].([]any)
	formals := args[0].(map[string]any)["value"].(map[string]any)
	require.Equal(t, "pairlist", formals["kind"])
	list := formals["formals"].([]any)
	require.Equal(t, map[string]any{"name": "a"}, list[0])
	require.Equal(t, "b", list[1].(map[string]any)["name"])
}

func TestAstCollectsErrors(t *testing.T) {
	good := writeFile(t, "good.q", "f(1)\n")
	bad := writeFile(t, "bad.q", "f(1,,\n")
	bad2 := writeFile(t, "bad2.q", "x <- )\n")
	out, _, err := execute(t, "", "ast", good, bad, bad2)
	require.Error(t, err)
	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	require.Len(t, merr.Errors, 2)
	require.Contains(t, out, "==> "+good+" <==")
}

func TestFmt(t *testing.T) {
	out, _, err := execute(t, "", "fmt", "-c", "x<-1+2*3;if(x>1){print(x)}")
	require.NoError(t, err)
	require.Equal(t, "x <- 1 + 2 * 3\nif (x > 1) {\n    print(x)\n}\n", out)
}

func TestFmtIndentFromEnv(t *testing.T) {
	t.Setenv("QUASI_INDENT", "2")
	out, _, err := execute(t, "", "fmt", "-c", "while(true){break}")
	require.NoError(t, err)
	require.Equal(t, "while (true) {\n  break\n}\n", out)
}

func TestFmtIndentFromConfig(t *testing.T) {
	config := writeFile(t, "quasi.yaml", "indent: 1\n")
	out, _, err := execute(t, "", "--config", config, "fmt", "-c", "{a}")
	require.NoError(t, err)
	require.Equal(t, "{\n a\n}\n", out)
}

func TestFmtWriteAndCheck(t *testing.T) {
	path := writeFile(t, "prog.q", "f<-function(x){x+1}\n")

	_, _, err := execute(t, "", "fmt", "--check", path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "not formatted: "+path)

	out, _, err := execute(t, "", "fmt", "--list", path)
	require.NoError(t, err)
	require.Equal(t, path+"\n", out)

	_, _, err = execute(t, "", "fmt", "--write", path)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "f <- function(x) {\n    x + 1\n}\n", string(data))

	_, _, err = execute(t, "", "fmt", "--check", path)
	require.NoError(t, err)
}

func TestDoc(t *testing.T) {
	out, _, err := execute(t, "", "doc", "-o", "json", "quote")
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Equal(t, "quote", doc["name"])

	out, _, err = execute(t, "", "doc", "--category", "errors")
	require.NoError(t, err)
	require.Contains(t, out, "E1001")
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "", "version", "-o", "json")
	require.NoError(t, err)
	var info map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	require.Equal(t, version, info["version"])
	require.Equal(t, quasi.Version, info["language"])
}

func TestInvalidLogLevel(t *testing.T) {
	_, _, err := execute(t, "", "--log-level", "loud", "run", "-c", "1")
	require.EqualError(t, err, `invalid log level "loud"`)
}

func TestDebugLogging(t *testing.T) {
	_, errOut, err := execute(t, "", "--log-level", "debug", "--no-color", "run", "-c", "1 + 1")
	require.NoError(t, err)
	require.Contains(t, errOut, "eval")
}

func TestPrintError(t *testing.T) {
	a := newApp()
	_, err := quasi.Parse(context.Background(), "f(1,,", quasi.WithFilename("bad.q"))
	require.Error(t, err)
	var buf bytes.Buffer
	a.printError(&buf, err)
	require.Contains(t, buf.String(), "bad.q:1:")
	require.Contains(t, buf.String(), "[E")

	buf.Reset()
	a.printError(&buf, errors.New("plain failure"))
	require.Equal(t, "error: plain failure\n", buf.String())
}

func TestSyntaxFlag(t *testing.T) {
	out, _, err := execute(t, "", "--syntax", "expression", "-c", "1 + 2")
	require.NoError(t, err)
	require.Equal(t, "3\n", out)

	_, _, err = execute(t, "", "--syntax", "expression", "-c", "x <- 1; function(y) y")
	var verrs *syntax.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	require.Len(t, verrs.Errors, 2)

	var buf bytes.Buffer
	newApp().printError(&buf, err)
	require.Contains(t, buf.String(), "assignment is not allowed")
	require.Contains(t, buf.String(), "function definitions are not allowed")

	t.Setenv("QUASI_SYNTAX", "basic")
	_, _, err = execute(t, "", "eval", "f <- function() 1")
	require.ErrorContains(t, err, "function definitions are not allowed")

	_, _, err = execute(t, "", "--syntax", "tiny", "-c", "1")
	require.EqualError(t, err, `invalid syntax preset "tiny" (want full, basic or expression)`)
}

func TestTestCommand(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "math_test.q"), []byte(`
double <- function(x) x * 2
test_double <- function() { log("doubling"); assert_eq(double(2), 4) }
test_broken <- function() assert_eq(double(2), 5, "double is wrong")
`), 0o644))

	out, _, err := execute(t, "", "test", dir, "--run", "double", "-v")
	require.NoError(t, err)
	require.Contains(t, out, "--- PASS: test_double")
	require.Contains(t, out, "    doubling\n")
	require.Contains(t, out, "PASS\n1 passed\n")

	out, _, err = execute(t, "", "test", dir)
	require.ErrorIs(t, err, errTestsFailed)
	require.Contains(t, out, "--- FAIL: test_broken")
	require.Contains(t, out, "double is wrong")
	require.Contains(t, out, "1 passed, 1 failed\n")

	_, errOut, err := execute(t, "", "test", t.TempDir())
	require.NoError(t, err)
	require.Equal(t, "no tests found\n", errOut)
}

package quasi

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDocsAll(t *testing.T) {
	j := Docs().JSON()
	var data map[string]any
	require.NoError(t, json.Unmarshal([]byte(j), &data))
	require.Equal(t, Version, data["version"])
	require.Contains(t, data, "builtins")
	require.Contains(t, data, "syntax")
	require.Contains(t, data, "errors")
}

func TestDocsCategories(t *testing.T) {
	for _, cat := range []string{"builtins", "syntax", "errors"} {
		t.Run(cat, func(t *testing.T) {
			var data map[string]any
			require.NoError(t, json.Unmarshal([]byte(Docs(DocsCategory(cat)).JSON()), &data))
			require.Contains(t, data, cat)
		})
	}
	require.Contains(t, Docs(DocsCategory("nope")).JSON(), "unknown category")
}

func TestDocsBuiltinsIncludeOperators(t *testing.T) {
	var names []string
	for _, f := range docsBuiltins() {
		names = append(names, f.Name)
	}
	require.Contains(t, names, "quote")
	require.Contains(t, names, "make_function")
	require.Contains(t, names, "+")
	require.Contains(t, names, "==")
}

func TestDocsTopic(t *testing.T) {
	f, ok := Docs(DocsTopic("quote")).Data().(docsFunc)
	require.True(t, ok)
	require.True(t, f.Keyword)

	e, ok := Docs(DocsTopic("e3001")).Data().(docsError)
	require.True(t, ok)
	require.Equal(t, "missing argument", e.Description)

	s, ok := Docs(DocsTopic("while")).Data().(docsSyntaxItem)
	require.True(t, ok)
	require.Equal(t, "while (c) body", s.Syntax)

	require.Contains(t, Docs(DocsTopic("zzz")).JSON(), "no documentation")
}

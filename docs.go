package quasi

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/risor-io/quasi/errors"
	"github.com/risor-io/quasi/eval"
)

// Version is the current quasi version.
const Version = "0.4.0"

// DocsOption configures documentation retrieval.
type DocsOption func(*docsOptions)

type docsOptions struct {
	category string
	topic    string
}

// DocsCategory filters documentation to a specific category.
// Valid categories: "builtins", "syntax", "errors"
func DocsCategory(cat string) DocsOption {
	return func(o *docsOptions) {
		o.category = cat
	}
}

// DocsTopic retrieves documentation for a single builtin, keyword or error
// code, such as "quote", "if" or "E3001".
func DocsTopic(topic string) DocsOption {
	return func(o *docsOptions) {
		o.topic = topic
	}
}

// Documentation provides structured access to the language reference.
type Documentation struct {
	data any
}

// JSON returns the documentation as a JSON string.
func (d *Documentation) JSON() string {
	b, _ := json.MarshalIndent(d.data, "", "  ")
	return string(b)
}

// Data returns the raw documentation data.
func (d *Documentation) Data() any {
	return d.data
}

type docsFunc struct {
	Name      string `json:"name"`
	Signature string `json:"signature"`
	Doc       string `json:"doc"`
	Keyword   bool   `json:"keyword,omitempty"`
}

type docsSyntaxItem struct {
	Syntax string `json:"syntax"`
	Tree   string `json:"tree"`
	Notes  string `json:"notes,omitempty"`
}

type docsError struct {
	Code        string `json:"code"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

type docsFull struct {
	Version  string           `json:"version"`
	Builtins []docsFunc       `json:"builtins"`
	Syntax   []docsSyntaxItem `json:"syntax"`
	Errors   []docsError      `json:"errors"`
}

var docsFuncs = []docsFunc{
	{Name: "quote", Signature: "quote(expr)", Doc: "Returns expr unevaluated. Constants stand for themselves.", Keyword: true},
	{Name: "missing", Signature: "missing(name)", Doc: "Reports whether the formal argument name was not supplied.", Keyword: true},
	{Name: "eval", Signature: "eval(expr)", Doc: "Evaluates quoted code in the calling scope."},
	{Name: "deparse", Signature: "deparse(expr)", Doc: "Returns the source text of quoted code."},
	{Name: "parse", Signature: "parse(text)", Doc: "Parses text into quoted code. Several statements yield a block."},
	{Name: "call", Signature: "call(name, ...)", Doc: "Builds an unevaluated call to the named function from evaluated arguments."},
	{Name: "as.call", Signature: "as.call(f, ...)", Doc: "Builds an unevaluated call whose callee is code, a name string or a function."},
	{Name: "body", Signature: "body(f)", Doc: "Returns the body of a closure."},
	{Name: "formals", Signature: "formals(f)", Doc: "Returns the formal argument pairlist of a closure."},
	{Name: "make_function", Signature: "make_function(formals, body)", Doc: "Builds a closure in the calling scope from a pairlist (or null) and a body."},
	{Name: "print", Signature: "print(...)", Doc: "Writes its arguments separated by spaces and returns the last one."},
	{Name: "identity", Signature: "identity(x)", Doc: "Returns x."},
}

var docsSyntax = []docsSyntaxItem{
	{Syntax: "42, 4.2, 1e3", Tree: "42, 4.2, 1000.0", Notes: "int and float constants"},
	{Syntax: `"text"`, Tree: `"text"`, Notes: "string constant with Go escapes"},
	{Syntax: "true, false, null", Tree: "true, false, null"},
	{Syntax: "x, `my var`", Tree: "`x`, `my var`", Notes: "names; backticks quote any identifier"},
	{Syntax: "f(a, b = 1, , c)", Tree: "(`f`, `a`, b = 1, <empty>, `c`)", Notes: "an empty slot is the empty name"},
	{Syntax: "a <- 1, a = 1", Tree: "(`<-`, `a`, 1)", Notes: "assignment, right associative"},
	{Syntax: "a + b * c", Tree: "(`+`, `a`, (`*`, `b`, `c`))", Notes: "operators are calls"},
	{Syntax: "-2^2", Tree: "(`-`, (`^`, 2, 2))", Notes: "^ binds tighter than unary minus"},
	{Syntax: "(x)", Tree: "(`(`, `x`)"},
	{Syntax: "{ a; b }", Tree: "(`{`, `a`, `b`)"},
	{Syntax: "if (c) a else b", Tree: "(`if`, `c`, `a`, `b`)"},
	{Syntax: "while (c) body", Tree: "(`while`, `c`, `body`)"},
	{Syntax: "function(x, y = 1) body", Tree: "(`function`, [x=<empty>, y=1], `body`)"},
	{Syntax: "break, next", Tree: "(`break`), (`next`)"},
}

func docsErrors() []docsError {
	var out []docsError
	for _, c := range errors.Codes() {
		out = append(out, docsError{
			Code:        c.String(),
			Category:    c.Category(),
			Description: c.Description(),
		})
	}
	return out
}

// docsBuiltins lists the documented functions followed by the operators.
func docsBuiltins() []docsFunc {
	out := append([]docsFunc(nil), docsFuncs...)
	documented := map[string]bool{}
	for _, f := range docsFuncs {
		documented[f.Name] = true
	}
	var operators []string
	for _, name := range eval.New().Builtins() {
		if !documented[name] {
			operators = append(operators, name)
		}
	}
	sort.Strings(operators)
	for _, name := range operators {
		out = append(out, docsFunc{
			Name:      name,
			Signature: "`" + name + "`(...)",
			Doc:       "Operator " + name + ".",
		})
	}
	return out
}

// Docs returns structured documentation about the language.
//
// Example:
//
//	docs := quasi.Docs(quasi.DocsCategory("builtins"))
//	fmt.Println(docs.JSON())
func Docs(opts ...DocsOption) *Documentation {
	o := &docsOptions{}
	for _, opt := range opts {
		opt(o)
	}
	if o.topic != "" {
		return &Documentation{data: buildTopicDocs(o.topic)}
	}
	switch o.category {
	case "builtins":
		return &Documentation{data: map[string]any{"builtins": docsBuiltins()}}
	case "syntax":
		return &Documentation{data: map[string]any{"syntax": docsSyntax}}
	case "errors":
		return &Documentation{data: map[string]any{"errors": docsErrors()}}
	case "":
		return &Documentation{data: docsFull{
			Version:  Version,
			Builtins: docsBuiltins(),
			Syntax:   docsSyntax,
			Errors:   docsErrors(),
		}}
	}
	return &Documentation{data: map[string]any{
		"error":      "unknown category: " + o.category,
		"categories": []string{"builtins", "syntax", "errors"},
	}}
}

func buildTopicDocs(topic string) any {
	for _, f := range docsBuiltins() {
		if f.Name == topic {
			return f
		}
	}
	for _, e := range docsErrors() {
		if strings.EqualFold(e.Code, topic) {
			return e
		}
	}
	for _, s := range docsSyntax {
		if strings.Contains(s.Tree, "`"+topic+"`") {
			return s
		}
	}
	return map[string]any{"error": "no documentation found for " + topic}
}

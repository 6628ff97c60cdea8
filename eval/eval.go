// Package eval evaluates trees.
//
// The Evaluator interface is the capability the rest of the module depends
// on. Interpreter is the default implementation: a small tree-walking
// interpreter that understands the keyword forms produced by the parser
// (assignment, grouping, blocks, if, while, function, break and next),
// the operators, closures with lazily evaluated arguments, and a handful of
// builtins for working with code as data.
package eval

import (
	"context"
	"io"
	"os"
	"sort"

	"github.com/rs/zerolog"

	"github.com/risor-io/quasi/ast"
	"github.com/risor-io/quasi/errors"
	"github.com/risor-io/quasi/object"
)

// Evaluator evaluates one tree in a scope.
type Evaluator interface {
	Eval(ctx context.Context, node ast.Node, scope *object.Scope) (object.Value, error)
}

var _ Evaluator = (*Interpreter)(nil) // Ensure that *Interpreter implements Evaluator

// Interpreter is the default Evaluator.
//
// An Interpreter tracks call depth while evaluating and so is not safe for
// concurrent use. Create one per goroutine.
type Interpreter struct {
	logger          zerolog.Logger
	maxDepth        int
	observer        Observer
	out             io.Writer
	builtins        map[string]*object.Builtin
	overrides       map[string]*object.Builtin
	withoutDefaults bool
	depth           int
}

// New returns an Interpreter configured with the given options.
func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		logger:    zerolog.Nop(),
		maxDepth:  DefaultMaxDepth,
		out:       os.Stdout,
		builtins:  map[string]*object.Builtin{},
		overrides: map[string]*object.Builtin{},
	}
	for _, opt := range opts {
		opt(i)
	}
	if !i.withoutDefaults {
		for name, fn := range i.defaultBuiltins() {
			i.builtins[name] = object.NewBuiltin(name, fn)
		}
	}
	for name, b := range i.overrides {
		i.builtins[name] = b
	}
	return i
}

// Builtins returns the names of the available builtins, sorted.
func (i *Interpreter) Builtins() []string {
	names := make([]string, 0, len(i.builtins))
	for name := range i.builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Eval evaluates node in scope. A nil scope is replaced with a new, empty
// one.
func (i *Interpreter) Eval(ctx context.Context, node ast.Node, scope *object.Scope) (object.Value, error) {
	if scope == nil {
		scope = object.NewScope(nil)
	}
	if node != nil && i.logger.GetLevel() <= zerolog.DebugLevel {
		event := i.logger.Debug().Stringer("kind", ast.KindOf(node))
		if loc, ok := location(node); ok {
			event = event.Stringer("at", loc)
		}
		event.Msg("eval")
	}
	v, err := i.eval(ctx, node, scope)
	if err != nil {
		err = topLevel(err)
		i.logger.Debug().Err(err).Msg("eval failed")
		return nil, err
	}
	return v, nil
}

func (i *Interpreter) eval(ctx context.Context, node ast.Node, scope *object.Scope) (object.Value, error) {
	switch n := node.(type) {
	case nil:
		return nil, object.TypeErrorf("cannot evaluate a missing node")
	case *ast.Constant:
		return object.FromConstant(n), nil
	case *ast.Name:
		return i.lookup(ctx, n, scope)
	case *ast.Pairlist:
		return object.NewLanguage(n), nil
	case *ast.Call:
		v, err := i.evalCall(ctx, n, scope)
		if err != nil {
			return nil, locate(err, n)
		}
		return v, nil
	}
	return nil, object.TypeErrorf("cannot evaluate %T", node)
}

func (i *Interpreter) lookup(ctx context.Context, n *ast.Name, scope *object.Scope) (object.Value, error) {
	if n.IsEmpty() {
		return nil, locate(object.MissingArgumentf("argument is missing, with no default"), n)
	}
	name := n.ID()
	v, ok := scope.Get(name)
	if !ok {
		if b, ok := i.builtins[name]; ok {
			return b, nil
		}
		err := errors.Newf(errors.ErrName, "object %s not found", ast.FormatName(name))
		if hint := errors.SuggestionHint(errors.Suggest(name, i.visibleNames(scope))); hint != "" {
			err = err.WithHint(hint)
		}
		return nil, locate(err, n)
	}
	if p, ok := v.(*object.Promise); ok {
		v, err := i.force(ctx, name, p)
		if err != nil {
			return nil, locate(err, n)
		}
		return v, nil
	}
	return v, nil
}

func (i *Interpreter) force(ctx context.Context, name string, p *object.Promise) (object.Value, error) {
	if p.Missing() && ast.IsEmptyName(p.Expr()) {
		return nil, object.MissingArgumentf("argument %s is missing, with no default", ast.FormatName(name))
	}
	return p.Force(ctx, i.eval)
}

func (i *Interpreter) visibleNames(scope *object.Scope) []string {
	var names []string
	for s := scope; s != nil; s = s.Parent() {
		names = append(names, s.Names()...)
	}
	for name := range i.builtins {
		names = append(names, name)
	}
	return names
}

// location returns the source location of a parsed node. Constructed nodes
// carry no position.
func location(n ast.Node) (errors.SourceLocation, bool) {
	if n == nil {
		return errors.SourceLocation{}, false
	}
	pos := n.Pos()
	if pos.File == "" && pos.Char == 0 && pos.Line == 0 && pos.Column == 0 {
		return errors.SourceLocation{}, false
	}
	return errors.SourceLocation{
		Filename: pos.File,
		Line:     pos.LineNumber(),
		Column:   pos.ColumnNumber(),
	}, true
}

// locate attaches the position of n to err unless err is already located.
func locate(err error, n ast.Node) error {
	e, ok := err.(*errors.Error)
	if !ok || !e.Location.IsZero() {
		return err
	}
	loc, ok := location(n)
	if !ok {
		return err
	}
	return e.WithLocation(loc)
}

// Package quasi treats code as data. Source text parses into trees of four
// node kinds (constants, names, calls and pairlists), trees deparse back into
// source text, and a small interpreter evaluates them.
//
// The functions in this package are conveniences over the parser, deparse
// and eval packages:
//
//	nodes, _ := quasi.Parse(ctx, "f(x, y = 1)")
//	text, _ := quasi.Deparse(nodes[0])
//	result, _ := quasi.Eval(ctx, "a <- 1; a + 1")
package quasi

import (
	"context"
	"io"
	"maps"

	"github.com/rs/zerolog"

	"github.com/risor-io/quasi/ast"
	"github.com/risor-io/quasi/deparse"
	"github.com/risor-io/quasi/eval"
	"github.com/risor-io/quasi/object"
	"github.com/risor-io/quasi/parser"
	"github.com/risor-io/quasi/syntax"
)

// Option configures parsing and evaluation.
type Option func(*options)

type options struct {
	env      map[string]any
	filename string
	observer eval.Observer
	logger   *zerolog.Logger
	output   io.Writer
	maxDepth int
	builtins map[string]object.BuiltinFunction

	validators   []syntax.Validator
	transformers []syntax.Transformer
}

func collectOptions(opts ...Option) *options {
	o := &options{env: map[string]any{}, builtins: map[string]object.BuiltinFunction{}}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

func (o *options) parserOpts() []parser.Option {
	var opts []parser.Option
	if o.filename != "" {
		opts = append(opts, parser.WithFilename(o.filename))
	}
	return opts
}

func (o *options) evalOpts() []eval.Option {
	var opts []eval.Option
	if o.observer != nil {
		opts = append(opts, eval.WithObserver(o.observer))
	}
	if o.logger != nil {
		opts = append(opts, eval.WithLogger(*o.logger))
	}
	if o.output != nil {
		opts = append(opts, eval.WithOutput(o.output))
	}
	if o.maxDepth > 0 {
		opts = append(opts, eval.WithMaxDepth(o.maxDepth))
	}
	for name, fn := range o.builtins {
		opts = append(opts, eval.WithBuiltin(name, fn))
	}
	return opts
}

// parse parses source, then applies the configured transformers and
// validators in that order.
func (o *options) parse(ctx context.Context, source string) ([]ast.Node, error) {
	nodes, err := parser.Parse(ctx, source, o.parserOpts()...)
	if err != nil {
		return nil, err
	}
	return o.prepare(nodes)
}

// prepare applies the configured transformers, then the validators, to
// trees that did not come from source.
func (o *options) prepare(nodes []ast.Node) ([]ast.Node, error) {
	nodes, err := syntax.Apply(nodes, o.transformers...)
	if err != nil {
		return nil, err
	}
	if err := syntax.Check(nodes, o.validators...); err != nil {
		return nil, err
	}
	return nodes, nil
}

// scope returns a new root scope holding the environment.
func (o *options) scope() (*object.Scope, error) {
	scope := object.NewScope(nil)
	for name, value := range o.env {
		v, err := object.FromGo(value)
		if err != nil {
			return nil, err
		}
		if err := scope.Set(name, v); err != nil {
			return nil, err
		}
	}
	return scope, nil
}

// WithEnv provides variables that are made available to evaluated code.
// This option is additive, so multiple WithEnv options may be supplied. If
// the same key is supplied multiple times, the last value wins. Values may
// be Go scalars, object.Value or ast.Node.
func WithEnv(env map[string]any) Option {
	return func(o *options) {
		maps.Copy(o.env, env)
	}
}

// WithFilename sets the filename for the source code being parsed.
// This is used for error messages and node positions.
func WithFilename(filename string) Option {
	return func(o *options) {
		o.filename = filename
	}
}

// WithObserver sets an observer for closure calls and returns.
func WithObserver(observer eval.Observer) Option {
	return func(o *options) {
		o.observer = observer
	}
}

// WithLogger sets the logger used to trace evaluation.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = &logger
	}
}

// WithOutput sets the writer that print writes to.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.output = w
	}
}

// WithMaxDepth limits how deeply closure calls may nest.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		o.maxDepth = depth
	}
}

// WithBuiltin adds a Go function that evaluated code can call by name. It
// replaces any default builtin of the same name.
func WithBuiltin(name string, fn object.BuiltinFunction) Option {
	return func(o *options) {
		o.builtins[name] = fn
	}
}

// WithSyntax rejects programs that use language features the config
// disallows. Violations are reported before anything is evaluated.
func WithSyntax(config syntax.SyntaxConfig) Option {
	return WithValidator(syntax.NewSyntaxValidator(config))
}

// WithValidator adds a validator that every loaded program must pass.
func WithValidator(v syntax.Validator) Option {
	return func(o *options) {
		o.validators = append(o.validators, v)
	}
}

// WithTransformer adds a transformer applied to every loaded program before
// validation. Transformers run in the order given.
func WithTransformer(t syntax.Transformer) Option {
	return func(o *options) {
		o.transformers = append(o.transformers, t)
	}
}

// Parse parses source text into its top-level statements. Transformers and
// validators are not applied.
func Parse(ctx context.Context, source string, opts ...Option) ([]ast.Node, error) {
	o := collectOptions(opts...)
	return parser.Parse(ctx, source, o.parserOpts()...)
}

// Deparse returns source text that parses back to node.
func Deparse(node ast.Node) (string, error) {
	return deparse.Deparse(node)
}

// Render returns the tree form of node, for inspection.
func Render(node ast.Node) string {
	return ast.Render(node)
}

// Run evaluates a loaded program and returns the result as a native Go
// value. Each call starts from a fresh scope, so a Program may be run
// concurrently.
func Run(ctx context.Context, program *Program, opts ...Option) (any, error) {
	o := collectOptions(opts...)
	scope, err := o.scope()
	if err != nil {
		return nil, err
	}
	result, err := eval.RunSource(ctx, program.nodes, scope, eval.New(o.evalOpts()...))
	if err != nil {
		return nil, err
	}
	return native(result), nil
}

// Eval is a convenience function that loads and runs source code.
// It is equivalent to Load() followed by Run().
func Eval(ctx context.Context, source string, opts ...Option) (any, error) {
	program, err := Load(ctx, source, opts...)
	if err != nil {
		return nil, err
	}
	return Run(ctx, program, opts...)
}

// Source parses source and evaluates its statements in scope, returning
// the value of the last one. Empty source yields object.NoValue.
func Source(ctx context.Context, source string, scope *object.Scope, opts ...Option) (object.Value, error) {
	o := collectOptions(opts...)
	nodes, err := o.parse(ctx, source)
	if err != nil {
		return nil, err
	}
	return eval.RunSource(ctx, nodes, scope, eval.New(o.evalOpts()...))
}

// native converts a result to a Go value. Values with no Go equivalent,
// such as closures, are returned as their string representation.
func native(v object.Value) any {
	switch v := v.(type) {
	case *object.NoValueType, *object.NullType:
		return nil
	case *object.Closure, *object.Builtin:
		return v.Inspect()
	}
	return v.Interface()
}

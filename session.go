package quasi

import (
	"context"

	"github.com/risor-io/quasi/ast"
	"github.com/risor-io/quasi/eval"
	"github.com/risor-io/quasi/object"
	"github.com/risor-io/quasi/syntax"
)

// Session provides stateful evaluation for a REPL. Unlike Eval and Run,
// which start from a fresh scope on each call, a Session keeps one scope
// across calls so variables and functions persist.
//
// A Session is not safe for concurrent use.
type Session struct {
	scope  *object.Scope
	interp *eval.Interpreter
	opts   *options
}

// NewSession creates a new Session with the given options.
func NewSession(opts ...Option) (*Session, error) {
	o := collectOptions(opts...)
	scope, err := o.scope()
	if err != nil {
		return nil, err
	}
	return &Session{
		scope:  scope,
		interp: eval.New(o.evalOpts()...),
		opts:   o,
	}, nil
}

// Eval evaluates source in the session's scope. Bindings made by earlier
// calls remain visible. A syntax error leaves the scope untouched.
func (s *Session) Eval(ctx context.Context, source string) (object.Value, error) {
	nodes, err := s.opts.parse(ctx, source)
	if err != nil {
		return nil, err
	}
	return eval.RunSource(ctx, nodes, s.scope, s.interp)
}

// EvalNode evaluates an already built tree in the session's scope. The
// session's transformers and validators apply to it as they do to source.
func (s *Session) EvalNode(ctx context.Context, node ast.Node) (object.Value, error) {
	nodes, err := s.opts.prepare([]ast.Node{node})
	if err != nil {
		return nil, err
	}
	return eval.RunSource(ctx, nodes, s.scope, s.interp)
}

// Run evaluates a loaded program in the session's scope. The program was
// transformed when it was loaded; the session's validators still check it.
func (s *Session) Run(ctx context.Context, program *Program) (object.Value, error) {
	if err := syntax.Check(program.nodes, s.opts.validators...); err != nil {
		return nil, err
	}
	return eval.RunSource(ctx, program.nodes, s.scope, s.interp)
}

// Scope returns the session's scope.
func (s *Session) Scope() *object.Scope {
	return s.scope
}

// Get returns the value bound to name, if any.
func (s *Session) Get(name string) (object.Value, bool) {
	return s.scope.Get(name)
}

// Set binds name to a Go value.
func (s *Session) Set(name string, value any) error {
	v, err := object.FromGo(value)
	if err != nil {
		return err
	}
	return s.scope.Set(name, v)
}

// Builtins returns the names of the builtins available in the session.
func (s *Session) Builtins() []string {
	return s.interp.Builtins()
}

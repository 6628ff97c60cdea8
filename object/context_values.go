package object

import (
	"context"
)

type contextKey string

// CallFunc is a type signature for a function that applies a callable value
// to evaluated arguments.
type CallFunc func(ctx context.Context, fn Callable, args []Arg) (Value, error)

////////////////////////////////////////////////////////////////////////////////

const (
	callFuncKey = contextKey("quasi:call")
	evalFuncKey = contextKey("quasi:eval")
	scopeKey    = contextKey("quasi:scope")
)

// WithCallFunc adds a CallFunc to the context, which can be used by
// builtins to call a function value at runtime.
func WithCallFunc(ctx context.Context, fn CallFunc) context.Context {
	return context.WithValue(ctx, callFuncKey, fn)
}

// GetCallFunc returns the CallFunc from the context, if it exists.
func GetCallFunc(ctx context.Context) (CallFunc, bool) {
	if fn, ok := ctx.Value(callFuncKey).(CallFunc); ok {
		if fn != nil {
			return fn, ok
		}
	}
	return nil, false
}

// WithEvalFunc adds an EvalFunc to the context, which can be used by
// builtins to evaluate code at runtime.
func WithEvalFunc(ctx context.Context, fn EvalFunc) context.Context {
	return context.WithValue(ctx, evalFuncKey, fn)
}

// GetEvalFunc returns the EvalFunc from the context, if it exists.
func GetEvalFunc(ctx context.Context) (EvalFunc, bool) {
	if fn, ok := ctx.Value(evalFuncKey).(EvalFunc); ok {
		if fn != nil {
			return fn, ok
		}
	}
	return nil, false
}

// WithScope records the scope a builtin is being called from.
func WithScope(ctx context.Context, scope *Scope) context.Context {
	return context.WithValue(ctx, scopeKey, scope)
}

// GetScope returns the calling scope from the context, if it exists.
func GetScope(ctx context.Context) (*Scope, bool) {
	if s, ok := ctx.Value(scopeKey).(*Scope); ok && s != nil {
		return s, true
	}
	return nil, false
}

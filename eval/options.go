package eval

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/risor-io/quasi/object"
)

// DefaultMaxDepth is the default limit on nested closure calls.
const DefaultMaxDepth = 1024

// Option is a configuration function for an Interpreter.
type Option func(*Interpreter)

// WithLogger sets the logger used to trace evaluation. Statements are logged
// at debug level and closure calls at trace level.
func WithLogger(logger zerolog.Logger) Option {
	return func(i *Interpreter) {
		i.logger = logger
	}
}

// WithMaxDepth limits how deeply closure calls may nest before evaluation
// fails with a stack overflow error.
func WithMaxDepth(depth int) Option {
	return func(i *Interpreter) {
		i.maxDepth = depth
	}
}

// WithObserver sets an observer for closure calls and returns.
func WithObserver(observer Observer) Option {
	return func(i *Interpreter) {
		i.observer = observer
	}
}

// WithOutput sets the writer used by the print builtin. The default is
// os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(i *Interpreter) {
		i.out = w
	}
}

// WithBuiltin adds or replaces a builtin function.
func WithBuiltin(name string, fn object.BuiltinFunction) Option {
	return func(i *Interpreter) {
		i.overrides[name] = object.NewBuiltin(name, fn)
	}
}

// WithoutDefaultBuiltins opts out of the default builtins, including the
// arithmetic and comparison operators. Keyword forms are unaffected.
func WithoutDefaultBuiltins() Option {
	return func(i *Interpreter) {
		i.withoutDefaults = true
	}
}

package eval

import (
	"github.com/risor-io/quasi/errors"
	"github.com/risor-io/quasi/object"
)

// Observer is an interface for observing closure calls. Implementations can
// be used for profiling, debugging or tracing without modifying the
// interpreter.
//
// Observer methods are called synchronously during evaluation. Returning
// false from either method halts evaluation with an error.
type Observer interface {
	// OnCall is called before a closure body is evaluated.
	OnCall(event CallEvent) bool

	// OnReturn is called after a closure body has been evaluated, whether
	// or not it succeeded.
	OnReturn(event ReturnEvent) bool
}

// CallEvent contains information about a closure call.
type CallEvent struct {
	// Function is the name the closure was bound to. Anonymous closures
	// have an empty name.
	Function string

	// Args is the number of argument slots at the call site.
	Args int

	// Depth is the call depth, counting this call.
	Depth int

	// Location is the position of the call in source, if known.
	Location errors.SourceLocation
}

// ReturnEvent contains information about a closure return.
type ReturnEvent struct {
	Function string
	Depth    int

	// Value is the result, or nil when Err is set.
	Value object.Value
	Err   error
}

// NoOpObserver provides default no-op implementations of all Observer
// methods. Embed it to override only the methods you need.
type NoOpObserver struct{}

func (NoOpObserver) OnCall(CallEvent) bool { return true }

func (NoOpObserver) OnReturn(ReturnEvent) bool { return true }

func errHalted(fn string) error {
	if fn == "" {
		fn = "<anonymous>"
	}
	return errors.Newf(errors.ErrOperation, "evaluation halted by observer in %s", fn)
}

package testing

import (
	"context"
	"fmt"
	"strings"

	"github.com/risor-io/quasi/object"
)

// TestContext records the outcome of one test function. Its builtins are
// bound into the test's session, so test code calls assert_eq(got, want)
// directly.
type TestContext struct {
	name       string
	filename   string
	failed     bool
	skipped    bool
	skipReason string
	logs       []string
	failures   []AssertionError
}

// NewTestContext creates a new TestContext for a test function.
func NewTestContext(name, filename string) *TestContext {
	return &TestContext{name: name, filename: filename}
}

// Builtins returns the assertion and control functions available to test
// code.
func (t *TestContext) Builtins() map[string]object.BuiltinFunction {
	return map[string]object.BuiltinFunction{
		"assert":       t.assert,
		"assert_eq":    t.assertEq,
		"assert_ne":    t.assertNe,
		"assert_null":  t.assertNull,
		"assert_error": t.assertError,
		"skip":         t.skip,
		"fail":         t.fail,
		"log":          t.log,
		"current_test": t.currentTest,
	}
}

// Name returns the test name.
func (t *TestContext) Name() string {
	return t.name
}

// Failed returns true if the test has failed.
func (t *TestContext) Failed() bool {
	return t.failed
}

// Skipped returns true if the test was skipped.
func (t *TestContext) Skipped() bool {
	return t.skipped
}

// SkipReason returns the reason for skipping.
func (t *TestContext) SkipReason() string {
	return t.skipReason
}

// Logs returns all logged messages.
func (t *TestContext) Logs() []string {
	return t.logs
}

// Failures returns all assertion failures.
func (t *TestContext) Failures() []AssertionError {
	return t.failures
}

// assert(cond, msg?)
func (t *TestContext) assert(_ context.Context, args ...object.Arg) (object.Value, error) {
	values, err := between("assert", args, 1, 2)
	if err != nil {
		return nil, err
	}
	if !values[0].IsTruthy() {
		t.addFailure(message(values, 1, "assertion failed"), values[0], nil)
	}
	return object.Null, nil
}

// assert_eq(got, want, msg?)
func (t *TestContext) assertEq(_ context.Context, args ...object.Arg) (object.Value, error) {
	values, err := between("assert_eq", args, 2, 3)
	if err != nil {
		return nil, err
	}
	if got, want := values[0], values[1]; !got.Equals(want) {
		t.addFailure(message(values, 2, "values are not equal"), got, want)
	}
	return object.Null, nil
}

// assert_ne(got, want, msg?)
func (t *TestContext) assertNe(_ context.Context, args ...object.Arg) (object.Value, error) {
	values, err := between("assert_ne", args, 2, 3)
	if err != nil {
		return nil, err
	}
	if got, want := values[0], values[1]; got.Equals(want) {
		t.addFailure(message(values, 2, "values should not be equal"), got, want)
	}
	return object.Null, nil
}

// assert_null(val, msg?)
func (t *TestContext) assertNull(_ context.Context, args ...object.Arg) (object.Value, error) {
	values, err := between("assert_null", args, 1, 2)
	if err != nil {
		return nil, err
	}
	if values[0] != object.Null {
		t.addFailure(message(values, 1, "expected null"), values[0], object.Null)
	}
	return object.Null, nil
}

// assert_error(quote(expr), msg?) evaluates expr in the caller's scope and
// fails unless it raises an error. The error message is returned so tests
// can check it.
func (t *TestContext) assertError(ctx context.Context, args ...object.Arg) (object.Value, error) {
	values, err := between("assert_error", args, 1, 2)
	if err != nil {
		return nil, err
	}
	lang, ok := values[0].(*object.Language)
	if !ok {
		return nil, object.TypeErrorf("assert_error() expected language, got %s", values[0].Type())
	}
	eval, ok := object.GetEvalFunc(ctx)
	if !ok {
		return nil, fmt.Errorf("assert_error: no evaluator in context")
	}
	scope, _ := object.GetScope(ctx)
	result, evalErr := eval(ctx, lang.Node(), scope)
	if evalErr == nil {
		t.addFailure(message(values, 1, "expected error"), result, nil)
		return object.Null, nil
	}
	return object.NewString(evalErr.Error()), nil
}

// skip(reason?)
func (t *TestContext) skip(_ context.Context, args ...object.Arg) (object.Value, error) {
	values, err := between("skip", args, 0, 1)
	if err != nil {
		return nil, err
	}
	t.skipped = true
	t.skipReason = message(values, 0, "")
	return object.Null, nil
}

// fail(msg?)
func (t *TestContext) fail(_ context.Context, args ...object.Arg) (object.Value, error) {
	values, err := between("fail", args, 0, 1)
	if err != nil {
		return nil, err
	}
	t.addFailure(message(values, 0, "test failed"), nil, nil)
	return object.Null, nil
}

// log(args...)
func (t *TestContext) log(_ context.Context, args ...object.Arg) (object.Value, error) {
	values, err := object.Positional("log", args)
	if err != nil {
		return nil, err
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = text(v)
	}
	t.logs = append(t.logs, strings.Join(parts, " "))
	return object.Null, nil
}

func (t *TestContext) currentTest(_ context.Context, args ...object.Arg) (object.Value, error) {
	if _, err := between("current_test", args, 0, 0); err != nil {
		return nil, err
	}
	return object.NewString(t.name), nil
}

func (t *TestContext) addFailure(msg string, got, want object.Value) {
	t.failed = true
	t.failures = append(t.failures, AssertionError{
		Message: msg,
		File:    t.filename,
		Got:     got,
		Want:    want,
	})
}

func between(fn string, args []object.Arg, lo, hi int) ([]object.Value, error) {
	values, err := object.Positional(fn, args)
	if err != nil {
		return nil, err
	}
	if len(values) < lo || len(values) > hi {
		if lo == hi {
			return nil, object.NewArgsError(fn, lo, len(values))
		}
		return nil, object.NewArgsRangeError(fn, lo, hi, len(values))
	}
	return values, nil
}

// message returns the optional message argument at index i, or def.
func message(values []object.Value, i int, def string) string {
	if i < len(values) {
		return text(values[i])
	}
	return def
}

func text(v object.Value) string {
	if s, ok := v.(*object.String); ok {
		return s.Value()
	}
	return v.Inspect()
}

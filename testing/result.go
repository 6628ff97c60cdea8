// Package testing runs tests written in quasi. A test file ends in _test.q
// and binds test functions to names starting with test_. Each test runs in
// a fresh session with the assertion builtins in scope.
package testing

import (
	"time"

	"github.com/risor-io/quasi/object"
)

// Status represents the outcome of a test.
type Status int

const (
	StatusPassed Status = iota
	StatusFailed
	StatusSkipped
	StatusError
)

// String returns the string representation of a Status.
func (s Status) String() string {
	switch s {
	case StatusPassed:
		return "PASS"
	case StatusFailed:
		return "FAIL"
	case StatusSkipped:
		return "SKIP"
	case StatusError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// AssertionError represents a failed assertion in a test.
type AssertionError struct {
	Message string       // Description of the failure
	File    string       // Source filename
	Got     object.Value // Actual value (may be nil)
	Want    object.Value // Expected value (may be nil)
}

// TestResult holds the outcome of a single test function.
type TestResult struct {
	Name       string           // Test function name (e.g., "test_addition")
	Status     Status           // Pass, fail, skip, or error
	Duration   time.Duration    // How long the test took
	Failures   []AssertionError // Assertion failures
	Logs       []string         // Output from log()
	SkipReason string           // Why the test was skipped
	Error      error            // Error if Status == StatusError
}

// FileResult holds the results of all tests in a single file.
type FileResult struct {
	Filename string        // Path to the test file
	Tests    []*TestResult // Results for each test function
	LoadErr  error         // Error if the file failed to load
}

func (f *FileResult) count(s Status) int {
	n := 0
	for _, t := range f.Tests {
		if t.Status == s {
			n++
		}
	}
	return n
}

// Passed returns the number of passed tests in this file.
func (f *FileResult) Passed() int { return f.count(StatusPassed) }

// Failed returns the number of failed tests in this file.
func (f *FileResult) Failed() int { return f.count(StatusFailed) }

// Skipped returns the number of skipped tests in this file.
func (f *FileResult) Skipped() int { return f.count(StatusSkipped) }

// Errors returns the number of errored tests in this file. A file that
// failed to load counts as one error.
func (f *FileResult) Errors() int {
	n := f.count(StatusError)
	if f.LoadErr != nil {
		n++
	}
	return n
}

// Summary aggregates results across all test files.
type Summary struct {
	Files    []*FileResult // Results for each test file
	Passed   int           // Total passed tests
	Failed   int           // Total failed tests
	Skipped  int           // Total skipped tests
	Errors   int           // Total errored tests
	Duration time.Duration // Total time for all tests
}

// TotalTests returns the total number of tests run.
func (s *Summary) TotalTests() int {
	return s.Passed + s.Failed + s.Skipped + s.Errors
}

// Success returns true if all tests passed (no failures or errors).
func (s *Summary) Success() bool {
	return s.Failed == 0 && s.Errors == 0
}

// ComputeTotals recalculates the aggregate counts from all file results.
func (s *Summary) ComputeTotals() {
	s.Passed, s.Failed, s.Skipped, s.Errors = 0, 0, 0, 0
	for _, f := range s.Files {
		s.Passed += f.Passed()
		s.Failed += f.Failed()
		s.Skipped += f.Skipped()
		s.Errors += f.Errors()
	}
}

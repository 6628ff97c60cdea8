package testing

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/risor-io/quasi"
	"github.com/risor-io/quasi/ast"
	"github.com/risor-io/quasi/object"
)

// Config holds configuration for running tests.
type Config struct {
	// Patterns specifies files or directories to search for tests.
	// Default is current directory.
	Patterns []string

	// RunPattern filters tests to run by name regex.
	RunPattern string

	// Options are applied to every test session, after the assertion
	// builtins.
	Options []quasi.Option
}

// DiscoverTestFiles finds all *_test.q files matching the given patterns.
// If no patterns are provided, searches the current directory. A pattern
// ending in "..." searches recursively.
func DiscoverTestFiles(patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	var files []string
	seen := make(map[string]bool)
	add := func(path string) {
		if isTestFile(path) && !seen[path] {
			files = append(files, path)
			seen[path] = true
		}
	}

	for _, pattern := range patterns {
		if strings.Contains(pattern, "*") {
			matches, err := filepath.Glob(pattern)
			if err != nil {
				return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
			}
			for _, m := range matches {
				add(m)
			}
			continue
		}

		recursive := false
		searchDir := pattern
		if strings.HasSuffix(pattern, "...") {
			recursive = true
			searchDir = strings.TrimSuffix(strings.TrimSuffix(pattern, "..."), "/")
			if searchDir == "" {
				searchDir = "."
			}
		}

		info, err := os.Stat(searchDir)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("path not found: %s", searchDir)
			}
			return nil, err
		}

		switch {
		case !info.IsDir():
			add(pattern)
		case recursive:
			err := filepath.WalkDir(searchDir, func(path string, d os.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if !d.IsDir() {
					add(path)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
		default:
			entries, err := os.ReadDir(searchDir)
			if err != nil {
				return nil, err
			}
			for _, e := range entries {
				if !e.IsDir() {
					add(filepath.Join(searchDir, e.Name()))
				}
			}
		}
	}

	return files, nil
}

func isTestFile(path string) bool {
	return strings.HasSuffix(path, "_test.q")
}

// DiscoverTestFunctions returns the top-level names a program binds that
// start with test_.
func DiscoverTestFunctions(program *quasi.Program) []string {
	var tests []string
	for _, name := range program.GlobalNames() {
		if strings.HasPrefix(name, "test_") {
			tests = append(tests, name)
		}
	}
	return tests
}

// Run executes tests according to the given configuration.
func Run(ctx context.Context, cfg *Config) (*Summary, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	files, err := DiscoverTestFiles(cfg.Patterns)
	if err != nil {
		return nil, err
	}

	var runRe *regexp.Regexp
	if cfg.RunPattern != "" {
		runRe, err = regexp.Compile(cfg.RunPattern)
		if err != nil {
			return nil, fmt.Errorf("invalid run pattern: %w", err)
		}
	}

	summary := &Summary{}
	start := time.Now()
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		summary.Files = append(summary.Files, RunFile(ctx, file, runRe, cfg.Options...))
	}
	summary.Duration = time.Since(start)
	summary.ComputeTotals()
	return summary, nil
}

// RunFile executes the tests in a single file. A nil runRe runs every test.
func RunFile(ctx context.Context, filename string, runRe *regexp.Regexp, opts ...quasi.Option) *FileResult {
	result := &FileResult{Filename: filename}

	source, err := os.ReadFile(filename)
	if err != nil {
		result.LoadErr = err
		return result
	}
	loadOpts := append(opts[:len(opts):len(opts)], quasi.WithFilename(filename))
	program, err := quasi.Load(ctx, string(source), loadOpts...)
	if err != nil {
		result.LoadErr = err
		return result
	}

	for _, name := range DiscoverTestFunctions(program) {
		if runRe != nil && !runRe.MatchString(name) {
			continue
		}
		result.Tests = append(result.Tests, runSingleTest(ctx, program, name, opts))
	}
	return result
}

// runSingleTest runs the program in a fresh session, then calls the test
// function with no arguments.
func runSingleTest(ctx context.Context, program *quasi.Program, testName string, opts []quasi.Option) *TestResult {
	result := &TestResult{Name: testName}
	start := time.Now()
	defer func() { result.Duration = time.Since(start) }()

	tc := NewTestContext(testName, program.Filename())
	sessionOpts := make([]quasi.Option, 0, len(opts)+9)
	for name, fn := range tc.Builtins() {
		sessionOpts = append(sessionOpts, quasi.WithBuiltin(name, fn))
	}
	sessionOpts = append(sessionOpts, opts...)

	session, err := quasi.NewSession(sessionOpts...)
	if err != nil {
		result.Status, result.Error = StatusError, err
		return result
	}
	if _, err := session.Run(ctx, program); err != nil {
		result.Status, result.Error = StatusError, err
		return result
	}

	fn, ok := session.Get(testName)
	if !ok {
		result.Status, result.Error = StatusError, fmt.Errorf("test function %q not found", testName)
		return result
	}
	if _, ok := fn.(*object.Closure); !ok {
		result.Status = StatusError
		result.Error = fmt.Errorf("test function %q is not a function (got %s)", testName, fn.Type())
		return result
	}

	call, err := ast.MakeCall(ast.MakeName(testName))
	if err == nil {
		_, err = session.EvalNode(ctx, call)
	}

	result.Logs = tc.Logs()
	result.Failures = tc.Failures()
	switch {
	case err != nil:
		result.Status, result.Error = StatusError, err
	case tc.Skipped():
		result.Status, result.SkipReason = StatusSkipped, tc.SkipReason()
	case tc.Failed():
		result.Status = StatusFailed
	default:
		result.Status = StatusPassed
	}
	return result
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	qtesting "github.com/risor-io/quasi/testing"
)

func (a *app) testCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test [path ...]",
		Short: "Run test functions in *_test.q files",
		Long: `Run every function bound to a test_* name in *_test.q files.

Each test runs in a fresh session with assert, assert_eq, assert_ne,
assert_null, assert_error, skip, fail and log in scope. A path ending in
"..." is searched recursively.`,
		Example: `  quasi test
  quasi test ./lib/...
  quasi test --run 'parse' -v`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runPattern, _ := cmd.Flags().GetString("run")
			verbose, _ := cmd.Flags().GetBool("verbose")

			summary, err := qtesting.Run(cmd.Context(), &qtesting.Config{
				Patterns:   args,
				RunPattern: runPattern,
				Options:    a.options(cmd, ""),
			})
			if err != nil {
				return err
			}
			a.logger.Debug().
				Int("files", len(summary.Files)).
				Int("tests", summary.TotalTests()).
				Dur("duration", summary.Duration).
				Msg("tests finished")

			out := qtesting.NewOutput(qtesting.OutputConfig{
				Writer:   cmd.OutOrStdout(),
				Verbose:  verbose,
				UseColor: a.useColor(cmd.OutOrStdout()),
			})
			out.PrintResults(summary)
			if summary.TotalTests() == 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), "no tests found")
			}
			if !summary.Success() {
				return errTestsFailed
			}
			return nil
		},
	}
	cmd.Flags().String("run", "", "run only tests whose name matches this regular expression")
	cmd.Flags().BoolP("verbose", "v", false, "show log output for passing tests")
	return cmd
}

package main

import (
	"errors"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	errNoInput        = errors.New("no input provided")
	errMultipleInputs = errors.New("multiple input sources specified")

	// errTestsFailed is returned by the test command after the results are
	// printed. It sets the exit code without printing anything further.
	errTestsFailed = errors.New("tests failed")
)

// source is one unit of input: a file, the --code flag or stdin.
type source struct {
	name string
	text string
	path string // empty unless read from a file
}

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("code", "c", "", "source code to use instead of a file")
	cmd.Flags().Bool("stdin", false, "read source code from stdin")
}

func addOutputFlag(cmd *cobra.Command, usage string) {
	cmd.Flags().StringP("output", "o", "", usage)
}

func hasInputFlag(cmd *cobra.Command) bool {
	useStdin, _ := cmd.Flags().GetBool("stdin")
	return cmd.Flags().Changed("code") || useStdin
}

// readSources resolves command input from exactly one of --code, --stdin
// or file arguments. A file argument of "-" reads stdin.
func readSources(cmd *cobra.Command, args []string) ([]source, error) {
	code, _ := cmd.Flags().GetString("code")
	useStdin, _ := cmd.Flags().GetBool("stdin")

	count := len(args)
	if count > 1 {
		count = 1
	}
	if cmd.Flags().Changed("code") {
		count++
	}
	if useStdin {
		count++
	}
	switch {
	case count > 1:
		return nil, errMultipleInputs
	case count == 0:
		return nil, errNoInput
	}

	if cmd.Flags().Changed("code") {
		return []source{{name: "<code>", text: code}}, nil
	}
	if useStdin {
		return readStdin(cmd)
	}
	sources := make([]source, 0, len(args))
	for _, arg := range args {
		if arg == "-" {
			s, err := readStdin(cmd)
			if err != nil {
				return nil, err
			}
			sources = append(sources, s...)
			continue
		}
		data, err := os.ReadFile(arg)
		if err != nil {
			return nil, err
		}
		sources = append(sources, source{name: arg, text: string(data), path: arg})
	}
	return sources, nil
}

// readSource is readSources for commands that take a single program.
func readSource(cmd *cobra.Command, args []string) (source, error) {
	sources, err := readSources(cmd, args)
	if err != nil {
		return source{}, err
	}
	if len(sources) != 1 {
		return source{}, errMultipleInputs
	}
	return sources[0], nil
}

func readStdin(cmd *cobra.Command) ([]source, error) {
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, err
	}
	return []source{{name: "<stdin>", text: string(data)}}, nil
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func isTerminalIO() bool {
	return isTerminal(os.Stdin) && isTerminal(os.Stdout)
}

package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"atomicgo.dev/keyboard"
	"atomicgo.dev/keyboard/keys"
	"github.com/fatih/color"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"github.com/risor-io/quasi"
	"github.com/risor-io/quasi/ast"
	qerrors "github.com/risor-io/quasi/errors"
	"github.com/risor-io/quasi/object"
	"github.com/risor-io/quasi/parser"
)

const (
	prompt         = "> "
	continuePrompt = "+ "
	historyFile    = "~/.quasi_history"
)

const replHelp = `Enter expressions to evaluate them. Input continues on the next line
while brackets or a block are left open.

Commands:
  :ast <expr>    print the tree of an expression without evaluating it
  :type <expr>   evaluate an expression and print the type of its value
  :names         list the names bound in the session
  :builtins      list the builtin functions
  :reset         discard all bindings
  :help          show this message
  :quit          exit (also Ctrl+D)`

func (a *app) replCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.repl(cmd)
		},
	}
}

// replSession evaluates REPL input one line at a time.
type replSession struct {
	app     *app
	ctx     context.Context
	out     io.Writer
	opts    []quasi.Option
	session *quasi.Session
	pending string
	color   bool
}

func (a *app) newReplSession(cmd *cobra.Command, out io.Writer) (*replSession, error) {
	opts := append(a.options(cmd, ""), quasi.WithOutput(out))
	session, err := quasi.NewSession(opts...)
	if err != nil {
		return nil, err
	}
	return &replSession{
		app:     a,
		ctx:     cmd.Context(),
		out:     out,
		opts:    opts,
		session: session,
		color:   a.useColor(cmd.OutOrStdout()),
	}, nil
}

func (r *replSession) prompt() string {
	if r.pending != "" {
		return continuePrompt
	}
	return prompt
}

// submit handles one line of input and reports whether the REPL should exit.
func (r *replSession) submit(line string) bool {
	if r.pending == "" {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			return false
		}
		if strings.HasPrefix(trimmed, ":") {
			return r.command(trimmed)
		}
	}
	input := r.pending + line
	value, err := r.session.Eval(r.ctx, input)
	if err != nil && isIncompleteInput(err) {
		r.pending = input + "\n"
		return false
	}
	r.pending = ""
	r.show(value, err)
	return false
}

// flush evaluates buffered continuation lines as they stand.
func (r *replSession) flush() {
	if r.pending == "" {
		return
	}
	input := r.pending
	r.pending = ""
	r.show(r.session.Eval(r.ctx, input))
}

func (r *replSession) show(value object.Value, err error) {
	if err != nil {
		r.app.printError(r.out, err)
		return
	}
	if value != object.NoValue {
		fmt.Fprintln(r.out, value.Inspect())
	}
}

func (r *replSession) command(line string) bool {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch name {
	case ":quit", ":q", ":exit":
		return true
	case ":help", ":h":
		fmt.Fprintln(r.out, replHelp)
	case ":ast":
		nodes, err := quasi.Parse(r.ctx, arg)
		if err != nil {
			r.app.printError(r.out, err)
			return false
		}
		for _, n := range nodes {
			fmt.Fprintln(r.out, ast.Render(n, ast.WithColor(r.color)))
		}
	case ":type":
		value, err := r.session.Eval(r.ctx, arg)
		if err != nil {
			r.app.printError(r.out, err)
			return false
		}
		fmt.Fprintln(r.out, value.Type())
	case ":names":
		for _, n := range r.session.Scope().Names() {
			fmt.Fprintln(r.out, n)
		}
	case ":builtins":
		fmt.Fprintln(r.out, strings.Join(r.session.Builtins(), " "))
	case ":reset":
		session, err := quasi.NewSession(r.opts...)
		if err != nil {
			r.app.printError(r.out, err)
			return false
		}
		r.session = session
	default:
		r.app.printError(r.out, fmt.Errorf("unknown command %s (try :help)", name))
	}
	return false
}

// isIncompleteInput reports whether a parse failed only because the input
// ended inside an open bracket or block.
func isIncompleteInput(err error) bool {
	var syntaxErr *parser.SyntaxError
	if !errors.As(err, &syntaxErr) {
		return false
	}
	switch syntaxErr.Code() {
	case qerrors.E1004, qerrors.E1007:
		return true
	}
	return false
}

func (a *app) repl(cmd *cobra.Command) error {
	if !a.terminal() {
		r, err := a.newReplSession(cmd, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		return r.scan(cmd.InOrStdin())
	}
	return a.interactive(cmd)
}

// scan reads input line by line without prompts or line editing.
func (r *replSession) scan(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if r.submit(scanner.Text()) {
			return nil
		}
	}
	r.flush()
	return scanner.Err()
}

func (a *app) interactive(cmd *cobra.Command) error {
	out := &crlfWriter{w: cmd.OutOrStdout()}
	r, err := a.newReplSession(cmd, out)
	if err != nil {
		return err
	}
	history, path := loadHistory()
	ed := newLineEditor(history)

	banner := fmt.Sprintf("quasi %s. Type :help for help.", version)
	if r.color {
		banner = color.New(color.FgHiBlack).Sprint(banner)
	}
	fmt.Fprintln(out, banner)
	ed.redraw(out, r.prompt())

	return keyboard.Listen(func(key keys.Key) (bool, error) {
		switch ed.handle(key) {
		case editSubmit:
			line := ed.take()
			fmt.Fprint(out, "\r\n")
			appendToHistory(path, line)
			if r.submit(line) {
				return true, nil
			}
		case editCancel:
			if r.pending == "" {
				fmt.Fprint(out, "\r\n")
				return true, nil
			}
			r.pending = ""
			fmt.Fprint(out, "\r\n")
		case editEOF:
			fmt.Fprint(out, "\r\n")
			return true, nil
		case editClear:
			fmt.Fprint(out, "\x1b[H\x1b[2J")
		}
		if err := r.ctx.Err(); err != nil {
			return true, nil
		}
		ed.redraw(out, r.prompt())
		return false, nil
	})
}

// crlfWriter translates newlines for a terminal in raw mode.
type crlfWriter struct {
	w io.Writer
}

func (c *crlfWriter) Write(p []byte) (int, error) {
	if _, err := c.w.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))); err != nil {
		return 0, err
	}
	return len(p), nil
}

func loadHistory() ([]string, string) {
	path, err := homedir.Expand(historyFile)
	if err != nil {
		return nil, ""
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, path
	}
	var history []string
	for _, line := range strings.Split(string(data), "\n") {
		if line != "" {
			history = append(history, line)
		}
	}
	return history, path
}

func appendToHistory(path, line string) {
	if path == "" || strings.TrimSpace(line) == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return
	}
	defer f.Close()
	f.WriteString(line + "\n")
}

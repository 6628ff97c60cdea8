package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"
	"github.com/hokaccha/go-prettyjson"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/risor-io/quasi/ast"
	qerrors "github.com/risor-io/quasi/errors"
	"github.com/risor-io/quasi/object"
	"github.com/risor-io/quasi/syntax"
)

func newLogger(w io.Writer, level zerolog.Level, noColor bool) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    noColor,
		TimeFormat: time.Kitchen,
	}).Level(level).With().Timestamp().Logger()
}

// printError writes err in diagnostic form. Each error of a multierror is
// printed separately.
func (a *app) printError(w io.Writer, err error) {
	var merr *multierror.Error
	if errors.As(err, &merr) {
		for _, e := range merr.Errors {
			a.printError(w, e)
		}
		return
	}
	var verrs *syntax.ValidationErrors
	if errors.As(err, &verrs) {
		for i := range verrs.Errors {
			a.printError(w, &verrs.Errors[i])
		}
		return
	}
	useColor := a.useColor(w)
	var fe qerrors.FormattableError
	if errors.As(err, &fe) {
		fmt.Fprintln(w, qerrors.NewFormatter(useColor).Format(fe.ToFormatted()))
		return
	}
	prefix := "error:"
	if useColor {
		prefix = color.New(color.FgHiRed, color.Bold).Sprint(prefix)
	}
	fmt.Fprintln(w, prefix, err)
}

func (a *app) marshalJSON(cmd *cobra.Command, v any) ([]byte, error) {
	if !a.useColor(cmd.OutOrStdout()) {
		return json.MarshalIndent(v, "", "  ")
	}
	f := prettyjson.NewFormatter()
	f.Indent = 2
	return f.Marshal(v)
}

func (a *app) printJSON(cmd *cobra.Command, v any) error {
	data, err := a.marshalJSON(cmd, v)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

// printValue prints the result of a program. NoValue prints nothing.
func (a *app) printValue(cmd *cobra.Command, v object.Value) error {
	if v == nil || v == object.NoValue {
		return nil
	}
	format, _ := cmd.Flags().GetString("output")
	switch strings.ToLower(format) {
	case "", "text":
		fmt.Fprintln(cmd.OutOrStdout(), v.Inspect())
		return nil
	case "json":
		return a.printJSON(cmd, jsonValue(v))
	}
	return fmt.Errorf("unknown output format: %s", format)
}

// jsonValue converts a value into something encoding/json accepts.
// Language values become their tree encoding.
func jsonValue(v object.Value) any {
	switch v := v.(type) {
	case *object.Language:
		return nodeTree(v.Node(), false)
	case *object.Closure, *object.Builtin:
		return v.Inspect()
	case *object.Float:
		if _, err := json.Marshal(v.Value()); err != nil {
			return v.Inspect()
		}
		return v.Value()
	}
	if v == object.Null {
		return nil
	}
	return v.Interface()
}

// nodeTree is the structured form of a tree used by the json and yaml
// output formats.
func nodeTree(n ast.Node, positions bool) map[string]any {
	m := map[string]any{"kind": ast.KindOf(n).String()}
	if positions {
		if p := n.Pos(); p.IsValid() {
			m["pos"] = fmt.Sprintf("%d:%d", p.LineNumber(), p.ColumnNumber())
		}
	}
	switch n := n.(type) {
	case *ast.Constant:
		m["type"] = n.Type().String()
		switch n.Type() {
		case ast.FloatType, ast.EmbeddedType:
			m["value"] = n.Literal()
		default:
			m["value"] = n.Value()
		}
	case *ast.Name:
		m["id"] = n.ID()
		if n.IsEmpty() {
			m["empty"] = true
		}
	case *ast.Call:
		m["callee"] = nodeTree(n.Callee(), positions)
		args := make([]map[string]any, 0, n.NumArgs())
		for _, arg := range n.Args() {
			entry := map[string]any{"value": nodeTree(arg.Value, positions)}
			if arg.Tag != "" {
				entry["tag"] = arg.Tag
			}
			args = append(args, entry)
		}
		m["args"] = args
	case *ast.Pairlist:
		formals := make([]map[string]any, 0, n.Len())
		for _, f := range n.Formals() {
			entry := map[string]any{"name": f.Name}
			if f.HasDefault() {
				entry["default"] = nodeTree(f.Default, positions)
			}
			formals = append(formals, entry)
		}
		m["formals"] = formals
	}
	return m
}

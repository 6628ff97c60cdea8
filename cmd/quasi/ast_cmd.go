package main

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/risor-io/quasi"
	"github.com/risor-io/quasi/ast"
)

func (a *app) astCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ast [file...]",
		Short: "Print the expression tree of a program",
		Long: `Parse each input and print its tree.

The text format shows names in backticks, the empty name as <empty>, calls as
(callee, args...) and pairlists as [name=default, ...]. The json and yaml
formats give every node a "kind" of constant, name, call or pairlist.`,
		Example: `  quasi ast -c 'f(x, y = 1)'
  quasi ast -o yaml script.q
  quasi ast --positions -o json a.q b.q`,
		RunE: a.runAst,
	}
	addInputFlags(cmd)
	addOutputFlag(cmd, "output format: text, json or yaml")
	cmd.Flags().Bool("positions", false, "include line:column positions in json and yaml output")
	return cmd
}

type astFile struct {
	File  string           `json:"file" yaml:"file"`
	Nodes []map[string]any `json:"nodes" yaml:"nodes"`
}

func (a *app) runAst(cmd *cobra.Command, args []string) error {
	sources, err := readSources(cmd, args)
	if err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("output")
	format = strings.ToLower(format)
	positions, _ := cmd.Flags().GetBool("positions")
	switch format {
	case "", "text", "json", "yaml":
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}

	var errs *multierror.Error
	var files []astFile
	out := cmd.OutOrStdout()
	for _, src := range sources {
		nodes, err := quasi.Parse(cmd.Context(), src.text, quasi.WithFilename(src.path))
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		a.logger.Debug().Str("source", src.name).Int("nodes", len(nodes)).Msg("parsed")
		if format == "" || format == "text" {
			if len(sources) > 1 {
				fmt.Fprintf(out, "==> %s <==\n", src.name)
			}
			color := a.useColor(out)
			for _, n := range nodes {
				fmt.Fprintln(out, ast.Render(n, ast.WithColor(color)))
			}
			continue
		}
		file := astFile{File: src.name, Nodes: make([]map[string]any, 0, len(nodes))}
		for _, n := range nodes {
			file.Nodes = append(file.Nodes, nodeTree(n, positions))
		}
		files = append(files, file)
	}

	switch format {
	case "json":
		var data any = files
		if len(files) == 1 && len(sources) == 1 {
			data = files[0].Nodes
		}
		if files != nil {
			if err := a.printJSON(cmd, data); err != nil {
				return err
			}
		}
	case "yaml":
		if files != nil {
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			var data any = files
			if len(files) == 1 && len(sources) == 1 {
				data = files[0].Nodes
			}
			if err := enc.Encode(data); err != nil {
				return err
			}
			if err := enc.Close(); err != nil {
				return err
			}
		}
	}
	return errs.ErrorOrNil()
}

package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/risor-io/quasi"
)

func (a *app) docCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doc [topic]",
		Short: "Show the language reference",
		Long: `Show documentation for builtins, syntax forms and error codes.

A topic may be a builtin ("quote"), a keyword ("if") or an error code
("E3001"). Without a topic the whole reference, or one --category of it,
is printed.`,
		Example: `  quasi doc quote
  quasi doc --category errors
  quasi doc -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []quasi.DocsOption
			if len(args) == 1 {
				opts = append(opts, quasi.DocsTopic(args[0]))
			}
			if category, _ := cmd.Flags().GetString("category"); category != "" {
				opts = append(opts, quasi.DocsCategory(category))
			}
			docs := quasi.Docs(opts...)

			format, _ := cmd.Flags().GetString("output")
			switch strings.ToLower(format) {
			case "", "yaml", "text":
				return printYAML(cmd, docs.JSON())
			case "json":
				return a.printJSON(cmd, docs.Data())
			}
			return fmt.Errorf("unknown output format: %s", format)
		},
	}
	addOutputFlag(cmd, "output format: yaml or json")
	cmd.Flags().String("category", "", "limit output to builtins, syntax or errors")
	return cmd
}

// printYAML re-encodes a JSON document as YAML, keeping its field names.
func printYAML(cmd *cobra.Command, doc string) error {
	var data any
	if err := json.Unmarshal([]byte(doc), &data); err != nil {
		return err
	}
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return err
	}
	return enc.Close()
}

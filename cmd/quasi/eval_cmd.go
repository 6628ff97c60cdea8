package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/risor-io/quasi"
	"github.com/risor-io/quasi/ast"
)

func (a *app) evalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval <expression>...",
		Short: "Evaluate an expression",
		Long: `Evaluate the expression formed by joining the arguments with spaces and
print the result. With --quote the expression is parsed but not evaluated,
and its deparsed form is printed.`,
		Example: `  quasi eval '1 + 2 * 3'
  quasi eval --quote 'f(x,y=1)'
  quasi eval -o json 'quote(f(x))'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var src source
			if len(args) > 0 && !hasInputFlag(cmd) {
				src = source{name: "<eval>", text: strings.Join(args, " ")}
			} else {
				var err error
				if src, err = readSource(cmd, args); err != nil {
					return err
				}
			}
			ctx := cmd.Context()
			opts := a.options(cmd, src.path)

			if quoted, _ := cmd.Flags().GetBool("quote"); quoted {
				program, err := quasi.Load(ctx, src.text, opts...)
				if err != nil {
					return err
				}
				for _, n := range program.Nodes() {
					text, err := quasi.Deparse(n)
					if err != nil {
						fmt.Fprintln(cmd.OutOrStdout(), ast.Render(n))
						continue
					}
					fmt.Fprintln(cmd.OutOrStdout(), text)
				}
				return nil
			}

			session, err := quasi.NewSession(opts...)
			if err != nil {
				return err
			}
			result, err := session.Eval(ctx, src.text)
			if err != nil {
				return err
			}
			return a.printValue(cmd, result)
		},
	}
	addInputFlags(cmd)
	addOutputFlag(cmd, "result format: text or json")
	cmd.Flags().Bool("quote", false, "print the parsed expression instead of evaluating it")
	return cmd
}

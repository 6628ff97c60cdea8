package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/risor-io/quasi"
	"github.com/risor-io/quasi/deparse"
)

func (a *app) fmtCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt [file...]",
		Short: "Format programs in canonical form",
		Long: `Parse each input and print it back in canonical form: binary operators
spaced, blocks broken across lines and indented.

With --write, files whose formatting differs are rewritten in place. With
--list, only the names of those files are printed. With --check, the command
fails if any input is not already formatted.`,
		Example: `  quasi fmt -c 'x<-1+2'
  quasi fmt --write *.q
  quasi fmt --check src/*.q`,
		RunE: a.runFmt,
	}
	addInputFlags(cmd)
	cmd.Flags().BoolP("write", "w", false, "write the result to the source file")
	cmd.Flags().BoolP("list", "l", false, "list files whose formatting differs")
	cmd.Flags().Bool("check", false, "exit with an error if any input is not formatted")
	cmd.Flags().Int("indent", 4, "number of spaces per indentation level")
	return cmd
}

func (a *app) runFmt(cmd *cobra.Command, args []string) error {
	sources, err := readSources(cmd, args)
	if err != nil {
		return err
	}
	write, _ := cmd.Flags().GetBool("write")
	list, _ := cmd.Flags().GetBool("list")
	check, _ := cmd.Flags().GetBool("check")
	indent := a.v.GetInt("indent")
	if indent < 0 {
		return fmt.Errorf("invalid indent: %d", indent)
	}

	out := cmd.OutOrStdout()
	var errs *multierror.Error
	var unformatted []string
	for _, src := range sources {
		formatted, err := formatSource(cmd, src, indent)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		changed := formatted != src.text
		if changed {
			unformatted = append(unformatted, src.name)
		}
		switch {
		case list:
			if changed {
				fmt.Fprintln(out, src.name)
			}
		case write && src.path != "":
			if !changed {
				continue
			}
			info, err := os.Stat(src.path)
			if err != nil {
				errs = multierror.Append(errs, err)
				continue
			}
			if err := os.WriteFile(src.path, []byte(formatted), info.Mode().Perm()); err != nil {
				errs = multierror.Append(errs, err)
				continue
			}
			a.logger.Info().Str("file", src.path).Msg("formatted")
		case check:
		default:
			fmt.Fprint(out, formatted)
		}
	}
	if check && len(unformatted) > 0 {
		errs = multierror.Append(errs, fmt.Errorf("not formatted: %s", strings.Join(unformatted, ", ")))
	}
	return errs.ErrorOrNil()
}

func formatSource(cmd *cobra.Command, src source, indent int) (string, error) {
	nodes, err := quasi.Parse(cmd.Context(), src.text, quasi.WithFilename(src.path))
	if err != nil {
		return "", err
	}
	return deparse.Statements(nodes, deparse.WithIndent(strings.Repeat(" ", indent)))
}

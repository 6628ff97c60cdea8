package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/risor-io/quasi"
)

func (a *app) runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [file]",
		Short: "Run a program and print its last value",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args)
		},
	}
	addInputFlags(cmd)
	addOutputFlag(cmd, "result format: text or json")
	cmd.Flags().Bool("timing", false, "print parse and evaluation time to stderr")
	return cmd
}

func (a *app) run(cmd *cobra.Command, args []string) error {
	src, err := readSource(cmd, args)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	opts := a.options(cmd, src.path)

	start := time.Now()
	program, err := quasi.Load(ctx, src.text, opts...)
	if err != nil {
		return err
	}
	parsed := time.Now()

	session, err := quasi.NewSession(opts...)
	if err != nil {
		return err
	}
	result, err := session.Run(ctx, program)
	if timing, _ := cmd.Flags().GetBool("timing"); timing {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: parse %s, eval %s\n",
			src.name, parsed.Sub(start), time.Since(parsed))
	}
	if err != nil {
		return err
	}
	return a.printValue(cmd, result)
}

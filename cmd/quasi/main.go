// Command quasi parses, formats, inspects and evaluates quasi source.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	a := newApp()
	cmd := a.rootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errTestsFailed) {
			a.printError(cmd.ErrOrStderr(), err)
		}
		os.Exit(1)
	}
}

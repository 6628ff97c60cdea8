package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/risor-io/quasi"
	"github.com/risor-io/quasi/eval"
	"github.com/risor-io/quasi/syntax"
)

// app holds the state shared by every subcommand of one invocation.
type app struct {
	v      *viper.Viper
	logger zerolog.Logger

	// terminal reports whether stdin and stdout are both a terminal.
	terminal func() bool
}

func newApp() *app {
	return &app{
		v:        viper.New(),
		logger:   zerolog.Nop(),
		terminal: isTerminalIO,
	}
}

// configKeys are the flags that may also be set through the environment
// (QUASI_LOG_LEVEL and so on) or the config file.
var configKeys = []string{"no-color", "log-level", "max-depth", "syntax", "indent"}

// syntaxPresets are the values accepted by --syntax.
var syntaxPresets = map[string]syntax.SyntaxConfig{
	"full":       syntax.FullLanguage,
	"basic":      syntax.BasicScripting,
	"expression": syntax.ExpressionOnly,
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quasi [file]",
		Short: "Code as data: parse, deparse and evaluate expression trees",
		Long: `quasi parses source into trees of constants, names, calls and pairlists,
prints those trees back as source and evaluates them.

With a file argument, --code or --stdin the program is run and its last value
printed. With no input and an interactive terminal a REPL is started.`,
		Example: `  quasi script.q
  quasi -c 'f <- function(x) x * 2; f(21)'
  quasi ast -c 'f(x, y = 1)'
  quasi fmt --write *.q
  quasi test ./...`,
		Args:              cobra.MaximumNArgs(1),
		Version:           fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			noRepl, _ := cmd.Flags().GetBool("no-repl")
			if len(args) == 0 && !hasInputFlag(cmd) {
				if noRepl || !a.terminal() {
					return cmd.Help()
				}
				return a.repl(cmd)
			}
			return a.run(cmd, args)
		},
	}

	flags := cmd.PersistentFlags()
	flags.String("config", "", "config file (default $HOME/.quasi.yaml)")
	flags.Bool("no-color", false, "disable colored output")
	flags.String("log-level", "warn", "log level: trace, debug, info, warn or error")
	flags.Int("max-depth", eval.DefaultMaxDepth, "maximum depth of nested function calls")
	flags.String("syntax", "full", "allowed language features: full, basic or expression")

	addInputFlags(cmd)
	addOutputFlag(cmd, "result format: text or json")
	cmd.Flags().Bool("no-repl", false, "print help instead of starting the REPL when no input is given")

	cmd.AddCommand(
		a.runCmd(),
		a.evalCmd(),
		a.astCmd(),
		a.fmtCmd(),
		a.replCmd(),
		a.testCmd(),
		a.docCmd(),
		a.versionCmd(),
	)
	return cmd
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	if err := a.loadConfig(cmd); err != nil {
		return err
	}
	level, err := zerolog.ParseLevel(strings.ToLower(a.v.GetString("log-level")))
	if err != nil {
		return fmt.Errorf("invalid log level %q", a.v.GetString("log-level"))
	}
	if _, ok := syntaxPresets[a.v.GetString("syntax")]; !ok {
		return fmt.Errorf("invalid syntax preset %q (want full, basic or expression)", a.v.GetString("syntax"))
	}
	a.logger = newLogger(cmd.ErrOrStderr(), level, !a.useColor(cmd.ErrOrStderr()))
	if used := a.v.ConfigFileUsed(); used != "" {
		a.logger.Debug().Str("file", used).Msg("loaded config")
	}
	return nil
}

// loadConfig binds flags, QUASI_* environment variables and the optional
// config file into the app's viper instance.
func (a *app) loadConfig(cmd *cobra.Command) error {
	for _, key := range configKeys {
		if f := cmd.Flags().Lookup(key); f != nil {
			if err := a.v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}
	a.v.SetEnvPrefix("QUASI")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	explicit, _ := cmd.Flags().GetString("config")
	if explicit != "" {
		path, err := homedir.Expand(explicit)
		if err != nil {
			return err
		}
		a.v.SetConfigFile(path)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return nil
		}
		a.v.AddConfigPath(home)
		a.v.SetConfigName(".quasi")
		a.v.SetConfigType("yaml")
	}
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

func (a *app) useColor(w io.Writer) bool {
	if a.v.GetBool("no-color") || os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}

// options returns the evaluation options for a program read from name.
func (a *app) options(cmd *cobra.Command, name string) []quasi.Option {
	opts := []quasi.Option{
		quasi.WithLogger(a.logger),
		quasi.WithOutput(cmd.OutOrStdout()),
		quasi.WithMaxDepth(a.v.GetInt("max-depth")),
	}
	if preset := a.v.GetString("syntax"); preset != "" && preset != "full" {
		opts = append(opts, quasi.WithSyntax(syntaxPresets[preset]))
	}
	if name != "" {
		opts = append(opts, quasi.WithFilename(name))
	}
	return opts
}

func (a *app) versionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := map[string]any{
				"version":  version,
				"commit":   commit,
				"date":     date,
				"language": quasi.Version,
			}
			format, _ := cmd.Flags().GetString("output")
			switch format {
			case "", "text":
				fmt.Fprintf(cmd.OutOrStdout(), "quasi %s (commit %s, built %s, language %s)\n",
					version, commit, date, quasi.Version)
				return nil
			case "json":
				return a.printJSON(cmd, info)
			}
			return fmt.Errorf("unknown output format: %s", format)
		},
	}
	addOutputFlag(cmd, "output format: text or json")
	return cmd
}

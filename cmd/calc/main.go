// Command calc evaluates arithmetic expressions with arbitrary precision,
// either from its arguments or interactively, one expression per line.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/calc/internal/config"
	"github.com/zephyrtronium/calc/internal/repl"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc [flags] [--] [expression...]",
		Short: "Arbitrary-precision calculator for + - * / and parentheses",
		Long: `calc evaluates each expression given as an argument and prints
"<expression> = <value>". With no arguments, it prompts for expressions on
standard input until it reads "exit" or reaches the end of the input.

Put "--" before expressions that begin with "-", e.g. calc -- -5+2.`,
		Version:      version + " (commit=" + commit + ")",
		SilenceUsage: true,
		RunE:         run,
	}
	cmd.SetVersionTemplate("calc version {{.Version}}\n")

	f := cmd.Flags()
	f.String("config", "", "YAML config file (env "+config.EnvPath+")")
	f.String("backend", "", `arithmetic backend, "float" or "decimal"`)
	f.Uint("prec", 0, "precision of the float backend in bits")
	f.Int32("div-prec", 0, "decimal places kept by quotients in the decimal backend")
	f.Int("places", 0, "decimal places in printed results")
	f.Bool("echo", false, "print the postfix form of each expression")
	f.String("log-level", "", "log level (debug, info, warn, error)")
	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	logger.Debug().Str("version", version).Str("commit", commit).Msg("starting")

	s, err := repl.New(cfg, cmd.InOrStdin(), cmd.OutOrStdout(), logger)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return s.Run(cmd.Context())
	}

	failed := 0
	for _, arg := range args {
		r, err := s.EvalLine(arg)
		if err != nil {
			logger.Info().Err(err).Str("expr", arg).Msg("invalid input")
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", arg, err)
			failed++
			continue
		}
		fmt.Fprintln(cmd.OutOrStdout(), r)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d expressions invalid", failed, len(args))
	}
	return nil
}

// loadConfig reads the config file, then applies flags the user set.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	f := cmd.Flags()
	var (
		cfg config.Config
		err error
	)
	if path, _ := f.GetString("config"); path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.FromEnv()
	}
	if err != nil {
		return cfg, err
	}

	if f.Changed("backend") {
		cfg.Backend, _ = f.GetString("backend")
	}
	if f.Changed("prec") {
		cfg.Prec, _ = f.GetUint("prec")
	}
	if f.Changed("div-prec") {
		cfg.DivPrec, _ = f.GetInt32("div-prec")
	}
	if f.Changed("places") {
		cfg.Places, _ = f.GetInt("places")
	}
	if f.Changed("echo") {
		cfg.Echo, _ = f.GetBool("echo")
	}
	if f.Changed("log-level") {
		cfg.LogLevel, _ = f.GetString("log-level")
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func newLogger(w io.Writer, lvl string) zerolog.Logger {
	level, err := zerolog.ParseLevel(lvl)
	if err != nil || lvl == "" {
		level = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).
		With().Timestamp().Str("service", "calc").Logger().
		Level(level)
}

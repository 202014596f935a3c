package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ThatCatDev/llamalaunch/internal/config"
	"github.com/ThatCatDev/llamalaunch/internal/logging"
	"github.com/ThatCatDev/llamalaunch/internal/runner"
)

// Exit codes besides the child's own.
const (
	ExitSuccess    = 0
	ExitFailure    = 1
	ExitUsageError = 2
)

// app is the state shared by every launcher in one invocation.
type app struct {
	streams runner.Streams
	logger  *zap.Logger

	configFile string
	envFile    string
	logLevel   string
	logFormat  string
}

func newRootCmd(streams runner.Streams) (*cobra.Command, *app) {
	a := &app{streams: streams, logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "llamalaunch",
		Short: "Launchers for llama.cpp chat, statement OCR and GPU monitoring",
		Long: "llamalaunch starts llama.cpp binaries with flags resolved from defaults, " +
			"an optional config file, environment variables and command-line flags, " +
			"and relays their output and exit status.",
		Args:          noArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cmd.ValidateFlagGroups(); err != nil {
				return &usageError{err: err}
			}
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	rootCmd.SetIn(streams.In)
	rootCmd.SetOut(streams.Out)
	rootCmd.SetErr(streams.Err)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "YAML file with defaults and per-launcher sections")
	pf.StringVar(&a.envFile, "env-file", "", "dotenv file loaded before options are resolved")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error (env LOG_LEVEL, default warn)")
	pf.StringVar(&a.logFormat, "log-format", "", "log format: console or json (env LOG_FORMAT)")

	rootCmd.AddCommand(
		newChatCmd(a),
		newOCRCmd(a, metadataTask),
		newOCRCmd(a, transactionsTask),
		newWatchGPUCmd(a),
		newVersionCmd(),
	)
	rootCmd.SetGlobalNormalizationFunc(config.NormalizeFlagName)
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	return rootCmd, a
}

// setup loads the env file, then builds the logger, so LOG_LEVEL may come
// from either.
func (a *app) setup() error {
	if a.envFile != "" {
		if err := godotenv.Load(a.envFile); err != nil {
			return &config.Error{Option: "env-file", Source: "--env-file", Err: err}
		}
	}

	level := a.logLevel
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	format := a.logFormat
	if format == "" {
		format = os.Getenv("LOG_FORMAT")
	}

	logger, err := logging.New(logging.Options{Level: level, Format: format, Output: a.streams.Err})
	if err != nil {
		return &config.Error{Option: "logging", Source: "--log-level/--log-format", Err: err}
	}
	a.logger = logger
	return nil
}

// Execute runs the command tree against os.Args and returns the process exit
// status.
func Execute() int {
	return run(os.Args[1:], runner.StdStreams())
}

func run(args []string, streams runner.Streams) int {
	rootCmd, a := newRootCmd(streams)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	_ = a.logger.Sync()
	if err == nil {
		return ExitSuccess
	}
	report(streams.Err, err)
	return exitCode(err)
}

// usageError marks command-line parse failures.
type usageError struct {
	err error
}

func (e *usageError) Error() string {
	return e.err.Error()
}

func (e *usageError) Unwrap() error {
	return e.err
}

// noArgs rejects positional arguments, which on the root command means an
// unknown subcommand.
func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return nil
	}
	msg := fmt.Sprintf("unknown command %q for %q", args[0], cmd.CommandPath())
	if suggestions := cmd.SuggestionsFor(args[0]); len(suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(suggestions, ", "))
	}
	return &usageError{err: errors.New(msg)}
}

func exitCode(err error) int {
	var usage *usageError
	if errors.As(err, &usage) {
		return ExitUsageError
	}
	return runner.ExitCode(err)
}

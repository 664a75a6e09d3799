package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"immutable-error/internal/cli"
	"immutable-error/pkg/errx"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	debug   = false
	quiet   = false

	logLevel = zap.NewAtomicLevelAt(zap.ErrorLevel)
)

func main() {
	logger, err := newConsoleLogger(debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	cli.ConfigureColor()
	initCommands(logger)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", errx.UserString(err))
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "immutable-error",
	Short: "Immutable error class and code inspector",
	Long: `immutable-error inspects the error class registry and error factory configurations:
- List registered classes and their code ranges
- Explain a public error code
- Validate factory configuration files
- Build sample errors from a factory`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Set debug mode globally so logStructuredError can check it
		cli.SetDebugMode(debug)
		cli.DefaultPrinter.Quiet = quiet
		if debug {
			logLevel.SetLevel(zap.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug mode with structured error logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress headers, progress and notes")
}

func initCommands(logger *zap.Logger) {
	rootCmd.AddCommand(cli.NewRegistryCmd(logger))
	rootCmd.AddCommand(cli.NewFactoryCmd(logger))
}

// newConsoleLogger returns a human-friendly console logger on stderr.
// The level starts at Error and is lowered to Debug once --debug is parsed.
func newConsoleLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	if debug {
		logLevel.SetLevel(zap.DebugLevel)
	}
	cfg.Level = logLevel
	cfg.EncoderConfig = zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalColorLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	return cfg.Build()
}

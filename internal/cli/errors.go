package cli

// This file defines error handling utilities for the CLI, including:
//   - The CLI's own error factory, registered as the ImmutableErrorCLI class
//   - Internal codes for every CLI failure
//   - Structured error logging with context
//   - Debug mode management for error output

import (
	"sync"

	"go.uber.org/zap"

	"immutable-error/pkg/errx"
)

var (
	debugMode   bool
	debugModeMu sync.RWMutex
)

// SetDebugMode sets the global debug mode flag.
// When enabled, logStructuredError will output structured error logs to terminal.
func SetDebugMode(enabled bool) {
	debugModeMu.Lock()
	defer debugModeMu.Unlock()
	debugMode = enabled
}

// IsDebugMode returns whether debug mode is enabled.
func IsDebugMode() bool {
	debugModeMu.RLock()
	defer debugModeMu.RUnlock()
	return debugMode
}

// Internal codes of the ImmutableErrorCLI class.
const (
	CodeConfigNotFound      = 100
	CodeReadConfigFailed    = 101
	CodeParseConfigFailed   = 102
	CodeInvalidFactory      = 103
	CodeDuplicateClass      = 104
	CodeClassRequired       = 110
	CodeInvalidCodeArgument = 111
	CodeUnsupportedOutput   = 112
	CodeCodeNotRegistered   = 120
	CodeRenderFailed        = 130
)

var cliErrors = errx.MustNew(errx.ClassImmutableErrorCLI,
	errx.WithCodes(map[string]string{
		"100": "config file not found",
		"101": "failed to read config file",
		"102": "failed to parse config file",
		"103": "invalid factory configuration",
		"104": "class configured more than once",
		"110": "class is required",
		"111": "code must be a number",
		"112": "unsupported output format",
		"120": "code is not in a registered range",
		"130": "failed to render error",
	}),
	errx.WithNameProperty("command"),
)

// commandRef names the command an error is raised for.
type commandRef struct {
	Command string
}

// newCLIError builds an ImmutableErrorCLI error for command.
func newCLIError(command string, code int, msg string, cause error, data map[string]any) *errx.Error {
	return cliErrors.Build(errx.Occurrence{
		Instance: commandRef{Command: command},
		Code:     code,
		Message:  msg,
		Original: cause,
		Data:     data,
	})
}

// logStructuredError logs an error with structured fields to terminal.
// Only logs when debug mode is enabled (via --debug flag).
// The zap logger is configured with console encoding, so structured fields
// are displayed in a human-readable format in the terminal.
func logStructuredError(logger *zap.Logger, err error, msg string) {
	if logger == nil || err == nil || !IsDebugMode() {
		return
	}
	errx.LogZap(logger, err, msg)
}

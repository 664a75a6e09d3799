package cli

// This file implements the "registry" command for inspecting the class registry.
// It lists registered classes with their code ranges and explains public codes.

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"immutable-error/pkg/errx"
)

// RegistryManager handles registry operations with injected dependencies.
type RegistryManager struct {
	registry *errx.Registry
	printer  *Printer
	logger   *zap.Logger
}

// NewRegistryManager creates a RegistryManager with the given dependencies.
func NewRegistryManager(registry *errx.Registry, printer *Printer, logger *zap.Logger) *RegistryManager {
	if registry == nil {
		registry = errx.DefaultRegistry()
	}
	if printer == nil {
		printer = DefaultPrinter
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegistryManager{
		registry: registry,
		printer:  printer,
		logger:   logger,
	}
}

// DefaultRegistryManager returns a RegistryManager using the built-in registry.
func DefaultRegistryManager(logger *zap.Logger) *RegistryManager {
	return NewRegistryManager(errx.DefaultRegistry(), DefaultPrinter, logger)
}

// NewRegistryCmd builds the registry subcommand.
func NewRegistryCmd(logger *zap.Logger) *cobra.Command {
	return NewRegistryCmdWithManager(DefaultRegistryManager(logger))
}

// NewRegistryCmdWithManager returns the registry subcommand using the provided manager.
func NewRegistryCmdWithManager(mgr *RegistryManager) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Inspect the error class registry",
		Long:  "Commands for listing registered error classes and explaining public error codes",
	}

	cmd.AddCommand(mgr.newRegistryListCmd())
	cmd.AddCommand(mgr.newRegistryExplainCmd())

	return cmd
}

func (m *RegistryManager) newRegistryListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered classes",
		Long:  "List every registered error class with its base code and code range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m.ListClasses()
			return nil
		},
	}
}

func (m *RegistryManager) newRegistryExplainCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "explain <code>",
		Short: "Explain a public error code",
		Long:  "Resolve a public error code to its class and internal code, and show the configured message when known",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return m.ExplainCode(args[0], configPath)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Factory config file (default $"+EnvConfigPath+" or "+DefaultConfigPath+")")

	return cmd
}

// ListClasses prints the registered classes as a table.
func (m *RegistryManager) ListClasses() {
	m.logger.Debug("Listing registered classes")
	m.printer.Header("Error Class Registry")

	data := [][]string{{"Class", "Base Code", "Range"}}
	for _, entry := range m.registry.Entries() {
		data = append(data, []string{
			entry.Class,
			strconv.Itoa(entry.BaseCode),
			fmt.Sprintf("%d-%d", entry.BaseCode, entry.BaseCode+999),
		})
	}
	data = append(data, []string{
		Yellow("(unregistered)"),
		strconv.Itoa(errx.CodeUnregistered),
		"-",
	})
	m.printer.TableBoxed(data)
}

// ExplainCode resolves a public code against the registry and, when a
// config file configures the class, looks up the default message.
func (m *RegistryManager) ExplainCode(raw, configPath string) error {
	code, err := strconv.Atoi(raw)
	if err != nil {
		cliErr := newCLIError("explain", CodeInvalidCodeArgument, "", err, map[string]any{"code": raw})
		Error(fmt.Sprintf("Invalid code %q", raw))
		logStructuredError(m.logger, cliErr, "Invalid code argument")
		return cliErr
	}

	if code == errx.CodeUnregistered {
		m.printer.TableBoxed([][]string{
			{"Property", "Value"},
			{"Code", raw},
			{"Class", Yellow("(unregistered)")},
		})
		return nil
	}

	class, internal, ok := m.registry.Resolve(code)
	if !ok {
		cliErr := newCLIError("explain", CodeCodeNotRegistered, "", nil, map[string]any{"code": code})
		Error(fmt.Sprintf("Code %d is not in a registered range", code))
		logStructuredError(m.logger, cliErr, "Code not registered")
		return cliErr
	}

	rows := [][]string{
		{"Property", "Value"},
		{"Code", raw},
		{"Class", class},
	}
	if internal == 0 {
		rows = append(rows, []string{"Internal Code", "-"})
	} else {
		rows = append(rows, []string{"Internal Code", strconv.Itoa(internal)})
	}

	file, err := loadOptionalFactoryFile(configPath)
	if err != nil {
		Error("Failed to load factory config")
		logStructuredError(m.logger, err, "Failed to load factory config")
		return err
	}
	var note string
	switch factory, found := file.Factory(class, m.registry); {
	case file.Path == "":
		m.printer.Warn("No factory config found; default messages are unavailable")
	case !found:
		note = fmt.Sprintf("%s is not configured in %s", class, file.Path)
	case internal != 0:
		if msg, ok := factory.DefaultMessage(internal); ok {
			rows = append(rows, []string{"Message", msg})
		} else {
			note = fmt.Sprintf("%s has no message for internal code %d", class, internal)
		}
	}

	m.printer.TableBoxed(rows)
	if note != "" {
		m.printer.Info(note)
	}
	return nil
}

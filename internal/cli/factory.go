package cli

// This file implements the "factory" command: validating factory
// configurations and building sample errors from them.

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	sigsyaml "sigs.k8s.io/yaml"

	"immutable-error/pkg/errx"
)

// Output formats accepted by "factory build".
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// FactoryManager handles factory operations with injected dependencies.
type FactoryManager struct {
	registry *errx.Registry
	printer  *Printer
	logger   *zap.Logger
	log      logr.Logger
}

// NewFactoryManager creates a FactoryManager with the given dependencies.
func NewFactoryManager(registry *errx.Registry, printer *Printer, logger *zap.Logger) *FactoryManager {
	if registry == nil {
		registry = errx.DefaultRegistry()
	}
	if printer == nil {
		printer = DefaultPrinter
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FactoryManager{
		registry: registry,
		printer:  printer,
		logger:   logger,
		log:      zapr.NewLogger(logger).WithName("factory"),
	}
}

// DefaultFactoryManager returns a FactoryManager using the built-in registry.
func DefaultFactoryManager(logger *zap.Logger) *FactoryManager {
	return NewFactoryManager(errx.DefaultRegistry(), DefaultPrinter, logger)
}

// NewFactoryCmd builds the factory subcommand.
func NewFactoryCmd(logger *zap.Logger) *cobra.Command {
	return NewFactoryCmdWithManager(DefaultFactoryManager(logger))
}

// NewFactoryCmdWithManager returns the factory subcommand using the provided manager.
func NewFactoryCmdWithManager(mgr *FactoryManager) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "factory",
		Short: "Validate factory configs and build errors",
		Long:  "Commands for validating error factory configuration files and building errors from them",
	}

	cmd.AddCommand(mgr.newFactoryValidateCmd())
	cmd.AddCommand(mgr.newFactoryBuildCmd())

	return cmd
}

func (m *FactoryManager) newFactoryValidateCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a factory config file",
		Long:  "Construct every factory in the config file and report configuration errors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := resolveConfigPath(configPath)
			return m.Validate(path)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Factory config file (default $"+EnvConfigPath+" or "+DefaultConfigPath+")")

	return cmd
}

// BuildOptions are the inputs of "factory build".
type BuildOptions struct {
	ConfigPath string
	Class      string
	Code       string
	Message    string
	Original   string
	Instance   map[string]string
	Data       map[string]string
	Output     string
}

func (m *FactoryManager) newFactoryBuildCmd() *cobra.Command {
	var opts BuildOptions

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build an error from a factory",
		Long:  "Build an error the way the configured factory would and print it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return m.Build(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "Factory config file (default $"+EnvConfigPath+" or "+DefaultConfigPath+")")
	cmd.Flags().StringVar(&opts.Class, "class", "", "Error class")
	cmd.Flags().StringVar(&opts.Code, "code", "", "Internal code")
	cmd.Flags().StringVar(&opts.Message, "message", "", "Custom message")
	cmd.Flags().StringVar(&opts.Original, "original", "", "Message of an original error to wrap")
	cmd.Flags().StringToStringVar(&opts.Instance, "instance", nil, "Instance properties (key=value)")
	cmd.Flags().StringToStringVar(&opts.Data, "data", nil, "Custom data (key=value, values parsed as YAML scalars)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", OutputText, "Output format: text, json or yaml")
	_ = cmd.MarkFlagRequired("class")

	return cmd
}

// Validate builds every factory in the file at path and reports each one.
func (m *FactoryManager) Validate(path string) error {
	m.logger.Info("Validating factory config", zap.String("path", path))

	m.printer.Section("Factory config")
	m.printer.Step("Loading " + path)
	file, err := LoadFactoryFile(path)
	if err != nil {
		Error("Failed to load factory config")
		logStructuredError(m.logger, err, "Failed to load factory config")
		return err
	}
	if len(file.Factories) == 0 {
		m.printer.Warn("No factories configured in " + path)
		return nil
	}

	stop := m.printer.SpinnerStart(fmt.Sprintf("Constructing %d factories", len(file.Factories)))
	results := file.Build(m.registry)

	rows := [][]string{{"#", "Class", "Base Code", "Codes", "Status"}}
	var errs []error
	for _, res := range results {
		status := Green("valid")
		base, codes := "-", "-"
		if res.Err != nil {
			status = Red("invalid")
			errs = append(errs, res.Err)
			errx.LogR(m.log.WithValues("index", res.Index), res.Err, "Invalid factory")
		} else {
			if b, ok := res.Factory.BaseCode(); ok {
				base = fmt.Sprint(b)
			}
			codes = fmt.Sprint(len(res.Factory.Codes()))
		}
		rows = append(rows, []string{fmt.Sprint(res.Index), res.Class, base, codes, status})
	}
	stop(len(errs) == 0, fmt.Sprintf("%d of %d factories valid", len(results)-len(errs), len(results)))
	m.printer.Table(rows)

	if len(errs) > 0 {
		for _, err := range errs {
			Error(validationMessage(err))
		}
		return errors.Join(errs...)
	}
	Success(fmt.Sprintf("%d factories valid", len(file.Factories)))
	return nil
}

// Build constructs an error from opts and writes it to out.
func (m *FactoryManager) Build(out io.Writer, opts BuildOptions) error {
	if opts.Class == "" {
		err := newCLIError("build", CodeClassRequired, "", nil, nil)
		Error("Class is required")
		logStructuredError(m.logger, err, "Class is required")
		return err
	}
	if !isSupportedOutput(opts.Output) {
		err := newCLIError("build", CodeUnsupportedOutput, "", nil, map[string]any{"output": opts.Output})
		Error(fmt.Sprintf("Unsupported output format %q", opts.Output))
		logStructuredError(m.logger, err, "Unsupported output format")
		return err
	}

	factory, err := m.factoryFor(opts.ConfigPath, opts.Class)
	if err != nil {
		Error("Failed to construct factory")
		logStructuredError(m.logger, err, "Failed to construct factory")
		return err
	}

	occ := errx.Occurrence{
		Message: opts.Message,
		Data:    parseData(opts.Data),
	}
	if opts.Code != "" {
		occ.Code = opts.Code
	}
	if len(opts.Instance) > 0 {
		occ.Instance = opts.Instance
	}
	if opts.Original != "" {
		occ.Original = errors.New(opts.Original)
	}

	built := factory.Build(occ)
	m.logger.Debug("Built error", zap.String("class", built.Class()), zap.Int("code", built.Code()))

	if err := render(out, built, opts.Output); err != nil {
		cliErr := newCLIError("build", CodeRenderFailed, "", err, map[string]any{"output": opts.Output})
		Error("Failed to render error")
		logStructuredError(m.logger, cliErr, "Failed to render error")
		return cliErr
	}
	return nil
}

// factoryFor returns the configured factory for class, or a bare factory
// when no config file configures it.
func (m *FactoryManager) factoryFor(configPath, class string) (*errx.Factory, error) {
	file, err := loadOptionalFactoryFile(configPath)
	if err != nil {
		return nil, err
	}
	for _, res := range file.Build(m.registry) {
		if res.Class != class {
			continue
		}
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Factory, nil
	}
	m.logger.Debug("Class not configured, using bare factory", zap.String("class", class))
	factory, err := errx.New(class, errx.WithRegistry(m.registry))
	if err != nil {
		return nil, newCLIError("build", CodeInvalidFactory, "", err, map[string]any{"class": class})
	}
	return factory, nil
}

// validationMessage prefers the underlying configuration problem over the
// CLI error wrapping it.
func validationMessage(err error) string {
	if cause := errors.Unwrap(err); cause != nil {
		return cause.Error()
	}
	return errx.UserString(err)
}

func isSupportedOutput(format string) bool {
	switch format {
	case OutputText, OutputJSON, OutputYAML:
		return true
	}
	return false
}

func render(out io.Writer, err *errx.Error, format string) error {
	switch format {
	case OutputJSON:
		data, marshalErr := json.MarshalIndent(err, "", "  ")
		if marshalErr != nil {
			return marshalErr
		}
		_, writeErr := fmt.Fprintln(out, string(data))
		return writeErr
	case OutputYAML:
		data, marshalErr := sigsyaml.Marshal(err)
		if marshalErr != nil {
			return marshalErr
		}
		_, writeErr := out.Write(data)
		return writeErr
	default:
		_, writeErr := fmt.Fprintln(out, renderText(err))
		return writeErr
	}
}

func renderText(err *errx.Error) string {
	var b strings.Builder
	fmt.Fprintf(&b, "message: %s\n", err.Message())
	fmt.Fprintf(&b, "class:   %s\n", err.Class())
	fmt.Fprintf(&b, "code:    %d", err.Code())
	data := err.Data()
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "\ndata.%s: %v", k, data[k])
	}
	return b.String()
}

// parseData decodes each value as a YAML scalar so numbers and booleans
// keep their type. Values that do not parse stay strings.
func parseData(raw map[string]string) map[string]any {
	if len(raw) == 0 {
		return nil
	}
	out := make(map[string]any, len(raw))
	for k, v := range raw {
		out[k] = parseScalar(v)
	}
	return out
}

func parseScalar(v string) any {
	if v == "" {
		return ""
	}
	var parsed any
	if err := yaml.Unmarshal([]byte(v), &parsed); err != nil || parsed == nil {
		return v
	}
	switch parsed.(type) {
	case map[string]any, []any:
		return v
	}
	return parsed
}

package cli

// This file loads error factory definitions from a YAML file.
// The file path is resolved with precedence: --config flag >
// IMMUTABLE_ERROR_CONFIG environment variable > .immutable-error.yaml.

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"immutable-error/pkg/errx"
)

const (
	// EnvConfigPath overrides the default config file location.
	EnvConfigPath = "IMMUTABLE_ERROR_CONFIG"
	// DefaultConfigPath is used when neither flag nor environment names a file.
	DefaultConfigPath = ".immutable-error.yaml"
)

// FactoryFile is the on-disk list of factory configurations.
//
//	factories:
//	  - class: ImmutableAppComponent
//	    nameProperty: name
//	    errorCodes:
//	      100: foo error
type FactoryFile struct {
	Path      string        `yaml:"-"`
	Factories []errx.Config `yaml:"factories"`
}

// resolveConfigPath returns the config path to use and whether it was
// explicitly requested by flag or environment.
func resolveConfigPath(flagPath string) (string, bool) {
	if flagPath != "" {
		return flagPath, true
	}
	if env := os.Getenv(EnvConfigPath); env != "" {
		return env, true
	}
	return DefaultConfigPath, false
}

// LoadFactoryFile reads and parses the factory file at path.
func LoadFactoryFile(path string) (*FactoryFile, error) {
	// #nosec G304 -- path is chosen by the user running the CLI.
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, newCLIError("config", CodeConfigNotFound, "", err, map[string]any{"path": path})
		}
		return nil, newCLIError("config", CodeReadConfigFailed, "", err, map[string]any{"path": path})
	}

	file := &FactoryFile{Path: path}
	if err := yaml.Unmarshal(data, file); err != nil {
		return nil, newCLIError("config", CodeParseConfigFailed, "", err, map[string]any{"path": path})
	}
	return file, nil
}

// loadOptionalFactoryFile loads the resolved config file. A missing default
// file yields an empty FactoryFile; a missing explicit file is an error.
func loadOptionalFactoryFile(flagPath string) (*FactoryFile, error) {
	path, explicit := resolveConfigPath(flagPath)
	file, err := LoadFactoryFile(path)
	if err == nil {
		return file, nil
	}
	if code, _ := errInternalCode(err); code == CodeConfigNotFound && !explicit {
		return &FactoryFile{}, nil
	}
	return nil, err
}

// FactoryResult is the outcome of building one configured factory.
type FactoryResult struct {
	Index   int
	Class   string
	Factory *errx.Factory
	Err     error
}

// Build constructs every configured factory against registry. Results keep
// file order; a class configured twice is reported on its second entry.
func (f *FactoryFile) Build(registry *errx.Registry) []FactoryResult {
	if f == nil {
		return nil
	}
	results := make([]FactoryResult, 0, len(f.Factories))
	seen := make(map[string]int, len(f.Factories))
	for i, cfg := range f.Factories {
		res := FactoryResult{Index: i, Class: cfg.Class}
		if first, dup := seen[cfg.Class]; dup && cfg.Class != "" {
			res.Err = newCLIError("validate", CodeDuplicateClass,
				fmt.Sprintf("class %s configured more than once", cfg.Class), nil,
				map[string]any{"class": cfg.Class, "first": first, "index": i})
			results = append(results, res)
			continue
		}
		seen[cfg.Class] = i

		factory, err := errx.NewFromConfig(cfg, errx.WithRegistry(registry))
		if err != nil {
			res.Err = newCLIError("validate", CodeInvalidFactory, "", err,
				map[string]any{"class": cfg.Class, "index": i})
		}
		res.Factory = factory
		results = append(results, res)
	}
	return results
}

// Factory returns the valid factory configured for class.
func (f *FactoryFile) Factory(class string, registry *errx.Registry) (*errx.Factory, bool) {
	for _, res := range f.Build(registry) {
		if res.Class == class && res.Err == nil {
			return res.Factory, true
		}
	}
	return nil, false
}

// Classes returns the configured class names in sorted order.
func (f *FactoryFile) Classes() []string {
	if f == nil {
		return nil
	}
	out := make([]string, 0, len(f.Factories))
	for _, cfg := range f.Factories {
		out = append(out, cfg.Class)
	}
	sort.Strings(out)
	return out
}

func errInternalCode(err error) (int, bool) {
	var e *errx.Error
	if !errors.As(err, &e) {
		return 0, false
	}
	return e.InternalCode()
}

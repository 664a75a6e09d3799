package errx

import (
	"errors"
	"fmt"
	"regexp"
	"sort"

	"k8s.io/apimachinery/pkg/util/validation/field"
)

// ErrInvalidConfig matches every *ValidationError with errors.Is.
var ErrInvalidConfig = errors.New("invalid error factory configuration")

// codePattern accepts internal codes 100-999.
var codePattern = regexp.MustCompile(`^[1-9][0-9][0-9]$`)

// Config is the declarative form of a factory, as read from YAML or JSON.
type Config struct {
	Class        string            `yaml:"class" json:"class"`
	ErrorCodes   map[string]string `yaml:"errorCodes,omitempty" json:"errorCodes,omitempty"`
	NameProperty *string           `yaml:"nameProperty,omitempty" json:"nameProperty,omitempty"`
}

// ValidationError is returned when a factory configuration is malformed.
type ValidationError struct {
	Class  string
	Fields field.ErrorList
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return ErrInvalidConfig.Error()
	}
	return fmt.Sprintf("%s: %v", ErrInvalidConfig, e.Fields.ToAggregate())
}

// Is matches ErrInvalidConfig.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// Option customizes factory construction.
type Option func(*options)

type options struct {
	registry     *Registry
	codes        map[string]string
	nameProperty *string
}

// WithRegistry resolves the base code from r instead of DefaultRegistry.
func WithRegistry(r *Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// WithCodes adds internal codes and their default messages.
func WithCodes(codes map[string]string) Option {
	return func(o *options) {
		if o.codes == nil {
			o.codes = make(map[string]string, len(codes))
		}
		for code, message := range codes {
			o.codes[code] = message
		}
	}
}

// WithNameProperty sets the instance property used to name the instance in
// messages.
func WithNameProperty(name string) Option {
	return func(o *options) {
		o.nameProperty = &name
	}
}

// Factory builds errors for one class. A Factory is immutable and safe for
// concurrent use.
type Factory struct {
	class        string
	baseCode     int
	hasBase      bool
	codes        map[string]string
	nameProperty string
}

// New creates a factory for class.
func New(class string, opts ...Option) (*Factory, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return newFactory(class, o)
}

// NewFromConfig creates a factory from cfg. opts are applied after cfg.
func NewFromConfig(cfg Config, opts ...Option) (*Factory, error) {
	o := &options{nameProperty: cfg.NameProperty}
	WithCodes(cfg.ErrorCodes)(o)
	for _, opt := range opts {
		opt(o)
	}
	return newFactory(cfg.Class, o)
}

// MustNew is like New but panics if the configuration is invalid.
func MustNew(class string, opts ...Option) *Factory {
	f, err := New(class, opts...)
	if err != nil {
		panic(err)
	}
	return f
}

func newFactory(class string, o *options) (*Factory, error) {
	var errs field.ErrorList

	if class == "" {
		errs = append(errs, field.Required(field.NewPath("class"), "valid class required"))
	}

	codes := make(map[string]string, len(o.codes))
	keys := make([]string, 0, len(o.codes))
	for code := range o.codes {
		keys = append(keys, code)
	}
	sort.Strings(keys)
	for _, code := range keys {
		if !codePattern.MatchString(code) {
			errs = append(errs, field.Invalid(field.NewPath("errorCodes").Key(code), code, "code must be a number from 100 to 999"))
			continue
		}
		codes[code] = o.codes[code]
	}

	var nameProperty string
	if o.nameProperty != nil {
		if *o.nameProperty == "" {
			errs = append(errs, field.Invalid(field.NewPath("nameProperty"), "", "name property must be a non-empty string"))
		}
		nameProperty = *o.nameProperty
	}

	if len(errs) > 0 {
		return nil, &ValidationError{Class: class, Fields: errs}
	}

	registry := o.registry
	if registry == nil {
		registry = DefaultRegistry()
	}
	base, ok := registry.Lookup(class)

	return &Factory{
		class:        class,
		baseCode:     base,
		hasBase:      ok,
		codes:        codes,
		nameProperty: nameProperty,
	}, nil
}

// Class returns the factory class.
func (f *Factory) Class() string {
	return f.class
}

// BaseCode returns the registered base code of the class.
func (f *Factory) BaseCode() (int, bool) {
	return f.baseCode, f.hasBase
}

// NameProperty returns the configured instance name property.
func (f *Factory) NameProperty() (string, bool) {
	return f.nameProperty, f.nameProperty != ""
}

// Codes returns a copy of the code table.
func (f *Factory) Codes() map[string]string {
	codes := make(map[string]string, len(f.codes))
	for code, message := range f.codes {
		codes[code] = message
	}
	return codes
}

// DefaultMessage returns the message registered for code. code may be any
// integer type or a decimal string.
func (f *Factory) DefaultMessage(code any) (string, bool) {
	internal, ok := f.resolveCode(code)
	if !ok {
		return "", false
	}
	return f.codes[internal.key], true
}

package errx

import (
	"fmt"
	"sort"
)

// RegistryEntry describes a class with a reserved code range.
type RegistryEntry struct {
	Class    string
	BaseCode int
}

// Registered classes. A class owns base..base+999; subcodes 100-999 are
// added to the base to form the final code.
const (
	ClassImmutableAppComponent = "ImmutableAppComponent"
	ClassImmutableErrorCLI     = "ImmutableErrorCLI"
)

const (
	CodeImmutableAppComponent = 20000
	CodeImmutableErrorCLI     = 30000
)

// CodeUnregistered is the final code of every error built for a class
// without a registry entry.
const CodeUnregistered = 10000

const (
	baseCodeStep = 100
	classSpan    = 1000
)

var registryEntries = []RegistryEntry{
	{Class: ClassImmutableAppComponent, BaseCode: CodeImmutableAppComponent},
	{Class: ClassImmutableErrorCLI, BaseCode: CodeImmutableErrorCLI},
}

var defaultRegistry = MustNewRegistry(registryEntries...)

// Registry maps class names to reserved base codes. A Registry is never
// modified after NewRegistry returns and is safe for concurrent use.
type Registry struct {
	entries []RegistryEntry
	bases   map[string]int
}

// NewRegistry builds a registry from entries.
// Bases must be positive multiples of 100 at least 1000 apart, and no class
// range may cover CodeUnregistered.
func NewRegistry(entries ...RegistryEntry) (*Registry, error) {
	r := &Registry{
		entries: make([]RegistryEntry, 0, len(entries)),
		bases:   make(map[string]int, len(entries)),
	}
	for _, entry := range entries {
		if entry.Class == "" {
			return nil, fmt.Errorf("registry: empty class name")
		}
		if _, exists := r.bases[entry.Class]; exists {
			return nil, fmt.Errorf("registry: class %q registered twice", entry.Class)
		}
		if entry.BaseCode <= 0 || entry.BaseCode%baseCodeStep != 0 {
			return nil, fmt.Errorf("registry: base code %d of class %q is not a positive multiple of %d", entry.BaseCode, entry.Class, baseCodeStep)
		}
		if CodeUnregistered >= entry.BaseCode && CodeUnregistered < entry.BaseCode+classSpan {
			return nil, fmt.Errorf("registry: class %q range %d-%d covers the unregistered code %d", entry.Class, entry.BaseCode, entry.BaseCode+classSpan-1, CodeUnregistered)
		}
		for _, other := range r.entries {
			if abs(other.BaseCode-entry.BaseCode) < classSpan {
				return nil, fmt.Errorf("registry: class %q base code %d overlaps class %q base code %d", entry.Class, entry.BaseCode, other.Class, other.BaseCode)
			}
		}
		r.entries = append(r.entries, entry)
		r.bases[entry.Class] = entry.BaseCode
	}
	return r, nil
}

// MustNewRegistry is like NewRegistry but panics on invalid entries.
func MustNewRegistry(entries ...RegistryEntry) *Registry {
	r, err := NewRegistry(entries...)
	if err != nil {
		panic(err)
	}
	return r
}

// DefaultRegistry returns the process-wide registry.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Lookup returns the base code reserved for class.
func (r *Registry) Lookup(class string) (int, bool) {
	if r == nil {
		return 0, false
	}
	base, ok := r.bases[class]
	return base, ok
}

// Entries returns the registry entries in registration order.
func (r *Registry) Entries() []RegistryEntry {
	if r == nil {
		return nil
	}
	entries := make([]RegistryEntry, len(r.entries))
	copy(entries, r.entries)
	return entries
}

// Resolve splits a final error code into the owning class and the internal
// subcode. internal is 0 when code is a bare base code.
func (r *Registry) Resolve(code int) (class string, internal int, ok bool) {
	if r == nil {
		return "", 0, false
	}
	for _, entry := range r.entries {
		offset := code - entry.BaseCode
		if offset == 0 {
			return entry.Class, 0, true
		}
		if offset >= minInternalCode && offset <= maxInternalCode {
			return entry.Class, offset, true
		}
	}
	return "", 0, false
}

// Classes returns the registered class names sorted alphabetically.
func (r *Registry) Classes() []string {
	if r == nil {
		return nil
	}
	classes := make([]string, 0, len(r.bases))
	for class := range r.bases {
		classes = append(classes, class)
	}
	sort.Strings(classes)
	return classes
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

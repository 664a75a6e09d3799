package errx

import (
	"testing"
)

func TestRegistry_Entries(t *testing.T) {
	entries := DefaultRegistry().Entries()
	if len(entries) != len(registryEntries) {
		t.Fatalf("Entries() = %v, want %v", len(entries), len(registryEntries))
	}
	for i, entry := range entries {
		if entry != registryEntries[i] {
			t.Errorf("Entries()[%d] = %v, want %v", i, entry, registryEntries[i])
		}
	}

	entries[0].BaseCode = 1
	if got := DefaultRegistry().Entries()[0].BaseCode; got != registryEntries[0].BaseCode {
		t.Errorf("Entries() returned shared slice, BaseCode = %d", got)
	}
}

func TestRegistry_Lookup(t *testing.T) {
	base, ok := DefaultRegistry().Lookup(ClassImmutableAppComponent)
	if !ok || base != 20000 {
		t.Errorf("Lookup(%q) = %d, %v, want 20000, true", ClassImmutableAppComponent, base, ok)
	}

	if base, ok := DefaultRegistry().Lookup("Foo"); ok {
		t.Errorf("Lookup(%q) = %d, %v, want unregistered", "Foo", base, ok)
	}

	var nilRegistry *Registry
	if _, ok := nilRegistry.Lookup(ClassImmutableAppComponent); ok {
		t.Errorf("nil registry Lookup() = true, want false")
	}
}

func TestRegistry_Resolve(t *testing.T) {
	tests := []struct {
		name         string
		code         int
		wantClass    string
		wantInternal int
		wantOK       bool
	}{
		{name: "bare base", code: 20000, wantClass: ClassImmutableAppComponent, wantOK: true},
		{name: "with internal code", code: 20100, wantClass: ClassImmutableAppComponent, wantInternal: 100, wantOK: true},
		{name: "top of range", code: 20999, wantClass: ClassImmutableAppComponent, wantInternal: 999, wantOK: true},
		{name: "cli class", code: 30404, wantClass: ClassImmutableErrorCLI, wantInternal: 404, wantOK: true},
		{name: "gap below internal codes", code: 20050},
		{name: "unregistered", code: CodeUnregistered},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			class, internal, ok := DefaultRegistry().Resolve(tt.code)
			if class != tt.wantClass || internal != tt.wantInternal || ok != tt.wantOK {
				t.Errorf("Resolve(%d) = %q, %d, %v, want %q, %d, %v",
					tt.code, class, internal, ok, tt.wantClass, tt.wantInternal, tt.wantOK)
			}
		})
	}
}

func TestRegistry_Classes(t *testing.T) {
	got := DefaultRegistry().Classes()
	want := []string{ClassImmutableAppComponent, ClassImmutableErrorCLI}
	if len(got) != len(want) {
		t.Fatalf("Classes() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Classes()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNewRegistry(t *testing.T) {
	tests := []struct {
		name    string
		entries []RegistryEntry
		wantErr bool
	}{
		{name: "empty"},
		{name: "valid", entries: []RegistryEntry{{Class: "A", BaseCode: 40000}, {Class: "B", BaseCode: 41000}}},
		{name: "empty class", entries: []RegistryEntry{{BaseCode: 40000}}, wantErr: true},
		{name: "duplicate class", entries: []RegistryEntry{{Class: "A", BaseCode: 40000}, {Class: "A", BaseCode: 50000}}, wantErr: true},
		{name: "not a multiple of 100", entries: []RegistryEntry{{Class: "A", BaseCode: 40050}}, wantErr: true},
		{name: "zero base", entries: []RegistryEntry{{Class: "A"}}, wantErr: true},
		{name: "negative base", entries: []RegistryEntry{{Class: "A", BaseCode: -1000}}, wantErr: true},
		{name: "overlapping ranges", entries: []RegistryEntry{{Class: "A", BaseCode: 40000}, {Class: "B", BaseCode: 40500}}, wantErr: true},
		{name: "covers unregistered code", entries: []RegistryEntry{{Class: "A", BaseCode: 9500}}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRegistry(tt.entries...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewRegistry() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && len(r.Entries()) != len(tt.entries) {
				t.Errorf("Entries() = %v, want %v", r.Entries(), tt.entries)
			}
		})
	}
}

func TestMustNewRegistry_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("MustNewRegistry() did not panic on invalid entry")
		}
	}()
	MustNewRegistry(RegistryEntry{Class: "A", BaseCode: 1})
}

package errx

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestFormat_UserString(t *testing.T) {
	f := MustNew("Foo", WithCodes(map[string]string{"100": "foo error"}))

	t.Run("with errx.Error", func(t *testing.T) {
		err := f.Build(Occurrence{Code: 100})
		if UserString(err) != "Foo Error: foo error" {
			t.Errorf("UserString(err) = %q, want %q", UserString(err), "Foo Error: foo error")
		}
	})
	t.Run("with wrapped errx.Error", func(t *testing.T) {
		err := fmt.Errorf("outer: %w", f.Build(Occurrence{Message: "inner"}))
		if UserString(err) != "Foo Error: inner" {
			t.Errorf("UserString(err) = %q, want %q", UserString(err), "Foo Error: inner")
		}
	})
	t.Run("with nil error", func(t *testing.T) {
		if UserString(nil) != "" {
			t.Errorf("UserString(nil) = %q, want empty string", UserString(nil))
		}
	})
	t.Run("with non-errx error", func(t *testing.T) {
		err := errors.New("standard error")
		if UserString(err) != "standard error" {
			t.Errorf("UserString(err) = %q, want %q", UserString(err), "standard error")
		}
	})
}

func TestFormat_IsError(t *testing.T) {
	t.Run("with errx.Error", func(t *testing.T) {
		err := MustNew("Foo").Build(Occurrence{})
		if !IsError(err) {
			t.Errorf("IsError(err) = %v, want %v", IsError(err), true)
		}
	})
	t.Run("with non-errx.Error", func(t *testing.T) {
		if IsError(errors.New("test")) {
			t.Errorf("IsError(err) = true, want false")
		}
	})
	t.Run("with nil error", func(t *testing.T) {
		if IsError(nil) {
			t.Errorf("IsError(nil) = true, want false")
		}
	})
}

func TestFormat_CodeOf(t *testing.T) {
	if _, ok := CodeOf(errors.New("plain")); ok {
		t.Errorf("CodeOf(plain) ok = true, want false")
	}
	code, ok := CodeOf(fmt.Errorf("wrapped: %w", MustNew(ClassImmutableAppComponent).Build(Occurrence{})))
	if !ok || code != 20000 {
		t.Errorf("CodeOf(wrapped) = %d, %v, want 20000, true", code, ok)
	}
}

func TestFormat_DebugString(t *testing.T) {
	f := MustNew(ClassImmutableAppComponent, WithCodes(map[string]string{"100": "foo error"}))

	t.Run("with errx.Error", func(t *testing.T) {
		err := f.Build(Occurrence{})
		got := DebugString(err)
		want := "1: *errx.Error: ImmutableAppComponent Error | class=ImmutableAppComponent | code=20000"
		if got != want {
			t.Errorf("DebugString(err) = %q, want %q", got, want)
		}
	})
	t.Run("with internal code and data", func(t *testing.T) {
		err := f.Build(Occurrence{Code: 100, Data: map[string]any{"b": 2, "a": "x"}})
		got := DebugString(err)
		want := "1: *errx.Error: ImmutableAppComponent Error: foo error | class=ImmutableAppComponent | code=20100 | internal=100 | data={a=x, b=2}"
		if got != want {
			t.Errorf("DebugString(err) = %q, want %q", got, want)
		}
	})
	t.Run("with original chain", func(t *testing.T) {
		err := f.Build(Occurrence{Original: errors.New("bar")})
		got := DebugString(err)
		lines := strings.Split(got, "\n")
		if len(lines) != 2 {
			t.Fatalf("DebugString(err) = %q, want 2 lines", got)
		}
		if lines[1] != "2: *errors.errorString: bar" {
			t.Errorf("DebugString(err) line 2 = %q, want %q", lines[1], "2: *errors.errorString: bar")
		}
	})
	t.Run("with multi-line message", func(t *testing.T) {
		err := f.Build(Occurrence{Message: "first\nsecond"})
		want := `1: *errx.Error: ImmutableAppComponent Error: first\nsecond | class=ImmutableAppComponent | code=20000`
		if got := DebugString(err); got != want {
			t.Errorf("DebugString(err) = %q, want %q", got, want)
		}
	})
	t.Run("with nil error", func(t *testing.T) {
		if DebugString(nil) != "" {
			t.Errorf("DebugString(nil) = %q, want empty", DebugString(nil))
		}
	})
	t.Run("with joined errors", func(t *testing.T) {
		err := errors.Join(errors.New("one"), errors.New("two"))
		lines := strings.Split(DebugString(err), "\n")
		if len(lines) != 3 {
			t.Fatalf("DebugString(joined) = %v, want 3 lines", lines)
		}
		if want := `1: *errors.joinError: one\ntwo`; lines[0] != want {
			t.Errorf("DebugString(joined) line 1 = %q, want %q", lines[0], want)
		}
		if want := "3: *errors.errorString: two"; lines[2] != want {
			t.Errorf("DebugString(joined) line 3 = %q, want %q", lines[2], want)
		}
	})
}

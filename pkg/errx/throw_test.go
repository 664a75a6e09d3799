package errx

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssert_True(t *testing.T) {
	f := newFooFactory(t, "Foo")
	assert.NotPanics(t, func() {
		f.Assert(true, Occurrence{})
		f.Assert(true, Occurrence{Code: 100, Message: "unused"})
	})
}

func TestAssert_False(t *testing.T) {
	f := newFooFactory(t, "Foo")
	original := errors.New("bar")
	o := Occurrence{
		Instance: map[string]any{"foo": "foo"},
		Code:     100,
		Message:  "foobar",
		Original: original,
		Data:     map[string]any{"foo": true},
	}

	var thrown *Error
	func() {
		defer func() {
			var ok bool
			thrown, ok = recover().(*Error)
			require.True(t, ok, "Assert(false) must panic with *Error")
		}()
		f.Assert(false, o)
	}()

	require.NotNil(t, thrown)
	assert.Equal(t, "Foo.foo Error: foobar", thrown.Message())
	assert.Equal(t, CodeUnregistered, thrown.Code())
	assert.Equal(t, true, thrown.Data()["foo"])
	internal, _ := thrown.InternalCode()
	assert.Equal(t, 100, internal)
	assert.Equal(t, map[string]any{OriginalKeyMessage: "bar"}, thrown.Data()[DataKeyOriginal])

	built := f.Build(o)
	assert.Equal(t, built.Message(), thrown.Message())
	assert.Equal(t, built.Code(), thrown.Code())
	if diff := cmp.Diff(built.Data(), thrown.Data()); diff != "" {
		t.Errorf("thrown data differs from Build (-build +thrown):\n%s", diff)
	}
	assert.Same(t, original, thrown.Unwrap())
}

func TestThrow(t *testing.T) {
	f := newFooFactory(t, ClassImmutableAppComponent)

	var thrown *Error
	func() {
		defer func() {
			var ok bool
			thrown, ok = recover().(*Error)
			require.True(t, ok, "Throw must panic with *Error")
		}()
		f.Throw(Occurrence{Code: 100})
	}()

	built := f.Build(Occurrence{Code: 100})
	require.NotNil(t, thrown)
	assert.NotSame(t, built, thrown)
	assert.Equal(t, built.Message(), thrown.Message())
	assert.Equal(t, 20100, thrown.Code())
	if diff := cmp.Diff(built.Data(), thrown.Data()); diff != "" {
		t.Errorf("thrown data differs from Build (-build +thrown):\n%s", diff)
	}
}

func TestCheck(t *testing.T) {
	f := newFooFactory(t, ClassImmutableAppComponent)

	assert.NoError(t, f.Check(true, Occurrence{Code: 100}))

	err := f.Check(false, Occurrence{Code: 100})
	require.Error(t, err)
	code, ok := CodeOf(err)
	assert.True(t, ok)
	assert.Equal(t, 20100, code)
	assert.Equal(t, "ImmutableAppComponent Error: foo error", err.Error())
}

func TestCatch(t *testing.T) {
	f := newFooFactory(t, ClassImmutableAppComponent)

	run := func(cond bool) (err error) {
		defer Catch(&err)
		f.Assert(cond, Occurrence{Code: 100})
		return nil
	}

	assert.NoError(t, run(true))

	err := run(false)
	require.Error(t, err)
	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, 20100, e.Code())
}

func TestCatch_RepanicsForeignValues(t *testing.T) {
	assert.PanicsWithValue(t, "boom", func() {
		var err error
		func() {
			defer Catch(&err)
			panic("boom")
		}()
	})
}

package errx

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/imdario/mergo"
	pkgerrors "github.com/pkg/errors"
)

// Occurrence carries the per-call arguments of Build, Check, Assert and
// Throw. Every field is optional.
type Occurrence struct {
	// Instance is the value on whose behalf the error is raised. When the
	// factory has a name property, Instance may supply a display name.
	Instance any

	// Code is the internal code, as an integer or decimal string. Codes not
	// in the factory code table are ignored.
	Code any

	// Message overrides the default message of Code and the message of
	// Original when non-empty.
	Message string

	// Original is the error being wrapped.
	Original error

	// Data is deep merged into the error data. Nested maps with string keys
	// are stored as map[string]any.
	Data map[string]any
}

// Build constructs the error for o. It never fails.
func (f *Factory) Build(o Occurrence) *Error {
	internal, hasInternal := f.resolveCode(o.Code)

	original := o.Original
	if original != nil && isNil(reflect.ValueOf(original)) {
		original = nil
	}

	var msg strings.Builder
	msg.WriteString(f.class)
	if f.nameProperty != "" {
		if name, ok := instanceName(o.Instance, f.nameProperty); ok {
			msg.WriteByte('.')
			msg.WriteString(name)
		}
	}
	msg.WriteString(" Error")
	switch {
	case o.Message != "":
		msg.WriteString(": ")
		msg.WriteString(o.Message)
	case hasInternal:
		msg.WriteString(": ")
		msg.WriteString(f.codes[internal.key])
	case original != nil:
		msg.WriteString(": ")
		msg.WriteString(original.Error())
	}

	data := make(map[string]any)
	var snap map[string]any
	if original != nil {
		snap = snapshot(original)
		data[DataKeyOriginal] = snap
	}
	if len(o.Data) > 0 {
		data = mergeData(data, o.Data)
	}
	if snap != nil {
		// caller data may extend the snapshot but never replace it
		if _, ok := data[DataKeyOriginal].(map[string]any); !ok {
			data[DataKeyOriginal] = snap
		}
	}
	if hasInternal {
		data[DataKeyInternalCode] = internal.value
	}

	code := CodeUnregistered
	if f.hasBase {
		code = f.baseCode
		if hasInternal {
			code += internal.value
		}
	}

	return &Error{
		class:   f.class,
		message: msg.String(),
		code:    code,
		data:    data,
		cause:   original,
	}
}

// Wrap builds an error chaining original under code.
func (f *Factory) Wrap(original error, code any) *Error {
	return f.Build(Occurrence{Code: code, Original: original})
}

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// snapshot copies the code, data, message and stack of err. Fields err does
// not expose are left out.
func snapshot(err error) map[string]any {
	snap := map[string]any{
		OriginalKeyMessage: err.Error(),
	}
	switch typed := err.(type) {
	case interface{ Code() int }:
		snap[OriginalKeyCode] = typed.Code()
	case interface{ Code() string }:
		snap[OriginalKeyCode] = typed.Code()
	}
	if withData, ok := err.(interface{ Data() map[string]any }); ok {
		if data := withData.Data(); data != nil {
			snap[OriginalKeyData] = cloneData(data)
		}
	}
	if tracer, ok := err.(stackTracer); ok {
		snap[OriginalKeyStack] = fmt.Sprintf("%+v", tracer.StackTrace())
	}
	return snap
}

// mergeData deep merges src into dst; keys of src win. src is normalized
// first so mergo only walks pairs of map[string]any; every other src value
// replaces the dst value outright.
func mergeData(dst, src map[string]any) map[string]any {
	src = normalizeData(src)
	dropShadowed(dst, src)
	if err := mergo.Merge(&dst, src, mergo.WithOverride); err != nil {
		for key, value := range src {
			dst[key] = value
		}
	}
	return dst
}

// normalizeData deep copies data, turning every map with string keys into
// a map[string]any. Maps with other key types stay opaque values.
func normalizeData(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for key, value := range data {
		out[key] = normalizeValue(value)
	}
	return out
}

func normalizeValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return normalizeData(typed)
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = normalizeValue(item)
		}
		return out
	}
	v := reflect.ValueOf(value)
	if v.Kind() != reflect.Map || v.Type().Key().Kind() != reflect.String || v.IsNil() {
		return value
	}
	out := make(map[string]any, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = normalizeValue(iter.Value().Interface())
	}
	return out
}

// dropShadowed removes every key of dst that src overrides, except where
// both sides hold a map[string]any, which are walked recursively.
func dropShadowed(dst, src map[string]any) {
	for key, value := range src {
		current, exists := dst[key]
		if !exists {
			continue
		}
		srcMap, srcOK := value.(map[string]any)
		dstMap, dstOK := current.(map[string]any)
		if srcOK && dstOK {
			dropShadowed(dstMap, srcMap)
			continue
		}
		delete(dst, key)
	}
}

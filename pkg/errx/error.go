package errx

import (
	"encoding/json"
	"errors"
)

// Data keys set by Build.
const (
	DataKeyInternalCode = "internalCode"
	DataKeyOriginal     = "original"
)

// Keys of the original error snapshot stored under DataKeyOriginal.
const (
	OriginalKeyCode    = "code"
	OriginalKeyData    = "data"
	OriginalKeyMessage = "message"
	OriginalKeyStack   = "stack"
)

// Error is an error built by a Factory. It is never modified after Build
// returns; accessors hand out copies.
type Error struct {
	class   string
	message string
	code    int
	data    map[string]any
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.message
}

// Unwrap returns the original error the error was built from, if any.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Is reports whether target is an *Error of the same class and code.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	var t *Error
	if !errors.As(target, &t) || t == nil {
		return false
	}
	return t.class == e.class && t.code == e.code
}

// Class returns the class the error was built for.
func (e *Error) Class() string {
	if e == nil {
		return ""
	}
	return e.class
}

// Message returns the assembled message.
func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

// Code returns the final numeric code.
func (e *Error) Code() int {
	if e == nil {
		return 0
	}
	return e.code
}

// Data returns a deep copy of the attached data. It is never nil.
func (e *Error) Data() map[string]any {
	if e == nil {
		return map[string]any{}
	}
	return cloneData(e.data)
}

// InternalCode returns the resolved 100-999 subcode.
func (e *Error) InternalCode() (int, bool) {
	if e == nil {
		return 0, false
	}
	code, ok := e.data[DataKeyInternalCode].(int)
	return code, ok
}

// Original returns the wrapped original error, if any.
func (e *Error) Original() error {
	return e.Unwrap()
}

// WithData returns a copy of the error with key set in its data.
// The internal code cannot be replaced.
func (e *Error) WithData(key string, value any) *Error {
	if e == nil {
		return nil
	}
	clone := &Error{
		class:   e.class,
		message: e.message,
		code:    e.code,
		cause:   e.cause,
		data:    cloneData(e.data),
	}
	if key == DataKeyInternalCode {
		return clone
	}
	clone.data[key] = cloneValue(value)
	return clone
}

type errorJSON struct {
	Class   string         `json:"class"`
	Message string         `json:"message"`
	Code    int            `json:"code"`
	Data    map[string]any `json:"data"`
}

// MarshalJSON encodes the class, message, code and data of the error.
func (e *Error) MarshalJSON() ([]byte, error) {
	if e == nil {
		return []byte("null"), nil
	}
	return json.Marshal(errorJSON{
		Class:   e.class,
		Message: e.message,
		Code:    e.code,
		Data:    e.Data(),
	})
}

func cloneData(data map[string]any) map[string]any {
	clone := make(map[string]any, len(data))
	for key, value := range data {
		clone[key] = cloneValue(value)
	}
	return clone
}

func cloneValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return cloneData(typed)
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return value
	}
}

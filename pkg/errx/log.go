package errx

import (
	"errors"
	"sort"

	"github.com/go-logr/logr"
	"go.uber.org/zap"
)

// Fields returns the structured fields of err as ordered key/value pairs:
// error.class, error.code, error.message, error.internal_code when set,
// error.data.<key> for caller data and error.cause for the original error.
// It returns nil when err is not an *Error.
func Fields(err error) []any {
	var e *Error
	if !errors.As(err, &e) || e == nil {
		return nil
	}
	kv := []any{
		"error.class", e.class,
		"error.code", e.code,
		"error.message", e.message,
	}
	if internal, ok := e.InternalCode(); ok {
		kv = append(kv, "error.internal_code", internal)
	}
	data := dataWithoutBuiltins(e.data)
	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		kv = append(kv, "error.data."+key, data[key])
	}
	if e.cause != nil {
		kv = append(kv, "error.cause", e.cause.Error())
	}
	return kv
}

// LogZap logs err at error level with its structured fields.
// Errors that are not *Error are logged with zap.Error only.
func LogZap(logger *zap.Logger, err error, msg string) {
	if logger == nil || err == nil {
		return
	}
	kv := Fields(err)
	if kv == nil {
		logger.Error(msg, zap.Error(err))
		return
	}
	fields := make([]zap.Field, 0, len(kv)/2+1)
	for i := 0; i+1 < len(kv); i += 2 {
		fields = append(fields, zap.Any(kv[i].(string), kv[i+1]))
	}
	fields = append(fields, zap.Error(err))
	logger.Error(msg, fields...)
}

// LogR logs err through a logr.Logger with the same fields as LogZap.
func LogR(logger logr.Logger, err error, msg string) {
	if err == nil {
		return
	}
	kv := Fields(err)
	if kv == nil {
		logger.Error(err, msg)
		return
	}
	logger.Error(err, msg, kv...)
}

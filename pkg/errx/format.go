package errx

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// UserString returns the message of the first *Error in the chain, or
// err.Error() for other errors.
func UserString(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) && e != nil {
		return e.message
	}
	return err.Error()
}

// IsError checks if the given error is or wraps an *Error.
func IsError(err error) bool {
	if err == nil {
		return false
	}
	var e *Error
	return errors.As(err, &e)
}

// CodeOf returns the final code of the first *Error in the chain.
func CodeOf(err error) (int, bool) {
	var e *Error
	if !errors.As(err, &e) || e == nil {
		return 0, false
	}
	return e.code, true
}

// DebugString returns a verbose error string with codes, data, and chain.
func DebugString(err error) string {
	if err == nil {
		return ""
	}
	chain := flattenChain(err)
	var b strings.Builder
	for i, item := range chain {
		if i > 0 {
			b.WriteByte('\n')
		}
		switch typed := item.(type) {
		case *Error:
			b.WriteString(fmt.Sprintf("%d: %T: %s", i+1, typed, oneLine(typed.Error())))
			b.WriteString(fmt.Sprintf(" | class=%s | code=%d", typed.class, typed.code))
			if internal, ok := typed.InternalCode(); ok {
				b.WriteString(fmt.Sprintf(" | internal=%d", internal))
			}
			if data := dataWithoutBuiltins(typed.data); len(data) > 0 {
				b.WriteString(" | data={")
				b.WriteString(formatData(data))
				b.WriteByte('}')
			}
		default:
			b.WriteString(fmt.Sprintf("%d: %T: %s", i+1, item, oneLine(item.Error())))
		}
	}
	return b.String()
}

// oneLine escapes line breaks so each chain entry stays on one line.
func oneLine(s string) string {
	return strings.NewReplacer("\r", `\r`, "\n", `\n`).Replace(s)
}

func flattenChain(err error) []error {
	var out []error
	queue := []error{err}
	const maxEntries = 64
	for len(queue) > 0 && len(out) < maxEntries {
		current := queue[0]
		queue = queue[1:]
		if current == nil {
			continue
		}
		out = append(out, current)
		queue = append(queue, unwrapAll(current)...)
	}
	return out
}

func unwrapAll(err error) []error {
	switch unwrapped := err.(type) {
	case interface{ Unwrap() []error }:
		return unwrapped.Unwrap()
	case interface{ Unwrap() error }:
		if next := unwrapped.Unwrap(); next != nil {
			return []error{next}
		}
	}
	return nil
}

// dataWithoutBuiltins drops the keys DebugString already renders from the
// chain itself.
func dataWithoutBuiltins(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for key, value := range data {
		if key == DataKeyInternalCode || key == DataKeyOriginal {
			continue
		}
		out[key] = value
	}
	return out
}

func formatData(data map[string]any) string {
	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", key, data[key]))
	}
	return strings.Join(parts, ", ")
}

package errx

import (
	"math"
	"reflect"
	"strconv"
)

const (
	minInternalCode = 100
	maxInternalCode = 999
)

type internalCode struct {
	key   string
	value int
}

// normalizeCode converts a caller supplied code to the decimal string form
// used as code table key. Integers, integral floats and strings (including
// named types over them) are accepted.
func normalizeCode(code any) (string, bool) {
	if code == nil {
		return "", false
	}
	v := reflect.ValueOf(code)
	switch v.Kind() {
	case reflect.String:
		return v.String(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(v.Uint(), 10), true
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if f != math.Trunc(f) || math.IsInf(f, 0) || f > math.MaxInt32 || f < math.MinInt32 {
			return "", false
		}
		return strconv.FormatInt(int64(f), 10), true
	default:
		return "", false
	}
}

// resolveCode returns the internal code when code is a key of the code table.
func (f *Factory) resolveCode(code any) (internalCode, bool) {
	key, ok := normalizeCode(code)
	if !ok {
		return internalCode{}, false
	}
	if _, exists := f.codes[key]; !exists {
		return internalCode{}, false
	}
	value, err := strconv.Atoi(key)
	if err != nil {
		return internalCode{}, false
	}
	return internalCode{key: key, value: value}, true
}

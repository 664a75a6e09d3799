package errx

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/iancoleman/strcase"
)

// PropertyGetter lets an instance expose named properties without reflection.
type PropertyGetter interface {
	Property(name string) (any, bool)
}

// instanceName returns the display name stored under prop on instance.
// Maps with string keys, structs and pointers to them are supported; a nil
// value counts as undefined.
func instanceName(instance any, prop string) (string, bool) {
	if instance == nil || prop == "" {
		return "", false
	}
	if getter, ok := instance.(PropertyGetter); ok {
		value, ok := getter.Property(prop)
		if !ok || isNil(reflect.ValueOf(value)) {
			return "", false
		}
		return fmt.Sprint(value), true
	}

	v := reflect.ValueOf(instance)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return "", false
		}
		v = v.Elem()
	}

	var value reflect.Value
	switch v.Kind() {
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return "", false
		}
		value = v.MapIndex(reflect.ValueOf(prop).Convert(v.Type().Key()))
	case reflect.Struct:
		value = structField(v, prop)
	default:
		return "", false
	}

	if !value.IsValid() || isNil(value) || !value.CanInterface() {
		return "", false
	}
	return fmt.Sprint(value.Interface()), true
}

// structField finds the exported field named by prop: exact name first, then
// an errx, json or yaml tag, then the CamelCase form of prop.
func structField(v reflect.Value, prop string) reflect.Value {
	t := v.Type()
	if sf, ok := t.FieldByName(prop); ok && sf.IsExported() {
		return v.FieldByIndex(sf.Index)
	}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		for _, key := range []string{"errx", "json", "yaml"} {
			if tagName(sf.Tag.Get(key)) == prop {
				return v.Field(i)
			}
		}
	}
	camel := strcase.ToCamel(prop)
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.IsExported() && (sf.Name == camel || strings.EqualFold(sf.Name, prop)) {
			return v.Field(i)
		}
	}
	return reflect.Value{}
}

func tagName(tag string) string {
	name, _, _ := strings.Cut(tag, ",")
	return name
}

func isNil(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

package oscaltypes

import (
	"reflect"
	"strings"
)

// resolveStructKey returns the document key of a struct field.
// Priority: json tag name > yaml tag name > field name; "-" disables the field.
func resolveStructKey(sf reflect.StructField) string {
	for _, tag := range []string{"json", "yaml"} {
		t, ok := sf.Tag.Lookup(tag)
		if !ok {
			continue
		}
		if t == "-" {
			return "-"
		}
		if i := strings.IndexByte(t, ','); i >= 0 {
			t = t[:i]
		}
		if t != "" {
			return t
		}
	}
	return sf.Name
}

// structFields maps document keys to field indexes for the exported fields of t.
func structFields(t reflect.Type) map[string]int {
	out := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		if k := resolveStructKey(sf); k != "-" {
			out[k] = i
		}
	}
	return out
}

// Package textconv renders arbitrary submitted values as text the same way
// across the field, form and HTTP helper packages.
package textconv

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// String converts a value to its display text. Booleans render as
// True/False, whole floats keep a trailing ".0" and sequences render as a
// bracketed, comma separated list.
func String(value any) string {
	switch v := value.(type) {
	case nil:
		return "None"
	case string:
		return v
	case []byte:
		return string(v)
	case bool:
		if v {
			return "True"
		}
		return "False"
	case int:
		return strconv.Itoa(v)
	case int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(v).Int(), 10)
	case uint, uint8, uint16, uint32, uint64:
		return strconv.FormatUint(reflect.ValueOf(v).Uint(), 10)
	case float32:
		return Float(float64(v))
	case float64:
		return Float(v)
	case fmt.Stringer:
		return v.String()
	case error:
		return v.Error()
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		items := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			items = append(items, Repr(rv.Index(i).Interface()))
		}
		return "[" + strings.Join(items, ", ") + "]"
	case reflect.Pointer:
		if rv.IsNil() {
			return "None"
		}
		return String(rv.Elem().Interface())
	}
	return fmt.Sprint(value)
}

// Repr is like String but quotes text values, which is how elements of a
// list are shown.
func Repr(value any) string {
	switch v := value.(type) {
	case string:
		return Quote(v)
	case []byte:
		return Quote(string(v))
	}
	return String(value)
}

// Quote wraps s in single quotes, switching to double quotes when s holds a
// single quote and no double quote.
func Quote(s string) string {
	quote := byte('\'')
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		quote = '"'
	}

	var b strings.Builder
	b.WriteByte(quote)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == quote || c == '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case c == '\n':
			b.WriteString(`\n`)
		case c == '\r':
			b.WriteString(`\r`)
		case c == '\t':
			b.WriteString(`\t`)
		case c < 0x20 || c == 0x7f:
			fmt.Fprintf(&b, `\x%02x`, c)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte(quote)
	return b.String()
}

// Float formats f with the shortest exact representation, keeping ".0" on
// whole numbers.
func Float(f float64) string {
	out := strconv.FormatFloat(f, 'f', -1, 64)
	if strings.ContainsAny(out, ".NI") {
		return out
	}
	return out + ".0"
}

// IsEmpty reports whether value is one of the empty inputs: nil or "".
func IsEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return true
	}
	return false
}

// Truthy reports the truth value of an arbitrary input: zero numbers, empty
// text, empty collections and nil are false.
func Truthy(value any) bool {
	if value == nil {
		return false
	}
	if t, ok := value.(interface{ Truthy() bool }); ok {
		return t.Truthy()
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() > 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	}
	return true
}

// Sequence returns the elements of a slice or array value. ok is false for
// any other kind, including strings.
func Sequence(value any) ([]any, bool) {
	if value == nil {
		return nil, false
	}
	if items, ok := value.([]any); ok {
		return items, true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return nil, false
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out, true
	}
	return nil, false
}

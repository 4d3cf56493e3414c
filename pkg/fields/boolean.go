package fields

import (
	"mime/multipart"
	"net/url"
	"reflect"
	"strings"

	"github.com/goliatone/go-formfields/internal/textconv"
)

// BooleanField returns true or false. The strings "False" and "0" are
// false, as submitted by hidden inputs and radio buttons; anything else
// follows ordinary truthiness. A required BooleanField must be true.
type BooleanField struct {
	Base
}

// NewBooleanField constructs a BooleanField.
func NewBooleanField(opts ...Option) *BooleanField {
	return &BooleanField{Base: newBase(nil, opts)}
}

// Kind implements Field.
func (f *BooleanField) Kind() string { return KindBoolean }

// Clean implements Field.
func (f *BooleanField) Clean(value any) (any, error) {
	var checked bool
	if text, ok := value.(string); ok && (text == "False" || text == "0") {
		checked = false
	} else {
		checked = textconv.Truthy(value)
	}
	if !checked && f.required {
		return nil, f.fail(CodeRequired)
	}
	return checked, nil
}

// ValueFromData reads a checkbox: a missing key is false and the strings
// "true" and "false" are recognised in any case.
func (f *BooleanField) ValueFromData(data url.Values, _ map[string][]*multipart.FileHeader, name string) any {
	values, ok := data[name]
	if !ok || len(values) == 0 {
		return false
	}
	value := values[len(values)-1]
	switch strings.ToLower(value) {
	case "true":
		return true
	case "false":
		return false
	}
	return value
}

// NullBooleanField returns true, false or nil for unknown. It never
// fails.
type NullBooleanField struct {
	Base
}

// NewNullBooleanField constructs a NullBooleanField. It is never required.
func NewNullBooleanField(opts ...Option) *NullBooleanField {
	field := &NullBooleanField{Base: newBase(nil, opts)}
	field.required = false
	return field
}

// Kind implements Field.
func (f *NullBooleanField) Kind() string { return KindNullBoolean }

// Clean implements Field.
func (f *NullBooleanField) Clean(value any) (any, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		switch v {
		case "True", "1":
			return true, nil
		case "False", "0":
			return false, nil
		}
		return nil, nil
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		switch textconv.String(value) {
		case "1", "1.0":
			return true, nil
		case "0", "0.0":
			return false, nil
		}
	}
	return nil, nil
}

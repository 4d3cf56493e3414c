package fields

import (
	"mime/multipart"
	"net/url"
	"strconv"
)

// DataReader is implemented by fields that read submitted data in a way
// other than taking the last value of their own key.
type DataReader interface {
	ValueFromData(data url.Values, files map[string][]*multipart.FileHeader, name string) any
}

// ValueFromData extracts the raw value for field under name. Missing keys
// yield nil.
func ValueFromData(field Field, data url.Values, files map[string][]*multipart.FileHeader, name string) any {
	if reader, ok := field.(DataReader); ok {
		return reader.ValueFromData(data, files, name)
	}
	values, ok := data[name]
	if !ok || len(values) == 0 {
		return nil
	}
	return values[len(values)-1]
}

// ValueFromData returns every value submitted under name.
func (f *MultipleChoiceField) ValueFromData(data url.Values, _ map[string][]*multipart.FileHeader, name string) any {
	values, ok := data[name]
	if !ok {
		return nil
	}
	return append([]string(nil), values...)
}

// ValueFromData reads name_0, name_1, ... one per sub-field.
func (f *MultiValueField) ValueFromData(data url.Values, files map[string][]*multipart.FileHeader, name string) any {
	out := make([]any, len(f.fields))
	for i, field := range f.fields {
		out[i] = ValueFromData(field, data, files, name+"_"+strconv.Itoa(i))
	}
	return out
}

// ValueFromData returns the first file uploaded under name.
func (f *FileField) ValueFromData(_ url.Values, files map[string][]*multipart.FileHeader, name string) any {
	headers := files[name]
	if len(headers) == 0 || headers[0] == nil {
		return nil
	}
	return FromFileHeader(headers[0])
}

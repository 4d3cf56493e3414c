package fields

import (
	"context"
	"errors"

	"cloud.google.com/go/civil"

	"github.com/goliatone/go-formfields/internal/textconv"
)

// ComboField runs every sub-field against the same value and returns the
// last result. The first failure wins. Sub-fields are made optional; the
// combo's own required setting applies.
type ComboField struct {
	Base
	fields []Field
}

// NewComboField constructs a ComboField.
func NewComboField(fields []Field, opts ...Option) *ComboField {
	for _, field := range fields {
		makeOptional(field)
	}
	return &ComboField{
		Base:   newBase(nil, opts),
		fields: append([]Field(nil), fields...),
	}
}

// Kind implements Field.
func (f *ComboField) Kind() string { return KindCombo }

// Fields returns the sub-fields.
func (f *ComboField) Fields() []Field { return append([]Field(nil), f.fields...) }

// Clean implements Field.
func (f *ComboField) Clean(value any) (any, error) {
	return f.CleanContext(context.Background(), value)
}

// CleanContext implements ContextCleaner.
func (f *ComboField) CleanContext(ctx context.Context, value any) (any, error) {
	if err := f.checkRequired(value); err != nil {
		return nil, err
	}
	for _, field := range f.fields {
		cleaned, err := Clean(ctx, field, value)
		if err != nil {
			return nil, err
		}
		value = cleaned
	}
	return value, nil
}

// CompressFunc merges the cleaned values of a MultiValueField. It receives
// an empty slice when no value was given.
type CompressFunc func(values []any) (any, error)

// MultiValueField cleans a sequence value element by element, each with
// its own sub-field, then compresses the results into one value.
type MultiValueField struct {
	Base
	fields   []Field
	compress CompressFunc
}

// NewMultiValueField constructs a MultiValueField. Sub-fields are made
// optional; a required MultiValueField rejects any empty element itself.
// A nil compress returns the cleaned slice.
func NewMultiValueField(fields []Field, compress CompressFunc, opts ...Option) *MultiValueField {
	return newMultiValueField(fields, compress, nil, opts)
}

func newMultiValueField(fields []Field, compress CompressFunc, defaults map[string]string, opts []Option) *MultiValueField {
	messages := map[string]string{CodeInvalid: "Enter a list of values."}
	for code, message := range defaults {
		messages[code] = message
	}
	for _, field := range fields {
		makeOptional(field)
	}
	if compress == nil {
		compress = func(values []any) (any, error) {
			if len(values) == 0 {
				return nil, nil
			}
			return values, nil
		}
	}
	return &MultiValueField{
		Base:     newBase(messages, opts),
		fields:   append([]Field(nil), fields...),
		compress: compress,
	}
}

// Kind implements Field.
func (f *MultiValueField) Kind() string { return KindMultiValue }

// Fields returns the sub-fields.
func (f *MultiValueField) Fields() []Field { return append([]Field(nil), f.fields...) }

// Clean implements Field.
func (f *MultiValueField) Clean(value any) (any, error) {
	return f.CleanContext(context.Background(), value)
}

// CleanContext implements ContextCleaner. Errors from every sub-field are
// collected in order.
func (f *MultiValueField) CleanContext(ctx context.Context, value any) (any, error) {
	var items []any
	if textconv.Truthy(value) {
		seq, ok := textconv.Sequence(value)
		if !ok {
			return nil, f.fail(CodeInvalid)
		}
		items = seq
	}

	if allEmpty(items) {
		if f.required {
			return nil, f.fail(CodeRequired)
		}
		return f.compressed([]any{})
	}

	cleaned := make([]any, 0, len(f.fields))
	var messages []string
	for i, field := range f.fields {
		var item any
		if i < len(items) {
			item = items[i]
		}
		if f.required && textconv.IsEmpty(item) {
			return nil, f.fail(CodeRequired)
		}
		out, err := Clean(ctx, field, item)
		if err != nil {
			var verr *ValidationError
			if !errors.As(err, &verr) {
				return nil, err
			}
			messages = append(messages, verr.Messages...)
			continue
		}
		cleaned = append(cleaned, out)
	}
	if len(messages) > 0 {
		return nil, NewValidationError(messages...)
	}
	return f.compressed(cleaned)
}

func (f *MultiValueField) compressed(values []any) (any, error) {
	out, err := f.compress(values)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return nil, verr
		}
		return nil, f.fail(CodeInvalid)
	}
	return out, nil
}

func allEmpty(items []any) bool {
	for _, item := range items {
		if !textconv.IsEmpty(item) {
			return false
		}
	}
	return true
}

// SplitDateTimeConfig configures the date and time halves.
type SplitDateTimeConfig struct {
	DateInputFormats []string
	TimeInputFormats []string
}

// SplitDateTimeField takes a [date, time] pair and returns civil.DateTime,
// or nil when both halves are empty on an optional field.
type SplitDateTimeField struct {
	MultiValueField
}

// NewSplitDateTimeField constructs a SplitDateTimeField.
func NewSplitDateTimeField(cfg SplitDateTimeConfig, opts ...Option) *SplitDateTimeField {
	messages := map[string]string{
		CodeInvalidDate: "Enter a valid date.",
		CodeInvalidTime: "Enter a valid time.",
	}
	scratch := newBase(messages, opts)

	date := NewDateField(DateConfig{InputFormats: cfg.DateInputFormats},
		ErrorMessages(map[string]string{CodeInvalid: scratch.Message(CodeInvalidDate)}))
	clock := NewTimeField(TimeConfig{InputFormats: cfg.TimeInputFormats},
		ErrorMessages(map[string]string{CodeInvalid: scratch.Message(CodeInvalidTime)}))

	field := &SplitDateTimeField{}
	field.MultiValueField = *newMultiValueField([]Field{date, clock}, field.combine, messages, opts)
	return field
}

// Kind implements Field.
func (f *SplitDateTimeField) Kind() string { return KindSplitDateTime }

func (f *SplitDateTimeField) combine(values []any) (any, error) {
	if len(values) == 0 {
		return nil, nil
	}
	if len(values) < 2 || textconv.IsEmpty(values[0]) {
		return nil, f.fail(CodeInvalidDate)
	}
	if textconv.IsEmpty(values[1]) {
		return nil, f.fail(CodeInvalidTime)
	}
	date, okDate := values[0].(civil.Date)
	clock, okTime := values[1].(civil.Time)
	if !okDate {
		return nil, f.fail(CodeInvalidDate)
	}
	if !okTime {
		return nil, f.fail(CodeInvalidTime)
	}
	return civil.DateTime{Date: date, Time: clock}, nil
}

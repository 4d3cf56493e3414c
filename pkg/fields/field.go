package fields

import (
	"context"
	"strings"

	"github.com/goliatone/go-formfields/internal/textconv"
)

// Field kinds reported by Kind.
const (
	KindChar           = "char"
	KindInteger        = "integer"
	KindFloat          = "float"
	KindDecimal        = "decimal"
	KindDate           = "date"
	KindTime           = "time"
	KindDateTime       = "datetime"
	KindRegex          = "regex"
	KindEmail          = "email"
	KindURL            = "url"
	KindBoolean        = "boolean"
	KindNullBoolean    = "nullboolean"
	KindChoice         = "choice"
	KindTypedChoice    = "typedchoice"
	KindMultipleChoice = "multiplechoice"
	KindCombo          = "combo"
	KindMultiValue     = "multivalue"
	KindSplitDateTime  = "splitdatetime"
	KindFile           = "file"
	KindFilePath       = "filepath"
)

// Error codes used as keys for ErrorMessages overrides.
const (
	CodeRequired         = "required"
	CodeInvalid          = "invalid"
	CodeMaxLength        = "max_length"
	CodeMinLength        = "min_length"
	CodeMaxValue         = "max_value"
	CodeMinValue         = "min_value"
	CodeMaxDigits        = "max_digits"
	CodeMaxDecimalPlaces = "max_decimal_places"
	CodeMaxWholeDigits   = "max_whole_digits"
	CodeInvalidLink      = "invalid_link"
	CodeInvalidChoice    = "invalid_choice"
	CodeInvalidList      = "invalid_list"
	CodeInvalidDate      = "invalid_date"
	CodeInvalidTime      = "invalid_time"
	CodeEmpty            = "empty"
)

// Field cleans one raw value.
type Field interface {
	// Clean validates value and returns its normalised form.
	Clean(value any) (any, error)
	IsRequired() bool
	Kind() string
	Meta() Meta
}

// ContextCleaner is implemented by fields whose validation performs I/O.
type ContextCleaner interface {
	CleanContext(ctx context.Context, value any) (any, error)
}

// Chooser is implemented by fields restricted to a list of choices.
type Chooser interface {
	Choices() []Choice
}

// Meta describes the presentation settings of a field.
type Meta struct {
	Label    string
	HelpText string
	Initial  any
	Widget   string
	Required bool
}

// Clean runs field against value, using CleanContext when the field
// supports it.
func Clean(ctx context.Context, field Field, value any) (any, error) {
	if cc, ok := field.(ContextCleaner); ok {
		return cc.CleanContext(ctx, value)
	}
	return field.Clean(value)
}

// Option configures the settings every field shares.
type Option func(*Base)

// Required toggles whether empty input is rejected. Fields are required
// unless told otherwise.
func Required(required bool) Option {
	return func(b *Base) {
		b.required = required
	}
}

// Label sets the human readable field name.
func Label(label string) Option {
	return func(b *Base) {
		b.label = strings.TrimSpace(label)
	}
}

// HelpText sets the help text shown next to the field.
func HelpText(text string) Option {
	return func(b *Base) {
		b.helpText = text
	}
}

// Initial sets the value presented before any data is bound.
func Initial(value any) Option {
	return func(b *Base) {
		b.initial = value
	}
}

// Widget records an explicit widget hint such as "hidden" or "password".
func Widget(name string) Option {
	return func(b *Base) {
		b.widget = strings.TrimSpace(name)
	}
}

// Hidden is shorthand for Widget("hidden").
func Hidden() Option {
	return Widget("hidden")
}

// ErrorMessages overrides default messages by error code. Messages may use
// the same {placeholders} as the defaults.
func ErrorMessages(messages map[string]string) Option {
	return func(b *Base) {
		for code, message := range messages {
			b.messages[code] = message
		}
	}
}

// EmptyValue sets the value returned when an optional field receives no
// input. nil is a valid empty value.
func EmptyValue(value any) Option {
	return func(b *Base) {
		b.emptyValue = value
		b.hasEmpty = true
	}
}

// Int returns a pointer to v, for optional config values.
func Int(v int) *int { return &v }

// Int64 returns a pointer to v.
func Int64(v int64) *int64 { return &v }

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// Base holds the settings shared by all fields. Field types embed it.
type Base struct {
	required   bool
	label      string
	helpText   string
	initial    any
	widget     string
	messages   map[string]string
	emptyValue any
	hasEmpty   bool
}

var baseMessages = map[string]string{
	CodeRequired: "This field is required.",
	CodeInvalid:  "Enter a valid value.",
}

func newBase(defaults map[string]string, opts []Option) Base {
	b := Base{
		required: true,
		messages: make(map[string]string, len(baseMessages)+len(defaults)),
	}
	for code, message := range baseMessages {
		b.messages[code] = message
	}
	for code, message := range defaults {
		b.messages[code] = message
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&b)
		}
	}
	return b
}

// IsRequired reports whether empty input is rejected.
func (b *Base) IsRequired() bool {
	return b.required
}

// Meta returns the presentation settings.
func (b *Base) Meta() Meta {
	return Meta{
		Label:    b.label,
		HelpText: b.helpText,
		Initial:  b.initial,
		Widget:   b.widget,
		Required: b.required,
	}
}

// Message returns the message configured for code.
func (b *Base) Message(code string) string {
	return b.messages[code]
}

func (b *Base) setRequired(required bool) {
	b.required = required
}

func (b *Base) checkRequired(value any) error {
	if b.required && textconv.IsEmpty(value) {
		return b.fail(CodeRequired)
	}
	return nil
}

func (b *Base) empty(fallback any) any {
	if b.hasEmpty {
		return b.emptyValue
	}
	return fallback
}

// fail renders the message for code, substituting key/value pairs given as
// params into {key} placeholders.
func (b *Base) fail(code string, params ...any) *ValidationError {
	message := b.messages[code]
	if message == "" {
		message = baseMessages[CodeInvalid]
	}
	if len(params) > 1 {
		pairs := make([]string, 0, len(params))
		for i := 0; i+1 < len(params); i += 2 {
			pairs = append(pairs, "{"+textconv.String(params[i])+"}", textconv.String(params[i+1]))
		}
		message = strings.NewReplacer(pairs...).Replace(message)
	}
	return &ValidationError{Code: code, Messages: []string{message}}
}

type requiredSetter interface {
	setRequired(bool)
}

func makeOptional(field Field) {
	if setter, ok := field.(requiredSetter); ok {
		setter.setRequired(false)
	}
}

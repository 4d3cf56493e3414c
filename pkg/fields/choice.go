package fields

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-formfields/internal/textconv"
)

// Choice is one selectable value. A choice with Options is a named group
// and is not itself selectable.
type Choice struct {
	Value   any      `json:"value,omitempty"`
	Label   string   `json:"label"`
	Options []Choice `json:"options,omitempty"`
}

// NewChoice returns a selectable choice.
func NewChoice(value any, label string) Choice {
	return Choice{Value: value, Label: label}
}

// Group returns a named group of choices.
func Group(label string, options ...Choice) Choice {
	return Choice{Label: label, Options: options}
}

// IsGroup reports whether c holds nested options.
func (c Choice) IsGroup() bool {
	return len(c.Options) > 0
}

// FlattenChoices returns every selectable choice, expanding groups in order.
func FlattenChoices(choices []Choice) []Choice {
	out := make([]Choice, 0, len(choices))
	for _, choice := range choices {
		if choice.IsGroup() {
			out = append(out, FlattenChoices(choice.Options)...)
			continue
		}
		out = append(out, choice)
	}
	return out
}

var choiceMessages = map[string]string{
	CodeInvalidChoice: "Select a valid choice. {value} is not one of the available choices.",
}

// ChoiceField accepts one value from a fixed list and returns it as text.
// Values are compared by their text, so 1 and "1" select the same choice.
type ChoiceField struct {
	Base
	choices []Choice
}

// NewChoiceField constructs a ChoiceField.
func NewChoiceField(choices []Choice, opts ...Option) *ChoiceField {
	return newChoiceField(choices, choiceMessages, opts)
}

func newChoiceField(choices []Choice, defaults map[string]string, opts []Option) *ChoiceField {
	return &ChoiceField{
		Base:    newBase(defaults, opts),
		choices: append([]Choice(nil), choices...),
	}
}

// Kind implements Field.
func (f *ChoiceField) Kind() string { return KindChoice }

// Choices returns a copy of the configured choices.
func (f *ChoiceField) Choices() []Choice {
	return append([]Choice(nil), f.choices...)
}

// Clean implements Field.
func (f *ChoiceField) Clean(value any) (any, error) {
	text, err := f.cleanChoice(value)
	if err != nil {
		return nil, err
	}
	return text, nil
}

func (f *ChoiceField) cleanChoice(value any) (string, error) {
	if err := f.checkRequired(value); err != nil {
		return "", err
	}
	if textconv.IsEmpty(value) {
		return "", nil
	}
	text := textconv.String(value)
	if !f.valid(text) {
		return "", f.fail(CodeInvalidChoice, "value", text)
	}
	return text, nil
}

func (f *ChoiceField) valid(text string) bool {
	for _, choice := range FlattenChoices(f.choices) {
		if textconv.String(choice.Value) == text {
			return true
		}
	}
	return false
}

// CoerceFunc converts a validated choice to its final type.
type CoerceFunc func(string) (any, error)

// CoerceInt parses the choice as a base 10 int64.
func CoerceInt(text string) (any, error) {
	return strconv.ParseInt(strings.TrimSpace(text), 10, 64)
}

// CoerceFloat parses the choice as a float64.
func CoerceFloat(text string) (any, error) {
	return strconv.ParseFloat(strings.TrimSpace(text), 64)
}

// CoerceBool is true for any non-empty choice. "0" and "-1" are both true.
func CoerceBool(text string) (any, error) {
	return text != "", nil
}

// TypedChoiceField is a ChoiceField whose result is passed through a
// coercion function. A coercion failure is reported as an invalid choice.
// Optional fields return their empty value, "" unless set with EmptyValue.
type TypedChoiceField struct {
	ChoiceField
	coerce CoerceFunc
}

// NewTypedChoiceField constructs a TypedChoiceField. A nil coerce returns
// the text unchanged.
func NewTypedChoiceField(choices []Choice, coerce CoerceFunc, opts ...Option) *TypedChoiceField {
	if coerce == nil {
		coerce = func(text string) (any, error) { return text, nil }
	}
	return &TypedChoiceField{
		ChoiceField: *NewChoiceField(choices, opts...),
		coerce:      coerce,
	}
}

// Kind implements Field.
func (f *TypedChoiceField) Kind() string { return KindTypedChoice }

// Clean implements Field.
func (f *TypedChoiceField) Clean(value any) (any, error) {
	text, err := f.cleanChoice(value)
	if err != nil {
		return nil, err
	}
	empty := f.empty("")
	if s, ok := empty.(string); text == "" || (ok && text == s) {
		return empty, nil
	}
	coerced, err := f.coerce(text)
	if err != nil {
		return nil, f.fail(CodeInvalidChoice, "value", text)
	}
	return coerced, nil
}

// MultipleChoiceField accepts a sequence of values from a fixed list and
// returns them as []string.
type MultipleChoiceField struct {
	ChoiceField
}

// NewMultipleChoiceField constructs a MultipleChoiceField.
func NewMultipleChoiceField(choices []Choice, opts ...Option) *MultipleChoiceField {
	defaults := map[string]string{CodeInvalidList: "Enter a list of values."}
	for code, message := range choiceMessages {
		defaults[code] = message
	}
	return &MultipleChoiceField{ChoiceField: *newChoiceField(choices, defaults, opts)}
}

// Kind implements Field.
func (f *MultipleChoiceField) Kind() string { return KindMultipleChoice }

// Clean implements Field.
func (f *MultipleChoiceField) Clean(value any) (any, error) {
	if !textconv.Truthy(value) {
		if f.required {
			return nil, f.fail(CodeRequired)
		}
		return f.empty([]string{}), nil
	}

	items, ok := textconv.Sequence(value)
	if !ok {
		return nil, f.fail(CodeInvalidList)
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		text := textconv.String(item)
		if !f.valid(text) {
			return nil, f.fail(CodeInvalidChoice, "value", text)
		}
		out = append(out, text)
	}
	return out, nil
}

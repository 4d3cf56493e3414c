package formdef

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Field types accepted in definitions.
const (
	TypeChar           = "char"
	TypeInteger        = "integer"
	TypeFloat          = "float"
	TypeDecimal        = "decimal"
	TypeDate           = "date"
	TypeTime           = "time"
	TypeDateTime       = "datetime"
	TypeRegex          = "regex"
	TypeEmail          = "email"
	TypeURL            = "url"
	TypeBoolean        = "boolean"
	TypeNullBoolean    = "nullboolean"
	TypeChoice         = "choice"
	TypeTypedChoice    = "typedchoice"
	TypeMultipleChoice = "multiplechoice"
	TypeFile           = "file"
	TypeFilePath       = "filepath"
	TypeSplitDateTime  = "splitdatetime"
	TypeCombo          = "combo"
)

// Definition is a set of named forms.
type Definition struct {
	Forms map[string]FormDef `json:"forms" yaml:"forms"`
}

// FormDef lists the fields of one form in declaration order.
type FormDef struct {
	Fields []FieldDef `json:"fields" yaml:"fields"`
}

// FieldDef declares one field. Settings that do not apply to Type are
// ignored.
type FieldDef struct {
	Name     string `json:"name" yaml:"name" validate:"required"`
	Type     string `json:"type" yaml:"type" validate:"required,oneof=char integer float decimal date time datetime regex email url boolean nullboolean choice typedchoice multiplechoice file filepath splitdatetime combo"`
	Required *bool  `json:"required,omitempty" yaml:"required,omitempty"`
	Label    string `json:"label,omitempty" yaml:"label,omitempty"`
	HelpText string `json:"helpText,omitempty" yaml:"helpText,omitempty"`
	Widget   string `json:"widget,omitempty" yaml:"widget,omitempty"`
	Initial  any    `json:"initial,omitempty" yaml:"initial,omitempty"`

	MinLength     *int    `json:"minLength,omitempty" yaml:"minLength,omitempty" validate:"omitempty,min=0"`
	MaxLength     *int    `json:"maxLength,omitempty" yaml:"maxLength,omitempty" validate:"omitempty,min=0"`
	MinValue      *Number `json:"minValue,omitempty" yaml:"minValue,omitempty" validate:"omitempty,numeric"`
	MaxValue      *Number `json:"maxValue,omitempty" yaml:"maxValue,omitempty" validate:"omitempty,numeric"`
	MaxDigits     *int    `json:"maxDigits,omitempty" yaml:"maxDigits,omitempty" validate:"omitempty,min=1"`
	DecimalPlaces *int    `json:"decimalPlaces,omitempty" yaml:"decimalPlaces,omitempty" validate:"omitempty,min=0"`

	InputFormats     []string `json:"inputFormats,omitempty" yaml:"inputFormats,omitempty"`
	DateInputFormats []string `json:"dateInputFormats,omitempty" yaml:"dateInputFormats,omitempty"`
	TimeInputFormats []string `json:"timeInputFormats,omitempty" yaml:"timeInputFormats,omitempty"`

	Pattern       string            `json:"pattern,omitempty" yaml:"pattern,omitempty" validate:"required_if=Type regex"`
	ErrorMessage  string            `json:"errorMessage,omitempty" yaml:"errorMessage,omitempty"`
	ErrorMessages map[string]string `json:"errorMessages,omitempty" yaml:"errorMessages,omitempty"`
	VerifyExists  bool              `json:"verifyExists,omitempty" yaml:"verifyExists,omitempty"`

	Choices    []ChoiceDef `json:"choices,omitempty" yaml:"choices,omitempty" validate:"omitempty,dive"`
	Coerce     string      `json:"coerce,omitempty" yaml:"coerce,omitempty" validate:"omitempty,oneof=int float bool"`
	EmptyValue any         `json:"emptyValue,omitempty" yaml:"emptyValue,omitempty"`

	Path      string `json:"path,omitempty" yaml:"path,omitempty" validate:"required_if=Type filepath"`
	Match     string `json:"match,omitempty" yaml:"match,omitempty"`
	Recursive bool   `json:"recursive,omitempty" yaml:"recursive,omitempty"`

	Fields []FieldDef `json:"fields,omitempty" yaml:"fields,omitempty" validate:"required_if=Type combo,dive"`
}

// IsRequired reports the required flag, true when omitted.
func (f FieldDef) IsRequired() bool {
	return f.Required == nil || *f.Required
}

// ChoiceDef is a selectable value, or a named group when Group is set.
type ChoiceDef struct {
	Value   any         `json:"value,omitempty" yaml:"value,omitempty"`
	Label   string      `json:"label,omitempty" yaml:"label,omitempty" validate:"required_without=Group"`
	Group   string      `json:"group,omitempty" yaml:"group,omitempty"`
	Options []ChoiceDef `json:"options,omitempty" yaml:"options,omitempty" validate:"required_with=Group,dive"`
}

// Number keeps a numeric bound as written so decimals lose no precision.
// Both 18 and "18" decode to "18".
type Number string

// UnmarshalJSON accepts JSON numbers and strings.
func (n *Number) UnmarshalJSON(data []byte) error {
	text := strings.TrimSpace(string(data))
	if strings.HasPrefix(text, `"`) {
		unquoted, err := strconv.Unquote(text)
		if err != nil {
			return fmt.Errorf("formdef: invalid number %s: %w", text, err)
		}
		text = unquoted
	}
	*n = Number(strings.TrimSpace(text))
	return nil
}

// UnmarshalYAML accepts any scalar.
func (n *Number) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("formdef: line %d: number must be a scalar", node.Line)
	}
	*n = Number(strings.TrimSpace(node.Value))
	return nil
}

func (n *Number) String() string {
	if n == nil {
		return ""
	}
	return string(*n)
}

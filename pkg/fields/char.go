package fields

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/goliatone/go-formfields/internal/textconv"
)

var charMessages = map[string]string{
	CodeMaxLength: "Ensure this value has at most {max} characters (it has {length}).",
	CodeMinLength: "Ensure this value has at least {min} characters (it has {length}).",
}

// CharConfig bounds the length of text values, counted in characters.
type CharConfig struct {
	MaxLength *int
	MinLength *int
}

// CharField accepts any value and returns its text form.
type CharField struct {
	Base
	maxLength *int
	minLength *int
}

// NewCharField constructs a CharField.
func NewCharField(cfg CharConfig, opts ...Option) *CharField {
	field := newCharField(cfg, nil, opts)
	return &field
}

func newCharField(cfg CharConfig, defaults map[string]string, opts []Option) CharField {
	messages := make(map[string]string, len(charMessages)+len(defaults))
	for code, message := range charMessages {
		messages[code] = message
	}
	for code, message := range defaults {
		messages[code] = message
	}
	return CharField{
		Base:      newBase(messages, opts),
		maxLength: cfg.MaxLength,
		minLength: cfg.MinLength,
	}
}

// Kind implements Field.
func (f *CharField) Kind() string { return KindChar }

// MaxLength returns the configured maximum length, if any.
func (f *CharField) MaxLength() (int, bool) {
	if f.maxLength == nil {
		return 0, false
	}
	return *f.maxLength, true
}

// Clean implements Field.
func (f *CharField) Clean(value any) (any, error) {
	text, err := f.cleanText(value)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return f.empty(""), nil
	}
	return text, nil
}

func (f *CharField) cleanText(value any) (string, error) {
	if err := f.checkRequired(value); err != nil {
		return "", err
	}
	if textconv.IsEmpty(value) {
		return "", nil
	}

	text := textconv.String(value)
	length := utf8.RuneCountInString(text)
	if f.maxLength != nil && length > *f.maxLength {
		return "", f.fail(CodeMaxLength, "max", *f.maxLength, "length", length)
	}
	if f.minLength != nil && length < *f.minLength {
		return "", f.fail(CodeMinLength, "min", *f.minLength, "length", length)
	}
	return text, nil
}

// RegexConfig configures a RegexField.
type RegexConfig struct {
	CharConfig
	// ErrorMessage replaces the message reported when the pattern does not
	// match.
	ErrorMessage string
}

// RegexField is a CharField whose whole text must match a pattern.
type RegexField struct {
	CharField
	pattern *regexp.Regexp
	full    *regexp.Regexp
}

// NewRegexField compiles pattern and constructs a RegexField.
func NewRegexField(pattern string, cfg RegexConfig, opts ...Option) (*RegexField, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("fields: compile pattern %q: %w", pattern, err)
	}
	return NewRegexFieldFromRegexp(re, cfg, opts...), nil
}

// MustRegexField is NewRegexField that panics on an invalid pattern.
func MustRegexField(pattern string, cfg RegexConfig, opts ...Option) *RegexField {
	field, err := NewRegexField(pattern, cfg, opts...)
	if err != nil {
		panic(err)
	}
	return field
}

// NewRegexFieldFromRegexp constructs a RegexField from a compiled pattern.
func NewRegexFieldFromRegexp(re *regexp.Regexp, cfg RegexConfig, opts ...Option) *RegexField {
	field := newRegexField(re, cfg, nil, opts)
	return &field
}

func newRegexField(re *regexp.Regexp, cfg RegexConfig, defaults map[string]string, opts []Option) RegexField {
	field := RegexField{
		CharField: newCharField(cfg.CharConfig, defaults, opts),
		pattern:   re,
		full:      regexp.MustCompile(`^(?:` + re.String() + `)$`),
	}
	if cfg.ErrorMessage != "" {
		field.messages[CodeInvalid] = cfg.ErrorMessage
	}
	return field
}

// Kind implements Field.
func (f *RegexField) Kind() string { return KindRegex }

// Pattern returns the compiled pattern.
func (f *RegexField) Pattern() *regexp.Regexp { return f.pattern }

// Clean implements Field.
func (f *RegexField) Clean(value any) (any, error) {
	text, err := f.cleanText(value)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return f.empty(""), nil
	}
	if !f.full.MatchString(text) {
		return nil, f.fail(CodeInvalid)
	}
	return text, nil
}

var emailPattern = regexp.MustCompile(`(?i)` +
	// dot-atom
	"(^[-!#$%&'*+/=?^_`{}|~0-9A-Z]+(\\.[-!#$%&'*+/=?^_`{}|~0-9A-Z]+)*" +
	// quoted-string
	`|^"([\x01-\x08\x0b\x0c\x0e-\x1f!#-\[\]-\x7f]|\\[\x01-\x09\x0b\x0c\x0e-\x7f])*"` +
	// domain
	`)@(?:[A-Z0-9]+(?:-*[A-Z0-9]+)*\.)+[A-Z]{2,6}$`)

// EmailField accepts e-mail addresses.
type EmailField struct {
	RegexField
}

// NewEmailField constructs an EmailField.
func NewEmailField(cfg CharConfig, opts ...Option) *EmailField {
	return &EmailField{
		RegexField: newRegexField(emailPattern, RegexConfig{CharConfig: cfg}, map[string]string{
			CodeInvalid: "Enter a valid e-mail address.",
		}, opts),
	}
}

// Kind implements Field.
func (f *EmailField) Kind() string { return KindEmail }

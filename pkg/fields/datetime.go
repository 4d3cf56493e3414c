package fields

import (
	"strings"
	"time"

	"cloud.google.com/go/civil"

	"github.com/goliatone/go-formfields/internal/textconv"
)

// Default input formats, tried in order.
var (
	DefaultDateInputFormats = []string{
		"%Y-%m-%d", "%m/%d/%Y", "%m/%d/%y", // '2006-10-25', '10/25/2006', '10/25/06'
		"%b %d %Y", "%b %d, %Y", // 'Oct 25 2006', 'Oct 25, 2006'
		"%d %b %Y", "%d %b, %Y", // '25 Oct 2006', '25 Oct, 2006'
		"%B %d %Y", "%B %d, %Y", // 'October 25 2006', 'October 25, 2006'
		"%d %B %Y", "%d %B, %Y", // '25 October 2006', '25 October, 2006'
	}

	DefaultTimeInputFormats = []string{
		"%H:%M:%S", // '14:30:59'
		"%H:%M",    // '14:30'
	}

	DefaultDateTimeInputFormats = []string{
		"%Y-%m-%d %H:%M:%S",
		"%Y-%m-%d %H:%M",
		"%Y-%m-%d",
		"%m/%d/%Y %H:%M:%S",
		"%m/%d/%Y %H:%M",
		"%m/%d/%Y",
		"%m/%d/%y %H:%M:%S",
		"%m/%d/%y %H:%M",
		"%m/%d/%y",
	}
)

func formatsOrDefault(formats, defaults []string) []string {
	if len(formats) == 0 {
		formats = defaults
	}
	return append([]string(nil), formats...)
}

// DateConfig lists the accepted text formats; strftime directives %Y %y %m
// %d %b %B are understood.
type DateConfig struct {
	InputFormats []string
}

// DateField accepts civil.Date, civil.DateTime, time.Time or text and
// returns civil.Date.
type DateField struct {
	Base
	formats []string
}

// NewDateField constructs a DateField.
func NewDateField(cfg DateConfig, opts ...Option) *DateField {
	return &DateField{
		Base:    newBase(map[string]string{CodeInvalid: "Enter a valid date."}, opts),
		formats: formatsOrDefault(cfg.InputFormats, DefaultDateInputFormats),
	}
}

// Kind implements Field.
func (f *DateField) Kind() string { return KindDate }

// InputFormats returns the accepted formats.
func (f *DateField) InputFormats() []string { return append([]string(nil), f.formats...) }

// Clean implements Field.
func (f *DateField) Clean(value any) (any, error) {
	if err := f.checkRequired(value); err != nil {
		return nil, err
	}
	if textconv.IsEmpty(value) {
		return f.empty(nil), nil
	}

	switch v := value.(type) {
	case civil.DateTime:
		return v.Date, nil
	case civil.Date:
		return v, nil
	case time.Time:
		return civil.DateOf(v), nil
	}

	ts, ok := parseFormats(textconv.String(value), f.formats, func(ts timestamp) bool {
		_, valid := ts.date()
		return valid
	})
	if !ok {
		return nil, f.fail(CodeInvalid)
	}
	date, _ := ts.date()
	return date, nil
}

// TimeConfig lists the accepted text formats; %H %I %M %S %p are
// understood.
type TimeConfig struct {
	InputFormats []string
}

// TimeField accepts civil.Time, time.Time or text and returns civil.Time.
type TimeField struct {
	Base
	formats []string
}

// NewTimeField constructs a TimeField.
func NewTimeField(cfg TimeConfig, opts ...Option) *TimeField {
	return &TimeField{
		Base:    newBase(map[string]string{CodeInvalid: "Enter a valid time."}, opts),
		formats: formatsOrDefault(cfg.InputFormats, DefaultTimeInputFormats),
	}
}

// Kind implements Field.
func (f *TimeField) Kind() string { return KindTime }

// InputFormats returns the accepted formats.
func (f *TimeField) InputFormats() []string { return append([]string(nil), f.formats...) }

// Clean implements Field.
func (f *TimeField) Clean(value any) (any, error) {
	if err := f.checkRequired(value); err != nil {
		return nil, err
	}
	if textconv.IsEmpty(value) {
		return f.empty(nil), nil
	}

	switch v := value.(type) {
	case civil.Time:
		return v, nil
	case time.Time:
		return civil.TimeOf(v), nil
	}

	ts, ok := parseFormats(textconv.String(value), f.formats, func(ts timestamp) bool {
		_, valid := ts.clock()
		return valid
	})
	if !ok {
		return nil, f.fail(CodeInvalid)
	}
	clock, _ := ts.clock()
	return clock, nil
}

// DateTimeConfig lists the accepted text formats.
type DateTimeConfig struct {
	InputFormats []string
}

// DateTimeField accepts civil.DateTime, civil.Date (midnight), time.Time,
// a two element date/time sequence or text, and returns civil.DateTime.
type DateTimeField struct {
	Base
	formats []string
}

// NewDateTimeField constructs a DateTimeField.
func NewDateTimeField(cfg DateTimeConfig, opts ...Option) *DateTimeField {
	return &DateTimeField{
		Base:    newBase(map[string]string{CodeInvalid: "Enter a valid date/time."}, opts),
		formats: formatsOrDefault(cfg.InputFormats, DefaultDateTimeInputFormats),
	}
}

// Kind implements Field.
func (f *DateTimeField) Kind() string { return KindDateTime }

// InputFormats returns the accepted formats.
func (f *DateTimeField) InputFormats() []string { return append([]string(nil), f.formats...) }

// Clean implements Field.
func (f *DateTimeField) Clean(value any) (any, error) {
	if err := f.checkRequired(value); err != nil {
		return nil, err
	}
	if textconv.IsEmpty(value) {
		return f.empty(nil), nil
	}

	switch v := value.(type) {
	case civil.DateTime:
		return v, nil
	case civil.Date:
		return civil.DateTime{Date: v}, nil
	case time.Time:
		return civil.DateTimeOf(v), nil
	}

	text := textconv.String(value)
	if parts, ok := textconv.Sequence(value); ok {
		if len(parts) != 2 {
			return nil, f.fail(CodeInvalid)
		}
		if textconv.IsEmpty(parts[0]) && textconv.IsEmpty(parts[1]) {
			if f.required {
				return nil, f.fail(CodeRequired)
			}
			return f.empty(nil), nil
		}
		text = strings.Join([]string{textconv.String(parts[0]), textconv.String(parts[1])}, " ")
	}

	ts, ok := parseFormats(text, f.formats, func(ts timestamp) bool {
		_, dateOK := ts.date()
		_, clockOK := ts.clock()
		return dateOK && clockOK
	})
	if !ok {
		return nil, f.fail(CodeInvalid)
	}
	date, _ := ts.date()
	clock, _ := ts.clock()
	return civil.DateTime{Date: date, Time: clock}, nil
}

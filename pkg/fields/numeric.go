package fields

import (
	"math"
	"strconv"
	"strings"

	"github.com/goliatone/go-formfields/internal/textconv"
)

var rangeMessages = map[string]string{
	CodeMaxValue: "Ensure this value is less than or equal to {limit}.",
	CodeMinValue: "Ensure this value is greater than or equal to {limit}.",
}

func numberMessages(invalid string, extra map[string]string) map[string]string {
	out := map[string]string{CodeInvalid: invalid}
	for code, message := range rangeMessages {
		out[code] = message
	}
	for code, message := range extra {
		out[code] = message
	}
	return out
}

// IntegerConfig bounds an IntegerField.
type IntegerConfig struct {
	MaxValue *int64
	MinValue *int64
}

// IntegerField accepts whole numbers and returns int64. Surrounding
// whitespace is ignored; fractional input is rejected.
type IntegerField struct {
	Base
	maxValue *int64
	minValue *int64
}

// NewIntegerField constructs an IntegerField.
func NewIntegerField(cfg IntegerConfig, opts ...Option) *IntegerField {
	return &IntegerField{
		Base:     newBase(numberMessages("Enter a whole number.", nil), opts),
		maxValue: cfg.MaxValue,
		minValue: cfg.MinValue,
	}
}

// Kind implements Field.
func (f *IntegerField) Kind() string { return KindInteger }

// Clean implements Field.
func (f *IntegerField) Clean(value any) (any, error) {
	if err := f.checkRequired(value); err != nil {
		return nil, err
	}
	if textconv.IsEmpty(value) {
		return f.empty(nil), nil
	}

	n, err := strconv.ParseInt(strings.TrimSpace(textconv.String(value)), 10, 64)
	if err != nil {
		return nil, f.fail(CodeInvalid)
	}
	if f.maxValue != nil && n > *f.maxValue {
		return nil, f.fail(CodeMaxValue, "limit", *f.maxValue)
	}
	if f.minValue != nil && n < *f.minValue {
		return nil, f.fail(CodeMinValue, "limit", *f.minValue)
	}
	return n, nil
}

// FloatConfig bounds a FloatField.
type FloatConfig struct {
	MaxValue *float64
	MinValue *float64
}

// FloatField accepts numbers and returns float64.
type FloatField struct {
	Base
	maxValue *float64
	minValue *float64
}

// NewFloatField constructs a FloatField.
func NewFloatField(cfg FloatConfig, opts ...Option) *FloatField {
	return &FloatField{
		Base:     newBase(numberMessages("Enter a number.", nil), opts),
		maxValue: cfg.MaxValue,
		minValue: cfg.MinValue,
	}
}

// Kind implements Field.
func (f *FloatField) Kind() string { return KindFloat }

// Clean implements Field.
func (f *FloatField) Clean(value any) (any, error) {
	if err := f.checkRequired(value); err != nil {
		return nil, err
	}
	if textconv.IsEmpty(value) {
		return f.empty(nil), nil
	}

	var n float64
	switch v := value.(type) {
	case float64:
		n = v
	case float32:
		n = float64(v)
	default:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(textconv.String(value)), 64)
		if err != nil {
			return nil, f.fail(CodeInvalid)
		}
		n = parsed
	}
	if f.maxValue != nil && n > *f.maxValue {
		return nil, f.fail(CodeMaxValue, "limit", textconv.Float(*f.maxValue))
	}
	if f.minValue != nil && n < *f.minValue {
		return nil, f.fail(CodeMinValue, "limit", textconv.Float(*f.minValue))
	}
	return n, nil
}

// DecimalConfig bounds a DecimalField. MaxDigits counts every significant
// digit; DecimalPlaces counts digits after the point.
type DecimalConfig struct {
	MaxValue      *Decimal
	MinValue      *Decimal
	MaxDigits     *int
	DecimalPlaces *int
}

// DecimalField accepts exact decimal numbers and returns Decimal.
type DecimalField struct {
	Base
	maxValue      *Decimal
	minValue      *Decimal
	maxDigits     *int
	decimalPlaces *int
}

// NewDecimalField constructs a DecimalField.
func NewDecimalField(cfg DecimalConfig, opts ...Option) *DecimalField {
	return &DecimalField{
		Base: newBase(numberMessages("Enter a number.", map[string]string{
			CodeMaxDigits:        "Ensure that there are no more than {max} digits in total.",
			CodeMaxDecimalPlaces: "Ensure that there are no more than {max} decimal places.",
			CodeMaxWholeDigits:   "Ensure that there are no more than {max} digits before the decimal point.",
		}), opts),
		maxValue:      cfg.MaxValue,
		minValue:      cfg.MinValue,
		maxDigits:     cfg.MaxDigits,
		decimalPlaces: cfg.DecimalPlaces,
	}
}

// Kind implements Field.
func (f *DecimalField) Kind() string { return KindDecimal }

// Clean implements Field.
func (f *DecimalField) Clean(value any) (any, error) {
	if err := f.checkRequired(value); err != nil {
		return nil, err
	}
	if textconv.IsEmpty(value) {
		return f.empty(nil), nil
	}

	var d Decimal
	switch v := value.(type) {
	case Decimal:
		d = v
	case *Decimal:
		d = *v
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, f.fail(CodeInvalid)
		}
		d = MustDecimal(strconv.FormatFloat(v, 'f', -1, 64))
	default:
		parsed, err := ParseDecimal(strings.TrimSpace(textconv.String(value)))
		if err != nil {
			return nil, f.fail(CodeInvalid)
		}
		d = parsed
	}

	if f.maxValue != nil && d.Cmp(*f.maxValue) > 0 {
		return nil, f.fail(CodeMaxValue, "limit", f.maxValue.String())
	}
	if f.minValue != nil && d.Cmp(*f.minValue) < 0 {
		return nil, f.fail(CodeMinValue, "limit", f.minValue.String())
	}

	digits, decimals := d.digitCounts()
	if f.maxDigits != nil && digits > *f.maxDigits {
		return nil, f.fail(CodeMaxDigits, "max", *f.maxDigits)
	}
	if f.decimalPlaces != nil && decimals > *f.decimalPlaces {
		return nil, f.fail(CodeMaxDecimalPlaces, "max", *f.decimalPlaces)
	}
	if f.maxDigits != nil && f.decimalPlaces != nil && digits-decimals > *f.maxDigits-*f.decimalPlaces {
		return nil, f.fail(CodeMaxWholeDigits, "max", *f.maxDigits-*f.decimalPlaces)
	}
	return d, nil
}

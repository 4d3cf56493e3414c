package openapi

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formfields/internal/textconv"
	"github.com/goliatone/go-formfields/pkg/fields"
)

var errUnsupported = errors.New("openapi: unsupported property")

// ISO 8601 layouts accepted on top of the default input formats.
var (
	isoDateTimeFormats = []string{
		"%Y-%m-%dT%H:%M:%SZ",
		"%Y-%m-%dT%H:%M:%S",
		"%Y-%m-%dT%H:%M",
	}
	isoTimeFormats = []string{
		"%H:%M:%SZ",
	}
)

func schemaType(s *openapi3.Schema) string {
	if s.Type == nil {
		return ""
	}
	values := s.Type.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func baseOptions(name string, s *openapi3.Schema, required bool) []fields.Option {
	label := s.Title
	if label == "" {
		label = name
	}
	opts := []fields.Option{fields.Required(required), fields.Label(label)}
	if s.Description != "" {
		opts = append(opts, fields.HelpText(s.Description))
	}
	if s.Default != nil {
		opts = append(opts, fields.Initial(s.Default))
	}
	if s.WriteOnly && schemaType(s) == "string" && strings.Contains(strings.ToLower(name), "password") {
		opts = append(opts, fields.Widget("password"))
	}
	return opts
}

func enumChoices(values []any) []fields.Choice {
	out := make([]fields.Choice, 0, len(values))
	for _, v := range values {
		text := enumText(v)
		out = append(out, fields.NewChoice(text, text))
	}
	return out
}

// enumText prints whole JSON numbers without a fraction.
func enumText(v any) string {
	if f, ok := v.(float64); ok && f == math.Trunc(f) && !math.IsInf(f, 0) {
		return strconv.FormatInt(int64(f), 10)
	}
	return textconv.String(v)
}

func fieldFor(name string, s *openapi3.Schema, required bool) (fields.Field, error) {
	opts := baseOptions(name, s, required)

	switch schemaType(s) {
	case "string":
		return stringField(s, opts)
	case "integer":
		if len(s.Enum) > 0 {
			return fields.NewTypedChoiceField(enumChoices(s.Enum), fields.CoerceInt, opts...), nil
		}
		cfg := fields.IntegerConfig{}
		if s.Min != nil {
			lo := int64(math.Ceil(*s.Min))
			if s.ExclusiveMin && float64(lo) == *s.Min {
				lo++
			}
			cfg.MinValue = &lo
		}
		if s.Max != nil {
			hi := int64(math.Floor(*s.Max))
			if s.ExclusiveMax && float64(hi) == *s.Max {
				hi--
			}
			cfg.MaxValue = &hi
		}
		return fields.NewIntegerField(cfg, opts...), nil
	case "number":
		if len(s.Enum) > 0 {
			return fields.NewTypedChoiceField(enumChoices(s.Enum), fields.CoerceFloat, opts...), nil
		}
		if s.Format == "decimal" {
			cfg := fields.DecimalConfig{}
			if s.Min != nil {
				d, err := fields.ParseDecimal(strconv.FormatFloat(*s.Min, 'f', -1, 64))
				if err != nil {
					return nil, err
				}
				cfg.MinValue = &d
			}
			if s.Max != nil {
				d, err := fields.ParseDecimal(strconv.FormatFloat(*s.Max, 'f', -1, 64))
				if err != nil {
					return nil, err
				}
				cfg.MaxValue = &d
			}
			return fields.NewDecimalField(cfg, opts...), nil
		}
		return fields.NewFloatField(fields.FloatConfig{MinValue: s.Min, MaxValue: s.Max}, opts...), nil
	case "boolean":
		return fields.NewBooleanField(opts...), nil
	case "array":
		if s.Items == nil || s.Items.Value == nil || len(s.Items.Value.Enum) == 0 {
			return nil, errUnsupported
		}
		return fields.NewMultipleChoiceField(enumChoices(s.Items.Value.Enum), opts...), nil
	default:
		return nil, errUnsupported
	}
}

func stringField(s *openapi3.Schema, opts []fields.Option) (fields.Field, error) {
	chars := fields.CharConfig{}
	if s.MinLength > 0 {
		chars.MinLength = fields.Int(int(s.MinLength))
	}
	if s.MaxLength != nil {
		chars.MaxLength = fields.Int(int(*s.MaxLength))
	}

	if len(s.Enum) > 0 {
		return fields.NewChoiceField(enumChoices(s.Enum), opts...), nil
	}

	switch s.Format {
	case "email":
		return fields.NewEmailField(chars, opts...), nil
	case "uri", "url":
		return fields.NewURLField(fields.URLConfig{CharConfig: chars}, opts...), nil
	case "date":
		return fields.NewDateField(fields.DateConfig{}, opts...), nil
	case "date-time":
		formats := append(append([]string(nil), fields.DefaultDateTimeInputFormats...), isoDateTimeFormats...)
		return fields.NewDateTimeField(fields.DateTimeConfig{InputFormats: formats}, opts...), nil
	case "time":
		formats := append(append([]string(nil), fields.DefaultTimeInputFormats...), isoTimeFormats...)
		return fields.NewTimeField(fields.TimeConfig{InputFormats: formats}, opts...), nil
	case "binary":
		return fields.NewFileField(fields.FileConfig{MaxLength: chars.MaxLength}, opts...), nil
	}

	if s.Pattern != "" {
		field, err := fields.NewRegexField(s.Pattern, fields.RegexConfig{CharConfig: chars}, opts...)
		if err != nil {
			return nil, err
		}
		return field, nil
	}
	return fields.NewCharField(chars, opts...), nil
}

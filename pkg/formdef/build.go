package formdef

import (
	"fmt"
	"strconv"

	"github.com/go-git/go-billy/v5"

	"github.com/goliatone/go-formfields/pkg/fields"
	"github.com/goliatone/go-formfields/pkg/forms"
)

type buildConfig struct {
	fs        billy.Filesystem
	urlClient fields.Doer
	formOpts  []forms.Option
}

// BuildOption configures Build.
type BuildOption func(*buildConfig)

// WithFilesystem serves filepath fields from fs instead of the OS.
func WithFilesystem(fs billy.Filesystem) BuildOption {
	return func(c *buildConfig) {
		c.fs = fs
	}
}

// WithURLClient sets the client used by url fields with verifyExists.
func WithURLClient(client fields.Doer) BuildOption {
	return func(c *buildConfig) {
		c.urlClient = client
	}
}

// WithFormOptions applies opts to every built form.
func WithFormOptions(opts ...forms.Option) BuildOption {
	return func(c *buildConfig) {
		c.formOpts = append(c.formOpts, opts...)
	}
}

func newBuildConfig(opts []BuildOption) buildConfig {
	var cfg buildConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Build constructs every form into a registry.
func (d *Definition) Build(opts ...BuildOption) (*forms.Registry, error) {
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("formdef: %w", err)
	}
	reg := forms.NewRegistry()
	for _, name := range sortedNames(d.Forms) {
		form, err := BuildForm(name, d.Forms[name], opts...)
		if err != nil {
			return nil, err
		}
		if err := reg.Register(name, form); err != nil {
			return nil, fmt.Errorf("formdef: %w", err)
		}
	}
	return reg, nil
}

// BuildForm constructs one form.
func BuildForm(name string, def FormDef, opts ...BuildOption) (*forms.Form, error) {
	cfg := newBuildConfig(opts)
	formOpts := append([]forms.Option{forms.WithName(name)}, cfg.formOpts...)
	form := forms.New(formOpts...)
	for _, fd := range def.Fields {
		field, err := cfg.field(fd)
		if err != nil {
			return nil, fmt.Errorf("formdef: form %q field %q: %w", name, fd.Name, err)
		}
		if err := form.Add(fd.Name, field); err != nil {
			return nil, fmt.Errorf("formdef: form %q: %w", name, err)
		}
	}
	return form, nil
}

// BuildField constructs a single field.
func BuildField(def FieldDef, opts ...BuildOption) (fields.Field, error) {
	cfg := newBuildConfig(opts)
	return cfg.field(def)
}

func commonOptions(def FieldDef) []fields.Option {
	opts := []fields.Option{fields.Required(def.IsRequired())}
	if def.Label != "" {
		opts = append(opts, fields.Label(def.Label))
	}
	if def.HelpText != "" {
		opts = append(opts, fields.HelpText(def.HelpText))
	}
	if def.Widget != "" {
		opts = append(opts, fields.Widget(def.Widget))
	}
	if def.Initial != nil {
		opts = append(opts, fields.Initial(def.Initial))
	}
	if len(def.ErrorMessages) > 0 {
		opts = append(opts, fields.ErrorMessages(def.ErrorMessages))
	}
	if def.EmptyValue != nil {
		opts = append(opts, fields.EmptyValue(def.EmptyValue))
	}
	return opts
}

func (c buildConfig) field(def FieldDef) (fields.Field, error) {
	opts := commonOptions(def)
	chars := fields.CharConfig{MinLength: def.MinLength, MaxLength: def.MaxLength}

	switch def.Type {
	case TypeChar:
		return fields.NewCharField(chars, opts...), nil
	case TypeInteger:
		lo, err := parseInt(def.MinValue, "minValue")
		if err != nil {
			return nil, err
		}
		hi, err := parseInt(def.MaxValue, "maxValue")
		if err != nil {
			return nil, err
		}
		return fields.NewIntegerField(fields.IntegerConfig{MinValue: lo, MaxValue: hi}, opts...), nil
	case TypeFloat:
		lo, err := parseFloat(def.MinValue, "minValue")
		if err != nil {
			return nil, err
		}
		hi, err := parseFloat(def.MaxValue, "maxValue")
		if err != nil {
			return nil, err
		}
		return fields.NewFloatField(fields.FloatConfig{MinValue: lo, MaxValue: hi}, opts...), nil
	case TypeDecimal:
		lo, err := parseDecimal(def.MinValue, "minValue")
		if err != nil {
			return nil, err
		}
		hi, err := parseDecimal(def.MaxValue, "maxValue")
		if err != nil {
			return nil, err
		}
		return fields.NewDecimalField(fields.DecimalConfig{
			MinValue:      lo,
			MaxValue:      hi,
			MaxDigits:     def.MaxDigits,
			DecimalPlaces: def.DecimalPlaces,
		}, opts...), nil
	case TypeDate:
		return fields.NewDateField(fields.DateConfig{InputFormats: def.InputFormats}, opts...), nil
	case TypeTime:
		return fields.NewTimeField(fields.TimeConfig{InputFormats: def.InputFormats}, opts...), nil
	case TypeDateTime:
		return fields.NewDateTimeField(fields.DateTimeConfig{InputFormats: def.InputFormats}, opts...), nil
	case TypeRegex:
		field, err := fields.NewRegexField(def.Pattern, fields.RegexConfig{CharConfig: chars, ErrorMessage: def.ErrorMessage}, opts...)
		if err != nil {
			return nil, err
		}
		return field, nil
	case TypeEmail:
		return fields.NewEmailField(chars, opts...), nil
	case TypeURL:
		return fields.NewURLField(fields.URLConfig{
			CharConfig:   chars,
			VerifyExists: def.VerifyExists,
			Client:       c.urlClient,
		}, opts...), nil
	case TypeBoolean:
		return fields.NewBooleanField(opts...), nil
	case TypeNullBoolean:
		return fields.NewNullBooleanField(opts...), nil
	case TypeChoice:
		return fields.NewChoiceField(choices(def.Choices), opts...), nil
	case TypeTypedChoice:
		coerce, err := coerceFunc(def.Coerce)
		if err != nil {
			return nil, err
		}
		return fields.NewTypedChoiceField(choices(def.Choices), coerce, opts...), nil
	case TypeMultipleChoice:
		return fields.NewMultipleChoiceField(choices(def.Choices), opts...), nil
	case TypeFile:
		return fields.NewFileField(fields.FileConfig{MaxLength: def.MaxLength}, opts...), nil
	case TypeFilePath:
		field, err := fields.NewFilePathField(fields.FilePathConfig{
			Path:      def.Path,
			Match:     def.Match,
			Recursive: def.Recursive,
			FS:        c.fs,
		}, opts...)
		if err != nil {
			return nil, err
		}
		return field, nil
	case TypeSplitDateTime:
		return fields.NewSplitDateTimeField(fields.SplitDateTimeConfig{
			DateInputFormats: def.DateInputFormats,
			TimeInputFormats: def.TimeInputFormats,
		}, opts...), nil
	case TypeCombo:
		subs := make([]fields.Field, 0, len(def.Fields))
		for _, sub := range def.Fields {
			field, err := c.field(sub)
			if err != nil {
				return nil, fmt.Errorf("sub-field %q: %w", sub.Name, err)
			}
			subs = append(subs, field)
		}
		return fields.NewComboField(subs, opts...), nil
	default:
		return nil, fmt.Errorf("unknown field type %q", def.Type)
	}
}

func choices(defs []ChoiceDef) []fields.Choice {
	out := make([]fields.Choice, 0, len(defs))
	for _, def := range defs {
		if def.Group != "" {
			out = append(out, fields.Group(def.Group, choices(def.Options)...))
			continue
		}
		out = append(out, fields.NewChoice(def.Value, def.Label))
	}
	return out
}

func coerceFunc(name string) (fields.CoerceFunc, error) {
	switch name {
	case "":
		return nil, nil
	case "int":
		return fields.CoerceInt, nil
	case "float":
		return fields.CoerceFloat, nil
	case "bool":
		return fields.CoerceBool, nil
	default:
		return nil, fmt.Errorf("unknown coerce %q", name)
	}
}

func parseInt(n *Number, key string) (*int64, error) {
	if n == nil {
		return nil, nil
	}
	v, err := strconv.ParseInt(n.String(), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s %q is not a whole number", key, n.String())
	}
	return &v, nil
}

func parseFloat(n *Number, key string) (*float64, error) {
	if n == nil {
		return nil, nil
	}
	v, err := strconv.ParseFloat(n.String(), 64)
	if err != nil {
		return nil, fmt.Errorf("%s %q is not a number", key, n.String())
	}
	return &v, nil
}

func parseDecimal(n *Number, key string) (*fields.Decimal, error) {
	if n == nil {
		return nil, nil
	}
	v, err := fields.ParseDecimal(n.String())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return &v, nil
}

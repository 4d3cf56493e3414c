package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formfields/internal/textconv"
	"github.com/goliatone/go-formfields/pkg/fields"
	"github.com/goliatone/go-formfields/pkg/forms"
	"github.com/goliatone/go-formfields/pkg/widgets"
)

const (
	blankChoice       = "---------"
	widgetPassword    = "password"
	widgetTextArea    = "textarea"
	defaultMaxRetries = 3
)

var nullBooleanOptions = []string{"Unknown", "Yes", "No"}

// Option configures Collect.
type Option func(*collector)

// WithWidgets resolves prompt styles with reg instead of the built-in
// widget registry.
func WithWidgets(reg *widgets.Registry) Option {
	return func(c *collector) {
		if reg != nil {
			c.widgets = reg
		}
	}
}

// WithMaxAttempts bounds how many times a rejected answer is asked again.
func WithMaxAttempts(n int) Option {
	return func(c *collector) {
		if n > 0 {
			c.attempts = n
		}
	}
}

type collector struct {
	driver   PromptDriver
	widgets  *widgets.Registry
	attempts int
}

// Collect asks driver for a value for every field of form in order, then
// binds and fully cleans the answers. Rejected answers are reported through
// Info and asked again. Hidden fields take their initial value without a
// prompt.
func Collect(ctx context.Context, form *forms.Form, driver PromptDriver, opts ...Option) (map[string]any, error) {
	if form == nil {
		return nil, errors.New("prompt: form is nil")
	}
	if driver == nil {
		return nil, errors.New("prompt: driver is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	c := &collector{driver: driver, attempts: defaultMaxRetries}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.widgets == nil {
		c.widgets = widgets.NewRegistry()
	}

	values := make(map[string]any)
	for _, name := range form.Names() {
		field, _ := form.Field(name)
		value, err := c.collect(ctx, name, field)
		if err != nil {
			return nil, err
		}
		values[name] = value
	}

	bound := form.BindValues(values)
	if err := bound.FullClean(ctx); err != nil {
		return nil, err
	}
	return bound.CleanedData(), nil
}

func (c *collector) collect(ctx context.Context, name string, field fields.Field) (any, error) {
	meta := field.Meta()
	widget, _ := c.widgets.Resolve(field)

	switch widget {
	case widgets.WidgetHidden:
		return meta.Initial, nil
	case widgets.WidgetFile:
		if field.IsRequired() {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedField, name)
		}
		return nil, nil
	}
	if sub, ok := subFields(field); ok {
		return c.retry(ctx, name, field, func() (any, error) {
			return c.askParts(ctx, name, meta, sub)
		})
	}

	return c.retry(ctx, name, field, func() (any, error) {
		switch widget {
		case widgets.WidgetCheckbox:
			initial, _ := meta.Initial.(bool)
			return c.driver.Confirm(ctx, ConfirmConfig{Message: message(name, meta), Help: meta.HelpText, Default: initial})
		case widgets.WidgetNullBooleanSelect:
			return c.askNullBoolean(ctx, name, meta)
		case widgets.WidgetSelectMultiple:
			return c.askMany(ctx, name, field)
		case widgets.WidgetSelect:
			return c.askOne(ctx, name, field)
		case widgetPassword:
			return c.driver.Password(ctx, c.inputConfig(ctx, name, field))
		case widgetTextArea:
			return c.driver.TextArea(ctx, TextAreaConfig{Message: message(name, meta), Help: meta.HelpText, Default: initialText(meta)})
		default:
			cfg := c.inputConfig(ctx, name, field)
			cfg.Default = initialText(meta)
			return c.driver.Input(ctx, cfg)
		}
	})
}

// retry asks until field accepts the answer or the attempts run out.
func (c *collector) retry(ctx context.Context, name string, field fields.Field, ask func() (any, error)) (any, error) {
	for attempt := 1; ; attempt++ {
		raw, err := ask()
		if err != nil {
			return nil, err
		}
		_, err = fields.Clean(ctx, field, raw)
		if err == nil {
			return raw, nil
		}
		if !fields.IsValidationError(err) || attempt >= c.attempts {
			return nil, fmt.Errorf("prompt: field %q: %w", name, err)
		}
		if err := c.driver.Info(ctx, strings.Join(fields.Messages(err), " ")); err != nil {
			return nil, err
		}
	}
}

func (c *collector) inputConfig(ctx context.Context, name string, field fields.Field) InputConfig {
	meta := field.Meta()
	return InputConfig{
		Message: message(name, meta),
		Help:    meta.HelpText,
		Validator: func(text string) error {
			if _, err := fields.Clean(ctx, field, text); err != nil {
				return errors.New(strings.Join(fields.Messages(err), " "))
			}
			return nil
		},
	}
}

func (c *collector) askOne(ctx context.Context, name string, field fields.Field) (any, error) {
	meta := field.Meta()
	values, labels := choiceOptions(field)
	if !field.IsRequired() {
		values = append([]string{""}, values...)
		labels = append([]string{blankChoice}, labels...)
	}
	initial := textconv.String(meta.Initial)
	idx, err := c.driver.Select(ctx, SelectConfig{
		Message:      message(name, meta),
		Options:      labels,
		DefaultIndex: indexOf(values, initial),
		Help:         meta.HelpText,
	})
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(values) {
		return nil, fmt.Errorf("prompt: field %q: selection %d out of range", name, idx)
	}
	return values[idx], nil
}

func (c *collector) askMany(ctx context.Context, name string, field fields.Field) (any, error) {
	meta := field.Meta()
	values, labels := choiceOptions(field)
	var defaults []int
	if seq, ok := textconv.Sequence(meta.Initial); ok {
		for _, item := range seq {
			if idx := indexOf(values, textconv.String(item)); idx >= 0 {
				defaults = append(defaults, idx)
			}
		}
	}
	picked, err := c.driver.MultiSelect(ctx, SelectConfig{
		Message:  message(name, meta),
		Options:  labels,
		Defaults: defaults,
		Help:     meta.HelpText,
	})
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(picked))
	for _, idx := range picked {
		if idx < 0 || idx >= len(values) {
			return nil, fmt.Errorf("prompt: field %q: selection %d out of range", name, idx)
		}
		out = append(out, values[idx])
	}
	return out, nil
}

func (c *collector) askNullBoolean(ctx context.Context, name string, meta fields.Meta) (any, error) {
	def := 0
	if b, ok := meta.Initial.(bool); ok {
		def = 2
		if b {
			def = 1
		}
	}
	idx, err := c.driver.Select(ctx, SelectConfig{
		Message:      message(name, meta),
		Options:      nullBooleanOptions,
		DefaultIndex: def,
		Help:         meta.HelpText,
	})
	if err != nil {
		return nil, err
	}
	switch idx {
	case 1:
		return true, nil
	case 2:
		return false, nil
	}
	return nil, nil
}

func (c *collector) askParts(ctx context.Context, name string, meta fields.Meta, sub []fields.Field) (any, error) {
	parts := make([]any, 0, len(sub))
	for i, part := range sub {
		text, err := c.driver.Input(ctx, InputConfig{
			Message: fmt.Sprintf("%s (%d/%d)", message(name, meta), i+1, len(sub)),
			Help:    meta.HelpText,
			Default: initialText(part.Meta()),
		})
		if err != nil {
			return nil, err
		}
		parts = append(parts, text)
	}
	return parts, nil
}

// subFields returns the parts of a field that takes one value per
// sub-field. ComboField takes a single value and is excluded.
func subFields(field fields.Field) ([]fields.Field, bool) {
	if field.Kind() == fields.KindCombo {
		return nil, false
	}
	multi, ok := field.(interface{ Fields() []fields.Field })
	if !ok {
		return nil, false
	}
	return multi.Fields(), true
}

func choiceOptions(field fields.Field) (values, labels []string) {
	chooser, ok := field.(fields.Chooser)
	if !ok {
		return nil, nil
	}
	for _, choice := range fields.FlattenChoices(chooser.Choices()) {
		value := textconv.String(choice.Value)
		label := choice.Label
		if label == "" {
			label = value
		}
		values = append(values, value)
		labels = append(labels, label)
	}
	return values, labels
}

func message(name string, meta fields.Meta) string {
	if meta.Label != "" {
		return meta.Label
	}
	return name
}

func initialText(meta fields.Meta) string {
	if meta.Initial == nil {
		return ""
	}
	return textconv.String(meta.Initial)
}

package forms

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-formfields/pkg/fields"
)

// Bound is a form with submitted data attached.
type Bound struct {
	form    *Form
	raw     map[string]any
	initial map[string]any

	cleaned map[string]any
	errors  ErrorMapping
	done    bool
}

// Form returns the form the data was bound to.
func (b *Bound) Form() *Form {
	return b.form
}

// Raw returns the value submitted for name before cleaning.
func (b *Bound) Raw(name string) any {
	return b.raw[name]
}

// FullClean cleans every field, then runs field hooks and clean hooks. It
// returns a *FormError when anything failed. Repeated calls clean again.
func (b *Bound) FullClean(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()
	form := b.form
	b.cleaned = make(map[string]any, len(form.entries))
	b.errors = ErrorMapping{}
	b.done = true

	for _, e := range form.entries {
		value, err := b.cleanField(ctx, e)
		if err != nil {
			b.errors.Add(e.name, fields.Messages(err)...)
			form.metrics.ObserveClean(e.field.Kind(), outcomeInvalid)
			form.logger.Debug("field rejected",
				zap.String("form", form.name),
				zap.String("field", e.name),
				zap.Strings("errors", fields.Messages(err)),
			)
			continue
		}
		form.metrics.ObserveClean(e.field.Kind(), outcomeValid)
		b.cleaned[e.name] = value
	}

	for _, hook := range form.cleanHooks {
		data, err := hook(ctx, b.cleaned)
		if err != nil {
			b.errors.Add(FormErrorKey, fields.Messages(err)...)
			continue
		}
		if data != nil {
			b.cleaned = data
		}
	}

	form.metrics.ObserveFullClean(time.Since(start))
	if b.errors.Empty() {
		return nil
	}
	return &FormError{Mapping: b.errors}
}

func (b *Bound) cleanField(ctx context.Context, e entry) (any, error) {
	raw := b.raw[e.name]

	var (
		value any
		err   error
	)
	if file, ok := e.field.(*fields.FileField); ok {
		initial, has := b.initial[e.name]
		if !has {
			initial = file.Meta().Initial
		}
		value, err = file.CleanWithInitial(raw, initial)
	} else {
		value, err = fields.Clean(ctx, e.field, raw)
	}
	if err != nil {
		return nil, err
	}

	for _, hook := range b.form.fieldHooks[e.name] {
		value, err = hook(ctx, value)
		if err != nil {
			return nil, err
		}
	}
	return value, nil
}

// IsValid cleans the form if needed and reports whether it has no errors.
func (b *Bound) IsValid() bool {
	if !b.done {
		_ = b.FullClean(context.Background())
	}
	return b.errors.Empty()
}

// CleanedData returns the cleaned values, or nil when the form is invalid.
func (b *Bound) CleanedData() map[string]any {
	if !b.IsValid() {
		return nil
	}
	out := make(map[string]any, len(b.cleaned))
	for k, v := range b.cleaned {
		out[k] = v
	}
	return out
}

// Errors returns the errors collected by the last clean.
func (b *Bound) Errors() ErrorMapping {
	if !b.done {
		_ = b.FullClean(context.Background())
	}
	return b.errors
}

package forms

import (
	"html"
	"strings"

	"github.com/goliatone/go-formfields/internal/textconv"
)

// HiddenInput is one <input type="hidden"> element.
type HiddenInput struct {
	Name  string
	Value string
	// NoValue omits the value attribute.
	NoValue bool
}

// Hidden returns a HiddenInput for an arbitrary name/value pair. Values are
// rendered the way cleaned values print, so true becomes "True".
func Hidden(name string, value any) HiddenInput {
	return HiddenInput{
		Name:    strings.TrimSpace(name),
		Value:   textconv.String(value),
		NoValue: value == nil,
	}
}

// CSRFToken constructs a hidden input carrying token under name.
func CSRFToken(name, token string) HiddenInput {
	return Hidden(name, token)
}

// HiddenFields returns the initial values of every field whose widget is
// "hidden", in declaration order.
func (f *Form) HiddenFields() []HiddenInput {
	var out []HiddenInput
	for _, e := range f.entries {
		meta := e.field.Meta()
		if meta.Widget != "hidden" {
			continue
		}
		out = append(out, Hidden(e.name, meta.Initial))
	}
	return out
}

// HiddenInputs renders the hidden fields followed by extras.
func (f *Form) HiddenInputs(extras ...HiddenInput) string {
	return RenderHidden(append(f.HiddenFields(), extras...)...)
}

// RenderHidden renders inputs as HTML. Inputs without a name are skipped.
func RenderHidden(inputs ...HiddenInput) string {
	var b strings.Builder
	for _, input := range inputs {
		name := strings.TrimSpace(input.Name)
		if name == "" {
			continue
		}
		escaped := html.EscapeString(name)
		b.WriteString(`<input type="hidden" name="`)
		b.WriteString(escaped)
		b.WriteString(`"`)
		if !input.NoValue {
			b.WriteString(` value="`)
			b.WriteString(html.EscapeString(input.Value))
			b.WriteString(`"`)
		}
		b.WriteString(` id="id_`)
		b.WriteString(escaped)
		b.WriteString(`" />`)
	}
	return b.String()
}

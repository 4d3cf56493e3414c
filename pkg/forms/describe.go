package forms

import "github.com/goliatone/go-formfields/pkg/fields"

// FieldDescription is the serialisable summary of one field.
type FieldDescription struct {
	Name     string          `json:"name"`
	Kind     string          `json:"kind"`
	Widget   string          `json:"widget,omitempty"`
	Label    string          `json:"label,omitempty"`
	HelpText string          `json:"helpText,omitempty"`
	Required bool            `json:"required"`
	Initial  any             `json:"initial,omitempty"`
	Choices  []fields.Choice `json:"choices,omitempty"`
	Fields   []string        `json:"fields,omitempty"`
}

// Description summarises a form.
type Description struct {
	Name   string             `json:"name"`
	Fields []FieldDescription `json:"fields"`
}

// WidgetResolver picks the widget used to present a field.
type WidgetResolver func(fields.Field) string

// Describe summarises the form in declaration order. A nil resolve leaves
// only explicit widget hints.
func (f *Form) Describe(resolve WidgetResolver) Description {
	desc := Description{
		Name:   f.name,
		Fields: make([]FieldDescription, 0, len(f.entries)),
	}
	for _, e := range f.entries {
		meta := e.field.Meta()
		item := FieldDescription{
			Name:     e.name,
			Kind:     e.field.Kind(),
			Widget:   meta.Widget,
			Label:    meta.Label,
			HelpText: meta.HelpText,
			Required: e.field.IsRequired(),
			Initial:  meta.Initial,
		}
		if resolve != nil {
			item.Widget = resolve(e.field)
		}
		if chooser, ok := e.field.(fields.Chooser); ok {
			item.Choices = chooser.Choices()
		}
		if multi, ok := e.field.(interface{ Fields() []fields.Field }); ok {
			for _, sub := range multi.Fields() {
				item.Fields = append(item.Fields, sub.Kind())
			}
		}
		desc.Fields = append(desc.Fields, item)
	}
	return desc
}

package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formfields/pkg/fields"
	"github.com/goliatone/go-formfields/pkg/forms"
)

// Built-in widget identifiers exposed by the registry.
const (
	WidgetHidden            = "hidden"
	WidgetCheckbox          = "checkbox"
	WidgetNullBooleanSelect = "null-boolean-select"
	WidgetSelectMultiple    = "select-multiple"
	WidgetSelect            = "select"
	WidgetSplitDateTime     = "split-datetime"
	WidgetFile              = "file"
	WidgetEmail             = "email"
	WidgetURL               = "url"
	WidgetDate              = "date"
	WidgetTime              = "time"
	WidgetDateTime          = "datetime"
	WidgetNumber            = "number"
	WidgetText              = "text"
)

// Matcher decides whether a widget should present the supplied field.
type Matcher func(field fields.Field) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects widgets for fields based on explicit hints or
// registered matchers. Higher priority wins; ties fall back to registration
// order. An empty registry never resolves a widget.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in matchers registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// NewEmptyRegistry constructs a registry without matchers.
func NewEmptyRegistry() *Registry {
	return &Registry{}
}

// Register adds a matcher with the provided name and priority. Higher
// priority values take precedence.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget name for a field. An explicit fields.Widget
// hint is honoured before matcher evaluation.
func (r *Registry) Resolve(field fields.Field) (string, bool) {
	if field == nil {
		return "", false
	}
	if explicit := strings.TrimSpace(field.Meta().Widget); explicit != "" {
		return explicit, true
	}
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	if len(r.rules) == 0 {
		r.mu.RUnlock()
		return "", false
	}
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.name, true
		}
	}
	return "", false
}

// Resolver adapts the registry for forms.Form.Describe.
func (r *Registry) Resolver() forms.WidgetResolver {
	return func(field fields.Field) string {
		name, _ := r.Resolve(field)
		return name
	}
}

// Describe summarises form with every field's widget resolved.
func (r *Registry) Describe(form *forms.Form) forms.Description {
	return form.Describe(r.Resolver())
}

func kindIs(kinds ...string) Matcher {
	return func(field fields.Field) bool {
		kind := field.Kind()
		for _, k := range kinds {
			if k == kind {
				return true
			}
		}
		return false
	}
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetCheckbox, 130, kindIs(fields.KindBoolean))
	r.Register(WidgetNullBooleanSelect, 120, kindIs(fields.KindNullBoolean))
	r.Register(WidgetSelectMultiple, 110, kindIs(fields.KindMultipleChoice))
	r.Register(WidgetSelect, 100, func(field fields.Field) bool {
		_, ok := field.(fields.Chooser)
		return ok
	})
	r.Register(WidgetSplitDateTime, 90, kindIs(fields.KindSplitDateTime))
	r.Register(WidgetFile, 80, kindIs(fields.KindFile))
	r.Register(WidgetEmail, 70, kindIs(fields.KindEmail))
	r.Register(WidgetURL, 60, kindIs(fields.KindURL))
	r.Register(WidgetDate, 50, kindIs(fields.KindDate))
	r.Register(WidgetTime, 40, kindIs(fields.KindTime))
	r.Register(WidgetDateTime, 30, kindIs(fields.KindDateTime))
	r.Register(WidgetNumber, 20, kindIs(fields.KindInteger, fields.KindFloat, fields.KindDecimal))
	r.Register(WidgetText, 10, func(fields.Field) bool { return true })
}

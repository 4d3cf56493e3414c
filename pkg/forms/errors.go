package forms

import (
	"strconv"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formfields/pkg/fields"
)

// FormErrorKey is the key under which form-wide errors are reported.
const FormErrorKey = "__all__"

// ErrorList is an ordered list of messages for one field or for the form.
type ErrorList []string

var (
	errorPolicyOnce sync.Once
	errorPolicy     *bluemonday.Policy
)

func errorSanitizer() *bluemonday.Policy {
	errorPolicyOnce.Do(func() {
		errorPolicy = bluemonday.StrictPolicy()
	})
	return errorPolicy
}

// HTML renders the list as <ul class="errorlist">. Messages are stripped of
// markup and escaped. An empty list renders as "".
func (l ErrorList) HTML() string {
	if len(l) == 0 {
		return ""
	}
	policy := errorSanitizer()

	var b strings.Builder
	b.WriteString(`<ul class="errorlist">`)
	for _, message := range l {
		b.WriteString("<li>")
		b.WriteString(policy.Sanitize(message))
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
	return b.String()
}

// Text renders the list as "* message" lines.
func (l ErrorList) Text() string {
	lines := make([]string, len(l))
	for i, message := range l {
		lines[i] = "* " + message
	}
	return strings.Join(lines, "\n")
}

// ErrorMapping splits errors into field-level and form-level messages.
type ErrorMapping struct {
	Fields map[string]ErrorList `json:"errors,omitempty"`
	Form   ErrorList            `json:"form_errors,omitempty"`
}

// Empty reports whether there are no errors at all.
func (m ErrorMapping) Empty() bool {
	return len(m.Fields) == 0 && len(m.Form) == 0
}

// Add appends messages for name; FormErrorKey and "" add form errors.
func (m *ErrorMapping) Add(name string, messages ...string) {
	messages = normalizeMessages(messages)
	if len(messages) == 0 {
		return
	}
	if isFormLevelKey(name) {
		m.Form = MergeFormErrors(m.Form, messages...)
		return
	}
	if m.Fields == nil {
		m.Fields = make(map[string]ErrorList)
	}
	m.Fields[name] = MergeFormErrors(m.Fields[name], messages...)
}

// FormError is returned by Bound.FullClean when validation fails.
type FormError struct {
	Mapping ErrorMapping
}

func (e *FormError) Error() string {
	count := len(e.Mapping.Form)
	for _, list := range e.Mapping.Fields {
		count += len(list)
	}
	return "forms: validation failed with " + strconv.Itoa(count) + " error(s)"
}

// MergeFormErrors concatenates form-level messages, trimming whitespace and
// dropping duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) ErrorList {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrorPayload maps an external error payload onto form's fields. Keys
// may be field names, JSON pointers ("/body/email"), dotted paths
// ("data.email", "$.email[0]") or the sub-field keys of multi-value fields
// ("when_0"). Keys that match no field become form-level errors.
func MapErrorPayload(form *Form, payload map[string][]string) ErrorMapping {
	var mapping ErrorMapping
	if len(payload) == 0 {
		return mapping
	}

	paths := fieldPaths(form)
	for _, key := range sortedKeys(payload) {
		messages := normalizeMessages(payload[key])
		if len(messages) == 0 {
			continue
		}
		name, formLevel := mapErrorPath(key, paths)
		if formLevel {
			mapping.Form = append(mapping.Form, messages...)
			continue
		}
		mapping.Add(name, messages...)
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

func normalizeMessages(messages []string) ErrorList {
	if len(messages) == 0 {
		return nil
	}
	out := make(ErrorList, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// fieldPaths maps every accepted error key to the field it belongs to.
func fieldPaths(form *Form) map[string]string {
	paths := make(map[string]string)
	if form == nil {
		return paths
	}
	for _, entry := range form.entries {
		paths[entry.name] = entry.name
		if multi, ok := entry.field.(interface{ Fields() []fields.Field }); ok {
			for i := range multi.Fields() {
				paths[entry.name+"_"+strconv.Itoa(i)] = entry.name
			}
		}
	}
	return paths
}

func mapErrorPath(raw string, paths map[string]string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if isFormLevelKey(trimmed) {
		return "", true
	}
	segments := parsePathSegments(trimmed)
	for _, variant := range buildSegmentVariants(segments) {
		for _, segment := range variant {
			if name, ok := paths[segment]; ok {
				return name, false
			}
		}
	}
	return "", true
}

func parsePathSegments(path string) []string {
	clean := strings.TrimSpace(path)
	for strings.HasPrefix(clean, "#") || strings.HasPrefix(clean, "/") || strings.HasPrefix(clean, ".") || strings.HasPrefix(clean, "$") {
		clean = clean[1:]
	}
	clean = strings.NewReplacer("[", ".", "]", "").Replace(clean)
	clean = strings.Trim(clean, "./")
	if clean == "" {
		return nil
	}

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

var wrapperSegments = map[string]struct{}{
	"body":       {},
	"request":    {},
	"payload":    {},
	"data":       {},
	"form":       {},
	"attributes": {},
}

// buildSegmentVariants returns the segments to try, first with wrapper
// prefixes removed, then with list indexes removed.
func buildSegmentVariants(segments []string) [][]string {
	if len(segments) == 0 {
		return nil
	}
	out := segments
	for len(out) > 1 {
		if _, ok := wrapperSegments[strings.ToLower(out[0])]; !ok {
			break
		}
		out = out[1:]
	}

	stripped := make([]string, 0, len(out))
	for _, segment := range out {
		if _, err := strconv.Atoi(segment); err == nil {
			continue
		}
		stripped = append(stripped, segment)
	}
	return [][]string{out[:1], stripped}
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "base", FormErrorKey, "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}

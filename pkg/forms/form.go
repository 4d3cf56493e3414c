package forms

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formfields/pkg/fields"
)

const defaultMaxMemory = 32 << 20

var (
	// ErrEmptyName is returned when a field is added without a name.
	ErrEmptyName = errors.New("forms: field name is required")
	// ErrNilField is returned when a nil field is added.
	ErrNilField = errors.New("forms: field is nil")
)

// FieldHook post-processes the cleaned value of one field. Returning an
// error attaches it to that field.
type FieldHook func(ctx context.Context, value any) (any, error)

// CleanHook post-processes the cleaned data of the whole form. Errors are
// reported as form-level errors.
type CleanHook func(ctx context.Context, data map[string]any) (map[string]any, error)

type entry struct {
	name  string
	field fields.Field
}

// Form is an ordered set of named fields.
type Form struct {
	name       string
	entries    []entry
	index      map[string]int
	fieldHooks map[string][]FieldHook
	cleanHooks []CleanHook
	logger     *zap.Logger
	metrics    *Metrics
}

// Option configures a Form.
type Option func(*Form)

// WithName labels the form in logs and metrics.
func WithName(name string) Option {
	return func(f *Form) {
		f.name = strings.TrimSpace(name)
	}
}

// WithLogger sets the logger used while cleaning.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Form) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithMetrics records clean outcomes on m.
func WithMetrics(m *Metrics) Option {
	return func(f *Form) {
		f.metrics = m
	}
}

// WithFieldHook runs fn after field name cleaned successfully.
func WithFieldHook(name string, fn FieldHook) Option {
	return func(f *Form) {
		if fn == nil {
			return
		}
		f.fieldHooks[name] = append(f.fieldHooks[name], fn)
	}
}

// WithCleanHook runs fn after every field has been cleaned.
func WithCleanHook(fn CleanHook) Option {
	return func(f *Form) {
		if fn != nil {
			f.cleanHooks = append(f.cleanHooks, fn)
		}
	}
}

// New creates an empty form.
func New(opts ...Option) *Form {
	f := &Form{
		index:      make(map[string]int),
		fieldHooks: make(map[string][]FieldHook),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// Name returns the form name, if any.
func (f *Form) Name() string {
	return f.name
}

// Add appends a field. Names must be unique.
func (f *Form) Add(name string, field fields.Field) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if field == nil {
		return fmt.Errorf("%w: %q", ErrNilField, name)
	}
	if _, exists := f.index[name]; exists {
		return fmt.Errorf("forms: field %q already declared", name)
	}
	f.index[name] = len(f.entries)
	f.entries = append(f.entries, entry{name: name, field: field})
	return nil
}

// MustAdd is like Add but panics on error.
func (f *Form) MustAdd(name string, field fields.Field) *Form {
	if err := f.Add(name, field); err != nil {
		panic(err)
	}
	return f
}

// Field returns the field declared under name.
func (f *Form) Field(name string) (fields.Field, bool) {
	i, ok := f.index[name]
	if !ok {
		return nil, false
	}
	return f.entries[i].field, true
}

// Names returns field names in declaration order.
func (f *Form) Names() []string {
	out := make([]string, len(f.entries))
	for i, e := range f.entries {
		out[i] = e.name
	}
	return out
}

// Fields returns the fields in declaration order.
func (f *Form) Fields() []fields.Field {
	out := make([]fields.Field, len(f.entries))
	for i, e := range f.entries {
		out[i] = e.field
	}
	return out
}

// BindOption configures a single binding.
type BindOption func(*Bound)

// WithInitial supplies the previously stored values, used by file fields
// when nothing new is uploaded.
func WithInitial(initial map[string]any) BindOption {
	return func(b *Bound) {
		for k, v := range initial {
			b.initial[k] = v
		}
	}
}

// Bind attaches submitted data to the form.
func (f *Form) Bind(data url.Values, files map[string][]*multipart.FileHeader, opts ...BindOption) *Bound {
	b := &Bound{
		form:    f,
		raw:     make(map[string]any, len(f.entries)),
		initial: make(map[string]any),
	}
	for _, e := range f.entries {
		b.raw[e.name] = fields.ValueFromData(e.field, data, files, e.name)
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// BindValues attaches already decoded values, keyed by field name.
func (f *Form) BindValues(values map[string]any, opts ...BindOption) *Bound {
	b := &Bound{
		form:    f,
		raw:     make(map[string]any, len(f.entries)),
		initial: make(map[string]any),
	}
	for _, e := range f.entries {
		b.raw[e.name] = values[e.name]
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// BindRequest parses a urlencoded or multipart request body and binds it.
func (f *Form) BindRequest(r *http.Request, opts ...BindOption) (*Bound, error) {
	if r == nil {
		return nil, errors.New("forms: request is nil")
	}
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(defaultMaxMemory); err != nil {
			return nil, fmt.Errorf("forms: parse multipart body: %w", err)
		}
		return f.Bind(r.MultipartForm.Value, r.MultipartForm.File, opts...), nil
	}
	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("forms: parse form body: %w", err)
	}
	return f.Bind(r.Form, nil, opts...), nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"go.uber.org/zap"

	"github.com/goliatone/go-formfields/pkg/forms"
	"github.com/goliatone/go-formfields/pkg/schema"
)

// ErrOperationNotFound is returned when no operation has the requested id.
var ErrOperationNotFound = errors.New("openapi: operation not found")

// Options configures Build and Operations.
type Options struct {
	// ValidateDocument runs kin-openapi validation after loading.
	ValidateDocument bool
	Logger           *zap.Logger
	FormOptions      []forms.Option
}

// Option mutates Options.
type Option func(*Options)

// WithValidation toggles document validation. It is on by default.
func WithValidation(enabled bool) Option {
	return func(o *Options) {
		o.ValidateDocument = enabled
	}
}

// WithLogger reports skipped properties to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) {
		if logger != nil {
			o.Logger = logger
		}
	}
}

// WithFormOptions applies opts to built forms.
func WithFormOptions(opts ...forms.Option) Option {
	return func(o *Options) {
		o.FormOptions = append(o.FormOptions, opts...)
	}
}

func newOptions(opts []Option) Options {
	cfg := Options{ValidateDocument: true, Logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Operation summarises one operation of a document.
type Operation struct {
	ID      string
	Method  string
	Path    string
	Summary string
	HasBody bool
}

// Operations lists the operations of doc sorted by id. Operations without
// an operationId are named "method:path".
func Operations(ctx context.Context, doc schema.Document, opts ...Option) ([]Operation, error) {
	cfg := newOptions(opts)
	spec, err := load(ctx, doc, cfg)
	if err != nil {
		return nil, err
	}
	var out []Operation
	eachOperation(spec, func(id, method, path string, op *openapi3.Operation) bool {
		out = append(out, Operation{
			ID:      id,
			Method:  method,
			Path:    path,
			Summary: op.Summary,
			HasBody: op.RequestBody != nil,
		})
		return true
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// BuildForm builds the form for the request body of operationID.
func BuildForm(ctx context.Context, doc schema.Document, operationID string, opts ...Option) (*forms.Form, error) {
	cfg := newOptions(opts)
	spec, err := load(ctx, doc, cfg)
	if err != nil {
		return nil, err
	}

	var found *openapi3.Operation
	eachOperation(spec, func(id, _, _ string, op *openapi3.Operation) bool {
		if id == operationID {
			found = op
			return false
		}
		return true
	})
	if found == nil {
		return nil, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}

	body := requestSchema(found.RequestBody)
	if body == nil {
		return nil, fmt.Errorf("openapi: operation %q has no request body schema", operationID)
	}

	formOpts := append([]forms.Option{forms.WithName(operationID), forms.WithLogger(cfg.Logger)}, cfg.FormOptions...)
	form := forms.New(formOpts...)

	required := make(map[string]bool, len(body.Required))
	for _, name := range body.Required {
		required[name] = true
	}
	names := make([]string, 0, len(body.Properties))
	for name := range body.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ref := body.Properties[name]
		if ref == nil || ref.Value == nil {
			cfg.Logger.Warn("skipping unresolved property", zap.String("operation", operationID), zap.String("property", name))
			continue
		}
		field, err := fieldFor(name, ref.Value, required[name])
		if err != nil {
			if errors.Is(err, errUnsupported) {
				cfg.Logger.Warn("skipping unsupported property",
					zap.String("operation", operationID),
					zap.String("property", name),
					zap.String("type", schemaType(ref.Value)),
				)
				continue
			}
			return nil, fmt.Errorf("openapi: operation %q property %q: %w", operationID, name, err)
		}
		if err := form.Add(name, field); err != nil {
			return nil, fmt.Errorf("openapi: operation %q: %w", operationID, err)
		}
	}
	return form, nil
}

func load(ctx context.Context, doc schema.Document, cfg Options) (*openapi3.T, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load %s: %w", doc.Location(), err)
	}
	if cfg.ValidateDocument {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi: validate %s: %w", doc.Location(), err)
		}
	}
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return nil, fmt.Errorf("openapi: %s does not contain any paths", doc.Location())
	}
	return spec, nil
}

func eachOperation(spec *openapi3.T, fn func(id, method, path string, op *openapi3.Operation) bool) {
	paths := spec.Paths.InMatchingOrder()
	sort.Strings(paths)
	for _, path := range paths {
		item := spec.Paths.Value(path)
		if item == nil {
			continue
		}
		methods := item.Operations()
		keys := make([]string, 0, len(methods))
		for method := range methods {
			keys = append(keys, method)
		}
		sort.Strings(keys)
		for _, method := range keys {
			op := methods[method]
			if op == nil {
				continue
			}
			id := op.OperationID
			if id == "" {
				id = strings.ToLower(method) + ":" + path
			}
			if !fn(id, method, path, op) {
				return
			}
		}
	}
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt != nil && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	keys := make([]string, 0, len(content))
	for key := range content {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if mt := content[key]; mt != nil && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

// Package formfields is the entry point for loading form definitions and
// OpenAPI documents and turning them into forms.
package formfields

import (
	"context"
	"fmt"
	"time"

	"github.com/goliatone/go-formfields/pkg/formdef"
	"github.com/goliatone/go-formfields/pkg/forms"
	"github.com/goliatone/go-formfields/pkg/openapi"
	"github.com/goliatone/go-formfields/pkg/schema"
)

// DefaultFetchTimeout bounds remote document fetches made through the
// helpers in this package.
const DefaultFetchTimeout = 10 * time.Second

// LoadDocument reads the file or http(s) URL at location. Remote locations
// are fetched with DefaultFetchTimeout unless options configure a client.
func LoadDocument(ctx context.Context, location string, options ...schema.LoaderOption) (schema.Document, error) {
	src, err := schema.ParseSource(location)
	if err != nil {
		return schema.Document{}, err
	}
	opts := append([]schema.LoaderOption{schema.WithHTTPFallback(DefaultFetchTimeout)}, options...)
	return NewLoader(opts...).Load(ctx, src)
}

// LoadForms loads a JSON or YAML form definition from location and builds
// every form it declares.
func LoadForms(ctx context.Context, location string, build []formdef.BuildOption, options ...schema.LoaderOption) (*forms.Registry, error) {
	doc, err := LoadDocument(ctx, location, options...)
	if err != nil {
		return nil, err
	}
	def, err := formdef.ParseFormat(doc.Raw(), doc.Location(), doc.Format())
	if err != nil {
		return nil, err
	}
	return def.Build(build...)
}

// OpenAPIForm loads the OpenAPI document at location and builds the form
// for the request body of operationID.
func OpenAPIForm(ctx context.Context, location, operationID string, opts ...openapi.Option) (*forms.Form, error) {
	doc, err := LoadDocument(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("formfields: %w", err)
	}
	return openapi.BuildForm(ctx, doc, operationID, opts...)
}

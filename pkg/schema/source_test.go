package schema_test

import (
	"testing"

	"github.com/goliatone/go-formfields/pkg/schema"
)

func TestParseSource(t *testing.T) {
	cases := []struct {
		in       string
		kind     schema.SourceKind
		location string
	}{
		{"defs/forms.yaml", schema.SourceKindFile, "defs/forms.yaml"},
		{"./defs//forms.yaml", schema.SourceKindFile, "defs/forms.yaml"},
		{"https://example.com/openapi.json", schema.SourceKindURL, "https://example.com/openapi.json"},
		{" HTTP://example.com/a ", schema.SourceKindURL, "HTTP://example.com/a"},
	}
	for _, tc := range cases {
		src, err := schema.ParseSource(tc.in)
		if err != nil {
			t.Fatalf("ParseSource(%q): %v", tc.in, err)
		}
		if src.Kind() != tc.kind || src.Location() != tc.location {
			t.Fatalf("ParseSource(%q) = %s %q", tc.in, src.Kind(), src.Location())
		}
	}

	if _, err := schema.ParseSource("  "); err == nil {
		t.Fatalf("expected error for empty source")
	}
}

func TestSourceFromURLPanicsOnInvalidInput(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	schema.SourceFromURL("not a url")
}

func TestNewDocument(t *testing.T) {
	if _, err := schema.NewDocument(nil, []byte("x")); err == nil {
		t.Fatalf("expected error for nil source")
	}
	if _, err := schema.NewDocument(schema.SourceFromFS("a"), nil); err == nil {
		t.Fatalf("expected error for empty payload")
	}

	raw := []byte("payload")
	doc := schema.MustNewDocument(schema.SourceFromFS("a.yaml"), raw)
	raw[0] = 'X'
	if string(doc.Raw()) != "payload" {
		t.Fatalf("document shares caller buffer: %q", doc.Raw())
	}
	if doc.Location() != "a.yaml" || doc.Source().Kind() != schema.SourceKindFS {
		t.Fatalf("unexpected origin %q", doc.Location())
	}
}

func TestDetectFormat(t *testing.T) {
	cases := []struct {
		name      string
		location  string
		mediaType string
		raw       string
		want      schema.Format
	}{
		{"media type wins", "forms.yaml", "application/json; charset=utf-8", "forms: {}", schema.FormatJSON},
		{"yaml media type", "forms.json", "application/yaml", "{}", schema.FormatYAML},
		{"problem json", "", "application/problem+json", "x", schema.FormatJSON},
		{"extension", "defs/forms.YML", "", "{}", schema.FormatYAML},
		{"extension before query", "https://example.com/forms.json?v=2", "text/plain", "forms: {}", schema.FormatJSON},
		{"sniffed object", "forms", "", "  {\"forms\": {}}", schema.FormatJSON},
		{"sniffed yaml", "forms", "", "forms: {}", schema.FormatYAML},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := schema.DetectFormat(tc.location, tc.mediaType, []byte(tc.raw)); got != tc.want {
				t.Fatalf("DetectFormat = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestDocumentFormat(t *testing.T) {
	doc, err := schema.NewDocumentWithMediaType(schema.SourceFromFS("forms"), []byte("forms: {}"), "text/yaml")
	if err != nil {
		t.Fatalf("new document: %v", err)
	}
	if doc.Format() != schema.FormatYAML {
		t.Fatalf("format = %q", doc.Format())
	}
	if _, err := schema.NewDocument(schema.SourceFromFS("a.json"), []byte(" \n")); err == nil {
		t.Fatalf("expected error for a blank payload")
	}
}

package schema

import (
	"bytes"
	"errors"
	"mime"
	"path"
	"strings"
)

// Format is the encoding of a document payload.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Document is a loaded definition or OpenAPI payload together with its
// origin and encoding.
type Document struct {
	source Source
	raw    []byte
	format Format
}

// NewDocument constructs a Document whose format is detected from the
// source location and the payload.
func NewDocument(src Source, raw []byte) (Document, error) {
	return NewDocumentWithMediaType(src, raw, "")
}

// NewDocumentWithMediaType is NewDocument for payloads that arrived with a
// Content-Type header. A JSON or YAML media type takes precedence over the
// location's extension.
func NewDocumentWithMediaType(src Source, raw []byte, mediaType string) (Document, error) {
	if src == nil {
		return Document{}, errors.New("schema: source is required")
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return Document{}, errors.New("schema: raw document is empty")
	}
	return Document{
		source: src,
		raw:    append([]byte(nil), raw...),
		format: DetectFormat(src.Location(), mediaType, raw),
	}, nil
}

// MustNewDocument panics if the document cannot be created.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

func (d Document) Source() Source {
	return d.source
}

// Raw returns a copy of the payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Format reports how the payload is encoded.
func (d Document) Format() Format {
	return d.format
}

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// DetectFormat decides between JSON and YAML using, in order, the media
// type, the extension of location and the first non-blank byte of raw.
func DetectFormat(location, mediaType string, raw []byte) Format {
	if mediaType != "" {
		if mt, _, err := mime.ParseMediaType(mediaType); err == nil {
			switch {
			case mt == "application/json" || strings.HasSuffix(mt, "+json"):
				return FormatJSON
			case strings.Contains(mt, "yaml"):
				return FormatYAML
			}
		}
	}

	location, _, _ = strings.Cut(location, "?")
	location, _, _ = strings.Cut(location, "#")
	switch strings.ToLower(path.Ext(location)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}
	return FormatYAML
}

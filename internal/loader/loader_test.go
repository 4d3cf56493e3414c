package loader

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/goliatone/go-formfields/pkg/schema"
)

const payload = "forms:\n  signup:\n    fields: []\n"

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forms.yaml")
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	doc, err := New(schema.LoaderOptions{}).Load(context.Background(), schema.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != payload {
		t.Fatalf("raw = %q", doc.Raw())
	}
	if doc.Location() != path {
		t.Fatalf("location = %q", doc.Location())
	}

	if _, err := New(schema.LoaderOptions{}).Load(context.Background(), schema.SourceFromFile(filepath.Join(t.TempDir(), "missing.yaml"))); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadFS(t *testing.T) {
	files := fstest.MapFS{"defs/forms.yaml": {Data: []byte(payload)}}
	l := New(schema.NewLoaderOptions(schema.WithFileSystem(files)))

	doc, err := l.Load(context.Background(), schema.SourceFromFS("defs/forms.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != payload {
		t.Fatalf("raw = %q", doc.Raw())
	}

	if _, err := New(schema.LoaderOptions{}).Load(context.Background(), schema.SourceFromFS("defs/forms.yaml")); err == nil {
		t.Fatalf("expected error without filesystem")
	}

	for _, tc := range []struct{ name, want string }{
		{"defs", "is a directory"},
		{"../forms.yaml", "invalid fs path"},
		{"defs/missing.yaml", "stat fs entry"},
	} {
		if _, err := loadFromFS(context.Background(), files, tc.name); err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("loadFromFS(%q) error = %v, want %q", tc.name, err, tc.want)
		}
	}
	if data, err := loadFromFS(context.Background(), files, "./defs/forms.yaml"); err != nil || string(data) != payload {
		t.Fatalf("loadFromFS with ./ prefix = %q, %v", data, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := loadFromFS(ctx, files, "defs/forms.yaml"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestLoadHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/forms.yaml":
			w.Header().Set("Content-Type", "application/yaml")
			_, _ = w.Write([]byte(payload))
		case "/forms":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"forms": {}}`))
		case "/slow":
			select {
			case <-r.Context().Done():
			case <-time.After(time.Second):
			}
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	l := New(schema.NewLoaderOptions(schema.WithHTTPClient(srv.Client())))
	doc, err := l.Load(context.Background(), schema.SourceFromURL(srv.URL+"/forms.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != payload {
		t.Fatalf("raw = %q", doc.Raw())
	}
	if doc.Format() != schema.FormatYAML {
		t.Fatalf("format = %q", doc.Format())
	}

	doc, err = l.Load(context.Background(), schema.SourceFromURL(srv.URL+"/forms"))
	if err != nil {
		t.Fatalf("load json: %v", err)
	}
	if doc.Format() != schema.FormatJSON {
		t.Fatalf("format = %q", doc.Format())
	}

	_, err = l.Load(context.Background(), schema.SourceFromURL(srv.URL+"/missing"))
	if err == nil || !strings.Contains(err.Error(), "404") {
		t.Fatalf("expected status error, got %v", err)
	}

	slow := New(schema.NewLoaderOptions(schema.WithHTTPClient(srv.Client()), schema.WithHTTPFallback(20*time.Millisecond)))
	if _, err := slow.Load(context.Background(), schema.SourceFromURL(srv.URL+"/slow")); err == nil {
		t.Fatalf("expected timeout error")
	}
}

func TestLoadHTTPDisabled(t *testing.T) {
	_, err := New(schema.LoaderOptions{}).Load(context.Background(), schema.SourceFromURL("https://example.com/forms.yaml"))
	if err == nil || !strings.Contains(err.Error(), "http support disabled") {
		t.Fatalf("expected disabled error, got %v", err)
	}
}

func TestLoadRejectsNilSourceAndCancelledContext(t *testing.T) {
	l := New(schema.LoaderOptions{})
	if _, err := l.Load(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil source")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := l.Load(ctx, schema.SourceFromFile("forms.yaml")); err == nil {
		t.Fatalf("expected error for cancelled context")
	}
}

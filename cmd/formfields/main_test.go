package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	color.NoColor = true

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestHTTPUtilCommands(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want string
	}{
		{"base36 encode", []string{"base36", "encode", "818469960"}, "django\n"},
		{"base36 decode", []string{"base36", "decode", "DJANGO"}, "818469960\n"},
		{"etag quote", []string{"etag", "quote", `a"b`}, `"a\"b"` + "\n"},
		{"etag parse", []string{"etag", "parse", `"a", W/"b"`}, "a\nb\n"},
		{"http date", []string{"date", "http", "0"}, "Thu, 01 Jan 1970 00:00:00 GMT\n"},
		{"cookie date", []string{"date", "cookie", "0"}, "Thu, 01-Jan-1970 00:00:00 GMT\n"},
		{"ip6", []string{"ip6", "normalize", "::1"}, "0:0:0:0:0:0:0:1\n"},
		{"quote", []string{"quote", "/a b"}, "/a%20b\n"},
		{"quote plus", []string{"quote", "--plus", "a b"}, "a+b\n"},
		{"quote no safe", []string{"quote", "--safe", "", "/a"}, "%2Fa\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, _, err := run(t, tc.args...)
			if err != nil {
				t.Fatalf("run %v: %v", tc.args, err)
			}
			if diff := cmp.Diff(tc.want, out); diff != "" {
				t.Fatalf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHTTPUtilCommandErrors(t *testing.T) {
	for _, args := range [][]string{
		{"base36", "encode", "-1"},
		{"base36", "encode", "ten"},
		{"base36", "decode", "not base 36!"},
		{"ip6", "normalize", "1::2::3"},
		{"date", "http", "soon"},
	} {
		if _, _, err := run(t, args...); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}
}

const signupDefinition = `
forms:
  signup:
    fields:
      - name: email
        type: email
      - name: age
        type: integer
        required: false
`

func TestCleanCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forms.yaml")
	if err := os.WriteFile(path, []byte(signupDefinition), 0o644); err != nil {
		t.Fatalf("write definition: %v", err)
	}

	out, _, err := run(t, "clean", "--def", path, "--form", "signup", "email=ada@example.com", "age=36")
	if err != nil {
		t.Fatalf("clean: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode output %q: %v", out, err)
	}
	want := map[string]any{"email": "ada@example.com", "age": float64(36)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("cleaned mismatch (-want +got):\n%s", diff)
	}

	_, stderr, err := run(t, "clean", "--def", path, "--form", "signup", "email=nope")
	if err == nil {
		t.Fatalf("expected validation failure")
	}
	if !strings.Contains(stderr, "email\n* Enter a valid e-mail address.") {
		t.Fatalf("stderr = %q", stderr)
	}

	if _, _, err := run(t, "clean", "--def", path, "--form", "login"); err == nil || !strings.Contains(err.Error(), "available: signup") {
		t.Fatalf("expected unknown form error, got %v", err)
	}
	if _, _, err := run(t, "clean", "--def", path, "--form", "signup", "email"); err == nil {
		t.Fatalf("expected error for an argument without =")
	}
}

func TestOpenAPIListCommand(t *testing.T) {
	doc := `{"openapi": "3.0.3", "info": {"title": "Pets", "version": "1"}, "paths": {"/pets": {"post": {
		"operationId": "createPet", "summary": "Add a pet",
		"requestBody": {"content": {"application/json": {"schema": {"type": "object", "properties": {"name": {"type": "string"}}}}}},
		"responses": {"201": {"description": "created"}}}}}}`
	path := filepath.Join(t.TempDir(), "api.json")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write document: %v", err)
	}

	out, _, err := run(t, "openapi", "--source", path, "--list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "createPet") || !strings.Contains(out, "POST /pets") || !strings.Contains(out, "Add a pet") {
		t.Fatalf("output = %q", out)
	}

	out, _, err = run(t, "openapi", "--source", path, "--operation", "createPet", "name=Rex")
	if err != nil {
		t.Fatalf("clean: %v", err)
	}
	if !strings.Contains(out, `"name": "Rex"`) {
		t.Fatalf("output = %q", out)
	}
}

package fields

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
)

const invalidURL = "Enter a valid URL."

func TestURLField(t *testing.T) {
	t.Run("required", func(t *testing.T) {
		runCleanCases(t, NewURLField(URLConfig{}), []cleanCase{
			bad("", requiredMsg),
			bad(nil, requiredMsg),
			ok("http://localhost", "http://localhost/"),
			ok("http://example.com", "http://example.com/"),
			ok("http://www.example.com", "http://www.example.com/"),
			ok("http://www.example.com:8000/test", "http://www.example.com:8000/test"),
			ok("valid-with-hyphens.com", "http://valid-with-hyphens.com/"),
			ok("subdomain.domain.com", "http://subdomain.domain.com/"),
			ok("http://200.8.9.10", "http://200.8.9.10/"),
			ok("http://200.8.9.10:8000/test", "http://200.8.9.10:8000/test"),
			bad("foo", invalidURL),
			bad("http://", invalidURL),
			bad("http://example", invalidURL),
			bad("http://example.", invalidURL),
			bad("http://.com", invalidURL),
			bad("http://invalid-.com", invalidURL),
			bad("http://-invalid.com", invalidURL),
			bad("http://inv-.alid-.com", invalidURL),
			bad("http://inv-.-alid.com", invalidURL),
			ok("http://valid-----hyphens.com", "http://valid-----hyphens.com/"),
			ok("http://example.com/test", "http://example.com/test"),
		})
	})

	t.Run("optional", func(t *testing.T) {
		runCleanCases(t, NewURLField(URLConfig{}, Required(false)), []cleanCase{
			ok("", ""),
			ok(nil, ""),
			ok("example.com", "http://example.com/"),
			ok("https://example.com", "https://example.com/"),
			ok("http://www.example.com", "http://www.example.com/"),
			bad("foo", invalidURL),
			bad("http://", invalidURL),
			bad("http://example", invalidURL),
			bad("http://example.", invalidURL),
			bad("http://.com", invalidURL),
		})
	})

	t.Run("length counts the normalised url", func(t *testing.T) {
		runCleanCases(t, NewURLField(URLConfig{CharConfig: CharConfig{MinLength: Int(15), MaxLength: Int(20)}}), []cleanCase{
			bad("http://f.com", "Ensure this value has at least 15 characters (it has 13)."),
			ok("http://example.com", "http://example.com/"),
			bad("http://abcdefghijklmnopqrstuvwxyz.com", "Ensure this value has at most 20 characters (it has 38)."),
		})
	})
}

func TestURLFieldVerifyExists(t *testing.T) {
	var userAgent, accept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
		accept = r.Header.Get("Accept")
		if r.URL.Path == "/missing.html" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	field := NewURLField(URLConfig{VerifyExists: true, Client: srv.Client(), UserAgent: "formfields-test"})
	if !field.VerifiesExistence() {
		t.Fatalf("expected verification to be enabled")
	}

	got, err := field.Clean(srv.URL)
	if err != nil {
		t.Fatalf("clean live url: %v", err)
	}
	if got != srv.URL+"/" {
		t.Fatalf("clean = %v, want %s/", got, srv.URL)
	}
	if userAgent != "formfields-test" || accept == "" {
		t.Fatalf("verification headers not sent: ua=%q accept=%q", userAgent, accept)
	}

	runCleanCases(t, field, []cleanCase{
		bad(srv.URL+"/missing.html", "This URL appears to be a broken link."),
		bad("http://example", invalidURL),
	})

	optional := NewURLField(URLConfig{VerifyExists: true, Client: srv.Client()}, Required(false))
	runCleanCases(t, optional, []cleanCase{ok("", "")})
}

type failingDoer struct{}

func (failingDoer) Do(*http.Request) (*http.Response, error) {
	return nil, errors.New("dial tcp: no such host")
}

func TestURLFieldVerifyTransportError(t *testing.T) {
	field := NewURLField(URLConfig{VerifyExists: true, Client: failingDoer{}})
	runCleanCases(t, field, []cleanCase{
		bad("http://www.broken.example.com", "This URL appears to be a broken link."),
	})
}

func TestURLFieldVerifyHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	field := NewURLField(URLConfig{VerifyExists: true, Client: srv.Client()})
	_, err := field.CleanContext(ctx, srv.URL)
	if got := Messages(err); len(got) != 1 || got[0] != "This URL appears to be a broken link." {
		t.Fatalf("cancelled verification = %q", got)
	}
}

// TestURLFieldVerifyLive reaches the public internet and only runs when
// FORMFIELDS_NETWORK_TESTS is set.
func TestURLFieldVerifyLive(t *testing.T) {
	if os.Getenv("FORMFIELDS_NETWORK_TESTS") == "" {
		t.Skip("set FORMFIELDS_NETWORK_TESTS to run live URL checks")
	}
	field := NewURLField(URLConfig{VerifyExists: true})
	if _, err := field.Clean("http://www.google.com"); err != nil {
		t.Fatalf("live url rejected: %v", err)
	}
	if _, err := field.Clean("http://www.broken.djangoproject.com"); err == nil {
		t.Fatalf("bad domain accepted")
	}
}

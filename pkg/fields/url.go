package fields

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"time"
)

var urlPattern = regexp.MustCompile(`(?i)^https?://` +
	`(?:(?:[A-Z0-9]+(?:-*[A-Z0-9]+)*\.)+[A-Z]{2,6}|` +
	`localhost|` +
	`\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})` +
	`(?::\d+)?` +
	`(?:/?|/\S+)$`)

// DefaultUserAgent is sent when verifying that a URL exists.
const DefaultUserAgent = "go-formfields (+https://github.com/goliatone/go-formfields)"

// DefaultVerifyTimeout bounds a single existence check.
const DefaultVerifyTimeout = 10 * time.Second

var verifyHeaders = map[string]string{
	"Accept":          "text/xml,application/xml,application/xhtml+xml,text/html;q=0.9,text/plain;q=0.8,image/png,*/*;q=0.5",
	"Accept-Language": "en-us,en;q=0.5",
	"Accept-Charset":  "ISO-8859-1,utf-8;q=0.7,*;q=0.7",
	"Connection":      "close",
}

// Doer sends HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// URLConfig configures a URLField.
type URLConfig struct {
	CharConfig
	// VerifyExists issues a GET for every cleaned URL and rejects URLs that
	// fail or answer with a status of 400 or above.
	VerifyExists bool
	Client       Doer
	UserAgent    string
	Timeout      time.Duration
}

// URLField accepts http and https URLs. A missing scheme defaults to
// http:// and a missing path to "/".
type URLField struct {
	RegexField
	verify    bool
	client    Doer
	userAgent string
	timeout   time.Duration
}

// NewURLField constructs a URLField.
func NewURLField(cfg URLConfig, opts ...Option) *URLField {
	field := &URLField{
		RegexField: newRegexField(urlPattern, RegexConfig{CharConfig: cfg.CharConfig}, map[string]string{
			CodeInvalid:     "Enter a valid URL.",
			CodeInvalidLink: "This URL appears to be a broken link.",
		}, opts),
		verify:    cfg.VerifyExists,
		client:    cfg.Client,
		userAgent: cfg.UserAgent,
		timeout:   cfg.Timeout,
	}
	if field.client == nil {
		field.client = http.DefaultClient
	}
	if field.userAgent == "" {
		field.userAgent = DefaultUserAgent
	}
	if field.timeout <= 0 {
		field.timeout = DefaultVerifyTimeout
	}
	return field
}

// Kind implements Field.
func (f *URLField) Kind() string { return KindURL }

// VerifiesExistence reports whether cleaning performs a network check.
func (f *URLField) VerifiesExistence() bool { return f.verify }

// Clean implements Field using a background context.
func (f *URLField) Clean(value any) (any, error) {
	return f.CleanContext(context.Background(), value)
}

// CleanContext implements ContextCleaner. ctx bounds the existence check.
func (f *URLField) CleanContext(ctx context.Context, value any) (any, error) {
	if text, ok := value.(string); ok && text != "" {
		value = normalizeURL(text)
	}

	cleaned, err := f.RegexField.Clean(value)
	if err != nil {
		return nil, err
	}
	text, _ := cleaned.(string)
	if text == "" || !f.verify {
		return cleaned, nil
	}
	if err := f.checkExists(ctx, text); err != nil {
		return nil, err
	}
	return cleaned, nil
}

func (f *URLField) checkExists(ctx context.Context, target string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return f.fail(CodeInvalid)
	}
	for name, value := range verifyHeaders {
		req.Header.Set(name, value)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Close = true

	resp, err := f.client.Do(req)
	if err != nil {
		return f.fail(CodeInvalidLink)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		return f.fail(CodeInvalidLink)
	}
	return nil
}

// normalizeURL adds a default scheme and path. Only the part after the
// authority is inspected for a path, so "http://example.com" gains a "/"
// while "http://example.com/test" is left alone.
func normalizeURL(value string) string {
	if !strings.Contains(value, "://") {
		value = "http://" + value
	}
	if urlPath(value) == "" {
		value += "/"
	}
	return value
}

func urlPath(value string) string {
	rest := value
	if idx := strings.Index(rest, "://"); idx >= 0 {
		rest = rest[idx+3:]
		end := strings.IndexAny(rest, "/?#")
		if end < 0 {
			return ""
		}
		rest = rest[end:]
	}
	if end := strings.IndexAny(rest, "?#"); end >= 0 {
		rest = rest[:end]
	}
	return rest
}

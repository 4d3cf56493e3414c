package httputil

import "time"

const (
	httpDateLayout   = "Mon, 02 Jan 2006 15:04:05 GMT"
	cookieDateLayout = "Mon, 02-Jan-2006 15:04:05 GMT"
)

var now = time.Now

// HTTPDate formats t as an RFC 1123 date for HTTP headers, for example
// "Wed, 25 Oct 2006 14:30:45 GMT". The zero time formats the current time.
func HTTPDate(t time.Time) string {
	return utc(t).Format(httpDateLayout)
}

// CookieDate formats t in the Netscape cookie "expires" format, which uses
// dashes between day, month and year: "Wed, 25-Oct-2006 14:30:45 GMT". The
// zero time formats the current time.
func CookieDate(t time.Time) string {
	return utc(t).Format(cookieDateLayout)
}

// FromEpoch converts seconds since the Unix epoch to a UTC time, dropping
// any fractional second.
func FromEpoch(seconds float64) time.Time {
	return time.Unix(int64(seconds), 0).UTC()
}

// ParseHTTPDate parses a date previously produced by HTTPDate, as found in
// If-Modified-Since and similar headers.
func ParseHTTPDate(value string) (time.Time, error) {
	t, err := time.Parse(httpDateLayout, value)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func utc(t time.Time) time.Time {
	if t.IsZero() {
		t = now()
	}
	return t.UTC()
}

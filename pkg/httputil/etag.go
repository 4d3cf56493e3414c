package httputil

import (
	"regexp"
	"strconv"
	"strings"
)

var etagPattern = regexp.MustCompile(`(?:W/)?"((?:\\.|[^"])*)"`)

// ParseETags extracts the entity tags from an If-None-Match or If-Match
// header, removing weak markers and decoding backslash escapes. A header
// that holds no quoted tag is returned whole as a single opaque tag.
func ParseETags(header string) []string {
	matches := etagPattern.FindAllStringSubmatch(header, -1)
	if len(matches) == 0 {
		return []string{header}
	}

	etags := make([]string, 0, len(matches))
	for _, match := range matches {
		etags = append(etags, unescape(match[1]))
	}
	return etags
}

// QuoteETag wraps etag in double quotes, escaping backslashes and quotes so
// ParseETags recovers the original value.
func QuoteETag(etag string) string {
	escaped := strings.ReplaceAll(etag, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	return `"` + escaped + `"`
}

// MatchETag reports whether any tag in the header equals etag. The wildcard
// "*" matches everything.
func MatchETag(header, etag string) bool {
	if strings.TrimSpace(header) == "*" {
		return true
	}
	for _, candidate := range ParseETags(header) {
		if candidate == etag || candidate == "*" {
			return true
		}
	}
	return false
}

func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			b.WriteByte(c)
			continue
		}

		next := s[i+1]
		switch next {
		case '\\', '"', '\'':
			b.WriteByte(next)
			i++
		case 'n':
			b.WriteByte('\n')
			i++
		case 'r':
			b.WriteByte('\r')
			i++
		case 't':
			b.WriteByte('\t')
			i++
		case 'a':
			b.WriteByte('\a')
			i++
		case 'b':
			b.WriteByte('\b')
			i++
		case 'f':
			b.WriteByte('\f')
			i++
		case 'v':
			b.WriteByte('\v')
			i++
		case '\n':
			i++
		case 'x':
			if i+3 < len(s) && isHex(s[i+2]) && isHex(s[i+3]) {
				v, _ := strconv.ParseUint(s[i+2:i+4], 16, 8)
				b.WriteByte(byte(v))
				i += 3
				continue
			}
			b.WriteByte(c)
		default:
			if n, width := octal(s[i+1:]); width > 0 {
				b.WriteByte(n)
				i += width
				continue
			}
			b.WriteByte(c)
		}
	}
	return b.String()
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// octal reads up to three octal digits.
func octal(s string) (byte, int) {
	var n int
	width := 0
	for width < 3 && width < len(s) && '0' <= s[width] && s[width] <= '7' {
		n = n*8 + int(s[width]-'0')
		width++
	}
	return byte(n), width
}

package httputil

import (
	"net/url"
	"sort"
	"strings"

	"github.com/goliatone/go-formfields/internal/textconv"
)

const alwaysSafe = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_.-"

const upperHex = "0123456789ABCDEF"

// URLQuote percent-encodes the UTF-8 bytes of s. Letters, digits, "_", "."
// and "-" are never quoted; bytes listed in safe are kept as well. Pass "/"
// to leave path separators untouched.
func URLQuote(s, safe string) string {
	return quote(s, safe, false)
}

// URLQuotePlus behaves like URLQuote but encodes spaces as "+", which is the
// form encoding used in query strings.
func URLQuotePlus(s, safe string) string {
	return quote(s, safe, true)
}

func quote(s, safe string, plus bool) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case plus && c == ' ':
			b.WriteByte('+')
		case keepByte(c, safe):
			b.WriteByte(c)
		default:
			b.WriteByte('%')
			b.WriteByte(upperHex[c>>4])
			b.WriteByte(upperHex[c&0x0f])
		}
	}
	return b.String()
}

func keepByte(c byte, safe string) bool {
	if strings.IndexByte(alwaysSafe, c) >= 0 {
		return true
	}
	return c < 0x80 && strings.IndexByte(safe, c) >= 0
}

// QueryPair is one key of a query string with its values. A pair holding a
// single value is encoded as a scalar.
type QueryPair struct {
	Key    string
	Values []string
}

// Pair builds a QueryPair.
func Pair(key string, values ...string) QueryPair {
	return QueryPair{Key: key, Values: values}
}

// PairsFromValues converts url.Values into pairs sorted by key.
func PairsFromValues(values url.Values) []QueryPair {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]QueryPair, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, QueryPair{Key: key, Values: append([]string(nil), values[key]...)})
	}
	return pairs
}

// URLEncode renders pairs as an application/x-www-form-urlencoded query
// string, keeping the order of pairs. When doseq is true each value of a
// multi-valued key becomes its own key=value item; otherwise the values are
// rendered as one bracketed list such as ['a', 'b'].
func URLEncode(pairs []QueryPair, doseq bool) string {
	items := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		key := URLQuotePlus(pair.Key, "")
		switch {
		case len(pair.Values) == 1:
			items = append(items, key+"="+URLQuotePlus(pair.Values[0], ""))
		case doseq:
			for _, value := range pair.Values {
				items = append(items, key+"="+URLQuotePlus(value, ""))
			}
		default:
			items = append(items, key+"="+URLQuotePlus(textconv.String(pair.Values), ""))
		}
	}
	return strings.Join(items, "&")
}

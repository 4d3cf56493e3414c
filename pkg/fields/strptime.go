package fields

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"

	"cloud.google.com/go/civil"
)

// directivePatterns maps strftime directives to the text they accept.
var directivePatterns = map[byte]string{
	'd': `3[01]|[12]\d|0[1-9]|[1-9]| [1-9]`,
	'H': `2[0-3]|[0-1]\d|\d`,
	'I': `1[0-2]|0[1-9]|[1-9]`,
	'm': `1[0-2]|0[1-9]|[1-9]`,
	'M': `[0-5]\d|\d`,
	'S': `6[0-1]|[0-5]\d|\d`,
	'y': `\d\d`,
	'Y': `\d\d\d\d`,
	'b': `jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec`,
	'B': `january|february|march|april|may|june|july|august|september|october|november|december`,
	'p': `am|pm`,
}

var monthNames = []string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

type layout struct {
	re         *regexp.Regexp
	directives []byte
}

type compiledLayout struct {
	layout *layout
	err    error
}

var layouts sync.Map

// compileLayout turns a strftime style format into an anchored,
// case-insensitive pattern. Whitespace in the format matches any run of
// whitespace.
func compileLayout(format string) (*layout, error) {
	if cached, ok := layouts.Load(format); ok {
		entry := cached.(compiledLayout)
		return entry.layout, entry.err
	}

	l, err := buildLayout(format)
	layouts.Store(format, compiledLayout{layout: l, err: err})
	return l, err
}

func buildLayout(format string) (*layout, error) {
	var (
		b    strings.Builder
		seen = make(map[byte]bool)
		l    = &layout{}
	)
	b.WriteString(`(?i)^`)

	for i := 0; i < len(format); i++ {
		c := format[i]
		switch {
		case c == '%':
			if i+1 == len(format) {
				return nil, fmt.Errorf("fields: format %q ends with a lone %%", format)
			}
			i++
			directive := format[i]
			if directive == '%' {
				b.WriteString(`%`)
				continue
			}
			pattern, ok := directivePatterns[directive]
			if !ok {
				return nil, fmt.Errorf("fields: format %q: unsupported directive %%%c", format, directive)
			}
			if seen[directive] {
				return nil, fmt.Errorf("fields: format %q repeats %%%c", format, directive)
			}
			seen[directive] = true
			b.WriteString("(" + pattern + ")")
			l.directives = append(l.directives, directive)
		case unicode.IsSpace(rune(c)):
			for i+1 < len(format) && unicode.IsSpace(rune(format[i+1])) {
				i++
			}
			b.WriteString(`\s+`)
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	b.WriteString(`$`)

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, fmt.Errorf("fields: format %q: %w", format, err)
	}
	l.re = re
	return l, nil
}

// timestamp is the broken down result of parsing with a layout. Unset parts
// default to 1900-01-01 00:00:00.
type timestamp struct {
	year, month, day     int
	hour, minute, second int
}

func (t timestamp) date() (civil.Date, bool) {
	d := civil.Date{Year: t.year, Month: time.Month(t.month), Day: t.day}
	if t.year < 1 || !d.IsValid() {
		return civil.Date{}, false
	}
	return d, true
}

func (t timestamp) clock() (civil.Time, bool) {
	c := civil.Time{Hour: t.hour, Minute: t.minute, Second: t.second}
	if !c.IsValid() || t.second > 59 {
		return civil.Time{}, false
	}
	return c, true
}

// parseFormats tries each format in order and returns the first match.
// Formats that do not compile never match.
func parseFormats(value string, formats []string, valid func(timestamp) bool) (timestamp, bool) {
	for _, format := range formats {
		l, err := compileLayout(format)
		if err != nil {
			continue
		}
		ts, ok := l.parse(value)
		if ok && valid(ts) {
			return ts, true
		}
	}
	return timestamp{}, false
}

func (l *layout) parse(value string) (timestamp, bool) {
	match := l.re.FindStringSubmatch(value)
	if match == nil {
		return timestamp{}, false
	}

	ts := timestamp{year: 1900, month: 1, day: 1}
	var (
		hour12   = -1
		meridiem string
	)
	for i, directive := range l.directives {
		text := strings.TrimSpace(match[i+1])
		switch directive {
		case 'b', 'B':
			ts.month = monthIndex(text)
		case 'p':
			meridiem = strings.ToLower(text)
		default:
			n, err := strconv.Atoi(text)
			if err != nil {
				return timestamp{}, false
			}
			switch directive {
			case 'Y':
				ts.year = n
			case 'y':
				if n <= 68 {
					ts.year = 2000 + n
				} else {
					ts.year = 1900 + n
				}
			case 'm':
				ts.month = n
			case 'd':
				ts.day = n
			case 'H':
				ts.hour = n
			case 'I':
				hour12 = n
			case 'M':
				ts.minute = n
			case 'S':
				ts.second = n
			}
		}
	}

	if hour12 >= 0 {
		ts.hour = hour12
		switch {
		case meridiem == "pm" && hour12 != 12:
			ts.hour = hour12 + 12
		case meridiem != "pm" && hour12 == 12:
			ts.hour = 0
		}
	}
	return ts, true
}

func monthIndex(name string) int {
	name = strings.ToLower(name)
	for i, month := range monthNames {
		if name == month || name == month[:3] {
			return i + 1
		}
	}
	return 0
}

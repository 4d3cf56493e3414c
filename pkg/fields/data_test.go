package fields

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValueFromData(t *testing.T) {
	data := url.Values{
		"name":       {"first", "last"},
		"flag":       {"FALSE"},
		"on":         {"True"},
		"raw":        {"yes"},
		"pick":       {"1", "2"},
		"when_0":     {"2006-01-10"},
		"when_1":     {"07:30"},
		"empty_pick": {},
	}

	cases := []struct {
		name  string
		field Field
		key   string
		want  any
	}{
		{"last value wins", NewCharField(CharConfig{}), "name", "last"},
		{"missing key", NewCharField(CharConfig{}), "absent", nil},
		{"checkbox false", NewBooleanField(), "flag", false},
		{"checkbox text", NewBooleanField(), "on", true},
		{"checkbox other text", NewBooleanField(), "raw", "yes"},
		{"checkbox missing", NewBooleanField(), "absent", false},
		{"multiple values", NewMultipleChoiceField(oneTwo()), "pick", []string{"1", "2"}},
		{"multiple missing", NewMultipleChoiceField(oneTwo()), "absent", nil},
		{"split parts", NewSplitDateTimeField(SplitDateTimeConfig{}), "when", []any{"2006-01-10", "07:30"}},
		{"split missing", NewSplitDateTimeField(SplitDateTimeConfig{}), "absent", []any{nil, nil}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ValueFromData(tc.field, data, nil, tc.key)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("value mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

package fields

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestComboField(t *testing.T) {
	parts := func() []Field {
		return []Field{NewCharField(CharConfig{MaxLength: Int(20)}), NewEmailField(CharConfig{})}
	}

	t.Run("required", func(t *testing.T) {
		runCleanCases(t, NewComboField(parts()), []cleanCase{
			ok("test@example.com", "test@example.com"),
			bad("longemailaddress@example.com", "Ensure this value has at most 20 characters (it has 28)."),
			bad("not an e-mail", "Enter a valid e-mail address."),
			bad("", requiredMsg),
			bad(nil, requiredMsg),
		})
	})

	t.Run("optional", func(t *testing.T) {
		runCleanCases(t, NewComboField(parts(), Required(false)), []cleanCase{
			ok("test@example.com", "test@example.com"),
			bad("longemailaddress@example.com", "Ensure this value has at most 20 characters (it has 28)."),
			bad("not an e-mail", "Enter a valid e-mail address."),
			ok("", ""),
			ok(nil, ""),
		})
	})

	t.Run("sub-fields become optional", func(t *testing.T) {
		sub := parts()
		NewComboField(sub)
		for _, field := range sub {
			if field.IsRequired() {
				t.Fatalf("%s sub-field still required", field.Kind())
			}
		}
	})
}

func TestSplitDateTimeField(t *testing.T) {
	const (
		invalidDate = "Enter a valid date."
		invalidTime = "Enter a valid time."
		invalidList = "Enter a list of values."
	)
	want := stamp(2006, time.January, 10, 7, 30, 0, 0)

	t.Run("required", func(t *testing.T) {
		runCleanCases(t, NewSplitDateTimeField(SplitDateTimeConfig{}), []cleanCase{
			ok([]any{date(2006, time.January, 10), clock(7, 30, 0)}, want),
			bad(nil, requiredMsg),
			bad("", requiredMsg),
			bad("hello", invalidList),
			bad([]string{"hello", "there"}, invalidDate, invalidTime),
			bad([]string{"2006-01-10", "there"}, invalidTime),
			bad([]string{"hello", "07:30"}, invalidDate),
			bad([]string{"2006-01-10", ""}, requiredMsg),
		})
	})

	t.Run("optional", func(t *testing.T) {
		runCleanCases(t, NewSplitDateTimeField(SplitDateTimeConfig{}, Required(false)), []cleanCase{
			ok([]any{date(2006, time.January, 10), clock(7, 30, 0)}, want),
			ok([]string{"2006-01-10", "07:30"}, want),
			ok(nil, nil),
			ok("", nil),
			ok([]string{""}, nil),
			ok([]string{"", ""}, nil),
			bad("hello", invalidList),
			bad([]string{"hello", "there"}, invalidDate, invalidTime),
			bad([]string{"2006-01-10", "there"}, invalidTime),
			bad([]string{"hello", "07:30"}, invalidDate),
			bad([]string{"2006-01-10", ""}, invalidTime),
			bad([]string{"2006-01-10"}, invalidTime),
			bad([]string{"", "07:30"}, invalidDate),
		})
	})

	t.Run("custom messages", func(t *testing.T) {
		field := NewSplitDateTimeField(SplitDateTimeConfig{}, Required(false), ErrorMessages(map[string]string{
			CodeInvalidDate: "Bad day.",
		}))
		runCleanCases(t, field, []cleanCase{
			bad([]string{"hello", "07:30"}, "Bad day."),
			bad([]string{"", "07:30"}, "Bad day."),
		})
	})

	if got := NewSplitDateTimeField(SplitDateTimeConfig{}).Kind(); got != KindSplitDateTime {
		t.Fatalf("Kind() = %q", got)
	}
}

func TestMultiValueFieldCompress(t *testing.T) {
	join := func(values []any) (any, error) {
		if len(values) == 0 {
			return "", nil
		}
		parts := make([]string, len(values))
		for i, v := range values {
			parts[i] = v.(string)
		}
		return strings.Join(parts, "-"), nil
	}
	field := NewMultiValueField([]Field{
		MustRegexField(`^\d{3}$`, RegexConfig{}),
		MustRegexField(`^\d{4}$`, RegexConfig{}),
	}, join, Required(false))

	runCleanCases(t, field, []cleanCase{
		ok([]string{"555", "0100"}, "555-0100"),
		ok([]string{"", ""}, ""),
		bad([]string{"55", "01"}, "Enter a valid value.", "Enter a valid value."),
	})

	failing := NewMultiValueField([]Field{NewCharField(CharConfig{})}, func([]any) (any, error) {
		return nil, errors.New("boom")
	})
	_, err := failing.Clean([]string{"x"})
	if got := Messages(err); len(got) != 1 || got[0] != "Enter a list of values." {
		t.Fatalf("compress failure messages = %q", got)
	}
}

type stubContextField struct {
	CharField
	seen context.Context
}

func (s *stubContextField) CleanContext(ctx context.Context, value any) (any, error) {
	s.seen = ctx
	return s.CharField.Clean(value)
}

func TestComboFieldPassesContext(t *testing.T) {
	type key struct{}
	sub := &stubContextField{CharField: *NewCharField(CharConfig{})}
	combo := NewComboField([]Field{sub})

	ctx := context.WithValue(context.Background(), key{}, "v")
	if _, err := Clean(ctx, combo, "x"); err != nil {
		t.Fatalf("clean: %v", err)
	}
	if sub.seen == nil || sub.seen.Value(key{}) != "v" {
		t.Fatalf("context not propagated to sub-field")
	}
}

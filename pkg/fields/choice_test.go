package fields

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func oneTwo() []Choice {
	return []Choice{NewChoice("1", "One"), NewChoice("2", "Two")}
}

func grouped() []Choice {
	return []Choice{
		Group("Numbers", NewChoice("1", "One"), NewChoice("2", "Two")),
		Group("Letters", NewChoice("3", "A"), NewChoice("4", "B")),
		NewChoice("5", "Other"),
	}
}

func notAvailable(value string) string {
	return "Select a valid choice. " + value + " is not one of the available choices."
}

func TestChoiceField(t *testing.T) {
	t.Run("required", func(t *testing.T) {
		runCleanCases(t, NewChoiceField(oneTwo()), []cleanCase{
			bad("", requiredMsg),
			bad(nil, requiredMsg),
			ok(1, "1"),
			ok("1", "1"),
			bad("3", notAvailable("3")),
		})
	})

	t.Run("optional", func(t *testing.T) {
		runCleanCases(t, NewChoiceField(oneTwo(), Required(false)), []cleanCase{
			ok("", ""),
			ok(nil, ""),
			ok(1, "1"),
			ok("1", "1"),
			bad("3", notAvailable("3")),
		})
	})

	t.Run("values not labels", func(t *testing.T) {
		field := NewChoiceField([]Choice{NewChoice("J", "John"), NewChoice("P", "Paul")})
		runCleanCases(t, field, []cleanCase{
			ok("J", "J"),
			bad("John", notAvailable("John")),
		})
	})

	t.Run("grouped", func(t *testing.T) {
		runCleanCases(t, NewChoiceField(grouped()), []cleanCase{
			ok(1, "1"),
			ok("1", "1"),
			ok(3, "3"),
			ok("3", "3"),
			ok(5, "5"),
			ok("5", "5"),
			bad("6", notAvailable("6")),
			bad("Numbers", notAvailable("Numbers")),
		})
	})
}

func TestFlattenChoices(t *testing.T) {
	want := []Choice{
		NewChoice("1", "One"), NewChoice("2", "Two"),
		NewChoice("3", "A"), NewChoice("4", "B"),
		NewChoice("5", "Other"),
	}
	if diff := cmp.Diff(want, FlattenChoices(grouped())); diff != "" {
		t.Fatalf("flatten mismatch (-want +got):\n%s", diff)
	}
}

func TestTypedChoiceField(t *testing.T) {
	signs := []Choice{NewChoice(1, "+1"), NewChoice(-1, "-1")}

	t.Run("int", func(t *testing.T) {
		runCleanCases(t, NewTypedChoiceField(signs, CoerceInt), []cleanCase{
			ok("1", int64(1)),
			ok("-1", int64(-1)),
			bad("2", notAvailable("2")),
		})
	})

	t.Run("float", func(t *testing.T) {
		runCleanCases(t, NewTypedChoiceField(signs, CoerceFloat), []cleanCase{
			ok("1", 1.0),
		})
	})

	t.Run("bool", func(t *testing.T) {
		runCleanCases(t, NewTypedChoiceField(signs, CoerceBool), []cleanCase{
			ok("-1", true),
		})
	})

	t.Run("coercion failure", func(t *testing.T) {
		field := NewTypedChoiceField([]Choice{NewChoice("A", "A"), NewChoice("B", "B")}, CoerceInt)
		runCleanCases(t, field, []cleanCase{
			bad("B", notAvailable("B")),
			bad("", requiredMsg),
		})
	})

	t.Run("optional", func(t *testing.T) {
		runCleanCases(t, NewTypedChoiceField(signs, CoerceInt, Required(false)), []cleanCase{
			ok("", ""),
		})
	})

	t.Run("optional with nil empty value", func(t *testing.T) {
		runCleanCases(t, NewTypedChoiceField(signs, CoerceInt, Required(false), EmptyValue(nil)), []cleanCase{
			ok("", nil),
			ok("1", int64(1)),
		})
	})

	t.Run("nil coerce keeps text", func(t *testing.T) {
		runCleanCases(t, NewTypedChoiceField(signs, nil), []cleanCase{
			ok(1, "1"),
		})
	})
}

func TestMultipleChoiceField(t *testing.T) {
	const invalidList = "Enter a list of values."

	t.Run("required", func(t *testing.T) {
		runCleanCases(t, NewMultipleChoiceField(oneTwo()), []cleanCase{
			bad("", requiredMsg),
			bad(nil, requiredMsg),
			ok([]int{1}, []string{"1"}),
			ok([]string{"1"}, []string{"1"}),
			ok([]string{"1", "2"}, []string{"1", "2"}),
			ok([]any{1, "2"}, []string{"1", "2"}),
			ok([2]any{1, "2"}, []string{"1", "2"}),
			bad("hello", invalidList),
			bad([]string{}, requiredMsg),
			bad([0]any{}, requiredMsg),
			bad([]string{"3"}, notAvailable("3")),
		})
	})

	t.Run("optional", func(t *testing.T) {
		runCleanCases(t, NewMultipleChoiceField(oneTwo(), Required(false)), []cleanCase{
			ok("", []string{}),
			ok(nil, []string{}),
			ok([]int{1}, []string{"1"}),
			ok([]any{1, "2"}, []string{"1", "2"}),
			bad("hello", invalidList),
			ok([]string{}, []string{}),
			ok([0]any{}, []string{}),
			bad([]string{"3"}, notAvailable("3")),
		})
	})

	t.Run("grouped", func(t *testing.T) {
		runCleanCases(t, NewMultipleChoiceField(grouped()), []cleanCase{
			ok([]int{1}, []string{"1"}),
			ok([]string{"1"}, []string{"1"}),
			ok([]int{1, 5}, []string{"1", "5"}),
			ok([]any{1, "5"}, []string{"1", "5"}),
			ok([]any{"1", 5}, []string{"1", "5"}),
			ok([]string{"1", "5"}, []string{"1", "5"}),
			bad([]string{"6"}, notAvailable("6")),
			bad([]string{"1", "6"}, notAvailable("6")),
		})
	})
}

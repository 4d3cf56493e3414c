package fields

import (
	"errors"
	"math"
	"testing"
)

func TestIntegerField(t *testing.T) {
	const invalid = "Enter a whole number."

	t.Run("required", func(t *testing.T) {
		runCleanCases(t, NewIntegerField(IntegerConfig{}), []cleanCase{
			bad("", requiredMsg),
			bad(nil, requiredMsg),
			ok("1", int64(1)),
			ok("23", int64(23)),
			bad("a", invalid),
			ok(42, int64(42)),
			bad(3.14, invalid),
			ok("1 ", int64(1)),
			ok(" 1", int64(1)),
			ok(" 1 ", int64(1)),
			bad("1a", invalid),
		})
	})

	t.Run("optional", func(t *testing.T) {
		runCleanCases(t, NewIntegerField(IntegerConfig{}, Required(false)), []cleanCase{
			ok("", nil),
			ok(nil, nil),
			ok("1", int64(1)),
			bad("a", invalid),
		})
	})

	t.Run("max", func(t *testing.T) {
		runCleanCases(t, NewIntegerField(IntegerConfig{MaxValue: Int64(10)}), []cleanCase{
			bad(nil, requiredMsg),
			ok(1, int64(1)),
			ok(10, int64(10)),
			bad(11, "Ensure this value is less than or equal to 10."),
			ok("10", int64(10)),
			bad("11", "Ensure this value is less than or equal to 10."),
		})
	})

	t.Run("min", func(t *testing.T) {
		runCleanCases(t, NewIntegerField(IntegerConfig{MinValue: Int64(10)}), []cleanCase{
			bad(1, "Ensure this value is greater than or equal to 10."),
			ok(10, int64(10)),
			ok("11", int64(11)),
		})
	})

	t.Run("range", func(t *testing.T) {
		runCleanCases(t, NewIntegerField(IntegerConfig{MinValue: Int64(10), MaxValue: Int64(20)}), []cleanCase{
			bad(1, "Ensure this value is greater than or equal to 10."),
			ok(10, int64(10)),
			ok(20, int64(20)),
			bad(21, "Ensure this value is less than or equal to 20."),
		})
	})
}

func TestFloatField(t *testing.T) {
	const invalid = "Enter a number."

	t.Run("required", func(t *testing.T) {
		runCleanCases(t, NewFloatField(FloatConfig{}), []cleanCase{
			bad("", requiredMsg),
			bad(nil, requiredMsg),
			ok("1", 1.0),
			ok("23", 23.0),
			ok("3.14", 3.14),
			ok(3.14, 3.14),
			ok(42, 42.0),
			bad("a", invalid),
			ok("1.0 ", 1.0),
			ok(" 1.0", 1.0),
			ok(" 1.0 ", 1.0),
			bad("1.0a", invalid),
		})
	})

	t.Run("optional", func(t *testing.T) {
		runCleanCases(t, NewFloatField(FloatConfig{}, Required(false)), []cleanCase{
			ok("", nil),
			ok(nil, nil),
			ok("1", 1.0),
		})
	})

	t.Run("range", func(t *testing.T) {
		runCleanCases(t, NewFloatField(FloatConfig{MaxValue: Float(1.5), MinValue: Float(0.5)}), []cleanCase{
			bad("1.6", "Ensure this value is less than or equal to 1.5."),
			bad("0.4", "Ensure this value is greater than or equal to 0.5."),
			ok("1.5", 1.5),
			ok("0.5", 0.5),
		})
	})

	t.Run("whole limits keep a decimal point", func(t *testing.T) {
		runCleanCases(t, NewFloatField(FloatConfig{MaxValue: Float(2)}), []cleanCase{
			bad("3", "Ensure this value is less than or equal to 2.0."),
		})
	})
}

func TestDecimalField(t *testing.T) {
	const invalid = "Enter a number."
	d := MustDecimal

	t.Run("digits and places", func(t *testing.T) {
		runCleanCases(t, NewDecimalField(DecimalConfig{MaxDigits: Int(4), DecimalPlaces: Int(2)}), []cleanCase{
			bad("", requiredMsg),
			bad(nil, requiredMsg),
			ok("1", d("1")),
			ok("23", d("23")),
			ok("3.14", d("3.14")),
			ok(3.14, d("3.14")),
			ok(d("3.14"), d("3.14")),
			bad("a", invalid),
			bad("łąść", invalid),
			ok("1.0 ", d("1.0")),
			ok(" 1.0", d("1.0")),
			ok(" 1.0 ", d("1.0")),
			bad("1.0a", invalid),
			bad("123.45", "Ensure that there are no more than 4 digits in total."),
			bad("1.234", "Ensure that there are no more than 2 decimal places."),
			bad("123.4", "Ensure that there are no more than 2 digits before the decimal point."),
			ok("-12.34", d("-12.34")),
			bad("-123.45", "Ensure that there are no more than 4 digits in total."),
			ok("-.12", d("-0.12")),
			ok("-00.12", d("-0.12")),
			ok("-000.12", d("-0.12")),
			bad("-000.123", "Ensure that there are no more than 2 decimal places."),
			bad("-000.12345", "Ensure that there are no more than 4 digits in total."),
			bad("--0.12", invalid),
			bad(math.NaN(), invalid),
			bad("NaN", invalid),
			bad("Infinity", invalid),
		})
	})

	t.Run("optional", func(t *testing.T) {
		runCleanCases(t, NewDecimalField(DecimalConfig{MaxDigits: Int(4), DecimalPlaces: Int(2)}, Required(false)), []cleanCase{
			ok("", nil),
			ok(nil, nil),
			ok("1", d("1")),
		})
	})

	t.Run("range", func(t *testing.T) {
		hi, lo := d("1.5"), d("0.5")
		field := NewDecimalField(DecimalConfig{MaxDigits: Int(4), DecimalPlaces: Int(2), MaxValue: &hi, MinValue: &lo})
		runCleanCases(t, field, []cleanCase{
			bad("1.6", "Ensure this value is less than or equal to 1.5."),
			bad("0.4", "Ensure this value is greater than or equal to 0.5."),
			ok("1.5", d("1.5")),
			ok("0.5", d("0.5")),
			ok(".5", d("0.5")),
			ok("00.50", d("0.50")),
		})
	})

	t.Run("places only", func(t *testing.T) {
		runCleanCases(t, NewDecimalField(DecimalConfig{DecimalPlaces: Int(2)}), []cleanCase{
			bad("0.00000001", "Ensure that there are no more than 2 decimal places."),
		})
	})

	t.Run("leading zeros", func(t *testing.T) {
		runCleanCases(t, NewDecimalField(DecimalConfig{MaxDigits: Int(3)}), []cleanCase{
			ok("0000000.10", d("0.1")),
			ok("0000000.100", d("0.100")),
			ok("000000.02", d("0.02")),
			bad("000000.0002", "Ensure that there are no more than 3 digits in total."),
			ok(".002", d("0.002")),
		})
	})

	t.Run("no whole digits", func(t *testing.T) {
		runCleanCases(t, NewDecimalField(DecimalConfig{MaxDigits: Int(2), DecimalPlaces: Int(2)}), []cleanCase{
			ok(".01", d(".01")),
			bad("1.1", "Ensure that there are no more than 0 digits before the decimal point."),
		})
	})
}

func TestDecimalParsing(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"007", "7"},
		{"-.12", "-0.12"},
		{"00.50", "0.50"},
		{"1.2e3", "1200"},
		{"12e-3", "0.012"},
		{"+5", "5"},
	}
	for _, tc := range cases {
		got, err := ParseDecimal(tc.in)
		if err != nil {
			t.Fatalf("ParseDecimal(%q): %v", tc.in, err)
		}
		if got.String() != tc.want {
			t.Fatalf("ParseDecimal(%q) = %q, want %q", tc.in, got.String(), tc.want)
		}
	}

	for _, in := range []string{"", ".", "-", "1e", "1.2.3", "0x10", "1e999999"} {
		if _, err := ParseDecimal(in); !errors.Is(err, ErrInvalidDecimal) {
			t.Fatalf("ParseDecimal(%q) error = %v, want ErrInvalidDecimal", in, err)
		}
	}
}

func TestDecimalCompare(t *testing.T) {
	if !MustDecimal("0.50").Equal(MustDecimal("0.5")) {
		t.Fatalf("0.50 should equal 0.5")
	}
	if MustDecimal("-1").Cmp(MustDecimal("0.001")) >= 0 {
		t.Fatalf("-1 should sort before 0.001")
	}
	if MustDecimal("1e2").Cmp(MustDecimal("99.9")) <= 0 {
		t.Fatalf("1e2 should sort after 99.9")
	}

	var round Decimal
	text, _ := MustDecimal("-3.140").MarshalText()
	if err := round.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if round.String() != "-3.140" {
		t.Fatalf("round trip = %q", round.String())
	}
}

package fields

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// maxDecimalExponent keeps scaled comparisons bounded.
const maxDecimalExponent = 100000

// ErrInvalidDecimal is returned by ParseDecimal for malformed input.
var ErrInvalidDecimal = errors.New("fields: invalid decimal")

// Decimal is an exact base-10 number: sign, coefficient digits and a power
// of ten exponent. Trailing zeros are preserved, so 0.50 and 0.5 are equal
// but print differently. The zero value is 0.
type Decimal struct {
	neg  bool
	coef string
	exp  int
}

// ParseDecimal parses text such as "-12.34", ".5", "007" or "1.2e3".
// NaN and infinities are rejected.
func ParseDecimal(s string) (Decimal, error) {
	text := s
	var d Decimal
	if text != "" && (text[0] == '+' || text[0] == '-') {
		d.neg = text[0] == '-'
		text = text[1:]
	}

	mantissa, exponent := text, ""
	if idx := strings.IndexAny(text, "eE"); idx >= 0 {
		mantissa, exponent = text[:idx], text[idx+1:]
		if exponent == "" {
			return Decimal{}, fmt.Errorf("fields: parse decimal %q: %w", s, ErrInvalidDecimal)
		}
	}

	whole, frac, _ := strings.Cut(mantissa, ".")
	if whole+frac == "" || !isDigits(whole) || !isDigits(frac) {
		return Decimal{}, fmt.Errorf("fields: parse decimal %q: %w", s, ErrInvalidDecimal)
	}

	if exponent != "" {
		exp, err := strconv.Atoi(exponent)
		if err != nil {
			return Decimal{}, fmt.Errorf("fields: parse decimal %q: %w", s, ErrInvalidDecimal)
		}
		d.exp = exp
	}
	d.exp -= len(frac)
	if d.exp > maxDecimalExponent || d.exp < -maxDecimalExponent {
		return Decimal{}, fmt.Errorf("fields: parse decimal %q: exponent out of range: %w", s, ErrInvalidDecimal)
	}

	d.coef = strings.TrimLeft(whole+frac, "0")
	if d.coef == "" {
		d.coef = "0"
	}
	return d, nil
}

// MustDecimal is ParseDecimal that panics on malformed input.
func MustDecimal(s string) Decimal {
	d, err := ParseDecimal(s)
	if err != nil {
		panic(err)
	}
	return d
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func (d Decimal) digits() string {
	if d.coef == "" {
		return "0"
	}
	return d.coef
}

// Exponent returns the power of ten applied to the coefficient.
func (d Decimal) Exponent() int { return d.exp }

// Coefficient returns the coefficient digits without leading zeros.
func (d Decimal) Coefficient() string { return d.digits() }

// Sign returns -1, 0 or +1.
func (d Decimal) Sign() int {
	if d.digits() == "0" {
		return 0
	}
	if d.neg {
		return -1
	}
	return 1
}

// String renders the number in plain notation.
func (d Decimal) String() string {
	coef := d.digits()
	var body string
	switch {
	case d.exp >= 0:
		if coef == "0" {
			body = "0"
		} else {
			body = coef + strings.Repeat("0", d.exp)
		}
	default:
		point := len(coef) + d.exp
		if point > 0 {
			body = coef[:point] + "." + coef[point:]
		} else {
			body = "0." + strings.Repeat("0", -point) + coef
		}
	}
	if d.neg {
		return "-" + body
	}
	return body
}

// Cmp compares d and other numerically.
func (d Decimal) Cmp(other Decimal) int {
	exp := min(d.exp, other.exp)
	return d.scaled(exp).Cmp(other.scaled(exp))
}

// Equal reports numeric equality.
func (d Decimal) Equal(other Decimal) bool {
	return d.Cmp(other) == 0
}

// Float64 returns the nearest float64.
func (d Decimal) Float64() float64 {
	f, _ := strconv.ParseFloat(d.String(), 64)
	return f
}

// MarshalText renders the decimal as text so JSON keeps full precision.
func (d Decimal) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText parses text produced by MarshalText.
func (d *Decimal) UnmarshalText(text []byte) error {
	parsed, err := ParseDecimal(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Decimal) scaled(exp int) *big.Int {
	n, _ := new(big.Int).SetString(d.digits(), 10)
	if shift := d.exp - exp; shift > 0 {
		n.Mul(n, new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(shift)), nil))
	}
	if d.neg {
		n.Neg(n)
	}
	return n
}

// digitCounts returns the significant digit count and decimal places used
// by DecimalField. A lone zero before the point is not a digit, but zeros
// after the point are.
func (d Decimal) digitCounts() (digits, decimals int) {
	digits = len(d.digits())
	if d.exp < 0 {
		decimals = -d.exp
	}
	if decimals > digits {
		digits = decimals
	}
	return digits, decimals
}

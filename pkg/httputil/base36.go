package httputil

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrNegativeBase36 is returned when encoding a negative integer.
	ErrNegativeBase36 = errors.New("httputil: base36 input must be non-negative")
	// ErrInvalidBase36 is returned when decoding text that is not a base-36
	// integer or does not fit in an int64.
	ErrInvalidBase36 = errors.New("httputil: invalid base36 value")
)

// IntToBase36 encodes a non-negative integer using the digits 0-9 and a-z,
// without leading zeros. Zero encodes as "0".
func IntToBase36(i int64) (string, error) {
	if i < 0 {
		return "", fmt.Errorf("httputil: encode %d: %w", i, ErrNegativeBase36)
	}
	return strconv.FormatInt(i, 36), nil
}

// Base36ToInt decodes a base-36 string. Upper-case digits are accepted.
func Base36ToInt(s string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("httputil: decode %q: %w", s, ErrInvalidBase36)
	}
	value, err := strconv.ParseInt(s, 36, 64)
	if err != nil {
		return 0, fmt.Errorf("httputil: decode %q: %w", s, ErrInvalidBase36)
	}
	return value, nil
}

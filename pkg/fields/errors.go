package fields

import (
	"errors"
	"strings"
)

// ValidationError reports why a value was rejected. Messages are ready to
// show to the person who submitted the value.
type ValidationError struct {
	// Code identifies the failed check; empty when several checks failed.
	Code     string
	Messages []string
}

// NewValidationError builds a ValidationError without a code.
func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Messages: append([]string(nil), messages...)}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	return strings.Join(e.Messages, "; ")
}

// Messages extracts the user facing messages carried by err. Errors that
// are not validation errors contribute their Error text.
func Messages(err error) []string {
	if err == nil {
		return nil
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		return append([]string(nil), verr.Messages...)
	}
	return []string{err.Error()}
}

// IsValidationError reports whether err wraps a *ValidationError.
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

package prompt

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("prompt: aborted")
	// ErrUnsupportedField is returned for required fields that cannot be
	// answered from a terminal, such as file uploads.
	ErrUnsupportedField = errors.New("prompt: field cannot be collected interactively")
)

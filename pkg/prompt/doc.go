// Package prompt collects form values from a terminal. Each field is asked
// with the prompt style its widget suggests and the answers are cleaned
// through the form, so hooks and form-level checks still apply.
package prompt

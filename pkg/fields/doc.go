// Package fields validates and coerces single submitted values.
//
// A Field is configured once and then cleans any number of raw inputs.
// Clean either returns the normalised Go value (string, int64, float64,
// Decimal, civil dates and times, bool, []string, uploaded files) or a
// *ValidationError listing user facing messages. Absent input is nil; the
// empty string counts as absent too.
//
//	f := fields.NewCharField(fields.CharConfig{MaxLength: fields.Int(10)})
//	v, err := f.Clean("hello")
//
// Field-specific settings live in per-type config structs; the settings all
// fields share (required, label, initial value, messages) are Options.
package fields

// Package unit implements display-value adapters for progress counters:
// given a raw step count and optional upper bound, an adapter formats the
// current value, the upper bound, a separator between them, and an
// optional trailing unit string.
package unit

import "io"

// DisplayValue is the capability set a progress unit must implement.
// step and upper are both progress "step" counts, e.g. bytes transferred.
type DisplayValue interface {
	// DisplayCurrentValue writes the formatted current value.
	DisplayCurrentValue(w io.Writer, step uint64, upper *uint64) error

	// DisplayUpperBound writes the formatted upper bound.
	DisplayUpperBound(w io.Writer, upper uint64, step uint64) error

	// Separator writes the text between current value and upper bound.
	// The default is " / "; adapters may override it (e.g. " of " for
	// durations).
	Separator(w io.Writer, step uint64, upper *uint64) error

	// DisplayUnit writes the trailing unit suffix, or nothing.
	DisplayUnit(w io.Writer, step uint64) error
}

// DefaultSeparator writes " / ", the separator most adapters use.
func DefaultSeparator(w io.Writer, _ uint64, _ *uint64) error {
	_, err := io.WriteString(w, " / ")
	return err
}

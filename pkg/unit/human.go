package unit

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
)

// Human formats a raw step count as a short SI-scaled number, e.g. "1.50k"
// for 1500, and writes its caller-supplied unit name (e.g. "objects")
// separately through DisplayUnit.
type Human struct {
	// Name is the unit suffix, e.g. "B" or "objects".
	Name string
	// Decimals controls how many fractional digits are shown.
	Decimals int
}

// NewHuman creates a Human adapter with the given unit name and two
// fractional decimal digits.
func NewHuman(name string) Human {
	return Human{Name: name, Decimals: 2}
}

func (h Human) format(value uint64) string {
	base, prefix := humanize.ComputeSI(float64(value))
	// ComputeSI returns the number and its SI prefix separately; concatenate
	// them directly so no space appears between, e.g. "1.50k" not "1.50 k".
	tokens := []string{fmt.Sprintf("%.*f", h.Decimals, base), prefix}
	return strings.Join(tokens, "")
}

func (h Human) DisplayCurrentValue(w io.Writer, step uint64, _ *uint64) error {
	_, err := io.WriteString(w, h.format(step))
	return err
}

func (h Human) DisplayUpperBound(w io.Writer, upper uint64, _ uint64) error {
	_, err := io.WriteString(w, h.format(upper))
	return err
}

func (h Human) Separator(w io.Writer, step uint64, upper *uint64) error {
	return DefaultSeparator(w, step, upper)
}

func (h Human) DisplayUnit(w io.Writer, _ uint64) error {
	_, err := io.WriteString(w, h.Name)
	return err
}

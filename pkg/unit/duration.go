package unit

import (
	"fmt"
	"io"
	"strings"
)

// Duration formats a step count as elapsed seconds in compact "DdHhMmSs"
// form: leading zero-valued components are dropped, but the seconds
// component is always shown.
type Duration struct{}

// FormatDHMS renders seconds as a compact "1d2h3m4s"-style string.
func FormatDHMS(totalSeconds uint64) string {
	d := totalSeconds / 86400
	h := (totalSeconds % 86400) / 3600
	m := (totalSeconds % 3600) / 60
	s := totalSeconds % 60

	var b strings.Builder
	if d > 0 {
		fmt.Fprintf(&b, "%dd", d)
	}
	if d > 0 || h > 0 {
		fmt.Fprintf(&b, "%dh", h)
	}
	if d > 0 || h > 0 || m > 0 {
		fmt.Fprintf(&b, "%dm", m)
	}
	fmt.Fprintf(&b, "%ds", s)
	return b.String()
}

func (Duration) DisplayCurrentValue(w io.Writer, step uint64, _ *uint64) error {
	_, err := io.WriteString(w, FormatDHMS(step))
	return err
}

func (Duration) DisplayUpperBound(w io.Writer, upper uint64, _ uint64) error {
	_, err := io.WriteString(w, FormatDHMS(upper))
	return err
}

func (Duration) Separator(w io.Writer, _ uint64, _ *uint64) error {
	_, err := io.WriteString(w, " of ")
	return err
}

func (Duration) DisplayUnit(io.Writer, uint64) error { return nil }

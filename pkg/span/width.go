package span

import "github.com/charmbracelet/x/ansi"

// VisibleWidth returns s's column width with escape sequences ignored.
func VisibleWidth(s string) int { return ansi.StringWidth(s) }

// Truncate shortens s to at most width visible columns, appending tail
// (commonly "…") when truncation actually occurs.
func Truncate(s string, width int, tail string) string {
	if VisibleWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, tail)
}

// Package tui implements the full-screen renderer: a per-tick back-buffer
// draw pass, an event loop multiplexing a ticker, a key stream, and
// external events, and the normalized key decoder.
package tui

import (
	"bytes"
	"fmt"
)

// KeyKind is the normalized key taxonomy backends decode into, independent
// of which concrete terminal library produced the raw bytes.
type KeyKind int

const (
	KeyBackspace KeyKind = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyBackTab
	KeyDelete
	KeyInsert
	KeyF
	KeyChar
	KeyAlt
	KeyCtrl
	KeyNull
	KeyEsc
)

// Key is one normalized key event. Rune/F carry the payload for the KeyChar,
// KeyAlt, KeyCtrl, and KeyF variants; it is the zero value otherwise.
type Key struct {
	Kind KeyKind
	Rune rune
	F    uint8
}

// UndecodableKeyError carries the raw bytes a backend could not map
// losslessly into the normalized taxonomy.
type UndecodableKeyError struct {
	Bytes []byte
}

func (e *UndecodableKeyError) Error() string {
	return fmt.Sprintf("tui: undecodable key sequence %q", e.Bytes)
}

// escapeSequences maps exact raw byte sequences from a terminal in raw mode
// to a normalized Key.
var escapeSequences = map[string]Key{
	"\x1b[A":  {Kind: KeyUp},
	"\x1b[B":  {Kind: KeyDown},
	"\x1b[C":  {Kind: KeyRight},
	"\x1b[D":  {Kind: KeyLeft},
	"\x1b[H":  {Kind: KeyHome},
	"\x1b[F":  {Kind: KeyEnd},
	"\x1b[1~": {Kind: KeyHome},
	"\x1b[4~": {Kind: KeyEnd},
	"\x1b[3~": {Kind: KeyDelete},
	"\x1b[2~": {Kind: KeyInsert},
	"\x1b[5~": {Kind: KeyPageUp},
	"\x1b[6~": {Kind: KeyPageDown},
	"\x1b[Z":  {Kind: KeyBackTab},
	"\x7f":    {Kind: KeyBackspace},
	"\x1b":    {Kind: KeyEsc},
	"\x00":    {Kind: KeyNull},
	"\x09":    {Kind: KeyChar, Rune: '\t'},
	"\x0d":    {Kind: KeyChar, Rune: '\n'},
}

// DecodeKey consumes one key's worth of bytes from data and returns the
// decoded Key plus the remaining, not-yet-consumed bytes. If the leading
// bytes form an escape sequence or control byte that doesn't map losslessly
// into the normalized taxonomy, it returns an *UndecodableKeyError carrying
// those bytes and advances past them so the caller can keep decoding.
func DecodeKey(data []byte) (Key, []byte, error) {
	if len(data) == 0 {
		return Key{}, data, fmt.Errorf("tui: DecodeKey called with no data")
	}

	// Longest-match against known escape/control sequences first.
	for seqLen := min(len(data), 4); seqLen >= 1; seqLen-- {
		if seqLen == 1 && data[0] == 0x1b && len(data) > 1 {
			continue // ESC with more bytes is an Alt chord or an unknown sequence
		}
		if k, ok := escapeSequences[string(data[:seqLen])]; ok {
			return k, data[seqLen:], nil
		}
	}

	b := data[0]
	switch {
	case b == 0x1b && len(data) >= 3 && data[1] == '[':
		// Unknown CSI sequence: consume through its final byte (0x40-0x7e).
		n := 2
		for n < len(data) && (data[n] < 0x40 || data[n] > 0x7e) {
			n++
		}
		if n < len(data) {
			n++
		}
		return Key{}, data[n:], &UndecodableKeyError{Bytes: data[:n]}
	case b == 0x1b && len(data) >= 2:
		// Alt+<char>: ESC followed by a single printable byte not matched
		// as a known escape sequence above.
		r, size := decodeRune(data[1:])
		return Key{Kind: KeyAlt, Rune: r}, data[1+size:], nil
	case b < 0x20:
		// Remaining control bytes are Ctrl+<letter>, per the raw-mode
		// convention of offsetting the letter by 0x60.
		return Key{Kind: KeyCtrl, Rune: rune(b + 0x60)}, data[1:], nil
	default:
		r, size := decodeRune(data)
		return Key{Kind: KeyChar, Rune: r}, data[size:], nil
	}
}

func decodeRune(data []byte) (rune, int) {
	r := bytes.Runes(data)
	if len(r) == 0 {
		return 0, 1
	}
	first := r[0]
	size := len(string(first))
	if size == 0 {
		size = 1
	}
	return first, size
}

package cprompt

import (
	"fmt"
	"io"
	"maps"
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// Buffer is the editable text of a prompt line. The cursor always stays in
// [0, Len()], and the display width of the text plus the reserved prefix
// width stays below the limit.
type Buffer struct {
	text      []rune
	cursor    int
	limit     int
	reserved  int
	formatted map[string]string
	bell      io.Writer
}

// NewBuffer creates an empty buffer. reserved is the width taken by the
// prompt message; bell receives BEL bytes for rejected edits and may be nil.
func NewBuffer(limit, reserved int, bell io.Writer) *Buffer {
	return &Buffer{
		limit:     limit,
		reserved:  reserved,
		formatted: map[string]string{},
		bell:      bell,
	}
}

func (b *Buffer) ring() {
	if b.bell != nil {
		_, _ = b.bell.Write([]byte{ansi.BEL})
	}
}

func (b *Buffer) width() int {
	return runewidth.StringWidth(string(b.text))
}

// Write inserts one character at the cursor. It rings the bell and returns
// false when the character would not fit within the limit.
func (b *Buffer) Write(r rune) bool {
	if b.width()+runewidth.RuneWidth(r)+b.reserved >= b.limit {
		b.ring()
		return false
	}
	b.text = append(b.text, 0)
	copy(b.text[b.cursor+1:], b.text[b.cursor:])
	b.text[b.cursor] = r
	b.cursor++
	return true
}

// InsertText inserts s at the cursor one character at a time. Styling escape
// sequences are stripped from the inserted text; the styled input is
// remembered in the formatted table under its plain form. Control characters
// such as newline and tab are dropped.
func (b *Buffer) InsertText(s string) error {
	stripped := ansi.Strip(s)
	plain := strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, stripped)
	if w := runewidth.StringWidth(plain); w > b.limit {
		return fmt.Errorf("%w: text width %d, limit %d", ErrLimit, w, b.limit)
	}

	for _, r := range plain {
		b.Write(r)
	}
	if stripped != s && plain != "" {
		b.formatted[plain] = s
	}
	return nil
}

// Remove deletes the character before the cursor.
func (b *Buffer) Remove() bool {
	if b.cursor == 0 {
		b.ring()
		return false
	}
	b.text = append(b.text[:b.cursor-1], b.text[b.cursor:]...)
	b.cursor--
	return true
}

func (b *Buffer) MoveCursorRight() bool {
	if b.cursor >= len(b.text) {
		b.ring()
		return false
	}
	b.cursor++
	return true
}

func (b *Buffer) MoveCursorLeft() bool {
	if b.cursor == 0 {
		b.ring()
		return false
	}
	b.cursor--
	return true
}

func (b *Buffer) Home() {
	b.cursor = 0
}

func (b *Buffer) End() {
	b.cursor = len(b.text)
}

// Clear empties the text. The formatted table is kept, so a styled token
// typed again is still rendered with its style.
func (b *Buffer) Clear() {
	b.text = b.text[:0]
	b.cursor = 0
}

// SetText replaces the text and moves the cursor to its end. The text is not
// checked against the limit.
func (b *Buffer) SetText(s string) {
	b.text = []rune(s)
	b.cursor = len(b.text)
}

// SetCursor moves the cursor. Values outside [0, limit] are rejected; values
// past the end of the text land at the end.
func (b *Buffer) SetCursor(n int) error {
	if n < 0 || n > b.limit {
		return fmt.Errorf("%w: cursor %d, limit %d", ErrLimit, n, b.limit)
	}
	b.cursor = min(n, len(b.text))
	return nil
}

// Formatted returns a copy of the plain -> styled substitution table.
func (b *Buffer) Formatted() map[string]string {
	return maps.Clone(b.formatted)
}

// SetFormatted replaces the substitution table with a copy of m.
func (b *Buffer) SetFormatted(m map[string]string) error {
	for k := range m {
		if k == "" || ansi.Strip(k) != k {
			return fmt.Errorf("%w: key %q", ErrFormattedType, k)
		}
	}
	b.formatted = maps.Clone(m)
	if b.formatted == nil {
		b.formatted = map[string]string{}
	}
	return nil
}

func (b *Buffer) Text() string {
	return string(b.text)
}

func (b *Buffer) Cursor() int {
	return b.cursor
}

func (b *Buffer) Len() int {
	return len(b.text)
}

func (b *Buffer) Limit() int {
	return b.limit
}

func (b *Buffer) String() string {
	return string(b.text)
}

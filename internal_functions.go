package cprompt

import (
	"strings"
	"unicode/utf8"
)

// TextBeforeCursor returns everything left of the cursor.
func (b *Buffer) TextBeforeCursor() string {
	return string(b.text[:b.cursor])
}

// TextAfterCursor returns everything from the cursor to the end.
func (b *Buffer) TextAfterCursor() string {
	return string(b.text[b.cursor:])
}

// WordBeforeCursor returns the whitespace-delimited word that ends nearest
// to the left of the cursor, or "" if there is none.
func (b *Buffer) WordBeforeCursor() string {
	words := strings.Fields(b.TextBeforeCursor())
	if len(words) == 0 {
		return ""
	}
	return words[len(words)-1]
}

// WordAfterCursor returns the first whitespace-delimited word right of the
// cursor, or "" if there is none.
func (b *Buffer) WordAfterCursor() string {
	words := strings.Fields(b.TextAfterCursor())
	if len(words) == 0 {
		return ""
	}
	return words[0]
}

// DeleteWordBeforeCursor removes the word before the cursor together with
// one separator character.
func (b *Buffer) DeleteWordBeforeCursor() {
	n := min(utf8.RuneCountInString(b.WordBeforeCursor())+1, b.cursor)
	for i := 0; i < n; i++ {
		b.Remove()
	}
}

// DeleteWordAfterCursor removes the word after the cursor together with one
// separator character. The cursor is moved past the removed span first
// because Remove only deletes to the left.
func (b *Buffer) DeleteWordAfterCursor() {
	n := min(utf8.RuneCountInString(b.WordAfterCursor())+1, len(b.text)-b.cursor)
	b.cursor += n
	for i := 0; i < n; i++ {
		b.Remove()
	}
}

func (b *Buffer) DeleteTextBeforeCursor() {
	for b.cursor > 0 {
		b.Remove()
	}
}

func (b *Buffer) DeleteTextAfterCursor() {
	n := len(b.text) - b.cursor
	b.cursor = len(b.text)
	for i := 0; i < n; i++ {
		b.Remove()
	}
}

// Binding is a buffer edit attached to a key by KeyBindings.
type Binding func(b *Buffer)

// KeyBindings returns a condition that applies the edit bound to the key
// being processed. Keys without a binding are left alone.
func KeyBindings(bindings map[Token]Binding) Condition {
	return func(p Prompt) Result {
		if fn, ok := bindings[p.LastKey()]; ok {
			fn(p.Buffer())
		}
		return Continue
	}
}

// DefaultKeyBindings binds the keys the edit loop reserves to the usual
// emacs-style edits.
func DefaultKeyBindings() map[Token]Binding {
	return map[Token]Binding{
		{Key: KeyHome}:            (*Buffer).Home,
		{Key: KeyEnd}:             (*Buffer).End,
		{Key: KeyCtrl, Rune: 'a'}: (*Buffer).Home,
		{Key: KeyCtrl, Rune: 'e'}: (*Buffer).End,
		{Key: KeyCtrl, Rune: 'b'}: func(b *Buffer) { b.MoveCursorLeft() },
		{Key: KeyCtrl, Rune: 'f'}: func(b *Buffer) { b.MoveCursorRight() },
		// ^H: some terminals send it for backspace.
		{Key: KeyCtrl, Rune: 'h'}: func(b *Buffer) { b.Remove() },
		{Key: KeyCtrl, Rune: 'w'}: (*Buffer).DeleteWordBeforeCursor,
		{Key: KeyCtrl, Rune: 'u'}: (*Buffer).DeleteTextBeforeCursor,
		{Key: KeyCtrl, Rune: 'k'}: (*Buffer).DeleteTextAfterCursor,
		{Key: KeyCtrl, Rune: 'l'}: (*Buffer).Clear,
		{Key: KeyDelete}: func(b *Buffer) {
			if b.MoveCursorRight() {
				b.Remove()
			}
		},
	}
}

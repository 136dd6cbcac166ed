package cprompt

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Key identifies the kind of a decoded keystroke.
type Key int

const (
	KeyUnknown Key = iota
	KeyRune
	KeyEnter
	KeyBackspace
	KeyTab
	KeySpace
	KeyEscape
	KeyUp
	KeyDown
	KeyRight
	KeyLeft
	KeyShiftRight
	KeyShiftLeft
	KeyHome
	KeyEnd
	KeyInsert
	KeyDelete
	KeyPageUp
	KeyPageDown
	KeyCtrl
	KeyInterrupt
)

var keyNames = map[Key]string{
	KeyUnknown:    "unknown",
	KeyEnter:      "enter",
	KeyBackspace:  "backspace",
	KeyTab:        "tab",
	KeySpace:      "space",
	KeyEscape:     "escape",
	KeyUp:         "up",
	KeyDown:       "down",
	KeyRight:      "right",
	KeyLeft:       "left",
	KeyShiftRight: "shift-right",
	KeyShiftLeft:  "shift-left",
	KeyHome:       "home",
	KeyEnd:        "end",
	KeyInsert:     "insert",
	KeyDelete:     "delete",
	KeyPageUp:     "page_up",
	KeyPageDown:   "page_down",
	KeyInterrupt:  "ctrl-c",
}

// Token is a single decoded keystroke. Rune is set for KeyRune (the
// character) and KeyCtrl (the lowercase letter or symbol after "ctrl-").
type Token struct {
	Key  Key
	Rune rune
}

func (t Token) String() string {
	switch t.Key {
	case KeyRune:
		return string(t.Rune)
	case KeyCtrl:
		return "ctrl-" + string(t.Rune)
	}
	if name, ok := keyNames[t.Key]; ok {
		return name
	}
	return fmt.Sprintf("Key(%d)", int(t.Key))
}

// ctrlLetters are the control keys reported as KeyCtrl. c, i and m are left
// out: their codes are interrupt, tab and enter.
const ctrlLetters = "abdefghjklnopqrstuvwxyz\\]"

func ctrl(k rune) byte {
	return byte(k & 0x3f)
}

// byteKeys maps single non-escape bytes to tokens.
var byteKeys = func() map[byte]Token {
	m := map[byte]Token{
		0x7f: {Key: KeyBackspace},
		'\r': {Key: KeyEnter},
		'\t': {Key: KeyTab},
		' ':  {Key: KeySpace},
		0x03: {Key: KeyInterrupt},
	}
	for _, c := range ctrlLetters {
		m[ctrl(unicode.ToUpper(c))] = Token{Key: KeyCtrl, Rune: c}
	}
	return m
}()

// ParseKey resolves a key name such as "enter", "ctrl-o", "shift-left" or a
// single printable character into a Token.
func ParseKey(name string) (Token, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		// " " names the space key itself.
		trimmed = name
	}
	lower := strings.ToLower(trimmed)
	for k, n := range keyNames {
		if k != KeyUnknown && n == lower {
			return Token{Key: k}, nil
		}
	}

	if letter, ok := strings.CutPrefix(lower, "ctrl-"); ok && utf8.RuneCountInString(letter) == 1 {
		r, _ := utf8.DecodeRuneInString(letter)
		if strings.ContainsRune(ctrlLetters, r) {
			return Token{Key: KeyCtrl, Rune: r}, nil
		}
	}

	if utf8.RuneCountInString(trimmed) == 1 {
		r, _ := utf8.DecodeRuneInString(trimmed)
		if r == ' ' {
			return Token{Key: KeySpace}, nil
		}
		if unicode.IsPrint(r) {
			return Token{Key: KeyRune, Rune: r}, nil
		}
	}

	return Token{}, fmt.Errorf("%w: %q", ErrKeyNotRecognized, name)
}

package cprompt

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// Render returns the sequence that repaints a prompt line: erase the line,
// go to the first column, write the message and the text, then place the
// terminal cursor on the buffer cursor. Render has no side effects.
func Render(message, text string, cursor int, formatted map[string]string) string {
	var sb strings.Builder
	vtClearLine(&sb)
	sb.WriteString(message)
	sb.WriteString(RenderText(text, formatted))
	vtMoveToColumn(&sb, ansi.StringWidth(message)+cursorWidth(text, cursor)+1)
	return sb.String()
}

// RenderText substitutes every space-separated token of text that has an
// entry in formatted by its styled form. Spaces are kept as they are.
func RenderText(text string, formatted map[string]string) string {
	if len(formatted) == 0 {
		return text
	}
	tokens := strings.Split(text, " ")
	for i, tok := range tokens {
		if styled, ok := formatted[tok]; ok && tok != "" {
			tokens[i] = styled
		}
	}
	return strings.Join(tokens, " ")
}

// cursorWidth is the number of cells taken by the first cursor runes of text.
func cursorWidth(text string, cursor int) int {
	runes := []rune(text)
	cursor = max(0, min(cursor, len(runes)))
	return runewidth.StringWidth(string(runes[:cursor]))
}

func vtClearLine(sb *strings.Builder) {
	sb.WriteString(ansi.EraseEntireLine)
	sb.WriteString(ansi.CursorHorizontalAbsolute(1))
}

func vtMoveToColumn(sb *strings.Builder, col int) {
	sb.WriteString(ansi.CursorHorizontalAbsolute(col))
}

func vtMoveAbsolute(sb *strings.Builder, row, col int) {
	sb.WriteString(ansi.CursorPosition(col, row))
}

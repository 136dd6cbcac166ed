package cprompt

import (
	"fmt"
	"io"
	"slices"
	"unicode"

	"github.com/charmbracelet/x/ansi"
)

// lineEditor is the state shared by every prompt variant.
type lineEditor struct {
	message    string
	buffer     *Buffer
	conditions *conditionMachine
	term       *Terminal

	lastKey     Token
	ignoredKeys []Token

	returnedValue    string
	hasReturnedValue bool
}

func newLineEditor(message string, opts Options) (*lineEditor, error) {
	conditions, err := newConditionMachine(opts.Conditions)
	if err != nil {
		return nil, err
	}
	if opts.Limit < 0 {
		return nil, fmt.Errorf("%w: negative limit %d", ErrLimit, opts.Limit)
	}

	// A shared terminal keeps the size its owner gave it.
	t := opts.Terminal
	if t == nil {
		t = NewTerminal(opts.Input, opts.Output)
		t.SetSize(opts.Columns, opts.Rows)
	}

	limit := t.Columns()
	if opts.Limit > limit {
		return nil, fmt.Errorf("%w: limit %d, terminal width %d", ErrLimit, opts.Limit, limit)
	}
	if opts.Limit > 0 {
		limit = opts.Limit
	}

	return &lineEditor{
		message:    message,
		buffer:     NewBuffer(limit, ansi.StringWidth(message), t),
		conditions: conditions,
		term:       t,
	}, nil
}

func (l *lineEditor) Buffer() *Buffer {
	return l.buffer
}

func (l *lineEditor) Message() string {
	return l.message
}

func (l *lineEditor) LastKey() Token {
	return l.lastKey
}

func (l *lineEditor) IgnoreKey(k Token) {
	if !l.isIgnored(k) {
		l.ignoredKeys = append(l.ignoredKeys, k)
	}
}

func (l *lineEditor) IgnoredKeys() []Token {
	return slices.Clone(l.ignoredKeys)
}

func (l *lineEditor) SetIgnoredKeys(keys []Token) {
	l.ignoredKeys = slices.Clone(keys)
}

func (l *lineEditor) isIgnored(k Token) bool {
	return slices.Contains(l.ignoredKeys, k)
}

func (l *lineEditor) SetReturnedValue(v string) {
	l.returnedValue = v
	l.hasReturnedValue = true
}

// ReturnedValue is the last value a condition stored with SetReturnedValue.
func (l *lineEditor) ReturnedValue() (string, bool) {
	return l.returnedValue, l.hasReturnedValue
}

func (l *lineEditor) AddCondition(c Condition) error {
	return l.conditions.register(c)
}

func (l *lineEditor) Terminal() *Terminal {
	return l.term
}

// CursorPosition reports the terminal cursor as 1-based row and column.
func (l *lineEditor) CursorPosition() (row, col int, err error) {
	return l.term.CursorPosition()
}

type loopState int

const (
	stateAwaitingKey loopState = iota
	stateEvaluatingHooks
	stateApplyingEdit
	stateRendering
	stateTerminated
)

type editAction int

const (
	editNone editAction = iota
	editConfirm
	editInterrupt
)

// editLoop reads keys until the line is confirmed, a condition asks to
// terminate, the user interrupts or the input fails. The terminal stays in
// raw mode for the duration and is restored on every path out.
func (l *lineEditor) editLoop(p Prompt, styled bool) (string, error) {
	defer l.term.enterRaw()()

	l.refreshDisplay(p)

	var (
		state = stateAwaitingKey
		tok   Token
		exit  bool
	)
	for state != stateTerminated {
		switch state {
		case stateAwaitingKey:
			t, err := l.term.ReadKey()
			if err != nil {
				p.finish()
				return l.result(styled), err
			}
			tok = t
			l.lastKey = t
			state = stateEvaluatingHooks

		case stateEvaluatingHooks:
			var err error
			exit, err = l.conditions.keyPressed(p)
			if err != nil {
				return "", err
			}
			if l.isIgnored(tok) {
				state = stateRendering
			} else {
				state = stateApplyingEdit
			}

		case stateApplyingEdit:
			switch l.handleKey(tok) {
			case editConfirm:
				l.refreshDisplay(p)
				p.finish()
				return l.result(styled), nil
			case editInterrupt:
				_, _ = io.WriteString(l.term, "^C")
				p.finish()
				return "", ErrInterrupted
			}
			state = stateRendering

		case stateRendering:
			l.refreshDisplay(p)
			if exit {
				p.finish()
				state = stateTerminated
			} else {
				state = stateAwaitingKey
			}
		}
	}
	return l.result(styled), nil
}

func (l *lineEditor) handleKey(tok Token) editAction {
	switch tok.Key {
	case KeyEnter:
		return editConfirm
	case KeyInterrupt:
		return editInterrupt
	case KeyBackspace:
		l.buffer.Remove()
	case KeyRight:
		l.buffer.MoveCursorRight()
	case KeyLeft:
		l.buffer.MoveCursorLeft()
	case KeySpace:
		l.buffer.Write(' ')
	case KeyRune:
		if unicode.IsPrint(tok.Rune) {
			l.buffer.Write(tok.Rune)
		} else {
			logger.Debug("dropping control character", "rune", fmt.Sprintf("%U", tok.Rune))
		}
	case KeyUp, KeyDown, KeyShiftRight, KeyShiftLeft, KeyEscape, KeyTab,
		KeyInsert, KeyDelete, KeyPageUp, KeyPageDown, KeyHome, KeyEnd, KeyCtrl:
		// Left to conditions.
	case KeyUnknown:
	}
	return editNone
}

func (l *lineEditor) refreshDisplay(p Prompt) {
	_, _ = io.WriteString(l.term, p.paint())
}

func (l *lineEditor) result(styled bool) string {
	if styled {
		return RenderText(l.buffer.Text(), l.buffer.formatted)
	}
	return l.buffer.Text()
}

// paint is the standard repaint of message and text.
func (l *lineEditor) paint() string {
	return Render(l.message, l.buffer.Text(), l.buffer.Cursor(), l.buffer.formatted)
}

func (l *lineEditor) finish() {
	_, _ = io.WriteString(l.term, "\r\n")
}

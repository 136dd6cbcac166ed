package cprompt

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// BasicPrompt edits a line after a message.
type BasicPrompt struct {
	*lineEditor
}

func New(message string, opts Options) (*BasicPrompt, error) {
	l, err := newLineEditor(message, opts)
	if err != nil {
		return nil, err
	}
	return &BasicPrompt{lineEditor: l}, nil
}

func (p *BasicPrompt) Run() (string, error) {
	return p.editLoop(p, false)
}

func (p *BasicPrompt) RunStyled() (string, error) {
	return p.editLoop(p, true)
}

// HintPrompt shows a hint after the message while the buffer is empty.
type HintPrompt struct {
	*lineEditor
	hint string
}

func NewHint(message, hint string, opts Options) (*HintPrompt, error) {
	l, err := newLineEditor(message, opts)
	if err != nil {
		return nil, err
	}
	return &HintPrompt{lineEditor: l, hint: hint}, nil
}

func (p *HintPrompt) Hint() string {
	return p.hint
}

func (p *HintPrompt) Run() (string, error) {
	return p.editLoop(p, false)
}

func (p *HintPrompt) RunStyled() (string, error) {
	return p.editLoop(p, true)
}

func (p *HintPrompt) paint() string {
	if p.buffer.Len() > 0 {
		return p.lineEditor.paint()
	}
	var sb strings.Builder
	vtClearLine(&sb)
	sb.WriteString(p.message)
	sb.WriteString(p.hint)
	vtMoveToColumn(&sb, ansi.StringWidth(p.message)+1)
	return sb.String()
}

// CommandPrompt is a prompt run from a condition of another prompt when a
// trigger key is pressed there. It edits on the bottom row of the terminal
// and, once done, erases itself and puts the cursor back where it was when
// the CommandPrompt was created.
type CommandPrompt struct {
	*lineEditor
	trigger   Token
	originRow int
	originCol int
}

// NewCommand creates a command prompt started by trigger, a key name as
// accepted by ParseKey. It queries the terminal for the cursor position.
func NewCommand(message, trigger string, opts Options) (*CommandPrompt, error) {
	key, err := ParseKey(trigger)
	if err != nil {
		return nil, err
	}
	l, err := newLineEditor(message, opts)
	if err != nil {
		return nil, err
	}
	row, col, err := l.CursorPosition()
	if err != nil {
		return nil, err
	}
	return &CommandPrompt{
		lineEditor: l,
		trigger:    key,
		originRow:  row,
		originCol:  col,
	}, nil
}

func (p *CommandPrompt) Trigger() Token {
	return p.trigger
}

// Origin is the cursor position captured when the prompt was created.
func (p *CommandPrompt) Origin() (row, col int) {
	return p.originRow, p.originCol
}

// Show reserves the trigger key on host and, when host is processing that
// key, runs this prompt to completion. ok is false when the trigger was not
// pressed.
func (p *CommandPrompt) Show(host Prompt) (text string, ok bool, err error) {
	host.IgnoreKey(p.trigger)
	if host.LastKey() != p.trigger {
		return "", false, nil
	}
	p.buffer.Clear()
	text, err = p.Run()
	if err != nil {
		return text, true, fmt.Errorf("command prompt: %w", err)
	}
	return text, true, nil
}

func (p *CommandPrompt) Run() (string, error) {
	return p.editLoop(p, false)
}

func (p *CommandPrompt) RunStyled() (string, error) {
	return p.editLoop(p, true)
}

func (p *CommandPrompt) paint() string {
	var sb strings.Builder
	vtMoveAbsolute(&sb, p.term.Rows(), 1)
	sb.WriteString(p.lineEditor.paint())
	return sb.String()
}

func (p *CommandPrompt) finish() {
	var sb strings.Builder
	sb.WriteString(ansi.EraseEntireLine)
	vtMoveAbsolute(&sb, p.originRow, p.originCol)
	_, _ = io.WriteString(p.term, sb.String())
}

// Package cprompt reads one line of input from a terminal while repainting it
// live. A prompt decodes raw keystrokes, edits a Buffer, redraws the line
// after every key and runs user conditions that may inspect the prompt,
// style its text or end the edit early.
package cprompt

import "io"

// Options configures a prompt. The zero value edits on stdin/stdout with a
// limit equal to the terminal width.
type Options struct {
	// Limit is the maximum width of message plus text. Zero means the
	// terminal width; larger values are rejected.
	Limit int

	// Conditions run in order on every keystroke.
	Conditions []Condition

	// Input and Output replace stdin and stdout. They are ignored when
	// Terminal is set.
	Input  io.Reader
	Output io.Writer

	// Terminal lets several prompts share one device, which a CommandPrompt
	// started from another prompt's condition must do.
	Terminal *Terminal

	// Columns and Rows override the detected window size when positive.
	// They are ignored when Terminal is set; use Terminal.SetSize instead.
	Columns int
	Rows    int
}

// Prompt is implemented by BasicPrompt, HintPrompt and CommandPrompt.
// Conditions receive the running prompt through it.
type Prompt interface {
	// Buffer gives access to the text being edited.
	Buffer() *Buffer
	Message() string

	// LastKey is the keystroke currently being processed.
	LastKey() Token

	// IgnoreKey makes the edit loop skip the buffer action of k. Conditions
	// still see ignored keys.
	IgnoreKey(k Token)
	IgnoredKeys() []Token
	SetIgnoredKeys(keys []Token)

	SetReturnedValue(v string)
	ReturnedValue() (string, bool)

	AddCondition(c Condition) error
	Terminal() *Terminal

	// Run edits until the line is confirmed and returns the plain text.
	Run() (string, error)
	// RunStyled is Run but returns the text with formatted tokens applied.
	RunStyled() (string, error)

	paint() string
	finish()
}

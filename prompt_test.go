package cprompt

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func newTestHint(t *testing.T, input string) (*HintPrompt, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	p, err := NewHint("> ", "type here", Options{
		Input:   strings.NewReader(input),
		Output:  &out,
		Columns: 80,
		Rows:    24,
	})
	if err != nil {
		t.Fatal(err)
	}
	return p, &out
}

func TestHintPaint(t *testing.T) {
	p, _ := newTestHint(t, "")
	withHint := "\x1b[2K\x1b[1G> type here\x1b[3G"

	if got := p.paint(); got != withHint {
		t.Errorf("empty buffer: got %q, want %q", got, withHint)
	}

	p.Buffer().Write('a')
	if got, want := p.paint(), Render("> ", "a", 1, nil); got != want {
		t.Errorf("after typing: got %q, want %q", got, want)
	}

	p.Buffer().Clear()
	if got := p.paint(); got != withHint {
		t.Errorf("after clearing: got %q, want %q", got, withHint)
	}
	if p.Hint() != "type here" {
		t.Errorf("unexpected hint %q", p.Hint())
	}
}

func TestHintRun(t *testing.T) {
	p, out := newTestHint(t, "a\x7f\r")
	text, err := p.Run()
	if err != nil {
		t.Fatal(err)
	}
	if text != "" {
		t.Errorf("expected empty line, got %q", text)
	}
	// first paint, after backspace, and on confirm
	if n := strings.Count(out.String(), "> type here"); n != 3 {
		t.Errorf("hint painted %d times, want 3: %q", n, out.String())
	}
	if !strings.Contains(out.String(), Render("> ", "a", 1, nil)) {
		t.Errorf("typed text was not painted: %q", out.String())
	}
}

func TestHintNotReturned(t *testing.T) {
	p, _ := newTestHint(t, "x\r")
	text, err := p.RunStyled()
	if err != nil {
		t.Fatal(err)
	}
	if text != "x" {
		t.Errorf("expected \"x\", got %q", text)
	}
}

// newTestCommand sets up a host prompt and a command prompt on one terminal.
// The input starts with the cursor report answering NewCommand's query.
func newTestCommand(t *testing.T, input string) (*BasicPrompt, *CommandPrompt, *bytes.Buffer) {
	t.Helper()
	term, out := newTestTerminal("\x1b[3;7R" + input)
	host, err := New("> ", Options{Terminal: term})
	if err != nil {
		t.Fatal(err)
	}
	cmd, err := NewCommand(":", "ctrl-o", Options{Terminal: term})
	if err != nil {
		t.Fatal(err)
	}
	err = host.AddCondition(func(p Prompt) Result {
		text, ok, err := cmd.Show(p)
		if err != nil {
			return Fatal(err)
		}
		if ok {
			p.SetReturnedValue(text)
		}
		return Continue
	})
	if err != nil {
		t.Fatal(err)
	}
	out.Reset()
	return host, cmd, out
}

func TestCommandPrompt(t *testing.T) {
	host, cmd, out := newTestCommand(t, "a\x0fcmd\rb\r")

	if row, col := cmd.Origin(); row != 3 || col != 7 {
		t.Errorf("expected origin 3,7, got %d,%d", row, col)
	}
	if cmd.Trigger() != (Token{Key: KeyCtrl, Rune: 'o'}) {
		t.Errorf("unexpected trigger %v", cmd.Trigger())
	}

	text, err := host.Run()
	if err != nil {
		t.Fatal(err)
	}
	if text != "ab" {
		t.Errorf("trigger key reached the host buffer: %q", text)
	}
	if v, ok := host.ReturnedValue(); !ok || v != "cmd" {
		t.Errorf("expected command \"cmd\", got %q, %v", v, ok)
	}
	if ignored := host.IgnoredKeys(); len(ignored) != 1 || ignored[0] != cmd.Trigger() {
		t.Errorf("trigger not reserved on host: %v", ignored)
	}

	s := out.String()
	if !strings.Contains(s, "\x1b[24;1H\x1b[2K\x1b[1G:cmd\x1b[5G") {
		t.Errorf("command line was not painted on the bottom row: %q", s)
	}
	if !strings.Contains(s, "\x1b[2K\x1b[3;7H") {
		t.Errorf("command prompt did not restore the cursor: %q", s)
	}
	if !strings.HasSuffix(s, Render("> ", "ab", 2, nil)+"\r\n") {
		t.Errorf("host did not finish normally: %q", s)
	}
}

func TestCommandPromptReused(t *testing.T) {
	host, cmd, _ := newTestCommand(t, "\x0fone\r\x0ftwo\r\r")
	if _, err := host.Run(); err != nil {
		t.Fatal(err)
	}
	if v, _ := host.ReturnedValue(); v != "two" {
		t.Errorf("expected the last command \"two\", got %q", v)
	}
	if cmd.Buffer().Text() != "two" {
		t.Errorf("command buffer was not cleared between runs: %q", cmd.Buffer().Text())
	}
}

func TestCommandPromptNotTriggered(t *testing.T) {
	host, cmd, _ := newTestCommand(t, "")
	text, ok, err := cmd.Show(host)
	if err != nil || ok || text != "" {
		t.Errorf("expected no run, got %q, %v, %v", text, ok, err)
	}
	if len(host.IgnoredKeys()) != 1 {
		t.Errorf("trigger not reserved: %v", host.IgnoredKeys())
	}
}

func TestCommandPromptError(t *testing.T) {
	host, _, _ := newTestCommand(t, "x\x0f\x03")
	_, err := host.Run()
	if !errors.Is(err, ErrInterrupted) {
		t.Errorf("expected the command interrupt to reach the host, got %v", err)
	}
}

func TestCommandKeepsSharedTerminalSize(t *testing.T) {
	term, _ := newTestTerminal("\x1b[3;7R")
	cmd, err := NewCommand(":", "ctrl-o", Options{Terminal: term, Columns: 40, Rows: 10})
	if err != nil {
		t.Fatal(err)
	}
	if term.Columns() != 80 || term.Rows() != 24 {
		t.Errorf("shared terminal resized to %dx%d", term.Columns(), term.Rows())
	}
	if cmd.Buffer().Limit() != 80 {
		t.Errorf("expected limit 80, got %d", cmd.Buffer().Limit())
	}
}

func TestNewCommandErrors(t *testing.T) {
	term, out := newTestTerminal("")
	if _, err := NewCommand(":", "bogus", Options{Terminal: term}); !errors.Is(err, ErrKeyNotRecognized) {
		t.Errorf("expected ErrKeyNotRecognized, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("terminal was queried for a bad key: %q", out.String())
	}

	if _, err := NewCommand(":", "ctrl-o", Options{Terminal: term}); !errors.Is(err, ErrReadCursorPosition) {
		t.Errorf("expected ErrReadCursorPosition, got %v", err)
	}

	if _, err := NewCommand(":", "ctrl-o", Options{Terminal: term, Limit: 200}); !errors.Is(err, ErrLimit) {
		t.Errorf("expected ErrLimit, got %v", err)
	}
}

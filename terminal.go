package cprompt

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

const (
	defaultColumns = 80
	defaultRows    = 24
)

// Terminal is the device a prompt edits on: a byte input shared by every
// prompt that uses it, an output, and the window size. Raw mode is only
// switched when the input is a real terminal.
type Terminal struct {
	in  *input
	dec *Decoder
	out io.Writer

	fd         int
	columns    int
	rows       int
	rawDepth   int
	savedState *unix.Termios
}

// NewTerminal wraps in and out. Nil values stand for os.Stdin and os.Stdout.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}

	t := &Terminal{out: out, fd: -1}
	t.dec = NewDecoder(in)
	t.in = t.dec.in

	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		t.fd = int(f.Fd())
	}
	t.getTerminalSize()
	return t
}

func (t *Terminal) getTerminalSize() {
	if f, ok := t.out.(*os.File); ok {
		if cols, rows, err := term.GetSize(int(f.Fd())); err == nil && cols > 0 && rows > 0 {
			t.columns, t.rows = cols, rows
			return
		}
	}
	if t.fd >= 0 {
		if ws, err := unix.IoctlGetWinsize(t.fd, unix.TIOCGWINSZ); err == nil && ws.Col > 0 && ws.Row > 0 {
			t.columns, t.rows = int(ws.Col), int(ws.Row)
			return
		}
	}
	if fd, err := unix.Open("/dev/tty", unix.O_RDONLY, 0); err == nil {
		ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
		_ = unix.Close(fd)
		if err == nil && ws.Col > 0 && ws.Row > 0 {
			t.columns, t.rows = int(ws.Col), int(ws.Row)
			return
		}
	}
	t.columns, t.rows = defaultColumns, defaultRows
}

// SetSize overrides the detected window size. Non-positive values keep the
// current value.
func (t *Terminal) SetSize(columns, rows int) {
	if columns > 0 {
		t.columns = columns
	}
	if rows > 0 {
		t.rows = rows
	}
}

func (t *Terminal) Columns() int {
	return t.columns
}

func (t *Terminal) Rows() int {
	return t.rows
}

// Write sends p to the terminal output.
func (t *Terminal) Write(p []byte) (int, error) {
	return t.out.Write(p)
}

func (t *Terminal) Bell() {
	_, _ = t.out.Write([]byte{ansi.BEL})
}

// ReadKey blocks until one key has been decoded.
func (t *Terminal) ReadKey() (Token, error) {
	return t.dec.Decode()
}

// enterRaw switches the terminal to non-canonical, non-echoing mode and
// returns the function that undoes it. Calls nest; the saved mode is put
// back when the outermost caller restores.
func (t *Terminal) enterRaw() func() {
	if t.fd < 0 {
		return func() {}
	}

	if t.rawDepth == 0 {
		saved, err := getTermios(t.fd)
		if err != nil {
			logger.Warn("cannot read terminal mode", "err", err)
			return func() {}
		}
		raw := *saved
		raw.Lflag &^= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN
		raw.Iflag &^= unix.IXON | unix.ICRNL
		raw.Cc[unix.VMIN] = 1
		raw.Cc[unix.VTIME] = 0
		if err := setTermios(t.fd, &raw); err != nil {
			logger.Warn("cannot enter raw mode", "err", err)
			return func() {}
		}
		t.savedState = saved
		logger.Debug("entered raw mode", "fd", t.fd)
	}
	t.rawDepth++

	return func() {
		t.rawDepth--
		if t.rawDepth > 0 {
			return
		}
		if err := setTermios(t.fd, t.savedState); err != nil {
			logger.Warn("cannot restore terminal mode", "err", err)
		}
		logger.Debug("restored terminal mode", "fd", t.fd)
	}
}

// CursorPosition asks the terminal where its cursor is and returns the
// 1-based row and column. Input that arrives before the report is kept for
// the next ReadKey.
func (t *Terminal) CursorPosition() (row, col int, err error) {
	defer t.enterRaw()()

	if _, err := io.WriteString(t.out, ansi.RequestCursorPositionReport); err != nil {
		return 0, 0, fmt.Errorf("%w: %w", ErrReadCursorPosition, err)
	}

	var resp []byte
	for {
		b, err := t.in.ReadByte()
		if err != nil {
			t.in.keep(resp...)
			return 0, 0, fmt.Errorf("%w: %w", ErrReadCursorPosition, err)
		}
		resp = append(resp, b)
		if b == 'R' && bytes.Contains(resp, []byte("\x1b[")) {
			break
		}
	}

	start := bytes.LastIndex(resp, []byte("\x1b["))
	t.in.keep(resp[:start]...)
	return parseCursorReport(string(resp[start+2 : len(resp)-1]))
}

// parseCursorReport parses the "row;col" body of a CSI ... R report.
func parseCursorReport(body string) (int, int, error) {
	parts := strings.Split(body, ";")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: malformed report %q", ErrReadCursorPosition, body)
	}
	row, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: row %q", ErrReadCursorPosition, parts[0])
	}
	col, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: column %q", ErrReadCursorPosition, parts[1])
	}
	return row, col, nil
}

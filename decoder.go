package cprompt

import (
	"bufio"
	"io"
	"unicode/utf8"
)

// input is a byte source with push-back. Bytes that arrive while waiting for
// a cursor position report are kept in pending and handed out first.
type input struct {
	r           *bufio.Reader
	pending     []byte
	last        byte
	lastPending bool
}

func newInput(r io.Reader) *input {
	return &input{r: bufio.NewReader(r)}
}

func (in *input) ReadByte() (byte, error) {
	if len(in.pending) > 0 {
		b := in.pending[0]
		in.pending = in.pending[1:]
		in.last, in.lastPending = b, true
		return b, nil
	}
	b, err := in.r.ReadByte()
	if err != nil {
		return 0, err
	}
	in.last, in.lastPending = b, false
	return b, nil
}

func (in *input) UnreadByte() error {
	if in.lastPending {
		in.pending = append([]byte{in.last}, in.pending...)
		in.lastPending = false
		return nil
	}
	return in.r.UnreadByte()
}

// Buffered reports how many bytes can be read without blocking.
func (in *input) Buffered() int {
	return len(in.pending) + in.r.Buffered()
}

func (in *input) keep(b ...byte) {
	in.pending = append(in.pending, b...)
}

// Decoder turns the raw byte stream of a terminal into key tokens. It reads
// one byte at a time and holds at most one escape sequence in flight.
//
// An ESC with no further input already buffered is reported as KeyEscape
// without waiting. Terminals write a whole sequence at once, so this only
// misreads a sequence whose bytes arrive in separate reads, which then
// decodes as ESC followed by its remaining bytes.
type Decoder struct {
	in *input
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{in: newInput(r)}
}

// Decode blocks until a complete key has been read. Sequences that match no
// known key produce a KeyUnknown token.
func (d *Decoder) Decode() (Token, error) {
	b, err := d.in.ReadByte()
	if err != nil {
		return Token{}, err
	}

	if b == 0x1b {
		return d.decodeEscape()
	}
	if tok, ok := byteKeys[b]; ok {
		return tok, nil
	}
	if b < utf8.RuneSelf {
		return Token{Key: KeyRune, Rune: rune(b)}, nil
	}
	return d.decodeRune(b)
}

func (d *Decoder) decodeRune(first byte) (Token, error) {
	buf := []byte{first}
	for !utf8.FullRune(buf) {
		b, err := d.in.ReadByte()
		if err != nil {
			return Token{}, err
		}
		buf = append(buf, b)
	}
	r, _ := utf8.DecodeRune(buf)
	if r == utf8.RuneError {
		logger.Debug("invalid utf-8 input", "bytes", buf)
		return Token{Key: KeyUnknown}, nil
	}
	return Token{Key: KeyRune, Rune: r}, nil
}

func (d *Decoder) decodeEscape() (Token, error) {
	// A lone ESC: terminals send whole sequences in one write.
	if d.in.Buffered() == 0 {
		return Token{Key: KeyEscape}, nil
	}

	b, err := d.in.ReadByte()
	if err != nil {
		return Token{}, err
	}
	switch b {
	case '[':
		return d.decodeCSI()
	case 'O':
		return d.decodeSS3()
	}
	_ = d.in.UnreadByte()
	return Token{Key: KeyEscape}, nil
}

func (d *Decoder) decodeCSI() (Token, error) {
	b, err := d.in.ReadByte()
	if err != nil {
		return Token{}, err
	}

	switch b {
	case 'A':
		return Token{Key: KeyUp}, nil
	case 'B':
		return Token{Key: KeyDown}, nil
	case 'C':
		return Token{Key: KeyRight}, nil
	case 'D':
		return Token{Key: KeyLeft}, nil
	case 'H':
		return Token{Key: KeyHome}, nil
	case 'F':
		return Token{Key: KeyEnd}, nil
	case '1':
		return d.expect(func(seq []byte) Token {
			switch string(seq) {
			case ";2C":
				return Token{Key: KeyShiftRight}
			case ";2D":
				return Token{Key: KeyShiftLeft}
			case "~":
				return Token{Key: KeyHome}
			}
			return Token{Key: KeyUnknown}
		})
	case '2':
		return d.tilde(KeyInsert)
	case '3':
		return d.tilde(KeyDelete)
	case '4', '8':
		return d.tilde(KeyEnd)
	case '7':
		return d.tilde(KeyHome)
	case '5', '6':
		// Reported on the digit. The closing '~' is dropped only if it is
		// already here, so a truncated sequence never blocks the loop.
		if d.in.Buffered() > 0 {
			if next, err := d.in.ReadByte(); err == nil && next != '~' {
				_ = d.in.UnreadByte()
			}
		}
		if b == '5' {
			return Token{Key: KeyPageUp}, nil
		}
		return Token{Key: KeyPageDown}, nil
	case '[':
		// Linux console function keys: ESC [ [ A..E.
		if _, err := d.in.ReadByte(); err != nil {
			return Token{}, err
		}
		return Token{Key: KeyUnknown}, nil
	}

	if b >= 0x20 && b <= 0x3f {
		// Parameter or intermediate byte: consume through the final byte so
		// nothing of the sequence reaches the buffer.
		return d.expect(func([]byte) Token { return Token{Key: KeyUnknown} })
	}
	logger.Debug("unrecognized CSI sequence", "final", string(b))
	return Token{Key: KeyUnknown}, nil
}

func (d *Decoder) decodeSS3() (Token, error) {
	b, err := d.in.ReadByte()
	if err != nil {
		return Token{}, err
	}
	switch b {
	case 'A':
		return Token{Key: KeyUp}, nil
	case 'B':
		return Token{Key: KeyDown}, nil
	case 'C':
		return Token{Key: KeyRight}, nil
	case 'D':
		return Token{Key: KeyLeft}, nil
	case 'H':
		return Token{Key: KeyHome}, nil
	case 'F':
		return Token{Key: KeyEnd}, nil
	}
	logger.Debug("unrecognized SS3 sequence", "final", string(b))
	return Token{Key: KeyUnknown}, nil
}

func (d *Decoder) tilde(k Key) (Token, error) {
	return d.expect(func(seq []byte) Token {
		if string(seq) == "~" {
			return Token{Key: k}
		}
		return Token{Key: KeyUnknown}
	})
}

// maxSequence bounds how far expect reads looking for a final byte. It is
// long enough for SGR mouse reports.
const maxSequence = 32

// expect reads the rest of a CSI sequence up to and including its final byte
// and lets match classify it.
func (d *Decoder) expect(match func(seq []byte) Token) (Token, error) {
	var seq []byte
	for {
		b, err := d.in.ReadByte()
		if err != nil {
			return Token{}, err
		}
		seq = append(seq, b)
		// Final bytes of a control sequence are in 0x40-0x7e.
		if b >= 0x40 && b <= 0x7e || len(seq) >= maxSequence {
			break
		}
	}
	tok := match(seq)
	if tok.Key == KeyUnknown {
		logger.Debug("unrecognized CSI sequence", "seq", string(seq))
	}
	return tok, nil
}

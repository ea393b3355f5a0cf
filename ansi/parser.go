package ansi

import (
	"bufio"
	"io"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

const (
	// maxSequenceLen bounds CSI sequences. Longer ones are dropped
	maxSequenceLen = 256
	// maxStringLen bounds OSC, DCS and APC payloads. Extra bytes are
	// dropped
	maxStringLen = 1 << 20

	maxParamValue = 1 << 24

	bel = 0x07
	esc = 0x1B
	del = 0x7F
)

// Parser reads terminal input and emits Sequences, in order, on the channel
// returned by Next. The last Sequence is always EOF
type Parser struct {
	r    *bufio.Reader
	out  chan Sequence
	text []byte
}

// NewParser starts parsing r
func NewParser(r io.Reader) *Parser {
	p := &Parser{
		r:    bufio.NewReaderSize(r, 4096),
		out:  make(chan Sequence, 64),
		text: make([]byte, 0, 64),
	}
	go p.run()
	return p
}

// Next returns the channel Sequences are delivered on. It is closed after EOF
func (p *Parser) Next() chan Sequence {
	return p.out
}

func (p *Parser) emit(seq Sequence) {
	p.out <- seq
}

func (p *Parser) run() {
	defer close(p.out)
	for {
		b, err := p.r.ReadByte()
		if err != nil {
			p.emit(EOF{Err: err})
			return
		}
		switch {
		case b == esc:
			err = p.escape()
		case b < 0x20, b == del:
			p.emit(C0(b))
		default:
			err = p.print(b)
		}
		if err != nil {
			p.emit(EOF{Err: err})
			return
		}
	}
}

// more reports whether more input is already buffered. A sequence
// introducer with nothing behind it was typed, not sent by the terminal
func (p *Parser) more() bool {
	return p.r.Buffered() > 0
}

func (p *Parser) escape() error {
	if !p.more() {
		p.emit(C0(esc))
		return nil
	}
	b, err := p.r.ReadByte()
	if err != nil {
		return err
	}
	switch {
	case b == '[' && p.more():
		return p.csi()
	case b == 'O' && p.more():
		f, err := p.readRune()
		if err != nil {
			return err
		}
		p.emit(SS3(f))
		return nil
	case b == ']' && p.more():
		s, err := p.stringSequence()
		if err != nil {
			return err
		}
		p.emit(OSC{Payload: s})
		return nil
	case b == 'P' && p.more():
		s, err := p.stringSequence()
		if err != nil {
			return err
		}
		p.emit(DCS{Data: s})
		return nil
	case b == '_' && p.more():
		s, err := p.stringSequence()
		if err != nil {
			return err
		}
		p.emit(APC{Data: s})
		return nil
	case (b == 'X' || b == '^') && p.more():
		// SOS and PM: nothing to report
		_, err := p.stringSequence()
		return err
	case b >= 0x20 && b <= 0x2F:
		return p.escapeIntermediate(b)
	case b >= 0x80:
		if err := p.r.UnreadByte(); err != nil {
			return err
		}
		r, err := p.readRune()
		if err != nil {
			return err
		}
		p.emit(ESC{Final: r})
		return nil
	default:
		p.emit(ESC{Final: rune(b)})
		return nil
	}
}

func (p *Parser) escapeIntermediate(first byte) error {
	seq := ESC{
		Intermediate: []rune{rune(first)},
	}
	for {
		b, err := p.r.ReadByte()
		if err != nil {
			return err
		}
		switch {
		case b >= 0x20 && b <= 0x2F:
			seq.Intermediate = append(seq.Intermediate, rune(b))
		case b == esc:
			// abandoned, start over
			return p.r.UnreadByte()
		default:
			seq.Final = rune(b)
			p.emit(seq)
			return nil
		}
	}
}

func (p *Parser) csi() error {
	var (
		seq    CSI
		param  []int
		val    int
		digits bool
		n      int
		drop   bool
	)
	endValue := func() {
		param = append(param, val)
		val = 0
		digits = false
	}
	for {
		b, err := p.r.ReadByte()
		if err != nil {
			return err
		}
		n += 1
		if n > maxSequenceLen {
			drop = true
		}
		switch {
		case b >= '0' && b <= '9':
			digits = true
			if val < maxParamValue {
				val = val*10 + int(b-'0')
			}
		case b == ':':
			endValue()
		case b == ';':
			endValue()
			seq.Parameters = append(seq.Parameters, param)
			param = nil
		case b >= 0x3C && b <= 0x3F, b >= 0x20 && b <= 0x2F:
			seq.Intermediate = append(seq.Intermediate, rune(b))
		case b >= 0x40 && b <= 0x7E:
			if digits || len(param) > 0 || len(seq.Parameters) > 0 {
				endValue()
				seq.Parameters = append(seq.Parameters, param)
			}
			seq.Final = rune(b)
			if !drop {
				p.emit(seq)
			}
			return nil
		case b == esc:
			// abandoned, start over
			return p.r.UnreadByte()
		case b < 0x20:
			// Control characters are executed in the middle of a
			// sequence
			p.emit(C0(b))
		default:
			// ignored
		}
	}
}

// stringSequence collects the payload of OSC, DCS, APC, SOS and PM sequences,
// up to the string terminator (ESC \) or BEL
func (p *Parser) stringSequence() (string, error) {
	buf := bufPool.Get()
	buf.Reset()
	defer bufPool.Put(buf)
	for {
		b, err := p.r.ReadByte()
		if err != nil {
			return "", err
		}
		switch b {
		case bel:
			return buf.String(), nil
		case esc:
			next, err := p.r.ReadByte()
			if err != nil {
				return "", err
			}
			if next != '\\' {
				// Not a terminator but still ends the string
				if err := p.r.UnreadByte(); err != nil {
					return "", err
				}
			}
			return buf.String(), nil
		default:
			if buf.Len() < maxStringLen {
				buf.WriteByte(b)
			}
		}
	}
}

// print emits the graphemes of a run of printable text starting with b. The
// run ends at the first control character or at the end of the buffered
// input
func (p *Parser) print(b byte) error {
	text := append(p.text[:0], b)
	var err error
	text, err = p.completeRune(text)
	if err != nil {
		return err
	}
	for p.more() && len(text) < maxSequenceLen {
		peek, err := p.r.Peek(1)
		if err != nil {
			return err
		}
		c := peek[0]
		if c < 0x20 || c == del {
			break
		}
		_, _ = p.r.ReadByte()
		text = append(text, c)
		text, err = p.completeRune(text)
		if err != nil {
			return err
		}
	}
	p.text = text

	s := string(text)
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		p.emit(Print(cluster))
	}
	return nil
}

// completeRune reads continuation bytes until the last rune of text is
// complete
func (p *Parser) completeRune(text []byte) ([]byte, error) {
	start := len(text) - 1
	for start > 0 && !utf8.RuneStart(text[start]) {
		start -= 1
	}
	for !utf8.FullRune(text[start:]) {
		b, err := p.r.ReadByte()
		if err != nil {
			return text, err
		}
		text = append(text, b)
	}
	return text, nil
}

func (p *Parser) readRune() (rune, error) {
	r, _, err := p.r.ReadRune()
	return r, err
}

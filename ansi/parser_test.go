package ansi

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func parseAll(input string) []Sequence {
	p := NewParser(strings.NewReader(input))
	var seqs []Sequence
	for seq := range p.Next() {
		if _, ok := seq.(EOF); ok {
			continue
		}
		seqs = append(seqs, seq)
	}
	return seqs
}

func TestParser(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Sequence
	}{
		{
			name:  "print",
			input: "ab",
			want:  []Sequence{Print("a"), Print("b")},
		},
		{
			name:  "grapheme",
			input: "éx",
			want:  []Sequence{Print("é"), Print("x")},
		},
		{
			name:  "c0",
			input: "\r\x7f",
			want:  []Sequence{C0('\r'), C0(0x7F)},
		},
		{
			name:  "lone escape",
			input: "\x1b",
			want:  []Sequence{C0(0x1B)},
		},
		{
			name:  "escape",
			input: "\x1bb",
			want:  []Sequence{ESC{Final: 'b'}},
		},
		{
			name:  "escape with intermediate",
			input: "\x1b(B",
			want:  []Sequence{ESC{Intermediate: []rune{'('}, Final: 'B'}},
		},
		{
			name:  "escape then introducer",
			input: "\x1bO",
			want:  []Sequence{ESC{Final: 'O'}},
		},
		{
			name:  "ss3",
			input: "\x1bOA",
			want:  []Sequence{SS3('A')},
		},
		{
			name:  "csi without parameters",
			input: "\x1b[A",
			want:  []Sequence{CSI{Final: 'A'}},
		},
		{
			name:  "csi",
			input: "\x1b[1;5A",
			want:  []Sequence{CSI{Parameters: [][]int{{1}, {5}}, Final: 'A'}},
		},
		{
			name:  "csi subparameters",
			input: "\x1b[97;1:3u",
			want:  []Sequence{CSI{Parameters: [][]int{{97}, {1, 3}}, Final: 'u'}},
		},
		{
			name:  "csi empty parameter",
			input: "\x1b[;5H",
			want:  []Sequence{CSI{Parameters: [][]int{{0}, {5}}, Final: 'H'}},
		},
		{
			name:  "csi private marker",
			input: "\x1b[<0;1;2M",
			want: []Sequence{CSI{
				Intermediate: []rune{'<'},
				Parameters:   [][]int{{0}, {1}, {2}},
				Final:        'M',
			}},
		},
		{
			name:  "csi abandoned",
			input: "\x1b[1\x1b[B",
			want:  []Sequence{CSI{Final: 'B'}},
		},
		{
			name:  "osc bel",
			input: "\x1b]0;title\x07",
			want:  []Sequence{OSC{Payload: "0;title"}},
		},
		{
			name:  "osc st",
			input: "\x1b]0;title\x1b\\",
			want:  []Sequence{OSC{Payload: "0;title"}},
		},
		{
			name:  "dcs",
			input: "\x1bP1$r0m\x1b\\",
			want:  []Sequence{DCS{Data: "1$r0m"}},
		},
		{
			name:  "apc",
			input: "\x1b_Gi=1;OK\x1b\\",
			want:  []Sequence{APC{Data: "Gi=1;OK"}},
		},
		{
			name:  "pm is dropped",
			input: "\x1b^secret\x1b\\a",
			want:  []Sequence{Print("a")},
		},
		{
			name:  "mixed",
			input: "a\x1b[Ib",
			want:  []Sequence{Print("a"), CSI{Final: 'I'}, Print("b")},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, parseAll(test.input))
		})
	}
}

func TestParserLongSequence(t *testing.T) {
	input := "\x1b[" + strings.Repeat("1;", maxSequenceLen) + "A" + "x"
	assert.Equal(t, []Sequence{Print("x")}, parseAll(input))
}

func TestParserEOF(t *testing.T) {
	p := NewParser(strings.NewReader(""))
	seq := <-p.Next()
	assert.Equal(t, EOF{Err: io.EOF}, seq)
	_, ok := <-p.Next()
	assert.False(t, ok)
}

func TestParserSplitRune(t *testing.T) {
	pr, pw := io.Pipe()
	p := NewParser(pr)
	go func() {
		// é split over two writes
		pw.Write([]byte{0xC3})
		pw.Write([]byte{0xA9})
		pw.Close()
	}()
	assert.Equal(t, Print("é"), <-p.Next())
	assert.Equal(t, EOF{Err: io.EOF}, <-p.Next())
}

func TestCSIParam(t *testing.T) {
	seq := CSI{Parameters: [][]int{{0}, {5, 2}, {}}, Final: 'u'}
	assert.Equal(t, 1, seq.Param(0, 1))
	assert.Equal(t, 5, seq.Param(1, 1))
	assert.Equal(t, 7, seq.Param(2, 7))
	assert.Equal(t, 9, seq.Param(3, 9))
	assert.Equal(t, "CSI 0;5:2; u", seq.String())
}

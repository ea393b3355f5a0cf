// Package ansi parses terminal input into control sequences and printable
// graphemes
package ansi

import (
	"fmt"
	"strings"
)

// Sequence is one unit of parsed terminal input. It is one of Print, C0, ESC,
// SS3, CSI, OSC, DCS, APC or EOF
type Sequence interface{}

// Print is a single printable grapheme
type Print string

// C0 is a control character. A lone escape, with nothing after it, is
// reported as C0(0x1B)
type C0 rune

// ESC is an escape sequence which is not one of the other sequence kinds.
// Terminals send most alt-modified keys this way
type ESC struct {
	Intermediate []rune
	Final        rune
}

// SS3 is a single shift 3 sequence (ESC O {final})
type SS3 rune

// CSI is a control sequence. Private markers (<=>?) and intermediate bytes
// are both in Intermediate. Each parameter holds its colon separated
// subparameters; missing values are 0
type CSI struct {
	Intermediate []rune
	Parameters   [][]int
	Final        rune
}

// OSC is an operating system command
type OSC struct {
	Payload string
}

// DCS is a device control string
type DCS struct {
	Data string
}

// APC is an application program command
type APC struct {
	Data string
}

// EOF is the last Sequence emitted by a Parser. Err is the error which ended
// the input
type EOF struct {
	Err error
}

func (seq CSI) String() string {
	ps := make([]string, 0, len(seq.Parameters))
	for _, p := range seq.Parameters {
		sub := make([]string, 0, len(p))
		for _, v := range p {
			sub = append(sub, fmt.Sprint(v))
		}
		ps = append(ps, strings.Join(sub, ":"))
	}
	return fmt.Sprintf("CSI %s%s %c", string(seq.Intermediate), strings.Join(ps, ";"), seq.Final)
}

func (seq ESC) String() string {
	return fmt.Sprintf("ESC %s%q", string(seq.Intermediate), seq.Final)
}

// HasIntermediate reports whether the sequence carries exactly the given
// private marker or intermediate
func (seq CSI) HasIntermediate(r rune) bool {
	return len(seq.Intermediate) == 1 && seq.Intermediate[0] == r
}

// Param returns the first subparameter of parameter i, or def if it is
// missing or 0
func (seq CSI) Param(i int, def int) int {
	if i >= len(seq.Parameters) || len(seq.Parameters[i]) == 0 {
		return def
	}
	if seq.Parameters[i][0] == 0 {
		return def
	}
	return seq.Parameters[i][0]
}

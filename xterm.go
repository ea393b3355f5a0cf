package tinput

import (
	"fmt"
	"unicode/utf8"

	"git.sr.ht/~rockorager/tinput/ansi"
)

// decodePrint decodes a printable grapheme
func decodePrint(seq ansi.Print) Key {
	r, _ := utf8.DecodeRuneInString(string(seq))
	return Key{
		Text:      string(seq),
		Codepoint: r,
		EventType: EventPress,
	}
}

// decodeC0 decodes a control character the way xterm generates them
func decodeC0(seq ansi.C0) Key {
	key := Key{
		EventType: EventPress,
	}
	switch rune(seq) {
	case 0x00:
		key.Codepoint = KeySpace
		key.Modifiers = ModCtrl
	case 0x09:
		key.Codepoint = KeyTab
	case 0x0D:
		key.Codepoint = KeyEnter
	case 0x1B:
		key.Codepoint = KeyEsc
	case 0x7F:
		key.Codepoint = KeyBackspace
	default:
		switch {
		case seq >= 0x01 && seq <= 0x1A:
			key.Codepoint = rune(seq) - 0x01 + 'a'
			key.Modifiers = ModCtrl
		case seq >= 0x1C && seq <= 0x1F:
			key.Codepoint = rune(seq) - 0x1C + '4'
			key.Modifiers = ModCtrl
		default:
			key.Codepoint = rune(seq)
		}
	}
	return key
}

// decodeEsc decodes alt modified keys, which are sent as ESC followed by the
// key
func decodeEsc(seq ansi.ESC) (Key, bool) {
	if len(seq.Intermediate) != 0 {
		return Key{}, false
	}
	if seq.Final < 0x20 || seq.Final == 0x7F {
		key := decodeC0(ansi.C0(seq.Final))
		key.Modifiers |= ModAlt
		return key, true
	}
	return Key{
		Codepoint: seq.Final,
		Modifiers: ModAlt,
		EventType: EventPress,
	}, true
}

var ss3Keys = map[rune]rune{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'E': KeyBegin,
	'F': KeyEnd,
	'H': KeyHome,
	'M': KeyEnter,
	'P': KeyF01,
	'Q': KeyF02,
	'R': KeyF03,
	'S': KeyF04,
}

// decodeSS3 decodes the keys sent in application cursor and keypad mode
func decodeSS3(seq ansi.SS3) (Key, bool) {
	cp, ok := ss3Keys[rune(seq)]
	if !ok {
		return Key{}, false
	}
	return Key{
		Codepoint: cp,
		EventType: EventPress,
	}, true
}

// decodeCSIKey decodes legacy xterm keys (CSI 1;mods A, CSI code;mods ~) and
// kitty keyboard protocol keys (CSI code;mods u). xterm encodes modifiers the
// same way kitty does
func decodeCSIKey(seq ansi.CSI) (Key, bool) {
	if len(seq.Intermediate) != 0 {
		return Key{}, false
	}
	switch seq.Final {
	case 'Z':
		return Key{
			Codepoint: KeyTab,
			Modifiers: ModShift,
			EventType: EventPress,
		}, true
	case 'u':
	case 'A', 'B', 'C', 'D', 'E', 'F', 'H', 'P', 'Q', 'S', '~':
		base := fmt.Sprintf("%d%c", seq.Param(0, 1), seq.Final)
		if _, ok := kittyKeyMap[base]; !ok {
			return Key{}, false
		}
	default:
		return Key{}, false
	}
	if seq.Final != 'u' && seq.Param(0, 0) == 0 {
		// CSI A and CSI ;5A mean key code 1
		params := [][]int{{1}}
		if len(seq.Parameters) > 1 {
			params = append(params, seq.Parameters[1:]...)
		}
		seq.Parameters = params
	}
	key := parseKittyKbp(seq)
	if key.Codepoint == 0 {
		return Key{}, false
	}
	return key, true
}

package tinput

import (
	"fmt"
	"strings"
	"unicode"

	"git.sr.ht/~rockorager/tinput/ansi"
)

// Key is a key event. Codepoint can be either the literal codepoint of the
// keypress, or a value set by tinput to indicate special keys. Special keys
// have their codepoints outside of the valid unicode range
type Key struct {
	// Text is the text generated by the keypress, when known. For multi
	// codepoint graphemes Codepoint holds the first codepoint only
	Text      string
	Codepoint rune
	Modifiers ModifierMask
	EventType EventType
}

// ModifierMask is a bitmask of the modifiers held during a key or mouse event
type ModifierMask int

const (
	// Values equivalent to kitty keyboard protocol
	ModShift ModifierMask = 1 << iota
	ModAlt
	ModCtrl
	ModSuper
	ModHyper
	ModMeta
	ModCapsLock
	ModNumLock
)

// EventType is an input event type (press, repeat, release, etc)
type EventType int

const (
	// The event type could not be determined
	EventUnknown EventType = iota
	// The key / button was pressed
	EventPress
	// The key / button was repeated
	EventRepeat
	// The key / button was released
	EventRelease
	// A mouse motion event (with or without a button press)
	EventMotion
)

// Matches returns true if the key has the given codepoint and exactly the
// given modifiers. Lock modifiers are ignored
func (k Key) Matches(cp rune, mods ...ModifierMask) bool {
	var want ModifierMask
	for _, m := range mods {
		want |= m
	}
	have := k.Modifiers &^ (ModCapsLock | ModNumLock)
	return k.Codepoint == cp && have == want
}

// Modified keys will always have prefixes in this order:
//
//	<num-caps-meta-hyper-super-c-a-s-{key}>
func (k Key) String() string {
	mods := k.Modifiers
	name, special := keyNames[k.Codepoint]
	switch {
	case special:
	case k.Codepoint >= KeyF00 && k.Codepoint <= KeyF63:
		name = fmt.Sprintf("f%d", k.Codepoint-KeyF00)
		special = true
	case k.Codepoint < 0x00:
		return "<invalid>"
	case k.Codepoint < 0x20:
		// Legacy control codes
		name = strings.ToLower(string(k.Codepoint + 0x40))
		mods |= ModCtrl
	case k.Codepoint <= unicode.MaxRune:
		name = string(k.Codepoint)
	default:
		return "<invalid>"
	}

	if mods == 0 && !special {
		return name
	}

	buf := &strings.Builder{}
	buf.WriteRune('<')
	if mods&ModNumLock != 0 {
		buf.WriteString("num-")
	}
	if mods&ModCapsLock != 0 {
		buf.WriteString("caps-")
	}
	if mods&ModMeta != 0 {
		buf.WriteString("meta-")
	}
	if mods&ModHyper != 0 {
		buf.WriteString("hyper-")
	}
	if mods&ModSuper != 0 {
		buf.WriteString("super-")
	}
	if mods&ModCtrl != 0 {
		buf.WriteString("c-")
	}
	if mods&ModAlt != 0 {
		buf.WriteString("a-")
	}
	if mods&ModShift != 0 {
		buf.WriteString("s-")
	}
	buf.WriteString(name)
	buf.WriteRune('>')
	return buf.String()
}

const (
	extended rune = 1 << 30
)

const (
	KeyUp rune = extended + 1 + iota
	KeyRight
	KeyDown
	KeyLeft
	KeyInsert
	KeyDelete
	KeyBackspace
	KeyPgDown
	KeyPgUp
	KeyHome
	KeyEnd
	KeyF00
	KeyF01
	KeyF02
	KeyF03
	KeyF04
	KeyF05
	KeyF06
	KeyF07
	KeyF08
	KeyF09
	KeyF10
	KeyF11
	KeyF12
	KeyF13
	KeyF14
	KeyF15
	KeyF16
	KeyF17
	KeyF18
	KeyF19
	KeyF20
	KeyF21
	KeyF22
	KeyF23
	KeyF24
	KeyF25
	KeyF26
	KeyF27
	KeyF28
	KeyF29
	KeyF30
	KeyF31
	KeyF32
	KeyF33
	KeyF34
	KeyF35
	KeyF36
	KeyF37
	KeyF38
	KeyF39
	KeyF40
	KeyF41
	KeyF42
	KeyF43
	KeyF44
	KeyF45
	KeyF46
	KeyF47
	KeyF48
	KeyF49
	KeyF50
	KeyF51
	KeyF52
	KeyF53
	KeyF54
	KeyF55
	KeyF56
	KeyF57
	KeyF58
	KeyF59
	KeyF60
	KeyF61
	KeyF62
	KeyF63 // F63 is max defined in terminfo
	KeyEnter
	KeyBegin
	// Only reported by the kitty keyboard protocol
	KeyCapsLock
	KeyScrollLock
	KeyNumlock
	KeyPrintScreen
	KeyPause
	KeyMenu
	KeyMediaPlay
	KeyMediaPause
	KeyMediaPlayPause
	KeyMediaRev
	KeyMediaStop
	KeyMediaFF
	KeyMediaRewind
	KeyMediaNext
	KeyMediaPrev
	KeyMediaRecord
	KeyMediaVolDown
	KeyMediaVolUp
	KeyMediaMute
	// Modifiers, when pressed by themselves
	KeyLeftShift
	KeyLeftControl
	KeyLeftAlt
	KeyLeftSuper
	KeyLeftHyper
	KeyLeftMeta
	KeyRightShift
	KeyRightControl
	KeyRightAlt
	KeyRightSuper
	KeyRightHyper
	KeyRightMeta

	// Aliases
	KeyReturn = KeyEnter
	KeyTab    = 0x09
	KeyEsc    = 0x1B
	KeySpace  = 0x20
)

var keyNames = map[rune]string{
	KeyUp:             "up",
	KeyRight:          "right",
	KeyDown:           "down",
	KeyLeft:           "left",
	KeyInsert:         "insert",
	KeyDelete:         "delete",
	KeyBackspace:      "bs",
	KeyPgDown:         "pgdown",
	KeyPgUp:           "pgup",
	KeyHome:           "home",
	KeyEnd:            "end",
	KeyEnter:          "enter",
	KeyBegin:          "begin",
	KeyTab:            "tab",
	KeyEsc:            "esc",
	KeySpace:          "space",
	KeyCapsLock:       "caps_lock",
	KeyScrollLock:     "scroll_lock",
	KeyNumlock:        "num_lock",
	KeyPrintScreen:    "print_screen",
	KeyPause:          "pause",
	KeyMenu:           "menu",
	KeyMediaPlay:      "media_play",
	KeyMediaPause:     "media_pause",
	KeyMediaPlayPause: "media_play_pause",
	KeyMediaRev:       "media_reverse",
	KeyMediaStop:      "media_stop",
	KeyMediaFF:        "media_fast_forward",
	KeyMediaRewind:    "media_rewind",
	KeyMediaNext:      "media_next",
	KeyMediaPrev:      "media_prev",
	KeyMediaRecord:    "media_record",
	KeyMediaVolDown:   "media_volume_down",
	KeyMediaVolUp:     "media_volume_up",
	KeyMediaMute:      "media_mute",
	KeyLeftShift:      "left_shift",
	KeyLeftControl:    "left_control",
	KeyLeftAlt:        "left_alt",
	KeyLeftSuper:      "left_super",
	KeyLeftHyper:      "left_hyper",
	KeyLeftMeta:       "left_meta",
	KeyRightShift:     "right_shift",
	KeyRightControl:   "right_control",
	KeyRightAlt:       "right_alt",
	KeyRightSuper:     "right_super",
	KeyRightHyper:     "right_hyper",
	KeyRightMeta:      "right_meta",
}

var kittyKeyMap = map[string]rune{
	"27u":    KeyEsc,
	"13u":    KeyEnter,
	"9u":     KeyTab,
	"127u":   KeyBackspace,
	"2~":     KeyInsert,
	"3~":     KeyDelete,
	"1D":     KeyLeft,
	"1C":     KeyRight,
	"1B":     KeyDown,
	"1A":     KeyUp,
	"5~":     KeyPgUp,
	"6~":     KeyPgDown,
	"1F":     KeyEnd,
	"4~":     KeyEnd,
	"8~":     KeyEnd,
	"1H":     KeyHome,
	"1~":     KeyHome,
	"7~":     KeyHome,
	"1E":     KeyBegin,
	"57358u": KeyCapsLock,
	"57359u": KeyScrollLock,
	"57360u": KeyNumlock,
	"57361u": KeyPrintScreen,
	"57362u": KeyPause,
	"57363u": KeyMenu,
	"1P":     KeyF01,
	"11~":    KeyF01,
	"1Q":     KeyF02,
	"12~":    KeyF02,
	"13~":    KeyF03,
	"1S":     KeyF04,
	"14~":    KeyF04,
	"15~":    KeyF05,
	"17~":    KeyF06,
	"18~":    KeyF07,
	"19~":    KeyF08,
	"20~":    KeyF09,
	"21~":    KeyF10,
	"23~":    KeyF11,
	"24~":    KeyF12,
	"57376u": KeyF13,
	"57377u": KeyF14,
	"57378u": KeyF15,
	"57379u": KeyF16,
	"57380u": KeyF17,
	"57381u": KeyF18,
	"57382u": KeyF19,
	"57383u": KeyF20,
	"57384u": KeyF21,
	"57385u": KeyF22,
	"57386u": KeyF23,
	"57387u": KeyF24,
	"57388u": KeyF25,
	"57389u": KeyF26,
	"57390u": KeyF27,
	"57391u": KeyF28,
	"57392u": KeyF29,
	"57393u": KeyF30,
	"57394u": KeyF31,
	"57395u": KeyF32,
	"57396u": KeyF33,
	"57397u": KeyF34,
	"57398u": KeyF35,
	// Skip the keypad keys
	"57428u": KeyMediaPlay,
	"57429u": KeyMediaPause,
	"57430u": KeyMediaPlayPause,
	"57431u": KeyMediaRev,
	"57432u": KeyMediaStop,
	"57433u": KeyMediaFF,
	"57434u": KeyMediaRewind,
	"57435u": KeyMediaNext,
	"57436u": KeyMediaPrev,
	"57437u": KeyMediaRecord,
	"57438u": KeyMediaVolDown,
	"57439u": KeyMediaVolUp,
	"57440u": KeyMediaMute,
	"57441u": KeyLeftShift,
	"57442u": KeyLeftControl,
	"57443u": KeyLeftAlt,
	"57444u": KeyLeftSuper,
	"57445u": KeyLeftHyper,
	"57446u": KeyLeftMeta,
	"57447u": KeyRightShift,
	"57448u": KeyRightControl,
	"57449u": KeyRightAlt,
	"57450u": KeyRightSuper,
	"57451u": KeyRightHyper,
	"57452u": KeyRightMeta,
}

// parseKittyKbp decodes a CSI sequence in the kitty keyboard protocol form:
//
//	CSI unicode-key-code:alternate-key-codes ; modifiers:event-type ; text-as-codepoints {~ABCDEFHPQSu}
func parseKittyKbp(seq ansi.CSI) Key {
	key := Key{
		EventType: EventPress,
	}
	for i, pm := range seq.Parameters {
		if len(pm) == 0 {
			continue
		}
		switch i {
		case 0:
			// unicode-key-code. We haven't requested alternate-keys,
			// so only the first subparameter matters
			base := fmt.Sprintf("%d%c", pm[0], seq.Final)
			cp, ok := kittyKeyMap[base]
			if !ok {
				cp = rune(pm[0])
			}
			key.Codepoint = cp
		case 1:
			// Kitty keyboard protocol reports these as their
			// bitmask + 1, so that an unmodified key has a value of
			// 1. We subtract one to normalize to our internal
			// representation
			if pm[0] > 1 {
				key.Modifiers = ModifierMask(pm[0] - 1)
			}
			if len(pm) > 1 {
				key.EventType = EventType(pm[1])
			}
		case 2:
			// text-as-codepoints
			b := &strings.Builder{}
			for _, cp := range pm {
				b.WriteRune(rune(cp))
			}
			key.Text = b.String()
		}
	}
	if key.Text == "" && key.Codepoint <= unicode.MaxRune && unicode.IsPrint(key.Codepoint) &&
		key.Modifiers&^(ModShift|ModCapsLock|ModNumLock) == 0 {
		key.Text = string(key.Codepoint)
	}
	return key
}

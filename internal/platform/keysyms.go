package platform

import "github.com/1broseidon/winloop/internal/event"

// X11 keysym values for the non-printable keys we map.
var keysymKeys = map[uint32]event.Key{
	0xff08: event.KeyBackspace,
	0xff09: event.KeyTab,
	0xff0d: event.KeyReturn,
	0xff13: event.KeyPause,
	0xff14: event.KeyScrollLock,
	0xff1b: event.KeyEscape,
	0xff50: event.KeyHome,
	0xff51: event.KeyArrowLeft,
	0xff52: event.KeyArrowUp,
	0xff53: event.KeyArrowRight,
	0xff54: event.KeyArrowDown,
	0xff55: event.KeyPageUp,
	0xff56: event.KeyPageDown,
	0xff57: event.KeyEnd,
	0xff61: event.KeyPrint,
	0xff63: event.KeyInsert,
	0xff67: event.KeyMenu,
	0xff7f: event.KeyNumLock,
	0xff8d: event.KeyReturn,
	0xffaa: event.KeyMultiply,
	0xffab: event.KeyAdd,
	0xffad: event.KeySubtract,
	0xffae: event.KeyDecimal,
	0xffaf: event.KeyDivide,
	0xffe1: event.KeyLeftShift,
	0xffe2: event.KeyRightShift,
	0xffe3: event.KeyLeftControl,
	0xffe4: event.KeyRightControl,
	0xffe5: event.KeyCapsLock,
	0xffe9: event.KeyLeftAlt,
	0xffea: event.KeyRightAlt,
	0xffeb: event.KeyLeftSuper,
	0xffec: event.KeyRightSuper,
	0xffff: event.KeyDelete,

	';':  event.KeySemicolon,
	'=':  event.KeyEqual,
	',':  event.KeyComma,
	'-':  event.KeyMinus,
	'.':  event.KeyPeriod,
	'/':  event.KeySlash,
	'`':  event.KeyGrave,
	'[':  event.KeyLBracket,
	'\\': event.KeyBackslash,
	']':  event.KeyRBracket,
	'\'': event.KeyQuote,
	' ':  event.KeySpace,
}

// KeyFromKeysym maps an unshifted X11 keysym to a virtual key.
func KeyFromKeysym(sym uint32) event.Key {
	switch {
	case sym >= 'a' && sym <= 'z':
		return event.Key(sym - 'a' + 'A')
	case sym >= 'A' && sym <= 'Z', sym >= '0' && sym <= '9':
		return event.Key(sym)
	case sym >= 0xffbe && sym <= 0xffc9: // F1..F12
		return event.KeyF1 + event.Key(sym-0xffbe)
	case sym >= 0xffb0 && sym <= 0xffb9: // KP_0..KP_9
		return event.KeyNumpad0 + event.Key(sym-0xffb0)
	}
	if k, ok := keysymKeys[sym]; ok {
		return k
	}
	return event.KeyUnknown
}

// RuneFromKeysym returns the character a keysym types, if any. Latin-1
// keysyms equal their code point; Unicode keysyms carry it in the low bits.
func RuneFromKeysym(sym uint32) (rune, bool) {
	switch {
	case sym >= 0x20 && sym <= 0x7e, sym >= 0xa0 && sym <= 0xff:
		return rune(sym), true
	case sym&0xff000000 == 0x01000000:
		r := rune(sym & 0x00ffffff)
		if r < 0x20 || r == 0x7f {
			return 0, false
		}
		return r, true
	case sym == 0xff0d || sym == 0xff8d:
		return '\r', true
	case sym == 0xff09:
		return '\t', true
	}
	return 0, false
}

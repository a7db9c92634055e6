package event

import (
	"fmt"
	"strings"
)

// Key is a platform-neutral virtual key code. Letter and digit keys use their
// uppercase ASCII value; the rest follow the classic virtual-key numbering.
type Key uint32

const (
	KeyUnknown    Key = 0x00
	KeyBackspace  Key = 0x08
	KeyTab        Key = 0x09
	KeyReturn     Key = 0x0D
	KeyShift      Key = 0x10
	KeyControl    Key = 0x11
	KeyAlt        Key = 0x12
	KeyPause      Key = 0x13
	KeyCapsLock   Key = 0x14
	KeyEscape     Key = 0x1B
	KeySpace      Key = 0x20
	KeyPageUp     Key = 0x21
	KeyPageDown   Key = 0x22
	KeyEnd        Key = 0x23
	KeyHome       Key = 0x24
	KeyArrowLeft  Key = 0x25
	KeyArrowUp    Key = 0x26
	KeyArrowRight Key = 0x27
	KeyArrowDown  Key = 0x28
	KeyPrint      Key = 0x2A
	KeyInsert     Key = 0x2D
	KeyDelete     Key = 0x2E

	Key0 Key = '0'
	Key1 Key = '1'
	Key2 Key = '2'
	Key3 Key = '3'
	Key4 Key = '4'
	Key5 Key = '5'
	Key6 Key = '6'
	Key7 Key = '7'
	Key8 Key = '8'
	Key9 Key = '9'

	KeyA Key = 'A'
	KeyB Key = 'B'
	KeyC Key = 'C'
	KeyD Key = 'D'
	KeyE Key = 'E'
	KeyF Key = 'F'
	KeyG Key = 'G'
	KeyH Key = 'H'
	KeyI Key = 'I'
	KeyJ Key = 'J'
	KeyK Key = 'K'
	KeyL Key = 'L'
	KeyM Key = 'M'
	KeyN Key = 'N'
	KeyO Key = 'O'
	KeyP Key = 'P'
	KeyQ Key = 'Q'
	KeyR Key = 'R'
	KeyS Key = 'S'
	KeyT Key = 'T'
	KeyU Key = 'U'
	KeyV Key = 'V'
	KeyW Key = 'W'
	KeyX Key = 'X'
	KeyY Key = 'Y'
	KeyZ Key = 'Z'

	KeyLeftSuper  Key = 0x5B
	KeyRightSuper Key = 0x5C
	KeyMenu       Key = 0x5D

	KeyNumpad0  Key = 0x60
	KeyNumpad1  Key = 0x61
	KeyNumpad2  Key = 0x62
	KeyNumpad3  Key = 0x63
	KeyNumpad4  Key = 0x64
	KeyNumpad5  Key = 0x65
	KeyNumpad6  Key = 0x66
	KeyNumpad7  Key = 0x67
	KeyNumpad8  Key = 0x68
	KeyNumpad9  Key = 0x69
	KeyMultiply Key = 0x6A
	KeyAdd      Key = 0x6B
	KeySubtract Key = 0x6D
	KeyDecimal  Key = 0x6E
	KeyDivide   Key = 0x6F

	KeyF1  Key = 0x70
	KeyF2  Key = 0x71
	KeyF3  Key = 0x72
	KeyF4  Key = 0x73
	KeyF5  Key = 0x74
	KeyF6  Key = 0x75
	KeyF7  Key = 0x76
	KeyF8  Key = 0x77
	KeyF9  Key = 0x78
	KeyF10 Key = 0x79
	KeyF11 Key = 0x7A
	KeyF12 Key = 0x7B

	KeyNumLock    Key = 0x90
	KeyScrollLock Key = 0x91

	KeyLeftShift    Key = 0xA0
	KeyRightShift   Key = 0xA1
	KeyLeftControl  Key = 0xA2
	KeyRightControl Key = 0xA3
	KeyLeftAlt      Key = 0xA4
	KeyRightAlt     Key = 0xA5

	KeySemicolon Key = 0xBA
	KeyEqual     Key = 0xBB
	KeyComma     Key = 0xBC
	KeyMinus     Key = 0xBD
	KeyPeriod    Key = 0xBE
	KeySlash     Key = 0xBF
	KeyGrave     Key = 0xC0
	KeyLBracket  Key = 0xDB
	KeyBackslash Key = 0xDC
	KeyRBracket  Key = 0xDD
	KeyQuote     Key = 0xDE
)

var keyNames = map[Key]string{
	KeyBackspace:    "backspace",
	KeyTab:          "tab",
	KeyReturn:       "return",
	KeyShift:        "shift",
	KeyControl:      "control",
	KeyAlt:          "alt",
	KeyPause:        "pause",
	KeyCapsLock:     "capslock",
	KeyEscape:       "escape",
	KeySpace:        "space",
	KeyPageUp:       "pageup",
	KeyPageDown:     "pagedown",
	KeyEnd:          "end",
	KeyHome:         "home",
	KeyArrowLeft:    "left",
	KeyArrowUp:      "up",
	KeyArrowRight:   "right",
	KeyArrowDown:    "down",
	KeyPrint:        "print",
	KeyInsert:       "insert",
	KeyDelete:       "delete",
	KeyLeftSuper:    "lsuper",
	KeyRightSuper:   "rsuper",
	KeyMenu:         "menu",
	KeyMultiply:     "multiply",
	KeyAdd:          "add",
	KeySubtract:     "subtract",
	KeyDecimal:      "decimal",
	KeyDivide:       "divide",
	KeyNumLock:      "numlock",
	KeyScrollLock:   "scrolllock",
	KeyLeftShift:    "lshift",
	KeyRightShift:   "rshift",
	KeyLeftControl:  "lcontrol",
	KeyRightControl: "rcontrol",
	KeyLeftAlt:      "lalt",
	KeyRightAlt:     "ralt",
	KeySemicolon:    "semicolon",
	KeyEqual:        "equal",
	KeyComma:        "comma",
	KeyMinus:        "minus",
	KeyPeriod:       "period",
	KeySlash:        "slash",
	KeyGrave:        "grave",
	KeyLBracket:     "lbracket",
	KeyBackslash:    "backslash",
	KeyRBracket:     "rbracket",
	KeyQuote:        "quote",
}

func (k Key) String() string {
	switch {
	case k >= KeyA && k <= KeyZ, k >= Key0 && k <= Key9:
		return strings.ToLower(string(rune(k)))
	case k >= KeyF1 && k <= KeyF12:
		return fmt.Sprintf("f%d", int(k-KeyF1)+1)
	case k >= KeyNumpad0 && k <= KeyNumpad9:
		return fmt.Sprintf("numpad%d", int(k-KeyNumpad0))
	}
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("key(0x%02x)", uint32(k))
}

// ParseKey resolves a key name as produced by Key.String. Matching is case
// insensitive.
func ParseKey(name string) (Key, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return KeyUnknown, fmt.Errorf("empty key name")
	}
	if len(n) == 1 {
		c := n[0]
		switch {
		case c >= 'a' && c <= 'z':
			return Key(c - 'a' + 'A'), nil
		case c >= '0' && c <= '9':
			return Key(c), nil
		}
	}
	for k := KeyF1; k <= KeyF12; k++ {
		if k.String() == n {
			return k, nil
		}
	}
	for k := KeyNumpad0; k <= KeyNumpad9; k++ {
		if k.String() == n {
			return k, nil
		}
	}
	for k, s := range keyNames {
		if s == n {
			return k, nil
		}
	}
	if n == "esc" {
		return KeyEscape, nil
	}
	if n == "enter" {
		return KeyReturn, nil
	}
	return KeyUnknown, fmt.Errorf("unknown key %q", name)
}

// Button identifies a mouse button.
type Button uint8

const (
	ButtonNone   Button = 0x00
	ButtonLeft   Button = 0x01
	ButtonRight  Button = 0x02
	ButtonMiddle Button = 0x04
	ButtonX1     Button = 0x05
	ButtonX2     Button = 0x06
)

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonMiddle:
		return "middle"
	case ButtonX1:
		return "x1"
	case ButtonX2:
		return "x2"
	default:
		return fmt.Sprintf("button(%d)", uint8(b))
	}
}

// ParseButton resolves a button name as produced by Button.String.
func ParseButton(name string) (Button, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "left":
		return ButtonLeft, nil
	case "right":
		return ButtonRight, nil
	case "middle":
		return ButtonMiddle, nil
	case "x1":
		return ButtonX1, nil
	case "x2":
		return ButtonX2, nil
	}
	return ButtonNone, fmt.Errorf("unknown mouse button %q", name)
}

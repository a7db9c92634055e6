package platform

import (
	"errors"
	"fmt"
	"strings"

	"github.com/1broseidon/winloop/internal/event"
)

// ErrWindowDestroyed is returned by a native window once it has been destroyed.
var ErrWindowDestroyed = errors.New("native window destroyed")

// Theme selects the window decoration variant.
type Theme int

const (
	ThemeLight Theme = iota
	ThemeDark
)

func (t Theme) String() string {
	switch t {
	case ThemeLight:
		return "light"
	case ThemeDark:
		return "dark"
	default:
		return fmt.Sprintf("theme(%d)", int(t))
	}
}

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// ParseTheme resolves "light" or "dark". An empty name maps to ThemeLight.
func ParseTheme(name string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "light":
		return ThemeLight, nil
	case "dark":
		return ThemeDark, nil
	default:
		return ThemeLight, fmt.Errorf("unknown theme %q (expected light or dark)", name)
	}
}

// Point is a position in screen coordinates.
type Point struct {
	X int
	Y int
}

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Config describes how to construct a native window. It is fixed once the
// window exists; runtime changes go through Instructions.
type Config struct {
	Title  string
	Width  int
	Height int
	// Position is ignored when AutoPosition is set.
	Position     Point
	AutoPosition bool
	Theme        Theme
	// Icon is an optional path to a PNG, JPEG or GIF image.
	Icon      string
	Resizable bool
}

// RawHandle identifies a native window for external renderers.
type RawHandle struct {
	Window  uint32
	Display string
}

// InstructionKind enumerates the mutations that can be requested of a window.
type InstructionKind int

const (
	InstrClose InstructionKind = iota
	InstrResize
	InstrMove
	InstrSetTitle
	InstrSetTheme
	InstrSetIcon
	InstrFocus
)

func (k InstructionKind) String() string {
	switch k {
	case InstrClose:
		return "close"
	case InstrResize:
		return "resize"
	case InstrMove:
		return "move"
	case InstrSetTitle:
		return "set-title"
	case InstrSetTheme:
		return "set-theme"
	case InstrSetIcon:
		return "set-icon"
	case InstrFocus:
		return "focus"
	default:
		return fmt.Sprintf("instruction(%d)", int(k))
	}
}

// Instruction is a mutation request delivered to a window through its own
// message queue and applied on the window's thread.
type Instruction struct {
	Kind   InstructionKind
	Title  string
	Icon   string
	Theme  Theme
	X      int
	Y      int
	Width  int
	Height int
}

// MessageCode classifies a native message after the platform has decoded it.
type MessageCode int

const (
	MsgNone MessageCode = iota
	// MsgInstruction carries an Instruction posted from another thread.
	MsgInstruction
	// MsgCloseRequest is sent when the user asks the window to close.
	MsgCloseRequest
	// MsgDestroyed reports that the native window is already gone.
	MsgDestroyed
	MsgKeyDown
	MsgKeyUp
	MsgChar
	MsgButtonDown
	MsgButtonUp
	MsgMotion
	MsgScroll
	MsgFocusIn
	MsgFocusOut
	MsgResize
	MsgMove
	MsgMaximize
	MsgMinimize
	MsgOther
)

// Message is one decoded native message. Only the fields relevant to Code
// are set.
type Message struct {
	Code MessageCode
	Key  event.Key
	// Repeat marks a key press generated by auto-repeat.
	Repeat      bool
	Char        rune
	Button      event.Button
	X           int
	Y           int
	Width       int
	Height      int
	Scroll      int
	Name        string
	Instruction Instruction
}

// NativeWindow is a platform window bound to the thread that created it.
//
// NextMessage, Apply and Destroy must only be called from the creating
// thread. Post and RawHandle are safe from any goroutine.
type NativeWindow interface {
	RawHandle() RawHandle
	// NextMessage blocks until the next message for this window. It returns
	// ErrWindowDestroyed after Destroy.
	NextMessage() (Message, error)
	// Post queues an instruction on the window's own message queue.
	Post(instr Instruction) error
	// Apply performs an instruction previously received via NextMessage.
	Apply(instr Instruction) error
	Destroy() error
}

// Backend creates native windows.
type Backend interface {
	Name() string
	// CreateWindow creates a native window from cfg on the calling thread.
	CreateWindow(cfg Config) (NativeWindow, error)
}

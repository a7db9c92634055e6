// Package keystate tracks the latest action seen for every key and mouse
// button across all windows, plus characters typed but not yet delivered.
package keystate

import (
	"sync"

	"github.com/1broseidon/winloop/internal/event"
)

// Table is a last-write-wins record of key and button actions. It is written
// by window threads and read by the manager; every access holds the lock only
// for a single map operation.
type Table struct {
	mu      sync.RWMutex
	keys    map[event.Key]event.Action
	buttons map[event.Button]event.Action
	// chars counts Char events per rune that have been produced but not
	// yet consumed by the event loop.
	chars   map[rune]int
}

// New returns an empty table. Unseen keys report event.None.
func New() *Table {
	return &Table{
		keys:    make(map[event.Key]event.Action),
		buttons: make(map[event.Button]event.Action),
		chars:   make(map[rune]int),
	}
}

// SetKey records the latest action for key.
func (t *Table) SetKey(key event.Key, action event.Action) {
	t.mu.Lock()
	t.keys[key] = action
	t.mu.Unlock()
}

// Key returns the latest action recorded for key.
func (t *Table) Key(key event.Key) event.Action {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.keys[key]
}

// SetButton records the latest action for a mouse button.
func (t *Table) SetButton(button event.Button, action event.Action) {
	t.mu.Lock()
	t.buttons[button] = action
	t.mu.Unlock()
}

// Button returns the latest action recorded for a mouse button.
func (t *Table) Button(button event.Button) event.Action {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.buttons[button]
}

// TypeChar records that r was typed.
func (t *Table) TypeChar(r rune) {
	t.mu.Lock()
	t.chars[r]++
	t.mu.Unlock()
}

// ConsumeChar retires one TypeChar for r once its event has been handled.
func (t *Table) ConsumeChar(r rune) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if n := t.chars[r]; n > 1 {
		t.chars[r] = n - 1
	} else {
		delete(t.chars, r)
	}
}

// Char reports whether r was typed and its event is still pending or being
// handled. It is case sensitive.
func (t *Table) Char(r rune) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.chars[r] > 0
}

// Held reports whether key was last pressed (or is repeating) and not yet
// released.
func (t *Table) Held(key event.Key) bool {
	switch t.Key(key) {
	case event.Press, event.Down:
		return true
	default:
		return false
	}
}

// Reset forgets every recorded action.
func (t *Table) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	clear(t.keys)
	clear(t.buttons)
	clear(t.chars)
}

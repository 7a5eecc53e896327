package input

import (
	"errors"
	"fmt"
	"strings"

	"framehost/hal"
)

var ErrBadChord = errors.New("bad key chord")

// KeyState is the latched (wasDown, isDown) pair of one key.
type KeyState struct {
	WasDown bool
	IsDown  bool
}

// KeyLatch records key transitions. Repeats (both flags set) are ignored.
type KeyLatch struct {
	keys  map[hal.KeyCode]KeyState
	edges map[hal.KeyCode]int
}

func NewKeyLatch() *KeyLatch {
	return &KeyLatch{
		keys:  make(map[hal.KeyCode]KeyState),
		edges: make(map[hal.KeyCode]int),
	}
}

// Record latches ev and reports whether it was an edge.
func (l *KeyLatch) Record(ev hal.KeyEvent) bool {
	if !ev.Edge() {
		return false
	}
	l.keys[ev.Code] = KeyState{WasDown: ev.WasDown, IsDown: ev.IsDown}
	l.edges[ev.Code]++
	return true
}

// State returns the last latched state of code.
func (l *KeyLatch) State(code hal.KeyCode) KeyState { return l.keys[code] }

// Down reports whether code is held according to the last edge.
func (l *KeyLatch) Down(code hal.KeyCode) bool { return l.keys[code].IsDown }

// Edges returns the number of transitions seen for code.
func (l *KeyLatch) Edges(code hal.KeyCode) int { return l.edges[code] }

// Chord is a key plus an optional Alt modifier, e.g. "alt+f4".
type Chord struct {
	Alt  bool
	Code hal.KeyCode
}

// Match reports whether ev is a message for the chord's key with the required
// modifier held. Repeats and releases match too; the latch is not consulted.
func (c Chord) Match(ev hal.KeyEvent) bool {
	if c.Code == hal.KeyUnknown {
		return false
	}
	return ev.Code == c.Code && (!c.Alt || ev.Alt)
}

func (c Chord) String() string {
	if c.Code == hal.KeyUnknown {
		return "none"
	}
	if c.Alt {
		return "alt+" + c.Code.String()
	}
	return c.Code.String()
}

// ParseChord parses "key" or "alt+key". An empty string is the zero chord,
// which matches nothing.
func ParseChord(s string) (Chord, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "none" {
		return Chord{}, nil
	}
	var c Chord
	if rest, ok := strings.CutPrefix(s, "alt+"); ok {
		c.Alt = true
		s = rest
	}
	code, ok := hal.ParseKeyCode(s)
	if !ok {
		return Chord{}, fmt.Errorf("%w: unknown key %q", ErrBadChord, s)
	}
	c.Code = code
	return c, nil
}

package hal

import "fmt"

// Event is anything a Window can report.
type Event interface{}

// ResizeEvent reports a client-area size change.
type ResizeEvent struct {
	Width  int
	Height int
}

// CloseEvent is a user request to close the window.
type CloseEvent struct{}

// DestroyEvent reports that the window is gone.
type DestroyEvent struct{}

// QuitEvent asks the whole application to stop.
type QuitEvent struct{}

// ActivateEvent reports focus gain or loss.
type ActivateEvent struct {
	Active bool
}

// PaintEvent asks for the client area to be redrawn.
type PaintEvent struct{}

// KeyEvent is a key transition or auto-repeat. WasDown and IsDown carry the
// previous and current key state; a repeat while held has both set.
type KeyEvent struct {
	Code    KeyCode
	WasDown bool
	IsDown  bool
	Alt     bool
	System  bool
}

// Edge reports whether the event is a press or release rather than a repeat.
func (e KeyEvent) Edge() bool { return e.WasDown != e.IsDown }

// RawEvent wraps a platform event the backend does not translate.
type RawEvent struct {
	Value any
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeySpace
	KeyBackspace
	KeyTab
	KeyW
	KeyA
	KeyS
	KeyD
	KeyQ
	KeyE
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

var keyNames = [...]string{
	KeyUnknown:   "unknown",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyEnter:     "enter",
	KeyEscape:    "escape",
	KeySpace:     "space",
	KeyBackspace: "backspace",
	KeyTab:       "tab",
	KeyW:         "w",
	KeyA:         "a",
	KeyS:         "s",
	KeyD:         "d",
	KeyQ:         "q",
	KeyE:         "e",
	KeyF1:        "f1",
	KeyF2:        "f2",
	KeyF3:        "f3",
	KeyF4:        "f4",
	KeyF5:        "f5",
	KeyF6:        "f6",
	KeyF7:        "f7",
	KeyF8:        "f8",
	KeyF9:        "f9",
	KeyF10:       "f10",
	KeyF11:       "f11",
	KeyF12:       "f12",
}

func (k KeyCode) String() string {
	if int(k) < len(keyNames) {
		return keyNames[k]
	}
	return fmt.Sprintf("key(%d)", uint16(k))
}

// ParseKeyCode maps a key name as printed by String back to its code.
func ParseKeyCode(name string) (KeyCode, bool) {
	for i, n := range keyNames {
		if n == name && KeyCode(i) != KeyUnknown {
			return KeyCode(i), true
		}
	}
	return KeyUnknown, false
}

//go:build cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Auto-repeat timing in ticks, close to common desktop defaults at 60 Hz.
const (
	keyRepeatDelay    = 30
	keyRepeatInterval = 4
)

var ebitenKeys = []struct {
	key  ebiten.Key
	code KeyCode
}{
	{ebiten.KeyArrowUp, KeyUp},
	{ebiten.KeyArrowDown, KeyDown},
	{ebiten.KeyArrowLeft, KeyLeft},
	{ebiten.KeyArrowRight, KeyRight},
	{ebiten.KeyEnter, KeyEnter},
	{ebiten.KeyEscape, KeyEscape},
	{ebiten.KeySpace, KeySpace},
	{ebiten.KeyBackspace, KeyBackspace},
	{ebiten.KeyTab, KeyTab},
	{ebiten.KeyW, KeyW},
	{ebiten.KeyA, KeyA},
	{ebiten.KeyS, KeyS},
	{ebiten.KeyD, KeyD},
	{ebiten.KeyQ, KeyQ},
	{ebiten.KeyE, KeyE},
	{ebiten.KeyF1, KeyF1},
	{ebiten.KeyF2, KeyF2},
	{ebiten.KeyF3, KeyF3},
	{ebiten.KeyF4, KeyF4},
	{ebiten.KeyF5, KeyF5},
	{ebiten.KeyF6, KeyF6},
	{ebiten.KeyF7, KeyF7},
	{ebiten.KeyF8, KeyF8},
	{ebiten.KeyF9, KeyF9},
	{ebiten.KeyF10, KeyF10},
	{ebiten.KeyF11, KeyF11},
	{ebiten.KeyF12, KeyF12},
}

type hostKeyboard struct{}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{}
}

// poll posts press, release and repeat events for the tracked keys.
func (k *hostKeyboard) poll(q *EventQueue) {
	alt := ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight)

	for _, m := range ebitenKeys {
		switch {
		case inpututil.IsKeyJustPressed(m.key):
			q.TryPost(KeyEvent{Code: m.code, WasDown: false, IsDown: true, Alt: alt, System: alt})
		case inpututil.IsKeyJustReleased(m.key):
			q.TryPost(KeyEvent{Code: m.code, WasDown: true, IsDown: false, Alt: alt, System: alt})
		default:
			d := inpututil.KeyPressDuration(m.key)
			if d > keyRepeatDelay && (d-keyRepeatDelay)%keyRepeatInterval == 0 {
				q.TryPost(KeyEvent{Code: m.code, WasDown: true, IsDown: true, Alt: alt, System: alt})
			}
		}
	}
}

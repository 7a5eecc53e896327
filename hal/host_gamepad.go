//go:build cgo

package hal

import (
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const vibrationPulse = 100 * time.Millisecond

var ebitenButtons = []struct {
	button ebiten.StandardGamepadButton
	bit    Button
}{
	{ebiten.StandardGamepadButtonLeftTop, ButtonDPadUp},
	{ebiten.StandardGamepadButtonLeftBottom, ButtonDPadDown},
	{ebiten.StandardGamepadButtonLeftLeft, ButtonDPadLeft},
	{ebiten.StandardGamepadButtonLeftRight, ButtonDPadRight},
	{ebiten.StandardGamepadButtonCenterRight, ButtonStart},
	{ebiten.StandardGamepadButtonCenterLeft, ButtonBack},
	{ebiten.StandardGamepadButtonFrontTopLeft, ButtonLeftShoulder},
	{ebiten.StandardGamepadButtonFrontTopRight, ButtonRightShoulder},
	{ebiten.StandardGamepadButtonRightBottom, ButtonA},
	{ebiten.StandardGamepadButtonRightRight, ButtonB},
	{ebiten.StandardGamepadButtonRightLeft, ButtonX},
	{ebiten.StandardGamepadButtonRightTop, ButtonY},
}

// ebitenGamepads maps connected ebiten gamepads onto slots in connection
// order. Gamepads without a standard layout report as connected with neutral
// sticks and no buttons.
// Vibration is a timed pulse in ebiten, so a requested level is re-issued
// from GetState until it is cleared.
type ebitenGamepads struct {
	ids    []ebiten.GamepadID
	packet uint32
	vib    [4]Vibration
	pulsed [4]time.Time
}

func newEbitenGamepads() *ebitenGamepads {
	return &ebitenGamepads{}
}

func (g *ebitenGamepads) Name() string { return "ebiten-gamepad" }

func (g *ebitenGamepads) id(index int) (ebiten.GamepadID, bool) {
	g.ids = ebiten.AppendGamepadIDs(g.ids[:0])
	if index < 0 || index >= len(g.ids) {
		return 0, false
	}
	return g.ids[index], true
}

func (g *ebitenGamepads) GetState(index int) (ControllerState, error) {
	id, ok := g.id(index)
	if !ok {
		return ControllerState{}, ErrNotConnected
	}
	g.packet++
	g.renew(index, id)
	st := ControllerState{Packet: g.packet}
	if !ebiten.IsStandardGamepadLayoutAvailable(id) {
		return st, nil
	}
	st.StickX = axisToInt16(ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal))
	// Ebiten reports down as positive; controller sticks report up as positive.
	st.StickY = axisToInt16(-ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical))
	for _, m := range ebitenButtons {
		if ebiten.IsStandardGamepadButtonPressed(id, m.button) {
			st.Buttons |= m.bit
		}
	}
	return st, nil
}

func (g *ebitenGamepads) SetState(index int, v Vibration) error {
	id, ok := g.id(index)
	if !ok {
		return ErrNotConnected
	}
	if index < len(g.vib) {
		g.vib[index] = v
	}
	g.vibrate(index, id, v)
	return nil
}

func (g *ebitenGamepads) renew(index int, id ebiten.GamepadID) {
	if index >= len(g.vib) || g.vib[index] == (Vibration{}) {
		return
	}
	if time.Since(g.pulsed[index]) >= vibrationPulse/2 {
		g.vibrate(index, id, g.vib[index])
	}
}

func (g *ebitenGamepads) vibrate(index int, id ebiten.GamepadID, v Vibration) {
	if index < len(g.pulsed) {
		g.pulsed[index] = time.Now()
	}
	ebiten.VibrateGamepad(id, &ebiten.VibrateGamepadOptions{
		Duration:        vibrationPulse,
		StrongMagnitude: float64(v.Left) / math.MaxUint16,
		WeakMagnitude:   float64(v.Right) / math.MaxUint16,
	})
}

// Package input samples game controllers and tracks keyboard edges for the
// frame loop.
package input

import (
	"errors"
	"fmt"

	"framehost/hal"
)

// MaxControllers is the number of controller slots polled every frame.
const MaxControllers = 4

// Sample is one slot's state for the current frame. Fields other than
// Connected are zero for a disconnected slot.
type Sample struct {
	Connected bool
	StickX    int16
	StickY    int16
	Buttons   hal.Button
}

// Controllers is the controller capability chosen at startup.
type Controllers interface {
	Available() bool
	Name() string
	GetState(slot int) (hal.ControllerState, error)
	SetState(slot int, v hal.Vibration) error
}

// Resolve picks the capability once. A nil driver or a load error yields the
// unavailable variant, which reports every slot as disconnected.
func Resolve(drv hal.ControllerDriver, err error) Controllers {
	if err != nil || drv == nil {
		return unavailable{}
	}
	return available{drv: drv}
}

type available struct {
	drv hal.ControllerDriver
}

func (c available) Available() bool { return true }
func (c available) Name() string    { return c.drv.Name() }

func (c available) GetState(slot int) (hal.ControllerState, error) {
	return c.drv.GetState(slot)
}

func (c available) SetState(slot int, v hal.Vibration) error {
	return c.drv.SetState(slot, v)
}

type unavailable struct{}

func (unavailable) Available() bool { return false }
func (unavailable) Name() string    { return "none" }

func (unavailable) GetState(int) (hal.ControllerState, error) {
	return hal.ControllerState{}, hal.ErrNotConnected
}

func (unavailable) SetState(int, hal.Vibration) error { return nil }

// Sampler polls up to MaxControllers slots through a Controllers capability.
type Sampler struct {
	c     Controllers
	slots int
	log   hal.Logger

	// last driver error per slot, so a failing pad logs once per change
	lastErr [MaxControllers]error
}

// NewSampler polls the first slots controller slots; values outside
// [1, MaxControllers] select all of them.
func NewSampler(c Controllers, slots int, log hal.Logger) *Sampler {
	if c == nil {
		c = unavailable{}
	}
	if slots <= 0 || slots > MaxControllers {
		slots = MaxControllers
	}
	return &Sampler{c: c, slots: slots, log: hal.LoggerOrNop(log)}
}

func (s *Sampler) Available() bool { return s.c.Available() }
func (s *Sampler) Name() string    { return s.c.Name() }

// Sample reads every slot. Any driver error reports the slot disconnected.
func (s *Sampler) Sample() [MaxControllers]Sample {
	var out [MaxControllers]Sample
	if !s.c.Available() {
		return out
	}
	for i := 0; i < s.slots; i++ {
		st, err := s.c.GetState(i)
		s.noteError(i, err)
		if err != nil {
			continue
		}
		out[i] = Sample{
			Connected: true,
			StickX:    st.StickX,
			StickY:    st.StickY,
			Buttons:   st.Buttons,
		}
	}
	return out
}

func (s *Sampler) noteError(slot int, err error) {
	prev := s.lastErr[slot]
	s.lastErr[slot] = err
	if err == nil || errors.Is(err, hal.ErrNotConnected) {
		return
	}
	if prev != nil && prev.Error() == err.Error() {
		return
	}
	s.log.WriteLineString(fmt.Sprintf("input: pad %d: %v", slot, err))
}

// Rumble sets both motors of a slot to strength. It is a no-op when no
// driver is loaded or the slot is out of range.
func (s *Sampler) Rumble(slot int, strength uint16) error {
	if !s.c.Available() || slot < 0 || slot >= s.slots {
		return nil
	}
	return s.c.SetState(slot, hal.Vibration{Left: strength, Right: strength})
}

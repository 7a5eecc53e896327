//go:build linux

package hal

import (
	"encoding/binary"
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// Linux joystick API (linux/joystick.h).
const (
	jsEventButton = 0x01
	jsEventAxis   = 0x02
	jsEventInit   = 0x80
	jsEventSize   = 8

	jsMaxDevices  = 4
	jsReopenEvery = 120
)

// Button numbers of the xpad layout.
var jsButtons = map[uint8]Button{
	0: ButtonA,
	1: ButtonB,
	2: ButtonX,
	3: ButtonY,
	4: ButtonLeftShoulder,
	5: ButtonRightShoulder,
	6: ButtonBack,
	7: ButtonStart,
}

type jsDevice struct {
	fd     int
	state  ControllerState
	misses int
}

// joystickDriver reads /dev/input/jsN non-blockingly. Devices are opened
// lazily and reopened periodically after an unplug.
type joystickDriver struct {
	devs [jsMaxDevices]jsDevice
	buf  [jsEventSize * 32]byte
}

// SystemControllers returns the Linux joystick driver when /dev/input is
// readable.
func SystemControllers() (ControllerDriver, error) {
	if err := unix.Access("/dev/input", unix.R_OK|unix.X_OK); err != nil {
		return nil, fmt.Errorf("joystick: %w: %v", ErrDriverUnavailable, err)
	}
	d := &joystickDriver{}
	for i := range d.devs {
		d.devs[i].fd = -1
	}
	return d, nil
}

func (d *joystickDriver) Name() string { return "linux-joystick" }

func (d *joystickDriver) GetState(index int) (ControllerState, error) {
	if index < 0 || index >= jsMaxDevices {
		return ControllerState{}, ErrNotConnected
	}
	dev := &d.devs[index]
	if dev.fd < 0 && !d.open(index) {
		return ControllerState{}, ErrNotConnected
	}
	for {
		n, err := unix.Read(dev.fd, d.buf[:])
		if err != nil {
			if errors.Is(err, unix.EAGAIN) {
				break
			}
			d.close(index)
			return ControllerState{}, ErrNotConnected
		}
		if n == 0 {
			break
		}
		for off := 0; off+jsEventSize <= n; off += jsEventSize {
			applyJSEvent(&dev.state, d.buf[off:off+jsEventSize])
		}
	}
	return dev.state, nil
}

// SetState is unsupported: the joystick API has no force feedback.
func (d *joystickDriver) SetState(index int, _ Vibration) error {
	if index < 0 || index >= jsMaxDevices || d.devs[index].fd < 0 {
		return ErrNotConnected
	}
	return ErrNotImplemented
}

func (d *joystickDriver) open(index int) bool {
	dev := &d.devs[index]
	if dev.misses > 0 {
		dev.misses--
		return false
	}
	fd, err := unix.Open(fmt.Sprintf("/dev/input/js%d", index), unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		dev.misses = jsReopenEvery
		return false
	}
	dev.fd = fd
	dev.state = ControllerState{}
	return true
}

func (d *joystickDriver) close(index int) {
	dev := &d.devs[index]
	if dev.fd >= 0 {
		unix.Close(dev.fd)
	}
	dev.fd = -1
	dev.misses = jsReopenEvery
}

func applyJSEvent(st *ControllerState, ev []byte) {
	value := int16(binary.LittleEndian.Uint16(ev[4:6]))
	kind := ev[6] &^ jsEventInit
	number := ev[7]
	st.Packet++

	switch kind {
	case jsEventButton:
		bit, ok := jsButtons[number]
		if !ok {
			return
		}
		if value != 0 {
			st.Buttons |= bit
		} else {
			st.Buttons &^= bit
		}
	case jsEventAxis:
		switch number {
		case 0:
			st.StickX = value
		case 1:
			// The joystick API reports down as positive.
			st.StickY = invertAxis(value)
		case 6:
			st.Buttons &^= ButtonDPadLeft | ButtonDPadRight
			if value < 0 {
				st.Buttons |= ButtonDPadLeft
			} else if value > 0 {
				st.Buttons |= ButtonDPadRight
			}
		case 7:
			st.Buttons &^= ButtonDPadUp | ButtonDPadDown
			if value < 0 {
				st.Buttons |= ButtonDPadUp
			} else if value > 0 {
				st.Buttons |= ButtonDPadDown
			}
		}
	}
}

func invertAxis(v int16) int16 {
	if v == -32768 {
		return 32767
	}
	return -v
}

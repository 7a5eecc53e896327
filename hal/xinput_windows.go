//go:build windows

package hal

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// XInput versions in order of preference.
var xinputLibraries = []string{"xinput1_4.dll", "xinput9_1_0.dll", "xinput1_3.dll"}

type xinputGamepad struct {
	Buttons      uint16
	LeftTrigger  uint8
	RightTrigger uint8
	ThumbLX      int16
	ThumbLY      int16
	ThumbRX      int16
	ThumbRY      int16
}

type xinputState struct {
	PacketNumber uint32
	Gamepad      xinputGamepad
}

type xinputVibration struct {
	LeftMotorSpeed  uint16
	RightMotorSpeed uint16
}

type xinputDriver struct {
	name     string
	getState *windows.LazyProc
	setState *windows.LazyProc
}

// SystemControllers loads the first available XInput library.
func SystemControllers() (ControllerDriver, error) {
	for _, name := range xinputLibraries {
		dll := windows.NewLazySystemDLL(name)
		if err := dll.Load(); err != nil {
			continue
		}
		get := dll.NewProc("XInputGetState")
		set := dll.NewProc("XInputSetState")
		if get.Find() != nil || set.Find() != nil {
			continue
		}
		return &xinputDriver{name: name, getState: get, setState: set}, nil
	}
	return nil, fmt.Errorf("xinput: %w", ErrDriverUnavailable)
}

func (d *xinputDriver) Name() string { return d.name }

func (d *xinputDriver) GetState(index int) (ControllerState, error) {
	var st xinputState
	r, _, _ := d.getState.Call(uintptr(index), uintptr(unsafe.Pointer(&st)))
	if err := xinputResult(r); err != nil {
		return ControllerState{}, err
	}
	return ControllerState{
		Packet:  st.PacketNumber,
		Buttons: Button(st.Gamepad.Buttons),
		StickX:  st.Gamepad.ThumbLX,
		StickY:  st.Gamepad.ThumbLY,
	}, nil
}

func (d *xinputDriver) SetState(index int, v Vibration) error {
	vib := xinputVibration{LeftMotorSpeed: v.Left, RightMotorSpeed: v.Right}
	r, _, _ := d.setState.Call(uintptr(index), uintptr(unsafe.Pointer(&vib)))
	return xinputResult(r)
}

func xinputResult(r uintptr) error {
	switch windows.Errno(r) {
	case windows.ERROR_SUCCESS:
		return nil
	case windows.ERROR_DEVICE_NOT_CONNECTED:
		return ErrNotConnected
	default:
		return fmt.Errorf("xinput: %w", windows.Errno(r))
	}
}

//go:build linux

package hal

import (
	"encoding/binary"
	"testing"
)

func jsEvent(kind, number uint8, value int16) []byte {
	ev := make([]byte, jsEventSize)
	binary.LittleEndian.PutUint16(ev[4:6], uint16(value))
	ev[6] = kind
	ev[7] = number
	return ev
}

func TestApplyJSEvent(t *testing.T) {
	var st ControllerState
	applyJSEvent(&st, jsEvent(jsEventButton|jsEventInit, 0, 1))
	applyJSEvent(&st, jsEvent(jsEventButton, 7, 1))
	applyJSEvent(&st, jsEvent(jsEventAxis, 0, 16384))
	applyJSEvent(&st, jsEvent(jsEventAxis, 1, 16384))
	applyJSEvent(&st, jsEvent(jsEventAxis, 7, -32767))

	if st.Buttons != ButtonA|ButtonStart|ButtonDPadUp {
		t.Fatalf("Buttons = %#x, want A|Start|Up", st.Buttons)
	}
	if st.StickX != 16384 || st.StickY != -16384 {
		t.Fatalf("stick = (%d, %d), want (16384, -16384)", st.StickX, st.StickY)
	}

	applyJSEvent(&st, jsEvent(jsEventButton, 0, 0))
	applyJSEvent(&st, jsEvent(jsEventAxis, 7, 0))
	applyJSEvent(&st, jsEvent(jsEventButton, 42, 1))
	if st.Buttons != ButtonStart {
		t.Fatalf("Buttons = %#x, want Start", st.Buttons)
	}
	if st.Packet != 8 {
		t.Fatalf("Packet = %d, want 8", st.Packet)
	}
}

func TestInvertAxis(t *testing.T) {
	if got := invertAxis(-32768); got != 32767 {
		t.Fatalf("invertAxis(-32768) = %d, want 32767", got)
	}
	if got := invertAxis(100); got != -100 {
		t.Fatalf("invertAxis(100) = %d, want -100", got)
	}
}

package input

// StickShift scales a raw stick axis down to a per-frame offset step.
const StickShift = 12

// FrameState is the input state carried from frame to frame.
type FrameState struct {
	OffsetX   int32
	OffsetY   int32
	Keys      *KeyLatch
	Connected [MaxControllers]bool
}

func NewFrameState() *FrameState {
	return &FrameState{Keys: NewKeyLatch()}
}

// Accumulate adds each connected slot's stick position, arithmetically
// shifted right by StickShift, to the offsets. Disconnected slots contribute
// nothing.
func (f *FrameState) Accumulate(samples [MaxControllers]Sample) {
	for i, s := range samples {
		f.Connected[i] = s.Connected
		if !s.Connected {
			continue
		}
		f.OffsetX += int32(s.StickX) >> StickShift
		f.OffsetY += int32(s.StickY) >> StickShift
	}
}

// ConnectedCount returns the number of slots connected in the last sample.
func (f *FrameState) ConnectedCount() int {
	n := 0
	for _, c := range f.Connected {
		if c {
			n++
		}
	}
	return n
}

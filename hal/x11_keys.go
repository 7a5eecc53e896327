package hal

import "github.com/BurntSushi/xgb/xproto"

// X11 keysyms (X11/keysymdef.h) for the tracked keys.
var x11Keysyms = map[xproto.Keysym]KeyCode{
	0xff52: KeyUp,
	0xff54: KeyDown,
	0xff51: KeyLeft,
	0xff53: KeyRight,
	0xff0d: KeyEnter,
	0xff1b: KeyEscape,
	0x0020: KeySpace,
	0xff08: KeyBackspace,
	0xff09: KeyTab,
	0x0077: KeyW,
	0x0061: KeyA,
	0x0073: KeyS,
	0x0064: KeyD,
	0x0071: KeyQ,
	0x0065: KeyE,
}

const (
	x11KeysymF1  = 0xffbe
	x11KeysymF12 = 0xffc9
)

func keyFromKeysym(sym xproto.Keysym) KeyCode {
	if sym >= x11KeysymF1 && sym <= x11KeysymF12 {
		return KeyF1 + KeyCode(sym-x11KeysymF1)
	}
	if sym >= 'A' && sym <= 'Z' {
		sym += 'a' - 'A'
	}
	if code, ok := x11Keysyms[sym]; ok {
		return code
	}
	return KeyUnknown
}

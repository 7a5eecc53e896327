package hal

import (
	"testing"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

func TestKeyFromKeysym(t *testing.T) {
	cases := []struct {
		sym  xproto.Keysym
		want KeyCode
	}{
		{0xff1b, KeyEscape},
		{0xff52, KeyUp},
		{'w', KeyW},
		{'W', KeyW},
		{0xffbe, KeyF1},
		{0xffc1, KeyF4},
		{0xffc9, KeyF12},
		{'z', KeyUnknown},
		{0xffca, KeyUnknown},
	}
	for _, tc := range cases {
		if got := keyFromKeysym(tc.sym); got != tc.want {
			t.Fatalf("keyFromKeysym(%#x) = %v, want %v", tc.sym, got, tc.want)
		}
	}
}

func TestAutoRepeat(t *testing.T) {
	release := xproto.KeyReleaseEvent{Detail: 70, Time: 1000}
	cases := []struct {
		name string
		next xgb.Event
		want bool
	}{
		{"paired press", xproto.KeyPressEvent{Detail: 70, Time: 1000, State: xproto.ModMask1}, true},
		{"other key", xproto.KeyPressEvent{Detail: 71, Time: 1000}, false},
		{"later press", xproto.KeyPressEvent{Detail: 70, Time: 1001}, false},
		{"another release", xproto.KeyReleaseEvent{Detail: 70, Time: 1000}, false},
		{"nothing queued", nil, false},
	}
	for _, tc := range cases {
		p, ok := autoRepeat(release, tc.next)
		if ok != tc.want {
			t.Fatalf("%s: autoRepeat() = %v, want %v", tc.name, ok, tc.want)
		}
		if ok && p.State != xproto.ModMask1 {
			t.Fatalf("%s: press state = %#x, want the press's modifiers", tc.name, p.State)
		}
	}
}

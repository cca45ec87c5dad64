package listeners

import (
	"github.com/1broseidon/gridsnap/internal/coordinator"
	"github.com/1broseidon/gridsnap/internal/geometry"
	"github.com/1broseidon/gridsnap/internal/platform"
	"github.com/BurntSushi/xgb/xproto"
)

const (
	keysymEscape   = 0xff1b
	keysymLeft     = 0xff51
	keysymUp       = 0xff52
	keysymRight    = 0xff53
	keysymDown     = 0xff54
	keysymF1       = 0xffbe
	keysymF6       = 0xffc3
	keysymShiftL   = 0xffe1
	keysymShiftR   = 0xffe2
	keysymControlL = 0xffe3
	keysymControlR = 0xffe4
)

// keyFromKeysym maps an X keysym to a picker key.
func keyFromKeysym(sym xproto.Keysym) coordinator.Key {
	switch sym {
	case keysymEscape:
		return coordinator.KeyEscape
	case keysymLeft:
		return coordinator.KeyLeft
	case keysymUp:
		return coordinator.KeyUp
	case keysymRight:
		return coordinator.KeyRight
	case keysymDown:
		return coordinator.KeyDown
	case keysymShiftL, keysymShiftR:
		return coordinator.KeyShift
	case keysymControlL, keysymControlR:
		return coordinator.KeyControl
	}
	if sym >= keysymF1 && sym <= keysymF6 {
		return coordinator.KeyF1 + coordinator.Key(sym-keysymF1)
	}
	return coordinator.KeyOther
}

// postMotion reports pointer motion over the picker window. Leave tracking
// is armed ahead of every move.
func postMotion(out coordinator.Poster, win xproto.Window, x, y int16) {
	out.Post(coordinator.TrackMouse{Window: platform.WindowID(win)})
	out.Post(coordinator.PointerMoved{Point: geometry.Point{X: int(x), Y: int(y)}})
}

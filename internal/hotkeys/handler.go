package hotkeys

import (
	"fmt"
	"slices"
	"sync"

	"github.com/1broseidon/gridsnap/internal/platform"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
)

// x11Accessor is an optional interface for backends that expose X11 internals.
type x11Accessor interface {
	XUtil() *xgbutil.XUtil
	RootWindow() xproto.Window
}

// Handler manages global keyboard shortcuts
type Handler struct {
	xu         *xgbutil.XUtil
	root       xproto.Window
	ignoreMask uint16

	mu       sync.Mutex
	bindings []binding
}

type binding struct {
	hotkey   Hotkey
	callback func()
}

var ignoreModsOnce sync.Once

// NewHandler creates a new hotkey handler.
func NewHandler(backend platform.Backend) (*Handler, error) {
	accessor, ok := backend.(x11Accessor)
	if !ok || accessor.XUtil() == nil {
		return nil, fmt.Errorf("backend %T does not support global hotkeys", backend)
	}
	xu := accessor.XUtil()

	ignoreModsOnce.Do(func() {
		configureIgnoreMods(xu)
	})

	var ignore uint16
	for _, m := range xevent.IgnoreMods {
		ignore |= m
	}

	return &Handler{
		xu:         xu,
		root:       accessor.RootWindow(),
		ignoreMask: ignore,
	}, nil
}

// Register grabs hk on the root window and runs callback on every press.
func (h *Handler) Register(hk Hotkey, callback func()) error {
	err := keybind.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		callback()
	}).Connect(h.xu, h.root, hk.KeySequence(), true)
	if err != nil {
		return fmt.Errorf("failed to assign hotkey %s, is gridsnap already running?: %w", hk, err)
	}

	h.mu.Lock()
	h.bindings = append(h.bindings, binding{hotkey: hk, callback: callback})
	h.mu.Unlock()
	return nil
}

// Dispatch runs the callback of the hotkey matching a key press that did not
// reach the passive grabs, for example while an overlay holds the keyboard.
// It reports whether a hotkey matched.
func (h *Handler) Dispatch(state uint16, detail xproto.Keycode) bool {
	h.mu.Lock()
	bindings := slices.Clone(h.bindings)
	h.mu.Unlock()

	// Only the low byte carries modifiers; the rest are pointer buttons.
	state &= 0xff &^ h.ignoreMask

	for _, b := range bindings {
		mods, codes, err := keybind.ParseString(h.xu, b.hotkey.KeySequence())
		if err != nil {
			continue
		}
		if state == mods && slices.Contains(codes, detail) {
			b.callback()
			return true
		}
	}
	return false
}

func configureIgnoreMods(xu *xgbutil.XUtil) {
	// Always ignore CapsLock.
	caps := uint16(xproto.ModMaskLock)

	numLock := modMaskForKeysym(xu, "Num_Lock")
	scrollLock := modMaskForKeysym(xu, "Scroll_Lock")

	unique := make(map[uint16]struct{})
	add := func(mask uint16) {
		unique[mask] = struct{}{}
	}

	add(0)
	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	for subset := 1; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		add(mask)
	}

	ignore := make([]uint16, 0, len(unique))
	for mask := range unique {
		ignore = append(ignore, mask)
	}

	xevent.IgnoreMods = ignore
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}

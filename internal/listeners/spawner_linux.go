//go:build linux

package listeners

import (
	"sync"
	"time"

	"github.com/1broseidon/gridsnap/internal/coordinator"
	"github.com/1broseidon/gridsnap/internal/geometry"
	"github.com/1broseidon/gridsnap/internal/grid"
	"github.com/1broseidon/gridsnap/internal/hotkeys"
	"github.com/1broseidon/gridsnap/internal/platform"
	"github.com/1broseidon/gridsnap/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Spawner starts X11 listeners for the coordinator.
type Spawner struct {
	backend      *platform.LinuxBackend
	grid         *grid.Grid
	hotkeys      *hotkeys.Handler
	logger       *log.Logger
	pollInterval time.Duration

	hookOnce sync.Once
	hookMu   sync.Mutex
	hookSink *foregroundHook
}

var _ coordinator.Spawner = (*Spawner)(nil)

// NewSpawner creates a spawner. hk may be nil, in which case hotkeys do not
// work while the picker holds the keyboard.
func NewSpawner(backend *platform.LinuxBackend, g *grid.Grid, hk *hotkeys.Handler, logger *log.Logger) *Spawner {
	return &Spawner{
		backend:      backend,
		grid:         g,
		hotkeys:      hk,
		logger:       logger,
		pollInterval: DefaultPollInterval,
	}
}

// windowListener owns one overlay for the lifetime of a session.
type windowListener struct {
	*stopper

	mu      sync.Mutex
	overlay *x11.Overlay
	destroy func(*x11.Overlay)
}

func newWindowListener(destroy func(*x11.Overlay)) *windowListener {
	l := &windowListener{destroy: destroy}
	l.stopper = newStopper(l.release)
	return l
}

// attach hands o to the listener. It reports false, and o must be
// destroyed by the caller, when the listener was stopped in the meantime.
func (l *windowListener) attach(o *x11.Overlay) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped() {
		return false
	}
	l.overlay = o
	return true
}

func (l *windowListener) release() {
	l.mu.Lock()
	o := l.overlay
	l.overlay = nil
	l.mu.Unlock()

	if o != nil {
		l.destroy(o)
	}
}

// SpawnGridWindow creates the picker window and wires its input to out.
func (s *Spawner) SpawnGridWindow(session uuid.UUID, bounds geometry.Rect, out coordinator.Poster) coordinator.Listener {
	l := newWindowListener(s.destroyGrid)

	go func() {
		o, err := s.backend.CreateOverlay(x11.ColorGridBackground, x11.GridEventMask)
		if err != nil {
			s.logger.Error("failed to create picker window", "err", err)
			return
		}
		o.Place(bounds, 0)
		s.connectGrid(o, out)

		if !l.attach(o) {
			s.destroyGrid(o)
			return
		}
		out.Post(coordinator.GridWindow{Session: session, Window: platform.WindowID(o.Window)})
	}()

	return l
}

func (s *Spawner) connectGrid(o *x11.Overlay, out coordinator.Poster) {
	xu := s.backend.XUtil()
	win := o.Window

	xevent.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		if s.hotkeys != nil && s.hotkeys.Dispatch(ev.State, ev.Detail) {
			return
		}
		if key := keyFromKeysym(keybind.KeysymGet(xu, ev.Detail, 0)); key != coordinator.KeyOther {
			out.Post(coordinator.KeyChanged{Key: key, Down: true})
		}
	}).Connect(xu, win)

	xevent.KeyReleaseFun(func(xu *xgbutil.XUtil, ev xevent.KeyReleaseEvent) {
		if key := keyFromKeysym(keybind.KeysymGet(xu, ev.Detail, 0)); key != coordinator.KeyOther {
			out.Post(coordinator.KeyChanged{Key: key, Down: false})
		}
	}).Connect(xu, win)

	xevent.MotionNotifyFun(func(_ *xgbutil.XUtil, ev xevent.MotionNotifyEvent) {
		postMotion(out, win, ev.EventX, ev.EventY)
	}).Connect(xu, win)

	xevent.ButtonPressFun(func(_ *xgbutil.XUtil, ev xevent.ButtonPressEvent) {
		if ev.Detail == xproto.ButtonIndex1 {
			out.Post(coordinator.ButtonPressed{Point: geometry.Point{X: int(ev.EventX), Y: int(ev.EventY)}})
		}
	}).Connect(xu, win)

	xevent.ButtonReleaseFun(func(_ *xgbutil.XUtil, ev xevent.ButtonReleaseEvent) {
		if ev.Detail == xproto.ButtonIndex1 {
			out.Post(coordinator.ButtonReleased{Point: geometry.Point{X: int(ev.EventX), Y: int(ev.EventY)}})
		}
	}).Connect(xu, win)

	xevent.LeaveNotifyFun(func(_ *xgbutil.XUtil, ev xevent.LeaveNotifyEvent) {
		// Grab and ungrab crossings are not the pointer leaving.
		if ev.Mode == xproto.NotifyModeNormal {
			out.Post(coordinator.PointerLeft{})
		}
	}).Connect(xu, win)

	xevent.ExposeFun(func(_ *xgbutil.XUtil, ev xevent.ExposeEvent) {
		if ev.Count == 0 {
			o.Fill(paintTiles(s.grid.Snapshot()))
		}
	}).Connect(xu, win)
}

func (s *Spawner) destroyGrid(o *x11.Overlay) {
	o.UngrabKeyboard()
	xevent.Detach(s.backend.XUtil(), o.Window)
	s.backend.DestroyOverlay(o)
}

// SpawnPreviewWindow creates the translucent preview overlay.
func (s *Spawner) SpawnPreviewWindow(session uuid.UUID, out coordinator.Poster) coordinator.Listener {
	l := newWindowListener(s.backend.DestroyOverlay)

	go func() {
		o, err := s.backend.CreateOverlay(x11.ColorPreview, x11.PreviewEventMask)
		if err != nil {
			s.logger.Error("failed to create preview window", "err", err)
			return
		}
		if err := o.SetOpacity(x11.PreviewOpacity); err != nil {
			s.logger.Debug("preview opacity not set", "err", err)
		}

		if !l.attach(o) {
			s.backend.DestroyOverlay(o)
			return
		}
		out.Post(coordinator.PreviewWindow{Session: session, Window: platform.WindowID(o.Window)})
	}()

	return l
}

// foregroundHook forwards _NET_ACTIVE_WINDOW changes while it is the
// spawner's current hook.
type foregroundHook struct {
	*stopper
	out coordinator.Poster
}

// SpawnForegroundHook reports active window changes to out.
func (s *Spawner) SpawnForegroundHook(_ uuid.UUID, out coordinator.Poster) coordinator.Listener {
	s.hookOnce.Do(s.connectRoot)

	h := &foregroundHook{out: out}
	h.stopper = newStopper(func() {
		s.hookMu.Lock()
		if s.hookSink == h {
			s.hookSink = nil
		}
		s.hookMu.Unlock()
	})

	s.hookMu.Lock()
	s.hookSink = h
	s.hookMu.Unlock()
	return h
}

// connectRoot installs the root PropertyNotify callback. Root callbacks
// also carry the global hotkeys, so it stays connected and forwards to the
// current hook, if any.
func (s *Spawner) connectRoot() {
	xu := s.backend.XUtil()
	root := s.backend.RootWindow()

	atom, err := xprop.Atm(xu, "_NET_ACTIVE_WINDOW")
	if err != nil {
		s.logger.Warn("foreground hook unavailable", "err", err)
		return
	}
	if err := xwindow.New(xu, root).Listen(xproto.EventMaskPropertyChange); err != nil {
		s.logger.Warn("cannot watch root window properties", "err", err)
		return
	}

	xevent.PropertyNotifyFun(func(xu *xgbutil.XUtil, ev xevent.PropertyNotifyEvent) {
		if ev.Atom != atom {
			return
		}
		s.hookMu.Lock()
		h := s.hookSink
		s.hookMu.Unlock()
		if h == nil {
			return
		}

		win, err := ewmh.ActiveWindowGet(xu)
		if err != nil || win == 0 {
			return
		}
		h.out.Post(coordinator.ActiveWindowChange{Window: platform.WindowID(win)})
	}).Connect(xu, root)
}

// SpawnMonitorPoller watches for the pointer moving to another monitor.
func (s *Spawner) SpawnMonitorPoller(_ uuid.UUID, monitor string, out coordinator.Poster) coordinator.Listener {
	return StartMonitorPoller(s.backend.ActiveDisplayName, monitor, s.pollInterval, out)
}

// Package coordinator serializes every event of the picker into grid
// mutations and window placements.
//
// Listeners on other goroutines post messages into a mailbox; a single
// goroutine running Run owns the state machine, the session listeners and
// all writes to the grid.
package coordinator

import (
	"context"
	"fmt"
	"time"

	"github.com/1broseidon/gridsnap/internal/geometry"
	"github.com/1broseidon/gridsnap/internal/grid"
	"github.com/1broseidon/gridsnap/internal/layoutstore"
	"github.com/1broseidon/gridsnap/internal/platform"
	"github.com/charmbracelet/log"
)

// DefaultOpenTimeout bounds the wait for a session's windows.
const DefaultOpenTimeout = 2 * time.Second

// Settings are the configurable parts of the coordinator.
type Settings struct {
	Margins grid.Margins
	// Profiles are the names selected by F1 through F6.
	Profiles []string
	// OpenTimeout aborts a session whose windows never appear.
	OpenTimeout time.Duration
}

// DefaultProfiles returns the F1..F6 profile names.
func DefaultProfiles() []string {
	return []string{layoutstore.DefaultProfile, "Profile2", "Profile3", "Profile4", "Profile5", "Profile6"}
}

// Status is a snapshot of the coordinator for the control socket.
type Status struct {
	State        State
	Session      string
	Monitor      string
	Profile      string
	Rows         int
	Columns      int
	ActiveWindow platform.WindowID
}

// Options configure a Coordinator.
type Options struct {
	Backend  platform.Backend
	Spawner  Spawner
	Grid     *grid.Grid
	Store    *layoutstore.Store
	Settings Settings
	// Monitor and Profile give the key the grid was built for.
	Monitor string
	Profile string
	Logger  *log.Logger
}

// Coordinator owns the picker state machine.
type Coordinator struct {
	mailbox  *Mailbox
	backend  platform.Backend
	spawner  Spawner
	grid     *grid.Grid
	store    *layoutstore.Store
	settings Settings
	logger   *log.Logger

	state    State
	session  *session
	monitor  string
	profile  string
	tracking bool
	pointer  *geometry.Point
}

// New creates a coordinator. Nothing runs until Run is called.
func New(opts Options) *Coordinator {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	settings := opts.Settings
	if len(settings.Profiles) == 0 {
		settings.Profiles = DefaultProfiles()
	}
	if settings.OpenTimeout <= 0 {
		settings.OpenTimeout = DefaultOpenTimeout
	}
	profile := opts.Profile
	if profile == "" {
		profile = settings.Profiles[0]
	}

	return &Coordinator{
		mailbox:  NewMailbox(),
		backend:  opts.Backend,
		spawner:  opts.Spawner,
		grid:     opts.Grid,
		store:    opts.Store,
		settings: settings,
		logger:   logger,
		monitor:  opts.Monitor,
		profile:  profile,
	}
}

// Post hands msg to the coordinator without blocking.
func (c *Coordinator) Post(msg Message) {
	c.mailbox.Post(msg)
}

// Status asks the running coordinator for a snapshot.
func (c *Coordinator) Status(ctx context.Context) (Status, error) {
	reply := make(chan Status, 1)
	c.Post(StatusRequest{Reply: reply})
	select {
	case st := <-reply:
		return st, nil
	case <-ctx.Done():
		return Status{}, fmt.Errorf("coordinator did not answer: %w", ctx.Err())
	}
}

// Run processes messages until Exit is received or ctx is done. Any open
// session is closed before Run returns.
func (c *Coordinator) Run(ctx context.Context) error {
	defer c.mailbox.Close()

	for {
		msg, ok := c.mailbox.Receive(ctx)
		if !ok {
			c.closeWindows()
			return ctx.Err()
		}
		if _, exit := msg.(Exit); exit {
			c.logger.Info("coordinator exiting")
			c.closeWindows()
			return nil
		}
		c.handle(msg)
	}
}

func (c *Coordinator) handle(msg Message) {
	c.logger.Debug("message", "type", fmt.Sprintf("%T", msg), "state", c.state)

	switch m := msg.(type) {
	case HotkeyPressed:
		c.onHotkey(m.Kind)
	case InitializeWindows:
		if c.state == Idle {
			c.initializeWindows(m.Quick)
		}
	case GridWindow:
		c.onGridWindow(m)
	case PreviewWindow:
		c.onPreviewWindow(m)
	case openTimeout:
		if c.session != nil && c.session.id == m.session && c.state == Opening {
			c.logger.Warn("picker windows did not appear, closing session", "session", m.session)
			c.closeWindows()
		}
	case HighlightZone:
		c.highlightZone(m.Rect)
	case TrackMouse:
		c.trackMouse(m.Window)
	case MouseLeft:
		c.mouseLeft()
	case ActiveWindowChange:
		c.onActiveWindowChange(m.Window)
	case MonitorChange:
		c.logger.Debug("monitor changed", "monitor", m.Monitor)
		c.relayout()
	case ProfileChange:
		c.changeProfile(m.Profile)
	case CloseWindows:
		c.closeWindows()
	case KeyChanged:
		c.onKey(m.Key, m.Down)
	case PointerMoved:
		c.onPointerMoved(m.Point)
	case ButtonPressed:
		c.onButtonPressed(m.Point)
	case ButtonReleased:
		c.onButtonReleased()
	case PointerLeft:
		c.onPointerLeft()
	case SettingsChanged:
		c.applySettings(m.Settings)
	case StatusRequest:
		c.onStatus(m.Reply)
	default:
		c.logger.Warn("unhandled message", "type", fmt.Sprintf("%T", msg))
	}
}

func (c *Coordinator) onHotkey(kind HotkeyKind) {
	switch kind {
	case HotkeyMain, HotkeyQuickResize:
		if c.state == Idle {
			c.initializeWindows(kind == HotkeyQuickResize)
			return
		}
		c.closeWindows()
	case HotkeyMaximize:
		c.toggleMaximize()
	}
}

// initializeWindows rebuilds the grid for the active display and spawns the
// picker window. The rest of the session follows from GridWindow.
func (c *Coordinator) initializeWindows(quick bool) {
	display, err := c.backend.ActiveDisplay()
	if err != nil {
		c.logger.Warn("cannot open picker without an active display", "err", err)
		return
	}

	c.monitor = display.Name
	c.rebuild(display)
	c.grid.SetQuickResize(quick)

	s := newSession(quick)
	c.session = s
	c.state = Opening
	c.logger.Info("opening picker", "session", s.id, "monitor", c.monitor, "profile", c.profile, "quick", quick)

	s.add(c.spawner.SpawnGridWindow(s.id, c.grid.WindowRect(), c.mailbox))
	s.watchdog = time.AfterFunc(c.settings.OpenTimeout, func() {
		c.Post(openTimeout{session: s.id})
	})
}

func (c *Coordinator) onGridWindow(m GridWindow) {
	s := c.session
	if s == nil || s.id != m.Session || c.state != Opening || c.grid.GridWindow() != 0 {
		c.logger.Debug("ignoring stale grid window", "session", m.Session)
		return
	}

	if active, err := c.backend.ActiveWindow(); err == nil && active != 0 {
		c.grid.SetActiveWindow(active)
	} else if err != nil {
		c.logger.Debug("no foreground window", "err", err)
	}
	c.grid.SetGridWindow(m.Window)

	s.add(c.spawner.SpawnMonitorPoller(s.id, c.monitor, c.mailbox))
	s.add(c.spawner.SpawnPreviewWindow(s.id, c.mailbox))
}

func (c *Coordinator) onPreviewWindow(m PreviewWindow) {
	s := c.session
	if s == nil || s.id != m.Session || c.state != Opening || c.grid.GridWindow() == 0 {
		c.logger.Debug("ignoring stale preview window", "session", m.Session)
		return
	}

	if s.watchdog != nil {
		s.watchdog.Stop()
		s.watchdog = nil
	}
	c.grid.SetPreviewWindow(m.Window)
	s.add(c.spawner.SpawnForegroundHook(s.id, c.mailbox))

	gridWindow := c.grid.GridWindow()
	if err := c.backend.ShowOverlay(gridWindow, c.grid.WindowRect()); err != nil {
		c.logger.Warn("failed to show picker", "err", err)
	}

	c.state = Picking
	if s.quick {
		c.state = QuickPicking
	}
	c.logger.Info("picker open", "session", s.id, "state", c.state, "window", c.grid.ActiveWindow())
}

// closeWindows ends the session. It is safe to call in any state.
func (c *Coordinator) closeWindows() {
	if s := c.session; s != nil {
		c.session = nil
		s.stop()
		c.logger.Info("picker closed", "session", s.id, "open_for", time.Since(s.started).Round(time.Millisecond))
	}
	c.grid.Reset()
	c.tracking = false
	c.pointer = nil
	c.state = Idle
}

func (c *Coordinator) highlightZone(rect geometry.Rect) {
	preview := c.grid.PreviewWindow()
	if preview == 0 {
		return
	}

	var err error
	if rect.IsZero() {
		err = c.backend.HideOverlay(preview)
	} else {
		err = c.backend.PlaceOverlay(preview, rect.Normalize(), c.grid.GridWindow())
	}
	if err != nil {
		c.logger.Debug("failed to move preview", "rect", rect, "err", err)
	}
}

func (c *Coordinator) trackMouse(window platform.WindowID) {
	if c.tracking || window == 0 || window != c.grid.GridWindow() {
		return
	}
	c.tracking = true
}

func (c *Coordinator) onActiveWindowChange(window platform.WindowID) {
	if window == 0 || c.grid.IsOverlay(window) {
		return
	}
	if window != c.grid.ActiveWindow() {
		c.logger.Debug("active window changed", "window", window)
		c.grid.SetActiveWindow(window)
	}
}

func (c *Coordinator) changeProfile(profile string) {
	if profile == "" || profile == c.profile {
		return
	}
	c.logger.Info("profile changed", "profile", profile)
	c.profile = profile
	c.relayout()
}

// relayout rebuilds the grid for the active display and recenters the
// picker. It does nothing while no session is open.
func (c *Coordinator) relayout() {
	if c.session == nil {
		return
	}

	display, err := c.backend.ActiveDisplay()
	if err != nil {
		c.logger.Warn("cannot resolve active display", "err", err)
		return
	}
	c.monitor = display.Name
	c.rebuild(display)
	c.highlightZone(geometry.Rect{})
	c.repositionGridWindow()
}

func (c *Coordinator) rebuild(display platform.Display) {
	key := layoutstore.Key{Monitor: display.Name, Profile: c.profile}
	c.grid.Rebuild(grid.Options{
		Key:      key,
		Entry:    c.store.Get(key),
		Margins:  c.settings.Margins,
		WorkArea: display.Usable,
	})
	c.logger.Debug("grid rebuilt", "monitor", key.Monitor, "profile", key.Profile, "rect", display.Usable)
}

func (c *Coordinator) repositionGridWindow() {
	gridWindow := c.grid.GridWindow()
	if gridWindow == 0 {
		return
	}
	if err := c.backend.PlaceOverlay(gridWindow, c.grid.WindowRect(), 0); err != nil {
		c.logger.Debug("failed to reposition picker", "err", err)
	}
	c.invalidate()
}

func (c *Coordinator) invalidate() {
	if gridWindow := c.grid.GridWindow(); gridWindow != 0 {
		if err := c.backend.Invalidate(gridWindow); err != nil {
			c.logger.Debug("failed to repaint picker", "err", err)
		}
	}
}

func (c *Coordinator) applySettings(s Settings) {
	if len(s.Profiles) == 0 {
		s.Profiles = DefaultProfiles()
	}
	if s.OpenTimeout <= 0 {
		s.OpenTimeout = DefaultOpenTimeout
	}
	c.settings = s
	c.logger.Info("settings updated", "margins", s.Margins)
}

func (c *Coordinator) onStatus(reply chan<- Status) {
	st := Status{
		State:        c.state,
		Monitor:      c.monitor,
		Profile:      c.profile,
		Rows:         c.grid.Rows(),
		Columns:      c.grid.Columns(),
		ActiveWindow: c.grid.ActiveWindow(),
	}
	if c.session != nil {
		st.Session = c.session.id.String()
	}
	select {
	case reply <- st:
	default:
	}
}

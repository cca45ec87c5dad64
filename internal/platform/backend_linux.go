//go:build linux

package platform

import (
	"fmt"
	"sync"

	"github.com/1broseidon/gridsnap/internal/geometry"
	"github.com/1broseidon/gridsnap/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
)

// LinuxBackend wraps an existing X11 connection behind the platform Backend interface.
type LinuxBackend struct {
	conn *x11.Connection

	mu       sync.Mutex
	overlays map[WindowID]*x11.Overlay
}

var _ Backend = (*LinuxBackend)(nil)

// NewLinuxBackend creates a Linux platform backend from an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection) *LinuxBackend {
	return &LinuxBackend{conn: conn, overlays: make(map[WindowID]*x11.Overlay)}
}

// NewLinuxBackendFromDisplay creates a new Linux backend by opening a fresh X11 connection.
func NewLinuxBackendFromDisplay() (*LinuxBackend, error) {
	conn, err := x11.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return NewLinuxBackend(conn), nil
}

// Disconnect closes the underlying X11 connection.
func (b *LinuxBackend) Disconnect() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}

// EventLoop starts the X11 event loop (blocking).
func (b *LinuxBackend) EventLoop() {
	if b != nil && b.conn != nil {
		b.conn.EventLoop()
	}
}

// Quit stops EventLoop.
func (b *LinuxBackend) Quit() {
	if b != nil && b.conn != nil {
		b.conn.Quit()
	}
}

// XUtil returns the underlying xgbutil connection for X11-specific operations.
func (b *LinuxBackend) XUtil() *xgbutil.XUtil {
	if b == nil || b.conn == nil {
		return nil
	}
	return b.conn.XUtil
}

// RootWindow returns the X11 root window ID.
func (b *LinuxBackend) RootWindow() xproto.Window {
	if b == nil || b.conn == nil {
		return 0
	}
	return b.conn.Root
}

// Connection returns the wrapped X11 connection.
func (b *LinuxBackend) Connection() *x11.Connection {
	return b.conn
}

// ActiveDisplay returns the display under the pointer with its work area.
func (b *LinuxBackend) ActiveDisplay() (Display, error) {
	conn, err := b.connection()
	if err != nil {
		return Display{}, err
	}

	active, err := conn.GetActiveMonitor()
	if err != nil {
		return Display{}, err
	}

	return displayFromMonitor(*active), nil
}

// ActiveDisplayName returns the name of the display under the pointer.
func (b *LinuxBackend) ActiveDisplayName() (string, error) {
	conn, err := b.connection()
	if err != nil {
		return "", err
	}
	return conn.ActiveMonitorName()
}

// ActiveWindow returns the currently active/focused window ID.
func (b *LinuxBackend) ActiveWindow() (WindowID, error) {
	conn, err := b.connection()
	if err != nil {
		return 0, err
	}

	wid, err := conn.GetActiveWindow()
	if err != nil {
		return 0, err
	}
	if wid != 0 && !conn.IsNormalWindow(wid) {
		return 0, fmt.Errorf("window %d is not an application window", wid)
	}
	return WindowID(wid), nil
}

// IsNormalWindow reports whether a window is an ordinary application window.
func (b *LinuxBackend) IsNormalWindow(windowID WindowID) bool {
	conn, err := b.connection()
	if err != nil {
		return false
	}
	return conn.IsNormalWindow(xproto.Window(windowID))
}

// WindowRect returns the frame origin and client size of a window.
func (b *LinuxBackend) WindowRect(windowID WindowID) (Rect, error) {
	conn, err := b.connection()
	if err != nil {
		return Rect{}, err
	}
	return conn.WindowGeometry(xproto.Window(windowID))
}

// FrameInsets returns the window manager decorations around a window.
func (b *LinuxBackend) FrameInsets(windowID WindowID) (geometry.Insets, error) {
	conn, err := b.connection()
	if err != nil {
		return geometry.Insets{}, err
	}
	return conn.GetFrameExtents(xproto.Window(windowID)), nil
}

// Restore removes the maximized state of a window.
func (b *LinuxBackend) Restore(windowID WindowID) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.UnmaximizeWindow(xproto.Window(windowID))
}

// MoveResize moves and resizes a window to the specified bounds.
func (b *LinuxBackend) MoveResize(windowID WindowID, bounds Rect) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.MoveResizeWindow(xproto.Window(windowID), bounds)
}

// Focus activates a window through the window manager.
func (b *LinuxBackend) Focus(windowID WindowID) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.FocusWindow(xproto.Window(windowID))
}

// CreateOverlay creates an unmapped overlay window and tracks it until
// DestroyOverlay.
func (b *LinuxBackend) CreateOverlay(background uint32, eventMask int) (*x11.Overlay, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}
	o, err := conn.CreateOverlay(background, eventMask)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	b.overlays[WindowID(o.Window)] = o
	b.mu.Unlock()
	return o, nil
}

// DestroyOverlay releases an overlay created by CreateOverlay.
func (b *LinuxBackend) DestroyOverlay(o *x11.Overlay) {
	if o == nil {
		return
	}
	b.mu.Lock()
	delete(b.overlays, WindowID(o.Window))
	b.mu.Unlock()
	o.Destroy()
}

// ShowOverlay maps an overlay on top and grabs the keyboard for it.
func (b *LinuxBackend) ShowOverlay(windowID WindowID, bounds Rect) error {
	o, err := b.overlay(windowID)
	if err != nil {
		return err
	}
	o.Place(bounds, 0)
	o.Show()
	if err := o.GrabKeyboard(); err != nil {
		return fmt.Errorf("failed to give overlay %d the keyboard: %w", windowID, err)
	}
	return nil
}

// PlaceOverlay moves an overlay and maps it.
func (b *LinuxBackend) PlaceOverlay(windowID WindowID, bounds Rect, sibling WindowID) error {
	o, err := b.overlay(windowID)
	if err != nil {
		return err
	}
	o.Place(bounds, xproto.Window(sibling))
	o.Show()
	return nil
}

// HideOverlay unmaps an overlay.
func (b *LinuxBackend) HideOverlay(windowID WindowID) error {
	o, err := b.overlay(windowID)
	if err != nil {
		return err
	}
	o.Hide()
	return nil
}

// Invalidate requests an Expose event for an overlay.
func (b *LinuxBackend) Invalidate(windowID WindowID) error {
	o, err := b.overlay(windowID)
	if err != nil {
		return err
	}
	o.Invalidate()
	return nil
}

func (b *LinuxBackend) overlay(windowID WindowID) (*x11.Overlay, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	o, ok := b.overlays[windowID]
	if !ok {
		return nil, fmt.Errorf("overlay %d not found", windowID)
	}
	return o, nil
}

func (b *LinuxBackend) connection() (*x11.Connection, error) {
	if b == nil || b.conn == nil {
		return nil, fmt.Errorf("x11 backend connection is nil")
	}
	return b.conn, nil
}

func displayFromMonitor(m x11.Monitor) Display {
	return Display{
		ID:     m.ID,
		Name:   m.Name,
		Bounds: m.Bounds,
		Usable: m.WorkArea,
	}
}

package x11

import (
	"fmt"
	"sync"

	"github.com/1broseidon/gridsnap/internal/geometry"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xprop"
)

// Picker colors
const (
	ColorGridBackground = 0x2c2c2c
	ColorTileSelected   = 0x004d80
	ColorTileHovered    = 0x006494
	ColorTileIdle       = 0xb2b2b2
	ColorPreview        = 0x004d80
)

// PreviewOpacity is the preview overlay alpha out of 255. It only takes
// effect under a compositing manager.
const PreviewOpacity = 107

// Event masks for the two overlays.
const (
	GridEventMask = xproto.EventMaskKeyPress |
		xproto.EventMaskKeyRelease |
		xproto.EventMaskButtonPress |
		xproto.EventMaskButtonRelease |
		xproto.EventMaskPointerMotion |
		xproto.EventMaskLeaveWindow |
		xproto.EventMaskExposure
	PreviewEventMask = xproto.EventMaskExposure
)

// FilledRect is a window-relative rectangle painted in a solid color.
type FilledRect struct {
	Rect  geometry.Rect
	Color uint32
}

// Overlay is an override-redirect window that bypasses the window manager.
// Window and gc never change after creation; Fill may run on the X event
// goroutine while another goroutine destroys the overlay.
type Overlay struct {
	conn   *Connection
	Window xproto.Window
	gc     xproto.Gcontext

	mu        sync.Mutex
	destroyed bool
}

// CreateOverlay creates an unmapped override-redirect window.
func (c *Connection) CreateOverlay(background uint32, eventMask int) (*Overlay, error) {
	conn := c.XUtil.Conn()
	screen := c.XUtil.Screen()

	wid, err := xproto.NewWindowId(conn)
	if err != nil {
		return nil, err
	}

	err = xproto.CreateWindowChecked(
		conn,
		screen.RootDepth,
		wid,
		c.Root,
		0, 0, // x, y (updated by Place)
		1, 1, // width, height (updated by Place)
		0, // border_width
		xproto.WindowClassInputOutput,
		screen.RootVisual,
		xproto.CwBackPixel|xproto.CwOverrideRedirect|xproto.CwEventMask,
		// Value list order follows the bit positions of the mask (low to high).
		[]uint32{background, 1, uint32(eventMask)},
	).Check()
	if err != nil {
		return nil, fmt.Errorf("failed to create overlay window: %w", err)
	}

	gc, err := xproto.NewGcontextId(conn)
	if err != nil {
		xproto.DestroyWindow(conn, wid)
		return nil, err
	}
	err = xproto.CreateGCChecked(
		conn,
		gc,
		xproto.Drawable(wid),
		xproto.GcForeground|xproto.GcGraphicsExposures,
		[]uint32{background, 0},
	).Check()
	if err != nil {
		xproto.DestroyWindow(conn, wid)
		return nil, fmt.Errorf("failed to create overlay gc: %w", err)
	}

	return &Overlay{conn: c, Window: wid, gc: gc}, nil
}

// Place moves and resizes the overlay. With a sibling the overlay is stacked
// directly below it, otherwise on top of everything.
func (o *Overlay) Place(r geometry.Rect, sibling xproto.Window) {
	width := max(r.Width, 1)
	height := max(r.Height, 1)

	mask := uint16(xproto.ConfigWindowX | xproto.ConfigWindowY | xproto.ConfigWindowWidth | xproto.ConfigWindowHeight)
	values := []uint32{uint32(r.X), uint32(r.Y), uint32(width), uint32(height)}
	if sibling != 0 {
		mask |= xproto.ConfigWindowSibling | xproto.ConfigWindowStackMode
		values = append(values, uint32(sibling), xproto.StackModeBelow)
	} else {
		mask |= xproto.ConfigWindowStackMode
		values = append(values, xproto.StackModeAbove)
	}

	xproto.ConfigureWindow(o.conn.XUtil.Conn(), o.Window, mask, values)
}

// Show maps the overlay.
func (o *Overlay) Show() {
	xproto.MapWindow(o.conn.XUtil.Conn(), o.Window)
}

// Hide unmaps the overlay without destroying it.
func (o *Overlay) Hide() {
	xproto.UnmapWindow(o.conn.XUtil.Conn(), o.Window)
}

// Invalidate clears the overlay and asks the server for an Expose event.
func (o *Overlay) Invalidate() {
	xproto.ClearArea(o.conn.XUtil.Conn(), true, o.Window, 0, 0, 0, 0)
}

// SetOpacity sets _NET_WM_WINDOW_OPACITY from an 8-bit alpha.
func (o *Overlay) SetOpacity(alpha uint8) error {
	return xprop.ChangeProp32(o.conn.XUtil, o.Window, "_NET_WM_WINDOW_OPACITY", "CARDINAL", uint(alpha)*0x01010101)
}

// Fill paints rects in order. It does nothing once the overlay is destroyed.
func (o *Overlay) Fill(rects []FilledRect) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.destroyed || len(rects) == 0 {
		return
	}

	conn := o.conn.XUtil.Conn()
	for _, fr := range rects {
		xproto.ChangeGC(conn, o.gc, xproto.GcForeground, []uint32{fr.Color})
		xproto.PolyFillRectangle(conn, xproto.Drawable(o.Window), o.gc, []xproto.Rectangle{{
			X:      int16(fr.Rect.X),
			Y:      int16(fr.Rect.Y),
			Width:  uint16(max(fr.Rect.Width, 0)),
			Height: uint16(max(fr.Rect.Height, 0)),
		}})
	}
}

// GrabKeyboard routes every key event to the overlay. The overlay must be
// mapped.
func (o *Overlay) GrabKeyboard() error {
	conn := o.conn.XUtil.Conn()
	grab := func() (*xproto.GrabKeyboardReply, error) {
		return xproto.GrabKeyboard(
			conn,
			false,                  // owner_events (report events to grab_window)
			o.Window,               // grab_window
			xproto.TimeCurrentTime, // time
			xproto.GrabModeAsync,   // pointer_mode
			xproto.GrabModeAsync,   // keyboard_mode
		).Reply()
	}

	reply, err := grab()
	if err != nil {
		return err
	}

	// Opened from a globally grabbed hotkey the keyboard may already be
	// grabbed by this client. If so, ungrab and retry.
	if reply.Status == xproto.GrabStatusAlreadyGrabbed {
		xproto.UngrabKeyboard(conn, xproto.TimeCurrentTime)
		if reply, err = grab(); err != nil {
			return err
		}
	}

	if reply.Status != xproto.GrabStatusSuccess {
		return fmt.Errorf("keyboard grab failed with status %d", reply.Status)
	}

	// Key events now belong to the overlay, not the root window callbacks.
	xevent.RedirectKeyEvents(o.conn.XUtil, o.Window)
	return nil
}

// UngrabKeyboard releases a grab taken by GrabKeyboard.
func (o *Overlay) UngrabKeyboard() {
	xproto.UngrabKeyboard(o.conn.XUtil.Conn(), xproto.TimeCurrentTime)
	xevent.RedirectKeyEvents(o.conn.XUtil, 0)
}

// Destroy releases the overlay's server resources. Only the first call
// does anything.
func (o *Overlay) Destroy() {
	if !o.release() {
		return
	}
	conn := o.conn.XUtil.Conn()
	xproto.FreeGC(conn, o.gc)
	xproto.DestroyWindow(conn, o.Window)
}

// release marks the overlay destroyed, waiting out a Fill in progress. It
// reports whether this call did the marking.
func (o *Overlay) release() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.destroyed {
		return false
	}
	o.destroyed = true
	return true
}

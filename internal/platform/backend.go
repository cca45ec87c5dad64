// Package platform abstracts the window-system operations gridsnap needs.
package platform

import "github.com/1broseidon/gridsnap/internal/geometry"

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// Rect describes a rectangular region in screen coordinates.
type Rect = geometry.Rect

// Display describes a physical display and its usable work area.
type Display struct {
	ID     int
	Name   string
	Bounds Rect
	Usable Rect
}

// Backend abstracts window-system operations across platforms.
//
// Window rectangles use the placement space of MoveResize: reading a
// window's rectangle and writing it back leaves the window unchanged.
type Backend interface {
	// ActiveDisplay returns the display the picker should open on.
	ActiveDisplay() (Display, error)
	ActiveWindow() (WindowID, error)
	WindowRect(windowID WindowID) (Rect, error)
	FrameInsets(windowID WindowID) (geometry.Insets, error)
	// Restore leaves maximized state so that MoveResize takes effect.
	Restore(windowID WindowID) error
	MoveResize(windowID WindowID, bounds Rect) error
	Focus(windowID WindowID) error

	// ShowOverlay maps an overlay at bounds on top of everything and gives
	// it the keyboard.
	ShowOverlay(windowID WindowID, bounds Rect) error
	// PlaceOverlay moves an overlay, stacked directly below sibling when
	// sibling is non-zero.
	PlaceOverlay(windowID WindowID, bounds Rect, sibling WindowID) error
	HideOverlay(windowID WindowID) error
	// Invalidate schedules a repaint of an overlay.
	Invalidate(windowID WindowID) error
}

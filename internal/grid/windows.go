package grid

import (
	"github.com/1broseidon/gridsnap/internal/platform"
)

// ActiveWindow returns the window the grid places.
func (g *Grid) ActiveWindow() platform.WindowID {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.s.activeWindow
}

// SetActiveWindow changes the window the grid places. Remembered resizes
// that belong to another window are forgotten.
func (g *Grid) SetActiveWindow(w platform.WindowID) {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := &g.s
	s.activeWindow = w
	if s.previousResize != nil && s.previousResize.Window != w {
		s.previousResize = nil
	}
	if s.lastPlacement != nil && s.lastPlacement.Window != w {
		s.lastPlacement = nil
	}
}

// GridWindow returns the picker window, or 0 when closed.
func (g *Grid) GridWindow() platform.WindowID {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.s.gridWindow
}

// SetGridWindow records the picker window.
func (g *Grid) SetGridWindow(w platform.WindowID) {
	g.mu.Lock()
	g.s.gridWindow = w
	g.mu.Unlock()
}

// PreviewWindow returns the preview overlay, or 0 when closed.
func (g *Grid) PreviewWindow() platform.WindowID {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.s.previewWindow
}

// SetPreviewWindow records the preview overlay.
func (g *Grid) SetPreviewWindow(w platform.WindowID) {
	g.mu.Lock()
	g.s.previewWindow = w
	g.mu.Unlock()
}

// IsOverlay reports whether w is one of the picker's own windows.
func (g *Grid) IsOverlay(w platform.WindowID) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return w != 0 && (w == g.s.gridWindow || w == g.s.previewWindow)
}

// PreviousResize returns the rectangle remembered by the maximize toggle.
func (g *Grid) PreviousResize() (Resize, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.s.previousResize == nil {
		return Resize{}, false
	}
	return *g.s.previousResize, true
}

// SetPreviousResize remembers r for the maximize toggle.
func (g *Grid) SetPreviousResize(r Resize) {
	g.mu.Lock()
	g.s.previousResize = &r
	g.mu.Unlock()
}

// ClearPreviousResize forgets the maximize toggle rectangle.
func (g *Grid) ClearPreviousResize() {
	g.mu.Lock()
	g.s.previousResize = nil
	g.mu.Unlock()
}

// LastPlacement returns the most recent picker placement.
func (g *Grid) LastPlacement() (Resize, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.s.lastPlacement == nil {
		return Resize{}, false
	}
	return *g.s.lastPlacement, true
}

// SetLastPlacement records a picker placement.
func (g *Grid) SetLastPlacement(r Resize) {
	g.mu.Lock()
	g.s.lastPlacement = &r
	g.mu.Unlock()
}

// QuickResize reports whether the session closes after one placement.
func (g *Grid) QuickResize() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.s.quickResize
}

// SetQuickResize sets the quick-resize flag.
func (g *Grid) SetQuickResize(v bool) {
	g.mu.Lock()
	g.s.quickResize = v
	g.mu.Unlock()
}

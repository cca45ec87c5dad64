package coordinator

import (
	"github.com/1broseidon/gridsnap/internal/geometry"
	"github.com/1broseidon/gridsnap/internal/grid"
	"github.com/1broseidon/gridsnap/internal/layoutstore"
)

func (c *Coordinator) onPointerMoved(p geometry.Point) {
	if !c.state.picking() {
		return
	}
	c.pointer = &p
	c.refreshHighlight()
}

// refreshHighlight re-runs hover detection at the last pointer position and
// moves the preview when anything changed.
func (c *Coordinator) refreshHighlight() {
	if c.pointer == nil {
		return
	}
	rect, changed := c.grid.HighlightTiles(*c.pointer)
	if !changed {
		return
	}
	c.highlightZone(rect)
	c.invalidate()
}

func (c *Coordinator) onPointerLeft() {
	if !c.state.picking() || !c.tracking {
		return
	}
	c.mouseLeft()
}

// mouseLeft disarms leave tracking and drops the hover along with the preview.
func (c *Coordinator) mouseLeft() {
	c.tracking = false
	if !c.state.picking() {
		return
	}
	c.grid.UnhighlightAllTiles()
	c.pointer = nil
	c.highlightZone(geometry.Rect{})
	c.invalidate()
}

func (c *Coordinator) onButtonPressed(p geometry.Point) {
	if !c.state.picking() {
		return
	}
	c.pointer = &p
	if c.grid.SelectTile(p) {
		c.invalidate()
	}
	c.grid.SetCursorDown(true)
}

func (c *Coordinator) onButtonReleased() {
	if !c.state.picking() {
		return
	}

	placed := false
	if area, ok := c.grid.SelectedArea(); ok {
		placed = c.placeActiveWindow(area)
	}
	c.grid.SetCursorDown(false)

	// A quick session ends with its placement; a click that selected
	// nothing keeps the picker up.
	if placed && c.grid.QuickResize() {
		c.closeWindows()
	}
}

// placeActiveWindow moves the active window into zone and reports whether
// the window now sits there. Failures are logged and not retried.
func (c *Coordinator) placeActiveWindow(zone geometry.Rect) bool {
	window := c.grid.ActiveWindow()
	if window == 0 {
		c.logger.Debug("no window to place")
		return false
	}
	zone = zone.Normalize()
	if last, ok := c.grid.LastPlacement(); ok && last.Window == window && last.Rect == zone {
		return true
	}

	if err := c.backend.Restore(window); err != nil {
		c.logger.Debug("failed to restore window", "window", window, "err", err)
	}
	insets, err := c.backend.FrameInsets(window)
	if err != nil {
		c.logger.Debug("no frame extents", "window", window, "err", err)
	}
	target := zone.AdjustForInsets(insets)
	if err := c.backend.MoveResize(window, target); err != nil {
		c.logger.Warn("failed to place window", "window", window, "rect", target, "err", err)
		return false
	}
	c.grid.SetLastPlacement(grid.Resize{Window: window, Rect: zone})
	if err := c.backend.Focus(window); err != nil {
		c.logger.Debug("failed to focus window", "window", window, "err", err)
	}
	c.logger.Debug("window placed", "window", window, "rect", target)
	return true
}

func (c *Coordinator) onKey(key Key, down bool) {
	if !c.state.picking() {
		return
	}

	switch key {
	case KeyEscape:
		if down {
			c.closeWindows()
		}
	case KeyShift:
		c.grid.SetShift(down)
		c.refreshHighlight()
	case KeyControl:
		c.grid.SetControl(down)
	case KeyLeft, KeyRight, KeyUp, KeyDown:
		if down && c.grid.Modifiers().Control {
			c.resizeGrid(key)
		}
	default:
		if i, ok := key.FunctionIndex(); ok && down && i < len(c.settings.Profiles) {
			c.changeProfile(c.settings.Profiles[i])
		}
	}
}

// resizeGrid adds or removes a row or column, persists the new shape and
// resizes the picker around it.
func (c *Coordinator) resizeGrid(key Key) {
	var (
		entry   layoutstore.Entry
		changed = true
	)
	switch key {
	case KeyRight:
		entry = c.grid.AddColumn()
	case KeyLeft:
		entry, changed = c.grid.RemoveColumn()
	case KeyDown:
		entry = c.grid.AddRow()
	case KeyUp:
		entry, changed = c.grid.RemoveRow()
	}
	if !changed {
		return
	}

	layoutKey := c.grid.Key()
	c.store.Put(layoutKey, entry)
	if err := c.store.Save(); err != nil {
		c.logger.Debug("failed to save layouts", "path", c.store.Path(), "err", err)
	}
	c.logger.Info("layout changed", "key", layoutKey, "rows", entry.Rows, "columns", entry.Columns)

	c.highlightZone(geometry.Rect{})
	c.repositionGridWindow()
	c.refreshHighlight()
}

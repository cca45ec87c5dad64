package coordinator

import (
	"github.com/1broseidon/gridsnap/internal/grid"
	"github.com/1broseidon/gridsnap/internal/platform"
)

// toggleMaximize fills the grid's max area with the active window, or puts
// the window back where it was if it already fills it.
func (c *Coordinator) toggleMaximize() {
	window := c.maximizeTarget()
	if window == 0 {
		c.logger.Debug("maximize: no active window")
		return
	}

	current, err := c.backend.WindowRect(window)
	if err != nil {
		c.logger.Warn("maximize: cannot read window", "window", window, "err", err)
		return
	}
	insets, err := c.backend.FrameInsets(window)
	if err != nil {
		c.logger.Debug("maximize: no frame extents", "window", window, "err", err)
	}
	candidate := c.grid.MaxArea().Normalize().AdjustForInsets(insets)

	if prev, ok := c.grid.PreviousResize(); ok && prev.Window == window && current == candidate {
		if err := c.backend.MoveResize(window, prev.Rect); err != nil {
			c.logger.Warn("maximize: restore failed", "window", window, "err", err)
			return
		}
		c.grid.ClearPreviousResize()
		c.logger.Debug("window restored", "window", window, "rect", prev.Rect)
		return
	}

	if err := c.backend.Restore(window); err != nil {
		c.logger.Debug("maximize: unmaximize failed", "window", window, "err", err)
	}
	if err := c.backend.MoveResize(window, candidate); err != nil {
		c.logger.Warn("maximize: move failed", "window", window, "err", err)
		return
	}
	c.grid.SetPreviousResize(grid.Resize{Window: window, Rect: current})
	c.logger.Debug("window maximized", "window", window, "rect", candidate, "previous", current)
}

// maximizeTarget resolves the window to toggle. Outside a session the grid
// is first rebuilt for the active display, so the max area matches the
// monitor the user is looking at.
func (c *Coordinator) maximizeTarget() platform.WindowID {
	if c.state != Idle {
		return c.grid.ActiveWindow()
	}

	if display, err := c.backend.ActiveDisplay(); err == nil {
		c.monitor = display.Name
		c.rebuild(display)
	} else {
		c.logger.Debug("maximize: no active display", "err", err)
	}

	if window, err := c.backend.ActiveWindow(); err == nil && window != 0 && !c.grid.IsOverlay(window) {
		c.grid.SetActiveWindow(window)
	}
	return c.grid.ActiveWindow()
}

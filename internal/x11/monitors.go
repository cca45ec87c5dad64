package x11

import (
	"fmt"

	"github.com/1broseidon/gridsnap/internal/geometry"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// Monitor represents a physical display
type Monitor struct {
	ID     int
	Name   string
	Bounds geometry.Rect
	// WorkArea excludes panels and docks. It equals Bounds until
	// resolved by GetActiveMonitor.
	WorkArea geometry.Rect
}

// GetMonitors retrieves all active monitors using XRandR
func (c *Connection) GetMonitors() ([]Monitor, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var monitors []Monitor
	for i, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}

		// Skip disabled CRTCs
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}

		// The output name is the monitor identity used for layout keys.
		outputName := fmt.Sprintf("Monitor%d", i)
		outputInfo, err := randr.GetOutputInfo(c.XUtil.Conn(), crtcInfo.Outputs[0], resources.ConfigTimestamp).Reply()
		if err == nil && len(outputInfo.Name) > 0 {
			outputName = string(outputInfo.Name)
		}

		bounds := geometry.Rect{
			X:      int(crtcInfo.X),
			Y:      int(crtcInfo.Y),
			Width:  int(crtcInfo.Width),
			Height: int(crtcInfo.Height),
		}
		monitors = append(monitors, Monitor{
			ID:       i,
			Name:     outputName,
			Bounds:   bounds,
			WorkArea: bounds,
		})
	}

	return monitors, nil
}

// GetActiveMonitor returns the monitor under the pointer, falling back to the
// monitor of the focused window and then to the first monitor. The returned
// WorkArea respects panels and docks.
func (c *Connection) GetActiveMonitor() (*Monitor, error) {
	monitors, err := c.GetMonitors()
	if err != nil {
		return nil, err
	}
	if len(monitors) == 0 {
		return nil, fmt.Errorf("no monitors found")
	}

	active := findMonitorForPointer(c, monitors)
	if active == nil {
		if win, err := ewmh.ActiveWindowGet(c.XUtil); err == nil && win != 0 {
			active = findMonitorForWindow(c, monitors, win)
		}
	}
	if active == nil {
		active = &monitors[0]
	}

	if !applyDockStruts(c, active) {
		applyWorkarea(c, active)
	}
	return active, nil
}

// ActiveMonitorName returns the name of the monitor under the pointer
// without resolving its work area.
func (c *Connection) ActiveMonitorName() (string, error) {
	monitors, err := c.GetMonitors()
	if err != nil {
		return "", err
	}
	if mon := findMonitorForPointer(c, monitors); mon != nil {
		return mon.Name, nil
	}
	if len(monitors) == 0 {
		return "", fmt.Errorf("no monitors found")
	}
	return monitors[0].Name, nil
}

// applyWorkarea intersects the monitor with _NET_WORKAREA of the current desktop.
func applyWorkarea(c *Connection, monitor *Monitor) {
	workArea, err := ewmh.WorkareaGet(c.XUtil)
	if err != nil || len(workArea) == 0 {
		return
	}

	desktopIndex := 0
	if currentDesktop, err := ewmh.CurrentDesktopGet(c.XUtil); err == nil {
		if int(currentDesktop) < len(workArea) {
			desktopIndex = int(currentDesktop)
		}
	}

	wa := workArea[desktopIndex]
	x1 := max(monitor.Bounds.X, int(wa.X))
	y1 := max(monitor.Bounds.Y, int(wa.Y))
	x2 := min(monitor.Bounds.X+monitor.Bounds.Width, int(wa.X)+int(wa.Width))
	y2 := min(monitor.Bounds.Y+monitor.Bounds.Height, int(wa.Y)+int(wa.Height))

	if x2 > x1 && y2 > y1 {
		monitor.WorkArea = geometry.Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
	}
}

func applyDockStruts(c *Connection, monitor *Monitor) bool {
	rootGeom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(c.Root)).Reply()
	if err != nil {
		return false
	}
	rootWidth := int(rootGeom.Width)
	rootHeight := int(rootGeom.Height)

	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return false
	}

	var struts geometry.Insets
	for _, windowID := range clients {
		if !hasWindowType(c, windowID, "_NET_WM_WINDOW_TYPE_DOCK") {
			continue
		}

		if sp, err := ewmh.WmStrutPartialGet(c.XUtil, windowID); err == nil {
			updateStrutsForMonitor(monitor.Bounds, rootWidth, rootHeight, sp, &struts)
			continue
		}

		// Some docks only set _NET_WM_STRUT (no partial ranges).
		if s, err := ewmh.WmStrutGet(c.XUtil, windowID); err == nil {
			sp := &ewmh.WmStrutPartial{
				Left:       s.Left,
				Right:      s.Right,
				Top:        s.Top,
				Bottom:     s.Bottom,
				LeftEndY:   uint(rootHeight - 1),
				RightEndY:  uint(rootHeight - 1),
				TopEndX:    uint(rootWidth - 1),
				BottomEndX: uint(rootWidth - 1),
			}
			updateStrutsForMonitor(monitor.Bounds, rootWidth, rootHeight, sp, &struts)
		}
	}

	if struts == (geometry.Insets{}) {
		return false
	}

	wa := monitor.Bounds
	wa.X += struts.Left
	wa.Y += struts.Top
	wa.Width = max(wa.Width-(struts.Left+struts.Right), 1)
	wa.Height = max(wa.Height-(struts.Top+struts.Bottom), 1)
	monitor.WorkArea = wa
	return true
}

// updateStrutsForMonitor accumulates the part of each strut that overlaps mon.
func updateStrutsForMonitor(mon geometry.Rect, rootWidth, rootHeight int, sp *ewmh.WmStrutPartial, acc *geometry.Insets) {
	if sp.Top > 0 {
		strut := geometry.Rect{X: int(sp.TopStartX), Y: 0, Width: int(sp.TopEndX) - int(sp.TopStartX) + 1, Height: int(sp.Top)}
		if w, h := overlap(mon, strut); w > 0 && h > 0 {
			acc.Top = max(acc.Top, h)
		}
	}
	if sp.Bottom > 0 {
		strut := geometry.Rect{X: int(sp.BottomStartX), Y: rootHeight - int(sp.Bottom), Width: int(sp.BottomEndX) - int(sp.BottomStartX) + 1, Height: int(sp.Bottom)}
		if w, h := overlap(mon, strut); w > 0 && h > 0 {
			acc.Bottom = max(acc.Bottom, h)
		}
	}
	if sp.Left > 0 {
		strut := geometry.Rect{X: 0, Y: int(sp.LeftStartY), Width: int(sp.Left), Height: int(sp.LeftEndY) - int(sp.LeftStartY) + 1}
		if w, h := overlap(mon, strut); w > 0 && h > 0 {
			acc.Left = max(acc.Left, w)
		}
	}
	if sp.Right > 0 {
		strut := geometry.Rect{X: rootWidth - int(sp.Right), Y: int(sp.RightStartY), Width: int(sp.Right), Height: int(sp.RightEndY) - int(sp.RightStartY) + 1}
		if w, h := overlap(mon, strut); w > 0 && h > 0 {
			acc.Right = max(acc.Right, w)
		}
	}
}

// overlap returns the size of the intersection of a and b.
func overlap(a, b geometry.Rect) (w, h int) {
	x1 := max(a.X, b.X)
	y1 := max(a.Y, b.Y)
	x2 := min(a.X+a.Width, b.X+b.Width)
	y2 := min(a.Y+a.Height, b.Y+b.Height)
	if x2 <= x1 || y2 <= y1 {
		return 0, 0
	}
	return x2 - x1, y2 - y1
}

func monitorAt(monitors []Monitor, x, y int) *Monitor {
	for i := range monitors {
		b := monitors[i].Bounds
		if x >= b.X && x < b.X+b.Width && y >= b.Y && y < b.Y+b.Height {
			return &monitors[i]
		}
	}
	return nil
}

func findMonitorForWindow(c *Connection, monitors []Monitor, windowID xproto.Window) *Monitor {
	rect, err := c.clientRect(windowID)
	if err != nil {
		return nil
	}
	return monitorAt(monitors, rect.X+rect.Width/2, rect.Y+rect.Height/2)
}

func findMonitorForPointer(c *Connection, monitors []Monitor) *Monitor {
	pointer, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil
	}
	return monitorAt(monitors, int(pointer.RootX), int(pointer.RootY))
}

package x11

import (
	"testing"

	"github.com/1broseidon/gridsnap/internal/geometry"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/stretchr/testify/assert"
)

func TestOverlap(t *testing.T) {
	a := geometry.Rect{X: 0, Y: 0, Width: 100, Height: 50}

	w, h := overlap(a, geometry.Rect{X: 80, Y: 40, Width: 50, Height: 50})
	assert.Equal(t, 20, w)
	assert.Equal(t, 10, h)

	w, h = overlap(a, geometry.Rect{X: 100, Y: 0, Width: 10, Height: 10})
	assert.Zero(t, w)
	assert.Zero(t, h)
}

func TestMonitorAt(t *testing.T) {
	monitors := []Monitor{
		{Name: "left", Bounds: geometry.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}},
		{Name: "right", Bounds: geometry.Rect{X: 1920, Y: 0, Width: 2560, Height: 1440}},
	}

	assert.Equal(t, "left", monitorAt(monitors, 1919, 500).Name)
	assert.Equal(t, "right", monitorAt(monitors, 1920, 500).Name)
	assert.Nil(t, monitorAt(monitors, 100, 1200))
}

func TestUpdateStrutsForMonitor(t *testing.T) {
	left := geometry.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}
	right := geometry.Rect{X: 1920, Y: 0, Width: 1920, Height: 1080}

	// A 40px top panel spanning only the left monitor.
	panel := &ewmh.WmStrutPartial{Top: 40, TopStartX: 0, TopEndX: 1919}

	var accLeft, accRight geometry.Insets
	updateStrutsForMonitor(left, 3840, 1080, panel, &accLeft)
	updateStrutsForMonitor(right, 3840, 1080, panel, &accRight)

	assert.Equal(t, geometry.Insets{Top: 40}, accLeft)
	assert.Equal(t, geometry.Insets{}, accRight)

	// A right dock on the right monitor.
	dock := &ewmh.WmStrutPartial{Right: 64, RightStartY: 0, RightEndY: 1079}
	updateStrutsForMonitor(right, 3840, 1080, dock, &accRight)
	assert.Equal(t, geometry.Insets{Right: 64}, accRight)
}

package listeners

import (
	"github.com/1broseidon/gridsnap/internal/geometry"
	"github.com/1broseidon/gridsnap/internal/grid"
	"github.com/1broseidon/gridsnap/internal/x11"
)

// tileColor picks the fill of a picker tile. Selection wins over hover.
func tileColor(t grid.Tile) uint32 {
	switch {
	case t.Selected:
		return x11.ColorTileSelected
	case t.Hovered:
		return x11.ColorTileHovered
	default:
		return x11.ColorTileIdle
	}
}

// paintTiles turns a snapshot into the rectangles drawn on the picker. The
// background comes from the window itself.
func paintTiles(s grid.Snapshot) []x11.FilledRect {
	var rects []x11.FilledRect
	s.Each(func(_ grid.Cell, tile grid.Tile, area geometry.Rect) {
		rects = append(rects, x11.FilledRect{Rect: area, Color: tileColor(tile)})
	})
	return rects
}

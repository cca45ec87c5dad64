package grid

import "github.com/1broseidon/gridsnap/internal/geometry"

// Snapshot is a copy of the tile matrix for painting.
type Snapshot struct {
	Tiles  [][]Tile
	Layout geometry.Tiles
}

// Snapshot copies the current tile state.
func (g *Grid) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Snapshot{
		Tiles:  g.s.cloneTiles(),
		Layout: g.s.tileLayout(),
	}
}

// Each calls fn for every tile with its picker-relative rectangle.
func (s Snapshot) Each(fn func(cell Cell, tile Tile, area geometry.Rect)) {
	for r, row := range s.Tiles {
		for c, tile := range row {
			fn(Cell{Row: r, Col: c}, tile, s.Layout.Area(r, c))
		}
	}
}

package grid

import "github.com/1broseidon/gridsnap/internal/geometry"

// HighlightTiles marks the tile under p as hovered and, while a shift range
// is active, every tile in the range as well. It returns the rectangle to
// preview, or false when the hover state did not change.
//
// The rectangle is the zero Rect when p is outside every tile.
func (g *Grid) HighlightTiles(p geometry.Point) (geometry.Rect, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := &g.s
	before := s.cloneTiles()
	tiles := s.tileLayout()
	zones := s.zones()

	var zone geometry.Rect
	s.hovered = nil
	for r, row := range s.tiles {
		for c := range row {
			hit := tiles.Area(r, c).ContainsPoint(p)
			row[c].Hovered = hit
			if hit {
				s.hovered = &Cell{Row: r, Col: c}
				zone = zones.Area(r, c)
			}
		}
	}

	if rect, ok := s.shiftRange(true); ok {
		zone = rect
	}

	if tilesEqual(before, s.tiles) {
		return geometry.Rect{}, false
	}
	return zone, true
}

// SelectTile commits the tile under p as the selection. It is ignored while
// the pointer button or shift is held, and reports whether the selection
// changed.
func (g *Grid) SelectTile(p geometry.Point) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := &g.s
	if s.mods.Cursor || s.mods.Shift {
		return false
	}

	before := s.cloneTiles()
	tiles := s.tileLayout()

	s.selected = nil
	for r, row := range s.tiles {
		for c := range row {
			hit := tiles.Area(r, c).ContainsPoint(p)
			row[c].Selected = hit
			if hit {
				s.selected = &Cell{Row: r, Col: c}
			}
		}
	}

	return !tilesEqual(before, s.tiles)
}

// SelectedArea returns the zone the active window would be placed in: the
// shift range if one is active, otherwise the selected tile's zone.
func (g *Grid) SelectedArea() (geometry.Rect, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := &g.s
	if rect, ok := s.shiftRange(false); ok {
		return rect, true
	}
	if s.selected != nil {
		return s.zones().Area(s.selected.Row, s.selected.Col), true
	}
	return geometry.Rect{}, false
}

// ShiftRange returns the span of cells covered by the active shift range.
func (g *Grid) ShiftRange() (from, to Cell, ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.s.shiftSpan()
}

// shiftSpan classifies the hovered tile against the selected one. The
// result always has from at the top-left and to at the bottom-right.
func (s *state) shiftSpan() (from, to Cell, ok bool) {
	if !(s.mods.Shift || s.mods.Cursor) || s.selected == nil || s.hovered == nil {
		return Cell{}, Cell{}, false
	}

	sel, hov := *s.selected, *s.hovered
	zones := s.zones()
	sa := zones.Area(sel.Row, sel.Col)
	ha := zones.Area(hov.Row, hov.Col)

	switch {
	case ha.X < sa.X && ha.Y > sa.Y:
		// down and to the left
		from = Cell{Row: sel.Row, Col: hov.Col}
		to = Cell{Row: hov.Row, Col: sel.Col}
	case ha.Y < sa.Y && ha.X > sa.X:
		// up and to the right
		from = Cell{Row: hov.Row, Col: sel.Col}
		to = Cell{Row: sel.Row, Col: hov.Col}
	case ha.X > sa.X || ha.Y > sa.Y:
		from, to = sel, hov
	default:
		from, to = hov, sel
	}
	return from, to, true
}

func (s *state) shiftRange(highlight bool) (geometry.Rect, bool) {
	from, to, ok := s.shiftSpan()
	if !ok {
		return geometry.Rect{}, false
	}

	if highlight {
		for r := from.Row; r <= to.Row; r++ {
			for c := from.Col; c <= to.Col; c++ {
				s.tiles[r][c].Hovered = true
			}
		}
	}

	zones := s.zones()
	return zones.Area(from.Row, from.Col).Union(zones.Area(to.Row, to.Col)), true
}

// UnhighlightAllTiles clears every hover flag.
func (g *Grid) UnhighlightAllTiles() {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, row := range g.s.tiles {
		for c := range row {
			row[c].Hovered = false
		}
	}
	g.s.hovered = nil
}

// Modifiers returns the input modifier state.
func (g *Grid) Modifiers() Modifiers {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.s.mods
}

// SetShift records whether shift is held.
func (g *Grid) SetShift(down bool) {
	g.mu.Lock()
	g.s.mods.Shift = down
	g.mu.Unlock()
}

// SetControl records whether control is held.
func (g *Grid) SetControl(down bool) {
	g.mu.Lock()
	g.s.mods.Control = down
	g.mu.Unlock()
}

// SetCursorDown records whether the pointer button is held.
func (g *Grid) SetCursorDown(down bool) {
	g.mu.Lock()
	g.s.mods.Cursor = down
	g.mu.Unlock()
}

// Selected returns the selected cell.
func (g *Grid) Selected() (Cell, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.s.selected == nil {
		return Cell{}, false
	}
	return *g.s.selected, true
}

// Hovered returns the hovered cell.
func (g *Grid) Hovered() (Cell, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.s.hovered == nil {
		return Cell{}, false
	}
	return *g.s.hovered, true
}

// Reset ends a picking session: modifiers, selection, hover, tile flags,
// overlay windows and quick resize are cleared. The active window, the
// remembered resizes and the layout survive.
func (g *Grid) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := &g.s
	s.mods = Modifiers{}
	s.selected = nil
	s.hovered = nil
	s.gridWindow = 0
	s.previewWindow = 0
	s.quickResize = false
	for _, row := range s.tiles {
		for c := range row {
			row[c] = Tile{}
		}
	}
}

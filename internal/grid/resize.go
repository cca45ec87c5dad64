package grid

import "github.com/1broseidon/gridsnap/internal/layoutstore"

// AddRow appends a row of fresh tiles and returns the new shape.
func (g *Grid) AddRow() layoutstore.Entry {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := &g.s
	s.tiles = append(s.tiles, make([]Tile, s.columns()))
	return s.entry()
}

// AddColumn appends a fresh tile to every row and returns the new shape.
func (g *Grid) AddColumn() layoutstore.Entry {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := &g.s
	for r := range s.tiles {
		s.tiles[r] = append(s.tiles[r], Tile{})
	}
	return s.entry()
}

// RemoveRow drops the last row. It reports false, and changes nothing, when
// only one row is left.
func (g *Grid) RemoveRow() (layoutstore.Entry, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := &g.s
	if s.rows() <= 1 {
		return s.entry(), false
	}
	s.tiles = s.tiles[:s.rows()-1]
	s.revalidate()
	return s.entry(), true
}

// RemoveColumn drops the last column. It reports false, and changes
// nothing, when only one column is left.
func (g *Grid) RemoveColumn() (layoutstore.Entry, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := &g.s
	if s.columns() <= 1 {
		return s.entry(), false
	}
	for r := range s.tiles {
		s.tiles[r] = s.tiles[r][:len(s.tiles[r])-1]
	}
	s.revalidate()
	return s.entry(), true
}

// revalidate drops selection and hover indices that fell off the matrix.
func (s *state) revalidate() {
	inBounds := func(c *Cell) bool {
		return c != nil && c.Row < s.rows() && c.Col < s.columns()
	}
	if !inBounds(s.selected) {
		s.selected = nil
	}
	if !inBounds(s.hovered) {
		s.hovered = nil
	}
}

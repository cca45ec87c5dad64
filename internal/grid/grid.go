// Package grid holds the picker state: the tile matrix, the selection and
// hover algorithms, the input modifiers and the windows a picking session
// operates on.
//
// A Grid is shared between the coordinator, which is its only writer, and
// the picker painter, which takes snapshots. Every exported method acquires
// the grid lock exactly once and never calls out while holding it.
package grid

import (
	"sync"

	"github.com/1broseidon/gridsnap/internal/geometry"
	"github.com/1broseidon/gridsnap/internal/layoutstore"
	"github.com/1broseidon/gridsnap/internal/platform"
)

// Tile is the state of one picker cell.
type Tile struct {
	Selected bool
	Hovered  bool
}

// Cell addresses a tile by row and column.
type Cell struct {
	Row int
	Col int
}

// Margins are the three independently configured spacings.
type Margins struct {
	// Grid separates picker tiles.
	Grid int
	// Zone separates neighbouring snap zones.
	Zone int
	// Border separates the outer zones from the work area edge.
	Border int
}

// DefaultMargins returns the spacings used when nothing is configured.
func DefaultMargins() Margins {
	return Margins{Grid: 3, Zone: 10, Border: 10}
}

// Resize is a window paired with a rectangle.
type Resize struct {
	Window platform.WindowID
	Rect   geometry.Rect
}

// Modifiers is the input modifier state.
type Modifiers struct {
	Shift   bool
	Control bool
	Cursor  bool
}

// Options describe the layout a grid is built for.
type Options struct {
	Key      layoutstore.Key
	Entry    layoutstore.Entry
	Margins  Margins
	WorkArea geometry.Rect
}

// Grid is the aggregate root of the picker. The zero value is not usable;
// construct it with New.
type Grid struct {
	mu sync.Mutex
	s  state
}

type state struct {
	tiles    [][]Tile
	selected *Cell
	hovered  *Cell

	mods Modifiers

	activeWindow  platform.WindowID
	gridWindow    platform.WindowID
	previewWindow platform.WindowID

	previousResize *Resize
	lastPlacement  *Resize
	quickResize    bool

	margins  Margins
	workArea geometry.Rect
	key      layoutstore.Key
}

// New builds a grid for the given layout.
func New(opts Options) *Grid {
	return &Grid{s: newState(opts)}
}

func newState(opts Options) state {
	rows := max(opts.Entry.Rows, 1)
	cols := max(opts.Entry.Columns, 1)

	tiles := make([][]Tile, rows)
	for r := range tiles {
		tiles[r] = make([]Tile, cols)
	}

	return state{
		tiles:    tiles,
		margins:  opts.Margins,
		workArea: opts.WorkArea,
		key:      opts.Key,
	}
}

// Rebuild replaces the grid with a fresh one for opts. The active window,
// the overlay windows, the remembered resizes and the quick-resize flag are
// carried over; everything else starts from the new layout.
func (g *Grid) Rebuild(opts Options) {
	g.mu.Lock()
	defer g.mu.Unlock()

	next := newState(opts)
	next.activeWindow = g.s.activeWindow
	next.gridWindow = g.s.gridWindow
	next.previewWindow = g.s.previewWindow
	next.previousResize = g.s.previousResize
	next.lastPlacement = g.s.lastPlacement
	next.quickResize = g.s.quickResize
	g.s = next
}

// Key returns the layout key the grid was built for.
func (g *Grid) Key() layoutstore.Key {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.s.key
}

// Entry returns the current shape.
func (g *Grid) Entry() layoutstore.Entry {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.s.entry()
}

// Rows returns the number of tile rows.
func (g *Grid) Rows() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.s.rows()
}

// Columns returns the number of tile columns.
func (g *Grid) Columns() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.s.columns()
}

// WorkArea returns the work area zones are laid out over.
func (g *Grid) WorkArea() geometry.Rect {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.s.workArea
}

// ZoneArea returns the snap zone of a cell.
func (g *Grid) ZoneArea(row, col int) geometry.Rect {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.s.zones().Area(row, col)
}

// TileArea returns the picker-relative rectangle of a tile.
func (g *Grid) TileArea(row, col int) geometry.Rect {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.s.tileLayout().Area(row, col)
}

// MaxArea spans every zone of the grid.
func (g *Grid) MaxArea() geometry.Rect {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.s.zones().Max()
}

// Dimensions returns the picker window size.
func (g *Grid) Dimensions() (width, height int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.s.tileLayout().Size()
}

// WindowRect returns the picker window bounds centered on the work area.
func (g *Grid) WindowRect() geometry.Rect {
	g.mu.Lock()
	defer g.mu.Unlock()
	w, h := g.s.tileLayout().Size()
	return geometry.CenteredIn(g.s.workArea, w, h)
}

func (s *state) rows() int    { return len(s.tiles) }
func (s *state) columns() int { return len(s.tiles[0]) }

func (s *state) entry() layoutstore.Entry {
	return layoutstore.Entry{Rows: s.rows(), Columns: s.columns()}
}

func (s *state) zones() geometry.Zones {
	return geometry.Zones{
		WorkArea: s.workArea,
		Rows:     s.rows(),
		Columns:  s.columns(),
		Margin:   s.margins.Zone,
		Border:   s.margins.Border,
	}
}

func (s *state) tileLayout() geometry.Tiles {
	return geometry.Tiles{
		Rows:    s.rows(),
		Columns: s.columns(),
		Margin:  s.margins.Grid,
	}
}

func (s *state) cloneTiles() [][]Tile {
	out := make([][]Tile, len(s.tiles))
	for r, row := range s.tiles {
		out[r] = append([]Tile(nil), row...)
	}
	return out
}

func tilesEqual(a, b [][]Tile) bool {
	if len(a) != len(b) {
		return false
	}
	for r := range a {
		if len(a[r]) != len(b[r]) {
			return false
		}
		for c := range a[r] {
			if a[r][c] != b[r][c] {
				return false
			}
		}
	}
	return true
}

// Package geometry maps grid shapes onto screen rectangles.
//
// Two coordinate systems are involved. Zones are the real snap targets laid
// out over a monitor's work area. Tiles are the fixed-size icons drawn in the
// picker window and are only used for hit-testing the pointer.
package geometry

import "fmt"

// TileSize is the edge length of a picker tile in pixels.
const TileSize = 48

// Point is a screen or window-relative coordinate.
type Point struct {
	X int
	Y int
}

// Rect represents a window position and size
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Insets describes decoration thickness on each side of a window.
type Insets struct {
	Left   int
	Right  int
	Top    int
	Bottom int
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y)
}

// IsZero reports whether r is the zero rectangle.
func (r Rect) IsZero() bool {
	return r == Rect{}
}

// ContainsPoint reports whether p lies inside r. Both edges are inclusive.
func (r Rect) ContainsPoint(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Normalize flips negative extents so that Width and Height are non-negative.
func (r Rect) Normalize() Rect {
	if r.Width < 0 {
		r.X += r.Width
		r.Width = -r.Width
	}
	if r.Height < 0 {
		r.Y += r.Height
		r.Height = -r.Height
	}
	return r
}

// Union returns the bounding box of r and o.
func (r Rect) Union(o Rect) Rect {
	r, o = r.Normalize(), o.Normalize()
	x0 := min(r.X, o.X)
	y0 := min(r.Y, o.Y)
	x1 := max(r.X+r.Width, o.X+o.Width)
	y1 := max(r.Y+r.Height, o.Y+o.Height)
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// AdjustForInsets converts a target outer frame into the geometry requested
// from the window manager. The origin addresses the frame while the size
// addresses the client, so the decorations are subtracted from the size.
func (r Rect) AdjustForInsets(in Insets) Rect {
	r.Width -= in.Left + in.Right
	r.Height -= in.Top + in.Bottom
	if r.Width < 1 {
		r.Width = 1
	}
	if r.Height < 1 {
		r.Height = 1
	}
	return r
}

// CenteredIn returns a width x height rectangle centered on area.
func CenteredIn(area Rect, width, height int) Rect {
	return Rect{
		X:      area.X + area.Width/2 - width/2,
		Y:      area.Y + area.Height/2 - height/2,
		Width:  width,
		Height: height,
	}
}

// Zones lays out rows x columns snap targets over a work area.
type Zones struct {
	WorkArea Rect
	Rows     int
	Columns  int
	// Margin is the gap between neighbouring zones.
	Margin int
	// Border is the gap between the outer zones and the work area edge.
	Border int
}

// cellSize returns the integer-truncated zone size. The last row or column
// may leave a few pixels unused; that remainder is not redistributed.
func (z Zones) cellSize() (width, height int) {
	cols := max(z.Columns, 1)
	rows := max(z.Rows, 1)
	width = (z.WorkArea.Width - 2*z.Border - (cols-1)*z.Margin) / cols
	height = (z.WorkArea.Height - 2*z.Border - (rows-1)*z.Margin) / rows
	return width, height
}

// Area returns the zone rectangle for the given cell.
func (z Zones) Area(row, col int) Rect {
	w, h := z.cellSize()
	return Rect{
		X:      z.WorkArea.X + z.Border + col*(w+z.Margin),
		Y:      z.WorkArea.Y + z.Border + row*(h+z.Margin),
		Width:  w,
		Height: h,
	}
}

// Max spans every zone from the top-left to the bottom-right cell.
func (z Zones) Max() Rect {
	return z.Area(0, 0).Union(z.Area(max(z.Rows, 1)-1, max(z.Columns, 1)-1))
}

// Tiles lays out the picker icons for a rows x columns grid.
type Tiles struct {
	Rows    int
	Columns int
	Margin  int
}

// Area returns the window-relative rectangle of the given tile.
func (t Tiles) Area(row, col int) Rect {
	return Rect{
		X:      col*TileSize + (col+1)*t.Margin,
		Y:      row*TileSize + (row+1)*t.Margin,
		Width:  TileSize,
		Height: TileSize,
	}
}

// Size returns the picker window size needed to hold every tile.
func (t Tiles) Size() (width, height int) {
	width = t.Columns*TileSize + (t.Columns+1)*t.Margin
	height = t.Rows*TileSize + (t.Rows+1)*t.Margin
	return width, height
}

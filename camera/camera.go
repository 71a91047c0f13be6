// Package camera provides a 2D camera for viewing the field grid.
package camera

import "github.com/pthm-cable/habitat/world"

// Camera controls the viewport onto the grid. World coordinates are pixels
// of the grid at zoom 1.
type Camera struct {
	// Position is the camera center in world coordinates
	X, Y float32

	// Zoom level (1.0 = whole grid, 2.0 = 2x magnification)
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Grid dimensions
	Depth, Width int
	CellSize     float32

	// Zoom constraints
	MinZoom, MaxZoom float32
}

// New creates a camera centered on a depth×width grid of cellSize pixels.
func New(viewportW, viewportH float32, depth, width int, cellSize float32) *Camera {
	c := &Camera{
		ViewportW: viewportW,
		ViewportH: viewportH,
		Depth:     depth,
		Width:     width,
		CellSize:  cellSize,
		MinZoom:   1.0,
		MaxZoom:   8.0,
	}
	c.Reset()
	return c
}

// GridW returns the grid width in world coordinates.
func (c *Camera) GridW() float32 { return float32(c.Width) * c.CellSize }

// GridH returns the grid height in world coordinates.
func (c *Camera) GridH() float32 { return float32(c.Depth) * c.CellSize }

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	sx = c.ViewportW/2 + (wx-c.X)*c.Zoom
	sy = c.ViewportH/2 + (wy-c.Y)*c.Zoom
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	wx = c.X + (sx-c.ViewportW/2)/c.Zoom
	wy = c.Y + (sy-c.ViewportH/2)/c.Zoom
	return wx, wy
}

// CellRect returns the screen rectangle of a cell.
func (c *Camera) CellRect(loc world.Location) (x, y, size float32) {
	x, y = c.WorldToScreen(float32(loc.Col)*c.CellSize, float32(loc.Row)*c.CellSize)
	return x, y, c.CellSize * c.Zoom
}

// CellAt returns the cell under a screen point.
func (c *Camera) CellAt(sx, sy float32) (world.Location, bool) {
	wx, wy := c.ScreenToWorld(sx, sy)
	if wx < 0 || wy < 0 {
		return world.Location{}, false
	}
	loc := world.Loc(int(wy/c.CellSize), int(wx/c.CellSize))
	if loc.Row >= c.Depth || loc.Col >= c.Width {
		return world.Location{}, false
	}
	return loc, true
}

// VisibleCells returns the half-open row and column ranges on screen.
func (c *Camera) VisibleCells() (row0, row1, col0, col1 int) {
	minX, minY, maxX, maxY := c.VisibleWorldBounds()
	row0 = max(int(minY/c.CellSize), 0)
	col0 = max(int(minX/c.CellSize), 0)
	row1 = min(int(maxY/c.CellSize)+1, c.Depth)
	col1 = min(int(maxX/c.CellSize)+1, c.Width)
	return row0, row1, col0, col1
}

// Pan moves the camera by the given delta in screen pixels, keeping the
// view over the grid.
func (c *Camera) Pan(dx, dy float32) {
	c.X += dx / c.Zoom
	c.Y += dy / c.Zoom
	c.clampCenter()
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
	c.clampCenter()
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// ZoomAt zooms by factor while keeping the world point under (sx, sy) fixed.
func (c *Camera) ZoomAt(factor, sx, sy float32) {
	wx, wy := c.ScreenToWorld(sx, sy)
	c.Zoom = clamp(c.Zoom*factor, c.MinZoom, c.MaxZoom)
	c.X = wx - (sx-c.ViewportW/2)/c.Zoom
	c.Y = wy - (sy-c.ViewportH/2)/c.Zoom
	c.clampCenter()
}

// Reset returns the camera to the default position and zoom.
func (c *Camera) Reset() {
	c.X = c.GridW() / 2
	c.Y = c.GridH() / 2
	c.Zoom = 1.0
}

// VisibleWorldBounds returns the world-coordinate bounds of the visible area.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float32) {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)

	minX = c.X - halfW
	maxX = c.X + halfW
	minY = c.Y - halfH
	maxY = c.Y + halfH
	return
}

// clampCenter keeps the view inside the grid on each axis where the grid is
// larger than the view, and centers the grid otherwise.
func (c *Camera) clampCenter() {
	c.X = clampAxis(c.X, c.ViewportW/(2*c.Zoom), c.GridW())
	c.Y = clampAxis(c.Y, c.ViewportH/(2*c.Zoom), c.GridH())
}

func clampAxis(center, half, size float32) float32 {
	if 2*half >= size {
		return size / 2
	}
	return clamp(center, half, size-half)
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}

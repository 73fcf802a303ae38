package render

// Camera translates between view coordinates (column, line from the top)
// and screen cells. Each tile spans CellWidth terminal columns.
type Camera struct {
	OffsetX    int
	OffsetY    int
	ViewWidth  int // in terminal columns
	ViewHeight int // in terminal rows
	CellWidth  int
}

// NewCamera creates a camera centered on (cx, cy).
func NewCamera(cx, cy, viewW, viewH, cellW int) *Camera {
	c := &Camera{ViewWidth: viewW, ViewHeight: viewH, CellWidth: max(1, cellW)}
	c.Center(cx, cy)
	return c
}

// Center repositions the camera so that (cx, cy) is in the middle.
func (c *Camera) Center(cx, cy int) {
	c.OffsetX = cx - (c.ViewWidth/c.CellWidth)/2
	c.OffsetY = cy - c.ViewHeight/2
}

// WorldToScreen converts (wx, wy) to screen (sx, sy).
// visible is false when the tile does not fit in the viewport.
func (c *Camera) WorldToScreen(wx, wy int) (sx, sy int, visible bool) {
	sx = (wx - c.OffsetX) * c.CellWidth
	sy = wy - c.OffsetY
	visible = sx >= 0 && sx+c.CellWidth <= c.ViewWidth && sy >= 0 && sy < c.ViewHeight
	return
}

// ScreenToWorld converts screen (sx, sy) to view coordinates.
func (c *Camera) ScreenToWorld(sx, sy int) (int, int) {
	return sx/c.CellWidth + c.OffsetX, sy + c.OffsetY
}

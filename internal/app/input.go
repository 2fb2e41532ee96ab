package app

// CellAt maps a screen pixel to grid coordinates for an n×n grid drawn at
// scale pixels per cell from the origin. Pixels outside the grid report
// ok=false.
func CellAt(px, py, scale, n int) (row, col int, ok bool) {
	if scale <= 0 || n <= 0 || px < 0 || py < 0 {
		return 0, 0, false
	}
	col = px / scale
	row = py / scale
	if row >= n || col >= n {
		return 0, 0, false
	}
	return row, col, true
}

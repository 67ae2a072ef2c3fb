package tetris

// Board is the grid of locked cells, stored row-major.
type Board struct {
	width  int
	height int
	cells  []PieceType
}

func newBoard(width, height int) *Board {
	return &Board{
		width:  width,
		height: height,
		cells:  make([]PieceType, width*height),
	}
}

func (b *Board) Width() int  { return b.width }
func (b *Board) Height() int { return b.height }

// At returns the locked piece at (x, y), or None for empty or off-board
// coordinates.
func (b *Board) At(x, y int) PieceType {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return None
	}
	return b.cells[y*b.width+x]
}

func (b *Board) set(x, y int, t PieceType) {
	b.cells[y*b.width+x] = t
}

func (b *Board) clear() {
	clear(b.cells)
}

// Fits reports whether p can occupy its position. Columns are always
// bounds-checked; rows above the board are exempt from the floor and
// overlap checks.
func (b *Board) Fits(p Piece) bool {
	for _, c := range p.Cells() {
		if c.X < 0 || c.X >= b.width || c.Y >= b.height {
			return false
		}
		if c.Y >= 0 && b.cells[c.Y*b.width+c.X] != None {
			return false
		}
	}
	return true
}

// dropDistance is the number of rows p can fall before it would collide.
func (b *Board) dropDistance(p Piece) int {
	dy := 0
	for b.Fits(p.moved(0, dy+1)) {
		dy++
	}
	return dy
}

func (b *Board) rowFull(y int) bool {
	for _, c := range b.cells[y*b.width : (y+1)*b.width] {
		if c == None {
			return false
		}
	}
	return true
}

// removeRow drops every row above y down by one and empties the top row.
func (b *Board) removeRow(y int) {
	copy(b.cells[b.width:(y+1)*b.width], b.cells[:y*b.width])
	clear(b.cells[:b.width])
}

// clearLines removes full rows scanning bottom to top. After a removal the
// same row index is examined again because the row above has moved into it.
func (b *Board) clearLines() int {
	cleared := 0
	for y := b.height - 1; y >= 0; y-- {
		if b.rowFull(y) {
			b.removeRow(y)
			cleared++
			y++
		}
	}
	return cleared
}

// rows copies the board into a fresh [row][column] grid.
func (b *Board) rows() [][]PieceType {
	out := make([][]PieceType, b.height)
	for y := range out {
		out[y] = make([]PieceType, b.width)
		copy(out[y], b.cells[y*b.width:(y+1)*b.width])
	}
	return out
}

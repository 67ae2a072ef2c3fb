package tetris

import "fmt"

// PieceType identifies one of the seven tetrominoes. The zero value None
// marks an empty board cell.
type PieceType uint8

const (
	None PieceType = iota
	PieceI
	PieceO
	PieceT
	PieceS
	PieceZ
	PieceJ
	PieceL
)

const pieceCount = 7

// AllPieces lists every playable piece type in table order.
var AllPieces = [pieceCount]PieceType{PieceI, PieceO, PieceT, PieceS, PieceZ, PieceJ, PieceL}

var pieceNames = [...]string{"", "I", "O", "T", "S", "Z", "J", "L"}

func (t PieceType) String() string {
	if int(t) < len(pieceNames) {
		return pieceNames[t]
	}
	return fmt.Sprintf("PieceType(%d)", uint8(t))
}

// Valid reports whether t is one of the seven playable pieces.
func (t PieceType) Valid() bool {
	return t >= PieceI && t <= PieceL
}

// ParsePieceType maps a letter back to its piece type.
func ParsePieceType(s string) (PieceType, error) {
	for _, t := range AllPieces {
		if pieceNames[t] == s {
			return t, nil
		}
	}
	return None, fmt.Errorf("unknown piece %q", s)
}

// Shape is a 4x4 occupancy matrix indexed [row][column].
type Shape [4][4]bool

// Point is a board coordinate. Y grows downward and may be negative above
// the visible board.
type Point struct {
	X, Y int
}

// Piece is the active piece state. X and Y locate the top-left corner of
// its 4x4 bounding box on the board.
type Piece struct {
	Type     PieceType
	Rotation int
	X, Y     int
}

// Cells returns the four board cells covered by the piece.
func (p Piece) Cells() [4]Point {
	var out [4]Point
	for i, b := range blocks[p.Type][p.Rotation&3] {
		out[i] = Point{X: p.X + b.X, Y: p.Y + b.Y}
	}
	return out
}

func (p Piece) moved(dx, dy int) Piece {
	p.X += dx
	p.Y += dy
	return p
}

// ShapeOf returns the occupancy matrix of a piece type at a rotation.
func ShapeOf(t PieceType, rotation int) Shape {
	return shapes[t][rotation&3]
}

var rotationRows = [pieceCount + 1][4][4]string{
	PieceI: {
		{"....", "XXXX", "....", "...."},
		{"..X.", "..X.", "..X.", "..X."},
		{"....", "....", "XXXX", "...."},
		{".X..", ".X..", ".X..", ".X.."},
	},
	PieceO: {
		{".XX.", ".XX.", "....", "...."},
		{".XX.", ".XX.", "....", "...."},
		{".XX.", ".XX.", "....", "...."},
		{".XX.", ".XX.", "....", "...."},
	},
	PieceT: {
		{".X..", "XXX.", "....", "...."},
		{".X..", ".XX.", ".X..", "...."},
		{"....", "XXX.", ".X..", "...."},
		{".X..", "XX..", ".X..", "...."},
	},
	PieceS: {
		{".XX.", "XX..", "....", "...."},
		{".X..", ".XX.", "..X.", "...."},
		{"....", ".XX.", "XX..", "...."},
		{"X...", "XX..", ".X..", "...."},
	},
	PieceZ: {
		{"XX..", ".XX.", "....", "...."},
		{"..X.", ".XX.", ".X..", "...."},
		{"....", "XX..", ".XX.", "...."},
		{".X..", "XX..", "X...", "...."},
	},
	PieceJ: {
		{"X...", "XXX.", "....", "...."},
		{".XX.", ".X..", ".X..", "...."},
		{"....", "XXX.", "..X.", "...."},
		{".X..", ".X..", "XX..", "...."},
	},
	PieceL: {
		{"..X.", "XXX.", "....", "...."},
		{".X..", ".X..", ".XX.", "...."},
		{"....", "XXX.", "X...", "...."},
		{"XX..", ".X..", ".X..", "...."},
	},
}

var (
	shapes [pieceCount + 1][4]Shape
	blocks [pieceCount + 1][4][4]Point
)

func init() {
	for _, t := range AllPieces {
		for rot, rows := range rotationRows[t] {
			n := 0
			for y, row := range rows {
				for x, c := range row {
					if c != 'X' {
						continue
					}
					shapes[t][rot][y][x] = true
					blocks[t][rot][n] = Point{X: x, Y: y}
					n++
				}
			}
			if n != 4 {
				panic(fmt.Sprintf("tetris: piece %s rotation %d has %d blocks", t, rot, n))
			}
		}
	}
}

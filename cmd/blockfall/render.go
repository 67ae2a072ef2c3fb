package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/blockfall/tetris"
)

const (
	margin       = 24
	sidebarCells = 6
	cellGap      = 1
	textLine     = 16
)

var (
	backgroundColor = color.RGBA{0x0b, 0x0f, 0x1a, 0xff}
	emptyColor      = color.RGBA{0x17, 0x1b, 0x26, 0xff}
	ghostColor      = color.RGBA{0xff, 0xff, 0xff, 0x2e}
	borderColor     = color.RGBA{0x3a, 0x3e, 0x48, 0xff}
)

var pieceColors = map[tetris.PieceType]color.RGBA{
	tetris.PieceI: {0x40, 0xc4, 0xff, 0xff},
	tetris.PieceO: {0xff, 0xd7, 0x40, 0xff},
	tetris.PieceT: {0xb3, 0x88, 0xff, 0xff},
	tetris.PieceS: {0x69, 0xf0, 0xae, 0xff},
	tetris.PieceZ: {0xff, 0x52, 0x52, 0xff},
	tetris.PieceJ: {0x44, 0x8a, 0xff, 0xff},
	tetris.PieceL: {0xff, 0xab, 0x40, 0xff},
}

// boardLayout places the board and sidebar inside the screen.
type boardLayout struct {
	cell     int
	originX  int
	originY  int
	sidebarX int
}

// layoutFor picks the largest square cell size that fits the board plus a
// sidebar of sidebarCells columns.
func layoutFor(screenW, screenH, cols, rows int) boardLayout {
	cell := min((screenW-3*margin)/(cols+sidebarCells), (screenH-2*margin)/rows)
	cell = max(cell, 4)
	return boardLayout{
		cell:     cell,
		originX:  margin,
		originY:  margin,
		sidebarX: 2*margin + cols*cell,
	}
}

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) DrawClosed(screen *ebiten.Image, trigger string) {
	screen.Fill(backgroundColor)
	ebitenutil.DebugPrintAt(screen, "Blockfall", margin, margin)
	ebitenutil.DebugPrintAt(screen, "Trigger: "+trigger, margin, margin+textLine)
}

func (r *Renderer) DrawGame(screen *ebiten.Image, snap tetris.Snapshot) {
	screen.Fill(backgroundColor)

	bounds := screen.Bounds()
	l := layoutFor(bounds.Dx(), bounds.Dy(), snap.Width, snap.Height)

	vector.StrokeRect(screen,
		float32(l.originX-2), float32(l.originY-2),
		float32(snap.Width*l.cell+4), float32(snap.Height*l.cell+4),
		1, borderColor, false)

	for y, row := range snap.Cells() {
		for x, c := range row {
			r.drawCell(screen, l.originX+x*l.cell, l.originY+y*l.cell, l.cell, cellColor(c))
		}
	}

	r.drawSidebar(screen, l, snap)
}

func cellColor(c tetris.Cell) color.Color {
	switch c.Kind {
	case tetris.CellLocked, tetris.CellActive:
		return pieceColors[c.Type]
	case tetris.CellGhost:
		return ghostColor
	}
	return emptyColor
}

func (r *Renderer) drawCell(screen *ebiten.Image, x, y, size int, clr color.Color) {
	vector.DrawFilledRect(screen,
		float32(x+cellGap), float32(y+cellGap),
		float32(size-2*cellGap), float32(size-2*cellGap),
		clr, false)
}

func (r *Renderer) drawSidebar(screen *ebiten.Image, l boardLayout, snap tetris.Snapshot) {
	x, y := l.sidebarX, l.originY

	for _, line := range hudLines(snap) {
		ebitenutil.DebugPrintAt(screen, line, x, y)
		y += textLine
	}

	y += textLine
	ebitenutil.DebugPrintAt(screen, "Next", x, y)
	r.drawPreview(screen, snap.Next, x, y+textLine, l.cell)

	y += textLine + 3*l.cell
	ebitenutil.DebugPrintAt(screen, "Hold", x, y)
	r.drawPreview(screen, snap.Held, x, y+textLine, l.cell)

	y += textLine + 3*l.cell
	for _, line := range helpLines {
		ebitenutil.DebugPrintAt(screen, line, x, y)
		y += textLine
	}
}

// drawPreview draws a piece in spawn rotation; only the top two rows of
// the 4x4 box are used by any spawn shape.
func (r *Renderer) drawPreview(screen *ebiten.Image, t tetris.PieceType, x, y, cell int) {
	if !t.Valid() {
		return
	}
	shape := tetris.ShapeOf(t, 0)
	for row := range 2 {
		for col := range 4 {
			if shape[row][col] {
				r.drawCell(screen, x+col*cell, y+row*cell, cell, pieceColors[t])
			}
		}
	}
}

func statusText(s tetris.Status) string {
	switch s {
	case tetris.Paused:
		return "PAUSED"
	case tetris.GameOver:
		return "GAME OVER"
	}
	return ""
}

func hudLines(snap tetris.Snapshot) []string {
	return []string{
		fmt.Sprintf("Score: %d", snap.Score),
		fmt.Sprintf("Level: %d", snap.Level),
		fmt.Sprintf("Lines: %d", snap.Lines),
		"Status: " + statusText(snap.Status),
	}
}

var helpLines = []string{
	"Left/Right move",
	"Up rotate, Z rotate CCW",
	"Down soft drop",
	"Space hard drop",
	"C hold, P pause",
	"R restart, Esc close",
}

// Package tetris implements a falling-block puzzle engine as a
// single-threaded state machine. An Engine owns its board, piece queue,
// hold slot and scoring; it is advanced by Tick and Command and observed
// through Snapshot. It performs no rendering and no I/O.
package tetris

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// Status is the engine's game state.
type Status uint8

const (
	Running Status = iota
	Paused
	GameOver
)

func (s Status) String() string {
	switch s {
	case Running:
		return "Running"
	case Paused:
		return "Paused"
	case GameOver:
		return "GameOver"
	}
	return fmt.Sprintf("Status(%d)", uint8(s))
}

// lineScores is the base award for clearing 1 to 4 rows at once; it is
// multiplied by the level.
var lineScores = [5]int{0, 100, 300, 500, 800}

// kicks are the horizontal offsets tried in order when rotating.
var kicks = [...]int{0, -1, 1, -2, 2}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the random source used to shuffle the bag.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		e.bag.rng = rng
	}
}

// WithSeed seeds the bag shuffle for reproducible piece sequences.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed)))
}

// Engine is the game state machine. It is not safe for concurrent use;
// exactly one driver should own it.
type Engine struct {
	cfg   Config
	board *Board
	bag   bag
	stats *Stats

	active   Piece
	hold     PieceType
	holdUsed bool

	score int
	lines int
	level int

	dropInterval time.Duration
	elapsed      time.Duration
	status       Status
}

// New creates an engine and starts a fresh game.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:   cfg,
		board: newBoard(cfg.Width, cfg.Height),
		stats: newStats(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.bag.rng == nil {
		e.bag.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	e.Reset()
	return e, nil
}

func (e *Engine) Config() Config { return e.cfg }
func (e *Engine) Status() Status { return e.status }

// Stats returns the live per-game counters. Callers must not modify them.
func (e *Engine) Stats() *Stats { return e.stats }

// Reset clears the board, bag, hold slot and counters and spawns a piece.
func (e *Engine) Reset() {
	e.board.clear()
	e.bag.reset()
	e.stats.reset()
	e.hold = None
	e.holdUsed = false
	e.score = 0
	e.lines = 0
	e.level = 1
	e.dropInterval = e.cfg.DropInterval(1)
	e.elapsed = 0
	e.status = Running
	e.spawn()
}

// Tick advances gravity by dt. Once the accumulated time reaches the drop
// interval the active piece moves down one row, or locks if it cannot.
// Time spent paused or after game over is not accumulated.
func (e *Engine) Tick(dt time.Duration) {
	if e.status != Running {
		return
	}
	e.elapsed += dt
	if e.elapsed < e.dropInterval {
		return
	}
	e.elapsed = 0
	if !e.tryMove(0, 1) {
		e.lock()
	}
}

// Command applies one player input. Gameplay commands are ignored unless
// the game is running; TogglePause and Restart are accepted in any state.
func (e *Engine) Command(c Command) {
	if !c.Valid() {
		panic(fmt.Sprintf("tetris: unknown command %d", uint8(c)))
	}

	switch c {
	case TogglePause:
		e.togglePause()
		return
	case Restart:
		e.Reset()
		return
	}

	if e.status != Running {
		return
	}

	switch c {
	case MoveLeft:
		e.tryMove(-1, 0)
	case MoveRight:
		e.tryMove(1, 0)
	case RotateCW:
		e.rotate(1)
	case RotateCCW:
		e.rotate(-1)
	case SoftDrop:
		e.softDrop()
	case HardDrop:
		e.hardDrop()
	case Hold:
		e.doHold()
	}
}

func (e *Engine) togglePause() {
	switch e.status {
	case Running:
		e.status = Paused
	case Paused:
		e.status = Running
	}
}

func (e *Engine) spawnPosition(t PieceType) Piece {
	return Piece{Type: t, X: e.cfg.Width/2 - 2, Y: -1}
}

// place puts t at the spawn position; a collision there ends the game.
func (e *Engine) place(t PieceType) {
	e.active = e.spawnPosition(t)
	if !e.board.Fits(e.active) {
		e.status = GameOver
	}
}

func (e *Engine) spawn() {
	t := e.bag.take()
	e.stats.recordSpawn(t)
	e.holdUsed = false
	e.place(t)
}

func (e *Engine) tryMove(dx, dy int) bool {
	next := e.active.moved(dx, dy)
	if !e.board.Fits(next) {
		return false
	}
	e.active = next
	return true
}

func (e *Engine) rotate(dir int) {
	rotation := (e.active.Rotation + dir + 4) & 3
	for _, k := range kicks {
		next := e.active.moved(k, 0)
		next.Rotation = rotation
		if e.board.Fits(next) {
			e.active = next
			return
		}
	}
}

func (e *Engine) softDrop() {
	e.stats.SoftDrops++
	if e.tryMove(0, 1) {
		e.score++
		return
	}
	e.lock()
}

func (e *Engine) hardDrop() {
	e.stats.HardDrops++
	dy := e.board.dropDistance(e.active)
	e.active.Y += dy
	e.score += 2 * dy
	e.lock()
}

// doHold stashes the active piece. The flag is set after any spawn the
// hold triggers, so hold stays unavailable until the next lock.
func (e *Engine) doHold() {
	if e.holdUsed {
		return
	}
	e.stats.Holds++

	current := e.active.Type
	if e.hold == None {
		e.hold = current
		e.spawn()
	} else {
		swapped := e.hold
		e.hold = current
		e.place(swapped)
	}
	e.holdUsed = true
}

// lock writes the active piece into the board, clears lines and spawns the
// next piece. Cells above the board are discarded.
func (e *Engine) lock() {
	for _, c := range e.active.Cells() {
		if c.Y >= 0 {
			e.board.set(c.X, c.Y, e.active.Type)
		}
	}
	e.award(e.board.clearLines())
	e.spawn()
}

func (e *Engine) award(cleared int) {
	if cleared == 0 {
		return
	}
	e.stats.recordClear(cleared)
	e.lines += cleared
	e.score += lineScores[cleared] * e.level

	level := 1 + e.lines/e.cfg.LinesPerLevel
	if level != e.level {
		e.level = level
		e.dropInterval = e.cfg.DropInterval(level)
	}
}

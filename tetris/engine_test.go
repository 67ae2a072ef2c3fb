package tetris

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t testing.TB, cfg Config) *Engine {
	t.Helper()
	e, err := New(cfg, WithSeed(42))
	require.NoError(t, err)
	return e
}

// setActive replaces the active piece without going through the bag.
func setActive(e *Engine, pt PieceType, rotation, x, y int) {
	e.active = Piece{Type: pt, Rotation: rotation, X: x, Y: y}
}

func TestNew(t *testing.T) {
	t.Run("starts a running game", func(t *testing.T) {
		e := newTestEngine(t, DefaultConfig())
		snap := e.Snapshot()

		assert.Equal(t, Running, snap.Status)
		assert.Equal(t, 1, snap.Level)
		assert.Equal(t, 0, snap.Score)
		assert.Equal(t, 0, snap.Lines)
		assert.Equal(t, 800*time.Millisecond, snap.DropInterval)
		assert.Equal(t, None, snap.Held)
		assert.True(t, snap.Next.Valid())
		assert.Equal(t, Piece{Type: snap.Active.Type, X: 3, Y: -1}, snap.Active)
		assert.Len(t, snap.Board, 20)
		assert.Len(t, snap.Board[0], 10)
	})

	t.Run("rejects invalid config", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Width = 2
		_, err := New(cfg)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("spawn column follows width", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Width = 7
		e := newTestEngine(t, cfg)
		assert.Equal(t, 1, e.Snapshot().Active.X)
	})
}

func TestSpawnOrderUsesBag(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())

	order := []PieceType{e.active.Type}
	for range 7*20 - 1 {
		next := e.Snapshot().Next
		e.spawn()
		require.Equal(t, next, e.active.Type)
		order = append(order, e.active.Type)
	}

	for start := 0; start < len(order); start += 7 {
		seen := make(map[PieceType]bool)
		for _, pt := range order[start : start+7] {
			seen[pt] = true
		}
		assert.Len(t, seen, 7, "window starting at %d", start)
	}
}

func TestMove(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())
	setActive(e, PieceO, 0, 3, 5)

	e.Command(MoveLeft)
	assert.Equal(t, 2, e.active.X)

	e.Command(MoveRight)
	e.Command(MoveRight)
	assert.Equal(t, 4, e.active.X)

	t.Run("blocked by wall is a no-op", func(t *testing.T) {
		// O occupies columns 1-2 of its box.
		setActive(e, PieceO, 0, -1, 5)
		before := e.Snapshot()
		e.Command(MoveLeft)
		assert.Equal(t, before, e.Snapshot())
	})

	t.Run("blocked by stack is a no-op", func(t *testing.T) {
		e.board.set(6, 6, PieceJ)
		setActive(e, PieceO, 0, 3, 5)
		e.Command(MoveRight)
		assert.Equal(t, 3, e.active.X)
	})
}

func TestRotate(t *testing.T) {
	t.Run("free rotation keeps column", func(t *testing.T) {
		e := newTestEngine(t, DefaultConfig())
		setActive(e, PieceT, 0, 3, 5)

		e.Command(RotateCW)
		assert.Equal(t, Piece{Type: PieceT, Rotation: 1, X: 3, Y: 5}, e.active)

		e.Command(RotateCCW)
		e.Command(RotateCCW)
		assert.Equal(t, Piece{Type: PieceT, Rotation: 3, X: 3, Y: 5}, e.active)
	})

	t.Run("kick right off the left wall", func(t *testing.T) {
		e := newTestEngine(t, DefaultConfig())
		// Rotation 1 only uses box columns 1-2, so x=-1 is legal; rotation 2
		// needs column 0 and the -1 kick is worse, so +1 must win.
		setActive(e, PieceT, 1, -1, 5)

		e.Command(RotateCW)
		assert.Equal(t, Piece{Type: PieceT, Rotation: 2, X: 0, Y: 5}, e.active)
	})

	t.Run("kick left off the right wall", func(t *testing.T) {
		e := newTestEngine(t, DefaultConfig())
		// Rotation 3 uses box columns 0-1; at x=8 those are columns 8-9.
		setActive(e, PieceT, 3, 8, 5)

		e.Command(RotateCCW)
		assert.Equal(t, Piece{Type: PieceT, Rotation: 2, X: 7, Y: 5}, e.active)
	})

	t.Run("two column kick for I", func(t *testing.T) {
		e := newTestEngine(t, DefaultConfig())
		// Rotation 1 uses box column 2, so x=-2 sits in board column 0.
		setActive(e, PieceI, 1, -2, 5)

		e.Command(RotateCW)
		assert.Equal(t, Piece{Type: PieceI, Rotation: 2, X: 0, Y: 5}, e.active)

		// Rotation 3 uses box column 1, so x=8 sits in board column 9.
		setActive(e, PieceI, 3, 8, 5)
		e.Command(RotateCCW)
		assert.Equal(t, Piece{Type: PieceI, Rotation: 2, X: 6, Y: 5}, e.active)
	})

	t.Run("rejected when every kick collides", func(t *testing.T) {
		e := newTestEngine(t, DefaultConfig())
		for y := 2; y < 20; y++ {
			fillRow(e.board, y, 4)
		}
		setActive(e, PieceI, 1, 2, 5)
		before := e.Snapshot()

		e.Command(RotateCW)
		assert.Equal(t, before, e.Snapshot())
	})
}

func TestSoftDrop(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())
	setActive(e, PieceO, 0, 3, 0)

	e.Command(SoftDrop)
	assert.Equal(t, 1, e.active.Y)
	assert.Equal(t, 1, e.score)

	t.Run("blocked soft drop locks immediately", func(t *testing.T) {
		setActive(e, PieceO, 0, 3, 18)
		e.Command(SoftDrop)

		assert.Equal(t, PieceO, e.board.At(4, 18))
		assert.Equal(t, PieceO, e.board.At(5, 19))
		assert.Equal(t, 1, e.score)
		assert.Equal(t, -1, e.active.Y)
	})
}

func TestHardDrop(t *testing.T) {
	t.Run("lands K rows lower for 2K points", func(t *testing.T) {
		e := newTestEngine(t, DefaultConfig())
		setActive(e, PieceI, 0, 3, -1)

		e.Command(HardDrop)

		assert.Equal(t, 38, e.score)
		for x := 3; x <= 6; x++ {
			assert.Equal(t, PieceI, e.board.At(x, 19))
		}
		assert.Equal(t, 1, e.stats.HardDrops)
	})

	t.Run("stops on the stack", func(t *testing.T) {
		e := newTestEngine(t, DefaultConfig())
		e.board.set(5, 10, PieceL)
		setActive(e, PieceO, 0, 3, 2)

		e.Command(HardDrop)

		// O fills box rows 0-1, so it rests with its bottom on row 9.
		assert.Equal(t, 2*6, e.score)
		assert.Equal(t, PieceO, e.board.At(4, 8))
		assert.Equal(t, PieceO, e.board.At(5, 9))
	})

	t.Run("zero distance still locks", func(t *testing.T) {
		e := newTestEngine(t, DefaultConfig())
		setActive(e, PieceO, 0, 3, 18)

		e.Command(HardDrop)
		assert.Equal(t, 0, e.score)
		assert.Equal(t, PieceO, e.board.At(4, 19))
	})
}

func TestLineClearScoring(t *testing.T) {
	t.Run("single", func(t *testing.T) {
		e := newTestEngine(t, DefaultConfig())
		fillRow(e.board, 19, 3, 4, 5, 6)
		setActive(e, PieceI, 0, 3, -1)

		e.Command(HardDrop)

		assert.Equal(t, 1, e.lines)
		assert.Equal(t, 38+100, e.score)
		for x := range 10 {
			assert.Equal(t, None, e.board.At(x, 19))
		}
	})

	t.Run("tetris", func(t *testing.T) {
		e := newTestEngine(t, DefaultConfig())
		for y := 16; y < 20; y++ {
			fillRow(e.board, y, 9)
		}
		// Vertical I uses box column 2.
		setActive(e, PieceI, 1, 7, -1)

		e.Command(HardDrop)

		assert.Equal(t, 4, e.lines)
		assert.Equal(t, 2*17+800, e.score)
		assert.Equal(t, 1, e.stats.Tetrises)
		assert.Equal(t, 4, e.stats.MaxClear)
	})

	t.Run("non-adjacent pair", func(t *testing.T) {
		e := newTestEngine(t, DefaultConfig())
		fillRow(e.board, 19, 9)
		fillRow(e.board, 18, 8, 9)
		fillRow(e.board, 17, 9)
		setActive(e, PieceI, 1, 7, -1)

		e.Command(HardDrop)

		assert.Equal(t, 2, e.lines)
		assert.Equal(t, 2*17+300, e.score)
		// Old row 18 is now the bottom row with the I cell in column 9.
		assert.Equal(t, None, e.board.At(8, 19))
		assert.Equal(t, PieceI, e.board.At(9, 19))
		assert.Equal(t, PieceZ, e.board.At(0, 19))
		// Old row 16 held only the top of the I.
		assert.Equal(t, PieceI, e.board.At(9, 18))
		assert.Equal(t, None, e.board.At(0, 18))
	})

	t.Run("score multiplies by level", func(t *testing.T) {
		e := newTestEngine(t, DefaultConfig())
		e.level = 3
		fillRow(e.board, 19, 3, 4, 5, 6)
		setActive(e, PieceI, 0, 3, 18)

		e.Command(HardDrop)
		assert.Equal(t, 300, e.score)
	})
}

// clearSingle sets up and clears exactly one row with a hard-dropped I.
func clearSingle(e *Engine) {
	fillRow(e.board, 19, 3, 4, 5, 6)
	setActive(e, PieceI, 0, 3, 18)
	e.Command(HardDrop)
}

func TestLeveling(t *testing.T) {
	t.Run("level two after ten lines", func(t *testing.T) {
		e := newTestEngine(t, DefaultConfig())
		for range 9 {
			clearSingle(e)
		}
		assert.Equal(t, 1, e.level)
		assert.Equal(t, 800*time.Millisecond, e.dropInterval)

		clearSingle(e)
		assert.Equal(t, 10, e.lines)
		assert.Equal(t, 2, e.level)
		assert.Equal(t, 740*time.Millisecond, e.dropInterval)
		assert.Equal(t, 1000, e.score)

		clearSingle(e)
		assert.Equal(t, 1200, e.score)
	})

	t.Run("interval floors at minimum", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.DropStart = 100 * time.Millisecond
		e := newTestEngine(t, cfg)
		for range 10 {
			clearSingle(e)
		}
		assert.Equal(t, 2, e.level)
		assert.Equal(t, 90*time.Millisecond, e.dropInterval)
	})

	t.Run("interval is monotonic", func(t *testing.T) {
		cfg := DefaultConfig()
		prev := cfg.DropInterval(1)
		for level := 2; level < 30; level++ {
			next := cfg.DropInterval(level)
			assert.LessOrEqual(t, next, prev)
			assert.GreaterOrEqual(t, next, cfg.DropMin)
			prev = next
		}
	})
}

func TestHold(t *testing.T) {
	t.Run("first hold stores and spawns", func(t *testing.T) {
		e := newTestEngine(t, DefaultConfig())
		first := e.active.Type
		next := e.Snapshot().Next

		e.Command(Hold)

		assert.Equal(t, first, e.hold)
		assert.Equal(t, next, e.active.Type)
		assert.True(t, e.holdUsed)
	})

	t.Run("second hold before lock is a no-op", func(t *testing.T) {
		e := newTestEngine(t, DefaultConfig())
		e.Command(Hold)
		before := e.Snapshot()

		e.Command(Hold)

		assert.Equal(t, before, e.Snapshot())
		assert.Equal(t, 1, e.stats.Holds)
	})

	t.Run("swap after lock recentres", func(t *testing.T) {
		e := newTestEngine(t, DefaultConfig())
		e.Command(Hold)
		held := e.hold

		e.Command(HardDrop)
		current := e.active.Type
		e.Command(MoveLeft)
		e.Command(RotateCW)

		e.Command(Hold)

		assert.Equal(t, Piece{Type: held, X: 3, Y: -1}, e.active)
		assert.Equal(t, current, e.hold)

		before := e.Snapshot()
		e.Command(Hold)
		assert.Equal(t, before, e.Snapshot())
	})

	t.Run("swap into blocked spawn ends the game", func(t *testing.T) {
		e := newTestEngine(t, DefaultConfig())
		e.hold = PieceI
		setActive(e, PieceO, 0, 0, 10)
		fillRow(e.board, 0, 0)

		e.Command(Hold)
		assert.Equal(t, GameOver, e.status)
	})
}

func TestGravity(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())
	setActive(e, PieceO, 0, 3, 0)

	e.Tick(500 * time.Millisecond)
	assert.Equal(t, 0, e.active.Y)

	e.Tick(300 * time.Millisecond)
	assert.Equal(t, 1, e.active.Y)

	t.Run("accumulator restarts after a step", func(t *testing.T) {
		e.Tick(799 * time.Millisecond)
		assert.Equal(t, 1, e.active.Y)
		e.Tick(time.Millisecond)
		assert.Equal(t, 2, e.active.Y)
	})

	t.Run("blocked gravity locks", func(t *testing.T) {
		setActive(e, PieceO, 0, 3, 18)
		e.Tick(time.Second)
		assert.Equal(t, PieceO, e.board.At(4, 19))
		assert.Equal(t, -1, e.active.Y)
	})

	t.Run("gravity does not score", func(t *testing.T) {
		assert.Equal(t, 0, e.score)
	})
}

func TestPause(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())

	e.Command(TogglePause)
	assert.Equal(t, Paused, e.Status())
	before := e.Snapshot()

	for _, c := range []Command{MoveLeft, MoveRight, RotateCW, RotateCCW, SoftDrop, HardDrop, Hold} {
		e.Command(c)
	}
	e.Tick(10 * time.Second)
	assert.Equal(t, before, e.Snapshot())

	e.Command(TogglePause)
	assert.Equal(t, Running, e.Status())

	t.Run("paused time is not accumulated", func(t *testing.T) {
		y := e.active.Y
		e.Tick(799 * time.Millisecond)
		assert.Equal(t, y, e.active.Y)
	})
}

func TestBlockOut(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())
	fillRow(e.board, 0, 9)

	e.spawn()
	require.Equal(t, GameOver, e.Status())

	frozen := e.Snapshot()
	e.Tick(time.Hour)
	for _, c := range []Command{MoveLeft, MoveRight, RotateCW, RotateCCW, SoftDrop, HardDrop, Hold, TogglePause} {
		e.Command(c)
		e.Tick(time.Second)
	}
	assert.Equal(t, frozen, e.Snapshot())

	t.Run("restart recovers", func(t *testing.T) {
		e.Command(Restart)
		snap := e.Snapshot()
		assert.Equal(t, Running, snap.Status)
		assert.NoError(t, snap.Validate())
		for _, row := range snap.Board {
			for _, c := range row {
				assert.Equal(t, None, c)
			}
		}
	})
}

func TestReset(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())
	for range 9 {
		clearSingle(e)
	}
	clearSingle(e)
	e.Command(Hold)
	e.Command(TogglePause)

	e.Reset()

	snap := e.Snapshot()
	assert.Equal(t, Running, snap.Status)
	assert.Equal(t, 0, snap.Score)
	assert.Equal(t, 0, snap.Lines)
	assert.Equal(t, 1, snap.Level)
	assert.Equal(t, 800*time.Millisecond, snap.DropInterval)
	assert.Equal(t, None, snap.Held)
	assert.False(t, e.holdUsed)
	assert.Equal(t, 1, e.stats.Pieces)
	assert.Equal(t, 1, e.stats.Spawned(snap.Active.Type))
}

func TestUnknownCommandPanics(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())
	assert.PanicsWithValue(t, "tetris: unknown command 200", func() {
		e.Command(Command(200))
	})
}

func TestInvariantUnderRandomPlay(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())
	rng := e.bag.rng
	gameplay := []Command{MoveLeft, MoveRight, RotateCW, RotateCCW, SoftDrop, SoftDrop, HardDrop, Hold}

	for i := range 20000 {
		if e.Status() == GameOver {
			e.Reset()
		}
		if rng.IntN(4) == 0 {
			e.Tick(e.dropInterval)
		} else {
			e.Command(gameplay[rng.IntN(len(gameplay))])
		}
		require.NoError(t, e.Snapshot().Validate(), "step %d", i)
	}
}

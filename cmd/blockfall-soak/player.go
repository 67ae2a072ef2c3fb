package main

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/plus3/blockfall/tetris"
)

// gameplay is weighted towards movement so pieces spread across the board.
var gameplay = []tetris.Command{
	tetris.MoveLeft, tetris.MoveLeft, tetris.MoveRight, tetris.MoveRight,
	tetris.RotateCW, tetris.RotateCCW,
	tetris.SoftDrop, tetris.SoftDrop,
	tetris.HardDrop,
	tetris.Hold,
}

// checkEvery is how many steps run between context checks.
const checkEvery = 1024

// WorkerResult summarises one player's run.
type WorkerResult struct {
	Seed      uint64
	Steps     int64
	Games     int
	Pieces    int64
	Lines     int64
	Tetrises  int64
	BestScore int
	BestBoard string
}

// Player drives one engine with random commands and checks the board
// invariant after every step.
type Player struct {
	engine *tetris.Engine
	rng    *rand.Rand
	seed   uint64
}

func NewPlayer(cfg tetris.Config, seed uint64) (*Player, error) {
	engine, err := tetris.New(cfg, tetris.WithSeed(seed))
	if err != nil {
		return nil, err
	}
	return &Player{
		engine: engine,
		rng:    rand.New(rand.NewPCG(seed, ^seed)),
		seed:   seed,
	}, nil
}

// Step applies one random command or gravity interval.
func (p *Player) Step() {
	if p.rng.IntN(5) == 0 {
		p.engine.Tick(p.engine.Snapshot().DropInterval)
		return
	}
	p.engine.Command(gameplay[p.rng.IntN(len(gameplay))])
}

// Play runs games back to back until ctx is done. It returns an error as
// soon as an invariant is violated.
func (p *Player) Play(ctx context.Context) (WorkerResult, error) {
	res := WorkerResult{Seed: p.seed}

	for {
		if res.Steps%checkEvery == 0 && ctx.Err() != nil {
			p.finishGame(&res)
			return res, nil
		}

		p.Step()
		res.Steps++

		snap := p.engine.Snapshot()
		if err := snap.Validate(); err != nil {
			return res, fmt.Errorf("seed %d step %d: %w\n%s", p.seed, res.Steps, err, snap)
		}
		if snap.Status == tetris.GameOver {
			p.finishGame(&res)
			p.engine.Reset()
		}
	}
}

func (p *Player) finishGame(res *WorkerResult) {
	snap := p.engine.Snapshot()
	stats := p.engine.Stats()

	res.Games++
	res.Pieces += int64(stats.Pieces)
	res.Lines += int64(snap.Lines)
	res.Tetrises += int64(stats.Tetrises)
	if snap.Score > res.BestScore || res.BestBoard == "" {
		res.BestScore = snap.Score
		res.BestBoard = snap.String()
	}
}

package tetris

import "github.com/kamstrup/intmap"

// Stats counts per-game activity. It is cleared by Reset.
type Stats struct {
	spawned *intmap.Map[PieceType, int]

	Pieces    int
	Holds     int
	SoftDrops int
	HardDrops int
	Tetrises  int
	MaxClear  int // most lines cleared by a single lock
}

func newStats() *Stats {
	return &Stats{spawned: intmap.New[PieceType, int](pieceCount)}
}

// Spawned returns how many pieces of type t have spawned this game.
func (s *Stats) Spawned(t PieceType) int {
	n, _ := s.spawned.Get(t)
	return n
}

func (s *Stats) recordSpawn(t PieceType) {
	n, _ := s.spawned.Get(t)
	s.spawned.Put(t, n+1)
	s.Pieces++
}

func (s *Stats) recordClear(lines int) {
	if lines == 4 {
		s.Tetrises++
	}
	s.MaxClear = max(s.MaxClear, lines)
}

func (s *Stats) reset() {
	s.spawned.Clear()
	s.Pieces = 0
	s.Holds = 0
	s.SoftDrops = 0
	s.HardDrops = 0
	s.Tetrises = 0
	s.MaxClear = 0
}

package tetris

import "math/rand/v2"

// bag is the 7-bag randomizer. A full shuffled set is appended whenever
// fewer than seven pieces remain, so the draw order is a concatenation of
// permutations of AllPieces.
type bag struct {
	rng   *rand.Rand
	queue []PieceType
}

func (b *bag) reset() {
	b.queue = b.queue[:0]
}

func (b *bag) refill() {
	if len(b.queue) >= pieceCount {
		return
	}
	set := AllPieces
	b.rng.Shuffle(len(set), func(i, j int) {
		set[i], set[j] = set[j], set[i]
	})
	b.queue = append(b.queue, set[:]...)
}

func (b *bag) take() PieceType {
	b.refill()
	t := b.queue[0]
	b.queue = b.queue[1:]
	b.refill()
	return t
}

// peek returns the head of the queue. take leaves at least seven pieces
// queued, so peek never has to shuffle.
func (b *bag) peek() PieceType {
	if len(b.queue) == 0 {
		return None
	}
	return b.queue[0]
}

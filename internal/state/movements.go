package state

import (
	"iter"
	"math/bits"
)

var (
	// neighbors1[sq] is the bitmap of squares at distance exactly 1 of sq: duplication targets and the
	// blobs converted when landing on sq.
	neighbors1 [NumSquares]uint64

	// neighbors2[sq] is the bitmap of squares at distance exactly 2 of sq: jump targets.
	neighbors2 [NumSquares]uint64

	// within2[sq] = neighbors1[sq] | neighbors2[sq].
	within2 [NumSquares]uint64
)

func init() {
	for sq := Square(0); sq < NumSquares; sq++ {
		for other := Square(0); other < NumSquares; other++ {
			switch sq.Distance(other) {
			case 1:
				neighbors1[sq] |= bit(other)
			case 2:
				neighbors2[sq] |= bit(other)
			}
		}
		within2[sq] = neighbors1[sq] | neighbors2[sq]
	}
}

// reach returns the union of masks[sq] for every sq set in bitmap.
func reach(bitmap uint64, masks *[NumSquares]uint64) (result uint64) {
	for ; bitmap != 0; bitmap &= bitmap - 1 {
		result |= masks[bits.TrailingZeros64(bitmap)]
	}
	return
}

// Movements enumerates the legal movements of the NextPlayer lazily.
//
// The order is stable: first the duplications by increasing target square, then the jumps by increasing
// source and target squares. An empty sequence means the player has to pass (see Skip) or the match is over.
func (b Board) Movements() iter.Seq[Movement] {
	return func(yield func(Movement) bool) {
		own := b.blobs[b.NextPlayer]
		empty := b.Empty()
		for targets := reach(own, &neighbors1) & empty; targets != 0; targets &= targets - 1 {
			if !yield(Movement{From: NoSquare, To: Square(bits.TrailingZeros64(targets))}) {
				return
			}
		}
		for sources := own; sources != 0; sources &= sources - 1 {
			from := Square(bits.TrailingZeros64(sources))
			for targets := neighbors2[from] & empty; targets != 0; targets &= targets - 1 {
				if !yield(Movement{From: from, To: Square(bits.TrailingZeros64(targets))}) {
					return
				}
			}
		}
	}
}

// NumMovements returns the number of legal movements of the NextPlayer.
func (b Board) NumMovements() (count int) {
	own := b.blobs[b.NextPlayer]
	empty := b.Empty()
	count = bits.OnesCount64(reach(own, &neighbors1) & empty)
	for sources := own; sources != 0; sources &= sources - 1 {
		count += bits.OnesCount64(neighbors2[bits.TrailingZeros64(sources)] & empty)
	}
	return
}

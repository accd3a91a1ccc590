// Package state implements the Blobwar board: an 8x8 grid where two players duplicate and jump their blobs,
// converting the opponent's blobs adjacent to where they land.
//
// Board is a small value type (a few bitboards), so it is copied on every move and can be shared freely
// across goroutines: Play never mutates its receiver.
package state

import (
	"fmt"
	"math/bits"
)

const (
	// NumPlayers is always 2.
	NumPlayers = 2

	// BoardSize is the width and height of the board.
	BoardSize = 8

	// NumSquares on the board, including holes.
	NumSquares = BoardSize * BoardSize

	// MaxValue is the largest absolute value returned by Board.Value.
	MaxValue = 63
)

// PlayerNum is either 0 (red, first to move) or 1 (blue).
type PlayerNum uint8

const (
	PlayerFirst PlayerNum = iota
	PlayerSecond

	// PlayerInvalid represents an invalid PlayerNum, and it is used as "no winner" on draws.
	PlayerInvalid
)

var playerNames = [...]string{"Red", "Blue", "Invalid"}

// String returns the color of the player.
func (p PlayerNum) String() string {
	if int(p) >= len(playerNames) {
		return fmt.Sprintf("PlayerNum(%d)", p)
	}
	return playerNames[p]
}

// Opponent of the player.
func (p PlayerNum) Opponent() PlayerNum {
	return 1 - p
}

// Square indexes a cell of the board: rank*BoardSize + file, with a1 == 0 and h8 == 63.
type Square uint8

// NoSquare is used as the source of duplications, since the source blob doesn't matter.
const NoSquare Square = NumSquares

// SquareAt returns the square at the given file (column, 0-7) and rank (row, 0-7).
func SquareAt(file, rank int) Square {
	return Square(rank*BoardSize + file)
}

// File (column) of the square, from 0 to 7.
func (sq Square) File() int { return int(sq) % BoardSize }

// Rank (row) of the square, from 0 to 7.
func (sq Square) Rank() int { return int(sq) / BoardSize }

// Valid returns whether the square is on the board.
func (sq Square) Valid() bool { return sq < NumSquares }

// String returns the algebraic notation of the square, e.g. "a1".
func (sq Square) String() string {
	if !sq.Valid() {
		return "--"
	}
	return fmt.Sprintf("%c%d", 'a'+sq.File(), sq.Rank()+1)
}

// Distance is the Chebyshev (king move) distance between two squares.
func (sq Square) Distance(sq2 Square) int {
	return max(absInt(sq.File()-sq2.File()), absInt(sq.Rank()-sq2.Rank()))
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Movement is one legal move.
//
// A duplication creates a new blob at To, and it has From == NoSquare. A jump moves the blob at From to To,
// which are 2 squares apart.
type Movement struct {
	From, To Square
}

// IsJump returns whether the movement moves a blob, as opposed to duplicating one.
func (m Movement) IsJump() bool {
	return m.From != NoSquare
}

// String returns "c3" for a duplication to c3 and "a1c3" for a jump from a1 to c3.
func (m Movement) String() string {
	if !m.IsJump() {
		return m.To.String()
	}
	return m.From.String() + m.To.String()
}

// Encode packs the movement in 13 bits: To in the lower 6 bits, From in the next 7.
func (m Movement) Encode() uint16 {
	return uint16(m.To&0x3F) | uint16(m.From&0x7F)<<6
}

// DecodeMovement is the inverse of Movement.Encode.
func DecodeMovement(code uint16) Movement {
	return Movement{To: Square(code & 0x3F), From: Square((code >> 6) & 0x7F)}
}

// Board is a Blobwar position. It's a value type: it can be copied and compared with ==.
type Board struct {
	blobs      [NumPlayers]uint64
	holes      uint64
	NextPlayer PlayerNum
	MoveNumber int
}

// NewBoard returns the default starting position: red blobs at a1 and h8, blue blobs at h1 and a8,
// no holes and red to move.
func NewBoard() Board {
	var b Board
	b.blobs[PlayerFirst] = bit(SquareAt(0, 0)) | bit(SquareAt(7, 7))
	b.blobs[PlayerSecond] = bit(SquareAt(7, 0)) | bit(SquareAt(0, 7))
	b.MoveNumber = 1
	return b
}

func bit(sq Square) uint64 {
	return uint64(1) << sq
}

// PlayerAt returns the owner of the blob at sq, or PlayerInvalid if there is none.
func (b Board) PlayerAt(sq Square) PlayerNum {
	switch {
	case b.blobs[PlayerFirst]&bit(sq) != 0:
		return PlayerFirst
	case b.blobs[PlayerSecond]&bit(sq) != 0:
		return PlayerSecond
	}
	return PlayerInvalid
}

// IsHole returns whether sq is a hole, where no blob can ever be placed.
func (b Board) IsHole(sq Square) bool {
	return b.holes&bit(sq) != 0
}

// SetBlob places a blob of the given player at sq, or clears it if player is PlayerInvalid.
// It is meant for building positions, and it returns the modified copy.
func (b Board) SetBlob(sq Square, player PlayerNum) Board {
	b.blobs[PlayerFirst] &^= bit(sq)
	b.blobs[PlayerSecond] &^= bit(sq)
	b.holes &^= bit(sq)
	if player < NumPlayers {
		b.blobs[player] |= bit(sq)
	}
	return b
}

// SetHole marks sq as a hole, removing any blob there, and returns the modified copy.
func (b Board) SetHole(sq Square) Board {
	b = b.SetBlob(sq, PlayerInvalid)
	b.holes |= bit(sq)
	return b
}

// Count returns the number of blobs of the player.
func (b Board) Count(player PlayerNum) int {
	return bits.OnesCount64(b.blobs[player])
}

// Empty returns the bitmap of squares with neither blobs nor holes.
func (b Board) Empty() uint64 {
	return ^(b.blobs[PlayerFirst] | b.blobs[PlayerSecond] | b.holes)
}

// Play returns a new Board with the movement applied and the turn passed to the opponent.
// The movement is assumed legal.
func (b Board) Play(m Movement) Board {
	player := b.NextPlayer
	opponent := player.Opponent()
	if m.IsJump() {
		b.blobs[player] &^= bit(m.From)
	}
	b.blobs[player] |= bit(m.To)
	converted := b.blobs[opponent] & neighbors1[m.To]
	b.blobs[opponent] &^= converted
	b.blobs[player] |= converted
	b.NextPlayer = opponent
	b.MoveNumber++
	return b
}

// Skip returns a new Board where the next player passes the turn. Used when there are no movements available.
func (b Board) Skip() Board {
	b.NextPlayer = b.NextPlayer.Opponent()
	b.MoveNumber++
	return b
}

// Value of the position from the point of view of the player who just moved (the opponent of NextPlayer):
// the difference of blob counts, clamped to [-MaxValue, MaxValue].
//
// Searchers negate it whenever they need the point of view of NextPlayer.
func (b Board) Value() int {
	mover := b.NextPlayer.Opponent()
	v := b.Count(mover) - b.Count(b.NextPlayer)
	return min(max(v, -MaxValue), MaxValue)
}

// CanMove returns whether the player has any movement available.
func (b Board) CanMove(player PlayerNum) bool {
	return reach(b.blobs[player], &within2)&b.Empty() != 0
}

// IsFinished returns whether the match is over: one of the players has no blobs, or no one can move.
func (b Board) IsFinished() bool {
	if b.blobs[PlayerFirst] == 0 || b.blobs[PlayerSecond] == 0 {
		return true
	}
	return !b.CanMove(PlayerFirst) && !b.CanMove(PlayerSecond)
}

// Winner returns the player with more blobs, or PlayerInvalid on a draw.
// It doesn't check whether the match is finished.
func (b Board) Winner() PlayerNum {
	first, second := b.Count(PlayerFirst), b.Count(PlayerSecond)
	switch {
	case first > second:
		return PlayerFirst
	case second > first:
		return PlayerSecond
	}
	return PlayerInvalid
}

// IsValid returns whether m is one of the board movements.
func (b Board) IsValid(m Movement) bool {
	for valid := range b.Movements() {
		if valid == m {
			return true
		}
	}
	return false
}

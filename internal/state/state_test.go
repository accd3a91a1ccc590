package state_test

import (
	"slices"
	"testing"

	. "github.com/blobwar/blobwarGo/internal/state"
	. "github.com/blobwar/blobwarGo/internal/state/statetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func movementStrings(b Board) []string {
	var moves []string
	for m := range b.Movements() {
		moves = append(moves, m.String())
	}
	return moves
}

func TestNewBoard(t *testing.T) {
	b := NewBoard()
	assert.Equal(t, 2, b.Count(PlayerFirst))
	assert.Equal(t, 2, b.Count(PlayerSecond))
	assert.Equal(t, PlayerFirst, b.PlayerAt(SquareAt(0, 0)))
	assert.Equal(t, PlayerFirst, b.PlayerAt(SquareAt(7, 7)))
	assert.Equal(t, PlayerSecond, b.PlayerAt(SquareAt(7, 0)))
	assert.Equal(t, PlayerSecond, b.PlayerAt(SquareAt(0, 7)))
	assert.Equal(t, 0, b.Value())
	assert.False(t, b.IsFinished())

	// Each corner blob duplicates to 3 squares and jumps to 5.
	assert.Equal(t, 2*3+2*5, b.NumMovements())
	assert.Len(t, movementStrings(b), b.NumMovements())
}

func TestMovementsOrder(t *testing.T) {
	b := BuildBoard([]BlobOnBoard{{"a1", PlayerFirst}, {"h8", PlayerSecond}}, PlayerFirst)
	want := []string{"b1", "a2", "b2", "a1c1", "a1c2", "a1a3", "a1b3", "a1c3"}
	assert.Equal(t, want, movementStrings(b))

	// Stops early when the consumer stops.
	var first []Movement
	for m := range b.Movements() {
		first = append(first, m)
		if len(first) == 2 {
			break
		}
	}
	assert.Len(t, first, 2)
}

func TestPlayDuplicateAndConvert(t *testing.T) {
	b := BuildBoard([]BlobOnBoard{
		{"a1", PlayerFirst},
		{"c3", PlayerSecond},
		{"c2", PlayerSecond},
		{"h8", PlayerSecond},
	}, PlayerFirst)
	m, err := ParseMovement("b2")
	require.NoError(t, err)
	require.True(t, b.IsValid(m))

	next := b.Play(m)
	assert.Equal(t, PlayerFirst, next.PlayerAt(must(ParseSquare("a1"))))
	assert.Equal(t, PlayerFirst, next.PlayerAt(must(ParseSquare("b2"))))
	assert.Equal(t, PlayerFirst, next.PlayerAt(must(ParseSquare("c3"))))
	assert.Equal(t, PlayerFirst, next.PlayerAt(must(ParseSquare("c2"))))
	assert.Equal(t, PlayerSecond, next.PlayerAt(must(ParseSquare("h8"))))
	assert.Equal(t, PlayerSecond, next.NextPlayer)
	assert.Equal(t, 4-1, next.Value(), "value is from the point of view of red, who just moved")

	// The receiver is untouched.
	assert.Equal(t, PlayerInvalid, b.PlayerAt(must(ParseSquare("b2"))))
	assert.Equal(t, PlayerFirst, b.NextPlayer)
}

func TestPlayJump(t *testing.T) {
	b := BuildBoard([]BlobOnBoard{{"a1", PlayerFirst}, {"d4", PlayerSecond}}, PlayerFirst)
	m, err := ParseMovement("a1c3")
	require.NoError(t, err)
	require.True(t, m.IsJump())
	require.True(t, b.IsValid(m))
	next := b.Play(m)
	assert.Equal(t, PlayerInvalid, next.PlayerAt(must(ParseSquare("a1"))))
	assert.Equal(t, PlayerFirst, next.PlayerAt(must(ParseSquare("c3"))))
	assert.Equal(t, PlayerFirst, next.PlayerAt(must(ParseSquare("d4"))))
	assert.Equal(t, 2, next.Count(PlayerFirst))
	assert.True(t, next.IsFinished())
	assert.Equal(t, PlayerFirst, next.Winner())
}

func TestValueZeroSum(t *testing.T) {
	b := NewBoard()
	for m := range b.Movements() {
		child := b.Play(m)
		assert.Equal(t, -child.Value(), child.Skip().Value(), "swapping roles must invert the value")
	}
}

func TestValueClamped(t *testing.T) {
	b := FromRows(PlayerSecond, slices.Repeat([]string{"RRRRRRRR"}, BoardSize)...)
	assert.Equal(t, MaxValue, b.Value())
	assert.Equal(t, -MaxValue, b.Skip().Value())
}

func TestNoMovements(t *testing.T) {
	b := FromRows(PlayerSecond,
		"RRR.....",
		"RBR.....",
		"RRR.....",
		"........",
		"........",
		"........",
		"........",
		"........")
	// Blue is fully surrounded, but it can still jump.
	assert.True(t, b.CanMove(PlayerSecond))

	b = FromRows(PlayerSecond,
		"RRRRRRRR",
		"RRRRRRRR",
		"RRRBRRRR",
		"RRRRRRRR",
		"RRRRRRRR",
		"RRRRRRRR",
		"RRRRRRRR",
		"RRRRRRR.")
	assert.False(t, b.CanMove(PlayerSecond))
	assert.Empty(t, movementStrings(b))
	assert.Equal(t, 0, b.NumMovements())
	assert.True(t, b.CanMove(PlayerFirst))
	assert.False(t, b.IsFinished())
	assert.Equal(t, PlayerFirst, b.Skip().NextPlayer)
}

func TestHoles(t *testing.T) {
	b := FromRows(PlayerFirst,
		"........",
		"........",
		"........",
		"........",
		"........",
		"##......",
		".#......",
		"R.......")
	assert.Equal(t, []string{"b1", "a2", "a1c1", "a1c2", "a1c3"}, movementStrings(b))
}

func TestStringAndParse(t *testing.T) {
	b := NewBoard().SetHole(SquareAt(3, 3)).Skip()
	text := b.String()
	assert.Equal(t, "B......R\n........\n........\n........\n...#....\n........\n........\nR......B\nB\n", text)
	parsed, err := Parse(text)
	require.NoError(t, err)
	assert.Equal(t, b.String(), parsed.String())
	assert.Equal(t, b.NextPlayer, parsed.NextPlayer)

	_, err = Parse("R......B\nB")
	assert.Error(t, err)
	_, err = Parse(strings8("x.......") + "R")
	assert.Error(t, err)
	_, err = Parse(strings8("........") + "X")
	assert.Error(t, err)
}

func strings8(row string) (text string) {
	for range BoardSize {
		text += row + "\n"
	}
	return
}

func TestParseMovement(t *testing.T) {
	m, err := ParseMovement("c3")
	require.NoError(t, err)
	assert.Equal(t, Movement{From: NoSquare, To: SquareAt(2, 2)}, m)

	m, err = ParseMovement("a1 c3")
	require.NoError(t, err)
	assert.Equal(t, Movement{From: SquareAt(0, 0), To: SquareAt(2, 2)}, m)

	// Adjacent source is normalized to a duplication.
	m, err = ParseMovement("b2c3")
	require.NoError(t, err)
	assert.False(t, m.IsJump())

	for _, invalid := range []string{"", "z9", "a1c", "a9b1"} {
		_, err = ParseMovement(invalid)
		assert.Errorf(t, err, "movement %q should fail to parse", invalid)
	}
}

func TestEncodeMovement(t *testing.T) {
	for m := range NewBoard().Movements() {
		assert.Equal(t, m, DecodeMovement(m.Encode()))
	}
	dup := Movement{From: NoSquare, To: SquareAt(7, 7)}
	assert.Equal(t, dup, DecodeMovement(dup.Encode()))
}

func must(sq Square, err error) Square {
	if err != nil {
		panic(err)
	}
	return sq
}

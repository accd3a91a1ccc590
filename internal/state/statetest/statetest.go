// Package statetest provides helper functions to create tests using Blobwar state.
package statetest

import (
	. "github.com/blobwar/blobwarGo/internal/state"
	"github.com/janpfeifer/must"
	"strings"
)

// BlobOnBoard represents the position and ownership of a blob on the board.
type BlobOnBoard struct {
	Square string
	Player PlayerNum
}

// BuildBoard from a collection of blobs on an otherwise empty board.
func BuildBoard(layout []BlobOnBoard, next PlayerNum) (b Board) {
	b.NextPlayer = next
	b.MoveNumber = 1
	for _, blob := range layout {
		b = b.SetBlob(must.M1(ParseSquare(blob.Square)), blob.Player)
	}
	return
}

// FromRows builds a board from its 8 rows (rank 8 first) in the format of Board.String. It panics on
// malformed input.
func FromRows(next PlayerNum, rows ...string) Board {
	text := strings.Join(rows, "\n") + "\n" + string(PlayerChars[next])
	return must.M1(Parse(text))
}

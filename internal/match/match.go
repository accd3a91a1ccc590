// Package match runs a battle between two players: it alternates their moves, handles passes and
// detects the end of the game.
package match

import (
	"context"
	"time"

	"github.com/blobwar/blobwarGo/internal/players"
	. "github.com/blobwar/blobwarGo/internal/state"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Observer is notified of every step of the battle. Any of its fields can be nil.
type Observer struct {
	// OnMove is called after player played move, board is the new position.
	OnMove func(board Board, player PlayerNum, move Movement, elapsed time.Duration)

	// OnPass is called when player had no movements, board is the position after the pass.
	OnPass func(board Board, player PlayerNum)
}

// Reason why a battle ended.
type Reason int

const (
	// Finished means a player has no blobs, or no one can move.
	Finished Reason = iota

	// DoublePass means both players passed in a row.
	DoublePass

	// MaxMoves means the limit of moves was reached.
	MaxMoves
)

var reasonNames = [...]string{"finished", "both players passed", "max moves reached"}

// String implements fmt.Stringer.
func (r Reason) String() string {
	return reasonNames[r]
}

// Result of a battle.
type Result struct {
	Board    Board
	NumMoves int
	Reason   Reason
}

// Battle between two players.
type Battle struct {
	players  [NumPlayers]players.Player
	maxMoves int
	observer Observer
}

// New creates a battle where first plays red and second plays blue.
func New(first, second players.Player) *Battle {
	return &Battle{players: [NumPlayers]players.Player{first, second}}
}

// WithMaxMoves limits the number of moves (passes included). 0 means no limit.
func (b *Battle) WithMaxMoves(maxMoves int) *Battle {
	b.maxMoves = maxMoves
	return b
}

// WithObserver sets the observer of the battle.
func (b *Battle) WithObserver(observer Observer) *Battle {
	b.observer = observer
	return b
}

// Run the battle from board until the end. The context is checked between moves.
//
// It returns an error if a player returns an invalid movement, or if ctx is cancelled: the Result then has
// the last position.
func (b *Battle) Run(ctx context.Context, board Board) (result Result, err error) {
	passes := 0
	for {
		result.Board = board
		switch {
		case board.IsFinished():
			result.Reason = Finished
			return
		case passes >= NumPlayers:
			result.Reason = DoublePass
			return
		case b.maxMoves > 0 && result.NumMoves >= b.maxMoves:
			result.Reason = MaxMoves
			return
		}
		if err = ctx.Err(); err != nil {
			return
		}

		player := board.NextPlayer
		start := time.Now()
		move, found := b.players[player].ComputeNextMove(board)
		elapsed := time.Since(start)
		result.NumMoves++
		if !found {
			passes++
			board = board.Skip()
			if b.observer.OnPass != nil {
				b.observer.OnPass(board, player)
			}
			continue
		}
		if !board.IsValid(move) {
			err = errors.Errorf("%s player %v returned invalid movement %s at move #%d",
				player, b.players[player], move, board.MoveNumber)
			return
		}
		passes = 0
		board = board.Play(move)
		if klog.V(1).Enabled() {
			klog.Infof("Move #%d: %s played %s in %s", board.MoveNumber-1, player, move, elapsed)
		}
		if b.observer.OnMove != nil {
			b.observer.OnMove(board, player, move, elapsed)
		}
	}
}

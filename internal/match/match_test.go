package match_test

import (
	"context"
	"testing"
	"time"

	"github.com/blobwar/blobwarGo/internal/match"
	"github.com/blobwar/blobwarGo/internal/players"
	"github.com/blobwar/blobwarGo/internal/searchers"
	"github.com/blobwar/blobwarGo/internal/searchers/alphabeta"
	"github.com/blobwar/blobwarGo/internal/searchers/greedy"
	. "github.com/blobwar/blobwarGo/internal/state"
	. "github.com/blobwar/blobwarGo/internal/state/statetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var alwaysPass players.Player = searchers.StrategyFunc[Board, Movement](func(Board) (Movement, bool) {
	return Movement{}, false
})

func TestPassAndFinish(t *testing.T) {
	board := FromRows(PlayerSecond,
		"RRRRRRRR",
		"RRRRRRRR",
		"RRRBRRRR",
		"RRRRRRRR",
		"RRRRRRRR",
		"RRRRRRRR",
		"RRRRRRRR",
		"RRRRRRR.")
	var passes, moves []PlayerNum
	result, err := match.New(greedy.New[Board, Movement](), greedy.New[Board, Movement]()).
		WithObserver(match.Observer{
			OnMove: func(_ Board, player PlayerNum, move Movement, _ time.Duration) {
				moves = append(moves, player)
				assert.Equal(t, "h1", move.String())
			},
			OnPass: func(_ Board, player PlayerNum) { passes = append(passes, player) },
		}).
		Run(context.Background(), board)
	require.NoError(t, err)
	assert.Equal(t, match.Finished, result.Reason)
	assert.Equal(t, 2, result.NumMoves)
	assert.Equal(t, []PlayerNum{PlayerSecond}, passes)
	assert.Equal(t, []PlayerNum{PlayerFirst}, moves)
	assert.Equal(t, PlayerFirst, result.Board.Winner())
	assert.Equal(t, NumSquares-1, result.Board.Count(PlayerFirst))
}

func TestDoublePass(t *testing.T) {
	result, err := match.New(alwaysPass, alwaysPass).Run(context.Background(), NewBoard())
	require.NoError(t, err)
	assert.Equal(t, match.DoublePass, result.Reason)
	assert.Equal(t, 2, result.NumMoves)
	assert.Equal(t, PlayerFirst, result.Board.NextPlayer)
}

func TestMaxMoves(t *testing.T) {
	result, err := match.New(alphabeta.New[Board, Movement](2), greedy.New[Board, Movement]()).
		WithMaxMoves(4).
		Run(context.Background(), NewBoard())
	require.NoError(t, err)
	assert.Equal(t, match.MaxMoves, result.Reason)
	assert.Equal(t, 4, result.NumMoves)
	assert.Equal(t, 5, result.Board.MoveNumber)
	assert.Equal(t, "max moves reached", result.Reason.String())
}

func TestInvalidMovement(t *testing.T) {
	cheater := searchers.StrategyFunc[Board, Movement](func(Board) (Movement, bool) {
		return Movement{From: NoSquare, To: SquareAt(4, 4)}, true
	})
	result, err := match.New(cheater, greedy.New[Board, Movement]()).Run(context.Background(), NewBoard())
	require.Error(t, err)
	assert.Equal(t, NewBoard(), result.Board)
}

func TestCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := match.New(greedy.New[Board, Movement](), greedy.New[Board, Movement]()).Run(ctx, NewBoard())
	assert.ErrorIs(t, err, context.Canceled)
}

package anytime_test

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/blobwar/blobwarGo/internal/searchers"
	"github.com/blobwar/blobwarGo/internal/searchers/alphabeta"
	"github.com/blobwar/blobwarGo/internal/searchers/anytime"
	"github.com/blobwar/blobwarGo/internal/searchers/minmax"
	. "github.com/blobwar/blobwarGo/internal/searchers/searcherstest"
	"github.com/blobwar/blobwarGo/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder is a Register that keeps every stored value.
type recorder[M any] struct {
	moves []M
	found []bool
}

func (r *recorder[M]) Store(move M, found bool) {
	r.moves = append(r.moves, move)
	r.found = append(r.found, found)
}

func TestPublishesEveryDepth(t *testing.T) {
	board := state.NewBoard()
	legal := slices.Collect(board.Movements())
	var depths []int
	driver := anytime.New(func(depth int) searchers.Strategy[state.Board, state.Movement] {
		return alphabeta.New[state.Board, state.Movement](depth)
	}).WithMaxDepth(3).WithProgress(func(depth int, move state.Movement, found bool, _ time.Duration) {
		depths = append(depths, depth)
	})
	reg := &recorder[state.Movement]{}
	assert.Equal(t, 3, driver.Run(context.Background(), board, reg))
	assert.Equal(t, []int{1, 2, 3}, depths)
	require.Len(t, reg.moves, 3)
	for ii, move := range reg.moves {
		assert.True(t, reg.found[ii])
		assert.Contains(t, legal, move, "depth %d published an illegal move", ii+1)
	}

	// The published values match the fixed-depth searches.
	for depth := 1; depth <= 3; depth++ {
		move, _ := minmax.New[state.Board, state.Movement](depth).ComputeNextMove(board)
		assert.Equal(t, move, reg.moves[depth-1])
	}
}

func TestSeedDepth(t *testing.T) {
	var depths []int
	driver := anytime.New(func(depth int) searchers.Strategy[*Node, int] {
		depths = append(depths, depth)
		return minmax.New[*Node, int](depth)
	}).WithSeedDepth(2).WithMaxDepth(4)
	assert.Equal(t, 2, driver.SeedDepth())
	reg := &recorder[int]{}
	driver.Run(context.Background(), Random(7, 4, 3), reg)
	assert.Equal(t, []int{2, 3, 4}, depths)
	assert.Len(t, reg.moves, 3)
}

func TestCancelledBetweenDepths(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	driver := anytime.New(func(depth int) searchers.Strategy[*Node, int] {
		return minmax.New[*Node, int](depth)
	}).WithProgress(func(depth int, _ int, _ bool, _ time.Duration) {
		if depth == 2 {
			cancel()
		}
	})
	reg := &recorder[int]{}
	assert.Equal(t, 2, driver.Run(ctx, Leaves(2, 3, 5, 2, 9), reg))
	assert.Equal(t, []int{0, 0}, reg.moves)
}

func TestNoMovements(t *testing.T) {
	driver := anytime.New(func(depth int) searchers.Strategy[*Node, int] {
		t.Fatal("no search expected without movements")
		return nil
	})
	reg := &recorder[int]{}
	assert.Equal(t, 0, driver.Run(context.Background(), Root(Leaf(3)), reg))
	assert.Equal(t, []bool{false}, reg.found)
}

func TestSingleMovePublishedFirst(t *testing.T) {
	driver := anytime.New(func(depth int) searchers.Strategy[*Node, int] {
		return minmax.New[*Node, int](depth)
	}).WithMaxDepth(1)
	reg := &recorder[int]{}
	driver.Run(context.Background(), Root(Branch(0, Leaf(1))), reg)
	assert.Equal(t, []int{0, 0}, reg.moves)
	assert.Equal(t, []bool{true, true}, reg.found)
}

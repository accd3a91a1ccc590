package minmax_test

import (
	"testing"

	"github.com/blobwar/blobwarGo/internal/parallel"
	"github.com/blobwar/blobwarGo/internal/parameters"
	"github.com/blobwar/blobwarGo/internal/searchers"
	"github.com/blobwar/blobwarGo/internal/searchers/minmax"
	. "github.com/blobwar/blobwarGo/internal/searchers/searcherstest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ searchers.Strategy[*Node, int] = minmax.New[*Node, int](1)

func TestMinMax(t *testing.T) {
	tree := Leaves(2, 3, 5, 2, 9)
	for _, pool := range []*parallel.Pool{nil, parallel.New(1), parallel.New(8)} {
		mm := minmax.New[*Node, int](2).WithPool(pool)
		best, found := mm.Search(tree)
		require.True(t, found)
		assert.Equal(t, 0, best.Move)
		assert.Equal(t, 3, best.Score)
		assert.Equal(t, int64(6), mm.Stats().Nodes())
		assert.Equal(t, int64(4), mm.Stats().Leaves())
	}
}

func TestTieBreak(t *testing.T) {
	// All three branches are worth 4: the first one is chosen, however the evaluation is scheduled.
	tree := Leaves(3, 4, 6, 5, 9, 4, 7, 4, 8, 9)
	for range 20 {
		mm := minmax.New[*Node, int](2).WithPool(parallel.New(3))
		move, found := mm.ComputeNextMove(tree)
		require.True(t, found)
		assert.Equal(t, 0, move)
	}
}

func TestShallowerThanTree(t *testing.T) {
	// Depth 1 only looks at the values of the children.
	tree := Root(Branch(0,
		Branch(1, Leaf(-10)),
		Branch(2, Leaf(-20))))
	best, _ := minmax.New[*Node, int](1).Search(tree)
	assert.Equal(t, searchers.Scored[int]{Move: 1, Score: 2}, best)

	// Depth 3 on a tree of depth 2: the root player is left without movements in both branches, the worst
	// possible outcome, and the first movement is kept.
	best, _ = minmax.New[*Node, int](3).Search(tree)
	assert.Equal(t, searchers.Scored[int]{Move: 0, Score: searchers.MinValue}, best)
}

func TestNewFromParams(t *testing.T) {
	params := parameters.NewFromConfigString("minmax,max_depth=4,parallel=none")
	mm, err := minmax.NewFromParams[*Node, int](params)
	require.NoError(t, err)
	require.NotNil(t, mm)
	assert.Equal(t, 4, mm.MaxDepth())
	assert.Empty(t, params)
	assert.Equal(t, "Min - Max (max level: 4)", mm.String())

	mm, err = minmax.NewFromParams[*Node, int](parameters.NewFromConfigString("greedy"))
	require.NoError(t, err)
	assert.Nil(t, mm)

	_, err = minmax.NewFromParams[*Node, int](parameters.NewFromConfigString("minmax,max_depth=x"))
	assert.Error(t, err)
	_, err = minmax.NewFromParams[*Node, int](parameters.NewFromConfigString("minmax,parallel=root"))
	assert.Error(t, err)
}

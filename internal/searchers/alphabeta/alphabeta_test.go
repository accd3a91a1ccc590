package alphabeta_test

import (
	"testing"

	"github.com/blobwar/blobwarGo/internal/parallel"
	"github.com/blobwar/blobwarGo/internal/parameters"
	"github.com/blobwar/blobwarGo/internal/searchers"
	"github.com/blobwar/blobwarGo/internal/searchers/alphabeta"
	"github.com/blobwar/blobwarGo/internal/searchers/minmax"
	. "github.com/blobwar/blobwarGo/internal/searchers/searcherstest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ searchers.Strategy[*Node, int] = alphabeta.New[*Node, int](1)

	allModes = []alphabeta.Mode{alphabeta.Sequential, alphabeta.RootParallel, alphabeta.FullParallel}
)

func TestPruningKeepsAnswer(t *testing.T) {
	// max(min(3, 5), min(2, 9)) = 3, on the first branch.
	tree := Leaves(2, 3, 5, 2, 9)
	for _, mode := range allModes {
		ab := alphabeta.New[*Node, int](2).WithMode(mode).WithPool(parallel.New(4))
		best, found := ab.Search(tree)
		require.True(t, found)
		assert.Equalf(t, 0, best.Move, "mode=%s", mode)
		assert.Equalf(t, 3, best.Score, "mode=%s", mode)
	}
}

func TestPruningReducesWork(t *testing.T) {
	// After the first branch alpha=3, and the first leaf of the second branch (1) is already below it:
	// the leaf 9 is never evaluated.
	tree := Leaves(2, 3, 5, 1, 9)
	mm := minmax.New[*Node, int](2).WithPool(nil)
	mmBest, _ := mm.Search(tree)
	ab := alphabeta.New[*Node, int](2).WithMode(alphabeta.Sequential)
	abBest, _ := ab.Search(tree)

	assert.Equal(t, mmBest, abBest)
	assert.Equal(t, int64(tree.NumNodes()-1), mm.Stats().Nodes(), "minmax visits every node below the root")
	assert.Equal(t, int64(5), ab.Stats().Nodes())
	assert.Less(t, ab.Stats().Nodes(), mm.Stats().Nodes())
	assert.Equal(t, int64(1), ab.Stats().Cutoffs())

	// FullParallel drops pruning, and costs as much as MinMax.
	full := alphabeta.New[*Node, int](2).WithMode(alphabeta.FullParallel)
	_, _ = full.Search(tree)
	assert.Equal(t, mm.Stats().Nodes(), full.Stats().Nodes())
	assert.Equal(t, int64(0), full.Stats().Cutoffs())
}

func TestFailHighBelowRoot(t *testing.T) {
	// Depth 3: in each branch, the first leaf of the opponent's second reply is already better than what the
	// opponent got with its first reply, so the remaining leaf is cut.
	tree := Root(Branch(0,
		Branch(0, Branch(0, Leaf(1), Leaf(2)), Branch(0, Leaf(3), Leaf(4))),
		Branch(0, Branch(0, Leaf(8), Leaf(0)), Branch(0, Leaf(9), Leaf(-5)))))
	mm := minmax.New[*Node, int](3).WithPool(nil)
	mmBest, _ := mm.Search(tree)
	for _, mode := range allModes {
		ab := alphabeta.New[*Node, int](3).WithMode(mode)
		best, found := ab.Search(tree)
		require.True(t, found)
		assert.Equalf(t, mmBest, best, "mode=%s", mode)
		if mode != alphabeta.FullParallel {
			assert.Equalf(t, int64(2), ab.Stats().Cutoffs(), "mode=%s", mode)
		}
	}
	assert.Equal(t, 1, mmBest.Move)
	assert.Equal(t, 8, mmBest.Score)
}

func TestModes(t *testing.T) {
	for _, mode := range allModes {
		parsed, err := alphabeta.ParseMode(mode.String())
		require.NoError(t, err)
		assert.Equal(t, mode, parsed)
	}
	_, err := alphabeta.ParseMode("sometimes")
	assert.Error(t, err)
}

func TestNewFromParams(t *testing.T) {
	params := parameters.NewFromConfigString("ab,max_depth=5,parallel=full")
	ab, err := alphabeta.NewFromParams[*Node, int](params)
	require.NoError(t, err)
	require.NotNil(t, ab)
	assert.Equal(t, 5, ab.MaxDepth())
	assert.Equal(t, alphabeta.FullParallel, ab.Mode())
	assert.Empty(t, params)

	params = parameters.NewFromConfigString("minmax,max_depth=5")
	ab, err = alphabeta.NewFromParams[*Node, int](params)
	require.NoError(t, err)
	assert.Nil(t, ab)
	assert.Len(t, params, 2)

	_, err = alphabeta.NewFromParams[*Node, int](parameters.NewFromConfigString("alphabeta,max_depth=0"))
	assert.Error(t, err)
	_, err = alphabeta.NewFromParams[*Node, int](parameters.NewFromConfigString("alphabeta,parallel=always"))
	assert.Error(t, err)
}

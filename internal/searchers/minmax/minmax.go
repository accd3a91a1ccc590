// Package minmax implements the exhaustive fixed-depth MinMax search.
//
// No branch depends on the result of another, so the children of every node (not only the root) are
// evaluated in parallel, using a shared parallel.Pool.
package minmax

import (
	"fmt"
	"slices"
	"time"

	"github.com/blobwar/blobwarGo/internal/parallel"
	"github.com/blobwar/blobwarGo/internal/searchers"
	"k8s.io/klog/v2"
)

// Searcher implements searchers.Strategy with the MinMax algorithm.
type Searcher[S searchers.State[S, M], M any] struct {
	maxDepth int
	pool     *parallel.Pool
	stats    searchers.Stats
}

// DefaultMaxDepth for search.
const DefaultMaxDepth = 3

// New returns a MinMax searcher exploring maxDepth plies, using parallel.Default.
// maxDepth must be >= 1.
func New[S searchers.State[S, M], M any](maxDepth int) *Searcher[S, M] {
	return &Searcher[S, M]{maxDepth: maxDepth, pool: parallel.Default}
}

// WithPool sets the pool used to evaluate children in parallel. A nil pool makes the search sequential.
func (mm *Searcher[S, M]) WithPool(pool *parallel.Pool) *Searcher[S, M] {
	mm.pool = pool
	return mm
}

// MaxDepth returns the depth of the search, in plies.
func (mm *Searcher[S, M]) MaxDepth() int {
	return mm.maxDepth
}

// Stats returns the counters of the work done so far.
func (mm *Searcher[S, M]) Stats() *searchers.Stats {
	return &mm.stats
}

// String implements fmt.Stringer.
func (mm *Searcher[S, M]) String() string {
	return fmt.Sprintf("Min - Max (max level: %d)", mm.maxDepth)
}

// ComputeNextMove implements searchers.Strategy.
func (mm *Searcher[S, M]) ComputeNextMove(state S) (move M, found bool) {
	best, found := mm.Search(state)
	return best.Move, found
}

// Search returns the root movement maximizing min(state.Play(move), maxDepth-1), along with its score.
// Ties are broken by enumeration order.
func (mm *Searcher[S, M]) Search(state S) (best searchers.Scored[M], found bool) {
	start := time.Now()
	moves := slices.Collect(state.Movements())
	scored := parallel.Map(mm.pool, len(moves), func(ii int) searchers.Scored[M] {
		return searchers.Scored[M]{Move: moves[ii], Score: mm.min(state.Play(moves[ii]), mm.maxDepth-1)}
	})
	best, found = searchers.Best(scored)
	if klog.V(2).Enabled() {
		elapsed := time.Since(start).Seconds()
		klog.Infof("%s: best=%v (score=%d, found=%v) stats=%s nodes/s=%.1f",
			mm, best.Move, best.Score, found, &mm.stats, float64(mm.stats.Nodes())/elapsed)
	}
	return
}

// children evaluates eval(child, depth) for every child of state. It returns nil if there are no movements.
func (mm *Searcher[S, M]) children(state S, depth int, eval func(S, int) int) []int {
	moves := slices.Collect(state.Movements())
	return parallel.Map(mm.pool, len(moves), func(ii int) int {
		return eval(state.Play(moves[ii]), depth)
	})
}

// max evaluates state from the point of view of its player to move.
// A player to move without movements below the root scores searchers.MinValue.
func (mm *Searcher[S, M]) max(state S, depth int) int {
	mm.stats.CountNode()
	if depth == 0 {
		// Value is from the opponent's point of view.
		mm.stats.CountLeaf()
		return -state.Value()
	}
	values := mm.children(state, depth-1, mm.min)
	if len(values) == 0 {
		return searchers.MinValue
	}
	return slices.Max(values)
}

// min evaluates state from the point of view of the opponent of its player to move.
// An opponent without movements below the root scores searchers.MaxValue.
func (mm *Searcher[S, M]) min(state S, depth int) int {
	mm.stats.CountNode()
	if depth == 0 {
		mm.stats.CountLeaf()
		return state.Value()
	}
	values := mm.children(state, depth-1, mm.max)
	if len(values) == 0 {
		return searchers.MaxValue
	}
	return slices.Min(values)
}

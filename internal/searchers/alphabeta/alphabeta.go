// Package alphabeta implements the fixed-depth MinMax search with alpha-beta pruning.
//
// Pruning needs the alpha/beta bounds threaded sequentially across the siblings of a node, which conflicts
// with evaluating the siblings in parallel. So the parallelism is an explicit Mode:
//
//   - Sequential: no parallelism, the bounds are threaded across the root movements too. Most pruning.
//   - RootParallel (default): root movements are evaluated in parallel, each with the full window
//     [searchers.MinValue, searchers.MaxValue]; below the root the search is sequential and prunes.
//   - FullParallel: children of every node are evaluated in parallel, and no pruning happens at all:
//     it costs as much as an exhaustive MinMax search.
//
// All modes select a movement with the same minimax score, and tie-breaking is always by enumeration order.
package alphabeta

import (
	"fmt"
	"slices"
	"time"

	"github.com/blobwar/blobwarGo/internal/parallel"
	"github.com/blobwar/blobwarGo/internal/searchers"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Mode of parallelization of the search, see package documentation.
type Mode int

const (
	Sequential Mode = iota
	RootParallel
	FullParallel
)

var modeNames = []string{"none", "root", "full"}

// String returns the name used in configurations: "none", "root" or "full".
func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode is the inverse of Mode.String.
func ParseMode(name string) (Mode, error) {
	idx := slices.Index(modeNames, name)
	if idx < 0 {
		return Sequential, errors.Errorf("unknown alphabeta parallel mode %q, valid values are %q", name, modeNames)
	}
	return Mode(idx), nil
}

// Searcher implements searchers.Strategy with alpha-beta pruning.
type Searcher[S searchers.State[S, M], M any] struct {
	maxDepth int
	mode     Mode
	pool     *parallel.Pool
	stats    searchers.Stats
}

// DefaultMaxDepth for search.
const DefaultMaxDepth = 3

// New returns an alpha-beta searcher exploring maxDepth plies (>= 1) in RootParallel mode, using
// parallel.Default.
//
// See: wikipedia.org/wiki/Alpha-beta_pruning
func New[S searchers.State[S, M], M any](maxDepth int) *Searcher[S, M] {
	return &Searcher[S, M]{maxDepth: maxDepth, mode: RootParallel, pool: parallel.Default}
}

// WithMode sets the parallelization mode. The default is RootParallel.
func (ab *Searcher[S, M]) WithMode(mode Mode) *Searcher[S, M] {
	ab.mode = mode
	return ab
}

// WithPool sets the pool used by the RootParallel and FullParallel modes.
// A nil pool evaluates sequentially, but the pruning is still decided by the mode.
func (ab *Searcher[S, M]) WithPool(pool *parallel.Pool) *Searcher[S, M] {
	ab.pool = pool
	return ab
}

// MaxDepth returns the depth of the search, in plies.
func (ab *Searcher[S, M]) MaxDepth() int { return ab.maxDepth }

// Mode returns the parallelization mode.
func (ab *Searcher[S, M]) Mode() Mode { return ab.mode }

// Stats returns the counters of the work done so far.
func (ab *Searcher[S, M]) Stats() *searchers.Stats { return &ab.stats }

// String implements fmt.Stringer.
func (ab *Searcher[S, M]) String() string {
	return fmt.Sprintf("Alpha - Beta (max level: %d, parallel: %s)", ab.maxDepth, ab.mode)
}

// ComputeNextMove implements searchers.Strategy.
func (ab *Searcher[S, M]) ComputeNextMove(state S) (move M, found bool) {
	best, found := ab.Search(state)
	return best.Move, found
}

// Search returns the root movement with the best minimax score, along with the score.
// Ties are broken by enumeration order.
func (ab *Searcher[S, M]) Search(state S) (best searchers.Scored[M], found bool) {
	start := time.Now()
	switch ab.mode {
	case Sequential:
		best, found = ab.searchSequential(state)
	default:
		moves := slices.Collect(state.Movements())
		scored := parallel.Map(ab.pool, len(moves), func(ii int) searchers.Scored[M] {
			child := state.Play(moves[ii])
			score := 0
			if ab.mode == FullParallel {
				score = ab.exhaustive(child, ab.maxDepth-1, -1)
			} else {
				score = ab.min(child, searchers.MinValue, searchers.MaxValue, ab.maxDepth-1)
			}
			return searchers.Scored[M]{Move: moves[ii], Score: score}
		})
		best, found = searchers.Best(scored)
	}
	if klog.V(2).Enabled() {
		elapsed := time.Since(start).Seconds()
		klog.Infof("%s: best=%v (score=%d, found=%v) stats=%s nodes/s=%.1f",
			ab, best.Move, best.Score, found, &ab.stats, float64(ab.stats.Nodes())/elapsed)
	}
	return
}

// searchSequential is the root of the search in Sequential mode: alpha is raised after each root movement,
// so later movements can be cut short. Their scores are then only upper bounds, never above the best
// score, so they never displace an earlier movement.
func (ab *Searcher[S, M]) searchSequential(state S) (best searchers.Scored[M], found bool) {
	alpha := searchers.MinValue
	for move := range state.Movements() {
		score := ab.min(state.Play(move), alpha, searchers.MaxValue, ab.maxDepth-1)
		if !found || score > best.Score {
			best = searchers.Scored[M]{Move: move, Score: score}
			found = true
		}
		alpha = max(alpha, score)
	}
	return
}

// max evaluates state from the point of view of its player to move, within the window [alpha, beta].
// A player to move without movements below the root scores searchers.MinValue.
func (ab *Searcher[S, M]) max(state S, alpha, beta, depth int) int {
	ab.stats.CountNode()
	if depth == 0 {
		ab.stats.CountLeaf()
		return -state.Value()
	}
	best := searchers.MinValue
	for move := range state.Movements() {
		value := ab.min(state.Play(move), alpha, beta, depth-1)
		if value >= beta {
			// Fail-high: the opponent won't let the game reach this state.
			ab.stats.CountCutoff()
			return value
		}
		best = max(best, value)
		alpha = max(alpha, value)
	}
	return best
}

// min evaluates state from the point of view of the opponent of its player to move, within [alpha, beta].
// An opponent without movements below the root scores searchers.MaxValue.
func (ab *Searcher[S, M]) min(state S, alpha, beta, depth int) int {
	ab.stats.CountNode()
	if depth == 0 {
		ab.stats.CountLeaf()
		return state.Value()
	}
	best := searchers.MaxValue
	for move := range state.Movements() {
		value := ab.max(state.Play(move), alpha, beta, depth-1)
		if value <= alpha {
			// Fail-low: we won't let the game reach this state.
			ab.stats.CountCutoff()
			return value
		}
		best = min(best, value)
		beta = min(beta, value)
	}
	return best
}

// exhaustive is the FullParallel evaluator: both perspectives in one function, sign is +1 when maximizing
// (the player to move is the root player) and -1 when minimizing. Children are evaluated in parallel and
// nothing is pruned.
func (ab *Searcher[S, M]) exhaustive(state S, depth, sign int) int {
	ab.stats.CountNode()
	if depth == 0 {
		ab.stats.CountLeaf()
		return -sign * state.Value()
	}
	moves := slices.Collect(state.Movements())
	if len(moves) == 0 {
		// MinValue when maximizing, MaxValue when minimizing.
		return -sign * searchers.MaxValue
	}
	values := parallel.Map(ab.pool, len(moves), func(ii int) int {
		// Multiplied by sign, so the reduction is always a max.
		return sign * ab.exhaustive(state.Play(moves[ii]), depth-1, -sign)
	})
	return sign * slices.Max(values)
}

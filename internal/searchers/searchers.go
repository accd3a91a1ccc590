// Package searchers defines the contracts shared by the search algorithms (greedy, minmax, alphabeta) and
// the anytime driver: the game state they search over and the Strategy they implement.
//
// The contracts are generic on the concrete state type S and movement type M, so the searchers work on
// any game whose state is an immutable value (see State), like state.Board.
package searchers

import (
	"fmt"
	"iter"
	"sync/atomic"

	"github.com/samber/lo"
)

// State is the game-state adapter consumed by the search algorithms.
//
// Implementations must be immutable: Play returns a new state and never changes the receiver, so the same
// state can be explored concurrently by different goroutines.
type State[S any, M any] interface {
	// Movements enumerates lazily the legal movements of the player to move, in a stable order.
	// An empty sequence means there is nothing to evaluate (pass or end of game).
	Movements() iter.Seq[M]

	// Play returns the state after the movement is applied.
	Play(move M) S

	// Value is the heuristic score of the state in [MinValue, MaxValue], from the point of view of the
	// player who just moved. Zero-sum: swapping the roles inverts the sign.
	Value() int
}

const (
	// MinValue and MaxValue bound State.Value, and they are the initial alpha-beta window.
	MinValue = -63
	MaxValue = 63
)

// Strategy computes one move for the player to move in the given state.
//
// found is false if and only if the state has no movements: this is a normal outcome (pass or end of game)
// that callers must handle, not an error.
type Strategy[S State[S, M], M any] interface {
	ComputeNextMove(state S) (move M, found bool)
}

// StrategyFunc adapts a function to the Strategy interface.
type StrategyFunc[S State[S, M], M any] func(state S) (M, bool)

// ComputeNextMove implements Strategy.
func (fn StrategyFunc[S, M]) ComputeNextMove(state S) (M, bool) {
	return fn(state)
}

// Scored is a movement along with its minimax score from the point of view of the player choosing it.
type Scored[M any] struct {
	Move  M
	Score int
}

// Best returns the first scored movement with the highest score: ties are broken by enumeration order,
// regardless of the order in which scores were computed.
func Best[M any](scored []Scored[M]) (best Scored[M], found bool) {
	if len(scored) == 0 {
		return
	}
	best = lo.MaxBy(scored, func(a, b Scored[M]) bool { return a.Score > b.Score })
	return best, true
}

// Stats counts the work done by a searcher. It is safe for concurrent use.
type Stats struct {
	// nodes is the number of evaluator invocations (each max/min call), including leaves.
	nodes atomic.Int64

	// leaves is the number of heuristic evaluations.
	leaves atomic.Int64

	// cutoffs is the number of fail-high and fail-low cutoffs (alpha-beta only).
	cutoffs atomic.Int64
}

// CountNode counts one node visited by the search, leaves included.
func (s *Stats) CountNode() { s.nodes.Add(1) }

// CountLeaf counts one heuristic evaluation, i.e. one call to State.Value.
func (s *Stats) CountLeaf() { s.leaves.Add(1) }

// CountCutoff counts one fail-high or fail-low cutoff.
func (s *Stats) CountCutoff() { s.cutoffs.Add(1) }

// Nodes returns the number of evaluator invocations so far.
func (s *Stats) Nodes() int64 { return s.nodes.Load() }

// Leaves returns the number of heuristic evaluations so far.
func (s *Stats) Leaves() int64 { return s.leaves.Load() }

// Cutoffs returns the number of pruned sibling lists so far.
func (s *Stats) Cutoffs() int64 { return s.cutoffs.Load() }

// Reset all counters to 0.
func (s *Stats) Reset() {
	s.nodes.Store(0)
	s.leaves.Store(0)
	s.cutoffs.Store(0)
}

// String implements fmt.Stringer.
func (s *Stats) String() string {
	return fmt.Sprintf("{nodes=%d, leaves=%d, cutoffs=%d}", s.Nodes(), s.Leaves(), s.Cutoffs())
}

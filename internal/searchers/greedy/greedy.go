// Package greedy implements the one-ply lookahead baseline: it plays the movement that yields the position
// with the best immediate value.
package greedy

import (
	"github.com/blobwar/blobwarGo/internal/searchers"
)

// Searcher implements searchers.Strategy. It has no state.
type Searcher[S searchers.State[S, M], M any] struct{}

// New returns the greedy strategy.
func New[S searchers.State[S, M], M any]() *Searcher[S, M] {
	return &Searcher[S, M]{}
}

// String implements fmt.Stringer.
func (g *Searcher[S, M]) String() string {
	return "Greedy"
}

// ComputeNextMove implements searchers.Strategy: it returns the movement maximizing state.Play(move).Value(),
// the first one in enumeration order on ties.
func (g *Searcher[S, M]) ComputeNextMove(state S) (move M, found bool) {
	bestValue := searchers.MinValue
	for candidate := range state.Movements() {
		value := state.Play(candidate).Value()
		if !found || value > bestValue {
			move, bestValue, found = candidate, value, true
		}
	}
	return
}

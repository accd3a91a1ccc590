// Package anytime implements the iterative deepening driver: it runs a fixed-depth searcher for depths
// seed, seed+1, ... and publishes the movement found after each completed depth to a Register.
//
// There is no natural end to the loop: it is meant to run in its own process until it is killed by a
// supervisor enforcing a wall-clock deadline, which then reads the last published movement. A search at
// one depth is never interrupted: only whole depth results are published. The context is checked only
// between depths, for tests and for callers that run it in-process.
package anytime

import (
	"context"
	"time"

	"github.com/blobwar/blobwarGo/internal/searchers"
	"k8s.io/klog/v2"
)

// Register receives the movement found after each completed depth. Store overwrites the previous value.
// found is false only if the state has no movements.
type Register[M any] interface {
	Store(move M, found bool)
}

// Factory creates the fixed-depth strategy used for the given depth.
type Factory[S searchers.State[S, M], M any] func(depth int) searchers.Strategy[S, M]

// ProgressFn is called after each completed depth, after the result is published.
type ProgressFn[M any] func(depth int, move M, found bool, elapsed time.Duration)

// DefaultSeedDepth is the first depth searched.
const DefaultSeedDepth = 1

// Driver configures the iterative deepening loop. Create it with New.
type Driver[S searchers.State[S, M], M any] struct {
	factory   Factory[S, M]
	seedDepth int
	maxDepth  int
	progress  ProgressFn[M]
}

// New returns an unbounded Driver that creates its strategies with factory.
func New[S searchers.State[S, M], M any](factory Factory[S, M]) *Driver[S, M] {
	return &Driver[S, M]{factory: factory, seedDepth: DefaultSeedDepth}
}

// WithSeedDepth sets the first depth searched. It must be >= 1.
func (d *Driver[S, M]) WithSeedDepth(depth int) *Driver[S, M] {
	d.seedDepth = max(depth, 1)
	return d
}

// WithMaxDepth makes Run return after completing the given depth. 0 (the default) means no limit.
func (d *Driver[S, M]) WithMaxDepth(depth int) *Driver[S, M] {
	d.maxDepth = depth
	return d
}

// WithProgress sets a function called after each depth is completed and published.
func (d *Driver[S, M]) WithProgress(progress ProgressFn[M]) *Driver[S, M] {
	d.progress = progress
	return d
}

// SeedDepth returns the first depth searched.
func (d *Driver[S, M]) SeedDepth() int { return d.seedDepth }

// MaxDepth returns the last depth searched, or 0 if unbounded.
func (d *Driver[S, M]) MaxDepth() int { return d.maxDepth }

// Run searches state at increasing depths, publishing each result to register. It returns the last
// completed depth when the context is done or the max depth is reached. Without a max depth and with a
// context that is never cancelled, it only returns if the state has no movements.
func (d *Driver[S, M]) Run(ctx context.Context, state S, register Register[M]) (depth int) {
	start := time.Now()
	numMoves := 0
	var onlyMove M
	for move := range state.Movements() {
		numMoves++
		onlyMove = move
		if numMoves > 1 {
			break
		}
	}
	switch numMoves {
	case 0:
		var noMove M
		register.Store(noMove, false)
		klog.V(1).Infof("anytime: no movements available")
		return 0
	case 1:
		// Nothing to choose, but it is published right away, before searching.
		register.Store(onlyMove, true)
	}

	for depth = d.seedDepth; d.maxDepth <= 0 || depth <= d.maxDepth; depth++ {
		if ctx.Err() != nil {
			return depth - 1
		}
		move, found := d.factory(depth).ComputeNextMove(state)
		register.Store(move, found)
		elapsed := time.Since(start)
		if klog.V(1).Enabled() {
			klog.Infof("anytime: depth %d completed in %s: move=%v", depth, elapsed, move)
		}
		if d.progress != nil {
			d.progress(depth, move, found, elapsed)
		}
	}
	return d.maxDepth
}

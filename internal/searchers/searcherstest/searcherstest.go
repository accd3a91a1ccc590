// Package searcherstest provides synthetic game trees to test the searchers with hand-picked values.
package searcherstest

import (
	"iter"
	"math/rand/v2"

	"github.com/blobwar/blobwarGo/internal/searchers"
)

// Node of a synthetic game tree. Movements are the indices of the children.
//
// It implements searchers.State[*Node, int].
type Node struct {
	// Score of the node from the point of view of the player to move at the root.
	Score int

	Children []*Node

	// ply is the distance from the root: odd plies were reached by a root player's movement.
	ply int
}

var _ searchers.State[*Node, int] = (*Node)(nil)

// Leaf returns a node without children.
func Leaf(score int) *Node {
	return &Node{Score: score}
}

// Branch returns an inner node with the given score and children.
func Branch(score int, children ...*Node) *Node {
	return &Node{Score: score, Children: children}
}

// Root marks n as the root of the tree, setting the plies of all its descendants. It returns n.
func Root(n *Node) *Node {
	var setPly func(n *Node, ply int)
	setPly = func(n *Node, ply int) {
		n.ply = ply
		for _, child := range n.Children {
			setPly(child, ply+1)
		}
	}
	setPly(n, 0)
	return n
}

// Leaves builds a uniform tree with the given branching factor whose leaves have the given scores, in
// enumeration order. len(leafScores) must be a power of branching. Inner nodes have score 0.
func Leaves(branching int, leafScores ...int) *Node {
	next := 0
	var build func(size int) *Node
	build = func(size int) *Node {
		if size == 1 {
			n := Leaf(leafScores[next])
			next++
			return n
		}
		n := Branch(0)
		for range branching {
			n.Children = append(n.Children, build(size/branching))
		}
		return n
	}
	return Root(build(len(leafScores)))
}

// Random builds a tree of the given depth and branching factor, with scores uniformly drawn
// in [searchers.MinValue, searchers.MaxValue] from a generator seeded with seed.
func Random(seed uint64, depth, branching int) *Node {
	rng := rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
	score := func() int {
		return searchers.MinValue + rng.IntN(searchers.MaxValue-searchers.MinValue+1)
	}
	var build func(depth int) *Node
	build = func(depth int) *Node {
		n := Leaf(score())
		if depth > 0 {
			for range branching {
				n.Children = append(n.Children, build(depth-1))
			}
		}
		return n
	}
	return Root(build(depth))
}

// Movements implements searchers.State.
func (n *Node) Movements() iter.Seq[int] {
	return func(yield func(int) bool) {
		for ii := range n.Children {
			if !yield(ii) {
				return
			}
		}
	}
}

// Play implements searchers.State.
func (n *Node) Play(move int) *Node {
	return n.Children[move]
}

// Value implements searchers.State: the score from the point of view of the player who just moved.
func (n *Node) Value() int {
	if n.ply%2 == 1 {
		return n.Score
	}
	return -n.Score
}

// NumNodes returns the number of nodes in the tree, n included.
func (n *Node) NumNodes() int {
	count := 1
	for _, child := range n.Children {
		count += child.NumNodes()
	}
	return count
}

// Package engine implements a scalar reverse-mode automatic differentiation engine.
//
// All nodes created during one forward pass live in a single arena (Graph).
// A Value is a small handle into that arena: the graph pointer plus a dense
// index. Dependencies between nodes are stored as indices, so the computation
// graph is implicit: it is whatever can be reached by following dependency
// edges backward from a root.
//
// Usage:
//
//	g := engine.NewGraph()
//	a, b, c := g.Leaf(2), g.Leaf(-3), g.Leaf(10)
//	d := a.Mul(b).Add(c) // d = a*b + c = 4
//	d.Backward()
//	fmt.Println(a.Grad(), b.Grad(), c.Grad()) // -3 2 1
//
// A Graph is not safe for concurrent use. Build one graph per goroutine.
package engine

import "fmt"

// node is the arena record behind a Value.
type node struct {
	data     float64
	grad     float64
	exponent float64 // literal exponent, OpPow only
	op       OpTag
	ndeps    uint8
	deps     [2]int32 // ordered operands, always lower indices than this node
}

// Graph is an arena holding every node of a computation graph.
//
// Parameters that must survive across training steps are created first;
// Mark records the arena size after them and Release(mark) drops everything
// built on top in one go.
type Graph struct {
	nodes []node
}

// Mark is an arena watermark returned by Graph.Mark.
type Mark int

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make([]node, 0, 256), // Pre-allocate for small networks
	}
}

// Len returns the number of nodes currently in the arena.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Mark returns the current arena size.
func (g *Graph) Mark() Mark {
	return Mark(len(g.nodes))
}

// Release truncates the arena back to m. Values created after the mark
// become stale and must not be used again. A stale Value whose id has been
// reused by a later node cannot be detected.
func (g *Graph) Release(m Mark) {
	if m < 0 || int(m) > len(g.nodes) {
		panic(fmt.Sprintf("engine: release mark %d out of range [0, %d]", m, len(g.nodes)))
	}
	g.nodes = g.nodes[:m]
}

// Reset drops every node in the arena.
func (g *Graph) Reset() {
	g.Release(0)
}

// ZeroGrad sets the gradient of every node in the arena to zero.
func (g *Graph) ZeroGrad() {
	for i := range g.nodes {
		g.nodes[i].grad = 0
	}
}

// Leaf wraps a raw number into a new leaf node with zero gradient.
func (g *Graph) Leaf(x float64) Value {
	return g.push(node{data: x, op: OpLeaf})
}

// Leaves wraps every number into its own leaf, preserving order.
func (g *Graph) Leaves(xs ...float64) []Value {
	out := make([]Value, len(xs))
	for i, x := range xs {
		out[i] = g.Leaf(x)
	}
	return out
}

// Nodes returns a handle for every node in the arena, in creation order.
func (g *Graph) Nodes() []Value {
	out := make([]Value, len(g.nodes))
	for i := range g.nodes {
		out[i] = Value{g: g, id: int32(i)}
	}
	return out
}

func (g *Graph) push(n node) Value {
	id := int32(len(g.nodes))
	g.nodes = append(g.nodes, n)
	return Value{g: g, id: id}
}

// at returns the node behind v after checking that v belongs to g and is live.
func (g *Graph) at(v Value) *node {
	g.check(v)
	return &g.nodes[v.id]
}

func (g *Graph) check(v Value) {
	if v.g == nil {
		panic("engine: use of zero Value")
	}
	if v.g != g {
		panic("engine: value belongs to a different graph")
	}
	if int(v.id) >= len(g.nodes) {
		panic(fmt.Sprintf("engine: stale value %d (graph has %d nodes)", v.id, len(g.nodes)))
	}
}

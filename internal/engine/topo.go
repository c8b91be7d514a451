package engine

// bitset is a fixed-size visited set over arena indices.
type bitset []uint64

func newBitset(n int) bitset {
	return make(bitset, (n+63)/64)
}

func (b bitset) set(i int32) {
	b[i>>6] |= 1 << (uint(i) & 63)
}

func (b bitset) test(i int32) bool {
	return b[i>>6]&(1<<(uint(i)&63)) != 0
}

// Topo returns every node reachable from root, each exactly once, with
// every dependency placed before the nodes that use it. The root is last.
func (g *Graph) Topo(root Value) []Value {
	g.check(root)
	ids := g.topoOrder(root.id)
	out := make([]Value, len(ids))
	for i, id := range ids {
		out[i] = Value{g: g, id: id}
	}
	return out
}

// topoOrder is a depth-first post-order walk from root, following
// dependencies in their stored order. It uses an explicit stack so long
// chains do not recurse.
func (g *Graph) topoOrder(root int32) []int32 {
	type frame struct {
		id   int32
		next uint8 // next dependency to visit
	}

	// Dependencies always have lower indices, so nothing above root is reachable.
	visited := newBitset(int(root) + 1)
	order := make([]int32, 0, 64)
	stack := make([]frame, 0, 64)

	visited.set(root)
	stack = append(stack, frame{id: root})
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		n := &g.nodes[top.id]
		if top.next < n.ndeps {
			dep := n.deps[top.next]
			top.next++
			if !visited.test(dep) {
				visited.set(dep)
				stack = append(stack, frame{id: dep})
			}
			continue
		}
		order = append(order, top.id)
		stack = stack[:len(stack)-1]
	}
	return order
}

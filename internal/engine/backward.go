package engine

// Backward computes the gradient of root with respect to every node it
// depends on.
//
// Algorithm:
//  1. Build the topological order of the graph rooted at root (once)
//  2. Reset the gradient of every reachable non-leaf node to zero
//  3. Seed root.grad = 1 (d root / d root)
//  4. Walk the order in reverse, applying each node's backward rule
//
// Leaf gradients are accumulated, never overwritten: calling Backward twice
// without zeroing leaves doubles them. Interior gradients are recomputed on
// every call. Nodes not reachable from root are left untouched.
func (g *Graph) Backward(root Value) {
	g.check(root)
	order := g.topoOrder(root.id)

	for _, id := range order {
		if g.nodes[id].op != OpLeaf {
			g.nodes[id].grad = 0
		}
	}
	g.nodes[root.id].grad = 1

	for i := len(order) - 1; i >= 0; i-- {
		n := g.nodes[order[i]]
		if rule := backwardRules[n.op]; rule != nil {
			rule(g.nodes, n)
		}
	}
}

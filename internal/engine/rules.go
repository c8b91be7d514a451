package engine

import "math"

// backwardRule adds the local chain-rule contribution of out into the
// gradients of its dependencies. out.grad is the upstream gradient.
type backwardRule func(nodes []node, out node)

// backwardRules is indexed by OpTag. Leaves have no rule.
var backwardRules = [numOps]backwardRule{
	OpLeaf: nil,
	OpAdd:  addBackward,
	OpMul:  mulBackward,
	OpPow:  powBackward,
	OpReLU: reluBackward,
	OpTanh: tanhBackward,
	OpExp:  expBackward,
	OpLog:  logBackward,
}

// d(a+b)/da = d(a+b)/db = 1.
func addBackward(nodes []node, out node) {
	nodes[out.deps[0]].grad += out.grad
	nodes[out.deps[1]].grad += out.grad
}

// d(a*b)/da = b, d(a*b)/db = a.
func mulBackward(nodes []node, out node) {
	a, b := &nodes[out.deps[0]], &nodes[out.deps[1]]
	a.grad += b.data * out.grad
	b.grad += a.data * out.grad
}

// d(a**p)/da = p * a**(p-1).
func powBackward(nodes []node, out node) {
	a := &nodes[out.deps[0]]
	a.grad += out.exponent * math.Pow(a.data, out.exponent-1) * out.grad
}

// Subgradient 0 at the kink: only a strictly positive output passes gradient.
func reluBackward(nodes []node, out node) {
	if out.data > 0 {
		nodes[out.deps[0]].grad += out.grad
	}
}

// d(tanh x)/dx = 1 - tanh(x)**2.
func tanhBackward(nodes []node, out node) {
	nodes[out.deps[0]].grad += (1 - out.data*out.data) * out.grad
}

// d(e**x)/dx = e**x.
func expBackward(nodes []node, out node) {
	nodes[out.deps[0]].grad += out.data * out.grad
}

// d(ln x)/dx = 1/x.
func logBackward(nodes []node, out node) {
	a := &nodes[out.deps[0]]
	a.grad += out.grad / a.data
}

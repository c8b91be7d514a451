package engine

import "fmt"

// Value is a handle to one scalar node of a Graph.
//
// Values are cheap to copy. Two Values are the same node only when they
// were obtained from the same creation call; equal data does not make
// them equal.
type Value struct {
	g  *Graph
	id int32
}

// Graph returns the graph v lives in.
func (v Value) Graph() *Graph {
	return v.g
}

// ID returns the arena index of v.
func (v Value) ID() int {
	return int(v.id)
}

// Valid reports whether v refers to a live node.
func (v Value) Valid() bool {
	return v.g != nil && int(v.id) < len(v.g.nodes)
}

// Data returns the forward value.
func (v Value) Data() float64 {
	return v.g.at(v).data
}

// SetData overwrites the forward value. Optimizers use it to apply updates
// to parameter leaves.
func (v Value) SetData(x float64) {
	v.g.at(v).data = x
}

// Grad returns the accumulated gradient.
func (v Value) Grad() float64 {
	return v.g.at(v).grad
}

// SetGrad overwrites the accumulated gradient.
func (v Value) SetGrad(x float64) {
	v.g.at(v).grad = x
}

// ZeroGrad resets the accumulated gradient to zero.
func (v Value) ZeroGrad() {
	v.g.at(v).grad = 0
}

// Op returns the tag of the operation that produced v.
func (v Value) Op() OpTag {
	return v.g.at(v).op
}

// Exponent returns the literal exponent of an OpPow node and false for
// every other operation.
func (v Value) Exponent() (float64, bool) {
	n := v.g.at(v)
	if n.op != OpPow {
		return 0, false
	}
	return n.exponent, true
}

// IsLeaf reports whether v has no dependencies.
func (v Value) IsLeaf() bool {
	return v.g.at(v).op == OpLeaf
}

// Deps returns the direct operands of v in order.
func (v Value) Deps() []Value {
	n := v.g.at(v)
	deps := make([]Value, n.ndeps)
	for i := range deps {
		deps[i] = Value{g: v.g, id: n.deps[i]}
	}
	return deps
}

// String implements fmt.Stringer.
func (v Value) String() string {
	if !v.Valid() {
		return "Value(invalid)"
	}
	n := v.g.nodes[v.id]
	return fmt.Sprintf("Value(data=%g, grad=%g)", n.data, n.grad)
}

// Backward runs backpropagation from v. See Graph.Backward.
func (v Value) Backward() {
	v.g.Backward(v)
}

// Topo returns the topological order of the graph rooted at v.
func (v Value) Topo() []Value {
	return v.g.Topo(v)
}

// Add returns v + o.
func (v Value) Add(o Operand) Value { return v.g.Add(v, o) }

// Sub returns v - o.
func (v Value) Sub(o Operand) Value { return v.g.Sub(v, o) }

// Mul returns v * o.
func (v Value) Mul(o Operand) Value { return v.g.Mul(v, o) }

// Div returns v / o.
func (v Value) Div(o Operand) Value { return v.g.Div(v, o) }

// Neg returns -v.
func (v Value) Neg() Value { return v.g.Neg(v) }

// Pow returns v raised to the literal exponent p.
func (v Value) Pow(p float64) Value {
	return v.g.pow(v, p)
}

// ReLU returns max(0, v).
func (v Value) ReLU() Value { return v.g.ReLU(v) }

// Tanh returns the hyperbolic tangent of v.
func (v Value) Tanh() Value { return v.g.Tanh(v) }

// Exp returns e**v.
func (v Value) Exp() Value { return v.g.Exp(v) }

// Log returns the natural logarithm of v.
func (v Value) Log() Value { return v.g.Log(v) }

// Softmax returns exp(v) / (1 + exp(v)).
func (v Value) Softmax() Value { return v.g.Softmax(v) }

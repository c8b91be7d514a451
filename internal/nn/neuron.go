package nn

import (
	"fmt"

	"github.com/born-ml/micrograd/internal/engine"
)

// Neuron computes act(b + Σ wᵢxᵢ).
type Neuron struct {
	w   []engine.Value
	b   engine.Value
	act Activation
}

// NewNeuron creates a neuron with nin weights on g. Weights are drawn
// first, then the bias.
func NewNeuron(g *engine.Graph, nin int, act Activation, init Initializer) *Neuron {
	w := make([]engine.Value, nin)
	for i := range w {
		w[i] = g.Leaf(init())
	}
	return &Neuron{
		w:   w,
		b:   g.Leaf(init()),
		act: act,
	}
}

// Forward computes the neuron output for x. Panics if len(x) differs from
// the number of weights.
func (n *Neuron) Forward(x []engine.Value) engine.Value {
	if len(x) != len(n.w) {
		panic(fmt.Sprintf("nn: neuron expects %d inputs, got %d", len(n.w), len(x)))
	}
	g := n.b.Graph()

	products := make([]engine.Value, len(x))
	for i, wi := range n.w {
		products[i] = wi.Mul(x[i])
	}
	return n.act.apply(g.Sum(n.b, products...))
}

// Activation returns the activation of the neuron.
func (n *Neuron) Activation() Activation {
	return n.act
}

// Parameters returns the weights followed by the bias.
func (n *Neuron) Parameters() []engine.Value {
	params := make([]engine.Value, 0, len(n.w)+1)
	params = append(params, n.w...)
	return append(params, n.b)
}

// String implements fmt.Stringer.
func (n *Neuron) String() string {
	return fmt.Sprintf("Neuron(%d, %s)", len(n.w), n.act)
}

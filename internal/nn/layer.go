package nn

import (
	"fmt"
	"strings"

	"github.com/born-ml/micrograd/internal/engine"
)

// Layer is a row of nout neurons, each reading the same nin inputs.
type Layer struct {
	neurons []*Neuron
}

// NewLayer creates a layer of nout neurons with nin inputs each.
func NewLayer(g *engine.Graph, nin, nout int, act Activation, init Initializer) *Layer {
	neurons := make([]*Neuron, nout)
	for i := range neurons {
		neurons[i] = NewNeuron(g, nin, act, init)
	}
	return &Layer{neurons: neurons}
}

// Forward returns one output per neuron.
func (l *Layer) Forward(x []engine.Value) []engine.Value {
	out := make([]engine.Value, len(l.neurons))
	for i, n := range l.neurons {
		out[i] = n.Forward(x)
	}
	return out
}

// Neurons returns the neurons of the layer.
func (l *Layer) Neurons() []*Neuron {
	return l.neurons
}

// Parameters returns the parameters of every neuron, neuron by neuron.
func (l *Layer) Parameters() []engine.Value {
	var params []engine.Value
	for _, n := range l.neurons {
		params = append(params, n.Parameters()...)
	}
	return params
}

// String implements fmt.Stringer.
func (l *Layer) String() string {
	parts := make([]string, len(l.neurons))
	for i, n := range l.neurons {
		parts[i] = n.String()
	}
	return fmt.Sprintf("Layer[%s]", strings.Join(parts, ", "))
}

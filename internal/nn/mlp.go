package nn

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/born-ml/micrograd/internal/engine"
	"github.com/born-ml/micrograd/internal/parallel"
)

// ErrWeightCount is returned by LoadWeights when the number of values does
// not match the number of parameters.
var ErrWeightCount = errors.New("weight count mismatch")

// MLP is a multi-layer perceptron. Hidden layers use ReLU, the last layer
// is linear.
//
// Example:
//
//	g := engine.NewGraph()
//	model := nn.NewMLP(g, 2, []int{16, 16, 1}, nn.Uniform(rng, -1, 1))
//	mark := g.Mark()
//	score := model.Forward(g.Leaves(0.5, -0.2))[0]
//	...
//	g.Release(mark)
type MLP struct {
	g      *engine.Graph
	nin    int
	nouts  []int
	layers []*Layer
	params []engine.Value
}

// NewMLP creates an MLP with nin inputs and one layer per entry of nouts.
func NewMLP(g *engine.Graph, nin int, nouts []int, init Initializer) *MLP {
	sizes := append([]int{nin}, nouts...)
	layers := make([]*Layer, len(nouts))
	for i := range nouts {
		act := ReLU
		if i == len(nouts)-1 {
			act = Linear
		}
		layers[i] = NewLayer(g, sizes[i], sizes[i+1], act, init)
	}

	m := &MLP{
		g:      g,
		nin:    nin,
		nouts:  append([]int(nil), nouts...),
		layers: layers,
	}
	for _, l := range layers {
		m.params = append(m.params, l.Parameters()...)
	}
	return m
}

// Graph returns the graph holding the parameters.
func (m *MLP) Graph() *engine.Graph {
	return m.g
}

// Inputs returns the number of inputs.
func (m *MLP) Inputs() int {
	return m.nin
}

// Outputs returns the layer sizes, the last entry being the output width.
func (m *MLP) Outputs() []int {
	return append([]int(nil), m.nouts...)
}

// Layers returns the layers in forward order.
func (m *MLP) Layers() []*Layer {
	return m.layers
}

// Forward propagates x through every layer.
func (m *MLP) Forward(x []engine.Value) []engine.Value {
	for _, l := range m.layers {
		x = l.Forward(x)
	}
	return x
}

// Parameters returns every weight and bias, layer by layer.
func (m *MLP) Parameters() []engine.Value {
	return m.params
}

// ZeroGrad resets every parameter gradient.
func (m *MLP) ZeroGrad() {
	ZeroGrad(m)
}

// Weights returns a copy of the parameter values in Parameters order.
func (m *MLP) Weights() []float64 {
	w := make([]float64, len(m.params))
	for i, p := range m.params {
		w[i] = p.Data()
	}
	return w
}

// LoadWeights overwrites the parameter values.
func (m *MLP) LoadWeights(w []float64) error {
	if len(w) != len(m.params) {
		return errors.WithMessagef(ErrWeightCount, "got %d values for %d parameters", len(w), len(m.params))
	}
	for i, p := range m.params {
		p.SetData(w[i])
	}
	return nil
}

// Replicate builds an identical network with the same weights on a new
// graph. Replicas are independent and can be used from another goroutine.
func (m *MLP) Replicate() *MLP {
	r := NewMLP(engine.NewGraph(), m.nin, m.nouts, Constant(0))
	for i, p := range m.params {
		r.params[i].SetData(p.Data())
	}
	return r
}

// Predict evaluates the network on raw inputs without keeping any nodes.
func (m *MLP) Predict(x []float64) []float64 {
	mark := m.g.Mark()
	defer m.g.Release(mark)

	out := m.Forward(m.g.Leaves(x...))
	y := make([]float64, len(out))
	for i, v := range out {
		y[i] = v.Data()
	}
	return y
}

// PredictBatch evaluates every row of xs, in parallel when cfg allows it.
// Each worker runs on its own replica.
func (m *MLP) PredictBatch(xs [][]float64, cfg parallel.Config) [][]float64 {
	ys := make([][]float64, len(xs))
	parallel.ForChunk(len(xs), func(start, end int) {
		r := m.Replicate()
		for i := start; i < end; i++ {
			ys[i] = r.Predict(xs[i])
		}
	}, cfg)
	return ys
}

// String implements fmt.Stringer.
func (m *MLP) String() string {
	parts := make([]string, len(m.layers))
	for i, l := range m.layers {
		parts[i] = l.String()
	}
	return fmt.Sprintf("MLP[%s]", strings.Join(parts, ", "))
}

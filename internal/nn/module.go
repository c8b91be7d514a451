// Package nn implements a small feed-forward neural network on top of the
// scalar autodiff engine.
//
// This package provides:
//   - Module interface: anything exposing trainable parameters
//   - Neuron: weighted sum plus bias with an optional activation
//   - Layer: a row of independent neurons sharing the same input
//   - MLP: stacked layers, ReLU on hidden layers and a linear output layer
//   - Losses: max-margin hinge, MSE, L2 regularisation, accuracy
//
// Parameters are leaf Values of the graph the module was built on. Build the
// module first, take a graph Mark, and release back to it after every
// training step so the parameters survive while the per-step nodes do not.
package nn

import "github.com/born-ml/micrograd/internal/engine"

// Module is the base interface for all network components.
type Module interface {
	// Parameters returns every trainable leaf, in a stable order.
	Parameters() []engine.Value
}

// ZeroGrad resets the gradient of every parameter of m.
func ZeroGrad(m Module) {
	for _, p := range m.Parameters() {
		p.ZeroGrad()
	}
}

// NumParams returns the number of scalar parameters of m.
func NumParams(m Module) int {
	return len(m.Parameters())
}

// Activation selects the non-linearity applied by a Neuron.
type Activation int

// Supported activations.
const (
	Linear Activation = iota
	ReLU
	Tanh
)

// String returns the activation name as used in configuration files.
func (a Activation) String() string {
	switch a {
	case Linear:
		return "linear"
	case ReLU:
		return "relu"
	case Tanh:
		return "tanh"
	default:
		return "unknown"
	}
}

// ParseActivation parses "linear", "relu" or "tanh".
func ParseActivation(s string) (Activation, bool) {
	switch s {
	case "linear", "":
		return Linear, true
	case "relu":
		return ReLU, true
	case "tanh":
		return Tanh, true
	default:
		return Linear, false
	}
}

func (a Activation) apply(v engine.Value) engine.Value {
	switch a {
	case ReLU:
		return v.ReLU()
	case Tanh:
		return v.Tanh()
	default:
		return v
	}
}

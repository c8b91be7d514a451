// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides neural network building blocks on top of the scalar
// autodiff engine.
//
// Example:
//
//	rng := rand.New(rand.NewSource(1337))
//	g := engine.NewGraph()
//	model := nn.NewMLP(g, 2, []int{16, 16, 1}, nn.Uniform(rng, -1, 1))
//
//	mark := g.Mark()
//	scores := make([]engine.Value, len(xs))
//	for i, x := range xs {
//	    scores[i] = model.Forward(g.Leaves(x...))[0]
//	}
//	loss := nn.HingeLoss(scores, ys).Add(nn.L2(g, model.Parameters(), 1e-4))
//	loss.Backward()
//	...
//	g.Release(mark)
package nn

import (
	"math/rand"

	"github.com/born-ml/micrograd/internal/engine"
	"github.com/born-ml/micrograd/internal/nn"
)

// Module is anything that owns trainable parameters.
type Module = nn.Module

// Activation selects the non-linearity applied by a Neuron.
type Activation = nn.Activation

// Supported activations.
const (
	Linear = nn.Linear
	ReLU   = nn.ReLU
	Tanh   = nn.Tanh
)

// ParseActivation parses "linear", "relu" or "tanh".
func ParseActivation(s string) (Activation, bool) {
	return nn.ParseActivation(s)
}

// Initializer returns the starting value of the next parameter.
type Initializer = nn.Initializer

// Uniform draws parameters from U(lo, hi).
func Uniform(rng *rand.Rand, lo, hi float64) Initializer {
	return nn.Uniform(rng, lo, hi)
}

// Constant initializes every parameter to c.
func Constant(c float64) Initializer {
	return nn.Constant(c)
}

// Layers

// Neuron computes act(w·x + b).
type Neuron = nn.Neuron

// NewNeuron creates a neuron with nin weights and a bias.
func NewNeuron(g *engine.Graph, nin int, act Activation, init Initializer) *Neuron {
	return nn.NewNeuron(g, nin, act, init)
}

// Layer is a row of independent neurons sharing the same inputs.
type Layer = nn.Layer

// NewLayer creates a layer of nout neurons with nin inputs each.
func NewLayer(g *engine.Graph, nin, nout int, act Activation, init Initializer) *Layer {
	return nn.NewLayer(g, nin, nout, act, init)
}

// MLP is a multi-layer perceptron with ReLU hidden layers and a linear
// output layer.
type MLP = nn.MLP

// NewMLP creates an MLP with nin inputs and one layer per entry of nouts.
//
// Example:
//
//	model := nn.NewMLP(g, 2, []int{16, 16, 1}, nn.Uniform(rng, -1, 1))
func NewMLP(g *engine.Graph, nin int, nouts []int, init Initializer) *MLP {
	return nn.NewMLP(g, nin, nouts, init)
}

// ErrWeightCount is returned by MLP.LoadWeights on a length mismatch.
var ErrWeightCount = nn.ErrWeightCount

// ZeroGrad resets the gradient of every parameter of m.
func ZeroGrad(m Module) {
	nn.ZeroGrad(m)
}

// NumParams returns the number of parameters of m.
func NumParams(m Module) int {
	return nn.NumParams(m)
}

// Loss functions

// HingeLoss computes mean(relu(1 - yᵢ·scoreᵢ)) for labels in {-1, +1}.
func HingeLoss(scores []engine.Value, ys []float64) engine.Value {
	return nn.HingeLoss(scores, ys)
}

// MSELoss computes mean((predictionᵢ - targetᵢ)²).
func MSELoss(predictions []engine.Value, targets []float64) engine.Value {
	return nn.MSELoss(predictions, targets)
}

// L2 computes alpha · Σ p² over params.
func L2(g *engine.Graph, params []engine.Value, alpha float64) engine.Value {
	return nn.L2(g, params, alpha)
}

// Accuracy returns the fraction of scores whose sign matches the label.
func Accuracy(scores []engine.Value, ys []float64) float64 {
	return nn.Accuracy(scores, ys)
}

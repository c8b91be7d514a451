// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/born-ml/micrograd/engine"
	"github.com/born-ml/micrograd/nn"
)

// TestModuleInterface verifies that concrete types implement Module interface.
func TestModuleInterface(t *testing.T) {
	g := engine.NewGraph()
	rng := rand.New(rand.NewSource(1))

	tests := []struct {
		name   string
		module nn.Module
		params int
	}{
		{
			name:   "Neuron",
			module: nn.NewNeuron(g, 3, nn.Tanh, nn.Uniform(rng, -1, 1)),
			params: 4,
		},
		{
			name:   "Layer",
			module: nn.NewLayer(g, 3, 2, nn.ReLU, nn.Uniform(rng, -1, 1)),
			params: 8,
		},
		{
			name:   "MLP",
			module: nn.NewMLP(g, 2, []int{16, 16, 1}, nn.Uniform(rng, -1, 1)),
			params: 337,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.params, nn.NumParams(tt.module))

			for _, p := range tt.module.Parameters() {
				p.SetGrad(1)
			}
			nn.ZeroGrad(tt.module)
			for _, p := range tt.module.Parameters() {
				assert.Zero(t, p.Grad())
			}
		})
	}
}

func TestHingeLoss_Facade(t *testing.T) {
	g := engine.NewGraph()
	scores := g.Leaves(2, -0.5)

	loss := nn.HingeLoss(scores, []float64{1, 1})

	// relu(1 - 2) = 0, relu(1 + 0.5) = 1.5
	assert.InDelta(t, 0.75, loss.Data(), 1e-12)
	assert.Equal(t, 0.5, nn.Accuracy(scores, []float64{1, 1}))
}

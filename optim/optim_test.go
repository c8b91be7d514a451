// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/born-ml/micrograd/engine"
	"github.com/born-ml/micrograd/optim"
)

// TestOptimizerInterface verifies that concrete optimizers implement Optimizer.
func TestOptimizerInterface(t *testing.T) {
	g := engine.NewGraph()
	params := g.Leaves(1, 2)

	optimizers := map[string]optim.Optimizer{
		"SGD":  optim.NewSGD(params, optim.SGDConfig{LR: 0.1}),
		"Adam": optim.NewAdam(params, optim.AdamConfig{LR: 0.1}),
	}
	for name, o := range optimizers {
		t.Run(name, func(t *testing.T) {
			o.SetLR(0.25)
			assert.Equal(t, 0.25, o.GetLR())
		})
	}
}

func TestScheduleInterface(t *testing.T) {
	schedules := []optim.Schedule{
		optim.Constant(0.5),
		optim.LinearDecay{Start: 0.5, End: 0.5, Steps: 10},
	}
	for _, s := range schedules {
		assert.Equal(t, 0.5, s.LR(3))
	}
}

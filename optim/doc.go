// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides optimization algorithms for training neural networks.
//
// # Overview
//
// This package contains:
//   - SGD: Stochastic Gradient Descent with momentum
//   - Adam: Adaptive Moment Estimation with bias correction
//   - Optimizer interface for custom optimizers
//   - Schedule, Constant and LinearDecay learning rate schedules
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/micrograd/engine"
//	    "github.com/born-ml/micrograd/nn"
//	    "github.com/born-ml/micrograd/optim"
//	)
//
//	func main() {
//	    g := engine.NewGraph()
//	    model := nn.NewMLP(g, 2, []int{16, 16, 1}, nn.Uniform(rng, -1, 1))
//	    mark := g.Mark()
//
//	    optimizer := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 1.0})
//	    schedule := optim.LinearDecay{Start: 1.0, End: 0.1, Steps: 100}
//
//	    for k := range 100 {
//	        g.Release(mark)
//	        loss := computeLoss(model, data)
//
//	        optimizer.ZeroGrad()
//	        loss.Backward()
//
//	        optimizer.SetLR(schedule.LR(k))
//	        optimizer.Step()
//	    }
//	}
//
// # Gradients
//
// Optimizers read the gradient accumulated on each parameter by Backward.
// Backward adds into leaf gradients, so ZeroGrad must run before every
// backward pass.
package optim
